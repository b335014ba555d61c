package render

import (
	"testing"

	"github.com/lambdabear/pressure-monitor/src/series"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(400, 200, 120, -100_000, 2500)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestNewRendererBuildsAxisFrame(t *testing.T) {
	r := testRenderer(t)
	img := r.Empty()
	if img == nil {
		t.Fatal("nil axis-only frame")
	}
	b := img.Bounds()
	if b.Dx() != 400 || b.Dy() != 200 {
		t.Fatalf("axis frame size: got %dx%d want 400x200", b.Dx(), b.Dy())
	}
}

func TestRenderFrameSizes(t *testing.T) {
	r := testRenderer(t)
	cases := [][]series.Point{
		nil,
		{{Elapsed: 0, Value: 100}},
		{{Elapsed: 0, Value: 100}, {Elapsed: 1, Value: 200}},
		{{Elapsed: 0, Value: -90_000}, {Elapsed: 60, Value: 0}, {Elapsed: 120, Value: 2500}},
	}
	for i, points := range cases {
		img, err := r.Render(points)
		if err != nil {
			t.Fatalf("case %d (%d points): %v", i, len(points), err)
		}
		b := img.Bounds()
		if b.Dx() != 400 || b.Dy() != 200 {
			t.Fatalf("case %d: frame size %dx%d", i, b.Dx(), b.Dy())
		}
	}
}

func TestRenderRepeatable(t *testing.T) {
	// Rendering must not mutate the prebuilt chart state.
	r := testRenderer(t)
	points := []series.Point{{Elapsed: 0, Value: 1}, {Elapsed: 5, Value: 2}}
	for i := 0; i < 3; i++ {
		if _, err := r.Render(points); err != nil {
			t.Fatalf("render %d: %v", i, err)
		}
	}
	if _, err := r.Render(nil); err != nil {
		t.Fatalf("render empty after data: %v", err)
	}
}

func TestNiceTicksStayWithinRange(t *testing.T) {
	cases := []struct {
		min, max float64
		n        int
	}{
		{0, 120, 7},
		{-100_000, 2500, 6},
		{-50_000, 2500, 6},
	}
	for _, tc := range cases {
		ticks := niceTicks(tc.min, tc.max, tc.n)
		if len(ticks) < 2 {
			t.Fatalf("niceTicks(%v, %v): too few ticks (%d)", tc.min, tc.max, len(ticks))
		}
		for _, tick := range ticks {
			if tick.Value < tc.min || tick.Value > tc.max {
				t.Fatalf("tick %v outside [%v, %v]", tick.Value, tc.min, tc.max)
			}
		}
		if ticks[0].Value != tc.min {
			t.Fatalf("first tick %v, want range min %v", ticks[0].Value, tc.min)
		}
		if ticks[len(ticks)-1].Value != tc.max {
			t.Fatalf("last tick %v, want range max %v", ticks[len(ticks)-1].Value, tc.max)
		}
	}
}

func TestStamp(t *testing.T) {
	r := testRenderer(t)
	base := r.Empty()

	stamped := Stamp(base, "12.5 Pa   3/1000 samples")
	if stamped == nil {
		t.Fatal("nil stamped image")
	}
	if stamped.Bounds() != base.Bounds() {
		t.Fatalf("stamp changed bounds: %v vs %v", stamped.Bounds(), base.Bounds())
	}

	// nothing to draw: input comes back untouched
	if got := Stamp(base, "   "); got != base {
		t.Fatal("blank text should return the input image")
	}
	if got := Stamp(nil, "text"); got != nil {
		t.Fatal("nil image should stay nil")
	}
}
