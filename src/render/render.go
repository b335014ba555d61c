// Package render turns a chart frame into pixels. It wraps go-chart: the
// frame's polyline is drawn over fixed axes, rendered to PNG and decoded back
// into an image.Image for the display surface.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lambdabear/pressure-monitor/src/series"
)

var (
	backgroundColor = drawing.Color{R: 0, G: 0, B: 0, A: 255}
	seriesColor     = chart.ColorGreen
	// faint green for the major grid, like the original's dimmed mesh
	gridColor = drawing.Color{R: 0, G: 255, B: 0, A: 51}
)

// Renderer draws chart frames over a fixed coordinate window. The chart
// state — geometry, axis ranges, tick marks, styles — is built once in New
// and cheaply copied per frame; computing the axes is measurably more
// expensive than drawing the series, so only the series changes between
// frames.
type Renderer struct {
	width  int
	height int
	base   chart.Chart
	empty  image.Image
}

// New builds the fixed chart state for a width×height surface with
// x ∈ [0, xMax] seconds and y ∈ [yMin, yMax]. It renders the axis-only
// frame once and fails if the drawing backend cannot produce it.
func New(width, height int, xMax, yMin, yMax float64) (*Renderer, error) {
	axisStyle := chart.Style{
		FontColor:   seriesColor,
		StrokeColor: seriesColor,
	}
	base := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: backgroundColor,
			Padding:   chart.Box{Top: 10, Left: 10, Right: 10, Bottom: 10},
		},
		Canvas: chart.Style{FillColor: backgroundColor},
		XAxis: chart.XAxis{
			Style:          axisStyle,
			Range:          &chart.ContinuousRange{Min: 0, Max: xMax},
			Ticks:          niceTicks(0, xMax, 7),
			GridMajorStyle: chart.Style{StrokeColor: gridColor, StrokeWidth: 1.0},
		},
		YAxis: chart.YAxis{
			Style:          axisStyle,
			Range:          &chart.ContinuousRange{Min: yMin, Max: yMax},
			Ticks:          niceTicks(yMin, yMax, 6),
			GridMajorStyle: chart.Style{StrokeColor: gridColor, StrokeWidth: 1.0},
		},
	}
	r := &Renderer{width: width, height: height, base: base}
	empty, err := r.renderSeries(invisibleSeries(xMax, yMin))
	if err != nil {
		return nil, fmt.Errorf("render base chart: %w", err)
	}
	r.empty = empty
	return r, nil
}

// Empty returns the axis-only frame shown before any data arrives.
func (r *Renderer) Empty() image.Image {
	return r.empty
}

// Render draws the frame's polyline: straight segments between adjacent
// points, no smoothing. An empty frame yields the axis-only image.
func (r *Renderer) Render(points []series.Point) (image.Image, error) {
	if len(points) == 0 {
		return r.empty, nil
	}
	return r.renderSeries(lineSeries(points))
}

func (r *Renderer) renderSeries(s chart.Series) (image.Image, error) {
	ch := r.base // restore the prebuilt chart state
	ch.Series = []chart.Series{s}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	return img, nil
}

// lineSeries maps the frame onto a go-chart series. A lone point is padded to
// two identical values because go-chart refuses single-value series.
func lineSeries(points []series.Point) chart.Series {
	xs := make([]float64, 0, len(points)+1)
	ys := make([]float64, 0, len(points)+1)
	for _, p := range points {
		xs = append(xs, p.Elapsed)
		ys = append(ys, p.Value)
	}
	if len(xs) == 1 {
		xs = append(xs, xs[0])
		ys = append(ys, ys[0])
	}
	return chart.ContinuousSeries{
		XValues: xs,
		YValues: ys,
		Style:   chart.Style{StrokeColor: seriesColor, StrokeWidth: 1.5},
	}
}

// invisibleSeries satisfies go-chart's at-least-one-visible-series rule
// without drawing anything, so the empty chart still shows its mesh.
func invisibleSeries(xMax, yMin float64) chart.Series {
	return chart.ContinuousSeries{
		XValues: []float64{0, xMax},
		YValues: []float64{yMin, yMin},
		Style:   chart.Style{StrokeColor: chart.ColorTransparent, StrokeWidth: 1.0},
	}
}
