package main

import (
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/lambdabear/pressure-monitor/src/config"
	"github.com/lambdabear/pressure-monitor/src/export"
	"github.com/lambdabear/pressure-monitor/src/render"
	"github.com/lambdabear/pressure-monitor/src/sample"
	"github.com/lambdabear/pressure-monitor/src/series"
)

// keySave triggers an export of the current window. Key repeat applies, so
// holding the key re-exports (and overwrites) repeatedly.
const keySave = "S"

// Surface is the loop's view of the display: it takes finished frames and
// reports when the window has gone away. The Fyne window implements it; tests
// substitute a recorder.
type Surface interface {
	Present(img image.Image)
	Closed() <-chan struct{}
}

// loop is the process-wide control loop. It is the sole owner of the sliding
// window buffer and the only goroutine that renders; samples cross over from
// the MQTT side exclusively through the ingestion channel, key presses
// through the keys channel.
type loop struct {
	cfg      config.Config
	buf      *series.Buffer
	renderer *render.Renderer
	exporter *export.CSVWriter
	samples  <-chan sample.Sample
	keys     <-chan string
	surface  Surface
	logger   *zap.Logger
}

// run iterates until the surface closes. Per iteration: acquire at most one
// sample (per the profile's discipline), push it, recompute the chart frame,
// redraw, handle pending key presses, present. Bursts drain one sample per
// frame; the window may lag a fast producer by a few frames, which is the
// accepted trade-off for bounded per-frame work.
func (l *loop) run() {
	for {
		s, ok, closed := l.next()
		if closed {
			l.logger.Info("display closed, stopping")
			return
		}
		if ok {
			l.buf.Push(s)
			points, err := l.buf.Frame()
			if err != nil {
				l.logger.Fatal("window epoch invariant broken", zap.Error(err))
			}
			img, err := l.renderer.Render(points)
			if err != nil {
				l.logger.Fatal("chart render failed", zap.Error(err))
			}
			img = render.Stamp(img, fmt.Sprintf("%.1f Pa   %d/%d samples", s.Value, l.buf.Len(), l.cfg.WindowSize))
			l.surface.Present(img)
		}
		l.drainKeys()
		if l.cfg.Profile.Discipline == config.DisciplinePoll {
			time.Sleep(l.cfg.FrameDelay)
		}
	}
}

// next acquires at most one sample according to the drain discipline. The
// closed result is authoritative: once true the loop must stop.
func (l *loop) next() (s sample.Sample, ok bool, closed bool) {
	switch l.cfg.Profile.Discipline {
	case config.DisciplineBlock:
		select {
		case s = <-l.samples:
			return s, true, false
		case k := <-l.keys:
			l.handleKey(k)
			return sample.Sample{}, false, false
		case <-l.surface.Closed():
			return sample.Sample{}, false, true
		}
	default:
		select {
		case <-l.surface.Closed():
			return sample.Sample{}, false, true
		default:
		}
		select {
		case s = <-l.samples:
			return s, true, false
		default:
			return sample.Sample{}, false, false
		}
	}
}

func (l *loop) drainKeys() {
	for {
		select {
		case k := <-l.keys:
			l.handleKey(k)
		default:
			return
		}
	}
}

func (l *loop) handleKey(k string) {
	if k != keySave {
		return
	}
	points, err := l.buf.Frame()
	if err != nil {
		l.logger.Fatal("window epoch invariant broken", zap.Error(err))
	}
	if err := l.exporter.Export(points); err != nil {
		l.logger.Fatal("export failed", zap.Error(err))
	}
	l.logger.Info("exported window",
		zap.String("file", l.cfg.OutputPath),
		zap.Int("rows", len(points)),
	)
}
