// pressureviewer subscribes to a pressure sensor topic over MQTT and plots
// the last 1000 readings as a live line chart. Pressing S exports the visible
// window to pressure_data.csv; Escape (or closing the window) exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lambdabear/pressure-monitor/src/config"
	"github.com/lambdabear/pressure-monitor/src/export"
	"github.com/lambdabear/pressure-monitor/src/ingest"
	"github.com/lambdabear/pressure-monitor/src/render"
	"github.com/lambdabear/pressure-monitor/src/series"
)

const windowTitle = "Pressure Data         s=Save    <Esc>=Exit"

func main() {
	defaults := config.Default()
	var (
		addr        string
		port        int
		profileName string
		debug       bool
	)
	flag.StringVar(&addr, "a", defaults.Addr, "MQTT broker address")
	flag.StringVar(&addr, "addr", defaults.Addr, "MQTT broker address")
	flag.IntVar(&port, "p", defaults.Port, "MQTT broker port")
	flag.IntVar(&port, "port", defaults.Port, "MQTT broker port")
	flag.StringVar(&profileName, "profile", defaults.Profile.Name,
		fmt.Sprintf("deployment profile (%s)", strings.Join(config.ProfileNames(), ", ")))
	flag.BoolVar(&debug, "debug", false, "log every received reading")
	flag.Parse()

	logCfg := zap.NewDevelopmentConfig()
	if !debug {
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	logger, err := logCfg.Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := defaults
	cfg.Addr = addr
	cfg.Port = port
	profile, err := config.ProfileByName(profileName)
	if err != nil {
		logger.Fatal("invalid profile", zap.Error(err))
	}
	cfg.Profile = profile

	renderer, err := render.New(cfg.Width, cfg.Height, cfg.XMaxSeconds, cfg.Profile.YMin, cfg.Profile.YMax)
	if err != nil {
		logger.Fatal("chart setup failed", zap.Error(err))
	}

	sub := ingest.NewSubscriber(cfg, logger.Named("ingest"))
	if err := sub.Connect(context.Background()); err != nil {
		logger.Fatal("mqtt setup failed", zap.Error(err))
	}
	defer sub.Close()
	logger.Info("subscribed",
		zap.String("broker", cfg.BrokerAddr()),
		zap.String("topic", cfg.Topic),
		zap.String("profile", cfg.Profile.Name),
		zap.Stringer("discipline", cfg.Profile.Discipline),
	)

	a := app.NewWithID("com.lambdabear.pressuremonitor")
	w := a.NewWindow(windowTitle)

	frame := canvas.NewImageFromImage(renderer.Empty())
	frame.FillMode = canvas.ImageFillContain
	w.SetContent(frame)
	w.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)))
	w.SetFixedSize(true)

	keys := make(chan string, 8)
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyEscape:
			w.Close()
		case fyne.KeyS:
			// non-blocking: a stuck loop must not wedge the UI thread
			select {
			case keys <- keySave:
			default:
			}
		}
	})
	closed := make(chan struct{})
	w.SetOnClosed(func() { close(closed) })

	lp := &loop{
		cfg:      cfg,
		buf:      series.NewBuffer(cfg.WindowSize),
		renderer: renderer,
		exporter: export.NewCSVWriter(cfg.OutputPath),
		samples:  sub.Samples(),
		keys:     keys,
		surface:  &fyneSurface{frame: frame, closed: closed},
		logger:   logger.Named("loop"),
	}
	go lp.run()

	w.ShowAndRun()
}

// fyneSurface adapts the Fyne window to the loop's Surface. Present marshals
// onto the UI thread; the loop itself never touches widgets directly.
type fyneSurface struct {
	frame  *canvas.Image
	closed chan struct{}
}

func (s *fyneSurface) Present(img image.Image) {
	fyne.Do(func() {
		s.frame.Image = img
		s.frame.Refresh()
	})
}

func (s *fyneSurface) Closed() <-chan struct{} {
	return s.closed
}
