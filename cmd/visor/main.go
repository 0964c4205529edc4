// Command visor shows the object catalogue on a mobile device or a desktop
// window through golang.org/x/mobile.
//
// Drag to orbit, pinch to zoom, hold to show the next object. On desktop
// the keys n, +, -, s and a do the same as the gestures.
package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"time"

	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
	"golang.org/x/mobile/gl"

	"github.com/igmovil/cauce"
	visor "github.com/igmovil/cauce/app"
	"github.com/igmovil/cauce/config"
	"github.com/igmovil/cauce/gles"
	"github.com/igmovil/cauce/input"
)

// bundledConfig is looked up among the packaged assets when no -config is
// given.
const bundledConfig = "visor.yaml"

func main() {
	var (
		configPath = flag.String("config", "", "configuration file (.yaml, .yml or .toml)")
		assetsDir  = flag.String("assets", "", "asset directory, overrides the configuration")
		debug      = flag.Bool("debug", false, "log debug messages")
	)
	flag.Parse()

	logger := cauce.NewDefaultLogger("visor", *debug)
	cfg, fsys, err := loadConfig(*configPath, *assetsDir)
	if err != nil {
		log.Fatalf("visor: %v", err)
	}

	app.Main(func(a app.App) {
		var (
			v  *visor.App
			sz size.Event
		)
		for e := range a.Events() {
			switch e := a.Filter(e).(type) {
			case lifecycle.Event:
				switch e.Crosses(lifecycle.StageVisible) {
				case lifecycle.CrossOn:
					glctx, _ := e.DrawContext.(gl.Context)
					if v, err = start(glctx, cfg, fsys, logger); err != nil {
						log.Fatalf("visor: %v", err)
					}
					if sz.WidthPx > 0 {
						v.Resize(sz.WidthPx, sz.HeightPx)
					}
					a.Send(paint.Event{})
				case lifecycle.CrossOff:
					v = nil
				}
			case size.Event:
				sz = e
				if v != nil {
					v.Resize(e.WidthPx, e.HeightPx)
				}
			case paint.Event:
				if v == nil || e.External {
					continue
				}
				if err := v.Frame(time.Now()); err != nil {
					log.Fatalf("visor: %v", err)
				}
				a.Publish()
				a.Send(paint.Event{})
			case touch.Event:
				if v != nil {
					v.Pointer(pointer(e))
				}
			case key.Event:
				if v != nil && e.Direction != key.DirRelease {
					v.Key(e.Rune)
				}
			}
		}
	})
}

// start builds a fresh App for a new GL context.
func start(glctx gl.Context, cfg config.Config, fsys fs.FS, logger cauce.Logger) (*visor.App, error) {
	if glctx == nil {
		return nil, errors.New("no GL context")
	}
	v, err := visor.NewBuilder(gles.New(glctx)).
		UseConfig(cfg).
		UseAssets(fsys).
		UseLogger(logger).
		Build()
	if err != nil {
		return nil, err
	}
	return v, v.Start()
}

func pointer(e touch.Event) input.Pointer {
	p := input.Pointer{ID: int64(e.Sequence), X: e.X, Y: e.Y, At: time.Now()}
	switch e.Type {
	case touch.TypeBegin:
		p.Phase = input.Down
	case touch.TypeMove:
		p.Phase = input.Move
	default:
		p.Phase = input.Up
	}
	return p
}

// loadConfig reads the configuration from path, then from the packaged
// assets, falling back to the defaults.
func loadConfig(path, assetsDir string) (config.Config, fs.FS, error) {
	var (
		cfg  config.Config
		fsys fs.FS = assetFS{}
		err  error
	)
	switch {
	case path != "":
		if cfg, err = config.Load(path); err != nil {
			return cfg, nil, err
		}
		fsys = os.DirFS(cfg.Assets)
	default:
		data, rerr := fs.ReadFile(fsys, bundledConfig)
		switch {
		case rerr == nil:
			if cfg, err = config.Decode(data, ".yaml"); err != nil {
				return cfg, nil, err
			}
		case errors.Is(rerr, fs.ErrNotExist):
			cfg = config.Default()
		default:
			return cfg, nil, rerr
		}
	}
	if assetsDir != "" {
		fsys = os.DirFS(assetsDir)
	}
	return cfg, fsys, nil
}
