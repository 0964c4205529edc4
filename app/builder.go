package app

import (
	"fmt"
	"io/fs"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/igmovil/cauce"
	"github.com/igmovil/cauce/assets"
	"github.com/igmovil/cauce/camera"
	"github.com/igmovil/cauce/config"
	"github.com/igmovil/cauce/input"
	"github.com/igmovil/cauce/scene"
)

type Builder struct {
	dev     cauce.Device
	cfg     config.Config
	fsys    fs.FS
	log     cauce.Logger
	objects []scene.Object
}

// NewBuilder starts an App bound to dev with the default configuration.
func NewBuilder(dev cauce.Device) *Builder {
	return &Builder{dev: dev, cfg: config.Default(), log: cauce.NewNopLogger()}
}

func (b *Builder) UseConfig(cfg config.Config) *Builder {
	b.cfg = cfg
	return b
}

// UseAssets sets the file system PLY and texture paths are read from.
func (b *Builder) UseAssets(fsys fs.FS) *Builder {
	b.fsys = fsys
	return b
}

func (b *Builder) UseLogger(l cauce.Logger) *Builder {
	b.log = cauce.OrNop(l)
	return b
}

// UseObjects appends objects after the configured ones.
func (b *Builder) UseObjects(objects ...scene.Object) *Builder {
	b.objects = append(b.objects, objects...)
	return b
}

// Build loads the catalogue and creates the pipeline. No GPU call is made
// until Start.
func (b *Builder) Build() (*App, error) {
	cfg := b.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Debug {
		b.log.SetDebug(true)
	}
	lights, err := cfg.LightCollection()
	if err != nil {
		return nil, err
	}

	var srv *assets.Server
	if b.fsys != nil {
		srv = assets.NewServer(b.fsys, assets.WithLogger(b.log))
	}
	catalogue := scene.NewCatalogue()
	for i, o := range cfg.Objects {
		obj, err := buildObject(o, srv)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, o.Kind, err)
		}
		catalogue.Add(obj)
	}
	catalogue.Add(b.objects...)
	if catalogue.Len() == 0 {
		return nil, fmt.Errorf("%w: no objects", config.ErrInvalid)
	}

	q := &input.Queue{}
	gestures := input.NewRecognizer(q)
	gestures.LongPress = cfg.LongPress()
	gestures.SetViewport(cfg.Window.Width, cfg.Window.Height)

	bg := cfg.Background
	a := &App{
		log: cauce.Scoped(b.log, "app"),
		pipe: cauce.New(b.dev,
			cauce.WithLogger(cauce.Scoped(b.log, "cauce")),
			cauce.WithBackground(mgl32.Vec4(bg))),
		cam:       newCamera(cfg.Camera),
		catalogue: catalogue,
		lights:    lights,
		queue:     q,
		gestures:  gestures,
		paramS:    cfg.ParamS,
		width:     cfg.Window.Width,
		height:    cfg.Window.Height,
	}
	a.cam.Resize(a.width, a.height)
	a.log.Infof("catalogue of %d objects, starting with %q", catalogue.Len(), catalogue.Current().Name())
	return a, nil
}

func newCamera(c config.Camera) camera.Camera {
	if c.Kind == config.CameraPlanar {
		return camera.NewPlanar(c.HalfHeight)
	}
	return camera.NewOrbital(c.Distance, c.FovY*math32.Pi/180, c.Near, c.Far)
}
