// Package app drives the viewer one frame at a time. A host owns the window
// and the GPU context; it feeds input from its event goroutine and calls
// Frame from the goroutine that owns the context.
package app

import (
	"time"

	"github.com/igmovil/cauce"
	"github.com/igmovil/cauce/camera"
	"github.com/igmovil/cauce/input"
	"github.com/igmovil/cauce/scene"
)

// App is bound to one GPU context. Build a new App when the host loses its
// context.
type App struct {
	log       cauce.Logger
	pipe      *cauce.Cauce
	cam       camera.Camera
	catalogue *scene.Catalogue
	lights    cauce.LightCollection

	queue    *input.Queue
	gestures *input.Recognizer

	paramS        float32
	width, height int
	frames        uint64
}

// Start compiles the shader program. The GPU context must be current.
func (a *App) Start() error {
	if err := a.pipe.Activate(); err != nil {
		return err
	}
	a.log.Infof("pipeline ready, %dx%d", a.width, a.height)
	return nil
}

// Pointer feeds a raw pointer sample. Safe to call from any goroutine.
func (a *App) Pointer(p input.Pointer) { a.gestures.Feed(p) }

// Key feeds a key press. Safe to call from any goroutine.
func (a *App) Key(r rune) {
	if e, ok := input.Key(r); ok {
		a.queue.Push(e)
	}
}

// Resize reports a new viewport size in pixels. Safe to call from any
// goroutine.
func (a *App) Resize(width, height int) {
	a.gestures.SetViewport(width, height)
	a.queue.Push(input.Event{Kind: input.Resize, Width: width, Height: height})
}

// Frame applies pending input and draws the current object.
func (a *App) Frame(now time.Time) error {
	a.gestures.Tick(now)
	for _, e := range a.queue.Drain() {
		a.handle(e)
	}

	p := a.pipe
	if err := p.Activate(); err != nil {
		return err
	}
	p.ResetMatrices()
	p.SetRasterizationDefaults()
	p.InitializeViewport(0, 0, a.width, a.height)
	camera.Activate(a.cam, p)
	p.SetLightCollection(a.lights)
	p.SetParamS(a.paramS)

	if obj := a.catalogue.Current(); obj != nil {
		if err := obj.Visualize(p); err != nil {
			a.log.Errorf("frame %d: %s: %v", a.frames, obj.Name(), err)
			return err
		}
	}
	if err := p.Balanced(); err != nil {
		a.log.Errorf("frame %d: %v", a.frames, err)
		return err
	}
	a.frames++
	return nil
}

func (a *App) handle(e input.Event) {
	switch e.Kind {
	case input.Drag:
		a.cam.Move(e.DX, e.DY)
	case input.Pan:
		a.cam.Pan(e.DX, e.DY)
	case input.Pinch:
		a.cam.Zoom(e.Factor)
	case input.LongPress, input.NextObject:
		obj := a.catalogue.Next()
		a.log.Infof("showing %q", obj.Name())
	case input.ParamS:
		a.paramS = min(1, max(0, a.paramS+e.Delta))
		a.log.Debugf("param s %.2f", a.paramS)
	case input.Resize:
		if e.Width > 0 && e.Height > 0 {
			a.width, a.height = e.Width, e.Height
			a.cam.Resize(e.Width, e.Height)
		}
	}
}

func (a *App) Pipeline() *cauce.Cauce      { return a.pipe }
func (a *App) Camera() camera.Camera       { return a.cam }
func (a *App) Catalogue() *scene.Catalogue { return a.catalogue }
func (a *App) ParamS() float32             { return a.paramS }
func (a *App) Frames() uint64              { return a.frames }
func (a *App) Size() (width, height int)   { return a.width, a.height }
