// Command visor-glfw shows the object catalogue in a desktop window with an
// OpenGL ES 3.0 context created by GLFW.
//
// Drag with the left button to orbit, scroll to zoom, press n or space for
// the next object, s and a to change the S parameter, Escape to quit.
package main

import (
	"flag"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/mobile/gl"

	"github.com/igmovil/cauce"
	visor "github.com/igmovil/cauce/app"
	"github.com/igmovil/cauce/config"
	"github.com/igmovil/cauce/gles"
)

func init() {
	// GLFW and the GL worker must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "", "configuration file (.yaml, .yml or .toml)")
		assetsDir  = flag.String("assets", "", "asset directory, overrides the configuration")
		debug      = flag.Bool("debug", false, "log debug messages")
	)
	flag.Parse()

	logger := cauce.NewDefaultLogger("visor", *debug)
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("visor: %v", err)
		}
	}
	if *assetsDir != "" {
		cfg.Assets = *assetsDir
	}

	w, err := newWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	if err != nil {
		log.Fatalf("visor: %v", err)
	}
	defer w.close()

	ctx, worker := gl.NewContext()
	v, err := visor.NewBuilder(gles.New(ctx)).
		UseConfig(cfg).
		UseAssets(os.DirFS(cfg.Assets)).
		UseLogger(logger).
		Build()
	if err != nil {
		log.Fatalf("visor: %v", err)
	}
	w.bind(v)
	v.Resize(w.framebufferSize())

	// The render goroutine issues GL calls through ctx; the main thread
	// executes them with the worker and swaps after each frame.
	frames := make(chan error)
	swapped := make(chan struct{})
	go func() {
		if err := v.Start(); err != nil {
			frames <- err
			return
		}
		for {
			err := v.Frame(time.Now())
			frames <- err
			if err != nil {
				return
			}
			<-swapped
		}
	}()

	for !w.win.ShouldClose() {
		select {
		case <-worker.WorkAvailable():
			worker.DoWork()
		case err := <-frames:
			if err != nil {
				log.Fatalf("visor: %v", err)
			}
			w.win.SwapBuffers()
			glfw.PollEvents()
			swapped <- struct{}{}
		}
	}
	logger.Infof("closed after %d frames", v.Frames())
}
