package main

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	visor "github.com/igmovil/cauce/app"
	"github.com/igmovil/cauce/input"
)

// window is a GLFW window with an OpenGL ES 3.0 context current on the
// calling thread. The caller must have locked the OS thread.
type window struct {
	win     *glfw.Window
	pressed bool
}

func newWindow(width, height int, title string) (*window, error) {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 600
	}
	if err := glfw.Init(); err != nil {
		return nil, err
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)
	return &window{win: win}, nil
}

func (w *window) framebufferSize() (int, int) { return w.win.GetFramebufferSize() }

// bind routes window input to v. GLFW calls back on the main thread; App
// input methods are safe from there.
func (w *window) bind(v *visor.App) {
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		v.Resize(width, height)
	})
	w.win.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		x, y := win.GetCursorPos()
		p := input.Pointer{X: float32(x), Y: float32(y), At: time.Now()}
		switch action {
		case glfw.Press:
			w.pressed = true
			p.Phase = input.Down
		case glfw.Release:
			w.pressed = false
			p.Phase = input.Up
		default:
			return
		}
		v.Pointer(p)
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if w.pressed {
			v.Pointer(input.Pointer{Phase: input.Move, X: float32(x), Y: float32(y), At: time.Now()})
		}
	})
	w.win.SetScrollCallback(func(_ *glfw.Window, _, dy float64) {
		switch {
		case dy > 0:
			v.Key('+')
		case dy < 0:
			v.Key('-')
		}
	})
	w.win.SetCharCallback(func(_ *glfw.Window, r rune) { v.Key(r) })
	w.win.SetKeyCallback(func(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			win.SetShouldClose(true)
		}
	})
}

func (w *window) close() {
	w.win.Destroy()
	glfw.Terminate()
}
