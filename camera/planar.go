package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Planar is an orthographic camera looking down -Z at the XY plane, for
// flat objects.
type Planar struct {
	Center     mgl32.Vec2
	HalfHeight float32

	MinHalfHeight, MaxHalfHeight float32

	aspect float32
}

func NewPlanar(halfHeight float32) *Planar {
	return &Planar{
		HalfHeight:    halfHeight,
		MinHalfHeight: halfHeight / 100,
		MaxHalfHeight: halfHeight * 100,
		aspect:        1,
	}
}

// Move pans; a planar camera has no orbit.
func (p *Planar) Move(dx, dy float32) { p.Pan(dx, dy) }

func (p *Planar) Pan(dx, dy float32) {
	h := 2 * p.HalfHeight
	p.Center = p.Center.Sub(mgl32.Vec2{dx * h * p.aspect, -dy * h})
}

func (p *Planar) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	p.HalfHeight = clamp(p.HalfHeight/factor, p.MinHalfHeight, p.MaxHalfHeight)
}

func (p *Planar) Resize(width, height int) { p.aspect = aspectOf(width, height) }

func (p *Planar) ViewMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(-p.Center.X(), -p.Center.Y(), 0)
}

func (p *Planar) ProjectionMatrix() mgl32.Mat4 {
	w := p.HalfHeight * p.aspect
	return mgl32.Ortho(-w, w, -p.HalfHeight, p.HalfHeight, -10, 10)
}
