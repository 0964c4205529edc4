package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const maxLatitude = 89 * math32.Pi / 180

// Orbital is a perspective camera orbiting a target point. Longitude turns
// around the Y axis and latitude tilts above or below the XZ plane.
type Orbital struct {
	Target    mgl32.Vec3
	Longitude float32
	Latitude  float32
	Distance  float32

	FovY, Near, Far float32

	MinDistance, MaxDistance float32

	// Speed is the angle in radians turned by a drag across the viewport.
	Speed float32

	aspect float32
}

// NewOrbital returns a camera at distance from the origin looking down -Z.
func NewOrbital(distance, fovY, near, far float32) *Orbital {
	return &Orbital{
		Distance:    distance,
		FovY:        fovY,
		Near:        near,
		Far:         far,
		MinDistance: near * 2,
		MaxDistance: far / 2,
		Speed:       math32.Pi,
		aspect:      1,
	}
}

func (o *Orbital) Move(dx, dy float32) {
	o.Longitude -= dx * o.Speed
	o.Latitude = clamp(o.Latitude+dy*o.Speed, -maxLatitude, maxLatitude)
}

// Pan moves the target in the camera plane, scaled by the distance so the
// target follows the finger.
func (o *Orbital) Pan(dx, dy float32) {
	right, up := o.axes()
	scale := o.Distance * 2 * math32.Tan(o.FovY/2)
	o.Target = o.Target.Sub(right.Mul(dx * scale * o.aspect)).Add(up.Mul(dy * scale))
}

func (o *Orbital) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	o.Distance = clamp(o.Distance/factor, o.MinDistance, o.MaxDistance)
}

func (o *Orbital) Resize(width, height int) { o.aspect = aspectOf(width, height) }

// Eye returns the camera position in world coordinates.
func (o *Orbital) Eye() mgl32.Vec3 {
	sinLon, cosLon := math32.Sincos(o.Longitude)
	sinLat, cosLat := math32.Sincos(o.Latitude)
	dir := mgl32.Vec3{cosLat * sinLon, sinLat, cosLat * cosLon}
	return o.Target.Add(dir.Mul(o.Distance))
}

func (o *Orbital) axes() (right, up mgl32.Vec3) {
	forward := o.Target.Sub(o.Eye()).Normalize()
	right = forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	up = right.Cross(forward)
	return right, up
}

func (o *Orbital) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(o.Eye(), o.Target, mgl32.Vec3{0, 1, 0})
}

func (o *Orbital) ProjectionMatrix() mgl32.Mat4 {
	top := o.Near * math32.Tan(o.FovY/2)
	right := top * o.aspect
	return mgl32.Frustum(-right, right, -top, top, o.Near, o.Far)
}
