// Package camera supplies view and projection matrices to the pipeline.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/igmovil/cauce"
)

// Camera is implemented by every camera kind. Deltas passed to Move and Pan
// are normalized by the viewport size (a drag across the whole width is 1).
type Camera interface {
	// Move applies the camera's primary drag motion.
	Move(dx, dy float32)
	// Pan translates the point the camera looks at.
	Pan(dx, dy float32)
	// Zoom scales the view; factors above 1 move closer.
	Zoom(factor float32)
	// Resize updates the aspect ratio from a viewport size in pixels.
	Resize(width, height int)
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
}

// Activate uploads the camera's matrices to the pipeline.
func Activate(cam Camera, c *cauce.Cauce) {
	c.SetViewMatrix(cam.ViewMatrix())
	c.SetProjectionMatrix(cam.ProjectionMatrix())
}

func aspectOf(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
