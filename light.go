package cauce

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxLights is the size of the light uniform arrays in the fragment shader.
const MaxLights = 8

// Light is a directional (w == 0) or positional (w == 1) light source in
// world coordinates.
type Light struct {
	PosDir mgl32.Vec4
	// Color is the RGB intensity. Components are non-negative and may
	// exceed 1.
	Color mgl32.Vec3
}

// NewDirectionalLight returns a light shining from direction dir.
func NewDirectionalLight(dir, color mgl32.Vec3) Light {
	return Light{PosDir: dir.Vec4(0), Color: color}
}

// NewPositionalLight returns a point light placed at pos.
func NewPositionalLight(pos, color mgl32.Vec3) Light {
	return Light{PosDir: pos.Vec4(1), Color: color}
}

func (l Light) Directional() bool { return l.PosDir.W() == 0 }

func (l Light) Validate() error {
	switch w := l.PosDir.W(); w {
	case 0:
		if l.PosDir.Vec3() == (mgl32.Vec3{}) {
			return fmt.Errorf("%w: zero direction", ErrInvalidLight)
		}
	case 1:
	default:
		return fmt.Errorf("%w: w = %g, want 0 or 1", ErrInvalidLight, w)
	}
	for _, c := range l.Color {
		if c < 0 {
			return fmt.Errorf("%w: negative color %v", ErrInvalidLight, l.Color)
		}
	}
	return nil
}

// LightCollection is the ordered set of lights used for one lighting pass.
// A nil collection disables lighting.
type LightCollection []Light

// NewLightCollection validates every light and the collection size.
func NewLightCollection(lights ...Light) (LightCollection, error) {
	lc := LightCollection(append([]Light(nil), lights...))
	if err := lc.Validate(); err != nil {
		return nil, err
	}
	return lc, nil
}

func (lc LightCollection) Validate() error {
	if err := lc.checkSize(); err != nil {
		return err
	}
	for i, l := range lc {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
	}
	return nil
}

func (lc LightCollection) checkSize() error {
	if len(lc) == 0 || len(lc) > MaxLights {
		return fmt.Errorf("%w: %d lights, want 1..%d", ErrLightCount, len(lc), MaxLights)
	}
	return nil
}

// eyeSpace transforms every position/direction by view and flattens the
// result into the uniform array layouts.
func (lc LightCollection) eyeSpace(view mgl32.Mat4) (posDir, colors []float32) {
	posDir = make([]float32, 0, 4*len(lc))
	colors = make([]float32, 0, 3*len(lc))
	for _, l := range lc {
		p := view.Mul4x1(l.PosDir)
		posDir = append(posDir, p[:]...)
		colors = append(colors, l.Color[:]...)
	}
	return posDir, colors
}
