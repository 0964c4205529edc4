package cauce

import "fmt"

// Material holds the Phong coefficients of a surface. Values are immutable;
// replace the whole material through SetMaterial.
type Material struct {
	ka, kd, ks, exp float32
}

func NewMaterial(ka, kd, ks, exp float32) (Material, error) {
	if ka < 0 || kd < 0 || ks < 0 || exp < 0 {
		return Material{}, fmt.Errorf("%w: (%g, %g, %g, %g)", ErrInvalidMaterial, ka, kd, ks, exp)
	}
	return Material{ka: ka, kd: kd, ks: ks, exp: exp}, nil
}

// MustMaterial is NewMaterial for literal coefficients.
func MustMaterial(ka, kd, ks, exp float32) Material {
	m, err := NewMaterial(ka, kd, ks, exp)
	if err != nil {
		panic(err)
	}
	return m
}

// DefaultMaterial is mostly diffuse with a faint ambient term.
func DefaultMaterial() Material {
	return Material{ka: 0.2, kd: 0.8, ks: 0.0, exp: 1.0}
}

func (m Material) Ambient() float32  { return m.ka }
func (m Material) Diffuse() float32  { return m.kd }
func (m Material) Specular() float32 { return m.ks }
func (m Material) Exponent() float32 { return m.exp }
