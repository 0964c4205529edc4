package cauce

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
)

// TexCoordGen selects how the vertex shader obtains texture coordinates.
type TexCoordGen int32

const (
	// TexCoordsFromMesh uses the mesh texture-coordinate table.
	TexCoordsFromMesh TexCoordGen = iota
	// TexCoordsObject computes s,t as dot products with object coordinates.
	TexCoordsObject
	// TexCoordsEye computes s,t as dot products with eye coordinates.
	TexCoordsEye
)

// ImageSource produces the pixels of a texture the first time it is used.
type ImageSource interface {
	Image() (image.Image, error)
}

type ImageSourceFunc func() (image.Image, error)

func (f ImageSourceFunc) Image() (image.Image, error) { return f() }

// Texture is a lazily realized 2D texture. The GPU object is created on the
// first SetTexture; a zero handle means it has not been created yet.
type Texture struct {
	name   string
	src    ImageSource
	handle TextureID

	gen    TexCoordGen
	coefsS mgl32.Vec4
	coefsT mgl32.Vec4
}

type TextureOption func(*Texture)

// WithTexCoordGen enables coordinate generation with the given plane
// coefficients.
func WithTexCoordGen(mode TexCoordGen, s, t mgl32.Vec4) TextureOption {
	return func(tx *Texture) {
		tx.gen = mode
		tx.coefsS = s
		tx.coefsT = t
	}
}

func NewTexture(name string, src ImageSource, opts ...TextureOption) *Texture {
	t := &Texture{
		name:   name,
		src:    src,
		coefsS: mgl32.Vec4{1, 0, 0, 0},
		coefsT: mgl32.Vec4{0, 1, 0, 0},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Texture) Name() string             { return t.name }
func (t *Texture) Handle() TextureID        { return t.handle }
func (t *Texture) Realized() bool           { return t.handle != 0 }
func (t *Texture) TexCoordGen() TexCoordGen { return t.gen }

func (t *Texture) realize(dev Device) error {
	if t.handle != 0 {
		return nil
	}
	if t.src == nil {
		return fmt.Errorf("%w: %s: no image source", ErrTexture, t.name)
	}
	img, err := t.src.Image()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTexture, t.name, err)
	}
	id, err := dev.CreateTexture(toRGBA(img))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTexture, t.name, err)
	}
	if id == 0 {
		return fmt.Errorf("%w: %s: device returned a zero handle", ErrTexture, t.name)
	}
	t.handle = id
	return nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
