package app

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igmovil/cauce"
	"github.com/igmovil/cauce/config"
	"github.com/igmovil/cauce/input"
	"github.com/igmovil/cauce/internal/fakegpu"
	"github.com/igmovil/cauce/scene"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newApp(t *testing.T) (*App, *fakegpu.Device) {
	t.Helper()
	dev := fakegpu.New()
	a, err := NewBuilder(dev).Build()
	require.NoError(t, err)
	require.NoError(t, a.Start())
	return a, dev
}

func checkerPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFrame_DrawsCurrentObject(t *testing.T) {
	a, dev := newApp(t)

	require.NoError(t, a.Frame(t0))

	assert.Equal(t, uint64(1), a.Frames())
	assert.Equal(t, 1, dev.Clears)
	assert.Equal(t, [4]int{0, 0, 800, 600}, dev.ViewportRect)
	assert.Equal(t, [4]float32{0.1, 0.1, 0.1, 1}, dev.ClearColor)
	require.Len(t, dev.Draws, 1)
	assert.Equal(t, 36, dev.Draws[0].Count)
	assert.Equal(t, int32(1), dev.Ints[cauce.UniformEvalLighting])
	assert.Equal(t, int32(2), dev.Ints[cauce.UniformNumLights])
	assert.Equal(t, [16]float32(a.Camera().ProjectionMatrix()), dev.Mat(cauce.UniformProjectionMatrix))
	assert.Equal(t, "colored cube", a.Catalogue().Current().Name())
	assert.NoError(t, a.Pipeline().Balanced())
}

func TestFrame_NextObject(t *testing.T) {
	a, dev := newApp(t)

	a.Key('n')
	a.Key('x')
	require.NoError(t, a.Frame(t0))

	assert.Equal(t, "cube", a.Catalogue().Current().Name())
	require.Len(t, dev.Draws, 1)
	assert.Equal(t, 36, dev.Draws[0].Count)
}

func TestFrame_LongPressCyclesObjects(t *testing.T) {
	a, _ := newApp(t)

	a.Pointer(input.Pointer{ID: 1, Phase: input.Down, X: 10, Y: 10, At: t0})
	require.NoError(t, a.Frame(t0.Add(100*time.Millisecond)))
	assert.Equal(t, "colored cube", a.Catalogue().Current().Name())

	require.NoError(t, a.Frame(t0.Add(time.Second)))
	assert.Equal(t, "cube", a.Catalogue().Current().Name())

	require.NoError(t, a.Frame(t0.Add(2*time.Second)))
	assert.Equal(t, "cube", a.Catalogue().Current().Name(), "one hold fires once")
}

func TestFrame_ParamSClamped(t *testing.T) {
	a, dev := newApp(t)

	for i := 0; i < 30; i++ {
		a.Key('s')
	}
	require.NoError(t, a.Frame(t0))
	assert.Equal(t, float32(1), a.ParamS())
	assert.Equal(t, float32(1), dev.Floats[cauce.UniformParamS])

	for i := 0; i < 30; i++ {
		a.Key('a')
	}
	require.NoError(t, a.Frame(t0))
	assert.Equal(t, float32(0), a.ParamS())
	assert.Equal(t, float32(0), dev.Floats[cauce.UniformParamS])
}

func TestFrame_GesturesMoveCamera(t *testing.T) {
	a, dev := newApp(t)
	require.NoError(t, a.Frame(t0))
	view := a.Camera().ViewMatrix()

	a.Pointer(input.Pointer{ID: 1, Phase: input.Down, X: 100, Y: 100, At: t0})
	a.Pointer(input.Pointer{ID: 1, Phase: input.Move, X: 300, Y: 100, At: t0})
	require.NoError(t, a.Frame(t0))

	assert.NotEqual(t, view, a.Camera().ViewMatrix())
	assert.Equal(t, [16]float32(a.Camera().ViewMatrix()), dev.Mat(cauce.UniformViewMatrix))
}

func TestFrame_Resize(t *testing.T) {
	a, dev := newApp(t)

	a.Resize(320, 480)
	a.Resize(0, 0)
	require.NoError(t, a.Frame(t0))

	w, h := a.Size()
	assert.Equal(t, 320, w)
	assert.Equal(t, 480, h)
	assert.Equal(t, [4]int{0, 0, 320, 480}, dev.ViewportRect)
}

func TestBuild_Errors(t *testing.T) {
	cfg := config.Default()
	cfg.Objects = []config.Object{{Kind: config.ObjectPLY, File: "m.ply", Scale: 1}}
	_, err := NewBuilder(fakegpu.New()).UseConfig(cfg).Build()
	assert.ErrorIs(t, err, errNoAssets)

	cfg = config.Default()
	cfg.Camera.Near = -1
	_, err = NewBuilder(fakegpu.New()).UseConfig(cfg).Build()
	assert.ErrorIs(t, err, config.ErrInvalid)

	cfg = config.Default()
	cfg.Objects = nil
	_, err = NewBuilder(fakegpu.New()).UseConfig(cfg).Build()
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestBuild_ExtraObjects(t *testing.T) {
	cfg := config.Default()
	cfg.Objects = nil
	quad := scene.Quad()

	a, err := NewBuilder(fakegpu.New()).UseConfig(cfg).UseObjects(quad).Build()
	require.NoError(t, err)
	assert.Same(t, quad, a.Catalogue().Current())
}

func TestBuild_AssetsObjects(t *testing.T) {
	fsys := fstest.MapFS{
		"big.ply":     {Data: []byte("ply\nelement vertex 3\nelement face 1\nend_header\n0 0 0\n10 0 0\n0 4 0\n3 0 1 2\n")},
		"checker.png": {Data: checkerPNG(t)},
	}
	cfg := config.Default()
	cfg.Camera.Kind = config.CameraPlanar
	cfg.Objects = []config.Object{
		{Kind: config.ObjectPLY, File: "big.ply", Scale: 1, TriangleNormals: true},
		{Kind: config.ObjectQuad, Texture: "checker.png", TexCoordGen: "object", Color: &[3]float32{1, 1, 1}, Scale: 0.5},
	}
	dev := fakegpu.New()
	a, err := NewBuilder(dev).UseConfig(cfg).UseAssets(fsys).Build()
	require.NoError(t, err)
	require.NoError(t, a.Start())

	fitted, ok := a.Catalogue().Current().(*scene.Node)
	require.True(t, ok)
	assert.Equal(t, "big", fitted.Name())
	lo := fitted.Transform.Mat4().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	hi := fitted.Transform.Mat4().Mul4x1(mgl32.Vec4{10, 4, 0, 1})
	assert.InDeltaSlice(t, []float32{-1, -0.4, 0, 1}, lo[:], 1e-5, "lo %v", lo)
	assert.InDeltaSlice(t, []float32{1, 0.4, 0, 1}, hi[:], 1e-5, "hi %v", hi)
	require.NoError(t, a.Frame(t0))
	assert.Equal(t, int32(0), dev.Ints[cauce.UniformUseTriangleNormals], "restored after drawing")

	a.Key('n')
	require.NoError(t, a.Frame(t0))
	textured, ok := a.Catalogue().Current().(*scene.Node)
	require.True(t, ok)
	require.NotNil(t, textured.Texture)
	assert.True(t, textured.Texture.Realized())
	assert.Equal(t, cauce.TexCoordsObject, textured.Texture.TexCoordGen())
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, textured.Transform.Scale)
	assert.Equal(t, int32(0), dev.Ints[cauce.UniformEvalTexture], "texture popped after drawing")
	assert.Len(t, dev.Draws, 2)
}

func TestBuild_SameFileObjectsKeepOwnSettings(t *testing.T) {
	fsys := fstest.MapFS{
		"m.ply": {Data: []byte("ply\nelement vertex 3\nelement face 1\nend_header\n0 0 0\n1 0 0\n0 1 0\n3 0 1 2\n")},
	}
	cfg := config.Default()
	cfg.Objects = []config.Object{
		{Kind: config.ObjectPLY, File: "m.ply", Scale: 1},
		{Kind: config.ObjectPLY, File: "m.ply", Scale: 1, TriangleNormals: true},
	}
	dev := fakegpu.New()
	a, err := NewBuilder(dev).UseConfig(cfg).UseAssets(fsys).Build()
	require.NoError(t, err)
	require.NoError(t, a.Start())

	meshOf := func(o scene.Object) *scene.MeshObject {
		n, ok := o.(*scene.Node)
		require.True(t, ok)
		require.Len(t, n.Children, 1)
		mo, ok := n.Children[0].(*scene.MeshObject)
		require.True(t, ok)
		return mo
	}
	first := meshOf(a.Catalogue().Current())
	second := meshOf(a.Catalogue().Next())

	assert.NotSame(t, first, second)
	assert.Same(t, first.Mesh, second.Mesh)
	assert.NotEqual(t, first.ID(), second.ID())
	assert.False(t, first.TriangleNormals)
	assert.True(t, second.TriangleNormals)

	require.NoError(t, a.Frame(t0))
	buffers := len(dev.Buffers)
	a.Catalogue().Next()
	require.NoError(t, a.Frame(t0))
	assert.Len(t, dev.Buffers, buffers, "the shared mesh is uploaded once")
}

func TestFrame_TextureDecodeFailure(t *testing.T) {
	fsys := fstest.MapFS{
		// A PNG signature with no image data sniffs as PNG but fails to decode.
		"broken.png": {Data: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x00")},
	}
	cfg := config.Default()
	cfg.Objects = []config.Object{{Kind: config.ObjectCube, Texture: "broken.png", Scale: 1}}
	a, err := NewBuilder(fakegpu.New()).UseConfig(cfg).UseAssets(fsys).Build()
	require.NoError(t, err)

	err = a.Frame(t0)

	assert.ErrorIs(t, err, cauce.ErrTexture)
	assert.NoError(t, a.Pipeline().Balanced())
	assert.Zero(t, a.Frames())
}
