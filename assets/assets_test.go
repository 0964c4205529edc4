package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/igmovil/cauce"
	"github.com/igmovil/cauce/internal/fakegpu"
)

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

// column is a 1x2 image, red on top of blue.
func column() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(0, 1, blue)
	return img
}

func encode(t *testing.T, enc func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, enc(&buf, column()))
	return buf.Bytes()
}

func pngBytes(t *testing.T) []byte {
	return encode(t, func(b *bytes.Buffer, img image.Image) error { return png.Encode(b, img) })
}

func bmpBytes(t *testing.T) []byte {
	return encode(t, func(b *bytes.Buffer, img image.Image) error { return bmp.Encode(b, img) })
}

func TestDecodeImage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		mime string
		err  error
	}{
		{name: "png", data: pngBytes(t), mime: "image/png"},
		{name: "bmp", data: bmpBytes(t), mime: "image/bmp"},
		{name: "text", data: []byte("ply\nformat ascii 1.0\n"), err: ErrNotImage},
		{name: "psd", data: append([]byte("8BPS"), make([]byte, 32)...), err: ErrImageFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, err := Sniff(tt.data)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				_, err = DecodeImage(tt.data)
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.mime, mime)

			img, err := DecodeImage(tt.data)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 1, 2), img.Bounds())
			assert.Equal(t, red, color.RGBAModel.Convert(img.At(0, 0)))
		})
	}
}

func TestFlipVertical(t *testing.T) {
	src := column()
	flipped := FlipVertical(src)

	assert.Equal(t, blue, flipped.RGBAAt(0, 0))
	assert.Equal(t, red, flipped.RGBAAt(0, 1))
	assert.Equal(t, red, src.RGBAAt(0, 0), "source must not change")
}

func TestFlipVertical_OffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 6, 8))
	src.SetRGBA(5, 5, red)

	flipped := FlipVertical(src)

	assert.Equal(t, image.Rect(0, 0, 1, 3), flipped.Bounds())
	assert.Equal(t, red, flipped.RGBAAt(0, 2))
}

func testFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"tex/column.png": {Data: pngBytes(t)},
		"tex/notes.txt":  {Data: []byte("not an image")},
		"models/tri.ply": {Data: []byte("ply\nformat ascii 1.0\ncomment made by hand\nelement vertex 3\nelement face 1\nend_header\n0 0 0\n1 0 0\n0 1 0\n3 0 1 2\n")},
	}
}

func TestServer_Texture(t *testing.T) {
	s := NewServer(testFS(t))

	tex, err := s.Texture("tex/column.png")
	require.NoError(t, err)
	again, err := s.Texture("tex/column.png")
	require.NoError(t, err)
	assert.Same(t, tex, again)
	assert.False(t, tex.Realized())

	dev := fakegpu.New()
	c := cauce.New(dev)
	require.NoError(t, c.Activate())
	require.NoError(t, c.SetTexture(tex))

	require.True(t, tex.Realized())
	uploaded := dev.Textures[tex.Handle()]
	require.NotNil(t, uploaded)
	assert.Equal(t, blue, uploaded.RGBAAt(0, 0))
	assert.Equal(t, red, uploaded.RGBAAt(0, 1))
}

func TestServer_TextureErrors(t *testing.T) {
	s := NewServer(testFS(t))

	_, err := s.Texture("tex/missing.png")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = s.Texture("tex/notes.txt")
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestServer_PLY(t *testing.T) {
	s := NewServer(testFS(t), WithLogger(nil))

	o, err := s.PLY("models/tri.ply")
	require.NoError(t, err)
	assert.Equal(t, "tri", o.Name())
	assert.Len(t, o.Mesh.Triangles, 1)

	o.TriangleNormals = true
	again, err := s.PLY("models/tri.ply")
	require.NoError(t, err)
	assert.NotSame(t, o, again)
	assert.Same(t, o.Mesh, again.Mesh)
	assert.NotEqual(t, o.ID(), again.ID())
	assert.False(t, again.TriangleNormals)

	_, err = s.PLY("models/none.ply")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
