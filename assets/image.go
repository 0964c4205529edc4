package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

var (
	ErrNotImage    = errors.New("assets: not an image")
	ErrImageFormat = errors.New("assets: unsupported image format")
)

var decoders = map[string]func(*bytes.Reader) (image.Image, error){
	"image/png":  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
	"image/jpeg": func(r *bytes.Reader) (image.Image, error) { return jpeg.Decode(r) },
	"image/gif":  func(r *bytes.Reader) (image.Image, error) { return gif.Decode(r) },
	"image/bmp":  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
	"image/webp": func(r *bytes.Reader) (image.Image, error) { return webp.Decode(r) },
	"image/tiff": func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
}

// Sniff reports the MIME type of an image from its leading bytes.
func Sniff(data []byte) (string, error) {
	if !filetype.IsImage(data) {
		return "", ErrNotImage
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return "", err
	}
	if _, ok := decoders[kind.MIME.Value]; !ok {
		return "", fmt.Errorf("%w: %s", ErrImageFormat, kind.MIME.Value)
	}
	return kind.MIME.Value, nil
}

// DecodeImage decodes data by its sniffed type.
func DecodeImage(data []byte) (image.Image, error) {
	mime, err := Sniff(data)
	if err != nil {
		return nil, err
	}
	img, err := decoders[mime](bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", mime, err)
	}
	return img, nil
}

// FlipVertical returns an RGBA copy of img with the rows in reverse order,
// putting the first row at the bottom as GL texture coordinates expect.
func FlipVertical(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	stride := dst.Stride
	row := make([]byte, stride)
	for top, bottom := 0, b.Dy()-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := dst.Pix[top*stride : (top+1)*stride]
		u := dst.Pix[bottom*stride : (bottom+1)*stride]
		copy(row, t)
		copy(t, u)
		copy(u, row)
	}
	return dst
}
