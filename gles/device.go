// Package gles implements cauce.Device over a golang.org/x/mobile/gl
// context.
package gles

import (
	"fmt"
	"image"

	"golang.org/x/mobile/exp/gl/glutil"
	"golang.org/x/mobile/gl"

	"github.com/igmovil/cauce"
)

// Device issues every call on ctx. Like the context it must be used from
// the goroutine the context is bound to.
type Device struct {
	ctx      gl.Context
	programs map[cauce.ProgramID]gl.Program
}

var _ cauce.Device = (*Device)(nil)

func New(ctx gl.Context) *Device {
	return &Device{ctx: ctx, programs: map[cauce.ProgramID]gl.Program{}}
}

func (d *Device) CompileProgram(vertexSrc, fragmentSrc string) (cauce.ProgramID, error) {
	p, err := glutil.CreateProgram(d.ctx, vertexSrc, fragmentSrc)
	if err != nil {
		return 0, err
	}
	if p.Value == 0 {
		return 0, fmt.Errorf("gles: driver returned program 0")
	}
	id := cauce.ProgramID(p.Value)
	d.programs[id] = p
	return id, nil
}

func (d *Device) UseProgram(p cauce.ProgramID) { d.ctx.UseProgram(d.programs[p]) }

func (d *Device) UniformLocation(p cauce.ProgramID, name string) cauce.Location {
	return cauce.Location(d.ctx.GetUniformLocation(d.programs[p], name).Value)
}

func uniform(l cauce.Location) gl.Uniform { return gl.Uniform{Value: int32(l)} }

func attrib(a cauce.Attrib) gl.Attrib { return gl.Attrib{Value: uint(a)} }

func (d *Device) Uniform1i(l cauce.Location, v int32) {
	if l != cauce.InvalidLocation {
		d.ctx.Uniform1i(uniform(l), int(v))
	}
}

func (d *Device) Uniform1f(l cauce.Location, v float32) {
	if l != cauce.InvalidLocation {
		d.ctx.Uniform1f(uniform(l), v)
	}
}

func (d *Device) Uniform3fv(l cauce.Location, v []float32) {
	if l != cauce.InvalidLocation && len(v) > 0 {
		d.ctx.Uniform3fv(uniform(l), v)
	}
}

func (d *Device) Uniform4fv(l cauce.Location, v []float32) {
	if l != cauce.InvalidLocation && len(v) > 0 {
		d.ctx.Uniform4fv(uniform(l), v)
	}
}

func (d *Device) UniformMatrix4fv(l cauce.Location, m []float32) {
	if l != cauce.InvalidLocation {
		d.ctx.UniformMatrix4fv(uniform(l), m)
	}
}

func (d *Device) VertexAttrib3f(a cauce.Attrib, x, y, z float32) {
	d.ctx.VertexAttrib3f(attrib(a), x, y, z)
}

func (d *Device) SetCapability(c cauce.Capability, enabled bool) {
	var capability gl.Enum
	switch c {
	case cauce.CapDepthTest:
		capability = gl.DEPTH_TEST
	case cauce.CapCullFace:
		capability = gl.CULL_FACE
	default:
		return
	}
	if enabled {
		d.ctx.Enable(capability)
	} else {
		d.ctx.Disable(capability)
	}
}

func (d *Device) Viewport(x, y, width, height int) { d.ctx.Viewport(x, y, width, height) }

func (d *Device) Clear(r, g, b, a float32) {
	d.ctx.ClearColor(r, g, b, a)
	d.ctx.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// CreateTexture uploads img as a mipmapped, repeating RGBA texture bound to
// unit 0.
func (d *Device) CreateTexture(img *image.RGBA) (cauce.TextureID, error) {
	b := img.Bounds()
	if b.Empty() {
		return 0, fmt.Errorf("gles: empty image")
	}
	t := d.ctx.CreateTexture()
	d.ctx.ActiveTexture(gl.TEXTURE0)
	d.ctx.BindTexture(gl.TEXTURE_2D, t)
	d.ctx.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, b.Dx(), b.Dy(), gl.RGBA, gl.UNSIGNED_BYTE, img.Pix)
	d.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	d.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	d.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	d.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	d.ctx.GenerateMipmap(gl.TEXTURE_2D)
	if err := d.ctx.GetError(); err != gl.NO_ERROR {
		d.ctx.DeleteTexture(t)
		return 0, fmt.Errorf("gles: create texture: error 0x%x", uint32(err))
	}
	return cauce.TextureID(t.Value), nil
}

func (d *Device) BindTexture(t cauce.TextureID) {
	d.ctx.ActiveTexture(gl.TEXTURE0)
	d.ctx.BindTexture(gl.TEXTURE_2D, gl.Texture{Value: uint32(t)})
}

func target(t cauce.BufferTarget) gl.Enum {
	if t == cauce.IndexBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func (d *Device) CreateBuffer(t cauce.BufferTarget, data []byte) (cauce.BufferID, error) {
	buf := d.ctx.CreateBuffer()
	d.ctx.BindBuffer(target(t), buf)
	d.ctx.BufferData(target(t), data, gl.STATIC_DRAW)
	if err := d.ctx.GetError(); err != gl.NO_ERROR {
		d.ctx.DeleteBuffer(buf)
		return 0, fmt.Errorf("gles: create buffer: error 0x%x", uint32(err))
	}
	return cauce.BufferID(buf.Value), nil
}

func (d *Device) DeleteBuffer(b cauce.BufferID) {
	d.ctx.DeleteBuffer(gl.Buffer{Value: uint32(b)})
}

func (d *Device) VertexAttribBuffer(a cauce.Attrib, b cauce.BufferID, size int) {
	d.ctx.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{Value: uint32(b)})
	d.ctx.EnableVertexAttribArray(attrib(a))
	d.ctx.VertexAttribPointer(attrib(a), size, gl.FLOAT, false, 0, 0)
}

func (d *Device) DisableVertexAttrib(a cauce.Attrib) { d.ctx.DisableVertexAttribArray(attrib(a)) }

func (d *Device) DrawTriangles(indices cauce.BufferID, count int) {
	d.ctx.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gl.Buffer{Value: uint32(indices)})
	d.ctx.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, 0)
}
