// Package fakegpu provides a recording cauce.Device for tests.
package fakegpu

import (
	"errors"
	"image"

	"github.com/igmovil/cauce"
)

// Draw is one recorded DrawTriangles call with the attribute state at the
// time of the call.
type Draw struct {
	Indices    cauce.BufferID
	Count      int
	Attribs    map[cauce.Attrib]cauce.BufferID
	ConstColor [3]float32
}

// Device records every call. Uniform values are kept by name.
type Device struct {
	// CompileErr makes CompileProgram fail.
	CompileErr error
	// Missing lists uniforms the fake program does not declare.
	Missing map[string]bool
	// TextureErr makes CreateTexture fail.
	TextureErr error
	// BufferErr makes CreateBuffer fail once BuffersBeforeErr buffers have
	// been created.
	BufferErr        error
	BuffersBeforeErr int

	Compiles int
	Program  cauce.ProgramID
	Current  cauce.ProgramID

	Ints   map[string]int32
	Floats map[string]float32
	Vecs   map[string][]float32
	Mats   map[string][]float32

	ConstAttribs map[cauce.Attrib][3]float32
	Caps         map[cauce.Capability]bool
	ViewportRect [4]int
	ClearColor   [4]float32
	Clears       int

	Textures     map[cauce.TextureID]*image.RGBA
	BoundTexture cauce.TextureID

	Buffers map[cauce.BufferID][]byte
	Targets map[cauce.BufferID]cauce.BufferTarget
	Deleted []cauce.BufferID
	attribs map[cauce.Attrib]cauce.BufferID
	created int
	Draws   []Draw

	locs   map[string]cauce.Location
	names  map[cauce.Location]string
	nextID uint32
}

func New() *Device {
	return &Device{
		Missing:      map[string]bool{},
		Ints:         map[string]int32{},
		Floats:       map[string]float32{},
		Vecs:         map[string][]float32{},
		Mats:         map[string][]float32{},
		ConstAttribs: map[cauce.Attrib][3]float32{},
		Caps:         map[cauce.Capability]bool{},
		Textures:     map[cauce.TextureID]*image.RGBA{},
		Buffers:      map[cauce.BufferID][]byte{},
		Targets:      map[cauce.BufferID]cauce.BufferTarget{},
		attribs:      map[cauce.Attrib]cauce.BufferID{},
		locs:         map[string]cauce.Location{},
		names:        map[cauce.Location]string{},
	}
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Device) CompileProgram(vertexSrc, fragmentSrc string) (cauce.ProgramID, error) {
	d.Compiles++
	if d.CompileErr != nil {
		return 0, d.CompileErr
	}
	if vertexSrc == "" || fragmentSrc == "" {
		return 0, errors.New("empty shader source")
	}
	d.Program = cauce.ProgramID(d.id())
	return d.Program, nil
}

func (d *Device) UseProgram(p cauce.ProgramID) { d.Current = p }

func (d *Device) UniformLocation(p cauce.ProgramID, name string) cauce.Location {
	if d.Missing[name] {
		return cauce.InvalidLocation
	}
	if l, ok := d.locs[name]; ok {
		return l
	}
	l := cauce.Location(len(d.locs))
	d.locs[name] = l
	d.names[l] = name
	return l
}

// name resolves a location; ok is false for the invalid location, which a
// real device ignores.
func (d *Device) name(l cauce.Location) (string, bool) {
	n, ok := d.names[l]
	return n, ok
}

func (d *Device) Uniform1i(l cauce.Location, v int32) {
	if n, ok := d.name(l); ok {
		d.Ints[n] = v
	}
}

func (d *Device) Uniform1f(l cauce.Location, v float32) {
	if n, ok := d.name(l); ok {
		d.Floats[n] = v
	}
}

func (d *Device) Uniform3fv(l cauce.Location, v []float32) {
	if n, ok := d.name(l); ok {
		d.Vecs[n] = append([]float32(nil), v...)
	}
}

func (d *Device) Uniform4fv(l cauce.Location, v []float32) {
	if n, ok := d.name(l); ok {
		d.Vecs[n] = append([]float32(nil), v...)
	}
}

func (d *Device) UniformMatrix4fv(l cauce.Location, m []float32) {
	if n, ok := d.name(l); ok {
		d.Mats[n] = append([]float32(nil), m...)
	}
}

func (d *Device) VertexAttrib3f(a cauce.Attrib, x, y, z float32) {
	d.ConstAttribs[a] = [3]float32{x, y, z}
}

func (d *Device) SetCapability(c cauce.Capability, enabled bool) { d.Caps[c] = enabled }

func (d *Device) Viewport(x, y, width, height int) {
	d.ViewportRect = [4]int{x, y, width, height}
}

func (d *Device) Clear(r, g, b, a float32) {
	d.ClearColor = [4]float32{r, g, b, a}
	d.Clears++
}

func (d *Device) CreateTexture(img *image.RGBA) (cauce.TextureID, error) {
	if d.TextureErr != nil {
		return 0, d.TextureErr
	}
	id := cauce.TextureID(d.id())
	d.Textures[id] = img
	return id, nil
}

func (d *Device) BindTexture(t cauce.TextureID) { d.BoundTexture = t }

func (d *Device) CreateBuffer(target cauce.BufferTarget, data []byte) (cauce.BufferID, error) {
	if d.BufferErr != nil && d.created >= d.BuffersBeforeErr {
		return 0, d.BufferErr
	}
	d.created++
	id := cauce.BufferID(d.id())
	d.Buffers[id] = append([]byte(nil), data...)
	d.Targets[id] = target
	return id, nil
}

func (d *Device) DeleteBuffer(b cauce.BufferID) {
	delete(d.Buffers, b)
	delete(d.Targets, b)
	d.Deleted = append(d.Deleted, b)
}

func (d *Device) VertexAttribBuffer(a cauce.Attrib, b cauce.BufferID, size int) {
	d.attribs[a] = b
}

func (d *Device) DisableVertexAttrib(a cauce.Attrib) { delete(d.attribs, a) }

func (d *Device) DrawTriangles(indices cauce.BufferID, count int) {
	attribs := make(map[cauce.Attrib]cauce.BufferID, len(d.attribs))
	for a, b := range d.attribs {
		attribs[a] = b
	}
	d.Draws = append(d.Draws, Draw{
		Indices:    indices,
		Count:      count,
		Attribs:    attribs,
		ConstColor: d.ConstAttribs[cauce.AttribColor],
	})
}

// Mat returns the last matrix uploaded to the named uniform.
func (d *Device) Mat(name string) [16]float32 {
	var m [16]float32
	copy(m[:], d.Mats[name])
	return m
}

var _ cauce.Device = (*Device)(nil)
