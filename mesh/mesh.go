// Package mesh holds indexed triangle meshes and uploads them through the
// pipeline's buffer layer.
package mesh

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/mobile/exp/f32"

	"github.com/igmovil/cauce"
	"github.com/igmovil/cauce/ply"
)

var ErrInvalid = errors.New("mesh: invalid")

// Mesh is an indexed triangle mesh. Colors, Normals and TexCoords are
// optional; when present they have one entry per position.
//
// The tables are copied to the GPU on the first Draw. Later changes to the
// tables are not seen by the GPU.
type Mesh struct {
	Positions []mgl32.Vec3
	Colors    []mgl32.Vec3
	Normals   []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Triangles [][3]uint32

	// TriangleNormals is filled by ComputeNormals, one per triangle.
	TriangleNormals []mgl32.Vec3

	buffers *cauce.VertexBuffers
}

// FromPLY builds a mesh from parsed PLY tables and computes its normals.
func FromPLY(p *ply.Mesh) *Mesh {
	m := &Mesh{
		Positions: p.Positions,
		Triangles: p.Triangles,
	}
	m.ComputeNormals()
	return m
}

func (m *Mesh) VertexCount() int { return len(m.Positions) }

// Validate checks table lengths and index ranges.
func (m *Mesh) Validate() error {
	n := len(m.Positions)
	if n == 0 {
		return fmt.Errorf("%w: no vertices", ErrInvalid)
	}
	for _, t := range []struct {
		name string
		len  int
	}{
		{"colors", len(m.Colors)},
		{"normals", len(m.Normals)},
		{"texture coordinates", len(m.TexCoords)},
	} {
		if t.len != 0 && t.len != n {
			return fmt.Errorf("%w: %d %s for %d vertices", ErrInvalid, t.len, t.name, n)
		}
	}
	for i, tri := range m.Triangles {
		for _, idx := range tri {
			if int(idx) >= n {
				return fmt.Errorf("%w: triangle %d index %d out of range [0, %d)", ErrInvalid, i, idx, n)
			}
		}
	}
	return nil
}

// ComputeNormals sets TriangleNormals and replaces Normals with the
// normalized sum of the normals of the triangles around each vertex, each
// weighted by the triangle's area. Degenerate triangles contribute nothing.
// Triangle indices must be in range; see Validate.
func (m *Mesh) ComputeNormals() {
	m.TriangleNormals = make([]mgl32.Vec3, len(m.Triangles))
	normals := make([]mgl32.Vec3, len(m.Positions))
	for i, tri := range m.Triangles {
		p0, p1, p2 := m.Positions[tri[0]], m.Positions[tri[1]], m.Positions[tri[2]]
		cross := p1.Sub(p0).Cross(p2.Sub(p0))
		if cross.Len() == 0 {
			continue
		}
		m.TriangleNormals[i] = cross.Normalize()
		for _, idx := range tri {
			normals[idx] = normals[idx].Add(cross)
		}
	}
	for i, n := range normals {
		if n.Len() > 0 {
			normals[i] = n.Normalize()
		}
	}
	m.Normals = normals
}

// Bounds returns the corners of the axis-aligned box around the positions.
// Both are zero for an empty mesh.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Positions) == 0 {
		return lo, hi
	}
	lo, hi = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for i := range p {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	return lo, hi
}

func (m *Mesh) Uploaded() bool { return m.buffers != nil }

// Upload creates the GPU buffers. It is a no-op after the first success.
// When a buffer cannot be created the ones already made are released.
func (m *Mesh) Upload(c *cauce.Cauce) error {
	if m.buffers != nil {
		return nil
	}
	if err := m.Validate(); err != nil {
		return err
	}
	vb := &cauce.VertexBuffers{IndexCount: 3 * len(m.Triangles)}
	tables := []struct {
		dst    *cauce.BufferID
		target cauce.BufferTarget
		data   []byte
	}{
		{&vb.Positions, cauce.VertexBuffer, vec3Bytes(m.Positions)},
		{&vb.Colors, cauce.VertexBuffer, vec3Bytes(m.Colors)},
		{&vb.Normals, cauce.VertexBuffer, vec3Bytes(m.Normals)},
		{&vb.TexCoords, cauce.VertexBuffer, vec2Bytes(m.TexCoords)},
		{&vb.Indices, cauce.IndexBuffer, indexBytes(m.Triangles)},
	}
	for _, t := range tables {
		if len(t.data) == 0 {
			continue
		}
		id, err := c.CreateBuffer(t.target, t.data)
		if err != nil {
			c.DeleteBuffers(vb)
			return err
		}
		*t.dst = id
	}
	m.buffers = vb
	return nil
}

// Release deletes the GPU buffers; the next Draw uploads again.
func (m *Mesh) Release(c *cauce.Cauce) {
	if m.buffers == nil {
		return
	}
	c.DeleteBuffers(m.buffers)
	m.buffers = nil
}

// Draw uploads the mesh if needed and draws it with the pipeline's current
// state.
func (m *Mesh) Draw(c *cauce.Cauce) error {
	if err := m.Upload(c); err != nil {
		return err
	}
	c.DrawIndexed(m.buffers)
	return nil
}

func vec3Bytes(vs []mgl32.Vec3) []byte {
	flat := make([]float32, 0, 3*len(vs))
	for _, v := range vs {
		flat = append(flat, v[:]...)
	}
	return f32.Bytes(binary.LittleEndian, flat...)
}

func vec2Bytes(vs []mgl32.Vec2) []byte {
	flat := make([]float32, 0, 2*len(vs))
	for _, v := range vs {
		flat = append(flat, v[:]...)
	}
	return f32.Bytes(binary.LittleEndian, flat...)
}

func indexBytes(tris [][3]uint32) []byte {
	b := make([]byte, 0, 12*len(tris))
	for _, t := range tris {
		for _, idx := range t {
			b = binary.LittleEndian.AppendUint32(b, idx)
		}
	}
	return b
}
