package cauce

import "fmt"

// VertexBuffers are the GPU buffers of one indexed triangle mesh. A zero
// attribute buffer means the mesh has no such table.
type VertexBuffers struct {
	Positions BufferID
	Colors    BufferID
	Normals   BufferID
	TexCoords BufferID

	Indices    BufferID
	IndexCount int
}

func (c *Cauce) CreateBuffer(target BufferTarget, data []byte) (BufferID, error) {
	c.ready("CreateBuffer")
	id, err := c.dev.CreateBuffer(target, data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuffer, err)
	}
	if id == 0 {
		return 0, fmt.Errorf("%w: device returned a zero handle", ErrBuffer)
	}
	return id, nil
}

// DeleteBuffers releases every buffer of vb and zeroes its handles.
func (c *Cauce) DeleteBuffers(vb *VertexBuffers) {
	c.ready("DeleteBuffers")
	if vb == nil {
		return
	}
	for _, b := range []*BufferID{&vb.Positions, &vb.Colors, &vb.Normals, &vb.TexCoords, &vb.Indices} {
		if *b != 0 {
			c.dev.DeleteBuffer(*b)
			*b = 0
		}
	}
	vb.IndexCount = 0
}

// DrawIndexed draws vb with the current state. Attributes without a buffer
// are disabled; a missing color table falls back to the current color.
func (c *Cauce) DrawIndexed(vb *VertexBuffers) {
	c.ready("DrawIndexed")
	if vb == nil || vb.Indices == 0 || vb.IndexCount == 0 {
		return
	}
	c.bindAttrib(AttribPosition, vb.Positions, 3)
	c.bindAttrib(AttribColor, vb.Colors, 3)
	c.bindAttrib(AttribNormal, vb.Normals, 3)
	c.bindAttrib(AttribTexCoord, vb.TexCoords, 2)
	if vb.Colors == 0 {
		c.dev.VertexAttrib3f(AttribColor, c.color[0], c.color[1], c.color[2])
	}
	c.dev.DrawTriangles(vb.Indices, vb.IndexCount)
}

func (c *Cauce) bindAttrib(a Attrib, b BufferID, size int) {
	if b == 0 {
		c.dev.DisableVertexAttrib(a)
		return
	}
	c.dev.VertexAttribBuffer(a, b, size)
}
