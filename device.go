package cauce

import "image"

type (
	ProgramID uint32
	TextureID uint32
	BufferID  uint32
	// Location is a uniform location inside a linked program.
	Location int32
	// Attrib is a fixed vertex attribute slot.
	Attrib uint32
)

// InvalidLocation is returned for uniforms the program does not declare.
// Devices ignore uploads to it.
const InvalidLocation Location = -1

// Vertex attribute slots shared by the shaders and the mesh buffers.
const (
	AttribPosition Attrib = 0
	AttribColor    Attrib = 1
	AttribNormal   Attrib = 2
	AttribTexCoord Attrib = 3
)

type Capability int

const (
	CapDepthTest Capability = iota
	CapCullFace
)

type BufferTarget int

const (
	VertexBuffer BufferTarget = iota
	IndexBuffer
)

// Device is the subset of an OpenGL ES 3.0 context the pipeline drives.
// All methods are called from the rendering goroutine.
type Device interface {
	// CompileProgram compiles and links a program. A zero id is never
	// returned together with a nil error.
	CompileProgram(vertexSrc, fragmentSrc string) (ProgramID, error)
	UseProgram(p ProgramID)
	UniformLocation(p ProgramID, name string) Location

	Uniform1i(l Location, v int32)
	Uniform1f(l Location, v float32)
	Uniform3fv(l Location, v []float32)
	Uniform4fv(l Location, v []float32)
	// UniformMatrix4fv uploads one or more column-major 4x4 matrices.
	UniformMatrix4fv(l Location, m []float32)

	// VertexAttrib3f sets the constant value used by a disabled attribute.
	VertexAttrib3f(a Attrib, x, y, z float32)

	SetCapability(c Capability, enabled bool)
	Viewport(x, y, width, height int)
	Clear(r, g, b, a float32)

	CreateTexture(img *image.RGBA) (TextureID, error)
	BindTexture(t TextureID)

	CreateBuffer(target BufferTarget, data []byte) (BufferID, error)
	DeleteBuffer(b BufferID)
	// VertexAttribBuffer enables a float attribute array of size components
	// sourced from b.
	VertexAttribBuffer(a Attrib, b BufferID, size int)
	DisableVertexAttrib(a Attrib)
	// DrawTriangles draws count uint32 indices from the index buffer.
	DrawTriangles(indices BufferID, count int)
}
