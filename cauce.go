// Package cauce is a render-state pipeline for a single OpenGL ES 3.0 shader
// program.
//
// A Cauce owns every value fed to the program as a uniform or constant
// vertex attribute: the model, view and projection matrices, the flat color,
// the material, the texture, the light collection and a few evaluation
// flags. Each setter updates the live state and uploads it immediately.
// Color, model matrix, material, texture and light collection also have
// save/restore stacks so a composite object can override state for its parts
// and put it back:
//
//	c.PushModelMatrix()
//	c.ComposeModelMatrix(mgl32.Translate3D(0, 1, 0))
//	part.Visualize(c)
//	c.PopModelMatrix()
//
// The pipeline is created once per GPU context and used from the rendering
// goroutine only. It is not safe for concurrent use.
package cauce

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/igmovil/cauce/shaders"
)

type Cauce struct {
	dev  Device
	log  Logger
	prog *shaderProgram

	vertexSrc, fragmentSrc string
	background             mgl32.Vec4

	modelMat  mgl32.Mat4
	normalMat mgl32.Mat4
	viewMat   mgl32.Mat4
	projMat   mgl32.Mat4

	color         mgl32.Vec3
	material      Material
	texture       *Texture
	lights        LightCollection
	paramS        float32
	useTriNormals bool
	depthTest     bool
	cullFace      bool

	colorStack    stack[mgl32.Vec3]
	modelStack    stack[mgl32.Mat4]
	materialStack stack[Material]
	textureStack  stack[*Texture]
	lightsStack   stack[LightCollection]
}

type Option func(*Cauce)

func WithLogger(l Logger) Option {
	return func(c *Cauce) { c.log = OrNop(l) }
}

// WithBackground sets the color InitializeViewport clears to.
func WithBackground(rgba mgl32.Vec4) Option {
	return func(c *Cauce) { c.background = rgba }
}

// WithShaderSources replaces the embedded GLSL sources. The replacement must
// declare the same uniforms and attribute locations.
func WithShaderSources(vertex, fragment string) Option {
	return func(c *Cauce) {
		c.vertexSrc = vertex
		c.fragmentSrc = fragment
	}
}

// New returns an uninitialized pipeline bound to dev. Activate must be
// called before any other operation.
func New(dev Device, opts ...Option) *Cauce {
	c := &Cauce{
		dev:         dev,
		log:         NewNopLogger(),
		vertexSrc:   shaders.VertexGLSL,
		fragmentSrc: shaders.FragmentGLSL,
		background:  mgl32.Vec4{0.1, 0.1, 0.1, 1.0},

		modelMat:  mgl32.Ident4(),
		normalMat: mgl32.Ident4(),
		viewMat:   mgl32.Ident4(),
		projMat:   mgl32.Ident4(),
		color:     mgl32.Vec3{0.7, 0.7, 0.7},
		material:  DefaultMaterial(),

		colorStack:    stack[mgl32.Vec3]{name: "color"},
		modelStack:    stack[mgl32.Mat4]{name: "model matrix"},
		materialStack: stack[Material]{name: "material"},
		textureStack:  stack[*Texture]{name: "texture"},
		lightsStack:   stack[LightCollection]{name: "light collection"},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Activate compiles and links the program on the first call and makes it
// current. Later calls only make it current again.
func (c *Cauce) Activate() error {
	if c.prog == nil {
		p, err := compileProgram(c.dev, c.log, c.vertexSrc, c.fragmentSrc)
		if err != nil {
			c.log.Errorf("activate: %v", err)
			return err
		}
		c.prog = p
		c.dev.UseProgram(p.id)
		c.uploadAll()
		return nil
	}
	c.dev.UseProgram(c.prog.id)
	return nil
}

// Ready reports whether Activate has linked the program.
func (c *Cauce) Ready() bool { return c.prog != nil }

// uploadAll pushes the whole live state to a freshly linked program.
func (c *Cauce) uploadAll() {
	p := c.prog
	c.uploadMatrix(p.modelMat, c.modelMat)
	c.uploadMatrix(p.normalMat, c.normalMat)
	c.uploadMatrix(p.viewMat, c.viewMat)
	c.uploadMatrix(p.projMat, c.projMat)
	c.dev.VertexAttrib3f(AttribColor, c.color[0], c.color[1], c.color[2])
	c.uploadMaterial()
	c.dev.Uniform1f(p.paramS, c.paramS)
	c.dev.Uniform1i(p.useTriNormals, boolToInt(c.useTriNormals))
	c.dev.Uniform1i(p.evalLighting, 0)
	c.dev.Uniform1i(p.numLights, 0)
	c.dev.Uniform1i(p.evalTexture, 0)
	c.dev.Uniform1i(p.texGen, int32(TexCoordsFromMesh))
}

func (c *Cauce) uploadMatrix(l Location, m mgl32.Mat4) {
	c.dev.UniformMatrix4fv(l, m[:])
}

// InitializeViewport sets the viewport rectangle and clears the color and
// depth buffers to the background color.
func (c *Cauce) InitializeViewport(x, y, width, height int) {
	c.ready("InitializeViewport")
	c.dev.Viewport(x, y, width, height)
	bg := c.background
	c.dev.Clear(bg[0], bg[1], bg[2], bg[3])
}

// SetRasterizationDefaults enables depth testing and disables face culling.
func (c *Cauce) SetRasterizationDefaults() {
	c.ready("SetRasterizationDefaults")
	c.depthTest = true
	c.cullFace = false
	c.dev.SetCapability(CapDepthTest, true)
	c.dev.SetCapability(CapCullFace, false)
}

func (c *Cauce) DepthTest() bool { return c.depthTest }
func (c *Cauce) CullFace() bool  { return c.cullFace }

// ResetMatrices sets the model, view and projection matrices to identity.
// Called at the start of each frame.
func (c *Cauce) ResetMatrices() {
	p := c.ready("ResetMatrices")
	c.viewMat = mgl32.Ident4()
	c.projMat = mgl32.Ident4()
	c.uploadMatrix(p.viewMat, c.viewMat)
	c.uploadMatrix(p.projMat, c.projMat)
	c.ResetModelMatrix()
}

func (c *Cauce) SetViewMatrix(m mgl32.Mat4) {
	p := c.ready("SetViewMatrix")
	c.viewMat = m
	c.uploadMatrix(p.viewMat, m)
}

func (c *Cauce) SetProjectionMatrix(m mgl32.Mat4) {
	p := c.ready("SetProjectionMatrix")
	c.projMat = m
	c.uploadMatrix(p.projMat, m)
}

// SetModelMatrix replaces the model matrix and recomputes the normal matrix
// as the inverse transpose of its upper 3x3 block.
func (c *Cauce) SetModelMatrix(m mgl32.Mat4) {
	p := c.ready("SetModelMatrix")
	nor, ok := NormalMatrix(m)
	if !ok {
		c.log.Debugf("singular model matrix, normal matrix uses the model block")
	}
	c.modelMat = m
	c.normalMat = nor
	c.uploadMatrix(p.modelMat, m)
	c.uploadMatrix(p.normalMat, nor)
}

func (c *Cauce) ResetModelMatrix() {
	c.SetModelMatrix(mgl32.Ident4())
}

// ComposeModelMatrix right-multiplies the current model matrix by m.
func (c *Cauce) ComposeModelMatrix(m mgl32.Mat4) {
	c.ready("ComposeModelMatrix")
	c.SetModelMatrix(c.modelMat.Mul4(m))
}

func (c *Cauce) PushModelMatrix() {
	c.ready("PushModelMatrix")
	c.modelStack.push(c.modelMat)
}

func (c *Cauce) PopModelMatrix() {
	c.ready("PopModelMatrix")
	c.SetModelMatrix(popTop(c, &c.modelStack))
}

func (c *Cauce) ModelMatrix() mgl32.Mat4      { return c.modelMat }
func (c *Cauce) NormalMatrix() mgl32.Mat4     { return c.normalMat }
func (c *Cauce) ViewMatrix() mgl32.Mat4       { return c.viewMat }
func (c *Cauce) ProjectionMatrix() mgl32.Mat4 { return c.projMat }

// NormalMatrix returns the inverse transpose of the upper 3x3 block of m,
// widened to a 4x4 matrix. When that block is singular it returns the block
// itself and false.
func NormalMatrix(m mgl32.Mat4) (mgl32.Mat4, bool) {
	m3 := m.Mat3()
	if det := m3.Det(); det > -1e-12 && det < 1e-12 {
		return m3.Mat4(), false
	}
	return m3.Inv().Transpose().Mat4(), true
}

// Balanced returns an error naming every stack that still holds entries.
// Drivers call it at the end of a frame to catch a missing pop.
func (c *Cauce) Balanced() error {
	var open []string
	for _, s := range []struct {
		name string
		n    int
	}{
		{c.colorStack.name, c.colorStack.len()},
		{c.modelStack.name, c.modelStack.len()},
		{c.materialStack.name, c.materialStack.len()},
		{c.textureStack.name, c.textureStack.len()},
		{c.lightsStack.name, c.lightsStack.len()},
	} {
		if s.n > 0 {
			open = append(open, fmt.Sprintf("%s (%d)", s.name, s.n))
		}
	}
	if len(open) > 0 {
		return fmt.Errorf("%w: %s", ErrUnbalanced, strings.Join(open, ", "))
	}
	return nil
}
