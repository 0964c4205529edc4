package cauce

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SetColor sets the flat color used by meshes without a color table.
func (c *Cauce) SetColor(rgb mgl32.Vec3) {
	c.ready("SetColor")
	c.color = rgb
	c.dev.VertexAttrib3f(AttribColor, rgb[0], rgb[1], rgb[2])
}

func (c *Cauce) PushColor() {
	c.ready("PushColor")
	c.colorStack.push(c.color)
}

func (c *Cauce) PopColor() {
	c.ready("PopColor")
	c.SetColor(popTop(c, &c.colorStack))
}

func (c *Cauce) Color() mgl32.Vec3 { return c.color }

func (c *Cauce) SetMaterial(m Material) {
	c.ready("SetMaterial")
	c.material = m
	c.uploadMaterial()
}

func (c *Cauce) uploadMaterial() {
	p := c.prog
	c.dev.Uniform1f(p.ka, c.material.ka)
	c.dev.Uniform1f(p.kd, c.material.kd)
	c.dev.Uniform1f(p.ks, c.material.ks)
	c.dev.Uniform1f(p.exp, c.material.exp)
}

func (c *Cauce) PushMaterial() {
	c.ready("PushMaterial")
	c.materialStack.push(c.material)
}

func (c *Cauce) PopMaterial() {
	c.ready("PopMaterial")
	c.SetMaterial(popTop(c, &c.materialStack))
}

func (c *Cauce) Material() Material { return c.material }

// SetTexture binds t and enables texturing, creating the GPU texture the
// first time t is used. A nil t disables texturing. On error the pipeline
// state is left unchanged.
func (c *Cauce) SetTexture(t *Texture) error {
	p := c.ready("SetTexture")
	if t == nil {
		c.texture = nil
		c.dev.Uniform1i(p.evalTexture, 0)
		return nil
	}
	if err := t.realize(c.dev); err != nil {
		c.log.Errorf("set texture: %v", err)
		return err
	}
	c.texture = t
	c.dev.BindTexture(t.handle)
	c.dev.Uniform1i(p.evalTexture, 1)
	c.dev.Uniform1i(p.texGen, int32(t.gen))
	c.dev.Uniform4fv(p.coefsS, t.coefsS[:])
	c.dev.Uniform4fv(p.coefsT, t.coefsT[:])
	return nil
}

func (c *Cauce) PushTexture() {
	c.ready("PushTexture")
	c.textureStack.push(c.texture)
}

// PopTexture restores the texture saved by the matching PushTexture.
func (c *Cauce) PopTexture() error {
	c.ready("PopTexture")
	return c.SetTexture(popTop(c, &c.textureStack))
}

func (c *Cauce) Texture() *Texture { return c.texture }

func (c *Cauce) TexturingEnabled() bool { return c.texture != nil }

// SetLightCollection transforms every light into eye space with the current
// view matrix, uploads them and enables lighting. A nil collection disables
// lighting. The view matrix must be set before the lights.
func (c *Cauce) SetLightCollection(lc LightCollection) {
	p := c.ready("SetLightCollection")
	if lc == nil {
		c.lights = nil
		c.dev.Uniform1i(p.evalLighting, 0)
		return
	}
	if err := lc.checkSize(); err != nil {
		c.fail(err)
	}
	posDir, colors := lc.eyeSpace(c.viewMat)
	c.lights = lc
	c.dev.Uniform1i(p.numLights, int32(len(lc)))
	c.dev.Uniform4fv(p.lightPosDir, posDir)
	c.dev.Uniform3fv(p.lightColor, colors)
	c.dev.Uniform1i(p.evalLighting, 1)
}

func (c *Cauce) PushLightCollection() {
	c.ready("PushLightCollection")
	c.lightsStack.push(c.lights)
}

func (c *Cauce) PopLightCollection() {
	c.ready("PopLightCollection")
	c.SetLightCollection(popTop(c, &c.lightsStack))
}

func (c *Cauce) LightCollection() LightCollection { return c.lights }

func (c *Cauce) LightingEnabled() bool { return c.lights != nil }

// SetParamS uploads the S parameter. Range checks belong to the caller.
func (c *Cauce) SetParamS(s float32) {
	p := c.ready("SetParamS")
	c.paramS = s
	c.dev.Uniform1f(p.paramS, s)
}

func (c *Cauce) ParamS() float32 { return c.paramS }

// SetUseTriangleNormals switches the fragment shader between interpolated
// vertex normals and per-triangle normals.
func (c *Cauce) SetUseTriangleNormals(on bool) {
	p := c.ready("SetUseTriangleNormals")
	c.useTriNormals = on
	c.dev.Uniform1i(p.useTriNormals, boolToInt(on))
}

func (c *Cauce) UseTriangleNormals() bool { return c.useTriNormals }
