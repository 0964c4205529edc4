// Package scene holds the drawable objects the viewer cycles through.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/igmovil/cauce"
	"github.com/igmovil/cauce/mesh"
)

// Object is anything that can draw itself with the pipeline's current
// state. Visualize must leave every pipeline stack as it found it.
type Object interface {
	ID() uuid.UUID
	Name() string
	Visualize(c *cauce.Cauce) error
}

type base struct {
	id   uuid.UUID
	name string
}

func newBase(name string) base { return base{id: uuid.New(), name: name} }

func (b base) ID() uuid.UUID { return b.id }
func (b base) Name() string  { return b.name }

// MeshObject draws a single mesh.
type MeshObject struct {
	base
	Mesh *mesh.Mesh

	// TriangleNormals shades with one normal per triangle instead of the
	// interpolated vertex normals.
	TriangleNormals bool
}

func NewMeshObject(name string, m *mesh.Mesh) *MeshObject {
	return &MeshObject{base: newBase(name), Mesh: m}
}

func (o *MeshObject) Visualize(c *cauce.Cauce) error {
	if o.TriangleNormals != c.UseTriangleNormals() {
		prev := c.UseTriangleNormals()
		c.SetUseTriangleNormals(o.TriangleNormals)
		defer c.SetUseTriangleNormals(prev)
	}
	return o.Mesh.Draw(c)
}

// Transform is a local transform applied as T * R * S.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func Identity() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (t Transform) Mat4() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(t.Rotation.Mat4()).Mul4(scale)
}
