package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/igmovil/cauce"
	"github.com/igmovil/cauce/mesh"
)

// cubeFaces lists each face normal with two in-face axes whose cross
// product is the normal, so corners walked in order are counter-clockwise
// seen from outside.
var cubeFaces = [6][3]mgl32.Vec3{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
}

var quadUV = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func faceCorners(face [3]mgl32.Vec3) [4]mgl32.Vec3 {
	n, u, v := face[0], face[1], face[2]
	return [4]mgl32.Vec3{
		n.Sub(u).Sub(v),
		n.Add(u).Sub(v),
		n.Add(u).Add(v),
		n.Sub(u).Add(v),
	}
}

// Cube is the [-1, 1] cube with four vertices per face, so each face has
// its own normals and texture coordinates.
func Cube() *MeshObject {
	m := &mesh.Mesh{}
	for _, face := range cubeFaces {
		first := uint32(len(m.Positions))
		for i, p := range faceCorners(face) {
			m.Positions = append(m.Positions, p)
			m.TexCoords = append(m.TexCoords, quadUV[i])
		}
		m.Triangles = append(m.Triangles,
			[3]uint32{first, first + 1, first + 2},
			[3]uint32{first, first + 2, first + 3})
	}
	m.ComputeNormals()
	return NewMeshObject("cube", m)
}

// ColoredCube is the [-1, 1] cube with shared corners, each colored by its
// position mapped to [0, 1].
func ColoredCube() *MeshObject {
	m := &mesh.Mesh{}
	for i := 0; i < 8; i++ {
		p := mgl32.Vec3{-1, -1, -1}
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				p[axis] = 1
			}
		}
		m.Positions = append(m.Positions, p)
		m.Colors = append(m.Colors, p.Add(mgl32.Vec3{1, 1, 1}).Mul(0.5))
	}
	for _, face := range cubeFaces {
		var idx [4]uint32
		for i, p := range faceCorners(face) {
			for axis := 0; axis < 3; axis++ {
				if p[axis] > 0 {
					idx[i] |= 1 << axis
				}
			}
		}
		m.Triangles = append(m.Triangles,
			[3]uint32{idx[0], idx[1], idx[2]},
			[3]uint32{idx[0], idx[2], idx[3]})
	}
	m.ComputeNormals()
	return NewMeshObject("colored cube", m)
}

// Tetrahedron is the regular tetrahedron inscribed in the [-1, 1] cube,
// shaded with triangle normals.
func Tetrahedron() *MeshObject {
	m := &mesh.Mesh{
		Positions: []mgl32.Vec3{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}},
	}
	for skip := 0; skip < 4; skip++ {
		var tri [3]uint32
		n := 0
		for i := 0; i < 4; i++ {
			if i != skip {
				tri[n] = uint32(i)
				n++
			}
		}
		m.Triangles = append(m.Triangles, outward(m.Positions, tri))
	}
	m.ComputeNormals()
	o := NewMeshObject("tetrahedron", m)
	o.TriangleNormals = true
	return o
}

// outward flips tri if its normal points toward the origin.
func outward(ps []mgl32.Vec3, tri [3]uint32) [3]uint32 {
	p0, p1, p2 := ps[tri[0]], ps[tri[1]], ps[tri[2]]
	if p1.Sub(p0).Cross(p2.Sub(p0)).Dot(p0) < 0 {
		tri[1], tri[2] = tri[2], tri[1]
	}
	return tri
}

// RegularPolygon is a flat polygon of unit radius in the XY plane facing +Z,
// triangulated as a fan around its center.
func RegularPolygon(sides int) (*MeshObject, error) {
	if sides < 3 {
		return nil, fmt.Errorf("%w: polygon with %d sides", mesh.ErrInvalid, sides)
	}
	m := &mesh.Mesh{
		Positions: []mgl32.Vec3{{0, 0, 0}},
		TexCoords: []mgl32.Vec2{{0.5, 0.5}},
	}
	for i := 0; i < sides; i++ {
		sin, cos := math32.Sincos(2 * math32.Pi * float32(i) / float32(sides))
		m.Positions = append(m.Positions, mgl32.Vec3{cos, sin, 0})
		m.TexCoords = append(m.TexCoords, mgl32.Vec2{(cos + 1) / 2, (sin + 1) / 2})
	}
	for i := 1; i <= sides; i++ {
		next := i%sides + 1
		m.Triangles = append(m.Triangles, [3]uint32{0, uint32(i), uint32(next)})
	}
	m.ComputeNormals()
	return NewMeshObject(fmt.Sprintf("polygon %d", sides), m), nil
}

// Quad is the [-1, 1] square in the XY plane facing +Z, with texture
// coordinates spanning [0, 1].
func Quad() *MeshObject {
	m := &mesh.Mesh{
		Positions: []mgl32.Vec3{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}},
		TexCoords: append([]mgl32.Vec2(nil), quadUV[:]...),
		Triangles: [][3]uint32{{0, 1, 2}, {0, 2, 3}},
	}
	m.ComputeNormals()
	return NewMeshObject("quad", m)
}

// TexturedQuad is a Quad drawn with tex and a white base color.
func TexturedQuad(tex *cauce.Texture) *Node {
	return NewNode("textured quad", Quad()).
		WithColor(mgl32.Vec3{1, 1, 1}).
		WithTexture(tex)
}
