package app

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/igmovil/cauce"
	"github.com/igmovil/cauce/assets"
	"github.com/igmovil/cauce/config"
	"github.com/igmovil/cauce/scene"
)

var errNoAssets = errors.New("app: object needs files but no assets were given")

// Generated texture coordinates map the [-1, 1] cube onto [0, 1].
var (
	genCoefsS = mgl32.Vec4{0.5, 0, 0, 0.5}
	genCoefsT = mgl32.Vec4{0, 0.5, 0, 0.5}
)

// buildObject turns one configured entry into a drawable. Entries with a
// scale, color or texture are wrapped in a node carrying the overrides, and
// PLY meshes are fitted into the [-1, 1] cube.
func buildObject(o config.Object, srv *assets.Server) (scene.Object, error) {
	var mo *scene.MeshObject
	fit := scene.Identity()
	switch o.Kind {
	case config.ObjectCube:
		mo = scene.Cube()
	case config.ObjectColoredCube:
		mo = scene.ColoredCube()
	case config.ObjectTetrahedron:
		mo = scene.Tetrahedron()
	case config.ObjectQuad:
		mo = scene.Quad()
	case config.ObjectPolygon:
		var err error
		if mo, err = scene.RegularPolygon(o.Sides); err != nil {
			return nil, err
		}
	case config.ObjectPLY:
		if srv == nil {
			return nil, errNoAssets
		}
		var err error
		if mo, err = srv.PLY(o.File); err != nil {
			return nil, err
		}
		fit = fitUnitCube(mo)
	default:
		return nil, config.ErrInvalid
	}
	if o.TriangleNormals {
		mo.TriangleNormals = true
	}

	fit.Scale = fit.Scale.Mul(o.Scale)
	fit.Position = fit.Position.Mul(o.Scale)
	if fit == scene.Identity() && o.Color == nil && o.Texture == "" {
		return mo, nil
	}

	n := scene.NewNode(mo.Name(), mo)
	n.Transform = fit
	if o.Color != nil {
		n.WithColor(mgl32.Vec3(*o.Color))
	}
	if o.Texture != "" {
		if srv == nil {
			return nil, errNoAssets
		}
		mode, err := o.TexCoordMode()
		if err != nil {
			return nil, err
		}
		opts := []cauce.TextureOption{}
		if mode != cauce.TexCoordsFromMesh {
			opts = append(opts, cauce.WithTexCoordGen(mode, genCoefsS, genCoefsT))
		}
		tex, err := srv.Texture(o.Texture, opts...)
		if err != nil {
			return nil, err
		}
		n.WithTexture(tex)
	}
	return n, nil
}

// fitUnitCube returns the transform that centers the mesh and scales its
// largest extent to 2.
func fitUnitCube(mo *scene.MeshObject) scene.Transform {
	t := scene.Identity()
	lo, hi := mo.Mesh.Bounds()
	size := hi.Sub(lo)
	extent := max(size.X(), size.Y(), size.Z())
	if extent == 0 {
		return t
	}
	s := 2 / extent
	t.Scale = mgl32.Vec3{s, s, s}
	t.Position = lo.Add(hi).Mul(-s / 2)
	return t
}
