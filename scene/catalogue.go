package scene

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/igmovil/cauce/mesh"
	"github.com/igmovil/cauce/ply"
)

// Catalogue is the ordered list of objects the viewer shows one at a time.
type Catalogue struct {
	objects []Object
	current int
}

func NewCatalogue(objects ...Object) *Catalogue {
	return &Catalogue{objects: objects}
}

func (c *Catalogue) Add(objects ...Object) { c.objects = append(c.objects, objects...) }

func (c *Catalogue) Len() int { return len(c.objects) }

// Current returns the selected object, or nil when the catalogue is empty.
func (c *Catalogue) Current() Object {
	if len(c.objects) == 0 {
		return nil
	}
	return c.objects[c.current]
}

// Next selects the following object, wrapping around, and returns it.
func (c *Catalogue) Next() Object {
	if len(c.objects) == 0 {
		return nil
	}
	c.current = (c.current + 1) % len(c.objects)
	return c.objects[c.current]
}

// Select makes the object with the given id current.
func (c *Catalogue) Select(id uuid.UUID) bool {
	for i, o := range c.objects {
		if o.ID() == id {
			c.current = i
			return true
		}
	}
	return false
}

// LoadPLY parses the ASCII PLY file name in fsys into a mesh object named
// after the file.
func LoadPLY(fsys fs.FS, name string, opts ...ply.Option) (*MeshObject, error) {
	p, err := ply.ParseFS(fsys, name, opts...)
	if err != nil {
		return nil, err
	}
	m := mesh.FromPLY(p)
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return NewMeshObject(strings.TrimSuffix(path.Base(name), path.Ext(name)), m), nil
}
