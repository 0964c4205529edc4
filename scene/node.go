package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/igmovil/cauce"
)

// Node groups child objects under a local transform. The optional overrides
// replace the inherited color, material or texture while the children draw.
type Node struct {
	base
	Transform Transform
	Children  []Object

	Color    *mgl32.Vec3
	Material *cauce.Material
	Texture  *cauce.Texture
}

func NewNode(name string, children ...Object) *Node {
	return &Node{base: newBase(name), Transform: Identity(), Children: children}
}

func (n *Node) Add(children ...Object) *Node {
	n.Children = append(n.Children, children...)
	return n
}

func (n *Node) WithColor(rgb mgl32.Vec3) *Node {
	n.Color = &rgb
	return n
}

func (n *Node) WithMaterial(m cauce.Material) *Node {
	n.Material = &m
	return n
}

func (n *Node) WithTexture(t *cauce.Texture) *Node {
	n.Texture = t
	return n
}

func (n *Node) Visualize(c *cauce.Cauce) (err error) {
	c.PushModelMatrix()
	defer c.PopModelMatrix()
	c.ComposeModelMatrix(n.Transform.Mat4())

	if n.Color != nil {
		c.PushColor()
		defer c.PopColor()
		c.SetColor(*n.Color)
	}
	if n.Material != nil {
		c.PushMaterial()
		defer c.PopMaterial()
		c.SetMaterial(*n.Material)
	}
	if n.Texture != nil {
		c.PushTexture()
		defer func() {
			if perr := c.PopTexture(); perr != nil && err == nil {
				err = perr
			}
		}()
		if err := c.SetTexture(n.Texture); err != nil {
			return fmt.Errorf("%s: %w", n.name, err)
		}
	}

	for _, child := range n.Children {
		if err := child.Visualize(c); err != nil {
			return fmt.Errorf("%s: %w", n.name, err)
		}
	}
	return nil
}
