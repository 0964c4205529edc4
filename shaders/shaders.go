// Package shaders embeds the GLSL ES 3.00 sources of the pipeline program.
package shaders

import (
	_ "embed"
)

//go:embed cauce.vert
var VertexGLSL string

//go:embed cauce.frag
var FragmentGLSL string
