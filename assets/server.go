// Package assets loads textures and models from a read-only file system.
package assets

import (
	"fmt"
	"image"
	"io/fs"
	"sync"

	"github.com/igmovil/cauce"
	"github.com/igmovil/cauce/ply"
	"github.com/igmovil/cauce/scene"
)

// Server hands out textures and PLY objects by path, loading each file at
// most once. Textures are shared; every PLY call gets its own object over a
// shared mesh.
type Server struct {
	fsys   fs.FS
	log    cauce.Logger
	plyLog cauce.Logger

	mu       sync.Mutex
	textures map[string]*cauce.Texture
	models   map[string]*scene.MeshObject
}

type Option func(*Server)

func WithLogger(l cauce.Logger) Option {
	return func(s *Server) {
		s.log = cauce.Scoped(l, "assets")
		s.plyLog = cauce.Scoped(l, "ply")
	}
}

func NewServer(fsys fs.FS, opts ...Option) *Server {
	s := &Server{
		fsys:     fsys,
		log:      cauce.NewNopLogger(),
		plyLog:   cauce.NewNopLogger(),
		textures: make(map[string]*cauce.Texture),
		models:   make(map[string]*scene.MeshObject),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Texture returns the texture for the image file name. The file is sniffed
// now so non-images fail early, but its pixels are decoded only when the
// pipeline first binds the texture. Options apply on the first call only.
func (s *Server) Texture(name string, opts ...cauce.TextureOption) (*cauce.Texture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.textures[name]; ok {
		return t, nil
	}
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, err
	}
	mime, err := Sniff(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	s.log.Debugf("texture %s (%s, %d bytes)", name, mime, len(data))

	t := cauce.NewTexture(name, s.imageSource(name), opts...)
	s.textures[name] = t
	return t, nil
}

func (s *Server) imageSource(name string) cauce.ImageSource {
	return cauce.ImageSourceFunc(func() (image.Image, error) {
		data, err := fs.ReadFile(s.fsys, name)
		if err != nil {
			return nil, err
		}
		img, err := DecodeImage(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return FlipVertical(img), nil
	})
}

// PLY returns a new mesh object for the PLY file name. Objects for the same
// file share the parsed mesh and its GPU buffers but not their identity or
// drawing flags.
func (s *Server) PLY(name string) (*scene.MeshObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	model, ok := s.models[name]
	if !ok {
		var err error
		if model, err = scene.LoadPLY(s.fsys, name, ply.WithLogger(s.plyLog)); err != nil {
			return nil, err
		}
		s.log.Infof("loaded %s: %d vertices, %d triangles", name, model.Mesh.VertexCount(), len(model.Mesh.Triangles))
		s.models[name] = model
	}
	return scene.NewMeshObject(model.Name(), model.Mesh), nil
}
