// Package config reads the viewer configuration from YAML or TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/igmovil/cauce"
)

var ErrInvalid = errors.New("config: invalid")

// Config is the viewer configuration. Zero fields take the values of
// Default.
type Config struct {
	Window     Window     `yaml:"window" toml:"window"`
	Background [4]float32 `yaml:"background" toml:"background"`
	Camera     Camera     `yaml:"camera" toml:"camera"`

	// Assets is the directory PLY and image paths are relative to. A
	// relative Assets is taken from the directory of the config file.
	Assets  string   `yaml:"assets" toml:"assets"`
	Objects []Object `yaml:"objects" toml:"objects"`
	Lights  []Light  `yaml:"lights" toml:"lights"`

	ParamS      float32 `yaml:"param_s" toml:"param_s"`
	LongPressMS int     `yaml:"long_press_ms" toml:"long_press_ms"`
	Debug       bool    `yaml:"debug" toml:"debug"`
}

type Window struct {
	Title  string `yaml:"title" toml:"title"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
}

const (
	CameraOrbital = "orbital"
	CameraPlanar  = "planar"
)

type Camera struct {
	Kind     string  `yaml:"kind" toml:"kind"`
	Distance float32 `yaml:"distance" toml:"distance"`
	// FovY is the vertical field of view in degrees.
	FovY float32 `yaml:"fov_y" toml:"fov_y"`
	Near float32 `yaml:"near" toml:"near"`
	Far  float32 `yaml:"far" toml:"far"`
	// HalfHeight is the half extent shown by a planar camera.
	HalfHeight float32 `yaml:"half_height" toml:"half_height"`
}

const (
	ObjectCube        = "cube"
	ObjectColoredCube = "colored-cube"
	ObjectTetrahedron = "tetrahedron"
	ObjectPolygon     = "polygon"
	ObjectQuad        = "quad"
	ObjectPLY         = "ply"
)

// Object describes one catalogue entry.
type Object struct {
	Kind string `yaml:"kind" toml:"kind"`
	// File is the PLY path for kind ply.
	File string `yaml:"file" toml:"file"`
	// Sides is the side count for kind polygon.
	Sides   int    `yaml:"sides" toml:"sides"`
	Texture string `yaml:"texture" toml:"texture"`
	// TexCoordGen is "", "object" or "eye"; empty uses mesh coordinates.
	TexCoordGen string      `yaml:"tex_coord_gen" toml:"tex_coord_gen"`
	Color       *[3]float32 `yaml:"color" toml:"color"`
	Scale       float32     `yaml:"scale" toml:"scale"`
	// TriangleNormals shades the object flat.
	TriangleNormals bool `yaml:"triangle_normals" toml:"triangle_normals"`
}

const (
	LightDirectional = "directional"
	LightPositional  = "positional"
)

type Light struct {
	Kind string `yaml:"kind" toml:"kind"`
	// Vector is the direction towards the light or its position, in world
	// coordinates.
	Vector [3]float32 `yaml:"vector" toml:"vector"`
	Color  [3]float32 `yaml:"color" toml:"color"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Window:     Window{Title: "visor", Width: 800, Height: 600},
		Background: [4]float32{0.1, 0.1, 0.1, 1},
		Camera: Camera{
			Kind:       CameraOrbital,
			Distance:   4,
			FovY:       60,
			Near:       0.1,
			Far:        100,
			HalfHeight: 1.5,
		},
		Assets: ".",
		Objects: []Object{
			{Kind: ObjectColoredCube, Scale: 1},
			{Kind: ObjectCube, Scale: 1},
			{Kind: ObjectTetrahedron, Scale: 1},
			{Kind: ObjectPolygon, Sides: 6, Scale: 1},
		},
		Lights: []Light{
			{Kind: LightDirectional, Vector: [3]float32{1, 1, 1}, Color: [3]float32{0.7, 0.7, 0.7}},
			{Kind: LightPositional, Vector: [3]float32{-3, 2, 3}, Color: [3]float32{0.4, 0.4, 0.5}},
		},
		ParamS:      0,
		LongPressMS: 600,
	}
}

// Load reads path, which may start with ~, choosing the format by its
// extension (.yaml, .yml or .toml).
func Load(path string) (Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Decode(data, filepath.Ext(expanded))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Assets, err = homedir.Expand(cfg.Assets); err != nil {
		return Config{}, err
	}
	if !filepath.IsAbs(cfg.Assets) {
		cfg.Assets = filepath.Join(filepath.Dir(expanded), cfg.Assets)
	}
	return cfg, nil
}

// Decode parses data in the format named by ext, fills defaults and
// validates the result. Unknown keys are errors.
func Decode(data []byte, ext string) (Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, err
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("%w: unknown format %q", ErrInvalid, ext)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
	if c.Window.Width == 0 && c.Window.Height == 0 {
		c.Window.Width, c.Window.Height = d.Window.Width, d.Window.Height
	}
	if c.Background == [4]float32{} {
		c.Background = d.Background
	}
	if c.Camera.Kind == "" {
		c.Camera.Kind = d.Camera.Kind
	}
	for _, f := range []struct{ v, def *float32 }{
		{&c.Camera.Distance, &d.Camera.Distance},
		{&c.Camera.FovY, &d.Camera.FovY},
		{&c.Camera.Near, &d.Camera.Near},
		{&c.Camera.Far, &d.Camera.Far},
		{&c.Camera.HalfHeight, &d.Camera.HalfHeight},
	} {
		if *f.v == 0 {
			*f.v = *f.def
		}
	}
	if c.Assets == "" {
		c.Assets = d.Assets
	}
	if len(c.Objects) == 0 {
		c.Objects = d.Objects
	}
	for i := range c.Objects {
		if c.Objects[i].Scale == 0 {
			c.Objects[i].Scale = 1
		}
	}
	if len(c.Lights) == 0 {
		c.Lights = d.Lights
	}
	if c.LongPressMS == 0 {
		c.LongPressMS = d.LongPressMS
	}
}

func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	for i, v := range c.Background {
		if v < 0 || v > 1 {
			return invalid("background component %d is %v, want [0, 1]", i, v)
		}
	}
	cam := c.Camera
	switch cam.Kind {
	case CameraOrbital, CameraPlanar:
	default:
		return invalid("camera kind %q", cam.Kind)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return invalid("camera near %v far %v", cam.Near, cam.Far)
	}
	if cam.FovY <= 0 || cam.FovY >= 180 {
		return invalid("camera fov %v", cam.FovY)
	}
	if cam.Distance <= 0 || cam.HalfHeight <= 0 {
		return invalid("camera distance %v half height %v", cam.Distance, cam.HalfHeight)
	}
	for i, o := range c.Objects {
		if err := o.validate(); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
	}
	if len(c.Lights) > cauce.MaxLights {
		return invalid("%d lights, at most %d", len(c.Lights), cauce.MaxLights)
	}
	if _, err := c.LightCollection(); err != nil {
		if errors.Is(err, ErrInvalid) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.ParamS < 0 || c.ParamS > 1 {
		return invalid("param_s %v, want [0, 1]", c.ParamS)
	}
	if c.LongPressMS < 0 {
		return invalid("long_press_ms %d", c.LongPressMS)
	}
	return nil
}

func (o Object) validate() error {
	switch o.Kind {
	case ObjectCube, ObjectColoredCube, ObjectTetrahedron, ObjectQuad:
	case ObjectPolygon:
		if o.Sides < 3 {
			return fmt.Errorf("%w: polygon with %d sides", ErrInvalid, o.Sides)
		}
	case ObjectPLY:
		if o.File == "" {
			return fmt.Errorf("%w: ply object without file", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: object kind %q", ErrInvalid, o.Kind)
	}
	if _, err := o.TexCoordMode(); err != nil {
		return err
	}
	if o.Scale <= 0 {
		return fmt.Errorf("%w: scale %v", ErrInvalid, o.Scale)
	}
	return nil
}

// TexCoordMode maps TexCoordGen to the pipeline mode.
func (o Object) TexCoordMode() (cauce.TexCoordGen, error) {
	switch o.TexCoordGen {
	case "", "mesh":
		return cauce.TexCoordsFromMesh, nil
	case "object":
		return cauce.TexCoordsObject, nil
	case "eye":
		return cauce.TexCoordsEye, nil
	}
	return 0, fmt.Errorf("%w: tex_coord_gen %q", ErrInvalid, o.TexCoordGen)
}

func (l Light) Light() (cauce.Light, error) {
	v, color := mgl32.Vec3(l.Vector), mgl32.Vec3(l.Color)
	switch l.Kind {
	case LightDirectional:
		return cauce.NewDirectionalLight(v, color), nil
	case LightPositional:
		return cauce.NewPositionalLight(v, color), nil
	}
	return cauce.Light{}, fmt.Errorf("%w: light kind %q", ErrInvalid, l.Kind)
}

// LightCollection builds the scene lights.
func (c Config) LightCollection() (cauce.LightCollection, error) {
	lights := make([]cauce.Light, 0, len(c.Lights))
	for i, l := range c.Lights {
		light, err := l.Light()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		lights = append(lights, light)
	}
	return cauce.NewLightCollection(lights...)
}

func (c Config) LongPress() time.Duration {
	return time.Duration(c.LongPressMS) * time.Millisecond
}
