// Package ply reads the ASCII, triangle-only subset of the PLY mesh format.
//
// The header must declare "element vertex N" and "element face N" (both
// positive) and end with "end_header". Each vertex line starts with its
// x, y and z coordinates; further fields are ignored. Each face line is
// "3 i0 i1 i2". Comment lines may appear anywhere.
package ply

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrSyntax is wrapped by every parse error.
	ErrSyntax = errors.New("ply: syntax error")
	// ErrUnsupported is wrapped when the file is valid PLY outside the
	// supported subset (binary encodings, non-triangle faces, extra
	// elements).
	ErrUnsupported = errors.New("ply: unsupported")
	// ErrCount is wrapped when the body does not match the declared counts.
	ErrCount = errors.New("ply: element count mismatch")
)

// Error reports the 1-based input line a parse failed on. Line is 0 for
// failures detected at end of input.
type Error struct {
	Line int
	Err  error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("ply: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("ply: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Mesh holds the tables read from a PLY file.
type Mesh struct {
	Positions []mgl32.Vec3
	Triangles [][3]uint32
}

// Logger receives the comment lines of the file.
type Logger interface {
	Debugf(format string, args ...any)
}

type Option func(*parser)

func WithLogger(l Logger) Option {
	return func(p *parser) {
		if l != nil {
			p.log = l
		}
	}
}

type state int

const (
	stateHeader state = iota
	stateVertices
	stateFaces
)

func (s state) String() string {
	switch s {
	case stateHeader:
		return "header"
	case stateVertices:
		return "vertices"
	case stateFaces:
		return "faces"
	}
	return "unknown"
}

type parser struct {
	sc    *bufio.Scanner
	log   Logger
	line  int
	state state

	numVertices, numFaces   int
	seenVertices, seenFaces bool

	mesh Mesh
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

// Parse reads a whole PLY document from r. On error no mesh is returned.
func Parse(r io.Reader, opts ...Option) (*Mesh, error) {
	p := &parser{sc: bufio.NewScanner(r), log: nopLogger{}}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return &p.mesh, nil
}

func ParseString(s string, opts ...Option) (*Mesh, error) {
	return Parse(strings.NewReader(s), opts...)
}

// ParseFS opens name in fsys and parses it.
func ParseFS(fsys fs.FS, name string, opts ...Option) (*Mesh, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

func (p *parser) run() error {
	for {
		if p.state == stateVertices && len(p.mesh.Positions) == p.numVertices {
			p.state = stateFaces
		}
		tokens, err := p.nextTokens()
		if err != nil {
			return &Error{Line: p.line, Err: err}
		}
		if tokens == nil {
			break
		}
		if tokens[0] == "comment" {
			p.log.Debugf("comment: %s", strings.Join(tokens[1:], " "))
			continue
		}

		switch p.state {
		case stateHeader:
			err = p.header(tokens)
		case stateVertices:
			err = p.vertex(tokens)
		case stateFaces:
			err = p.face(tokens)
		}
		if err != nil {
			return &Error{Line: p.line, Err: err}
		}
	}
	if err := p.finish(); err != nil {
		return &Error{Err: err}
	}
	return nil
}

// nextTokens returns the fields of the next non-blank line, or nil at end
// of input.
func (p *parser) nextTokens() ([]string, error) {
	for p.sc.Scan() {
		p.line++
		if tokens := strings.Fields(p.sc.Text()); len(tokens) > 0 {
			return tokens, nil
		}
	}
	return nil, p.sc.Err()
}

func (p *parser) header(tokens []string) error {
	switch tokens[0] {
	case "ply", "property", "obj_info":
		return nil
	case "format":
		if len(tokens) < 2 || tokens[1] != "ascii" {
			return fmt.Errorf("%w: format %q", ErrUnsupported, strings.Join(tokens[1:], " "))
		}
		return nil
	case "element":
		return p.element(tokens)
	case "end_header":
		if !p.seenVertices || !p.seenFaces {
			return fmt.Errorf("%w: end_header before vertex and face counts", ErrSyntax)
		}
		p.state = stateVertices
		return nil
	}
	return fmt.Errorf("%w: unrecognized header token %q", ErrSyntax, tokens[0])
}

func (p *parser) element(tokens []string) error {
	if len(tokens) != 3 {
		return fmt.Errorf("%w: element line needs a name and a count", ErrSyntax)
	}
	n, err := strconv.Atoi(tokens[2])
	if err != nil {
		return fmt.Errorf("%w: element count %q", ErrSyntax, tokens[2])
	}
	if n <= 0 {
		return fmt.Errorf("%w: element %s count %d, want > 0", ErrSyntax, tokens[1], n)
	}
	switch tokens[1] {
	case "vertex":
		p.numVertices, p.seenVertices = n, true
	case "face":
		p.numFaces, p.seenFaces = n, true
	default:
		return fmt.Errorf("%w: element %q", ErrUnsupported, tokens[1])
	}
	return nil
}

func (p *parser) vertex(tokens []string) error {
	if len(tokens) < 3 {
		return fmt.Errorf("%w: vertex has %d fields, want at least 3", ErrSyntax, len(tokens))
	}
	var v mgl32.Vec3
	for i := range v {
		f, err := strconv.ParseFloat(tokens[i], 32)
		if err != nil {
			return fmt.Errorf("%w: vertex coordinate %q", ErrSyntax, tokens[i])
		}
		v[i] = float32(f)
	}
	p.mesh.Positions = append(p.mesh.Positions, v)
	return nil
}

func (p *parser) face(tokens []string) error {
	n, err := strconv.Atoi(tokens[0])
	if err != nil {
		return fmt.Errorf("%w: face vertex count %q", ErrSyntax, tokens[0])
	}
	if n != 3 {
		return fmt.Errorf("%w: face with %d vertices, only triangles are read", ErrUnsupported, n)
	}
	if len(tokens) != 4 {
		return fmt.Errorf("%w: face has %d fields, want 4", ErrSyntax, len(tokens))
	}
	var tri [3]uint32
	for i := range tri {
		idx, err := strconv.ParseUint(tokens[i+1], 10, 32)
		if err != nil {
			return fmt.Errorf("%w: face index %q", ErrSyntax, tokens[i+1])
		}
		if idx >= uint64(p.numVertices) {
			return fmt.Errorf("%w: face index %d out of range [0, %d)", ErrSyntax, idx, p.numVertices)
		}
		tri[i] = uint32(idx)
	}
	p.mesh.Triangles = append(p.mesh.Triangles, tri)
	return nil
}

// finish checks the body against the counts declared in the header.
func (p *parser) finish() error {
	if p.state == stateHeader {
		return fmt.Errorf("%w: missing end_header", ErrSyntax)
	}
	if got := len(p.mesh.Positions); got != p.numVertices {
		return fmt.Errorf("%w: read %d vertices, header declares %d", ErrCount, got, p.numVertices)
	}
	if got := len(p.mesh.Triangles); got != p.numFaces {
		return fmt.Errorf("%w: read %d faces, header declares %d", ErrCount, got, p.numFaces)
	}
	return nil
}
