package models

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/taigrr/tinyrender/pkg/math3d"
)

// OBJLoader reads the line-oriented text mesh format.
//
// Recognized lines are "v x y z", "vn x y z" and "f g1 g2 g3 ...", where each
// face group is "v", "v/t", "v//n" or "v/t/n". Only the vertex index of a group
// is kept. Everything else is skipped.
type OBJLoader struct {
	// Logger receives a debug line per skipped line. Nil disables logging.
	Logger *log.Logger

	// SkippedLines counts non-blank, non-comment lines ignored by the last load.
	SkippedLines int
}

// NewOBJLoader creates a loader that logs to logger (which may be nil).
func NewOBJLoader(logger *log.Logger) *OBJLoader {
	return &OBJLoader{Logger: logger}
}

// LoadOBJ loads a text mesh file with a default loader.
func LoadOBJ(path string) (*Mesh, error) {
	return NewOBJLoader(nil).Load(path)
}

// Load dispatches on the file extension: .glb and .gltf go to the GLB loader,
// anything else is read as a text mesh.
func Load(path string) (*Mesh, error) {
	return LoadWithLogger(path, nil)
}

// LoadWithLogger is Load with debug logging of skipped input.
func LoadWithLogger(path string, logger *log.Logger) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return NewGLTFLoader(logger).Load(path)
	default:
		return NewOBJLoader(logger).Load(path)
	}
}

// Load reads and parses the file at path.
func (l *OBJLoader) Load(path string) (*Mesh, error) {
	if path == "" {
		return nil, loadError(path, ErrEmptyPath)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, loadError(path, fmt.Errorf("read file: %w", err))
	}
	return l.Parse(path, data)
}

// Parse builds a mesh from the contents of a model file. name is used for the
// mesh name and in errors.
func (l *OBJLoader) Parse(name string, data []byte) (*Mesh, error) {
	l.SkippedLines = 0
	mesh := NewMesh(filepath.Base(name))

	lineNo := 0
	for start := 0; start < len(data); {
		end := start
		for end < len(data) && data[end] != '\n' {
			end++
		}
		lineNo++
		line := data[start:end]
		start = end + 1

		if err := l.parseLine(mesh, line); err != nil {
			l.SkippedLines++
			if l.Logger != nil {
				l.Logger.Debug("skipping line", "file", name, "line", lineNo, "err", err)
			}
		}
	}

	// Indices may refer forward, so they are checked only once every vertex is known.
	if err := mesh.Validate(); err != nil {
		return nil, loadError(name, err)
	}

	mesh.CalculateBounds()
	if l.Logger != nil {
		l.Logger.Debug("loaded mesh", "name", mesh.Name,
			"vertices", mesh.VertexCount(), "faces", mesh.TriangleCount(),
			"skipped", l.SkippedLines)
	}
	return mesh, nil
}

// parseLine handles a single line. A nil return means the line was consumed
// or was blank/comment; an error means it was skipped.
func (l *OBJLoader) parseLine(mesh *Mesh, line []byte) error {
	s := scanner{buf: line}
	s.skipSpace()
	if s.done() || s.peek() == '#' {
		return nil
	}

	keyword := s.word()
	switch keyword {
	case "v":
		p, err := s.vec3()
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		mesh.Positions = append(mesh.Positions, p)
	case "vn":
		n, err := s.vec3()
		if err != nil {
			return fmt.Errorf("normal: %w", err)
		}
		mesh.Normals = append(mesh.Normals, n)
	case "f":
		idx, err := s.faceIndices(len(mesh.Positions))
		if err != nil {
			return fmt.Errorf("face: %w", err)
		}
		// Fan triangulation for polygons.
		for i := 1; i+1 < len(idx); i++ {
			mesh.AddFace(idx[0], idx[i], idx[i+1])
		}
	default:
		return fmt.Errorf("unsupported keyword %q", keyword)
	}
	return nil
}

// scanner walks a single line byte by byte.
type scanner struct {
	buf []byte
	pos int
}

func (s *scanner) done() bool { return s.pos >= len(s.buf) }

func (s *scanner) peek() byte { return s.buf[s.pos] }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

func (s *scanner) skipSpace() {
	for !s.done() && isSpace(s.peek()) {
		s.pos++
	}
}

// word returns the next run of non-space bytes.
func (s *scanner) word() string {
	s.skipSpace()
	start := s.pos
	for !s.done() && !isSpace(s.peek()) {
		s.pos++
	}
	return string(s.buf[start:s.pos])
}

func (s *scanner) vec3() (math3d.Vec3, error) {
	var v [3]float64
	for i := range v {
		w := s.word()
		if w == "" {
			return math3d.Vec3{}, fmt.Errorf("expected 3 components, got %d", i)
		}
		f, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = f
	}
	return math3d.V3(v[0], v[1], v[2]), nil
}

// faceIndices reads every group on the line and returns 0-based vertex
// indices. File indices are 1-based; negative ones count back from the most
// recent vertex. Index 0 becomes -1 and is rejected by Mesh.Validate.
func (s *scanner) faceIndices(vertexCount int) ([]int, error) {
	var idx []int
	for {
		group := s.word()
		if group == "" {
			break
		}
		lead := group
		if slash := strings.IndexByte(group, '/'); slash >= 0 {
			lead = group[:slash]
		}
		n, err := strconv.Atoi(lead)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", group, err)
		}
		if n < 0 {
			idx = append(idx, vertexCount+n)
		} else {
			idx = append(idx, n-1)
		}
	}
	if len(idx) < 3 {
		return nil, fmt.Errorf("expected at least 3 groups, got %d", len(idx))
	}
	return idx, nil
}
