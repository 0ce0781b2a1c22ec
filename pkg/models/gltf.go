package models

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/tinyrender/pkg/math3d"
)

// GLTFLoader loads the triangle primitives of GLTF/GLB files into a Mesh.
type GLTFLoader struct {
	// Logger receives a debug line per skipped primitive. Nil disables logging.
	Logger *log.Logger
}

// NewGLTFLoader creates a GLTF loader that logs to logger (which may be nil).
func NewGLTFLoader(logger *log.Logger) *GLTFLoader {
	return &GLTFLoader{Logger: logger}
}

// LoadGLB loads a binary GLTF (.glb) or .gltf file with a default loader.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader(nil).Load(path)
}

// Load reads every triangle primitive of every mesh in the document. Vertex
// order is kept as stored; the rasterizer does no back-face culling.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	if path == "" {
		return nil, loadError(path, ErrEmptyPath)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, loadError(path, fmt.Errorf("open gltf: %w", err))
	}

	mesh := NewMesh(filepath.Base(path))
	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, loadError(path, fmt.Errorf("process mesh %q: %w", m.Name, err))
		}
	}

	if err := mesh.Validate(); err != nil {
		return nil, loadError(path, err)
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for i, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			l.skip(m.Name, i, "not a triangle list")
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			l.skip(m.Name, i, "no POSITION attribute")
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		base := len(mesh.Positions)
		for _, p := range positions {
			mesh.Positions = append(mesh.Positions, vec3f(p))
		}

		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err := modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
			mesh.Normals = padNormals(mesh.Normals, base)
			for _, n := range normals[:min(len(normals), len(positions))] {
				mesh.Normals = append(mesh.Normals, vec3f(n))
			}
		}
		if len(mesh.Normals) > 0 {
			mesh.Normals = padNormals(mesh.Normals, len(mesh.Positions))
		}

		if prim.Indices == nil {
			// Unindexed: consecutive triples of vertices.
			for j := 0; j+2 < len(positions); j += 3 {
				mesh.AddFace(base+j, base+j+1, base+j+2)
			}
			continue
		}

		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
		for j := 0; j+2 < len(indices); j += 3 {
			mesh.AddFace(base+int(indices[j]), base+int(indices[j+1]), base+int(indices[j+2]))
		}
	}
	return nil
}

func (l *GLTFLoader) skip(mesh string, prim int, reason string) {
	if l.Logger != nil {
		l.Logger.Debug("skipping primitive", "mesh", mesh, "primitive", prim, "reason", reason)
	}
}

// padNormals appends zero normals until ns has n entries, keeping normals
// parallel to positions when only some primitives carry them.
func padNormals(ns []math3d.Vec3, n int) []math3d.Vec3 {
	for len(ns) < n {
		ns = append(ns, math3d.Vec3{})
	}
	return ns
}

func vec3f(v [3]float32) math3d.Vec3 {
	return math3d.V3(float64(v[0]), float64(v[1]), float64(v[2]))
}
