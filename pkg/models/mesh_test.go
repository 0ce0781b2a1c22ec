package models

import (
	"errors"
	"testing"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

func triangleMesh() *Mesh {
	m := NewMesh("tri")
	m.AddVertex(math3d.V3(0, 0, 0))
	m.AddVertex(math3d.V3(4, 0, 0))
	m.AddVertex(math3d.V3(0, 2, -2))
	m.AddFace(0, 1, 2)
	m.CalculateBounds()
	return m
}

func TestMeshBounds(t *testing.T) {
	m := triangleMesh()
	if m.BoundsMin != math3d.V3(0, 0, -2) {
		t.Errorf("BoundsMin = %v", m.BoundsMin)
	}
	if m.BoundsMax != math3d.V3(4, 2, 0) {
		t.Errorf("BoundsMax = %v", m.BoundsMax)
	}
	if m.Center() != math3d.V3(2, 1, -1) {
		t.Errorf("Center = %v", m.Center())
	}
	if m.Size() != math3d.V3(4, 2, 2) {
		t.Errorf("Size = %v", m.Size())
	}
}

func TestMeshValidate(t *testing.T) {
	m := triangleMesh()
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	m.AddFace(0, 1, 3)
	if err := m.Validate(); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestMeshFitUnit(t *testing.T) {
	m := triangleMesh()
	m.FitUnit()

	if !m.BoundsMin.ApproxEqual(math3d.V3(-1, -0.5, -0.5), 1e-12) {
		t.Errorf("BoundsMin = %v", m.BoundsMin)
	}
	if !m.BoundsMax.ApproxEqual(math3d.V3(1, 0.5, 0.5), 1e-12) {
		t.Errorf("BoundsMax = %v", m.BoundsMax)
	}
}

func TestMeshClone(t *testing.T) {
	m := triangleMesh()
	c := m.Clone()
	c.Positions[0] = math3d.V3(9, 9, 9)
	c.Faces[0].V[0] = 2

	if m.Positions[0] != math3d.V3(0, 0, 0) {
		t.Error("clone shares positions with original")
	}
	if m.Faces[0].V[0] != 0 {
		t.Error("clone shares faces with original")
	}
}

func TestMeshTransform(t *testing.T) {
	m := triangleMesh()
	m.Normals = append(m.Normals, math3d.V3(0, 0, 1))
	m.Transform(math3d.Translate(math3d.V3(1, 2, 3)))

	if m.GetVertex(1) != math3d.V3(5, 2, 3) {
		t.Errorf("vertex 1 = %v", m.GetVertex(1))
	}
	// Translation leaves normals alone.
	if m.Normals[0] != math3d.V3(0, 0, 1) {
		t.Errorf("normal = %v", m.Normals[0])
	}
}
