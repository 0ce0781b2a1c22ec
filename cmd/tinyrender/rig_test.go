package main

import (
	"math"
	"testing"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/render"
)

func newRigPipeline(t *testing.T) *render.Pipeline {
	t.Helper()
	opts := render.DefaultOptions()
	opts.Width, opts.Height = 16, 16
	p, err := render.NewPipeline(&testMesh{}, opts)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

type testMesh struct{}

func (testMesh) VertexCount() int { return 0 }
func (testMesh) TriangleCount() int { return 0 }
func (testMesh) GetVertex(int) math3d.Vec3 { return math3d.Vec3{} }
func (testMesh) GetFace(int) [3]int { return [3]int{} }

func TestRigEasesTowardTarget(t *testing.T) {
	p := newRigPipeline(t)
	rig := newEyeRig(60, p.Camera().Eye)

	if !rig.apply(p, render.Orbit(math.Pi/2, 0)) {
		t.Fatal("apply returned false")
	}
	want := math3d.V3(3, 0, 0)
	if !rig.target.ApproxEqual(want, 1e-9) {
		t.Fatalf("target = %v, want %v", rig.target, want)
	}
	// The displayed eye has not jumped yet.
	if p.Camera().Eye != math3d.V3(0, 0, 3) {
		t.Errorf("eye jumped to %v", p.Camera().Eye)
	}

	rig.step(p)
	first := p.Camera().Eye
	if first == math3d.V3(0, 0, 3) {
		t.Error("eye did not move after a step")
	}

	for range 600 {
		rig.step(p)
	}
	if !rig.settled() {
		t.Fatalf("rig not settled: pos %v vel %v", rig.pos, rig.vel)
	}
	if !p.Camera().Eye.ApproxEqual(want, 1e-9) {
		t.Errorf("eye = %v, want %v", p.Camera().Eye, want)
	}
}

func TestRigAccumulatesOnTarget(t *testing.T) {
	p := newRigPipeline(t)
	rig := newEyeRig(60, p.Camera().Eye)

	rig.apply(p, render.Orbit(math.Pi/4, 0))
	rig.apply(p, render.Orbit(math.Pi/4, 0))
	if !rig.target.ApproxEqual(math3d.V3(3, 0, 0), 1e-9) {
		t.Errorf("target = %v, want (3, 0, 0)", rig.target)
	}
}

func TestRigSettledStaysIdle(t *testing.T) {
	p := newRigPipeline(t)
	rig := newEyeRig(60, p.Camera().Eye)

	if _, err := p.Frame(render.PresenterFunc(func(*render.Framebuffer) error { return nil })); err != nil {
		t.Fatal(err)
	}
	rig.step(p)
	if p.State() != render.StateIdle {
		t.Error("settled rig marked the pipeline dirty")
	}
}

func TestRigQuit(t *testing.T) {
	p := newRigPipeline(t)
	rig := newEyeRig(60, p.Camera().Eye)
	if rig.apply(p, render.Quit()) {
		t.Error("quit should return false")
	}
}
