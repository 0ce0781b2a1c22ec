package main

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/render"
)

// settleDistance is how close the eased eye must be to its target, in world
// units, before the rig snaps to it and stops redrawing.
const settleDistance = 1e-4

// eyeRig eases the camera eye toward the position commands ask for.
type eyeRig struct {
	spring harmonica.Spring
	pos    math3d.Vec3
	vel    math3d.Vec3
	target math3d.Vec3
}

func newEyeRig(fps int, eye math3d.Vec3) *eyeRig {
	return &eyeRig{
		// Frequency 6.0 settles in a few tenths of a second, damping 1.0 = no overshoot
		spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 6.0, 1.0),
		pos:    eye,
		target: eye,
	}
}

// apply runs cmd against the target eye rather than the displayed one, so
// repeated keys accumulate, then puts the displayed eye back for easing.
func (r *eyeRig) apply(p *render.Pipeline, cmd render.Command) bool {
	cam := p.Camera()
	cam.SetEye(r.target)
	ok := p.Apply(cmd)
	r.target = cam.Eye
	cam.SetEye(r.pos)
	return ok
}

// step advances the spring one frame. While the eye moves the pipeline is
// kept dirty.
func (r *eyeRig) step(p *render.Pipeline) {
	if r.settled() {
		return
	}
	r.pos.X, r.vel.X = r.spring.Update(r.pos.X, r.vel.X, r.target.X)
	r.pos.Y, r.vel.Y = r.spring.Update(r.pos.Y, r.vel.Y, r.target.Y)
	r.pos.Z, r.vel.Z = r.spring.Update(r.pos.Z, r.vel.Z, r.target.Z)
	if r.pos.Sub(r.target).Len() < settleDistance && r.vel.Len() < settleDistance {
		r.pos, r.vel = r.target, math3d.Vec3{}
	}
	p.Camera().SetEye(r.pos)
	p.MarkDirty()
}

func (r *eyeRig) settled() bool {
	return r.pos == r.target && r.vel == (math3d.Vec3{})
}
