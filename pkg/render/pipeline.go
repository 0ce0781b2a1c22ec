package render

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// MeshRenderer is the read-only view of a mesh the pipeline draws.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) math3d.Vec3
	GetFace(i int) [3]int
}

// Presenter shows a finished frame: a terminal, a window, a file.
type Presenter interface {
	Present(fb *Framebuffer) error
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(fb *Framebuffer) error

// Present calls f(fb).
func (f PresenterFunc) Present(fb *Framebuffer) error { return f(fb) }

// State is the pipeline's redraw state.
type State int

const (
	// StateIdle means the last presented frame is current.
	StateIdle State = iota
	// StateDirty means the next Frame call must render.
	StateDirty
)

func (s State) String() string {
	if s == StateDirty {
		return "dirty"
	}
	return "idle"
}

// Options configures a Pipeline.
type Options struct {
	Width  int
	Height int
	Depth  float64 // Depth range of the viewport, [0, Depth]

	Eye    math3d.Vec3
	Center math3d.Vec3
	Up     math3d.Vec3

	Light     math3d.Vec3 // Direction toward the light; normalized on use
	Ambient   float64     // Brightness floor for lit faces
	CullUnlit bool        // Skip faces with brightness <= 0 instead of clamping

	Color      Color // Base surface color
	Background Color
	WireColor  Color

	Wireframe bool
	Axes      float64 // Length of the axis overlay; 0 disables it

	// Workers > 1 renders horizontal bands concurrently.
	Workers int

	Logger *log.Logger
}

// DefaultOptions returns the options used when nothing is overridden.
func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     800,
		Depth:      255,
		Eye:        math3d.V3(0, 0, 3),
		Center:     math3d.Vec3{},
		Up:         math3d.Up(),
		Light:      math3d.V3(0, 0, 1),
		Ambient:    0.1,
		Color:      RGB(255, 255, 255),
		Background: RGB(0, 0, 0),
		WireColor:  RGB(0, 255, 128),
		Workers:    1,
	}
}

// FrameStats describes one rendered frame.
type FrameStats struct {
	Faces      int // Faces in the mesh
	Drawn      int // Faces submitted to the rasterizer
	Culled     int // Faces skipped because they face away from the light
	Degenerate int // Faces skipped for zero area or an unprojectable vertex
	Elapsed    time.Duration
}

// Pipeline renders a mesh into a framebuffer on demand. It redraws only after
// something changed (a command, a resize, MarkDirty).
type Pipeline struct {
	mesh   MeshRenderer
	opts   Options
	camera *Camera
	fb     *Framebuffer
	depth  *DepthBuffer
	light  math3d.Vec3
	state  State
	logger *log.Logger

	wireframe bool
	faces     []preparedFace
}

// preparedFace is a face after shading and projection, ready to rasterize.
type preparedFace struct {
	pts   [3]math3d.Vec3
	color Color
}

// NewPipeline creates a pipeline for mesh. The pipeline starts dirty.
func NewPipeline(mesh MeshRenderer, opts Options) (*Pipeline, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", opts.Width, opts.Height)
	}
	if opts.Depth <= 0 {
		opts.Depth = 255
	}
	if opts.Up.LenSq() == 0 {
		opts.Up = math3d.Up()
	}
	p := &Pipeline{
		mesh:      mesh,
		opts:      opts,
		camera:    NewCamera(opts.Eye, opts.Center, opts.Up),
		fb:        NewFramebuffer(opts.Width, opts.Height),
		depth:     NewDepthBuffer(opts.Width, opts.Height),
		light:     opts.Light.Normalize(),
		state:     StateDirty,
		logger:    opts.Logger,
		wireframe: opts.Wireframe,
	}
	return p, nil
}

// Camera returns the pipeline's camera. Call MarkDirty after changing it.
func (p *Pipeline) Camera() *Camera { return p.camera }

// Framebuffer returns the color buffer of the last rendered frame.
func (p *Pipeline) Framebuffer() *Framebuffer { return p.fb }

// Depth returns the depth buffer of the last rendered frame.
func (p *Pipeline) Depth() *DepthBuffer { return p.depth }

// State returns the current redraw state.
func (p *Pipeline) State() State { return p.state }

// Wireframe reports whether faces are drawn as outlines.
func (p *Pipeline) Wireframe() bool { return p.wireframe }

// MarkDirty forces the next Frame to render.
func (p *Pipeline) MarkDirty() { p.state = StateDirty }

// Resize reallocates the buffers for a new output size.
func (p *Pipeline) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == p.opts.Width && height == p.opts.Height) {
		return
	}
	p.opts.Width, p.opts.Height = width, height
	p.fb = NewFramebuffer(width, height)
	p.depth = NewDepthBuffer(width, height)
	p.state = StateDirty
}

// Apply executes cmd. It returns false for CommandQuit and true otherwise.
func (p *Pipeline) Apply(cmd Command) bool {
	switch cmd.Kind {
	case CommandQuit:
		return false
	case CommandMoveEye:
		p.camera.MoveEye(cmd.Delta)
	case CommandOrbit:
		p.camera.Orbit(cmd.Yaw, cmd.Pitch)
	case CommandZoom:
		p.camera.Zoom(cmd.Factor)
	case CommandReset:
		p.camera.SetEye(p.opts.Eye)
		p.camera.SetCenter(p.opts.Center)
		p.camera.SetUp(p.opts.Up)
	case CommandToggleWireframe:
		p.wireframe = !p.wireframe
	default:
		return true
	}
	p.state = StateDirty
	return true
}

// Frame renders and presents a frame if the pipeline is dirty. It reports
// whether a frame was produced. On a presenter error the pipeline stays dirty.
func (p *Pipeline) Frame(presenter Presenter) (bool, error) {
	if p.state == StateIdle {
		return false, nil
	}
	p.Render()
	if err := presenter.Present(p.fb); err != nil {
		return false, fmt.Errorf("present frame: %w", err)
	}
	p.state = StateIdle
	return true, nil
}

// Transform returns the current world-to-screen transform.
func (p *Pipeline) Transform() Transform {
	return Transform{
		View:       p.camera.ViewMatrix(),
		Projection: p.camera.ProjectionMatrix(),
		Viewport:   math3d.Viewport(0, 0, float64(p.opts.Width), float64(p.opts.Height), p.opts.Depth),
	}
}

// Render draws every face in mesh order into the framebuffer. It does not
// change the pipeline state.
func (p *Pipeline) Render() FrameStats {
	start := time.Now()
	p.fb.Clear(p.opts.Background)
	p.depth.Reset()

	t := p.Transform()
	stats := p.prepare(t)

	r := NewRasterizer(p.fb, p.depth)
	if p.opts.Workers <= 1 {
		p.rasterize(r, t)
	} else {
		// At most Workers bands, one goroutine each.
		var wg sync.WaitGroup
		band := (p.opts.Height + p.opts.Workers - 1) / p.opts.Workers
		for y0 := 0; y0 < p.opts.Height; y0 += band {
			br := r.Band(y0, y0+band)
			wg.Go(func() { p.rasterize(br, t) })
		}
		wg.Wait()
	}

	stats.Elapsed = time.Since(start)
	if p.logger != nil {
		p.logger.Debug("frame",
			"faces", stats.Faces, "drawn", stats.Drawn,
			"culled", stats.Culled, "degenerate", stats.Degenerate,
			"workers", max(p.opts.Workers, 1), "elapsed", stats.Elapsed)
	}
	return stats
}

// prepare shades and projects every face, keeping mesh order.
func (p *Pipeline) prepare(t Transform) FrameStats {
	n := p.mesh.TriangleCount()
	stats := FrameStats{Faces: n}
	p.faces = p.faces[:0]

	for i := range n {
		idx := p.mesh.GetFace(i)
		var world, screen [3]math3d.Vec3
		ok := true
		for j, vi := range idx {
			world[j] = p.mesh.GetVertex(vi)
			if screen[j], ok = t.Project(world[j]); !ok {
				break
			}
		}
		if !ok {
			stats.Degenerate++
			continue
		}

		if p.wireframe {
			if !finitePoints(screen) {
				stats.Degenerate++
				continue
			}
			p.faces = append(p.faces, preparedFace{pts: screen, color: p.opts.WireColor})
			stats.Drawn++
			continue
		}

		brightness, err := FlatShade(world[0], world[1], world[2], p.light)
		if err != nil || IsDegenerate(screen) {
			stats.Degenerate++
			continue
		}
		if brightness <= 0 && p.opts.CullUnlit {
			stats.Culled++
			continue
		}
		brightness = max(p.opts.Ambient, brightness)

		p.faces = append(p.faces, preparedFace{pts: screen, color: Shade(p.opts.Color, brightness)})
		stats.Drawn++
	}
	return stats
}

// rasterize submits the prepared faces to r in order.
func (p *Pipeline) rasterize(r *Rasterizer, t Transform) {
	w := NewWireframe(r, t)
	for _, f := range p.faces {
		if p.wireframe {
			w.DrawTriangle(f.pts, f.color)
		} else {
			r.FillTriangle(f.pts, f.color)
		}
	}
	if p.opts.Axes > 0 {
		w.DrawAxes(p.opts.Axes)
	}
}
