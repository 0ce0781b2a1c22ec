package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/render"
)

// options converts the flag values into pipeline options.
func (c *config) options(logger *log.Logger) (render.Options, error) {
	opts := render.DefaultOptions()
	opts.Width, opts.Height = c.width, c.height
	opts.Ambient = c.ambient
	opts.CullUnlit = c.cullUnlit
	opts.Wireframe = c.wireframe
	opts.Axes = c.axes
	opts.Workers = c.workers
	opts.Logger = logger

	vecs := []struct {
		name string
		in   string
		out  *math3d.Vec3
	}{
		{"eye", c.eye, &opts.Eye},
		{"center", c.center, &opts.Center},
		{"up", c.up, &opts.Up},
		{"light", c.light, &opts.Light},
	}
	for _, v := range vecs {
		parsed, err := parseVec3(v.in)
		if err != nil {
			return opts, fmt.Errorf("--%s: %w", v.name, err)
		}
		*v.out = parsed
	}

	var err error
	if opts.Color, err = parseColor(c.color); err != nil {
		return opts, fmt.Errorf("--color: %w", err)
	}
	if opts.Background, err = parseColor(c.bg); err != nil {
		return opts, fmt.Errorf("--bg: %w", err)
	}
	return opts, nil
}

// parseVec3 parses "x,y,z".
func parseVec3(s string) (math3d.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math3d.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = f
	}
	return math3d.V3(v[0], v[1], v[2]), nil
}

// parseColor parses "r,g,b" with components in [0, 255].
func parseColor(s string) (render.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return render.Color{}, fmt.Errorf("want r,g,b, got %q", s)
	}
	var rgb [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return render.Color{}, fmt.Errorf("component %d: %w", i, err)
		}
		rgb[i] = uint8(n)
	}
	return render.RGB(rgb[0], rgb[1], rgb[2]), nil
}
