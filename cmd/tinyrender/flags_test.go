package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/render"
)

func TestParseVec3(t *testing.T) {
	tests := []struct {
		in      string
		want    math3d.Vec3
		wantErr bool
	}{
		{"0,0,3", math3d.V3(0, 0, 3), false},
		{" 1.5, -2 ,1e1", math3d.V3(1.5, -2, 10), false},
		{"1,2", math3d.Vec3{}, true},
		{"1,2,3,4", math3d.Vec3{}, true},
		{"a,b,c", math3d.Vec3{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseVec3(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("parseVec3(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    render.Color
		wantErr bool
	}{
		{"255,128,0", render.RGB(255, 128, 0), false},
		{"30, 30, 40", render.RGB(30, 30, 40), false},
		{"256,0,0", render.Color{}, true},
		{"-1,0,0", render.Color{}, true},
		{"1,2", render.Color{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseColor(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("parseColor(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

const triangleOBJ = `v -0.5 -0.5 0
v 0.5 -0.5 0
v 0 0.5 0
f 1 2 3
`

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "tri.obj")
	if err := os.WriteFile(model, []byte(triangleOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "tri.png")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"render", model, "--width", "64", "--height", "48", "--scale", "2", "--workers", "3", "-o", out})
	if err := root.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 128 || img.Bounds().Dy() != 96 {
		t.Errorf("size = %v, want 128x96", img.Bounds())
	}
	// The triangle covers the center.
	r, g, b, _ := img.At(64, 48).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("center = %v, want white", img.At(64, 48))
	}
}

func TestRenderCommandBadIndex(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "bad.obj")
	if err := os.WriteFile(model, []byte("v 0 0 0\nf 1 2 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"render", model, "-o", filepath.Join(dir, "bad.png")})
	if err := root.Execute(); err == nil {
		t.Error("expected load error")
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.png")); !os.IsNotExist(err) {
		t.Error("no image should be written after a load error")
	}
}

func TestRenderCommandBadFlag(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "tri.obj")
	if err := os.WriteFile(model, []byte(triangleOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"render", model, "--eye", "1,2", "-o", filepath.Join(dir, "x.png")})
	if err := root.Execute(); err == nil {
		t.Error("expected error for malformed --eye")
	}
}
