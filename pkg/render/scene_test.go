package render

import (
	"math"
	"testing"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/models"
)

const triangleOBJ = `v -1 -1 0
v 1 -1 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1/1/1 2/1/1 3/1/1
`

// edge is twice the signed area of (a, b, p).
func edge(a, b math3d.Vec3, x, y float64) float64 {
	return (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
}

func insideTriangle(pts [3]math3d.Vec3, x, y float64) bool {
	e0 := edge(pts[1], pts[2], x, y)
	e1 := edge(pts[2], pts[0], x, y)
	e2 := edge(pts[0], pts[1], x, y)
	return (e0 >= 0 && e1 >= 0 && e2 >= 0) || (e0 <= 0 && e1 <= 0 && e2 <= 0)
}

func TestTriangleSceneExactCoverage(t *testing.T) {
	mesh, err := models.NewOBJLoader(nil).Parse("triangle.obj", []byte(triangleOBJ))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	opts := testOptions(100, 100)
	opts.Eye = math3d.V3(0, 0, 3)
	opts.Light = math3d.V3(0, 0, 1)
	p := newTestPipeline(t, mesh, opts)
	stats := p.Render()
	if stats.Drawn != 1 || stats.Degenerate != 0 || stats.Culled != 0 {
		t.Fatalf("stats = %+v", stats)
	}

	tr := p.Transform()
	var pts [3]math3d.Vec3
	for i := range pts {
		var ok bool
		if pts[i], ok = tr.Project(mesh.GetVertex(i)); !ok {
			t.Fatalf("vertex %d did not project", i)
		}
	}

	fb := p.Framebuffer()
	white, black := RGB(255, 255, 255), RGB(0, 0, 0)
	covered := 0
	for y := range fb.Height {
		for x := range fb.Width {
			want := black
			if insideTriangle(pts, float64(x), float64(y)) {
				want = white
				covered++
				if d := p.Depth().At(x, y); d != 127.5 {
					t.Errorf("depth at (%d, %d) = %v, want 127.5", x, y, d)
				}
			}
			if got := fb.GetPixel(x, y); got != want {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if covered == 0 {
		t.Fatal("triangle covers no pixels")
	}
}

func TestFaceNearEyePlane(t *testing.T) {
	z := math.Nextafter(3, 0)
	mesh := &mockMesh{
		vertices: []math3d.Vec3{
			math3d.V3(500, -500, z),
			math3d.V3(600, -500, z),
			math3d.V3(500, -600, z),
		},
		faces: [][3]int{{0, 1, 2}},
	}
	p := newTestPipeline(t, mesh, testOptions(40, 40))

	var pts [3]math3d.Vec3
	tr := p.Transform()
	for i := range pts {
		var ok bool
		if pts[i], ok = tr.Project(mesh.vertices[i]); !ok {
			t.Fatalf("vertex %d did not project", i)
		}
	}
	if IsDegenerate(pts) {
		t.Fatalf("projected face %v is degenerate", pts)
	}

	stats := p.Render()
	if stats.Drawn != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	for i, px := range p.Framebuffer().Pixels {
		if px != RGB(0, 0, 0) {
			t.Fatalf("off-screen face wrote pixel %d", i)
		}
	}
}
