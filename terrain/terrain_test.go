package terrain

import (
	stdmath "math"
	"testing"

	"github.com/rudraojhaif/AetherGL/core"
	"github.com/rudraojhaif/AetherGL/math"
)

func testParams() Params {
	return Params{
		Width:         80,
		Depth:         80,
		WidthSegments: 100,
		DepthSegments: 100,
		Center:        math.Vec3{},
		HeightScale:   15,
		NoiseScale:    0.08,
		Seed:          42,
	}
}

// TestGenerateCounts verifies the analytic vertex and index counts for a
// 100x100-segment grid.
func TestGenerateCounts(t *testing.T) {
	mesh, err := Generate(testParams())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if got, want := len(mesh.Vertices), 101*101; got != want {
		t.Errorf("vertex count = %d, want %d", got, want)
	}
	if got, want := len(mesh.Indices), 100*100*6; got != want {
		t.Errorf("index count = %d, want %d", got, want)
	}
}

// TestGenerateDeterministic verifies identical Params give identical meshes.
func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(testParams())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := Generate(testParams())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("vertex %d differs: %+v vs %+v", i, a.Vertices[i], b.Vertices[i])
		}
	}
	for i := range a.Indices {
		if a.Indices[i] != b.Indices[i] {
			t.Fatalf("index %d differs: %d vs %d", i, a.Indices[i], b.Indices[i])
		}
	}
}

// TestGenerateValidation verifies bad parameters are rejected before any
// allocation.
func TestGenerateValidation(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Params)
	}{
		{"zero width segments", func(p *Params) { p.WidthSegments = 0 }},
		{"zero depth segments", func(p *Params) { p.DepthSegments = 0 }},
		{"negative width", func(p *Params) { p.Width = -1 }},
		{"zero depth", func(p *Params) { p.Depth = 0 }},
	}

	for _, tc := range cases {
		p := testParams()
		tc.mut(&p)
		mesh, err := Generate(p)
		if err == nil {
			t.Errorf("%s: expected error, got mesh with %d vertices", tc.name, len(mesh.Vertices))
		}
		if mesh != nil {
			t.Errorf("%s: expected nil mesh on error", tc.name)
		}
	}
}

// TestGenerateHeightRange verifies every vertex height lands in
// [Center.Y, Center.Y+HeightScale].
func TestGenerateHeightRange(t *testing.T) {
	p := testParams()
	p.Center = math.Vec3{X: 0, Y: 2, Z: 0}

	mesh, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	lo := p.Center.Y
	hi := p.Center.Y + p.HeightScale
	for i, v := range mesh.Vertices {
		if v.Position.Y < lo || v.Position.Y > hi {
			t.Fatalf("vertex %d height %f outside [%f, %f]", i, v.Position.Y, lo, hi)
		}
	}
}

// TestGenerateGridSpan verifies the grid spans the requested extents around
// the center.
func TestGenerateGridSpan(t *testing.T) {
	p := testParams()
	p.Center = math.Vec3{X: 5, Y: 0, Z: -3}

	mesh, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	first := mesh.Vertices[0].Position
	last := mesh.Vertices[len(mesh.Vertices)-1].Position

	if first.X != p.Center.X-p.Width/2 || first.Z != p.Center.Z-p.Depth/2 {
		t.Errorf("first vertex at (%f, %f), want (%f, %f)",
			first.X, first.Z, p.Center.X-p.Width/2, p.Center.Z-p.Depth/2)
	}
	if diff := stdmath.Abs(float64(last.X - (p.Center.X + p.Width/2))); diff > 1e-3 {
		t.Errorf("last vertex X = %f, want %f", last.X, p.Center.X+p.Width/2)
	}
	if diff := stdmath.Abs(float64(last.Z - (p.Center.Z + p.Depth/2))); diff > 1e-3 {
		t.Errorf("last vertex Z = %f, want %f", last.Z, p.Center.Z+p.Depth/2)
	}
}

// TestGenerateUVs verifies UVs stay in [0,1] and hit the corners.
func TestGenerateUVs(t *testing.T) {
	mesh, err := Generate(testParams())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for i, v := range mesh.Vertices {
		if v.UV.X < 0 || v.UV.X > 1 || v.UV.Y < 0 || v.UV.Y > 1 {
			t.Fatalf("vertex %d UV (%f, %f) outside [0,1]", i, v.UV.X, v.UV.Y)
		}
	}

	first := mesh.Vertices[0].UV
	last := mesh.Vertices[len(mesh.Vertices)-1].UV
	if stdmath.Abs(float64(first.X)) > 1e-5 || stdmath.Abs(float64(first.Y)) > 1e-5 {
		t.Errorf("first UV = (%f, %f), want (0, 0)", first.X, first.Y)
	}
	if stdmath.Abs(float64(last.X-1)) > 1e-5 || stdmath.Abs(float64(last.Y-1)) > 1e-5 {
		t.Errorf("last UV = (%f, %f), want (1, 1)", last.X, last.Y)
	}
}

// TestGenerateWinding pins down the triangle layout of the first grid cell.
func TestGenerateWinding(t *testing.T) {
	mesh, err := Generate(testParams())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// vertexCountX is 101: topLeft=0, bottomLeft=101, topRight=1.
	want := []uint32{0, 101, 1, 1, 101, 102}
	for i, w := range want {
		if mesh.Indices[i] != w {
			t.Errorf("index %d = %d, want %d", i, mesh.Indices[i], w)
		}
	}
}

// TestGenerateFlat verifies HeightScale 0 yields a perfectly flat plane with
// straight-up normals.
func TestGenerateFlat(t *testing.T) {
	p := testParams()
	p.HeightScale = 0

	mesh, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for i, v := range mesh.Vertices {
		if v.Position.Y != 0 {
			t.Fatalf("vertex %d height %f, want 0 on flat terrain", i, v.Position.Y)
		}
		if v.Normal != math.Vec3Up {
			t.Fatalf("vertex %d normal %+v, want (0,1,0) on flat terrain", i, v.Normal)
		}
	}
}

// TestGenerateNormalsUnitLength verifies reconstructed normals are unit
// vectors.
func TestGenerateNormalsUnitLength(t *testing.T) {
	mesh, err := Generate(testParams())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for i, v := range mesh.Vertices {
		length := float64(v.Normal.Length())
		if stdmath.Abs(length-1) > 1e-4 {
			t.Fatalf("vertex %d normal length %f, want 1", i, length)
		}
	}
}

// TestSmoothNormalsSingleTriangle checks the face normal of one upward-wound
// triangle reaches all three vertices.
func TestSmoothNormalsSingleTriangle(t *testing.T) {
	vertices := []core.Vertex{
		{Position: math.Vec3{X: 0, Y: 0, Z: 0}},
		{Position: math.Vec3{X: 0, Y: 0, Z: 1}},
		{Position: math.Vec3{X: 1, Y: 0, Z: 0}},
	}
	indices := []uint32{0, 1, 2}

	SmoothNormals(vertices, indices)

	for i, v := range vertices {
		if v.Normal != math.Vec3Up {
			t.Errorf("vertex %d normal %+v, want (0,1,0)", i, v.Normal)
		}
	}
}

// TestSmoothNormalsUnreferencedVertex verifies the (0,1,0) fallback for a
// vertex no triangle touches.
func TestSmoothNormalsUnreferencedVertex(t *testing.T) {
	vertices := []core.Vertex{
		{Position: math.Vec3{X: 0, Y: 0, Z: 0}},
		{Position: math.Vec3{X: 0, Y: 0, Z: 1}},
		{Position: math.Vec3{X: 1, Y: 0, Z: 0}},
		{Position: math.Vec3{X: 9, Y: 9, Z: 9}, Normal: math.Vec3{X: 1, Y: 0, Z: 0}},
	}
	indices := []uint32{0, 1, 2}

	SmoothNormals(vertices, indices)

	if vertices[3].Normal != math.Vec3Up {
		t.Errorf("unreferenced vertex normal %+v, want (0,1,0) fallback", vertices[3].Normal)
	}
}

// TestSmoothNormalsInvalidIndex verifies out-of-range triangles are skipped
// without disturbing valid ones.
func TestSmoothNormalsInvalidIndex(t *testing.T) {
	vertices := []core.Vertex{
		{Position: math.Vec3{X: 0, Y: 0, Z: 0}},
		{Position: math.Vec3{X: 0, Y: 0, Z: 1}},
		{Position: math.Vec3{X: 1, Y: 0, Z: 0}},
	}
	indices := []uint32{0, 1, 2, 0, 1, 99}

	SmoothNormals(vertices, indices)

	for i, v := range vertices {
		if v.Normal != math.Vec3Up {
			t.Errorf("vertex %d normal %+v, want (0,1,0)", i, v.Normal)
		}
	}
}

// TestGenerateLowPolyHighPoly verifies the fixed-parameter wrappers.
func TestGenerateLowPolyHighPoly(t *testing.T) {
	low, err := GenerateLowPoly(40, math.Vec3{}, 10, 7)
	if err != nil {
		t.Fatalf("GenerateLowPoly failed: %v", err)
	}
	if got, want := len(low.Vertices), 51*51; got != want {
		t.Errorf("low-poly vertex count = %d, want %d", got, want)
	}
	if got, want := len(low.Indices), 50*50*6; got != want {
		t.Errorf("low-poly index count = %d, want %d", got, want)
	}

	high, err := GenerateHighPoly(40, math.Vec3{}, 10, 7)
	if err != nil {
		t.Fatalf("GenerateHighPoly failed: %v", err)
	}
	if got, want := len(high.Vertices), 201*201; got != want {
		t.Errorf("high-poly vertex count = %d, want %d", got, want)
	}
	if got, want := len(high.Indices), 200*200*6; got != want {
		t.Errorf("high-poly index count = %d, want %d", got, want)
	}
}

// TestStats checks counts, bounds and footprint on a generated mesh.
func TestStats(t *testing.T) {
	p := testParams()
	p.WidthSegments = 10
	p.DepthSegments = 10
	p.Width = 20
	p.Depth = 20

	mesh, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	s := mesh.Stats()
	if s.VertexCount != 121 {
		t.Errorf("VertexCount = %d, want 121", s.VertexCount)
	}
	if s.TriangleCount != 200 {
		t.Errorf("TriangleCount = %d, want 200", s.TriangleCount)
	}
	if s.Min.X != -10 || s.Min.Z != -10 {
		t.Errorf("Min = %+v, want X=-10 Z=-10", s.Min)
	}
	if diff := stdmath.Abs(float64(s.Size.X - 20)); diff > 1e-3 {
		t.Errorf("Size.X = %f, want 20", s.Size.X)
	}
	if s.Min.Y < 0 || s.Max.Y > p.HeightScale {
		t.Errorf("height bounds [%f, %f] outside [0, %f]", s.Min.Y, s.Max.Y, p.HeightScale)
	}
	if want := 121*32 + 600*4; s.MemoryBytes != want {
		t.Errorf("MemoryBytes = %d, want %d", s.MemoryBytes, want)
	}

	var empty Mesh
	if s := empty.Stats(); s.VertexCount != 0 || s.MemoryBytes != 0 {
		t.Errorf("empty mesh stats = %+v, want zeros", s)
	}
}

// TestHeightFieldMatchesGenerate verifies the raw grid agrees exactly with
// the heights Generate bakes into vertices.
func TestHeightFieldMatchesGenerate(t *testing.T) {
	p := testParams()
	p.WidthSegments = 20
	p.DepthSegments = 15

	field, err := HeightField(p)
	if err != nil {
		t.Fatalf("HeightField failed: %v", err)
	}
	mesh, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(field) != p.DepthSegments+1 {
		t.Fatalf("field rows = %d, want %d", len(field), p.DepthSegments+1)
	}
	vertexCountX := p.WidthSegments + 1
	for z, row := range field {
		if len(row) != vertexCountX {
			t.Fatalf("field row %d has %d columns, want %d", z, len(row), vertexCountX)
		}
		for x, h := range row {
			if got := mesh.Vertices[z*vertexCountX+x].Position.Y; got != h {
				t.Fatalf("field[%d][%d] = %f, mesh height = %f", z, x, h, got)
			}
		}
	}
}

// TestHeightFieldValidation verifies field extraction rejects bad parameters.
func TestHeightFieldValidation(t *testing.T) {
	p := testParams()
	p.Width = 0
	if _, err := HeightField(p); err == nil {
		t.Error("expected error for zero width")
	}
}

func BenchmarkGenerate(b *testing.B) {
	p := testParams()
	p.WidthSegments = 50
	p.DepthSegments = 50
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Generate(p); err != nil {
			b.Fatal(err)
		}
	}
}
