package terrain

import (
	"fmt"

	"github.com/rudraojhaif/AetherGL/core"
	"github.com/rudraojhaif/AetherGL/math"
	"github.com/rudraojhaif/AetherGL/noise"
)

// Mesh holds CPU-side terrain geometry.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32

	// GPUData is set by the renderer backend (e.g. *opengl.GPUMesh).
	// Do not access directly; use the renderer's API.
	GPUData interface{}
}

// Params describes a terrain build. The grid spans
// [Center.X-Width/2, Center.X+Width/2] x [Center.Z-Depth/2, Center.Z+Depth/2]
// with (WidthSegments+1) x (DepthSegments+1) vertices in z-major order.
type Params struct {
	Width         float32
	Depth         float32
	WidthSegments int
	DepthSegments int
	Center        math.Vec3
	HeightScale   float32
	NoiseScale    float32
	Seed          int64
}

func validate(p Params) error {
	if p.WidthSegments < 1 || p.DepthSegments < 1 {
		return fmt.Errorf("terrain: invalid segment count %dx%d, must be at least 1x1", p.WidthSegments, p.DepthSegments)
	}
	if p.Width <= 0 || p.Depth <= 0 {
		return fmt.Errorf("terrain: invalid dimensions %gx%g, width and depth must be positive", p.Width, p.Depth)
	}
	return nil
}

// Generate builds a heightmap-displaced grid mesh with smooth normals.
// Identical Params always produce an identical mesh; all height variation
// comes from the seeded noise engine.
func Generate(p Params) (*Mesh, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	vertexCountX := p.WidthSegments + 1
	vertexCountZ := p.DepthSegments + 1
	totalVertices := vertexCountX * vertexCountZ
	totalIndices := p.WidthSegments * p.DepthSegments * 6

	fmt.Printf("terrain: generating %d vertices (%dx%d segments)\n",
		totalVertices, p.WidthSegments, p.DepthSegments)

	gen := noise.New(p.Seed)

	stepX := p.Width / float32(p.WidthSegments)
	stepZ := p.Depth / float32(p.DepthSegments)
	startX := p.Center.X - p.Width*0.5
	startZ := p.Center.Z - p.Depth*0.5

	terrainSize := p.Width
	if p.Depth > terrainSize {
		terrainSize = p.Depth
	}

	vertices := make([]core.Vertex, 0, totalVertices)
	for z := 0; z <= p.DepthSegments; z++ {
		for x := 0; x <= p.WidthSegments; x++ {
			worldX := startX + float32(x)*stepX
			worldZ := startZ + float32(z)*stepZ

			height := gen.TerrainHeight(
				float64(worldX), float64(worldZ),
				float64(p.NoiseScale), float64(p.HeightScale))

			pos := math.Vec3{X: worldX, Y: p.Center.Y + float32(height), Z: worldZ}
			vertices = append(vertices, core.Vertex{
				Position: pos,
				Normal:   math.Vec3Up,
				UV:       texCoords(pos, terrainSize),
			})
		}
	}

	indices := make([]uint32, 0, totalIndices)
	for z := 0; z < p.DepthSegments; z++ {
		for x := 0; x < p.WidthSegments; x++ {
			topLeft := uint32(z*vertexCountX + x)
			topRight := topLeft + 1
			bottomLeft := uint32((z+1)*vertexCountX + x)
			bottomRight := bottomLeft + 1

			// Winding stays (tl,bl,tr)/(tr,bl,br); the renderer culls
			// back faces under this convention.
			indices = append(indices, topLeft, bottomLeft, topRight)
			indices = append(indices, topRight, bottomLeft, bottomRight)
		}
	}

	if len(vertices) != totalVertices {
		return nil, fmt.Errorf("terrain: vertex count mismatch, expected %d got %d", totalVertices, len(vertices))
	}
	if len(indices) != totalIndices {
		return nil, fmt.Errorf("terrain: index count mismatch, expected %d got %d", totalIndices, len(indices))
	}

	SmoothNormals(vertices, indices)

	return &Mesh{Name: "terrain", Vertices: vertices, Indices: indices}, nil
}

// GenerateLowPoly builds a square terrain with 50x50 segments at noise
// scale 0.03.
func GenerateLowPoly(size float32, center math.Vec3, heightScale float32, seed int64) (*Mesh, error) {
	return Generate(Params{
		Width:         size,
		Depth:         size,
		WidthSegments: 50,
		DepthSegments: 50,
		Center:        center,
		HeightScale:   heightScale,
		NoiseScale:    0.03,
		Seed:          seed,
	})
}

// GenerateHighPoly builds a square terrain with 200x200 segments at noise
// scale 0.02.
func GenerateHighPoly(size float32, center math.Vec3, heightScale float32, seed int64) (*Mesh, error) {
	return Generate(Params{
		Width:         size,
		Depth:         size,
		WidthSegments: 200,
		DepthSegments: 200,
		Center:        center,
		HeightScale:   heightScale,
		NoiseScale:    0.02,
		Seed:          seed,
	})
}

// SmoothNormals replaces every vertex normal with the normalized sum of the
// face normals of the triangles sharing it. Triangles with out-of-range
// indices are skipped. Vertices whose accumulation comes out zero-length
// (degenerate or unreferenced) fall back to (0,1,0), with a single warning
// reporting the count.
func SmoothNormals(vertices []core.Vertex, indices []uint32) {
	for i := range vertices {
		vertices[i].Normal = math.Vec3Zero
	}

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if int(i0) >= len(vertices) || int(i1) >= len(vertices) || int(i2) >= len(vertices) {
			fmt.Printf("Warning: triangle %d references vertex out of range, skipping\n", i/3)
			continue
		}

		v0 := vertices[i0].Position
		v1 := vertices[i1].Position
		v2 := vertices[i2].Position

		faceNormal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()

		vertices[i0].Normal = vertices[i0].Normal.Add(faceNormal)
		vertices[i1].Normal = vertices[i1].Normal.Add(faceNormal)
		vertices[i2].Normal = vertices[i2].Normal.Add(faceNormal)
	}

	degenerate := 0
	for i := range vertices {
		if vertices[i].Normal.Length() > 0 {
			vertices[i].Normal = vertices[i].Normal.Normalize()
		} else {
			vertices[i].Normal = math.Vec3Up
			degenerate++
		}
	}
	if degenerate > 0 {
		fmt.Printf("Warning: %d zero-length vertex normals replaced with (0,1,0)\n", degenerate)
	}
}

// texCoords maps a world position onto [0,1] UVs over the terrain footprint.
func texCoords(worldPos math.Vec3, terrainSize float32) math.Vec2 {
	u := (worldPos.X + terrainSize*0.5) / terrainSize
	v := (worldPos.Z + terrainSize*0.5) / terrainSize
	return math.Vec2{X: clamp01(u), Y: clamp01(v)}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// MeshStats summarizes a built mesh.
type MeshStats struct {
	VertexCount   int
	TriangleCount int
	Min           math.Vec3
	Max           math.Vec3
	Size          math.Vec3
	MemoryBytes   int
}

// Stats computes counts, world-space bounds and the approximate CPU-side
// memory footprint of the mesh.
func (m *Mesh) Stats() MeshStats {
	s := MeshStats{
		VertexCount:   len(m.Vertices),
		TriangleCount: len(m.Indices) / 3,
	}
	if len(m.Vertices) == 0 {
		return s
	}

	s.Min = m.Vertices[0].Position
	s.Max = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		s.Min = s.Min.Min(v.Position)
		s.Max = s.Max.Max(v.Position)
	}
	s.Size = s.Max.Sub(s.Min)

	// 32 bytes per vertex (eight float32 fields) plus 4 per index.
	s.MemoryBytes = len(m.Vertices)*32 + len(m.Indices)*4
	return s
}

// HeightField returns the height grid Generate would bake into vertices,
// indexed [z][x] and including the Center.Y offset. Useful for exports that
// need raw heights without building a mesh.
func HeightField(p Params) ([][]float32, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	gen := noise.New(p.Seed)

	stepX := p.Width / float32(p.WidthSegments)
	stepZ := p.Depth / float32(p.DepthSegments)
	startX := p.Center.X - p.Width*0.5
	startZ := p.Center.Z - p.Depth*0.5

	field := make([][]float32, p.DepthSegments+1)
	for z := range field {
		worldZ := startZ + float32(z)*stepZ
		row := make([]float32, p.WidthSegments+1)
		for x := range row {
			worldX := startX + float32(x)*stepX
			row[x] = p.Center.Y + float32(gen.TerrainHeight(
				float64(worldX), float64(worldZ),
				float64(p.NoiseScale), float64(p.HeightScale)))
		}
		field[z] = row
	}
	return field, nil
}
