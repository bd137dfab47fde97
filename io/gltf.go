package io

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/rudraojhaif/AetherGL/terrain"
)

// ExportGLB writes a terrain mesh to a binary glTF 2.0 file: one mesh with
// a single triangle primitive carrying positions, normals and UVs, attached
// to one node in the default scene.
func ExportGLB(path string, mesh *terrain.Mesh) error {
	if mesh == nil {
		return fmt.Errorf("cannot export nil mesh")
	}
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return fmt.Errorf("cannot export empty mesh")
	}

	positions := make([][3]float32, len(mesh.Vertices))
	normals := make([][3]float32, len(mesh.Vertices))
	uvs := make([][2]float32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		positions[i] = [3]float32{v.Position.X, v.Position.Y, v.Position.Z}
		normals[i] = [3]float32{v.Normal.X, v.Normal.Y, v.Normal.Z}
		uvs[i] = [2]float32{v.UV.X, v.UV.Y}
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "AetherGL Terrain System"

	posIdx := modeler.WritePosition(doc, positions)
	normIdx := modeler.WriteNormal(doc, normals)
	uvIdx := modeler.WriteTextureCoord(doc, uvs)
	indicesIdx := modeler.WriteIndices(doc, mesh.Indices)

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: mesh.Name,
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(indicesIdx),
			Attributes: map[string]int{
				"POSITION":   posIdx,
				"NORMAL":     normIdx,
				"TEXCOORD_0": uvIdx,
			},
		}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name: mesh.Name,
		Mesh: gltf.Index(len(doc.Meshes) - 1),
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("gltf save %q: %w", path, err)
	}

	fmt.Printf("Successfully exported terrain mesh to: %s\n", path)
	fmt.Printf("  Vertices: %d\n", len(mesh.Vertices))
	fmt.Printf("  Triangles: %d\n", len(mesh.Indices)/3)
	return nil
}
