package engine

import "math"

// GenerateNormals expands indexed triangles into flat per-vertex position
// and face-normal arrays suitable for upload without an index buffer.
func GenerateNormals(indices []uint8, modelVertices []float32) (vertices, normals []float32) {
	vertices = make([]float32, len(indices)*3)
	normals = make([]float32, len(indices)*3)

	for i := 0; i+2 < len(indices); i += 3 {
		a := vertexAt(modelVertices, indices[i])
		b := vertexAt(modelVertices, indices[i+1])
		c := vertexAt(modelVertices, indices[i+2])

		n := normalize3(cross3(sub3(b, a), sub3(c, a)))

		j := i * 3
		copy(vertices[j:], []float32{a[0], a[1], a[2], b[0], b[1], b[2], c[0], c[1], c[2]})
		copy(normals[j:], []float32{n[0], n[1], n[2], n[0], n[1], n[2], n[0], n[1], n[2]})
	}
	return vertices, normals
}

func vertexAt(modelVertices []float32, index uint8) [3]float32 {
	i := int(index) * 3
	return [3]float32{modelVertices[i], modelVertices[i+1], modelVertices[i+2]}
}

// HexatileMesh returns flat vertices and normals for a unit hexagonal
// prism, the demo scene's base primitive.
func HexatileMesh() (vertices, normals []float32) {
	const height = 0.25
	corners := make([]float32, 0, 12*3)
	for ring := 0; ring < 2; ring++ {
		y := float32(height)
		if ring == 1 {
			y = -height
		}
		for i := 0; i < 6; i++ {
			angle := float64(i) * math.Pi / 3.0
			corners = append(corners, float32(math.Cos(angle)), y, float32(math.Sin(angle)))
		}
	}

	var indices []uint8
	// top and bottom fans
	for i := uint8(1); i < 5; i++ {
		indices = append(indices, 0, i+1, i)
		indices = append(indices, 6, 6+i, 6+i+1)
	}
	// side quads
	for i := uint8(0); i < 6; i++ {
		next := (i + 1) % 6
		indices = append(indices, i, next, 6+i)
		indices = append(indices, next, 6+next, 6+i)
	}

	return GenerateNormals(indices, corners)
}
