package engine

import (
	"math"
	"testing"
)

func TestGenerateNormalsSimpleTriangle(t *testing.T) {
	// One triangle in the XZ plane, wound so the face normal points up.
	model := []float32{
		0, 0, 0,
		0, 0, 1,
		1, 0, 0,
	}
	indices := []uint8{0, 1, 2}

	vertices, normals := GenerateNormals(indices, model)

	if len(vertices) != 9 || len(normals) != 9 {
		t.Fatalf("got %d vertices, %d normals; want 9 each", len(vertices), len(normals))
	}
	wantVertices := []float32{0, 0, 0, 0, 0, 1, 1, 0, 0}
	for i := range wantVertices {
		if vertices[i] != wantVertices[i] {
			t.Fatalf("vertices = %v, want %v", vertices, wantVertices)
		}
	}
	// The same face normal repeated for all three corners.
	for i := 0; i < 9; i += 3 {
		if normals[i] != 0 || normals[i+1] != 1 || normals[i+2] != 0 {
			t.Errorf("normal at vertex %d = %v, want 0 1 0", i/3, normals[i:i+3])
		}
	}
}

func TestGenerateNormalsSharedVertices(t *testing.T) {
	// Two triangles sharing an edge must each get their own flat normal.
	model := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 0, 1,
		0, 1, 0,
	}
	indices := []uint8{0, 2, 1, 0, 1, 3}

	vertices, normals := GenerateNormals(indices, model)
	if len(vertices) != 18 || len(normals) != 18 {
		t.Fatalf("got %d vertices, %d normals; want 18 each", len(vertices), len(normals))
	}
	// First face lies in the XZ plane, second in the XY plane.
	if normals[1] != 1 {
		t.Errorf("first face normal = %v, want +Y", normals[0:3])
	}
	if normals[11] != 1 {
		t.Errorf("second face normal = %v, want +Z", normals[9:12])
	}
}

func TestHexatileMeshIsUnitNormalized(t *testing.T) {
	vertices, normals := HexatileMesh()

	if len(vertices) == 0 || len(vertices) != len(normals) {
		t.Fatalf("got %d vertices, %d normals", len(vertices), len(normals))
	}
	if len(vertices)%9 != 0 {
		t.Errorf("vertex floats = %d, want whole triangles", len(vertices))
	}
	for i := 0; i < len(normals); i += 3 {
		n := math.Sqrt(float64(normals[i]*normals[i] + normals[i+1]*normals[i+1] + normals[i+2]*normals[i+2]))
		if math.Abs(n-1.0) > 1e-5 {
			t.Fatalf("normal %d has length %v, want unit", i/3, n)
		}
	}
	// All vertices lie within the unit hexagon footprint.
	for i := 0; i < len(vertices); i += 3 {
		r := math.Sqrt(float64(vertices[i]*vertices[i] + vertices[i+2]*vertices[i+2]))
		if r > 1.0+1e-5 {
			t.Fatalf("vertex %d at radius %v, want <= 1", i/3, r)
		}
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := Translation(1, 2, 3).Mul(Scaling(2, 2, 2))
	if got := m.Mul(Identity()); got != m {
		t.Errorf("m * I = %v, want %v", got, m)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I * m = %v, want %v", got, m)
	}
}

func TestMat4TranslationComposes(t *testing.T) {
	m := Translation(1, 0, 0).Mul(Translation(2, 3, 0))
	if m[12] != 3 || m[13] != 3 || m[14] != 0 {
		t.Errorf("composed translation = %v %v %v, want 3 3 0", m[12], m[13], m[14])
	}
}

func TestMat4RotationYQuarterTurn(t *testing.T) {
	m := RotationY(float32(math.Pi / 2))
	// +X maps to -Z under a quarter turn around Y.
	x := [3]float32{m[0], m[1], m[2]}
	if math.Abs(float64(x[0])) > 1e-6 || math.Abs(float64(x[2]+1)) > 1e-6 {
		t.Errorf("rotated +X = %v, want 0 0 -1", x)
	}
}
