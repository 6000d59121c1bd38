package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGridParameters(t *testing.T) {
	data := []byte(`
Title: "3x3 assembly"
MeshSize: 1.0
X:
  Coords: [0, 24, 56, 80]
Y:
  Min: 0
  Max: 80
  NumCells: 4
Materials: [MAT1, MAT2, MAT3]
MaterialGrid:
  - [3, 3, 3]
  - [2, 1, 3]
  - [3, 2, 3]
  - [1, 1, 1]
`)
	gp := &GridParameters{}
	if err := gp.Parse(data); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	assert.Equal(t, "3x3 assembly", gp.Title)
	assert.Equal(t, 1.0, gp.MeshSize)
	assert.Equal(t, []string{"MAT1", "MAT2", "MAT3"}, gp.Materials)
	assert.Equal(t, 4, len(gp.MaterialGrid))

	x, y, err := gp.Partitions()
	if err != nil {
		t.Fatalf("Partitions failed: %v", err)
	}
	assert.Equal(t, []float64{0, 24, 56, 80}, x)
	// Uniform axis expands to NumCells+1 evenly spaced coordinates
	assert.Equal(t, []float64{0, 20, 40, 60, 80}, y)
}

func TestAxisSpecErrors(t *testing.T) {
	cases := []struct {
		name string
		spec AxisSpec
	}{
		{"empty", AxisSpec{}},
		{"zero cells", AxisSpec{Min: 0, Max: 1, NumCells: 0}},
		{"inverted span", AxisSpec{Min: 1, Max: 0, NumCells: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.spec.Partition(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExplicitCoordsWin(t *testing.T) {
	spec := AxisSpec{Coords: []float64{0, 1, 3}, Min: 0, Max: 100, NumCells: 50}
	p, err := spec.Partition()
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	assert.Equal(t, []float64{0, 1, 3}, p)
}
