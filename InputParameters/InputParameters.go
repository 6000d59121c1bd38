package InputParameters

import (
	"fmt"

	yaml "gopkg.in/yaml.v3"
	"gonum.org/v1/gonum/floats"
)

// AxisSpec describes one partition axis of the rectangular grid, either as
// explicit strictly increasing coordinates or as a uniform span.
type AxisSpec struct {
	Coords   []float64 `yaml:"Coords"`
	Min      float64   `yaml:"Min"`
	Max      float64   `yaml:"Max"`
	NumCells int       `yaml:"NumCells"`
}

// Partition expands the axis spec into partition coordinates. Explicit
// Coords win; otherwise NumCells uniform cells spanning [Min, Max].
func (a AxisSpec) Partition() ([]float64, error) {
	if len(a.Coords) > 0 {
		return a.Coords, nil
	}
	if a.NumCells < 1 {
		return nil, fmt.Errorf("axis needs either Coords or NumCells >= 1")
	}
	if a.Max <= a.Min {
		return nil, fmt.Errorf("axis Max (%v) must exceed Min (%v)", a.Max, a.Min)
	}
	return floats.Span(make([]float64, a.NumCells+1), a.Min, a.Max), nil
}

// Parameters obtained from the YAML grid-definition file
type GridParameters struct {
	Title        string   `yaml:"Title"`
	MeshSize     float64  `yaml:"MeshSize"`
	X            AxisSpec `yaml:"X"`
	Y            AxisSpec `yaml:"Y"`
	Materials    []string `yaml:"Materials"`
	MaterialGrid [][]int  `yaml:"MaterialGrid"` // row 0 = top band
}

func (gp *GridParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, gp)
}

// Partitions expands both axis specs.
func (gp *GridParameters) Partitions() (x, y []float64, err error) {
	if x, err = gp.X.Partition(); err != nil {
		return nil, nil, fmt.Errorf("X: %v", err)
	}
	if y, err = gp.Y.Partition(); err != nil {
		return nil, nil, fmt.Errorf("Y: %v", err)
	}
	return x, y, nil
}

func (gp *GridParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", gp.Title)
	fmt.Printf("%8.5f\t\t= MeshSize\n", gp.MeshSize)
	x, y, err := gp.Partitions()
	if err != nil {
		fmt.Printf("invalid axes: %v\n", err)
	} else {
		fmt.Printf("%v\t= X partitions\n", x)
		fmt.Printf("%v\t= Y partitions\n", y)
	}
	for i, name := range gp.Materials {
		fmt.Printf("[%d]\t\t\t= %s\n", i+1, name)
	}
	for _, row := range gp.MaterialGrid {
		fmt.Printf("%v\n", row)
	}
}
