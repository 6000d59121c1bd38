package rectmesh

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockEngine records every call so tests can assert on exactly what the
// builder asked the engine to do, including that nothing was asked at all.
type mockEngine struct {
	calls    []string
	points   int
	lines    int
	loops    int
	surfaces int
	groups   []mockGroup

	failOn string // method name that returns an injected error
}

type mockGroup struct {
	dim  int
	tag  int
	name string
	ents []int
}

var errInjected = errors.New("engine: injected failure")

func (m *mockEngine) record(call string) { m.calls = append(m.calls, call) }

func (m *mockEngine) AddPoint(x, y, z, meshSize float64) (int, error) {
	m.record(fmt.Sprintf("AddPoint(%g,%g,%g,%g)", x, y, z, meshSize))
	if m.failOn == "AddPoint" {
		return 0, errInjected
	}
	m.points++
	return m.points, nil
}

func (m *mockEngine) AddLine(a, b int) (int, error) {
	m.record(fmt.Sprintf("AddLine(%d,%d)", a, b))
	if m.failOn == "AddLine" {
		return 0, errInjected
	}
	m.lines++
	return m.lines, nil
}

func (m *mockEngine) AddCurveLoop(curves []int) (int, error) {
	m.record(fmt.Sprintf("AddCurveLoop(%v)", curves))
	if m.failOn == "AddCurveLoop" {
		return 0, errInjected
	}
	m.loops++
	return m.loops, nil
}

func (m *mockEngine) AddPlaneSurface(wire int) (int, error) {
	m.record(fmt.Sprintf("AddPlaneSurface(%d)", wire))
	if m.failOn == "AddPlaneSurface" {
		return 0, errInjected
	}
	m.surfaces++
	return m.surfaces, nil
}

func (m *mockEngine) AddPhysicalGroup(dim int, ents []int, tag int, name string) (int, error) {
	m.record(fmt.Sprintf("AddPhysicalGroup(%d,%v,%d,%s)", dim, ents, tag, name))
	if m.failOn == "AddPhysicalGroup" {
		return 0, errInjected
	}
	m.groups = append(m.groups, mockGroup{dim, tag, name, ents})
	return tag, nil
}

func (m *mockEngine) Synchronize() error {
	m.record("Synchronize")
	return nil
}

func (m *mockEngine) GenerateMesh(dim int) error {
	m.record(fmt.Sprintf("GenerateMesh(%d)", dim))
	return nil
}

func (m *mockEngine) Write(filename string) error {
	m.record("Write(" + filename + ")")
	return nil
}

// benchmarkGrid is the 3x3 assembly scenario: row 0 of the grid is the top
// band of cells.
func benchmarkGrid(t *testing.T) (*mockEngine, *RectMesh) {
	t.Helper()
	grid, err := NewMaterialGrid([][]int{
		{3, 3, 3},
		{2, 1, 3},
		{3, 2, 3},
	})
	if err != nil {
		t.Fatalf("grid construction failed: %v", err)
	}
	eng := &mockEngine{}
	rm, err := NewRectMesh(eng,
		[]float64{0, 24, 56, 80},
		[]float64{0, 24, 56, 80},
		[]string{"MAT1", "MAT2", "MAT3"},
		grid)
	if err != nil {
		t.Fatalf("builder construction failed: %v", err)
	}
	return eng, rm
}

func TestValidationShapeMismatch(t *testing.T) {
	grid, err := NewMaterialGrid([][]int{
		{1, 1},
		{1, 1},
	})
	if err != nil {
		t.Fatalf("grid construction failed: %v", err)
	}
	eng := &mockEngine{}
	_, err = NewRectMesh(eng, []float64{0, 1, 2, 3}, []float64{0, 1, 2}, []string{"A"}, grid)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	// A predictably-invalid input must never reach the engine
	assert.Empty(t, eng.calls)
}

func TestValidationMaterialIDRange(t *testing.T) {
	for _, bad := range []int{0, 4, -1} {
		grid, err := NewMaterialGrid([][]int{{bad}})
		if err != nil {
			t.Fatalf("grid construction failed: %v", err)
		}
		eng := &mockEngine{}
		_, err = NewRectMesh(eng, []float64{0, 1}, []float64{0, 1},
			[]string{"A", "B", "C"}, grid)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("material ID %d: expected ValidationError, got %v", bad, err)
		}
		assert.Empty(t, eng.calls)
	}
}

func TestValidationPartitions(t *testing.T) {
	grid, _ := NewMaterialGrid([][]int{{1}})
	cases := []struct {
		name string
		x, y []float64
	}{
		{"too short", []float64{0}, []float64{0, 1}},
		{"not increasing", []float64{0, 1}, []float64{1, 0}},
		{"repeated", []float64{0, 0}, []float64{0, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRectMesh(&mockEngine{}, tc.x, tc.y, []string{"A"}, grid)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestValidationRaggedGrid(t *testing.T) {
	_, err := NewMaterialGrid([][]int{
		{1, 2},
		{1},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for ragged grid, got %v", err)
	}
}

func TestGenerateBenchmarkAssembly(t *testing.T) {
	eng, rm := benchmarkGrid(t)
	if err := rm.Generate(1.0); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// 4x4 points, 3x4 + 4x3 lines, 9 loops and surfaces
	assert.Equal(t, 16, eng.points)
	assert.Equal(t, 24, eng.lines)
	assert.Equal(t, 9, eng.loops)
	assert.Equal(t, 9, eng.surfaces)

	// IDs 1..3 all appear, so exactly 3 groups, tag = material ID
	if len(eng.groups) != 3 {
		t.Fatalf("expected 3 physical groups, got %d", len(eng.groups))
	}
	counts := map[string]int{}
	seen := map[int]bool{}
	total := 0
	for _, g := range eng.groups {
		assert.Equal(t, 2, g.dim)
		counts[g.name] = len(g.ents)
		total += len(g.ents)
		for _, s := range g.ents {
			if seen[s] {
				t.Errorf("surface %d assigned to more than one group", s)
			}
			seen[s] = true
		}
	}
	// Row 0 = top: bottom band of cells reads the LAST grid row
	assert.Equal(t, 1, counts["MAT1"])
	assert.Equal(t, 2, counts["MAT2"])
	assert.Equal(t, 6, counts["MAT3"])
	assert.Equal(t, 9, total)
}

func TestGenerateRowConvention(t *testing.T) {
	// 1x2 grid: top cell MAT2, bottom cell MAT1
	grid, _ := NewMaterialGrid([][]int{
		{2},
		{1},
	})
	eng := &mockEngine{}
	rm, err := NewRectMesh(eng, []float64{0, 1}, []float64{0, 1, 2}, []string{"BOT", "TOP"}, grid)
	if err != nil {
		t.Fatalf("builder construction failed: %v", err)
	}
	if err = rm.Generate(0.5); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	// Surfaces are created bottom row first
	bottom := rm.SurfaceTag(0, 0)
	top := rm.SurfaceTag(0, 1)
	for _, g := range eng.groups {
		switch g.name {
		case "BOT":
			assert.Equal(t, []int{bottom}, g.ents)
		case "TOP":
			assert.Equal(t, []int{top}, g.ents)
		}
	}
}

func TestGenerateSkipsUnusedMaterials(t *testing.T) {
	grid, _ := NewMaterialGrid([][]int{{3, 3}})
	eng := &mockEngine{}
	rm, err := NewRectMesh(eng, []float64{0, 1, 2}, []float64{0, 1},
		[]string{"A", "B", "C"}, grid)
	if err != nil {
		t.Fatalf("builder construction failed: %v", err)
	}
	if err = rm.Generate(1.0); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(eng.groups) != 1 {
		t.Fatalf("expected 1 physical group for 1 used material, got %d", len(eng.groups))
	}
	assert.Equal(t, 3, eng.groups[0].tag)
	assert.Equal(t, "C", eng.groups[0].name)
}

func TestEngineErrorsPropagateUnchanged(t *testing.T) {
	for _, failOn := range []string{
		"AddPoint", "AddLine", "AddCurveLoop", "AddPlaneSurface", "AddPhysicalGroup",
	} {
		t.Run(failOn, func(t *testing.T) {
			eng, rm := benchmarkGrid(t)
			eng.failOn = failOn
			err := rm.Generate(1.0)
			if !errors.Is(err, errInjected) {
				t.Fatalf("engine error was not passed through, got %v", err)
			}
			// A failed generation must not look generated
			_, err = rm.Resolve(rm.AllCells())
			var serr *StateError
			if !errors.As(err, &serr) {
				t.Errorf("expected StateError after failed Generate, got %v", err)
			}
		})
	}
}

func TestExportBeforeGenerate(t *testing.T) {
	_, rm := benchmarkGrid(t)
	err := rm.ExportAssemblyMaterials(filepath.Join(t.TempDir(), "assembly_mat.txt"))
	var serr *StateError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StateError, got %v", err)
	}
}

func TestExportAssemblyMaterials(t *testing.T) {
	_, rm := benchmarkGrid(t)
	if err := rm.Generate(1.0); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "assembly_mat.txt")
	if err := rm.ExportAssemblyMaterials(path); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export failed: %v", err)
	}
	want := "1 MAT1\n2 MAT2\n3 MAT3\n"
	assert.Equal(t, want, string(data))

	// Parsing the file back recovers the tag -> name mapping
	got := map[int]string{}
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for sc.Scan() {
		var (
			tag  int
			name string
		)
		if _, err := fmt.Sscanf(sc.Text(), "%d %s", &tag, &name); err != nil {
			t.Fatalf("unparseable line %q: %v", sc.Text(), err)
		}
		got[tag] = name
	}
	assert.Equal(t, map[int]string{1: "MAT1", 2: "MAT2", 3: "MAT3"}, got)

	// Export is idempotent: second write is byte-identical
	path2 := filepath.Join(t.TempDir(), "assembly_mat_2.txt")
	if err := rm.ExportAssemblyMaterials(path2); err != nil {
		t.Fatalf("second export failed: %v", err)
	}
	data2, _ := os.ReadFile(path2)
	assert.Equal(t, data, data2)
}

func TestSelection(t *testing.T) {
	_, rm := benchmarkGrid(t)
	if err := rm.Generate(1.0); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	all := rm.AllCells()
	assert.Equal(t, []int{0, 1, 2}, all.X)
	assert.Equal(t, []int{0, 1, 2}, all.Y)

	center := all.Equal(XAxis, 1).Equal(YAxis, 1)
	tags, err := rm.Resolve(center)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	assert.Equal(t, []int{rm.SurfaceTag(1, 1)}, tags)

	// Left column joined with right column spans both, all rows
	sides := all.Equal(XAxis, 0).Join(all.Equal(XAxis, 2))
	assert.Equal(t, []int{0, 2}, sides.X)
	tags, err = rm.Resolve(sides)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	assert.Len(t, tags, 6)

	band := all.Greater(YAxis, 1).Less(YAxis, 2)
	assert.Equal(t, []int{1, 2}, band.Y)
}
