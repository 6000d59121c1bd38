package rectmesh

import (
	"bufio"
	"fmt"
	"os"
	"sort"
)

// PhysicalGroup records one material region created during Generate.
type PhysicalGroup struct {
	Tag      int    // equals the 1-based material ID
	Name     string // material name
	Surfaces []int  // engine surface tags, in cell construction order
}

// RectMesh builds a structured rectangular grid in an external geometry
// engine and tags every cell surface with its material's physical group.
//
// The cell at grid row r, column c covers x in [X[c], X[c+1]] and, because
// row 0 of the material grid is the topmost band, y in
// [Y[Ny-1-r], Y[Ny-r]].
type RectMesh struct {
	X, Y   []float64 // partition coordinates, strictly increasing
	Nx, Ny int       // cell counts per axis

	names []string
	grid  *MaterialGrid
	eng   Engine

	meshSize float64

	// Entity tag bookkeeping, filled in by Generate. Shared points and
	// lines between adjacent cells are reused through these index arrays
	// rather than recreated, so the resulting grid is conforming.
	nodes    [][]int // [Nx+1][Ny+1]
	lineX    [][]int // [Nx][Ny+1], lines along x
	lineY    [][]int // [Nx+1][Ny], lines along y
	surfaces [][]int // [Nx][Ny]

	groups    []PhysicalGroup
	generated bool
}

// NewRectMesh validates the grid definition and binds it to an engine.
// No engine call is made here or by any later call on invalid input.
func NewRectMesh(eng Engine, x, y []float64, materialNames []string, grid *MaterialGrid) (*RectMesh, error) {
	if eng == nil {
		return nil, validationf("nil engine")
	}
	if err := checkPartition("x", x); err != nil {
		return nil, err
	}
	if err := checkPartition("y", y); err != nil {
		return nil, err
	}
	if len(materialNames) == 0 {
		return nil, validationf("no material names supplied")
	}
	nx, ny := len(x)-1, len(y)-1
	nrows, ncols := grid.Dims()
	if nrows != ny || ncols != nx {
		return nil, validationf("material grid is %dx%d, cell grid is %dx%d (rows x cols)",
			nrows, ncols, ny, nx)
	}
	for r := 0; r < nrows; r++ {
		for c := 0; c < ncols; c++ {
			if id := grid.At(r, c); id < 1 || id > len(materialNames) {
				return nil, validationf("material ID %d at grid (%d,%d) outside catalog [1,%d]",
					id, r, c, len(materialNames))
			}
		}
	}
	return &RectMesh{
		X:     x,
		Y:     y,
		Nx:    nx,
		Ny:    ny,
		names: materialNames,
		grid:  grid,
		eng:   eng,
	}, nil
}

func checkPartition(axis string, p []float64) error {
	if len(p) < 2 {
		return validationf("%s partition needs at least 2 coordinates, got %d", axis, len(p))
	}
	for i := 1; i < len(p); i++ {
		if p[i] <= p[i-1] {
			return validationf("%s partition not strictly increasing at index %d: %v <= %v",
				axis, i, p[i], p[i-1])
		}
	}
	return nil
}

// Generate constructs the grid geometry in the engine: points, lines, one
// plane surface per cell, and one physical group per material in use, each
// group tagged with the 1-based material ID. meshSize is the target element
// size set on every point.
//
// An engine failure mid-construction leaves the engine partially built; the
// caller reinitializes the engine before retrying.
func (rm *RectMesh) Generate(meshSize float64) error {
	if meshSize <= 0 {
		return validationf("mesh size must be positive, got %v", meshSize)
	}
	rm.meshSize = meshSize

	if err := rm.generateNodes(); err != nil {
		return err
	}
	if err := rm.generateLines(); err != nil {
		return err
	}
	if err := rm.generateSurfaces(); err != nil {
		return err
	}
	if err := rm.generatePhysicalGroups(); err != nil {
		return err
	}
	rm.generated = true
	return nil
}

func (rm *RectMesh) generateNodes() (err error) {
	rm.nodes = make([][]int, rm.Nx+1)
	for ix := 0; ix <= rm.Nx; ix++ {
		rm.nodes[ix] = make([]int, rm.Ny+1)
	}
	for iy := 0; iy <= rm.Ny; iy++ {
		for ix := 0; ix <= rm.Nx; ix++ {
			rm.nodes[ix][iy], err = rm.eng.AddPoint(rm.X[ix], rm.Y[iy], 0, rm.meshSize)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (rm *RectMesh) generateLines() (err error) {
	// Lines along the x direction
	rm.lineX = make([][]int, rm.Nx)
	for ix := 0; ix < rm.Nx; ix++ {
		rm.lineX[ix] = make([]int, rm.Ny+1)
	}
	for iy := 0; iy <= rm.Ny; iy++ {
		for ix := 0; ix < rm.Nx; ix++ {
			rm.lineX[ix][iy], err = rm.eng.AddLine(rm.nodes[ix][iy], rm.nodes[ix+1][iy])
			if err != nil {
				return err
			}
		}
	}
	// Lines along the y direction
	rm.lineY = make([][]int, rm.Nx+1)
	for ix := 0; ix <= rm.Nx; ix++ {
		rm.lineY[ix] = make([]int, rm.Ny)
	}
	for ix := 0; ix <= rm.Nx; ix++ {
		for iy := 0; iy < rm.Ny; iy++ {
			rm.lineY[ix][iy], err = rm.eng.AddLine(rm.nodes[ix][iy], rm.nodes[ix][iy+1])
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (rm *RectMesh) generateSurfaces() (err error) {
	rm.surfaces = make([][]int, rm.Nx)
	for ix := 0; ix < rm.Nx; ix++ {
		rm.surfaces[ix] = make([]int, rm.Ny)
	}
	for iy := 0; iy < rm.Ny; iy++ {
		for ix := 0; ix < rm.Nx; ix++ {
			// Counter-clockwise from the bottom edge; shared edges are
			// reused with reversed orientation.
			loop := []int{
				+rm.lineX[ix][iy],
				+rm.lineY[ix+1][iy],
				-rm.lineX[ix][iy+1],
				-rm.lineY[ix][iy],
			}
			var wire int
			if wire, err = rm.eng.AddCurveLoop(loop); err != nil {
				return err
			}
			if rm.surfaces[ix][iy], err = rm.eng.AddPlaneSurface(wire); err != nil {
				return err
			}
		}
	}
	return nil
}

func (rm *RectMesh) generatePhysicalGroups() error {
	byMaterial := make([][]int, len(rm.names)) // surfaces per 0-based material index
	for iy := 0; iy < rm.Ny; iy++ {
		for ix := 0; ix < rm.Nx; ix++ {
			// Row 0 of the grid is the top band; cell row iy counts from
			// the bottom.
			id := rm.grid.At(rm.Ny-1-iy, ix)
			byMaterial[id-1] = append(byMaterial[id-1], rm.surfaces[ix][iy])
		}
	}
	rm.groups = rm.groups[:0]
	for i, surfs := range byMaterial {
		if len(surfs) == 0 {
			continue // material never assigned, no group
		}
		tag := i + 1
		if _, err := rm.eng.AddPhysicalGroup(2, surfs, tag, rm.names[i]); err != nil {
			return err
		}
		rm.groups = append(rm.groups, PhysicalGroup{
			Tag:      tag,
			Name:     rm.names[i],
			Surfaces: surfs,
		})
	}
	return nil
}

// Groups returns the physical groups created by Generate, ascending by tag.
func (rm *RectMesh) Groups() []PhysicalGroup {
	out := make([]PhysicalGroup, len(rm.groups))
	copy(out, rm.groups)
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// SurfaceTag returns the engine surface tag of the cell at column ix
// (from x=min) and row iy (from y=min).
func (rm *RectMesh) SurfaceTag(ix, iy int) int {
	return rm.surfaces[ix][iy]
}

// ExportAssemblyMaterials writes the assembly/material index: one line per
// physical group created by Generate, "<tag> <name>\n", ascending tag order,
// no header. Output is byte-identical across repeated calls on the same
// generated state.
func (rm *RectMesh) ExportAssemblyMaterials(path string) (err error) {
	if !rm.generated {
		return &StateError{
			Op:  "export assembly materials",
			Msg: "no mesh generated yet, call Generate first",
		}
	}
	var f *os.File
	if f, err = os.Create(path); err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	for _, g := range rm.Groups() {
		if _, err = fmt.Fprintf(w, "%d %s\n", g.Tag, g.Name); err != nil {
			return err
		}
	}
	return w.Flush()
}
