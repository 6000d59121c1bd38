package rectmesh

// MaterialGrid is a fixed-shape 2D array of 1-based material IDs, one per
// grid cell. Row 0 is the TOPMOST band of cells (highest y), matching how a
// grid literal reads on screen.
type MaterialGrid struct {
	nrows, ncols int
	ids          []int // row-major
}

// NewMaterialGrid builds a MaterialGrid from row slices. All rows must have
// the same length and the grid must be non-empty.
func NewMaterialGrid(rows [][]int) (*MaterialGrid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, validationf("material grid is empty")
	}
	ncols := len(rows[0])
	g := &MaterialGrid{
		nrows: len(rows),
		ncols: ncols,
		ids:   make([]int, 0, len(rows)*ncols),
	}
	for i, row := range rows {
		if len(row) != ncols {
			return nil, validationf("material grid row %d has %d entries, want %d",
				i, len(row), ncols)
		}
		g.ids = append(g.ids, row...)
	}
	return g, nil
}

// Dims returns (rows, cols) of the cell grid.
func (g *MaterialGrid) Dims() (nrows, ncols int) {
	return g.nrows, g.ncols
}

// At returns the material ID at grid position (row, col), row 0 = top band.
func (g *MaterialGrid) At(row, col int) int {
	return g.ids[row*g.ncols+col]
}
