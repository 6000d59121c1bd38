package rectmesh

import "sort"

// Axis selects which cell-index direction a Selection predicate applies to.
type Axis int

const (
	XAxis Axis = iota
	YAxis
)

// Selection is a rectangular subset of the cell index space, held as the
// cell indices retained along each axis. A cell (ix, iy) is selected when
// ix is in X and iy is in Y. Selections are used to carve out material
// regions or boundary bands by index rather than coordinate.
type Selection struct {
	X, Y []int
}

// AllCells returns the selection covering the full cell grid.
func (rm *RectMesh) AllCells() Selection {
	s := Selection{
		X: make([]int, rm.Nx),
		Y: make([]int, rm.Ny),
	}
	for i := range s.X {
		s.X[i] = i
	}
	for i := range s.Y {
		s.Y[i] = i
	}
	return s
}

func (s Selection) filter(axis Axis, keep func(int) bool) Selection {
	out := Selection{X: s.X, Y: s.Y}
	src := s.X
	if axis == YAxis {
		src = s.Y
	}
	kept := make([]int, 0, len(src))
	for _, i := range src {
		if keep(i) {
			kept = append(kept, i)
		}
	}
	if axis == XAxis {
		out.X = kept
	} else {
		out.Y = kept
	}
	return out
}

// Greater keeps cells whose index along axis is >= bound.
func (s Selection) Greater(axis Axis, bound int) Selection {
	return s.filter(axis, func(i int) bool { return i >= bound })
}

// Less keeps cells whose index along axis is <= bound.
func (s Selection) Less(axis Axis, bound int) Selection {
	return s.filter(axis, func(i int) bool { return i <= bound })
}

// Equal keeps cells whose index along axis is exactly bound.
func (s Selection) Equal(axis Axis, bound int) Selection {
	return s.filter(axis, func(i int) bool { return i == bound })
}

// Join unions two selections axis-wise, returning sorted unique indices.
func (s Selection) Join(o Selection) Selection {
	return Selection{
		X: mergeUnique(s.X, o.X),
		Y: mergeUnique(s.Y, o.Y),
	}
}

func mergeUnique(a, b []int) []int {
	seen := make(map[int]bool, len(a)+len(b))
	out := make([]int, 0, len(a)+len(b))
	for _, v := range append(append([]int{}, a...), b...) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

// Resolve maps a selection to the engine surface tags of its cells, in
// row-major order over (iy, ix). Valid only after Generate.
func (rm *RectMesh) Resolve(s Selection) ([]int, error) {
	if !rm.generated {
		return nil, &StateError{
			Op:  "resolve selection",
			Msg: "no mesh generated yet, call Generate first",
		}
	}
	tags := make([]int, 0, len(s.X)*len(s.Y))
	for _, iy := range s.Y {
		for _, ix := range s.X {
			tags = append(tags, rm.surfaces[ix][iy])
		}
	}
	return tags, nil
}
