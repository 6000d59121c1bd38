package geo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// GenerateMesh meshes every plane surface into quadrangles. Only dim 2 is
// supported. Each rectangular surface is subdivided along both axes by the
// ceiling of span over the smallest corner mesh size; nodes on shared edges
// between adjacent surfaces are deduplicated, so the mesh is conforming as
// long as the corner sizes agree along the shared edge.
func (e *Engine) GenerateMesh(dim int) error {
	if dim != 2 {
		return fmt.Errorf("geo: cannot generate a %dD mesh, only 2D supported", dim)
	}
	if !e.synced {
		return fmt.Errorf("geo: model not synchronized, call Synchronize before GenerateMesh")
	}
	e.nodes = e.nodes[:0]
	e.elements = e.elements[:0]
	e.nodeByCoord = make(map[[2]float64]int)

	for sTag := 1; sTag <= len(e.surfaces); sTag++ {
		if err := e.meshSurface(sTag); err != nil {
			return err
		}
	}
	e.meshed = true
	return nil
}

func (e *Engine) meshSurface(sTag int) error {
	corners, err := e.surfaceCorners(sTag)
	if err != nil {
		return err
	}
	var (
		xmin, xmax = corners[0].x, corners[0].x
		ymin, ymax = corners[0].y, corners[0].y
		sizes      = make([]float64, len(corners))
	)
	for i, c := range corners {
		xmin = math.Min(xmin, c.x)
		xmax = math.Max(xmax, c.x)
		ymin = math.Min(ymin, c.y)
		ymax = math.Max(ymax, c.y)
		sizes[i] = c.meshSize
	}
	for _, c := range corners {
		if (c.x != xmin && c.x != xmax) || (c.y != ymin && c.y != ymax) {
			return fmt.Errorf("geo: surface %d is not an axis-aligned rectangle", sTag)
		}
	}
	h := floats.Min(sizes)
	nsx := subdivisions(xmax-xmin, h)
	nsy := subdivisions(ymax-ymin, h)
	physTag := e.physTagOf(sTag)

	// Node grid for this surface; boundary nodes land on exact partition
	// coordinates so neighbors resolve to the same node tags.
	grid := make([][]int, nsx+1)
	for i := 0; i <= nsx; i++ {
		grid[i] = make([]int, nsy+1)
		for j := 0; j <= nsy; j++ {
			x := interpolate(xmin, xmax, i, nsx)
			y := interpolate(ymin, ymax, j, nsy)
			grid[i][j] = e.getOrCreateNode(x, y)
		}
	}
	for j := 0; j < nsy; j++ {
		for i := 0; i < nsx; i++ {
			e.elements = append(e.elements, meshElement{
				gmshType: 3, // 4-node quadrangle
				physTag:  physTag,
				geomTag:  sTag,
				nodes: []int{
					grid[i][j],
					grid[i+1][j],
					grid[i+1][j+1],
					grid[i][j+1],
				},
			})
		}
	}
	return nil
}

// surfaceCorners collects the distinct points bounding a surface's loop.
func (e *Engine) surfaceCorners(sTag int) ([]point, error) {
	wire := e.surfaces[sTag-1].wire
	seen := make(map[int]bool)
	var corners []point
	for _, signed := range e.loops[wire-1] {
		tag := signed
		if tag < 0 {
			tag = -tag
		}
		ln := e.lines[tag-1]
		for _, p := range [2]int{ln.a, ln.b} {
			if !seen[p] {
				seen[p] = true
				corners = append(corners, e.points[p-1])
			}
		}
	}
	if len(corners) != 4 {
		return nil, fmt.Errorf("geo: surface %d bounded by %d points, want 4", sTag, len(corners))
	}
	return corners, nil
}

func subdivisions(span, h float64) int {
	n := int(math.Ceil(span/h - 1e-12))
	if n < 1 {
		n = 1
	}
	return n
}

// interpolate keeps the endpoints exact so shared-edge nodes deduplicate.
func interpolate(lo, hi float64, i, n int) float64 {
	switch i {
	case 0:
		return lo
	case n:
		return hi
	}
	return lo + (hi-lo)*float64(i)/float64(n)
}

func (e *Engine) getOrCreateNode(x, y float64) int {
	key := [2]float64{x, y}
	if tag, ok := e.nodeByCoord[key]; ok {
		return tag
	}
	e.nodes = append(e.nodes, meshNode{x, y})
	tag := len(e.nodes)
	e.nodeByCoord[key] = tag
	return tag
}

// NumNodes reports the generated mesh node count.
func (e *Engine) NumNodes() int { return len(e.nodes) }

// NumElements reports the generated mesh element count.
func (e *Engine) NumElements() int { return len(e.elements) }
