// Package geo is a small in-process geometry kernel implementing the
// rectmesh.Engine surface for axis-aligned structured grids. It keeps a
// geometry database of points, lines, curve loops and plane surfaces, tags
// surfaces into physical groups, and meshes every rectangular surface into
// conforming quads written out in Gmsh MSH 2.2 ASCII format.
package geo

import "fmt"

type point struct {
	x, y, z  float64
	meshSize float64
}

// line endpoints are stored in the orientation given at creation.
type line struct {
	a, b int
}

type surface struct {
	wire int // curve loop tag
}

type physicalGroup struct {
	dim      int
	tag      int
	name     string
	entities []int
}

// Engine is the geometry and mesh database. The zero value is not usable;
// call NewEngine. Tags are 1-based per entity kind, like Gmsh's geo kernel.
type Engine struct {
	points       []point
	pointByCoord map[[3]float64]int
	lines        []line
	lineByEnds   map[[2]int]int
	loops        [][]int
	surfaces     []surface
	groups       []physicalGroup
	groupByTag   map[int]int

	synced bool

	// Generated mesh, filled in by GenerateMesh
	nodes       []meshNode
	nodeByCoord map[[2]float64]int
	elements    []meshElement
	meshed      bool
}

type meshNode struct {
	x, y float64
}

type meshElement struct {
	gmshType int // 3 = 4-node quadrangle
	physTag  int
	geomTag  int // parent surface tag
	nodes    []int
}

func NewEngine() *Engine {
	return &Engine{
		pointByCoord: make(map[[3]float64]int),
		lineByEnds:   make(map[[2]int]int),
		groupByTag:   make(map[int]int),
	}
}

// AddPoint creates a point or returns the tag of an existing point at the
// same exact coordinates. Partition coordinates are user-supplied exact
// values, so deduplication uses exact equality, no tolerance. A duplicate
// keeps the smaller of the two mesh sizes.
func (e *Engine) AddPoint(x, y, z, meshSize float64) (int, error) {
	if meshSize <= 0 {
		return 0, fmt.Errorf("geo: mesh size must be positive, got %v", meshSize)
	}
	key := [3]float64{x, y, z}
	if tag, ok := e.pointByCoord[key]; ok {
		if meshSize < e.points[tag-1].meshSize {
			e.points[tag-1].meshSize = meshSize
		}
		return tag, nil
	}
	e.points = append(e.points, point{x, y, z, meshSize})
	tag := len(e.points)
	e.pointByCoord[key] = tag
	return tag, nil
}

// AddLine creates a straight line between two existing points, reusing an
// existing line with the same endpoints regardless of orientation.
func (e *Engine) AddLine(startTag, endTag int) (int, error) {
	if err := e.checkPoint(startTag); err != nil {
		return 0, err
	}
	if err := e.checkPoint(endTag); err != nil {
		return 0, err
	}
	if startTag == endTag {
		return 0, fmt.Errorf("geo: degenerate line, both endpoints are point %d", startTag)
	}
	key := [2]int{startTag, endTag}
	if startTag > endTag {
		key = [2]int{endTag, startTag}
	}
	if tag, ok := e.lineByEnds[key]; ok {
		return tag, nil
	}
	e.lines = append(e.lines, line{startTag, endTag})
	tag := len(e.lines)
	e.lineByEnds[key] = tag
	return tag, nil
}

// AddCurveLoop creates a closed loop from signed line tags. A negative tag
// traverses that line against its stored orientation. The chain must close.
func (e *Engine) AddCurveLoop(curveTags []int) (int, error) {
	if len(curveTags) < 3 {
		return 0, fmt.Errorf("geo: curve loop needs at least 3 curves, got %d", len(curveTags))
	}
	var first, prev int
	for i, signed := range curveTags {
		tag := signed
		if tag < 0 {
			tag = -tag
		}
		if tag < 1 || tag > len(e.lines) {
			return 0, fmt.Errorf("geo: unknown line tag %d in curve loop", signed)
		}
		ln := e.lines[tag-1]
		start, end := ln.a, ln.b
		if signed < 0 {
			start, end = end, start
		}
		if i == 0 {
			first, prev = start, end
			continue
		}
		if start != prev {
			return 0, fmt.Errorf("geo: curve loop broken at position %d: line %d starts at point %d, want %d",
				i, signed, start, prev)
		}
		prev = end
	}
	if prev != first {
		return 0, fmt.Errorf("geo: curve loop not closed: ends at point %d, started at %d", prev, first)
	}
	loop := make([]int, len(curveTags))
	copy(loop, curveTags)
	e.loops = append(e.loops, loop)
	return len(e.loops), nil
}

// AddPlaneSurface creates a plane surface bounded by an existing loop.
func (e *Engine) AddPlaneSurface(wireTag int) (int, error) {
	if wireTag < 1 || wireTag > len(e.loops) {
		return 0, fmt.Errorf("geo: unknown curve loop tag %d", wireTag)
	}
	e.surfaces = append(e.surfaces, surface{wire: wireTag})
	return len(e.surfaces), nil
}

// AddPhysicalGroup tags surfaces as a named group. Only dimension 2 is
// supported by this kernel. Group tags must be unique.
func (e *Engine) AddPhysicalGroup(dim int, entityTags []int, tag int, name string) (int, error) {
	if dim != 2 {
		return 0, fmt.Errorf("geo: physical groups of dimension %d not supported", dim)
	}
	if tag < 1 {
		return 0, fmt.Errorf("geo: physical group tag must be positive, got %d", tag)
	}
	if _, exists := e.groupByTag[tag]; exists {
		return 0, fmt.Errorf("geo: physical group tag %d already in use", tag)
	}
	for _, s := range entityTags {
		if s < 1 || s > len(e.surfaces) {
			return 0, fmt.Errorf("geo: unknown surface tag %d in physical group %q", s, name)
		}
	}
	ents := make([]int, len(entityTags))
	copy(ents, entityTags)
	e.groups = append(e.groups, physicalGroup{dim: dim, tag: tag, name: name, entities: ents})
	e.groupByTag[tag] = len(e.groups) - 1
	return tag, nil
}

// Synchronize commits the geometry database to the model. Meshing requires
// a synchronized model.
func (e *Engine) Synchronize() error {
	e.synced = true
	return nil
}

func (e *Engine) checkPoint(tag int) error {
	if tag < 1 || tag > len(e.points) {
		return fmt.Errorf("geo: unknown point tag %d", tag)
	}
	return nil
}

// physTagOf returns the physical group tag owning a surface, or 0.
func (e *Engine) physTagOf(surfaceTag int) int {
	for _, g := range e.groups {
		for _, s := range g.entities {
			if s == surfaceTag {
				return g.tag
			}
		}
	}
	return 0
}

// NumPoints reports the number of distinct geometry points.
func (e *Engine) NumPoints() int { return len(e.points) }

// NumLines reports the number of distinct lines.
func (e *Engine) NumLines() int { return len(e.lines) }

// NumSurfaces reports the number of plane surfaces.
func (e *Engine) NumSurfaces() int { return len(e.surfaces) }
