// Package mesh reads generated Gmsh 2.2 mesh files back in and builds the
// connectivity needed to verify structured grids: physical group membership,
// the unique edge table, and vertex adjacency statistics.
package mesh

import (
	"fmt"
	"sort"
)

// ElementType represents the supported 2D element types.
type ElementType int

const (
	Line ElementType = iota
	Quad
)

func (e ElementType) String() string {
	return [...]string{"Line", "Quad"}[e]
}

// NumVerts returns the node count of the element type.
func (e ElementType) NumVerts() int {
	return [...]int{2, 4}[e]
}

// ElementGroup is a physical group: a named tag over a set of elements.
type ElementGroup struct {
	Dimension int
	Tag       int
	Name      string
	Elements  []int
}

// Edge is one unique mesh edge with its incident elements.
type Edge struct {
	Vertices [2]int // sorted vertex indices
	Elements []int
}

// Mesh holds a 2D mesh as read from file, 0-based internally.
type Mesh struct {
	FormatVersion string
	IsBinary      bool
	DataSize      int

	Vertices [][]float64 // [nverts][3]

	Elements     [][]int // element to vertex connectivity, 0-based
	ElementTypes []ElementType
	ElementTags  []int // physical group tag per element, 0 = untagged

	ElementGroups map[int]*ElementGroup

	Edges   []Edge
	edgeMap map[[2]int]int

	nodeIndex map[int]int // file node ID to dense 0-based index

	NumVertices int
	NumElements int
}

func NewMesh() *Mesh {
	return &Mesh{
		ElementGroups: make(map[int]*ElementGroup),
	}
}

// BuildConnectivity fills group membership and the unique edge table.
// Groups named in $PhysicalNames are kept; tags seen only on elements get
// an unnamed group entry.
func (m *Mesh) BuildConnectivity() {
	m.edgeMap = make(map[[2]int]int)
	m.Edges = m.Edges[:0]

	for elemID := 0; elemID < m.NumElements; elemID++ {
		tag := m.ElementTags[elemID]
		if tag != 0 {
			g, ok := m.ElementGroups[tag]
			if !ok {
				g = &ElementGroup{Dimension: 2, Tag: tag}
				m.ElementGroups[tag] = g
			}
			g.Elements = append(g.Elements, elemID)
		}
		for _, ev := range elementEdges(m.ElementTypes[elemID], m.Elements[elemID]) {
			key := ev
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			id, exists := m.edgeMap[key]
			if !exists {
				id = len(m.Edges)
				m.Edges = append(m.Edges, Edge{Vertices: key})
				m.edgeMap[key] = id
			}
			m.Edges[id].Elements = append(m.Edges[id].Elements, elemID)
		}
	}
}

// elementEdges lists the vertex pairs bounding an element.
func elementEdges(t ElementType, verts []int) [][2]int {
	switch t {
	case Line:
		return [][2]int{{verts[0], verts[1]}}
	case Quad:
		return [][2]int{
			{verts[0], verts[1]},
			{verts[1], verts[2]},
			{verts[2], verts[3]},
			{verts[3], verts[0]},
		}
	}
	return nil
}

// GroupTags returns the physical group tags present, ascending.
func (m *Mesh) GroupTags() []int {
	tags := make([]int, 0, len(m.ElementGroups))
	for tag := range m.ElementGroups {
		tags = append(tags, tag)
	}
	sort.Ints(tags)
	return tags
}

func (m *Mesh) String() string {
	return fmt.Sprintf("mesh: %d vertices, %d elements, %d groups, %d edges",
		m.NumVertices, m.NumElements, len(m.ElementGroups), len(m.Edges))
}
