package mesh

import (
	"github.com/james-bowman/sparse"
)

// VertexAdjacency builds the symmetric vertex adjacency matrix from the
// unique edge table, one row/column per vertex. BuildConnectivity must have
// run (ReadGmsh22 does this).
func (m *Mesh) VertexAdjacency() *sparse.CSR {
	dok := sparse.NewDOK(m.NumVertices, m.NumVertices)
	for _, e := range m.Edges {
		dok.Set(e.Vertices[0], e.Vertices[1], 1)
		dok.Set(e.Vertices[1], e.Vertices[0], 1)
	}
	return dok.ToCSR()
}

// Bandwidth returns the graph bandwidth of the vertex adjacency, the
// maximum |i-j| over connected vertex pairs. Structured grid numbering
// keeps this small; a blown-up bandwidth flags broken node deduplication.
func (m *Mesh) Bandwidth() int {
	var bw int
	m.VertexAdjacency().DoNonZero(func(i, j int, v float64) {
		d := i - j
		if d < 0 {
			d = -d
		}
		if d > bw {
			bw = d
		}
	})
	return bw
}

// AverageDegree returns the mean number of edge neighbors per vertex.
func (m *Mesh) AverageDegree() float64 {
	if m.NumVertices == 0 {
		return 0
	}
	return float64(2*len(m.Edges)) / float64(m.NumVertices)
}
