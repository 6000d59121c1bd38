package rectmesh

// Engine is the subset of a CAD/meshing kernel consumed by the rectangular
// grid builder. It mirrors the Gmsh built-in geometry API: entities are
// identified by positive integer tags assigned by the engine, and a negative
// curve tag inside a loop means the curve is traversed against its
// orientation.
//
// The engine's initialize/finalize lifecycle belongs to the caller; the
// builder assumes a live engine and never tears it down. Failures inside the
// engine propagate to the caller unchanged, with no retry and no rollback of
// partially constructed geometry.
type Engine interface {
	// AddPoint creates a geometry point with a target mesh element size.
	AddPoint(x, y, z, meshSize float64) (tag int, err error)

	// AddLine creates a straight line between two point tags.
	AddLine(startTag, endTag int) (tag int, err error)

	// AddCurveLoop creates a closed loop from signed curve tags.
	AddCurveLoop(curveTags []int) (tag int, err error)

	// AddPlaneSurface creates a plane surface bounded by a curve loop.
	AddPlaneSurface(wireTag int) (tag int, err error)

	// AddPhysicalGroup tags a set of entities of the given dimension as a
	// named physical group with the requested group tag.
	AddPhysicalGroup(dim int, entityTags []int, tag int, name string) (int, error)

	// Synchronize commits the geometry to the engine's model.
	Synchronize() error

	// GenerateMesh meshes the model up to the given dimension.
	GenerateMesh(dim int) error

	// Write writes the generated mesh to a file; format follows the
	// filename extension.
	Write(filename string) error
}
