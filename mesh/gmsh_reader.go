package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// gmsh22ElementTypes maps the Gmsh element type codes this reader accepts.
var gmsh22ElementTypes = map[int]ElementType{
	1: Line,
	3: Quad,
}

// ReadGmsh22 reads a Gmsh MSH file format version 2.2, ASCII.
func ReadGmsh22(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	msh := NewMesh()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "$MeshFormat":
			if err := readMeshFormat22(scanner, msh); err != nil {
				return nil, err
			}

		case "$PhysicalNames":
			if err := readPhysicalNames(scanner, msh); err != nil {
				return nil, err
			}

		case "$Nodes":
			if err := readNodes22(scanner, msh); err != nil {
				return nil, err
			}

		case "$Elements":
			if err := readElements22(scanner, msh); err != nil {
				return nil, err
			}

		case "$NodeData", "$ElementData", "$ElementNodeData":
			// Skip data sections
			endMarker := "$End" + line[1:]
			for scanner.Scan() {
				if strings.TrimSpace(scanner.Text()) == endMarker {
					break
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}

	msh.BuildConnectivity()
	return msh, nil
}

// readMeshFormat22 reads the MeshFormat section
func readMeshFormat22(scanner *bufio.Scanner, msh *Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}

	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}

	msh.FormatVersion = parts[0]
	if msh.FormatVersion != "2.2" {
		return fmt.Errorf("unsupported MSH format version %s, want 2.2", msh.FormatVersion)
	}
	fileType, _ := strconv.Atoi(parts[1])
	msh.IsBinary = fileType == 1
	if msh.IsBinary {
		return fmt.Errorf("binary MSH files not supported")
	}
	msh.DataSize, _ = strconv.Atoi(parts[2])

	// Skip to end
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndMeshFormat" {
			break
		}
	}

	return nil
}

// readPhysicalNames reads physical group names
func readPhysicalNames(scanner *bufio.Scanner, msh *Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in PhysicalNames")
	}

	numNames, _ := strconv.Atoi(strings.TrimSpace(scanner.Text()))

	for i := 0; i < numNames; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading physical names")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) >= 3 {
			dimension, _ := strconv.Atoi(parts[0])
			tag, _ := strconv.Atoi(parts[1])
			name := strings.Trim(parts[2], "\"")

			// Join remaining parts if name contains spaces
			for j := 3; j < len(parts); j++ {
				name += " " + strings.Trim(parts[j], "\"")
			}

			msh.ElementGroups[tag] = &ElementGroup{
				Dimension: dimension,
				Tag:       tag,
				Name:      name,
				Elements:  []int{},
			}
		}
	}

	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndPhysicalNames" {
			break
		}
	}

	return nil
}

// readNodes22 reads nodes in v2.2 format. File node IDs are 1-based and may
// be sparse; they are remapped to dense 0-based indices.
func readNodes22(scanner *bufio.Scanner, msh *Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}

	numNodes, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid node count: %v", err)
	}

	msh.Vertices = make([][]float64, 0, numNodes)
	msh.nodeIndex = make(map[int]int, numNodes)

	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading nodes")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return fmt.Errorf("invalid node line: %s", scanner.Text())
		}
		id, _ := strconv.Atoi(parts[0])
		x, _ := strconv.ParseFloat(parts[1], 64)
		y, _ := strconv.ParseFloat(parts[2], 64)
		z, _ := strconv.ParseFloat(parts[3], 64)

		msh.nodeIndex[id] = len(msh.Vertices)
		msh.Vertices = append(msh.Vertices, []float64{x, y, z})
	}
	msh.NumVertices = len(msh.Vertices)

	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndNodes" {
			break
		}
	}

	return nil
}

// readElements22 reads elements in v2.2 format:
// id type ntags <tags...> <nodes...>, first tag is the physical group.
// Element types other than 2-node lines and 4-node quads are rejected.
func readElements22(scanner *bufio.Scanner, msh *Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Elements")
	}

	numElements, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid element count: %v", err)
	}

	for i := 0; i < numElements; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading elements")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return fmt.Errorf("invalid element line: %s", scanner.Text())
		}
		gmshType, _ := strconv.Atoi(parts[1])
		if gmshType == 15 {
			continue // point elements carry no surface information
		}
		etype, ok := gmsh22ElementTypes[gmshType]
		if !ok {
			return fmt.Errorf("unsupported element type %d in 2D mesh", gmshType)
		}
		numTags, _ := strconv.Atoi(parts[2])
		physTag := 0
		if numTags > 0 && len(parts) > 3 {
			physTag, _ = strconv.Atoi(parts[3])
		}

		nodeStart := 3 + numTags
		nv := etype.NumVerts()
		if len(parts) < nodeStart+nv {
			return fmt.Errorf("element line too short: %s", scanner.Text())
		}
		verts := make([]int, nv)
		for j := 0; j < nv; j++ {
			id, _ := strconv.Atoi(parts[nodeStart+j])
			idx, ok := msh.nodeIndex[id]
			if !ok {
				return fmt.Errorf("element references unknown node %d", id)
			}
			verts[j] = idx
		}

		msh.Elements = append(msh.Elements, verts)
		msh.ElementTypes = append(msh.ElementTypes, etype)
		msh.ElementTags = append(msh.ElementTags, physTag)
	}
	msh.NumElements = len(msh.Elements)

	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndElements" {
			break
		}
	}

	return nil
}
