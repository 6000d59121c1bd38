package geo

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Write writes the generated mesh in Gmsh MSH 2.2 ASCII format. Only the
// .msh extension is supported.
func (e *Engine) Write(filename string) (err error) {
	if !e.meshed {
		return fmt.Errorf("geo: no mesh generated, call GenerateMesh before Write")
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".msh" {
		return fmt.Errorf("geo: unsupported output format %q, only .msh", ext)
	}
	var f *os.File
	if f, err = os.Create(filename); err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "$MeshFormat")
	fmt.Fprintln(w, "2.2 0 8")
	fmt.Fprintln(w, "$EndMeshFormat")

	if len(e.groups) > 0 {
		fmt.Fprintln(w, "$PhysicalNames")
		fmt.Fprintf(w, "%d\n", len(e.groups))
		for _, g := range e.groups {
			fmt.Fprintf(w, "%d %d \"%s\"\n", g.dim, g.tag, g.name)
		}
		fmt.Fprintln(w, "$EndPhysicalNames")
	}

	fmt.Fprintln(w, "$Nodes")
	fmt.Fprintf(w, "%d\n", len(e.nodes))
	for i, n := range e.nodes {
		fmt.Fprintf(w, "%d %g %g 0\n", i+1, n.x, n.y)
	}
	fmt.Fprintln(w, "$EndNodes")

	fmt.Fprintln(w, "$Elements")
	fmt.Fprintf(w, "%d\n", len(e.elements))
	for i, el := range e.elements {
		// id type ntags physTag geomTag nodes...
		fmt.Fprintf(w, "%d %d 2 %d %d", i+1, el.gmshType, el.physTag, el.geomTag)
		for _, n := range el.nodes {
			fmt.Fprintf(w, " %d", n)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "$EndElements")

	return w.Flush()
}
