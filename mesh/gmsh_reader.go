package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ReadGmshFile opens filename and reads it with ReadGmsh22.
func ReadGmshFile(filename string, types ElementTypeMap) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadGmsh22(file, types)
}

// ReadGmsh22 reads the $Nodes and $Elements sections of an ASCII Gmsh 2.2
// file. Element codes missing from types are skipped, and of the remaining
// elements only those of the highest dimension are kept, so boundary lines
// of a 2D mesh do not contribute to its measure. Node ids may be arbitrary,
// they are renumbered 0-based in file order.
func ReadGmsh22(r io.Reader, types ElementTypeMap) (mesh *Mesh, err error) {
	var (
		scanner = bufio.NewScanner(r)
		nodeIdx = make(map[int]int)
	)
	// Increase scanner buffer for long element lines
	const maxScanTokenSize = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxScanTokenSize)

	mesh = &Mesh{}
	for scanner.Scan() {
		switch strings.TrimSpace(scanner.Text()) {
		case "$MeshFormat":
			if err = readMeshFormat(scanner); err != nil {
				return nil, err
			}
		case "$Nodes":
			if err = readNodes(scanner, mesh, nodeIdx); err != nil {
				return nil, err
			}
		case "$Elements":
			if err = readElements(scanner, mesh, nodeIdx, types); err != nil {
				return nil, err
			}
		case "$PhysicalNames", "$Periodic", "$NodeData", "$ElementData", "$ElementNodeData":
			section := strings.TrimSpace(scanner.Text())
			if err = skipSection(scanner, "$End"+section[1:]); err != nil {
				return nil, err
			}
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	keepTopDimension(mesh)
	if err = mesh.Validate(); err != nil {
		return nil, err
	}
	return
}

func readMeshFormat(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}
	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line %q", scanner.Text())
	}
	if !strings.HasPrefix(parts[0], "2") {
		return fmt.Errorf("unsupported Gmsh version: %s", parts[0])
	}
	if parts[1] != "0" {
		return fmt.Errorf("binary Gmsh files are not supported")
	}
	return skipSection(scanner, "$EndMeshFormat")
}

func readNodes(scanner *bufio.Scanner, mesh *Mesh, nodeIdx map[int]int) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}
	numNodes, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid number of nodes: %w", err)
	}
	mesh.Vertices = make([]r3.Vec, 0, numNodes)
	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF in Nodes at node %d", i)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			return fmt.Errorf("invalid node entry at line %d", i+1)
		}
		nodeID, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("invalid node ID: %w", err)
		}
		var c [3]float64
		for j := range c {
			if c[j], err = strconv.ParseFloat(fields[j+1], 64); err != nil {
				return fmt.Errorf("invalid coordinate: %w", err)
			}
		}
		if _, dup := nodeIdx[nodeID]; dup {
			return fmt.Errorf("duplicate node ID %d", nodeID)
		}
		nodeIdx[nodeID] = len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, r3.Vec{X: c[0], Y: c[1], Z: c[2]})
	}
	return skipSection(scanner, "$EndNodes")
}

func readElements(scanner *bufio.Scanner, mesh *Mesh, nodeIdx map[int]int, types ElementTypeMap) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Elements")
	}
	numElems, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid number of elements: %w", err)
	}
	for i := 0; i < numElems; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF in Elements at element %d", i)
		}
		// elm-number elm-type number-of-tags < tag > ... node-number-list
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			return fmt.Errorf("invalid element entry at line %d", i+1)
		}
		gmshType, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("invalid element type: %w", err)
		}
		numTags, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("invalid number of tags: %w", err)
		}
		f, ok := types.Lookup(gmshType)
		if !ok {
			continue
		}
		startIdx := 3 + numTags
		if len(fields)-startIdx != f.NumVertices() {
			return fmt.Errorf("element %s: %s expects %d nodes, got %d",
				fields[0], f, f.NumVertices(), len(fields)-startIdx)
		}
		verts := make([]int, f.NumVertices())
		for j := range verts {
			id, err := strconv.Atoi(fields[startIdx+j])
			if err != nil {
				return fmt.Errorf("invalid node ID: %w", err)
			}
			if verts[j], ok = nodeIdx[id]; !ok {
				return fmt.Errorf("element %s references unknown node %d", fields[0], id)
			}
		}
		mesh.Elements = append(mesh.Elements, verts)
		mesh.Families = append(mesh.Families, f)
	}
	return skipSection(scanner, "$EndElements")
}

func skipSection(scanner *bufio.Scanner, end string) error {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == end {
			return nil
		}
	}
	return fmt.Errorf("unexpected EOF looking for %s", end)
}

func keepTopDimension(mesh *Mesh) {
	for _, f := range mesh.Families {
		if f.Dimension() > mesh.Dim {
			mesh.Dim = f.Dimension()
		}
	}
	var (
		elements [][]int
		families = mesh.Families[:0]
	)
	for k, f := range mesh.Families {
		if f.Dimension() == mesh.Dim {
			elements = append(elements, mesh.Elements[k])
			families = append(families, f)
		}
	}
	mesh.Elements, mesh.Families = elements, families
}
