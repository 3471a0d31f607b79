package mesh

import (
	"fmt"
	"sort"
	"strings"

	"github.com/notargets/fequad/element"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is a cell soup of linear elements. Elements[k] lists 0-based vertex
// indices in the canonical order of Families[k].
type Mesh struct {
	Dim      int
	Vertices []r3.Vec
	Elements [][]int
	Families []element.Family
}

func (m *Mesh) NumVertices() int { return len(m.Vertices) }
func (m *Mesh) NumElements() int { return len(m.Elements) }

// Cell returns the vertex coordinates of element k.
func (m *Mesh) Cell(k int) (nodes []r3.Vec) {
	nodes = make([]r3.Vec, len(m.Elements[k]))
	for i, v := range m.Elements[k] {
		nodes[i] = m.Vertices[v]
	}
	return
}

// Validate checks that every element has a family, the family's vertex
// count and in-range vertex indices.
func (m *Mesh) Validate() error {
	if len(m.Families) != len(m.Elements) {
		return fmt.Errorf("mesh has %d elements but %d families", len(m.Elements), len(m.Families))
	}
	for k, verts := range m.Elements {
		f := m.Families[k]
		if f > element.Tet {
			return fmt.Errorf("element %d has unknown family %d", k, f)
		}
		if len(verts) != f.NumVertices() {
			return fmt.Errorf("element %d: %w: %s needs %d, got %d",
				k, element.ErrVertexCount, f, f.NumVertices(), len(verts))
		}
		for _, v := range verts {
			if v < 0 || v >= len(m.Vertices) {
				return fmt.Errorf("element %d references vertex %d, mesh has %d vertices",
					k, v, len(m.Vertices))
			}
		}
	}
	return nil
}

// FamiliesPresent lists the distinct families in declaration order.
func (m *Mesh) FamiliesPresent() (fams []element.Family) {
	seen := make(map[element.Family]bool)
	for _, f := range m.Families {
		if !seen[f] {
			seen[f] = true
			fams = append(fams, f)
		}
	}
	sort.Slice(fams, func(i, j int) bool { return fams[i] < fams[j] })
	return
}

// NodeToElements returns, for every vertex, the elements that reference it
// in increasing element order.
func (m *Mesh) NodeToElements() (n2e [][]int) {
	n2e = make([][]int, len(m.Vertices))
	for k, verts := range m.Elements {
		for _, v := range verts {
			n2e[v] = append(n2e[v], k)
		}
	}
	return
}

func (m *Mesh) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Mesh Statistics:\n")
	fmt.Fprintf(&sb, "  Dimension: %d\n", m.Dim)
	fmt.Fprintf(&sb, "  Vertices: %d\n", m.NumVertices())
	fmt.Fprintf(&sb, "  Elements: %d\n", m.NumElements())
	counts := make(map[element.Family]int)
	for _, f := range m.Families {
		counts[f]++
	}
	fmt.Fprintf(&sb, "  Element types:\n")
	for _, f := range m.FamiliesPresent() {
		fmt.Fprintf(&sb, "    %s: %d\n", f, counts[f])
	}
	return sb.String()
}

// Evaluators holds one shared evaluator per family.
type Evaluators map[element.Family]*element.Evaluator

// NewEvaluators builds an evaluator for each family at the order orderFor
// selects.
func NewEvaluators(fams []element.Family, orderFor func(element.Family) int,
	opts ...element.Option) (evals Evaluators, err error) {
	evals = make(Evaluators, len(fams))
	for _, f := range fams {
		if evals[f], err = element.New(f, orderFor(f), opts...); err != nil {
			return nil, err
		}
	}
	return
}

func (evals Evaluators) forElement(m *Mesh, k int) (*element.Evaluator, error) {
	e, ok := evals[m.Families[k]]
	if !ok {
		return nil, fmt.Errorf("no evaluator for %s element %d", m.Families[k], k)
	}
	return e, nil
}

// localIndex is the position of vertex v within element k, or -1.
func (m *Mesh) localIndex(k, v int) int {
	for i, vv := range m.Elements[k] {
		if vv == v {
			return i
		}
	}
	return -1
}
