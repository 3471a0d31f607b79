package mesh

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
)

// MassMatrix assembles the consistent mass matrix
//
//	M_ij = sum_e sum_q N_i(q) N_j(q) |w_q|
//
// in a DOK and returns it compressed. Row i sums to the nodal volume of
// vertex i, all entries sum to the mesh measure. The quadrature order must
// be at least 2 for the element integrals to be exact.
func MassMatrix(m *Mesh, evals Evaluators) (M *sparse.CSR, err error) {
	if err = m.Validate(); err != nil {
		return
	}
	n := m.NumVertices()
	if n == 0 {
		return nil, fmt.Errorf("mass matrix of an empty mesh")
	}
	dok := sparse.NewDOK(n, n)
	for k, verts := range m.Elements {
		e, err := evals.forElement(m, k)
		if err != nil {
			return nil, err
		}
		qds, err := e.GetQuadPoints(m.Cell(k))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", k, err)
		}
		for _, qd := range qds {
			w := math.Abs(qd.W)
			for a, va := range verts {
				for b, vb := range verts {
					dok.Set(va, vb, dok.At(va, vb)+qd.Shapes[a]*qd.Shapes[b]*w)
				}
			}
		}
	}
	return dok.ToCSR(), nil
}

// RowSums returns the lumped (row sum) diagonal of M.
func RowSums(M *sparse.CSR) (sums []float64) {
	r, _ := M.Dims()
	sums = make([]float64, r)
	M.DoNonZero(func(i, j int, v float64) {
		sums[i] += v
	})
	return
}
