package element

import (
	"github.com/notargets/fequad/utils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// TriangleElement is the 3 node linear triangle on the reference simplex
// (0,0), (1,0), (0,1). The map is affine so J is constant over the cell.
type TriangleElement struct{}

func (TriangleElement) Family() Family { return Triangle }

func (TriangleElement) Shapes(xi r3.Vec) []float64 {
	return []float64{1 - xi.X - xi.Y, xi.X, xi.Y}
}

func (TriangleElement) DerShapes(r3.Vec) [][]float64 {
	return [][]float64{{-1, -1}, {1, 0}, {0, 1}}
}

func (e TriangleElement) Jacobian(xi r3.Vec, nodes []r3.Vec) (*mat.Dense, float64) {
	J, det := e.jacobian(xi, nodes)
	return denseJacobian(2, J), det
}

// rows of J are the edge vectors v1-v0 and v2-v0
func (TriangleElement) jacobian(_ r3.Vec, nodes []r3.Vec) (J [3][3]float64, detJ float64) {
	J[0][0], J[0][1] = nodes[1].X-nodes[0].X, nodes[1].Y-nodes[0].Y
	J[1][0], J[1][1] = nodes[2].X-nodes[0].X, nodes[2].Y-nodes[0].Y
	detJ = utils.Det2([2][2]float64{{J[0][0], J[0][1]}, {J[1][0], J[1][1]}})
	return
}

func (e TriangleElement) MapToReference(p r3.Vec, nodes []r3.Vec, tol float64) (r3.Vec, error) {
	J, det := e.jacobian(p, nodes)
	return simplexToReference(Triangle, J, det, p, nodes, tol)
}

// ElemSize is the signed area, positive for counter-clockwise vertices.
func (e TriangleElement) ElemSize(nodes []r3.Vec) float64 {
	_, det := e.jacobian(r3.Vec{}, nodes)
	return 0.5 * det
}
