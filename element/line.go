package element

import (
	"github.com/notargets/fequad/utils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// LineElement is the 2 node line on reference interval [-1,1], mapped
// through the X coordinate of its vertices.
type LineElement struct{}

func (LineElement) Family() Family { return Line }

func (LineElement) Shapes(xi r3.Vec) []float64 {
	return []float64{0.5 * (1 - xi.X), 0.5 * (1 + xi.X)}
}

func (LineElement) DerShapes(r3.Vec) [][]float64 {
	return [][]float64{{-0.5}, {0.5}}
}

func (e LineElement) Jacobian(xi r3.Vec, nodes []r3.Vec) (*mat.Dense, float64) {
	J, det := e.jacobian(xi, nodes)
	return denseJacobian(1, J), det
}

func (LineElement) jacobian(_ r3.Vec, nodes []r3.Vec) (J [3][3]float64, detJ float64) {
	J[0][0] = 0.5 * (nodes[1].X - nodes[0].X)
	return J, J[0][0]
}

// MapToReference returns xi = (2x - x0 - x1) / (x1 - x0).
func (LineElement) MapToReference(p r3.Vec, nodes []r3.Vec, tol float64) (xi r3.Vec, err error) {
	var (
		x0, x1 = nodes[0].X, nodes[1].X
		length = x1 - x0
	)
	if isDegenerate(Line, 0.5*length, nodes) {
		return xi, degenerateError(Line, 0.5*length, nodes)
	}
	xi.X = (2*p.X - x0 - x1) / length
	if xi.X < -1-tol || xi.X > 1+tol {
		return xi, &PointNotInCellError{
			Family: Line, Point: p, Reference: xi, Tolerance: tol,
			Nodes: append([]r3.Vec(nil), nodes...),
		}
	}
	xi.X = utils.Clamp(xi.X, -1, 1)
	return
}

func (LineElement) ElemSize(nodes []r3.Vec) float64 {
	return nodes[1].X - nodes[0].X
}
