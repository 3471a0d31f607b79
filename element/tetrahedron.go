package element

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// TetElement is the 4 node linear tetrahedron on the reference simplex
// (0,0,0), (1,0,0), (0,1,0), (0,0,1).
type TetElement struct{}

func (TetElement) Family() Family { return Tet }

func (TetElement) Shapes(xi r3.Vec) []float64 {
	return []float64{1 - xi.X - xi.Y - xi.Z, xi.X, xi.Y, xi.Z}
}

func (TetElement) DerShapes(r3.Vec) [][]float64 {
	return [][]float64{{-1, -1, -1}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

func (e TetElement) Jacobian(xi r3.Vec, nodes []r3.Vec) (*mat.Dense, float64) {
	J, det := e.jacobian(xi, nodes)
	return denseJacobian(3, J), det
}

func (TetElement) jacobian(_ r3.Vec, nodes []r3.Vec) (J [3][3]float64, detJ float64) {
	var vals [9]float64
	for a := 0; a < 3; a++ {
		d := r3.Sub(nodes[a+1], nodes[0])
		J[a] = [3]float64{d.X, d.Y, d.Z}
		copy(vals[3*a:], J[a][:])
	}
	detJ = r3.NewMat(vals[:]).Det()
	return
}

func (e TetElement) MapToReference(p r3.Vec, nodes []r3.Vec, tol float64) (r3.Vec, error) {
	J, det := e.jacobian(p, nodes)
	return simplexToReference(Tet, J, det, p, nodes, tol)
}

// ElemSize is the signed volume, a.(b x c)/6 over the edges from vertex 0.
func (TetElement) ElemSize(nodes []r3.Vec) float64 {
	var (
		a = r3.Sub(nodes[1], nodes[0])
		b = r3.Sub(nodes[2], nodes[0])
		c = r3.Sub(nodes[3], nodes[0])
	)
	return r3.Dot(a, r3.Cross(b, c)) / 6.
}
