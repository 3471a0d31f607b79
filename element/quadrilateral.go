package element

import (
	"fmt"

	"github.com/notargets/fequad/utils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// QuadElement is the 4 node bilinear quadrilateral on [-1,1]x[-1,1] with
// vertices ordered counter-clockwise from (-1,-1). The map is not affine,
// J varies with the reference point and there is no inverse map.
type QuadElement struct{}

var quadSigns = [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

func (QuadElement) Family() Family { return Quad }

func (QuadElement) Shapes(xi r3.Vec) (N []float64) {
	N = make([]float64, 4)
	for i, s := range quadSigns {
		N[i] = 0.25 * (1 + s[0]*xi.X) * (1 + s[1]*xi.Y)
	}
	return
}

func (QuadElement) DerShapes(xi r3.Vec) (dN [][]float64) {
	dN = make([][]float64, 4)
	for i, s := range quadSigns {
		dN[i] = []float64{
			0.25 * s[0] * (1 + s[1]*xi.Y),
			0.25 * s[1] * (1 + s[0]*xi.X),
		}
	}
	return
}

func (e QuadElement) Jacobian(xi r3.Vec, nodes []r3.Vec) (*mat.Dense, float64) {
	J, det := e.jacobian(xi, nodes)
	return denseJacobian(2, J), det
}

func (e QuadElement) jacobian(xi r3.Vec, nodes []r3.Vec) (J [3][3]float64, detJ float64) {
	for i, g := range e.DerShapes(xi) {
		for a := 0; a < 2; a++ {
			J[a][0] += g[a] * nodes[i].X
			J[a][1] += g[a] * nodes[i].Y
		}
	}
	detJ = utils.Det2([2][2]float64{{J[0][0], J[0][1]}, {J[1][0], J[1][1]}})
	return
}

func (QuadElement) MapToReference(r3.Vec, []r3.Vec, float64) (r3.Vec, error) {
	return r3.Vec{}, fmt.Errorf("%w: %s has no inverse map from physical to reference coordinates",
		ErrNotSupported, Quad)
}

// ElemSize is the signed area from the cross product of the diagonals.
func (QuadElement) ElemSize(nodes []r3.Vec) float64 {
	var (
		d02 = r3.Sub(nodes[2], nodes[0])
		d13 = r3.Sub(nodes[3], nodes[1])
	)
	return 0.5 * (d02.X*d13.Y - d13.X*d02.Y)
}
