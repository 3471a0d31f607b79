package element

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// QuadData is one quadrature point together with everything evaluated there.
//
// On the reference cell J is the identity and DetJ is 1. After mapping to a
// physical cell W is the reference weight times DetJ (signed, negative for
// an inverted cell), P is the physical point, DerShapes holds physical
// gradients and J is the Jacobian of the map at P.
type QuadData struct {
	W      float64
	P      r3.Vec
	Shapes []float64 // one per vertex, sums to 1
	// DerShapes[i][d] is the derivative of shape i along coordinate d.
	DerShapes [][]float64
	// J[a][b] = d x_b / d xi_a
	J    *mat.Dense
	DetJ float64
}

// Copy returns a deep copy.
func (qd QuadData) Copy() QuadData {
	c := qd
	if qd.Shapes != nil {
		c.Shapes = append([]float64(nil), qd.Shapes...)
	}
	if qd.DerShapes != nil {
		c.DerShapes = copyRows(qd.DerShapes)
	}
	if qd.J != nil {
		c.J = mat.DenseCopyOf(qd.J)
	}
	return c
}

func copyRows(a [][]float64) (c [][]float64) {
	c = make([][]float64, len(a))
	for i, row := range a {
		c[i] = append([]float64(nil), row...)
	}
	return
}

func (qd QuadData) String() string {
	var sb strings.Builder
	sb.WriteString("------- QuadData --------\n")
	fmt.Fprintf(&sb, "Weight = %v\n", qd.W)
	fmt.Fprintf(&sb, "Point = (%v, %v, %v)\n", qd.P.X, qd.P.Y, qd.P.Z)
	fmt.Fprintf(&sb, "Shapes = %v\n", qd.Shapes)
	fmt.Fprintf(&sb, "Derivative = %v\n", qd.DerShapes)
	if qd.J != nil {
		fmt.Fprintf(&sb, "Jacobian = \n%v\n", mat.Formatted(qd.J, mat.Squeeze()))
	}
	fmt.Fprintf(&sb, "Det(J) = %v\n", qd.DetJ)
	return sb.String()
}
