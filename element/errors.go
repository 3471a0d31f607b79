package element

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notargets/fequad/quadrature"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrUnsupportedOrder: the quadrature order is outside what the family
	// tabulates.
	ErrUnsupportedOrder = quadrature.ErrUnsupportedOrder
	// ErrPointNotInCell: an inverse mapped point lies outside the reference
	// cell by more than the tolerance.
	ErrPointNotInCell = errors.New("point not in cell")
	// ErrNotSupported: the family has no such capability (Quad inverse map).
	ErrNotSupported = errors.New("capability not supported")
	// ErrDegenerateElement: the Jacobian determinant vanishes.
	ErrDegenerateElement = errors.New("degenerate element")
	// ErrVertexCount: the cell does not have the family's vertex count.
	ErrVertexCount = errors.New("wrong number of cell vertices")
)

// PointNotInCellError carries the failed query. It unwraps to
// ErrPointNotInCell.
type PointNotInCellError struct {
	Family    Family
	Point     r3.Vec   // physical query point
	Reference r3.Vec   // computed reference coordinates, before clamping
	Tolerance float64
	Nodes     []r3.Vec
}

func (e *PointNotInCellError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "point (%g, %g, %g) not in %s cell {", e.Point.X, e.Point.Y, e.Point.Z, e.Family)
	for i, v := range e.Nodes {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "(%g, %g, %g)", v.X, v.Y, v.Z)
	}
	fmt.Fprintf(&sb, "}: reference coordinates (%g, %g, %g) exceed tolerance %g",
		e.Reference.X, e.Reference.Y, e.Reference.Z, e.Tolerance)
	return sb.String()
}

func (e *PointNotInCellError) Unwrap() error { return ErrPointNotInCell }
