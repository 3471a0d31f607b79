package element

import (
	"fmt"
	"strings"

	"github.com/notargets/fequad/quadrature"
	"gonum.org/v1/gonum/spatial/r3"
)

// Family is the closed set of linear element shapes the evaluator supports.
type Family uint8

const (
	Line     Family = iota // 2-node line
	Triangle               // 3-node triangle
	Quad                   // 4-node bilinear quadrilateral
	Tet                    // 4-node tetrahedron
)

// Families lists every Family in declaration order.
var Families = [...]Family{Line, Triangle, Quad, Tet}

func (f Family) String() string {
	switch f {
	case Line:
		return "Line"
	case Triangle:
		return "Triangle"
	case Quad:
		return "Quad"
	case Tet:
		return "Tet"
	}
	return fmt.Sprintf("Family(%d)", uint8(f))
}

// ParseFamily accepts the family name, case-insensitively, or a common
// abbreviation ("tri", "quadrilateral", "tetrahedron").
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line":
		return Line, nil
	case "triangle", "tri":
		return Triangle, nil
	case "quad", "quadrilateral":
		return Quad, nil
	case "tet", "tetrahedron":
		return Tet, nil
	}
	return 0, fmt.Errorf("unknown element family %q", s)
}

func (f Family) NumVertices() int {
	switch f {
	case Line:
		return 2
	case Triangle:
		return 3
	case Quad, Tet:
		return 4
	}
	panic(fmt.Sprintf("unknown element family %d", f))
}

// Dimension is the number of reference (and physical) coordinates.
func (f Family) Dimension() int {
	switch f {
	case Line:
		return 1
	case Triangle, Quad:
		return 2
	case Tet:
		return 3
	}
	panic(fmt.Sprintf("unknown element family %d", f))
}

// Domain is the reference cell the family's quadrature is defined on.
func (f Family) Domain() quadrature.Domain {
	switch f {
	case Line:
		return quadrature.Interval
	case Triangle:
		return quadrature.Triangle
	case Quad:
		return quadrature.Square
	case Tet:
		return quadrature.Tetrahedron
	}
	panic(fmt.Sprintf("unknown element family %d", f))
}

func (f Family) MaxQuadOrder() int { return f.Domain().MaxOrder() }

// IsAffine reports whether the reference to physical map is affine, which is
// exactly when a closed form inverse map exists.
func (f Family) IsAffine() bool { return f != Quad }

// ReferenceVertices returns the reference cell vertices in canonical order.
func (f Family) ReferenceVertices() []r3.Vec {
	switch f {
	case Line:
		return []r3.Vec{{X: -1}, {X: 1}}
	case Triangle:
		return []r3.Vec{{}, {X: 1}, {Y: 1}}
	case Quad:
		return []r3.Vec{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	case Tet:
		return []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}}
	}
	panic(fmt.Sprintf("unknown element family %d", f))
}

// DefaultTolerance is the absolute slack, in reference coordinates, allowed
// when deciding whether an inverse mapped point lies in the reference cell.
func (f Family) DefaultTolerance() float64 {
	switch f {
	case Line:
		return 1.e-8
	case Triangle, Quad, Tet:
		return 1.e-5
	}
	panic(fmt.Sprintf("unknown element family %d", f))
}
