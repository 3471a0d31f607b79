package element

import (
	"fmt"
	"math"

	"github.com/notargets/fequad/utils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReferenceElement is the per-family behavior of a linear element: shape
// functions on the reference cell and the isoparametric map to a physical
// cell given by its vertices. Reference points and vertices are r3.Vec, the
// coordinates beyond the family's dimension are ignored.
//
// The set of implementations is closed, see NewReferenceElement.
type ReferenceElement interface {
	Family() Family
	// Shapes evaluates the shape functions at reference point xi.
	Shapes(xi r3.Vec) []float64
	// DerShapes returns the reference gradients, DerShapes(xi)[i][d] is the
	// derivative of shape i along reference coordinate d.
	DerShapes(xi r3.Vec) [][]float64
	// Jacobian of the map at xi, J[a][b] = d x_b / d xi_a, and its
	// determinant.
	Jacobian(xi r3.Vec, nodes []r3.Vec) (J *mat.Dense, detJ float64)
	// MapToReference inverts the map. Points outside the reference cell by
	// no more than tol are clamped onto it.
	MapToReference(p r3.Vec, nodes []r3.Vec, tol float64) (r3.Vec, error)
	// ElemSize is the signed length, area or volume of the cell.
	ElemSize(nodes []r3.Vec) float64

	jacobian(xi r3.Vec, nodes []r3.Vec) (J [3][3]float64, detJ float64)
}

func NewReferenceElement(f Family) ReferenceElement {
	switch f {
	case Line:
		return LineElement{}
	case Triangle:
		return TriangleElement{}
	case Quad:
		return QuadElement{}
	case Tet:
		return TetElement{}
	}
	panic(fmt.Sprintf("unknown element family %d", f))
}

func denseJacobian(dim int, J [3][3]float64) *mat.Dense {
	Jd := mat.NewDense(dim, dim, nil)
	for a := 0; a < dim; a++ {
		for b := 0; b < dim; b++ {
			Jd.Set(a, b, J[a][b])
		}
	}
	return Jd
}

// interpolate evaluates sum_i shapes[i] * nodes[i].
func interpolate(shapes []float64, nodes []r3.Vec) (p r3.Vec) {
	for i, N := range shapes {
		p = r3.Add(p, r3.Scale(N, nodes[i]))
	}
	return
}

// cellScale is the largest vertex distance from vertex 0, measured in the
// coordinates the family uses.
func cellScale(f Family, nodes []r3.Vec) (h float64) {
	dim := f.Dimension()
	for _, v := range nodes[1:] {
		d := r3.Sub(v, nodes[0])
		switch dim {
		case 1:
			d.Y, d.Z = 0, 0
		case 2:
			d.Z = 0
		}
		h = math.Max(h, r3.Norm(d))
	}
	return
}

// isDegenerate treats detJ as zero when it is negligible against h^dim.
func isDegenerate(f Family, detJ float64, nodes []r3.Vec) bool {
	h := cellScale(f, nodes)
	if h == 0 {
		return true
	}
	return math.Abs(detJ) <= utils.Epsilon*utils.POW(h, f.Dimension())
}

func degenerateError(f Family, detJ float64, nodes []r3.Vec) error {
	return fmt.Errorf("%w: %s cell %v has det(J) = %g", ErrDegenerateElement, f, nodes, detJ)
}

// physicalGradients maps reference gradients through J^-1. Shape gradients
// transform as dN/dxi = J dN/dx.
func physicalGradients(dim int, refDer [][]float64, J [3][3]float64, detJ float64) (der [][]float64) {
	der = make([][]float64, len(refDer))
	switch dim {
	case 1:
		for i, g := range refDer {
			der[i] = []float64{g[0] / J[0][0]}
		}
	case 2:
		inv := utils.Inverse2x2([2][2]float64{
			{J[0][0], J[0][1]},
			{J[1][0], J[1][1]},
		}, detJ)
		for i, g := range refDer {
			der[i] = []float64{
				inv[0][0]*g[0] + inv[0][1]*g[1],
				inv[1][0]*g[0] + inv[1][1]*g[1],
			}
		}
	case 3:
		inv := utils.Inverse3x3(J, detJ)
		for i, g := range refDer {
			der[i] = make([]float64, 3)
			for a := 0; a < 3; a++ {
				der[i][a] = inv[a][0]*g[0] + inv[a][1]*g[1] + inv[a][2]*g[2]
			}
		}
	}
	return
}

// simplexToReference solves J^T xi = p - v0 for an affine simplex map and
// checks xi against the unit simplex.
func simplexToReference(f Family, J [3][3]float64, detJ float64,
	p r3.Vec, nodes []r3.Vec, tol float64) (xi r3.Vec, err error) {
	var (
		d   = r3.Sub(p, nodes[0])
		dim = f.Dimension()
		c   [3]float64
	)
	if isDegenerate(f, detJ, nodes) {
		return xi, degenerateError(f, detJ, nodes)
	}
	switch dim {
	case 2:
		inv := utils.Inverse2x2([2][2]float64{
			{J[0][0], J[0][1]},
			{J[1][0], J[1][1]},
		}, detJ)
		c[0] = inv[0][0]*d.X + inv[1][0]*d.Y
		c[1] = inv[0][1]*d.X + inv[1][1]*d.Y
	case 3:
		inv := utils.Inverse3x3(J, detJ)
		dv := [3]float64{d.X, d.Y, d.Z}
		for a := 0; a < 3; a++ {
			c[a] = inv[0][a]*dv[0] + inv[1][a]*dv[1] + inv[2][a]*dv[2]
		}
	}
	var sum float64
	outside := false
	for a := 0; a < dim; a++ {
		if c[a] < -tol {
			outside = true
		}
		sum += c[a]
	}
	xi = r3.Vec{X: c[0], Y: c[1], Z: c[2]}
	if outside || sum > 1+tol {
		return xi, &PointNotInCellError{
			Family: f, Point: p, Reference: xi, Tolerance: tol,
			Nodes: append([]r3.Vec(nil), nodes...),
		}
	}
	// within tolerance, clamp onto the simplex
	sum = 0
	for a := 0; a < dim; a++ {
		c[a] = math.Max(c[a], 0)
		sum += c[a]
	}
	if sum > 1 {
		for a := 0; a < dim; a++ {
			c[a] /= sum
		}
	}
	return r3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
}
