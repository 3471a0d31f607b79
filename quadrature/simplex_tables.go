package quadrature

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Symmetric rules for the unit simplex. Weights already include the
// reference measure (1/2 for the triangle, 1/6 for the tetrahedron).

// triangleTable: orders 1-3 are the classic Strang-Fix rules (order 3 carries
// a negative centroid weight), order 4 is Dunavant's 6 point rule and order 5
// is Radon's 7 point rule.
func triangleTable(order int) (p []r3.Vec, w []float64) {
	// orbit of the barycentric triple (a, a, 1-2a)
	orbit3 := func(a, wt float64) {
		b := 1. - 2.*a
		p = append(p, r3.Vec{X: a, Y: a}, r3.Vec{X: a, Y: b}, r3.Vec{X: b, Y: a})
		w = append(w, wt, wt, wt)
	}
	switch order {
	case 1:
		p = []r3.Vec{{X: 1. / 3., Y: 1. / 3.}}
		w = []float64{0.5}
	case 2:
		p = []r3.Vec{
			{X: 1. / 6., Y: 1. / 6.},
			{X: 2. / 3., Y: 1. / 6.},
			{X: 1. / 6., Y: 2. / 3.},
		}
		w = []float64{1. / 6., 1. / 6., 1. / 6.}
	case 3:
		p = []r3.Vec{
			{X: 1. / 3., Y: 1. / 3.},
			{X: 1. / 5., Y: 3. / 5.},
			{X: 1. / 5., Y: 1. / 5.},
			{X: 3. / 5., Y: 1. / 5.},
		}
		w = []float64{-27. / 96., 25. / 96., 25. / 96., 25. / 96.}
	case 4:
		orbit3(0.44594849091596488632, 0.5*0.22338158967801146570)
		orbit3(0.09157621350977074346, 0.5*0.10995174365532186764)
	case 5:
		s15 := math.Sqrt(15.)
		p = []r3.Vec{{X: 1. / 3., Y: 1. / 3.}}
		w = []float64{9. / 80.}
		orbit3((6.+s15)/21., (155.+s15)/2400.)
		orbit3((6.-s15)/21., (155.-s15)/2400.)
	}
	return
}

// tetrahedronTable: order 1 is the centroid rule, order 2 the 4 point rule
// with a = (5+3*sqrt5)/20, b = (5-sqrt5)/20, order 3 Keast's 5 point rule.
func tetrahedronTable(order int) (p []r3.Vec, w []float64) {
	switch order {
	case 1:
		p = []r3.Vec{{X: 0.25, Y: 0.25, Z: 0.25}}
		w = []float64{1. / 6.}
	case 2:
		var (
			s5 = math.Sqrt(5.)
			a  = (5. + 3.*s5) / 20.
			b  = (5. - s5) / 20.
		)
		p = []r3.Vec{
			{X: a, Y: b, Z: b},
			{X: b, Y: a, Z: b},
			{X: b, Y: b, Z: a},
			{X: b, Y: b, Z: b},
		}
		w = []float64{1. / 24., 1. / 24., 1. / 24., 1. / 24.}
	case 3:
		var (
			a = 0.25
			b = 0.5
			c = 1. / 6.
		)
		p = []r3.Vec{
			{X: a, Y: a, Z: a},
			{X: b, Y: c, Z: c},
			{X: c, Y: b, Z: c},
			{X: c, Y: c, Z: b},
			{X: c, Y: c, Z: c},
		}
		w = []float64{-2. / 15., 3. / 40., 3. / 40., 3. / 40., 3. / 40.}
	}
	return
}
