package quadrature

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"testing"

	"github.com/notargets/fequad/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/spatial/r3"
)

func monomial(i, j, k int) func(p r3.Vec) float64 {
	return func(p r3.Vec) float64 {
		return utils.POW(p.X, i) * utils.POW(p.Y, j) * utils.POW(p.Z, k)
	}
}

func TestJacobiGQ(t *testing.T) {
	// Legendre case against gonum's tabulated/asymptotic Legendre nodes
	for n := 1; n <= 8; n++ {
		x, w := JacobiGQ(0, 0, n-1)
		require.Len(t, x, n)
		require.Len(t, w, n)
		xr := make([]float64, n)
		wr := make([]float64, n)
		quad.Legendre{}.FixedLocations(xr, wr, -1, 1)
		sort.Sort(byValue{xr, wr})
		for i := 0; i < n; i++ {
			assert.InDeltaf(t, xr[i], x[i], 1.e-13, "n=%d node %d", n, i)
			assert.InDeltaf(t, wr[i], w[i], 1.e-13, "n=%d weight %d", n, i)
		}
	}
	// Jacobi weight (1-x)(1+x): integral of the weight is 4/3
	_, w := JacobiGQ(1, 1, 3)
	assert.InDelta(t, 4./3., floats.Sum(w), 1.e-13)
	x, w := JacobiGQ(2, 0, 0)
	assert.InDelta(t, -0.5, x[0], 1.e-15)
	assert.InDelta(t, 8./3., w[0], 1.e-14)
}

type byValue struct {
	x, w []float64
}

func (b byValue) Len() int           { return len(b.x) }
func (b byValue) Less(i, j int) bool { return b.x[i] < b.x[j] }
func (b byValue) Swap(i, j int) {
	b.x[i], b.x[j] = b.x[j], b.x[i]
	b.w[i], b.w[j] = b.w[j], b.w[i]
}

func TestGaussLegendre(t *testing.T) {
	x, w := GaussLegendre(3)
	assert.InDeltaSlice(t, []float64{5. / 9., 8. / 9., 5. / 9.}, w, 1.e-14)
	assert.InDeltaSlice(t, []float64{-math.Sqrt(0.6), 0, math.Sqrt(0.6)}, x, 1.e-14)
	assert.Equal(t, 0., x[1])
	assert.InDelta(t, 2., floats.Sum(w), 1.e-14)

	for n := 1; n <= 5; n++ {
		x, w = GaussLegendre(n)
		for i := 0; i < n; i++ {
			assert.Equal(t, -x[i], x[n-1-i])
			assert.Equal(t, w[i], w[n-1-i])
		}
		for p := 0; p <= 2*n-1; p++ {
			var sum float64
			for i := range x {
				sum += w[i] * utils.POW(x[i], p)
			}
			assert.InDeltaf(t, ExactMonomial(Interval, p, 0, 0), sum, 1.e-13, "n=%d p=%d", n, p)
		}
	}
	x, w = GaussLegendre(0)
	assert.Nil(t, x)
	assert.Nil(t, w)
}

func TestRuleSeeds(t *testing.T) {
	r, err := New(Triangle, 1)
	require.NoError(t, err)
	require.Equal(t, 1, r.Len())
	assert.InDelta(t, 1./3., r.Points[0].X, 1.e-15)
	assert.InDelta(t, 1./3., r.Points[0].Y, 1.e-15)
	assert.Equal(t, 0.5, r.Weights[0])

	r, err = New(Square, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Len())
	assert.InDelta(t, 4., floats.Sum(r.Weights), 1.e-14)

	r, err = New(Tetrahedron, 1)
	require.NoError(t, err)
	require.Equal(t, 1, r.Len())
	assert.Equal(t, r3.Vec{X: 0.25, Y: 0.25, Z: 0.25}, r.Points[0])
	assert.InDelta(t, 1./6., r.Weights[0], 1.e-16)

	r, err = New(Interval, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{5. / 9., 8. / 9., 5. / 9.}, r.Weights, 1.e-14)
	assert.InDelta(t, 2., floats.Sum(r.Weights), 1.e-14)
}

func TestRuleWeightSums(t *testing.T) {
	for _, d := range []Domain{Interval, Triangle, Square, Tetrahedron} {
		for order := 1; order <= d.MaxOrder(); order++ {
			r, err := New(d, order)
			require.NoError(t, err)
			assert.InDeltaf(t, d.Measure(), floats.Sum(r.Weights), 1.e-14, "%s order %d", d, order)
			assert.Equal(t, len(r.Points), len(r.Weights))
		}
	}
}

func TestRuleMonomialExactness(t *testing.T) {
	for _, d := range []Domain{Interval, Triangle, Square, Tetrahedron} {
		for order := 1; order <= d.MaxOrder(); order++ {
			r, err := New(d, order)
			require.NoError(t, err)
			dim := d.Dimension()
			for i := 0; i <= order; i++ {
				for j := 0; j <= order-i; j++ {
					for k := 0; k <= order-i-j; k++ {
						if (dim < 2 && j > 0) || (dim < 3 && k > 0) {
							continue
						}
						name := fmt.Sprintf("%s/order%d/x%dy%dz%d", d, order, i, j, k)
						got := r.Integrate(monomial(i, j, k))
						assert.InDelta(t, ExactMonomial(d, i, j, k), got, 1.e-12, name)
					}
				}
			}
		}
	}
}

func TestSquareTensorExactness(t *testing.T) {
	// a tensor rule of n points per direction integrates x^i y^j exactly
	// for i, j <= 2n-1 separately, well beyond total degree n
	for n := 1; n <= 5; n++ {
		r, err := New(Square, n)
		require.NoError(t, err)
		require.Equal(t, n*n, r.Len())
		for i := 0; i <= 2*n-1; i++ {
			for j := 0; j <= 2*n-1; j++ {
				got := r.Integrate(monomial(i, j, 0))
				assert.InDeltaf(t, ExactMonomial(Square, i, j, 0), got, 1.e-12, "n=%d x^%d y^%d", n, i, j)
			}
		}
		// x^(2n) is the first even power that is not exact
		got := r.Integrate(monomial(2*n, 0, 0))
		assert.Greater(t, math.Abs(got-ExactMonomial(Square, 2*n, 0, 0)), 1.e-6)
	}
}

func TestSimplexPointsInside(t *testing.T) {
	for _, d := range []Domain{Triangle, Tetrahedron} {
		for order := 1; order <= d.MaxOrder(); order++ {
			r, err := New(d, order)
			require.NoError(t, err)
			for _, p := range r.Points {
				assert.GreaterOrEqual(t, p.X, 0.)
				assert.GreaterOrEqual(t, p.Y, 0.)
				assert.GreaterOrEqual(t, p.Z, 0.)
				assert.LessOrEqual(t, p.X+p.Y+p.Z, 1.+1.e-14)
			}
		}
	}
}

func TestRuleOrderErrors(t *testing.T) {
	r, err := New(Triangle, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())

	for _, tc := range []struct {
		d     Domain
		order int
	}{
		{Tetrahedron, 4},
		{Tetrahedron, 5},
		{Interval, 6},
		{Square, -1},
		{Triangle, 9},
	} {
		_, err = New(tc.d, tc.order)
		assert.Truef(t, errors.Is(err, ErrUnsupportedOrder), "%s order %d: %v", tc.d, tc.order, err)
		_, err = Get(tc.d, tc.order)
		assert.Truef(t, errors.Is(err, ErrUnsupportedOrder), "%s order %d: %v", tc.d, tc.order, err)
	}
}

func TestGetMemoized(t *testing.T) {
	var (
		wg    sync.WaitGroup
		rules = make([]*Rule, 16)
	)
	for n := range rules {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			r, err := Get(Triangle, 4)
			if err == nil {
				rules[n] = r
			}
		}(n)
	}
	wg.Wait()
	for _, r := range rules {
		require.NotNil(t, r)
		assert.Equal(t, rules[0].Weights, r.Weights)
	}
	// callers get private copies
	rules[0].Weights[0] = 100
	r, err := Get(Triangle, 4)
	require.NoError(t, err)
	assert.NotEqual(t, 100., r.Weights[0])
}

func TestRuleString(t *testing.T) {
	r, err := Get(Tetrahedron, 2)
	require.NoError(t, err)
	s := r.String()
	assert.Contains(t, s, "Tetrahedron rule, order 2, 4 points")
}
