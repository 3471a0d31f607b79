package quadrature

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/notargets/fequad/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrUnsupportedOrder is returned for a quadrature order outside the range a
// domain supports.
var ErrUnsupportedOrder = errors.New("unsupported quadrature order")

// Domain is the reference cell a rule integrates over.
type Domain uint8

const (
	Interval    Domain = iota // [-1,1]
	Triangle                  // (0,0), (1,0), (0,1)
	Square                    // [-1,1]x[-1,1]
	Tetrahedron               // (0,0,0), (1,0,0), (0,1,0), (0,0,1)
	numDomains
)

// MaxTableOrder is the highest order any domain supports.
const MaxTableOrder = 5

func (d Domain) String() string {
	switch d {
	case Interval:
		return "Interval"
	case Triangle:
		return "Triangle"
	case Square:
		return "Square"
	case Tetrahedron:
		return "Tetrahedron"
	}
	return fmt.Sprintf("Domain(%d)", uint8(d))
}

// MaxOrder is the highest order with a tabulated or generated rule.
func (d Domain) MaxOrder() int {
	switch d {
	case Interval, Triangle, Square:
		return 5
	case Tetrahedron:
		return 3
	}
	panic(fmt.Sprintf("unknown quadrature domain %d", d))
}

func (d Domain) Dimension() int {
	switch d {
	case Interval:
		return 1
	case Triangle, Square:
		return 2
	case Tetrahedron:
		return 3
	}
	panic(fmt.Sprintf("unknown quadrature domain %d", d))
}

// Measure is the length, area or volume of the reference cell.
func (d Domain) Measure() float64 {
	switch d {
	case Interval:
		return 2
	case Triangle:
		return 0.5
	case Square:
		return 4
	case Tetrahedron:
		return 1. / 6.
	}
	panic(fmt.Sprintf("unknown quadrature domain %d", d))
}

// Rule is an ordered list of reference points and weights exact for
// polynomials of total degree <= Order over Domain. Unused coordinates of a
// point are zero.
type Rule struct {
	Domain  Domain
	Order   int
	Points  []r3.Vec
	Weights []float64
}

func (r *Rule) Len() int { return len(r.Weights) }

// Integrate applies the rule to f on the reference cell.
func (r *Rule) Integrate(f func(p r3.Vec) float64) (sum float64) {
	for q, p := range r.Points {
		sum += r.Weights[q] * f(p)
	}
	return
}

func (r *Rule) Clone() *Rule {
	c := &Rule{
		Domain:  r.Domain,
		Order:   r.Order,
		Points:  make([]r3.Vec, len(r.Points)),
		Weights: make([]float64, len(r.Weights)),
	}
	copy(c.Points, r.Points)
	copy(c.Weights, r.Weights)
	return c
}

func (r *Rule) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s rule, order %d, %d points\n", r.Domain, r.Order, r.Len())
	for q, p := range r.Points {
		switch r.Domain.Dimension() {
		case 1:
			fmt.Fprintf(&sb, "  [%2d] x = %22.16f  w = %22.16f\n", q, p.X, r.Weights[q])
		case 2:
			fmt.Fprintf(&sb, "  [%2d] x = (%19.16f, %19.16f)  w = %22.16f\n", q, p.X, p.Y, r.Weights[q])
		default:
			fmt.Fprintf(&sb, "  [%2d] x = (%19.16f, %19.16f, %19.16f)  w = %22.16f\n",
				q, p.X, p.Y, p.Z, r.Weights[q])
		}
	}
	return sb.String()
}

// New builds the rule of the given order. Order 0 yields an empty rule.
func New(d Domain, order int) (r *Rule, err error) {
	if d >= numDomains {
		return nil, fmt.Errorf("unknown quadrature domain %d", d)
	}
	if order < 0 || order > d.MaxOrder() {
		return nil, fmt.Errorf("%w: %s supports orders 0 to %d, got %d",
			ErrUnsupportedOrder, d, d.MaxOrder(), order)
	}
	r = &Rule{Domain: d, Order: order}
	if order == 0 {
		return
	}
	switch d {
	case Interval:
		x, w := GaussLegendre(order)
		r.Points = make([]r3.Vec, len(x))
		for i := range x {
			r.Points[i] = r3.Vec{X: x[i]}
		}
		r.Weights = w
	case Square:
		// (i,j) point is (x_i, x_j) with weight w_i*w_j
		x, w := GaussLegendre(order)
		for i := range x {
			for j := range x {
				r.Points = append(r.Points, r3.Vec{X: x[i], Y: x[j]})
				r.Weights = append(r.Weights, w[i]*w[j])
			}
		}
	case Triangle:
		r.Points, r.Weights = triangleTable(order)
	case Tetrahedron:
		r.Points, r.Weights = tetrahedronTable(order)
	}
	return
}

type cachedRule struct {
	once sync.Once
	rule *Rule
	err  error
}

var cache [numDomains][MaxTableOrder + 1]cachedRule

// Get returns a copy of the memoized rule for (d, order). Each rule is built
// at most once per process.
func Get(d Domain, order int) (*Rule, error) {
	if d >= numDomains || order < 0 || order > MaxTableOrder {
		return New(d, order)
	}
	c := &cache[d][order]
	c.once.Do(func() {
		c.rule, c.err = New(d, order)
	})
	if c.err != nil {
		return nil, c.err
	}
	return c.rule.Clone(), nil
}

// ExactMonomial is the closed-form integral of x^i y^j z^k over the
// reference cell of d. Exponents of coordinates the domain does not have
// must be zero.
func ExactMonomial(d Domain, i, j, k int) float64 {
	line := func(p int) float64 {
		if p%2 == 1 {
			return 0
		}
		return 2. / float64(p+1)
	}
	switch d {
	case Interval:
		return line(i)
	case Square:
		return line(i) * line(j)
	case Triangle:
		// i! j! / (i+j+2)!
		return utils.Factorial(i) * utils.Factorial(j) / utils.Factorial(i+j+2)
	case Tetrahedron:
		// i! j! k! / (i+j+k+3)!
		return utils.Factorial(i) * utils.Factorial(j) * utils.Factorial(k) / utils.Factorial(i+j+k+3)
	}
	panic(fmt.Sprintf("unknown quadrature domain %d", d))
}
