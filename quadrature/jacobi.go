package quadrature

import (
	"math"

	"github.com/notargets/fequad/utils"
	"gonum.org/v1/gonum/mat"
)

func gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	a1 := alpha + 1.
	b1 := beta + 1.
	return math.Gamma(a1) * math.Gamma(b1) * math.Pow(2, ab1) / ab1 / math.Gamma(ab1)
}

// JacobiGQ computes the N+1 point Gauss quadrature for the Jacobi weight
// (1-x)^alpha (1+x)^beta on [-1,1]. Nodes are the eigenvalues of the
// symmetric Jacobi matrix (Golub-Welsch) and come back in ascending order.
func JacobiGQ(alpha, beta float64, N int) (x, w []float64) {
	if N == 0 {
		x = []float64{-(alpha - beta) / (alpha + beta + 2.)}
		w = []float64{gamma0(alpha, beta)}
		return
	}

	h1 := make([]float64, N+1)
	for i := 0; i < N+1; i++ {
		h1[i] = 2*float64(i) + alpha + beta
	}

	// main diagonal: -1/2*(alpha^2-beta^2)./(h1+2)./h1
	d0 := make([]float64, N+1)
	fac := -.5 * (alpha*alpha - beta*beta)
	for i := 0; i < N+1; i++ {
		val := h1[i]
		d0[i] = fac / (val * (val + 2.))
	}
	// Handle division by zero
	eps := 1.e-16
	if alpha+beta < 10*eps {
		d0[0] = 0.
	}

	// first upper diagonal
	d1 := make([]float64, N)
	for i := 0; i < N; i++ {
		ip1 := float64(i + 1)
		val := h1[i]
		d1[i] = 2. / (val + 2.)
		d1[i] *= math.Sqrt(ip1 * (ip1 + alpha + beta) * (ip1 + alpha) * (ip1 + beta) / ((val + 1.) * (val + 3.)))
	}

	JJ := utils.NewSymTriDiagonal(d0, d1)

	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		panic("eigenvalue decomposition failed")
	}
	x = eig.Values(nil)

	var VVr mat.Dense
	eig.VectorsTo(&VVr)
	g0 := gamma0(alpha, beta)
	w = make([]float64, N+1)
	for i := range w {
		v := VVr.At(0, i)
		w[i] = g0 * v * v
	}
	return
}

// GaussLegendre returns the n-point Gauss-Legendre rule on [-1,1], exact for
// polynomials of degree 2n-1. The rule is symmetrized so that mirrored nodes
// carry bit-identical magnitudes and weights, and the odd-n midpoint is 0.
func GaussLegendre(n int) (x, w []float64) {
	if n < 1 {
		return nil, nil
	}
	x, w = JacobiGQ(0, 0, n-1)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		xm := 0.5 * (x[j] - x[i])
		wm := 0.5 * (w[i] + w[j])
		x[i], x[j] = -xm, xm
		w[i], w[j] = wm, wm
	}
	if n%2 == 1 {
		x[n/2] = 0
	}
	return
}
