package element

import (
	"fmt"

	"github.com/notargets/fequad/quadrature"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Evaluator holds the reference quadrature table for one family and order
// and evaluates it on physical cells. The table is built once in New and
// never modified afterwards, so an Evaluator is safe for concurrent use.
type Evaluator struct {
	ref   ReferenceElement
	order int
	tol   float64
	quads []QuadData
}

type Option func(*Evaluator)

// WithTolerance overrides the family's default inverse map tolerance.
func WithTolerance(tol float64) Option {
	return func(e *Evaluator) { e.tol = tol }
}

// New builds the evaluator for family f at the given quadrature order. An
// order of 0 builds an evaluator with an empty table.
func New(f Family, order int, opts ...Option) (e *Evaluator, err error) {
	if f > Tet {
		return nil, fmt.Errorf("unknown element family %d", f)
	}
	e = &Evaluator{
		ref:   NewReferenceElement(f),
		order: order,
		tol:   f.DefaultTolerance(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.tol < 0 {
		return nil, fmt.Errorf("negative tolerance %g", e.tol)
	}
	if err = e.init(); err != nil {
		return nil, fmt.Errorf("%s element: %w", f, err)
	}
	return
}

func NewLine(order int, opts ...Option) (*Evaluator, error) { return New(Line, order, opts...) }
func NewTriangle(order int, opts ...Option) (*Evaluator, error) { return New(Triangle, order, opts...) }
func NewQuad(order int, opts ...Option) (*Evaluator, error) { return New(Quad, order, opts...) }
func NewTet(order int, opts ...Option) (*Evaluator, error) { return New(Tet, order, opts...) }

// init fills the reference table, it is a no-op once the table is populated.
func (e *Evaluator) init() (err error) {
	if len(e.quads) != 0 || e.order == 0 {
		return
	}
	var (
		f   = e.ref.Family()
		dim = f.Dimension()
		r   *quadrature.Rule
	)
	if r, err = quadrature.Get(f.Domain(), e.order); err != nil {
		return
	}
	e.quads = make([]QuadData, r.Len())
	for q, p := range r.Points {
		e.quads[q] = QuadData{
			W:         r.Weights[q],
			P:         p,
			Shapes:    e.ref.Shapes(p),
			DerShapes: e.ref.DerShapes(p),
			J:         identity(dim),
			DetJ:      1,
		}
	}
	return
}

func identity(dim int) *mat.Dense {
	I := mat.NewDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		I.Set(i, i, 1)
	}
	return I
}

func (e *Evaluator) Family() Family { return e.ref.Family() }
func (e *Evaluator) Order() int { return e.order }
func (e *Evaluator) Tolerance() float64 { return e.tol }
func (e *Evaluator) NumQuadPoints() int { return len(e.quads) }
func (e *Evaluator) Reference() ReferenceElement { return e.ref }

// ReferenceQuadDatas returns a deep copy of the reference table.
func (e *Evaluator) ReferenceQuadDatas() (qds []QuadData) {
	qds = make([]QuadData, len(e.quads))
	for q := range e.quads {
		qds[q] = e.quads[q].Copy()
	}
	return
}

func (e *Evaluator) checkNodes(nodes []r3.Vec) error {
	f := e.ref.Family()
	if len(nodes) != f.NumVertices() {
		return fmt.Errorf("%w: %s needs %d vertices, got %d",
			ErrVertexCount, f, f.NumVertices(), len(nodes))
	}
	return nil
}

// GetQuadDatas maps every reference quadrature point onto the cell. Weights
// are scaled by the signed det(J), gradients are physical.
func (e *Evaluator) GetQuadDatas(nodes []r3.Vec) (qds []QuadData, err error) {
	if err = e.checkNodes(nodes); err != nil {
		return
	}
	var (
		f   = e.ref.Family()
		dim = f.Dimension()
	)
	qds = make([]QuadData, len(e.quads))
	for q := range e.quads {
		ref := &e.quads[q]
		J, det := e.ref.jacobian(ref.P, nodes)
		if isDegenerate(f, det, nodes) {
			return nil, degenerateError(f, det, nodes)
		}
		qds[q] = QuadData{
			W:         ref.W * det,
			P:         interpolate(ref.Shapes, nodes),
			Shapes:    append([]float64(nil), ref.Shapes...),
			DerShapes: physicalGradients(dim, ref.DerShapes, J, det),
			J:         denseJacobian(dim, J),
			DetJ:      det,
		}
	}
	return
}

// GetQuadPoints is the light version of GetQuadDatas: only weights, points,
// shapes and det(J) are filled, DerShapes and J are left nil.
func (e *Evaluator) GetQuadPoints(nodes []r3.Vec) (qds []QuadData, err error) {
	if err = e.checkNodes(nodes); err != nil {
		return
	}
	f := e.ref.Family()
	qds = make([]QuadData, len(e.quads))
	for q := range e.quads {
		ref := &e.quads[q]
		_, det := e.ref.jacobian(ref.P, nodes)
		if isDegenerate(f, det, nodes) {
			return nil, degenerateError(f, det, nodes)
		}
		qds[q] = QuadData{
			W:      ref.W * det,
			P:      interpolate(ref.Shapes, nodes),
			Shapes: append([]float64(nil), ref.Shapes...),
			DetJ:   det,
		}
	}
	return
}

// ElemSize is the signed measure of the cell, negative when inverted. A
// degenerate cell has size zero and is not an error here.
func (e *Evaluator) ElemSize(nodes []r3.Vec) (float64, error) {
	if err := e.checkNodes(nodes); err != nil {
		return 0, err
	}
	return e.ref.ElemSize(nodes), nil
}

// MapToReference returns the reference coordinates of physical point p.
// Only simplex families (Line, Triangle, Tet) support it.
func (e *Evaluator) MapToReference(p r3.Vec, nodes []r3.Vec) (r3.Vec, error) {
	if err := e.checkNodes(nodes); err != nil {
		return r3.Vec{}, err
	}
	return e.ref.MapToReference(p, nodes, e.tol)
}

// MapToPhysical is the forward isoparametric map, defined for every family.
func (e *Evaluator) MapToPhysical(xi r3.Vec, nodes []r3.Vec) (r3.Vec, error) {
	if err := e.checkNodes(nodes); err != nil {
		return r3.Vec{}, err
	}
	return interpolate(e.ref.Shapes(xi), nodes), nil
}

// GetShapes evaluates the shape functions at physical point p.
func (e *Evaluator) GetShapes(p r3.Vec, nodes []r3.Vec) ([]float64, error) {
	xi, err := e.MapToReference(p, nodes)
	if err != nil {
		return nil, err
	}
	return e.ref.Shapes(xi), nil
}

// GetDerShapes returns the physical shape gradients at p.
func (e *Evaluator) GetDerShapes(p r3.Vec, nodes []r3.Vec) ([][]float64, error) {
	xi, err := e.MapToReference(p, nodes)
	if err != nil {
		return nil, err
	}
	J, det := e.ref.jacobian(xi, nodes)
	return physicalGradients(e.ref.Family().Dimension(), e.ref.DerShapes(xi), J, det), nil
}
