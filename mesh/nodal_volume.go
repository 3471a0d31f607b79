package mesh

import (
	"fmt"
	"sync"

	"github.com/notargets/fequad/utils"
)

// NodalVolumes integrates each vertex's shape function over the mesh,
//
//	v_i = sum_e sum_q N_i(q) * sign(|e|) * w_q
//
// so that inverted cells still contribute positively. The vertex range is
// split over workers goroutines (<= 0 means one per CPU), each sharing the
// read-only evaluators. The first error from any worker is returned.
func NodalVolumes(m *Mesh, evals Evaluators, workers int) (vol []float64, err error) {
	if err = m.Validate(); err != nil {
		return
	}
	var (
		n2e  = m.NodeToElements()
		pm   = utils.NewPartitionMap(workers, m.NumVertices())
		errs = make([]error, pm.ParallelDegree)
		wg   sync.WaitGroup
	)
	vol = make([]float64, m.NumVertices())
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			nMin, nMax := pm.GetBucketRange(np)
			for i := nMin; i < nMax; i++ {
				if vol[i], errs[np] = nodalVolume(m, evals, n2e[i], i); errs[np] != nil {
					return
				}
			}
		}(np)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}
	return
}

func nodalVolume(m *Mesh, evals Evaluators, elems []int, i int) (v float64, err error) {
	for _, k := range elems {
		e, err := evals.forElement(m, k)
		if err != nil {
			return 0, err
		}
		nodes := m.Cell(k)
		size, err := e.ElemSize(nodes)
		if err != nil {
			return 0, fmt.Errorf("element %d: %w", k, err)
		}
		qds, err := e.GetQuadPoints(nodes)
		if err != nil {
			return 0, fmt.Errorf("element %d: %w", k, err)
		}
		local := m.localIndex(k, i)
		for _, qd := range qds {
			v += qd.Shapes[local] * utils.Sign(size) * qd.W
		}
	}
	return
}

// TotalVolume is the sum of |ElemSize| over all elements.
func TotalVolume(m *Mesh, evals Evaluators) (total float64, err error) {
	for k := range m.Elements {
		e, err := evals.forElement(m, k)
		if err != nil {
			return 0, err
		}
		size, err := e.ElemSize(m.Cell(k))
		if err != nil {
			return 0, fmt.Errorf("element %d: %w", k, err)
		}
		total += utils.Sign(size) * size
	}
	return
}
