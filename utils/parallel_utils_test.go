package utils

import (
	"math"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	getHisto := func(K, Np int) (histo map[int]int) {
		pm := NewPartitionMap(Np, K)
		histo = make(map[int]int)
		for np := 0; np < pm.ParallelDegree; np++ {
			histo[pm.GetBucketDimension(np)]++
		}
		return
	}
	getTotal := func(histo map[int]int) (total int) {
		for key, count := range histo {
			total += key * count
		}
		return
	}
	// more workers than indices collapses to one index per bucket
	assert.Equal(t, map[int]int{1: 2}, getHisto(2, 32))
	assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
	assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
	assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
	assert.Equal(t, 287, getTotal(getHisto(287, 32)))
	for n := 64; n < 2000; n++ {
		var (
			keys   [2]float64
			keyNum int
		)
		histo := getHisto(n, 32)
		for key := range histo {
			keys[keyNum] = float64(key)
			keyNum++
		}
		if keyNum == 2 {
			assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
		}
		assert.Equal(t, n, getTotal(histo))
	}

	pm := NewPartitionMap(0, 10*runtime.NumCPU())
	assert.Equal(t, runtime.NumCPU(), pm.ParallelDegree)
	pm = NewPartitionMap(4, 0)
	assert.Equal(t, 1, pm.ParallelDegree)
	assert.Equal(t, 0, pm.GetBucketDimension(0))
}

func TestPartitionMapBuckets(t *testing.T) {
	for maxIndex := 10; maxIndex < 500; maxIndex++ {
		pm := NewPartitionMap(5, maxIndex)
		// buckets are contiguous and cover the range
		assert.Equal(t, 0, pm.Partitions[0][0])
		assert.Equal(t, maxIndex, pm.Partitions[pm.ParallelDegree-1][1])
		for bn := 1; bn < pm.ParallelDegree; bn++ {
			assert.Equal(t, pm.Partitions[bn-1][1], pm.Partitions[bn][0])
		}
		for bn := 0; bn < pm.ParallelDegree; bn++ {
			kMin, kMax := pm.GetBucketRange(bn)
			assert.Equal(t, pm.Partitions[bn], [2]int{kMin, kMax})
			assert.True(t, kMax > kMin)
		}
	}
}
