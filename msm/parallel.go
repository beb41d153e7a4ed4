package msm

import (
	"sync"
	"sync/atomic"
)

// Chunk sizing for the parallel scheduler. Small multiexps get fine chunks so
// every worker sees work; at chunkCutoff points and above, coarser chunks
// keep claim overhead down.
const (
	chunkSmall  = 16
	chunkLarge  = 256
	chunkCutoff = 1024
)

func chunkSizeFor(numPoints int) int {
	cs := chunkSmall
	if numPoints >= chunkCutoff {
		cs = chunkLarge
	}
	if cs > numPoints {
		cs = 1
	}
	return cs
}

// MultiscalarPar overwrites res with sum_i k(i) * P_i over numPoints base
// points, fanning chunks out across the shared pool. maxWorkers caps the
// workers engaged; <= 0 means the pool width. The result is the same group
// element as the single-threaded accumulation whatever the worker count or
// chunk claim order.
func MultiscalarPar[A, J any, PJ Jacobian[A, J]](res PJ, maxWorkers int, k Inputs, t *Precomp[A], numPoints, nbits int) error {
	return MultiscalarParOn[A, J, PJ](DefaultPool(), res, maxWorkers, k, t, numPoints, nbits)
}

// MultiscalarParOn is MultiscalarPar on a caller-supplied pool.
func MultiscalarParOn[A, J any, PJ Jacobian[A, J]](pool *Pool, res PJ, maxWorkers int, k Inputs, t *Precomp[A], numPoints, nbits int) error {
	// Bad window geometry is rejected before any worker is engaged or any
	// scalar is read.
	if !windowOK(t.windowSize, nbits) {
		return ErrWindowSize
	}

	var zero J
	*res = zero

	chunkSize := chunkSizeFor(numPoints)
	numChunks := (numPoints + chunkSize - 1) / chunkSize

	if maxWorkers <= 0 {
		maxWorkers = pool.Workers()
	}
	numWorkers := maxWorkers
	if numWorkers > numChunks {
		numWorkers = numChunks
	}

	results := make([]J, numWorkers)
	var next atomic.Uint64

	var firstErr error
	var errOnce sync.Once

	var wg sync.WaitGroup
	for tid := 0; tid < numWorkers; tid++ {
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()

			var scratch []Scalar
			if k.getter != nil {
				scratch = make([]Scalar, chunkSize)
			}
			acc := PJ(&results[tid])

			var part J
			for {
				chunk := int(next.Add(1) - 1)
				if chunk >= numChunks {
					return
				}
				start := chunk * chunkSize
				end := start + chunkSize
				if end > numPoints {
					end = numPoints
				}

				var scalars []Scalar
				if k.getter != nil {
					scalars = scratch[:end-start]
					for i := range scalars {
						scalars[i] = k.getter(start + i)
					}
				} else {
					scalars = k.slice[start:]
				}

				if err := Multiscalar[A, J, PJ](PJ(&part), scalars, t.At(start), end-start, nbits); err != nil {
					errOnce.Do(func() { firstErr = err })
					return
				}
				acc.AddAssign(&part)
			}
		})
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}

	// Deterministic reduce in worker order.
	for i := range results {
		res.AddAssign(&results[i])
	}
	return nil
}
