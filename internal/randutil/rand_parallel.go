package randutil

import (
	"crypto/rand"
	"runtime"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// parallelFill runs fill over [0, n) on a bounded worker set and keeps the
// first error. workers <= 0 defaults to runtime.NumCPU().
func parallelFill(n, workers int, fill func(i int) error) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan int, workers*2)

	var wg sync.WaitGroup
	var firstErr error
	var errOnce sync.Once

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := fill(i); err != nil {
					errOnce.Do(func() { firstErr = err })
				}
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return firstErr
}

// RandomScalarsPar generates n random scalars in parallel.
// If workers <= 0, it defaults to runtime.NumCPU().
// It returns a slice of length n (possibly empty if n<=0).
func RandomScalarsPar(n, workers int) ([]fr.Element, error) {
	if n <= 0 {
		return []fr.Element{}, nil
	}

	out := make([]fr.Element, n)
	err := parallelFill(n, workers, func(i int) error {
		// NOTE: crypto/rand.Reader is safe for concurrent use.
		b, err := rand.Int(rand.Reader, fr.Modulus())
		if err != nil {
			return err
		}
		out[i].SetBigInt(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RandomPointsG1Par generates n random G1 points in parallel.
// Each point is (random scalar) * G1 generator (affine).
// If workers <= 0, it defaults to runtime.NumCPU().
// It returns a slice of length n (possibly empty if n<=0).
func RandomPointsG1Par(n, workers int) ([]bn254.G1Affine, error) {
	if n <= 0 {
		return []bn254.G1Affine{}, nil
	}

	out := make([]bn254.G1Affine, n)

	_, _, g, _ := bn254.Generators()

	err := parallelFill(n, workers, func(i int) error {
		b, err := rand.Int(rand.Reader, fr.Modulus())
		if err != nil {
			return err
		}
		out[i].ScalarMultiplication(&g, b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
