package msm

import (
	"runtime"
	"time"

	"github.com/consensys/gnark/logger"
	"golang.org/x/sync/errgroup"
)

// DefaultWindowSize is a good tradeoff for proving-sized multiexps: table
// memory grows with 2^w while the addition count shrinks with 1/w.
const DefaultWindowSize = 8

// Precomp holds one multiplication table per base point:
// tables[i][j] == (j+1)*P_i for j in [0, 2^w-2].
type Precomp[A any] struct {
	numPoints    int
	windowSize   int
	windowMask   uint64
	tableEntries int
	tables       [][]A
}

func (t *Precomp[A]) NumPoints() int  { return t.numPoints }
func (t *Precomp[A]) WindowSize() int { return t.windowSize }

// At returns a view of the tables starting at base point idx. The view shares
// the backing storage; taking it is O(1).
func (t *Precomp[A]) At(idx int) *Precomp[A] {
	return &Precomp[A]{
		numPoints:    t.numPoints - idx,
		windowSize:   t.windowSize,
		windowMask:   t.windowMask,
		tableEntries: t.tableEntries,
		tables:       t.tables[idx:],
	}
}

// Precompute builds the window tables for a fixed base-point set. Rows are
// independent and built in parallel. Practical window sizes are 4..10
// (table memory is numPoints * (2^w - 1) affine points); windowSize must be
// at least 1.
func Precompute[A, J any, PJ Jacobian[A, J], PA Affine[A, J]](points []A, windowSize int) *Precomp[A] {
	if windowSize < 1 {
		panic("msm: window size must be at least 1")
	}
	entries := (1 << windowSize) - 1
	t := &Precomp[A]{
		numPoints:    len(points),
		windowSize:   windowSize,
		windowMask:   (uint64(1) << windowSize) - 1,
		tableEntries: entries,
		tables:       make([][]A, len(points)),
	}
	if len(points) == 0 {
		return t
	}

	start := time.Now()

	workers := runtime.NumCPU()
	if workers > len(points) {
		workers = len(points)
	}
	step := (len(points) + workers - 1) / workers

	g := new(errgroup.Group)
	for lo := 0; lo < len(points); lo += step {
		hi := lo + step
		if hi > len(points) {
			hi = len(points)
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				t.tables[i] = tableRow[A, J, PJ, PA](&points[i], entries)
			}
			return nil
		})
	}
	_ = g.Wait()

	log := logger.Logger()
	log.Debug().Int("points", len(points)).Int("windowSize", windowSize).
		Dur("took", time.Since(start)).Msg("multiscalar precompute done")

	return t
}

// tableRow fills one point's table by repeated mixed addition, normalizing
// each partial sum back to affine.
func tableRow[A, J any, PJ Jacobian[A, J], PA Affine[A, J]](point *A, entries int) []A {
	row := make([]A, entries)
	row[0] = *point
	var acc J
	PJ(&acc).FromAffine(point)
	for j := 1; j < entries; j++ {
		PJ(&acc).AddMixed(point)
		PA(&row[j]).FromJacobian(&acc)
	}
	return row
}
