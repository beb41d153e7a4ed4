package msm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Additive group of integers mod toyOrder: "points" are residues, doubling
// is times two, scalar multiplication is plain modular arithmetic. Small
// enough to check the windowed schedule by hand.
const toyOrder = 1009

type toyAffine struct{ v uint64 }

type toyJac struct{ v uint64 }

func (p *toyJac) FromAffine(a *toyAffine) *toyJac { p.v = a.v; return p }
func (p *toyJac) AddAssign(q *toyJac) *toyJac     { p.v = (p.v + q.v) % toyOrder; return p }
func (p *toyJac) AddMixed(a *toyAffine) *toyJac   { p.v = (p.v + a.v) % toyOrder; return p }
func (p *toyJac) DoubleAssign() *toyJac           { p.v = (p.v * 2) % toyOrder; return p }

func (a *toyAffine) FromJacobian(q *toyJac) *toyAffine { a.v = q.v; return a }

func TestToyPrecomputeTables(t *testing.T) {
	require := require.New(t)

	points := []toyAffine{{v: 5}, {v: 42}}
	table := Precompute[toyAffine, toyJac](points, 3)

	require.Equal(2, table.NumPoints())
	require.Equal(3, table.WindowSize())
	for i, p := range points {
		require.Len(table.tables[i], 7)
		for j := 0; j < 7; j++ {
			require.Equal(uint64(j+1)*p.v%toyOrder, table.tables[i][j].v, "entry (%d,%d)", i, j)
		}
	}
}

func TestToyWindowedScenario(t *testing.T) {
	require := require.New(t)

	// k0=3, k1=5 over a 2-bit window and 4-bit scalars:
	// window 1 adds only P1, window 0 adds 3*P0 and 1*P1.
	points := []toyAffine{{v: 7}, {v: 11}}
	table := Precompute[toyAffine, toyJac](points, 2)
	scalars := []Scalar{{3}, {5}}

	var acc toyJac
	require.NoError(Multiscalar(&acc, scalars, table, 2, 4))
	require.Equal(uint64(3*7+5*11)%toyOrder, acc.v)
}

func TestToyZeroScalarContributesNothing(t *testing.T) {
	require := require.New(t)

	points := []toyAffine{{v: 123}, {v: 456}}
	table := Precompute[toyAffine, toyJac](points, 2)
	scalars := []Scalar{{0}, {9}}

	var acc toyJac
	require.NoError(Multiscalar(&acc, scalars, table, 2, 8))
	require.Equal(uint64(9*456)%toyOrder, acc.v)
}

func TestToyParMatchesSerial(t *testing.T) {
	require := require.New(t)

	const n = 33
	points := make([]toyAffine, n)
	scalars := make([]Scalar, n)
	for i := range points {
		points[i] = toyAffine{v: uint64(i*i + 1)}
		scalars[i] = Scalar{uint64(i % 16)}
	}
	table := Precompute[toyAffine, toyJac](points, 4)

	var want toyJac
	require.NoError(Multiscalar(&want, scalars, table, n, 8))

	pool := NewPool(3)
	defer pool.Stop()

	var got toyJac
	require.NoError(MultiscalarParOn(pool, &got, 3, SliceInputs(scalars), table, n, 8))
	require.Equal(want.v, got.v)
}
