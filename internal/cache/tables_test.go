package cache

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/stretchr/testify/require"

	"github.com/Han-16/msmist/internal/randutil"
	"github.com/Han-16/msmist/internal/reference"
	"github.com/Han-16/msmist/msm"
)

func TestTableCacheHit(t *testing.T) {
	require := require.New(t)

	c, err := NewTableCache(4)
	require.NoError(err)

	points, err := randutil.RandomPointsG1(8)
	require.NoError(err)

	t1 := c.GetOrBuild(points, msm.DefaultWindowSize)
	t2 := c.GetOrBuild(points, msm.DefaultWindowSize)
	require.Same(t1, t2)
	require.Equal(1, c.Len())

	// A different window is a different table.
	t3 := c.GetOrBuild(points, 4)
	require.NotSame(t1, t3)
	require.Equal(2, c.Len())
}

func TestTableCacheEviction(t *testing.T) {
	require := require.New(t)

	c, err := NewTableCache(1)
	require.NoError(err)

	a, err := randutil.RandomPointsG1(4)
	require.NoError(err)
	b, err := randutil.RandomPointsG1(4)
	require.NoError(err)

	first := c.GetOrBuild(a, 4)
	_ = c.GetOrBuild(b, 4)
	require.Equal(1, c.Len())

	// The first entry was evicted; asking again builds a fresh table.
	require.NotSame(first, c.GetOrBuild(a, 4))
}

func TestTableKeyDistinguishesInputs(t *testing.T) {
	require := require.New(t)

	a, err := randutil.RandomPointsG1(3)
	require.NoError(err)
	b, err := randutil.RandomPointsG1(3)
	require.NoError(err)

	require.NotEqual(TableKey(a, 8), TableKey(b, 8))
	require.NotEqual(TableKey(a, 8), TableKey(a, 4))
	require.Equal(TableKey(a, 8), TableKey(a, 8))
}

func TestTableCacheServesEngine(t *testing.T) {
	require := require.New(t)

	c, err := NewTableCache(2)
	require.NoError(err)

	const n = 32
	points, err := randutil.RandomPointsG1(n)
	require.NoError(err)
	scalars, err := randutil.RandomScalars(n)
	require.NoError(err)

	table := c.GetOrBuild(points, msm.DefaultWindowSize)

	var acc bn254.G1Jac
	require.NoError(msm.MultiscalarPar(&acc, 0, msm.SliceInputs(msm.ScalarsFromFr(scalars)), table, n, msm.ScalarBits))

	want, err := reference.NaiveMSM(points, scalars)
	require.NoError(err)
	var got bn254.G1Affine
	got.FromJacobian(&acc)
	require.True(got.Equal(&want))
}
