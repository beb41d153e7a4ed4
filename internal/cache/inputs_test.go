package cache

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/Han-16/msmist/internal/randutil"
)

func TestScalarsRoundTrip(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	scalars, err := randutil.RandomScalars(8)
	require.NoError(err)

	path, err := ScalarPath(dir, 3)
	require.NoError(err)
	require.NoError(SaveScalars(path, 3, scalars))

	got, exp, err := LoadScalars(path)
	require.NoError(err)
	require.Equal(3, exp)
	require.Equal(scalars, got)
}

func TestPointsRoundTrip(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	points, err := randutil.RandomPointsG1(5)
	require.NoError(err)

	path, err := PointPath(dir, 2)
	require.NoError(err)
	require.NoError(SavePoints(path, 2, points))

	got, exp, err := LoadPoints(path)
	require.NoError(err)
	require.Equal(2, exp)
	require.Equal(points, got)
}

func TestLoadOrCreateInputsCaches(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	const exp, n = 4, 16

	genS := func(n int) ([]fr.Element, error) { return randutil.RandomScalars(n) }
	genP := func(n int) ([]bn254.G1Affine, error) { return randutil.RandomPointsG1(n) }

	s1, p1, hit, err := LoadOrCreateInputs(dir, exp, n, genS, genP)
	require.NoError(err)
	require.False(hit)

	s2, p2, hit, err := LoadOrCreateInputs(dir, exp, n, genS, genP)
	require.NoError(err)
	require.True(hit)
	require.Equal(s1, s2)
	require.Equal(p1, p2)
}

func TestLoadOrCreateScalarsRegenerates(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	gen := func(n int) ([]fr.Element, error) { return randutil.RandomScalars(n) }

	_, hit, err := LoadOrCreateScalars(dir, 5, 4, gen)
	require.NoError(err)
	require.False(hit)

	// Same exponent but a different requested size: stale, regenerate.
	s, hit, err := LoadOrCreateScalars(dir, 5, 8, gen)
	require.NoError(err)
	require.False(hit)
	require.Len(s, 8)
}
