package randutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomScalarsParLength(t *testing.T) {
	require := require.New(t)

	s, err := RandomScalarsPar(100, 4)
	require.NoError(err)
	require.Len(s, 100)

	empty, err := RandomScalarsPar(0, 4)
	require.NoError(err)
	require.Empty(empty)
}

func TestRandomPointsG1ParOnCurve(t *testing.T) {
	require := require.New(t)

	ps, err := RandomPointsG1Par(32, 0)
	require.NoError(err)
	require.Len(ps, 32)
	for i := range ps {
		require.True(ps[i].IsOnCurve(), "point %d", i)
	}
}
