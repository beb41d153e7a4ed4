package msm

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func TestInputsAt(t *testing.T) {
	require := require.New(t)

	in := SliceInputs([]Scalar{{1}, {2}, {3}})
	require.Equal(Scalar{2}, in.At(1))

	g := GetterInputs(func(i int) Scalar { return Scalar{uint64(i * 10)} })
	require.Equal(Scalar{20}, g.At(2))
}

func TestScalarsFromFr(t *testing.T) {
	require := require.New(t)

	// Canonical limbs, not Montgomery form: small values convert to
	// themselves.
	es := make([]fr.Element, 3)
	es[0].SetUint64(1)
	es[1].SetUint64(42)

	require.Equal([]Scalar{{1}, {42}, {}}, ScalarsFromFr(es))
}
