package reference

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var ErrLenMismatch = errors.New("points and scalars must have same length")

// NaiveMSM computes sum_i scalars[i] * points[i] term by term. Slow and
// obviously correct; the windowed accumulators are checked against it.
func NaiveMSM(points []bn254.G1Affine, scalars []fr.Element) (bn254.G1Affine, error) {
	if len(points) != len(scalars) {
		return bn254.G1Affine{}, ErrLenMismatch
	}

	var acc bn254.G1Jac
	for i := range points {
		var term bn254.G1Jac
		term.FromAffine(&points[i])
		term.ScalarMultiplication(&term, scalars[i].BigInt(new(big.Int)))
		acc.AddAssign(&term)
	}

	var out bn254.G1Affine
	out.FromJacobian(&acc)
	return out, nil
}
