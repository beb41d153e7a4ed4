package reference

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// MultiExpMSM computes sum_i scalars[i] * points[i] through gnark-crypto's
// Pippenger MultiExp, the production baseline the engine is benchmarked
// against.
func MultiExpMSM(points []bn254.G1Affine, scalars []fr.Element) (bn254.G1Affine, error) {
	if len(points) != len(scalars) {
		return bn254.G1Affine{}, ErrLenMismatch
	}
	if len(points) == 0 {
		return bn254.G1Affine{}, nil
	}

	var acc bn254.G1Jac
	if _, err := acc.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return bn254.G1Affine{}, err
	}

	var out bn254.G1Affine
	out.FromJacobian(&acc)
	return out, nil
}
