package msm

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// ScalarsFromFr converts field elements out of Montgomery form into the limb
// representation the accumulators read.
func ScalarsFromFr(scalars []fr.Element) []Scalar {
	out := make([]Scalar, len(scalars))
	for i := range scalars {
		out[i] = Scalar(scalars[i].Bits())
	}
	return out
}
