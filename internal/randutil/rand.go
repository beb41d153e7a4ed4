package randutil

import (
	"crypto/rand"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// RandomScalars draws n uniform Fr elements.
func RandomScalars(n int) ([]fr.Element, error) {
	out := make([]fr.Element, n)
	for i := range out {
		b, err := rand.Int(rand.Reader, fr.Modulus())
		if err != nil {
			return nil, err
		}
		out[i].SetBigInt(b)
	}
	return out, nil
}

// RandomPointsG1 draws n points (random scalar) * G1 generator, affine.
func RandomPointsG1(n int) ([]bn254.G1Affine, error) {
	out := make([]bn254.G1Affine, n)

	_, _, g, _ := bn254.Generators()

	for i := range out {
		b, err := rand.Int(rand.Reader, fr.Modulus())
		if err != nil {
			return nil, err
		}
		out[i].ScalarMultiplication(&g, b)
	}
	return out, nil
}
