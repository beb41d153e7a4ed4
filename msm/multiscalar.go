package msm

import (
	"errors"
	"unsafe"
)

// ErrWindowSize reports an unusable window/nbits/limb combination. Digits
// must not straddle limb boundaries, so the window size has to evenly divide
// both nbits and LimbBits.
var ErrWindowSize = errors.New("window size must evenly divide nbits and the limb width")

func windowOK(windowSize, nbits int) bool {
	return windowSize >= 1 &&
		nbits >= 1 && nbits <= ScalarBits &&
		nbits%windowSize == 0 &&
		LimbBits%windowSize == 0
}

// Multiscalar overwrites res with sum_i k[i] * P_i over the first numItems
// base points of t, reading the low nbits bits of each scalar. The tables
// must cover at least numItems points and k must hold at least numItems
// scalars. Single-threaded; MultiscalarPar fans out over chunks of this.
func Multiscalar[A, J any, PJ Jacobian[A, J]](res PJ, k []Scalar, t *Precomp[A], numItems, nbits int) error {
	if !windowOK(t.windowSize, nbits) {
		return ErrWindowSize
	}

	var zero J
	*res = zero

	windowSize := t.windowSize
	windowsPerLimb := LimbBits / windowSize
	numWindows := (nbits + windowSize - 1) / windowSize

	// Most significant window first: shift the accumulator up by one window,
	// then add every point's digit for that window. Table reads run one step
	// behind a prefetch of the next entry; the last pending add is flushed
	// before the next round of doublings.
	for i := numWindows - 1; i >= 0; i-- {
		for j := 0; j < windowSize; j++ {
			res.DoubleAssign()
		}

		limb := (i * windowSize) / LimbBits
		shift := uint((i % windowsPerLimb) * windowSize)

		var pending *A
		for m := 0; m < numItems; m++ {
			digit := (k[m][limb] >> shift) & t.windowMask
			if digit == 0 {
				continue
			}
			next := &t.tables[m][digit-1]
			prefetcht0(unsafe.Pointer(next))
			if pending != nil {
				res.AddMixed(pending)
			}
			pending = next
		}
		if pending != nil {
			res.AddMixed(pending)
		}
	}
	return nil
}
