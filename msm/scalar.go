package msm

// Limb geometry of the canonical scalar representation. LimbBits is a fixed
// width, never the platform word; window digits must not straddle a limb, so
// usable window sizes evenly divide LimbBits.
const (
	LimbBits    = 64
	ScalarLimbs = 4
	ScalarBits  = ScalarLimbs * LimbBits
)

// Scalar is a scalar in canonical (non-Montgomery) form, least significant
// limb first.
type Scalar [ScalarLimbs]uint64
