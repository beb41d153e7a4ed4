package msm

// Jacobian constrains a pointer to the projective (Jacobian) form of a group
// element. The zero value of J must be the group identity, which holds for
// Jacobian coordinates with Z == 0 (bn254.G1Jac among them).
type Jacobian[A, J any] interface {
	*J
	FromAffine(*A) *J
	AddAssign(*J) *J
	AddMixed(*A) *J
	DoubleAssign() *J
}

// Affine constrains a pointer to the affine form of a group element
// (zero-value Affine == infinity).
type Affine[A, J any] interface {
	*A
	FromJacobian(*J) *A
}
