package msm

// Inputs hands scalars to the schedulers either as a borrowed slice or
// through a getter. A getter must be safe for concurrent calls; workers only
// ever ask for disjoint index ranges.
type Inputs struct {
	slice  []Scalar
	getter func(int) Scalar
}

// SliceInputs wraps a contiguous scalar slice. The slice is borrowed, not
// copied.
func SliceInputs(scalars []Scalar) Inputs {
	return Inputs{slice: scalars}
}

// GetterInputs wraps an indexed scalar source, e.g. one deriving or
// decompressing scalars on demand.
func GetterInputs(get func(i int) Scalar) Inputs {
	return Inputs{getter: get}
}

// At returns the i-th scalar.
func (in Inputs) At(i int) Scalar {
	if in.getter != nil {
		return in.getter(i)
	}
	return in.slice[i]
}
