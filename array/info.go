package array

// HasNull reports whether a holds any NULL slot.
func HasNull(a Array) (bool, error) {
	v, err := NewView(a)
	if err != nil {
		return false, err
	}

	return v.HasNull(), nil
}

// HasEmpty reports whether a holds any empty sub-array.
func HasEmpty(a Array) (bool, error) {
	v, err := NewView(a)
	if err != nil {
		return false, err
	}

	return v.HasEmpty(), nil
}

// IsSymmetric reports whether every dimension of a is regular.
func IsSymmetric(a Array) (bool, error) {
	v, err := NewView(a)
	if err != nil {
		return false, err
	}

	return v.IsSymmetric(), nil
}

// EqualMetadata reports whether a and b have identical dimension trees.
// Element types and payloads are not compared.
func EqualMetadata(a, b Array) (bool, error) {
	av, err := NewView(a)
	if err != nil {
		return false, err
	}
	bv, err := NewView(b)
	if err != nil {
		return false, err
	}

	return av.EqualMetadata(bv), nil
}

// DimensionSize returns the size of dimension dim of a.
func DimensionSize(a Array, dim int) (int, error) {
	v, err := NewView(a)
	if err != nil {
		return 0, err
	}

	return v.DimensionSize(dim)
}
