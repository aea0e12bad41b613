package array

import (
	"bytes"
	"fmt"
	"math"

	"github.com/arloliu/mdarr/encoding"
	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/format"
)

// Transpose swaps the first two dimensions of a symmetric numeric array.
// A one-dimensional array of n elements becomes an n×1 array. NULLs move with
// their slots and the first two start indices are swapped.
func Transpose(a Array) (Array, error) {
	if !a.Type.IsNumeric() {
		return Array{}, fmt.Errorf("%w: transpose requires a numeric array, got %s", errs.ErrTypeMismatch, a.Type)
	}

	v, err := NewView(a)
	if err != nil {
		return Array{}, err
	}
	if !v.IsSymmetric() {
		return Array{}, fmt.Errorf("%w: transpose requires a symmetric array", errs.ErrStructureMismatch)
	}
	if v.TotalSlots() == 0 {
		return Empty(a.Type), nil
	}

	b, err := NewBuilder(a.Type)
	if err != nil {
		return Array{}, err
	}
	defer b.Release()

	shape := v.Shape()
	starts := v.StartIndices()

	if len(shape) == 1 {
		b.AddRegular([]int{shape[0], 1})
		b.AppendSlots(v)
		b.SetStartIndices([]int32{starts[0], 1})

		return b.Build(), nil
	}

	rows, cols := shape[0], shape[1]
	block := 1
	for _, n := range shape[2:] {
		block *= n
	}

	swapped := append([]int{cols, rows}, shape[2:]...)
	b.AddRegular(swapped)
	for j := range cols {
		for i := range rows {
			base := (i*cols + j) * block
			for k := range block {
				b.AppendSlot(v, base+k)
			}
		}
	}

	starts[0], starts[1] = starts[1], starts[0]
	b.SetStartIndices(starts)

	return b.Build(), nil
}

// fillShape reads dimension sizes from the non-NULL elements of an integer array.
// The shape is cut after its first zero size.
func fillShape(structure Array) ([]int, error) {
	if !structure.Type.IsInteger() {
		return nil, fmt.Errorf("%w: fill structure must be an integer array, got %s", errs.ErrTypeMismatch, structure.Type)
	}

	v, err := NewView(structure)
	if err != nil {
		return nil, err
	}
	if v.ElementCount() == 0 {
		return nil, fmt.Errorf("%w: fill structure has no elements", errs.ErrEmptyArray)
	}

	shape := make([]int, 0, v.ElementCount())
	total := int64(1)
	for i := range v.ElementCount() {
		size := v.elems.Scalar(i).Int()
		if size < 0 {
			return nil, fmt.Errorf("%w: negative dimension size %d", errs.ErrOutOfRange, size)
		}
		if size == 0 {
			return append(shape, 0), nil
		}
		total *= size
		if total > math.MaxUint32 {
			return nil, fmt.Errorf("%w: fill of %v exceeds %d slots", errs.ErrOutOfRange, shape, uint64(math.MaxUint32))
		}
		shape = append(shape, int(size))
	}

	return shape, nil
}

func fill(structure Array, t format.ElementType, add func(*Builder) error) (Array, error) {
	shape, err := fillShape(structure)
	if err != nil {
		return Array{}, err
	}
	if shape[0] == 0 {
		return Empty(t), nil
	}

	b, err := NewBuilder(t)
	if err != nil {
		return Array{}, err
	}
	defer b.Release()

	b.AddRegular(shape)
	total := 1
	for _, n := range shape {
		total *= n
	}
	for range total {
		if err := add(b); err != nil {
			return Array{}, err
		}
	}

	return b.Build(), nil
}

// Fill creates a regular array whose dimension sizes are the elements of
// structure, with every slot holding value.
//
// Returns ErrTypeMismatch if structure is not an integer array, ErrEmptyArray if
// it has no elements and ErrOutOfRange for a negative size.
func Fill(value encoding.Scalar, structure Array) (Array, error) {
	return fill(structure, value.Type(), func(b *Builder) error { return b.AppendScalar(value) })
}

// FillNull is like Fill but every slot is NULL.
func FillNull(structure Array, t format.ElementType) (Array, error) {
	return fill(structure, t, func(b *Builder) error {
		b.AppendNull()
		return nil
	})
}

// mapElements rebuilds v with the same tree, NULLs and start indices, producing
// each element of type out through fn.
func mapElements(v *View, out format.ElementType, fn func(w *encoding.ElementWriter, elem int) error) (Array, error) {
	b, err := NewBuilder(out)
	if err != nil {
		return Array{}, err
	}
	defer b.Release()

	b.CopyLevels(v)
	elem := 0
	for slot := range v.TotalSlots() {
		if v.IsNull(slot) {
			b.AppendNull()
			continue
		}
		if err := fn(b.Writer(), elem); err != nil {
			return Array{}, err
		}
		b.AppendPresent()
		elem++
	}
	b.SetStartIndices(v.starts)

	return b.Build(), nil
}

// Sigmoid applies the logistic function to every element. Integer arrays
// produce f64 arrays, floating-point arrays keep their type. NULLs are kept.
func Sigmoid(a Array) (Array, error) {
	if !a.Type.IsNumeric() {
		return Array{}, fmt.Errorf("%w: sigmoid requires a numeric array, got %s", errs.ErrTypeMismatch, a.Type)
	}

	v, err := NewView(a)
	if err != nil {
		return Array{}, err
	}

	out := a.Type
	if out.IsInteger() {
		out = format.TypeFloat64
	}

	return mapElements(v, out, func(w *encoding.ElementWriter, i int) error {
		w.AppendFloat64As(1 / (1 + math.Exp(-v.elems.Float64At(i))))
		return nil
	})
}

// Cast converts every element of a to type to.
//
// Numeric types convert between each other with range checks, every type
// converts to string using the printer's number formatting, and strings convert
// to numeric types using the parser's casting rules.
func Cast(a Array, to format.ElementType) (Array, error) {
	if !to.IsValid() {
		return Array{}, fmt.Errorf("%w: %d", errs.ErrUnsupportedType, to)
	}

	v, err := NewView(a)
	if err != nil {
		return Array{}, err
	}
	if a.Type == to {
		return a.Clone(), nil
	}

	return mapElements(v, to, func(w *encoding.ElementWriter, i int) error {
		s := v.elems.Scalar(i)
		switch {
		case to == format.TypeString:
			return w.AppendScalar(encoding.StringScalar(string(s.AppendText(nil))))
		case a.Type == format.TypeString:
			return w.AppendText(s.Str())
		default:
			conv, err := encoding.ConvertScalar(s, to)
			if err != nil {
				return err
			}

			return w.AppendScalar(conv)
		}
	})
}

// ArgMax returns the 1-based logical slot of the largest element, the first one
// on ties. Strings compare bytewise. It returns 0 when a has no elements.
func ArgMax(a Array) (int, error) {
	v, err := NewView(a)
	if err != nil {
		return 0, err
	}

	best, bestSlot := -1, 0
	elem := 0
	for slot := range v.TotalSlots() {
		if v.IsNull(slot) {
			continue
		}
		if best < 0 || greater(v.elems, elem, best) {
			best, bestSlot = elem, slot+1
		}
		elem++
	}

	return bestSlot, nil
}

func greater(r *encoding.ElementReader, i, j int) bool {
	switch r.Type() {
	case format.TypeInt32:
		return r.Int32(i) > r.Int32(j)
	case format.TypeInt64:
		return r.Int64(i) > r.Int64(j)
	case format.TypeFloat32:
		return r.Float32(i) > r.Float32(j)
	case format.TypeFloat64:
		return r.Float64(i) > r.Float64(j)
	default:
		return bytes.Compare(r.Bytes(i), r.Bytes(j)) > 0
	}
}
