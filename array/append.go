package array

import (
	"fmt"

	"github.com/arloliu/mdarr/encoding"
	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/section"
)

// Append concatenates right onto left.
//
// With equal dimension counts the items of right's root follow the items of
// left's root. With fewer dimensions, right as a whole becomes the last item of
// the rightmost sub-array of left at the matching depth. An empty left yields
// a copy of right.
//
// Returns:
//   - Array: A fresh packed array carrying left's start indices
//   - error: ErrTypeMismatch for different element types, ErrDimensionMismatch if
//     right has more dimensions than left
func Append(left, right Array) (Array, error) {
	if left.Type != right.Type {
		return Array{}, fmt.Errorf("%w: cannot append %s to %s", errs.ErrTypeMismatch, right.Type, left.Type)
	}

	lv, err := NewView(left)
	if err != nil {
		return Array{}, err
	}
	rv, err := NewView(right)
	if err != nil {
		return Array{}, err
	}

	if lv.Dimensions() == 1 && lv.entry(1, 0).IsEmpty() && rv.Dimensions() > 1 {
		return right.Clone(), nil
	}
	if rv.Dimensions() > lv.Dimensions() {
		return Array{}, fmt.Errorf("%w: cannot append %d-dimensional array to %d-dimensional array",
			errs.ErrDimensionMismatch, rv.Dimensions(), lv.Dimensions())
	}

	b, err := NewBuilder(left.Type)
	if err != nil {
		return Array{}, err
	}
	defer b.Release()

	b.CopyLevels(lv)
	lslots := uint32(lv.TotalSlots()) //nolint:gosec
	rslots := uint32(rv.TotalSlots()) //nolint:gosec

	first := 1
	if rv.Dimensions() == lv.Dimensions() {
		root, rroot := b.Entry(1, 0), rv.entry(1, 0)
		root.Length += rroot.Length
		root.ChildCount += rroot.ChildCount
		first = 2
	} else {
		depth := lv.Dimensions() - rv.Dimensions()
		path := b.rightmostPath(depth)
		for d, idx := range path {
			b.Entry(d+1, idx).Length += rslots
		}
		b.Entry(depth, path[depth-1]).ChildCount++
	}

	shift := lv.Dimensions() - rv.Dimensions()
	for d := first; d <= rv.Dimensions(); d++ {
		for _, e := range rv.levels[d-1] {
			e.Offset += lslots
			b.AddEntry(d+shift, e)
		}
	}

	b.AppendSlots(lv)
	b.AppendSlots(rv)
	b.SetStartIndices(lv.starts)

	return b.Build(), nil
}

// rightmostPath returns, for dimensions 1..depth, the index of the rightmost
// entry on the path from the root. When an entry on the path has no children,
// empty placeholder entries are added below it so the path reaches depth.
func (b *Builder) rightmostPath(depth int) []int {
	path := make([]int, depth)
	grow := false
	for d := 2; d <= depth; d++ {
		parent := b.Entry(d-1, path[d-2])
		if !grow && parent.ChildCount > 0 {
			path[d-1] = len(b.levels[d-1]) - 1
			continue
		}
		grow = true
		parent.ChildCount++
		path[d-1] = b.AddEntry(d, section.Entry{Offset: parent.End()})
	}

	return path
}

// AppendElement appends s as a new last slot of the deepest rightmost sub-array.
func AppendElement(a Array, s encoding.Scalar) (Array, error) {
	if s.Type() != a.Type {
		return Array{}, fmt.Errorf("%w: cannot append %s element to %s array", errs.ErrTypeMismatch, s.Type(), a.Type)
	}

	return appendSlot(a, func(b *Builder) error { return b.AppendScalar(s) })
}

// AppendNull appends a NULL as a new last slot of the deepest rightmost sub-array.
func AppendNull(a Array) (Array, error) {
	return appendSlot(a, func(b *Builder) error {
		b.AppendNull()
		return nil
	})
}

func appendSlot(a Array, add func(*Builder) error) (Array, error) {
	v, err := NewView(a)
	if err != nil {
		return Array{}, err
	}

	b, err := NewBuilder(a.Type)
	if err != nil {
		return Array{}, err
	}
	defer b.Release()

	b.CopyLevels(v)
	for d, idx := range b.rightmostPath(v.Dimensions()) {
		b.Entry(d+1, idx).Length++
	}

	b.AppendSlots(v)
	if err := add(b); err != nil {
		return Array{}, err
	}
	b.SetStartIndices(v.starts)

	return b.Build(), nil
}
