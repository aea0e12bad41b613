package array

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/arloliu/mdarr/encoding"
	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/section"
)

// window restricts the items of one dimension to 1-based positions [lower, upper].
// A zero dim keeps everything.
type window struct {
	dim          int
	lower, upper int
}

func (w window) keeps(dim, pos int) bool {
	return dim != w.dim || (pos >= w.lower && pos <= w.upper)
}

// treeCopier rebuilds a (possibly filtered) subtree of a view into a builder.
type treeCopier struct {
	v    *View
	b    *Builder
	win  window
	kept *roaring.Bitmap
	// items counts the children and slots kept at the window's dimension.
	items int
	// shift maps source dimensions onto builder dimensions.
	shift int
}

// copyEntry copies entry idx of dimension dim with the kept part of its subtree.
func (c *treeCopier) copyEntry(dim, idx int) {
	src := c.v.entry(dim, idx)
	start := c.kept.GetCardinality()
	out := c.b.AddEntry(dim-c.shift, section.Entry{Offset: uint32(start)}) //nolint:gosec

	children := 0
	if first, ok := c.v.ChildEntry(dim, idx); ok {
		for i := range int(src.ChildCount) {
			if !c.win.keeps(dim, i+1) {
				continue
			}
			c.copyEntry(dim+1, first+i)
			children++
		}
		if dim == c.win.dim {
			c.items += children
		}
	} else {
		for i := range int(src.Length) {
			if c.win.keeps(dim, i+1) {
				c.kept.Add(src.Offset + uint32(i)) //nolint:gosec
				if dim == c.win.dim {
					c.items++
				}
			}
		}
	}

	length := c.kept.GetCardinality() - start
	e := c.b.Entry(dim-c.shift, out)
	e.Length = uint32(length) //nolint:gosec
	e.ChildCount = uint32(children)
}

// copyKept copies the payload of every kept slot in order.
func (c *treeCopier) copyKept() {
	it := c.kept.Iterator()
	for it.HasNext() {
		c.b.AppendSlot(c.v, int(it.Next()))
	}
}

// Slice keeps only the items of dimension dim whose 1-based position lies in
// [lower, upper], together with their whole subtrees. Other dimensions keep
// all their items.
//
// Sub-arrays are kept even when they hold no slot, so {{},{}} survives a full
// range. A dim beyond the array's dimension count, or a window that keeps no item
// of dim, produces the canonical empty array. The start index of dim becomes lower.
//
// Returns:
//   - Array: A fresh packed array
//   - error: ErrInvalidRange if lower > upper, ErrDimensionNotFound if dim < 1,
//     ErrMalformedBuffer for a corrupt input
func Slice(a Array, lower, upper, dim int) (Array, error) {
	if lower > upper {
		return Array{}, fmt.Errorf("%w: lower bound %d exceeds upper bound %d", errs.ErrInvalidRange, lower, upper)
	}
	if dim < 1 {
		return Array{}, fmt.Errorf("%w: dimension %d", errs.ErrDimensionNotFound, dim)
	}

	v, err := NewView(a)
	if err != nil {
		return Array{}, err
	}
	if dim > v.Dimensions() {
		return Empty(a.Type), nil
	}

	b, err := NewBuilder(a.Type)
	if err != nil {
		return Array{}, err
	}
	defer b.Release()

	c := &treeCopier{v: v, b: b, win: window{dim: dim, lower: lower, upper: upper}, kept: roaring.New()}
	c.copyEntry(1, 0)
	if c.items == 0 {
		return Empty(a.Type), nil
	}
	c.copyKept()

	starts := v.StartIndices()
	starts[dim-1] = int32(lower) //nolint:gosec
	b.SetStartIndices(starts)

	return b.Build(), nil
}

// ItemKind classifies the result of Subscript.
type ItemKind uint8

const (
	// ItemMissing means the position is outside the array.
	ItemMissing ItemKind = iota
	// ItemNull means the position holds a NULL element.
	ItemNull
	// ItemScalar means the position holds an element of a one-dimensional array.
	ItemScalar
	// ItemArray means the position holds a sub-array.
	ItemArray
)

func (k ItemKind) String() string {
	switch k {
	case ItemMissing:
		return "missing"
	case ItemNull:
		return "null"
	case ItemScalar:
		return "scalar"
	case ItemArray:
		return "array"
	default:
		return "unknown"
	}
}

// Item is the result of Subscript.
type Item struct {
	Kind   ItemKind
	Scalar encoding.Scalar
	Array  Array
}

// Subscript returns the item at 1-based position pos of the first dimension.
//
// For a one-dimensional array the item is an element or NULL. Otherwise it is
// the sub-array at pos, with one dimension less and its nested structure intact.
func Subscript(a Array, pos int) (Item, error) {
	v, err := NewView(a)
	if err != nil {
		return Item{}, err
	}

	root := v.entry(1, 0)
	if v.Dimensions() == 1 {
		if pos < 1 || pos > int(root.Length) {
			return Item{Kind: ItemMissing}, nil
		}
		slot := pos - 1
		if v.IsNull(slot) {
			return Item{Kind: ItemNull}, nil
		}

		return Item{Kind: ItemScalar, Scalar: v.elems.Scalar(v.ElementPosition(slot))}, nil
	}

	if pos < 1 || pos > int(root.ChildCount) {
		return Item{Kind: ItemMissing}, nil
	}

	b, err := NewBuilder(a.Type)
	if err != nil {
		return Item{}, err
	}
	defer b.Release()

	first, _ := v.ChildEntry(1, 0)
	c := &treeCopier{v: v, b: b, kept: roaring.New(), shift: 1}
	c.copyEntry(2, first+pos-1)
	c.copyKept()
	b.SetStartIndices(v.starts[1:])

	return Item{Kind: ItemArray, Array: b.Build()}, nil
}
