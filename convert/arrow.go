package convert

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	arrowarray "github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/arloliu/mdarr/array"
	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/format"
)

// ArrowType returns the Arrow type of an array of dims dimensions of element type t:
// the leaf type wrapped in dims-1 lists.
func ArrowType(t format.ElementType, dims int) (arrow.DataType, error) {
	var typ arrow.DataType
	switch t {
	case format.TypeInt32:
		typ = arrow.PrimitiveTypes.Int32
	case format.TypeInt64:
		typ = arrow.PrimitiveTypes.Int64
	case format.TypeFloat32:
		typ = arrow.PrimitiveTypes.Float32
	case format.TypeFloat64:
		typ = arrow.PrimitiveTypes.Float64
	case format.TypeString:
		typ = arrow.BinaryTypes.String
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedType, t)
	}

	for range dims - 1 {
		typ = arrow.ListOf(typ)
	}

	return typ, nil
}

// ToArrow converts a into an Arrow array.
//
// The result holds the items of the root: slots for a 1-D array, otherwise one
// list per top-level sub-array. NULL slots are Arrow nulls and empty sub-arrays
// are empty lists. The caller must Release the result.
func ToArrow(a array.Array, mem memory.Allocator) (arrow.Array, error) {
	v, err := array.NewView(a)
	if err != nil {
		return nil, err
	}

	typ, err := ArrowType(a.Type, v.Dimensions())
	if err != nil {
		return nil, err
	}

	if mem == nil {
		mem = memory.DefaultAllocator
	}

	b := arrowarray.NewBuilder(mem, typ)
	defer b.Release()

	appendItems(b, v, 1, 0)

	return b.NewArray(), nil
}

// appendItems appends the children of entry idx in dimension dim to b.
func appendItems(b arrowarray.Builder, v *array.View, dim, idx int) {
	if dim < v.Dimensions() {
		lb, _ := b.(*arrowarray.ListBuilder)
		entries, _ := v.Entries(dim)
		first, ok := v.ChildEntry(dim, idx)
		if !ok {
			return
		}
		for c := range int(entries[idx].ChildCount) {
			lb.Append(true)
			appendItems(lb.ValueBuilder(), v, dim+1, first+c)
		}

		return
	}

	entries, _ := v.Entries(dim)
	e := entries[idx]
	for s := int(e.Offset); s < int(e.End()); s++ {
		appendSlot(b, v, s)
	}
}

func appendSlot(b arrowarray.Builder, v *array.View, slot int) {
	if v.IsNull(slot) {
		b.AppendNull()
		return
	}

	r := v.Elements()
	i := v.ElementPosition(slot)
	switch bb := b.(type) {
	case *arrowarray.Int32Builder:
		bb.Append(r.Int32(i))
	case *arrowarray.Int64Builder:
		bb.Append(r.Int64(i))
	case *arrowarray.Float32Builder:
		bb.Append(r.Float32(i))
	case *arrowarray.Float64Builder:
		bb.Append(r.Float64(i))
	case *arrowarray.StringBuilder:
		bb.Append(r.String(i))
	}
}
