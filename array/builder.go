package array

import (
	"github.com/arloliu/mdarr/encoding"
	"github.com/arloliu/mdarr/endian"
	"github.com/arloliu/mdarr/format"
	"github.com/arloliu/mdarr/section"
)

// Builder assembles a packed array buffer.
//
// Producers add metadata entries per dimension in depth-first order, which keeps
// the children of every entry contiguous in the next dimension, and append slots
// in logical order. Build copies everything into one freshly allocated buffer.
type Builder struct {
	typ    format.ElementType
	engine endian.EndianEngine
	levels [][]section.Entry
	nulls  *encoding.BitWriter
	elems  *encoding.ElementWriter
	starts []int32
}

// NewBuilder creates a builder for arrays of type t.
// Call Release when done, whether or not Build was called.
func NewBuilder(t format.ElementType) (*Builder, error) {
	engine := endian.GetNativeEngine()
	elems, err := encoding.NewElementWriter(t, engine)
	if err != nil {
		return nil, err
	}

	return &Builder{
		typ:    t,
		engine: engine,
		nulls:  encoding.NewBitWriter(64),
		elems:  elems,
	}, nil
}

// Release returns the builder's staging buffers to the pool.
func (b *Builder) Release() {
	if b.elems != nil {
		b.elems.Release()
		b.elems = nil
	}
}

// AddEntry appends e to dimension dim and returns its index in that dimension.
func (b *Builder) AddEntry(dim int, e section.Entry) int {
	for len(b.levels) < dim {
		b.levels = append(b.levels, nil)
	}
	b.levels[dim-1] = append(b.levels[dim-1], e)

	return len(b.levels[dim-1]) - 1
}

// Entry returns a pointer to entry idx of dimension dim. The pointer is
// invalidated by the next AddEntry on the same dimension.
func (b *Builder) Entry(dim, idx int) *section.Entry {
	return &b.levels[dim-1][idx]
}

// Dimensions returns the number of dimensions that have entries.
func (b *Builder) Dimensions() int {
	return len(b.levels)
}

// Slots returns the number of logical slots appended so far.
func (b *Builder) Slots() int {
	return b.nulls.Len()
}

// AppendNull appends a NULL slot.
func (b *Builder) AppendNull() {
	b.nulls.Append(true)
}

// AppendScalar appends a non-NULL slot holding s.
func (b *Builder) AppendScalar(s encoding.Scalar) error {
	if err := b.elems.AppendScalar(s); err != nil {
		return err
	}
	b.nulls.Append(false)

	return nil
}

// AppendText casts literal text to the builder's type and appends it as a non-NULL slot.
func (b *Builder) AppendText(text string) error {
	if err := b.elems.AppendText(text); err != nil {
		return err
	}
	b.nulls.Append(false)

	return nil
}

// AppendSlot copies logical slot of v, NULL or element. v must have the builder's type.
func (b *Builder) AppendSlot(v *View, slot int) {
	if v.IsNull(slot) {
		b.nulls.Append(true)
		return
	}
	b.elems.AppendFrom(v.elems, v.ElementPosition(slot))
	b.nulls.Append(false)
}

// AppendSlots copies every slot of v in order.
func (b *Builder) AppendSlots(v *View) {
	for i := range v.elems.Len() {
		b.elems.AppendFrom(v.elems, i)
	}
	b.nulls.AppendFrom(v.nulls, v.slots)
}

// Writer exposes the element writer for producers that compute values directly.
// Every element appended through it must be paired with one AppendPresent call.
func (b *Builder) Writer() *encoding.ElementWriter {
	return b.elems
}

// AppendPresent marks the next slot as non-NULL after its element was written via Writer.
func (b *Builder) AppendPresent() {
	b.nulls.Append(false)
}

// SetStartIndices sets per-dimension start indices. Missing dimensions default to 1.
func (b *Builder) SetStartIndices(starts []int32) {
	b.starts = append(b.starts[:0], starts...)
}

// CopyLevels appends a deep copy of every metadata dimension of v to the builder.
func (b *Builder) CopyLevels(v *View) {
	for d, level := range v.levels {
		for len(b.levels) <= d {
			b.levels = append(b.levels, nil)
		}
		b.levels[d] = append(b.levels[d], level...)
	}
}

// AddRegular appends the entries of a regular array of the given shape, all of
// whose slots start at the current slot count. Slots must be appended separately.
func (b *Builder) AddRegular(shape []int) {
	b.addRegular(shape, 1, b.Slots())
}

func (b *Builder) addRegular(shape []int, dim, offset int) int {
	size := shape[dim-1]
	if dim == len(shape) {
		b.AddEntry(dim, section.Entry{Offset: uint32(offset), Length: uint32(size)}) //nolint:gosec

		return size
	}

	idx := b.AddEntry(dim, section.Entry{Offset: uint32(offset), ChildCount: uint32(size)}) //nolint:gosec
	total := 0
	for range size {
		total += b.addRegular(shape, dim+1, offset+total)
	}
	b.Entry(dim, idx).Length = uint32(total) //nolint:gosec

	return total
}

// Build assembles the packed buffer. A builder with no entries produces the
// canonical empty array.
func (b *Builder) Build() Array {
	if len(b.levels) == 0 {
		return Empty(b.typ)
	}

	h := section.Header{
		DimensionCount: uint32(len(b.levels)), //nolint:gosec
		ElementCount:   uint32(b.elems.Len()), //nolint:gosec
		EntryCounts:    make([]uint32, len(b.levels)),
	}
	for d, level := range b.levels {
		h.EntryCounts[d] = uint32(len(level)) //nolint:gosec
	}

	strs := b.elems.Strings()
	elemSize, _ := encoding.SizeOf(b.typ)
	layout := section.NewLayout(&h, elemSize, b.nulls.Len(), len(strs))

	starts := make([]int32, len(b.levels))
	for i := range starts {
		starts[i] = section.DefaultStart
		if i < len(b.starts) {
			starts[i] = b.starts[i]
		}
	}

	buf := h.Append(make([]byte, 0, layout.Size), b.engine)
	for _, level := range b.levels {
		for _, e := range level {
			buf = e.Append(buf, b.engine)
		}
	}
	buf = append(buf, b.elems.Elements()...)
	buf = append(buf, b.nulls.Bytes()...)
	buf = append(buf, strs...)
	buf = section.AppendStartIndices(buf, starts, b.engine)

	return Array{Type: b.typ, Buf: buf}
}
