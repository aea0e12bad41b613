package array

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/mdarr/encoding"
	"github.com/arloliu/mdarr/endian"
	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/format"
	"github.com/arloliu/mdarr/section"
)

// View is a read-only, parsed view over a packed array buffer.
//
// Metadata entries are decoded once into per-dimension slices. Children are
// located through an explicit arena of child start indices instead of summing
// sibling child counts on every step. Dimensions are numbered from 1.
type View struct {
	buf    []byte
	typ    format.ElementType
	engine endian.EndianEngine
	header section.Header
	layout section.Layout

	levels     [][]section.Entry
	childStart [][]uint32
	parent     [][]uint32

	elems    *encoding.ElementReader
	nulls    []byte
	nullRank []uint32
	starts   []int32
	slots    int
}

// NewView parses and validates a packed array buffer.
//
// Returns ErrUnsupportedType for an invalid element type, or ErrMalformedBuffer
// if any section is truncated or the metadata tree is inconsistent.
func NewView(a Array) (*View, error) {
	engine := endian.GetNativeEngine()

	size, err := encoding.SizeOf(a.Type)
	if err != nil {
		return nil, err
	}

	h, err := section.ParseHeader(a.Buf, engine)
	if err != nil {
		return nil, err
	}

	v := &View{buf: a.Buf, typ: a.Type, engine: engine, header: h}
	if err := v.parseMetadata(a.Buf); err != nil {
		return nil, err
	}

	// The string section size is only known from the element lengths, so lay out
	// the fixed sections first and locate the string and start sections afterwards.
	pre := section.NewLayout(&h, size, v.slots, 0)
	if len(a.Buf) < pre.StringsOffset {
		return nil, fmt.Errorf("%w: buffer of %d bytes is shorter than its sections (%d)", errs.ErrMalformedBuffer, len(a.Buf), pre.StringsOffset)
	}

	v.elems, err = encoding.NewElementReader(a.Type, engine, a.Buf[pre.ElementsOffset:pre.NullsOffset], int(h.ElementCount), a.Buf[pre.StringsOffset:])
	if err != nil {
		return nil, err
	}

	v.layout = section.NewLayout(&h, size, v.slots, v.elems.StringBytes())
	switch len(a.Buf) {
	case v.layout.StartsOffset:
		v.starts = make([]int32, h.DimensionCount)
		for i := range v.starts {
			v.starts[i] = section.DefaultStart
		}
	case v.layout.Size:
		v.starts, err = section.ParseStartIndices(a.Buf[v.layout.StartsOffset:], int(h.DimensionCount), engine)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: buffer is %d bytes, layout needs %d", errs.ErrMalformedBuffer, len(a.Buf), v.layout.Size)
	}

	v.nulls = a.Buf[v.layout.NullsOffset:v.layout.StringsOffset]
	v.buildNullRank()

	if nulls := v.CountNulls(v.slots); v.slots-nulls != int(h.ElementCount) {
		return nil, fmt.Errorf("%w: %d slots with %d NULLs do not match %d elements",
			errs.ErrMalformedBuffer, v.slots, nulls, h.ElementCount)
	}

	return v, nil
}

func (v *View) parseMetadata(buf []byte) error {
	h := &v.header
	dims := int(h.DimensionCount)

	if h.EntryCounts[0] != 1 {
		return fmt.Errorf("%w: dimension 1 has %d entries", errs.ErrMalformedBuffer, h.EntryCounts[0])
	}

	if need := h.Size() + h.MetadataSize(); len(buf) < need {
		return fmt.Errorf("%w: metadata needs %d bytes, have %d", errs.ErrMalformedBuffer, need, len(buf))
	}

	v.levels = make([][]section.Entry, dims)
	v.childStart = make([][]uint32, dims)
	v.parent = make([][]uint32, dims)

	off := h.Size()
	for d := range dims {
		entries := make([]section.Entry, h.EntryCounts[d])
		for i := range entries {
			entries[i].Parse(buf[off:], v.engine)
			off += section.EntrySize
		}
		v.levels[d] = entries
		v.parent[d] = make([]uint32, len(entries))
	}

	for d := range dims {
		starts := make([]uint32, len(v.levels[d]))
		next := uint32(0)
		for i, e := range v.levels[d] {
			starts[i] = next
			if e.ChildCount == 0 {
				if d < dims-1 && e.Length != 0 {
					return fmt.Errorf("%w: entry %d of dimension %d holds slots above the leaf dimension", errs.ErrMalformedBuffer, i, d+1)
				}

				continue
			}
			if d == dims-1 {
				return fmt.Errorf("%w: leaf entry %d has children", errs.ErrMalformedBuffer, i)
			}
			if uint64(next)+uint64(e.ChildCount) > uint64(len(v.levels[d+1])) {
				return fmt.Errorf("%w: children of entry %d in dimension %d exceed %d entries",
					errs.ErrMalformedBuffer, i, d+1, len(v.levels[d+1]))
			}
			if err := v.checkChildren(d, i, next); err != nil {
				return err
			}
			next += e.ChildCount
		}
		if d < dims-1 && int(next) != len(v.levels[d+1]) {
			return fmt.Errorf("%w: dimension %d has %d children but dimension %d has %d entries",
				errs.ErrMalformedBuffer, d+1, next, d+2, len(v.levels[d+1]))
		}
		v.childStart[d] = starts
	}

	root := v.levels[0][0]
	if root.Offset != 0 {
		return fmt.Errorf("%w: root offset %d", errs.ErrMalformedBuffer, root.Offset)
	}
	v.slots = int(root.Length)

	return nil
}

// checkChildren verifies that the children of entry i at zero-based level d tile its slot range.
func (v *View) checkChildren(d, i int, first uint32) error {
	e := v.levels[d][i]
	cursor := e.Offset
	for c := first; c < first+e.ChildCount; c++ {
		child := v.levels[d+1][c]
		if child.Offset != cursor {
			return fmt.Errorf("%w: child %d of dimension %d starts at slot %d, expected %d",
				errs.ErrMalformedBuffer, c, d+2, child.Offset, cursor)
		}
		cursor = child.End()
		v.parent[d+1][c] = uint32(i) //nolint:gosec
	}
	if cursor != e.End() {
		return fmt.Errorf("%w: children of entry %d in dimension %d cover %d slots, entry declares %d",
			errs.ErrMalformedBuffer, i, d+1, cursor-e.Offset, e.Length)
	}

	return nil
}

func (v *View) buildNullRank() {
	v.nullRank = make([]uint32, len(v.nulls)+1)
	for i, b := range v.nulls {
		v.nullRank[i+1] = v.nullRank[i] + uint32(bits.OnesCount8(b)) //nolint:gosec
	}
}

// Type returns the element type.
func (v *View) Type() format.ElementType {
	return v.typ
}

// Dimensions returns the number of dimensions.
func (v *View) Dimensions() int {
	return len(v.levels)
}

// ElementCount returns the number of non-NULL elements.
func (v *View) ElementCount() int {
	return v.elems.Len()
}

// TotalSlots returns the number of logical slots, NULLs included.
func (v *View) TotalSlots() int {
	return v.slots
}

// Elements returns the element reader.
func (v *View) Elements() *encoding.ElementReader {
	return v.elems
}

// Nulls returns the NULL bitmap.
func (v *View) Nulls() []byte {
	return v.nulls
}

// Layout returns the byte offsets of the buffer's sections.
func (v *View) Layout() section.Layout {
	return v.layout
}

// StartIndices returns a copy of the per-dimension start indices.
func (v *View) StartIndices() []int32 {
	return append([]int32(nil), v.starts...)
}

func (v *View) checkDim(dim int) error {
	if dim < 1 || dim > len(v.levels) {
		return fmt.Errorf("%w: dimension %d of %d", errs.ErrDimensionNotFound, dim, len(v.levels))
	}

	return nil
}

// StartIndex returns the start index of dimension dim.
func (v *View) StartIndex(dim int) (int32, error) {
	if err := v.checkDim(dim); err != nil {
		return 0, err
	}

	return v.starts[dim-1], nil
}

// EntryCount returns the number of metadata entries in dimension dim.
func (v *View) EntryCount(dim int) (int, error) {
	if err := v.checkDim(dim); err != nil {
		return 0, err
	}

	return len(v.levels[dim-1]), nil
}

// Entries returns the metadata entries of dimension dim. The slice must not be modified.
func (v *View) Entries(dim int) ([]section.Entry, error) {
	if err := v.checkDim(dim); err != nil {
		return nil, err
	}

	return v.levels[dim-1], nil
}

// FirstEntry returns the first entry of dimension dim.
func (v *View) FirstEntry(dim int) (section.Entry, error) {
	if err := v.checkDim(dim); err != nil {
		return section.Entry{}, err
	}
	if len(v.levels[dim-1]) == 0 {
		return section.Entry{}, fmt.Errorf("%w: dimension %d has no entries", errs.ErrDimensionNotFound, dim)
	}

	return v.levels[dim-1][0], nil
}

// entry returns entry idx of dimension dim without bounds checks on dim.
func (v *View) entry(dim, idx int) section.Entry {
	return v.levels[dim-1][idx]
}

// ChildEntry returns the index in dimension dim+1 of the first child of entry
// idx in dimension dim. It returns false if the entry has no children.
func (v *View) ChildEntry(dim, idx int) (int, bool) {
	if dim < 1 || dim >= len(v.levels) || idx < 0 || idx >= len(v.levels[dim-1]) {
		return 0, false
	}
	if v.levels[dim-1][idx].ChildCount == 0 {
		return 0, false
	}

	return int(v.childStart[dim-1][idx]), true
}

// SiblingIndex returns the zero-based position of entry idx of dimension dim
// among the children of its parent.
func (v *View) SiblingIndex(dim, idx int) int {
	if dim <= 1 {
		return 0
	}
	p := v.parent[dim-1][idx]

	return idx - int(v.childStart[dim-2][p])
}

// IsNull reports whether logical slot is NULL.
func (v *View) IsNull(slot int) bool {
	return encoding.IsNull(v.nulls, slot)
}

// CountNulls returns the number of NULL slots in [0, upTo).
func (v *View) CountNulls(upTo int) int {
	if upTo <= 0 {
		return 0
	}
	if upTo >= v.slots {
		upTo = v.slots
	}

	full := upTo >> 3
	n := int(v.nullRank[full])
	if rem := upTo & 7; rem != 0 {
		n += bits.OnesCount8(v.nulls[full] & (byte(0xFF) << (8 - rem)))
	}

	return n
}

// ElementPosition returns the element index of a non-NULL logical slot.
func (v *View) ElementPosition(slot int) int {
	return slot - v.CountNulls(slot)
}

// HasNull reports whether any slot is NULL.
func (v *View) HasNull() bool {
	return v.elems.Len() < v.slots
}

// HasEmpty reports whether any sub-array is empty ("{}").
func (v *View) HasEmpty() bool {
	for _, level := range v.levels {
		for _, e := range level {
			if e.IsEmpty() {
				return true
			}
		}
	}

	return false
}

// IsSymmetric reports whether every dimension is regular: all entries of a
// dimension have the same child count and the same length.
func (v *View) IsSymmetric() bool {
	for _, level := range v.levels {
		if len(level) == 0 {
			continue
		}
		for _, e := range level[1:] {
			if e.ChildCount != level[0].ChildCount || e.Length != level[0].Length {
				return false
			}
		}
	}

	return true
}

// DimensionSize returns the largest number of items any entry of dimension dim
// holds: child sub-arrays for inner entries, slots for leaf entries.
func (v *View) DimensionSize(dim int) (int, error) {
	if err := v.checkDim(dim); err != nil {
		return 0, err
	}

	size := 0
	for _, e := range v.levels[dim-1] {
		n := int(e.Length)
		if e.ChildCount > 0 {
			n = int(e.ChildCount)
		}
		size = max(size, n)
	}

	return size, nil
}

// Shape returns the size of every dimension of a symmetric array.
// Dimensions after the first zero-sized one are dropped.
func (v *View) Shape() []int {
	shape := make([]int, 0, len(v.levels))
	for d := range v.levels {
		size, _ := v.DimensionSize(d + 1)
		shape = append(shape, size)
		if size == 0 {
			break
		}
	}

	return shape
}

// EqualMetadata reports whether both views have identical dimension trees.
func (v *View) EqualMetadata(other *View) bool {
	if len(v.levels) != len(other.levels) {
		return false
	}
	for d, level := range v.levels {
		if len(level) != len(other.levels[d]) {
			return false
		}
		for i, e := range level {
			if e != other.levels[d][i] {
				return false
			}
		}
	}

	return true
}
