package array

import (
	"github.com/arloliu/mdarr/endian"
	"github.com/arloliu/mdarr/format"
	"github.com/arloliu/mdarr/internal/hash"
	"github.com/arloliu/mdarr/section"
)

// Array is a packed array buffer paired with its element type.
//
// The buffer does not record its own element type; callers carry it alongside,
// the same way the engine carries a type tag next to every value.
type Array struct {
	Type format.ElementType
	Buf  []byte
}

// Len returns the size of the packed buffer in bytes.
func (a Array) Len() int {
	return len(a.Buf)
}

// Clone returns a copy of a that shares no storage with it.
func (a Array) Clone() Array {
	buf := make([]byte, len(a.Buf))
	copy(buf, a.Buf)

	return Array{Type: a.Type, Buf: buf}
}

// Fingerprint returns a 64-bit hash of the type tag and the packed buffer.
// Equal arrays have equal fingerprints.
func (a Array) Fingerprint() uint64 {
	return hash.Sum64Parts([]byte{byte(a.Type)}, a.Buf)
}

// Empty returns the canonical empty array of type t: one dimension holding a
// single empty root entry.
func Empty(t format.ElementType) Array {
	engine := endian.GetNativeEngine()
	h := section.Header{DimensionCount: 1, EntryCounts: []uint32{1}}

	buf := h.Append(make([]byte, 0, h.Size()+section.EntrySize+section.FieldSize), engine)
	buf = section.Entry{}.Append(buf, engine)
	buf = section.AppendStartIndices(buf, []int32{section.DefaultStart}, engine)

	return Array{Type: t, Buf: buf}
}
