package section

import "github.com/arloliu/mdarr/endian"

// Entry is one metadata triple describing a sub-array node.
//
// Offset is the first logical slot covered by the node, Length the number of
// logical slots its subtree covers, and ChildCount the number of direct children
// in the next dimension. Leaf entries always have ChildCount 0.
type Entry struct {
	Offset     uint32
	Length     uint32
	ChildCount uint32
}

// IsEmpty reports whether the entry is an empty sub-array ("{}").
func (e Entry) IsEmpty() bool {
	return e.Length == 0 && e.ChildCount == 0
}

// End returns the logical slot just past the entry's subtree.
func (e Entry) End() uint32 {
	return e.Offset + e.Length
}

// Parse decodes an entry from the first EntrySize bytes of data.
// The caller guarantees len(data) >= EntrySize.
func (e *Entry) Parse(data []byte, engine endian.EndianEngine) {
	e.Offset = engine.Uint32(data[0:4])
	e.Length = engine.Uint32(data[4:8])
	e.ChildCount = engine.Uint32(data[8:12])
}

// Append serializes the entry and appends it to dst.
func (e Entry) Append(dst []byte, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint32(dst, e.Offset)
	dst = engine.AppendUint32(dst, e.Length)

	return engine.AppendUint32(dst, e.ChildCount)
}
