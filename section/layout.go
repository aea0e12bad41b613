package section

import (
	"fmt"

	"github.com/arloliu/mdarr/endian"
	"github.com/arloliu/mdarr/errs"
)

// Layout holds the byte offsets of every section of a packed array buffer.
type Layout struct {
	MetadataOffset int
	ElementsOffset int
	NullsOffset    int
	StringsOffset  int
	StartsOffset   int
	Size           int
}

// NewLayout computes section offsets from the header and the payload sizes.
//
// Parameters:
//   - h: Parsed or prepared header
//   - elementSize: Encoded size of one element (4 or 8 bytes)
//   - totalSlots: Number of logical slots, NULLs included
//   - stringBytes: Size of the string section (0 for numeric arrays)
func NewLayout(h *Header, elementSize, totalSlots, stringBytes int) Layout {
	l := Layout{}
	l.MetadataOffset = h.Size()
	l.ElementsOffset = l.MetadataOffset + h.MetadataSize()
	l.NullsOffset = l.ElementsOffset + int(h.ElementCount)*elementSize
	l.StringsOffset = l.NullsOffset + (totalSlots+7)/8
	l.StartsOffset = l.StringsOffset + stringBytes
	l.Size = l.StartsOffset + len(h.EntryCounts)*FieldSize

	return l
}

// AppendStartIndices serializes per-dimension start indices and appends them to dst.
func AppendStartIndices(dst []byte, starts []int32, engine endian.EndianEngine) []byte {
	for _, s := range starts {
		dst = engine.AppendUint32(dst, uint32(s)) //nolint:gosec
	}

	return dst
}

// ParseStartIndices decodes dims start indices from the start of data.
func ParseStartIndices(data []byte, dims int, engine endian.EndianEngine) ([]int32, error) {
	if len(data) < dims*FieldSize {
		return nil, fmt.Errorf("%w: start indices need %d bytes, have %d", errs.ErrMalformedBuffer, dims*FieldSize, len(data))
	}

	starts := make([]int32, dims)
	for i := range starts {
		starts[i] = int32(engine.Uint32(data[i*FieldSize : (i+1)*FieldSize])) //nolint:gosec
	}

	return starts, nil
}
