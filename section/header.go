package section

import (
	"fmt"

	"github.com/arloliu/mdarr/endian"
	"github.com/arloliu/mdarr/errs"
)

// Header is the leading section of a packed array buffer.
type Header struct {
	// DimensionCount is the number of nesting levels, at least 1.
	DimensionCount uint32 // byte offset 0-3
	// ElementCount is the number of non-NULL elements stored in the element section.
	ElementCount uint32 // byte offset 4-7
	// EntryCounts holds the number of metadata entries of every dimension.
	EntryCounts []uint32 // byte offset 8-(8+4×DimensionCount)
}

// Size returns the encoded size of the header in bytes.
func (h *Header) Size() int {
	return FixedHeaderSize + len(h.EntryCounts)*FieldSize
}

// TotalEntries returns the number of metadata entries over all dimensions.
func (h *Header) TotalEntries() int {
	total := 0
	for _, c := range h.EntryCounts {
		total += int(c)
	}

	return total
}

// MetadataSize returns the size of the metadata section in bytes.
func (h *Header) MetadataSize() int {
	return h.TotalEntries() * EntrySize
}

// Parse parses the header from the start of data.
//
// Parameters:
//   - data: Byte slice starting with a packed array header
//   - engine: Byte order the buffer was written with
//
// Returns:
//   - error: ErrMalformedBuffer if data is truncated or the dimension count is invalid
func (h *Header) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) < FixedHeaderSize {
		return fmt.Errorf("%w: header needs %d bytes, have %d", errs.ErrMalformedBuffer, FixedHeaderSize, len(data))
	}

	dims := engine.Uint32(data[0:4])
	if dims == 0 || dims > MaxDimensions {
		return fmt.Errorf("%w: invalid dimension count %d", errs.ErrMalformedBuffer, dims)
	}

	need := FixedHeaderSize + int(dims)*FieldSize
	if len(data) < need {
		return fmt.Errorf("%w: header needs %d bytes, have %d", errs.ErrMalformedBuffer, need, len(data))
	}

	h.DimensionCount = dims
	h.ElementCount = engine.Uint32(data[4:8])
	h.EntryCounts = make([]uint32, dims)
	for i := range h.EntryCounts {
		off := FixedHeaderSize + i*FieldSize
		h.EntryCounts[i] = engine.Uint32(data[off : off+FieldSize])
	}

	return nil
}

// Append serializes the header and appends it to dst.
func (h *Header) Append(dst []byte, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint32(dst, h.DimensionCount)
	dst = engine.AppendUint32(dst, h.ElementCount)
	for _, c := range h.EntryCounts {
		dst = engine.AppendUint32(dst, c)
	}

	return dst
}

// Bytes serializes the header into a new byte slice.
func (h *Header) Bytes(engine endian.EndianEngine) []byte {
	return h.Append(make([]byte, 0, h.Size()), engine)
}

// ParseHeader parses a Header from the start of data.
func ParseHeader(data []byte, engine endian.EndianEngine) (Header, error) {
	h := Header{}
	if err := h.Parse(data, engine); err != nil {
		return Header{}, err
	}

	return h, nil
}
