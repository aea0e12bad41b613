package section

const (
	FieldSize       = 4                       // size of every u32/i32 header field
	EntryFields     = 3                       // offset, length, childCount
	EntrySize       = EntryFields * FieldSize // size of one metadata entry
	FixedHeaderSize = 2 * FieldSize           // dimensionCount + elementCount
	DefaultStart    = int32(1)                // start index when no bounds header is given
	MaxDimensions   = 1 << 16                 // sanity bound used while parsing untrusted buffers
)
