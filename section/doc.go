// Package section defines the low-level binary structures of a packed array buffer.
//
// A packed array is one contiguous, self-describing buffer. Every fixed-width field
// uses the host's native byte order (see package endian):
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (8 + 4×D bytes)                                  │
//	│  - DimensionCount (u32)                                 │
//	│  - ElementCount (u32): non-NULL elements                │
//	│  - EntryCounts (D × u32): metadata entries per dimension│
//	├─────────────────────────────────────────────────────────┤
//	│ Metadata (E × 12 bytes)                                 │
//	│  - (Offset, Length, ChildCount) u32 triples             │
//	│  - dimension 1 entries first, then dimension 2, ...     │
//	├─────────────────────────────────────────────────────────┤
//	│ Elements (ElementCount × element size)                  │
//	│  - fixed-width scalars, or u32 lengths for strings      │
//	├─────────────────────────────────────────────────────────┤
//	│ Nulls (ceil(slots/8) bytes)                             │
//	│  - one bit per logical slot, MSB first                  │
//	├─────────────────────────────────────────────────────────┤
//	│ Strings (sum of string lengths, string arrays only)     │
//	├─────────────────────────────────────────────────────────┤
//	│ Start indices (D × i32)                                 │
//	└─────────────────────────────────────────────────────────┘
//
// The first five sections are fixed by position; the start indices trail the
// buffer so the leading layout stays stable. Their position is derived from the
// section sizes, which is why Layout needs the total slot count and string byte
// count before it can locate them.
//
// Children of a metadata entry are not linked by pointers. They form a contiguous
// run in the next dimension whose start is the sum of ChildCount over the entry's
// earlier siblings.
package section
