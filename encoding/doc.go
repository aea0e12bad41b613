// Package encoding implements the payload sections of a packed array buffer:
// the element section, the string section and the NULL bitmap.
//
// Elements are fixed width. Numeric types store their value directly, string
// arrays store a u32 byte length per element and keep the bytes in a separate
// string section in the same order:
//
//	elements: [len0 u32][len1 u32]...
//	strings:  [bytes0][bytes1]...
//
// The NULL bitmap holds one bit per logical slot, most significant bit first.
// A set bit means the slot is NULL and has no element; the element of a non-NULL
// slot s therefore sits at position s - CountNulls(bitmap, s).
//
// ElementReader and ElementWriter dispatch on format.ElementType. BitWriter is
// the one bit cursor shared by every producer of NULL bitmaps.
package encoding
