package encoding

import "math/bits"

// NullBytes returns the size of a NULL bitmap covering n logical slots.
func NullBytes(n int) int {
	return (n + 7) / 8
}

// IsNull reports whether slot is marked NULL. Slots beyond the bitmap are not NULL.
func IsNull(bitmap []byte, slot int) bool {
	idx := slot >> 3
	if slot < 0 || idx >= len(bitmap) {
		return false
	}

	return bitmap[idx]&(0x80>>(slot&7)) != 0
}

// CountNulls returns the number of NULL slots in [0, upTo).
func CountNulls(bitmap []byte, upTo int) int {
	if upTo <= 0 {
		return 0
	}

	full := upTo >> 3
	if full > len(bitmap) {
		full = len(bitmap)
	}

	n := 0
	for _, b := range bitmap[:full] {
		n += bits.OnesCount8(b)
	}

	if rem := upTo & 7; rem != 0 && full < len(bitmap) && full == upTo>>3 {
		mask := byte(0xFF) << (8 - rem)
		n += bits.OnesCount8(bitmap[full] & mask)
	}

	return n
}

// MergeNulls splices the first srcLen bits of src into dst starting at bit
// dstBitOffset, growing dst as needed. Bits of dst at and after dstBitOffset
// are overwritten.
//
// Returns the resulting bitmap, which is NullBytes(dstBitOffset+srcLen) long.
func MergeNulls(dst, src []byte, srcLen, dstBitOffset int) []byte {
	need := NullBytes(dstBitOffset + srcLen)
	if len(dst) < need {
		grown := make([]byte, need)
		copy(grown, dst)
		dst = grown
	} else {
		dst = dst[:need]
	}

	for i := range srcLen {
		pos := dstBitOffset + i
		mask := byte(0x80) >> (pos & 7)
		if IsNull(src, i) {
			dst[pos>>3] |= mask
		} else {
			dst[pos>>3] &^= mask
		}
	}

	return dst
}

// BitWriter appends bits MSB-first into a growing NULL bitmap.
type BitWriter struct {
	buf []byte
	n   int
}

// NewBitWriter creates a writer with room for capacity bits.
func NewBitWriter(capacity int) *BitWriter {
	return &BitWriter{buf: make([]byte, 0, NullBytes(capacity))}
}

// Append appends one bit.
func (w *BitWriter) Append(bit bool) {
	if w.n&7 == 0 {
		w.buf = append(w.buf, 0)
	}
	if bit {
		w.buf[w.n>>3] |= 0x80 >> (w.n & 7)
	}
	w.n++
}

// AppendFrom appends the first n bits of src at the current, possibly unaligned, position.
func (w *BitWriter) AppendFrom(src []byte, n int) {
	if n <= 0 {
		return
	}
	w.buf = MergeNulls(w.buf, src, n, w.n)
	w.n += n
}

// Len returns the number of bits written.
func (w *BitWriter) Len() int {
	return w.n
}

// Bytes returns the bitmap, NullBytes(Len()) long. Unused trailing bits are zero.
func (w *BitWriter) Bytes() []byte {
	return w.buf
}
