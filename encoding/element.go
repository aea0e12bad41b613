package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/mdarr/endian"
	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/format"
	"github.com/arloliu/mdarr/internal/pool"
)

// SizeOf returns the size in bytes of one element of type t in the element section.
// String elements are u32 lengths.
func SizeOf(t format.ElementType) (int, error) {
	switch t {
	case format.TypeInt32, format.TypeFloat32, format.TypeString:
		return 4, nil
	case format.TypeInt64, format.TypeFloat64:
		return 8, nil
	default:
		return 0, fmt.Errorf("%w: %d", errs.ErrUnsupportedType, t)
	}
}

// ElementReader provides typed random access to an element section.
type ElementReader struct {
	typ     format.ElementType
	engine  endian.EndianEngine
	size    int
	count   int
	data    []byte
	strings []byte
	// starts[i] is the byte offset of string i in the string section; len(starts) == count+1.
	starts []uint32
}

// NewElementReader creates a reader over count elements of type t.
//
// Parameters:
//   - t: Element type
//   - engine: Byte order of the buffer
//   - data: Element section, at least count × SizeOf(t) bytes
//   - count: Number of elements
//   - strs: String section (ignored for numeric types)
//
// Returns:
//   - *ElementReader: Reader ready for use
//   - error: ErrUnsupportedType, or ErrMalformedBuffer if the sections are truncated
//     or the string lengths do not add up to len(strs)
func NewElementReader(t format.ElementType, engine endian.EndianEngine, data []byte, count int, strs []byte) (*ElementReader, error) {
	size, err := SizeOf(t)
	if err != nil {
		return nil, err
	}

	if len(data) < count*size {
		return nil, fmt.Errorf("%w: element section needs %d bytes, have %d", errs.ErrMalformedBuffer, count*size, len(data))
	}

	r := &ElementReader{
		typ:    t,
		engine: engine,
		size:   size,
		count:  count,
		data:   data[:count*size],
	}

	if t != format.TypeString {
		return r, nil
	}

	r.starts = make([]uint32, count+1)
	total := uint64(0)
	for i := range count {
		r.starts[i] = uint32(total) //nolint:gosec
		total += uint64(engine.Uint32(r.data[i*4 : i*4+4]))
		if total > uint64(len(strs)) {
			return nil, fmt.Errorf("%w: string lengths exceed string section of %d bytes", errs.ErrMalformedBuffer, len(strs))
		}
	}
	r.starts[count] = uint32(total) //nolint:gosec
	r.strings = strs[:total]

	return r, nil
}

func (r *ElementReader) Type() format.ElementType {
	return r.typ
}

// Len returns the number of elements.
func (r *ElementReader) Len() int {
	return r.count
}

// StringBytes returns the total size of the string section.
func (r *ElementReader) StringBytes() int {
	return len(r.strings)
}

func (r *ElementReader) Int32(i int) int32 {
	return int32(r.engine.Uint32(r.data[i*4:])) //nolint:gosec
}

func (r *ElementReader) Int64(i int) int64 {
	return int64(r.engine.Uint64(r.data[i*8:])) //nolint:gosec
}

func (r *ElementReader) Float32(i int) float32 {
	return math.Float32frombits(r.engine.Uint32(r.data[i*4:]))
}

func (r *ElementReader) Float64(i int) float64 {
	return math.Float64frombits(r.engine.Uint64(r.data[i*8:]))
}

// Raw returns the fixed-width bytes of element i. For strings this is the length field.
func (r *ElementReader) Raw(i int) []byte {
	return r.data[i*r.size : (i+1)*r.size]
}

// Bytes returns the payload of string element i without copying.
func (r *ElementReader) Bytes(i int) []byte {
	return r.strings[r.starts[i]:r.starts[i+1]]
}

// String returns the payload of string element i.
func (r *ElementReader) String(i int) string {
	return string(r.Bytes(i))
}

// Scalar returns element i as a Scalar.
func (r *ElementReader) Scalar(i int) Scalar {
	switch r.typ {
	case format.TypeInt32:
		return Int32Scalar(r.Int32(i))
	case format.TypeInt64:
		return Int64Scalar(r.Int64(i))
	case format.TypeFloat32:
		return Float32Scalar(r.Float32(i))
	case format.TypeFloat64:
		return Float64Scalar(r.Float64(i))
	default:
		return StringScalar(r.String(i))
	}
}

// Float64At returns numeric element i converted to float64.
// The result for string arrays is 0.
func (r *ElementReader) Float64At(i int) float64 {
	switch r.typ {
	case format.TypeInt32:
		return float64(r.Int32(i))
	case format.TypeInt64:
		return float64(r.Int64(i))
	case format.TypeFloat32:
		return float64(r.Float32(i))
	case format.TypeFloat64:
		return r.Float64(i)
	default:
		return 0
	}
}

// AppendText appends the literal text of element i to dst. Strings are quoted.
func (r *ElementReader) AppendText(dst []byte, i int) []byte {
	switch r.typ {
	case format.TypeInt32:
		return AppendInt(dst, int64(r.Int32(i)))
	case format.TypeInt64:
		return AppendInt(dst, r.Int64(i))
	case format.TypeFloat32:
		return AppendFloat(dst, float64(r.Float32(i)), 32)
	case format.TypeFloat64:
		return AppendFloat(dst, r.Float64(i), 64)
	default:
		return AppendQuoted(dst, r.String(i))
	}
}

// ElementWriter appends typed elements into staging buffers.
//
// The element and string sections are staged in pooled scratch buffers; call
// Release once their contents have been copied into the final array buffer.
type ElementWriter struct {
	typ     format.ElementType
	engine  endian.EndianEngine
	size    int
	count   int
	elems   *pool.ByteBuffer
	strings *pool.ByteBuffer
}

// NewElementWriter creates a writer for elements of type t.
func NewElementWriter(t format.ElementType, engine endian.EndianEngine) (*ElementWriter, error) {
	size, err := SizeOf(t)
	if err != nil {
		return nil, err
	}

	w := &ElementWriter{
		typ:    t,
		engine: engine,
		size:   size,
		elems:  pool.GetScratchBuffer(),
	}
	if t == format.TypeString {
		w.strings = pool.GetScratchBuffer()
	}

	return w, nil
}

func (w *ElementWriter) Type() format.ElementType {
	return w.typ
}

// Len returns the number of elements written.
func (w *ElementWriter) Len() int {
	return w.count
}

// Elements returns the staged element section. It is valid until Release.
func (w *ElementWriter) Elements() []byte {
	return w.elems.Bytes()
}

// Strings returns the staged string section, nil for numeric types.
func (w *ElementWriter) Strings() []byte {
	if w.strings == nil {
		return nil
	}

	return w.strings.Bytes()
}

// Release returns the staging buffers to the pool. The writer must not be used afterwards.
func (w *ElementWriter) Release() {
	pool.PutScratchBuffer(w.elems)
	pool.PutScratchBuffer(w.strings)
	w.elems, w.strings = nil, nil
}

func (w *ElementWriter) AppendInt32(v int32) {
	w.elems.B = w.engine.AppendUint32(w.elems.B, uint32(v)) //nolint:gosec
	w.count++
}

func (w *ElementWriter) AppendInt64(v int64) {
	w.elems.B = w.engine.AppendUint64(w.elems.B, uint64(v)) //nolint:gosec
	w.count++
}

func (w *ElementWriter) AppendFloat32(v float32) {
	w.elems.B = w.engine.AppendUint32(w.elems.B, math.Float32bits(v))
	w.count++
}

func (w *ElementWriter) AppendFloat64(v float64) {
	w.elems.B = w.engine.AppendUint64(w.elems.B, math.Float64bits(v))
	w.count++
}

// AppendString appends a string element. Panics on a numeric writer.
func (w *ElementWriter) AppendString(s string) {
	w.elems.B = w.engine.AppendUint32(w.elems.B, uint32(len(s))) //nolint:gosec
	w.strings.B = append(w.strings.B, s...)
	w.count++
}

// AppendRaw appends one fixed-width numeric element already encoded in the writer's byte order.
func (w *ElementWriter) AppendRaw(raw []byte) {
	w.elems.B = append(w.elems.B, raw[:w.size]...)
	w.count++
}

// AppendFrom copies element i of r, string payload included.
// r must have the writer's type and byte order.
func (w *ElementWriter) AppendFrom(r *ElementReader, i int) {
	if w.typ == format.TypeString {
		w.elems.B = append(w.elems.B, r.Raw(i)...)
		w.strings.B = append(w.strings.B, r.Bytes(i)...)
		w.count++

		return
	}
	w.AppendRaw(r.Raw(i))
}

// AppendScalar appends s, which must have the writer's type.
func (w *ElementWriter) AppendScalar(s Scalar) error {
	if s.typ != w.typ {
		return fmt.Errorf("%w: cannot store %s in %s array", errs.ErrTypeMismatch, s.typ, w.typ)
	}

	switch s.typ {
	case format.TypeInt32:
		w.AppendInt32(int32(s.i)) //nolint:gosec
	case format.TypeInt64:
		w.AppendInt64(s.i)
	case format.TypeFloat32:
		w.AppendFloat32(float32(s.f))
	case format.TypeFloat64:
		w.AppendFloat64(s.f)
	default:
		w.AppendString(s.s)
	}

	return nil
}

// AppendFloat64As appends a float64 result converted to the writer's numeric type.
// Integer types truncate toward zero.
func (w *ElementWriter) AppendFloat64As(v float64) {
	switch w.typ {
	case format.TypeInt32:
		w.AppendInt32(int32(v))
	case format.TypeInt64:
		w.AppendInt64(int64(v))
	case format.TypeFloat32:
		w.AppendFloat32(float32(v))
	default:
		w.AppendFloat64(v)
	}
}

// AppendText casts literal text to the writer's type and appends it.
// See ParseScalar for the casting rules.
func (w *ElementWriter) AppendText(text string) error {
	s, err := ParseScalar(w.typ, text)
	if err != nil {
		return err
	}

	return w.AppendScalar(s)
}
