package encoding

import (
	"fmt"

	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/format"
)

// Scalar is a single typed element value.
//
// The zero value has TypeInvalid and is not a valid element.
type Scalar struct {
	typ format.ElementType
	i   int64
	f   float64
	s   string
}

func Int32Scalar(v int32) Scalar     { return Scalar{typ: format.TypeInt32, i: int64(v)} }
func Int64Scalar(v int64) Scalar     { return Scalar{typ: format.TypeInt64, i: v} }
func Float32Scalar(v float32) Scalar { return Scalar{typ: format.TypeFloat32, f: float64(v)} }
func Float64Scalar(v float64) Scalar { return Scalar{typ: format.TypeFloat64, f: v} }
func StringScalar(v string) Scalar   { return Scalar{typ: format.TypeString, s: v} }

// Type returns the element type of the scalar.
func (s Scalar) Type() format.ElementType {
	return s.typ
}

// Int returns the value of an integer scalar.
func (s Scalar) Int() int64 {
	return s.i
}

// Float returns the value of a floating-point scalar.
func (s Scalar) Float() float64 {
	return s.f
}

// Str returns the payload of a string scalar.
func (s Scalar) Str() string {
	return s.s
}

// AsFloat64 converts a numeric scalar to float64.
func (s Scalar) AsFloat64() (float64, error) {
	switch {
	case s.typ.IsInteger():
		return float64(s.i), nil
	case s.typ.IsFloatingPoint():
		return s.f, nil
	default:
		return 0, fmt.Errorf("%w: %s is not numeric", errs.ErrTypeMismatch, s.typ)
	}
}

// AppendText appends the literal text of the scalar to dst. Strings are quoted.
func (s Scalar) AppendText(dst []byte) []byte {
	switch s.typ {
	case format.TypeInt32, format.TypeInt64:
		return AppendInt(dst, s.i)
	case format.TypeFloat32:
		return AppendFloat(dst, s.f, 32)
	case format.TypeFloat64:
		return AppendFloat(dst, s.f, 64)
	case format.TypeString:
		return AppendQuoted(dst, s.s)
	default:
		return dst
	}
}

// String returns the literal text of the scalar.
func (s Scalar) String() string {
	return string(s.AppendText(nil))
}
