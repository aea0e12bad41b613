package encoding

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/format"
)

// AppendInt appends the decimal form of v.
func AppendInt(dst []byte, v int64) []byte {
	return strconv.AppendInt(dst, v, 10)
}

// AppendFloat appends the shortest text that parses back to v at the given bit size.
func AppendFloat(dst []byte, v float64, bitSize int) []byte {
	return strconv.AppendFloat(dst, v, 'g', -1, bitSize)
}

// AppendQuoted appends s wrapped in double quotes with '"' and '\' escaped.
func AppendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			dst = append(dst, '\\')
		}
		dst = append(dst, c)
	}

	return append(dst, '"')
}

// ParseScalar casts literal text into a scalar of type t.
//
// Integers accept an optional sign and decimal digits, floats accept anything
// strconv.ParseFloat does. Strings are taken verbatim.
//
// Returns:
//   - Scalar: The cast value
//   - error: ErrTypeMismatch for invalid text, ErrOutOfRange on overflow,
//     ErrUnsupportedType for an invalid t
func ParseScalar(t format.ElementType, text string) (Scalar, error) {
	switch t {
	case format.TypeInt32:
		v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 32)
		if err != nil {
			return Scalar{}, castError(t, text, err)
		}

		return Int32Scalar(int32(v)), nil
	case format.TypeInt64:
		v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return Scalar{}, castError(t, text, err)
		}

		return Int64Scalar(v), nil
	case format.TypeFloat32:
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 32)
		if err != nil {
			return Scalar{}, castError(t, text, err)
		}

		return Float32Scalar(float32(v)), nil
	case format.TypeFloat64:
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return Scalar{}, castError(t, text, err)
		}

		return Float64Scalar(v), nil
	case format.TypeString:
		return StringScalar(text), nil
	default:
		return Scalar{}, fmt.Errorf("%w: %d", errs.ErrUnsupportedType, t)
	}
}

func castError(t format.ElementType, text string, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("%w: %q does not fit in %s", errs.ErrOutOfRange, text, t)
	}

	return fmt.Errorf("%w: %q is not a valid %s", errs.ErrTypeMismatch, text, t)
}

// ConvertScalar converts a numeric scalar to the numeric type t.
//
// Float to integer conversion truncates toward zero; values outside the target
// range, NaN and infinities return ErrOutOfRange. Int64 to int32 narrowing is
// range checked the same way.
func ConvertScalar(s Scalar, t format.ElementType) (Scalar, error) {
	if !s.typ.IsNumeric() || !t.IsNumeric() {
		return Scalar{}, fmt.Errorf("%w: cannot convert %s to %s", errs.ErrTypeMismatch, s.typ, t)
	}

	if s.typ.IsInteger() {
		switch t {
		case format.TypeInt32:
			if s.i < math.MinInt32 || s.i > math.MaxInt32 {
				return Scalar{}, fmt.Errorf("%w: %d does not fit in i32", errs.ErrOutOfRange, s.i)
			}

			return Int32Scalar(int32(s.i)), nil
		case format.TypeInt64:
			return Int64Scalar(s.i), nil
		case format.TypeFloat32:
			return Float32Scalar(float32(s.i)), nil
		default:
			return Float64Scalar(float64(s.i)), nil
		}
	}

	f := s.f
	switch t {
	case format.TypeInt32:
		if math.IsNaN(f) || f < math.MinInt32 || f > math.MaxInt32 {
			return Scalar{}, fmt.Errorf("%w: %v does not fit in i32", errs.ErrOutOfRange, f)
		}

		return Int32Scalar(int32(f)), nil
	case format.TypeInt64:
		if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return Scalar{}, fmt.Errorf("%w: %v does not fit in i64", errs.ErrOutOfRange, f)
		}

		return Int64Scalar(int64(f)), nil
	case format.TypeFloat32:
		return Float32Scalar(float32(f)), nil
	default:
		return Float64Scalar(f), nil
	}
}
