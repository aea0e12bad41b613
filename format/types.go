// Package format defines the enumerations stored in or alongside packed arrays.
package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/mdarr/errs"
)

type (
	ElementType     uint8
	CompressionType uint8
)

const (
	TypeInvalid ElementType = 0x0 // TypeInvalid is the zero value and never stored.
	TypeInt32   ElementType = 0x1 // TypeInt32 represents 32-bit signed integers.
	TypeInt64   ElementType = 0x2 // TypeInt64 represents 64-bit signed integers.
	TypeFloat32 ElementType = 0x3 // TypeFloat32 represents IEEE-754 single precision floats.
	TypeFloat64 ElementType = 0x4 // TypeFloat64 represents IEEE-754 double precision floats.
	TypeString  ElementType = 0x5 // TypeString represents variable-length byte strings.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (t ElementType) String() string {
	switch t {
	case TypeInt32:
		return "i32"
	case TypeInt64:
		return "i64"
	case TypeFloat32:
		return "f32"
	case TypeFloat64:
		return "f64"
	case TypeString:
		return "string"
	default:
		return "Unknown"
	}
}

// IsValid reports whether arrays can store elements of type t.
func (t ElementType) IsValid() bool {
	return t >= TypeInt32 && t <= TypeString
}

// IsNumeric reports whether t is an integer or floating point type.
func (t ElementType) IsNumeric() bool {
	return t >= TypeInt32 && t <= TypeFloat64
}

// IsInteger reports whether t is a signed integer type.
func (t ElementType) IsInteger() bool {
	return t == TypeInt32 || t == TypeInt64
}

// IsFloatingPoint reports whether t is a floating point type.
func (t ElementType) IsFloatingPoint() bool {
	return t == TypeFloat32 || t == TypeFloat64
}

// ParseElementType maps an element type identifier ("i32", "i64", "f32", "f64", "string")
// to its ElementType. Matching is case-insensitive.
func ParseElementType(name string) (ElementType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "i32":
		return TypeInt32, nil
	case "i64":
		return TypeInt64, nil
	case "f32":
		return TypeFloat32, nil
	case "f64":
		return TypeFloat64, nil
	case "string":
		return TypeString, nil
	default:
		return TypeInvalid, fmt.Errorf("%w: %q", errs.ErrUnsupportedType, name)
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a compression name ("none", "zstd", "s2", "lz4") to its CompressionType.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCompression, name)
	}
}
