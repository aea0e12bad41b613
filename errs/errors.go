// Package errs defines the sentinel errors shared by every mdarr package.
//
// Call sites wrap these sentinels with additional context using fmt.Errorf and
// the %w verb, so callers should always match with errors.Is:
//
//	buf, err := array.ParseLiteral("{1,,2}", format.TypeInt32)
//	if errors.Is(err, errs.ErrSyntax) {
//	    // malformed literal
//	}
package errs

import "errors"

// Literal parsing errors.
var (
	// ErrSyntax indicates a malformed array literal (unbalanced braces, misplaced commas, trailing text).
	ErrSyntax = errors.New("array literal syntax error")
	// ErrInconsistentDimension indicates elements and sub-arrays mixed at one nesting position,
	// or a NULL placed above the leaf dimension.
	ErrInconsistentDimension = errors.New("inconsistent array dimensions")
	// ErrOutOfBoundsStructure indicates the literal body does not match its bounds header.
	ErrOutOfBoundsStructure = errors.New("array structure exceeds declared bounds")
	// ErrInvalidHeader indicates a malformed bounds header such as "[1:x]=".
	ErrInvalidHeader = errors.New("invalid array bounds header")
)

// Element errors.
var (
	// ErrTypeMismatch indicates a value or array of an unexpected element type.
	ErrTypeMismatch = errors.New("element type mismatch")
	// ErrOutOfRange indicates a value that does not fit the element type.
	ErrOutOfRange = errors.New("value out of range")
	// ErrUnsupportedType indicates an element type that arrays cannot store.
	ErrUnsupportedType = errors.New("unsupported element type")
)

// Structural errors.
var (
	// ErrDimensionNotFound indicates a dimension outside [1, dimensionCount].
	ErrDimensionNotFound = errors.New("dimension not found")
	// ErrDimensionMismatch indicates operands with incompatible dimension counts.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrInvalidRange indicates a slice whose lower bound exceeds its upper bound.
	ErrInvalidRange = errors.New("invalid slice range")
	// ErrNullNotAllowed indicates an operation that rejects NULL elements.
	ErrNullNotAllowed = errors.New("null values are not allowed")
	// ErrEmptyStructureNotAllowed indicates an operation that rejects empty sub-arrays.
	ErrEmptyStructureNotAllowed = errors.New("empty sub-arrays are not allowed")
	// ErrStructureMismatch indicates operands whose metadata trees differ.
	ErrStructureMismatch = errors.New("array structure mismatch")
	// ErrEmptyArray indicates an operation that requires at least one element.
	ErrEmptyArray = errors.New("array has no elements")
	// ErrDivisionByZero indicates an integer division by zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// Buffer and envelope errors.
var (
	// ErrMalformedBuffer indicates a packed buffer whose sections are truncated or inconsistent.
	ErrMalformedBuffer = errors.New("malformed array buffer")
	// ErrInvalidVarLen indicates a length-prefixed value whose prefix disagrees with its size.
	ErrInvalidVarLen = errors.New("invalid length-prefixed value")
	// ErrChecksumMismatch indicates a stored datum whose payload checksum does not verify.
	ErrChecksumMismatch = errors.New("datum checksum mismatch")
	// ErrInvalidCompression indicates an unknown compression type.
	ErrInvalidCompression = errors.New("invalid compression type")
)
