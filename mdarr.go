// Package mdarr provides a packed, self-describing binary format for
// multi-dimensional, possibly ragged, NULL-bearing arrays of scalars.
//
// An array value is one contiguous byte buffer holding a header, a recursive
// per-dimension metadata tree, the non-NULL elements, a NULL bitmap, string
// bytes and the start index of every dimension. All structural operations work
// directly on that encoding.
//
// # Core Features
//
//   - Literal parsing and printing: {{1,null,3},{4,5,6}}, [0:1]={7,8}
//   - Ragged and empty sub-arrays at any depth
//   - Slicing, subscripting and concatenation
//   - Element-wise and scalar arithmetic, matrix multiplication
//   - Transpose, fill, sigmoid, cast and argmax
//   - Checksummed datum envelopes with optional compression (None, Zstd, S2, LZ4)
//   - JSON and Apache Arrow export
//
// # Basic Usage
//
//	a, _ := mdarr.Parse("{{1,2},{3,4}}", format.TypeInt32)
//	b, _ := mdarr.Parse("{{10,20},{30,40}}", format.TypeInt32)
//	sum, _ := array.Add(a, b)
//	text, _ := mdarr.Print(sum) // {{11,22},{33,44}}
//
// # Package Structure
//
// This package provides convenient top-level wrappers. The array package holds
// the format and its operations, runtime exposes them to a host engine with
// logging and metrics, and convert exports arrays to other formats.
package mdarr

import (
	"github.com/arloliu/mdarr/array"
	"github.com/arloliu/mdarr/format"
	"github.com/arloliu/mdarr/runtime"
)

// Parse parses array literal text into a packed array of type t.
//
// Parameters:
//   - text: Literal such as "{{1,2},{3,null}}" with an optional "[lo:hi]...=" bounds header
//   - t: Element type of the array
//   - opts: Parser options, see array.WithMaxDimensions
//
// Returns:
//   - array.Array: The packed array
//   - error: A wrapped errs sentinel describing the first problem found
func Parse(text string, t format.ElementType, opts ...array.ParseOption) (array.Array, error) {
	return array.ParseLiteral(text, t, opts...)
}

// MustParse is like Parse but panics on error. It is intended for tests and
// package-level literals.
func MustParse(text string, t format.ElementType) array.Array {
	a, err := array.ParseLiteral(text, t)
	if err != nil {
		panic(err)
	}

	return a
}

// Print renders a packed array as literal text.
func Print(a array.Array) (string, error) {
	return array.Print(a)
}

// NewRuntime creates a host-facing runtime, see runtime.New.
//
// Example:
//
//	rt, err := mdarr.NewRuntime(
//	    runtime.WithCompression(format.CompressionZstd),
//	    runtime.WithMetrics(runtime.NewPrometheusCollector(reg, "mdarr")),
//	)
func NewRuntime(opts ...runtime.Option) (*runtime.Runtime, error) {
	return runtime.New(opts...)
}

// Fingerprint returns the 64-bit xxHash of a packed array and its element type.
func Fingerprint(a array.Array) uint64 {
	return a.Fingerprint()
}
