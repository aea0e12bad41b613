// Package array implements the packed multi-dimensional array value type.
//
// An array is a nested, possibly ragged, NULL-bearing array of scalars stored
// in one contiguous buffer (see package section for the layout). Arrays are
// immutable: every operation parses its inputs into a View, builds a fresh
// buffer with a Builder and returns it without aliasing the inputs.
//
// # Basic Usage
//
//	a, err := array.ParseLiteral("{{1,2},{3,null}}", format.TypeInt32)
//	if err != nil {
//	    return err
//	}
//
//	item, _ := array.Subscript(a, 2)   // {3,null}
//	s, _ := array.Slice(a, 1, 1, 2)    // {{1},{3}} with start index 1
//	text, _ := array.Print(s)
//
// # Dimensions and positions
//
// Dimensions are numbered from 1, outermost first. Positions passed to Slice
// and Subscript are 1-based and independent of the start indices declared by a
// bounds header such as "[0:1][1:2]={{1,2},{3,4}}".
//
// # Empty sub-arrays and NULLs
//
// "{}" is an empty sub-array: a metadata entry covering no slots. "null" is a
// NULL element: a set bit in the NULL bitmap for one leaf slot. NULL is only
// allowed where elements are, so a missing sub-array cannot be represented.
package array
