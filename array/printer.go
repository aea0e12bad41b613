package array

import (
	"strconv"

	"github.com/arloliu/mdarr/internal/pool"
)

// Print renders a as literal text that ParseLiteral accepts.
//
// A bounds header is emitted when any dimension's start index differs from 1.
func Print(a Array) (string, error) {
	v, err := NewView(a)
	if err != nil {
		return "", err
	}

	return v.Print(), nil
}

// Print renders the array as literal text.
func (v *View) Print() string {
	buf := pool.GetTextBuffer()
	defer pool.PutTextBuffer(buf)

	buf.B = v.AppendText(buf.B)

	return buf.String()
}

// AppendText appends the literal text of the array to dst.
func (v *View) AppendText(dst []byte) []byte {
	if v.hasCustomStarts() {
		for d, lower := range v.starts {
			size, _ := v.DimensionSize(d + 1)
			dst = append(dst, '[')
			dst = strconv.AppendInt(dst, int64(lower), 10)
			dst = append(dst, ':')
			dst = strconv.AppendInt(dst, int64(lower)+int64(size)-1, 10)
			dst = append(dst, ']')
		}
		dst = append(dst, '=')
	}

	elem := 0
	return v.appendEntry(dst, 1, 0, &elem)
}

func (v *View) hasCustomStarts() bool {
	for _, s := range v.starts {
		if s != 1 {
			return true
		}
	}

	return false
}

// appendEntry prints entry idx of dimension dim. elem tracks the next element
// index; slots are visited in logical order so it only moves forward.
func (v *View) appendEntry(dst []byte, dim, idx int, elem *int) []byte {
	e := v.entry(dim, idx)
	dst = append(dst, '{')

	if first, ok := v.ChildEntry(dim, idx); ok {
		for c := range int(e.ChildCount) {
			if c > 0 {
				dst = append(dst, ',')
			}
			dst = v.appendEntry(dst, dim+1, first+c, elem)
		}

		return append(dst, '}')
	}

	for s := int(e.Offset); s < int(e.End()); s++ {
		if s > int(e.Offset) {
			dst = append(dst, ',')
		}
		if v.IsNull(s) {
			dst = append(dst, "null"...)
			continue
		}
		dst = v.elems.AppendText(dst, *elem)
		*elem++
	}

	return append(dst, '}')
}
