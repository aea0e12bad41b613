package convert

import (
	"fmt"

	gojson "github.com/goccy/go-json"

	"github.com/arloliu/mdarr/array"
	"github.com/arloliu/mdarr/format"
)

// Tree returns a as nested []any values.
//
// Elements become int32, int64, float32, float64 or string; NULL slots become nil.
func Tree(a array.Array) (any, error) {
	v, err := array.NewView(a)
	if err != nil {
		return nil, err
	}

	return tree(v, 1, 0), nil
}

func tree(v *array.View, dim, idx int) []any {
	entries, _ := v.Entries(dim)
	e := entries[idx]

	if first, ok := v.ChildEntry(dim, idx); ok {
		out := make([]any, e.ChildCount)
		for c := range out {
			out[c] = tree(v, dim+1, first+c)
		}

		return out
	}

	out := make([]any, 0, e.Length)
	for s := int(e.Offset); s < int(e.End()); s++ {
		out = append(out, slotValue(v, s))
	}

	return out
}

func slotValue(v *array.View, slot int) any {
	if v.IsNull(slot) {
		return nil
	}

	r := v.Elements()
	i := v.ElementPosition(slot)
	switch r.Type() {
	case format.TypeInt32:
		return r.Int32(i)
	case format.TypeInt64:
		return r.Int64(i)
	case format.TypeFloat32:
		return r.Float32(i)
	case format.TypeFloat64:
		return r.Float64(i)
	default:
		return r.String(i)
	}
}

// ToJSON renders a as nested JSON arrays with null for NULL slots.
//
// Non-finite floats have no JSON representation and are reported as errors.
func ToJSON(a array.Array) ([]byte, error) {
	t, err := Tree(a)
	if err != nil {
		return nil, err
	}

	out, err := gojson.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal %s array: %w", a.Type, err)
	}

	return out, nil
}
