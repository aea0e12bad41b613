package runtime

import (
	"time"

	"github.com/arloliu/mdarr/array"
	"github.com/arloliu/mdarr/encoding"
	"github.com/arloliu/mdarr/format"
	"github.com/arloliu/mdarr/internal/options"
)

// Runtime is the host-facing entry point for array operations.
type Runtime struct {
	logger      *Logger
	metrics     MetricsCollector
	compression format.CompressionType
	parseOpts   []array.ParseOption
}

// New creates a Runtime. By default it does not log, collects no metrics and
// stores datums uncompressed.
func New(opts ...Option) (*Runtime, error) {
	r := &Runtime{
		logger:      NoopLogger(),
		metrics:     NoopMetricsCollector{},
		compression: format.CompressionNone,
	}
	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	return r, nil
}

// Compression returns the codec used by EncodeDatum.
func (r *Runtime) Compression() format.CompressionType {
	return r.compression
}

func (r *Runtime) observe(op string, t format.ElementType, size int, start time.Time, err error) {
	elapsed := time.Since(start)
	r.metrics.RecordOperation(op, size, elapsed, err)
	r.logger.LogOperation(op, t, size, elapsed, err)
}

// run decodes inputs, applies fn and wraps its result as a Value.
func (r *Runtime) run(op string, t format.ElementType, fn func() (array.Array, error)) (Value, error) {
	start := time.Now()

	res, err := fn()
	if err != nil {
		r.observe(op, t, 0, start, err)
		return Value{}, err
	}

	out := ValueOf(res)
	r.observe(op, res.Type, len(out.Data), start, nil)

	return out, nil
}

func unary(v Value, fn func(array.Array) (array.Array, error)) func() (array.Array, error) {
	return func() (array.Array, error) {
		a, err := v.Array()
		if err != nil {
			return array.Array{}, err
		}

		return fn(a)
	}
}

func binary(left, right Value, fn func(array.Array, array.Array) (array.Array, error)) func() (array.Array, error) {
	return func() (array.Array, error) {
		la, err := left.Array()
		if err != nil {
			return array.Array{}, err
		}
		ra, err := right.Array()
		if err != nil {
			return array.Array{}, err
		}

		return fn(la, ra)
	}
}

// FromLiteral parses array literal text into a Value of type t.
func (r *Runtime) FromLiteral(text string, t format.ElementType) (Value, error) {
	return r.run("from_literal", t, func() (array.Array, error) {
		return array.ParseLiteral(text, t, r.parseOpts...)
	})
}

// Empty returns the canonical empty array of type t.
func (r *Runtime) Empty(t format.ElementType) Value {
	start := time.Now()
	out := ValueOf(array.Empty(t))
	r.observe("empty", t, len(out.Data), start, nil)

	return out
}

// Append concatenates right onto left.
func (r *Runtime) Append(left, right Value) (Value, error) {
	return r.run("append", left.Type, binary(left, right, array.Append))
}

// AppendElement appends one scalar to the rightmost leaf of v.
func (r *Runtime) AppendElement(v Value, s encoding.Scalar) (Value, error) {
	return r.run("append_element", v.Type, unary(v, func(a array.Array) (array.Array, error) {
		return array.AppendElement(a, s)
	}))
}

// AppendNull appends a NULL to the rightmost leaf of v.
func (r *Runtime) AppendNull(v Value) (Value, error) {
	return r.run("append_null", v.Type, unary(v, array.AppendNull))
}

// Slice keeps positions [lower, upper] of dimension dim.
func (r *Runtime) Slice(v Value, lower, upper, dim int) (Value, error) {
	return r.run("slice", v.Type, unary(v, func(a array.Array) (array.Array, error) {
		return array.Slice(a, lower, upper, dim)
	}))
}

// Subscript returns the item at 1-based position pos of the first dimension.
func (r *Runtime) Subscript(v Value, pos int) (array.Item, error) {
	start := time.Now()

	var item array.Item
	a, err := v.Array()
	if err == nil {
		item, err = array.Subscript(a, pos)
	}
	r.observe("subscript", v.Type, len(item.Array.Buf), start, err)

	return item, err
}

// Add returns left + right element-wise.
func (r *Runtime) Add(left, right Value) (Value, error) {
	return r.run("add", left.Type, binary(left, right, array.Add))
}

// Sub returns left - right element-wise.
func (r *Runtime) Sub(left, right Value) (Value, error) {
	return r.run("sub", left.Type, binary(left, right, array.Sub))
}

// Mul returns left * right element-wise.
func (r *Runtime) Mul(left, right Value) (Value, error) {
	return r.run("mul", left.Type, binary(left, right, array.Mul))
}

// Div returns left / right element-wise.
func (r *Runtime) Div(left, right Value) (Value, error) {
	return r.run("div", left.Type, binary(left, right, array.Div))
}

func (r *Runtime) scalarOp(v Value, op array.Op, s encoding.Scalar, scalarLeft bool) (Value, error) {
	return r.run("scalar_"+op.String(), v.Type, unary(v, func(a array.Array) (array.Array, error) {
		return array.ScalarOp(a, op, s, scalarLeft)
	}))
}

// ScalarAdd adds s to every element of v.
func (r *Runtime) ScalarAdd(v Value, s encoding.Scalar) (Value, error) {
	return r.scalarOp(v, array.OpAdd, s, false)
}

// ScalarSub subtracts s from every element of v, or every element from s when scalarLeft is set.
func (r *Runtime) ScalarSub(v Value, s encoding.Scalar, scalarLeft bool) (Value, error) {
	return r.scalarOp(v, array.OpSub, s, scalarLeft)
}

// ScalarMul multiplies every element of v by s.
func (r *Runtime) ScalarMul(v Value, s encoding.Scalar) (Value, error) {
	return r.scalarOp(v, array.OpMul, s, false)
}

// ScalarDiv divides every element of v by s, or s by every element when scalarLeft is set.
func (r *Runtime) ScalarDiv(v Value, s encoding.Scalar, scalarLeft bool) (Value, error) {
	return r.scalarOp(v, array.OpDiv, s, scalarLeft)
}

// MatrixMul multiplies two floating point matrices.
func (r *Runtime) MatrixMul(left, right Value) (Value, error) {
	return r.run("matrix_mul", left.Type, binary(left, right, array.MatrixMul))
}

// Fill creates an array of the shape given by structure with every slot set to value.
func (r *Runtime) Fill(value encoding.Scalar, structure Value) (Value, error) {
	return r.run("fill", value.Type(), unary(structure, func(a array.Array) (array.Array, error) {
		return array.Fill(value, a)
	}))
}

// FillNull creates an all-NULL array of type t with the shape given by structure.
func (r *Runtime) FillNull(structure Value, t format.ElementType) (Value, error) {
	return r.run("fill_null", t, unary(structure, func(a array.Array) (array.Array, error) {
		return array.FillNull(a, t)
	}))
}

// Transpose swaps the first two dimensions of a symmetric numeric array.
func (r *Runtime) Transpose(v Value) (Value, error) {
	return r.run("transpose", v.Type, unary(v, array.Transpose))
}

// Sigmoid applies the logistic function to every element.
func (r *Runtime) Sigmoid(v Value) (Value, error) {
	return r.run("sigmoid", v.Type, unary(v, array.Sigmoid))
}

// Cast converts every element of v to type t.
func (r *Runtime) Cast(v Value, t format.ElementType) (Value, error) {
	return r.run("cast", v.Type, unary(v, func(a array.Array) (array.Array, error) {
		return array.Cast(a, t)
	}))
}

// ArgMax returns the 1-based slot of the largest element, or 0 when v has no elements.
func (r *Runtime) ArgMax(v Value) (int, error) {
	start := time.Now()

	pos := 0
	a, err := v.Array()
	if err == nil {
		pos, err = array.ArgMax(a)
	}
	r.observe("argmax", v.Type, 0, start, err)

	return pos, err
}

// DimensionSize returns the largest item count of dimension dim.
func (r *Runtime) DimensionSize(v Value, dim int) (int, error) {
	start := time.Now()

	var size int
	a, err := v.Array()
	if err == nil {
		size, err = array.DimensionSize(a, dim)
	}
	r.observe("dimension_size", v.Type, 0, start, err)

	return size, err
}

// Print renders v as literal text.
func (r *Runtime) Print(v Value) (string, error) {
	start := time.Now()

	var text string
	a, err := v.Array()
	if err == nil {
		text, err = array.Print(a)
	}
	r.observe("print", v.Type, len(text), start, err)

	return text, err
}

// EncodeDatum seals v into a datum envelope using the Runtime's compression.
func (r *Runtime) EncodeDatum(v Value) ([]byte, error) {
	a, err := v.Array()
	if err != nil {
		r.logger.LogDatum("encode", r.compression, 0, 0, err)
		return nil, err
	}

	out, stats, err := MarshalDatum(a, r.compression)
	r.logger.LogDatum("encode", r.compression, int(stats.OriginalSize), len(out), err)
	if err != nil {
		return nil, err
	}
	r.metrics.RecordCompression(r.compression, int(stats.OriginalSize), int(stats.CompressedSize))

	return out, nil
}

// DecodeDatum opens a datum envelope. The codec is read from the envelope.
func (r *Runtime) DecodeDatum(data []byte) (Value, error) {
	a, compression, err := UnmarshalDatum(data)
	r.logger.LogDatum("decode", compression, len(a.Buf), len(data), err)
	if err != nil {
		return Value{}, err
	}

	return ValueOf(a), nil
}
