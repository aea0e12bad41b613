package array

import (
	"fmt"
	"math"

	"github.com/arloliu/mdarr/encoding"
	"github.com/arloliu/mdarr/endian"
	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/format"
)

// Op is an elementwise arithmetic operator.
type Op uint8

const (
	OpAdd Op = iota + 1
	OpSub
	OpMul
	OpDiv
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	default:
		return "unknown"
	}
}

// ParseOp parses an operator name ("add", "sub", "mul", "div" or "+", "-", "*", "/").
func ParseOp(name string) (Op, error) {
	switch name {
	case "add", "+":
		return OpAdd, nil
	case "sub", "-":
		return OpSub, nil
	case "mul", "*":
		return OpMul, nil
	case "div", "/":
		return OpDiv, nil
	default:
		return 0, fmt.Errorf("%w: unknown operator %q", errs.ErrUnsupportedType, name)
	}
}

func Add(left, right Array) (Array, error) { return Elementwise(left, right, OpAdd) }
func Sub(left, right Array) (Array, error) { return Elementwise(left, right, OpSub) }
func Mul(left, right Array) (Array, error) { return Elementwise(left, right, OpMul) }
func Div(left, right Array) (Array, error) { return Elementwise(left, right, OpDiv) }

// checkArithmetic verifies the preconditions shared by every arithmetic operand.
func checkArithmetic(v *View) error {
	if !v.typ.IsNumeric() {
		return fmt.Errorf("%w: %s is not numeric", errs.ErrTypeMismatch, v.typ)
	}
	if v.HasNull() {
		return errs.ErrNullNotAllowed
	}
	if v.HasEmpty() {
		return errs.ErrEmptyStructureNotAllowed
	}

	return nil
}

// Elementwise applies op to corresponding elements of left and right.
//
// Both arrays must be numeric, of the same type, free of NULLs and empty
// sub-arrays, and have identical dimension trees. The result carries left's
// metadata and start indices.
//
// Returns:
//   - Array: A fresh packed array
//   - error: ErrTypeMismatch, ErrNullNotAllowed, ErrEmptyStructureNotAllowed,
//     ErrStructureMismatch, or ErrDivisionByZero for integer division by zero
func Elementwise(left, right Array, op Op) (Array, error) {
	if !left.Type.IsNumeric() || !right.Type.IsNumeric() {
		return Array{}, fmt.Errorf("%w: %s %s %s requires numeric arrays", errs.ErrTypeMismatch, left.Type, op, right.Type)
	}
	if left.Type != right.Type {
		return Array{}, fmt.Errorf("%w: %s %s %s", errs.ErrTypeMismatch, left.Type, op, right.Type)
	}

	lv, err := NewView(left)
	if err != nil {
		return Array{}, err
	}
	rv, err := NewView(right)
	if err != nil {
		return Array{}, err
	}

	for _, v := range []*View{lv, rv} {
		if err := checkArithmetic(v); err != nil {
			return Array{}, err
		}
	}
	if !lv.EqualMetadata(rv) {
		return Array{}, fmt.Errorf("%w: operands have different dimension trees", errs.ErrStructureMismatch)
	}

	return compute(lv, op, operand{r: lv.elems}, operand{r: rv.elems})
}

// ScalarOp applies op between every element of a and s. With isLeft set the
// scalar is the left operand (s op x), otherwise the right one (x op s).
func ScalarOp(a Array, op Op, s encoding.Scalar, isLeft bool) (Array, error) {
	if !a.Type.IsNumeric() {
		return Array{}, fmt.Errorf("%w: %s is not numeric", errs.ErrTypeMismatch, a.Type)
	}
	if s.Type() != a.Type {
		return Array{}, fmt.Errorf("%w: %s scalar with %s array", errs.ErrTypeMismatch, s.Type(), a.Type)
	}

	v, err := NewView(a)
	if err != nil {
		return Array{}, err
	}
	if err := checkArithmetic(v); err != nil {
		return Array{}, err
	}

	if isLeft {
		return compute(v, op, operand{s: s}, operand{r: v.elems})
	}

	return compute(v, op, operand{r: v.elems}, operand{s: s})
}

// operand reads element i from an array, or broadcasts a scalar when r is nil.
type operand struct {
	r *encoding.ElementReader
	s encoding.Scalar
}

func (o operand) int32(i int) int32 {
	if o.r == nil {
		return int32(o.s.Int()) //nolint:gosec
	}

	return o.r.Int32(i)
}

func (o operand) int64(i int) int64 {
	if o.r == nil {
		return o.s.Int()
	}

	return o.r.Int64(i)
}

func (o operand) float32(i int) float32 {
	if o.r == nil {
		return float32(o.s.Float())
	}

	return o.r.Float32(i)
}

func (o operand) float64(i int) float64 {
	if o.r == nil {
		return o.s.Float()
	}

	return o.r.Float64(i)
}

type number interface {
	~int32 | ~int64 | ~float32 | ~float64
}

func applyOp[T number](op Op, x, y T, integer bool) (T, error) {
	switch op {
	case OpAdd:
		return x + y, nil
	case OpSub:
		return x - y, nil
	case OpMul:
		return x * y, nil
	case OpDiv:
		if integer && y == 0 {
			return 0, errs.ErrDivisionByZero
		}

		return x / y, nil
	default:
		return 0, fmt.Errorf("%w: operator %d", errs.ErrUnsupportedType, op)
	}
}

func computeTyped[T number](n int, op Op, integer bool, x, y func(int) T, put func(int, T)) error {
	for i := range n {
		r, err := applyOp(op, x(i), y(i), integer)
		if err != nil {
			return err
		}
		put(i, r)
	}

	return nil
}

// compute copies v's buffer and overwrites its element section with x op y.
func compute(v *View, op Op, x, y operand) (Array, error) {
	out := Array{Type: v.typ, Buf: make([]byte, len(v.buf))}
	copy(out.Buf, v.buf)
	n := v.elems.Len()

	engine := endian.GetNativeEngine()
	dst := out.Buf[v.layout.ElementsOffset:v.layout.NullsOffset]

	var err error
	switch v.typ {
	case format.TypeInt32:
		err = computeTyped(n, op, true, x.int32, y.int32, func(i int, r int32) {
			engine.PutUint32(dst[i*4:], uint32(r)) //nolint:gosec
		})
	case format.TypeInt64:
		err = computeTyped(n, op, true, x.int64, y.int64, func(i int, r int64) {
			engine.PutUint64(dst[i*8:], uint64(r)) //nolint:gosec
		})
	case format.TypeFloat32:
		err = computeTyped(n, op, false, x.float32, y.float32, func(i int, r float32) {
			engine.PutUint32(dst[i*4:], math.Float32bits(r))
		})
	default:
		err = computeTyped(n, op, false, x.float64, y.float64, func(i int, r float64) {
			engine.PutUint64(dst[i*8:], math.Float64bits(r))
		})
	}
	if err != nil {
		return Array{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
