package array

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mdarr/encoding"
	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/format"
)

func TestElementwise(t *testing.T) {
	tests := []struct {
		name   string
		left   string
		right  string
		typ    format.ElementType
		fn     func(Array, Array) (Array, error)
		expect string
	}{
		{"add i32", "{1,2,3}", "{4,5,6}", format.TypeInt32, Add, "{5,7,9}"},
		{"sub i64", "{{10,20},{30,40}}", "{{1,2},{3,4}}", format.TypeInt64, Sub, "{{9,18},{27,36}}"},
		{"mul f32", "{1.5,2}", "{2,0.25}", format.TypeFloat32, Mul, "{3,0.5}"},
		{"div i32 truncates", "{10,-7}", "{3,2}", format.TypeInt32, Div, "{3,-3}"},
		{"div f64 by zero", "{1,-1}", "{0,0}", format.TypeFloat64, Div, "{+Inf,-Inf}"},
		{"keeps left start indices", "[0:1]={1,2}", "{3,4}", format.TypeInt32, Add, "[0:1]={4,6}"},
		{"ragged", "{{1},{2,3}}", "{{1},{1,1}}", format.TypeInt32, Add, "{{2},{3,4}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(mustParse(t, tt.left, tt.typ), mustParse(t, tt.right, tt.typ))
			require.NoError(t, err)
			require.Equal(t, tt.expect, mustPrint(t, got))
		})
	}
}

func TestElementwise_Errors(t *testing.T) {
	tests := []struct {
		name  string
		left  Array
		right Array
		err   error
	}{
		{
			"structure mismatch",
			mustParse(t, "{1,2,3}", format.TypeInt32), mustParse(t, "{1,2}", format.TypeInt32),
			errs.ErrStructureMismatch,
		},
		{
			"nested structure mismatch",
			mustParse(t, "{{1,2},{3}}", format.TypeInt32), mustParse(t, "{{1},{2,3}}", format.TypeInt32),
			errs.ErrStructureMismatch,
		},
		{
			"different types",
			mustParse(t, "{1}", format.TypeInt32), mustParse(t, "{1}", format.TypeInt64),
			errs.ErrTypeMismatch,
		},
		{
			"strings",
			mustParse(t, `{"a"}`, format.TypeString), mustParse(t, `{"b"}`, format.TypeString),
			errs.ErrTypeMismatch,
		},
		{
			"null operand",
			mustParse(t, "{1,null}", format.TypeInt32), mustParse(t, "{1,2}", format.TypeInt32),
			errs.ErrNullNotAllowed,
		},
		{
			"empty sub-array",
			mustParse(t, "{{},{1}}", format.TypeInt32), mustParse(t, "{{},{1}}", format.TypeInt32),
			errs.ErrEmptyStructureNotAllowed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Add(tt.left, tt.right)
			require.ErrorIs(t, err, tt.err)
		})
	}

	_, err := Div(mustParse(t, "{1,2}", format.TypeInt64), mustParse(t, "{1,0}", format.TypeInt64))
	require.ErrorIs(t, err, errs.ErrDivisionByZero)
}

func TestScalarOp(t *testing.T) {
	a := mustParse(t, "{1,2,3}", format.TypeInt32)

	got, err := ScalarOp(a, OpSub, encoding.Int32Scalar(1), false)
	require.NoError(t, err)
	require.Equal(t, "{0,1,2}", mustPrint(t, got))

	got, err = ScalarOp(a, OpSub, encoding.Int32Scalar(1), true)
	require.NoError(t, err)
	require.Equal(t, "{0,-1,-2}", mustPrint(t, got))

	got, err = ScalarOp(mustParse(t, "{{1,2},{3,4}}", format.TypeFloat32), OpMul, encoding.Float32Scalar(0.5), false)
	require.NoError(t, err)
	require.Equal(t, "{{0.5,1},{1.5,2}}", mustPrint(t, got))

	got, err = ScalarOp(mustParse(t, "{2,4}", format.TypeInt64), OpDiv, encoding.Int64Scalar(8), true)
	require.NoError(t, err)
	require.Equal(t, "{4,2}", mustPrint(t, got))

	_, err = ScalarOp(a, OpAdd, encoding.Int64Scalar(1), false)
	require.ErrorIs(t, err, errs.ErrTypeMismatch)

	_, err = ScalarOp(a, OpDiv, encoding.Int32Scalar(0), false)
	require.ErrorIs(t, err, errs.ErrDivisionByZero)

	_, err = ScalarOp(mustParse(t, "{1,null}", format.TypeInt32), OpAdd, encoding.Int32Scalar(1), false)
	require.ErrorIs(t, err, errs.ErrNullNotAllowed)
}

func TestParseOp(t *testing.T) {
	for _, op := range []Op{OpAdd, OpSub, OpMul, OpDiv} {
		parsed, err := ParseOp(op.String())
		require.NoError(t, err)
		require.Equal(t, op, parsed)
	}

	op, err := ParseOp("*")
	require.NoError(t, err)
	require.Equal(t, OpMul, op)

	_, err = ParseOp("pow")
	require.Error(t, err)
}

func TestMatrixMul(t *testing.T) {
	tests := []struct {
		name   string
		a      string
		b      string
		typ    format.ElementType
		expect string
	}{
		{"square f64", "{{1,2},{3,4}}", "{{5,6},{7,8}}", format.TypeFloat64, "{{19,22},{43,50}}"},
		{"row times column f32", "{{1,2,3}}", "{1,2,3}", format.TypeFloat32, "{{14}}"},
		{"column times row", "{1,2}", "{{3,4}}", format.TypeFloat64, "{{3,4},{6,8}}"},
		{"rectangular", "{{1,0,2},{0,1,0}}", "{{1},{2},{3}}", format.TypeFloat64, "{{7},{2}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatrixMul(mustParse(t, tt.a, tt.typ), mustParse(t, tt.b, tt.typ))
			require.NoError(t, err)
			require.Equal(t, tt.expect, mustPrint(t, got))
			require.Equal(t, mustParse(t, tt.expect, tt.typ).Buf, got.Buf)
		})
	}
}

func TestMatrixMul_Errors(t *testing.T) {
	f64 := func(text string) Array { return mustParse(t, text, format.TypeFloat64) }

	tests := []struct {
		name string
		a, b Array
		err  error
	}{
		{"integer operands", mustParse(t, "{{1}}", format.TypeInt32), mustParse(t, "{{1}}", format.TypeInt32), errs.ErrTypeMismatch},
		{"mixed float types", f64("{{1}}"), mustParse(t, "{{1}}", format.TypeFloat32), errs.ErrTypeMismatch},
		{"incompatible shapes", f64("{{1,2}}"), f64("{{1,2}}"), errs.ErrStructureMismatch},
		{"ragged", f64("{{1,2},{3}}"), f64("{{1},{2}}"), errs.ErrStructureMismatch},
		{"three dimensions", f64("{{{1}}}"), f64("{{1}}"), errs.ErrDimensionMismatch},
		{"nulls", f64("{{1,null}}"), f64("{1,2}"), errs.ErrNullNotAllowed},
		{"empty", f64("{}"), f64("{1}"), errs.ErrEmptyStructureNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MatrixMul(tt.a, tt.b)
			require.ErrorIs(t, err, tt.err)
		})
	}
}
