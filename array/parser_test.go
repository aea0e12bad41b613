package array

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/format"
)

func TestParseLiteral_OneDimension(t *testing.T) {
	a := mustParse(t, "{1,2,3}", format.TypeInt32)
	v := mustView(t, a)

	require.Equal(t, 1, v.Dimensions())
	require.Equal(t, 3, v.ElementCount())
	require.Equal(t, 3, v.TotalSlots())
	require.False(t, v.HasNull())
	require.Equal(t, "{1,2,3}", mustPrint(t, a))
}

func TestParseLiteral_Nulls(t *testing.T) {
	a := mustParse(t, "{{1,2},{3,null}}", format.TypeInt32)
	v := mustView(t, a)

	require.Equal(t, 2, v.Dimensions())
	require.Equal(t, 3, v.ElementCount())
	require.Equal(t, 4, v.TotalSlots())
	require.True(t, v.IsNull(3))
	require.False(t, v.IsNull(2))

	a = mustParse(t, "{NULL, Null,nUlL}", format.TypeFloat64)
	require.Equal(t, "{null,null,null}", mustPrint(t, a))
	require.Equal(t, 0, mustView(t, a).ElementCount())
}

func TestParseLiteral_Whitespace(t *testing.T) {
	a := mustParse(t, " \t{ { 1 , 2 } ,\n{ 3 , 4 } } ", format.TypeInt64)
	require.Equal(t, "{{1,2},{3,4}}", mustPrint(t, a))
}

func TestParseLiteral_Strings(t *testing.T) {
	a := mustParse(t, `{"a", "b c", d , "x\"y", e\,f, "null", "\\"}`, format.TypeString)
	v := mustView(t, a)

	require.Equal(t, 7, v.ElementCount())
	want := []string{"a", "b c", "d", `x"y`, "e,f", "null", `\`}
	for i, s := range want {
		require.Equal(t, s, v.Elements().String(i))
	}
	require.Equal(t, `{"a","b c","d","x\"y","e,f","null","\\"}`, mustPrint(t, a))
}

func TestParseLiteral_BoundsHeader(t *testing.T) {
	a := mustParse(t, "[-2:-1][1:3]={{80,2,null},{4,5,6}}", format.TypeInt32)
	v := mustView(t, a)

	require.Equal(t, []int32{-2, 1}, v.StartIndices())
	require.Equal(t, "[-2:-1][1:3]={{80,2,null},{4,5,6}}", mustPrint(t, a))

	a = mustParse(t, " [ 1 : 3 ] = {1,2,3}", format.TypeInt32)
	require.Equal(t, "{1,2,3}", mustPrint(t, a))

	// Bounds cap the item count of every sub-array, so ragged bodies fit.
	a = mustParse(t, "[1:2][2:3]={{},{3,4}}", format.TypeInt32)
	require.Equal(t, []int32{1, 2}, mustView(t, a).StartIndices())
	require.Equal(t, "[1:2][2:3]={{},{3,4}}", mustPrint(t, a))

	a = mustParse(t, "[1:3][1:1]={{1},{2}}", format.TypeInt32)
	require.Equal(t, "{{1},{2}}", mustPrint(t, a))
}

func TestParseLiteral_Empty(t *testing.T) {
	a := mustParse(t, "{}", format.TypeInt32)
	require.Equal(t, Empty(format.TypeInt32).Buf, a.Buf)
	require.Equal(t, "{}", mustPrint(t, a))

	a = mustParse(t, "{{},{1}}", format.TypeInt32)
	v := mustView(t, a)
	require.Equal(t, 2, v.Dimensions())
	require.True(t, v.HasEmpty())
	require.Equal(t, "{{},{1}}", mustPrint(t, a))

	a = mustParse(t, "{{},{}}", format.TypeString)
	require.Equal(t, 2, mustView(t, a).Dimensions())
}

func TestParseLiteral_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		typ  format.ElementType
		err  error
	}{
		{"empty input", "", format.TypeInt32, errs.ErrSyntax},
		{"blank input", "   ", format.TypeInt32, errs.ErrSyntax},
		{"no braces", "1,2", format.TypeInt32, errs.ErrSyntax},
		{"double comma", "{1,,2}", format.TypeInt32, errs.ErrSyntax},
		{"leading comma", "{,1}", format.TypeInt32, errs.ErrSyntax},
		{"trailing comma", "{1,}", format.TypeInt32, errs.ErrSyntax},
		{"adjacent sub-arrays", "{{1}{2}}", format.TypeInt32, errs.ErrSyntax},
		{"adjacent quoted", `{"a" "b"}`, format.TypeString, errs.ErrSyntax},
		{"unbalanced", "{1,2", format.TypeInt32, errs.ErrSyntax},
		{"extra close", "{1}}", format.TypeInt32, errs.ErrSyntax},
		{"trailing text", "{1} x", format.TypeInt32, errs.ErrSyntax},
		{"unterminated quote", `{"abc}`, format.TypeString, errs.ErrSyntax},
		{"element after sub-array", "{{1},2}", format.TypeInt32, errs.ErrInconsistentDimension},
		{"sub-array after element", "{1,{2}}", format.TypeInt32, errs.ErrInconsistentDimension},
		{"deeper than elements", "{{1},{{2}}}", format.TypeInt32, errs.ErrInconsistentDimension},
		{"shallower than sub-arrays", "{{{}},{1}}", format.TypeInt32, errs.ErrInconsistentDimension},
		{"null above leaf", "{{1},null}", format.TypeInt32, errs.ErrInconsistentDimension},
		{"invalid integer", "{abc}", format.TypeInt32, errs.ErrTypeMismatch},
		{"quoted invalid integer", `{"1x"}`, format.TypeInt64, errs.ErrTypeMismatch},
		{"integer overflow", "{99999999999}", format.TypeInt32, errs.ErrOutOfRange},
		{"float overflow", "{1e400}", format.TypeFloat64, errs.ErrOutOfRange},
		{"too many items", "[1:2]={1,2,3}", format.TypeInt32, errs.ErrOutOfBoundsStructure},
		{"deeper than header", "[1:2]={{1,2},{3,4}}", format.TypeInt32, errs.ErrOutOfBoundsStructure},
		{"header with extra dimension", "[1:2][1:2]={1,2}", format.TypeInt32, errs.ErrOutOfBoundsStructure},
		{"reversed bounds", "[2:1]={1}", format.TypeInt32, errs.ErrInvalidHeader},
		{"non-numeric bound", "[1:x]={1}", format.TypeInt32, errs.ErrInvalidHeader},
		{"missing colon", "[12]={1}", format.TypeInt32, errs.ErrInvalidHeader},
		{"missing equals", "[1:2]{1,2}", format.TypeInt32, errs.ErrInvalidHeader},
		{"missing bracket", "[1:2", format.TypeInt32, errs.ErrInvalidHeader},
		{"unsupported type", "{1}", format.TypeInvalid, errs.ErrUnsupportedType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLiteral(tt.text, tt.typ)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseLiteral_MaxDimensions(t *testing.T) {
	_, err := ParseLiteral("{{{1}}}", format.TypeInt32, WithMaxDimensions(2))
	require.ErrorIs(t, err, errs.ErrOutOfBoundsStructure)

	a, err := ParseLiteral("{{{1}}}", format.TypeInt32, WithMaxDimensions(3))
	require.NoError(t, err)
	require.Equal(t, 3, mustView(t, a).Dimensions())

	_, err = ParseLiteral("{1}", format.TypeInt32, WithMaxDimensions(0))
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestParseLiteral_RoundTrip(t *testing.T) {
	tests := []struct {
		text string
		typ  format.ElementType
	}{
		{"{1,2,3}", format.TypeInt32},
		{"{{1,2},{3,null}}", format.TypeInt32},
		{"{{{1,2},{3}},{{4}},{}}", format.TypeInt64},
		{"{1.5,-0.25,1e+21,null}", format.TypeFloat64},
		{"{0.1,3.4028235e+38}", format.TypeFloat32},
		{`{"a","",null,"q\"uote","back\\slash"}`, format.TypeString},
		{"[0:1][-1:1]={{1,2,3},{4,5,6}}", format.TypeInt32},
		{"{{},{}}", format.TypeFloat32},
		{"{}", format.TypeString},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			a := mustParse(t, tt.text, tt.typ)
			b := mustParse(t, mustPrint(t, a), tt.typ)
			require.Equal(t, a.Buf, b.Buf)

			v := mustView(t, a)
			require.Equal(t, v.ElementCount(), v.TotalSlots()-v.CountNulls(v.TotalSlots()))
		})
	}
}
