package array

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mdarr/endian"
	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/format"
	"github.com/arloliu/mdarr/section"
)

func TestView_Navigation(t *testing.T) {
	v := mustView(t, mustParse(t, "{{1,2},{3,null}}", format.TypeInt32))

	n, err := v.EntryCount(1)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	n, err = v.EntryCount(2)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	root, err := v.FirstEntry(1)
	require.NoError(t, err)
	require.Equal(t, section.Entry{Offset: 0, Length: 4, ChildCount: 2}, root)

	first, err := v.FirstEntry(2)
	require.NoError(t, err)
	require.Equal(t, section.Entry{Offset: 0, Length: 2}, first)

	child, ok := v.ChildEntry(1, 0)
	require.True(t, ok)
	require.Equal(t, 0, child)
	_, ok = v.ChildEntry(2, 0)
	require.False(t, ok)

	require.Equal(t, 0, v.SiblingIndex(1, 0))
	require.Equal(t, 1, v.SiblingIndex(2, 1))

	require.Equal(t, 2, v.ElementPosition(2))
	require.Equal(t, 0, v.CountNulls(3))
	require.Equal(t, 1, v.CountNulls(4))

	_, err = v.EntryCount(3)
	require.ErrorIs(t, err, errs.ErrDimensionNotFound)
	_, err = v.FirstEntry(0)
	require.ErrorIs(t, err, errs.ErrDimensionNotFound)
}

func TestView_ChildStartsSkipSiblings(t *testing.T) {
	v := mustView(t, mustParse(t, "{{{1},{2}},{},{{3},{4},{5}}}", format.TypeInt32))

	first, ok := v.ChildEntry(2, 2)
	require.True(t, ok)
	require.Equal(t, 2, first)
	require.Equal(t, 2, v.SiblingIndex(3, 4))

	entries, err := v.Entries(3)
	require.NoError(t, err)
	require.Equal(t, section.Entry{Offset: 4, Length: 1}, entries[4])
}

func TestView_Properties(t *testing.T) {
	tests := []struct {
		text      string
		symmetric bool
		hasNull   bool
		hasEmpty  bool
		sizes     []int
	}{
		{"{1,2,3}", true, false, false, []int{3}},
		{"{{1,2},{3,null}}", true, true, false, []int{2, 2}},
		{"{{1},{2,3,4}}", false, false, false, []int{2, 3}},
		{"{{},{1}}", false, false, true, []int{2, 1}},
		{"{}", true, false, true, []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			v := mustView(t, mustParse(t, tt.text, format.TypeInt32))
			require.Equal(t, tt.symmetric, v.IsSymmetric())
			require.Equal(t, tt.hasNull, v.HasNull())
			require.Equal(t, tt.hasEmpty, v.HasEmpty())
			for d, want := range tt.sizes {
				got, err := v.DimensionSize(d + 1)
				require.NoError(t, err)
				require.Equal(t, want, got, "dimension %d", d+1)
			}
		})
	}
}

func TestView_EqualMetadata(t *testing.T) {
	a := mustView(t, mustParse(t, "{{1,2},{3}}", format.TypeInt32))
	b := mustView(t, mustParse(t, "{{7,8},{9}}", format.TypeInt32))
	c := mustView(t, mustParse(t, "{{1},{2,3}}", format.TypeInt32))
	d := mustView(t, mustParse(t, "{1,2,3}", format.TypeInt32))

	require.True(t, a.EqualMetadata(b))
	require.False(t, a.EqualMetadata(c))
	require.False(t, a.EqualMetadata(d))
}

func TestView_MissingStartIndices(t *testing.T) {
	a := mustParse(t, "{1,2,3}", format.TypeInt32)
	trimmed := Array{Type: a.Type, Buf: a.Buf[:len(a.Buf)-section.FieldSize]}

	v := mustView(t, trimmed)
	require.Equal(t, []int32{1}, v.StartIndices())
	require.Equal(t, "{1,2,3}", v.Print())
}

func TestView_Malformed(t *testing.T) {
	engine := endian.GetNativeEngine()
	a := mustParse(t, "{{1,2},{3,null}}", format.TypeInt32)

	t.Run("truncated", func(t *testing.T) {
		for _, n := range []int{0, 5, 12, 30, len(a.Buf) - 1} {
			_, err := NewView(Array{Type: a.Type, Buf: a.Buf[:n]})
			require.ErrorIs(t, err, errs.ErrMalformedBuffer, "length %d", n)
		}
	})

	t.Run("trailing garbage", func(t *testing.T) {
		buf := append(a.Clone().Buf, 0)
		_, err := NewView(Array{Type: a.Type, Buf: buf})
		require.ErrorIs(t, err, errs.ErrMalformedBuffer)
	})

	t.Run("two roots", func(t *testing.T) {
		buf := a.Clone().Buf
		engine.PutUint32(buf[8:], 2)
		_, err := NewView(Array{Type: a.Type, Buf: buf})
		require.ErrorIs(t, err, errs.ErrMalformedBuffer)
	})

	t.Run("child offsets do not tile", func(t *testing.T) {
		buf := a.Clone().Buf
		// second dimension, first entry, offset field
		engine.PutUint32(buf[16+section.EntrySize:], 1)
		_, err := NewView(Array{Type: a.Type, Buf: buf})
		require.ErrorIs(t, err, errs.ErrMalformedBuffer)
	})

	t.Run("element count disagrees with nulls", func(t *testing.T) {
		buf := a.Clone().Buf
		layout := mustView(t, a).Layout()
		buf[layout.NullsOffset] = 0
		_, err := NewView(Array{Type: a.Type, Buf: buf})
		require.ErrorIs(t, err, errs.ErrMalformedBuffer)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := NewView(Array{Type: format.TypeInvalid, Buf: a.Buf})
		require.ErrorIs(t, err, errs.ErrUnsupportedType)
	})
}
