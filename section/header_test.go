package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mdarr/endian"
	"github.com/arloliu/mdarr/errs"
)

func TestHeader_RoundTrip(t *testing.T) {
	engines := map[string]endian.EndianEngine{
		"native": endian.GetNativeEngine(),
		"little": endian.GetLittleEndianEngine(),
		"big":    endian.GetBigEndianEngine(),
	}

	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			h := Header{DimensionCount: 2, ElementCount: 5, EntryCounts: []uint32{1, 2}}
			data := h.Bytes(engine)
			require.Len(t, data, h.Size())
			require.Equal(t, 16, h.Size())

			parsed, err := ParseHeader(data, engine)
			require.NoError(t, err)
			require.Equal(t, h, parsed)
			require.Equal(t, 3, parsed.TotalEntries())
			require.Equal(t, 3*EntrySize, parsed.MetadataSize())
		})
	}
}

func TestHeader_ParseErrors(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short fixed header", []byte{1, 0, 0, 0}},
		{"zero dimensions", []byte{0, 0, 0, 0, 0, 0, 0, 0}},
		{"missing entry counts", []byte{2, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.data, engine)
			require.ErrorIs(t, err, errs.ErrMalformedBuffer)
		})
	}
}

func TestEntry(t *testing.T) {
	engine := endian.GetNativeEngine()
	e := Entry{Offset: 3, Length: 4, ChildCount: 2}

	data := e.Append(nil, engine)
	require.Len(t, data, EntrySize)

	var got Entry
	got.Parse(data, engine)
	require.Equal(t, e, got)
	require.Equal(t, uint32(7), got.End())
	require.False(t, got.IsEmpty())
	require.True(t, Entry{Offset: 9}.IsEmpty())
}

func TestNewLayout(t *testing.T) {
	// {{"ab",null},{"c"}}: 3 slots, 2 strings of 3 bytes total
	h := Header{DimensionCount: 2, ElementCount: 2, EntryCounts: []uint32{1, 2}}
	l := NewLayout(&h, 4, 3, 3)

	require.Equal(t, 16, l.MetadataOffset)
	require.Equal(t, 16+36, l.ElementsOffset)
	require.Equal(t, 52+8, l.NullsOffset)
	require.Equal(t, 61, l.StringsOffset)
	require.Equal(t, 64, l.StartsOffset)
	require.Equal(t, 72, l.Size)
}

func TestStartIndices(t *testing.T) {
	engine := endian.GetNativeEngine()
	starts := []int32{-2, 1, 7}

	data := AppendStartIndices(nil, starts, engine)
	require.Len(t, data, 12)

	got, err := ParseStartIndices(data, 3, engine)
	require.NoError(t, err)
	require.Equal(t, starts, got)

	_, err = ParseStartIndices(data[:8], 3, engine)
	require.ErrorIs(t, err, errs.ErrMalformedBuffer)
}
