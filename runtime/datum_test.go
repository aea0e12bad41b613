package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mdarr/array"
	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/format"
)

func TestDatumRoundTrip(t *testing.T) {
	a, err := array.ParseLiteral(`[0:1][1:3]={{"x","y",null},{"z","w","v"}}`, format.TypeString)
	require.NoError(t, err)

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			data, stats, err := MarshalDatum(a, ct)
			require.NoError(t, err)
			require.Equal(t, int64(len(a.Buf)), stats.OriginalSize)

			got, compression, err := UnmarshalDatum(data)
			require.NoError(t, err)
			require.Equal(t, ct, compression)
			require.Equal(t, a.Type, got.Type)
			require.Equal(t, a.Buf, got.Buf)
		})
	}
}

func TestDatumDeterministic(t *testing.T) {
	a, err := array.ParseLiteral("{1,2,3}", format.TypeInt64)
	require.NoError(t, err)

	first, _, err := MarshalDatum(a, format.CompressionS2)
	require.NoError(t, err)
	second, _, err := MarshalDatum(a, format.CompressionS2)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDatumChecksumMismatch(t *testing.T) {
	a, err := array.ParseLiteral("{1,2,3}", format.TypeInt32)
	require.NoError(t, err)

	data, _, err := MarshalDatum(a, format.CompressionNone)
	require.NoError(t, err)

	// The uncompressed payload is the last field, so its last byte is the last
	// byte of the envelope: the final start index.
	data[len(data)-1] ^= 0xFF

	_, _, err = UnmarshalDatum(data)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

func TestDatumInvalid(t *testing.T) {
	_, _, err := UnmarshalDatum([]byte{0xff, 0x00})
	require.ErrorIs(t, err, errs.ErrMalformedBuffer)

	_, _, err = MarshalDatum(array.Array{Type: format.TypeInt32, Buf: []byte{1}}, format.CompressionNone)
	require.ErrorIs(t, err, errs.ErrMalformedBuffer)

	a := array.Empty(format.TypeInt32)
	_, _, err = MarshalDatum(a, format.CompressionType(0x7f))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}
