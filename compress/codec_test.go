package compress

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/s2"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/mdarr/array"
	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/format"
)

var allCompressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func packedSample(t *testing.T) []byte {
	t.Helper()

	var sb bytes.Buffer
	sb.WriteString("{")
	for i := range 512 {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("{1,2,null,4}")
	}
	sb.WriteString("}")

	a, err := array.ParseLiteral(sb.String(), format.TypeInt64)
	require.NoError(t, err)

	return a.Buf
}

func TestCodecRoundTrip(t *testing.T) {
	data := packedSample(t)

	for _, ct := range allCompressions {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := CreateCodec(ct, "datum")
			require.NoError(t, err)

			compressed, err := codec.Compress(data)
			require.NoError(t, err)
			if ct != format.CompressionNone {
				require.Less(t, len(compressed), len(data))
			}

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, data, restored)
		})
	}
}

func TestCodecEmptyInput(t *testing.T) {
	for _, ct := range allCompressions {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			out, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Empty(t, out)

			out, err = codec.Decompress(nil)
			require.NoError(t, err)
			require.Empty(t, out)
		})
	}
}

func TestCodecCorruptedInput(t *testing.T) {
	garbage := []byte{0xff, 0xfe, 0xfd, 0xfc, 0x01, 0x02, 0x03}

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			_, err = codec.Decompress(garbage)
			require.Error(t, err)
		})
	}
}

func TestS2Compressor_ArrayBlocks(t *testing.T) {
	data := packedSample(t)
	codec := NewS2Compressor()

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.LessOrEqual(t, len(compressed), len(s2.Encode(nil, data)))

	n, err := s2.DecodedLen(compressed)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	plain, err := s2.Decode(nil, compressed)
	require.NoError(t, err)
	require.Equal(t, data, plain)

	oversized := binary.AppendUvarint(nil, maxDecodedSize+1)
	oversized = append(oversized, 0x00, 0x01, 0x02)
	_, err = codec.Decompress(oversized)
	require.ErrorContains(t, err, "exceeds")
}

func TestCreateCodecInvalid(t *testing.T) {
	_, err := CreateCodec(format.CompressionType(0x7f), "datum")
	require.ErrorIs(t, err, errs.ErrInvalidCompression)

	_, err = GetCodec(format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestMeasure(t *testing.T) {
	data := packedSample(t)

	out, stats, err := Measure(NewS2Compressor(), format.CompressionS2, data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionS2, stats.Algorithm)
	require.Equal(t, int64(len(data)), stats.OriginalSize)
	require.Equal(t, int64(len(out)), stats.CompressedSize)
	require.Less(t, stats.CompressionRatio(), 1.0)
	require.Greater(t, stats.SpaceSavings(), 0.0)

	require.Zero(t, CompressionStats{}.CompressionRatio())
	require.Zero(t, CompressionStats{}.SpaceSavings())
}
