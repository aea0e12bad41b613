package mdarr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mdarr/array"
	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/format"
	"github.com/arloliu/mdarr/runtime"
)

func TestParsePrint(t *testing.T) {
	a, err := Parse("{{1,2},{3,4}}", format.TypeInt32)
	require.NoError(t, err)

	b := MustParse("{{10,20},{30,40}}", format.TypeInt32)
	sum, err := array.Add(a, b)
	require.NoError(t, err)

	text, err := Print(sum)
	require.NoError(t, err)
	require.Equal(t, "{{11,22},{33,44}}", text)

	_, err = Parse("{{1}}", format.TypeInt32, array.WithMaxDimensions(1))
	require.ErrorIs(t, err, errs.ErrOutOfBoundsStructure)

	require.Panics(t, func() { MustParse("{1,", format.TypeInt32) })
}

func TestNewRuntime(t *testing.T) {
	rt, err := NewRuntime(runtime.WithCompression(format.CompressionS2))
	require.NoError(t, err)
	require.Equal(t, format.CompressionS2, rt.Compression())
}

func TestFingerprint(t *testing.T) {
	a := MustParse("{1,2}", format.TypeInt64)
	require.Equal(t, Fingerprint(a), Fingerprint(a.Clone()))
	require.NotEqual(t, Fingerprint(a), Fingerprint(MustParse("{1,3}", format.TypeInt64)))

	// The element type is part of the fingerprint even for identical bytes.
	b := array.Empty(format.TypeInt32)
	c := array.Empty(format.TypeFloat32)
	require.Equal(t, b.Buf, c.Buf)
	require.NotEqual(t, Fingerprint(b), Fingerprint(c))
}
