package array

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mdarr/format"
)

func mustParse(t *testing.T, text string, typ format.ElementType) Array {
	t.Helper()

	a, err := ParseLiteral(text, typ)
	require.NoError(t, err, "parse %q", text)

	return a
}

func mustPrint(t *testing.T, a Array) string {
	t.Helper()

	text, err := Print(a)
	require.NoError(t, err)

	return text
}

func mustView(t *testing.T, a Array) *View {
	t.Helper()

	v, err := NewView(a)
	require.NoError(t, err)

	return v
}
