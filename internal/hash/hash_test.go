package hash

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum64(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint64
	}{
		{"empty", nil, 0xef46db3751d8e999},
		{"short", []byte("test"), 0x4fdcca5ddb678139},
		{"literal", []byte("{{1,2},{3,4}}"), xxhash.Sum64String("{{1,2},{3,4}}")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sum64(tt.data))
		})
	}
}

func TestSum64Parts(t *testing.T) {
	whole := []byte("header|elements|nulls")

	require.Equal(t, Sum64(whole), Sum64Parts([]byte("header|"), []byte("elements|"), []byte("nulls")))
	require.Equal(t, Sum64(nil), Sum64Parts())
	require.NotEqual(t, Sum64Parts([]byte("a")), Sum64Parts([]byte("b")))
}

func BenchmarkSum64(b *testing.B) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i)
	}

	b.ResetTimer()
	for b.Loop() {
		Sum64(data)
	}
}
