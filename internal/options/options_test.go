package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type parseConfig struct {
	maxDims int
	strict  bool
	calls   []string
}

func withMaxDims(n int) Option[*parseConfig] {
	return New(func(c *parseConfig) error {
		if n < 1 {
			return errors.New("max dimensions must be positive")
		}
		c.maxDims = n
		c.calls = append(c.calls, "maxDims")

		return nil
	})
}

func withStrict() Option[*parseConfig] {
	return NoError(func(c *parseConfig) {
		c.strict = true
		c.calls = append(c.calls, "strict")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &parseConfig{}
		err := Apply(cfg, withStrict(), withMaxDims(4))
		require.NoError(t, err)
		require.Equal(t, 4, cfg.maxDims)
		require.True(t, cfg.strict)
		require.Equal(t, []string{"strict", "maxDims"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &parseConfig{}
		err := Apply(cfg, withMaxDims(0), withStrict())
		require.Error(t, err)
		require.False(t, cfg.strict)
		require.Empty(t, cfg.calls)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &parseConfig{maxDims: 32}
		require.NoError(t, Apply(cfg))
		require.Equal(t, 32, cfg.maxDims)
	})

	t.Run("nil option is skipped", func(t *testing.T) {
		cfg := &parseConfig{}
		require.NoError(t, Apply[*parseConfig](cfg, nil, withStrict()))
		require.True(t, cfg.strict)
	})
}
