package hofp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stratastore/transfer-common/system"
)

func TestOptionsDefaults(t *testing.T) {
	t.Run("Size", func(t *testing.T) {
		opts := Options{LogPrefix: "test prefix:"}
		opts.defaults()
		require.Equal(t, system.NumCPU(), opts.Size)
		require.Equal(t, 1, opts.BufferMultiplier)
		require.Equal(t, "test prefix:", opts.LogPrefix)
		require.Equal(t, context.Background(), opts.Context)
	})

	t.Run("BufferMultiplier", func(t *testing.T) {
		opts := Options{BufferMultiplier: 42}
		opts.defaults()
		require.Equal(t, 42, opts.BufferMultiplier)
		require.Equal(t, "(hofp)", opts.LogPrefix)
	})

	t.Run("LogPrefix", func(t *testing.T) {
		opts := Options{Size: 1}
		opts.defaults()
		require.Equal(t, 1, opts.Size)
		require.Equal(t, "(hofp)", opts.LogPrefix)
	})
}
