package loaders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	t.Run("returns the loaders attached to the context", func(t *testing.T) {
		attached := &Loaders{}
		ctx := WithLoaders(context.Background(), attached)

		require.Same(t, attached, For(ctx))
	})

	t.Run("panics with a wiring message when no loaders are attached", func(t *testing.T) {
		assert.PanicsWithValue(t, "loaders: context has no request loaders attached", func() {
			For(context.Background())
		})
	})
}
