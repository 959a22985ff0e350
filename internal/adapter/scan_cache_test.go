package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/codeaudit/internal/model"
	"github.com/mouse-blink/codeaudit/internal/scanner"
)

func TestScanCache(t *testing.T) {
	cache, err := NewScanCache(2)
	require.NoError(t, err)

	src := []byte("function f() {\n  return 1;\n}\n")

	first := cache.Scan(src, m.KindJavaScript, "")
	require.Len(t, first.Constructs, 1)

	again := cache.Scan(src, m.KindJavaScript, "")
	assert.Same(t, first, again)
	assert.Equal(t, 1, cache.Len())

	t.Run("kind and variant are part of the key", func(t *testing.T) {
		css := cache.Scan(src, m.KindCSS, "")
		assert.NotSame(t, first, css)
		assert.Empty(t, css.Constructs)

		docs := cache.Scan(src, m.KindJavaScript, "line-docs", scanner.WithLineCommentDocs())
		assert.NotSame(t, first, docs)
	})

	t.Run("bounded", func(t *testing.T) {
		assert.Equal(t, 2, cache.Len())

		cache.Purge()
		assert.Zero(t, cache.Len())
	})
}

func TestNewScanCache_DefaultSize(t *testing.T) {
	cache, err := NewScanCache(0)
	require.NoError(t, err)
	assert.NotNil(t, cache)
}
