package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "layout.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())

		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		assert.Equal(t, "layout.yaml", file)
		assert.Equal(t, "[config:fatal] invalid configuration", err.Error())
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		assert.True(t, ConfigError("x").Build().IsFatal())
		assert.Equal(t, SeverityWarning, AssetError("x").Build().Severity())
		assert.Equal(t, SeverityWarning, EncodingError("x").Build().Severity())
		assert.Equal(t, SeverityError, RenderError("x").Build().Severity())
	})
}

func TestErrorBuilder_WrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := WrapError(cause, CategoryAsset, "cannot read media").
		Warning().
		WithContext("source", "/media/a.wav").
		Build()

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Cause())
	assert.Contains(t, err.Error(), "permission denied")
}

func TestWithContext_DoesNotMutateReceiver(t *testing.T) {
	base := RenderError("entry failed").Build()
	tagged := base.WithContext("entry_id", "e1")

	_, ok := base.Context().Get("entry_id")
	assert.False(t, ok)
	v, ok := tagged.Context().GetString("entry_id")
	require.True(t, ok)
	assert.Equal(t, "e1", v)
}

func TestChainHelpers(t *testing.T) {
	inner := ConfigError("cycle").WithContext("node", "Subsenses").Build()
	outer := WrapError(inner, CategoryRender, "render failed").WithContext("entry_id", "e1").Build()
	wrapped := fmt.Errorf("batch: %w", outer)

	assert.True(t, IsClassified(wrapped))
	assert.Equal(t, CategoryRender, GetCategory(wrapped))
	assert.True(t, HasCategory(wrapped, CategoryConfig))
	assert.False(t, HasCategory(wrapped, CategoryAsset))

	node, ok := ContextValue(wrapped, "node")
	require.True(t, ok)
	assert.Equal(t, "Subsenses", node)

	assert.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
	assert.True(t, stderrors.Is(wrapped, ConfigError("cycle").Build()))
}

func TestEntryAndNodeContext(t *testing.T) {
	err := ConfigError("reference item cycle").
		AtNode("Main Entry > Senses").
		ForEntry("e-7").
		WithContext("reference_item", "Subsenses").
		Build()
	assert.Equal(t, "[config:fatal] reference item cycle (entry e-7) (node Main Entry > Senses)", err.Error())

	wrapped := fmt.Errorf("batch: %w", WrapError(RenderError("boom").Build(), CategoryRender, "render entry").
		ForEntry("e-9").
		Build())
	id, ok := EntryOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, "e-9", id)

	_, ok = EntryOf(stderrors.New("plain"))
	assert.False(t, ok)

	retagged := RenderError("boom").Build().ForEntry("e-1")
	id, _ = EntryOf(retagged)
	assert.Equal(t, "e-1", id)
}
