package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
)

type mode string

func newModeNormalizer() *Normalizer[mode] {
	return NewNormalizer("output mode", map[string]mode{
		"preview":    "preview",
		"web_export": "web",
		"Static":     "static",
	}, "preview")
}

func TestNormalize(t *testing.T) {
	n := newModeNormalizer()

	assert.Equal(t, mode("web"), n.Normalize("Web-Export"))
	assert.Equal(t, mode("web"), n.Normalize(" web export "))
	assert.Equal(t, mode("static"), n.Normalize("STATIC"))
	assert.Equal(t, mode("preview"), n.Normalize("unknown"))
}

func TestParse(t *testing.T) {
	n := newModeNormalizer()

	got, err := n.Parse("")
	require.NoError(t, err)
	assert.Equal(t, mode("preview"), got)

	got, err = n.Parse("static")
	require.NoError(t, err)
	assert.Equal(t, mode("static"), got)

	_, err = n.Parse("pdf")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	valid, _ := errors.ContextValue(err, "valid")
	assert.Equal(t, "preview|static|web-export", valid)
}

func TestValidKeysIsACopy(t *testing.T) {
	n := newModeNormalizer()
	keys := n.ValidKeys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"preview", "static", "web-export"}, n.ValidKeys())
}
