package cache

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/typeset-backend/internal/types"
)

func TestKeyDeterministic(t *testing.T) {
	data := map[string]any{
		"personalInfo": map[string]any{"name": "A B", "email": "a@b.co"},
		"zeta":         []any{"x", "y"},
	}
	k1, err := Key(types.DocumentTypeResume, "classic", data, types.FormatPDF)
	require.NoError(t, err)
	k2, err := Key(types.DocumentTypeResume, "classic", data, types.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
}

func TestKeyEqualForEquivalentPayloads(t *testing.T) {
	// Two maps built in different insertion orders but byte-equal under
	// canonical JSON share a key.
	var d1, d2 map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"b":1,"a":{"y":2,"x":3}}`), &d1))
	require.NoError(t, json.Unmarshal([]byte(`{"a":{"x":3,"y":2},"b":1}`), &d2))
	k1, err := Key(types.DocumentTypeResume, "classic", d1, types.FormatPDF)
	require.NoError(t, err)
	k2, err := Key(types.DocumentTypeResume, "classic", d2, types.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
}

func TestKeyDiffers(t *testing.T) {
	data := map[string]any{"personalInfo": map[string]any{"name": "A"}}
	base, err := Key(types.DocumentTypeResume, "classic", data, types.FormatPDF)
	require.NoError(t, err)

	other, err := Key(types.DocumentTypeResume, "two_column", data, types.FormatPDF)
	require.NoError(t, err)
	assert.NotEqual(t, base, other)

	other, err = Key(types.DocumentTypeResume, "classic", data, types.FormatTypst)
	require.NoError(t, err)
	assert.NotEqual(t, base, other)

	changed := map[string]any{"personalInfo": map[string]any{"name": "B"}}
	other, err = Key(types.DocumentTypeResume, "classic", changed, types.FormatPDF)
	require.NoError(t, err)
	assert.NotEqual(t, base, other)
}

func TestKeyPrefix(t *testing.T) {
	data := map[string]any{"x": "y"}
	key, err := Key(types.DocumentTypeResume, "classic", data, types.FormatPDF)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "pdf:resume:classic:"))
	parts := strings.Split(key, ":")
	require.Len(t, parts, 4)
	assert.Len(t, parts[3], 64)

	key, err = Key(types.DocumentTypeCoverLetter, "modern", data, types.FormatTypst)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "typst:cover_letter:modern:"))
}

func TestKeyUnicodeNormalization(t *testing.T) {
	// "é" composed vs decomposed hashes identically after NFC.
	composed := map[string]any{"name": "Jos\u00e9"}
	decomposed := map[string]any{"name": "Jose\u0301"}
	k1, err := Key(types.DocumentTypeResume, "classic", composed, types.FormatPDF)
	require.NoError(t, err)
	k2, err := Key(types.DocumentTypeResume, "classic", decomposed, types.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
}
