package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeSpecialGlyphs(t *testing.T) {
	assert.Equal(t, `\#`, Escape("#"))
	assert.Equal(t, `\$100`, Escape("$100"))
	assert.Equal(t, `a\_b`, Escape("a_b"))
	assert.Equal(t, `user\@host`, Escape("user@host"))
	assert.Equal(t, `\~`, Escape("~"))
	assert.Equal(t, `\<tag\>`, Escape("<tag>"))
	assert.Equal(t, `\*bold\*`, Escape("*bold*"))
}

func TestEscapeBackslashFirst(t *testing.T) {
	// A literal backslash followed by a hash must not double-escape the
	// inserted backslash.
	assert.Equal(t, `\\\#`, Escape(`\#`))
}

func TestEscapeNotIdempotent(t *testing.T) {
	once := Escape("#")
	twice := Escape(once)
	assert.Equal(t, `\\\#`, twice)
}

func TestEscapeEmpty(t *testing.T) {
	assert.Equal(t, "", Escape(""))
}

func TestEscapeMonotonic(t *testing.T) {
	// No unescaped special remains: every special glyph in the output is
	// preceded by a backslash.
	input := `C# & $5 * a_b @home ~x <y> 100%`
	out := Escape(input)
	for i, r := range out {
		if strings.ContainsRune(`#$*_@~<>`, r) {
			require.Greater(t, i, 0)
			assert.Equal(t, byte('\\'), out[i-1], "unescaped %q at %d in %q", r, i, out)
		}
	}
}

func TestEscapeDeep(t *testing.T) {
	in := map[string]any{
		"name": "A & B#",
		"list": []any{"x_y", 42, map[string]any{"deep": "a*b"}},
		"n":    3.5,
	}
	out := EscapeDeep(in).(map[string]any)
	assert.Equal(t, `A & B\#`, out["name"])
	list := out["list"].([]any)
	assert.Equal(t, `x\_y`, list[0])
	assert.Equal(t, 42, list[1])
	assert.Equal(t, `a\*b`, list[2].(map[string]any)["deep"])
	// input untouched
	assert.Equal(t, "A & B#", in["name"])
}
