package validation

import (
	"fmt"
	"strings"

	"github.com/yungbote/typeset-backend/internal/errdefs"
)

// Control sequences that would execute in the typesetting layer if a client
// smuggled them through a text field. Plain hashes are fine: the emitters
// escape them; these compound forms are flagged before rendering.
var injectionPatterns = []string{
	"#eval",
	"#include",
	"#import",
	"#read",
	"#{",
}

func screenMarkup(res *Result, v any, path string) {
	switch t := v.(type) {
	case string:
		lowered := strings.ToLower(t)
		for _, pat := range injectionPatterns {
			if strings.Contains(lowered, pat) {
				res.addError(errdefs.SecMaliciousInput, path,
					fmt.Sprintf("Injected control sequence '%s' detected", pat))
				return
			}
		}
	case []any:
		for i, item := range t {
			screenMarkup(res, item, fmt.Sprintf("%s[%d]", path, i))
		}
	case map[string]any:
		for k, item := range t {
			child := k
			if path != "" {
				child = path + "." + k
			}
			screenMarkup(res, item, child)
		}
	}
}
