// Package validation implements the two request-data validation levels.
// Standard checks structure and date shapes and fails on the first
// disqualifying error; ultra additionally normalizes (email, URLs, phone,
// open-ended dates) and collects every issue before deciding.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/types"
)

var dateShapes = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}$`),       // YYYY-MM
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), // YYYY-MM-DD
	regexp.MustCompile(`^\d{2}-\d{4}$`),       // MM-YYYY
	regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`), // MM-DD-YYYY
}

var presentSynonyms = map[string]bool{
	"present": true,
	"current": true,
	"now":     true,
	"ongoing": true,
}

func validDate(s string) bool {
	if s == "" || presentSynonyms[strings.ToLower(s)] {
		return true
	}
	for _, re := range dateShapes {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

var dateFields = []string{"startDate", "endDate", "graduationDate"}

// Standard validates data for the given document type and returns a
// normalized copy; the input is never mutated. It fails fast on the first
// disqualifying error.
func Standard(docType types.DocumentType, data map[string]any) (map[string]any, error) {
	if data == nil {
		return nil, errdefs.E(errdefs.ValMissingField, "Required field 'personalInfo' is missing").
			WithField("personalInfo")
	}
	out := copyMap(data)

	if _, err := requirePersonalInfo(out); err != nil {
		return nil, err
	}

	if docType == types.DocumentTypeCoverLetter {
		if err := requireBody(out); err != nil {
			return nil, err
		}
	}

	for _, section := range []string{"experience", "education"} {
		entries, _ := out[section].([]any)
		for i, raw := range entries {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			for _, field := range dateFields {
				val, present := entry[field]
				if !present {
					continue
				}
				s, ok := val.(string)
				if !ok {
					return nil, errdefs.E(errdefs.ValInvalidType, "Field '%s' must be of type string", field).
						WithField(fmt.Sprintf("%s[%d].%s", section, i, field))
				}
				if !validDate(s) {
					return nil, errdefs.E(errdefs.ValInvalidDate, "Date '%s' is not in valid format", s).
						WithField(fmt.Sprintf("%s[%d].%s", section, i, field))
				}
			}
			normalizeEntryAliases(entry)
		}
	}
	return out, nil
}

// Run dispatches to the level the request asked for and returns the
// normalized data.
func Run(docType types.DocumentType, data map[string]any, ultra bool) (map[string]any, error) {
	if !ultra {
		return Standard(docType, data)
	}
	result := Ultra(docType, data, false)
	if err := result.Err(); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func requirePersonalInfo(data map[string]any) (map[string]any, error) {
	raw, ok := data["personalInfo"]
	if !ok {
		return nil, errdefs.E(errdefs.ValMissingField, "Required field 'personalInfo' is missing").
			WithField("personalInfo")
	}
	pi, ok := raw.(map[string]any)
	if !ok {
		return nil, errdefs.E(errdefs.ValInvalidType, "Field 'personalInfo' must be an object").
			WithField("personalInfo")
	}
	for _, field := range []string{"name", "email"} {
		s, _ := pi[field].(string)
		if strings.TrimSpace(s) == "" {
			return nil, errdefs.E(errdefs.ValMissingField, "Required field '%s' is missing from personalInfo", field).
				WithField("personalInfo." + field)
		}
	}
	return pi, nil
}

func requireBody(data map[string]any) error {
	switch body := data["body"].(type) {
	case string:
		if strings.TrimSpace(body) == "" {
			return errdefs.E(errdefs.ValMissingField, "Required field 'body' is missing").WithField("body")
		}
	case []any:
		if len(body) == 0 {
			return errdefs.E(errdefs.ValMissingField, "Required field 'body' is missing").WithField("body")
		}
	case nil:
		return errdefs.E(errdefs.ValMissingField, "Required field 'body' is missing").WithField("body")
	default:
		return errdefs.E(errdefs.ValInvalidType, "Field 'body' must be a string or a list of paragraphs").
			WithField("body")
	}
	return nil
}

// normalizeEntryAliases copies the legacy title key onto position when the
// entry has no position of its own.
func normalizeEntryAliases(entry map[string]any) {
	if _, ok := entry["position"]; ok {
		return
	}
	if title, ok := entry["title"].(string); ok && title != "" {
		entry["position"] = title
	}
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
