package validation

import (
	"fmt"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/types"
)

var validate = validatorv10.New()

// Issue is one finding from the collecting validator.
type Issue struct {
	Code     errdefs.Code     `json:"code"`
	Severity errdefs.Severity `json:"severity"`
	Field    string           `json:"field"`
	Message  string           `json:"message"`
}

// Result is the outcome of an ultra validation pass: the transformed data
// plus everything the pass found, split by severity.
type Result struct {
	Valid    bool           `json:"valid"`
	Errors   []Issue        `json:"errors"`
	Warnings []Issue        `json:"warnings"`
	Data     map[string]any `json:"-"`
}

// Err folds the collected errors into one typed error with a joined
// diagnostic, or nil when the pass succeeded.
func (r *Result) Err() error {
	if r.Valid {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, iss := range r.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", iss.Field, iss.Message))
	}
	first := r.Errors[0]
	return errdefs.E(first.Code, "%s", strings.Join(msgs, "; ")).
		WithField(first.Field).
		WithContext("issues", r.Errors)
}

// Ultra runs the normalizing validator. It collects every issue, applies
// the normalizations to a copy of data, and reports validity: errors always
// disqualify, warnings only under strict.
func Ultra(docType types.DocumentType, data map[string]any, strict bool) *Result {
	res := &Result{Errors: []Issue{}, Warnings: []Issue{}}
	if data == nil {
		res.addError(errdefs.ValMissingField, "personalInfo", "Required field 'personalInfo' is missing")
		return res.finish(nil, strict)
	}
	out := copyMap(data)

	pi, ok := out["personalInfo"].(map[string]any)
	if !ok {
		if _, present := out["personalInfo"]; present {
			res.addError(errdefs.ValInvalidType, "personalInfo", "Field 'personalInfo' must be an object")
		} else {
			res.addError(errdefs.ValMissingField, "personalInfo", "Required field 'personalInfo' is missing")
		}
		return res.finish(out, strict)
	}

	res.checkName(pi)
	res.checkEmail(pi)
	res.checkPhone(pi)
	for _, field := range []string{"website", "linkedin", "github"} {
		res.checkURL(pi, field)
	}

	if docType == types.DocumentTypeCoverLetter {
		if err := requireBody(out); err != nil {
			te := errdefs.As(err)
			res.addError(te.Code, te.FieldPath, te.Message)
		}
	}

	for _, section := range []string{"experience", "education"} {
		entries, _ := out[section].([]any)
		for i, raw := range entries {
			entry, ok := raw.(map[string]any)
			if !ok {
				res.addError(errdefs.ValInvalidType, fmt.Sprintf("%s[%d]", section, i), "Entry must be an object")
				continue
			}
			res.normalizeDates(entry, section, i)
			normalizeEntryAliases(entry)
		}
	}

	screenMarkup(res, out, "")

	return res.finish(out, strict)
}

func (r *Result) addError(code errdefs.Code, field, msg string) {
	r.Errors = append(r.Errors, Issue{Code: code, Severity: errdefs.SeverityError, Field: field, Message: msg})
}

func (r *Result) addWarning(code errdefs.Code, field, msg string) {
	r.Warnings = append(r.Warnings, Issue{Code: code, Severity: errdefs.SeverityWarning, Field: field, Message: msg})
}

func (r *Result) finish(data map[string]any, strict bool) *Result {
	r.Data = data
	r.Valid = len(r.Errors) == 0 && (!strict || len(r.Warnings) == 0)
	return r
}

func (r *Result) checkName(pi map[string]any) {
	name, _ := pi["name"].(string)
	if strings.TrimSpace(name) == "" {
		r.addError(errdefs.ValMissingField, "personalInfo.name", "Required field 'name' is missing from personalInfo")
	}
}

func (r *Result) checkEmail(pi map[string]any) {
	raw, _ := pi["email"].(string)
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		r.addError(errdefs.ValMissingField, "personalInfo.email", "Required field 'email' is missing from personalInfo")
		return
	}
	if err := validate.Var(email, "email"); err != nil {
		r.addError(errdefs.ValInvalidEmail, "personalInfo.email", fmt.Sprintf("Email '%s' is not in valid format", email))
		return
	}
	pi["email"] = email
}

func (r *Result) checkPhone(pi map[string]any) {
	raw, _ := pi["phone"].(string)
	if raw == "" {
		return
	}
	normalized, ok := normalizePhone(raw)
	if !ok {
		r.addWarning(errdefs.ValInvalidPhone, "personalInfo.phone", fmt.Sprintf("Phone number '%s' could not be normalized", raw))
		return
	}
	pi["phone"] = normalized
}

func (r *Result) checkURL(pi map[string]any, field string) {
	raw, _ := pi[field].(string)
	if raw == "" {
		return
	}
	url := strings.TrimSpace(raw)
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
		r.addWarning(errdefs.ValInvalidURL, "personalInfo."+field, "Added https:// protocol to URL")
	}
	pi[field] = url
}

func (r *Result) normalizeDates(entry map[string]any, section string, idx int) {
	for _, field := range dateFields {
		val, present := entry[field]
		if !present {
			continue
		}
		s, ok := val.(string)
		if !ok {
			r.addError(errdefs.ValInvalidType, fmt.Sprintf("%s[%d].%s", section, idx, field),
				fmt.Sprintf("Field '%s' must be of type string", field))
			continue
		}
		if presentSynonyms[strings.ToLower(s)] {
			entry[field] = "Present"
			continue
		}
		if !validDate(s) {
			r.addError(errdefs.ValInvalidDate, fmt.Sprintf("%s[%d].%s", section, idx, field),
				fmt.Sprintf("Date '%s' is not in valid format", s))
		}
	}
}

// normalizePhone keeps digits and a leading +, then formats 10- and
// 11-digit numbers the North American way. Anything else is passed back
// unformatted.
func normalizePhone(raw string) (string, bool) {
	var digits strings.Builder
	plus := strings.HasPrefix(strings.TrimSpace(raw), "+")
	for _, ch := range raw {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
		}
	}
	d := digits.String()
	switch {
	case len(d) == 10:
		return fmt.Sprintf("(%s) %s-%s", d[0:3], d[3:6], d[6:10]), true
	case len(d) == 11 && d[0] == '1':
		return fmt.Sprintf("+1 (%s) %s-%s", d[1:4], d[4:7], d[7:11]), true
	case plus && len(d) >= 7 && len(d) <= 15:
		return "+" + d, true
	default:
		return raw, false
	}
}
