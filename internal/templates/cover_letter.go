package templates

import (
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/textutil"
	"github.com/yungbote/typeset-backend/internal/types"
)

// coverLetter implements both registered cover-letter templates; modern
// adds an accent rule under the sender header, the rest of the layout is
// shared.
type coverLetter struct {
	data   map[string]any
	mode   types.SpacingMode
	accent bool
	// now is injectable for deterministic tests.
	now func() time.Time
}

func NewClassicCoverLetter(data map[string]any, cfg Config) Template {
	return &coverLetter{data: data, mode: resolveSpacing(cfg, data), now: time.Now}
}

func NewModernCoverLetter(data map[string]any, cfg Config) Template {
	return &coverLetter{data: data, mode: resolveSpacing(cfg, data), accent: true, now: time.Now}
}

func (t *coverLetter) ValidateData() error {
	if err := requireResumeBasics(t.data); err != nil {
		return err
	}
	if len(t.bodyParagraphs()) == 0 {
		return errdefs.E(errdefs.ValMissingField, "Required field 'body' is missing").WithField("body")
	}
	return nil
}

func (t *coverLetter) Render() (string, error) {
	if err := t.ValidateData(); err != nil {
		return "", err
	}
	pi := textutil.Map(t.data, "personalInfo")

	var sb strings.Builder
	sb.WriteString(preamble(t.mode))

	// Sender header
	sb.WriteString(fmt.Sprintf("#text(size: 14pt, weight: \"bold\")[%s]\n", textutil.Escape(textutil.Str(pi, "name"))))
	if parts := contactParts(pi); len(parts) > 0 {
		sb.WriteString(strings.Join(parts, " | ") + "\n")
	}
	if t.accent {
		sb.WriteString("#line(length: 100%, stroke: 2pt + " + sidebarColor + ")\n")
	}
	sb.WriteString("\n#v(1em)\n\n")

	sb.WriteString(textutil.Escape(t.letterDate()) + "\n\n")

	if recipient := t.recipientBlock(); recipient != "" {
		sb.WriteString(recipient + "\n\n")
	}

	sb.WriteString(textutil.Escape(t.salutation()) + "\n\n")

	for _, para := range t.bodyParagraphs() {
		sb.WriteString(textutil.Escape(para) + "\n\n")
	}

	closing := textutil.FieldWithFallback(t.data, "closing", nil, "Sincerely,")
	sb.WriteString(textutil.Escape(closing) + " \\\n")
	sb.WriteString(textutil.Escape(textutil.Str(pi, "name")) + "\n")
	return sb.String(), nil
}

func (t *coverLetter) RequiredFields() []string { return []string{"personalInfo", "body"} }

func (t *coverLetter) Type() types.DocumentType { return types.DocumentTypeCoverLetter }

func (t *coverLetter) AnalyzeDocument() *Analysis {
	return analyzeData(t.data, t.mode, types.DocumentTypeCoverLetter)
}

// letterDate returns the supplied date, else today formatted "Month D, YYYY".
func (t *coverLetter) letterDate() string {
	if date := textutil.FieldWithFallback(t.data, "date", nil, ""); date != "" {
		return date
	}
	return t.now().Format("January 2, 2006")
}

func (t *coverLetter) recipientBlock() string {
	recipient := textutil.Map(t.data, "recipient")
	if recipient == nil {
		return ""
	}
	var lines []string
	for _, key := range []string{"name", "title", "company"} {
		if v := textutil.Str(recipient, key); v != "" {
			lines = append(lines, textutil.Escape(v))
		}
	}
	for _, addr := range textutil.StringSlice(recipient["address"]) {
		lines = append(lines, textutil.Escape(addr))
	}
	return strings.Join(lines, " \\\n")
}

// salutation prefers a client-supplied one, then derives deterministically
// from the recipient.
func (t *coverLetter) salutation() string {
	if s := textutil.FieldWithFallback(t.data, "salutation", nil, ""); s != "" {
		return s
	}
	recipient := textutil.Map(t.data, "recipient")
	if name := textutil.Str(recipient, "name"); name != "" {
		return "Dear " + name + ","
	}
	if title := textutil.Str(recipient, "title"); title != "" {
		return "Dear " + title + ","
	}
	if company := textutil.Str(recipient, "company"); company != "" {
		return "Dear Hiring Manager at " + company + ","
	}
	return "Dear Hiring Manager,"
}

// bodyParagraphs accepts a single string (split on blank lines) or an
// ordered list of paragraphs; empty entries are skipped.
func (t *coverLetter) bodyParagraphs() []string {
	var paras []string
	switch body := t.data["body"].(type) {
	case string:
		for _, p := range strings.Split(body, "\n\n") {
			if strings.TrimSpace(p) != "" {
				paras = append(paras, strings.TrimSpace(p))
			}
		}
	case []any:
		for _, raw := range body {
			if p, ok := raw.(string); ok && strings.TrimSpace(p) != "" {
				paras = append(paras, strings.TrimSpace(p))
			}
		}
	}
	return paras
}
