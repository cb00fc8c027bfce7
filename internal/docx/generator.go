// Package docx is the side-channel Word path: when the request asks for
// format=docx the Typst pipeline is bypassed entirely and the validated
// data maps straight onto document elements.
package docx

import (
	"bytes"
	"strings"

	godocx "github.com/fumiama/go-docx"

	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/pkg/logger"
	"github.com/yungbote/typeset-backend/internal/textutil"
	"github.com/yungbote/typeset-backend/internal/types"
)

// Run sizes are OOXML half-points: 32 is 16pt, 24 is 12pt.
const (
	nameSize    = "32"
	headingSize = "24"
)

type Generator struct {
	log *logger.Logger
}

func NewGenerator(log *logger.Logger) *Generator {
	return &Generator{log: log.With("service", "DocxGenerator")}
}

// Generate emits the DOCX byte stream and suggested filename.
func (g *Generator) Generate(docType types.DocumentType, data map[string]any) ([]byte, string, error) {
	doc := godocx.New().WithDefaultTheme()

	switch docType {
	case types.DocumentTypeResume:
		g.buildResume(doc, data)
	case types.DocumentTypeCoverLetter:
		g.buildCoverLetter(doc, data)
	default:
		return nil, "", errdefs.E(errdefs.TplFormatUnsupported, "document type '%s' has no DOCX layout", docType)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, "", errdefs.Wrap(err, errdefs.TplPDFFailed, "DOCX serialization failed")
	}
	return buf.Bytes(), types.Filename(docType, data, types.FormatDOCX), nil
}

func (g *Generator) buildResume(doc *godocx.Docx, data map[string]any) {
	pi := textutil.Map(data, "personalInfo")

	// Centered name and contact line.
	name := doc.AddParagraph().Justification("center")
	name.AddText(textutil.Str(pi, "name")).Size(nameSize).Bold()
	if contact := contactLine(pi); contact != "" {
		doc.AddParagraph().Justification("center").AddText(contact)
	}

	if summary := textutil.FieldWithFallback(data, "professionalSummary", []string{"summary", "objective"}, ""); summary != "" {
		g.heading(doc, "Professional Summary")
		doc.AddParagraph().AddText(summary)
	}

	g.experienceSection(doc, data)
	g.educationSection(doc, data)
	g.skillsSection(doc, data)
	g.listSection(doc, "Certifications", certLines(data))
	g.listSection(doc, "Achievements", listOf(data, "achievements", "awards"))
}

func (g *Generator) buildCoverLetter(doc *godocx.Docx, data map[string]any) {
	pi := textutil.Map(data, "personalInfo")

	doc.AddParagraph().AddText(textutil.Str(pi, "name")).Size(headingSize).Bold()
	if contact := contactLine(pi); contact != "" {
		doc.AddParagraph().AddText(contact)
	}
	doc.AddParagraph()

	if date := textutil.Str(data, "date"); date != "" {
		doc.AddParagraph().AddText(date)
		doc.AddParagraph()
	}

	recipient := textutil.Map(data, "recipient")
	for _, key := range []string{"name", "title", "company"} {
		if v := textutil.Str(recipient, key); v != "" {
			doc.AddParagraph().AddText(v)
		}
	}
	doc.AddParagraph()

	doc.AddParagraph().AddText(salutationFor(data))
	doc.AddParagraph()
	for _, para := range bodyParagraphsOf(data) {
		doc.AddParagraph().AddText(para)
		doc.AddParagraph()
	}
	closing := textutil.FieldWithFallback(data, "closing", nil, "Sincerely,")
	doc.AddParagraph().AddText(closing)
	doc.AddParagraph().AddText(textutil.Str(pi, "name"))
}

func (g *Generator) heading(doc *godocx.Docx, title string) {
	doc.AddParagraph().AddText(title).Size(headingSize).Bold()
}

func (g *Generator) experienceSection(doc *godocx.Docx, data map[string]any) {
	entries := textutil.Slice(data, "experience")
	if len(entries) == 0 {
		return
	}
	g.heading(doc, "Experience")
	for _, raw := range entries {
		exp, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		title := textutil.FieldWithFallback(exp, "position", []string{"title", "role"}, "")
		p := doc.AddParagraph()
		p.AddText(title).Bold()
		if dates := rangeOf(exp); dates != "" {
			p.AddText("\t")
			p.AddText(dates).Italic()
		}
		second := joinNonEmpty([]string{
			textutil.FieldWithFallback(exp, "company", []string{"employer", "organization"}, ""),
			textutil.Str(exp, "location"),
		}, ", ")
		if second != "" {
			doc.AddParagraph().AddText(second)
		}
		for _, ach := range listOf(exp, "achievements", "highlights", "responsibilities") {
			doc.AddParagraph().AddText("• " + ach)
		}
	}
}

func (g *Generator) educationSection(doc *godocx.Docx, data map[string]any) {
	entries := textutil.Slice(data, "education")
	if len(entries) == 0 {
		return
	}
	g.heading(doc, "Education")
	for _, raw := range entries {
		edu, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		degree := textutil.FieldWithFallback(edu, "degree", []string{"name", "program"}, "")
		p := doc.AddParagraph()
		p.AddText(degree).Bold()
		date := textutil.FieldWithFallback(edu, "graduationDate", []string{"endDate", "end_date"}, "")
		if date != "" {
			p.AddText("\t")
			p.AddText(date).Italic()
		}
		second := joinNonEmpty([]string{
			textutil.FieldWithFallback(edu, "institution", []string{"school", "university"}, ""),
			gpaOf(edu),
		}, ", ")
		if second != "" {
			doc.AddParagraph().AddText(second)
		}
	}
}

// skillsSection emits categorized bullets when the data is categorized,
// one comma-joined paragraph otherwise.
func (g *Generator) skillsSection(doc *godocx.Docx, data map[string]any) {
	raw, ok := data["technologiesAndSkills"]
	if !ok {
		raw, ok = data["skills"]
	}
	if !ok {
		return
	}
	entries, isList := raw.([]any)
	if !isList || len(entries) == 0 {
		return
	}
	g.heading(doc, "Technologies & Skills")
	if _, flat := entries[0].(string); flat {
		doc.AddParagraph().AddText(strings.Join(textutil.StringSlice(raw), ", "))
		return
	}
	for _, item := range entries {
		cat, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name := textutil.FieldWithFallback(cat, "category", []string{"name"}, "")
		skills := textutil.StringSlice(cat["skills"])
		if len(skills) == 0 {
			skills = textutil.StringSlice(cat["items"])
		}
		if name == "" && len(skills) == 0 {
			continue
		}
		p := doc.AddParagraph()
		if name != "" {
			p.AddText("• " + name + ": ").Bold()
		} else {
			p.AddText("• ")
		}
		p.AddText(strings.Join(skills, ", "))
	}
}

func (g *Generator) listSection(doc *godocx.Docx, title string, items []string) {
	if len(items) == 0 {
		return
	}
	g.heading(doc, title)
	for _, item := range items {
		doc.AddParagraph().AddText("• " + item)
	}
}

func contactLine(pi map[string]any) string {
	var parts []string
	for _, key := range []string{"location", "email", "phone", "website", "linkedin", "github"} {
		if v := textutil.Str(pi, key); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " | ")
}

func rangeOf(entry map[string]any) string {
	start := textutil.FieldWithFallback(entry, "startDate", []string{"start_date"}, "")
	end := textutil.FieldWithFallback(entry, "endDate", []string{"end_date"}, "")
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start + " - Present"
	default:
		return start + " - " + end
	}
}

func gpaOf(edu map[string]any) string {
	if gpa := textutil.Str(edu, "gpa"); gpa != "" {
		return "GPA " + gpa
	}
	return ""
}

func listOf(obj map[string]any, keys ...string) []string {
	for _, key := range keys {
		if items := textutil.StringSlice(obj[key]); len(items) > 0 {
			return items
		}
	}
	return nil
}

func certLines(data map[string]any) []string {
	var lines []string
	for _, raw := range textutil.Slice(data, "certifications") {
		switch cert := raw.(type) {
		case string:
			if cert != "" {
				lines = append(lines, cert)
			}
		case map[string]any:
			name := textutil.FieldWithFallback(cert, "name", []string{"title"}, "")
			if name == "" {
				continue
			}
			if issuer := textutil.Str(cert, "issuer"); issuer != "" {
				name += " (" + issuer + ")"
			}
			lines = append(lines, name)
		}
	}
	return lines
}

func salutationFor(data map[string]any) string {
	if s := textutil.Str(data, "salutation"); s != "" {
		return s
	}
	recipient := textutil.Map(data, "recipient")
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

func bodyParagraphsOf(data map[string]any) []string {
	var paras []string
	switch body := data["body"].(type) {
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

func joinNonEmpty(parts []string, sep string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
