package templates

import (
	"fmt"
	"strings"

	"github.com/yungbote/typeset-backend/internal/textutil"
	"github.com/yungbote/typeset-backend/internal/types"
)

// Sidebar geometry and color are part of the template contract: a dark
// slate panel at roughly a third of the page width.
const (
	sidebarWidthPct = 32
	sidebarColor    = "rgb(45, 55, 72)"
)

// twoColumnResume renders a left sidebar (contact, skills, short
// education, certifications, languages) and a right main column (summary,
// experience, projects, publications, achievements).
type twoColumnResume struct {
	data map[string]any
	mode types.SpacingMode
}

func NewTwoColumnResume(data map[string]any, cfg Config) Template {
	return &twoColumnResume{data: data, mode: resolveSpacing(cfg, data)}
}

func (t *twoColumnResume) ValidateData() error {
	return requireResumeBasics(t.data)
}

func (t *twoColumnResume) Render() (string, error) {
	if err := t.ValidateData(); err != nil {
		return "", err
	}
	pi := textutil.Map(t.data, "personalInfo")

	var sb strings.Builder
	sb.WriteString(preamble(t.mode))
	sb.WriteString(fmt.Sprintf("#grid(\n  columns: (%d%%, %d%%),\n  column-gutter: 12pt,\n", sidebarWidthPct, 100-sidebarWidthPct))
	sb.WriteString(fmt.Sprintf("  block(fill: %s, inset: 10pt, width: 100%%, height: 100%%)[\n    #set text(fill: white)\n", sidebarColor))
	sb.WriteString(indent(t.renderSidebar(pi), "    "))
	sb.WriteString("  ],\n  [\n")
	sb.WriteString(indent(t.renderMain(pi), "    "))
	sb.WriteString("  ],\n)\n")
	return sb.String(), nil
}

func (t *twoColumnResume) renderSidebar(pi map[string]any) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("#text(size: 16pt, weight: \"bold\")[%s]\n\n", textutil.Escape(textutil.Str(pi, "name"))))
	if parts := contactParts(pi); len(parts) > 0 {
		sb.WriteString(strings.Join(parts, " \\\n") + "\n\n")
	}
	sb.WriteString(sidebarSection("Skills", renderSkills(t.data)))
	sb.WriteString(sidebarSection("Education", renderShortEducation(t.data)))
	sb.WriteString(sidebarSection("Certifications", renderCertifications(t.data)))
	sb.WriteString(sidebarSection("Languages", renderLanguages(t.data)))
	return sb.String()
}

func (t *twoColumnResume) renderMain(pi map[string]any) string {
	var sb strings.Builder
	sb.WriteString(section("Summary", renderSummary(t.data)))
	sb.WriteString(section("Experience", renderExperience(t.data)))
	sb.WriteString(section("Projects", renderProjects(t.data)))
	sb.WriteString(section("Articles & Publications", renderPublications(t.data)))
	sb.WriteString(section("Achievements", renderAchievements(t.data)))
	return sb.String()
}

func (t *twoColumnResume) RequiredFields() []string { return []string{"personalInfo"} }

func (t *twoColumnResume) Type() types.DocumentType { return types.DocumentTypeResume }

func (t *twoColumnResume) AnalyzeDocument() *Analysis {
	return analyzeData(t.data, t.mode, types.DocumentTypeResume)
}

func sidebarSection(title, body string) string {
	if body == "" {
		return ""
	}
	return "#text(weight: \"bold\")[" + title + "]\n#line(length: 100%, stroke: 0.5pt + white)\n" + body + "\n\n"
}

// renderShortEducation is the sidebar variant: degree, institution, and
// date only.
func renderShortEducation(data map[string]any) string {
	entries := textutil.Slice(data, "education")
	var blocks []string
	for _, raw := range entries {
		edu, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		degree := textutil.FieldWithFallback(edu, "degree", []string{"name", "program"}, "")
		inst := textutil.FieldWithFallback(edu, "institution", []string{"school", "university"}, "")
		if degree == "" && inst == "" {
			continue
		}
		var lines []string
		if degree != "" {
			lines = append(lines, "*"+textutil.Escape(degree)+"*")
		}
		if inst != "" {
			lines = append(lines, textutil.Escape(inst))
		}
		date := textutil.FieldWithFallback(edu, "graduationDate", []string{"endDate", "end_date"}, "")
		if date != "" {
			lines = append(lines, "_"+textutil.Escape(date)+"_")
		}
		blocks = append(blocks, strings.Join(lines, " \\\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func indent(s, prefix string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
