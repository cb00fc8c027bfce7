package templates

import (
	"strings"

	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/textutil"
	"github.com/yungbote/typeset-backend/internal/types"
)

// classicResume is the single-column resume: centered contact header, then
// ruled sections in fixed order.
type classicResume struct {
	data map[string]any
	mode types.SpacingMode
}

func NewClassicResume(data map[string]any, cfg Config) Template {
	return &classicResume{data: data, mode: resolveSpacing(cfg, data)}
}

func (t *classicResume) ValidateData() error {
	return requireResumeBasics(t.data)
}

func (t *classicResume) Render() (string, error) {
	if err := t.ValidateData(); err != nil {
		return "", err
	}
	pi := textutil.Map(t.data, "personalInfo")

	var sb strings.Builder
	sb.WriteString(preamble(t.mode))
	sb.WriteString(renderContactHeader(pi))
	sb.WriteString(section("Professional Summary", renderSummary(t.data)))
	sb.WriteString(section("Experience", renderExperience(t.data)))
	sb.WriteString(section("Education", renderEducation(t.data)))
	sb.WriteString(section("Projects", renderProjects(t.data)))
	sb.WriteString(section("Articles & Publications", renderPublications(t.data)))
	sb.WriteString(section("Achievements", renderAchievements(t.data)))
	sb.WriteString(section("Certifications", renderCertifications(t.data)))
	sb.WriteString(section("Technologies & Skills", renderSkills(t.data)))
	sb.WriteString(section("Languages", renderLanguages(t.data)))
	return sb.String(), nil
}

func (t *classicResume) RequiredFields() []string { return []string{"personalInfo"} }

func (t *classicResume) Type() types.DocumentType { return types.DocumentTypeResume }

func (t *classicResume) AnalyzeDocument() *Analysis {
	return analyzeData(t.data, t.mode, types.DocumentTypeResume)
}

// requireResumeBasics is the helper-level validation shared by the resume
// templates: a personalInfo object with non-empty name and email. Safe to
// call repeatedly.
func requireResumeBasics(data map[string]any) error {
	pi := textutil.Map(data, "personalInfo")
	if pi == nil {
		return errdefs.E(errdefs.ValMissingField, "Required field 'personalInfo' is missing").
			WithField("personalInfo")
	}
	for _, field := range []string{"name", "email"} {
		if textutil.Str(pi, field) == "" {
			return errdefs.E(errdefs.ValMissingField, "Required field '%s' is missing from personalInfo", field).
				WithField("personalInfo." + field)
		}
	}
	return nil
}
