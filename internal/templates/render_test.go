package templates

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/types"
)

func resumeData() map[string]any {
	return map[string]any{
		"personalInfo": map[string]any{
			"name":     "Jane & Doe",
			"email":    "jane@example.com",
			"location": "Portland, OR",
			"website":  "https://janedoe.dev",
		},
		"professionalSummary": "Engineer with 100% focus on rendering_pipelines.",
		"experience": []any{
			map[string]any{
				"position":  "Senior Engineer",
				"company":   "Acme Corp",
				"startDate": "2021-03",
				"achievements": []any{
					"Cut latency by 60%",
					"Shipped #1 internal tool",
				},
			},
		},
		"education": []any{
			map[string]any{
				"degree":         "B.S. Computer Science",
				"institution":    "OSU",
				"graduationDate": "2018-06",
			},
		},
		"technologiesAndSkills": []any{
			map[string]any{"category": "Languages", "skills": []any{"Go", "C#"}},
		},
	}
}

func TestClassicRenderNonEmpty(t *testing.T) {
	helper := NewClassicResume(resumeData(), Config{})
	out, err := helper.Render()
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "= Experience")
	assert.Contains(t, out, "= Education")
	assert.Contains(t, out, "Senior Engineer")
	assert.Contains(t, out, "Acme Corp")
}

func TestClassicRenderEscapesLeaves(t *testing.T) {
	helper := NewClassicResume(resumeData(), Config{})
	out, err := helper.Render()
	require.NoError(t, err)
	assert.Contains(t, out, `rendering\_pipelines`)
	assert.Contains(t, out, `Shipped \#1 internal tool`)
	assert.Contains(t, out, `C\#`)
}

func TestClassicRenderLinks(t *testing.T) {
	helper := NewClassicResume(resumeData(), Config{})
	out, err := helper.Render()
	require.NoError(t, err)
	// Target stays raw, display text is escaped.
	assert.Contains(t, out, `#link("https://janedoe.dev")`)
	assert.Contains(t, out, `#link("mailto:jane@example.com")[jane\@example.com]`)
}

func TestClassicOmitsEmptySections(t *testing.T) {
	data := resumeData()
	out1, err := NewClassicResume(data, Config{}).Render()
	require.NoError(t, err)
	assert.NotContains(t, out1, "= Projects")
	assert.NotContains(t, out1, "= Certifications")

	// An explicitly empty list renders identically to an absent key.
	data2 := resumeData()
	data2["projects"] = []any{}
	out2, err := NewClassicResume(data2, Config{}).Render()
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
}

func TestClassicMissingRequired(t *testing.T) {
	helper := NewClassicResume(map[string]any{"personalInfo": map[string]any{"name": "A"}}, Config{})
	_, err := helper.Render()
	require.Error(t, err)
	te := errdefs.As(err)
	assert.Equal(t, errdefs.ValMissingField, te.Code)
	assert.Equal(t, "personalInfo.email", te.FieldPath)
	// ValidateData is idempotent.
	assert.Equal(t, helper.ValidateData(), helper.ValidateData())
}

func TestSpacingPreambles(t *testing.T) {
	cases := []struct {
		mode    types.SpacingMode
		margin  string
		font    string
		leading string
	}{
		{types.SpacingNormal, "margin: 0.8cm", "size: 10pt", "leading: 0.60em"},
		{types.SpacingCompact, "margin: 0.5cm", "size: 10pt", "leading: 0.50em"},
		{types.SpacingUltraCompact, "margin: 0.4cm", "size: 9.5pt", "leading: 0.45em"},
	}
	for _, tc := range cases {
		out, err := NewClassicResume(resumeData(), Config{SpacingMode: tc.mode}).Render()
		require.NoError(t, err)
		assert.Contains(t, out, tc.margin, "mode %s", tc.mode)
		assert.Contains(t, out, tc.font, "mode %s", tc.mode)
		assert.Contains(t, out, tc.leading, "mode %s", tc.mode)
	}
}

func TestSpacingResolutionOrder(t *testing.T) {
	data := resumeData()
	data["spacing_mode"] = "ultra-compact"
	// Config wins over data.
	out, err := NewClassicResume(data, Config{SpacingMode: types.SpacingNormal}).Render()
	require.NoError(t, err)
	assert.Contains(t, out, "margin: 0.8cm")

	// Data key applies when config is silent.
	out, err = NewClassicResume(data, Config{}).Render()
	require.NoError(t, err)
	assert.Contains(t, out, "margin: 0.4cm")

	// spacingMode alias.
	data2 := resumeData()
	data2["spacingMode"] = "normal"
	out, err = NewClassicResume(data2, Config{}).Render()
	require.NoError(t, err)
	assert.Contains(t, out, "margin: 0.8cm")

	// Default is compact.
	out, err = NewClassicResume(resumeData(), Config{}).Render()
	require.NoError(t, err)
	assert.Contains(t, out, "margin: 0.5cm")
}

func TestExperienceAliasFallbacks(t *testing.T) {
	data := resumeData()
	data["experience"] = []any{
		map[string]any{"role": "Contractor", "employer": "Beta LLC", "end_date": "2020-01"},
	}
	out, err := NewClassicResume(data, Config{}).Render()
	require.NoError(t, err)
	assert.Contains(t, out, "Contractor")
	assert.Contains(t, out, "Beta LLC")
	assert.Contains(t, out, "2020-01")
}

func TestTwoColumnSidebar(t *testing.T) {
	out, err := NewTwoColumnResume(resumeData(), Config{}).Render()
	require.NoError(t, err)
	assert.Contains(t, out, "rgb(45, 55, 72)")
	assert.Contains(t, out, "columns: (32%, 68%)")
	assert.Contains(t, out, "fill: white")
	// Skills live in the sidebar, experience in the main column.
	assert.Contains(t, out, "Languages")
	assert.Contains(t, out, "= Experience")
}

func coverLetterData() map[string]any {
	return map[string]any{
		"personalInfo": map[string]any{
			"name":  "Jane Doe",
			"email": "jane@example.com",
		},
		"recipient": map[string]any{
			"company": "Acme Corp",
		},
		"body": []any{"First paragraph.", "", "Second paragraph."},
	}
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, time.August, 5, 12, 0, 0, 0, time.UTC)
	}
}

func TestCoverLetterArrayBody(t *testing.T) {
	helper := NewClassicCoverLetter(coverLetterData(), Config{}).(*coverLetter)
	helper.now = fixedClock()
	out, err := helper.Render()
	require.NoError(t, err)
	assert.Contains(t, out, "First paragraph.\n\nSecond paragraph.")
}

func TestCoverLetterStringBody(t *testing.T) {
	data := coverLetterData()
	data["body"] = "Para one.\n\nPara two."
	helper := NewClassicCoverLetter(data, Config{}).(*coverLetter)
	helper.now = fixedClock()
	out, err := helper.Render()
	require.NoError(t, err)
	assert.Contains(t, out, "Para one.")
	assert.Contains(t, out, "Para two.")
}

func TestCoverLetterSalutationChain(t *testing.T) {
	base := coverLetterData()

	helper := NewClassicCoverLetter(base, Config{}).(*coverLetter)
	assert.Equal(t, "Dear Hiring Manager at Acme Corp,", helper.salutation())

	data := coverLetterData()
	data["recipient"].(map[string]any)["title"] = "Engineering Manager"
	helper = NewClassicCoverLetter(data, Config{}).(*coverLetter)
	assert.Equal(t, "Dear Engineering Manager,", helper.salutation())

	data["recipient"].(map[string]any)["name"] = "Alex Smith"
	helper = NewClassicCoverLetter(data, Config{}).(*coverLetter)
	assert.Equal(t, "Dear Alex Smith,", helper.salutation())

	data2 := coverLetterData()
	delete(data2, "recipient")
	helper = NewClassicCoverLetter(data2, Config{}).(*coverLetter)
	assert.Equal(t, "Dear Hiring Manager,", helper.salutation())

	data3 := coverLetterData()
	data3["salutation"] = "Hello Team,"
	helper = NewClassicCoverLetter(data3, Config{}).(*coverLetter)
	assert.Equal(t, "Hello Team,", helper.salutation())
}

func TestCoverLetterDefaultDate(t *testing.T) {
	helper := NewClassicCoverLetter(coverLetterData(), Config{}).(*coverLetter)
	helper.now = fixedClock()
	out, err := helper.Render()
	require.NoError(t, err)
	assert.Contains(t, out, "August 5, 2026")

	data := coverLetterData()
	data["date"] = "July 1, 2026"
	helper = NewClassicCoverLetter(data, Config{}).(*coverLetter)
	out, err = helper.Render()
	require.NoError(t, err)
	assert.Contains(t, out, "July 1, 2026")
	assert.NotContains(t, out, "August")
}

func TestCoverLetterMissingBody(t *testing.T) {
	data := coverLetterData()
	data["body"] = []any{"", "   "}
	_, err := NewClassicCoverLetter(data, Config{}).Render()
	require.Error(t, err)
	assert.Equal(t, "body", errdefs.As(err).FieldPath)
}

func TestModernCoverLetterAccent(t *testing.T) {
	classic, err := NewClassicCoverLetter(coverLetterData(), Config{}).Render()
	require.NoError(t, err)
	modern, err := NewModernCoverLetter(coverLetterData(), Config{}).Render()
	require.NoError(t, err)
	assert.NotContains(t, classic, "stroke: 2pt")
	assert.Contains(t, modern, "stroke: 2pt + rgb(45, 55, 72)")
}

func TestLongBodyNotTruncated(t *testing.T) {
	data := coverLetterData()
	long := strings.Repeat("wordy ", 2000)
	data["body"] = long
	helper := NewClassicCoverLetter(data, Config{}).(*coverLetter)
	helper.now = fixedClock()
	out, err := helper.Render()
	require.NoError(t, err)
	assert.Contains(t, out, strings.TrimSpace(long))
}
