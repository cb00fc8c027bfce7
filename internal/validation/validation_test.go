package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/types"
)

func minimalResume() map[string]any {
	return map[string]any{
		"personalInfo": map[string]any{
			"name":  "Jane Doe",
			"email": "jane@example.com",
		},
	}
}

func requireCode(t *testing.T, err error, code errdefs.Code, field string) {
	t.Helper()
	require.Error(t, err)
	te := errdefs.As(err)
	assert.Equal(t, code, te.Code)
	assert.Equal(t, field, te.FieldPath)
}

func TestStandardMissingPersonalInfo(t *testing.T) {
	_, err := Standard(types.DocumentTypeResume, map[string]any{})
	requireCode(t, err, errdefs.ValMissingField, "personalInfo")
}

func TestStandardMissingEmail(t *testing.T) {
	_, err := Standard(types.DocumentTypeResume, map[string]any{
		"personalInfo": map[string]any{"name": "A"},
	})
	requireCode(t, err, errdefs.ValMissingField, "personalInfo.email")
}

func TestStandardPersonalInfoWrongType(t *testing.T) {
	_, err := Standard(types.DocumentTypeResume, map[string]any{"personalInfo": "nope"})
	requireCode(t, err, errdefs.ValInvalidType, "personalInfo")
}

func TestStandardDateShapes(t *testing.T) {
	for _, good := range []string{"2021-03", "2021-03-01", "03-2021", "03-01-2021", "", "Present", "present", "ONGOING"} {
		data := minimalResume()
		data["experience"] = []any{map[string]any{"position": "X", "startDate": good}}
		_, err := Standard(types.DocumentTypeResume, data)
		assert.NoError(t, err, "date %q should be accepted", good)
	}

	data := minimalResume()
	data["experience"] = []any{
		map[string]any{"position": "X", "startDate": "2021-03"},
		map[string]any{"position": "Y", "endDate": "March 2021"},
	}
	_, err := Standard(types.DocumentTypeResume, data)
	requireCode(t, err, errdefs.ValInvalidDate, "experience[1].endDate")
}

func TestStandardEducationGraduationDate(t *testing.T) {
	data := minimalResume()
	data["education"] = []any{map[string]any{"degree": "BS", "graduationDate": "13/2020"}}
	_, err := Standard(types.DocumentTypeResume, data)
	requireCode(t, err, errdefs.ValInvalidDate, "education[0].graduationDate")
}

func TestStandardTitleAlias(t *testing.T) {
	data := minimalResume()
	data["experience"] = []any{map[string]any{"title": "Engineer"}}
	out, err := Standard(types.DocumentTypeResume, data)
	require.NoError(t, err)
	exp := out["experience"].([]any)[0].(map[string]any)
	assert.Equal(t, "Engineer", exp["position"])
	// Input is not mutated.
	orig := data["experience"].([]any)[0].(map[string]any)
	_, has := orig["position"]
	assert.False(t, has)
}

func TestStandardCoverLetterBodyRequired(t *testing.T) {
	_, err := Standard(types.DocumentTypeCoverLetter, minimalResume())
	requireCode(t, err, errdefs.ValMissingField, "body")

	data := minimalResume()
	data["body"] = []any{"P1", "P2"}
	_, err = Standard(types.DocumentTypeCoverLetter, data)
	assert.NoError(t, err)

	data["body"] = 42
	_, err = Standard(types.DocumentTypeCoverLetter, data)
	requireCode(t, err, errdefs.ValInvalidType, "body")
}

func TestUltraEmailNormalization(t *testing.T) {
	data := minimalResume()
	data["personalInfo"].(map[string]any)["email"] = "  Jane.Doe@Example.COM "
	res := Ultra(types.DocumentTypeResume, data, false)
	require.True(t, res.Valid)
	assert.Equal(t, "jane.doe@example.com", res.Data["personalInfo"].(map[string]any)["email"])
}

func TestUltraInvalidEmail(t *testing.T) {
	data := minimalResume()
	data["personalInfo"].(map[string]any)["email"] = "not-an-email"
	res := Ultra(types.DocumentTypeResume, data, false)
	assert.False(t, res.Valid)
	require.NotEmpty(t, res.Errors)
	assert.Equal(t, errdefs.ValInvalidEmail, res.Errors[0].Code)
	assert.Error(t, res.Err())
}

func TestUltraURLSchemeFixup(t *testing.T) {
	data := minimalResume()
	pi := data["personalInfo"].(map[string]any)
	pi["website"] = "janedoe.dev"
	pi["linkedin"] = "https://linkedin.com/in/janedoe"
	res := Ultra(types.DocumentTypeResume, data, false)
	require.True(t, res.Valid)
	out := res.Data["personalInfo"].(map[string]any)
	assert.Equal(t, "https://janedoe.dev", out["website"])
	assert.Equal(t, "https://linkedin.com/in/janedoe", out["linkedin"])
	// The fixup is a warning, not an error.
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, errdefs.ValInvalidURL, res.Warnings[0].Code)
	assert.Equal(t, "personalInfo.website", res.Warnings[0].Field)
}

func TestUltraStrictFailsOnWarnings(t *testing.T) {
	data := minimalResume()
	data["personalInfo"].(map[string]any)["website"] = "janedoe.dev"
	assert.True(t, Ultra(types.DocumentTypeResume, data, false).Valid)
	assert.False(t, Ultra(types.DocumentTypeResume, data, true).Valid)
}

func TestUltraCollectsAllIssues(t *testing.T) {
	data := map[string]any{
		"personalInfo": map[string]any{"name": "", "email": "bad"},
		"experience":   []any{map[string]any{"position": "X", "startDate": "someday"}},
	}
	res := Ultra(types.DocumentTypeResume, data, false)
	assert.False(t, res.Valid)
	assert.GreaterOrEqual(t, len(res.Errors), 3)
}

func TestUltraPresentSynonyms(t *testing.T) {
	data := minimalResume()
	data["experience"] = []any{map[string]any{"position": "X", "endDate": "current"}}
	res := Ultra(types.DocumentTypeResume, data, false)
	require.True(t, res.Valid)
	exp := res.Data["experience"].([]any)[0].(map[string]any)
	assert.Equal(t, "Present", exp["endDate"])
}

func TestUltraPhoneNormalization(t *testing.T) {
	data := minimalResume()
	data["personalInfo"].(map[string]any)["phone"] = "555.123.4567"
	res := Ultra(types.DocumentTypeResume, data, false)
	require.True(t, res.Valid)
	assert.Equal(t, "(555) 123-4567", res.Data["personalInfo"].(map[string]any)["phone"])
}

func TestUltraMarkupInjection(t *testing.T) {
	data := minimalResume()
	data["professionalSummary"] = `engineer #eval("danger")`
	res := Ultra(types.DocumentTypeResume, data, false)
	assert.False(t, res.Valid)
	found := false
	for _, iss := range res.Errors {
		if iss.Code == errdefs.SecMaliciousInput {
			found = true
			assert.Equal(t, "professionalSummary", iss.Field)
		}
	}
	assert.True(t, found)
}

// Standard validation always accepts ultra validation's output.
func TestStandardAcceptsUltraOutput(t *testing.T) {
	data := map[string]any{
		"personalInfo": map[string]any{
			"name":    "Jane",
			"email":   " Jane@Example.com ",
			"website": "janedoe.dev",
		},
		"experience": []any{
			map[string]any{"title": "Engineer", "startDate": "2020-01", "endDate": "now"},
		},
	}
	res := Ultra(types.DocumentTypeResume, data, false)
	require.True(t, res.Valid)
	_, err := Standard(types.DocumentTypeResume, res.Data)
	assert.NoError(t, err)
}
