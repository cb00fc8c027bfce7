package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFormat(t *testing.T) {
	f, ok := NormalizeFormat("")
	assert.True(t, ok)
	assert.Equal(t, FormatPDF, f)

	f, ok = NormalizeFormat("TYPST")
	assert.True(t, ok)
	assert.Equal(t, FormatTypst, f)

	_, ok = NormalizeFormat("png")
	assert.False(t, ok)
}

func TestNormalizeSpacing(t *testing.T) {
	m, ok := NormalizeSpacing("")
	assert.True(t, ok)
	assert.Equal(t, SpacingCompact, m)

	m, ok = NormalizeSpacing("Ultra-Compact")
	assert.True(t, ok)
	assert.Equal(t, SpacingUltraCompact, m)

	_, ok = NormalizeSpacing("roomy")
	assert.False(t, ok)
}

func TestFilename(t *testing.T) {
	data := map[string]any{"personalInfo": map[string]any{"name": "A B C"}}
	assert.Equal(t, "resume_A_B_C.pdf", Filename(DocumentTypeResume, data, FormatPDF))
	assert.Equal(t, "cover_letter_A_B_C.docx", Filename(DocumentTypeCoverLetter, data, FormatDOCX))
	assert.Equal(t, "resume_output.typ", Filename(DocumentTypeResume, map[string]any{}, FormatTypst))
}

func TestJobStateTerminal(t *testing.T) {
	assert.False(t, JobPending.Terminal())
	assert.False(t, JobRunning.Terminal())
	assert.True(t, JobSuccess.Terminal())
	assert.True(t, JobFailed.Terminal())
	assert.True(t, JobCancelled.Terminal())
}
