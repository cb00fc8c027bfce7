package types

import "strings"

type DocumentType string

const (
	DocumentTypeResume      DocumentType = "resume"
	DocumentTypeCoverLetter DocumentType = "cover_letter"
)

func (d DocumentType) Valid() bool {
	return d == DocumentTypeResume || d == DocumentTypeCoverLetter
}

func DocumentTypes() []DocumentType {
	return []DocumentType{DocumentTypeResume, DocumentTypeCoverLetter}
}

type OutputFormat string

const (
	FormatPDF   OutputFormat = "pdf"
	FormatTypst OutputFormat = "typst"
	FormatDOCX  OutputFormat = "docx"
)

// NormalizeFormat lowercases and defaults to pdf.
func NormalizeFormat(s string) (OutputFormat, bool) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPDF:
		return FormatPDF, true
	case FormatTypst:
		return FormatTypst, true
	case FormatDOCX:
		return FormatDOCX, true
	default:
		return "", false
	}
}

func (f OutputFormat) Extension() string {
	switch f {
	case FormatTypst:
		return "typ"
	case FormatDOCX:
		return "docx"
	default:
		return "pdf"
	}
}

func (f OutputFormat) ContentType() string {
	switch f {
	case FormatTypst:
		return "text/plain; charset=utf-8"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/pdf"
	}
}

type SpacingMode string

const (
	SpacingNormal       SpacingMode = "normal"
	SpacingCompact      SpacingMode = "compact"
	SpacingUltraCompact SpacingMode = "ultra-compact"
)

func NormalizeSpacing(s string) (SpacingMode, bool) {
	switch SpacingMode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return SpacingCompact, true
	case SpacingNormal:
		return SpacingNormal, true
	case SpacingCompact:
		return SpacingCompact, true
	case SpacingUltraCompact:
		return SpacingUltraCompact, true
	default:
		return "", false
	}
}

// DocumentRequest is the client's work order for one document.
type DocumentRequest struct {
	DocumentType    DocumentType   `json:"document_type" binding:"required"`
	Template        string         `json:"template" binding:"required"`
	Format          OutputFormat   `json:"format"`
	Data            map[string]any `json:"data" binding:"required"`
	UltraValidation bool           `json:"ultra_validation"`
	SpacingMode     SpacingMode    `json:"spacing_mode"`
}

// YAMLDocumentRequest is the /generate-yaml body: identical except data
// arrives as YAML text.
type YAMLDocumentRequest struct {
	DocumentType    DocumentType `json:"document_type" binding:"required"`
	Template        string       `json:"template" binding:"required"`
	Format          OutputFormat `json:"format"`
	Data            string       `json:"data" binding:"required"`
	UltraValidation bool         `json:"ultra_validation"`
	SpacingMode     SpacingMode  `json:"spacing_mode"`
}

// Filename derives the download filename: document type plus the person's
// name with spaces replaced by underscores.
func Filename(docType DocumentType, data map[string]any, format OutputFormat) string {
	name := "output"
	if pi, ok := data["personalInfo"].(map[string]any); ok {
		if n, ok := pi["name"].(string); ok && n != "" {
			name = n
		}
	}
	return string(docType) + "_" + strings.ReplaceAll(name, " ", "_") + "." + format.Extension()
}
