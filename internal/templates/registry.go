package templates

import (
	"sort"
	"strings"

	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/types"
)

// TemplateInfo is one registry row.
type TemplateInfo struct {
	Name           string             `json:"name"`
	DocumentType   types.DocumentType `json:"document_type"`
	Description    string             `json:"description"`
	RequiredFields []string           `json:"required_fields"`
	New            Constructor        `json:"-"`
}

// registry is the static template table. Immutable after init; no locking.
var registry = map[types.DocumentType]map[string]TemplateInfo{
	types.DocumentTypeResume: {
		"classic": {
			Name:           "classic",
			DocumentType:   types.DocumentTypeResume,
			Description:    "Single-column resume with ruled section headers",
			RequiredFields: []string{"personalInfo"},
			New:            NewClassicResume,
		},
		"two_column": {
			Name:           "two_column",
			DocumentType:   types.DocumentTypeResume,
			Description:    "Two-column resume with a dark sidebar for contact, skills, and credentials",
			RequiredFields: []string{"personalInfo"},
			New:            NewTwoColumnResume,
		},
	},
	types.DocumentTypeCoverLetter: {
		"classic": {
			Name:           "classic",
			DocumentType:   types.DocumentTypeCoverLetter,
			Description:    "Traditional business-letter layout",
			RequiredFields: []string{"personalInfo", "body"},
			New:            NewClassicCoverLetter,
		},
		"modern": {
			Name:           "modern",
			DocumentType:   types.DocumentTypeCoverLetter,
			Description:    "Business letter with an accent rule under the header",
			RequiredFields: []string{"personalInfo", "body"},
			New:            NewModernCoverLetter,
		},
	},
}

// List returns template names per document type, sorted. A zero docType
// lists everything.
func List(docType types.DocumentType) map[types.DocumentType][]string {
	out := make(map[types.DocumentType][]string)
	for dt, byName := range registry {
		if docType != "" && dt != docType {
			continue
		}
		names := make([]string, 0, len(byName))
		for name := range byName {
			names = append(names, name)
		}
		sort.Strings(names)
		out[dt] = names
	}
	return out
}

// Get resolves a registry row, or a TPL001 error carrying the available
// names for the document type.
func Get(docType types.DocumentType, name string) (TemplateInfo, error) {
	byName, ok := registry[docType]
	if !ok {
		return TemplateInfo{}, errdefs.E(errdefs.TplNotFound, "Document type '%s' is not supported", docType).
			WithContext("available_types", joinTypes())
	}
	info, ok := byName[name]
	if !ok {
		return TemplateInfo{}, errdefs.E(errdefs.TplNotFound, "Template '%s' not found for %s", name, docType).
			WithContext("available_templates", strings.Join(List(docType)[docType], ", "))
	}
	return info, nil
}

// HelperOf resolves the constructor for (docType, name).
func HelperOf(docType types.DocumentType, name string) (Constructor, error) {
	info, err := Get(docType, name)
	if err != nil {
		return nil, err
	}
	return info.New, nil
}

func joinTypes() string {
	names := make([]string, 0, len(registry))
	for dt := range registry {
		names = append(names, string(dt))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
