package templates

import "github.com/yungbote/typeset-backend/internal/types"

// ExampleData is the canonical sample payload per document type, served by
// the schema endpoint and written by the CLI's sample command.
func ExampleData(docType types.DocumentType) map[string]any {
	switch docType {
	case types.DocumentTypeCoverLetter:
		return map[string]any{
			"personalInfo": map[string]any{
				"name":     "Jane Doe",
				"email":    "jane.doe@example.com",
				"phone":    "(555) 123-4567",
				"location": "Portland, OR",
			},
			"recipient": map[string]any{
				"name":    "Alex Smith",
				"title":   "Engineering Manager",
				"company": "Acme Corp",
			},
			"body": []any{
				"I am writing to express my interest in the Senior Engineer role at Acme Corp.",
				"Over the past six years I have built and operated high-throughput document services.",
			},
		}
	default:
		return map[string]any{
			"personalInfo": map[string]any{
				"name":     "Jane Doe",
				"email":    "jane.doe@example.com",
				"phone":    "(555) 123-4567",
				"location": "Portland, OR",
				"website":  "https://janedoe.dev",
				"linkedin": "https://linkedin.com/in/janedoe",
			},
			"professionalSummary": "Backend engineer focused on rendering pipelines and high-concurrency services.",
			"experience": []any{
				map[string]any{
					"position":  "Senior Software Engineer",
					"company":   "Acme Corp",
					"location":  "Portland, OR",
					"startDate": "2021-03",
					"endDate":   "Present",
					"achievements": []any{
						"Cut p99 render latency 60% with a content-addressed cache.",
						"Scaled the PDF pipeline to 2k concurrent clients.",
					},
				},
			},
			"education": []any{
				map[string]any{
					"degree":         "B.S. Computer Science",
					"institution":    "Oregon State University",
					"graduationDate": "2018-06",
				},
			},
			"technologiesAndSkills": []any{
				map[string]any{
					"category": "Languages",
					"skills":   []any{"Go", "Python", "SQL"},
				},
			},
		}
	}
}

// JSONSchema is the documented request-data shape per document type.
func JSONSchema(docType types.DocumentType) map[string]any {
	personalInfo := map[string]any{
		"type":     "object",
		"required": []any{"name", "email"},
		"properties": map[string]any{
			"name":     map[string]any{"type": "string"},
			"email":    map[string]any{"type": "string"},
			"phone":    map[string]any{"type": "string"},
			"location": map[string]any{"type": "string"},
			"website":  map[string]any{"type": "string"},
			"linkedin": map[string]any{"type": "string"},
			"github":   map[string]any{"type": "string"},
		},
	}
	if docType == types.DocumentTypeCoverLetter {
		return map[string]any{
			"type":     "object",
			"required": []any{"personalInfo", "body"},
			"properties": map[string]any{
				"personalInfo": personalInfo,
				"recipient": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":    map[string]any{"type": "string"},
						"title":   map[string]any{"type": "string"},
						"company": map[string]any{"type": "string"},
						"address": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					},
				},
				"body": map[string]any{
					"oneOf": []any{
						map[string]any{"type": "string"},
						map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					},
				},
				"salutation": map[string]any{"type": "string"},
				"date":       map[string]any{"type": "string"},
				"closing":    map[string]any{"type": "string"},
			},
		}
	}
	return map[string]any{
		"type":     "object",
		"required": []any{"personalInfo"},
		"properties": map[string]any{
			"personalInfo":          personalInfo,
			"professionalSummary":   map[string]any{"type": "string"},
			"experience":            map[string]any{"type": "array"},
			"education":             map[string]any{"type": "array"},
			"projects":              map[string]any{"type": "array"},
			"achievements":          map[string]any{"type": "array"},
			"certifications":        map[string]any{"type": "array"},
			"technologiesAndSkills": map[string]any{"type": "array"},
			"languages":             map[string]any{"type": "array"},
		},
	}
}
