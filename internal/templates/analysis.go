package templates

import (
	"math"
	"sort"
	"strings"

	"github.com/yungbote/typeset-backend/internal/types"
)

// charsPerLine is the estimate used to turn character counts into rendered
// lines; the +2 per section covers the header and surrounding spacing.
const charsPerLine = 75

type SectionMetrics struct {
	Words          int `json:"words"`
	Characters     int `json:"characters"`
	EstimatedLines int `json:"estimated_lines"`
}

type Analysis struct {
	Sections        map[string]SectionMetrics `json:"sections"`
	TotalWords      int                       `json:"total_words"`
	TotalCharacters int                       `json:"total_characters"`
	TotalLines      int                       `json:"total_lines"`
	EstimatedPages  float64                   `json:"estimated_pages"`
	SpacingMode     types.SpacingMode         `json:"spacing_mode"`
	LinesPerPage    int                       `json:"lines_per_page"`
	Recommendations []string                  `json:"recommendations"`
}

var analyzedSections = map[types.DocumentType][]string{
	types.DocumentTypeResume: {
		"professionalSummary", "summary", "experience", "education", "projects",
		"articlesAndPublications", "publications", "achievements",
		"certifications", "technologiesAndSkills", "skills", "languages",
	},
	types.DocumentTypeCoverLetter: {"body", "recipient", "salutation", "closing"},
}

// analyzeData computes per-section and aggregate content metrics plus
// plain-language recommendations.
func analyzeData(data map[string]any, mode types.SpacingMode, docType types.DocumentType) *Analysis {
	a := &Analysis{
		Sections:     make(map[string]SectionMetrics),
		SpacingMode:  mode,
		LinesPerPage: presetFor(mode).LinesPerPage,
	}
	for _, name := range analyzedSections[docType] {
		raw, ok := data[name]
		if !ok {
			continue
		}
		text := collectText(raw)
		if text == "" {
			continue
		}
		m := SectionMetrics{
			Words:      len(strings.Fields(text)),
			Characters: len(text),
		}
		m.EstimatedLines = int(math.Ceil(float64(m.Characters)/charsPerLine)) + 2
		a.Sections[name] = m
		a.TotalWords += m.Words
		a.TotalCharacters += m.Characters
		a.TotalLines += m.EstimatedLines
	}
	a.EstimatedPages = round2(float64(a.TotalLines) / float64(a.LinesPerPage))
	a.Recommendations = recommendations(a, mode)
	return a
}

func recommendations(a *Analysis, mode types.SpacingMode) []string {
	var recs []string
	if a.EstimatedPages > 2 {
		recs = append(recs, "Document is estimated at more than two pages; trim content or switch to a tighter spacing mode.")
	} else if mode == types.SpacingNormal && a.EstimatedPages > 1.5 {
		recs = append(recs, "Document exceeds a page and a half in normal spacing; consider compact mode.")
	}
	if a.TotalWords > 800 {
		recs = append(recs, "Word count is above 800; tighten bullet points to keep the document scannable.")
	}
	return recs
}

// collectText concatenates every string leaf under v with spaces.
func collectText(v any) string {
	var parts []string
	var walk func(any)
	walk = func(v any) {
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				parts = append(parts, s)
			}
		case []any:
			for _, item := range t {
				walk(item)
			}
		case map[string]any:
			for _, key := range sortedKeys(t) {
				walk(t[key])
			}
		}
	}
	walk(v)
	return strings.Join(parts, " ")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Analyze builds the helper for (docType, template) and returns its content
// analysis; helpers that do not implement Analyzer fall back to the shared
// metrics.
func Analyze(docType types.DocumentType, templateName string, data map[string]any, cfg Config) (*Analysis, error) {
	ctor, err := HelperOf(docType, templateName)
	if err != nil {
		return nil, err
	}
	helper := ctor(data, cfg)
	if an, ok := helper.(Analyzer); ok {
		return an.AnalyzeDocument(), nil
	}
	return analyzeData(data, resolveSpacing(cfg, data), docType), nil
}
