// Package templates holds the template registry and the per-template
// helpers that turn structured document data into Typst markup.
package templates

import (
	"github.com/yungbote/typeset-backend/internal/types"
)

// Config is the per-request template configuration.
type Config struct {
	SpacingMode types.SpacingMode
}

// Template is the contract every helper implements. Helpers are
// constructed per request, are stateless after construction, and Render is
// a pure function of data and config. Render never fails for
// optional-but-missing data; such sections are omitted.
type Template interface {
	ValidateData() error
	Render() (string, error)
	RequiredFields() []string
	Type() types.DocumentType
}

// Analyzer is implemented by helpers that can report content metrics
// without rendering.
type Analyzer interface {
	AnalyzeDocument() *Analysis
}

// Constructor builds a helper for one request.
type Constructor func(data map[string]any, cfg Config) Template

// resolveSpacing reads the spacing mode from, in order: config, the
// data payload's spacing_mode, its spacingMode alias, default compact.
func resolveSpacing(cfg Config, data map[string]any) types.SpacingMode {
	if cfg.SpacingMode != "" {
		if mode, ok := types.NormalizeSpacing(string(cfg.SpacingMode)); ok {
			return mode
		}
	}
	for _, key := range []string{"spacing_mode", "spacingMode"} {
		if s, ok := data[key].(string); ok && s != "" {
			if mode, ok := types.NormalizeSpacing(s); ok {
				return mode
			}
		}
	}
	return types.SpacingCompact
}
