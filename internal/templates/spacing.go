package templates

import (
	"fmt"

	"github.com/yungbote/typeset-backend/internal/types"
)

// spacingPreset is one layout preset: page margin, body font size, and
// paragraph leading.
type spacingPreset struct {
	MarginCM     float64
	FontPT       float64
	LeadingEM    float64
	LinesPerPage int
}

var spacingPresets = map[types.SpacingMode]spacingPreset{
	types.SpacingNormal:       {MarginCM: 0.8, FontPT: 10, LeadingEM: 0.60, LinesPerPage: 45},
	types.SpacingCompact:      {MarginCM: 0.5, FontPT: 10, LeadingEM: 0.50, LinesPerPage: 52},
	types.SpacingUltraCompact: {MarginCM: 0.4, FontPT: 9.5, LeadingEM: 0.45, LinesPerPage: 58},
}

func presetFor(mode types.SpacingMode) spacingPreset {
	if p, ok := spacingPresets[mode]; ok {
		return p
	}
	return spacingPresets[types.SpacingCompact]
}

// preamble emits the page and text setup for the selected spacing mode.
func preamble(mode types.SpacingMode) string {
	p := presetFor(mode)
	return fmt.Sprintf(`#set page(paper: "us-letter", margin: %.2gcm)
#set text(font: "New Computer Modern", size: %.3gpt)
#set par(leading: %.2fem, justify: false)
#show heading.where(level: 1): it => block(above: 0.8em, below: 0.4em)[
  #text(size: %.3gpt, weight: "bold")[#upper(it.body)]
  #line(length: 100%%, stroke: 0.5pt)
]
`, p.MarginCM, p.FontPT, p.LeadingEM, p.FontPT+2)
}
