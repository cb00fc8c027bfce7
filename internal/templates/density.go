package templates

import "math"

// DensityReport extends the content analysis with whitespace and density
// estimates used by the layout advisor endpoint.
type DensityReport struct {
	*Analysis
	SectionDensity  map[string]float64 `json:"section_density"`
	PageFill        float64            `json:"page_fill"`
	WhitespaceRatio float64            `json:"whitespace_ratio"`
}

// Density derives per-section line share and how much of the final page
// the content fills.
func (a *Analysis) Density() *DensityReport {
	r := &DensityReport{
		Analysis:       a,
		SectionDensity: make(map[string]float64, len(a.Sections)),
	}
	if a.TotalLines == 0 {
		return r
	}
	for name, m := range a.Sections {
		r.SectionDensity[name] = round2(float64(m.EstimatedLines) / float64(a.TotalLines))
	}
	pages := math.Ceil(float64(a.TotalLines) / float64(a.LinesPerPage))
	capacity := pages * float64(a.LinesPerPage)
	r.WhitespaceRatio = round2(1 - float64(a.TotalLines)/capacity)
	lastPageLines := a.TotalLines - int(pages-1)*a.LinesPerPage
	r.PageFill = round2(float64(lastPageLines) / float64(a.LinesPerPage))
	return r
}
