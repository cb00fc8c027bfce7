package templates

import (
	"fmt"
	"strings"

	"github.com/yungbote/typeset-backend/internal/textutil"
)

// Section emitters. Each returns the section body, or the empty string when
// the data holds nothing for it; the caller decides whether a heading is
// emitted. Every textual leaf passes through textutil.Escape; link targets
// stay raw.

func section(title, body string) string {
	if body == "" {
		return ""
	}
	return "= " + title + "\n" + body + "\n\n"
}

func typstLink(url, display string) string {
	if display == "" {
		display = url
	}
	return fmt.Sprintf(`#link("%s")[%s]`, url, textutil.Escape(display))
}

func contactParts(pi map[string]any) []string {
	var parts []string
	if loc := textutil.Str(pi, "location"); loc != "" {
		parts = append(parts, textutil.Escape(loc))
	}
	if email := textutil.Str(pi, "email"); email != "" {
		parts = append(parts, typstLink("mailto:"+email, email))
	}
	if phone := textutil.Str(pi, "phone"); phone != "" {
		parts = append(parts, typstLink("tel:"+strings.ReplaceAll(phone, " ", ""), phone))
	}
	for _, key := range []string{"website", "linkedin", "github", "twitter", "x"} {
		url := textutil.Str(pi, key)
		if url == "" {
			continue
		}
		display := textutil.Str(pi, key+"_display")
		parts = append(parts, typstLink(url, display))
	}
	return parts
}

func renderContactHeader(pi map[string]any) string {
	name := textutil.Str(pi, "name")
	var sb strings.Builder
	sb.WriteString("#align(center)[\n")
	sb.WriteString(fmt.Sprintf("  #text(size: 18pt, weight: \"bold\")[%s]\n", textutil.Escape(name)))
	if parts := contactParts(pi); len(parts) > 0 {
		sb.WriteString("  #v(2pt)\n")
		sb.WriteString("  " + strings.Join(parts, " | ") + "\n")
	}
	sb.WriteString("]\n\n")
	return sb.String()
}

func renderSummary(data map[string]any) string {
	s := textutil.FieldWithFallback(data, "professionalSummary", []string{"summary", "objective"}, "")
	if s == "" {
		return ""
	}
	return textutil.Escape(s)
}

func listWithFallback(obj map[string]any, keys ...string) []string {
	for _, k := range keys {
		if obj == nil {
			return nil
		}
		if items := textutil.StringSlice(obj[k]); len(items) > 0 {
			return items
		}
	}
	return nil
}

func dateRange(entry map[string]any) string {
	start := textutil.FieldWithFallback(entry, "startDate", []string{"start_date"}, "")
	end := textutil.FieldWithFallback(entry, "endDate", []string{"end_date"}, "")
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start + " -- Present"
	default:
		return start + " -- " + end
	}
}

func entryLine(left, dates string) string {
	if dates == "" {
		return left
	}
	return left + " #h(1fr) _" + textutil.Escape(dates) + "_"
}

func renderExperience(data map[string]any) string {
	entries := textutil.Slice(data, "experience")
	var blocks []string
	for _, raw := range entries {
		exp, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		title := textutil.FieldWithFallback(exp, "position", []string{"title", "role"}, "")
		company := textutil.FieldWithFallback(exp, "company", []string{"employer", "organization"}, "")
		if title == "" && company == "" {
			continue
		}
		left := "*" + textutil.Escape(title) + "*"
		if title == "" {
			left = "*" + textutil.Escape(company) + "*"
		} else if company != "" {
			left += ", " + textutil.Escape(company)
		}
		lines := []string{entryLine(left, dateRange(exp))}
		if loc := textutil.Str(exp, "location"); loc != "" {
			lines = append(lines, textutil.Escape(loc))
		}
		for _, ach := range listWithFallback(exp, "achievements", "highlights", "responsibilities") {
			lines = append(lines, "- "+textutil.Escape(ach))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func renderEducation(data map[string]any) string {
	entries := textutil.Slice(data, "education")
	var blocks []string
	for _, raw := range entries {
		edu, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		degree := textutil.FieldWithFallback(edu, "degree", []string{"name", "program"}, "")
		inst := textutil.FieldWithFallback(edu, "institution", []string{"school", "university"}, "")
		if degree == "" && inst == "" {
			continue
		}
		left := "*" + textutil.Escape(degree) + "*"
		if degree == "" {
			left = "*" + textutil.Escape(inst) + "*"
		} else if inst != "" {
			left += " -- " + textutil.Escape(inst)
		}
		dates := textutil.FieldWithFallback(edu, "graduationDate", []string{"endDate", "end_date"}, "")
		if dates == "" {
			dates = dateRange(edu)
		}
		lines := []string{entryLine(left, dates)}
		if focus := textutil.Str(edu, "focus"); focus != "" {
			lines = append(lines, "- *Focus:* "+textutil.Escape(focus))
		}
		if gpa := textutil.Str(edu, "gpa"); gpa != "" {
			lines = append(lines, "- *GPA:* "+textutil.Escape(gpa))
		}
		if courses := listWithFallback(edu, "notableCourseWorks", "courses"); len(courses) > 0 {
			lines = append(lines, "- *Courses:* "+escapeJoin(courses, ", "))
		}
		if projects := listWithFallback(edu, "projects"); len(projects) > 0 {
			lines = append(lines, "- *Projects:* "+escapeJoin(projects, ", "))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func renderProjects(data map[string]any) string {
	entries := textutil.Slice(data, "projects")
	var blocks []string
	for _, raw := range entries {
		proj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name := textutil.FieldWithFallback(proj, "name", []string{"title"}, "")
		if name == "" {
			continue
		}
		left := "*" + textutil.Escape(name) + "*"
		if url := textutil.FieldWithFallback(proj, "url", []string{"link", "repository"}, ""); url != "" {
			left += " " + typstLink(url, textutil.Str(proj, "url_display"))
		}
		var desc string
		switch d := proj["description"].(type) {
		case string:
			desc = d
		case []any:
			desc = strings.Join(textutil.StringSlice(d), ", ")
		}
		if desc != "" {
			left += " -- _" + textutil.Escape(desc) + "_"
		}
		lines := []string{left}
		if tools := listWithFallback(proj, "tools", "technologies"); len(tools) > 0 {
			lines = append(lines, "- *Tools:* "+escapeJoin(tools, ", "))
		}
		for _, ach := range listWithFallback(proj, "achievements", "highlights") {
			lines = append(lines, "- "+textutil.Escape(ach))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func renderPublications(data map[string]any) string {
	entries := textutil.Slice(data, "articlesAndPublications")
	if len(entries) == 0 {
		entries = textutil.Slice(data, "publications")
	}
	var lines []string
	for _, raw := range entries {
		switch pub := raw.(type) {
		case string:
			if pub != "" {
				lines = append(lines, "- "+textutil.Escape(pub))
			}
		case map[string]any:
			title := textutil.Str(pub, "title")
			if title == "" {
				continue
			}
			line := "- *" + textutil.Escape(title) + "*"
			if venue := textutil.FieldWithFallback(pub, "venue", []string{"publisher", "journal"}, ""); venue != "" {
				line += ", " + textutil.Escape(venue)
			}
			if date := textutil.Str(pub, "date"); date != "" {
				line += " -- " + textutil.Escape(date)
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func renderAchievements(data map[string]any) string {
	items := listWithFallback(data, "achievements", "awards")
	var lines []string
	for _, item := range items {
		lines = append(lines, "- "+textutil.Escape(item))
	}
	return strings.Join(lines, "\n")
}

func renderCertifications(data map[string]any) string {
	entries := textutil.Slice(data, "certifications")
	var lines []string
	for _, raw := range entries {
		switch cert := raw.(type) {
		case string:
			if cert != "" {
				lines = append(lines, "- "+textutil.Escape(cert))
			}
		case map[string]any:
			name := textutil.FieldWithFallback(cert, "name", []string{"title"}, "")
			if name == "" {
				continue
			}
			line := "- " + textutil.Escape(name)
			if issuer := textutil.Str(cert, "issuer"); issuer != "" {
				line += " (" + textutil.Escape(issuer) + ")"
			}
			if date := textutil.Str(cert, "date"); date != "" {
				line += " -- " + textutil.Escape(date)
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func renderSkills(data map[string]any) string {
	raw, ok := data["technologiesAndSkills"]
	if !ok {
		raw, ok = data["skills"]
	}
	if !ok {
		return ""
	}
	entries, isList := raw.([]any)
	if !isList || len(entries) == 0 {
		return ""
	}
	// Flat list of strings renders as one comma-joined line; categorized
	// entries render one line per category.
	if _, flat := entries[0].(string); flat {
		return escapeJoin(textutil.StringSlice(raw), ", ")
	}
	var lines []string
	for _, item := range entries {
		cat, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name := textutil.FieldWithFallback(cat, "category", []string{"name"}, "")
		skills := listWithFallback(cat, "skills", "items")
		if name == "" && len(skills) == 0 {
			continue
		}
		if name == "" {
			lines = append(lines, escapeJoin(skills, ", "))
			continue
		}
		lines = append(lines, "*"+textutil.Escape(name)+":* "+escapeJoin(skills, ", "))
	}
	return strings.Join(lines, "\n\n")
}

func renderLanguages(data map[string]any) string {
	entries := textutil.Slice(data, "languages")
	var parts []string
	for _, raw := range entries {
		switch lang := raw.(type) {
		case string:
			if lang != "" {
				parts = append(parts, textutil.Escape(lang))
			}
		case map[string]any:
			name := textutil.FieldWithFallback(lang, "language", []string{"name"}, "")
			if name == "" {
				continue
			}
			if prof := textutil.FieldWithFallback(lang, "proficiency", []string{"level"}, ""); prof != "" {
				parts = append(parts, textutil.Escape(name)+" ("+textutil.Escape(prof)+")")
			} else {
				parts = append(parts, textutil.Escape(name))
			}
		}
	}
	return strings.Join(parts, ", ")
}

func escapeJoin(items []string, sep string) string {
	escaped := make([]string, len(items))
	for i, item := range items {
		escaped[i] = textutil.Escape(item)
	}
	return strings.Join(escaped, sep)
}
