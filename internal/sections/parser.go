package sections

import (
	"regexp"
	"strings"
)

// FallbackName is the section emitted when no heading is recognized.
const FallbackName = "Content"

// Section is a named span of resume text.
type Section struct {
	Name    string `json:"section_name"`
	Content string `json:"content"`
}

type rule struct {
	name     string
	keywords []string
	heading  *regexp.Regexp
	stop     *regexp.Regexp
}

// Rules are evaluated in this order and sections are returned in this order.
var rules = buildRules([]struct {
	name     string
	keywords []string
}{
	{name: "Summary", keywords: []string{"PROFESSIONAL SUMMARY", "SUMMARY", "OBJECTIVE"}},
	{name: "Experience", keywords: []string{"WORK EXPERIENCE", "EXPERIENCE", "EMPLOYMENT"}},
	{name: "Education", keywords: []string{"ACADEMIC BACKGROUND", "EDUCATION"}},
	{name: "Skills", keywords: []string{"TECHNICAL SKILLS", "SKILLS", "COMPETENCIES"}},
})

func buildRules(defs []struct {
	name     string
	keywords []string
}) []rule {
	out := make([]rule, 0, len(defs))
	for i, def := range defs {
		var others []string
		for j, other := range defs {
			if i != j {
				others = append(others, other.keywords...)
			}
		}
		out = append(out, rule{
			name:     def.name,
			keywords: def.keywords,
			heading:  regexp.MustCompile(`(?i)\b(?:` + alternation(def.keywords) + `)\b\s*:?\s*`),
			stop:     regexp.MustCompile(`(?i)\b(?:` + alternation(others) + `)\b`),
		})
	}
	return out
}

func alternation(keywords []string) string {
	quoted := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		quoted = append(quoted, strings.ReplaceAll(regexp.QuoteMeta(kw), " ", `\s+`))
	}
	return strings.Join(quoted, "|")
}

// Parse splits text into Summary, Experience, Education and Skills sections.
// Each section starts at the first heading match and ends at a blank line, a
// heading keyword of another section, or the end of text. When no heading
// matches, a single Content section holding the whole input is returned.
func Parse(text string) []Section {
	var out []Section
	for _, r := range rules {
		loc := r.heading.FindStringIndex(text)
		if loc == nil {
			continue
		}
		body := text[loc[1]:]
		end := len(body)
		if idx := strings.Index(body, "\n\n"); idx >= 0 && idx < end {
			end = idx
		}
		if stop := r.stop.FindStringIndex(body); stop != nil && stop[0] < end {
			end = stop[0]
		}
		out = append(out, Section{Name: r.name, Content: strings.TrimSpace(body[:end])})
	}
	if len(out) == 0 {
		return []Section{{Name: FallbackName, Content: text}}
	}
	return out
}

// Names returns the section names in order.
func Names(list []Section) []string {
	names := make([]string, 0, len(list))
	for _, s := range list {
		names = append(names, s.Name)
	}
	return names
}
