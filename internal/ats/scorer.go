package ats

import (
	"regexp"
	"strings"

	"careerarchitect/internal/sections"
)

// Keywords is the fixed list matched against resume text. Order is stable so
// matched_keywords in Details is deterministic.
var Keywords = []string{
	"python", "javascript", "react", "node", "sql",
	"aws", "docker", "kubernetes", "git", "agile", "scrum", "ci/cd",
	"leadership", "communication", "teamwork", "problem-solving",
	"bachelor", "master", "degree", "certified", "manager", "engineer",
}

// RequiredSections must appear (as substrings) in section names.
var RequiredSections = []string{"experience", "education", "skills"}

const (
	keywordWeight    = 40
	sectionWeight    = 40
	formattingWeight = 20
	minLines         = 5
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// Result holds the composite score and its parts. All scores are in [0,100].
type Result struct {
	OverallScore    int     `json:"overall_score"`
	KeywordScore    int     `json:"keyword_score"`
	FormattingScore int     `json:"formatting_score"`
	SectionScore    int     `json:"section_score"`
	Details         Details `json:"details"`
}

// Details explains which signals contributed to the score.
type Details struct {
	KeywordMatches      int      `json:"keyword_matches"`
	TotalKeywords       int      `json:"total_keywords"`
	MatchedKeywords     []string `json:"matched_keywords"`
	HasEmail            bool     `json:"has_email"`
	HasPhone            bool     `json:"has_phone"`
	HasConsistentFormat bool     `json:"has_consistent_format"`
	SectionsFound       []string `json:"sections_found"`
}

// Map returns the details as a free-form map for persistence.
func (d Details) Map() map[string]any {
	return map[string]any{
		"keyword_matches":       d.KeywordMatches,
		"total_keywords":        d.TotalKeywords,
		"matched_keywords":      d.MatchedKeywords,
		"has_email":             d.HasEmail,
		"has_phone":             d.HasPhone,
		"has_consistent_format": d.HasConsistentFormat,
		"sections_found":        d.SectionsFound,
	}
}

// Score computes the ATS score of text and its parsed sections.
// Every division truncates; overall is floor(0.4k + 0.4s + 0.2f).
func Score(text string, parsed []sections.Section) Result {
	lower := strings.ToLower(text)

	matched := make([]string, 0, len(Keywords))
	for _, kw := range Keywords {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	keywordScore := percent(len(matched), len(Keywords))

	names := make([]string, 0, len(parsed))
	for _, s := range parsed {
		names = append(names, strings.ToLower(s.Name))
	}
	sectionHits := 0
	for _, req := range RequiredSections {
		for _, name := range names {
			if strings.Contains(name, req) {
				sectionHits++
				break
			}
		}
	}
	sectionScore := percent(sectionHits, len(RequiredSections))

	hasEmail := emailPattern.MatchString(text)
	hasPhone := phonePattern.MatchString(text)
	hasFormat := len(strings.Split(text, "\n")) > minLines
	signals := 0
	for _, ok := range []bool{hasEmail, hasPhone, hasFormat} {
		if ok {
			signals++
		}
	}
	formattingScore := percent(signals, 3)

	overall := (keywordScore*keywordWeight + sectionScore*sectionWeight + formattingScore*formattingWeight) / 100

	return Result{
		OverallScore:    overall,
		KeywordScore:    keywordScore,
		FormattingScore: formattingScore,
		SectionScore:    sectionScore,
		Details: Details{
			KeywordMatches:      len(matched),
			TotalKeywords:       len(Keywords),
			MatchedKeywords:     matched,
			HasEmail:            hasEmail,
			HasPhone:            hasPhone,
			HasConsistentFormat: hasFormat,
			SectionsFound:       sections.Names(parsed),
		},
	}
}

func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	p := 100 * n / total
	if p > 100 {
		return 100
	}
	return p
}
