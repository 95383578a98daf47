package scores

import (
	"time"

	"github.com/google/uuid"

	"careerarchitect/internal/ats"
)

// Score is a persisted ATS result for a resume or an enhanced resume.
// Scores are append-only.
type Score struct {
	ID              string         `json:"id"`
	ResumeID        string         `json:"resume_id"`
	UserID          string         `json:"user_id"`
	OverallScore    int            `json:"overall_score"`
	KeywordScore    int            `json:"keyword_score"`
	FormattingScore int            `json:"formatting_score"`
	SectionScore    int            `json:"section_score"`
	Details         map[string]any `json:"details"`
	CreatedAt       time.Time      `json:"created_at"`
}

// New stamps an ats.Result with identity for persistence.
func New(resumeID, userID string, res ats.Result) Score {
	return Score{
		ID:              uuid.NewString(),
		ResumeID:        resumeID,
		UserID:          userID,
		OverallScore:    res.OverallScore,
		KeywordScore:    res.KeywordScore,
		FormattingScore: res.FormattingScore,
		SectionScore:    res.SectionScore,
		Details:         res.Details.Map(),
		CreatedAt:       time.Now().UTC(),
	}
}
