package resumes

import (
	"careerarchitect/internal/scores"
	"careerarchitect/internal/sections"
)

const previewRunes = 500

type manualRequest struct {
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	Summary    string `json:"summary"`
	Experience string `json:"experience"`
	Education  string `json:"education"`
	Skills     string `json:"skills"`
}

type enhanceRequest struct {
	ResumeID        string `json:"resume_id" validate:"required"`
	EnhancementType string `json:"enhancement_type"`
}

type uploadResponse struct {
	ResumeID string             `json:"resume_id"`
	Text     string             `json:"text"`
	Sections []sections.Section `json:"sections"`
	ATSScore scores.Score       `json:"ats_score"`
}

type manualResponse struct {
	ResumeID string             `json:"resume_id"`
	Sections []sections.Section `json:"sections"`
	ATSScore scores.Score       `json:"ats_score"`
}

type enhanceResponse struct {
	EnhancedResumeID string             `json:"enhanced_resume_id"`
	EnhancedText     string             `json:"enhanced_text"`
	EnhancedSections []sections.Section `json:"enhanced_sections"`
	NewATSScore      scores.Score       `json:"new_ats_score"`
}

type getResponse struct {
	Resume   Resume        `json:"resume"`
	ATSScore *scores.Score `json:"ats_score"`
}

type generateResponse struct {
	FileData string `json:"file_data"`
	Format   string `json:"format"`
}

type listItem struct {
	ResumeID  string   `json:"resume_id"`
	FullName  string   `json:"full_name,omitempty"`
	FileName  string   `json:"file_name,omitempty"`
	Sections  []string `json:"sections"`
	CreatedAt string   `json:"created_at"`
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewRunes {
		return text
	}
	return string(runes[:previewRunes])
}
