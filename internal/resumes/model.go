package resumes

import (
	"time"

	"careerarchitect/internal/sections"
)

// Resume is an uploaded or manually entered resume. Header fields are only
// set for manual resumes; FileName and StorageKey only for uploads.
type Resume struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id"`
	RawText    string             `json:"raw_text"`
	Sections   []sections.Section `json:"sections"`
	FullName   string             `json:"full_name,omitempty"`
	Email      string             `json:"email,omitempty"`
	Phone      string             `json:"phone,omitempty"`
	FileName   string             `json:"file_name,omitempty"`
	StorageKey string             `json:"-"`
	CreatedAt  time.Time          `json:"created_at"`
}

// Enhanced is a provider-rewritten copy of a resume.
type Enhanced struct {
	ID               string             `json:"id"`
	UserID           string             `json:"user_id"`
	OriginalResumeID string             `json:"original_resume_id"`
	EnhancedText     string             `json:"enhanced_text"`
	EnhancedSections []sections.Section `json:"enhanced_sections"`
	EnhancementType  string             `json:"enhancement_type"`
	CreatedAt        time.Time          `json:"created_at"`
}
