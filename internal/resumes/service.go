package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"careerarchitect/internal/ats"
	"careerarchitect/internal/enhance"
	"careerarchitect/internal/extract"
	"careerarchitect/internal/render"
	"careerarchitect/internal/scores"
	"careerarchitect/internal/sections"
	"careerarchitect/internal/shared/metrics"
	"careerarchitect/internal/shared/storage/object"
	"careerarchitect/internal/shared/telemetry"
)

// Enhancer rewrites resume text. The dispatcher never fails.
type Enhancer interface {
	Enhance(ctx context.Context, text string, mode enhance.Mode) enhance.Result
}

// Service runs the extract, parse, score and persist pipeline.
type Service struct {
	Repo     Repo
	Scores   scores.Repo
	Store    object.ObjectStore
	Enhancer Enhancer
}

// Scored pairs a persisted resume with the score computed for it.
type Scored struct {
	Resume Resume
	Score  scores.Score
}

// Upload extracts text from an uploaded PDF or DOCX, keeps the original bytes
// in the object store and persists the resume with its ATS score.
func (s *Service) Upload(ctx context.Context, userID, fileName string, data []byte) (Scored, error) {
	if strings.TrimSpace(userID) == "" {
		return Scored{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	text, err := extract.Text(ctx, data, fileName)
	if err != nil {
		return Scored{}, err
	}

	resume := Resume{
		ID:        uuid.NewString(),
		UserID:    userID,
		RawText:   text,
		Sections:  sections.Parse(text),
		FileName:  fileName,
		CreatedAt: time.Now().UTC(),
	}
	if s.Store != nil {
		obj, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
		if err != nil {
			return Scored{}, fmt.Errorf("store upload: %w", err)
		}
		resume.StorageKey = obj.Key
	}

	out, err := s.persist(ctx, resume)
	if err != nil {
		return Scored{}, err
	}
	metrics.IncResumesUploaded()
	return out, nil
}

// ManualInput holds the structured fields of a hand-entered resume.
type ManualInput struct {
	FullName   string
	Email      string
	Phone      string
	Summary    string
	Experience string
	Education  string
	Skills     string
}

// CreateManual stores a resume built from structured fields. Sections come
// straight from the input; the raw text is a flattened rendering of it.
func (s *Service) CreateManual(ctx context.Context, userID string, in ManualInput) (Scored, error) {
	if strings.TrimSpace(userID) == "" {
		return Scored{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	resume := Resume{
		ID:        uuid.NewString(),
		UserID:    userID,
		RawText:   in.Text(),
		Sections:  in.Sections(),
		FullName:  in.FullName,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: time.Now().UTC(),
	}

	out, err := s.persist(ctx, resume)
	if err != nil {
		return Scored{}, err
	}
	metrics.IncResumesCreated()
	return out, nil
}

// Sections returns the four fixed sections of a manual resume in order.
func (in ManualInput) Sections() []sections.Section {
	return []sections.Section{
		{Name: "Summary", Content: in.Summary},
		{Name: "Experience", Content: in.Experience},
		{Name: "Education", Content: in.Education},
		{Name: "Skills", Content: in.Skills},
	}
}

// Text flattens the input into the raw text stored and scored for it.
func (in ManualInput) Text() string {
	return fmt.Sprintf("%s\n%s\n%s\n\nSummary: %s\n\nExperience: %s\n\nEducation: %s\n\nSkills: %s",
		in.FullName, in.Email, in.Phone, in.Summary, in.Experience, in.Education, in.Skills)
}

func (s *Service) persist(ctx context.Context, resume Resume) (Scored, error) {
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Scored{}, fmt.Errorf("save resume: %w", err)
	}
	score, err := s.score(ctx, resume.ID, resume.UserID, resume.RawText, resume.Sections)
	if err != nil {
		return Scored{}, err
	}
	return Scored{Resume: resume, Score: score}, nil
}

func (s *Service) score(ctx context.Context, targetID, userID, text string, parsed []sections.Section) (scores.Score, error) {
	score := scores.New(targetID, userID, ats.Score(text, parsed))
	if err := s.Scores.Create(ctx, score); err != nil {
		return scores.Score{}, fmt.Errorf("save ats score: %w", err)
	}
	return score, nil
}

// EnhancedScored pairs an enhanced resume with its fresh score.
type EnhancedScored struct {
	Enhanced Enhanced
	Score    scores.Score
}

// Enhance rewrites an owned resume through the configured providers, then
// re-parses and re-scores the result. Provider failures degrade to the
// original text and never surface here.
func (s *Service) Enhance(ctx context.Context, userID, resumeID, rawMode string) (EnhancedScored, error) {
	resume, err := s.owned(ctx, userID, resumeID)
	if err != nil {
		return EnhancedScored{}, err
	}

	res := s.Enhancer.Enhance(ctx, resume.RawText, enhance.ParseMode(rawMode))
	enhanced := Enhanced{
		ID:               uuid.NewString(),
		UserID:           userID,
		OriginalResumeID: resume.ID,
		EnhancedText:     res.Text,
		EnhancedSections: sections.Parse(res.Text),
		EnhancementType:  string(res.Mode),
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.Repo.CreateEnhanced(ctx, enhanced); err != nil {
		return EnhancedScored{}, fmt.Errorf("save enhanced resume: %w", err)
	}

	score, err := s.score(ctx, enhanced.ID, userID, enhanced.EnhancedText, enhanced.EnhancedSections)
	if err != nil {
		return EnhancedScored{}, err
	}
	metrics.IncEnhancements()

	failed := make([]string, 0, len(res.Attempts))
	for _, a := range res.Attempts {
		if !a.OK() {
			failed = append(failed, a.Provider)
		}
	}
	telemetry.Info("resume.enhanced", map[string]any{
		"resume_id":        resume.ID,
		"enhanced_id":      enhanced.ID,
		"mode":             enhanced.EnhancementType,
		"failed_providers": failed,
	})
	return EnhancedScored{Enhanced: enhanced, Score: score}, nil
}

// Get returns an owned resume with its most recent score, or nil when the
// resume has never been scored.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, *scores.Score, error) {
	resume, err := s.owned(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, nil, err
	}
	score, err := s.Scores.Latest(ctx, resume.ID)
	if err != nil {
		if errors.Is(err, scores.ErrNotFound) {
			return resume, nil, nil
		}
		return Resume{}, nil, err
	}
	return resume, &score, nil
}

// List returns the user's resumes newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Generate renders a resume or an enhanced resume as a document. Enhanced
// resumes carry the contact header of the resume they were derived from.
func (s *Service) Generate(ctx context.Context, userID, id, rawFormat string) ([]byte, render.Format, error) {
	rec, err := s.record(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}
	format, err := render.ParseFormat(rawFormat)
	if err != nil {
		return nil, "", err
	}
	data, err := render.Render(rec, format)
	if err != nil {
		return nil, "", err
	}
	metrics.IncDocumentsRendered()
	return data, format, nil
}

func (s *Service) record(ctx context.Context, userID, id string) (render.Record, error) {
	resume, err := s.Repo.GetByID(ctx, id)
	if err == nil {
		if resume.UserID != userID {
			return render.Record{}, ErrForbidden
		}
		return recordOf(resume, resume.Sections), nil
	}
	if !errors.Is(err, ErrNotFound) {
		return render.Record{}, err
	}

	enhanced, err := s.Repo.GetEnhanced(ctx, id)
	if err != nil {
		return render.Record{}, err
	}
	if enhanced.UserID != userID {
		return render.Record{}, ErrForbidden
	}
	original, err := s.Repo.GetByID(ctx, enhanced.OriginalResumeID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return render.Record{}, err
	}
	return recordOf(original, enhanced.EnhancedSections), nil
}

func recordOf(header Resume, list []sections.Section) render.Record {
	return render.Record{
		FullName: header.FullName,
		Email:    header.Email,
		Phone:    header.Phone,
		Sections: list,
	}
}

// Original opens the stored upload of an owned resume.
func (s *Service) Original(ctx context.Context, userID, resumeID string) (Resume, io.ReadCloser, error) {
	resume, err := s.owned(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, nil, err
	}
	if resume.StorageKey == "" || s.Store == nil {
		return Resume{}, nil, ErrNoOriginal
	}
	rc, err := s.Store.Open(ctx, resume.StorageKey)
	if err != nil {
		return Resume{}, nil, fmt.Errorf("open upload: %w", err)
	}
	return resume, rc, nil
}

func (s *Service) owned(ctx context.Context, userID, resumeID string) (Resume, error) {
	if strings.TrimSpace(resumeID) == "" {
		return Resume{}, ErrNotFound
	}
	resume, err := s.Repo.GetByID(ctx, resumeID)
	if err != nil {
		return Resume{}, err
	}
	if resume.UserID != userID {
		return Resume{}, ErrForbidden
	}
	return resume, nil
}
