package resumes

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerarchitect/internal/enhance"
	"careerarchitect/internal/extract"
	"careerarchitect/internal/render"
	"careerarchitect/internal/scores"
	"careerarchitect/internal/sections"
	"careerarchitect/internal/shared/storage/object/local"
)

type stubRewriter struct {
	out string
	err error
}

func (s stubRewriter) Rewrite(_ context.Context, text string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.out, nil
}

func newTestService(t *testing.T, dispatcher *enhance.Dispatcher) *Service {
	t.Helper()
	if dispatcher == nil {
		dispatcher = &enhance.Dispatcher{}
	}
	return &Service{
		Repo:     NewMemoryRepo(),
		Scores:   scores.NewMemoryRepo(),
		Store:    local.New(t.TempDir()),
		Enhancer: dispatcher,
	}
}

func sampleDocx(t *testing.T) []byte {
	t.Helper()
	data, err := render.Render(render.Record{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "555-123-4567",
		Sections: []sections.Section{
			{Name: "Experience", Content: "Senior engineer at Acme"},
			{Name: "Education", Content: "Bachelor of Science"},
			{Name: "Skills", Content: "python, docker, sql"},
		},
	}, render.FormatDOCX)
	require.NoError(t, err)
	return data
}

func sampleManual() ManualInput {
	return ManualInput{
		FullName:   "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "555-123-4567",
		Summary:    "Backend engineer",
		Experience: "Acme 2019-2024",
		Education:  "BSc",
		Skills:     "Go, SQL",
	}
}

func TestServiceUploadExtractsParsesAndScores(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	data := sampleDocx(t)

	out, err := svc.Upload(ctx, "user-1", "resume.docx", data)
	require.NoError(t, err)

	assert.Contains(t, out.Resume.RawText, "Senior engineer at Acme")
	assert.Equal(t, []string{"Experience", "Education", "Skills"}, sections.Names(out.Resume.Sections))
	assert.Equal(t, 100, out.Score.SectionScore)
	assert.Equal(t, out.Resume.ID, out.Score.ResumeID)
	assert.NotEmpty(t, out.Resume.StorageKey)

	_, latest, err := svc.Get(ctx, "user-1", out.Resume.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, out.Score.ID, latest.ID)

	_, rc, err := svc.Original(ctx, "user-1", out.Resume.ID)
	require.NoError(t, err)
	defer rc.Close()
	stored, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, data, stored)
}

func TestServiceUploadRejectsUnsupportedAndCorrupt(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Upload(context.Background(), "user-1", "resume.txt", []byte("hello"))
	assert.ErrorIs(t, err, extract.ErrUnsupportedFormat)

	_, err = svc.Upload(context.Background(), "user-1", "resume.pdf", []byte("not a pdf"))
	assert.ErrorIs(t, err, extract.ErrExtraction)
}

func TestServiceCreateManualKeepsSectionOrderAndHeader(t *testing.T) {
	svc := newTestService(t, nil)

	out, err := svc.CreateManual(context.Background(), "user-1", sampleManual())
	require.NoError(t, err)

	assert.Equal(t, []string{"Summary", "Experience", "Education", "Skills"}, sections.Names(out.Resume.Sections))
	assert.Equal(t,
		"Jane Doe\njane@example.com\n555-123-4567\n\nSummary: Backend engineer\n\nExperience: Acme 2019-2024\n\nEducation: BSc\n\nSkills: Go, SQL",
		out.Resume.RawText)
	assert.Equal(t, "Jane Doe", out.Resume.FullName)
	assert.True(t, out.Score.Details["has_email"].(bool))
}

func TestServiceEnhanceFallsBackToOriginalText(t *testing.T) {
	svc := newTestService(t, &enhance.Dispatcher{
		OpenAI: stubRewriter{err: errors.New("quota exceeded")},
	})
	ctx := context.Background()
	created, err := svc.CreateManual(ctx, "user-1", sampleManual())
	require.NoError(t, err)

	out, err := svc.Enhance(ctx, "user-1", created.Resume.ID, "")
	require.NoError(t, err)

	assert.Equal(t, created.Resume.RawText, out.Enhanced.EnhancedText)
	assert.Equal(t, "both", out.Enhanced.EnhancementType)
	assert.Equal(t, created.Resume.ID, out.Enhanced.OriginalResumeID)
	assert.Equal(t, out.Enhanced.ID, out.Score.ResumeID)
}

func TestServiceEnhanceUsesProviderOutput(t *testing.T) {
	svc := newTestService(t, &enhance.Dispatcher{
		Gemini: stubRewriter{out: "SUMMARY: Seasoned engineer\n\nSKILLS: Go, Kubernetes"},
	})
	ctx := context.Background()
	created, err := svc.CreateManual(ctx, "user-1", sampleManual())
	require.NoError(t, err)

	out, err := svc.Enhance(ctx, "user-1", created.Resume.ID, "gemini")
	require.NoError(t, err)

	assert.Equal(t, "gemini", out.Enhanced.EnhancementType)
	assert.Equal(t, []string{"Summary", "Skills"}, sections.Names(out.Enhanced.EnhancedSections))
}

func TestServiceOwnership(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	created, err := svc.CreateManual(ctx, "owner", sampleManual())
	require.NoError(t, err)

	_, _, err = svc.Get(ctx, "intruder", created.Resume.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Enhance(ctx, "intruder", created.Resume.ID, "openai")
	assert.ErrorIs(t, err, ErrForbidden)

	_, _, err = svc.Generate(ctx, "intruder", created.Resume.ID, "pdf")
	assert.ErrorIs(t, err, ErrForbidden)

	_, _, err = svc.Get(ctx, "owner", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceGenerateEnhancedInheritsHeader(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	created, err := svc.CreateManual(ctx, "user-1", sampleManual())
	require.NoError(t, err)
	enhanced, err := svc.Enhance(ctx, "user-1", created.Resume.ID, "openai")
	require.NoError(t, err)

	data, format, err := svc.Generate(ctx, "user-1", enhanced.Enhanced.ID, "DOCX")
	require.NoError(t, err)
	assert.Equal(t, render.FormatDOCX, format)

	text, err := extract.FromBytes(ctx, data, extract.FormatDOCX)
	require.NoError(t, err)
	lines := strings.Split(text, "\n")
	assert.Equal(t, "Jane Doe", lines[0])
	assert.Equal(t, "jane@example.com | 555-123-4567", lines[1])
}

func TestServiceGenerateRejectsUnknownFormat(t *testing.T) {
	svc := newTestService(t, nil)
	created, err := svc.CreateManual(context.Background(), "user-1", sampleManual())
	require.NoError(t, err)

	_, _, err = svc.Generate(context.Background(), "user-1", created.Resume.ID, "rtf")
	assert.ErrorIs(t, err, render.ErrUnsupportedFormat)
}

func TestServiceOriginalMissingForManual(t *testing.T) {
	svc := newTestService(t, nil)
	created, err := svc.CreateManual(context.Background(), "user-1", sampleManual())
	require.NoError(t, err)

	_, _, err = svc.Original(context.Background(), "user-1", created.Resume.ID)
	assert.ErrorIs(t, err, ErrNoOriginal)
}
