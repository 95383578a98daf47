package scores

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateEncodesDetails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	score := Score{
		ID:              "score-1",
		ResumeID:        "resume-1",
		UserID:          "user-1",
		OverallScore:    39,
		KeywordScore:    50,
		FormattingScore: 33,
		SectionScore:    33,
		Details:         map[string]any{"has_email": true},
		CreatedAt:       time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO ats_scores").
		WithArgs(
			score.ID,
			score.ResumeID,
			score.UserID,
			score.OverallScore,
			score.KeywordScore,
			score.FormattingScore,
			score.SectionScore,
			[]byte(`{"has_email":true}`),
			score.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := (&PGRepo{DB: db}).Create(context.Background(), score); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoLatestDecodesDetails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	created := time.Date(2024, 2, 2, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "resume_id", "user_id", "overall_score", "keyword_score",
		"formatting_score", "section_score", "details", "created_at",
	}).AddRow("score-1", "resume-1", "user-1", 80, 90, 66, 100, []byte(`{"keyword_matches":20}`), created)

	mock.ExpectQuery("ORDER BY created_at DESC").
		WithArgs("resume-1").
		WillReturnRows(rows)

	got, err := (&PGRepo{DB: db}).Latest(context.Background(), "resume-1")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got.OverallScore != 80 || got.SectionScore != 100 {
		t.Fatalf("unexpected score: %+v", got)
	}
	if got.Details["keyword_matches"] != float64(20) {
		t.Fatalf("unexpected details: %#v", got.Details)
	}
}

func TestPGRepoLatestNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM ats_scores").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	if _, err := (&PGRepo{DB: db}).Latest(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
