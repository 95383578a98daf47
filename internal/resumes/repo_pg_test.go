package resumes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"careerarchitect/internal/sections"
)

func TestPGRepoCreateStoresSectionsAsJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	resume := Resume{
		ID:        "resume-1",
		UserID:    "user-1",
		RawText:   "Skills: Go",
		Sections:  []sections.Section{{Name: "Skills", Content: "Go"}},
		FileName:  "cv.pdf",
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(
			resume.ID,
			resume.UserID,
			resume.RawText,
			[]byte(`[{"section_name":"Skills","content":"Go"}]`),
			"",
			"",
			"",
			resume.FileName,
			"",
			resume.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := (&PGRepo{DB: db}).Create(context.Background(), resume); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	created := time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC)
	cols := []string{"id", "user_id", "raw_text", "sections", "full_name", "email", "phone", "file_name", "storage_key", "created_at"}
	rows := sqlmock.NewRows(cols).
		AddRow("r2", "user-1", "b", []byte(`[]`), "Jane", "", "", "", "", created.Add(time.Hour)).
		AddRow("r1", "user-1", "a", []byte(`[{"section_name":"Content","content":"a"}]`), "", "", "", "a.pdf", "k", created)

	mock.ExpectQuery("FROM resumes").
		WithArgs("user-1", 20, 0).
		WillReturnRows(rows)

	got, err := (&PGRepo{DB: db}).ListByUser(context.Background(), "user-1", 20, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 2 || got[0].ID != "r2" || got[1].StorageKey != "k" {
		t.Fatalf("unexpected rows: %+v", got)
	}
	if len(got[1].Sections) != 1 || got[1].Sections[0].Name != "Content" {
		t.Fatalf("unexpected sections: %+v", got[1].Sections)
	}
}

func TestPGRepoGetEnhancedNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM enhanced_resumes").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	if _, err := (&PGRepo{DB: db}).GetEnhanced(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
