package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"careerarchitect/internal/sections"
)

// PGRepo implements Repo using Postgres. Sections are stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, raw_text, sections, full_name, email, phone, file_name, storage_key, created_at`

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (` + resumeColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	raw, err := encodeSections(resume.Sections)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.RawText,
		raw,
		resume.FullName,
		resume.Email,
		resume.Phone,
		resume.FileName,
		resume.StorageKey,
		resume.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, resumeID string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE id = $1
LIMIT 1`

	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, resumeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PGRepo) CreateEnhanced(ctx context.Context, enhanced Enhanced) error {
	const query = `
INSERT INTO enhanced_resumes (
    id,
    user_id,
    original_resume_id,
    enhanced_text,
    enhanced_sections,
    enhancement_type,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	raw, err := encodeSections(enhanced.EnhancedSections)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		enhanced.ID,
		enhanced.UserID,
		enhanced.OriginalResumeID,
		enhanced.EnhancedText,
		raw,
		enhanced.EnhancementType,
		enhanced.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetEnhanced(ctx context.Context, enhancedID string) (Enhanced, error) {
	const query = `
SELECT id, user_id, original_resume_id, enhanced_text, enhanced_sections, enhancement_type, created_at
FROM enhanced_resumes
WHERE id = $1
LIMIT 1`

	var (
		enhanced Enhanced
		raw      []byte
	)
	err := r.DB.QueryRowContext(ctx, query, enhancedID).Scan(
		&enhanced.ID,
		&enhanced.UserID,
		&enhanced.OriginalResumeID,
		&enhanced.EnhancedText,
		&raw,
		&enhanced.EnhancementType,
		&enhanced.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Enhanced{}, ErrNotFound
		}
		return Enhanced{}, err
	}
	if enhanced.EnhancedSections, err = decodeSections(raw); err != nil {
		return Enhanced{}, err
	}
	return enhanced, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var (
		resume Resume
		raw    []byte
	)
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.RawText,
		&raw,
		&resume.FullName,
		&resume.Email,
		&resume.Phone,
		&resume.FileName,
		&resume.StorageKey,
		&resume.CreatedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	if resume.Sections, err = decodeSections(raw); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

func encodeSections(list []sections.Section) ([]byte, error) {
	if list == nil {
		list = []sections.Section{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("marshal sections: %w", err)
	}
	return raw, nil
}

func decodeSections(raw []byte) ([]sections.Section, error) {
	list := []sections.Section{}
	if len(raw) == 0 {
		return list, nil
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode sections: %w", err)
	}
	return list, nil
}
