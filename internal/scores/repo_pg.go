package scores

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, score Score) error {
	const query = `
INSERT INTO ats_scores (
    id,
    resume_id,
    user_id,
    overall_score,
    keyword_score,
    formatting_score,
    section_score,
    details,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	details := score.Details
	if details == nil {
		details = map[string]any{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal details: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, query,
		score.ID,
		score.ResumeID,
		score.UserID,
		score.OverallScore,
		score.KeywordScore,
		score.FormattingScore,
		score.SectionScore,
		raw,
		score.CreatedAt,
	)
	return err
}

func (r *PGRepo) Latest(ctx context.Context, resumeID string) (Score, error) {
	const query = `
SELECT id, resume_id, user_id, overall_score, keyword_score, formatting_score, section_score, details, created_at
FROM ats_scores
WHERE resume_id = $1
ORDER BY created_at DESC
LIMIT 1`

	var (
		score Score
		raw   []byte
	)
	err := r.DB.QueryRowContext(ctx, query, resumeID).Scan(
		&score.ID,
		&score.ResumeID,
		&score.UserID,
		&score.OverallScore,
		&score.KeywordScore,
		&score.FormattingScore,
		&score.SectionScore,
		&raw,
		&score.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Score{}, ErrNotFound
		}
		return Score{}, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &score.Details); err != nil {
			return Score{}, fmt.Errorf("decode details: %w", err)
		}
	}
	return score, nil
}
