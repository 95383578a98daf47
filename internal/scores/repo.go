package scores

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("ats score not found")

// Repo stores ATS scores.
type Repo interface {
	Create(ctx context.Context, score Score) error
	// Latest returns the most recent score for resumeID.
	Latest(ctx context.Context, resumeID string) (Score, error)
}
