package resumes

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("resume not found")
	ErrForbidden    = errors.New("resume belongs to another user")
	ErrInvalidInput = errors.New("invalid input")
	ErrNoOriginal   = errors.New("resume has no stored upload")
)

// Repo stores resumes and their enhanced copies.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, resumeID string) (Resume, error)
	// ListByUser returns the user's resumes newest first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error)
	CreateEnhanced(ctx context.Context, enhanced Enhanced) error
	GetEnhanced(ctx context.Context, enhancedID string) (Enhanced, error)
}
