package scores

import (
	"context"
	"sync"
)

// MemoryRepo keeps scores per resume in insertion order.
type MemoryRepo struct {
	mu       sync.RWMutex
	byResume map[string][]Score
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byResume: make(map[string][]Score)}
}

func (r *MemoryRepo) Create(ctx context.Context, score Score) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byResume[score.ResumeID] = append(r.byResume[score.ResumeID], score)
	return nil
}

func (r *MemoryRepo) Latest(ctx context.Context, resumeID string) (Score, error) {
	if err := ctx.Err(); err != nil {
		return Score{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.byResume[resumeID]
	if len(list) == 0 {
		return Score{}, ErrNotFound
	}
	latest := list[0]
	for _, s := range list[1:] {
		if !s.CreatedAt.Before(latest.CreatedAt) {
			latest = s
		}
	}
	return latest, nil
}
