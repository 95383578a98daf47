package resumes

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	resumes  map[string]Resume
	enhanced map[string]Enhanced
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		resumes:  make(map[string]Resume),
		enhanced: make(map[string]Enhanced),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes[resume.ID] = resume
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.resumes[resumeID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var all []Resume
	for _, resume := range r.resumes {
		if resume.UserID == userID {
			all = append(all, resume)
		}
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []Resume{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *MemoryRepo) CreateEnhanced(ctx context.Context, enhanced Enhanced) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enhanced[enhanced.ID] = enhanced
	return nil
}

func (r *MemoryRepo) GetEnhanced(ctx context.Context, enhancedID string) (Enhanced, error) {
	if err := ctx.Err(); err != nil {
		return Enhanced{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	enhanced, ok := r.enhanced[enhancedID]
	if !ok {
		return Enhanced{}, ErrNotFound
	}
	return enhanced, nil
}
