package saves

import (
	"context"
	"sync"

	gameerr "github.com/KirkDiggler/txt-rpg/internal/errors"
)

// InMemoryRepository keeps the save in process memory
// Useful for testing and throwaway sessions
type InMemoryRepository struct {
	mu   sync.RWMutex
	data *SaveData
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Load(ctx context.Context) (*SaveData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.data == nil {
		return nil, gameerr.NotFound("no save in memory")
	}

	// Return a copy to avoid external modifications
	return r.data.Clone(), nil
}

func (r *InMemoryRepository) Save(ctx context.Context, data *SaveData) error {
	if err := validateForSave(data); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = data.Clone()
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = nil
	return nil
}
