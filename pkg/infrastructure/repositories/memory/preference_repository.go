package memory

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/parcops/stocktrack/pkg/domain/repositories"
)

var _ repositories.PreferenceRepository = (*PreferenceRepository)(nil)

// PreferenceRepository keeps preference payloads in memory, encoded as JSON
// so load/save semantics match the persistent implementation.
type PreferenceRepository struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewPreferenceRepository creates an empty in-memory preference repository.
func NewPreferenceRepository() *PreferenceRepository {
	return &PreferenceRepository{items: make(map[string][]byte)}
}

// Save stores the JSON encoding of value under key.
func (r *PreferenceRepository) Save(key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("save preference %s: %w", key, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[key] = payload
	return nil
}

// Load decodes the payload stored under key into dest.
func (r *PreferenceRepository) Load(key string, dest any) error {
	r.mu.RLock()
	payload, ok := r.items[key]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("load preference %s: %w", key, repositories.ErrPreferenceNotFound)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("load preference %s: %w", key, err)
	}
	return nil
}

// Close is a no-op for the in-memory repository.
func (r *PreferenceRepository) Close() error {
	return nil
}
