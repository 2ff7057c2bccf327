package stage

import (
	"sync"

	kerrors "github.com/kunihir0/gini-sub002/errors"
)

// Registry holds Stages by unique id.
type Registry struct {
	mu     sync.RWMutex
	stages map[string]Stage
}

// NewRegistry creates an empty stage Registry.
func NewRegistry() *Registry {
	return &Registry{stages: make(map[string]Stage)}
}

// Register stores s under s.ID(). Duplicate ids are rejected.
func (r *Registry) Register(s Stage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stages[s.ID()]; exists {
		return kerrors.NewDuplicateStage(s.ID())
	}
	r.stages[s.ID()] = s
	return nil
}

// Get retrieves a stage by id.
func (r *Registry) Get(id string) (Stage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stages[id]
	return s, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.stages[id]
	return ok
}
