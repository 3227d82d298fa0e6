package draft

import "sync"

// Store holds live drafts in memory. Drafts die with the process;
// the finalized result is what gets persisted, not the draft.
type Store struct {
	mu     sync.RWMutex
	drafts map[string]*Draft
}

// NewStore creates an empty draft store.
func NewStore() *Store {
	return &Store{drafts: make(map[string]*Draft)}
}

// Put registers a draft under its ID.
func (s *Store) Put(d *Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID] = d
}

// Get returns the draft with the given ID, or nil.
func (s *Store) Get(id string) *Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drafts[id]
}

// Delete removes a draft. Removing an unknown ID is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}

// Len reports how many drafts are live.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}
