package bot

import "sync"

// SessionStore maps Telegram user IDs to in-progress booking drafts.
// Updates may be dispatched concurrently in webhook mode, so access
// goes through a mutex rather than a naked map.
type SessionStore struct {
	mu     sync.RWMutex
	drafts map[int64]*Draft
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		drafts: make(map[int64]*Draft),
	}
}

// Get returns a copy of the draft for a user if one exists. Handlers
// mutate the copy and publish it with Put, so concurrent updates for the
// same user never write to shared memory.
func (s *SessionStore) Get(userID int64) (*Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	draft, ok := s.drafts[userID]
	if !ok {
		return nil, false
	}
	copied := *draft
	return &copied, true
}

// Put stores or replaces the draft for a user
func (s *SessionStore) Put(userID int64, draft *Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts[userID] = draft
}

// Remove discards the draft for a user
func (s *SessionStore) Remove(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, userID)
}
