package session

import "sync"

// Store holds one draft per user. Safe for concurrent use across users; the
// transport delivers a single user's messages sequentially, so a draft never
// has two concurrent writers.
type Store struct {
	mu     sync.RWMutex
	drafts map[int64]*Draft
}

func NewStore() *Store {
	return &Store{drafts: map[int64]*Draft{}}
}

// Get returns the user's draft, creating one at the menu on first contact.
func (s *Store) Get(userID int64, username string) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[userID]
	if !ok {
		d = &Draft{UserID: userID, Step: StepMenu}
		s.drafts[userID] = d
	}
	if username != "" {
		d.Username = username
	}
	return d
}

// Reset replaces the user's draft with a fresh one so nothing from an
// abandoned submission leaks into the next.
func (s *Store) Reset(userID int64, username string) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := &Draft{UserID: userID, Username: username, Step: StepMenu}
	s.drafts[userID] = d
	return d
}

// Delete destroys the draft, used after a successful commit.
func (s *Store) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
}
