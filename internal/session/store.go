// Package session holds per-user search sessions: the result set from a
// user's most recent /search plus their current page. Sessions live in
// memory only, carry an explicit expiry, and are evicted both lazily on
// access and by a background sweep, so abandoned searches do not
// accumulate for the life of the process.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/scourbot/scour/internal/pager"
	"github.com/scourbot/scour/internal/search"
)

// DefaultTTL matches the pagination buttons' presentational timeout, so
// the backing session and its controls expire together.
const DefaultTTL = 15 * time.Minute

// sweepInterval is how often the background sweep scans for expired
// sessions.
const sweepInterval = time.Minute

// Session is one user's active search. Results are fixed at creation
// and ordered newest-first; only Page and ExpiresAt change afterward.
type Session struct {
	Query     string
	MinLength int
	// ViewID identifies the control instance (button row) bound to this
	// session. A new search mints a new ViewID, so clicks from controls
	// of a superseded search no longer match.
	ViewID    string
	Results   []search.Result
	Page      int
	ExpiresAt time.Time
}

// TotalPages returns the page count for this session's result set.
func (s Session) TotalPages() int {
	return pager.TotalPages(len(s.Results))
}

// AdvanceStatus reports the outcome of a page-advance attempt.
type AdvanceStatus int

const (
	// StatusMoved means the page changed and the session was refreshed.
	StatusMoved AdvanceStatus = iota
	// StatusOutOfRange means the target page is outside [1, TotalPages];
	// the session is untouched.
	StatusOutOfRange
	// StatusExpired means no live session matched the user and view.
	StatusExpired
)

// Store maps user IDs to their active search session. A user has at
// most one session; a new search replaces the old one wholesale. All
// methods are safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewStore creates a session store. A non-positive ttl falls back to
// DefaultTTL.
func NewStore(ttl time.Duration, logger *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Put records a completed search for the user, replacing any existing
// session. The new session starts on page 1 and expires after the
// store's TTL. Returns a snapshot of the stored session.
func (s *Store) Put(userID, query string, minLength int, viewID string, results []search.Result) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{
		Query:     query,
		MinLength: minLength,
		ViewID:    viewID,
		Results:   results,
		Page:      1,
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.sessions[userID] = sess
	return *sess
}

// Get returns a snapshot of the user's session. An expired session is
// evicted on touch and reported as absent.
func (s *Store) Get(userID string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.live(userID)
	if !ok {
		return Session{}, false
	}
	return *sess, true
}

// Advance moves the user's session by delta pages, atomically with the
// lookup. viewID must match the session's bound control instance —
// clicks from a superseded search's buttons report StatusExpired even
// though the user has a live session. Out-of-range targets leave the
// session untouched. A successful move refreshes the expiry.
//
// The returned Session is a snapshot taken under the lock; callers
// render from it rather than re-reading the store.
func (s *Store) Advance(userID, viewID string, delta int) (Session, AdvanceStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.live(userID)
	if !ok || sess.ViewID != viewID {
		return Session{}, StatusExpired
	}

	newPage := sess.Page + delta
	if newPage < 1 || newPage > sess.TotalPages() {
		return *sess, StatusOutOfRange
	}

	sess.Page = newPage
	sess.ExpiresAt = s.now().Add(s.ttl)
	return *sess, StatusMoved
}

// Remove deletes the user's session, if any.
func (s *Store) Remove(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len returns the number of stored sessions, including any expired
// entries the sweep has not yet evicted.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run sweeps expired sessions periodically until ctx is cancelled.
// Intended to run as a goroutine alongside the bot.
func (s *Store) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sweep(); n > 0 {
				s.logger.Debug("evicted expired search sessions", "count", n)
			}
		}
	}
}

// sweep removes all expired sessions and returns how many were evicted.
func (s *Store) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	evicted := 0
	for userID, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, userID)
			evicted++
		}
	}
	return evicted
}

// live returns the user's session if present and unexpired, evicting it
// when expired. Caller must hold the lock.
func (s *Store) live(userID string) (*Session, bool) {
	sess, ok := s.sessions[userID]
	if !ok {
		return nil, false
	}
	if s.now().After(sess.ExpiresAt) {
		delete(s.sessions, userID)
		return nil, false
	}
	return sess, true
}
