package daemon

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// SessionState tracks one running annotation session.
type SessionState struct {
	ID        string // request ID, <kind>-<ULID>
	Kind      string // "highlight" or "popup"
	StartedAt time.Time

	cancel context.CancelFunc
}

// SessionRegistry tracks running annotation sessions and enforces the
// concurrency cap.
type SessionRegistry struct {
	mu     sync.RWMutex
	active map[string]*SessionState
	served uint64
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		active: make(map[string]*SessionState),
	}
}

// NewID generates a request ID carrying the annotation kind.
func (r *SessionRegistry) NewID(kind string) (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to generate ULID: %w", err)
	}
	return fmt.Sprintf("%s-%s", kind, id.String()), nil
}

// Register adds a session unless max active sessions are already running.
// It reports false when the cap is reached.
func (r *SessionRegistry) Register(id, kind string, cancel context.CancelFunc, max int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if max > 0 && len(r.active) >= max {
		return false
	}
	r.active[id] = &SessionState{
		ID:        id,
		Kind:      kind,
		StartedAt: time.Now(),
		cancel:    cancel,
	}
	return true
}

// Remove drops a session that never ran, e.g. when opening its surface
// failed after registration.
func (r *SessionRegistry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, id)
}

// Finish drops a session whose run ended and counts it as served.
func (r *SessionRegistry) Finish(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.active[id]; !exists {
		return
	}
	delete(r.active, id)
	r.served++
}

// CancelAll cancels every running session. The sessions unregister
// themselves as their runs return.
func (r *SessionRegistry) CancelAll() {
	r.mu.RLock()
	cancels := make([]context.CancelFunc, 0, len(r.active))
	for _, s := range r.active {
		cancels = append(cancels, s.cancel)
	}
	r.mu.RUnlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// ActiveCount returns the number of running sessions.
func (r *SessionRegistry) ActiveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.active)
}

// Served returns how many sessions have finished since startup.
func (r *SessionRegistry) Served() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.served
}
