// Package session tracks per-operator browse state: the current page index
// and the chat the listing was requested from. State is process-memory only
// and is lost on restart.
package session

import (
	"errors"
	"sync"
)

// ErrNoActiveSession reports a page action before any browse command.
var ErrNoActiveSession = errors.New("no active session")

// Session is one operator's pagination cursor and reply destination.
type Session struct {
	PageIndex int
	ChatID    int64
}

// Registry maps operator ids to their current session. Updates may arrive
// from parallel handlers, so access is mutex-guarded.
type Registry struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: map[int64]Session{}}
}

// Start creates or overwrites the operator's session at page zero.
func (r *Registry) Start(operatorID, chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[operatorID] = Session{PageIndex: 0, ChatID: chatID}
}

// SetPage moves the operator's cursor. The chat binding is kept as-is.
func (r *Registry) SetPage(operatorID int64, pageIndex int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.sessions[operatorID]
	if !ok {
		return ErrNoActiveSession
	}
	current.PageIndex = pageIndex
	r.sessions[operatorID] = current
	return nil
}

// Get returns the operator's current session.
func (r *Registry) Get(operatorID int64) (Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	current, ok := r.sessions[operatorID]
	if !ok {
		return Session{}, ErrNoActiveSession
	}
	return current, nil
}
