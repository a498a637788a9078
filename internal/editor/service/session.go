package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ============================================================
// Session Manager
// ============================================================

type session struct {
	editor   *Editor
	lastSeen time.Time
}

type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session // session id -> editor
	now      func() time.Time
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// Open starts a new editor with an empty canvas.
func (m *SessionManager) Open() (string, *Editor) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	ed := NewEditor()
	m.sessions[id] = &session{editor: ed, lastSeen: m.now()}
	return id, ed
}

// Resolve returns the editor for id and marks the session as used.
func (m *SessionManager) Resolve(id string) (*Editor, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = m.now()
	return s.editor, true
}

func (m *SessionManager) Close(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep closes sessions unused for longer than maxIdle and returns how many
// were closed.
func (m *SessionManager) Sweep(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxIdle)
	closed := 0
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			closed++
		}
	}
	return closed
}

// Reap sweeps every interval until ctx is done.
func (m *SessionManager) Reap(ctx context.Context, interval, maxIdle time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(maxIdle); n > 0 {
				logger.Info("closed idle sessions", zap.Int("count", n), zap.Int("open", m.Len()))
			}
		}
	}
}
