package domain

import "time"

// SessionRepository keeps sessions alive between user actions (for front ends like the web UI where every
// action is a separate request). Sessions live in memory only.
type SessionRepository interface {
	NextID() string
	Store(session *Session) error
	// Find returns ErrSessionNotFound if there's no such session.
	Find(id string) (*Session, error)
	Remove(id string) error
	// RemoveIdle removes sessions without any action for longer than `maxIdle`. Returns how many were removed.
	RemoveIdle(maxIdle time.Duration) (int, error)
}
