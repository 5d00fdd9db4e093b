package inmemory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"kgeyst.com/cicerone/pkg/cicerone/domain"
)

type sessionRepository struct {
	mutex    sync.Mutex
	sessions map[string]*domain.Session
}

func NewSessionRepository() domain.SessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*domain.Session),
	}
}

func (r *sessionRepository) NextID() string {
	return uuid.NewString()
}

func (r *sessionRepository) Store(session *domain.Session) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.sessions[session.ID()] = session
	return nil
}

func (r *sessionRepository) Find(id string) (*domain.Session, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil // NOTE: the session object is shared
}

func (r *sessionRepository) Remove(id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *sessionRepository) RemoveIdle(maxIdle time.Duration) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	now := time.Now()
	count := 0
	for id, session := range r.sessions {
		if session.IdleFor(now) > maxIdle {
			delete(r.sessions, id)
			count++
		}
	}
	return count, nil
}
