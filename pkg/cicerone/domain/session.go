package domain

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// SessionState where a session is in the interaction flow.
type SessionState int

const (
	// SessionStateAwaitingCredential nothing can be done until an API key is supplied
	SessionStateAwaitingCredential = SessionState(iota)
	// SessionStateAwaitingImage the credential is there, waiting for an upload
	SessionStateAwaitingImage
	// SessionStateImageReceived an image is being analyzed (or its analysis failed and a re-upload is expected)
	SessionStateImageReceived
	// SessionStateIdentityConfirmed the place is identified, questions can be asked
	SessionStateIdentityConfirmed
)

func (s SessionState) String() string {
	switch s {
	case SessionStateAwaitingCredential:
		return "awaiting_credential"
	case SessionStateAwaitingImage:
		return "awaiting_image"
	case SessionStateImageReceived:
		return "image_received"
	case SessionStateIdentityConfirmed:
		return "identity_confirmed"
	}
	return "unknown"
}

// Session everything that's remembered between user actions: the credential and the current place.
// A session is created by a front end when a user arrives and removed when the user leaves; it's never shared
// between users. The mutex makes sure one session never runs two actions at once.
type Session struct {
	mutex       sync.Mutex
	id          string
	credential  Credential
	state       SessionState
	resumeState SessionState // where to go back to once a revoked credential is supplied again
	identity    *PlaceIdentity
	description string
	image       *EncodedImage
	createdAt   time.Time
	lastActive  atomic.Int64 // unix nanoseconds; read without the mutex by idle cleanup
}

func NewSession(id string) *Session {
	session := &Session{
		id:        id,
		state:     SessionStateAwaitingCredential,
		createdAt: time.Now(),
	}
	session.lastActive.Store(session.createdAt.UnixNano())
	return session
}

func (s *Session) ID() string {
	return s.id
}

// SetCredential supplies (or, if empty, revokes) the API key. Supplying it again after a revocation returns
// the session to where it was: a place kept after a failed analysis stays unusable until the next success.
func (s *Session) SetCredential(credential Credential) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.touch()
	s.credential = Credential(strings.TrimSpace(string(credential)))
	switch {
	case s.credential.IsEmpty():
		if s.state != SessionStateAwaitingCredential {
			s.resumeState = s.state
		}
		s.state = SessionStateAwaitingCredential
	case s.state != SessionStateAwaitingCredential:
		// key replaced
	case s.resumeState == SessionStateAwaitingCredential:
		s.state = SessionStateAwaitingImage
	default:
		s.state = s.resumeState
	}
}

// Snapshot a copy of the session's public state, for rendering.
func (s *Session) Snapshot() SessionSnapshot {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	result := SessionSnapshot{
		ID:            s.id,
		State:         s.state,
		HasCredential: !s.credential.IsEmpty(),
		Description:   s.description,
		CreatedAt:     s.createdAt,
		LastActive:    time.Unix(0, s.lastActive.Load()),
	}
	if s.identity != nil {
		identity := *s.identity
		result.Identity = &identity
	}
	if s.image != nil {
		image := *s.image
		result.Image = &image
	}
	return result
}

// IdleFor how long ago the last action happened. Doesn't wait for a running action to finish.
func (s *Session) IdleFor(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastActive.Load()))
}

// The methods below must be called with the mutex held (see GuideService).

func (s *Session) lock() {
	s.mutex.Lock()
	s.touch()
}

func (s *Session) unlock() {
	s.mutex.Unlock()
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// SessionSnapshot see Session.Snapshot
type SessionSnapshot struct {
	ID            string
	State         SessionState
	HasCredential bool
	Identity      *PlaceIdentity
	Description   string
	Image         *EncodedImage
	CreatedAt     time.Time
	LastActive    time.Time
}
