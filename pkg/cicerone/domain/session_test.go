package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionCredentialTransitions(t *testing.T) {
	session := NewSession("s1")
	assert.Equal(t, "s1", session.ID())
	assert.Equal(t, SessionStateAwaitingCredential, session.Snapshot().State)

	session.SetCredential("   ")
	assert.Equal(t, SessionStateAwaitingCredential, session.Snapshot().State)
	assert.False(t, session.Snapshot().HasCredential)

	session.SetCredential(" key ")
	assert.Equal(t, SessionStateAwaitingImage, session.Snapshot().State)
	assert.True(t, session.Snapshot().HasCredential)

	session.SetCredential("")
	assert.Equal(t, SessionStateAwaitingCredential, session.Snapshot().State)

	session.SetCredential("key")
	assert.Equal(t, SessionStateAwaitingImage, session.Snapshot().State)
}

func TestSessionCredentialReentryRestoresPriorState(t *testing.T) {
	for _, state := range []SessionState{
		SessionStateAwaitingImage,
		SessionStateImageReceived,
		SessionStateIdentityConfirmed,
	} {
		session := NewSession("s1")
		session.SetCredential("key")
		session.state = state
		session.identity = &PlaceIdentity{Name: "Alhambra", Location: "Granada"}

		session.SetCredential("")
		assert.Equal(t, SessionStateAwaitingCredential, session.Snapshot().State)
		session.SetCredential("")
		session.SetCredential("other-key")

		assert.Equal(t, state, session.Snapshot().State, state.String())
	}
}

func TestSessionSnapshotIsACopy(t *testing.T) {
	session := NewSession("s1")
	session.identity = &PlaceIdentity{Name: "Alhambra", Location: "Granada"}
	snapshot := session.Snapshot()
	snapshot.Identity.Name = "changed"
	assert.Equal(t, "Alhambra", session.Snapshot().Identity.Name)
}

func TestSessionIdleFor(t *testing.T) {
	session := NewSession("s1")
	assert.True(t, session.IdleFor(time.Now().Add(time.Hour)) >= time.Hour-time.Second)
}

func TestSessionStateString(t *testing.T) {
	assert.Equal(t, "identity_confirmed", SessionStateIdentityConfirmed.String())
	assert.Equal(t, "unknown", SessionState(42).String())
}
