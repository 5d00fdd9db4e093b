package inmemory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kgeyst.com/cicerone/pkg/cicerone/domain"
)

func TestStoreFindRemove(t *testing.T) {
	repository := NewSessionRepository()
	id := repository.NextID()
	assert.NotEmpty(t, id)
	assert.NotEqual(t, id, repository.NextID())

	session := domain.NewSession(id)
	require.NoError(t, repository.Store(session))

	found, err := repository.Find(id)
	require.NoError(t, err)
	assert.Same(t, session, found)

	require.NoError(t, repository.Remove(id))
	_, err = repository.Find(id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, repository.Remove(id), domain.ErrSessionNotFound)
}

func TestRemoveIdle(t *testing.T) {
	repository := NewSessionRepository()
	session := domain.NewSession(repository.NextID())
	require.NoError(t, repository.Store(session))

	count, err := repository.RemoveIdle(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	time.Sleep(5 * time.Millisecond)
	count, err = repository.RemoveIdle(time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	_, err = repository.Find(session.ID())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
