package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kgeyst.com/cicerone/pkg/cicerone/api"
	"kgeyst.com/cicerone/pkg/cicerone/domain"
	"kgeyst.com/cicerone/pkg/cicerone/infrastructure/inmemory"
	"kgeyst.com/cicerone/pkg/common"
)

type fakeVisionModel struct{}

func (fakeVisionModel) Name() string { return "FakeVision" }

func (fakeVisionModel) Describe(_ context.Context, _ domain.Credential, _ domain.EncodedImage, _ string) (string, error) {
	return "Name: Machu Picchu\nLocation: Cusco Region, Peru", nil
}

type fakeLanguageModel struct {
	prompts []string
}

func (f *fakeLanguageModel) Name() string { return "FakeText" }

func (f *fakeLanguageModel) Complete(_ context.Context, _ domain.Credential, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return "line one\n\nline two", nil
}

type nopLogger struct{}

func (nopLogger) Log(string) {}

func newTestRoom(credential domain.Credential) (*room, *fakeLanguageModel) {
	return newTestRoomWithConfig(credential, common.NewConfig(nil))
}

func newTestRoomWithConfig(credential domain.Credential, config *common.Config) (*room, *fakeLanguageModel) {
	languageModel := &fakeLanguageModel{}
	guideService := domain.NewGuideService(fakeVisionModel{}, languageModel, nil, nopLogger{})
	cicerone := api.NewAPIFromComponents(guideService, inmemory.NewSessionRepository(), config)
	return newRoom(cicerone, credential), languageModel
}

func TestRoomFlow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("jpeg bytes"))
	}))
	defer server.Close()
	room, languageModel := newTestRoom("key")
	ctx := context.Background()

	lines, err := room.handle(ctx, "alice", "look at "+server.URL+"/peru.jpg")
	require.NoError(t, err)
	assert.Equal(t, "identified Machu Picchu (Cusco Region, Peru)", lines[0])

	lines, err = room.handle(ctx, "alice", "history")
	require.NoError(t, err)
	assert.Equal(t, []string{"[Detailed Response]", "line one", "line two"}, lines)
	assert.Contains(t, languageModel.prompts[0], "'history'")

	lines, err = room.handle(ctx, "alice", "facts")
	require.NoError(t, err)
	assert.Equal(t, "[Interesting Facts]", lines[0])

	lines, err = room.handle(ctx, "alice", "topics")
	require.NoError(t, err)
	assert.Contains(t, lines[0], "hotels")

	_, err = room.handle(ctx, "alice", "name Machu Picchu Sanctuary")
	require.NoError(t, err)

	_, err = room.handle(ctx, "bob", "facts")
	assert.ErrorIs(t, err, domain.ErrNoPlaceIdentified)
}

func TestRoomWithoutCredential(t *testing.T) {
	room, _ := newTestRoom("")
	_, err := room.handle(context.Background(), "alice", "what is this?")
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestFindImageURL(t *testing.T) {
	assert.Equal(t, "https://example.com/a.png", findImageURL("see example.com/a.png please"))
	assert.Equal(t, "http://example.com/b.JPG?x=1", findImageURL("http://example.com/page.html http://example.com/b.JPG?x=1"))
	assert.Equal(t, "", findImageURL("no images here: https://example.com"))
}

func TestSectionLinesAreCut(t *testing.T) {
	body := strings.Repeat("line\n", 50)
	lines := sectionLines([]domain.Section{{Heading: "Long", Body: body}})
	assert.Len(t, lines, maxReplyLines+1)
	assert.Equal(t, "...", lines[maxReplyLines])
}

func TestRoomRemovesIdleSessions(t *testing.T) {
	room, _ := newTestRoomWithConfig("key", common.NewConfig(map[string]any{
		api.ConfigKeySessionMaxIdle: 50,
	}))
	ctx := context.Background()
	_, err := room.handle(ctx, "alice", "topics")
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)
	_, err = room.handle(ctx, "bob", "topics")
	require.NoError(t, err)

	count, err := room.removeIdleSessions()

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NotContains(t, room.sessions, "alice")
	assert.Contains(t, room.sessions, "bob")

	lines, err := room.handle(ctx, "alice", "topics")
	require.NoError(t, err)
	assert.Contains(t, lines[0], "hotels")
	assert.Contains(t, room.sessions, "alice")
}
