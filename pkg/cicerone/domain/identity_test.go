package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const geminiStyleDescription = `Here is the information about the place in the image:

*   **Name:**   Eiffel Tower**
*   **Location:** Paris, France**
*   **Historical Context:** Built for the 1889 World's Fair.`

func TestExtractPlaceIdentityFromMarkdownBullets(t *testing.T) {
	identity := ExtractPlaceIdentity(geminiStyleDescription)
	assert.Equal(t, "Eiffel Tower", identity.Name)
	assert.Equal(t, "Paris, France", identity.Location)
	assert.True(t, identity.HasLocation())
}

func TestExtractPlaceIdentitySingleMarkers(t *testing.T) {
	identity := ExtractPlaceIdentity("*   **Name:**   Eiffel Tower**")
	assert.Equal(t, "Eiffel Tower", identity.Name)
	assert.Equal(t, LocationNotFound, identity.Location)
	assert.False(t, identity.HasLocation())

	identity = ExtractPlaceIdentity("*   **Location:** Paris, France**")
	assert.Equal(t, NameNotFound, identity.Name)
	assert.Equal(t, "Paris, France", identity.Location)
}

func TestExtractPlaceIdentityIsTotal(t *testing.T) {
	for _, description := range []string{
		"",
		"\n\n\n",
		"The image shows a bridge.",
		"Name:",
		"**Name:** **",
		"Location:   ",
		"*",
		"Named after a king, the palace...",
	} {
		identity := ExtractPlaceIdentity(description)
		assert.Equal(t, NameNotFound, identity.Name, description)
		assert.Equal(t, LocationNotFound, identity.Location, description)
	}
}

func TestExtractPlaceIdentityMarkersInAnyOrder(t *testing.T) {
	identity := ExtractPlaceIdentity("Location: Agra, India\nName: Taj Mahal")
	assert.Equal(t, "Taj Mahal", identity.Name)
	assert.Equal(t, "Agra, India", identity.Location)
}

func TestExtractPlaceIdentityFirstMatchWins(t *testing.T) {
	identity := ExtractPlaceIdentity("- **Name**: Colosseum\n- **Name**: Flavian Amphitheatre\n- Address: Rome, Italy\n- Location: Lazio")
	assert.Equal(t, "Colosseum", identity.Name)
	assert.Equal(t, "Rome, Italy", identity.Location)
}

func TestExtractPlaceIdentityStripsQuotesAndCase(t *testing.T) {
	identity := ExtractPlaceIdentity("  NAME: \"Golden Gate Bridge\"  \n # location: __San Francisco__")
	assert.Equal(t, "Golden Gate Bridge", identity.Name)
	assert.Equal(t, "San Francisco", identity.Location)
}

func TestExtractPlaceIdentityStripsSingleQuotes(t *testing.T) {
	identity := ExtractPlaceIdentity("Name: 'Big Ben'\nLocation: 'London'")
	assert.Equal(t, "Big Ben", identity.Name)
	assert.Equal(t, "London", identity.Location)
}

func TestExtractPlaceIdentityFromNumberedList(t *testing.T) {
	for _, description := range []string{
		"1. **Name:** Colosseum\n2. **Location:** Rome",
		"1) Name: Colosseum\n2) Location: Rome",
		"  10.Name: Colosseum\n- 11. **Location:** Rome",
	} {
		identity := ExtractPlaceIdentity(description)
		assert.Equal(t, "Colosseum", identity.Name, description)
		assert.Equal(t, "Rome", identity.Location, description)
	}
}
