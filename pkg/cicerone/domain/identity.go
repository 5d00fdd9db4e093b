package domain

import (
	"regexp"
	"strings"

	"kgeyst.com/cicerone/pkg/common"
)

const (
	NameNotFound     = "Name Not Found"
	LocationNotFound = "Address Not Found"
)

// PlaceIdentity what the place is and where it is. Fields which couldn't be extracted hold the sentinels above.
type PlaceIdentity struct {
	Name     string
	Location string
}

// HasLocation is false if the location is the sentinel.
func (p PlaceIdentity) HasLocation() bool {
	return p.Location != LocationNotFound
}

var (
	nameMarkers     = []string{"name:"}
	locationMarkers = []string{"location:", "address:"}
	markupReplacer  = strings.NewReplacer("**", "", "__", "")
)

const bulletChars = "*-+•# \t"

var numberedListMarker = regexp.MustCompile(`^\d+[.)]\s*`)

// ExtractPlaceIdentity parses the description returned by the vision model. Policy: a line which starts
// with a "Name:" marker gives the name, a line which starts with "Location:" (or "Address:") gives the location;
// emphasis markup, list bullets and numbered-list markers ("1.", "2)") around the markers are ignored. The first match of each field wins.
// Never fails: fields without a match keep their sentinel values.
func ExtractPlaceIdentity(description string) PlaceIdentity {
	result := PlaceIdentity{Name: NameNotFound, Location: LocationNotFound}
	nameFound, locationFound := false, false
	for _, line := range strings.Split(description, "\n") {
		line = trimListMarkers(markupReplacer.Replace(strings.TrimSpace(line)))
		if !nameFound {
			if value, ok := valueAfterMarker(line, nameMarkers); ok {
				result.Name = value
				nameFound = true
				continue
			}
		}
		if !locationFound {
			if value, ok := valueAfterMarker(line, locationMarkers); ok {
				result.Location = value
				locationFound = true
			}
		}
		if nameFound && locationFound {
			break
		}
	}
	return result
}

func trimListMarkers(line string) string {
	line = strings.TrimLeft(line, bulletChars)
	return strings.TrimLeft(numberedListMarker.ReplaceAllString(line, ""), bulletChars)
}

func valueAfterMarker(line string, markers []string) (string, bool) {
	lowerLine := strings.ToLower(line)
	for _, marker := range markers {
		if !strings.HasPrefix(lowerLine, marker) {
			continue
		}
		value := strings.Trim(line[len(marker):], " \t*_`")
		value = common.RemoveDoubleQuotesIfAny(value)
		value = common.RemoveSingleQuotesIfAny(value)
		value = strings.TrimSpace(value)
		if value == "" {
			return "", false
		}
		return value, true
	}
	return "", false
}
