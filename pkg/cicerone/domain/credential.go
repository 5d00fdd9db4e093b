package domain

import "strings"

// Credential an API key supplied by the user (or by the caller's config). It's passed as is to providers and
// must never be logged in full.
type Credential string

func (c Credential) IsEmpty() bool {
	return strings.TrimSpace(string(c)) == ""
}

// Masked is safe for logs: only the last 4 characters survive.
func (c Credential) Masked() string {
	if c.IsEmpty() {
		return "<empty>"
	}
	if len(c) <= 8 {
		return "****"
	}
	return "****" + string(c[len(c)-4:])
}
