package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingCredential = errors.New("missing API credential")
	ErrEmptyQuestion     = errors.New("empty question")
	ErrEmptyPlaceName    = errors.New("empty place name")
	ErrNoPlaceIdentified = errors.New("no place identified yet")
	ErrSessionNotFound   = errors.New("session not found")
	ErrUnknownTopic      = errors.New("unknown topic")
)

// FailureReason why a call to a provider failed.
type FailureReason int

const (
	// FailureReasonProvider the provider returned an error not covered by other reasons
	FailureReasonProvider = FailureReason(iota)
	// FailureReasonTransport the provider couldn't be reached
	FailureReasonTransport
	// FailureReasonAuthentication the credential was rejected
	FailureReasonAuthentication
	// FailureReasonQuota rate limits or quota exceeded
	FailureReasonQuota
	// FailureReasonMalformedResponse the response couldn't be understood
	FailureReasonMalformedResponse
)

func (f FailureReason) String() string {
	switch f {
	case FailureReasonTransport:
		return "transport"
	case FailureReasonAuthentication:
		return "authentication"
	case FailureReasonQuota:
		return "quota"
	case FailureReasonMalformedResponse:
		return "malformed_response"
	default:
		return "provider"
	}
}

// FailureReasonFromStatus classifies a non-2xx HTTP status code.
func FailureReasonFromStatus(statusCode int) FailureReason {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return FailureReasonAuthentication
	case http.StatusTooManyRequests, http.StatusPaymentRequired:
		return FailureReasonQuota
	}
	return FailureReasonProvider
}

// ProviderError is the only kind of error remote clients (vision, text, search) return. There are no retries:
// the error goes straight to the caller of GuideService.
type ProviderError struct {
	Provider   string
	Reason     FailureReason
	StatusCode int // 0 if no HTTP response was received
	Err        error
}

func NewProviderError(provider string, reason FailureReason, err error) *ProviderError {
	return &ProviderError{Provider: provider, Reason: reason, Err: err}
}

// NewProviderStatusError an error for a non-2xx response; `body` is kept for the logs.
func NewProviderStatusError(provider string, statusCode int, body string) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Reason:     FailureReasonFromStatus(statusCode),
		StatusCode: statusCode,
		Err:        fmt.Errorf("API error (status %d): %s", statusCode, body),
	}
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s request failed (%s): %v", e.Provider, e.Reason, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// UserMessage maps any error returned by GuideService to the text shown to the user.
func UserMessage(err error) string {
	var providerErr *ProviderError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return "Please enter your API key"
	case errors.Is(err, ErrEmptyQuestion):
		return "Please enter a specific question."
	case errors.Is(err, ErrEmptyPlaceName):
		return "Please enter the name of the place."
	case errors.Is(err, ErrNoPlaceIdentified):
		return "Please upload an image of a historical place first."
	case errors.Is(err, ErrUnsupportedImageFormat):
		return "Please upload a png, jpg or jpeg image."
	case errors.Is(err, ErrImageTooLarge):
		return "The image is too large."
	case errors.Is(err, ErrSessionNotFound):
		return "Your session has expired, please start again."
	case errors.Is(err, ErrUnknownTopic):
		return "Unknown topic."
	case errors.As(err, &providerErr):
		if providerErr.Reason == FailureReasonAuthentication {
			return fmt.Sprintf("The %s service rejected the API key.", providerErr.Provider)
		}
		return fmt.Sprintf("An error occurred while contacting the %s service. Please try again.", providerErr.Provider)
	}
	return "An error occurred. Please try again."
}

// IsWarning true for errors caused by user input (as opposed to provider failures).
func IsWarning(err error) bool {
	return errors.Is(err, ErrMissingCredential) ||
		errors.Is(err, ErrEmptyQuestion) ||
		errors.Is(err, ErrEmptyPlaceName) ||
		errors.Is(err, ErrNoPlaceIdentified) ||
		errors.Is(err, ErrUnsupportedImageFormat) ||
		errors.Is(err, ErrImageTooLarge) ||
		errors.Is(err, ErrUnknownTopic)
}
