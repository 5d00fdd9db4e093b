package domain

import "context"

// LanguageModel a generic interface for a text-generation model.
type LanguageModel interface {
	// Name the name of the provider. Useful for debugging and for error messages.
	Name() string
	// Complete sends a single prompt and returns the answer verbatim. Failures are reported as *ProviderError.
	Complete(ctx context.Context, credential Credential, prompt string) (string, error)
}
