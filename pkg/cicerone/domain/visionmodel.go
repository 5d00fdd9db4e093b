package domain

import "context"

// VisionInstruction the fixed instruction sent along with every uploaded image.
const VisionInstruction = "Identify the historical place in this image. Provide its name, location, and a brief historical context."

// VisionModel a multimodal model which can describe an image.
type VisionModel interface {
	// Name the name of the provider. Useful for debugging and for error messages.
	Name() string
	// Describe sends the image along with the instruction and returns the model's text verbatim.
	// Failures are reported as *ProviderError.
	Describe(ctx context.Context, credential Credential, image EncodedImage, instruction string) (string, error)
}
