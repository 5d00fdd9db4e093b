package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"google.golang.org/genai"

	"kgeyst.com/cicerone/pkg/cicerone/domain"
	"kgeyst.com/cicerone/pkg/common"
)

const (
	providerName = "Gemini"

	// ConfigKeyEndpoint the base URL of the Generative Language API (empty = the SDK's default)
	ConfigKeyEndpoint = "geminiEndpoint"
	// ConfigKeyModel the model used both for images and text
	ConfigKeyModel = "geminiModel"
	// ConfigKeyTimeout when to give up on a request, in milliseconds (0 = no timeout)
	ConfigKeyTimeout = "providerTimeout"

	defaultModel = "gemini-2.0-flash"
)

// Client talks to the Gemini generateContent API. It implements both domain.VisionModel and domain.LanguageModel.
// The API key comes with every call from the user's session, so the SDK client is built per call; the SDK
// sends the key in a header, so it never ends up in URLs (and therefore in error messages and logs).
type Client struct {
	endpoint string
	model    string
	http     *http.Client
}

func NewClient(config *common.Config) *Client {
	return &Client{
		endpoint: config.GetStringOrDefault(ConfigKeyEndpoint, ""),
		model:    config.GetStringOrDefault(ConfigKeyModel, defaultModel),
		http:     &http.Client{Timeout: config.GetDurationOrDefault(ConfigKeyTimeout, 0)},
	}
}

func (c *Client) Name() string {
	return providerName
}

func (c *Client) Describe(ctx context.Context, credential domain.Credential, image domain.EncodedImage, instruction string) (string, error) {
	data, err := image.Decode()
	if err != nil {
		return "", domain.NewProviderError(providerName, domain.FailureReasonProvider, fmt.Errorf("failed to decode image: %w", err))
	}
	return c.generateContent(ctx, credential, genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText(instruction),
		genai.NewPartFromBytes(data, image.MIMEType),
	}, genai.RoleUser))
}

func (c *Client) Complete(ctx context.Context, credential domain.Credential, prompt string) (string, error) {
	return c.generateContent(ctx, credential, genai.NewContentFromText(prompt, genai.RoleUser))
}

func (c *Client) generateContent(ctx context.Context, credential domain.Credential, content *genai.Content) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      string(credential),
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  c.http,
		HTTPOptions: genai.HTTPOptions{BaseURL: c.endpoint},
	})
	if err != nil {
		// The SDK's message dumps the whole config, key included.
		return "", domain.NewProviderError(providerName, domain.FailureReasonProvider, errors.New("failed to create client"))
	}
	response, err := client.Models.GenerateContent(ctx, c.model, []*genai.Content{content}, nil)
	if err != nil {
		return "", toProviderError(err)
	}
	if len(response.Candidates) == 0 {
		return "", domain.NewProviderError(providerName, domain.FailureReasonMalformedResponse, errors.New("no candidates in response"))
	}
	// The answer can be split into several text parts.
	text := response.Text()
	if text == "" {
		return "", domain.NewProviderError(providerName, domain.FailureReasonMalformedResponse, errors.New("no text part in response"))
	}
	return text, nil
}

func toProviderError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return domain.NewProviderStatusError(providerName, apiErr.Code, apiErr.Message)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.NewProviderError(providerName, domain.FailureReasonTransport, fmt.Errorf("failed to send request: %w", err))
	}
	return domain.NewProviderError(providerName, domain.FailureReasonMalformedResponse, fmt.Errorf("failed to parse response: %w", err))
}
