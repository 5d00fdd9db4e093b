package openai

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"kgeyst.com/cicerone/pkg/cicerone/domain"
	"kgeyst.com/cicerone/pkg/common"
)

const (
	providerName = "OpenAI"

	// ConfigKeyEndpoint the base URL of the API (the SDK appends "chat/completions")
	ConfigKeyEndpoint = "openAIEndpoint"
	// ConfigKeyModel the model used both for images and text
	ConfigKeyModel = "openAIModel"
	// ConfigKeyTimeout when to give up on a request, in milliseconds (0 = no timeout)
	ConfigKeyTimeout = "providerTimeout"

	defaultEndpoint = "https://api.openai.com/v1/"
	defaultModel    = openai.ChatModelGPT4o
)

// Client talks to the OpenAI chat completions API. It implements both domain.VisionModel and domain.LanguageModel.
// The API key is not part of the client: it comes with every call from the user's session.
type Client struct {
	openAI openai.Client
	model  string
}

func NewClient(config *common.Config) *Client {
	options := []option.RequestOption{
		option.WithBaseURL(config.GetStringOrDefault(ConfigKeyEndpoint, defaultEndpoint)),
		option.WithMaxRetries(0),
	}
	if timeout := config.GetDurationOrDefault(ConfigKeyTimeout, 0); timeout > 0 {
		options = append(options, option.WithRequestTimeout(timeout))
	}
	return &Client{
		openAI: openai.NewClient(options...),
		model:  config.GetStringOrDefault(ConfigKeyModel, defaultModel),
	}
}

func (c *Client) Name() string {
	return providerName
}

func (c *Client) Describe(ctx context.Context, credential domain.Credential, image domain.EncodedImage, instruction string) (string, error) {
	return c.chat(ctx, credential, openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(instruction),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: image.DataURL()}),
	}))
}

func (c *Client) Complete(ctx context.Context, credential domain.Credential, prompt string) (string, error) {
	return c.chat(ctx, credential, openai.UserMessage(prompt))
}

func (c *Client) chat(ctx context.Context, credential domain.Credential, message openai.ChatCompletionMessageParamUnion) (string, error) {
	completion, err := c.openAI.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Model:    c.model,
			Messages: []openai.ChatCompletionMessageParamUnion{message},
		},
		option.WithAPIKey(string(credential)),
	)
	if err != nil {
		return "", toProviderError(err)
	}
	if len(completion.Choices) == 0 {
		return "", domain.NewProviderError(providerName, domain.FailureReasonMalformedResponse, errors.New("no choices in response"))
	}
	return completion.Choices[0].Message.Content, nil
}

// toProviderError classifies an SDK error. Anything that is neither an API error nor a failed round trip
// is a response the SDK couldn't decode.
func toProviderError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return domain.NewProviderStatusError(providerName, apiErr.StatusCode, apiErr.Message)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.NewProviderError(providerName, domain.FailureReasonTransport, fmt.Errorf("failed to send request: %w", err))
	}
	return domain.NewProviderError(providerName, domain.FailureReasonMalformedResponse, fmt.Errorf("failed to parse response: %w", err))
}
