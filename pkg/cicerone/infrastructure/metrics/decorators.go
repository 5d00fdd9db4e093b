package metrics

import (
	"context"
	"time"

	"kgeyst.com/cicerone/pkg/cicerone/domain"
)

type visionModelDecorator struct {
	wrappedVisionModel domain.VisionModel
}

func NewVisionModelDecorator(wrappedVisionModel domain.VisionModel) domain.VisionModel {
	return &visionModelDecorator{wrappedVisionModel: wrappedVisionModel}
}

func (v *visionModelDecorator) Name() string {
	return v.wrappedVisionModel.Name()
}

func (v *visionModelDecorator) Describe(
	ctx context.Context,
	credential domain.Credential,
	image domain.EncodedImage,
	instruction string,
) (string, error) {
	startedAt := time.Now()
	description, err := v.wrappedVisionModel.Describe(ctx, credential, image, instruction)
	observe(v.Name(), operationDescribe, startedAt, err)
	return description, err
}

type languageModelDecorator struct {
	wrappedLanguageModel domain.LanguageModel
}

func NewLanguageModelDecorator(wrappedLanguageModel domain.LanguageModel) domain.LanguageModel {
	return &languageModelDecorator{wrappedLanguageModel: wrappedLanguageModel}
}

func (l *languageModelDecorator) Name() string {
	return l.wrappedLanguageModel.Name()
}

func (l *languageModelDecorator) Complete(ctx context.Context, credential domain.Credential, prompt string) (string, error) {
	startedAt := time.Now()
	response, err := l.wrappedLanguageModel.Complete(ctx, credential, prompt)
	observe(l.Name(), operationComplete, startedAt, err)
	return response, err
}

type webSearcherDecorator struct {
	wrappedWebSearcher domain.WebSearcher
}

func NewWebSearcherDecorator(wrappedWebSearcher domain.WebSearcher) domain.WebSearcher {
	return &webSearcherDecorator{wrappedWebSearcher: wrappedWebSearcher}
}

func (w *webSearcherDecorator) Name() string {
	return w.wrappedWebSearcher.Name()
}

func (w *webSearcherDecorator) Search(ctx context.Context, query string) (string, error) {
	startedAt := time.Now()
	result, err := w.wrappedWebSearcher.Search(ctx, query)
	observe(w.Name(), operationSearch, startedAt, err)
	return result, err
}
