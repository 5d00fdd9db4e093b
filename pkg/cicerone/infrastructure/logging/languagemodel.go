package logging

import (
	"context"
	"fmt"
	"time"

	"kgeyst.com/cicerone/pkg/cicerone/domain"
	"kgeyst.com/cicerone/pkg/common"
)

type languageModelDecorator struct {
	wrappedLanguageModel domain.LanguageModel
	logger               common.Logger
}

func NewLanguageModelDecorator(wrappedLanguageModel domain.LanguageModel, logger common.Logger) domain.LanguageModel {
	return &languageModelDecorator{
		wrappedLanguageModel: wrappedLanguageModel,
		logger:               logger,
	}
}

func (l *languageModelDecorator) Name() string {
	return l.wrappedLanguageModel.Name()
}

func (l *languageModelDecorator) Complete(ctx context.Context, credential domain.Credential, prompt string) (string, error) {
	l.logger.Log(fmt.Sprintf("\n================\n raw prompt (using '%s', key %s):\n%s\n================\n\n", l.Name(), credential.Masked(), prompt))
	t := time.Now()
	response, err := l.wrappedLanguageModel.Complete(ctx, credential, prompt)
	if err != nil {
		l.logger.Log(fmt.Sprintf("'%s' failed after %d ms: %s", l.Name(), time.Since(t).Milliseconds(), err))
		return "", err
	}
	l.logger.Log(fmt.Sprintf("\n================\n raw prompt response:\n%s\n (took %d ms)\n================\n", response, time.Since(t).Milliseconds()))
	return response, nil
}
