package domain

import (
	"context"
	"fmt"
	"strings"

	"kgeyst.com/cicerone/pkg/common"
)

// GuideService is the main orchestrator: it turns an uploaded image into a place identity and answers questions
// about the place. Every operation receives the session explicitly and runs under the session's lock, so the
// flow within one session stays sequential: at most one analysis or question at a time.
type GuideService struct {
	visionModel   VisionModel
	languageModel LanguageModel
	webSearcher   WebSearcher // nil if research is disabled
	logger        common.Logger
}

// NewGuideService `webSearcher` can be nil: questions are then answered by the language model alone.
func NewGuideService(
	visionModel VisionModel,
	languageModel LanguageModel,
	webSearcher WebSearcher,
	logger common.Logger,
) *GuideService {
	return &GuideService{
		visionModel:   visionModel,
		languageModel: languageModel,
		webSearcher:   webSearcher,
		logger:        logger,
	}
}

// ResearchEnabled true if answers are grounded on web search results.
func (g *GuideService) ResearchEnabled() bool {
	return g.webSearcher != nil
}

// AnalyzeImage identifies the place in the image. A new image always replaces the previous place. If the vision
// call fails, the session stays in SessionStateImageReceived (waiting for a re-upload) and the previous identity
// is left as is.
func (g *GuideService) AnalyzeImage(ctx context.Context, session *Session, image UploadedImage) (*Analysis, error) {
	session.lock()
	defer session.unlock()
	if session.credential.IsEmpty() {
		return nil, ErrMissingCredential
	}
	session.state = SessionStateImageReceived
	session.image = nil
	encodedImage := image.Encode()
	description, err := g.visionModel.Describe(ctx, session.credential, encodedImage, VisionInstruction)
	if err != nil {
		g.logger.Log(fmt.Sprintf("session %s: image analysis failed: %s", session.id, err))
		return nil, err
	}
	identity := ExtractPlaceIdentity(description)
	session.identity = &identity
	session.description = description
	session.image = &encodedImage
	session.state = SessionStateIdentityConfirmed
	return &Analysis{
		Description: description,
		Identity:    identity,
		Image:       encodedImage,
		Sections:    []Section{{Heading: SectionImageAnalysis, Body: description}},
	}, nil
}

// ConfirmPlaceName lets the user correct the name of the place. The location can't be edited.
func (g *GuideService) ConfirmPlaceName(session *Session, name string) error {
	session.lock()
	defer session.unlock()
	if session.state != SessionStateIdentityConfirmed {
		return ErrNoPlaceIdentified
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyPlaceName
	}
	session.identity.Name = name
	return nil
}

// Ask answers a free-form question about the current place. A blank question never reaches any provider.
func (g *GuideService) Ask(ctx context.Context, session *Session, question string) (*Answer, error) {
	session.lock()
	defer session.unlock()
	if session.credential.IsEmpty() {
		return nil, ErrMissingCredential
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	identity, err := g.checkReadyForQuestions(session)
	if err != nil {
		return nil, err
	}
	if g.webSearcher == nil {
		response, err := g.complete(ctx, session, formatQuestionPrompt(question, identity))
		if err != nil {
			return nil, err
		}
		return &Answer{
			Response: response,
			Sections: []Section{{Heading: SectionDetailedResponse, Body: response}},
		}, nil
	}
	research, err := g.webSearcher.Search(ctx, identity.Name)
	if err != nil {
		g.logger.Log(fmt.Sprintf("session %s: web search failed: %s", session.id, err))
		return nil, err
	}
	response, err := g.complete(ctx, session, formatQuestionWithResearchPrompt(question, identity, research))
	if err != nil {
		return nil, err
	}
	return &Answer{
		Research: research,
		Response: response,
		Sections: []Section{
			{Heading: SectionResearchFindings, Body: research},
			{Heading: SectionDetailedResponse, Body: response},
		},
	}, nil
}

// AskCanned answers one of the fixed follow-up questions (see CannedQueries). Doesn't change the session's state.
func (g *GuideService) AskCanned(ctx context.Context, session *Session, topic Topic) (*Answer, error) {
	query, err := FindCannedQuery(topic)
	if err != nil {
		return nil, err
	}
	session.lock()
	defer session.unlock()
	identity, err := g.checkReadyForQuestions(session)
	if err != nil {
		return nil, err
	}
	response, err := g.complete(ctx, session, query.Prompt(identity))
	if err != nil {
		return nil, err
	}
	return &Answer{
		Response: response,
		Sections: []Section{{Heading: query.Title, Body: response}},
	}, nil
}

func (g *GuideService) checkReadyForQuestions(session *Session) (PlaceIdentity, error) {
	if session.credential.IsEmpty() {
		return PlaceIdentity{}, ErrMissingCredential
	}
	if session.state != SessionStateIdentityConfirmed || session.identity == nil {
		return PlaceIdentity{}, ErrNoPlaceIdentified
	}
	return *session.identity, nil
}

func (g *GuideService) complete(ctx context.Context, session *Session, prompt string) (string, error) {
	response, err := g.languageModel.Complete(ctx, session.credential, prompt)
	if err != nil {
		g.logger.Log(fmt.Sprintf("session %s: text generation failed: %s", session.id, err))
		return "", err
	}
	return response, nil
}
