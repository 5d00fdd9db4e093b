package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"kgeyst.com/cicerone/pkg/cicerone/domain"
	"kgeyst.com/cicerone/pkg/cicerone/infrastructure/inmemory"
	"kgeyst.com/cicerone/pkg/cicerone/infrastructure/metrics"
	"kgeyst.com/cicerone/pkg/common"
)

const (
	// ConfigKeyLogPath where the log file is written ("stdout" for the console); the console is also used if the
	// file can't be opened
	ConfigKeyLogPath = "logPath"
	// ConfigKeyMaxImageSize the biggest image accepted from a user, in bytes
	ConfigKeyMaxImageSize = "maxImageSize"
	// ConfigKeySessionMaxIdle after how many milliseconds without any action a session is forgotten
	ConfigKeySessionMaxIdle = "sessionMaxIdle"
)

const (
	defaultMaxImageSize   = 10 * 1024 * 1024
	defaultSessionMaxIdle = 30 * time.Minute
)

type api struct {
	guideService      *domain.GuideService
	sessionRepository domain.SessionRepository
	maxImageSize      int64
	sessionMaxIdle    time.Duration
}

// API is the entrypoint to Cicerone. It shouldn't contain any logic of its own; it glues all the components together
// and provides a public interface for domain.GuideService.
// This API can be used in various contexts: in an IRC chat, an HTTP server, console input/output etc.
// Every user of a front end gets a session of their own, identified by the string returned by StartSession.
type API interface {
	StartSession() (string, error)
	// EndSession forgets everything about the session, including its credential.
	EndSession(sessionID string) error
	// RemoveIdleSessions ends sessions without any action for longer than the configured sessionMaxIdle.
	RemoveIdleSessions() (int, error)
	// Session the current state of the session, for rendering.
	Session(sessionID string) (domain.SessionSnapshot, error)
	// SetCredential supplies the API key of the vision/text provider. It's never stored outside the session.
	SetCredential(sessionID string, credential string) error
	// AnalyzeImage identifies the place in the image read from `r`. The format is deduced from `fileName`.
	AnalyzeImage(ctx context.Context, sessionID string, fileName string, r io.Reader) (*domain.Analysis, error)
	// AnalyzeImageURL same as AnalyzeImage, but the image is downloaded first.
	AnalyzeImageURL(ctx context.Context, sessionID string, imageURL string) (*domain.Analysis, error)
	// ConfirmPlaceName corrects the name of the identified place.
	ConfirmPlaceName(sessionID string, name string) error
	// Ask answers a free-form question about the identified place.
	Ask(ctx context.Context, sessionID string, question string) (*domain.Answer, error)
	// AskCanned answers one of the predefined questions (see CannedQueries).
	AskCanned(ctx context.Context, sessionID string, topic string) (*domain.Answer, error)
	CannedQueries() []domain.CannedQuery
	// ResearchEnabled true if answers to free-form questions are grounded on web search.
	ResearchEnabled() bool
}

// NewLogger the logger configured by logPath.
func NewLogger(config *common.Config) common.Logger {
	logPath := config.GetStringOrDefault(ConfigKeyLogPath, "log.txt")
	if logPath == "stdout" {
		return common.NewConsoleLogger()
	}
	return common.NewFileLogger(logPath)
}

func NewAPI(config *common.Config, logger common.Logger) (API, error) {
	visionModel, languageModel, err := newModels(config, logger)
	if err != nil {
		return nil, err
	}
	webSearcher, err := newWebSearcher(config, logger)
	if err != nil {
		return nil, err
	}
	return NewAPIFromComponents(
		domain.NewGuideService(visionModel, languageModel, webSearcher, logger),
		inmemory.NewSessionRepository(),
		config,
	), nil
}

// NewAPIFromComponents is for callers which bring their own providers (tests, mostly).
func NewAPIFromComponents(
	guideService *domain.GuideService,
	sessionRepository domain.SessionRepository,
	config *common.Config,
) API {
	return &api{
		guideService:      guideService,
		sessionRepository: sessionRepository,
		maxImageSize:      int64(config.GetIntOrDefault(ConfigKeyMaxImageSize, defaultMaxImageSize)),
		sessionMaxIdle:    config.GetDurationOrDefault(ConfigKeySessionMaxIdle, defaultSessionMaxIdle),
	}
}

func (a *api) StartSession() (string, error) {
	session := domain.NewSession(a.sessionRepository.NextID())
	err := a.sessionRepository.Store(session)
	if err != nil {
		return "", err
	}
	metrics.ActiveSessions.Inc()
	return session.ID(), nil
}

func (a *api) EndSession(sessionID string) error {
	err := a.sessionRepository.Remove(sessionID)
	if err != nil {
		return err
	}
	metrics.ActiveSessions.Dec()
	return nil
}

func (a *api) RemoveIdleSessions() (int, error) {
	count, err := a.sessionRepository.RemoveIdle(a.sessionMaxIdle)
	if err != nil {
		return 0, err
	}
	metrics.ActiveSessions.Sub(float64(count))
	metrics.ExpiredSessionsTotal.Add(float64(count))
	return count, nil
}

func (a *api) Session(sessionID string) (domain.SessionSnapshot, error) {
	session, err := a.sessionRepository.Find(sessionID)
	if err != nil {
		return domain.SessionSnapshot{}, err
	}
	return session.Snapshot(), nil
}

func (a *api) SetCredential(sessionID string, credential string) error {
	session, err := a.sessionRepository.Find(sessionID)
	if err != nil {
		return err
	}
	session.SetCredential(domain.Credential(credential))
	return nil
}

func (a *api) AnalyzeImage(ctx context.Context, sessionID string, fileName string, r io.Reader) (*domain.Analysis, error) {
	session, err := a.sessionRepository.Find(sessionID)
	if err != nil {
		return nil, err
	}
	image, err := domain.ReadUploadedImage(r, fileName, a.maxImageSize)
	if err != nil {
		return nil, err
	}
	return a.guideService.AnalyzeImage(ctx, session, image)
}

func (a *api) AnalyzeImageURL(ctx context.Context, sessionID string, imageURL string) (*domain.Analysis, error) {
	session, err := a.sessionRepository.Find(sessionID)
	if err != nil {
		return nil, err
	}
	if !common.IsImageFormat(imageURL) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedImageFormat, imageURL)
	}
	parsedURL, err := url.Parse(imageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedImageFormat, imageURL)
	}
	format, err := domain.ImageFormatFromName(parsedURL.Path)
	if err != nil {
		return nil, err
	}
	data, err := common.ReadAllFromURL(ctx, imageURL, a.maxImageSize)
	if errors.Is(err, common.ErrContentTooLarge) {
		return nil, domain.ErrImageTooLarge
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	return a.guideService.AnalyzeImage(ctx, session, domain.UploadedImage{Data: data, Format: format})
}

func (a *api) ConfirmPlaceName(sessionID string, name string) error {
	session, err := a.sessionRepository.Find(sessionID)
	if err != nil {
		return err
	}
	return a.guideService.ConfirmPlaceName(session, name)
}

func (a *api) Ask(ctx context.Context, sessionID string, question string) (*domain.Answer, error) {
	session, err := a.sessionRepository.Find(sessionID)
	if err != nil {
		return nil, err
	}
	return a.guideService.Ask(ctx, session, question)
}

func (a *api) AskCanned(ctx context.Context, sessionID string, topic string) (*domain.Answer, error) {
	session, err := a.sessionRepository.Find(sessionID)
	if err != nil {
		return nil, err
	}
	return a.guideService.AskCanned(ctx, session, domain.Topic(topic))
}

func (a *api) CannedQueries() []domain.CannedQuery {
	return domain.CannedQueries()
}

func (a *api) ResearchEnabled() bool {
	return a.guideService.ResearchEnabled()
}
