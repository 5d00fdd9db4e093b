package webui

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kgeyst.com/cicerone/pkg/cicerone/api"
	"kgeyst.com/cicerone/pkg/cicerone/domain"
	"kgeyst.com/cicerone/pkg/common"
)

// SessionCookieName the cookie which carries the session ID between requests.
const SessionCookieName = "cicerone_session"

// Handlers serve a single HTML page; every form posts back to it and gets the updated page in response.
// Nothing the user sends (the image included) outlives the session.
type Handlers struct {
	cicerone api.API
	logger   common.Logger
}

func NewHandlers(cicerone api.API, logger common.Logger) *Handlers {
	return &Handlers{
		cicerone: cicerone,
		logger:   logger,
	}
}

// NewRouter a gin engine with all the routes of the UI, plus /health and /metrics.
// NewRouter `exposeMetrics` adds the Prometheus scrape endpoint (GET /metrics) next to the page routes.
func NewRouter(handlers *Handlers, exposeMetrics bool) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(newPageTemplate())
	handlers.Register(router)
	if exposeMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	return router
}

func (h *Handlers) Register(router gin.IRouter) {
	router.GET("/", h.Index)
	router.POST("/credential", h.SetCredential)
	router.POST("/image", h.AnalyzeImage)
	router.POST("/name", h.ConfirmPlaceName)
	router.POST("/question", h.Ask)
	router.POST("/canned/:topic", h.AskCanned)
	router.POST("/session/end", h.EndSession)
	router.GET("/health", h.HealthCheck)
}

func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cicerone",
	})
}

func (h *Handlers) Index(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	h.render(c, sessionID, nil, nil)
}

func (h *Handlers) SetCredential(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	err := h.cicerone.SetCredential(sessionID, c.PostForm("credential"))
	h.render(c, sessionID, nil, err)
}

func (h *Handlers) AnalyzeImage(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.render(c, sessionID, nil, fmt.Errorf("%w: no file uploaded", domain.ErrUnsupportedImageFormat))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.render(c, sessionID, nil, err)
		return
	}
	defer func() {
		_ = file.Close()
	}()
	analysis, err := h.cicerone.AnalyzeImage(c.Request.Context(), sessionID, fileHeader.Filename, file)
	if err != nil {
		h.render(c, sessionID, nil, err)
		return
	}
	h.render(c, sessionID, analysis.Sections, nil)
}

func (h *Handlers) ConfirmPlaceName(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	err := h.cicerone.ConfirmPlaceName(sessionID, c.PostForm("name"))
	h.render(c, sessionID, nil, err)
}

func (h *Handlers) Ask(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	answer, err := h.cicerone.Ask(c.Request.Context(), sessionID, c.PostForm("question"))
	if err != nil {
		h.render(c, sessionID, nil, err)
		return
	}
	h.render(c, sessionID, answer.Sections, nil)
}

func (h *Handlers) AskCanned(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	answer, err := h.cicerone.AskCanned(c.Request.Context(), sessionID, c.Param("topic"))
	if err != nil {
		h.render(c, sessionID, nil, err)
		return
	}
	h.render(c, sessionID, answer.Sections, nil)
}

func (h *Handlers) EndSession(c *gin.Context) {
	sessionID, err := c.Cookie(SessionCookieName)
	if err == nil {
		err = h.cicerone.EndSession(sessionID)
		if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			h.logger.Log(fmt.Sprintf("failed to end session %s: %s", sessionID, err))
		}
	}
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// sessionID finds the session of the request by its cookie or starts a new one (if there's no cookie, or if the
// session has expired).
func (h *Handlers) sessionID(c *gin.Context) (string, bool) {
	sessionID, err := c.Cookie(SessionCookieName)
	if err == nil {
		_, err = h.cicerone.Session(sessionID)
		if err == nil {
			return sessionID, true
		}
	}
	sessionID, err = h.cicerone.StartSession()
	if err != nil {
		h.logger.Log("failed to start a session: " + err.Error())
		c.String(http.StatusInternalServerError, "failed to start a session")
		return "", false
	}
	c.SetCookie(SessionCookieName, sessionID, 0, "/", "", false, true)
	return sessionID, true
}

func (h *Handlers) render(c *gin.Context, sessionID string, sections []domain.Section, actionErr error) {
	snapshot, err := h.cicerone.Session(sessionID)
	if err != nil {
		actionErr = err
	}
	data := newPageData(snapshot, h.cicerone.ResearchEnabled(), h.cicerone.CannedQueries())
	data.Sections = sections
	status := http.StatusOK
	switch {
	case actionErr == nil:
	case domain.IsWarning(actionErr):
		data.Warning = domain.UserMessage(actionErr)
		status = http.StatusBadRequest
	default:
		h.logger.Log(fmt.Sprintf("session %s: %s", sessionID, actionErr))
		data.Error = domain.UserMessage(actionErr)
		status = http.StatusBadGateway
	}
	c.HTML(status, pageTemplateName, data)
}
