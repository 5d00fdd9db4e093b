package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"kgeyst.com/cicerone/pkg/cicerone/api"
	"kgeyst.com/cicerone/pkg/cicerone/infrastructure/metrics"
	"kgeyst.com/cicerone/pkg/cicerone/webui"
	"kgeyst.com/cicerone/pkg/common"
)

const (
	configKeyListenAddress  = "listenAddress"
	configKeyExposeMetrics  = "exposeMetrics"
	idleSessionsCheckPeriod = time.Minute
)

func main() {
	err := mainImpl()
	if err != nil {
		panic(err)
	}
}

func mainImpl() error {
	config, err := common.LoadConfig("config.yaml")
	if err != nil {
		return err
	}
	logger := api.NewLogger(config)
	cicerone, err := api.NewAPI(config, logger)
	if err != nil {
		return err
	}
	metrics.Register()
	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:    config.GetStringOrDefault(configKeyListenAddress, ":8080"),
		Handler: webui.NewRouter(webui.NewHandlers(cicerone, logger), config.GetBoolOrDefault(configKeyExposeMetrics, true)),
	}

	stopCleanup := make(chan struct{})
	go removeIdleSessions(cicerone, logger, stopCleanup)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log("starting HTTP server on " + server.Addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErrors:
		close(stopCleanup)
		return err
	case <-quit:
	}
	logger.Log("shutting down server...")
	close(stopCleanup)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

func removeIdleSessions(cicerone api.API, logger common.Logger, stop <-chan struct{}) {
	ticker := time.NewTicker(idleSessionsCheckPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			count, err := cicerone.RemoveIdleSessions()
			if err != nil {
				logger.Log("failed to remove idle sessions: " + err.Error())
				continue
			}
			if count > 0 {
				logger.Log(fmt.Sprintf("removed %d idle session(s)", count))
			}
		}
	}
}
