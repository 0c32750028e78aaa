// Command followscope serves the Farcaster follow-graph explorer.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/followscope/followscope/internal/api"
	"github.com/followscope/followscope/internal/config"
	"github.com/followscope/followscope/internal/farcaster"
	"github.com/followscope/followscope/internal/logrelay"
	"github.com/followscope/followscope/internal/service"
	"github.com/followscope/followscope/internal/session"
	"github.com/followscope/followscope/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("loading config")
	}

	level, _ := logrus.ParseLevel(cfg.LogLevel) // validated by config.Load
	log.SetLevel(level)

	if level < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backlog := logrelay.NewBuffer(cfg.LogBufferSize)
	hub := ws.NewHub(log, backlog)
	log.AddHook(logrelay.NewHook(backlog, hub, log.GetLevel()))

	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()

	go hub.Run(hubCtx)

	upstream := farcaster.New(log,
		farcaster.WithFnamesURL(cfg.FnamesURL),
		farcaster.WithHubURL(cfg.HubURL),
		farcaster.WithAPIKey(cfg.HubAPIKey.Value()),
		farcaster.WithHTTPClient(&http.Client{Timeout: cfg.UpstreamTimeout}),
		farcaster.WithRateLimit(cfg.UpstreamRPS, cfg.UpstreamBurst),
		farcaster.WithPaging(cfg.LinkPageSize, cfg.MaxLinkPages),
		farcaster.WithFIDCache(cfg.FIDCacheSize, cfg.FIDCacheTTL),
	)

	assembler := service.NewGraphService(upstream, log, cfg.FetchConcurrency,
		service.WithAssembleTimeout(cfg.AssembleTimeout),
		service.WithMaxNodes(cfg.MaxGraphNodes),
	)

	// Viewer connections outlive the signal so the hub can drain them.
	router := api.NewRouter(hubCtx, &api.RouterDeps{
		Log:          log,
		Hub:          hub,
		Assembler:    assembler,
		Sessions:     session.NewStore(cfg.MaxSessions, cfg.SessionTTL),
		Logs:         backlog,
		CORSOrigins:  cfg.CORSOrigins,
		OriginHosts:  cfg.OriginHosts(),
		MaxUsernames: cfg.MaxUsernames,
		Version:      config.Version,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		log.WithFields(logrus.Fields{
			"addr":    cfg.Addr(),
			"version": config.Version,
			"hub":     cfg.HubURL,
		}).Info("followscope listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")

	// Drain log viewers first; hijacked WebSocket connections are not
	// tracked by http.Server.Shutdown.
	hub.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return <-errCh
}
