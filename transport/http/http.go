package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"staysync/config"
	"staysync/shared/constant"
	"staysync/transport/http/middleware"
	"staysync/transport/http/response"
	"staysync/transport/http/router"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	Middleware middleware.AppMiddleware
	Auth       middleware.Auth

	state  atomic.Int32
	mux    chi.Router
	server *http.Server
}

func New(cfg *config.Config, r router.Router, appMiddleware middleware.AppMiddleware, auth middleware.Auth) *HTTP {
	return &HTTP{
		Config:     cfg,
		Router:     r,
		Middleware: appMiddleware,
		Auth:       auth,
	}
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

// Serve blocks until the listener fails or Shutdown is called.
func (h *HTTP) Serve() error {
	h.setup()

	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: constant.HTTPTimeout,
	}

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("failed to start HTTP server")

		return err //nolint:wrapcheck
	}

	return nil
}

// ServeHTTP lets the router run behind another server, e.g. a serverless entrypoint.
func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.mux == nil {
		h.setup()
	}

	h.mux.ServeHTTP(w, r)
}

// Shutdown stops accepting work in two phases. During the grace period the health check reports
// unavailable so load balancers drain the instance; during the cleanup period in-flight requests finish.
func (h *HTTP) Shutdown(ctx context.Context) error {
	if h.server == nil {
		return nil
	}

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Shutting down HTTP server now.")

		return h.server.Shutdown(ctx) //nolint:wrapcheck
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")
	h.state.Store(int32(ServerStateInGracePeriod))

	select {
	case <-time.After(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second):
	case <-ctx.Done():
	}

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")
	h.state.Store(int32(ServerStateInCleanupPeriod))

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx),
		time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second+constant.ShutdownGrace)
	defer cancel()

	if err := h.server.Shutdown(cleanupCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down HTTP server")

		return err //nolint:wrapcheck
	}

	log.Info().Msg("Cleaning up completed.")

	return nil
}

func (h *HTTP) setup() {
	mux := chi.NewRouter()

	mux.Use(chiMiddleware.RealIP)
	mux.Use(chiMiddleware.Recoverer)
	mux.Use(h.Middleware.Tracing)

	if h.Config.App.CORS.Enable {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.Config.App.CORS.AllowedOrigins,
			AllowedMethods:   h.Config.App.CORS.AllowedMethods,
			AllowedHeaders:   h.Config.App.CORS.AllowedHeaders,
			AllowCredentials: h.Config.App.CORS.AllowCredentials,
			MaxAge:           h.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	mux.Get("/health", h.health)

	mux.Group(func(r chi.Router) {
		r.Use(h.Middleware.RateLimit())
		r.Use(h.Auth.APIKey)

		h.Router.SetupRoutes(r)
	})

	h.mux = mux
	h.state.Store(int32(ServerStateReady))
}

func (h *HTTP) health(w http.ResponseWriter, _ *http.Request) {
	switch h.State() {
	case ServerStateReady:
		response.WithMessage(w, http.StatusOK, "OK")
	case ServerStateInGracePeriod, ServerStateInCleanupPeriod:
		response.WithPreparingShutdown(w)
	default:
		response.WithUnhealthy(w)
	}
}
