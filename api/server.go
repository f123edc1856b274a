package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-cms-backend/config"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/services"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// NewServer builds the HTTP server over store. uploader may be nil, in which
// case POST /api/uploads answers 503.
func NewServer(store database.Storage, uploader services.FileUploader, cfg config.Config) Server {
	address := fmt.Sprintf("0.0.0.0:%s", cfg.Port)
	startupTime := time.Now()

	client := services.NewContentClient(store, uploader)
	router := newRouter(client, cfg, withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return Server{server, startupTime}
}

type router struct {
	startupTime time.Time
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(client *services.ContentClient, cfg config.Config, opts ...func(*router)) *chi.Mux {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	handlers := initializeHandlers(client, router.startupTime)
	authMiddleware := newAuthMiddleware(cfg.AuthJWTSecret)

	chiRouter.Use(CORSCheckMiddleware(cfg.AcceptedOrigins))
	chiRouter.Use(corsMiddleware(cfg.AcceptedOrigins))

	responder := NewResponder(log.Logger)
	chiRouter.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responder.WriteError(w, errs.NewRouteNotFoundError())
	})
	chiRouter.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		responder.WriteError(w, errs.NewMethodNotAllowedError(r.Method))
	})

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Dur("uptime", time.Since(s.startupTime)).Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
