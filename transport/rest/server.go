package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

const shutdownTimeout = 5 * time.Second

// Router builds the HTTP surface: room and game views plus the word catalogue.
func Router(handlers Handlers) http.Handler {
	mux := chi.NewRouter()

	mux.Use(cors.AllowAll().Handler)

	mux.Get("/ping", handlers.PingHandler)

	mux.Route("/rooms", func(r chi.Router) {
		r.Get("/{publicID}", handlers.GetRoomHandler)
	})

	mux.Route("/games", func(r chi.Router) {
		r.Get("/{gameID}", handlers.GetGameHandler)
		r.Get("/{gameID}/events", handlers.GetGameEventsHandler)
	})

	mux.Route("/words", func(r chi.Router) {
		r.Post("/pairs", handlers.CreatePairHandler)
		r.Get("/{word}", handlers.GetWordHandler)
	})

	return mux
}

// Start - serves the HTTP views until ctx is done.
func Start(ctx context.Context, logger *slog.Logger, port string, handlers Handlers) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      Router(handlers),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down http server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
