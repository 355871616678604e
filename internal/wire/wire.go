package wire

import (
	"net/http"

	"passwordless-auth/internal/adaptor"
	"passwordless-auth/internal/data/repository"
	"passwordless-auth/internal/notify"
	"passwordless-auth/internal/usecase"
	"passwordless-auth/pkg/middleware"
	"passwordless-auth/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes
func Wiring(repo *repository.Repository, senders notify.Senders, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, senders, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, repo *repository.Repository, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, repo, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
