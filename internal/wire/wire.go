package wire

import (
	"fmt"
	"net/http"

	"muse/internal/adaptor"
	"muse/internal/data/repository"
	"muse/internal/usecase"
	"muse/internal/web"
	"muse/pkg/middleware"
	"muse/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) (*App, error) {
	renderer, err := web.NewRenderer(logger)
	if err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}

	// Initialize services dan handlers
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, renderer, config, logger)

	return &App{
		Router:  setupRouter(handler, service, config, logger),
		Service: service,
	}, nil
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	if config.App.TrustProxy {
		// Forwarded headers are client-controlled without a proxy in front
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.LoadSession(service.Auth, config.Session.CookieName, logger))

	r.NotFound(handler.Page.NotFound)

	// HTML pages
	wirePage(r, handler.Page, config)

	// JSON API
	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.CORS(config.CORS.AllowedOrigins))
		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			utils.WriteError(w, http.StatusNotFound, "Not found", nil)
		})

		wireAuth(api, handler.Auth, config)
		wireReview(api, handler.Review)
		wireUser(api, handler.User, logger)
		wireMovie(api, handler.Movie, handler.Review, logger)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func credentialLimit(config *utils.Config) func(http.Handler) http.Handler {
	return middleware.CredentialRateLimit(
		config.RateLimit.LoginRequests,
		secondsToDuration(config.RateLimit.LoginWindowSeconds),
	)
}
