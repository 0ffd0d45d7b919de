package wire

import (
	"muse/internal/adaptor"
	"muse/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, reviewHandler *adaptor.ReviewHandler, log *zap.Logger) {
	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Admin(log))

		// Genre management
		r.Get("/admin/genres", movieHandler.ListGenres)
		r.Post("/admin/genres", movieHandler.CreateGenre)
		r.Delete("/admin/genres/{id}", movieHandler.DeleteGenre)

		// Movie management
		r.Post("/admin/movies", movieHandler.CreateMovie)
		r.Put("/admin/movies/{id}", movieHandler.UpdateMovie)
		r.Delete("/admin/movies/{id}", movieHandler.DeleteMovie)

		// Review moderation
		r.Get("/admin/reviews", reviewHandler.ListReviews)
	})
}
