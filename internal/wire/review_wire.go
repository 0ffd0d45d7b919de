package wire

import (
	"muse/internal/adaptor"
	"muse/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/movies/{id}/reviews/ - View movie reviews
	r.Get("/movies/{id}/reviews/", reviewHandler.GetMovieReviews)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth())

		// POST /api/movies/{id}/reviews/create/ - One review per user per movie
		r.Post("/movies/{id}/reviews/create/", reviewHandler.CreateReview)

		// PUT /api/reviews/{id}/update/ - Owner only
		r.Put("/reviews/{id}/update/", reviewHandler.UpdateReview)

		// DELETE /api/reviews/{id}/delete/ - Owner only
		r.Delete("/reviews/{id}/delete/", reviewHandler.DeleteReview)
	})
}
