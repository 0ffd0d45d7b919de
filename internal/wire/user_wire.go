package wire

import (
	"muse/internal/adaptor"
	"muse/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, log *zap.Logger) {
	// GET /api/user/profile
	r.With(middleware.RequireAuth()).Get("/user/profile", userHandler.GetProfile)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Admin(log))

		r.Get("/admin/users", userHandler.GetAllUsers)
		r.Delete("/admin/users/{id}", userHandler.DeleteUser)
	})
}
