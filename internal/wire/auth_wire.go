package wire

import (
	"muse/internal/adaptor"
	"muse/pkg/middleware"
	"muse/pkg/utils"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, config *utils.Config) {
	// ==================== PUBLIC ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(credentialLimit(config))

		// POST /api/register - Create account and open a session
		r.Post("/register", authHandler.Register)

		// POST /api/login - Exchange credentials for a bearer token
		r.Post("/login", authHandler.Login)
	})

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.RequireAuth()).Post("/logout", authHandler.Logout)
}
