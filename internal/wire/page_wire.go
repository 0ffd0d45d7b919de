package wire

import (
	"net/http"
	"time"

	"muse/internal/adaptor"
	"muse/pkg/utils"

	"github.com/go-chi/chi/v5"
)

func wirePage(r chi.Router, pageHandler *adaptor.PageHandler, config *utils.Config) {
	// ==================== PUBLIC PAGES ====================
	r.Get("/", pageHandler.MovieList)
	r.Get("/movie/{id}/", pageHandler.MovieDetail)
	r.Get("/signup/", pageHandler.SignupForm)
	r.Get("/login/", pageHandler.LoginForm)

	// Anonymous posts are redirected to /login/ by the handler itself
	r.Post("/movie/{id}/", pageHandler.SaveReview)
	r.Post("/logout/", pageHandler.Logout)

	// ==================== CREDENTIAL FORMS ====================
	r.Group(func(r chi.Router) {
		r.Use(credentialLimit(config))

		r.Post("/signup/", pageHandler.Signup)
		r.Post("/login/", pageHandler.Login)
	})

	// Paths without the trailing slash
	for _, path := range []string{"/signup", "/login"} {
		r.Get(path, redirectTo(path+"/"))
	}
}

func redirectTo(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url := target
		if r.URL.RawQuery != "" {
			url += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, url, http.StatusMovedPermanently)
	}
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
