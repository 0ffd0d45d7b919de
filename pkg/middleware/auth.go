package middleware

import (
	"context"
	"net/http"
	"strings"

	"muse/pkg/utils"

	"go.uber.org/zap"
)

// SessionAuthenticator resolves a session token. A nil principal with a
// nil error means the token is unknown, expired or revoked.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*utils.Principal, error)
}

// LoadSession attaches the principal behind the request's session token,
// taken from an "Authorization: Bearer" header or the session cookie.
// It never rejects a request; anonymous requests pass through untouched.
func LoadSession(auth SessionAuthenticator, cookieName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r, cookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if principal == nil {
				logger.Debug("Invalid or expired session", zap.String("path", r.URL.Path))
				next.ServeHTTP(w, r)
				return
			}

			// Set context dengan principal DAN token
			ctx := utils.SetPrincipalContext(r.Context(), principal)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionToken extracts the raw session token, preferring the header.
func SessionToken(r *http.Request, cookieName string) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		scheme, token, ok := strings.Cut(authHeader, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}

	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// RequireAuth rejects anonymous API calls with 401 {"error": "Authentication required"}.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetPrincipalFromContext(r.Context()); !ok {
				utils.WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Admin - middleware cek role admin
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Get principal dari context (sudah diset LoadSession)
			principal, ok := utils.GetPrincipalFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			// 2. Check if admin
			if !principal.IsAdmin() {
				logger.Warn("Admin check: non-admin access attempt",
					zap.Int64("user_id", principal.UserID),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			// 3. Lanjut ke handler
			next.ServeHTTP(w, r)
		})
	}
}
