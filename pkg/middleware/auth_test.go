package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"muse/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubAuthenticator map[string]*utils.Principal

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*utils.Principal, error) {
	if token == "broken" {
		return nil, errors.New("db down")
	}
	return s[token], nil
}

func principalEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := utils.GetPrincipalFromContext(r.Context()); ok {
			w.Write([]byte(p.Username))
			return
		}
		w.Write([]byte("anonymous"))
	})
}

func TestLoadSession(t *testing.T) {
	auth := stubAuthenticator{"good": {UserID: 1, Username: "alice"}}
	handler := LoadSession(auth, "muse_session", zap.NewNop())(principalEcho())

	cases := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"bearer header", "Bearer good", "", "alice"},
		{"lowercase scheme", "bearer good", "", "alice"},
		{"cookie", "", "good", "alice"},
		{"unknown token", "Bearer nope", "", "anonymous"},
		{"wrong scheme", "Basic good", "good", "anonymous"},
		{"lookup error", "Bearer broken", "", "anonymous"},
		{"nothing", "", "", "anonymous"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "muse_session", Value: tc.cookie})
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Body.String())
		})
	}
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth()(principalEcho())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Authentication required"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(utils.SetPrincipalContext(req.Context(), &utils.Principal{Username: "bob"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bob", rec.Body.String())
}

func TestAdmin(t *testing.T) {
	handler := Admin(zap.NewNop())(principalEcho())

	serve := func(p *utils.Principal) int {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		if p != nil {
			req = req.WithContext(utils.SetPrincipalContext(req.Context(), p))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(nil))
	assert.Equal(t, http.StatusForbidden, serve(&utils.Principal{Username: "bob", Role: "customer"}))
	assert.Equal(t, http.StatusOK, serve(&utils.Principal{Username: "root", Role: "admin"}))
}
