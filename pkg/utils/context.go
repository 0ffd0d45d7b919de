package utils

import (
	"context"
)

type contextKey string

const (
	PrincipalKey contextKey = "principal"
	TokenKey     contextKey = "token"
)

// Principal is the authenticated user attached to a request.
type Principal struct {
	UserID   int64
	Username string
	Role     string
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == "admin"
}

// GetPrincipalFromContext returns the request's user, or nil when anonymous.
func GetPrincipalFromContext(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(*Principal)
	if !ok || principal == nil {
		return nil, false
	}
	return principal, true
}

func SetPrincipalContext(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, principal)
}

// GetTokenFromContext mendapatkan token dari context
func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

// SetTokenContext menambahkan token ke context
func SetTokenContext(ctx context.Context, token string) context.Context {
	ctx = context.WithValue(ctx, TokenKey, token)
	return ctx
}
