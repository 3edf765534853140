package middleware

import (
	"context"
	"net/http"
	"strings"

	jwtutil "github.com/Stefan-migo/businessManagementApp-sub001/app/jwt"
)

type ctxKey int

const ClaimsKey ctxKey = 1

type Auth struct{ Signer *jwtutil.Signer }

func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := a.parse(r)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects missing or invalid tokens with 401 and valid
// non-admin tokens with 403.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := a.parse(r)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if claims.Role != "admin" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Auth) parse(r *http.Request) (*jwtutil.Claims, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return nil, false
	}
	claims, err := a.Signer.Parse(strings.TrimPrefix(authz, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}
