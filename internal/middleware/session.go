// Package middleware provides HTTP middlewares for session handling and logging.
package middleware

import (
	"context"
	"net/http"

	"github.com/cityconnect/portal/internal/models"
)

type ctxKey string

const identityKey ctxKey = "identity"

// PrincipalSource exposes the single active identity of the datastore.
type PrincipalSource interface {
	Current() *models.Identity
}

// WithIdentity resolves the active identity once per request and
// stores it in the request context, so handlers and the auth gates
// below observe a consistent principal for the whole request.
func WithIdentity(src PrincipalSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := src.Current(); id != nil {
				r = r.WithContext(context.WithValue(r.Context(), identityKey, id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests with no signed-in principal.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromContext(r.Context()) == nil {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose principal is missing or not an
// administrator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := IdentityFromContext(r.Context())
		if id == nil {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		if id.Role != models.RoleAdmin {
			http.Error(w, "admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFromContext extracts the active identity from the request
// context. Returns nil when the request is anonymous.
func IdentityFromContext(ctx context.Context) *models.Identity {
	id, _ := ctx.Value(identityKey).(*models.Identity)
	return id
}
