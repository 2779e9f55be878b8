package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cityconnect/portal/internal/models"
)

// fakePrincipals implements PrincipalSource for testing.
type fakePrincipals struct {
	identity *models.Identity
}

func (f *fakePrincipals) Current() *models.Identity { return f.identity }

func runGate(t *testing.T, identity *models.Identity, gate func(http.Handler) http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	reached := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	chain := WithIdentity(&fakePrincipals{identity: identity})(gate(reached))

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	return rec
}

func TestRequireAuth(t *testing.T) {
	if rec := runGate(t, nil, RequireAuth); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: expected 401, got %d", rec.Code)
	}
	id := &models.Identity{ID: "u1", Role: models.RoleUser}
	if rec := runGate(t, id, RequireAuth); rec.Code != http.StatusOK {
		t.Errorf("signed in: expected 200, got %d", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	if rec := runGate(t, nil, RequireAdmin); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: expected 401, got %d", rec.Code)
	}
	user := &models.Identity{ID: "u1", Role: models.RoleUser}
	if rec := runGate(t, user, RequireAdmin); rec.Code != http.StatusForbidden {
		t.Errorf("regular user: expected 403, got %d", rec.Code)
	}
	admin := &models.Identity{ID: "a1", Role: models.RoleAdmin}
	if rec := runGate(t, admin, RequireAdmin); rec.Code != http.StatusOK {
		t.Errorf("admin: expected 200, got %d", rec.Code)
	}
}

func TestIdentityFromContext_Anonymous(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if got := IdentityFromContext(req.Context()); got != nil {
		t.Errorf("expected nil identity, got %+v", got)
	}
}
