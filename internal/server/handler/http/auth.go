// Package http provides HTTP handlers for the city portal: session
// management, catalog and civic-record CRUD, and free-text search.
// Handlers do boundary validation only; all data logic lives in the
// datastore they wrap.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cityconnect/portal/internal/models"
	"github.com/cityconnect/portal/internal/store"
)

// AuthService defines the session operations required by the HTTP
// handlers.
type AuthService interface {
	// Login authenticates by email and password.
	Login(email, password string) (models.Identity, error)
	// Register creates a new account and signs it in.
	Register(email, password, fullName string, role models.Role) (models.Identity, error)
	// SignInWithExternalCredential signs in with a verified external
	// profile, creating the account on first sight.
	SignInWithExternalCredential(p models.ExternalProfile) (models.Identity, bool, error)
	// Logout clears the active identity.
	Logout() error
	// Current returns the active identity, or nil.
	Current() *models.Identity
}

// AuthHandler handles HTTP requests for registration, login, external
// sign-in, logout and session inspection.
//
// Mutations respond with success even when the datastore reports a
// durability failure: the record is stored in memory regardless, and
// the store has already logged the save error.
type AuthHandler struct {
	// AuthService performs the underlying session operations.
	AuthService AuthService
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents the JSON payload for registration.
type RegisterRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	FullName string      `json:"fullName"`
	Role     models.Role `json:"role"`
}

// maxPasswordLen is the longest password bcrypt can hash.
const maxPasswordLen = 72

// Register handles account creation. A duplicate email yields 409.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if len(req.Password) > maxPasswordLen {
		http.Error(w, "password too long", http.StatusBadRequest)
		return
	}

	id, err := h.AuthService.Register(req.Email, req.Password, req.FullName, req.Role)
	if errors.Is(err, store.ErrEmailTaken) {
		http.Error(w, "email already registered", http.StatusConflict)
		return
	}
	// A non-nil error with a valid identity is a save-only failure:
	// the account exists in memory and the session is established. An
	// empty identity means the operation itself failed.
	if err != nil && id.ID == "" {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": id})
}

// Login handles email/password authentication. Bad credentials yield 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	id, err := h.AuthService.Login(req.Email, req.Password)
	if errors.Is(err, store.ErrInvalidCredentials) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": id})
}

// ExternalSignIn handles sign-in with an externally verified identity
// profile. Token verification happens upstream; this endpoint only
// consumes the decoded profile. The created flag tells the UI whether
// a new account was provisioned.
func (h *AuthHandler) ExternalSignIn(w http.ResponseWriter, r *http.Request) {
	var profile models.ExternalProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	id, created, err := h.AuthService.SignInWithExternalCredential(profile)
	if errors.Is(err, store.ErrInvalidProfile) {
		http.Error(w, "invalid external profile", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": id, "created": created})
}

// Logout clears the session. Logging out while anonymous is fine.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	_ = h.AuthService.Logout()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Session reports the active identity, or null when anonymous.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"user": h.AuthService.Current()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
