package store

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/cityconnect/portal/internal/models"
)

// Authentication failures are reported as tagged errors for the
// caller to turn into UI messaging; none of them is fatal and none of
// them mutates state.
var (
	// ErrInvalidCredentials reports a failed email/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken reports a registration against an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidProfile reports an external profile without an email.
	ErrInvalidProfile = errors.New("invalid external profile")
)

// Login authenticates by exact email match plus bcrypt password
// check and makes the matched user the active identity, replacing any
// previous one. Accounts created through an external provider carry
// no local password and can never log in this way.
func (s *Store) Login(email, password string) (models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.userByEmailLocked(email)
	if !ok || u.PasswordHash == "" {
		return models.Identity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return models.Identity{}, ErrInvalidCredentials
	}

	id := u.Identity()
	s.identity = &id
	return id, s.persistLocked("login")
}

// Register creates a new user and signs them in. The email must not
// already be registered (exact, case-sensitive match). An empty role
// defaults to a regular user; the role is fixed at creation.
func (s *Store) Register(email, password, fullName string, role models.Role) (models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.userByEmailLocked(email); ok {
		return models.Identity{}, ErrEmailTaken
	}
	if role == "" {
		role = models.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	u := models.User{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         role,
	}
	s.users.add(u)

	id := u.Identity()
	s.identity = &id
	return id, s.persistLocked("register")
}

// SignInWithExternalCredential signs in with an already-verified
// external identity profile. A known email behaves like a login; an
// unknown one creates a regular user with no local password. The
// created flag tells the two apart. A profile without an email is
// rejected without touching any state.
func (s *Store) SignInWithExternalCredential(p models.ExternalProfile) (models.Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Email == "" {
		return models.Identity{}, false, ErrInvalidProfile
	}

	if u, ok := s.userByEmailLocked(p.Email); ok {
		id := u.Identity()
		s.identity = &id
		return id, false, s.persistLocked("external sign-in")
	}

	u := models.User{
		ID:       s.newID(),
		Email:    p.Email,
		FullName: p.FullName,
		Role:     models.RoleUser,
	}
	s.users.add(u)

	id := u.Identity()
	s.identity = &id
	return id, true, s.persistLocked("external sign-in")
}

// Logout clears the active identity. Logging out while anonymous is
// a no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	return s.persistLocked("logout")
}

// Current returns a copy of the active identity, or nil when nobody
// is signed in.
func (s *Store) Current() *models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	cp := *s.identity
	return &cp
}

func (s *Store) userByEmailLocked(email string) (models.User, bool) {
	matches := s.users.filter(func(u models.User) bool { return u.Email == email })
	if len(matches) == 0 {
		return models.User{}, false
	}
	return matches[0], true
}
