package store

import (
	"testing"

	"github.com/cityconnect/portal/internal/models"
)

func TestLogin_SeededAccounts(t *testing.T) {
	s := newTestStore(t, nil)

	id, err := s.Login(SeedAdminEmail, SeedAdminPassword)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if id.Role != models.RoleAdmin || id.Email != SeedAdminEmail {
		t.Errorf("unexpected identity: %+v", id)
	}

	cur := s.Current()
	if cur == nil || cur.ID != id.ID {
		t.Errorf("current identity not held: %+v", cur)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestStore(t, nil)

	if _, err := s.Login(SeedAdminEmail, "nope"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if s.Current() != nil {
		t.Errorf("failed login must not establish an identity")
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	s := newTestStore(t, nil)

	if _, err := s.Login("ghost@smartcity.com", "pw"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegister_SignsInAndStripsSecret(t *testing.T) {
	s := newTestStore(t, nil)

	id, err := s.Register("a@x.com", "pw", "A", "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if id.Role != models.RoleUser {
		t.Errorf("empty role should default to user, got %s", id.Role)
	}

	// The stored user carries a hash, never the plain password.
	for _, u := range s.Snapshot().Users {
		if u.Email != "a@x.com" {
			continue
		}
		if u.PasswordHash == "" || u.PasswordHash == "pw" {
			t.Errorf("password not hashed: %q", u.PasswordHash)
		}
	}

	if _, err := s.Login("a@x.com", "pw"); err != nil {
		t.Errorf("registered account cannot log back in: %v", err)
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	s := newTestStore(t, nil)

	if _, err := s.Register("a@x.com", "pw", "A", models.RoleUser); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if _, err := s.Register("a@x.com", "pw2", "B", models.RoleUser); err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	count := 0
	for _, u := range s.Snapshot().Users {
		if u.Email == "a@x.com" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one user with the email, got %d", count)
	}
}

func TestExternalSignIn_CreatesOnFirstSight(t *testing.T) {
	s := newTestStore(t, nil)

	id, created, err := s.SignInWithExternalCredential(models.ExternalProfile{
		Email: "oauth@x.com", FullName: "O Auth",
	})
	if err != nil {
		t.Fatalf("external sign-in failed: %v", err)
	}
	if !created {
		t.Errorf("expected created=true for a new account")
	}
	if id.Role != models.RoleUser {
		t.Errorf("external accounts must be regular users, got %s", id.Role)
	}

	// Second sign-in finds the existing account.
	id2, created, err := s.SignInWithExternalCredential(models.ExternalProfile{Email: "oauth@x.com"})
	if err != nil {
		t.Fatalf("second external sign-in failed: %v", err)
	}
	if created {
		t.Errorf("expected created=false for a known email")
	}
	if id2.ID != id.ID {
		t.Errorf("expected the same account, got %s and %s", id.ID, id2.ID)
	}
}

func TestExternalSignIn_ExistingLocalAccount(t *testing.T) {
	s := newTestStore(t, nil)

	id, created, err := s.SignInWithExternalCredential(models.ExternalProfile{Email: SeedUserEmail})
	if err != nil {
		t.Fatalf("external sign-in failed: %v", err)
	}
	if created {
		t.Errorf("seeded account should not be re-created")
	}
	if id.Email != SeedUserEmail {
		t.Errorf("unexpected identity: %+v", id)
	}
}

func TestExternalSignIn_MissingEmailRejectedWithoutMutation(t *testing.T) {
	s := newTestStore(t, nil)
	usersBefore := len(s.Snapshot().Users)

	_, _, err := s.SignInWithExternalCredential(models.ExternalProfile{FullName: "No Email"})
	if err != ErrInvalidProfile {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
	if s.Current() != nil {
		t.Errorf("rejected profile must not establish an identity")
	}
	if got := len(s.Snapshot().Users); got != usersBefore {
		t.Errorf("rejected profile mutated users: %d -> %d", usersBefore, got)
	}
}

// Externally created accounts have no local password, so password
// login is impossible for them, even with an empty password.
func TestLogin_ExternalAccountHasNoPassword(t *testing.T) {
	s := newTestStore(t, nil)

	if _, _, err := s.SignInWithExternalCredential(models.ExternalProfile{Email: "oauth@x.com"}); err != nil {
		t.Fatalf("external sign-in failed: %v", err)
	}
	if _, err := s.Login("oauth@x.com", ""); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogout_Idempotent(t *testing.T) {
	s := newTestStore(t, nil)

	if _, err := s.Login(SeedUserEmail, SeedUserPassword); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if s.Current() != nil {
		t.Errorf("identity survived logout")
	}
	if err := s.Logout(); err != nil {
		t.Errorf("second logout should be a no-op, got %v", err)
	}
}

func TestLogin_ReplacesPriorIdentity(t *testing.T) {
	s := newTestStore(t, nil)

	if _, err := s.Login(SeedUserEmail, SeedUserPassword); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	admin, err := s.Login(SeedAdminEmail, SeedAdminPassword)
	if err != nil {
		t.Fatalf("second Login failed: %v", err)
	}
	cur := s.Current()
	if cur == nil || cur.ID != admin.ID {
		t.Errorf("second login did not replace the identity: %+v", cur)
	}
}
