package service

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ramhdi/vimana2/internal/auth"
	"github.com/ramhdi/vimana2/internal/database"
	"github.com/ramhdi/vimana2/internal/model"
	"github.com/ramhdi/vimana2/internal/store"
)

func setupAuthService(t *testing.T) (*AuthService, *store.UserStore, *store.SessionStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users := store.NewUserStore(db)
	sessions := store.NewSessionStore(db)
	hasher := auth.NewHasher(bcrypt.MinCost)
	svc := NewAuthService(users, sessions, hasher, auth.RolePolicy{}, time.Hour)
	return svc, users, sessions
}

func seedUser(t *testing.T, svc *AuthService, users *store.UserStore, username, password string, role model.Role) *model.User {
	t.Helper()
	hash, err := svc.hasher.Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u, err := users.Create(username, hash, "Test User", role)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestLoginIssuesSession(t *testing.T) {
	svc, users, sessions := setupAuthService(t)
	u := seedUser(t, svc, users, "alice", "s3cret", model.RoleStandard)

	token, err := svc.Login("alice", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if len(token) != 30 {
		t.Errorf("token length = %d, want 30", len(token))
	}

	sess, err := sessions.GetActiveByToken(token, time.Now().UTC())
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if sess == nil {
		t.Fatal("expected session for issued token")
	}
	if sess.UserID != u.ID {
		t.Errorf("user_id = %q, want %q", sess.UserID, u.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, users, sessions := setupAuthService(t)
	u := seedUser(t, svc, users, "alice", "s3cret", model.RoleStandard)

	_, err := svc.Login("alice", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}

	// A failed login must not leave a session behind.
	count, err := sessions.CountByUserID(u.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("session count = %d, want 0", count)
	}
}

func TestLoginUnknownUsername(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	_, err := svc.Login("nobody", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestConcurrentLoginsAreIndependent(t *testing.T) {
	svc, users, _ := setupAuthService(t)
	u := seedUser(t, svc, users, "alice", "s3cret", model.RoleStandard)

	first, err := svc.Login("alice", "s3cret")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := svc.Login("alice", "s3cret")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct tokens per login")
	}

	// Logging out the first session leaves the second valid.
	if err := svc.Logout(u.ID, first); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := svc.Logout(u.ID, second); err != nil {
		t.Fatalf("logout second: %v", err)
	}
}

func TestLogoutUnknownToken(t *testing.T) {
	svc, users, _ := setupAuthService(t)
	u := seedUser(t, svc, users, "alice", "s3cret", model.RoleStandard)

	err := svc.Logout(u.ID, "no-such-token")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestCreateUserRequiresAdmin(t *testing.T) {
	svc, users, _ := setupAuthService(t)

	_, err := svc.CreateUser(model.RoleStandard, "bob", "pw", "Bob")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	// The denied attempt must not have written anything.
	exists, err := users.UsernameExists("bob")
	if err != nil {
		t.Fatalf("username exists: %v", err)
	}
	if exists {
		t.Error("forbidden attempt must not create the account")
	}
}

func TestCreateUser(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	u, err := svc.CreateUser(model.RoleAdmin, "bob", "pw", "Bob Builder")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.Role != model.RoleStandard {
		t.Errorf("role = %q, want %q", u.Role, model.RoleStandard)
	}
	if u.Username != "bob" {
		t.Errorf("username = %q, want bob", u.Username)
	}

	// New accounts can log in immediately.
	if _, err := svc.Login("bob", "pw"); err != nil {
		t.Fatalf("login as new user: %v", err)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	if _, err := svc.CreateUser(model.RoleAdmin, "bob", "pw", "Bob"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	_, err := svc.CreateUser(model.RoleAdmin, "bob", "pw2", "Other Bob")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	_, err := svc.CreateUser(model.RoleAdmin, "  ", "pw", "Blank")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	_, err = svc.CreateUser(model.RoleAdmin, "bob", "", "Bob")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestBootstrapAdmin(t *testing.T) {
	svc, users, _ := setupAuthService(t)

	if err := svc.BootstrapAdmin("root", "rootpw"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	u, err := users.GetByUsername("root")
	if err != nil {
		t.Fatalf("get admin: %v", err)
	}
	if u == nil {
		t.Fatal("expected admin user")
	}
	if u.Role != model.RoleAdmin {
		t.Errorf("role = %q, want %q", u.Role, model.RoleAdmin)
	}

	// Idempotent across restarts.
	if err := svc.BootstrapAdmin("root", "rootpw"); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
}

func TestBootstrapAdminUnconfigured(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	if err := svc.BootstrapAdmin("", ""); err != nil {
		t.Fatalf("bootstrap with empty config: %v", err)
	}
	if err := svc.BootstrapAdmin("root", ""); err == nil {
		t.Error("expected error for half-configured admin")
	}
}
