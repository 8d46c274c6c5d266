package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ramhdi/vimana2/internal/auth"
	"github.com/ramhdi/vimana2/internal/model"
	"github.com/ramhdi/vimana2/internal/store"
)

// AuthService orchestrates credential verification, session issuance and
// revocation, and privileged account creation. It holds no mutable state;
// everything it needs is injected at construction.
type AuthService struct {
	users      *store.UserStore
	sessions   *store.SessionStore
	hasher     auth.Hasher
	policy     auth.Policy
	sessionTTL time.Duration
}

func NewAuthService(users *store.UserStore, sessions *store.SessionStore, hasher auth.Hasher, policy auth.Policy, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		hasher:     hasher,
		policy:     policy,
		sessionTTL: sessionTTL,
	}
}

// SessionTTL returns the configured session lifetime, used by the HTTP layer
// to size the cookie max-age.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Login verifies the credentials and issues a new session, returning its
// token. The token is only handed out after the session row is persisted; a
// failed insert discards it and the login fails.
func (s *AuthService) Login(username, password string) (string, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return "", err
	}

	if _, err := s.sessions.Create(user.ID, token, time.Now().UTC().Add(s.sessionTTL)); err != nil {
		return "", err
	}

	return token, nil
}

// Logout deletes the session matching both the authenticated user and the
// presented token.
func (s *AuthService) Logout(userID, token string) error {
	deleted, err := s.sessions.Delete(userID, token)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// CreateUser creates a new standard account. The policy check runs before
// any hashing or storage work.
func (s *AuthService) CreateUser(actorRole model.Role, username, password, fullName string) (*model.User, error) {
	if !s.policy.CanCreateUsers(actorRole) {
		return nil, ErrForbidden
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	exists, err := s.users.UsernameExists(username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(username, hash, fullName, model.RoleStandard)
	if errors.Is(err, store.ErrDuplicate) {
		// Lost a race with a concurrent creation of the same username.
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// BootstrapAdmin seeds the administrator account from configuration. It is
// a no-op when both values are empty or when the username is already taken.
func (s *AuthService) BootstrapAdmin(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" && password == "" {
		return nil
	}
	if username == "" || password == "" {
		return fmt.Errorf("admin username and password are required together")
	}

	exists, err := s.users.UsernameExists(username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	if _, err := s.users.Create(username, hash, "Administrator", model.RoleAdmin); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("create admin user: %w", err)
	}
	return nil
}
