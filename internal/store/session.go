package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ramhdi/vimana2/internal/model"
)

type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

func scanSession(scanner interface{ Scan(...any) error }) (*model.Session, error) {
	var sess model.Session
	err := scanner.Scan(&sess.ID, &sess.UserID, &sess.Token, &sess.ExpiresAt, &sess.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

const sessionCols = `id, user_id, token, expires_at, created_at`

// Create inserts a session for the given user and token. Token generation
// belongs to the auth service; this layer just persists the row.
func (s *SessionStore) Create(userID, token string, expiresAt time.Time) (*model.Session, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := s.db.Exec(
		`INSERT INTO sessions (`+sessionCols+`) VALUES (?, ?, ?, ?, ?)`,
		id, userID, token, expiresAt.UTC(), now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+sessionCols+` FROM sessions WHERE id = ?`, id)
	return scanSession(row)
}

// GetActiveByToken returns the session for token if it has not expired as of
// now, or nil. An unknown token and an expired one are indistinguishable
// here on purpose.
func (s *SessionStore) GetActiveByToken(token string, now time.Time) (*model.Session, error) {
	row := s.db.QueryRow(
		`SELECT `+sessionCols+` FROM sessions WHERE token = ? AND expires_at > ?`,
		token, now.UTC(),
	)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session by token: %w", err)
	}
	return sess, nil
}

// Delete removes the session matching both user and token, returning the
// number of rows removed. Matching on both fields keeps one account from
// deleting another account's session.
func (s *SessionStore) Delete(userID, token string) (int64, error) {
	result, err := s.db.Exec(
		`DELETE FROM sessions WHERE user_id = ? AND token = ?`,
		userID, token,
	)
	if err != nil {
		return 0, fmt.Errorf("delete session: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

// DeleteExpired removes sessions past their expiry as of now.
func (s *SessionStore) DeleteExpired(now time.Time) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM sessions WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

// CountByUserID reports how many sessions (live or expired) a user holds.
func (s *SessionStore) CountByUserID(userID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}
