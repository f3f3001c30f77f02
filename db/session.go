package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/senka-oj/senka"
)

const sessionMaxAge = 30 * 24 * time.Hour

func (s *DB) CreateSession(ctx context.Context, userID int) (string, error) {
	id := senka.RandomString(16)
	_, err := s.pgconn.Exec(ctx, "INSERT INTO sessions (id, user_id) VALUES ($1, $2)", id, userID)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetSession resolves a session ID to a user ID, rejecting expired sessions.
func (s *DB) GetSession(ctx context.Context, sess string) (int, error) {
	var userID int
	var createdAt time.Time
	err := s.pgconn.QueryRow(ctx, "SELECT user_id, created_at FROM sessions WHERE id = $1", sess).Scan(&userID, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return -1, senka.Statusf(401, "Invalid session")
		}
		return -1, err
	}
	if time.Since(createdAt) > sessionMaxAge {
		return -1, senka.Statusf(401, "Session expired")
	}
	return userID, nil
}

func (s *DB) RemoveSession(ctx context.Context, sess string) error {
	_, err := s.pgconn.Exec(ctx, "DELETE FROM sessions WHERE id = $1", sess)
	return err
}
