package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mn-works/earnbot/internal/domain"
)

// SessionStore persists the bearer token each chat authenticated with, so a
// restart of the bot does not log everyone out.
type SessionStore struct {
	db *pgxpool.Pool
}

func NewSessionStore(db *pgxpool.Pool) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Save(ctx context.Context, chatID int64, token string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO chat_sessions (chat_id, token)
		VALUES ($1, $2)
		ON CONFLICT (chat_id) DO UPDATE SET token = $2, updated_at = now()`,
		chatID, token)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, chatID int64) (string, error) {
	var token string
	err := s.db.QueryRow(ctx,
		`SELECT token FROM chat_sessions WHERE chat_id = $1`, chatID).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrSessionNotFound
		}
		return "", fmt.Errorf("get session: %w", err)
	}
	return token, nil
}

func (s *SessionStore) Delete(ctx context.Context, chatID int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM chat_sessions WHERE chat_id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
