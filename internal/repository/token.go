package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/foodgram/internal/model"
	"github.com/jackc/pgx/v5"
)

// TokenRepository persists auth tokens (one per user).
type TokenRepository struct {
	db DB
}

func NewTokenRepository(db DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// GetTokenByUserID returns the user's token, or nil if they have none.
func (r *TokenRepository) GetTokenByUserID(ctx context.Context, userID int64) (*model.AuthToken, error) {
	rows, err := r.db.Query(ctx, `SELECT key, user_id, created_at FROM auth_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	token, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.AuthToken])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}
	return token, nil
}

// CreateToken stores a token. A concurrent login for the same user loses on
// the unique user_id constraint and gets the winner's token back.
func (r *TokenRepository) CreateToken(ctx context.Context, token *model.AuthToken) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO auth_tokens (key, user_id) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING key, created_at`,
		token.Key, token.UserID,
	).Scan(&token.Key, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

// GetUserIDByToken resolves a token key; 0 means the key is unknown.
func (r *TokenRepository) GetUserIDByToken(ctx context.Context, key string) (int64, error) {
	var userID int64
	err := r.db.QueryRow(ctx, `SELECT user_id FROM auth_tokens WHERE key = $1`, key).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lookup token: %w", err)
	}
	return userID, nil
}

func (r *TokenRepository) DeleteToken(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM auth_tokens WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
