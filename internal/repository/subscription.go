package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/foodgram/internal/model"
	"github.com/jackc/pgx/v5"
)

// SubscriptionRepository persists "user follows author" rows.
type SubscriptionRepository struct {
	db DB
}

func NewSubscriptionRepository(db DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// CreateSubscription reports false when the subscription already existed.
func (r *SubscriptionRepository) CreateSubscription(ctx context.Context, userID, authorID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO subscriptions (user_id, author_id) VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT unique_subscriptions_author DO NOTHING`,
		userID, authorID)
	if err != nil {
		return false, fmt.Errorf("insert subscription: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteSubscription reports false when there was nothing to delete.
func (r *SubscriptionRepository) DeleteSubscription(ctx context.Context, userID, authorID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM subscriptions WHERE user_id = $1 AND author_id = $2`, userID, authorID)
	if err != nil {
		return false, fmt.Errorf("delete subscription: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SubscribedAuthors reports which of authorIDs userID follows.
func (r *SubscriptionRepository) SubscribedAuthors(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(authorIDs))
	if userID == 0 || len(authorIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT author_id FROM subscriptions
		WHERE user_id = $1 AND author_id = ANY($2)`, userID, authorIDs)
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("collect subscriptions: %w", err)
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// ListSubscribedAuthors returns one page of the authors userID follows,
// ordered by username, plus the total.
func (r *SubscriptionRepository) ListSubscribedAuthors(ctx context.Context, userID int64, limit, offset int) ([]model.User, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM subscriptions WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count subscriptions: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash,
		       u.avatar, u.is_staff, u.is_superuser, u.created_at
		FROM subscriptions s
		JOIN users u ON u.id = s.author_id
		WHERE s.user_id = $1
		ORDER BY u.username
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	authors, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, 0, fmt.Errorf("collect authors: %w", err)
	}
	return authors, total, nil
}
