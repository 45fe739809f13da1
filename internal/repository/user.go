package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/foodgram/internal/model"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, username, first_name, last_name, password_hash, avatar, is_staff, is_superuser, created_at`

// UserRepository persists accounts.
type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts u and fills in its ID and CreatedAt.
func (r *UserRepository) CreateUser(ctx context.Context, u *model.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (email, username, first_name, last_name, password_hash, avatar, is_staff, is_superuser)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		u.Email, u.Username, u.FirstName, u.LastName, u.PasswordHash, u.Avatar, u.IsStaff, u.IsSuperuser,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetUserByEmail matches case-insensitively, emails are the login field.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, args ...any) (*model.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, wrapNoRows("users", err)
	}
	return user, nil
}

// GetUsersByIDs loads several users at once, keyed by ID. Missing IDs are absent from the map.
func (r *UserRepository) GetUsersByIDs(ctx context.Context, ids []int64) (map[int64]model.User, error) {
	result := make(map[int64]model.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("collect users: %w", err)
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

// ExistingUsernames reports which of the given usernames are taken.
func (r *UserRepository) ExistingUsernames(ctx context.Context, usernames []string) (map[string]bool, error) {
	result := make(map[string]bool, len(usernames))
	rows, err := r.db.Query(ctx, `SELECT username FROM users WHERE username = ANY($1)`, usernames)
	if err != nil {
		return nil, err
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect usernames: %w", err)
	}
	for _, name := range names {
		result[name] = true
	}
	return result, nil
}

// ListUsers returns one page of users ordered by username, plus the total count.
func (r *UserRepository) ListUsers(ctx context.Context, limit, offset int) ([]model.User, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+` FROM users
		ORDER BY username
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, 0, fmt.Errorf("collect users: %w", err)
	}
	return users, total, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("users", pgx.ErrNoRows)
	}
	return nil
}

// UpdateAvatar stores the media path of the avatar; "" clears it.
func (r *UserRepository) UpdateAvatar(ctx context.Context, id int64, avatar string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET avatar = $2 WHERE id = $1`, id, avatar)
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("users", pgx.ErrNoRows)
	}
	return nil
}
