package model

import "time"

// User is a row of the users table.
type User struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	Username     string    `db:"username"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	PasswordHash string    `db:"password_hash"`
	Avatar       string    `db:"avatar"`
	IsStaff      bool      `db:"is_staff"`
	IsSuperuser  bool      `db:"is_superuser"`
	CreatedAt    time.Time `db:"created_at"`
}

// CreatedUser is what registration answers with.
type CreatedUser struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserProfile is the public view of a user as seen by the current viewer.
//
// Avatar is an absolute URL or null.
type UserProfile struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	Username     string  `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	IsSubscribed bool    `json:"is_subscribed"`
	Avatar       *string `json:"avatar"`
}

// AuthorCard is a subscription entry: the author profile plus a preview of
// their recipes.
type AuthorCard struct {
	UserProfile
	RecipesCount int          `json:"recipes_count"`
	Recipes      []RecipeMini `json:"recipes"`
}

// AvatarResponse is returned after an avatar upload.
type AvatarResponse struct {
	Avatar string `json:"avatar"`
}

// TokenResponse is returned by the login endpoint.
type TokenResponse struct {
	AuthToken string `json:"auth_token"`
}

// AuthToken is a row of the auth_tokens table.
type AuthToken struct {
	Key       string    `db:"key"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}
