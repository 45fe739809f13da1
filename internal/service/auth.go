package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/deppfellow/foodgram/internal/errs"
	"github.com/deppfellow/foodgram/internal/lib/utils"
	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// tokenCachePrefix namespaces token -> user id entries in Redis.
const tokenCachePrefix = "auth:token:"

// AuthService issues and resolves the opaque API tokens sent as
// "Authorization: Token <key>". Each user has at most one token.
type AuthService struct {
	server *server.Server
	users  UserStore
	tokens TokenStore
}

func NewAuthService(s *server.Server, stores Stores) *AuthService {
	return &AuthService{
		server: s,
		users:  stores.Users,
		tokens: stores.Tokens,
	}
}

// HashPassword hashes with the configured bcrypt cost.
func (a *AuthService) HashPassword(password string) (string, error) {
	cost := a.server.Config.Auth.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func invalidCredentials() error {
	return errs.NewBadRequestError("Unable to log in with provided credentials", true, errs.Code("INVALID_CREDENTIALS"), nil)
}

// Login exchanges email + password for the user's token, creating it on first login.
func (a *AuthService) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	user, err := a.users.GetUserByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, invalidCredentials()
	}
	if err != nil {
		return nil, err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, invalidCredentials()
	}

	token, err := a.tokens.GetTokenByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if token == nil {
		key, err := utils.RandomHex(20)
		if err != nil {
			return nil, err
		}
		token = &model.AuthToken{Key: key, UserID: user.ID}
		if err := a.tokens.CreateToken(ctx, token); err != nil {
			return nil, err
		}
	}

	a.server.Logger.Info().Int64("user_id", user.ID).Msg("user logged in")
	return &model.TokenResponse{AuthToken: token.Key}, nil
}

// Logout deletes the token; later requests with it get 401.
func (a *AuthService) Logout(ctx context.Context, key string) error {
	if err := a.tokens.DeleteToken(ctx, key); err != nil {
		return err
	}
	if a.server.Redis != nil {
		if err := a.server.Redis.Del(ctx, tokenCachePrefix+key).Err(); err != nil {
			a.server.Logger.Warn().Err(err).Msg("failed to evict token from cache")
		}
	}
	return nil
}

// Authenticate resolves a token to its user. Unknown tokens yield a 401.
//
// Lookups are cached in Redis for auth.token_cache_ttl; a Redis failure
// falls back to the database.
func (a *AuthService) Authenticate(ctx context.Context, key string) (*model.User, error) {
	if key == "" {
		return nil, errs.NewUnauthorizedError("Invalid token", false)
	}

	userID := a.cachedUserID(ctx, key)
	if userID == 0 {
		id, err := a.tokens.GetUserIDByToken(ctx, key)
		if err != nil {
			return nil, err
		}
		if id == 0 {
			return nil, errs.NewUnauthorizedError("Invalid token", false)
		}
		userID = id
		a.cacheUserID(ctx, key, userID)
	}

	user, err := a.users.GetUserByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NewUnauthorizedError("Invalid token", false)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *AuthService) cacheTTL() time.Duration {
	return a.server.Config.Auth.TokenCacheTTL
}

func (a *AuthService) cachedUserID(ctx context.Context, key string) int64 {
	if a.server.Redis == nil || a.cacheTTL() <= 0 {
		return 0
	}

	raw, err := a.server.Redis.Get(ctx, tokenCachePrefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			a.server.Logger.Debug().Err(err).Msg("token cache unavailable")
		}
		return 0
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func (a *AuthService) cacheUserID(ctx context.Context, key string, userID int64) {
	if a.server.Redis == nil || a.cacheTTL() <= 0 {
		return
	}
	if err := a.server.Redis.Set(ctx, tokenCachePrefix+key, userID, a.cacheTTL()).Err(); err != nil {
		a.server.Logger.Debug().Err(err).Msg("failed to cache token")
	}
}
