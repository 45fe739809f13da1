package repository

import (
	"github.com/deppfellow/foodgram/internal/server"
)

// Repositories is a container for all repository instances.
//
// Services never see these concrete types; they depend on the small
// store interfaces declared in the service package, which these satisfy.
type Repositories struct {
	Users         *UserRepository
	Tokens        *TokenRepository
	Subscriptions *SubscriptionRepository
	Tags          *TagRepository
	Ingredients   *IngredientRepository
	Recipes       *RecipeRepository
	Relations     *RelationRepository
}

// NewRepositories constructs the repository container on top of the server's pgx pool.
func NewRepositories(s *server.Server) *Repositories {
	db := s.DB.Pool

	return &Repositories{
		Users:         NewUserRepository(db),
		Tokens:        NewTokenRepository(db),
		Subscriptions: NewSubscriptionRepository(db),
		Tags:          NewTagRepository(db),
		Ingredients:   NewIngredientRepository(db),
		Recipes:       NewRecipeRepository(db),
		Relations:     NewRelationRepository(db),
	}
}
