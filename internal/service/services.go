// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/deppfellow/foodgram/internal/server"
)

// Services groups every service so handlers receive one dependency.
type Services struct {
	Auth          *AuthService
	Users         *UserService
	Subscriptions *SubscriptionService
	Tags          *TagService
	Ingredients   *IngredientService
	Recipes       *RecipeService
	Relations     *RelationService
	Seed          *SeedService
}

func NewServices(s *server.Server, stores Stores) *Services {
	auth := NewAuthService(s, stores)

	return &Services{
		Auth:          auth,
		Users:         NewUserService(s, stores, auth),
		Subscriptions: NewSubscriptionService(s, stores),
		Tags:          NewTagService(s, stores),
		Ingredients:   NewIngredientService(s, stores),
		Recipes:       NewRecipeService(s, stores),
		Relations:     NewRelationService(s, stores),
		Seed:          NewSeedService(s, stores, auth),
	}
}
