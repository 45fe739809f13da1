package handler

import (
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/deppfellow/foodgram/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health      *HealthHandler
	OpenAPI     *OpenAPIHandler
	Auth        *AuthHandler
	Users       *UserHandler
	Tags        *TagHandler
	Ingredients *IngredientHandler
	Recipes     *RecipeHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(s),
		OpenAPI:     NewOpenAPIHandler(s),
		Auth:        NewAuthHandler(s, services.Auth),
		Users:       NewUserHandler(s, services.Users, services.Subscriptions),
		Tags:        NewTagHandler(s, services.Tags),
		Ingredients: NewIngredientHandler(s, services.Ingredients),
		Recipes:     NewRecipeHandler(s, services.Recipes, services.Relations),
	}
}
