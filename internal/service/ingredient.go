package service

import (
	"context"
	"strings"

	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/server"
)

type IngredientService struct {
	server      *server.Server
	ingredients IngredientStore
}

func NewIngredientService(s *server.Server, stores Stores) *IngredientService {
	return &IngredientService{server: s, ingredients: stores.Ingredients}
}

// List returns the catalogue, optionally narrowed to names starting with
// name (case-insensitive).
func (s *IngredientService) List(ctx context.Context, name string) ([]model.Ingredient, error) {
	ingredients, err := s.ingredients.ListIngredients(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if ingredients == nil {
		ingredients = []model.Ingredient{}
	}
	return ingredients, nil
}

func (s *IngredientService) Get(ctx context.Context, id int64) (*model.Ingredient, error) {
	return s.ingredients.GetIngredient(ctx, id)
}

func (s *IngredientService) Create(ctx context.Context, ingredient model.Ingredient) (*model.Ingredient, error) {
	if err := s.ingredients.CreateIngredient(ctx, &ingredient); err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (s *IngredientService) Update(ctx context.Context, ingredient model.Ingredient) (*model.Ingredient, error) {
	if err := s.ingredients.UpdateIngredient(ctx, &ingredient); err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (s *IngredientService) Delete(ctx context.Context, id int64) error {
	return s.ingredients.DeleteIngredient(ctx, id)
}

// Import inserts the catalogue, skipping existing (name, unit) pairs.
func (s *IngredientService) Import(ctx context.Context, ingredients []model.Ingredient) (int, error) {
	return s.ingredients.BulkCreateIngredients(ctx, ingredients)
}
