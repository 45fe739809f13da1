package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deppfellow/foodgram/internal/errs"
	"github.com/deppfellow/foodgram/internal/lib/utils"
	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/server"
)

// ShoppingListFilename is the attachment name of the downloaded list.
const ShoppingListFilename = "shopping_list.txt"

// RelationService manages favorites and the shopping cart.
type RelationService struct {
	server    *server.Server
	recipes   RecipeStore
	relations RelationStore
	present   presenter

	// now is swapped in tests to pin the shopping list date.
	now func() time.Time
}

func NewRelationService(s *server.Server, stores Stores) *RelationService {
	return &RelationService{
		server:    s,
		recipes:   stores.Recipes,
		relations: stores.Relations,
		present:   presenter{stores: stores, storage: s.Storage},
		now:       time.Now,
	}
}

// relationNames carries the wording and error codes of each list.
var relationNames = map[model.RecipeRelation]struct {
	label string
	code  string
}{
	model.RelationFavorite:     {label: "favorites", code: "FAVORITE"},
	model.RelationShoppingCart: {label: "shopping cart", code: "SHOPPING_CART"},
}

// Add puts the recipe on the list and returns its short form.
func (s *RelationService) Add(ctx context.Context, user *model.User, rel model.RecipeRelation, recipeID int64) (*model.RecipeMini, error) {
	recipe, err := s.recipes.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	added, err := s.relations.AddRelation(ctx, rel, user.ID, recipeID)
	if err != nil {
		return nil, err
	}
	if !added {
		names := relationNames[rel]
		return nil, errs.NewConflictError(
			fmt.Sprintf("Recipe is already in %s", names.label), true,
			errs.Code(names.code+"_ALREADY_EXISTS"))
	}

	mini := s.present.mini(*recipe)
	return &mini, nil
}

// Remove takes the recipe off the list.
func (s *RelationService) Remove(ctx context.Context, user *model.User, rel model.RecipeRelation, recipeID int64) error {
	if _, err := s.recipes.GetRecipe(ctx, recipeID); err != nil {
		return err
	}

	removed, err := s.relations.RemoveRelation(ctx, rel, user.ID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		names := relationNames[rel]
		return errs.NewBadRequestError(
			fmt.Sprintf("Recipe is not in %s", names.label), true,
			errs.Code(names.code+"_NOT_FOUND"), nil)
	}
	return nil
}

// ShoppingList renders the user's cart as a plain text file.
func (s *RelationService) ShoppingList(ctx context.Context, user *model.User) ([]byte, error) {
	items, err := s.relations.ShoppingList(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("aggregate shopping list: %w", err)
	}
	recipes, err := s.relations.CartRecipeNames(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list cart recipes: %w", err)
	}

	return []byte(FormatShoppingList(s.now(), recipes, items)), nil
}

// FormatShoppingList lays out the text file:
//
//	Shopping list compiled on: 02-01-2006
//	Recipes:
//	- <recipe>
//	Ingredients to buy:
//	1. <Ingredient> - <amount>(<unit>)
func FormatShoppingList(date time.Time, recipes []string, items []model.ShoppingListItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Shopping list compiled on: %s\n", date.Format("02-01-2006"))
	b.WriteString("Recipes:\n")
	for _, name := range recipes {
		fmt.Fprintf(&b, "- %s\n", name)
	}
	b.WriteString("Ingredients to buy:\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s - %d(%s)\n", i+1, utils.Capitalize(item.Name), item.TotalAmount, item.MeasurementUnit)
	}

	return b.String()
}
