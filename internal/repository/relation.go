package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/foodgram/internal/model"
	"github.com/jackc/pgx/v5"
)

// RelationRepository handles the per-user recipe lists: favorites and the
// shopping cart. Both tables have the same (user_id, recipe_id) shape.
type RelationRepository struct {
	db DB
}

func NewRelationRepository(db DB) *RelationRepository {
	return &RelationRepository{db: db}
}

func relationTable(rel model.RecipeRelation) (string, error) {
	switch rel {
	case model.RelationFavorite, model.RelationShoppingCart:
		return string(rel), nil
	default:
		return "", fmt.Errorf("unknown recipe relation %q", rel)
	}
}

// AddRelation reports false when the recipe was already on the list.
func (r *RelationRepository) AddRelation(ctx context.Context, rel model.RecipeRelation, userID, recipeID int64) (bool, error) {
	table, err := relationTable(rel)
	if err != nil {
		return false, err
	}

	ct, err := r.db.Exec(ctx, `
		INSERT INTO `+table+` (user_id, recipe_id) VALUES ($1, $2)
		ON CONFLICT (user_id, recipe_id) DO NOTHING`, userID, recipeID)
	if err != nil {
		return false, fmt.Errorf("insert into %s: %w", table, err)
	}
	return ct.RowsAffected() == 1, nil
}

// RemoveRelation reports false when the recipe was not on the list.
func (r *RelationRepository) RemoveRelation(ctx context.Context, rel model.RecipeRelation, userID, recipeID int64) (bool, error) {
	table, err := relationTable(rel)
	if err != nil {
		return false, err
	}

	ct, err := r.db.Exec(ctx, `DELETE FROM `+table+` WHERE user_id = $1 AND recipe_id = $2`, userID, recipeID)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", table, err)
	}
	return ct.RowsAffected() == 1, nil
}

// RelatedRecipes reports which of recipeIDs are on userID's list.
func (r *RelationRepository) RelatedRecipes(ctx context.Context, rel model.RecipeRelation, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(recipeIDs))
	if userID == 0 || len(recipeIDs) == 0 {
		return result, nil
	}

	table, err := relationTable(rel)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT recipe_id FROM `+table+` WHERE user_id = $1 AND recipe_id = ANY($2)`, userID, recipeIDs)
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", table, err)
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// ShoppingList sums the ingredients of every recipe in userID's cart,
// one line per (name, unit), ordered by name.
func (r *RelationRepository) ShoppingList(ctx context.Context, userID int64) ([]model.ShoppingListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT i.name, i.measurement_unit, SUM(ri.amount) AS total_amount
		FROM shopping_carts sc
		JOIN recipe_ingredients ri ON ri.recipe_id = sc.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE sc.user_id = $1
		GROUP BY i.name, i.measurement_unit
		ORDER BY i.name, i.measurement_unit`, userID)
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.ShoppingListItem])
	if err != nil {
		return nil, fmt.Errorf("collect shopping list: %w", err)
	}
	return items, nil
}

// CartRecipeNames lists the names of the recipes in userID's cart.
func (r *RelationRepository) CartRecipeNames(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.name FROM shopping_carts sc
		JOIN recipes r ON r.id = sc.recipe_id
		WHERE sc.user_id = $1
		ORDER BY sc.created_at, r.name`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
