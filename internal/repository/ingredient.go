package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/foodgram/internal/model"
	"github.com/jackc/pgx/v5"
)

// IngredientRepository persists the ingredient catalogue.
type IngredientRepository struct {
	db DB
}

func NewIngredientRepository(db DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// ListIngredients returns ingredients ordered by name. A non-empty prefix
// keeps only names starting with it, ignoring case.
func (r *IngredientRepository) ListIngredients(ctx context.Context, prefix string) ([]model.Ingredient, error) {
	query := `SELECT id, name, measurement_unit FROM ingredients`
	var args []any
	if prefix != "" {
		query += ` WHERE LOWER(name) LIKE $1`
		args = append(args, escapeLike(strings.ToLower(prefix))+"%")
	}
	query += ` ORDER BY name, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	ingredients, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Ingredient])
	if err != nil {
		return nil, fmt.Errorf("collect ingredients: %w", err)
	}
	return ingredients, nil
}

func (r *IngredientRepository) GetIngredient(ctx context.Context, id int64) (*model.Ingredient, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, measurement_unit FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	ingredient, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Ingredient])
	if err != nil {
		return nil, wrapNoRows("ingredients", err)
	}
	return ingredient, nil
}

func (r *IngredientRepository) CreateIngredient(ctx context.Context, ingredient *model.Ingredient) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO ingredients (name, measurement_unit) VALUES ($1, $2) RETURNING id`,
		ingredient.Name, ingredient.MeasurementUnit,
	).Scan(&ingredient.ID)
	if err != nil {
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

func (r *IngredientRepository) UpdateIngredient(ctx context.Context, ingredient *model.Ingredient) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE ingredients SET name = $2, measurement_unit = $3 WHERE id = $1`,
		ingredient.ID, ingredient.Name, ingredient.MeasurementUnit)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return notFound("ingredients", pgx.ErrNoRows)
	}
	return nil
}

func (r *IngredientRepository) DeleteIngredient(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return notFound("ingredients", pgx.ErrNoRows)
	}
	return nil
}

// ExistingIngredientIDs returns the subset of ids that exist.
func (r *IngredientRepository) ExistingIngredientIDs(ctx context.Context, ids []int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM ingredients WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

// BulkCreateIngredients inserts the catalogue, skipping (name, unit) pairs that exist.
func (r *IngredientRepository) BulkCreateIngredients(ctx context.Context, ingredients []model.Ingredient) (int, error) {
	if len(ingredients) == 0 {
		return 0, nil
	}

	names := make([]string, len(ingredients))
	units := make([]string, len(ingredients))
	for i, ing := range ingredients {
		names[i] = ing.Name
		units[i] = ing.MeasurementUnit
	}

	ct, err := r.db.Exec(ctx, `
		INSERT INTO ingredients (name, measurement_unit)
		SELECT * FROM UNNEST($1::text[], $2::text[])
		ON CONFLICT ON CONSTRAINT unique_ingredients_name DO NOTHING`, names, units)
	if err != nil {
		return 0, fmt.Errorf("bulk insert ingredients: %w", err)
	}
	return int(ct.RowsAffected()), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralises LIKE wildcards in user input.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
