package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/foodgram/internal/model"
	"github.com/jackc/pgx/v5"
)

const recipeColumns = `r.id, r.author_id, r.name, r.image, r.text, r.cooking_time, r.short_link, r.created_at`

// RecipeRepository persists recipes together with their tags and ingredient lines.
type RecipeRepository struct {
	db DB
}

func NewRecipeRepository(db DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// CreateRecipe inserts the recipe row and its tag/ingredient links in one transaction.
func (r *RecipeRepository) CreateRecipe(ctx context.Context, recipe *model.Recipe, tagIDs []int64, items []model.IngredientAmount) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO recipes (author_id, name, image, text, cooking_time)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`,
			recipe.AuthorID, recipe.Name, recipe.Image, recipe.Text, recipe.CookingTime,
		).Scan(&recipe.ID, &recipe.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert recipe: %w", err)
		}
		return writeRecipeLinks(ctx, tx, recipe.ID, tagIDs, items)
	})
}

// UpdateRecipe replaces the recipe fields and its full tag/ingredient sets.
// An empty Image keeps the stored one.
func (r *RecipeRepository) UpdateRecipe(ctx context.Context, recipe *model.Recipe, tagIDs []int64, items []model.IngredientAmount) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE recipes
			SET name = $2,
			    image = COALESCE(NULLIF($3, ''), image),
			    text = $4,
			    cooking_time = $5
			WHERE id = $1
			RETURNING image, short_link, created_at`,
			recipe.ID, recipe.Name, recipe.Image, recipe.Text, recipe.CookingTime,
		).Scan(&recipe.Image, &recipe.ShortLink, &recipe.CreatedAt)
		if err != nil {
			return wrapNoRows("recipes", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, recipe.ID); err != nil {
			return fmt.Errorf("clear recipe tags: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipe.ID); err != nil {
			return fmt.Errorf("clear recipe ingredients: %w", err)
		}
		return writeRecipeLinks(ctx, tx, recipe.ID, tagIDs, items)
	})
}

func writeRecipeLinks(ctx context.Context, tx pgx.Tx, recipeID int64, tagIDs []int64, items []model.IngredientAmount) error {
	if len(tagIDs) > 0 {
		_, err := tx.Exec(ctx, `
			INSERT INTO recipe_tags (recipe_id, tag_id)
			SELECT $1, UNNEST($2::bigint[])`, recipeID, tagIDs)
		if err != nil {
			return fmt.Errorf("insert recipe tags: %w", err)
		}
	}

	if len(items) > 0 {
		ids := make([]int64, len(items))
		amounts := make([]int32, len(items))
		for i, item := range items {
			ids[i] = item.ID
			amounts[i] = int32(item.Amount)
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount)
			SELECT $1, * FROM UNNEST($2::bigint[], $3::int[])`, recipeID, ids, amounts)
		if err != nil {
			return fmt.Errorf("insert recipe ingredients: %w", err)
		}
	}
	return nil
}

// DeleteRecipe removes the recipe; links go with it through ON DELETE CASCADE.
func (r *RecipeRepository) DeleteRecipe(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return notFound("recipes", pgx.ErrNoRows)
	}
	return nil
}

func (r *RecipeRepository) GetRecipe(ctx context.Context, id int64) (*model.Recipe, error) {
	return r.getOne(ctx, `SELECT `+recipeColumns+` FROM recipes r WHERE r.id = $1`, id)
}

func (r *RecipeRepository) GetRecipeByShortLink(ctx context.Context, code string) (*model.Recipe, error) {
	return r.getOne(ctx, `SELECT `+recipeColumns+` FROM recipes r WHERE r.short_link = $1`, code)
}

func (r *RecipeRepository) getOne(ctx context.Context, query string, args ...any) (*model.Recipe, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	recipe, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Recipe])
	if err != nil {
		return nil, wrapNoRows("recipes", err)
	}
	return recipe, nil
}

// SetShortLink stores code unless the recipe already has a link, and returns
// whichever link the recipe ends up with.
func (r *RecipeRepository) SetShortLink(ctx context.Context, id int64, code string) (string, error) {
	var link string
	err := r.db.QueryRow(ctx, `
		UPDATE recipes SET short_link = COALESCE(short_link, $2)
		WHERE id = $1
		RETURNING short_link`, id, code).Scan(&link)
	if err != nil {
		return "", wrapNoRows("recipes", err)
	}
	return link, nil
}

// ListRecipes returns one page of recipes matching f, newest first, and
// the number of matching recipes.
func (r *RecipeRepository) ListRecipes(ctx context.Context, f model.RecipeFilter) ([]model.Recipe, int, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.AuthorID > 0 {
		where = append(where, "r.author_id = "+arg(f.AuthorID))
	}
	if len(f.TagSlugs) > 0 {
		where = append(where, `EXISTS (
			SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
			WHERE rt.recipe_id = r.id AND t.slug = ANY(`+arg(f.TagSlugs)+`))`)
	}
	if f.ViewerID > 0 {
		if f.IsFavorited {
			where = append(where, `EXISTS (
				SELECT 1 FROM favorites fv WHERE fv.recipe_id = r.id AND fv.user_id = `+arg(f.ViewerID)+`)`)
		}
		if f.IsInShoppingCart {
			where = append(where, `EXISTS (
				SELECT 1 FROM shopping_carts sc WHERE sc.recipe_id = r.id AND sc.user_id = `+arg(f.ViewerID)+`)`)
		}
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM recipes r`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count recipes: %w", err)
	}

	query := `SELECT ` + recipeColumns + ` FROM recipes r` + clause +
		` ORDER BY r.created_at DESC, r.id DESC LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(f.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	recipes, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Recipe])
	if err != nil {
		return nil, 0, fmt.Errorf("collect recipes: %w", err)
	}
	return recipes, total, nil
}

// RecipeTags loads the tags of several recipes, keyed by recipe ID.
func (r *RecipeRepository) RecipeTags(ctx context.Context, recipeIDs []int64) (map[int64][]model.Tag, error) {
	result := make(map[int64][]model.Tag, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT rt.recipe_id, t.id, t.name, t.slug
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id = ANY($1)
		ORDER BY t.name`, recipeIDs)
	if err != nil {
		return nil, err
	}
	links, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.RecipeTag])
	if err != nil {
		return nil, fmt.Errorf("collect recipe tags: %w", err)
	}
	for _, l := range links {
		result[l.RecipeID] = append(result[l.RecipeID], l.Tag)
	}
	return result, nil
}

// RecipeIngredients loads the ingredient lines of several recipes, keyed by recipe ID.
func (r *RecipeRepository) RecipeIngredients(ctx context.Context, recipeIDs []int64) (map[int64][]model.RecipeIngredient, error) {
	result := make(map[int64][]model.RecipeIngredient, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = ANY($1)
		ORDER BY i.name`, recipeIDs)
	if err != nil {
		return nil, err
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.RecipeIngredient])
	if err != nil {
		return nil, fmt.Errorf("collect recipe ingredients: %w", err)
	}
	for _, l := range lines {
		result[l.RecipeID] = append(result[l.RecipeID], l)
	}
	return result, nil
}

// AuthorRecipes returns up to limit newest recipes per author, keyed by
// author ID. A limit <= 0 means no limit.
func (r *RecipeRepository) AuthorRecipes(ctx context.Context, authorIDs []int64, limit int) (map[int64][]model.Recipe, error) {
	result := make(map[int64][]model.Recipe, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, author_id, name, image, text, cooking_time, short_link, created_at
		FROM (
			SELECT `+recipeColumns+`,
			       ROW_NUMBER() OVER (PARTITION BY r.author_id ORDER BY r.created_at DESC, r.id DESC) AS rn
			FROM recipes r
			WHERE r.author_id = ANY($1)
		) ranked
		WHERE $2 <= 0 OR rn <= $2
		ORDER BY author_id, rn`, authorIDs, limit)
	if err != nil {
		return nil, err
	}
	recipes, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Recipe])
	if err != nil {
		return nil, fmt.Errorf("collect author recipes: %w", err)
	}
	for _, rec := range recipes {
		result[rec.AuthorID] = append(result[rec.AuthorID], rec)
	}
	return result, nil
}

// CountAuthorRecipes counts recipes per author, keyed by author ID.
func (r *RecipeRepository) CountAuthorRecipes(ctx context.Context, authorIDs []int64) (map[int64]int, error) {
	result := make(map[int64]int, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT author_id, COUNT(*) FROM recipes
		WHERE author_id = ANY($1)
		GROUP BY author_id`, authorIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			authorID int64
			count    int
		)
		if err := rows.Scan(&authorID, &count); err != nil {
			return nil, fmt.Errorf("scan recipe count: %w", err)
		}
		result[authorID] = count
	}
	return result, rows.Err()
}
