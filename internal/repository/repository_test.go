package repository_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"testing"

	"github.com/deppfellow/foodgram/internal/database"
	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPool migrates a fresh schema on the database named by
// FOODGRAM_TEST_DATABASE_URL and returns a pool bound to it. The schema is
// dropped when the test ends.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("FOODGRAM_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("FOODGRAM_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	suffix := make([]byte, 6)
	_, err := rand.Read(suffix)
	require.NoError(t, err)
	schema := "test_" + hex.EncodeToString(suffix)

	connCfg, err := pgx.ParseConfig(url)
	require.NoError(t, err)
	connCfg.RuntimeParams["search_path"] = schema

	conn, err := pgx.ConnectConfig(ctx, connCfg)
	require.NoError(t, err)
	defer conn.Close(ctx)

	_, err = conn.Exec(ctx, fmt.Sprintf("CREATE SCHEMA %s", schema))
	require.NoError(t, err)
	t.Cleanup(func() {
		cleanup, err := pgx.Connect(context.Background(), url)
		if err != nil {
			t.Logf("drop schema %s: %v", schema, err)
			return
		}
		defer cleanup.Close(context.Background())
		if _, err := cleanup.Exec(context.Background(), fmt.Sprintf("DROP SCHEMA %s CASCADE", schema)); err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
	})

	_, _, err = database.MigrateConn(ctx, conn)
	require.NoError(t, err)

	poolCfg, err := pgxpool.ParseConfig(url)
	require.NoError(t, err)
	poolCfg.ConnConfig.RuntimeParams["search_path"] = schema

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func createUser(t *testing.T, db repository.DB, username string) *model.User {
	t.Helper()
	u := &model.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "x",
	}
	require.NoError(t, repository.NewUserRepository(db).CreateUser(context.Background(), u))
	return u
}

func createIngredient(t *testing.T, db repository.DB, name, unit string) int64 {
	t.Helper()
	ing := &model.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, repository.NewIngredientRepository(db).CreateIngredient(context.Background(), ing))
	return ing.ID
}

func createRecipe(t *testing.T, db repository.DB, authorID int64, name string, items ...model.IngredientAmount) *model.Recipe {
	t.Helper()
	rec := &model.Recipe{
		AuthorID:    authorID,
		Name:        name,
		Image:       "recipes/images/" + name + ".png",
		Text:        "Mix and serve.",
		CookingTime: 10,
	}
	require.NoError(t, repository.NewRecipeRepository(db).CreateRecipe(context.Background(), rec, nil, items))
	return rec
}

func TestShoppingList(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	relations := repository.NewRelationRepository(pool)

	cook := createUser(t, pool, "cook")
	shopper := createUser(t, pool, "shopper")

	flour := createIngredient(t, pool, "мука", "г")
	flourCups := createIngredient(t, pool, "мука", "стакан")
	eggs := createIngredient(t, pool, "яйца", "шт")

	pancakes := createRecipe(t, pool, cook.ID, "pancakes",
		model.IngredientAmount{ID: flour, Amount: 200},
		model.IngredientAmount{ID: eggs, Amount: 2},
	)
	bread := createRecipe(t, pool, cook.ID, "bread",
		model.IngredientAmount{ID: flour, Amount: 500},
		model.IngredientAmount{ID: flourCups, Amount: 1},
	)
	createRecipe(t, pool, cook.ID, "omelette", model.IngredientAmount{ID: eggs, Amount: 3})

	t.Run("empty cart", func(t *testing.T) {
		items, err := relations.ShoppingList(ctx, shopper.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	for _, id := range []int64{pancakes.ID, bread.ID} {
		added, err := relations.AddRelation(ctx, model.RelationShoppingCart, shopper.ID, id)
		require.NoError(t, err)
		require.True(t, added)
	}

	added, err := relations.AddRelation(ctx, model.RelationShoppingCart, shopper.ID, pancakes.ID)
	require.NoError(t, err)
	assert.False(t, added, "adding twice is a no-op")

	items, err := relations.ShoppingList(ctx, shopper.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.ShoppingListItem{
		{Name: "мука", MeasurementUnit: "г", TotalAmount: 700},
		{Name: "мука", MeasurementUnit: "стакан", TotalAmount: 1},
		{Name: "яйца", MeasurementUnit: "шт", TotalAmount: 2},
	}, items)

	names, err := relations.CartRecipeNames(ctx, shopper.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"pancakes", "bread"}, names)
}

func TestAuthorRecipes(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	recipes := repository.NewRecipeRepository(pool)

	alice := createUser(t, pool, "alice")
	bob := createUser(t, pool, "bob")
	idle := createUser(t, pool, "idle")

	var aliceIDs []int64
	for _, name := range []string{"first", "second", "third"} {
		aliceIDs = append(aliceIDs, createRecipe(t, pool, alice.ID, name).ID)
	}
	bobRecipe := createRecipe(t, pool, bob.ID, "only")

	ids := func(list []model.Recipe) []int64 {
		out := make([]int64, 0, len(list))
		for _, r := range list {
			out = append(out, r.ID)
		}
		return out
	}

	t.Run("limit keeps newest per author", func(t *testing.T) {
		got, err := recipes.AuthorRecipes(ctx, []int64{alice.ID, bob.ID, idle.ID}, 2)
		require.NoError(t, err)
		assert.Equal(t, []int64{aliceIDs[2], aliceIDs[1]}, ids(got[alice.ID]))
		assert.Equal(t, []int64{bobRecipe.ID}, ids(got[bob.ID]))
		assert.Empty(t, got[idle.ID])
	})

	t.Run("zero limit returns all", func(t *testing.T) {
		got, err := recipes.AuthorRecipes(ctx, []int64{alice.ID}, 0)
		require.NoError(t, err)
		assert.Equal(t, []int64{aliceIDs[2], aliceIDs[1], aliceIDs[0]}, ids(got[alice.ID]))
	})

	t.Run("no authors", func(t *testing.T) {
		got, err := recipes.AuthorRecipes(ctx, nil, 3)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	counts, err := recipes.CountAuthorRecipes(ctx, []int64{alice.ID, bob.ID})
	require.NoError(t, err)
	assert.Equal(t, 3, counts[alice.ID])
	assert.Equal(t, 1, counts[bob.ID])
}

func TestUpdateRecipeKeepsImage(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	recipes := repository.NewRecipeRepository(pool)

	cook := createUser(t, pool, "cook")
	salt := createIngredient(t, pool, "соль", "г")
	pepper := createIngredient(t, pool, "перец", "г")

	rec := createRecipe(t, pool, cook.ID, "soup", model.IngredientAmount{ID: salt, Amount: 5})
	storedImage := rec.Image

	rec.Name = "spicy soup"
	rec.Image = ""
	require.NoError(t, recipes.UpdateRecipe(ctx, rec, nil, []model.IngredientAmount{{ID: pepper, Amount: 2}}))
	assert.Equal(t, storedImage, rec.Image)

	got, err := recipes.GetRecipe(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "spicy soup", got.Name)
	assert.Equal(t, storedImage, got.Image)

	lines, err := recipes.RecipeIngredients(ctx, []int64{rec.ID})
	require.NoError(t, err)
	require.Len(t, lines[rec.ID], 1)
	assert.Equal(t, pepper, lines[rec.ID][0].ID)
	assert.Equal(t, 2, lines[rec.ID][0].Amount)

	missing := &model.Recipe{ID: rec.ID + 1000, Name: "x", Text: "x", CookingTime: 1}
	err = recipes.UpdateRecipe(ctx, missing, nil, nil)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
