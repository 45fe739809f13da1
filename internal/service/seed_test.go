package service_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/deppfellow/foodgram/internal/config"
	"github.com/deppfellow/foodgram/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestImportData(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	writeFile(t, dir, service.IngredientsFile, `[
		{"name": "salt", "measurement_unit": "g"},
		{"name": "salt", "measurement_unit": "pinch"},
		{"name": "salt", "measurement_unit": "g"}
	]`)
	writeFile(t, dir, service.TagsFile, `[
		{"name": "Breakfast", "slug": "breakfast"},
		{"name": "Dinner", "slug": "dinner"}
	]`)

	reports, err := f.svc.Seed.ImportData(f.ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, []service.ImportReport{
		{File: service.IngredientsFile, Read: 3, Inserted: 2},
		{File: service.TagsFile, Read: 2, Inserted: 2},
	}, reports)

	again, err := f.svc.Seed.ImportData(f.ctx, dir)
	require.NoError(t, err)
	assert.Zero(t, again[0].Inserted)
	assert.Zero(t, again[1].Inserted)

	tags, err := f.svc.Tags.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}

func TestImportDataErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Seed.ImportData(f.ctx, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")

	dir := t.TempDir()
	writeFile(t, dir, service.IngredientsFile, `{not json`)
	_, err = f.svc.Seed.ImportData(f.ctx, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestEnsureUsers(t *testing.T) {
	f := newFixture(t)

	report, err := f.svc.Seed.EnsureUsers(f.ctx, service.DemoUsers)
	require.NoError(t, err)
	assert.Len(t, report.Created, len(service.DemoUsers))
	assert.Empty(t, report.Skipped)

	report, err = f.svc.Seed.EnsureUsers(f.ctx, service.DemoUsers)
	require.NoError(t, err)
	assert.Empty(t, report.Created)
	assert.Len(t, report.Skipped, len(service.DemoUsers))

	_, err = f.svc.Auth.Login(f.ctx, "johndoe879@example.com", "mysecretpass123")
	assert.NoError(t, err)
}

func TestSuperuser(t *testing.T) {
	f := newFixture(t)
	seed := service.SuperuserFromConfig(config.DefaultSeedConfig())

	report, err := f.svc.Seed.EnsureUsers(f.ctx, []service.SeedUser{seed})
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, report.Created)

	user, err := f.store.GetUserByEmail(f.ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
}

func TestCreateDemoRecipes(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Seed.CreateDemoRecipes(f.ctx, service.DemoRecipes)
	require.ErrorIs(t, err, service.ErrSeedPrerequisites, "demo users are missing")

	_, err = f.svc.Seed.ImportData(f.ctx, filepath.Join("..", "..", "data"))
	require.NoError(t, err)
	_, err = f.svc.Seed.EnsureUsers(f.ctx, service.DemoUsers)
	require.NoError(t, err)

	report, err := f.svc.Seed.CreateDemoRecipes(f.ctx, service.DemoRecipes)
	require.NoError(t, err)
	assert.Len(t, report.Created, len(service.DemoRecipes))
	assert.Empty(t, report.Skipped)

	author, err := f.store.GetUserByEmail(f.ctx, service.DemoRecipes[0].Author)
	require.NoError(t, err)
	byAuthor, err := f.store.AuthorRecipes(f.ctx, []int64{author.ID}, 0)
	require.NoError(t, err)
	require.Len(t, byAuthor[author.ID], 1)
	recipe := byAuthor[author.ID][0]
	assert.Equal(t, service.DemoRecipes[0].Name, recipe.Name)

	data, err := os.ReadFile(filepath.Join(f.server.Storage.Root(), filepath.FromSlash(recipe.Image)))
	require.NoError(t, err)
	assert.Equal(t, "image/png", http.DetectContentType(data))

	lines, err := f.store.RecipeIngredients(f.ctx, []int64{recipe.ID})
	require.NoError(t, err)
	assert.Len(t, lines[recipe.ID], len(service.DemoRecipes[0].Ingredients))

	again, err := f.svc.Seed.CreateDemoRecipes(f.ctx, service.DemoRecipes)
	require.NoError(t, err)
	assert.Empty(t, again.Created)
	assert.Len(t, again.Skipped, len(service.DemoRecipes))
}

func TestCreateDemoRecipesUnknownIngredient(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Seed.EnsureUsers(f.ctx, service.DemoUsers[:1])
	require.NoError(t, err)
	f.tag(t, "Breakfast", "breakfast")

	seeds := []service.SeedRecipe{{
		Author:      service.DemoUsers[0].Email,
		Name:        "Toast",
		Text:        "Toast the bread.",
		CookingTime: 3,
		Tags:        []string{"breakfast"},
		Ingredients: []service.SeedIngredient{{Name: "bread", Unit: "slice", Amount: 2}},
	}}
	report, err := f.svc.Seed.CreateDemoRecipes(f.ctx, seeds)
	require.ErrorIs(t, err, service.ErrSeedPrerequisites)
	assert.Contains(t, err.Error(), "bread")
	assert.Empty(t, report.Created)
}
