package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/foodgram/internal/errs"
	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/deppfellow/foodgram/internal/service"
	"github.com/deppfellow/foodgram/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	server *server.Server
	svc    *service.Services
	store  *testutil.Store
	ctx    context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := testutil.NewServer(t)
	store := testutil.NewStore()
	return &fixture{
		server: s,
		svc:    service.NewServices(s, store.Stores()),
		store:  store,
		ctx:    context.Background(),
	}
}

func (f *fixture) user(t *testing.T, username string) *model.User {
	t.Helper()
	created, err := f.svc.Users.Create(f.ctx, service.CreateUserInput{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "First",
		LastName:  "Last",
		Password:  "password123",
	})
	require.NoError(t, err)

	user, err := f.store.GetUserByID(f.ctx, created.ID)
	require.NoError(t, err)
	return user
}

func (f *fixture) tag(t *testing.T, name, slug string) model.Tag {
	t.Helper()
	tag, err := f.svc.Tags.Create(f.ctx, model.Tag{Name: name, Slug: slug})
	require.NoError(t, err)
	return *tag
}

func (f *fixture) ingredient(t *testing.T, name, unit string) model.Ingredient {
	t.Helper()
	ingredient, err := f.svc.Ingredients.Create(f.ctx, model.Ingredient{Name: name, MeasurementUnit: unit})
	require.NoError(t, err)
	return *ingredient
}

func (f *fixture) recipe(t *testing.T, author *model.User, name string, tags []int64, items ...model.IngredientAmount) *model.RecipeResponse {
	t.Helper()
	recipe, err := f.svc.Recipes.Create(f.ctx, author, service.RecipeInput{
		Name:        name,
		Text:        "Mix and serve.",
		Image:       testutil.PNG,
		CookingTime: 10,
		Tags:        tags,
		Ingredients: items,
	})
	require.NoError(t, err)
	return recipe
}

// httpError asserts err is an *errs.HTTPError with the given status.
func httpError(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	return httpErr
}
