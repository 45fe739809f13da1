package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/foodgram/internal/config"
	"github.com/deppfellow/foodgram/internal/errs"
	"github.com/deppfellow/foodgram/internal/handler"
	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/router"
	"github.com/deppfellow/foodgram/internal/service"
	"github.com/deppfellow/foodgram/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type api struct {
	t   *testing.T
	e   *echo.Echo
	svc *service.Services
}

func newAPI(t *testing.T) *api {
	t.Helper()
	s := testutil.NewServer(t)
	svc := service.NewServices(s, testutil.NewStore().Stores())
	return &api{t: t, e: router.NewRouter(s, handler.NewHandlers(s, svc), svc), svc: svc}
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Token "+token)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
}

// register signs a user up and logs them in.
func (a *api) register(username string) (int64, string) {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/users", "", map[string]string{
		"email":      username + "@example.com",
		"username":   username,
		"first_name": "First",
		"last_name":  "Last",
		"password":   "password123",
	})
	requireStatus(a.t, rec, http.StatusCreated)
	created := decode[model.CreatedUser](a.t, rec)

	return created.ID, a.login(username+"@example.com", "password123")
}

func (a *api) login(email, password string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/auth/token/login", "", map[string]string{"email": email, "password": password})
	requireStatus(a.t, rec, http.StatusOK)
	return decode[model.TokenResponse](a.t, rec).AuthToken
}

func (a *api) admin() string {
	a.t.Helper()
	seed := config.DefaultSeedConfig()
	_, err := a.svc.Seed.EnsureUsers(context.Background(), []service.SeedUser{service.SuperuserFromConfig(seed)})
	require.NoError(a.t, err)
	return a.login(seed.SuperuserEmail, seed.SuperuserPassword)
}

type catalog struct {
	breakfast model.Tag
	egg, milk model.Ingredient
}

func (a *api) catalog() catalog {
	a.t.Helper()
	token := a.admin()

	rec := a.do(http.MethodPost, "/api/admin/tags", token, map[string]string{"name": "Breakfast", "slug": "breakfast"})
	requireStatus(a.t, rec, http.StatusCreated)
	c := catalog{breakfast: decode[model.Tag](a.t, rec)}

	rec = a.do(http.MethodPost, "/api/admin/ingredients", token, map[string]string{"name": "egg", "measurement_unit": "pcs"})
	requireStatus(a.t, rec, http.StatusCreated)
	c.egg = decode[model.Ingredient](a.t, rec)

	rec = a.do(http.MethodPost, "/api/admin/ingredients", token, map[string]string{"name": "milk", "measurement_unit": "ml"})
	requireStatus(a.t, rec, http.StatusCreated)
	c.milk = decode[model.Ingredient](a.t, rec)

	return c
}

func (a *api) createRecipe(token, name string, c catalog) model.RecipeResponse {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/recipes", token, map[string]any{
		"name":         name,
		"text":         "Whisk and fry.",
		"image":        testutil.PNG,
		"cooking_time": 12,
		"tags":         []int64{c.breakfast.ID},
		"ingredients": []map[string]any{
			{"id": c.egg.ID, "amount": 3},
			{"id": c.milk.ID, "amount": 100},
		},
	})
	requireStatus(a.t, rec, http.StatusCreated)
	return decode[model.RecipeResponse](a.t, rec)
}

func TestRegisterLoginLogout(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/api/users", "", map[string]string{
		"email": "cook@example.com", "username": "cook", "first_name": "A", "last_name": "B", "password": "password123",
	})
	requireStatus(t, rec, http.StatusCreated)
	assert.NotContains(t, rec.Body.String(), "password")

	token := a.login("cook@example.com", "password123")

	rec = a.do(http.MethodGet, "/api/users/me", token, nil)
	requireStatus(t, rec, http.StatusOK)
	me := decode[model.UserProfile](t, rec)
	assert.Equal(t, "cook", me.Username)
	assert.Nil(t, me.Avatar)
	assert.False(t, me.IsSubscribed)

	requireStatus(t, a.do(http.MethodGet, "/api/users/me", "", nil), http.StatusUnauthorized)
	requireStatus(t, a.do(http.MethodGet, "/api/users/me", "not-a-token", nil), http.StatusUnauthorized)

	requireStatus(t, a.do(http.MethodPost, "/api/auth/token/logout", token, nil), http.StatusNoContent)
	requireStatus(t, a.do(http.MethodGet, "/api/users/me", token, nil), http.StatusUnauthorized)
}

func TestLoginFailure(t *testing.T) {
	a := newAPI(t)
	a.register("cook")

	rec := a.do(http.MethodPost, "/api/auth/token/login", "", map[string]string{"email": "cook@example.com", "password": "nope-nope"})
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "INVALID_CREDENTIALS", decode[errs.HTTPError](t, rec).Code)
}

func TestCreateUserErrors(t *testing.T) {
	a := newAPI(t)
	a.register("cook")

	rec := a.do(http.MethodPost, "/api/users", "", map[string]string{"email": "not-an-email", "username": "bad name!"})
	requireStatus(t, rec, http.StatusBadRequest)
	fields := map[string]bool{}
	for _, fe := range decode[errs.HTTPError](t, rec).Errors {
		fields[fe.Field] = true
	}
	for _, field := range []string{"email", "username", "first_name", "last_name", "password"} {
		assert.True(t, fields[field], "missing error for %s", field)
	}

	rec = a.do(http.MethodPost, "/api/users", "", map[string]string{
		"email": "COOK@example.com", "username": "cook2", "first_name": "A", "last_name": "B", "password": "password123",
	})
	requireStatus(t, rec, http.StatusConflict)
	assert.Equal(t, "USER_ALREADY_EXISTS", decode[errs.HTTPError](t, rec).Code)
}

func TestUsersPagination(t *testing.T) {
	a := newAPI(t)
	for _, name := range []string{"carol", "alice", "bob"} {
		a.register(name)
	}

	rec := a.do(http.MethodGet, "/api/users?limit=2", "", nil)
	requireStatus(t, rec, http.StatusOK)
	page := decode[model.PaginatedResponse[model.UserProfile]](t, rec)
	assert.Equal(t, 3, page.Count)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "alice", page.Results[0].Username)
	require.NotNil(t, page.Next)
	assert.Equal(t, "http://example.com/api/users?limit=2&page=2", *page.Next)
	assert.Nil(t, page.Previous)

	rec = a.do(http.MethodGet, "/api/users?limit=2&page=2", "", nil)
	requireStatus(t, rec, http.StatusOK)
	page = decode[model.PaginatedResponse[model.UserProfile]](t, rec)
	require.Len(t, page.Results, 1)
	assert.Nil(t, page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "http://example.com/api/users?limit=2", *page.Previous)

	rec = a.do(http.MethodGet, "/api/users?page=0", "", nil)
	requireStatus(t, rec, http.StatusBadRequest)
	invalid := decode[errs.HTTPError](t, rec)
	require.Len(t, invalid.Errors, 1)
	assert.Equal(t, "page", invalid.Errors[0].Field)

	requireStatus(t, a.do(http.MethodGet, "/api/users?limit=0", "", nil), http.StatusBadRequest)

	rec = a.do(http.MethodGet, "/api/users", "", nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Len(t, decode[model.PaginatedResponse[model.UserProfile]](t, rec).Results, 3, "defaults apply when page and limit are absent")
}

func TestUserProfileAndAvatar(t *testing.T) {
	a := newAPI(t)
	id, token := a.register("cook")

	rec := a.do(http.MethodGet, fmt.Sprintf("/api/users/%d", id), "", nil)
	requireStatus(t, rec, http.StatusOK)

	rec = a.do(http.MethodGet, "/api/users/999", "", nil)
	requireStatus(t, rec, http.StatusNotFound)
	assert.Equal(t, "User not found", decode[errs.HTTPError](t, rec).Message)

	requireStatus(t, a.do(http.MethodGet, "/api/users/abc", "", nil), http.StatusBadRequest)

	requireStatus(t, a.do(http.MethodPut, "/api/users/me/avatar", token, map[string]string{}), http.StatusBadRequest)

	rec = a.do(http.MethodPut, "/api/users/me/avatar", token, map[string]string{"avatar": testutil.PNG})
	requireStatus(t, rec, http.StatusOK)
	avatar := decode[model.AvatarResponse](t, rec).Avatar
	assert.True(t, strings.HasPrefix(avatar, testutil.PublicURL+"/media/avatars/"), avatar)

	path := strings.TrimPrefix(avatar, testutil.PublicURL)
	requireStatus(t, a.do(http.MethodGet, path, "", nil), http.StatusOK)

	requireStatus(t, a.do(http.MethodDelete, "/api/users/me/avatar", token, nil), http.StatusNoContent)
	rec = a.do(http.MethodGet, "/api/users/me", token, nil)
	assert.Nil(t, decode[model.UserProfile](t, rec).Avatar)
}

func TestSetPassword(t *testing.T) {
	a := newAPI(t)
	_, token := a.register("cook")

	rec := a.do(http.MethodPost, "/api/users/set_password", token, map[string]string{
		"current_password": "wrong-one", "new_password": "brandnew123",
	})
	requireStatus(t, rec, http.StatusBadRequest)

	rec = a.do(http.MethodPost, "/api/users/set_password", token, map[string]string{
		"current_password": "password123", "new_password": "brandnew123",
	})
	requireStatus(t, rec, http.StatusNoContent)
	a.login("cook@example.com", "brandnew123")
}

func TestSubscriptions(t *testing.T) {
	a := newAPI(t)
	c := a.catalog()
	authorID, authorToken := a.register("author")
	readerID, readerToken := a.register("reader")
	a.createRecipe(authorToken, "First", c)
	a.createRecipe(authorToken, "Second", c)

	subscribe := fmt.Sprintf("/api/users/%d/subscribe", authorID)

	requireStatus(t, a.do(http.MethodPost, subscribe, "", nil), http.StatusUnauthorized)

	rec := a.do(http.MethodPost, subscribe+"?recipes_limit=1", readerToken, nil)
	requireStatus(t, rec, http.StatusCreated)
	card := decode[model.AuthorCard](t, rec)
	assert.True(t, card.IsSubscribed)
	assert.Equal(t, 2, card.RecipesCount)
	require.Len(t, card.Recipes, 1)
	assert.Equal(t, "Second", card.Recipes[0].Name)

	requireStatus(t, a.do(http.MethodPost, subscribe, readerToken, nil), http.StatusConflict)
	requireStatus(t, a.do(http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe", readerID), readerToken, nil), http.StatusBadRequest)
	requireStatus(t, a.do(http.MethodPost, subscribe+"?recipes_limit=x", readerToken, nil), http.StatusBadRequest)

	rec = a.do(http.MethodGet, "/api/users/subscriptions", readerToken, nil)
	requireStatus(t, rec, http.StatusOK)
	page := decode[model.PaginatedResponse[model.AuthorCard]](t, rec)
	assert.Equal(t, 1, page.Count)
	assert.Len(t, page.Results[0].Recipes, 2)

	requireStatus(t, a.do(http.MethodDelete, subscribe, readerToken, nil), http.StatusNoContent)
	requireStatus(t, a.do(http.MethodDelete, subscribe, readerToken, nil), http.StatusBadRequest)
}

func TestCatalogAdmin(t *testing.T) {
	a := newAPI(t)
	_, userToken := a.register("cook")
	adminToken := a.admin()

	tag := map[string]string{"name": "Lunch", "slug": "lunch"}
	requireStatus(t, a.do(http.MethodPost, "/api/admin/tags", "", tag), http.StatusUnauthorized)
	requireStatus(t, a.do(http.MethodPost, "/api/admin/tags", userToken, tag), http.StatusForbidden)

	rec := a.do(http.MethodPost, "/api/admin/tags", adminToken, tag)
	requireStatus(t, rec, http.StatusCreated)
	created := decode[model.Tag](t, rec)

	rec = a.do(http.MethodPost, "/api/admin/tags", adminToken, tag)
	requireStatus(t, rec, http.StatusConflict)
	assert.Equal(t, "TAG_ALREADY_EXISTS", decode[errs.HTTPError](t, rec).Code)

	rec = a.do(http.MethodPost, "/api/admin/tags", adminToken, map[string]string{"name": "Bad", "slug": "not a slug"})
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "slug", decode[errs.HTTPError](t, rec).Errors[0].Field)

	rec = a.do(http.MethodPost, "/api/admin/tags/import", adminToken, []map[string]string{
		{"name": "Lunch", "slug": "lunch"},
		{"name": "Dinner", "slug": "dinner"},
	})
	requireStatus(t, rec, http.StatusCreated)
	imported := decode[handler.ImportResponse](t, rec)
	assert.Equal(t, 2, imported.Received)
	assert.Equal(t, 1, imported.Inserted)

	rec = a.do(http.MethodGet, "/api/tags", "", nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Len(t, decode[[]model.Tag](t, rec), 2)

	rec = a.do(http.MethodPatch, fmt.Sprintf("/api/admin/tags/%d", created.ID), adminToken, map[string]string{"name": "Brunch", "slug": "brunch"})
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "brunch", decode[model.Tag](t, rec).Slug)

	requireStatus(t, a.do(http.MethodDelete, fmt.Sprintf("/api/admin/tags/%d", created.ID), adminToken, nil), http.StatusNoContent)
	rec = a.do(http.MethodGet, fmt.Sprintf("/api/tags/%d", created.ID), "", nil)
	requireStatus(t, rec, http.StatusNotFound)
	assert.Equal(t, "Tag not found", decode[errs.HTTPError](t, rec).Message)
}

func TestIngredientSearch(t *testing.T) {
	a := newAPI(t)
	token := a.admin()

	rec := a.do(http.MethodPost, "/api/admin/ingredients/import", token, []map[string]string{
		{"name": "salt", "measurement_unit": "g"},
		{"name": "salmon", "measurement_unit": "g"},
		{"name": "sugar", "measurement_unit": "g"},
	})
	requireStatus(t, rec, http.StatusCreated)

	rec = a.do(http.MethodGet, "/api/ingredients?name=SAL", "", nil)
	requireStatus(t, rec, http.StatusOK)
	found := decode[[]model.Ingredient](t, rec)
	require.Len(t, found, 2)
	assert.Equal(t, "salmon", found[0].Name)

	rec = a.do(http.MethodGet, fmt.Sprintf("/api/ingredients/%d", found[0].ID), "", nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "g", decode[model.Ingredient](t, rec).MeasurementUnit)
}

func TestRecipeLifecycle(t *testing.T) {
	a := newAPI(t)
	c := a.catalog()
	_, authorToken := a.register("author")
	_, otherToken := a.register("other")

	recipe := a.createRecipe(authorToken, "Omelette", c)
	assert.Equal(t, "author", recipe.Author.Username)
	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, "egg", recipe.Ingredients[0].Name)

	path := fmt.Sprintf("/api/recipes/%d", recipe.ID)

	rec := a.do(http.MethodGet, path, "", nil)
	requireStatus(t, rec, http.StatusOK)

	update := map[string]any{
		"name": "Big omelette", "text": "More eggs.", "cooking_time": 20,
		"tags":        []int64{c.breakfast.ID},
		"ingredients": []map[string]any{{"id": c.egg.ID, "amount": 6}},
	}
	requireStatus(t, a.do(http.MethodPatch, path, otherToken, update), http.StatusForbidden)

	rec = a.do(http.MethodPatch, path, authorToken, update)
	requireStatus(t, rec, http.StatusOK)
	updated := decode[model.RecipeResponse](t, rec)
	assert.Equal(t, "Big omelette", updated.Name)
	assert.Equal(t, recipe.Image, updated.Image)

	update["ingredients"] = []map[string]any{}
	requireStatus(t, a.do(http.MethodPatch, path, authorToken, update), http.StatusBadRequest)

	requireStatus(t, a.do(http.MethodDelete, path, otherToken, nil), http.StatusForbidden)
	requireStatus(t, a.do(http.MethodDelete, path, authorToken, nil), http.StatusNoContent)

	rec = a.do(http.MethodGet, path, "", nil)
	requireStatus(t, rec, http.StatusNotFound)
	assert.Equal(t, "Recipe not found", decode[errs.HTTPError](t, rec).Message)
}

func TestCreateRecipeValidation(t *testing.T) {
	a := newAPI(t)
	c := a.catalog()
	_, token := a.register("author")

	rec := a.do(http.MethodPost, "/api/recipes", token, map[string]any{
		"name": "Nothing", "text": "x", "cooking_time": 0,
		"tags": []int64{c.breakfast.ID}, "ingredients": []map[string]any{{"id": c.egg.ID, "amount": 0}},
	})
	requireStatus(t, rec, http.StatusBadRequest)
	fields := map[string]bool{}
	for _, fe := range decode[errs.HTTPError](t, rec).Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["image"])
	assert.True(t, fields["cooking_time"])
	assert.True(t, fields["ingredients[0].amount"])

	rec = a.do(http.MethodPost, "/api/recipes", token, map[string]any{
		"name": "Twice", "text": "x", "cooking_time": 1, "image": testutil.PNG,
		"tags": []int64{c.breakfast.ID, c.breakfast.ID}, "ingredients": []map[string]any{{"id": c.egg.ID, "amount": 1}},
	})
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "tags", decode[errs.HTTPError](t, rec).Errors[0].Field)

	requireStatus(t, a.do(http.MethodPost, "/api/recipes", "", map[string]any{}), http.StatusUnauthorized)
}

func TestRecipeListing(t *testing.T) {
	a := newAPI(t)
	c := a.catalog()
	authorID, authorToken := a.register("author")
	_, viewerToken := a.register("viewer")

	first := a.createRecipe(authorToken, "First", c)
	a.createRecipe(authorToken, "Second", c)

	rec := a.do(http.MethodGet, "/api/recipes?limit=1", "", nil)
	requireStatus(t, rec, http.StatusOK)
	page := decode[model.PaginatedResponse[model.RecipeResponse]](t, rec)
	assert.Equal(t, 2, page.Count)
	assert.Equal(t, "Second", page.Results[0].Name)
	require.NotNil(t, page.Next)

	requireStatus(t, a.do(http.MethodPost, fmt.Sprintf("/api/recipes/%d/favorite", first.ID), viewerToken, nil), http.StatusCreated)

	rec = a.do(http.MethodGet, "/api/recipes?is_favorited=1", viewerToken, nil)
	requireStatus(t, rec, http.StatusOK)
	page = decode[model.PaginatedResponse[model.RecipeResponse]](t, rec)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "First", page.Results[0].Name)
	assert.True(t, page.Results[0].IsFavorited)

	rec = a.do(http.MethodGet, fmt.Sprintf("/api/recipes?author=%d&tags=breakfast&tags=lunch", authorID), "", nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, 2, decode[model.PaginatedResponse[model.RecipeResponse]](t, rec).Count)

	rec = a.do(http.MethodGet, "/api/recipes?tags=lunch", "", nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Zero(t, decode[model.PaginatedResponse[model.RecipeResponse]](t, rec).Count)

	requireStatus(t, a.do(http.MethodGet, "/api/recipes?is_favorited=maybe", "", nil), http.StatusBadRequest)
}

func TestFavoritesAndShoppingCart(t *testing.T) {
	a := newAPI(t)
	c := a.catalog()
	_, authorToken := a.register("author")
	_, buyerToken := a.register("buyer")
	omelette := a.createRecipe(authorToken, "Omelette", c)
	pancakes := a.createRecipe(authorToken, "Pancakes", c)

	favorite := fmt.Sprintf("/api/recipes/%d/favorite", omelette.ID)
	rec := a.do(http.MethodPost, favorite, buyerToken, nil)
	requireStatus(t, rec, http.StatusCreated)
	assert.Equal(t, "Omelette", decode[model.RecipeMini](t, rec).Name)

	rec = a.do(http.MethodPost, favorite, buyerToken, nil)
	requireStatus(t, rec, http.StatusConflict)
	assert.Equal(t, "FAVORITE_ALREADY_EXISTS", decode[errs.HTTPError](t, rec).Code)

	requireStatus(t, a.do(http.MethodDelete, favorite, buyerToken, nil), http.StatusNoContent)
	requireStatus(t, a.do(http.MethodDelete, favorite, buyerToken, nil), http.StatusBadRequest)
	requireStatus(t, a.do(http.MethodPost, "/api/recipes/999/favorite", buyerToken, nil), http.StatusNotFound)

	for _, id := range []int64{omelette.ID, pancakes.ID} {
		requireStatus(t, a.do(http.MethodPost, fmt.Sprintf("/api/recipes/%d/shopping_cart", id), buyerToken, nil), http.StatusCreated)
	}

	requireStatus(t, a.do(http.MethodGet, "/api/recipes/download_shopping_cart", "", nil), http.StatusUnauthorized)

	rec = a.do(http.MethodGet, "/api/recipes/download_shopping_cart", buyerToken, nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/plain")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), service.ShoppingListFilename)

	body := rec.Body.String()
	assert.Contains(t, body, "Recipes:\n- Omelette\n- Pancakes\n")
	assert.Contains(t, body, "1. Egg - 6(pcs)\n")
	assert.Contains(t, body, "2. Milk - 200(ml)\n")

	requireStatus(t, a.do(http.MethodDelete, fmt.Sprintf("/api/recipes/%d/shopping_cart", pancakes.ID), buyerToken, nil), http.StatusNoContent)
	rec = a.do(http.MethodGet, "/api/recipes/download_shopping_cart", buyerToken, nil)
	assert.Contains(t, rec.Body.String(), "1. Egg - 3(pcs)\n")
}

func TestShortLink(t *testing.T) {
	a := newAPI(t)
	c := a.catalog()
	_, token := a.register("author")
	recipe := a.createRecipe(token, "Omelette", c)

	rec := a.do(http.MethodGet, fmt.Sprintf("/api/recipes/%d/get-link", recipe.ID), "", nil)
	requireStatus(t, rec, http.StatusOK)
	link := decode[map[string]string](t, rec)["short-link"]
	require.True(t, strings.HasPrefix(link, testutil.PublicURL+"/s/"), link)

	rec = a.do(http.MethodGet, strings.TrimPrefix(link, testutil.PublicURL), "", nil)
	requireStatus(t, rec, http.StatusFound)
	assert.Equal(t, fmt.Sprintf("%s/recipes/%d", testutil.PublicURL, recipe.ID), rec.Header().Get(echo.HeaderLocation))

	requireStatus(t, a.do(http.MethodGet, "/s/unknown1", "", nil), http.StatusNotFound)
	requireStatus(t, a.do(http.MethodGet, "/api/recipes/999/get-link", "", nil), http.StatusNotFound)
}

func TestSystemRoutes(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodGet, "/status", "", nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "healthy", decode[handler.HealthResponse](t, rec).Status)

	rec = a.do(http.MethodGet, "/api/nothing-here", "", nil)
	requireStatus(t, rec, http.StatusNotFound)
	assert.Equal(t, "Route not found", decode[errs.HTTPError](t, rec).Message)

	rec = a.do(http.MethodGet, "/api/tags/", "", nil)
	requireStatus(t, rec, http.StatusOK)

	rec = a.do(http.MethodGet, "/api/tags", "", nil)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
