package handler

import (
	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/deppfellow/foodgram/internal/service"
	"github.com/deppfellow/foodgram/internal/validation"
	"github.com/labstack/echo/v4"
)

type RecipeHandler struct {
	Handler
	recipes   *service.RecipeService
	relations *service.RelationService
}

func NewRecipeHandler(s *server.Server, recipes *service.RecipeService, relations *service.RelationService) *RecipeHandler {
	return &RecipeHandler{
		Handler:   NewHandler(s),
		recipes:   recipes,
		relations: relations,
	}
}

// ListRecipesRequest holds the listing filters. tags may repeat and match
// any of the given slugs.
type ListRecipesRequest struct {
	PageQuery
	Author           int64    `query:"author" validate:"omitempty,gt=0"`
	Tags             []string `query:"tags" validate:"omitempty,dive,max=32"`
	IsFavorited      string   `query:"is_favorited" validate:"omitempty,oneof=0 1 true false"`
	IsInShoppingCart string   `query:"is_in_shopping_cart" validate:"omitempty,oneof=0 1 true false"`
}

func (r *ListRecipesRequest) Validate() error {
	return validation.Struct(r)
}

func (h *RecipeHandler) ListRecipes(c echo.Context, req *ListRecipesRequest) (*model.PaginatedResponse[model.RecipeResponse], error) {
	page := req.Pagination()

	recipes, total, err := h.recipes.List(c.Request().Context(), currentUser(c), model.RecipeFilter{
		AuthorID:         req.Author,
		TagSlugs:         req.Tags,
		IsFavorited:      parseFlag(req.IsFavorited),
		IsInShoppingCart: parseFlag(req.IsInShoppingCart),
		Limit:            page.Limit,
		Offset:           page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	return paginate(c, page, total, recipes), nil
}

func (h *RecipeHandler) GetRecipe(c echo.Context, req *IDRequest) (*model.RecipeResponse, error) {
	return h.recipes.Get(c.Request().Context(), currentUser(c), req.ID)
}

// RecipePayload is the body of create and update. Duplicate and unknown
// tags or ingredients are rejected by the service, which can see the database.
type RecipePayload struct {
	Ingredients []model.IngredientAmount `json:"ingredients" validate:"required,min=1,dive"`
	Tags        []int64                  `json:"tags" validate:"required,min=1,dive,gt=0"`
	Name        string                   `json:"name" validate:"required,max=256"`
	Text        string                   `json:"text" validate:"required"`
	CookingTime int                      `json:"cooking_time" validate:"required,min=1,max=32000"`
}

func (p RecipePayload) input(image string) service.RecipeInput {
	return service.RecipeInput{
		Name:        p.Name,
		Text:        p.Text,
		Image:       image,
		CookingTime: p.CookingTime,
		Tags:        p.Tags,
		Ingredients: p.Ingredients,
	}
}

type CreateRecipeRequest struct {
	RecipePayload
	Image string `json:"image" validate:"required"`
}

func (r *CreateRecipeRequest) Validate() error {
	return validation.Struct(r)
}

func (h *RecipeHandler) CreateRecipe(c echo.Context, req *CreateRecipeRequest) (*model.RecipeResponse, error) {
	return h.recipes.Create(c.Request().Context(), currentUser(c), req.input(req.Image))
}

// UpdateRecipeRequest replaces the recipe. image may be left out to keep the
// current picture.
type UpdateRecipeRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,gt=0"`
	RecipePayload
	Image string `json:"image"`
}

func (r *UpdateRecipeRequest) Validate() error {
	return validation.Struct(r)
}

func (h *RecipeHandler) UpdateRecipe(c echo.Context, req *UpdateRecipeRequest) (*model.RecipeResponse, error) {
	return h.recipes.Update(c.Request().Context(), currentUser(c), req.ID, req.input(req.Image))
}

func (h *RecipeHandler) DeleteRecipe(c echo.Context, req *IDRequest) error {
	return h.recipes.Delete(c.Request().Context(), currentUser(c), req.ID)
}

func (h *RecipeHandler) GetLink(c echo.Context, req *IDRequest) (*model.ShortLinkResponse, error) {
	return h.recipes.ShortLink(c.Request().Context(), req.ID)
}

type ShortLinkRequest struct {
	Code string `param:"code" validate:"required,max=10,alphanum"`
}

func (r *ShortLinkRequest) Validate() error {
	return validation.Struct(r)
}

// ResolveShortLink redirects /s/:code to the recipe page.
func (h *RecipeHandler) ResolveShortLink(c echo.Context, req *ShortLinkRequest) (string, error) {
	return h.recipes.ResolveShortLink(c.Request().Context(), req.Code)
}

// --- Favorites and shopping cart ---------------------------------------------

func (h *RecipeHandler) AddFavorite(c echo.Context, req *IDRequest) (*model.RecipeMini, error) {
	return h.relations.Add(c.Request().Context(), currentUser(c), model.RelationFavorite, req.ID)
}

func (h *RecipeHandler) RemoveFavorite(c echo.Context, req *IDRequest) error {
	return h.relations.Remove(c.Request().Context(), currentUser(c), model.RelationFavorite, req.ID)
}

func (h *RecipeHandler) AddToShoppingCart(c echo.Context, req *IDRequest) (*model.RecipeMini, error) {
	return h.relations.Add(c.Request().Context(), currentUser(c), model.RelationShoppingCart, req.ID)
}

func (h *RecipeHandler) RemoveFromShoppingCart(c echo.Context, req *IDRequest) error {
	return h.relations.Remove(c.Request().Context(), currentUser(c), model.RelationShoppingCart, req.ID)
}

func (h *RecipeHandler) DownloadShoppingCart(c echo.Context, _ *EmptyRequest) ([]byte, error) {
	return h.relations.ShoppingList(c.Request().Context(), currentUser(c))
}
