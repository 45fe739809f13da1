package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/foodgram/internal/errs"
	"github.com/deppfellow/foodgram/internal/lib/storage"
	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/deppfellow/foodgram/internal/sqlerr"
	"github.com/google/uuid"
)

// shortLinkAttempts bounds retries when a generated code collides.
const shortLinkAttempts = 3

// RecipeService owns recipe authoring, listing and short links.
type RecipeService struct {
	server      *server.Server
	recipes     RecipeStore
	tags        TagStore
	ingredients IngredientStore
	present     presenter
}

func NewRecipeService(s *server.Server, stores Stores) *RecipeService {
	return &RecipeService{
		server:      s,
		recipes:     stores.Recipes,
		tags:        stores.Tags,
		ingredients: stores.Ingredients,
		present:     presenter{stores: stores, storage: s.Storage},
	}
}

// RecipeInput is a validated create/update request.
// Image is base64; on update an empty Image keeps the current picture.
type RecipeInput struct {
	Name        string
	Text        string
	Image       string
	CookingTime int
	Tags        []int64
	Ingredients []model.IngredientAmount
}

// List returns one page of recipes matching f, newest first.
// The favorite/cart filters only apply to authenticated viewers.
func (s *RecipeService) List(ctx context.Context, viewer *model.User, f model.RecipeFilter) ([]model.RecipeResponse, int, error) {
	f.ViewerID = viewerID(viewer)
	if f.ViewerID == 0 {
		f.IsFavorited = false
		f.IsInShoppingCart = false
	}

	recipes, total, err := s.recipes.ListRecipes(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	results, err := s.present.recipes(ctx, f.ViewerID, recipes)
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (s *RecipeService) Get(ctx context.Context, viewer *model.User, id int64) (*model.RecipeResponse, error) {
	recipe, err := s.recipes.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	results, err := s.present.recipes(ctx, viewerID(viewer), []model.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

// Create stores a new recipe authored by author.
func (s *RecipeService) Create(ctx context.Context, author *model.User, in RecipeInput) (*model.RecipeResponse, error) {
	if err := s.validateLinks(ctx, in.Tags, in.Ingredients); err != nil {
		return nil, err
	}

	image, err := s.server.Storage.SaveBase64(storage.DirRecipes, in.Image)
	if err != nil {
		return nil, imageError("image", err)
	}

	recipe := &model.Recipe{
		AuthorID:    author.ID,
		Name:        in.Name,
		Image:       image,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}
	if err := s.recipes.CreateRecipe(ctx, recipe, in.Tags, in.Ingredients); err != nil {
		s.server.Storage.Delete(image)
		return nil, err
	}

	s.server.Logger.Info().
		Int64("recipe_id", recipe.ID).
		Int64("author_id", author.ID).
		Msg("recipe created")

	return s.Get(ctx, author, recipe.ID)
}

// Update replaces the recipe fields and its tag and ingredient sets.
// Only the author may edit.
func (s *RecipeService) Update(ctx context.Context, user *model.User, id int64, in RecipeInput) (*model.RecipeResponse, error) {
	recipe, err := s.authored(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateLinks(ctx, in.Tags, in.Ingredients); err != nil {
		return nil, err
	}

	oldImage := recipe.Image
	newImage := ""
	if strings.TrimSpace(in.Image) != "" {
		newImage, err = s.server.Storage.SaveBase64(storage.DirRecipes, in.Image)
		if err != nil {
			return nil, imageError("image", err)
		}
	}

	recipe.Name = in.Name
	recipe.Text = in.Text
	recipe.CookingTime = in.CookingTime
	recipe.Image = newImage

	if err := s.recipes.UpdateRecipe(ctx, recipe, in.Tags, in.Ingredients); err != nil {
		s.server.Storage.Delete(newImage)
		return nil, err
	}
	if newImage != "" && oldImage != newImage {
		s.server.Storage.Delete(oldImage)
	}

	return s.Get(ctx, user, id)
}

// Delete removes a recipe. Only the author may delete.
func (s *RecipeService) Delete(ctx context.Context, user *model.User, id int64) error {
	recipe, err := s.authored(ctx, user, id)
	if err != nil {
		return err
	}
	if err := s.recipes.DeleteRecipe(ctx, id); err != nil {
		return err
	}
	s.server.Storage.Delete(recipe.Image)
	return nil
}

func (s *RecipeService) authored(ctx context.Context, user *model.User, id int64) (*model.Recipe, error) {
	recipe, err := s.recipes.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != user.ID {
		return nil, errs.NewForbiddenError("Only the author can change this recipe", true)
	}
	return recipe, nil
}

// ShortLink returns the shareable URL of a recipe, generating its code on first use.
func (s *RecipeService) ShortLink(ctx context.Context, id int64) (*model.ShortLinkResponse, error) {
	recipe, err := s.recipes.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	code := ""
	if recipe.ShortLink != nil {
		code = *recipe.ShortLink
	}

	for attempt := 0; code == "" && attempt < shortLinkAttempts; attempt++ {
		candidate := newShortCode()
		code, err = s.recipes.SetShortLink(ctx, id, candidate)
		if err != nil && sqlerr.IsUniqueViolation(err) {
			code = ""
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	if code == "" {
		return nil, fmt.Errorf("short link for recipe %d: no free code after %d attempts", id, shortLinkAttempts)
	}

	return &model.ShortLinkResponse{ShortLink: s.server.Config.Server.PublicURL + "/s/" + code}, nil
}

// ResolveShortLink maps a code to the frontend URL of its recipe.
func (s *RecipeService) ResolveShortLink(ctx context.Context, code string) (string, error) {
	recipe, err := s.recipes.GetRecipeByShortLink(ctx, code)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/recipes/%d", s.server.Config.Server.PublicURL, recipe.ID), nil
}

func newShortCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// validateLinks rejects empty, repeated and unknown tags and ingredients.
func (s *RecipeService) validateLinks(ctx context.Context, tagIDs []int64, items []model.IngredientAmount) error {
	var problems []errs.FieldError

	switch {
	case len(tagIDs) == 0:
		problems = append(problems, errs.FieldError{Field: "tags", Error: "at least one tag is required"})
	case hasDuplicates(tagIDs):
		problems = append(problems, errs.FieldError{Field: "tags", Error: "tags must not repeat"})
	default:
		existing, err := s.tags.ExistingTagIDs(ctx, tagIDs)
		if err != nil {
			return fmt.Errorf("check tags: %w", err)
		}
		if missing := missingIDs(tagIDs, existing); len(missing) > 0 {
			problems = append(problems, errs.FieldError{Field: "tags", Error: fmt.Sprintf("unknown tags: %s", joinIDs(missing))})
		}
	}

	ingredientIDs := make([]int64, 0, len(items))
	for _, item := range items {
		ingredientIDs = append(ingredientIDs, item.ID)
	}

	switch {
	case len(ingredientIDs) == 0:
		problems = append(problems, errs.FieldError{Field: "ingredients", Error: "at least one ingredient is required"})
	case hasDuplicates(ingredientIDs):
		problems = append(problems, errs.FieldError{Field: "ingredients", Error: "ingredients must not repeat"})
	default:
		existing, err := s.ingredients.ExistingIngredientIDs(ctx, ingredientIDs)
		if err != nil {
			return fmt.Errorf("check ingredients: %w", err)
		}
		if missing := missingIDs(ingredientIDs, existing); len(missing) > 0 {
			problems = append(problems, errs.FieldError{Field: "ingredients", Error: fmt.Sprintf("unknown ingredients: %s", joinIDs(missing))})
		}
	}

	if len(problems) > 0 {
		return errs.NewBadRequestError("Validation failed", true, nil, problems)
	}
	return nil
}

func hasDuplicates(ids []int64) bool {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}

func missingIDs(want, have []int64) []int64 {
	found := make(map[int64]struct{}, len(have))
	for _, id := range have {
		found[id] = struct{}{}
	}
	var missing []int64
	for _, id := range want {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}
