package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/deppfellow/foodgram/internal/lib/storage"
	"github.com/deppfellow/foodgram/internal/model"
	"github.com/jackc/pgx/v5"
)

// ErrSeedPrerequisites is returned by CreateDemoRecipes when the demo users,
// ingredients or tags have not been created yet.
var ErrSeedPrerequisites = errors.New("demo recipes need the demo users, ingredients and tags")

// SeedIngredient references an imported ingredient by name and unit.
type SeedIngredient struct {
	Name   string
	Unit   string
	Amount int
}

// SeedRecipe is a sample recipe created by create-recipes. Author is a
// DemoUsers email.
type SeedRecipe struct {
	Author      string
	Name        string
	Text        string
	CookingTime int
	Tags        []string
	Ingredients []SeedIngredient
	Color       color.RGBA
}

// DemoRecipes only use ingredients and tags shipped in data/.
var DemoRecipes = []SeedRecipe{
	{
		Author:      "johndoe879@example.com",
		Name:        "Fluffy kefir pancakes",
		Text:        "Warm the kefir with the eggs, sugar and salt.\nWhisk in the flour, then the soda.\nFry spoonfuls in hot oil until golden on both sides.",
		CookingTime: 30,
		Tags:        []string{"breakfast"},
		Ingredients: []SeedIngredient{
			{Name: "kefir", Unit: "ml", Amount: 300},
			{Name: "egg", Unit: "pcs", Amount: 2},
			{Name: "sugar", Unit: "g", Amount: 15},
			{Name: "salt", Unit: "g", Amount: 2},
			{Name: "baking soda", Unit: "g", Amount: 1},
			{Name: "all-purpose flour", Unit: "g", Amount: 220},
		},
		Color: color.RGBA{R: 0xf2, G: 0xc1, B: 0x4e, A: 0xff},
	},
	{
		Author:      "alicesmith023@example.com",
		Name:        "Cabbage patties",
		Text:        "Blanch the cabbage and mince it.\nMix with onion, garlic, dill, flour and semolina.\nShape patties, roll in bread crumbs and fry.",
		CookingTime: 40,
		Tags:        []string{"lunch", "vegetarian"},
		Ingredients: []SeedIngredient{
			{Name: "white cabbage", Unit: "g", Amount: 1000},
			{Name: "onion", Unit: "pcs", Amount: 1},
			{Name: "garlic", Unit: "clove", Amount: 2},
			{Name: "dill", Unit: "g", Amount: 20},
			{Name: "all-purpose flour", Unit: "g", Amount: 70},
			{Name: "semolina", Unit: "g", Amount: 25},
			{Name: "bread crumbs", Unit: "g", Amount: 100},
			{Name: "sunflower oil", Unit: "ml", Amount: 40},
		},
		Color: color.RGBA{R: 0x8c, G: 0xb3, B: 0x69, A: 0xff},
	},
	{
		Author:      "bobjohnson751@example.com",
		Name:        "Pasta bolognese",
		Text:        "Fry the onion and garlic, add the beef and stew for ten minutes.\nAdd the pepper and tomato paste and simmer.\nServe over pasta with grated cheese and basil.",
		CookingTime: 30,
		Tags:        []string{"dinner"},
		Ingredients: []SeedIngredient{
			{Name: "pasta", Unit: "g", Amount: 320},
			{Name: "ground beef", Unit: "g", Amount: 400},
			{Name: "onion", Unit: "pcs", Amount: 1},
			{Name: "garlic", Unit: "clove", Amount: 2},
			{Name: "bell pepper", Unit: "pcs", Amount: 1},
			{Name: "tomato paste", Unit: "g", Amount: 200},
			{Name: "cheese", Unit: "g", Amount: 50},
			{Name: "basil", Unit: "g", Amount: 5},
		},
		Color: color.RGBA{R: 0xc4, G: 0x4d, B: 0x3a, A: 0xff},
	},
	{
		Author:      "emilybrown594@example.com",
		Name:        "Beetroot salad with cheese and garlic",
		Text:        "Grate the beetroot and the cheese.\nPress the garlic and mix everything with mayonnaise, salt and pepper.\nChill for twenty minutes.",
		CookingTime: 5,
		Tags:        []string{"snack", "vegetarian"},
		Ingredients: []SeedIngredient{
			{Name: "beetroot", Unit: "g", Amount: 300},
			{Name: "cheese", Unit: "g", Amount: 80},
			{Name: "garlic", Unit: "clove", Amount: 2},
			{Name: "mayonnaise", Unit: "g", Amount: 50},
			{Name: "salt", Unit: "g", Amount: 1},
			{Name: "black pepper", Unit: "g", Amount: 1},
		},
		Color: color.RGBA{R: 0x9b, G: 0x2d, B: 0x5c, A: 0xff},
	},
}

// RecipesReport lists which demo recipes were created and which already existed.
type RecipesReport struct {
	Created []string
	Skipped []string
}

// CreateDemoRecipes creates seeds that their author does not have yet. Each
// recipe gets a generated single color image.
func (s *SeedService) CreateDemoRecipes(ctx context.Context, seeds []SeedRecipe) (*RecipesReport, error) {
	authors := make(map[string]int64, len(seeds))
	for _, seed := range seeds {
		if _, ok := authors[seed.Author]; ok {
			continue
		}
		user, err := s.users.GetUserByEmail(ctx, seed.Author)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: no user %s", ErrSeedPrerequisites, seed.Author)
			}
			return nil, err
		}
		authors[seed.Author] = user.ID
	}

	ingredients, err := s.ingredients.ListIngredients(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	ingredientIDs := make(map[SeedIngredient]int64, len(ingredients))
	for _, i := range ingredients {
		ingredientIDs[SeedIngredient{Name: i.Name, Unit: i.MeasurementUnit}] = i.ID
	}

	tags, err := s.tags.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	tagIDs := make(map[string]int64, len(tags))
	for _, t := range tags {
		tagIDs[t.Slug] = t.ID
	}

	authorIDs := make([]int64, 0, len(authors))
	for _, id := range authors {
		authorIDs = append(authorIDs, id)
	}
	existing, err := s.recipes.AuthorRecipes(ctx, authorIDs, 0)
	if err != nil {
		return nil, fmt.Errorf("list author recipes: %w", err)
	}

	report := &RecipesReport{}
	for _, seed := range seeds {
		authorID := authors[seed.Author]
		if hasRecipeNamed(existing[authorID], seed.Name) {
			report.Skipped = append(report.Skipped, seed.Name)
			continue
		}

		links, items, err := resolveSeedLinks(seed, tagIDs, ingredientIDs)
		if err != nil {
			return report, err
		}

		encoded, err := placeholderImage(seed.Color)
		if err != nil {
			return report, err
		}
		stored, err := s.server.Storage.SaveBase64(storage.DirRecipes, encoded)
		if err != nil {
			return report, fmt.Errorf("store image for %q: %w", seed.Name, err)
		}

		recipe := &model.Recipe{
			AuthorID:    authorID,
			Name:        seed.Name,
			Image:       stored,
			Text:        seed.Text,
			CookingTime: seed.CookingTime,
		}
		if err := s.recipes.CreateRecipe(ctx, recipe, links, items); err != nil {
			s.server.Storage.Delete(stored)
			return report, fmt.Errorf("create recipe %q: %w", seed.Name, err)
		}

		existing[authorID] = append(existing[authorID], *recipe)
		report.Created = append(report.Created, seed.Name)
		s.server.Logger.Info().Int64("recipe_id", recipe.ID).Str("name", seed.Name).Msg("demo recipe created")
	}
	return report, nil
}

func hasRecipeNamed(recipes []model.Recipe, name string) bool {
	for _, r := range recipes {
		if r.Name == name {
			return true
		}
	}
	return false
}

func resolveSeedLinks(seed SeedRecipe, tagIDs map[string]int64, ingredientIDs map[SeedIngredient]int64) ([]int64, []model.IngredientAmount, error) {
	links := make([]int64, 0, len(seed.Tags))
	for _, slug := range seed.Tags {
		id, ok := tagIDs[slug]
		if !ok {
			return nil, nil, fmt.Errorf("%w: no tag %q", ErrSeedPrerequisites, slug)
		}
		links = append(links, id)
	}

	items := make([]model.IngredientAmount, 0, len(seed.Ingredients))
	for _, ing := range seed.Ingredients {
		id, ok := ingredientIDs[SeedIngredient{Name: ing.Name, Unit: ing.Unit}]
		if !ok {
			return nil, nil, fmt.Errorf("%w: no ingredient %q (%s)", ErrSeedPrerequisites, ing.Name, ing.Unit)
		}
		items = append(items, model.IngredientAmount{ID: id, Amount: ing.Amount})
	}
	return links, items, nil
}

// placeholderImage renders a small filled PNG as a data URL.
func placeholderImage(c color.RGBA) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode placeholder image: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
