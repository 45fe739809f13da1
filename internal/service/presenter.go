package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/foodgram/internal/lib/storage"
	"github.com/deppfellow/foodgram/internal/model"
)

// presenter turns rows into API representations, batching the lookups
// (tags, ingredients, authors, viewer flags) per page instead of per row.
type presenter struct {
	stores  Stores
	storage *storage.Storage
}

func (p presenter) avatarURL(u model.User) *string {
	if u.Avatar == "" {
		return nil
	}
	url := p.storage.URL(u.Avatar)
	return &url
}

func (p presenter) profile(u model.User, subscribed bool) model.UserProfile {
	return model.UserProfile{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
		Avatar:       p.avatarURL(u),
	}
}

// profiles renders users as seen by viewerID (0 for anonymous).
func (p presenter) profiles(ctx context.Context, viewerID int64, users []model.User) ([]model.UserProfile, error) {
	subscribed, err := p.stores.Subscriptions.SubscribedAuthors(ctx, viewerID, userIDs(users))
	if err != nil {
		return nil, fmt.Errorf("load subscriptions: %w", err)
	}

	result := make([]model.UserProfile, 0, len(users))
	for _, u := range users {
		result = append(result, p.profile(u, subscribed[u.ID]))
	}
	return result, nil
}

func (p presenter) mini(r model.Recipe) model.RecipeMini {
	return model.RecipeMini{
		ID:          r.ID,
		Name:        r.Name,
		Image:       p.storage.URL(r.Image),
		CookingTime: r.CookingTime,
	}
}

// authorCards renders subscription entries with up to recipesLimit recipes
// each (all of them when recipesLimit <= 0).
func (p presenter) authorCards(ctx context.Context, viewerID int64, authors []model.User, recipesLimit int) ([]model.AuthorCard, error) {
	ids := userIDs(authors)

	profiles, err := p.profiles(ctx, viewerID, authors)
	if err != nil {
		return nil, err
	}
	recipes, err := p.stores.Recipes.AuthorRecipes(ctx, ids, recipesLimit)
	if err != nil {
		return nil, fmt.Errorf("load author recipes: %w", err)
	}
	counts, err := p.stores.Recipes.CountAuthorRecipes(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count author recipes: %w", err)
	}

	cards := make([]model.AuthorCard, 0, len(authors))
	for i, a := range authors {
		minis := make([]model.RecipeMini, 0, len(recipes[a.ID]))
		for _, r := range recipes[a.ID] {
			minis = append(minis, p.mini(r))
		}
		cards = append(cards, model.AuthorCard{
			UserProfile:  profiles[i],
			RecipesCount: counts[a.ID],
			Recipes:      minis,
		})
	}
	return cards, nil
}

// recipes renders full recipes as seen by viewerID (0 for anonymous).
func (p presenter) recipes(ctx context.Context, viewerID int64, recipes []model.Recipe) ([]model.RecipeResponse, error) {
	if len(recipes) == 0 {
		return []model.RecipeResponse{}, nil
	}

	ids := make([]int64, 0, len(recipes))
	authorSet := make(map[int64]struct{}, len(recipes))
	authorIDs := make([]int64, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
		if _, ok := authorSet[r.AuthorID]; !ok {
			authorSet[r.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, r.AuthorID)
		}
	}

	tags, err := p.stores.Recipes.RecipeTags(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load recipe tags: %w", err)
	}
	ingredients, err := p.stores.Recipes.RecipeIngredients(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load recipe ingredients: %w", err)
	}
	authors, err := p.stores.Users.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load recipe authors: %w", err)
	}
	subscribed, err := p.stores.Subscriptions.SubscribedAuthors(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load subscriptions: %w", err)
	}
	favorited, err := p.stores.Relations.RelatedRecipes(ctx, model.RelationFavorite, viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	inCart, err := p.stores.Relations.RelatedRecipes(ctx, model.RelationShoppingCart, viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("load shopping cart: %w", err)
	}

	result := make([]model.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		recipeTags := tags[r.ID]
		if recipeTags == nil {
			recipeTags = []model.Tag{}
		}
		lines := ingredients[r.ID]
		if lines == nil {
			lines = []model.RecipeIngredient{}
		}

		result = append(result, model.RecipeResponse{
			ID:               r.ID,
			Tags:             recipeTags,
			Author:           p.profile(authors[r.AuthorID], subscribed[r.AuthorID]),
			Ingredients:      lines,
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            p.storage.URL(r.Image),
			Text:             r.Text,
			CookingTime:      r.CookingTime,
		})
	}
	return result, nil
}

func userIDs(users []model.User) []int64 {
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

// viewerID is 0 for anonymous requests.
func viewerID(viewer *model.User) int64 {
	if viewer == nil {
		return 0
	}
	return viewer.ID
}
