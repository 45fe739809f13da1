package service

import (
	"context"

	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/repository"
)

// The store interfaces are what services need from persistence. The pgx
// repositories implement them; tests plug in the in-memory store from
// internal/testutil.

type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUsersByIDs(ctx context.Context, ids []int64) (map[int64]model.User, error)
	ExistingUsernames(ctx context.Context, usernames []string) (map[string]bool, error)
	ListUsers(ctx context.Context, limit, offset int) ([]model.User, int, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
	UpdateAvatar(ctx context.Context, id int64, avatar string) error
}

type TokenStore interface {
	GetTokenByUserID(ctx context.Context, userID int64) (*model.AuthToken, error)
	CreateToken(ctx context.Context, token *model.AuthToken) error
	GetUserIDByToken(ctx context.Context, key string) (int64, error)
	DeleteToken(ctx context.Context, key string) error
}

type SubscriptionStore interface {
	CreateSubscription(ctx context.Context, userID, authorID int64) (bool, error)
	DeleteSubscription(ctx context.Context, userID, authorID int64) (bool, error)
	SubscribedAuthors(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error)
	ListSubscribedAuthors(ctx context.Context, userID int64, limit, offset int) ([]model.User, int, error)
}

type TagStore interface {
	ListTags(ctx context.Context) ([]model.Tag, error)
	GetTag(ctx context.Context, id int64) (*model.Tag, error)
	CreateTag(ctx context.Context, tag *model.Tag) error
	UpdateTag(ctx context.Context, tag *model.Tag) error
	DeleteTag(ctx context.Context, id int64) error
	ExistingTagIDs(ctx context.Context, ids []int64) ([]int64, error)
	BulkCreateTags(ctx context.Context, tags []model.Tag) (int, error)
}

type IngredientStore interface {
	ListIngredients(ctx context.Context, prefix string) ([]model.Ingredient, error)
	GetIngredient(ctx context.Context, id int64) (*model.Ingredient, error)
	CreateIngredient(ctx context.Context, ingredient *model.Ingredient) error
	UpdateIngredient(ctx context.Context, ingredient *model.Ingredient) error
	DeleteIngredient(ctx context.Context, id int64) error
	ExistingIngredientIDs(ctx context.Context, ids []int64) ([]int64, error)
	BulkCreateIngredients(ctx context.Context, ingredients []model.Ingredient) (int, error)
}

type RecipeStore interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe, tagIDs []int64, items []model.IngredientAmount) error
	UpdateRecipe(ctx context.Context, recipe *model.Recipe, tagIDs []int64, items []model.IngredientAmount) error
	DeleteRecipe(ctx context.Context, id int64) error
	GetRecipe(ctx context.Context, id int64) (*model.Recipe, error)
	GetRecipeByShortLink(ctx context.Context, code string) (*model.Recipe, error)
	SetShortLink(ctx context.Context, id int64, code string) (string, error)
	ListRecipes(ctx context.Context, f model.RecipeFilter) ([]model.Recipe, int, error)
	RecipeTags(ctx context.Context, recipeIDs []int64) (map[int64][]model.Tag, error)
	RecipeIngredients(ctx context.Context, recipeIDs []int64) (map[int64][]model.RecipeIngredient, error)
	AuthorRecipes(ctx context.Context, authorIDs []int64, limit int) (map[int64][]model.Recipe, error)
	CountAuthorRecipes(ctx context.Context, authorIDs []int64) (map[int64]int, error)
}

type RelationStore interface {
	AddRelation(ctx context.Context, rel model.RecipeRelation, userID, recipeID int64) (bool, error)
	RemoveRelation(ctx context.Context, rel model.RecipeRelation, userID, recipeID int64) (bool, error)
	RelatedRecipes(ctx context.Context, rel model.RecipeRelation, userID int64, recipeIDs []int64) (map[int64]bool, error)
	ShoppingList(ctx context.Context, userID int64) ([]model.ShoppingListItem, error)
	CartRecipeNames(ctx context.Context, userID int64) ([]string, error)
}

// Stores bundles every store a service may need.
type Stores struct {
	Users         UserStore
	Tokens        TokenStore
	Subscriptions SubscriptionStore
	Tags          TagStore
	Ingredients   IngredientStore
	Recipes       RecipeStore
	Relations     RelationStore
}

// StoresFromRepositories exposes the pgx repositories as Stores.
func StoresFromRepositories(repos *repository.Repositories) Stores {
	return Stores{
		Users:         repos.Users,
		Tokens:        repos.Tokens,
		Subscriptions: repos.Subscriptions,
		Tags:          repos.Tags,
		Ingredients:   repos.Ingredients,
		Recipes:       repos.Recipes,
		Relations:     repos.Relations,
	}
}
