package model

import "time"

// Tag labels recipes (breakfast, lunch, ...).
type Tag struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

// Ingredient is a product with the unit it is measured in.
type Ingredient struct {
	ID              int64  `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	MeasurementUnit string `db:"measurement_unit" json:"measurement_unit"`
}

// Recipe is a row of the recipes table. Image is the path relative to the
// media root, not a URL.
type Recipe struct {
	ID          int64     `db:"id"`
	AuthorID    int64     `db:"author_id"`
	Name        string    `db:"name"`
	Image       string    `db:"image"`
	Text        string    `db:"text"`
	CookingTime int       `db:"cooking_time"`
	ShortLink   *string   `db:"short_link"`
	CreatedAt   time.Time `db:"created_at"`
}

// IngredientAmount is one line of a recipe as written by its author.
type IngredientAmount struct {
	ID     int64 `json:"id" validate:"required,gt=0"`
	Amount int   `json:"amount" validate:"required,min=1,max=32000"`
}

// RecipeIngredient is one line of a recipe as read back, joined with the ingredient.
type RecipeIngredient struct {
	RecipeID        int64  `db:"recipe_id" json:"-"`
	ID              int64  `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	MeasurementUnit string `db:"measurement_unit" json:"measurement_unit"`
	Amount          int    `db:"amount" json:"amount"`
}

// RecipeTag pairs a tag with the recipe it is attached to.
type RecipeTag struct {
	RecipeID int64 `db:"recipe_id"`
	Tag
}

// RecipeResponse is the full representation of a recipe.
type RecipeResponse struct {
	ID               int64              `json:"id"`
	Tags             []Tag              `json:"tags"`
	Author           UserProfile        `json:"author"`
	Ingredients      []RecipeIngredient `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
}

// RecipeMini is the short representation used by favorites, the cart and
// subscription cards.
type RecipeMini struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// ShortLinkResponse carries the shareable link of a recipe.
type ShortLinkResponse struct {
	ShortLink string `json:"short-link"`
}

// RecipeFilter narrows the recipe listing.
//
// ViewerID is 0 for anonymous requests, in which case the favorite/cart
// filters are ignored.
type RecipeFilter struct {
	ViewerID         int64
	AuthorID         int64
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
	Limit            int
	Offset           int
}

// ShoppingListItem is one aggregated line of a shopping list.
type ShoppingListItem struct {
	Name            string `db:"name"`
	MeasurementUnit string `db:"measurement_unit"`
	TotalAmount     int64  `db:"total_amount"`
}

// RecipeRelation names a per-user recipe list.
type RecipeRelation string

const (
	RelationFavorite     RecipeRelation = "favorites"
	RelationShoppingCart RecipeRelation = "shopping_carts"
)
