// Package testutil provides an in-memory replacement for the pgx
// repositories and a ready-to-use *server.Server for tests.
//
// Store mirrors what the database does for the queries the services rely
// on: orderings, "table:<name>:" not-found errors, unique violations as
// *pgconn.PgError and ON DELETE CASCADE.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	_ service.UserStore         = (*Store)(nil)
	_ service.TokenStore        = (*Store)(nil)
	_ service.SubscriptionStore = (*Store)(nil)
	_ service.TagStore          = (*Store)(nil)
	_ service.IngredientStore   = (*Store)(nil)
	_ service.RecipeStore       = (*Store)(nil)
	_ service.RelationStore     = (*Store)(nil)
)

type pair struct{ a, b int64 }

type recipeRow struct {
	recipe model.Recipe
	tags   []int64
	items  []model.IngredientAmount
}

// Store keeps every table in maps guarded by one mutex.
type Store struct {
	mu    sync.Mutex
	seq   int64
	clock time.Time

	users         map[int64]model.User
	tokens        map[string]model.AuthToken
	subscriptions map[pair]int64
	tags          map[int64]model.Tag
	ingredients   map[int64]model.Ingredient
	recipes       map[int64]*recipeRow
	relations     map[model.RecipeRelation]map[pair]int64
}

func NewStore() *Store {
	return &Store{
		clock:         time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		users:         map[int64]model.User{},
		tokens:        map[string]model.AuthToken{},
		subscriptions: map[pair]int64{},
		tags:          map[int64]model.Tag{},
		ingredients:   map[int64]model.Ingredient{},
		recipes:       map[int64]*recipeRow{},
		relations: map[model.RecipeRelation]map[pair]int64{
			model.RelationFavorite:     {},
			model.RelationShoppingCart: {},
		},
	}
}

// Stores exposes the store through every service interface.
func (s *Store) Stores() service.Stores {
	return service.Stores{
		Users:         s,
		Tokens:        s,
		Subscriptions: s,
		Tags:          s,
		Ingredients:   s,
		Recipes:       s,
		Relations:     s,
	}
}

// next returns a fresh id; it doubles as an insertion sequence.
func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

// tick advances the fake clock so created_at orders rows by insertion.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func notFound(table string) error {
	return fmt.Errorf("table:%s:%w", table, pgx.ErrNoRows)
}

func uniqueViolation(table, constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        fmt.Sprintf("duplicate key value violates unique constraint %q", constraint),
		TableName:      table,
		ConstraintName: constraint,
	}
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// Users

func (s *Store) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return uniqueViolation("users", "users_email_key")
		}
		if existing.Username == u.Username {
			return uniqueViolation("users", "users_username_key")
		}
	}

	u.ID = s.next()
	u.CreatedAt = s.tick()
	s.users[u.ID] = *u
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, notFound("users")
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, notFound("users")
}

func (s *Store) GetUsersByIDs(_ context.Context, ids []int64) (map[int64]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[int64]model.User, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			result[id] = u
		}
	}
	return result, nil
}

func (s *Store) ExistingUsernames(_ context.Context, usernames []string) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	want := make(map[string]bool, len(usernames))
	for _, name := range usernames {
		want[name] = true
	}
	result := map[string]bool{}
	for _, u := range s.users {
		if want[u.Username] {
			result[u.Username] = true
		}
	}
	return result, nil
}

func (s *Store) sortedUsers(filter func(model.User) bool) []model.User {
	users := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		if filter == nil || filter(u) {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}

func (s *Store) ListUsers(_ context.Context, limit, offset int) ([]model.User, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.sortedUsers(nil)
	return paginate(users, limit, offset), len(users), nil
}

func (s *Store) UpdatePassword(_ context.Context, id int64, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return notFound("users")
	}
	u.PasswordHash = hash
	s.users[id] = u
	return nil
}

func (s *Store) UpdateAvatar(_ context.Context, id int64, avatar string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return notFound("users")
	}
	u.Avatar = avatar
	s.users[id] = u
	return nil
}

// Tokens

func (s *Store) GetTokenByUserID(_ context.Context, userID int64) (*model.AuthToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tokens {
		if t.UserID == userID {
			return &t, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateToken(_ context.Context, token *model.AuthToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, t := range s.tokens {
		if t.UserID == token.UserID {
			delete(s.tokens, key)
		}
	}
	token.CreatedAt = s.tick()
	s.tokens[token.Key] = *token
	return nil
}

func (s *Store) GetUserIDByToken(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tokens[key].UserID, nil
}

func (s *Store) DeleteToken(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, key)
	return nil
}

// Subscriptions

func (s *Store) CreateSubscription(_ context.Context, userID, authorID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pair{userID, authorID}
	if _, ok := s.subscriptions[key]; ok {
		return false, nil
	}
	s.subscriptions[key] = s.next()
	return true, nil
}

func (s *Store) DeleteSubscription(_ context.Context, userID, authorID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pair{userID, authorID}
	if _, ok := s.subscriptions[key]; !ok {
		return false, nil
	}
	delete(s.subscriptions, key)
	return true, nil
}

func (s *Store) SubscribedAuthors(_ context.Context, userID int64, authorIDs []int64) (map[int64]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[int64]bool, len(authorIDs))
	if userID == 0 {
		return result, nil
	}
	for _, id := range authorIDs {
		if _, ok := s.subscriptions[pair{userID, id}]; ok {
			result[id] = true
		}
	}
	return result, nil
}

func (s *Store) ListSubscribedAuthors(_ context.Context, userID int64, limit, offset int) ([]model.User, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	authors := s.sortedUsers(func(u model.User) bool {
		_, ok := s.subscriptions[pair{userID, u.ID}]
		return ok
	})
	return paginate(authors, limit, offset), len(authors), nil
}

// Tags

func (s *Store) ListTags(_ context.Context) ([]model.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags := make([]model.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func (s *Store) GetTag(_ context.Context, id int64) (*model.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tags[id]
	if !ok {
		return nil, notFound("tags")
	}
	return &t, nil
}

func (s *Store) tagConflict(tag model.Tag) error {
	for _, t := range s.tags {
		if t.ID == tag.ID {
			continue
		}
		if t.Name == tag.Name {
			return uniqueViolation("tags", "tags_name_key")
		}
		if t.Slug == tag.Slug {
			return uniqueViolation("tags", "tags_slug_key")
		}
	}
	return nil
}

func (s *Store) CreateTag(_ context.Context, tag *model.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tag.ID = 0
	if err := s.tagConflict(*tag); err != nil {
		return err
	}
	tag.ID = s.next()
	s.tags[tag.ID] = *tag
	return nil
}

func (s *Store) UpdateTag(_ context.Context, tag *model.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tags[tag.ID]; !ok {
		return notFound("tags")
	}
	if err := s.tagConflict(*tag); err != nil {
		return err
	}
	s.tags[tag.ID] = *tag
	return nil
}

func (s *Store) DeleteTag(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tags[id]; !ok {
		return notFound("tags")
	}
	delete(s.tags, id)
	for _, row := range s.recipes {
		row.tags = without(row.tags, id)
	}
	return nil
}

func (s *Store) ExistingTagIDs(_ context.Context, ids []int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found []int64
	for _, id := range ids {
		if _, ok := s.tags[id]; ok {
			found = append(found, id)
		}
	}
	return found, nil
}

func (s *Store) BulkCreateTags(_ context.Context, tags []model.Tag) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := 0
	for _, t := range tags {
		t.ID = 0
		if s.tagConflict(t) != nil {
			continue
		}
		t.ID = s.next()
		s.tags[t.ID] = t
		inserted++
	}
	return inserted, nil
}

// Ingredients

func sortIngredients(items []model.Ingredient) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
}

func (s *Store) ListIngredients(_ context.Context, prefix string) ([]model.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix = strings.ToLower(prefix)
	result := make([]model.Ingredient, 0, len(s.ingredients))
	for _, i := range s.ingredients {
		if strings.HasPrefix(strings.ToLower(i.Name), prefix) {
			result = append(result, i)
		}
	}
	sortIngredients(result)
	return result, nil
}

func (s *Store) GetIngredient(_ context.Context, id int64) (*model.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.ingredients[id]
	if !ok {
		return nil, notFound("ingredients")
	}
	return &i, nil
}

func (s *Store) ingredientConflict(ingredient model.Ingredient) error {
	for _, i := range s.ingredients {
		if i.ID != ingredient.ID && i.Name == ingredient.Name && i.MeasurementUnit == ingredient.MeasurementUnit {
			return uniqueViolation("ingredients", "unique_ingredients_name")
		}
	}
	return nil
}

func (s *Store) CreateIngredient(_ context.Context, ingredient *model.Ingredient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ingredient.ID = 0
	if err := s.ingredientConflict(*ingredient); err != nil {
		return err
	}
	ingredient.ID = s.next()
	s.ingredients[ingredient.ID] = *ingredient
	return nil
}

func (s *Store) UpdateIngredient(_ context.Context, ingredient *model.Ingredient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ingredients[ingredient.ID]; !ok {
		return notFound("ingredients")
	}
	if err := s.ingredientConflict(*ingredient); err != nil {
		return err
	}
	s.ingredients[ingredient.ID] = *ingredient
	return nil
}

func (s *Store) DeleteIngredient(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ingredients[id]; !ok {
		return notFound("ingredients")
	}
	delete(s.ingredients, id)
	for _, row := range s.recipes {
		kept := row.items[:0]
		for _, item := range row.items {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		row.items = kept
	}
	return nil
}

func (s *Store) ExistingIngredientIDs(_ context.Context, ids []int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found []int64
	for _, id := range ids {
		if _, ok := s.ingredients[id]; ok {
			found = append(found, id)
		}
	}
	return found, nil
}

func (s *Store) BulkCreateIngredients(_ context.Context, ingredients []model.Ingredient) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := 0
	for _, i := range ingredients {
		i.ID = 0
		if s.ingredientConflict(i) != nil {
			continue
		}
		i.ID = s.next()
		s.ingredients[i.ID] = i
		inserted++
	}
	return inserted, nil
}

// Recipes

func (s *Store) CreateRecipe(_ context.Context, recipe *model.Recipe, tagIDs []int64, items []model.IngredientAmount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[recipe.AuthorID]; !ok {
		return &pgconn.PgError{Code: "23503", TableName: "recipes", ColumnName: "author_id"}
	}

	recipe.ID = s.next()
	recipe.CreatedAt = s.tick()
	s.recipes[recipe.ID] = &recipeRow{
		recipe: *recipe,
		tags:   append([]int64(nil), tagIDs...),
		items:  append([]model.IngredientAmount(nil), items...),
	}
	return nil
}

func (s *Store) UpdateRecipe(_ context.Context, recipe *model.Recipe, tagIDs []int64, items []model.IngredientAmount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.recipes[recipe.ID]
	if !ok {
		return notFound("recipes")
	}

	if recipe.Image == "" {
		recipe.Image = row.recipe.Image
	}
	recipe.ShortLink = row.recipe.ShortLink
	recipe.CreatedAt = row.recipe.CreatedAt
	recipe.AuthorID = row.recipe.AuthorID

	row.recipe = *recipe
	row.tags = append([]int64(nil), tagIDs...)
	row.items = append([]model.IngredientAmount(nil), items...)
	return nil
}

func (s *Store) DeleteRecipe(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[id]; !ok {
		return notFound("recipes")
	}
	delete(s.recipes, id)
	for _, entries := range s.relations {
		for key := range entries {
			if key.b == id {
				delete(entries, key)
			}
		}
	}
	return nil
}

func (s *Store) GetRecipe(_ context.Context, id int64) (*model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.recipes[id]
	if !ok {
		return nil, notFound("recipes")
	}
	r := row.recipe
	return &r, nil
}

func (s *Store) GetRecipeByShortLink(_ context.Context, code string) (*model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.recipes {
		if row.recipe.ShortLink != nil && *row.recipe.ShortLink == code {
			r := row.recipe
			return &r, nil
		}
	}
	return nil, notFound("recipes")
}

func (s *Store) SetShortLink(_ context.Context, id int64, code string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.recipes[id]
	if !ok {
		return "", notFound("recipes")
	}
	if row.recipe.ShortLink != nil {
		return *row.recipe.ShortLink, nil
	}
	for otherID, other := range s.recipes {
		if otherID != id && other.recipe.ShortLink != nil && *other.recipe.ShortLink == code {
			return "", uniqueViolation("recipes", "recipes_short_link_key")
		}
	}
	row.recipe.ShortLink = &code
	return code, nil
}

// newestFirst orders like ORDER BY created_at DESC, id DESC.
func newestFirst(recipes []model.Recipe) {
	sort.Slice(recipes, func(i, j int) bool {
		if !recipes[i].CreatedAt.Equal(recipes[j].CreatedAt) {
			return recipes[i].CreatedAt.After(recipes[j].CreatedAt)
		}
		return recipes[i].ID > recipes[j].ID
	})
}

func (s *Store) matches(row *recipeRow, f model.RecipeFilter) bool {
	r := row.recipe
	if f.AuthorID > 0 && r.AuthorID != f.AuthorID {
		return false
	}
	if len(f.TagSlugs) > 0 {
		hit := false
		for _, id := range row.tags {
			for _, slug := range f.TagSlugs {
				if s.tags[id].Slug == slug {
					hit = true
				}
			}
		}
		if !hit {
			return false
		}
	}
	if f.ViewerID > 0 {
		if _, ok := s.relations[model.RelationFavorite][pair{f.ViewerID, r.ID}]; f.IsFavorited && !ok {
			return false
		}
		if _, ok := s.relations[model.RelationShoppingCart][pair{f.ViewerID, r.ID}]; f.IsInShoppingCart && !ok {
			return false
		}
	}
	return true
}

func (s *Store) ListRecipes(_ context.Context, f model.RecipeFilter) ([]model.Recipe, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var recipes []model.Recipe
	for _, row := range s.recipes {
		if s.matches(row, f) {
			recipes = append(recipes, row.recipe)
		}
	}
	newestFirst(recipes)
	return paginate(recipes, f.Limit, f.Offset), len(recipes), nil
}

func (s *Store) RecipeTags(_ context.Context, recipeIDs []int64) (map[int64][]model.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[int64][]model.Tag, len(recipeIDs))
	for _, id := range recipeIDs {
		row, ok := s.recipes[id]
		if !ok {
			continue
		}
		var tags []model.Tag
		for _, tagID := range row.tags {
			if t, ok := s.tags[tagID]; ok {
				tags = append(tags, t)
			}
		}
		sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
		if len(tags) > 0 {
			result[id] = tags
		}
	}
	return result, nil
}

func (s *Store) RecipeIngredients(_ context.Context, recipeIDs []int64) (map[int64][]model.RecipeIngredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[int64][]model.RecipeIngredient, len(recipeIDs))
	for _, id := range recipeIDs {
		row, ok := s.recipes[id]
		if !ok {
			continue
		}
		var lines []model.RecipeIngredient
		for _, item := range row.items {
			i, ok := s.ingredients[item.ID]
			if !ok {
				continue
			}
			lines = append(lines, model.RecipeIngredient{
				RecipeID:        id,
				ID:              i.ID,
				Name:            i.Name,
				MeasurementUnit: i.MeasurementUnit,
				Amount:          item.Amount,
			})
		}
		sort.Slice(lines, func(i, j int) bool { return lines[i].Name < lines[j].Name })
		if len(lines) > 0 {
			result[id] = lines
		}
	}
	return result, nil
}

func (s *Store) AuthorRecipes(_ context.Context, authorIDs []int64, limit int) (map[int64][]model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[int64][]model.Recipe, len(authorIDs))
	for _, authorID := range authorIDs {
		var recipes []model.Recipe
		for _, row := range s.recipes {
			if row.recipe.AuthorID == authorID {
				recipes = append(recipes, row.recipe)
			}
		}
		newestFirst(recipes)
		if limit > 0 && len(recipes) > limit {
			recipes = recipes[:limit]
		}
		if len(recipes) > 0 {
			result[authorID] = recipes
		}
	}
	return result, nil
}

func (s *Store) CountAuthorRecipes(_ context.Context, authorIDs []int64) (map[int64]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[int64]int, len(authorIDs))
	for _, row := range s.recipes {
		for _, id := range authorIDs {
			if row.recipe.AuthorID == id {
				result[id]++
			}
		}
	}
	return result, nil
}

// Relations

func (s *Store) relationEntries(rel model.RecipeRelation) (map[pair]int64, error) {
	entries, ok := s.relations[rel]
	if !ok {
		return nil, fmt.Errorf("unknown recipe relation %q", rel)
	}
	return entries, nil
}

func (s *Store) AddRelation(_ context.Context, rel model.RecipeRelation, userID, recipeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.relationEntries(rel)
	if err != nil {
		return false, err
	}
	key := pair{userID, recipeID}
	if _, ok := entries[key]; ok {
		return false, nil
	}
	entries[key] = s.next()
	return true, nil
}

func (s *Store) RemoveRelation(_ context.Context, rel model.RecipeRelation, userID, recipeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.relationEntries(rel)
	if err != nil {
		return false, err
	}
	key := pair{userID, recipeID}
	if _, ok := entries[key]; !ok {
		return false, nil
	}
	delete(entries, key)
	return true, nil
}

func (s *Store) RelatedRecipes(_ context.Context, rel model.RecipeRelation, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.relationEntries(rel)
	if err != nil {
		return nil, err
	}
	result := make(map[int64]bool, len(recipeIDs))
	if userID == 0 {
		return result, nil
	}
	for _, id := range recipeIDs {
		if _, ok := entries[pair{userID, id}]; ok {
			result[id] = true
		}
	}
	return result, nil
}

func (s *Store) ShoppingList(_ context.Context, userID int64) ([]model.ShoppingListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	type key struct{ name, unit string }
	totals := map[key]int64{}
	for entry := range s.relations[model.RelationShoppingCart] {
		if entry.a != userID {
			continue
		}
		row, ok := s.recipes[entry.b]
		if !ok {
			continue
		}
		for _, item := range row.items {
			i, ok := s.ingredients[item.ID]
			if !ok {
				continue
			}
			totals[key{i.Name, i.MeasurementUnit}] += int64(item.Amount)
		}
	}

	items := make([]model.ShoppingListItem, 0, len(totals))
	for k, total := range totals {
		items = append(items, model.ShoppingListItem{Name: k.name, MeasurementUnit: k.unit, TotalAmount: total})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MeasurementUnit < items[j].MeasurementUnit
	})
	return items, nil
}

func (s *Store) CartRecipeNames(_ context.Context, userID int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	type entry struct {
		seq  int64
		name string
	}
	var entries []entry
	for key, seq := range s.relations[model.RelationShoppingCart] {
		if key.a != userID {
			continue
		}
		if row, ok := s.recipes[key.b]; ok {
			entries = append(entries, entry{seq, row.recipe.Name})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].seq != entries[j].seq {
			return entries[i].seq < entries[j].seq
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.name)
	}
	return names, nil
}

func without(ids []int64, id int64) []int64 {
	kept := ids[:0]
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}
