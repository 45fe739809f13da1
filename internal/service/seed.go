package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deppfellow/foodgram/internal/config"
	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/server"
)

// Seed file names looked up in the data directory.
const (
	IngredientsFile = "ingredients.json"
	TagsFile        = "tags.json"
)

// SeedUser is an account created by the management commands.
type SeedUser struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Password    string
	IsStaff     bool
	IsSuperuser bool
}

// DemoUsers are the sample accounts created by create-users.
var DemoUsers = []SeedUser{
	{Username: "johndoe879", Email: "johndoe879@example.com", FirstName: "Ivan", LastName: "Ivanov", Password: "mysecretpass123"},
	{Username: "alicesmith023", Email: "alicesmith023@example.com", FirstName: "Anna", LastName: "Smirnova", Password: "mysecretpass123"},
	{Username: "bobjohnson751", Email: "bobjohnson751@example.com", FirstName: "Dmitry", LastName: "Ivanov", Password: "mysecretpass123"},
	{Username: "emilybrown594", Email: "emilybrown594@example.com", FirstName: "Ekaterina", LastName: "Smirnova", Password: "mysecretpass123"},
}

// SuperuserFromConfig builds the staff account described by seed.superuser_*.
func SuperuserFromConfig(cfg *config.SeedConfig) SeedUser {
	return SeedUser{
		Username:    cfg.SuperuserUsername,
		Email:       cfg.SuperuserEmail,
		FirstName:   cfg.SuperuserFirstName,
		LastName:    cfg.SuperuserLastName,
		Password:    cfg.SuperuserPassword,
		IsStaff:     true,
		IsSuperuser: true,
	}
}

// ImportReport counts what import-data did per file.
type ImportReport struct {
	File     string
	Read     int
	Inserted int
}

// UsersReport lists which seed accounts were created and which already existed.
type UsersReport struct {
	Created []string
	Skipped []string
}

// SeedService loads fixtures and creates bootstrap accounts.
type SeedService struct {
	server      *server.Server
	auth        *AuthService
	users       UserStore
	tags        TagStore
	ingredients IngredientStore
	recipes     RecipeStore
}

func NewSeedService(s *server.Server, stores Stores, auth *AuthService) *SeedService {
	return &SeedService{
		server:      s,
		auth:        auth,
		users:       stores.Users,
		tags:        stores.Tags,
		ingredients: stores.Ingredients,
		recipes:     stores.Recipes,
	}
}

// ImportData loads ingredients.json and tags.json from dir. Rows that
// already exist are skipped, so running it twice is harmless.
func (s *SeedService) ImportData(ctx context.Context, dir string) ([]ImportReport, error) {
	var reports []ImportReport

	var ingredients []model.Ingredient
	if err := readJSON(filepath.Join(dir, IngredientsFile), &ingredients); err != nil {
		return reports, err
	}
	inserted, err := s.ingredients.BulkCreateIngredients(ctx, ingredients)
	if err != nil {
		return reports, fmt.Errorf("import %s: %w", IngredientsFile, err)
	}
	reports = append(reports, ImportReport{File: IngredientsFile, Read: len(ingredients), Inserted: inserted})

	var tags []model.Tag
	if err := readJSON(filepath.Join(dir, TagsFile), &tags); err != nil {
		return reports, err
	}
	inserted, err = s.tags.BulkCreateTags(ctx, tags)
	if err != nil {
		return reports, fmt.Errorf("import %s: %w", TagsFile, err)
	}
	reports = append(reports, ImportReport{File: TagsFile, Read: len(tags), Inserted: inserted})

	for _, r := range reports {
		s.server.Logger.Info().Str("file", r.File).Int("read", r.Read).Int("inserted", r.Inserted).Msg("data imported")
	}
	return reports, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("file not found: %s", path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// EnsureUsers creates the accounts whose username is not taken yet.
func (s *SeedService) EnsureUsers(ctx context.Context, seeds []SeedUser) (*UsersReport, error) {
	usernames := make([]string, 0, len(seeds))
	for _, u := range seeds {
		usernames = append(usernames, u.Username)
	}

	existing, err := s.users.ExistingUsernames(ctx, usernames)
	if err != nil {
		return nil, fmt.Errorf("check usernames: %w", err)
	}

	report := &UsersReport{}
	for _, seed := range seeds {
		if existing[seed.Username] {
			report.Skipped = append(report.Skipped, seed.Username)
			continue
		}

		hash, err := s.auth.HashPassword(seed.Password)
		if err != nil {
			return report, err
		}
		user := &model.User{
			Email:        seed.Email,
			Username:     seed.Username,
			FirstName:    seed.FirstName,
			LastName:     seed.LastName,
			PasswordHash: hash,
			IsStaff:      seed.IsStaff,
			IsSuperuser:  seed.IsSuperuser,
		}
		if err := s.users.CreateUser(ctx, user); err != nil {
			return report, fmt.Errorf("create user %s: %w", seed.Username, err)
		}
		report.Created = append(report.Created, seed.Username)
		existing[seed.Username] = true
	}
	return report, nil
}
