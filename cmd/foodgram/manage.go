package main

import (
	"context"
	"strings"
	"time"

	"github.com/deppfellow/foodgram/internal/database"
	"github.com/deppfellow/foodgram/internal/service"
	"github.com/spf13/cobra"
)

const commandTimeout = 5 * time.Minute

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.loggerService.Shutdown()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			return database.Migrate(ctx, &a.logger, a.cfg)
		},
	}
}

func newImportDataCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "import-data",
		Short: "Import ingredients.json and tags.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, a *app) error {
				return importData(ctx, cmd, a, dataDir(a, dir))
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory holding the JSON files (default seed.data_dir)")

	return cmd
}

func newCreateSuperuserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-superuser",
		Short: "Create the staff superuser from seed config",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, a *app) error {
				return createSuperuser(ctx, cmd, a)
			})
		},
	}
}

func newCreateUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-users",
		Short: "Create the demo users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, a *app) error {
				return createUsers(ctx, cmd, a)
			})
		},
	}
}

func newCreateRecipesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-recipes",
		Short: "Create the demo recipes (after import-data and create-users)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, a *app) error {
				return createRecipes(ctx, cmd, a)
			})
		},
	}
}

// newSetupCmd prepares a fresh database in one go.
func newSetupCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Migrate, import data, create the superuser, demo users and recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			if err := database.Migrate(ctx, &a.logger, a.cfg); err != nil {
				a.loggerService.Shutdown()
				return err
			}
			if err := a.connect(); err != nil {
				a.loggerService.Shutdown()
				return err
			}
			defer a.close(context.Background())

			if err := importData(ctx, cmd, a, dataDir(a, dir)); err != nil {
				return err
			}
			if err := createSuperuser(ctx, cmd, a); err != nil {
				return err
			}
			if err := createUsers(ctx, cmd, a); err != nil {
				return err
			}
			return createRecipes(ctx, cmd, a)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory holding the JSON files (default seed.data_dir)")

	return cmd
}

// withServices runs fn with a connected app and tears it down afterwards.
func withServices(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	if err := a.connect(); err != nil {
		a.loggerService.Shutdown()
		return err
	}
	defer a.close(context.Background())

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	return fn(ctx, a)
}

func dataDir(a *app, flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.Seed.DataDir
}

func importData(ctx context.Context, cmd *cobra.Command, a *app, dir string) error {
	reports, err := a.services.Seed.ImportData(ctx, dir)
	for _, r := range reports {
		cmd.Printf("%s: %d read, %d imported\n", r.File, r.Read, r.Inserted)
	}
	return err
}

func createSuperuser(ctx context.Context, cmd *cobra.Command, a *app) error {
	report, err := a.services.Seed.EnsureUsers(ctx, []service.SeedUser{service.SuperuserFromConfig(a.cfg.Seed)})
	if report != nil {
		printSeedReport(cmd, "superuser", report.Created, report.Skipped)
	}
	return err
}

func createUsers(ctx context.Context, cmd *cobra.Command, a *app) error {
	report, err := a.services.Seed.EnsureUsers(ctx, service.DemoUsers)
	if report != nil {
		printSeedReport(cmd, "demo users", report.Created, report.Skipped)
	}
	return err
}

func createRecipes(ctx context.Context, cmd *cobra.Command, a *app) error {
	report, err := a.services.Seed.CreateDemoRecipes(ctx, service.DemoRecipes)
	if report != nil {
		printSeedReport(cmd, "demo recipes", report.Created, report.Skipped)
	}
	return err
}

func printSeedReport(cmd *cobra.Command, what string, created, skipped []string) {
	if len(created) > 0 {
		cmd.Printf("%s created: %s\n", what, strings.Join(created, ", "))
	}
	if len(skipped) > 0 {
		cmd.Printf("%s already present: %s\n", what, strings.Join(skipped, ", "))
	}
	if len(created) == 0 && len(skipped) == 0 {
		cmd.Printf("no %s to create\n", what)
	}
}
