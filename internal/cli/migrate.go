package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rohits-web03/minitracker/internal/config"
	"github.com/rohits-web03/minitracker/internal/repositories"
	mongorepo "github.com/rohits-web03/minitracker/internal/repositories/mongo"
)

func newMigrateCmd() *cobra.Command {
	var driver, dsn string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the tracker schema",
		Long:  `migrate creates the tracker tables, or the MongoDB indexes when DB_DRIVER is mongo. Flags override the environment.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := config.Load()
			if driver != "" {
				cfg.DBDriver = driver
			}
			if dsn != "" {
				cfg.DatabaseURL = dsn
				cfg.MongoURI = dsn
			}
			if err := migrate(cmd.Context(), cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s schema\n", cfg.DBDriver)
			return nil
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "", "database driver: postgres, sqlite or mongo")
	cmd.Flags().StringVar(&dsn, "dsn", "", "database connection string")
	return cmd
}

func migrate(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.DBDriver == "mongo" {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		client, err := mongorepo.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())
		return mongorepo.NewStore(client, cfg.MongoDB).EnsureIndexes(ctx)
	}

	db, err := repositories.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()
	return repositories.Migrate(db)
}
