package store

import (
	"context"
	"embed"

	"github.com/jackc/pgx/v5/pgxpool"

	"trustflow/pkg/config"
	"trustflow/pkg/database"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every pending trust_edges migration.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg *config.StoreConfig) error {
	return database.RunMigrations(ctx, pool, cfg, migrations, "migrations")
}
