// Command migrate applies or rolls back the schema in migrations/ against
// the Postgres instance named by config, outside the server's own startup
// path so a deploy can run schema changes before the new binary starts.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"hush/config"
	migrationsdir "hush/migrations"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		log.Fatalf("usage: migrate [up|down|status]")
	}

	v, err := config.LoadConfig("config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.Database, cfg.Postgres.SSLMode)
	connector := pgdriver.NewConnector(pgdriver.WithDSN(dsn))
	db := bun.NewDB(sql.OpenDB(connector), pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, migrationsdir.Migrations)
	ctx := context.Background()

	if err := migrator.Init(ctx); err != nil {
		log.Fatalf("failed to init migrator: %v", err)
	}

	switch os.Args[1] {
	case "up":
		group, err := migrator.Migrate(ctx)
		if err != nil {
			log.Fatalf("migrate up failed: %v", err)
		}
		if group.IsZero() {
			log.Println("no new migrations to run")
			return
		}
		log.Printf("migrated to %s", group)
	case "down":
		group, err := migrator.Rollback(ctx)
		if err != nil {
			log.Fatalf("migrate down failed: %v", err)
		}
		if group.IsZero() {
			log.Println("no migrations to roll back")
			return
		}
		log.Printf("rolled back %s", group)
	case "status":
		ms, err := migrator.MigrationsWithStatus(ctx)
		if err != nil {
			log.Fatalf("migrate status failed: %v", err)
		}
		log.Printf("migrations: %s", ms)
	default:
		log.Fatalf("unknown command %q, expected up|down|status", os.Args[1])
	}
}
