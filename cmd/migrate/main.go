// Command migrate manages the catalog database schema and seeds it with
// the bundled catalog.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/decora/storefront/internal/infrastructure/config"
	"github.com/decora/storefront/internal/infrastructure/fixtures"
	"github.com/decora/storefront/internal/infrastructure/logger"
	"github.com/decora/storefront/internal/infrastructure/migration"
	"github.com/decora/storefront/internal/infrastructure/persistence"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	log.Info("Migration CLI started",
		zap.String("command", command),
		zap.String("driver", cfg.Database.Driver),
	)

	if command == "seed" {
		if err := seed(cfg, log); err != nil {
			log.Fatal("Seed failed", zap.Error(err))
		}
		return
	}

	db, err := open(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	m, err := migration.New(db, cfg.Database.Driver, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Migration up failed", zap.Error(err))
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("Migration down failed", zap.Error(err))
		}

	case "step":
		if len(args) < 2 {
			log.Fatal("Step count required. Usage: migrate step <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid step count", zap.String("value", args[1]))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("Migration step failed", zap.Error(err))
		}

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("Failed to get version", zap.Error(err))
		}
		if version == 0 {
			log.Info("No migrations applied")
		} else {
			log.Info("Current migration version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty),
			)
		}

	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		log.Warn("Forcing migration version - use with caution!")
		if err := m.Force(version); err != nil {
			log.Fatal("Force version failed", zap.Error(err))
		}

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// open returns a database/sql connection for golang-migrate
func open(cfg config.DatabaseConfig) (*sql.DB, error) {
	driverName, dsn := "postgres", cfg.DSN()
	if cfg.Driver == "sqlite" {
		driverName, dsn = "sqlite3", cfg.SQLitePath
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// seed replaces the catalog tables' content with the bundled catalog
func seed(cfg *config.Config, log *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	src := fixtures.NewCatalogSource()
	products, err := src.LoadProducts(ctx)
	if err != nil {
		return err
	}
	categories, err := src.LoadCategories(ctx)
	if err != nil {
		return err
	}

	db, err := persistence.NewDatabase(cfg.Database, log, "warn")
	if err != nil {
		return err
	}
	defer db.Close()

	if err := persistence.NewGormCatalogRepository(db.DB).Seed(ctx, products, categories); err != nil {
		return err
	}
	log.Info("Catalog seeded",
		zap.Int("products", len(products)),
		zap.Int("categories", len(categories)),
	)
	return nil
}

func printUsage() {
	fmt.Println(`Decora Catalog Migration Tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  version               Show current migration version
  force <version>       Force set migration version (use with caution)
  seed                  Load the bundled catalog into the database

Flags:
  -log-level string     Log level: debug, info, warn, error (default: info)

Environment Variables:
  STOREFRONT_DATABASE_DRIVER (postgres|sqlite), STOREFRONT_DATABASE_HOST,
  STOREFRONT_DATABASE_PORT, STOREFRONT_DATABASE_USER,
  STOREFRONT_DATABASE_PASSWORD, STOREFRONT_DATABASE_DBNAME,
  STOREFRONT_DATABASE_SQLITE_PATH

Examples:
  # Create the schema and load the catalog
  migrate up && migrate seed

  # Roll back the last migration
  migrate step -1`)
}
