package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/rosemer/ledger/internal/domain/identity"
	"github.com/rosemer/ledger/internal/domain/shared"
	"github.com/rosemer/ledger/internal/infrastructure/config"
	"github.com/rosemer/ledger/internal/infrastructure/logger"
	"github.com/rosemer/ledger/internal/infrastructure/persistence"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "changeme"
)

func main() {
	var (
		configDir string
		logLevel  string
	)
	flag.StringVar(&configDir, "config", "", "Directory containing config.toml (default: current directory)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.LoadFrom(configDir)
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err), zap.String("path", cfg.Database.Path))
	}
	defer db.Close()

	switch command {
	case "up":
		if err := db.Migrate(); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Schema is up to date", zap.String("path", cfg.Database.Path))

	case "seed":
		if err := db.Migrate(); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		if err := seedAdminUser(db, log); err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}

	case "status":
		reportStatus(db, log)

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// seedAdminUser creates the default administrator account when no users
// exist yet. The password must be changed after first login.
func seedAdminUser(db *persistence.Database, log *zap.Logger) error {
	ctx := context.Background()
	repo := persistence.NewGormUserRepository(db.DB)

	_, err := repo.FindByUsername(ctx, defaultAdminUsername)
	if err == nil {
		log.Info("Administrator account already exists", zap.String("username", defaultAdminUsername))
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	admin, err := identity.NewUser(defaultAdminUsername, defaultAdminPassword, identity.RoleAdministrator)
	if err != nil {
		return err
	}
	if err := repo.Save(ctx, admin); err != nil {
		return err
	}

	log.Info("Administrator account created",
		zap.String("username", defaultAdminUsername),
		zap.String("note", "change the default password immediately"),
	)
	return nil
}

func reportStatus(db *persistence.Database, log *zap.Logger) {
	tables := []string{"inventory_items", "transactions", "transaction_sequences", "payments", "customers_directory", "users"}

	migrator := db.DB.Migrator()
	missing := 0
	for _, table := range tables {
		if migrator.HasTable(table) {
			log.Info("Table present", zap.String("table", table))
		} else {
			log.Warn("Table missing", zap.String("table", table))
			missing++
		}
	}

	if missing == 0 {
		log.Info("Schema is complete")
	} else {
		log.Warn("Schema is incomplete, run 'migrate up'", zap.Int("missing", missing))
	}
}

func printUsage() {
	fmt.Println(`Ledger Database Migration Tool

Usage:
  migrate [flags] <command>

Commands:
  up       Create or update the ledger schema
  seed     Migrate and create the default administrator account
  status   Report which tables exist

Flags:
  -config string      Directory containing config.toml (default: current directory)
  -log-level string   Log level: debug, info, warn, error (default: info)

Environment Variables:
  ROSEMER_DATABASE_PATH, ROSEMER_LOG_LEVEL, ROSEMER_AUDIT_PATH`)
}
