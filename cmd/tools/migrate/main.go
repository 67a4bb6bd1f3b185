package main

import (
	"errors"
	"flag"
	"os"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"

	"github.com/noah-isme/backend-kasir/internal/app"
	"github.com/noah-isme/backend-kasir/internal/obs"
)

// migrate applies or rolls back the embedded schema migrations.
//
//	go run ./cmd/tools/migrate -cmd up
//	go run ./cmd/tools/migrate -cmd down -steps 1
func main() {
	cmd := flag.String("cmd", "up", "up, down or version")
	steps := flag.Int("steps", 0, "number of migrations for down (0 = all)")
	flag.Parse()

	_ = godotenv.Load()
	logger := obs.NewLogger("console", "info").With().Str("component", "migrate").Logger()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal().Msg("DATABASE_URL is not set")
	}

	if *cmd == "up" {
		if err := app.RunMigrations(dbURL, logger); err != nil {
			logger.Fatal().Err(err).Msg("migrate up")
		}
		return
	}

	m, err := app.NewMigrator(dbURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("init migrator")
	}
	defer func() { _, _ = m.Close() }()

	switch *cmd {
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal().Err(err).Msg("migrate down")
		}
		logger.Info().Int("steps", *steps).Msg("migrations rolled back")
	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			logger.Fatal().Err(err).Msg("read version")
		}
		logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("schema version")
	default:
		logger.Fatal().Str("cmd", *cmd).Msg("unknown command")
	}
}
