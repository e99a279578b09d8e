// cmd/seed/main.go inserts the demo brands, models, part types and colours.
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"os"
	"time"

	"github.com/Bojom/Warehouse/internal/config"
	"github.com/Bojom/Warehouse/internal/infra"
	"github.com/Bojom/Warehouse/internal/repository"
	"github.com/Bojom/Warehouse/internal/seed"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		return 1
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL, cfg.DBAutoMigrate)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to postgres")
		return 1
	}
	defer func() {
		if err := infra.CloseDatabase(db); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	err = seed.Run(context.Background(), seed.Repositories{
		Brands:    repository.NewBrandRepository(db),
		Models:    repository.NewDeviceModelRepository(db),
		PartTypes: repository.NewPartTypeRepository(db),
		Colours:   repository.NewColourRepository(db),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to seed dimension data")
		return 1
	}
	return 0
}
