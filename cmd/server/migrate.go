package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"stockmaster/internal/config"
	"stockmaster/internal/infrastructure/storage/postgres"
	"stockmaster/pkg/logger"
)

func runMigrations(cfg *config.Config, log *logger.Logger, fn func(*postgres.Migrator) error) (err error) {
	m, err := postgres.NewMigrator(cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(m)
}

func migrateUp(_ *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	return runMigrations(cfg, log, func(m *postgres.Migrator) error { return m.Up() })
}

func migrateDown(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	return runMigrations(cfg, log, func(m *postgres.Migrator) error { return m.Down(c.Int("steps")) })
}

func migrateVersion(_ *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	return runMigrations(cfg, log, func(m *postgres.Migrator) error {
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Printf("schema version %d (dirty: %t)\n", version, dirty)
		return nil
	})
}
