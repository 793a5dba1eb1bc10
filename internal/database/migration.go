package database

import (
	"fmt"
	"path/filepath"

	"github.com/JungleeAadmi/component-storage/internal/database/migration"

	"go.uber.org/zap"
)

// RunMigrations applies every pending migration found in migrationsDir.
func RunMigrations(dbURL, migrationsDir string, verbose bool, logger *zap.Logger) error {
	if dbURL == "" {
		return fmt.Errorf("database url is not set")
	}

	migrationsURL, err := SourceURL(migrationsDir)
	if err != nil {
		return err
	}

	return migration.Migrate(dbURL, migrationsURL, verbose, logger)
}

func SourceURL(migrationsDir string) (string, error) {
	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return "file://" + filepath.ToSlash(absPath), nil
}
