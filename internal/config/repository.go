package config

import (
	"fmt"
	"os"

	"pomofocus/internal/repository/sqlite"
)

// CreateRepository opens the store described by the configuration,
// creating the database directory when needed
func CreateRepository(cfg *Config) (*sqlite.Store, error) {
	dbPath := cfg.GetDatabasePath()

	if dbPath != InMemoryDatabase {
		if err := os.MkdirAll(cfg.Database.Dir, os.FileMode(cfg.Database.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	store, err := sqlite.Open(dbPath, sqlite.WithQueryTimeout(cfg.GetQueryTimeout()))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (*sqlite.Store, error) {
	store, err := sqlite.Open(InMemoryDatabase)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return store, nil
}
