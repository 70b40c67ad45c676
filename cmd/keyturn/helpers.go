package main

import (
	"context"

	"github.com/spf13/viper"

	"github.com/keyturn-crm/keyturn/internal/common"
	"github.com/keyturn-crm/keyturn/internal/config"
	"github.com/keyturn-crm/keyturn/internal/service"
	"github.com/keyturn-crm/keyturn/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError("failed to open database at "+dbPath, err)
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, common.NewUserError("failed to migrate database", err)
	}

	return store, nil
}
