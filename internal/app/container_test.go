package app_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Melvins45/maferme237/internal/app"
	"github.com/Melvins45/maferme237/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer(t *testing.T) {
	// Create a temporary directory for migrations
	migrationsDir, err := os.MkdirTemp("", "migrations")
	require.NoError(t, err)
	defer os.RemoveAll(migrationsDir)

	// Create a dummy migration file
	upFile := filepath.Join(migrationsDir, "000001_create_initial_schema.up.sql")
	err = os.WriteFile(upFile, []byte("CREATE TABLE test (id INT);"), 0644)
	require.NoError(t, err)

	// Create a config for an in-memory SQLite database
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			DSN:            ":memory:",
			MigrationsPath: migrationsDir,
		},
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret-test-secret-test-secret",
			TokenDuration: 1 * time.Hour,
		},
		Security: config.SecurityConfig{
			BcryptCost: 4,
		},
	}

	// Create a new container
	container, err := app.NewContainer(cfg)
	require.NoError(t, err)
	require.NotNil(t, container)
	defer container.Close()

	// Assert that all fields are initialized
	assert.NotNil(t, container.DB)
	assert.NotNil(t, container.PersonneRepo)
	assert.NotNil(t, container.RoleStore)
	assert.NotNil(t, container.ProduitRepo)
	assert.NotNil(t, container.CatalogueRepo)
	assert.NotNil(t, container.TxRunner)
	assert.NotNil(t, container.AuthSvc)
	assert.NotNil(t, container.RoleSvc)
	assert.NotNil(t, container.ProduitSvc)
	assert.NotNil(t, container.CatalogueSvc)
	assert.NotNil(t, container.Config)
	assert.NotNil(t, container.Metrics)

	// Check if the database connection is alive
	err = container.DB.Ping()
	assert.NoError(t, err)

	// Check if the migration was applied
	_, err = container.DB.Query("SELECT id FROM test")
	assert.NoError(t, err)
}
