package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Melvins45/maferme237/internal/config"
	"github.com/Melvins45/maferme237/internal/metrics"
	"github.com/Melvins45/maferme237/internal/ports"
	"github.com/Melvins45/maferme237/internal/repository"
	"github.com/Melvins45/maferme237/internal/repository/db"
	"github.com/Melvins45/maferme237/internal/service"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file" // Required for file-based migrations
	_ "github.com/go-sql-driver/mysql"                   // MySQL driver
	_ "github.com/lib/pq"                                 // PostgreSQL driver
	_ "modernc.org/sqlite"                                // SQLite driver
)

// Container holds application dependencies / Contient les dépendances de l'application
type Container struct {
	DB            *sql.DB
	PersonneRepo  ports.PersonneRepository
	RoleStore     ports.RoleStore
	ProduitRepo   ports.ProduitRepository
	CatalogueRepo ports.CatalogueRepository
	TxRunner      ports.TxRunner
	AuthSvc       *service.AuthService
	RoleSvc       *service.RoleService
	ProduitSvc    *service.ProduitService
	CatalogueSvc  *service.CatalogueService
	Config        *config.Config
	Metrics       *metrics.Metrics
	ctxCancel     context.CancelFunc
}

// NewContainer initializes application container / Initialise le conteneur de l'application
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{}
	c.Config = cfg

	// Initialize metrics first (no dependencies)
	c.Metrics = metrics.NewMetrics(nil)

	if err := c.initDatabase(); err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}

	if err := c.runMigrations(); err != nil {
		c.Close() // Ensure database connection is closed on migration failure
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	if err := c.initRepositories(); err != nil {
		c.Close()
		return nil, fmt.Errorf("repository init: %w", err)
	}

	if err := c.initServices(); err != nil {
		c.Close()
		return nil, fmt.Errorf("service init: %w", err)
	}

	// Update database connection metrics
	c.updateDatabaseMetrics()

	return c, nil
}

// initDatabase opens the configured database / Ouvre la base de données configurée
func (c *Container) initDatabase() error {
	dialect, err := db.ParseDialect(c.Config.Database.Type)
	if err != nil {
		return err
	}

	conn, err := db.Open(db.OpenConfig{
		Dialect:      dialect,
		DSN:          c.Config.Database.DSN,
		MaxOpenConns: c.Config.Database.MaxOpenConns,
		MaxIdleConns: c.Config.Database.MaxIdleConns,
	})
	if err != nil {
		return err
	}

	c.DB = conn
	return nil
}

// runMigrations applies database migrations / Applique les migrations de base de données
func (c *Container) runMigrations() error {
	dialect, err := db.ParseDialect(c.Config.Database.Type)
	if err != nil {
		return err
	}

	driver, driverName, err := db.MigrationDriver(c.DB, dialect)
	if err != nil {
		return fmt.Errorf("could not create %s migration driver: %w", dialect, err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+c.Config.Database.MigrationsPath,
		driverName,
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	log.Printf("Applying %s database migrations...", dialect)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Println("Database migrations applied successfully.")
	return nil
}

// initRepositories initializes repositories / Initialise les repositories
func (c *Container) initRepositories() error {
	// Use Adapter Pattern for clean database abstraction
	adapter := repository.NewAdapter(c.DB, c.Config.Database.Type)

	// Get repositories from adapter
	c.PersonneRepo = adapter.PersonneRepository()
	c.RoleStore = adapter.RoleStore()
	c.ProduitRepo = adapter.ProduitRepository()
	c.CatalogueRepo = adapter.CatalogueRepository()
	c.TxRunner = adapter.TxRunner()

	log.Printf("Repositories initialized for %s database", c.Config.Database.Type)
	return nil
}

// initServices initializes application services / Initialise les services applicatifs
func (c *Container) initServices() error {
	c.AuthSvc = service.NewAuthService(c.PersonneRepo, c.RoleStore, c.TxRunner, c.Config, c.Metrics)
	c.RoleSvc = service.NewRoleService(c.PersonneRepo, c.RoleStore, c.TxRunner, c.Config, c.Metrics)
	c.ProduitSvc = service.NewProduitService(c.ProduitRepo, c.CatalogueRepo, c.TxRunner, c.Metrics)
	c.CatalogueSvc = service.NewCatalogueService(c.CatalogueRepo, c.Metrics)

	ctx, cancel := context.WithCancel(context.Background())
	c.ctxCancel = cancel

	// Start automatic backup goroutine if enabled / Démarre la goroutine de backup automatique si activée
	if c.Config.Backup.Enabled {
		c.startBackupRoutine(ctx)
	}

	return nil
}

// updateDatabaseMetrics updates database metrics / Met à jour les métriques de la BD
func (c *Container) updateDatabaseMetrics() {
	stats := c.DB.Stats()
	c.Metrics.UpdateDatabaseConnections(stats.OpenConnections)
}

// startBackupRoutine starts automatic backup routine / Démarre la routine de backup automatique
func (c *Container) startBackupRoutine(ctx context.Context) {
	go func() {
		c.Metrics.SetBackgroundTaskStatus("database_backup", true)
		ticker := time.NewTicker(c.Config.Backup.Interval)
		defer ticker.Stop()

		log.Printf("Automatic database backup enabled (interval: %s, retention: %d days)",
			c.Config.Backup.Interval, c.Config.Backup.RetentionDays)

		for {
			select {
			case <-ticker.C:
				if err := c.performBackup(); err != nil {
					log.Printf("backup failed: %v", err)
				} else {
					log.Println("database backup completed successfully")
				}
				// Clean old backups after creating new one / Nettoie les anciens backups après création
				if err := c.cleanOldBackups(); err != nil {
					log.Printf("backup cleanup failed: %v", err)
				}
			case <-ctx.Done():
				c.Metrics.SetBackgroundTaskStatus("database_backup", false)
				log.Println("backup goroutine stopped")
				return
			}
		}
	}()
}

// performBackup creates database backup / Crée un backup de la base de données
func (c *Container) performBackup() error {
	// Create backup directory if not exists / Crée le répertoire de backup s'il n'existe pas
	if err := os.MkdirAll(c.Config.Backup.Path, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	// Extract database filename from DSN / Extrait le nom du fichier depuis le DSN
	dbName := c.Config.Database.DSN
	if idx := strings.Index(dbName, "?"); idx > 0 {
		dbName = dbName[:idx]
	}
	if dbName == "" || dbName == ":memory:" {
		return fmt.Errorf("cannot backup in-memory database")
	}

	// Generate backup filename with timestamp / Génère le nom du fichier avec horodatage
	timestamp := time.Now().Format("20060102-150405")
	backupFilename := fmt.Sprintf("%s.backup-%s.db", filepath.Base(dbName), timestamp)
	backupPath := filepath.Join(c.Config.Backup.Path, backupFilename)

	// Use VACUUM INTO to create backup (SQLite 3.27.0+) / Utilise VACUUM INTO pour créer le backup
	query := fmt.Sprintf("VACUUM INTO '%s'", backupPath)
	if _, err := c.DB.Exec(query); err != nil {
		return fmt.Errorf("backup execution failed: %w", err)
	}

	log.Printf("Database backup created: %s", backupPath)
	return nil
}

// cleanOldBackups removes old backups / Supprime les anciens backups
func (c *Container) cleanOldBackups() error {
	if c.Config.Backup.RetentionDays <= 0 {
		return nil // No cleanup if retention is 0 or negative / Pas de nettoyage si rétention <= 0
	}

	cutoffTime := time.Now().AddDate(0, 0, -c.Config.Backup.RetentionDays)

	entries, err := os.ReadDir(c.Config.Backup.Path)
	if err != nil {
		return fmt.Errorf("failed to read backup directory: %w", err)
	}

	deletedCount := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		// Only delete .backup-*.db files / Ne supprime que les fichiers .backup-*.db
		if !strings.Contains(entry.Name(), ".backup-") || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			log.Printf("failed to get file info for %s: %v", entry.Name(), err)
			continue
		}

		if info.ModTime().Before(cutoffTime) {
			backupPath := filepath.Join(c.Config.Backup.Path, entry.Name())
			if err := os.Remove(backupPath); err != nil {
				log.Printf("failed to delete old backup %s: %v", entry.Name(), err)
			} else {
				deletedCount++
				log.Printf("Deleted old backup: %s (age: %d days)",
					entry.Name(), int(time.Since(info.ModTime()).Hours()/24))
			}
		}
	}

	if deletedCount > 0 {
		log.Printf("Cleaned up %d old backup(s)", deletedCount)
	}

	return nil
}

// Close performs graceful shutdown / Effectue un arrêt gracieux
func (c *Container) Close() error {
	if c.ctxCancel != nil {
		c.ctxCancel()
	}
	if c.DB != nil {
		log.Println("Closing database...")
		return c.DB.Close()
	}
	return nil
}
