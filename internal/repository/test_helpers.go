package repository

import (
	"database/sql"

	"github.com/Melvins45/maferme237/internal/ports"
	"github.com/Melvins45/maferme237/internal/repository/sqlite"
)

// NewSQLitePersonne creates a SQLite identity repository for tests / Crée un repository d'identité SQLite pour les tests
func NewSQLitePersonne(database *sql.DB) ports.PersonneRepository {
	return (&sqlite.Factory{}).NewPersonneRepository(database)
}

// NewSQLiteRoleStore creates a SQLite role store for tests / Crée un store de rôles SQLite pour les tests
func NewSQLiteRoleStore(database *sql.DB) ports.RoleStore {
	return (&sqlite.Factory{}).NewRoleStore(database)
}

// NewSQLiteProduit creates a SQLite product repository for tests / Crée un repository de produits SQLite pour les tests
func NewSQLiteProduit(database *sql.DB) ports.ProduitRepository {
	return (&sqlite.Factory{}).NewProduitRepository(database)
}

// NewSQLiteCatalogue creates a SQLite catalog repository for tests / Crée un repository de catalogue SQLite pour les tests
func NewSQLiteCatalogue(database *sql.DB) ports.CatalogueRepository {
	return (&sqlite.Factory{}).NewCatalogueRepository(database)
}

// NewSQLiteTxRunner creates a SQLite transaction runner for tests / Crée un exécuteur de transactions SQLite pour les tests
func NewSQLiteTxRunner(database *sql.DB) ports.TxRunner {
	return (&sqlite.Factory{}).NewTxRunner(database)
}
