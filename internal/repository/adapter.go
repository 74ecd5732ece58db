package repository

import (
	"database/sql"
	"strings"

	"github.com/Melvins45/maferme237/internal/ports"
	"github.com/Melvins45/maferme237/internal/repository/mysql"
	"github.com/Melvins45/maferme237/internal/repository/postgres"
	"github.com/Melvins45/maferme237/internal/repository/sqlite"
)

// Compile-time checks to ensure all Factory implementations satisfy DatabaseFactory interface
// If a Factory doesn't implement all methods, the code won't compile
// Vérifications à la compilation pour s'assurer que toutes les implémentations de Factory satisfont l'interface DatabaseFactory
// Si une Factory n'implémente pas toutes les méthodes, le code ne compilera pas
var (
	_ DatabaseFactory = (*sqlite.Factory)(nil)
	_ DatabaseFactory = (*mysql.Factory)(nil)
	_ DatabaseFactory = (*postgres.Factory)(nil)
)

// factoryRegistry holds all database factories / Registre de toutes les factories de BD
// No switch statements - just a map lookup / Pas de switch - juste une recherche dans la map
var factoryRegistry = map[string]DatabaseFactory{
	"sqlite":     &sqlite.Factory{},
	"sqlite3":    &sqlite.Factory{},
	"mysql":      &mysql.Factory{},
	"postgres":   &postgres.Factory{},
	"postgresql": &postgres.Factory{},
}

// Adapter adapts database connection to repositories / Adapte la connexion BD vers les repositories
type Adapter struct {
	db      *sql.DB
	factory DatabaseFactory
}

// NewAdapter creates repository adapter / Crée l'adapteur de repositories
func NewAdapter(db *sql.DB, driver string) *Adapter {
	// Lookup factory from registry (no switch needed)
	// Recherche la factory dans le registre (pas de switch nécessaire)
	factory := factoryRegistry[strings.ToLower(driver)]
	if factory == nil {
		factory = &sqlite.Factory{} // default fallback
	}

	return &Adapter{
		db:      db,
		factory: factory,
	}
}

// PersonneRepository returns the identity repository / Retourne le repository d'identité
func (a *Adapter) PersonneRepository() ports.PersonneRepository {
	return a.factory.NewPersonneRepository(a.db)
}

// RoleStore returns the role-profile store / Retourne le store des profils de rôle
func (a *Adapter) RoleStore() ports.RoleStore {
	return a.factory.NewRoleStore(a.db)
}

// ProduitRepository returns the product repository / Retourne le repository des produits
func (a *Adapter) ProduitRepository() ports.ProduitRepository {
	return a.factory.NewProduitRepository(a.db)
}

// CatalogueRepository returns the catalog repository / Retourne le repository du catalogue
func (a *Adapter) CatalogueRepository() ports.CatalogueRepository {
	return a.factory.NewCatalogueRepository(a.db)
}

// TxRunner returns the transaction runner / Retourne l'exécuteur de transactions
func (a *Adapter) TxRunner() ports.TxRunner {
	return a.factory.NewTxRunner(a.db)
}
