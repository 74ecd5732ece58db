package postgres

import (
	"database/sql"

	"github.com/Melvins45/maferme237/internal/ports"
	"github.com/Melvins45/maferme237/internal/repository/sqlstore"
)

// Factory implements DatabaseFactory for PostgreSQL / Implémente DatabaseFactory pour PostgreSQL
type Factory struct{}

func dialect() sqlstore.Dialect {
	return sqlstore.Dialect{
		Rebind:   sqlstore.RebindDollar,
		Err:      handleError,
		InsertID: sqlstore.QueryInsertID(handleError),
	}
}

// NewPersonneRepository creates the identity repository / Crée le repository d'identité
func (f *Factory) NewPersonneRepository(db *sql.DB) ports.PersonneRepository {
	return sqlstore.NewPersonneRepository(db, dialect())
}

// NewRoleStore creates the role-profile store / Crée le store des profils de rôle
func (f *Factory) NewRoleStore(db *sql.DB) ports.RoleStore {
	return sqlstore.NewRoleStore(db, dialect())
}

// NewProduitRepository creates the product repository / Crée le repository des produits
func (f *Factory) NewProduitRepository(db *sql.DB) ports.ProduitRepository {
	return sqlstore.NewProduitRepository(db, dialect())
}

// NewCatalogueRepository creates the catalog repository / Crée le repository du catalogue
func (f *Factory) NewCatalogueRepository(db *sql.DB) ports.CatalogueRepository {
	return sqlstore.NewCatalogueRepository(db, dialect())
}

// NewTxRunner creates the transaction runner / Crée l'exécuteur de transactions
func (f *Factory) NewTxRunner(db *sql.DB) ports.TxRunner {
	return sqlstore.NewTxRunner(db, dialect())
}
