package sqlstore

import (
	"context"

	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/ports"
	"github.com/Melvins45/maferme237/internal/repository/db"
)

var _ ports.CatalogueRepository = (*CatalogueRepository)(nil)

// CatalogueRepository implements the catalog-definition store / Implémente le store des définitions du catalogue
type CatalogueRepository struct {
	db ports.DBTX
	d  Dialect
}

// NewCatalogueRepository creates the catalog repository / Crée le repository du catalogue
func NewCatalogueRepository(db ports.DBTX, d Dialect) *CatalogueRepository {
	return &CatalogueRepository{db: db, d: d}
}

// WithTx returns the repository bound to a transaction / Retourne le repository lié à une transaction
func (r *CatalogueRepository) WithTx(tx ports.DBTX) ports.CatalogueRepository {
	return &CatalogueRepository{db: tx, d: r.d}
}

const categorieColumns = `id, nom, description, date_creation, id_fournisseur, id_producteur, id_gestionnaire, created_at, updated_at`

func (r *CatalogueRepository) scanCategorie(row interface{ Scan(...any) error }) (*domain.CategorieProduit, error) {
	c := &domain.CategorieProduit{}
	err := row.Scan(
		&c.ID,
		&c.Nom,
		&c.Description,
		&c.DateCreation,
		&c.IDFournisseur,
		&c.IDProducteur,
		&c.IDGestionnaire,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, r.d.Err(err)
	}
	return c, nil
}

// GetCategorie retrieves one category / Récupère une catégorie
func (r *CatalogueRepository) GetCategorie(ctx context.Context, id int64) (*domain.CategorieProduit, error) {
	query := r.d.Rebind(`SELECT ` + categorieColumns + ` FROM categorie_produits WHERE id = ?`)
	return r.scanCategorie(r.db.QueryRowContext(ctx, query, id))
}

// ListCategories lists all categories / Liste toutes les catégories
func (r *CatalogueRepository) ListCategories(ctx context.Context) ([]*domain.CategorieProduit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+categorieColumns+` FROM categorie_produits ORDER BY nom`)
	if err != nil {
		return nil, r.d.Err(err)
	}
	defer rows.Close()

	var out []*domain.CategorieProduit
	for rows.Next() {
		c, err := r.scanCategorie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, r.d.Err(err)
	}
	return out, nil
}

// CreateCategorie inserts a category / Insère une catégorie
func (r *CatalogueRepository) CreateCategorie(ctx context.Context, c *domain.CategorieProduit) (*domain.CategorieProduit, error) {
	query := `INSERT INTO categorie_produits (nom, description, id_fournisseur, id_producteur, id_gestionnaire)
	          VALUES (?, ?, ?, ?, ?)`
	id, err := r.d.InsertID(ctx, r.db, query, c.Nom, c.Description, c.IDFournisseur, c.IDProducteur, c.IDGestionnaire)
	if err != nil {
		return nil, err
	}
	return r.GetCategorie(ctx, id)
}

// UpdateCategorie persists name and description / Persiste le nom et la description
func (r *CatalogueRepository) UpdateCategorie(ctx context.Context, c *domain.CategorieProduit) error {
	query := r.d.Rebind(`UPDATE categorie_produits
	          SET nom = ?, description = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	return r.execExpectingRow(ctx, query, c.Nom, c.Description, c.ID)
}

// DeleteCategorie removes a category / Supprime une catégorie
func (r *CatalogueRepository) DeleteCategorie(ctx context.Context, id int64) error {
	query := r.d.Rebind(`DELETE FROM categorie_produits WHERE id = ?`)
	return r.execExpectingRow(ctx, query, id)
}

const caracteristiqueColumns = `id, nom, type_valeur, unite, id_fournisseur, id_producteur, id_gestionnaire, created_at, updated_at`

func (r *CatalogueRepository) scanCaracteristique(row interface{ Scan(...any) error }) (*domain.Caracteristique, error) {
	c := &domain.Caracteristique{}
	err := row.Scan(
		&c.ID,
		&c.Nom,
		&c.TypeValeur,
		&c.Unite,
		&c.IDFournisseur,
		&c.IDProducteur,
		&c.IDGestionnaire,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, r.d.Err(err)
	}
	return c, nil
}

// GetCaracteristique retrieves one definition / Récupère une définition
func (r *CatalogueRepository) GetCaracteristique(ctx context.Context, id int64) (*domain.Caracteristique, error) {
	query := r.d.Rebind(`SELECT ` + caracteristiqueColumns + ` FROM caracteristiques WHERE id = ?`)
	return r.scanCaracteristique(r.db.QueryRowContext(ctx, query, id))
}

// GetCaracteristiqueByNom looks a definition up by name / Recherche une définition par nom
func (r *CatalogueRepository) GetCaracteristiqueByNom(ctx context.Context, nom string) (*domain.Caracteristique, error) {
	query := r.d.Rebind(`SELECT ` + caracteristiqueColumns + ` FROM caracteristiques WHERE nom = ?`)
	return r.scanCaracteristique(r.db.QueryRowContext(ctx, query, nom))
}

// ListCaracteristiques lists all definitions / Liste toutes les définitions
func (r *CatalogueRepository) ListCaracteristiques(ctx context.Context) ([]*domain.Caracteristique, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+caracteristiqueColumns+` FROM caracteristiques ORDER BY nom`)
	if err != nil {
		return nil, r.d.Err(err)
	}
	defer rows.Close()

	var out []*domain.Caracteristique
	for rows.Next() {
		c, err := r.scanCaracteristique(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, r.d.Err(err)
	}
	return out, nil
}

// CreateCaracteristique inserts a definition / Insère une définition
func (r *CatalogueRepository) CreateCaracteristique(ctx context.Context, c *domain.Caracteristique) (*domain.Caracteristique, error) {
	query := `INSERT INTO caracteristiques (nom, type_valeur, unite, id_fournisseur, id_producteur, id_gestionnaire)
	          VALUES (?, ?, ?, ?, ?, ?)`
	id, err := r.d.InsertID(ctx, r.db, query, c.Nom, c.TypeValeur, c.Unite, c.IDFournisseur, c.IDProducteur, c.IDGestionnaire)
	if err != nil {
		return nil, err
	}
	return r.GetCaracteristique(ctx, id)
}

// UpdateCaracteristique persists name, type and unit / Persiste le nom, le type et l'unité
func (r *CatalogueRepository) UpdateCaracteristique(ctx context.Context, c *domain.Caracteristique) error {
	query := r.d.Rebind(`UPDATE caracteristiques
	          SET nom = ?, type_valeur = ?, unite = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	return r.execExpectingRow(ctx, query, c.Nom, c.TypeValeur, c.Unite, c.ID)
}

// DeleteCaracteristique removes a definition; product links follow by cascade.
func (r *CatalogueRepository) DeleteCaracteristique(ctx context.Context, id int64) error {
	query := r.d.Rebind(`DELETE FROM caracteristiques WHERE id = ?`)
	return r.execExpectingRow(ctx, query, id)
}

func (r *CatalogueRepository) execExpectingRow(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return r.d.Err(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return r.d.Err(err)
	}
	if affected == 0 {
		return db.ErrNoRecord
	}
	return nil
}
