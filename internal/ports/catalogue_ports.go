package ports

import (
	"context"

	"github.com/Melvins45/maferme237/internal/domain"
)

// CatalogueRepository persists product categories and characteristic
// definitions / Persiste les catégories et définitions de caractéristiques
type CatalogueRepository interface {
	GetCategorie(ctx context.Context, id int64) (*domain.CategorieProduit, error)
	ListCategories(ctx context.Context) ([]*domain.CategorieProduit, error)
	CreateCategorie(ctx context.Context, c *domain.CategorieProduit) (*domain.CategorieProduit, error)
	UpdateCategorie(ctx context.Context, c *domain.CategorieProduit) error
	DeleteCategorie(ctx context.Context, id int64) error

	GetCaracteristique(ctx context.Context, id int64) (*domain.Caracteristique, error)

	// GetCaracteristiqueByNom looks a definition up by name so product
	// writes can reuse an existing definition instead of duplicating it.
	GetCaracteristiqueByNom(ctx context.Context, nom string) (*domain.Caracteristique, error)

	ListCaracteristiques(ctx context.Context) ([]*domain.Caracteristique, error)
	CreateCaracteristique(ctx context.Context, c *domain.Caracteristique) (*domain.Caracteristique, error)
	UpdateCaracteristique(ctx context.Context, c *domain.Caracteristique) error
	DeleteCaracteristique(ctx context.Context, id int64) error

	// WithTx returns a repository bound to a transaction / Retourne le dépôt lié à une transaction
	WithTx(tx DBTX) CatalogueRepository
}
