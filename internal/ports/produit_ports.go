package ports

import (
	"context"

	"github.com/Melvins45/maferme237/internal/domain"
)

// ProduitRepository persists products and their attached images and
// characteristic values / Persiste les produits, images et caractéristiques
type ProduitRepository interface {
	GetProduit(ctx context.Context, id int64) (*domain.Produit, error)
	ListProduits(ctx context.Context) ([]*domain.Produit, error)
	CreateProduit(ctx context.Context, p *domain.Produit) (*domain.Produit, error)
	UpdateProduit(ctx context.Context, p *domain.Produit) error
	DeleteProduit(ctx context.Context, id int64) error

	ListImages(ctx context.Context, produitID int64) ([]*domain.ProduitImage, error)
	CreateImage(ctx context.Context, img *domain.ProduitImage) (*domain.ProduitImage, error)
	DeleteImage(ctx context.Context, id int64) error

	// ListCaracteristiques returns the characteristic values attached to a
	// product, joined with their definitions.
	ListCaracteristiques(ctx context.Context, produitID int64) ([]*domain.ProduitCaracteristique, error)
	SetCaracteristique(ctx context.Context, pc *domain.ProduitCaracteristique) error
	UnsetCaracteristique(ctx context.Context, produitID, caracteristiqueID int64) error

	// WithTx returns a repository bound to a transaction / Retourne le dépôt lié à une transaction
	WithTx(tx DBTX) ProduitRepository
}
