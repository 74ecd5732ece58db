package sqlstore

import (
	"context"

	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/ports"
	"github.com/Melvins45/maferme237/internal/repository/db"
)

var _ ports.ProduitRepository = (*ProduitRepository)(nil)

// ProduitRepository implements the product store / Implémente le store des produits
type ProduitRepository struct {
	db ports.DBTX
	d  Dialect
}

// NewProduitRepository creates the product repository / Crée le repository des produits
func NewProduitRepository(db ports.DBTX, d Dialect) *ProduitRepository {
	return &ProduitRepository{db: db, d: d}
}

// WithTx returns the repository bound to a transaction / Retourne le repository lié à une transaction
func (r *ProduitRepository) WithTx(tx ports.DBTX) ports.ProduitRepository {
	return &ProduitRepository{db: tx, d: r.d}
}

const produitColumns = `id, nom, description,
	prix_fournisseur_client, prix_fournisseur_entreprise, prix_fournisseur,
	comission_client, comission_entreprise,
	stock, stock_fournisseur, quantite_min_client, quantite_min_entreprise,
	statut_verification, statut_production,
	id_categorie, id_fournisseur, id_gestionnaire,
	created_at, updated_at`

func (r *ProduitRepository) scanProduit(row interface{ Scan(...any) error }) (*domain.Produit, error) {
	p := &domain.Produit{}
	err := row.Scan(
		&p.ID,
		&p.Nom,
		&p.Description,
		&p.PrixFournisseurClient,
		&p.PrixFournisseurEntreprise,
		&p.PrixFournisseur,
		&p.ComissionClient,
		&p.ComissionEntreprise,
		&p.Stock,
		&p.StockFournisseur,
		&p.QuantiteMinClient,
		&p.QuantiteMinEntreprise,
		&p.StatutVerification,
		&p.StatutProduction,
		&p.IDCategorie,
		&p.IDFournisseur,
		&p.IDGestionnaire,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, r.d.Err(err)
	}
	return p, nil
}

// GetProduit retrieves one product / Récupère un produit
func (r *ProduitRepository) GetProduit(ctx context.Context, id int64) (*domain.Produit, error) {
	query := r.d.Rebind(`SELECT ` + produitColumns + ` FROM produits WHERE id = ?`)
	return r.scanProduit(r.db.QueryRowContext(ctx, query, id))
}

// ListProduits lists all products, newest first / Liste tous les produits, du plus récent au plus ancien
func (r *ProduitRepository) ListProduits(ctx context.Context) ([]*domain.Produit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+produitColumns+` FROM produits ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, r.d.Err(err)
	}
	defer rows.Close()

	var out []*domain.Produit
	for rows.Next() {
		p, err := r.scanProduit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, r.d.Err(err)
	}
	return out, nil
}

// CreateProduit inserts a product / Insère un produit
func (r *ProduitRepository) CreateProduit(ctx context.Context, p *domain.Produit) (*domain.Produit, error) {
	query := `INSERT INTO produits (nom, description,
		prix_fournisseur_client, prix_fournisseur_entreprise, prix_fournisseur,
		comission_client, comission_entreprise,
		stock, stock_fournisseur, quantite_min_client, quantite_min_entreprise,
		statut_verification, statut_production,
		id_categorie, id_fournisseur, id_gestionnaire)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	id, err := r.d.InsertID(ctx, r.db, query,
		p.Nom,
		p.Description,
		p.PrixFournisseurClient,
		p.PrixFournisseurEntreprise,
		p.PrixFournisseur,
		p.ComissionClient,
		p.ComissionEntreprise,
		p.Stock,
		p.StockFournisseur,
		p.QuantiteMinClient,
		p.QuantiteMinEntreprise,
		p.StatutVerification,
		p.StatutProduction,
		p.IDCategorie,
		p.IDFournisseur,
		p.IDGestionnaire,
	)
	if err != nil {
		return nil, err
	}
	return r.GetProduit(ctx, id)
}

// UpdateProduit persists all mutable product fields / Persiste tous les champs modifiables du produit
func (r *ProduitRepository) UpdateProduit(ctx context.Context, p *domain.Produit) error {
	query := r.d.Rebind(`UPDATE produits SET
		nom = ?, description = ?,
		prix_fournisseur_client = ?, prix_fournisseur_entreprise = ?, prix_fournisseur = ?,
		comission_client = ?, comission_entreprise = ?,
		stock = ?, stock_fournisseur = ?, quantite_min_client = ?, quantite_min_entreprise = ?,
		statut_verification = ?, statut_production = ?,
		id_categorie = ?, updated_at = CURRENT_TIMESTAMP
	WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query,
		p.Nom,
		p.Description,
		p.PrixFournisseurClient,
		p.PrixFournisseurEntreprise,
		p.PrixFournisseur,
		p.ComissionClient,
		p.ComissionEntreprise,
		p.Stock,
		p.StockFournisseur,
		p.QuantiteMinClient,
		p.QuantiteMinEntreprise,
		p.StatutVerification,
		p.StatutProduction,
		p.IDCategorie,
		p.ID,
	)
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

// DeleteProduit removes a product; images and characteristic links follow by cascade.
func (r *ProduitRepository) DeleteProduit(ctx context.Context, id int64) error {
	query := r.d.Rebind(`DELETE FROM produits WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, id)
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

// ListImages lists a product's images, main image first / Liste les images du produit, image principale en premier
func (r *ProduitRepository) ListImages(ctx context.Context, produitID int64) ([]*domain.ProduitImage, error) {
	query := r.d.Rebind(`SELECT id, id_produit, blob_image, texte_alt, est_principale, created_at
	          FROM produit_images WHERE id_produit = ? ORDER BY est_principale DESC, id`)
	rows, err := r.db.QueryContext(ctx, query, produitID)
	if err != nil {
		return nil, r.d.Err(err)
	}
	defer rows.Close()

	var out []*domain.ProduitImage
	for rows.Next() {
		img := &domain.ProduitImage{}
		if err := rows.Scan(&img.ID, &img.IDProduit, &img.Blob, &img.TexteAlt, &img.EstPrincipale, &img.CreatedAt); err != nil {
			return nil, r.d.Err(err)
		}
		out = append(out, img)
	}
	if err := rows.Err(); err != nil {
		return nil, r.d.Err(err)
	}
	return out, nil
}

// CreateImage attaches an image to a product / Attache une image au produit
func (r *ProduitRepository) CreateImage(ctx context.Context, img *domain.ProduitImage) (*domain.ProduitImage, error) {
	query := `INSERT INTO produit_images (id_produit, blob_image, texte_alt, est_principale)
	          VALUES (?, ?, ?, ?)`
	id, err := r.d.InsertID(ctx, r.db, query, img.IDProduit, img.Blob, img.TexteAlt, img.EstPrincipale)
	if err != nil {
		return nil, err
	}
	created := *img
	created.ID = id
	return &created, nil
}

// DeleteImage removes one image / Supprime une image
func (r *ProduitRepository) DeleteImage(ctx context.Context, id int64) error {
	query := r.d.Rebind(`DELETE FROM produit_images WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, id)
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

// ListCaracteristiques lists the characteristic values of a product.
func (r *ProduitRepository) ListCaracteristiques(ctx context.Context, produitID int64) ([]*domain.ProduitCaracteristique, error) {
	query := r.d.Rebind(`SELECT id_produit, id_caracteristique, valeur
	          FROM produit_caracteristiques WHERE id_produit = ? ORDER BY id_caracteristique`)
	rows, err := r.db.QueryContext(ctx, query, produitID)
	if err != nil {
		return nil, r.d.Err(err)
	}
	defer rows.Close()

	var out []*domain.ProduitCaracteristique
	for rows.Next() {
		pc := &domain.ProduitCaracteristique{}
		if err := rows.Scan(&pc.IDProduit, &pc.IDCaracteristique, &pc.Valeur); err != nil {
			return nil, r.d.Err(err)
		}
		out = append(out, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, r.d.Err(err)
	}
	return out, nil
}

// SetCaracteristique writes a per-product characteristic value, updating the
// link when it already exists. Portable update-then-insert instead of
// dialect-specific upserts.
func (r *ProduitRepository) SetCaracteristique(ctx context.Context, pc *domain.ProduitCaracteristique) error {
	update := r.d.Rebind(`UPDATE produit_caracteristiques
	          SET valeur = ? WHERE id_produit = ? AND id_caracteristique = ?`)
	result, err := r.db.ExecContext(ctx, update, pc.Valeur, pc.IDProduit, pc.IDCaracteristique)
	if err != nil {
		return r.d.Err(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return r.d.Err(err)
	}
	if affected > 0 {
		return nil
	}

	insert := r.d.Rebind(`INSERT INTO produit_caracteristiques (id_produit, id_caracteristique, valeur)
	          VALUES (?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, insert, pc.IDProduit, pc.IDCaracteristique, pc.Valeur); err != nil {
		return r.d.Err(err)
	}
	return nil
}

// UnsetCaracteristique removes one product-characteristic link.
func (r *ProduitRepository) UnsetCaracteristique(ctx context.Context, produitID, caracteristiqueID int64) error {
	query := r.d.Rebind(`DELETE FROM produit_caracteristiques WHERE id_produit = ? AND id_caracteristique = ?`)
	_, err := r.db.ExecContext(ctx, query, produitID, caracteristiqueID)
	return r.d.Err(err)
}
