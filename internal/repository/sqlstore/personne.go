package sqlstore

import (
	"context"

	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/ports"
	"github.com/Melvins45/maferme237/internal/repository/db"
)

var _ ports.PersonneRepository = (*PersonneRepository)(nil)

// PersonneRepository implements the identity store / Implémente le store d'identité
type PersonneRepository struct {
	db ports.DBTX
	d  Dialect
}

// NewPersonneRepository creates the identity repository / Crée le repository d'identité
func NewPersonneRepository(db ports.DBTX, d Dialect) *PersonneRepository {
	return &PersonneRepository{db: db, d: d}
}

// WithTx returns the repository bound to a transaction / Retourne le repository lié à une transaction
func (r *PersonneRepository) WithTx(tx ports.DBTX) ports.PersonneRepository {
	return &PersonneRepository{db: tx, d: r.d}
}

const personneColumns = `id, nom, prenom, email, mot_de_passe, telephone, date_creation_compte, created_at, updated_at`

func (r *PersonneRepository) scanPersonne(row interface{ Scan(...any) error }) (*domain.Personne, error) {
	p := &domain.Personne{}
	err := row.Scan(
		&p.ID,
		&p.Nom,
		&p.Prenom,
		&p.Email,
		&p.MotDePasse,
		&p.Telephone,
		&p.DateCreationCompte,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, r.d.Err(err)
	}
	return p, nil
}

// GetByID retrieves a Personne by ID / Récupère la Personne par ID
func (r *PersonneRepository) GetByID(ctx context.Context, id int64) (*domain.Personne, error) {
	query := r.d.Rebind(`SELECT ` + personneColumns + ` FROM personnes WHERE id = ?`)
	return r.scanPersonne(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a Personne by email / Récupère la Personne par email
func (r *PersonneRepository) GetByEmail(ctx context.Context, email string) (*domain.Personne, error) {
	query := r.d.Rebind(`SELECT ` + personneColumns + ` FROM personnes WHERE email = ?`)
	return r.scanPersonne(r.db.QueryRowContext(ctx, query, email))
}

// Create inserts a new Personne / Insère une nouvelle Personne
func (r *PersonneRepository) Create(ctx context.Context, personne *domain.Personne) (*domain.Personne, error) {
	query := `INSERT INTO personnes (nom, prenom, email, mot_de_passe, telephone)
	          VALUES (?, ?, ?, ?, ?)`
	id, err := r.d.InsertID(ctx, r.db, query,
		personne.Nom,
		personne.Prenom,
		personne.Email,
		personne.MotDePasse,
		personne.Telephone,
	)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update persists the mutable fields, never the password / Persiste les champs modifiables, jamais le mot de passe
func (r *PersonneRepository) Update(ctx context.Context, personne *domain.Personne) error {
	query := r.d.Rebind(`UPDATE personnes
	          SET nom = ?, prenom = ?, email = ?, telephone = ?, updated_at = CURRENT_TIMESTAMP
	          WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query,
		personne.Nom,
		personne.Prenom,
		personne.Email,
		personne.Telephone,
		personne.ID,
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
