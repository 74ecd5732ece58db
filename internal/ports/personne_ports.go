package ports

import (
	"context"

	"github.com/Melvins45/maferme237/internal/domain"
)

// PersonneReader reads identity records / Lit les enregistrements d'identité
type PersonneReader interface {
	// GetByID retrieves a Personne by unique ID / Récupère la Personne par ID unique
	GetByID(ctx context.Context, id int64) (*domain.Personne, error)

	// GetByEmail retrieves a Personne by email / Récupère la Personne par email
	GetByEmail(ctx context.Context, email string) (*domain.Personne, error)
}

// PersonneWriter creates and mutates identity records / Crée et modifie les enregistrements d'identité
type PersonneWriter interface {
	// Create inserts a new Personne with an already-hashed password.
	Create(ctx context.Context, personne *domain.Personne) (*domain.Personne, error)

	// Update persists the mutable Personne fields (never the password).
	Update(ctx context.Context, personne *domain.Personne) error
}

// PersonneRepository is the composite identity contract. Role-profile
// deletion never deletes the underlying Personne; only the cascade from a
// Personne delete removes profiles, and Personne deletion is not exposed.
type PersonneRepository interface {
	PersonneReader
	PersonneWriter

	// WithTx returns a repository bound to a transaction / Retourne le repository lié à une transaction
	WithTx(tx DBTX) PersonneRepository
}
