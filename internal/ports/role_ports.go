package ports

import (
	"context"

	"github.com/Melvins45/maferme237/internal/domain"
)

// RoleStore persists the seven role-profile tables. Every profile shares its
// primary key with the owning Personne; Create fails on a missing Personne
// through the foreign key.
type RoleStore interface {
	AdministrateurRepository
	GestionnaireRepository
	ProducteurRepository
	FournisseurRepository
	LivreurRepository
	ClientRepository
	EntrepriseRepository

	// HeldRoles returns the role names for which the person has a profile
	// row, in a stable order. Used to build token claims at login.
	HeldRoles(ctx context.Context, personID int64) ([]domain.RoleName, error)

	// DeleteRole removes one role profile without touching the Personne.
	DeleteRole(ctx context.Context, role domain.RoleName, id int64) error

	// WithTx returns a store bound to a transaction / Retourne le store lié à une transaction
	WithTx(tx DBTX) RoleStore
}

// AdministrateurRepository manages administrator profiles / Gère les profils administrateur
type AdministrateurRepository interface {
	GetAdministrateur(ctx context.Context, id int64) (*domain.Administrateur, error)

	// ListAdministrateurs returns administrators whose level is >= minLevel,
	// implementing the hierarchical visibility filter.
	ListAdministrateurs(ctx context.Context, minLevel int) ([]*domain.Administrateur, error)

	CreateAdministrateur(ctx context.Context, admin *domain.Administrateur) (*domain.Administrateur, error)
	UpdateAdministrateur(ctx context.Context, admin *domain.Administrateur) error
}

// GestionnaireRepository manages manager profiles / Gère les profils gestionnaire
type GestionnaireRepository interface {
	GetGestionnaire(ctx context.Context, id int64) (*domain.Gestionnaire, error)
	ListGestionnaires(ctx context.Context) ([]*domain.Gestionnaire, error)
	CreateGestionnaire(ctx context.Context, g *domain.Gestionnaire) (*domain.Gestionnaire, error)
	UpdateGestionnaire(ctx context.Context, g *domain.Gestionnaire) error
}

// ProducteurRepository manages producer profiles / Gère les profils producteur
type ProducteurRepository interface {
	GetProducteur(ctx context.Context, id int64) (*domain.Producteur, error)
	ListProducteurs(ctx context.Context) ([]*domain.Producteur, error)
	CreateProducteur(ctx context.Context, p *domain.Producteur) (*domain.Producteur, error)
	UpdateProducteur(ctx context.Context, p *domain.Producteur) error
}

// FournisseurRepository manages supplier profiles / Gère les profils fournisseur
type FournisseurRepository interface {
	GetFournisseur(ctx context.Context, id int64) (*domain.Fournisseur, error)
	ListFournisseurs(ctx context.Context) ([]*domain.Fournisseur, error)
	CreateFournisseur(ctx context.Context, f *domain.Fournisseur) (*domain.Fournisseur, error)
	UpdateFournisseur(ctx context.Context, f *domain.Fournisseur) error
}

// LivreurRepository manages delivery-person profiles / Gère les profils livreur
type LivreurRepository interface {
	GetLivreur(ctx context.Context, id int64) (*domain.Livreur, error)
	ListLivreurs(ctx context.Context) ([]*domain.Livreur, error)
	CreateLivreur(ctx context.Context, l *domain.Livreur) (*domain.Livreur, error)
	UpdateLivreur(ctx context.Context, l *domain.Livreur) error
}

// ClientRepository manages buyer profiles / Gère les profils client
type ClientRepository interface {
	GetClient(ctx context.Context, id int64) (*domain.Client, error)
	ListClients(ctx context.Context) ([]*domain.Client, error)
	CreateClient(ctx context.Context, c *domain.Client) (*domain.Client, error)
	UpdateClient(ctx context.Context, c *domain.Client) error
}

// EntrepriseRepository manages business-buyer profiles / Gère les profils entreprise
type EntrepriseRepository interface {
	GetEntreprise(ctx context.Context, id int64) (*domain.Entreprise, error)
	ListEntreprises(ctx context.Context) ([]*domain.Entreprise, error)
	CreateEntreprise(ctx context.Context, e *domain.Entreprise) (*domain.Entreprise, error)
	UpdateEntreprise(ctx context.Context, e *domain.Entreprise) error
}
