package dto

import (
	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/service"
)

// CreatePersonRequest carries the identity fields of a provisioned account.
type CreatePersonRequest struct {
	Nom        string  `json:"nomPersonne"`
	Prenom     string  `json:"prenomPersonne,omitempty"`
	Email      string  `json:"emailPersonne"`
	MotDePasse string  `json:"motDePassePersonne"`
	Telephone  *string `json:"telephonePersonne,omitempty"`
}

// ToInput converts to the service input / Convertit en entrée de service
func (r CreatePersonRequest) ToInput() service.CreatePersonInput {
	return service.CreatePersonInput{
		Nom:       r.Nom,
		Prenom:    r.Prenom,
		Email:     r.Email,
		Password:  r.MotDePasse,
		Telephone: r.Telephone,
	}
}

// CreateAdministrateurRequest is DTO for administrator provisioning.
type CreateAdministrateurRequest struct {
	CreatePersonRequest
	NiveauAcces int `json:"niveauAccesAdministrateur"`
}

// UpdateAdministrateurRequest patches identity fields and, optionally, the level.
type UpdateAdministrateurRequest struct {
	domain.PersonnePatch
	NiveauAcces *int `json:"niveauAccesAdministrateur,omitempty"`
}

// CreateGestionnaireRequest is DTO for manager provisioning.
type CreateGestionnaireRequest struct {
	CreatePersonRequest
	Role *string `json:"roleGestionnaire,omitempty"`
}

// UpdateGestionnaireRequest patches identity fields and the manager role label.
type UpdateGestionnaireRequest struct {
	domain.PersonnePatch
	Role *string `json:"roleGestionnaire,omitempty"`
}

// CreateProducteurRequest is DTO for producer provisioning.
type CreateProducteurRequest struct {
	CreatePersonRequest
	IDCategorieProduit *int64 `json:"idCategorieProduit,omitempty"`
}

// UpdateProducteurRequest patches identity fields and the supplied category.
type UpdateProducteurRequest struct {
	domain.PersonnePatch
	IDCategorieProduit *int64 `json:"idCategorieProduit,omitempty"`
}

// UpdateFournisseurRequest patches identity fields and moderation ratings.
type UpdateFournisseurRequest struct {
	domain.PersonnePatch
	NoteClient     *float64 `json:"noteClientFournisseur,omitempty"`
	NoteEntreprise *float64 `json:"noteEntrepriseFournisseur,omitempty"`
}

// UpdateLivreurRequest patches identity fields of a delivery person.
type UpdateLivreurRequest struct {
	domain.PersonnePatch
}

// UpdateClientRequest patches identity fields and the delivery address.
type UpdateClientRequest struct {
	domain.PersonnePatch
	AdresseLivraison *string `json:"adresseLivraisonClient,omitempty"`
}

// UpdateEntrepriseRequest patches identity fields and the business sector.
type UpdateEntrepriseRequest struct {
	domain.PersonnePatch
	SecteurActivite *string `json:"secteurActiviteEntreprise,omitempty"`
}

// ProfileResponse pairs a Personne with one role profile under a stable key
// per role / Associe une Personne à un profil de rôle
type ProfileResponse[T any] struct {
	Personne *domain.Personne `json:"personne"`
	Profil   T                `json:"profil"`
}

// ProfileToDTO converts a service profile pair / Convertit une paire profil du service
func ProfileToDTO[T any](p *service.Profile[T]) *ProfileResponse[T] {
	return &ProfileResponse[T]{Personne: p.Personne, Profil: p.Profil}
}
