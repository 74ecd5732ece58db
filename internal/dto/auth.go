package dto

import (
	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/service"
)

// RegisterRequest is DTO for public registration / Est le DTO pour l'inscription publique
type RegisterRequest struct {
	Nom        string   `json:"nomPersonne"`
	Prenom     string   `json:"prenomPersonne,omitempty"`
	Email      string   `json:"emailPersonne"`
	MotDePasse string   `json:"motDePassePersonne"`
	Telephone  *string  `json:"telephonePersonne,omitempty"`
	Roles      []string `json:"roles"`

	AdresseLivraison *string `json:"adresseLivraisonClient,omitempty"`
	SecteurActivite  *string `json:"secteurActiviteEntreprise,omitempty"`
}

// ToInput converts the request to the service input / Convertit la requête en entrée de service
func (r RegisterRequest) ToInput() service.RegisterInput {
	roles := make([]domain.RoleName, 0, len(r.Roles))
	for _, role := range r.Roles {
		roles = append(roles, domain.RoleName(role))
	}
	return service.RegisterInput{
		Nom:              r.Nom,
		Prenom:           r.Prenom,
		Email:            r.Email,
		Password:         r.MotDePasse,
		Telephone:        r.Telephone,
		Roles:            roles,
		AdresseLivraison: r.AdresseLivraison,
		SecteurActivite:  r.SecteurActivite,
	}
}

// LoginRequest is DTO for login requests / Est le DTO pour les demandes de connexion
type LoginRequest struct {
	Email      string `json:"emailPersonne"`
	MotDePasse string `json:"motDePassePersonne"`
}

// AuthResponse is DTO for registration and login responses. The password hash
// never serializes; expiry is unix seconds.
type AuthResponse struct {
	Personne  *domain.Personne `json:"personne"`
	Roles     []string         `json:"roles"`
	Token     string           `json:"token"`
	ExpiresAt int64            `json:"expiresAt"`
}

// AuthResultToDTO converts a service auth result / Convertit un résultat d'authentification du service
func AuthResultToDTO(res *service.AuthResult) *AuthResponse {
	roles := make([]string, len(res.Roles))
	for i, r := range res.Roles {
		roles[i] = r.String()
	}
	return &AuthResponse{
		Personne:  res.Personne,
		Roles:     roles,
		Token:     res.Token.AccessToken,
		ExpiresAt: res.Token.ExpiresAt.Unix(),
	}
}
