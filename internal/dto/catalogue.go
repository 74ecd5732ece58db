package dto

import "github.com/Melvins45/maferme237/internal/service"

// CategorieRequest is DTO for category creation and update.
type CategorieRequest struct {
	Nom         string  `json:"nomCategorieProduit"`
	Description *string `json:"descriptionCategorieProduit,omitempty"`
}

// ToInput converts to the service input / Convertit en entrée de service
func (r CategorieRequest) ToInput() service.CategorieInput {
	return service.CategorieInput{Nom: r.Nom, Description: r.Description}
}

// CaracteristiqueRequest is DTO for characteristic definition creation and update.
type CaracteristiqueRequest struct {
	Nom        string  `json:"nomCaracteristique"`
	TypeValeur *string `json:"typeValeurCaracteristique,omitempty"`
	Unite      *string `json:"uniteValeurCaracteristique,omitempty"`
}

// ToInput converts to the service input / Convertit en entrée de service
func (r CaracteristiqueRequest) ToInput() service.CaracteristiqueInput {
	return service.CaracteristiqueInput{Nom: r.Nom, TypeValeur: r.TypeValeur, Unite: r.Unite}
}
