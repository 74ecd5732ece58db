package dto

import (
	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/service"
)

// ImageRequest is one image payload, blob as base64 / Une image, blob en base64
type ImageRequest struct {
	Blob     []byte  `json:"blobImage"`
	TexteAlt *string `json:"texteAltImage,omitempty"`
}

// CaracteristiqueValeurRequest attaches a characteristic value, by id of an
// existing definition or by name.
type CaracteristiqueValeurRequest struct {
	IDCaracteristique *int64  `json:"idCaracteristique,omitempty"`
	Nom               string  `json:"nomCaracteristique,omitempty"`
	TypeValeur        *string `json:"typeValeurCaracteristique,omitempty"`
	Unite             *string `json:"uniteValeurCaracteristique,omitempty"`
	Valeur            string  `json:"valeurCaracteristique"`
}

// CreateProduitRequest is DTO for product creation / Est le DTO pour la création de produit
type CreateProduitRequest struct {
	Nom                       string                         `json:"nomProduit"`
	Description               *string                        `json:"descriptionProduit,omitempty"`
	PrixFournisseurClient     *float64                       `json:"prixFournisseurClientProduit,omitempty"`
	PrixFournisseurEntreprise *float64                       `json:"prixFournisseurEntrepriseProduit,omitempty"`
	PrixFournisseur           *float64                       `json:"prixFournisseurProduit,omitempty"`
	ComissionClient           *float64                       `json:"comissionClientProduit,omitempty"`
	ComissionEntreprise       *float64                       `json:"comissionEntrepriseProduit,omitempty"`
	Stock                     *int                           `json:"stockProduit,omitempty"`
	StockFournisseur          *int                           `json:"stockFournisseurProduit,omitempty"`
	QuantiteMinClient         *int                           `json:"quantiteMinProduitClient,omitempty"`
	QuantiteMinEntreprise     *int                           `json:"quantiteMinProduitEntreprise,omitempty"`
	IDCategorie               int64                          `json:"idCategorieProduit"`
	Images                    []ImageRequest                 `json:"images,omitempty"`
	Caracteristiques          []CaracteristiqueValeurRequest `json:"caracteristiques,omitempty"`
}

// ToInput converts to the service input / Convertit en entrée de service
func (r CreateProduitRequest) ToInput() service.ProduitInput {
	images := make([]service.ImageInput, len(r.Images))
	for i, img := range r.Images {
		images[i] = service.ImageInput{Blob: img.Blob, TexteAlt: img.TexteAlt}
	}
	caracs := make([]service.CaracteristiqueValeur, len(r.Caracteristiques))
	for i, cv := range r.Caracteristiques {
		caracs[i] = service.CaracteristiqueValeur{
			IDCaracteristique: cv.IDCaracteristique,
			Nom:               cv.Nom,
			TypeValeur:        cv.TypeValeur,
			Unite:             cv.Unite,
			Valeur:            cv.Valeur,
		}
	}
	return service.ProduitInput{
		Nom:                       r.Nom,
		Description:               r.Description,
		PrixFournisseurClient:     r.PrixFournisseurClient,
		PrixFournisseurEntreprise: r.PrixFournisseurEntreprise,
		PrixFournisseur:           r.PrixFournisseur,
		ComissionClient:           r.ComissionClient,
		ComissionEntreprise:       r.ComissionEntreprise,
		Stock:                     r.Stock,
		StockFournisseur:          r.StockFournisseur,
		QuantiteMinClient:         r.QuantiteMinClient,
		QuantiteMinEntreprise:     r.QuantiteMinEntreprise,
		IDCategorie:               r.IDCategorie,
		Images:                    images,
		Caracteristiques:          caracs,
	}
}

// UpdateProduitRequest is DTO for product patches; absent fields stay untouched.
type UpdateProduitRequest struct {
	Nom                       *string  `json:"nomProduit,omitempty"`
	Description               *string  `json:"descriptionProduit,omitempty"`
	PrixFournisseurClient     *float64 `json:"prixFournisseurClientProduit,omitempty"`
	PrixFournisseurEntreprise *float64 `json:"prixFournisseurEntrepriseProduit,omitempty"`
	PrixFournisseur           *float64 `json:"prixFournisseurProduit,omitempty"`
	ComissionClient           *float64 `json:"comissionClientProduit,omitempty"`
	ComissionEntreprise       *float64 `json:"comissionEntrepriseProduit,omitempty"`
	Stock                     *int     `json:"stockProduit,omitempty"`
	StockFournisseur          *int     `json:"stockFournisseurProduit,omitempty"`
	QuantiteMinClient         *int     `json:"quantiteMinProduitClient,omitempty"`
	QuantiteMinEntreprise     *int     `json:"quantiteMinProduitEntreprise,omitempty"`
	IDCategorie               *int64   `json:"idCategorieProduit,omitempty"`
}

// ToPatch converts to the service patch / Convertit en patch de service
func (r UpdateProduitRequest) ToPatch() service.ProduitPatch {
	return service.ProduitPatch{
		Nom:                       r.Nom,
		Description:               r.Description,
		PrixFournisseurClient:     r.PrixFournisseurClient,
		PrixFournisseurEntreprise: r.PrixFournisseurEntreprise,
		PrixFournisseur:           r.PrixFournisseur,
		ComissionClient:           r.ComissionClient,
		ComissionEntreprise:       r.ComissionEntreprise,
		Stock:                     r.Stock,
		StockFournisseur:          r.StockFournisseur,
		QuantiteMinClient:         r.QuantiteMinClient,
		QuantiteMinEntreprise:     r.QuantiteMinEntreprise,
		IDCategorie:               r.IDCategorie,
	}
}

// ProduitDetailResponse is a product with its attachments.
type ProduitDetailResponse struct {
	Produit          *domain.Produit                  `json:"produit"`
	Images           []*domain.ProduitImage           `json:"images"`
	Caracteristiques []*domain.ProduitCaracteristique `json:"caracteristiques"`
}

// ProduitDetailToDTO converts a service detail / Convertit un détail du service
func ProduitDetailToDTO(d *service.ProduitDetail) *ProduitDetailResponse {
	return &ProduitDetailResponse{
		Produit:          d.Produit,
		Images:           d.Images,
		Caracteristiques: d.Caracteristiques,
	}
}
