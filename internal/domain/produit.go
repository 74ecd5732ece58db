package domain

import "time"

// StatutVerification tracks the product verification state machine / Suit l'état de vérification du produit
type StatutVerification string

const (
	VerificationEnAttente StatutVerification = "waiting_verification"
	VerificationValidee   StatutVerification = "verified"
)

// IsValid checks if verification status is known / Vérifie si le statut de vérification est connu
func (s StatutVerification) IsValid() bool {
	return s == VerificationEnAttente || s == VerificationValidee
}

// StatutProduction tracks whether a producer-made product is still in production.
type StatutProduction string

const (
	ProductionEnCours  StatutProduction = "started"
	ProductionTerminee StatutProduction = "finished"
)

// IsValid checks if production status is known / Vérifie si le statut de production est connu
func (s StatutProduction) IsValid() bool {
	return s == ProductionEnCours || s == ProductionTerminee
}

// Produit is a catalog item. Ownership is encoded in the optional creator
// references: a Gestionnaire-created product has IDGestionnaire set, a
// Fournisseur-created one has IDFournisseur set, and a Producteur-created one
// has neither (it is recognizable by its started production status).
type Produit struct {
	ID                        int64              `json:"idProduit"`
	Nom                       string             `json:"nomProduit"`
	Description               *string            `json:"descriptionProduit,omitempty"`
	PrixFournisseurClient     *float64           `json:"prixFournisseurClientProduit,omitempty"`
	PrixFournisseurEntreprise *float64           `json:"prixFournisseurEntrepriseProduit,omitempty"`
	PrixFournisseur           *float64           `json:"prixFournisseurProduit,omitempty"`
	ComissionClient           *float64           `json:"comissionClientProduit,omitempty"`
	ComissionEntreprise       *float64           `json:"comissionEntrepriseProduit,omitempty"`
	Stock                     int                `json:"stockProduit"`
	StockFournisseur          int                `json:"stockFournisseurProduit"`
	QuantiteMinClient         *int               `json:"quantiteMinProduitClient,omitempty"`
	QuantiteMinEntreprise     *int               `json:"quantiteMinProduitEntreprise,omitempty"`
	StatutVerification        StatutVerification `json:"statutVerificationProduit"`
	StatutProduction          StatutProduction   `json:"statutProductionProduit"`
	IDCategorie               int64              `json:"idCategorieProduit"`
	IDFournisseur             *int64             `json:"idFournisseur,omitempty"`
	IDGestionnaire            *int64             `json:"idGestionnaire,omitempty"`
	CreatedAt                 time.Time          `json:"createdAt"`
	UpdatedAt                 time.Time          `json:"updatedAt"`
}

// IsOwnedByFournisseur reports whether the given supplier owns this product.
func (p *Produit) IsOwnedByFournisseur(id int64) bool {
	return p.IDFournisseur != nil && *p.IDFournisseur == id
}

// ProduitImage belongs to exactly one product. The first image attached at
// creation is flagged as the main image; the flag is not re-balanced afterward.
type ProduitImage struct {
	ID            int64     `json:"idProduitImage"`
	IDProduit     int64     `json:"idProduit"`
	Blob          []byte    `json:"blobImage,omitempty"`
	TexteAlt      *string   `json:"texteAltImage,omitempty"`
	EstPrincipale bool      `json:"estImagePrincipale"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ProduitCaracteristique joins a product to a characteristic definition,
// carrying the per-product value. Unique per (product, characteristic) pair.
type ProduitCaracteristique struct {
	IDProduit         int64  `json:"idProduit"`
	IDCaracteristique int64  `json:"idCaracteristique"`
	Valeur            string `json:"valeurCaracteristique"`
}
