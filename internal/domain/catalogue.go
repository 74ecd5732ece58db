package domain

import "time"

// CategorieProduit groups products. The optional creator references point to
// at most one of fournisseur/producteur/gestionnaire; exclusivity is enforced
// at the application layer, not by the store.
type CategorieProduit struct {
	ID             int64     `json:"idCategorieProduit"`
	Nom            string    `json:"nomCategorieProduit"`
	Description    *string   `json:"descriptionCategorieProduit,omitempty"`
	DateCreation   time.Time `json:"dateCreationCategorieProduit"`
	IDFournisseur  *int64    `json:"idFournisseur,omitempty"`
	IDProducteur   *int64    `json:"idProducteur,omitempty"`
	IDGestionnaire *int64    `json:"idGestionnaire,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Caracteristique is a named, typed attribute definition attachable to
// products. The per-product value lives in ProduitCaracteristique.
type Caracteristique struct {
	ID             int64     `json:"idCaracteristique"`
	Nom            string    `json:"nomCaracteristique"`
	TypeValeur     string    `json:"typeValeurCaracteristique"`
	Unite          *string   `json:"uniteValeurCaracteristique,omitempty"`
	IDFournisseur  *int64    `json:"idFournisseur,omitempty"`
	IDProducteur   *int64    `json:"idProducteur,omitempty"`
	IDGestionnaire *int64    `json:"idGestionnaire,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CreatorOf reports whether the given person id created this characteristic
// under the given role.
func (c *Caracteristique) CreatorOf(role RoleName, id int64) bool {
	switch role {
	case RoleFournisseur:
		return c.IDFournisseur != nil && *c.IDFournisseur == id
	case RoleProducteur:
		return c.IDProducteur != nil && *c.IDProducteur == id
	case RoleGestionnaire:
		return c.IDGestionnaire != nil && *c.IDGestionnaire == id
	default:
		return false
	}
}

// CreatorOf reports whether the given person id created this category under
// the given role.
func (c *CategorieProduit) CreatorOf(role RoleName, id int64) bool {
	switch role {
	case RoleFournisseur:
		return c.IDFournisseur != nil && *c.IDFournisseur == id
	case RoleProducteur:
		return c.IDProducteur != nil && *c.IDProducteur == id
	case RoleGestionnaire:
		return c.IDGestionnaire != nil && *c.IDGestionnaire == id
	default:
		return false
	}
}
