package domain

import "time"

// Personne is the identity root shared by all role profiles / Racine d'identité partagée par tous les profils de rôle
type Personne struct {
	ID                 int64      `json:"idPersonne"`
	Nom                string     `json:"nomPersonne"`
	Prenom             string     `json:"prenomPersonne"`
	Email              string     `json:"emailPersonne"`
	MotDePasse         string     `json:"-"` // Bcrypt hash, never serialized / Hash bcrypt, jamais sérialisé
	Telephone          *string    `json:"telephonePersonne,omitempty"`
	DateCreationCompte time.Time  `json:"dateCreationCompte"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// PersonnePatch carries optional Personne mutations; nil fields are left untouched.
// The password is deliberately absent: it is never updatable through the profile path.
type PersonnePatch struct {
	Nom       *string `json:"nomPersonne,omitempty"`
	Prenom    *string `json:"prenomPersonne,omitempty"`
	Email     *string `json:"emailPersonne,omitempty"`
	Telephone *string `json:"telephonePersonne,omitempty"`
}

// IsEmpty reports whether the patch carries no mutation / Indique si le patch ne porte aucune mutation
func (p PersonnePatch) IsEmpty() bool {
	return p.Nom == nil && p.Prenom == nil && p.Email == nil && p.Telephone == nil
}

// Apply copies the non-nil patch fields onto the Personne / Copie les champs non-nil du patch sur la Personne
func (p PersonnePatch) Apply(personne *Personne) {
	if p.Nom != nil {
		personne.Nom = *p.Nom
	}
	if p.Prenom != nil {
		personne.Prenom = *p.Prenom
	}
	if p.Email != nil {
		personne.Email = *p.Email
	}
	if p.Telephone != nil {
		personne.Telephone = p.Telephone
	}
}
