package domain

import "time"

// RoleName identifies one of the role profiles a Personne may hold / Identifie un profil de rôle qu'une Personne peut détenir
type RoleName string

const (
	RoleClient         RoleName = "client"
	RoleFournisseur    RoleName = "fournisseur"
	RoleProducteur     RoleName = "producteur"
	RoleGestionnaire   RoleName = "gestionnaire"
	RoleAdministrateur RoleName = "administrateur"
	RoleLivreur        RoleName = "livreur"
	RoleEntreprise     RoleName = "entreprise"
)

// AllRoles returns every known role name / Retourne tous les noms de rôle connus
func AllRoles() []RoleName {
	return []RoleName{
		RoleClient,
		RoleFournisseur,
		RoleProducteur,
		RoleGestionnaire,
		RoleAdministrateur,
		RoleLivreur,
		RoleEntreprise,
	}
}

// IsValid checks if role name is known / Vérifie si le nom de rôle est connu
func (r RoleName) IsValid() bool {
	switch r {
	case RoleClient, RoleFournisseur, RoleProducteur, RoleGestionnaire,
		RoleAdministrateur, RoleLivreur, RoleEntreprise:
		return true
	default:
		return false
	}
}

// String returns role name as string / Retourne le nom de rôle en string
func (r RoleName) String() string {
	return string(r)
}

// SelfRegisterable reports whether this profile can be created through public
// registration, as opposed to being provisioned by an administrator or manager.
func (r RoleName) SelfRegisterable() bool {
	switch r {
	case RoleClient, RoleFournisseur, RoleEntreprise:
		return true
	default:
		return false
	}
}

// Administrator privilege levels. Lower number = broader privilege.
// Niveaux de privilège administrateur. Nombre plus bas = privilège plus large.
const (
	NiveauRacine      = 1 // May manage every administrator, including itself
	NiveauSuperviseur = 2 // May manage level-3 administrators only
	NiveauOperateur   = 3 // Self-service only
)

// Administrateur extends a Personne with a hierarchical access level.
// The profile shares its primary key with the owning Personne.
type Administrateur struct {
	ID          int64     `json:"idAdministrateur"`
	NiveauAcces int       `json:"niveauAccesAdministrateur"`
	CreatedBy   *int64    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Gestionnaire is the marketplace manager profile / Profil gestionnaire de la place de marché
type Gestionnaire struct {
	ID        int64     `json:"idGestionnaire"`
	Role      *string   `json:"roleGestionnaire,omitempty"`
	CreatedBy *int64    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Producteur is the producer profile, optionally tied to a product category.
type Producteur struct {
	ID                 int64     `json:"idProducteur"`
	IDCategorieProduit *int64    `json:"idCategorieProduit,omitempty"`
	CreatedBy          *int64    `json:"createdBy,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Fournisseur is the supplier profile carrying ratings and a trust flag.
// Verifie is distinct from product verification: it marks the supplier itself
// as trusted, stamped by the verifying administrator or manager.
type Fournisseur struct {
	ID             int64     `json:"idFournisseur"`
	NoteClient     *float64  `json:"noteClientFournisseur,omitempty"`
	NoteEntreprise *float64  `json:"noteEntrepriseFournisseur,omitempty"`
	Verifie        bool      `json:"verifieFournisseur"`
	VerifiedBy     *int64    `json:"verifiedBy,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Livreur is the delivery-person profile / Profil livreur
type Livreur struct {
	ID        int64     `json:"idLivreur"`
	CreatedBy *int64    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Client is the buyer profile / Profil client
type Client struct {
	ID               int64     `json:"idClient"`
	AdresseLivraison *string   `json:"adresseLivraisonClient,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Entreprise is the business-buyer profile / Profil entreprise
type Entreprise struct {
	ID              int64     `json:"idEntreprise"`
	SecteurActivite *string   `json:"secteurActiviteEntreprise,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
