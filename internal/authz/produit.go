package authz

import "github.com/Melvins45/maferme237/internal/domain"

// Product field names subject to role-specific write masks. These mirror the
// wire names so the service can report the offending field verbatim.
const (
	FieldStock               = "stockProduit"
	FieldComissionClient     = "comissionClientProduit"
	FieldComissionEntreprise = "comissionEntrepriseProduit"
)

// CanCreateProduit restricts product creation to the three producing roles.
func CanCreateProduit(claims Claims) bool {
	return claims.Roles.HasAny(domain.RoleGestionnaire, domain.RoleFournisseur, domain.RoleProducteur)
}

// CanMutateProduit decides whether the caller may update or delete the
// product at all: any gestionnaire, or the owning fournisseur.
func CanMutateProduit(claims Claims, produit *domain.Produit) bool {
	if claims.Roles.Has(domain.RoleGestionnaire) {
		return true
	}
	return claims.Roles.Has(domain.RoleFournisseur) && produit.IsOwnedByFournisseur(claims.SubjectID)
}

// CanMutateProduitField applies the field-level write mask: a gestionnaire
// writes any field, the owning fournisseur writes everything except stock and
// the two commissions.
func CanMutateProduitField(claims Claims, produit *domain.Produit, field string) bool {
	if claims.Roles.Has(domain.RoleGestionnaire) {
		return true
	}
	if !CanMutateProduit(claims, produit) {
		return false
	}
	switch field {
	case FieldStock, FieldComissionClient, FieldComissionEntreprise:
		return false
	default:
		return true
	}
}

// CanVerifyProduit restricts the verify/unverify transitions to gestionnaires.
func CanVerifyProduit(claims Claims) bool {
	return claims.Roles.Has(domain.RoleGestionnaire)
}

// CanVerifyFournisseur gates the supplier trust flag: administrators and
// gestionnaires may verify, only administrators may revoke.
func CanVerifyFournisseur(claims Claims) bool {
	return claims.Roles.HasAny(domain.RoleAdministrateur, domain.RoleGestionnaire)
}

// CanUnverifyFournisseur see CanVerifyFournisseur.
func CanUnverifyFournisseur(claims Claims) bool {
	return claims.Roles.Has(domain.RoleAdministrateur)
}

// InitialProduitState returns the verification and production statuses a new
// product starts in, from the creator's role. Priority order matters when the
// caller holds several producing roles: gestionnaire wins over fournisseur,
// which wins over producteur, matching the strongest privilege.
func InitialProduitState(claims Claims) (domain.StatutVerification, domain.StatutProduction, domain.RoleName) {
	switch {
	case claims.Roles.Has(domain.RoleGestionnaire):
		return domain.VerificationValidee, domain.ProductionTerminee, domain.RoleGestionnaire
	case claims.Roles.Has(domain.RoleFournisseur):
		return domain.VerificationEnAttente, domain.ProductionTerminee, domain.RoleFournisseur
	default:
		return domain.VerificationEnAttente, domain.ProductionEnCours, domain.RoleProducteur
	}
}

// CanCreateCatalogue gates category and characteristic creation.
func CanCreateCatalogue(claims Claims) bool {
	return claims.Roles.HasAny(domain.RoleProducteur, domain.RoleGestionnaire, domain.RoleFournisseur)
}

// CanDeleteCatalogue restricts category and characteristic deletion to
// gestionnaires.
func CanDeleteCatalogue(claims Claims) bool {
	return claims.Roles.Has(domain.RoleGestionnaire)
}
