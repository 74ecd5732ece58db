package authz

import (
	"testing"

	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/stretchr/testify/assert"
)

func produitOwnedBy(fournisseurID int64) *domain.Produit {
	return &domain.Produit{ID: 100, IDFournisseur: &fournisseurID}
}

func TestCanMutateProduit(t *testing.T) {
	owned := produitOwnedBy(3)

	assert.True(t, CanMutateProduit(claimsOf(9, domain.RoleGestionnaire), owned))
	assert.True(t, CanMutateProduit(claimsOf(3, domain.RoleFournisseur), owned))
	assert.False(t, CanMutateProduit(claimsOf(4, domain.RoleFournisseur), owned), "non-owning fournisseur")
	assert.False(t, CanMutateProduit(claimsOf(3, domain.RoleClient), owned))

	orphan := &domain.Produit{ID: 101}
	assert.False(t, CanMutateProduit(claimsOf(3, domain.RoleFournisseur), orphan), "no owner to match")
	assert.True(t, CanMutateProduit(claimsOf(9, domain.RoleGestionnaire), orphan))
}

func TestCanMutateProduitField(t *testing.T) {
	owned := produitOwnedBy(3)
	owner := claimsOf(3, domain.RoleFournisseur)
	gest := claimsOf(9, domain.RoleGestionnaire)

	for _, field := range []string{FieldStock, FieldComissionClient, FieldComissionEntreprise} {
		assert.False(t, CanMutateProduitField(owner, owned, field), field)
		assert.True(t, CanMutateProduitField(gest, owned, field), field)
	}

	assert.True(t, CanMutateProduitField(owner, owned, "descriptionProduit"))
	assert.False(t, CanMutateProduitField(claimsOf(4, domain.RoleFournisseur), owned, "descriptionProduit"))
}

func TestInitialProduitState(t *testing.T) {
	tests := []struct {
		name       string
		claims     Claims
		wantVerif  domain.StatutVerification
		wantProd   domain.StatutProduction
		wantRole   domain.RoleName
	}{
		{
			name:      "gestionnaire creates verified finished",
			claims:    claimsOf(9, domain.RoleGestionnaire),
			wantVerif: domain.VerificationValidee,
			wantProd:  domain.ProductionTerminee,
			wantRole:  domain.RoleGestionnaire,
		},
		{
			name:      "fournisseur creates waiting finished",
			claims:    claimsOf(3, domain.RoleFournisseur),
			wantVerif: domain.VerificationEnAttente,
			wantProd:  domain.ProductionTerminee,
			wantRole:  domain.RoleFournisseur,
		},
		{
			name:      "producteur creates waiting started",
			claims:    claimsOf(2, domain.RoleProducteur),
			wantVerif: domain.VerificationEnAttente,
			wantProd:  domain.ProductionEnCours,
			wantRole:  domain.RoleProducteur,
		},
		{
			name:      "gestionnaire wins over fournisseur",
			claims:    claimsOf(5, domain.RoleFournisseur, domain.RoleGestionnaire),
			wantVerif: domain.VerificationValidee,
			wantProd:  domain.ProductionTerminee,
			wantRole:  domain.RoleGestionnaire,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verif, prod, role := InitialProduitState(tt.claims)
			assert.Equal(t, tt.wantVerif, verif)
			assert.Equal(t, tt.wantProd, prod)
			assert.Equal(t, tt.wantRole, role)
		})
	}
}

func TestFournisseurTrustGates(t *testing.T) {
	assert.True(t, CanVerifyFournisseur(claimsOf(9, domain.RoleGestionnaire)))
	assert.True(t, CanVerifyFournisseur(claimsOf(9, domain.RoleAdministrateur)))
	assert.False(t, CanVerifyFournisseur(claimsOf(9, domain.RoleFournisseur)))

	assert.True(t, CanUnverifyFournisseur(claimsOf(9, domain.RoleAdministrateur)))
	assert.False(t, CanUnverifyFournisseur(claimsOf(9, domain.RoleGestionnaire)), "unverify is admin-only")
}
