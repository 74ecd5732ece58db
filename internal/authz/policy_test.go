package authz

import (
	"testing"

	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/stretchr/testify/assert"
)

func claimsOf(id int64, roles ...domain.RoleName) Claims {
	return Claims{SubjectID: id, Roles: NewRoleSet(roles...)}
}

func TestHasAnyRole(t *testing.T) {
	c := claimsOf(7, domain.RoleClient, domain.RoleFournisseur)

	assert.True(t, HasAnyRole(c, domain.RoleFournisseur))
	assert.True(t, HasAnyRole(c, domain.RoleGestionnaire, domain.RoleClient))
	assert.False(t, HasAnyRole(c, domain.RoleAdministrateur))
	assert.False(t, HasAnyRole(c))
}

func TestRoleSetFromStrings_DropsUnknown(t *testing.T) {
	s := RoleSetFromStrings([]string{"client", "superuser", "fournisseur"})

	assert.True(t, s.Has(domain.RoleClient))
	assert.True(t, s.Has(domain.RoleFournisseur))
	assert.Len(t, s, 2)
}

func TestCanViewRole(t *testing.T) {
	tests := []struct {
		name     string
		claims   Claims
		resource domain.RoleName
		targetID int64
		allowed  bool
	}{
		{"client views self", claimsOf(1, domain.RoleClient), domain.RoleClient, 1, true},
		{"client views other client", claimsOf(1, domain.RoleClient), domain.RoleClient, 2, false},
		{"gestionnaire views any client", claimsOf(9, domain.RoleGestionnaire), domain.RoleClient, 2, true},
		{"admin views any client", claimsOf(9, domain.RoleAdministrateur), domain.RoleClient, 2, true},
		{"fournisseur is public", claimsOf(1, domain.RoleClient), domain.RoleFournisseur, 2, true},
		{"entreprise hidden from clients", claimsOf(1, domain.RoleClient), domain.RoleEntreprise, 2, false},
		{"livreur views self", claimsOf(4, domain.RoleLivreur), domain.RoleLivreur, 4, true},
		{"livreur hidden from peers", claimsOf(4, domain.RoleLivreur), domain.RoleLivreur, 5, false},
		{"gestionnaire views producteur", claimsOf(9, domain.RoleGestionnaire), domain.RoleProducteur, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanViewRole(tt.claims, tt.resource, tt.targetID))
		})
	}
}

func TestCanUpdateRole(t *testing.T) {
	tests := []struct {
		name     string
		claims   Claims
		resource domain.RoleName
		targetID int64
		allowed  bool
	}{
		{"self update", claimsOf(1, domain.RoleClient), domain.RoleClient, 1, true},
		{"third-party client by client", claimsOf(1, domain.RoleClient), domain.RoleClient, 2, false},
		{"third-party client by gestionnaire", claimsOf(9, domain.RoleGestionnaire), domain.RoleClient, 2, true},
		{"gestionnaire by gestionnaire peer", claimsOf(9, domain.RoleGestionnaire), domain.RoleGestionnaire, 8, false},
		{"gestionnaire by admin", claimsOf(9, domain.RoleAdministrateur), domain.RoleGestionnaire, 8, true},
		{"fournisseur self", claimsOf(3, domain.RoleFournisseur), domain.RoleFournisseur, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanUpdateRole(tt.claims, tt.resource, tt.targetID))
		})
	}
}

func TestCanDeleteRole(t *testing.T) {
	tests := []struct {
		name     string
		claims   Claims
		resource domain.RoleName
		targetID int64
		allowed  bool
	}{
		{"client deletes self", claimsOf(1, domain.RoleClient), domain.RoleClient, 1, true},
		{"fournisseur deletes self", claimsOf(3, domain.RoleFournisseur), domain.RoleFournisseur, 3, true},
		{"producteur cannot delete self", claimsOf(2, domain.RoleProducteur), domain.RoleProducteur, 2, false},
		{"gestionnaire cannot delete producteur", claimsOf(9, domain.RoleGestionnaire), domain.RoleProducteur, 2, false},
		{"admin deletes producteur", claimsOf(9, domain.RoleAdministrateur), domain.RoleProducteur, 2, true},
		{"gestionnaire never deletes itself", claimsOf(9, domain.RoleGestionnaire), domain.RoleGestionnaire, 9, false},
		{"admin deletes gestionnaire", claimsOf(5, domain.RoleAdministrateur), domain.RoleGestionnaire, 9, true},
		{"livreur deletion admin only", claimsOf(9, domain.RoleGestionnaire), domain.RoleLivreur, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanDeleteRole(tt.claims, tt.resource, tt.targetID))
		})
	}
}

func TestCanCreateRole(t *testing.T) {
	admin := claimsOf(1, domain.RoleAdministrateur)
	gest := claimsOf(2, domain.RoleGestionnaire)
	client := claimsOf(3, domain.RoleClient)

	assert.True(t, CanCreateRole(admin, domain.RoleAdministrateur))
	assert.False(t, CanCreateRole(gest, domain.RoleAdministrateur))
	assert.True(t, CanCreateRole(admin, domain.RoleGestionnaire))
	assert.False(t, CanCreateRole(gest, domain.RoleGestionnaire))
	assert.True(t, CanCreateRole(admin, domain.RoleProducteur))
	assert.True(t, CanCreateRole(gest, domain.RoleProducteur))
	assert.False(t, CanCreateRole(client, domain.RoleProducteur))
	assert.True(t, CanCreateRole(gest, domain.RoleLivreur))
	assert.True(t, CanCreateRole(client, domain.RoleClient), "self-registerable")
}
