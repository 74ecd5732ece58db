// Package authz is the authorization engine: pure decision functions over
// already-decoded claims and already-loaded records. Nothing here performs
// I/O or mutates state; callers translate a false decision into a Forbidden
// error.
package authz

import "github.com/Melvins45/maferme237/internal/domain"

// ResourcePolicy captures, for one role-profile table, who may list every
// record, who may write records they do not own, and who may delete. Self
// read/update is implicit for every profile; admin-on-admin operations layer
// the level rules on top and bypass this table.
type ResourcePolicy struct {
	PublicList  bool              // anyone may list, no token needed
	ListRoles   []domain.RoleName // roles allowed to list when not public
	WriteAny    []domain.RoleName // roles allowed to update third-party records
	DeleteSelf  bool              // owner may delete its own profile
	DeleteRoles []domain.RoleName // roles allowed to delete third-party records
}

// policies is the resource-level authorization table. It mirrors the rights
// each elevated role holds over each profile type.
var policies = map[domain.RoleName]ResourcePolicy{
	domain.RoleClient: {
		ListRoles:   []domain.RoleName{domain.RoleGestionnaire, domain.RoleAdministrateur},
		WriteAny:    []domain.RoleName{domain.RoleGestionnaire, domain.RoleAdministrateur},
		DeleteSelf:  true,
		DeleteRoles: []domain.RoleName{domain.RoleGestionnaire, domain.RoleAdministrateur},
	},
	domain.RoleFournisseur: {
		PublicList:  true,
		WriteAny:    []domain.RoleName{domain.RoleGestionnaire, domain.RoleAdministrateur},
		DeleteSelf:  true,
		DeleteRoles: []domain.RoleName{domain.RoleGestionnaire, domain.RoleAdministrateur},
	},
	domain.RoleEntreprise: {
		ListRoles:   []domain.RoleName{domain.RoleGestionnaire, domain.RoleAdministrateur},
		WriteAny:    []domain.RoleName{domain.RoleGestionnaire, domain.RoleAdministrateur},
		DeleteSelf:  true,
		DeleteRoles: []domain.RoleName{domain.RoleGestionnaire, domain.RoleAdministrateur},
	},
	domain.RoleProducteur: {
		ListRoles:   []domain.RoleName{domain.RoleAdministrateur, domain.RoleGestionnaire},
		WriteAny:    []domain.RoleName{domain.RoleAdministrateur, domain.RoleGestionnaire},
		DeleteRoles: []domain.RoleName{domain.RoleAdministrateur},
	},
	domain.RoleLivreur: {
		ListRoles:   []domain.RoleName{domain.RoleAdministrateur, domain.RoleGestionnaire},
		WriteAny:    []domain.RoleName{domain.RoleAdministrateur, domain.RoleGestionnaire},
		DeleteRoles: []domain.RoleName{domain.RoleAdministrateur},
	},
	domain.RoleGestionnaire: {
		// A gestionnaire lists only itself; the service narrows the query.
		ListRoles:   []domain.RoleName{domain.RoleAdministrateur, domain.RoleGestionnaire},
		WriteAny:    []domain.RoleName{domain.RoleAdministrateur},
		DeleteRoles: []domain.RoleName{domain.RoleAdministrateur},
	},
}

// PolicyFor returns the authorization table entry of a profile type.
// Administrateur profiles are governed entirely by the level rules and have
// no entry here.
func PolicyFor(role domain.RoleName) (ResourcePolicy, bool) {
	p, ok := policies[role]
	return p, ok
}

// CanListRole decides list access for a profile type / Décide l'accès liste pour un type de profil
func CanListRole(claims Claims, resource domain.RoleName) bool {
	p, ok := policies[resource]
	if !ok {
		return false
	}
	if p.PublicList {
		return true
	}
	return claims.Roles.HasAny(p.ListRoles...)
}

// CanViewRole decides single-record read access: the owner always may, and
// the roles allowed to list may view any record.
func CanViewRole(claims Claims, resource domain.RoleName, targetID int64) bool {
	if IsSelf(claims, targetID) {
		return true
	}
	return CanListRole(claims, resource)
}

// CanUpdateRole decides write access to a profile record.
func CanUpdateRole(claims Claims, resource domain.RoleName, targetID int64) bool {
	if IsSelf(claims, targetID) {
		return true
	}
	p, ok := policies[resource]
	if !ok {
		return false
	}
	return claims.Roles.HasAny(p.WriteAny...)
}

// CanDeleteRole decides delete access to a profile record. A gestionnaire may
// never delete its own profile; that carve-out lives in the policy table as
// DeleteSelf=false combined with the self check here.
func CanDeleteRole(claims Claims, resource domain.RoleName, targetID int64) bool {
	p, ok := policies[resource]
	if !ok {
		return false
	}
	if IsSelf(claims, targetID) {
		if p.DeleteSelf {
			return true
		}
		// Elevated roles still cannot remove their own profile unless the
		// table says so; a gestionnaire deleting itself is always denied.
		if resource == domain.RoleGestionnaire {
			return false
		}
	}
	return claims.Roles.HasAny(p.DeleteRoles...)
}

// CanCreateRole decides who may provision a profile of the given type.
// Self-registerable profiles (client, fournisseur, entreprise) are created
// through public registration and bypass this check.
func CanCreateRole(claims Claims, resource domain.RoleName) bool {
	switch resource {
	case domain.RoleAdministrateur, domain.RoleGestionnaire:
		return claims.Roles.Has(domain.RoleAdministrateur)
	case domain.RoleProducteur, domain.RoleLivreur:
		return claims.Roles.HasAny(domain.RoleAdministrateur, domain.RoleGestionnaire)
	default:
		return resource.SelfRegisterable()
	}
}
