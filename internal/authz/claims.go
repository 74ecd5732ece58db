package authz

import "github.com/Melvins45/maferme237/internal/domain"

// RoleSet is the set of role names carried by a token. A Personne may hold
// several profiles at once (client + fournisseur + entreprise is a valid
// combination), so every predicate takes the whole set and never assumes a
// single role.
type RoleSet map[domain.RoleName]struct{}

// NewRoleSet builds a role set from names, dropping unknown roles.
func NewRoleSet(roles ...domain.RoleName) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		if r.IsValid() {
			s[r] = struct{}{}
		}
	}
	return s
}

// RoleSetFromStrings builds a role set from raw token strings / Construit un ensemble de rôles depuis le token brut
func RoleSetFromStrings(roles []string) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		name := domain.RoleName(r)
		if name.IsValid() {
			s[name] = struct{}{}
		}
	}
	return s
}

// Has reports membership of a single role / Indique l'appartenance d'un seul rôle
func (s RoleSet) Has(role domain.RoleName) bool {
	_, ok := s[role]
	return ok
}

// HasAny reports whether the set intersects the allowed roles.
func (s RoleSet) HasAny(allowed ...domain.RoleName) bool {
	for _, r := range allowed {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// Names returns the sorted-insensitive slice form for token encoding.
func (s RoleSet) Names() []string {
	names := make([]string, 0, len(s))
	for _, r := range domain.AllRoles() {
		if s.Has(r) {
			names = append(names, r.String())
		}
	}
	return names
}

// Claims is the decoded token payload: subject id plus role set. It is a
// value type; decision functions never mutate it.
type Claims struct {
	SubjectID int64
	Roles     RoleSet
}

// HasAnyRole reports whether the claims' role set intersects allowed.
func HasAnyRole(claims Claims, allowed ...domain.RoleName) bool {
	return claims.Roles.HasAny(allowed...)
}

// IsSelf reports whether the claims' subject is the target / Indique si le sujet des claims est la cible
func IsSelf(claims Claims, targetID int64) bool {
	return claims.SubjectID == targetID
}
