package authz

import "github.com/Melvins45/maferme237/internal/domain"

// AdminAction is an operation attempted against an administrator profile.
type AdminAction string

const (
	AdminView   AdminAction = "view"
	AdminEdit   AdminAction = "edit"
	AdminDelete AdminAction = "delete"
)

// Administrator levels follow the lower-number-wins convention throughout:
// level 1 outranks level 2, which outranks level 3.

// CanActOnAdministrateur decides whether an administrator at callerLevel may
// perform action on the administrator at targetLevel. Self-targeted requests
// go through CanAdminSelfDelete for deletes; view and edit of one's own
// profile are always allowed and short-circuited by the caller.
func CanActOnAdministrateur(callerLevel, targetLevel int, action AdminAction) bool {
	switch action {
	case AdminView:
		return callerLevel <= targetLevel
	case AdminEdit:
		if callerLevel == domain.NiveauRacine {
			return true
		}
		return callerLevel == domain.NiveauSuperviseur && targetLevel == domain.NiveauOperateur
	case AdminDelete:
		switch callerLevel {
		case domain.NiveauRacine:
			return targetLevel == domain.NiveauSuperviseur || targetLevel == domain.NiveauOperateur
		case domain.NiveauSuperviseur:
			return targetLevel == domain.NiveauOperateur
		default:
			return false
		}
	default:
		return false
	}
}

// CanAdminSelfDelete allows only a root administrator to delete its own profile.
func CanAdminSelfDelete(callerLevel int) bool {
	return callerLevel == domain.NiveauRacine
}

// AdminLevelVisible reports whether an administrator at callerLevel may see
// one at targetLevel in list queries. Consistent with the view rule: an
// administrator sees peers and less-privileged administrators.
func AdminLevelVisible(callerLevel, targetLevel int) bool {
	return targetLevel >= callerLevel
}

// CanAssignAdminLevel decides whether an administrator at callerLevel may
// grant requestedLevel when creating or patching another administrator.
// Root administrators mint only root peers; supervisors mint only operators.
func CanAssignAdminLevel(callerLevel, requestedLevel int) bool {
	switch callerLevel {
	case domain.NiveauRacine:
		return requestedLevel == domain.NiveauRacine
	case domain.NiveauSuperviseur:
		return requestedLevel == domain.NiveauOperateur
	default:
		return false
	}
}
