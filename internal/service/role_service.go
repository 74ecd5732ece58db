package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Melvins45/maferme237/internal/apperr"
	"github.com/Melvins45/maferme237/internal/authz"
	"github.com/Melvins45/maferme237/internal/config"
	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/ports"
	"github.com/Melvins45/maferme237/internal/repository/db"
	"golang.org/x/crypto/bcrypt"
)

// RoleMetricsRecorder records role lifecycle metrics / Enregistre les métriques du cycle de vie des rôles
type RoleMetricsRecorder interface {
	RecordRoleProfileCreated(role string)
	RecordRoleProfileDeleted(role string)
	RecordAuthzDenial(resource, action string)
	RecordFournisseurVerification(action string)
}

// RoleService manages the lifecycle of role profiles: provisioning, reads
// under the resource policies, updates of the shared Personne plus the
// profile row, and deletion. Administrator operations additionally apply the
// level matrix.
type RoleService struct {
	personnes ports.PersonneRepository
	roles     ports.RoleStore
	tx        ports.TxRunner
	conf      *config.Config
	metrics   RoleMetricsRecorder
}

// NewRoleService creates the role lifecycle service / Crée le service du cycle de vie des rôles
func NewRoleService(
	personnes ports.PersonneRepository,
	roles ports.RoleStore,
	tx ports.TxRunner,
	conf *config.Config,
	metrics RoleMetricsRecorder,
) *RoleService {
	return &RoleService{
		personnes: personnes,
		roles:     roles,
		tx:        tx,
		conf:      conf,
		metrics:   metrics,
	}
}

// Profile pairs a role profile row with its owning Personne.
type Profile[T any] struct {
	Personne *domain.Personne
	Profil   T
}

// CreatePersonInput carries the identity fields for a provisioned account.
type CreatePersonInput struct {
	Nom       string
	Prenom    string
	Email     string
	Password  string
	Telephone *string
}

// authorize converts a false decision into the right error: missing claims
// yield Unauthenticated, present-but-insufficient claims yield Forbidden.
// The authentication check always comes before any record lookup.
func (s *RoleService) authorize(claims authz.Claims, allowed bool, resource, action string) error {
	if allowed {
		return nil
	}
	if claims.SubjectID == 0 {
		return apperr.New(apperr.Unauthenticated, "authentication required")
	}
	s.metrics.RecordAuthzDenial(resource, action)
	return apperr.New(apperr.Forbidden, "operation not permitted")
}

// callerAdminLevel loads the caller's administrator level from the store.
// Claims only prove the role was held at token issue time; the level is
// always re-read.
func (s *RoleService) callerAdminLevel(ctx context.Context, claims authz.Claims) (int, error) {
	if claims.SubjectID == 0 {
		return 0, apperr.New(apperr.Unauthenticated, "authentication required")
	}
	if !claims.Roles.Has(domain.RoleAdministrateur) {
		s.metrics.RecordAuthzDenial("administrateur", "access")
		return 0, apperr.New(apperr.Forbidden, "administrator profile required")
	}
	admin, err := s.roles.GetAdministrateur(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, db.ErrNoRecord) {
			// Token predates profile removal
			s.metrics.RecordAuthzDenial("administrateur", "access")
			return 0, apperr.New(apperr.Forbidden, "administrator profile no longer exists")
		}
		return 0, apperr.Wrap(apperr.Internal, "failed to load administrator profile", err)
	}
	return admin.NiveauAcces, nil
}

// createPersonne validates and inserts the identity half of a provisioned
// account inside the caller's transaction.
func (s *RoleService) createPersonne(ctx context.Context, tx ports.DBTX, input CreatePersonInput) (*domain.Personne, error) {
	if !isValidEmail(input.Email) {
		return nil, apperr.New(apperr.Validation, "invalid email address")
	}
	if !isStrongPassword(input.Password) {
		return nil, apperr.New(apperr.Validation, "password does not meet strength requirements")
	}
	if input.Nom == "" {
		return nil, apperr.New(apperr.Validation, "nom is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.conf.Security.BcryptCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}

	return s.personnes.WithTx(tx).Create(ctx, &domain.Personne{
		Nom:        input.Nom,
		Prenom:     input.Prenom,
		Email:      input.Email,
		MotDePasse: string(hash),
		Telephone:  input.Telephone,
	})
}

// translateStoreErr maps store sentinels onto the service error taxonomy.
func translateStoreErr(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrNoRecord):
		return apperr.New(apperr.NotFound, notFoundMsg)
	case errors.Is(err, db.ErrDuplicate), errors.Is(err, db.ErrDuplicateEmail):
		return apperr.New(apperr.Conflict, "record already exists")
	case errors.Is(err, db.ErrForeignKeyViolation):
		return apperr.New(apperr.Validation, "referenced record does not exist")
	default:
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperr.Wrap(apperr.Internal, "store operation failed", err)
	}
}

// loadPersonne fetches the identity half of a profile pair.
func (s *RoleService) loadPersonne(ctx context.Context, id int64) (*domain.Personne, error) {
	p, err := s.personnes.GetByID(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "personne not found")
	}
	return p, nil
}

// updatePersonne applies a patch to the shared identity inside a transaction.
func (s *RoleService) updatePersonne(ctx context.Context, tx ports.DBTX, id int64, patch domain.PersonnePatch) error {
	if patch.IsEmpty() {
		return nil
	}
	if patch.Email != nil && !isValidEmail(*patch.Email) {
		return apperr.New(apperr.Validation, "invalid email address")
	}
	repo := s.personnes.WithTx(tx)
	personne, err := repo.GetByID(ctx, id)
	if err != nil {
		return translateStoreErr(err, "personne not found")
	}
	patch.Apply(personne)
	return translateStoreErr(repo.Update(ctx, personne), "personne not found")
}

// deleteProfile removes one role profile and records the metric.
func (s *RoleService) deleteProfile(ctx context.Context, role domain.RoleName, id int64) error {
	if err := s.roles.DeleteRole(ctx, role, id); err != nil {
		return translateStoreErr(err, "profile not found")
	}
	s.metrics.RecordRoleProfileDeleted(role.String())
	slog.Info("role profile deleted", "role", role, "personne_id", id)
	return nil
}

// --- Administrateur operations ---

// CreateAdministrateur provisions an administrator account. The caller's
// level constrains the assignable level: level 1 creates level 1, level 2
// creates level 3, nobody else creates administrators.
func (s *RoleService) CreateAdministrateur(ctx context.Context, claims authz.Claims, person CreatePersonInput, niveau int) (*Profile[*domain.Administrateur], error) {
	if err := s.authorize(claims, authz.CanCreateRole(claims, domain.RoleAdministrateur), "administrateur", "create"); err != nil {
		return nil, err
	}
	callerLevel, err := s.callerAdminLevel(ctx, claims)
	if err != nil {
		return nil, err
	}
	if !authz.CanAssignAdminLevel(callerLevel, niveau) {
		s.metrics.RecordAuthzDenial("administrateur", "assign_level")
		return nil, apperr.Newf(apperr.Forbidden, "level %d administrator cannot assign level %d", callerLevel, niveau)
	}

	var out *Profile[*domain.Administrateur]
	err = s.tx.InTx(ctx, func(tx ports.DBTX) error {
		personne, err := s.createPersonne(ctx, tx, person)
		if err != nil {
			return err
		}
		createdBy := claims.SubjectID
		admin, err := s.roles.WithTx(tx).CreateAdministrateur(ctx, &domain.Administrateur{
			ID:          personne.ID,
			NiveauAcces: niveau,
			CreatedBy:   &createdBy,
		})
		if err != nil {
			return err
		}
		out = &Profile[*domain.Administrateur]{Personne: personne, Profil: admin}
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err, "administrateur not found")
	}

	s.metrics.RecordRoleProfileCreated(domain.RoleAdministrateur.String())
	slog.Info("administrateur created", "personne_id", out.Personne.ID, "niveau", niveau, "created_by", claims.SubjectID)
	return out, nil
}

// ListAdministrateurs returns the administrators visible to the caller:
// those at the caller's level or below in privilege.
func (s *RoleService) ListAdministrateurs(ctx context.Context, claims authz.Claims) ([]*domain.Administrateur, error) {
	callerLevel, err := s.callerAdminLevel(ctx, claims)
	if err != nil {
		return nil, err
	}
	admins, err := s.roles.ListAdministrateurs(ctx, callerLevel)
	if err != nil {
		return nil, translateStoreErr(err, "administrateur not found")
	}
	return admins, nil
}

// GetAdministrateur returns one administrator when the level matrix allows
// the caller to view it.
func (s *RoleService) GetAdministrateur(ctx context.Context, claims authz.Claims, id int64) (*Profile[*domain.Administrateur], error) {
	callerLevel, err := s.callerAdminLevel(ctx, claims)
	if err != nil {
		return nil, err
	}
	admin, err := s.roles.GetAdministrateur(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "administrateur not found")
	}
	if claims.SubjectID != id && !authz.CanActOnAdministrateur(callerLevel, admin.NiveauAcces, authz.AdminView) {
		s.metrics.RecordAuthzDenial("administrateur", "view")
		return nil, apperr.New(apperr.Forbidden, "operation not permitted")
	}
	personne, err := s.loadPersonne(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Profile[*domain.Administrateur]{Personne: personne, Profil: admin}, nil
}

// UpdateAdministrateur edits an administrator's identity and, optionally, its
// level. Edits follow the matrix: level 1 edits anyone, level 2 edits level
// 3 only, level 3 edits nobody.
func (s *RoleService) UpdateAdministrateur(ctx context.Context, claims authz.Claims, id int64, patch domain.PersonnePatch, niveau *int) (*Profile[*domain.Administrateur], error) {
	callerLevel, err := s.callerAdminLevel(ctx, claims)
	if err != nil {
		return nil, err
	}
	admin, err := s.roles.GetAdministrateur(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "administrateur not found")
	}
	if claims.SubjectID != id && !authz.CanActOnAdministrateur(callerLevel, admin.NiveauAcces, authz.AdminEdit) {
		s.metrics.RecordAuthzDenial("administrateur", "edit")
		return nil, apperr.New(apperr.Forbidden, "operation not permitted")
	}
	if niveau != nil && !authz.CanAssignAdminLevel(callerLevel, *niveau) {
		s.metrics.RecordAuthzDenial("administrateur", "assign_level")
		return nil, apperr.Newf(apperr.Forbidden, "level %d administrator cannot assign level %d", callerLevel, *niveau)
	}

	err = s.tx.InTx(ctx, func(tx ports.DBTX) error {
		if err := s.updatePersonne(ctx, tx, id, patch); err != nil {
			return err
		}
		if niveau != nil {
			admin.NiveauAcces = *niveau
			if err := s.roles.WithTx(tx).UpdateAdministrateur(ctx, admin); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err, "administrateur not found")
	}

	return s.reloadAdministrateur(ctx, id)
}

// DeleteAdministrateur removes an administrator profile. Deleting others
// follows the matrix; deleting oneself is reserved to level 1.
func (s *RoleService) DeleteAdministrateur(ctx context.Context, claims authz.Claims, id int64) error {
	callerLevel, err := s.callerAdminLevel(ctx, claims)
	if err != nil {
		return err
	}
	admin, err := s.roles.GetAdministrateur(ctx, id)
	if err != nil {
		return translateStoreErr(err, "administrateur not found")
	}

	if claims.SubjectID == id {
		if !authz.CanAdminSelfDelete(callerLevel) {
			s.metrics.RecordAuthzDenial("administrateur", "delete_self")
			return apperr.New(apperr.Forbidden, "only a level 1 administrator may delete itself")
		}
	} else if !authz.CanActOnAdministrateur(callerLevel, admin.NiveauAcces, authz.AdminDelete) {
		s.metrics.RecordAuthzDenial("administrateur", "delete")
		return apperr.New(apperr.Forbidden, "operation not permitted")
	}

	return s.deleteProfile(ctx, domain.RoleAdministrateur, id)
}

func (s *RoleService) reloadAdministrateur(ctx context.Context, id int64) (*Profile[*domain.Administrateur], error) {
	admin, err := s.roles.GetAdministrateur(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "administrateur not found")
	}
	personne, err := s.loadPersonne(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Profile[*domain.Administrateur]{Personne: personne, Profil: admin}, nil
}
