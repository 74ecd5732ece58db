package service

import (
	"context"
	"log/slog"

	"github.com/Melvins45/maferme237/internal/apperr"
	"github.com/Melvins45/maferme237/internal/authz"
	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/ports"
)

// Lifecycle operations for the six non-administrator profiles. They all share
// the same shape: the resource policy decides access, the profile row and its
// Personne are written together in a transaction, and list results expose the
// profile rows only.

// --- Gestionnaire ---

// CreateGestionnaire provisions a manager account. Only administrators may
// create managers.
func (s *RoleService) CreateGestionnaire(ctx context.Context, claims authz.Claims, person CreatePersonInput, role *string) (*Profile[*domain.Gestionnaire], error) {
	if err := s.authorize(claims, authz.CanCreateRole(claims, domain.RoleGestionnaire), "gestionnaire", "create"); err != nil {
		return nil, err
	}

	var out *Profile[*domain.Gestionnaire]
	err := s.tx.InTx(ctx, func(tx ports.DBTX) error {
		personne, err := s.createPersonne(ctx, tx, person)
		if err != nil {
			return err
		}
		createdBy := claims.SubjectID
		g, err := s.roles.WithTx(tx).CreateGestionnaire(ctx, &domain.Gestionnaire{
			ID:        personne.ID,
			Role:      role,
			CreatedBy: &createdBy,
		})
		if err != nil {
			return err
		}
		out = &Profile[*domain.Gestionnaire]{Personne: personne, Profil: g}
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err, "gestionnaire not found")
	}

	s.metrics.RecordRoleProfileCreated(domain.RoleGestionnaire.String())
	slog.Info("gestionnaire created", "personne_id", out.Personne.ID, "created_by", claims.SubjectID)
	return out, nil
}

func (s *RoleService) GetGestionnaire(ctx context.Context, claims authz.Claims, id int64) (*Profile[*domain.Gestionnaire], error) {
	if err := s.authorize(claims, authz.CanViewRole(claims, domain.RoleGestionnaire, id), "gestionnaire", "view"); err != nil {
		return nil, err
	}
	g, err := s.roles.GetGestionnaire(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "gestionnaire not found")
	}
	personne, err := s.loadPersonne(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Profile[*domain.Gestionnaire]{Personne: personne, Profil: g}, nil
}

func (s *RoleService) ListGestionnaires(ctx context.Context, claims authz.Claims) ([]*domain.Gestionnaire, error) {
	if err := s.authorize(claims, authz.CanListRole(claims, domain.RoleGestionnaire), "gestionnaire", "list"); err != nil {
		return nil, err
	}
	// A gestionnaire without administrator rights sees only itself.
	if !claims.Roles.Has(domain.RoleAdministrateur) {
		g, err := s.roles.GetGestionnaire(ctx, claims.SubjectID)
		if err != nil {
			return nil, translateStoreErr(err, "gestionnaire not found")
		}
		return []*domain.Gestionnaire{g}, nil
	}
	list, err := s.roles.ListGestionnaires(ctx)
	if err != nil {
		return nil, translateStoreErr(err, "gestionnaire not found")
	}
	return list, nil
}

func (s *RoleService) UpdateGestionnaire(ctx context.Context, claims authz.Claims, id int64, patch domain.PersonnePatch, role *string) (*Profile[*domain.Gestionnaire], error) {
	if err := s.authorize(claims, authz.CanUpdateRole(claims, domain.RoleGestionnaire, id), "gestionnaire", "update"); err != nil {
		return nil, err
	}
	g, err := s.roles.GetGestionnaire(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "gestionnaire not found")
	}

	err = s.tx.InTx(ctx, func(tx ports.DBTX) error {
		if err := s.updatePersonne(ctx, tx, id, patch); err != nil {
			return err
		}
		if role != nil {
			g.Role = role
			return s.roles.WithTx(tx).UpdateGestionnaire(ctx, g)
		}
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err, "gestionnaire not found")
	}
	return s.GetGestionnaire(ctx, claims, id)
}

func (s *RoleService) DeleteGestionnaire(ctx context.Context, claims authz.Claims, id int64) error {
	if err := s.authorize(claims, authz.CanDeleteRole(claims, domain.RoleGestionnaire, id), "gestionnaire", "delete"); err != nil {
		return err
	}
	if _, err := s.roles.GetGestionnaire(ctx, id); err != nil {
		return translateStoreErr(err, "gestionnaire not found")
	}
	return s.deleteProfile(ctx, domain.RoleGestionnaire, id)
}

// --- Producteur ---

// CreateProducteur provisions a producer account, optionally bound to the
// product category it supplies.
func (s *RoleService) CreateProducteur(ctx context.Context, claims authz.Claims, person CreatePersonInput, idCategorie *int64) (*Profile[*domain.Producteur], error) {
	if err := s.authorize(claims, authz.CanCreateRole(claims, domain.RoleProducteur), "producteur", "create"); err != nil {
		return nil, err
	}

	var out *Profile[*domain.Producteur]
	err := s.tx.InTx(ctx, func(tx ports.DBTX) error {
		personne, err := s.createPersonne(ctx, tx, person)
		if err != nil {
			return err
		}
		createdBy := claims.SubjectID
		p, err := s.roles.WithTx(tx).CreateProducteur(ctx, &domain.Producteur{
			ID:                 personne.ID,
			IDCategorieProduit: idCategorie,
			CreatedBy:          &createdBy,
		})
		if err != nil {
			return err
		}
		out = &Profile[*domain.Producteur]{Personne: personne, Profil: p}
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err, "producteur not found")
	}

	s.metrics.RecordRoleProfileCreated(domain.RoleProducteur.String())
	slog.Info("producteur created", "personne_id", out.Personne.ID, "created_by", claims.SubjectID)
	return out, nil
}

func (s *RoleService) GetProducteur(ctx context.Context, claims authz.Claims, id int64) (*Profile[*domain.Producteur], error) {
	if err := s.authorize(claims, authz.CanViewRole(claims, domain.RoleProducteur, id), "producteur", "view"); err != nil {
		return nil, err
	}
	p, err := s.roles.GetProducteur(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "producteur not found")
	}
	personne, err := s.loadPersonne(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Profile[*domain.Producteur]{Personne: personne, Profil: p}, nil
}

func (s *RoleService) ListProducteurs(ctx context.Context, claims authz.Claims) ([]*domain.Producteur, error) {
	if err := s.authorize(claims, authz.CanListRole(claims, domain.RoleProducteur), "producteur", "list"); err != nil {
		return nil, err
	}
	list, err := s.roles.ListProducteurs(ctx)
	if err != nil {
		return nil, translateStoreErr(err, "producteur not found")
	}
	return list, nil
}

func (s *RoleService) UpdateProducteur(ctx context.Context, claims authz.Claims, id int64, patch domain.PersonnePatch, idCategorie *int64) (*Profile[*domain.Producteur], error) {
	if err := s.authorize(claims, authz.CanUpdateRole(claims, domain.RoleProducteur, id), "producteur", "update"); err != nil {
		return nil, err
	}
	p, err := s.roles.GetProducteur(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "producteur not found")
	}

	err = s.tx.InTx(ctx, func(tx ports.DBTX) error {
		if err := s.updatePersonne(ctx, tx, id, patch); err != nil {
			return err
		}
		if idCategorie != nil {
			p.IDCategorieProduit = idCategorie
			return s.roles.WithTx(tx).UpdateProducteur(ctx, p)
		}
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err, "producteur not found")
	}
	return s.GetProducteur(ctx, claims, id)
}

func (s *RoleService) DeleteProducteur(ctx context.Context, claims authz.Claims, id int64) error {
	if err := s.authorize(claims, authz.CanDeleteRole(claims, domain.RoleProducteur, id), "producteur", "delete"); err != nil {
		return err
	}
	if _, err := s.roles.GetProducteur(ctx, id); err != nil {
		return translateStoreErr(err, "producteur not found")
	}
	return s.deleteProfile(ctx, domain.RoleProducteur, id)
}

// --- Fournisseur ---

func (s *RoleService) GetFournisseur(ctx context.Context, claims authz.Claims, id int64) (*Profile[*domain.Fournisseur], error) {
	if err := s.authorize(claims, authz.CanViewRole(claims, domain.RoleFournisseur, id), "fournisseur", "view"); err != nil {
		return nil, err
	}
	f, err := s.roles.GetFournisseur(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "fournisseur not found")
	}
	personne, err := s.loadPersonne(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Profile[*domain.Fournisseur]{Personne: personne, Profil: f}, nil
}

// ListFournisseurs is the public supplier directory. No authentication is
// required; the profile rows expose ratings and the trust flag only.
func (s *RoleService) ListFournisseurs(ctx context.Context) ([]*domain.Fournisseur, error) {
	list, err := s.roles.ListFournisseurs(ctx)
	if err != nil {
		return nil, translateStoreErr(err, "fournisseur not found")
	}
	return list, nil
}

func (s *RoleService) UpdateFournisseur(ctx context.Context, claims authz.Claims, id int64, patch domain.PersonnePatch, noteClient, noteEntreprise *float64) (*Profile[*domain.Fournisseur], error) {
	if err := s.authorize(claims, authz.CanUpdateRole(claims, domain.RoleFournisseur, id), "fournisseur", "update"); err != nil {
		return nil, err
	}
	f, err := s.roles.GetFournisseur(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "fournisseur not found")
	}

	// Ratings are moderation data: only managers and administrators set them.
	if (noteClient != nil || noteEntreprise != nil) &&
		!claims.Roles.HasAny(domain.RoleAdministrateur, domain.RoleGestionnaire) {
		return nil, apperr.New(apperr.Validation, "ratings may only be set by a manager or administrator")
	}

	err = s.tx.InTx(ctx, func(tx ports.DBTX) error {
		if err := s.updatePersonne(ctx, tx, id, patch); err != nil {
			return err
		}
		if noteClient != nil || noteEntreprise != nil {
			if noteClient != nil {
				f.NoteClient = noteClient
			}
			if noteEntreprise != nil {
				f.NoteEntreprise = noteEntreprise
			}
			return s.roles.WithTx(tx).UpdateFournisseur(ctx, f)
		}
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err, "fournisseur not found")
	}
	return s.GetFournisseur(ctx, claims, id)
}

func (s *RoleService) DeleteFournisseur(ctx context.Context, claims authz.Claims, id int64) error {
	if err := s.authorize(claims, authz.CanDeleteRole(claims, domain.RoleFournisseur, id), "fournisseur", "delete"); err != nil {
		return err
	}
	if _, err := s.roles.GetFournisseur(ctx, id); err != nil {
		return translateStoreErr(err, "fournisseur not found")
	}
	return s.deleteProfile(ctx, domain.RoleFournisseur, id)
}

// VerifyFournisseur marks a supplier as trusted and stamps the verifier.
// Managers and administrators may verify.
func (s *RoleService) VerifyFournisseur(ctx context.Context, claims authz.Claims, id int64) (*Profile[*domain.Fournisseur], error) {
	if err := s.authorize(claims, authz.CanVerifyFournisseur(claims), "fournisseur", "verify"); err != nil {
		return nil, err
	}
	f, err := s.roles.GetFournisseur(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "fournisseur not found")
	}
	if f.Verifie {
		return nil, apperr.New(apperr.Validation, "fournisseur is already verified")
	}

	verifiedBy := claims.SubjectID
	f.Verifie = true
	f.VerifiedBy = &verifiedBy
	if err := s.roles.UpdateFournisseur(ctx, f); err != nil {
		return nil, translateStoreErr(err, "fournisseur not found")
	}

	s.metrics.RecordFournisseurVerification("verify")
	slog.Info("fournisseur verified", "fournisseur_id", id, "verified_by", verifiedBy)
	return s.GetFournisseur(ctx, claims, id)
}

// UnverifyFournisseur revokes the trust flag. Only administrators may revoke.
func (s *RoleService) UnverifyFournisseur(ctx context.Context, claims authz.Claims, id int64) (*Profile[*domain.Fournisseur], error) {
	if err := s.authorize(claims, authz.CanUnverifyFournisseur(claims), "fournisseur", "unverify"); err != nil {
		return nil, err
	}
	f, err := s.roles.GetFournisseur(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "fournisseur not found")
	}
	if !f.Verifie {
		return nil, apperr.New(apperr.Validation, "fournisseur is not verified")
	}

	f.Verifie = false
	f.VerifiedBy = nil
	if err := s.roles.UpdateFournisseur(ctx, f); err != nil {
		return nil, translateStoreErr(err, "fournisseur not found")
	}

	s.metrics.RecordFournisseurVerification("unverify")
	slog.Info("fournisseur trust revoked", "fournisseur_id", id, "revoked_by", claims.SubjectID)
	return s.GetFournisseur(ctx, claims, id)
}

// --- Livreur ---

// CreateLivreur provisions a delivery-person account.
func (s *RoleService) CreateLivreur(ctx context.Context, claims authz.Claims, person CreatePersonInput) (*Profile[*domain.Livreur], error) {
	if err := s.authorize(claims, authz.CanCreateRole(claims, domain.RoleLivreur), "livreur", "create"); err != nil {
		return nil, err
	}

	var out *Profile[*domain.Livreur]
	err := s.tx.InTx(ctx, func(tx ports.DBTX) error {
		personne, err := s.createPersonne(ctx, tx, person)
		if err != nil {
			return err
		}
		createdBy := claims.SubjectID
		l, err := s.roles.WithTx(tx).CreateLivreur(ctx, &domain.Livreur{
			ID:        personne.ID,
			CreatedBy: &createdBy,
		})
		if err != nil {
			return err
		}
		out = &Profile[*domain.Livreur]{Personne: personne, Profil: l}
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err, "livreur not found")
	}

	s.metrics.RecordRoleProfileCreated(domain.RoleLivreur.String())
	slog.Info("livreur created", "personne_id", out.Personne.ID, "created_by", claims.SubjectID)
	return out, nil
}

func (s *RoleService) GetLivreur(ctx context.Context, claims authz.Claims, id int64) (*Profile[*domain.Livreur], error) {
	if err := s.authorize(claims, authz.CanViewRole(claims, domain.RoleLivreur, id), "livreur", "view"); err != nil {
		return nil, err
	}
	l, err := s.roles.GetLivreur(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "livreur not found")
	}
	personne, err := s.loadPersonne(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Profile[*domain.Livreur]{Personne: personne, Profil: l}, nil
}

func (s *RoleService) ListLivreurs(ctx context.Context, claims authz.Claims) ([]*domain.Livreur, error) {
	if err := s.authorize(claims, authz.CanListRole(claims, domain.RoleLivreur), "livreur", "list"); err != nil {
		return nil, err
	}
	list, err := s.roles.ListLivreurs(ctx)
	if err != nil {
		return nil, translateStoreErr(err, "livreur not found")
	}
	return list, nil
}

func (s *RoleService) UpdateLivreur(ctx context.Context, claims authz.Claims, id int64, patch domain.PersonnePatch) (*Profile[*domain.Livreur], error) {
	if err := s.authorize(claims, authz.CanUpdateRole(claims, domain.RoleLivreur, id), "livreur", "update"); err != nil {
		return nil, err
	}
	if _, err := s.roles.GetLivreur(ctx, id); err != nil {
		return nil, translateStoreErr(err, "livreur not found")
	}

	err := s.tx.InTx(ctx, func(tx ports.DBTX) error {
		return s.updatePersonne(ctx, tx, id, patch)
	})
	if err != nil {
		return nil, translateStoreErr(err, "livreur not found")
	}
	return s.GetLivreur(ctx, claims, id)
}

func (s *RoleService) DeleteLivreur(ctx context.Context, claims authz.Claims, id int64) error {
	if err := s.authorize(claims, authz.CanDeleteRole(claims, domain.RoleLivreur, id), "livreur", "delete"); err != nil {
		return err
	}
	if _, err := s.roles.GetLivreur(ctx, id); err != nil {
		return translateStoreErr(err, "livreur not found")
	}
	return s.deleteProfile(ctx, domain.RoleLivreur, id)
}

// --- Client ---

func (s *RoleService) GetClient(ctx context.Context, claims authz.Claims, id int64) (*Profile[*domain.Client], error) {
	if err := s.authorize(claims, authz.CanViewRole(claims, domain.RoleClient, id), "client", "view"); err != nil {
		return nil, err
	}
	c, err := s.roles.GetClient(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "client not found")
	}
	personne, err := s.loadPersonne(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Profile[*domain.Client]{Personne: personne, Profil: c}, nil
}

func (s *RoleService) ListClients(ctx context.Context, claims authz.Claims) ([]*domain.Client, error) {
	if err := s.authorize(claims, authz.CanListRole(claims, domain.RoleClient), "client", "list"); err != nil {
		return nil, err
	}
	list, err := s.roles.ListClients(ctx)
	if err != nil {
		return nil, translateStoreErr(err, "client not found")
	}
	return list, nil
}

func (s *RoleService) UpdateClient(ctx context.Context, claims authz.Claims, id int64, patch domain.PersonnePatch, adresseLivraison *string) (*Profile[*domain.Client], error) {
	if err := s.authorize(claims, authz.CanUpdateRole(claims, domain.RoleClient, id), "client", "update"); err != nil {
		return nil, err
	}
	c, err := s.roles.GetClient(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "client not found")
	}

	err = s.tx.InTx(ctx, func(tx ports.DBTX) error {
		if err := s.updatePersonne(ctx, tx, id, patch); err != nil {
			return err
		}
		if adresseLivraison != nil {
			c.AdresseLivraison = adresseLivraison
			return s.roles.WithTx(tx).UpdateClient(ctx, c)
		}
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err, "client not found")
	}
	return s.GetClient(ctx, claims, id)
}

func (s *RoleService) DeleteClient(ctx context.Context, claims authz.Claims, id int64) error {
	if err := s.authorize(claims, authz.CanDeleteRole(claims, domain.RoleClient, id), "client", "delete"); err != nil {
		return err
	}
	if _, err := s.roles.GetClient(ctx, id); err != nil {
		return translateStoreErr(err, "client not found")
	}
	return s.deleteProfile(ctx, domain.RoleClient, id)
}

// --- Entreprise ---

func (s *RoleService) GetEntreprise(ctx context.Context, claims authz.Claims, id int64) (*Profile[*domain.Entreprise], error) {
	if err := s.authorize(claims, authz.CanViewRole(claims, domain.RoleEntreprise, id), "entreprise", "view"); err != nil {
		return nil, err
	}
	e, err := s.roles.GetEntreprise(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "entreprise not found")
	}
	personne, err := s.loadPersonne(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Profile[*domain.Entreprise]{Personne: personne, Profil: e}, nil
}

func (s *RoleService) ListEntreprises(ctx context.Context, claims authz.Claims) ([]*domain.Entreprise, error) {
	if err := s.authorize(claims, authz.CanListRole(claims, domain.RoleEntreprise), "entreprise", "list"); err != nil {
		return nil, err
	}
	list, err := s.roles.ListEntreprises(ctx)
	if err != nil {
		return nil, translateStoreErr(err, "entreprise not found")
	}
	return list, nil
}

func (s *RoleService) UpdateEntreprise(ctx context.Context, claims authz.Claims, id int64, patch domain.PersonnePatch, secteurActivite *string) (*Profile[*domain.Entreprise], error) {
	if err := s.authorize(claims, authz.CanUpdateRole(claims, domain.RoleEntreprise, id), "entreprise", "update"); err != nil {
		return nil, err
	}
	e, err := s.roles.GetEntreprise(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "entreprise not found")
	}

	err = s.tx.InTx(ctx, func(tx ports.DBTX) error {
		if err := s.updatePersonne(ctx, tx, id, patch); err != nil {
			return err
		}
		if secteurActivite != nil {
			e.SecteurActivite = secteurActivite
			return s.roles.WithTx(tx).UpdateEntreprise(ctx, e)
		}
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err, "entreprise not found")
	}
	return s.GetEntreprise(ctx, claims, id)
}

func (s *RoleService) DeleteEntreprise(ctx context.Context, claims authz.Claims, id int64) error {
	if err := s.authorize(claims, authz.CanDeleteRole(claims, domain.RoleEntreprise, id), "entreprise", "delete"); err != nil {
		return err
	}
	if _, err := s.roles.GetEntreprise(ctx, id); err != nil {
		return translateStoreErr(err, "entreprise not found")
	}
	return s.deleteProfile(ctx, domain.RoleEntreprise, id)
}
