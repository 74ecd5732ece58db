package service

import (
	"context"
	"log/slog"

	"github.com/Melvins45/maferme237/internal/apperr"
	"github.com/Melvins45/maferme237/internal/authz"
	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/ports"
)

// CatalogueMetricsRecorder records catalog authorization denials.
type CatalogueMetricsRecorder interface {
	RecordAuthzDenial(resource, action string)
}

// CatalogueService manages product categories and characteristic definitions.
// Reads are public; writes are reserved to the producing roles, with creator
// attribution, and deletion to gestionnaires.
type CatalogueService struct {
	catalogue ports.CatalogueRepository
	metrics   CatalogueMetricsRecorder
}

// NewCatalogueService creates the catalog service / Crée le service catalogue
func NewCatalogueService(catalogue ports.CatalogueRepository, metrics CatalogueMetricsRecorder) *CatalogueService {
	return &CatalogueService{catalogue: catalogue, metrics: metrics}
}

func (s *CatalogueService) deny(claims authz.Claims, resource, action string) error {
	if claims.SubjectID == 0 {
		return apperr.New(apperr.Unauthenticated, "authentication required")
	}
	s.metrics.RecordAuthzDenial(resource, action)
	return apperr.New(apperr.Forbidden, "operation not permitted")
}

// creatorRole picks which producing role the caller acts under, strongest
// first, mirroring product ownership priority.
func creatorRole(claims authz.Claims) domain.RoleName {
	switch {
	case claims.Roles.Has(domain.RoleGestionnaire):
		return domain.RoleGestionnaire
	case claims.Roles.Has(domain.RoleProducteur):
		return domain.RoleProducteur
	default:
		return domain.RoleFournisseur
	}
}

// isCreator reports whether the caller created the record under any of its
// producing roles.
func isCreator(claims authz.Claims, of interface {
	CreatorOf(role domain.RoleName, id int64) bool
}) bool {
	for _, role := range []domain.RoleName{domain.RoleGestionnaire, domain.RoleProducteur, domain.RoleFournisseur} {
		if claims.Roles.Has(role) && of.CreatorOf(role, claims.SubjectID) {
			return true
		}
	}
	return false
}

// --- Catégories ---

// CategorieInput carries the writable category fields.
type CategorieInput struct {
	Nom         string
	Description *string
}

// CreateCategorie inserts a category attributed to the caller.
func (s *CatalogueService) CreateCategorie(ctx context.Context, claims authz.Claims, in CategorieInput) (*domain.CategorieProduit, error) {
	if !authz.CanCreateCatalogue(claims) {
		return nil, s.deny(claims, "categorie", "create")
	}
	if in.Nom == "" {
		return nil, apperr.New(apperr.Validation, "nomCategorieProduit is required")
	}

	categorie := &domain.CategorieProduit{Nom: in.Nom, Description: in.Description}
	owner := claims.SubjectID
	switch creatorRole(claims) {
	case domain.RoleGestionnaire:
		categorie.IDGestionnaire = &owner
	case domain.RoleProducteur:
		categorie.IDProducteur = &owner
	default:
		categorie.IDFournisseur = &owner
	}

	created, err := s.catalogue.CreateCategorie(ctx, categorie)
	if err != nil {
		return nil, translateStoreErr(err, "categorie not found")
	}
	slog.Info("categorie created", "categorie_id", created.ID, "created_by", owner)
	return created, nil
}

// GetCategorie returns one category. Public.
func (s *CatalogueService) GetCategorie(ctx context.Context, id int64) (*domain.CategorieProduit, error) {
	c, err := s.catalogue.GetCategorie(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "categorie not found")
	}
	return c, nil
}

// ListCategories returns every category. Public.
func (s *CatalogueService) ListCategories(ctx context.Context) ([]*domain.CategorieProduit, error) {
	list, err := s.catalogue.ListCategories(ctx)
	if err != nil {
		return nil, translateStoreErr(err, "categorie not found")
	}
	return list, nil
}

// UpdateCategorie edits a category. Gestionnaires edit any category, other
// producing roles edit only the ones they created.
func (s *CatalogueService) UpdateCategorie(ctx context.Context, claims authz.Claims, id int64, in CategorieInput) (*domain.CategorieProduit, error) {
	if !authz.CanCreateCatalogue(claims) {
		return nil, s.deny(claims, "categorie", "update")
	}
	categorie, err := s.catalogue.GetCategorie(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "categorie not found")
	}
	if !claims.Roles.Has(domain.RoleGestionnaire) && !isCreator(claims, categorie) {
		s.metrics.RecordAuthzDenial("categorie", "update")
		return nil, apperr.New(apperr.Forbidden, "operation not permitted")
	}

	if in.Nom != "" {
		categorie.Nom = in.Nom
	}
	if in.Description != nil {
		categorie.Description = in.Description
	}
	if err := s.catalogue.UpdateCategorie(ctx, categorie); err != nil {
		return nil, translateStoreErr(err, "categorie not found")
	}
	return s.GetCategorie(ctx, id)
}

// DeleteCategorie removes a category. Gestionnaires only.
func (s *CatalogueService) DeleteCategorie(ctx context.Context, claims authz.Claims, id int64) error {
	if !authz.CanDeleteCatalogue(claims) {
		return s.deny(claims, "categorie", "delete")
	}
	if _, err := s.catalogue.GetCategorie(ctx, id); err != nil {
		return translateStoreErr(err, "categorie not found")
	}
	if err := s.catalogue.DeleteCategorie(ctx, id); err != nil {
		return translateStoreErr(err, "categorie not found")
	}
	slog.Info("categorie deleted", "categorie_id", id, "deleted_by", claims.SubjectID)
	return nil
}

// --- Caractéristiques ---

// CaracteristiqueInput carries the writable characteristic definition fields.
type CaracteristiqueInput struct {
	Nom        string
	TypeValeur *string
	Unite      *string
}

// CreateCaracteristique inserts a characteristic definition attributed to the
// caller. Names are unique across the catalog.
func (s *CatalogueService) CreateCaracteristique(ctx context.Context, claims authz.Claims, in CaracteristiqueInput) (*domain.Caracteristique, error) {
	if !authz.CanCreateCatalogue(claims) {
		return nil, s.deny(claims, "caracteristique", "create")
	}
	if in.Nom == "" {
		return nil, apperr.New(apperr.Validation, "nomCaracteristique is required")
	}

	def := &domain.Caracteristique{Nom: in.Nom, Unite: in.Unite}
	if in.TypeValeur != nil {
		def.TypeValeur = *in.TypeValeur
	}
	owner := claims.SubjectID
	switch creatorRole(claims) {
	case domain.RoleGestionnaire:
		def.IDGestionnaire = &owner
	case domain.RoleProducteur:
		def.IDProducteur = &owner
	default:
		def.IDFournisseur = &owner
	}

	created, err := s.catalogue.CreateCaracteristique(ctx, def)
	if err != nil {
		return nil, translateStoreErr(err, "caracteristique not found")
	}
	slog.Info("caracteristique created", "caracteristique_id", created.ID, "created_by", owner)
	return created, nil
}

// GetCaracteristique returns one characteristic definition. Public.
func (s *CatalogueService) GetCaracteristique(ctx context.Context, id int64) (*domain.Caracteristique, error) {
	c, err := s.catalogue.GetCaracteristique(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "caracteristique not found")
	}
	return c, nil
}

// ListCaracteristiques returns every characteristic definition. Public.
func (s *CatalogueService) ListCaracteristiques(ctx context.Context) ([]*domain.Caracteristique, error) {
	list, err := s.catalogue.ListCaracteristiques(ctx)
	if err != nil {
		return nil, translateStoreErr(err, "caracteristique not found")
	}
	return list, nil
}

// UpdateCaracteristique edits a definition. Gestionnaires edit any, other
// producing roles edit only their own.
func (s *CatalogueService) UpdateCaracteristique(ctx context.Context, claims authz.Claims, id int64, in CaracteristiqueInput) (*domain.Caracteristique, error) {
	if !authz.CanCreateCatalogue(claims) {
		return nil, s.deny(claims, "caracteristique", "update")
	}
	def, err := s.catalogue.GetCaracteristique(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "caracteristique not found")
	}
	if !claims.Roles.Has(domain.RoleGestionnaire) && !isCreator(claims, def) {
		s.metrics.RecordAuthzDenial("caracteristique", "update")
		return nil, apperr.New(apperr.Forbidden, "operation not permitted")
	}

	if in.Nom != "" {
		def.Nom = in.Nom
	}
	if in.TypeValeur != nil {
		def.TypeValeur = *in.TypeValeur
	}
	if in.Unite != nil {
		def.Unite = in.Unite
	}
	if err := s.catalogue.UpdateCaracteristique(ctx, def); err != nil {
		return nil, translateStoreErr(err, "caracteristique not found")
	}
	return s.GetCaracteristique(ctx, id)
}

// DeleteCaracteristique removes a definition. Gestionnaires only.
func (s *CatalogueService) DeleteCaracteristique(ctx context.Context, claims authz.Claims, id int64) error {
	if !authz.CanDeleteCatalogue(claims) {
		return s.deny(claims, "caracteristique", "delete")
	}
	if _, err := s.catalogue.GetCaracteristique(ctx, id); err != nil {
		return translateStoreErr(err, "caracteristique not found")
	}
	if err := s.catalogue.DeleteCaracteristique(ctx, id); err != nil {
		return translateStoreErr(err, "caracteristique not found")
	}
	slog.Info("caracteristique deleted", "caracteristique_id", id, "deleted_by", claims.SubjectID)
	return nil
}
