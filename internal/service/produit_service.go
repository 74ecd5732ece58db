package service

import (
	"context"
	"log/slog"

	"github.com/Melvins45/maferme237/internal/apperr"
	"github.com/Melvins45/maferme237/internal/authz"
	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/ports"
)

// ProduitMetricsRecorder records product lifecycle metrics / Enregistre les métriques du cycle de vie des produits
type ProduitMetricsRecorder interface {
	RecordProduitTransition(transition string)
	RecordAuthzDenial(resource, action string)
}

// ProduitService manages products: creation with role-dependent initial
// state, field-masked updates, the verification state machine, images and
// characteristic values. Reads are public.
type ProduitService struct {
	produits  ports.ProduitRepository
	catalogue ports.CatalogueRepository
	tx        ports.TxRunner
	metrics   ProduitMetricsRecorder
}

// NewProduitService creates the product lifecycle service / Crée le service du cycle de vie des produits
func NewProduitService(
	produits ports.ProduitRepository,
	catalogue ports.CatalogueRepository,
	tx ports.TxRunner,
	metrics ProduitMetricsRecorder,
) *ProduitService {
	return &ProduitService{
		produits:  produits,
		catalogue: catalogue,
		tx:        tx,
		metrics:   metrics,
	}
}

// ImageInput is one image attached at product creation. The first image of
// the batch becomes the main image.
type ImageInput struct {
	Blob     []byte
	TexteAlt *string
}

// CaracteristiqueValeur attaches a characteristic value to a product, either
// by id of an existing definition or by name. Unknown names create the
// definition on the fly, attributed to the caller; a dangling id is an error.
type CaracteristiqueValeur struct {
	IDCaracteristique *int64
	Nom               string
	TypeValeur        *string
	Unite             *string
	Valeur            string
}

// ProduitInput carries the writable fields at creation time.
type ProduitInput struct {
	Nom                       string
	Description               *string
	PrixFournisseurClient     *float64
	PrixFournisseurEntreprise *float64
	PrixFournisseur           *float64
	ComissionClient           *float64
	ComissionEntreprise       *float64
	Stock                     *int
	StockFournisseur          *int
	QuantiteMinClient         *int
	QuantiteMinEntreprise     *int
	IDCategorie               int64
	Images                    []ImageInput
	Caracteristiques          []CaracteristiqueValeur
}

// ProduitPatch carries the optional fields of an update. Verification and
// production statuses are never patched here; they move through their
// dedicated transitions.
type ProduitPatch struct {
	Nom                       *string
	Description               *string
	PrixFournisseurClient     *float64
	PrixFournisseurEntreprise *float64
	PrixFournisseur           *float64
	ComissionClient           *float64
	ComissionEntreprise       *float64
	Stock                     *int
	StockFournisseur          *int
	QuantiteMinClient         *int
	QuantiteMinEntreprise     *int
	IDCategorie               *int64
}

// ProduitDetail is a product with its attachments / Un produit avec ses pièces jointes
type ProduitDetail struct {
	Produit          *domain.Produit
	Images           []*domain.ProduitImage
	Caracteristiques []*domain.ProduitCaracteristique
}

func (s *ProduitService) deny(claims authz.Claims, resource, action string) error {
	if claims.SubjectID == 0 {
		return apperr.New(apperr.Unauthenticated, "authentication required")
	}
	s.metrics.RecordAuthzDenial(resource, action)
	return apperr.New(apperr.Forbidden, "operation not permitted")
}

// Create inserts a product. The creator's strongest producing role decides
// the initial statuses and the ownership reference; the commission fields are
// reserved to gestionnaires. Initial stock is honored for every producing
// role; the gestionnaire-only stock rule applies to updates, not creation.
func (s *ProduitService) Create(ctx context.Context, claims authz.Claims, in ProduitInput) (*ProduitDetail, error) {
	if !authz.CanCreateProduit(claims) {
		return nil, s.deny(claims, "produit", "create")
	}
	if in.Nom == "" {
		return nil, apperr.New(apperr.Validation, "nomProduit is required")
	}
	if in.IDCategorie == 0 {
		return nil, apperr.New(apperr.Validation, "idCategorieProduit is required")
	}
	if _, err := s.catalogue.GetCategorie(ctx, in.IDCategorie); err != nil {
		return nil, translateStoreErr(err, "categorie not found")
	}

	statutVerif, statutProd, ownerRole := authz.InitialProduitState(claims)

	produit := &domain.Produit{
		Nom:                       in.Nom,
		Description:               in.Description,
		PrixFournisseurClient:     in.PrixFournisseurClient,
		PrixFournisseurEntreprise: in.PrixFournisseurEntreprise,
		PrixFournisseur:           in.PrixFournisseur,
		QuantiteMinClient:         in.QuantiteMinClient,
		QuantiteMinEntreprise:     in.QuantiteMinEntreprise,
		StatutVerification:        statutVerif,
		StatutProduction:          statutProd,
		IDCategorie:               in.IDCategorie,
	}
	if in.Stock != nil {
		produit.Stock = *in.Stock
	}
	if in.StockFournisseur != nil {
		produit.StockFournisseur = *in.StockFournisseur
	}

	switch ownerRole {
	case domain.RoleGestionnaire:
		owner := claims.SubjectID
		produit.IDGestionnaire = &owner
		produit.ComissionClient = in.ComissionClient
		produit.ComissionEntreprise = in.ComissionEntreprise
	case domain.RoleFournisseur:
		owner := claims.SubjectID
		produit.IDFournisseur = &owner
		fallthrough
	default:
		// Commissions are platform data; rejecting them beats dropping them
		// because the caller meant something by sending them.
		if in.ComissionClient != nil {
			return nil, apperr.Newf(apperr.Validation, "%s may only be set by a gestionnaire", authz.FieldComissionClient)
		}
		if in.ComissionEntreprise != nil {
			return nil, apperr.Newf(apperr.Validation, "%s may only be set by a gestionnaire", authz.FieldComissionEntreprise)
		}
	}

	var out *ProduitDetail
	err := s.tx.InTx(ctx, func(tx ports.DBTX) error {
		repo := s.produits.WithTx(tx)
		created, err := repo.CreateProduit(ctx, produit)
		if err != nil {
			return err
		}
		detail := &ProduitDetail{Produit: created}

		for i, img := range in.Images {
			stored, err := repo.CreateImage(ctx, &domain.ProduitImage{
				IDProduit:     created.ID,
				Blob:          img.Blob,
				TexteAlt:      img.TexteAlt,
				EstPrincipale: i == 0,
			})
			if err != nil {
				return err
			}
			detail.Images = append(detail.Images, stored)
		}

		for _, cv := range in.Caracteristiques {
			link, err := s.attachCaracteristique(ctx, tx, claims, ownerRole, created.ID, cv)
			if err != nil {
				return err
			}
			detail.Caracteristiques = append(detail.Caracteristiques, link)
		}

		out = detail
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err, "produit not found")
	}

	slog.Info("produit created",
		"produit_id", out.Produit.ID,
		"creator_role", ownerRole,
		"statut_verification", statutVerif,
		"statut_production", statutProd,
	)
	return out, nil
}

// attachCaracteristique resolves an existing characteristic definition by id,
// or reuses one by name, or creates one attributed to the caller, then links
// it with a value.
func (s *ProduitService) attachCaracteristique(ctx context.Context, tx ports.DBTX, claims authz.Claims, role domain.RoleName, produitID int64, cv CaracteristiqueValeur) (*domain.ProduitCaracteristique, error) {
	if cv.Valeur == "" {
		return nil, apperr.New(apperr.Validation, "caracteristique requires valeur")
	}
	if cv.IDCaracteristique == nil && cv.Nom == "" {
		return nil, apperr.New(apperr.Validation, "caracteristique requires idCaracteristique or nom")
	}

	catalogue := s.catalogue.WithTx(tx)
	var def *domain.Caracteristique
	var err error
	if cv.IDCaracteristique != nil {
		def, err = catalogue.GetCaracteristique(ctx, *cv.IDCaracteristique)
		if err != nil {
			return nil, translateStoreErr(err, "caracteristique not found")
		}
	} else if def, err = catalogue.GetCaracteristiqueByNom(ctx, cv.Nom); err != nil {
		if kind := apperr.KindOf(translateStoreErr(err, "")); kind != apperr.NotFound {
			return nil, err
		}
		def = &domain.Caracteristique{Nom: cv.Nom, Unite: cv.Unite}
		if cv.TypeValeur != nil {
			def.TypeValeur = *cv.TypeValeur
		}
		owner := claims.SubjectID
		switch role {
		case domain.RoleGestionnaire:
			def.IDGestionnaire = &owner
		case domain.RoleFournisseur:
			def.IDFournisseur = &owner
		case domain.RoleProducteur:
			def.IDProducteur = &owner
		}
		if def, err = catalogue.CreateCaracteristique(ctx, def); err != nil {
			return nil, err
		}
	}

	link := &domain.ProduitCaracteristique{
		IDProduit:         produitID,
		IDCaracteristique: def.ID,
		Valeur:            cv.Valeur,
	}
	if err := s.produits.WithTx(tx).SetCaracteristique(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Get returns one product with its images and characteristic values. Public.
func (s *ProduitService) Get(ctx context.Context, id int64) (*ProduitDetail, error) {
	produit, err := s.produits.GetProduit(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "produit not found")
	}
	images, err := s.produits.ListImages(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "produit not found")
	}
	caracs, err := s.produits.ListCaracteristiques(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "produit not found")
	}
	return &ProduitDetail{Produit: produit, Images: images, Caracteristiques: caracs}, nil
}

// List returns all products, newest first. Public.
func (s *ProduitService) List(ctx context.Context) ([]*domain.Produit, error) {
	list, err := s.produits.ListProduits(ctx)
	if err != nil {
		return nil, translateStoreErr(err, "produit not found")
	}
	return list, nil
}

// loadMutable checks the role gate before touching the store, then loads the
// product and applies the ownership rule. Authentication and role errors win
// over NotFound so callers cannot fish for record existence.
func (s *ProduitService) loadMutable(ctx context.Context, claims authz.Claims, id int64, action string) (*domain.Produit, error) {
	if !claims.Roles.HasAny(domain.RoleGestionnaire, domain.RoleFournisseur) {
		return nil, s.deny(claims, "produit", action)
	}
	produit, err := s.produits.GetProduit(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "produit not found")
	}
	if !authz.CanMutateProduit(claims, produit) {
		s.metrics.RecordAuthzDenial("produit", action)
		return nil, apperr.New(apperr.Forbidden, "operation not permitted")
	}
	return produit, nil
}

// Update patches a product. Gestionnaires write any field; the owning
// fournisseur writes everything except platform stock (dropped silently) and
// the commissions (rejected). Statuses never move through Update.
func (s *ProduitService) Update(ctx context.Context, claims authz.Claims, id int64, patch ProduitPatch) (*ProduitDetail, error) {
	produit, err := s.loadMutable(ctx, claims, id, "update")
	if err != nil {
		return nil, err
	}

	if !authz.CanMutateProduitField(claims, produit, authz.FieldComissionClient) {
		if patch.ComissionClient != nil {
			return nil, apperr.Newf(apperr.Validation, "%s may only be set by a gestionnaire", authz.FieldComissionClient)
		}
		if patch.ComissionEntreprise != nil {
			return nil, apperr.Newf(apperr.Validation, "%s may only be set by a gestionnaire", authz.FieldComissionEntreprise)
		}
	}
	if !authz.CanMutateProduitField(claims, produit, authz.FieldStock) {
		patch.Stock = nil
	}

	if patch.Nom != nil {
		if *patch.Nom == "" {
			return nil, apperr.New(apperr.Validation, "nomProduit cannot be empty")
		}
		produit.Nom = *patch.Nom
	}
	if patch.Description != nil {
		produit.Description = patch.Description
	}
	if patch.PrixFournisseurClient != nil {
		produit.PrixFournisseurClient = patch.PrixFournisseurClient
	}
	if patch.PrixFournisseurEntreprise != nil {
		produit.PrixFournisseurEntreprise = patch.PrixFournisseurEntreprise
	}
	if patch.PrixFournisseur != nil {
		produit.PrixFournisseur = patch.PrixFournisseur
	}
	if patch.ComissionClient != nil {
		produit.ComissionClient = patch.ComissionClient
	}
	if patch.ComissionEntreprise != nil {
		produit.ComissionEntreprise = patch.ComissionEntreprise
	}
	if patch.Stock != nil {
		produit.Stock = *patch.Stock
	}
	if patch.StockFournisseur != nil {
		produit.StockFournisseur = *patch.StockFournisseur
	}
	if patch.QuantiteMinClient != nil {
		produit.QuantiteMinClient = patch.QuantiteMinClient
	}
	if patch.QuantiteMinEntreprise != nil {
		produit.QuantiteMinEntreprise = patch.QuantiteMinEntreprise
	}
	if patch.IDCategorie != nil {
		if _, err := s.catalogue.GetCategorie(ctx, *patch.IDCategorie); err != nil {
			return nil, translateStoreErr(err, "categorie not found")
		}
		produit.IDCategorie = *patch.IDCategorie
	}

	if err := s.produits.UpdateProduit(ctx, produit); err != nil {
		return nil, translateStoreErr(err, "produit not found")
	}
	return s.Get(ctx, id)
}

// Delete removes a product and its attachments. Gestionnaires delete any
// product, a fournisseur deletes its own.
func (s *ProduitService) Delete(ctx context.Context, claims authz.Claims, id int64) error {
	if _, err := s.loadMutable(ctx, claims, id, "delete"); err != nil {
		return err
	}
	if err := s.produits.DeleteProduit(ctx, id); err != nil {
		return translateStoreErr(err, "produit not found")
	}
	slog.Info("produit deleted", "produit_id", id, "deleted_by", claims.SubjectID)
	return nil
}

// Verify moves a product from waiting_verification to verified. Only
// gestionnaires verify, and only from the waiting state.
func (s *ProduitService) Verify(ctx context.Context, claims authz.Claims, id int64) (*ProduitDetail, error) {
	return s.transitionVerification(ctx, claims, id, domain.VerificationEnAttente, domain.VerificationValidee, "verify")
}

// Unverify moves a verified product back to waiting_verification.
func (s *ProduitService) Unverify(ctx context.Context, claims authz.Claims, id int64) (*ProduitDetail, error) {
	return s.transitionVerification(ctx, claims, id, domain.VerificationValidee, domain.VerificationEnAttente, "unverify")
}

func (s *ProduitService) transitionVerification(ctx context.Context, claims authz.Claims, id int64, from, to domain.StatutVerification, transition string) (*ProduitDetail, error) {
	if !authz.CanVerifyProduit(claims) {
		return nil, s.deny(claims, "produit", transition)
	}
	produit, err := s.produits.GetProduit(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "produit not found")
	}
	if produit.StatutVerification != from {
		return nil, apperr.Newf(apperr.Validation, "produit is not in %s state", from)
	}

	produit.StatutVerification = to
	if err := s.produits.UpdateProduit(ctx, produit); err != nil {
		return nil, translateStoreErr(err, "produit not found")
	}

	s.metrics.RecordProduitTransition(transition)
	slog.Info("produit verification transition", "produit_id", id, "transition", transition, "by", claims.SubjectID)
	return s.Get(ctx, id)
}

// FinishProduction marks a started product as finished. Reserved to
// gestionnaires; producer-made products are the only ones that start in the
// started state.
func (s *ProduitService) FinishProduction(ctx context.Context, claims authz.Claims, id int64) (*ProduitDetail, error) {
	if !authz.CanVerifyProduit(claims) {
		return nil, s.deny(claims, "produit", "finish_production")
	}
	produit, err := s.produits.GetProduit(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "produit not found")
	}
	if produit.StatutProduction != domain.ProductionEnCours {
		return nil, apperr.New(apperr.Validation, "produit production is already finished")
	}

	produit.StatutProduction = domain.ProductionTerminee
	if err := s.produits.UpdateProduit(ctx, produit); err != nil {
		return nil, translateStoreErr(err, "produit not found")
	}

	s.metrics.RecordProduitTransition("finish_production")
	slog.Info("produit production finished", "produit_id", id, "by", claims.SubjectID)
	return s.Get(ctx, id)
}

// AddImage attaches an image. The first image of a product becomes the main one.
func (s *ProduitService) AddImage(ctx context.Context, claims authz.Claims, produitID int64, img ImageInput) (*domain.ProduitImage, error) {
	if _, err := s.loadMutable(ctx, claims, produitID, "add_image"); err != nil {
		return nil, err
	}
	existing, err := s.produits.ListImages(ctx, produitID)
	if err != nil {
		return nil, translateStoreErr(err, "produit not found")
	}
	stored, err := s.produits.CreateImage(ctx, &domain.ProduitImage{
		IDProduit:     produitID,
		Blob:          img.Blob,
		TexteAlt:      img.TexteAlt,
		EstPrincipale: len(existing) == 0,
	})
	if err != nil {
		return nil, translateStoreErr(err, "produit not found")
	}
	return stored, nil
}

// RemoveImage detaches one image from a product.
func (s *ProduitService) RemoveImage(ctx context.Context, claims authz.Claims, produitID, imageID int64) error {
	if _, err := s.loadMutable(ctx, claims, produitID, "remove_image"); err != nil {
		return err
	}
	return translateStoreErr(s.produits.DeleteImage(ctx, imageID), "image not found")
}

// SetCaracteristique attaches or replaces one characteristic value.
func (s *ProduitService) SetCaracteristique(ctx context.Context, claims authz.Claims, produitID int64, cv CaracteristiqueValeur) (*domain.ProduitCaracteristique, error) {
	if _, err := s.loadMutable(ctx, claims, produitID, "set_caracteristique"); err != nil {
		return nil, err
	}
	_, _, role := authz.InitialProduitState(claims)

	var out *domain.ProduitCaracteristique
	err := s.tx.InTx(ctx, func(tx ports.DBTX) error {
		link, err := s.attachCaracteristique(ctx, tx, claims, role, produitID, cv)
		if err != nil {
			return err
		}
		out = link
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err, "produit not found")
	}
	return out, nil
}

// UnsetCaracteristique detaches one characteristic value.
func (s *ProduitService) UnsetCaracteristique(ctx context.Context, claims authz.Claims, produitID, caracteristiqueID int64) error {
	if _, err := s.loadMutable(ctx, claims, produitID, "unset_caracteristique"); err != nil {
		return err
	}
	return translateStoreErr(s.produits.UnsetCaracteristique(ctx, produitID, caracteristiqueID), "caracteristique not found")
}
