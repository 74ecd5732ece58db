package service

import (
	"context"
	"testing"

	"github.com/Melvins45/maferme237/internal/apperr"
	"github.com/Melvins45/maferme237/internal/authz"
	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type produitFixture struct {
	svc       *ProduitService
	produits  *mocks.MockProduitRepository
	catalogue *mocks.MockCatalogueRepository
	metrics   *mocks.MockMetrics
}

func newProduitFixture() *produitFixture {
	produits := mocks.NewMockProduitRepository()
	catalogue := mocks.NewMockCatalogueRepository()
	catalogue.Categories[1] = &domain.CategorieProduit{ID: 1, Nom: "Légumes"}
	metrics := mocks.NewMockMetrics()
	svc := NewProduitService(produits, catalogue, mocks.NewMockTxRunner(), metrics)
	return &produitFixture{svc: svc, produits: produits, catalogue: catalogue, metrics: metrics}
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func int64Ptr(i int64) *int64     { return &i }
func strPtr(s string) *string     { return &s }

func TestProduitService_Create_InitialStateByRole(t *testing.T) {
	tests := []struct {
		name      string
		claims    authz.Claims
		wantVerif domain.StatutVerification
		wantProd  domain.StatutProduction
		wantOwner func(t *testing.T, p *domain.Produit)
	}{
		{
			name:      "gestionnaire creates verified finished",
			claims:    claimsFor(10, domain.RoleGestionnaire),
			wantVerif: domain.VerificationValidee,
			wantProd:  domain.ProductionTerminee,
			wantOwner: func(t *testing.T, p *domain.Produit) {
				require.NotNil(t, p.IDGestionnaire)
				assert.Equal(t, int64(10), *p.IDGestionnaire)
				assert.Nil(t, p.IDFournisseur)
			},
		},
		{
			name:      "fournisseur creates waiting finished",
			claims:    claimsFor(20, domain.RoleFournisseur),
			wantVerif: domain.VerificationEnAttente,
			wantProd:  domain.ProductionTerminee,
			wantOwner: func(t *testing.T, p *domain.Produit) {
				require.NotNil(t, p.IDFournisseur)
				assert.Equal(t, int64(20), *p.IDFournisseur)
				assert.Nil(t, p.IDGestionnaire)
			},
		},
		{
			name:      "producteur creates waiting started without owner",
			claims:    claimsFor(30, domain.RoleProducteur),
			wantVerif: domain.VerificationEnAttente,
			wantProd:  domain.ProductionEnCours,
			wantOwner: func(t *testing.T, p *domain.Produit) {
				assert.Nil(t, p.IDFournisseur)
				assert.Nil(t, p.IDGestionnaire)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProduitFixture()
			detail, err := f.svc.Create(context.Background(), tt.claims, ProduitInput{
				Nom:         "Tomates",
				IDCategorie: 1,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantVerif, detail.Produit.StatutVerification)
			assert.Equal(t, tt.wantProd, detail.Produit.StatutProduction)
			tt.wantOwner(t, detail.Produit)
		})
	}
}

func TestProduitService_Create_Denied(t *testing.T) {
	f := newProduitFixture()

	_, err := f.svc.Create(context.Background(), authz.Claims{}, ProduitInput{Nom: "X", IDCategorie: 1})
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))

	_, err = f.svc.Create(context.Background(), claimsFor(5, domain.RoleClient), ProduitInput{Nom: "X", IDCategorie: 1})
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	assert.Equal(t, 1, f.metrics.AuthzDenials["produit/create"])
}

func TestProduitService_Create_FieldMasks(t *testing.T) {
	f := newProduitFixture()
	fourn := claimsFor(20, domain.RoleFournisseur)

	// Commissions from a non-gestionnaire are rejected
	_, err := f.svc.Create(context.Background(), fourn, ProduitInput{
		Nom:             "Tomates",
		IDCategorie:     1,
		ComissionClient: floatPtr(0.1),
	})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	// Initial stock is honored for every producing role
	detail, err := f.svc.Create(context.Background(), fourn, ProduitInput{
		Nom:              "Tomates",
		IDCategorie:      1,
		Stock:            intPtr(50),
		StockFournisseur: intPtr(80),
	})
	require.NoError(t, err)
	assert.Equal(t, 50, detail.Produit.Stock)
	assert.Equal(t, 80, detail.Produit.StockFournisseur)

	// A gestionnaire sets everything
	gest := claimsFor(10, domain.RoleGestionnaire)
	detail, err = f.svc.Create(context.Background(), gest, ProduitInput{
		Nom:             "Plantains",
		IDCategorie:     1,
		Stock:           intPtr(50),
		ComissionClient: floatPtr(0.15),
	})
	require.NoError(t, err)
	assert.Equal(t, 50, detail.Produit.Stock)
	require.NotNil(t, detail.Produit.ComissionClient)
	assert.Equal(t, 0.15, *detail.Produit.ComissionClient)
}

func TestProduitService_Create_InitialStockPersists(t *testing.T) {
	f := newProduitFixture()
	fourn := claimsFor(20, domain.RoleFournisseur)

	detail, err := f.svc.Create(context.Background(), fourn, ProduitInput{
		Nom:         "Tomates",
		IDCategorie: 1,
		Stock:       intPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, detail.Produit.Stock)

	// The gestionnaire-only stock rule applies to updates, not creation
	updated, err := f.svc.Update(context.Background(), fourn, detail.Produit.ID, ProduitPatch{Stock: intPtr(50)})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Produit.Stock)
}

func TestProduitService_Create_UnknownCategorie(t *testing.T) {
	f := newProduitFixture()

	_, err := f.svc.Create(context.Background(), claimsFor(10, domain.RoleGestionnaire), ProduitInput{
		Nom:         "Tomates",
		IDCategorie: 9999,
	})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestProduitService_Update_UnknownCategorie(t *testing.T) {
	f := newProduitFixture()
	gest := claimsFor(10, domain.RoleGestionnaire)

	detail, err := f.svc.Create(context.Background(), gest, ProduitInput{Nom: "Tomates", IDCategorie: 1})
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), gest, detail.Produit.ID, ProduitPatch{IDCategorie: int64Ptr(9999)})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	// The product keeps its original category
	got, err := f.svc.Get(context.Background(), detail.Produit.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Produit.IDCategorie)
}

func TestProduitService_Create_WithImagesAndCaracteristiques(t *testing.T) {
	f := newProduitFixture()
	gest := claimsFor(10, domain.RoleGestionnaire)

	detail, err := f.svc.Create(context.Background(), gest, ProduitInput{
		Nom:         "Tomates",
		IDCategorie: 1,
		Images: []ImageInput{
			{Blob: []byte("img-a"), TexteAlt: strPtr("vue principale")},
			{Blob: []byte("img-b")},
		},
		Caracteristiques: []CaracteristiqueValeur{
			{Nom: "Poids", Unite: strPtr("kg"), Valeur: "25"},
		},
	})
	require.NoError(t, err)

	require.Len(t, detail.Images, 2)
	assert.True(t, detail.Images[0].EstPrincipale)
	assert.False(t, detail.Images[1].EstPrincipale)

	require.Len(t, detail.Caracteristiques, 1)
	assert.Equal(t, "25", detail.Caracteristiques[0].Valeur)

	// The definition was created on the fly, attributed to the gestionnaire
	def, err := f.catalogue.GetCaracteristiqueByNom(context.Background(), "Poids")
	require.NoError(t, err)
	require.NotNil(t, def.IDGestionnaire)
	assert.Equal(t, int64(10), *def.IDGestionnaire)

	// Reattaching by the same name reuses the definition
	detail2, err := f.svc.Create(context.Background(), gest, ProduitInput{
		Nom:         "Oignons",
		IDCategorie: 1,
		Caracteristiques: []CaracteristiqueValeur{
			{Nom: "Poids", Valeur: "10"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, def.ID, detail2.Caracteristiques[0].IDCaracteristique)
}

func TestProduitService_Update_OwnershipAndMasks(t *testing.T) {
	f := newProduitFixture()
	owner := claimsFor(20, domain.RoleFournisseur)

	detail, err := f.svc.Create(context.Background(), owner, ProduitInput{Nom: "Tomates", IDCategorie: 1})
	require.NoError(t, err)
	id := detail.Produit.ID

	// Owner renames and reprices
	updated, err := f.svc.Update(context.Background(), owner, id, ProduitPatch{
		Nom:             strPtr("Tomates cerises"),
		PrixFournisseur: floatPtr(1500),
	})
	require.NoError(t, err)
	assert.Equal(t, "Tomates cerises", updated.Produit.Nom)

	// Owner cannot set commissions
	_, err = f.svc.Update(context.Background(), owner, id, ProduitPatch{ComissionClient: floatPtr(0.2)})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	// Owner's stock patch is dropped silently
	updated, err = f.svc.Update(context.Background(), owner, id, ProduitPatch{Stock: intPtr(99)})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Produit.Stock)

	// Another fournisseur is rejected after the record loads
	_, err = f.svc.Update(context.Background(), claimsFor(21, domain.RoleFournisseur), id, ProduitPatch{Nom: strPtr("X")})
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// A gestionnaire updates anything on anyone's product
	updated, err = f.svc.Update(context.Background(), claimsFor(10, domain.RoleGestionnaire), id, ProduitPatch{
		Stock:           intPtr(40),
		ComissionClient: floatPtr(0.1),
	})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Produit.Stock)

	// Unauthenticated callers never learn whether the record exists
	_, err = f.svc.Update(context.Background(), authz.Claims{}, 9999, ProduitPatch{})
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestProduitService_VerificationTransitions(t *testing.T) {
	f := newProduitFixture()
	fourn := claimsFor(20, domain.RoleFournisseur)
	gest := claimsFor(10, domain.RoleGestionnaire)

	detail, err := f.svc.Create(context.Background(), fourn, ProduitInput{Nom: "Tomates", IDCategorie: 1})
	require.NoError(t, err)
	id := detail.Produit.ID

	// Only gestionnaires verify
	_, err = f.svc.Verify(context.Background(), fourn, id)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	verified, err := f.svc.Verify(context.Background(), gest, id)
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationValidee, verified.Produit.StatutVerification)
	assert.Equal(t, 1, f.metrics.ProduitTransitions["verify"])

	// Verifying an already verified product is a validation error
	_, err = f.svc.Verify(context.Background(), gest, id)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	// And back
	unverified, err := f.svc.Unverify(context.Background(), gest, id)
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationEnAttente, unverified.Produit.StatutVerification)

	_, err = f.svc.Unverify(context.Background(), gest, id)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestProduitService_FinishProduction(t *testing.T) {
	f := newProduitFixture()
	prod := claimsFor(30, domain.RoleProducteur)
	gest := claimsFor(10, domain.RoleGestionnaire)

	detail, err := f.svc.Create(context.Background(), prod, ProduitInput{Nom: "Maïs", IDCategorie: 1})
	require.NoError(t, err)
	id := detail.Produit.ID
	require.Equal(t, domain.ProductionEnCours, detail.Produit.StatutProduction)

	finished, err := f.svc.FinishProduction(context.Background(), gest, id)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductionTerminee, finished.Produit.StatutProduction)
	assert.Equal(t, 1, f.metrics.ProduitTransitions["finish_production"])

	_, err = f.svc.FinishProduction(context.Background(), gest, id)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestProduitService_Delete(t *testing.T) {
	f := newProduitFixture()
	owner := claimsFor(20, domain.RoleFournisseur)

	detail, err := f.svc.Create(context.Background(), owner, ProduitInput{
		Nom:         "Tomates",
		IDCategorie: 1,
		Images:      []ImageInput{{Blob: []byte("img")}},
	})
	require.NoError(t, err)
	id := detail.Produit.ID

	// Non-owner fournisseur cannot delete
	err = f.svc.Delete(context.Background(), claimsFor(21, domain.RoleFournisseur), id)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	require.NoError(t, f.svc.Delete(context.Background(), owner, id))
	_, err = f.svc.Get(context.Background(), id)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	assert.Empty(t, f.produits.Images)
}

func TestProduitService_Images(t *testing.T) {
	f := newProduitFixture()
	gest := claimsFor(10, domain.RoleGestionnaire)

	detail, err := f.svc.Create(context.Background(), gest, ProduitInput{Nom: "Tomates", IDCategorie: 1})
	require.NoError(t, err)
	id := detail.Produit.ID

	// First image added after creation becomes the main one
	first, err := f.svc.AddImage(context.Background(), gest, id, ImageInput{Blob: []byte("a")})
	require.NoError(t, err)
	assert.True(t, first.EstPrincipale)

	second, err := f.svc.AddImage(context.Background(), gest, id, ImageInput{Blob: []byte("b")})
	require.NoError(t, err)
	assert.False(t, second.EstPrincipale)

	require.NoError(t, f.svc.RemoveImage(context.Background(), gest, id, second.ID))

	got, err := f.svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, got.Images, 1)
}

func TestProduitService_SetCaracteristique_ByID(t *testing.T) {
	f := newProduitFixture()
	gest := claimsFor(10, domain.RoleGestionnaire)

	def, err := f.catalogue.CreateCaracteristique(context.Background(), &domain.Caracteristique{Nom: "Poids", TypeValeur: "nombre"})
	require.NoError(t, err)

	detail, err := f.svc.Create(context.Background(), gest, ProduitInput{Nom: "Tomates", IDCategorie: 1})
	require.NoError(t, err)
	id := detail.Produit.ID

	link, err := f.svc.SetCaracteristique(context.Background(), gest, id, CaracteristiqueValeur{
		IDCaracteristique: &def.ID,
		Valeur:            "25",
	})
	require.NoError(t, err)
	assert.Equal(t, def.ID, link.IDCaracteristique)

	// A dangling id is an error, never an on-the-fly definition
	_, err = f.svc.SetCaracteristique(context.Background(), gest, id, CaracteristiqueValeur{
		IDCaracteristique: int64Ptr(9999),
		Valeur:            "25",
	})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	_, err = f.catalogue.GetCaracteristique(context.Background(), 9999)
	assert.Error(t, err)
}
