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

type catalogueFixture struct {
	svc       *CatalogueService
	catalogue *mocks.MockCatalogueRepository
	metrics   *mocks.MockMetrics
}

func newCatalogueFixture() *catalogueFixture {
	catalogue := mocks.NewMockCatalogueRepository()
	metrics := mocks.NewMockMetrics()
	return &catalogueFixture{
		svc:       NewCatalogueService(catalogue, metrics),
		catalogue: catalogue,
		metrics:   metrics,
	}
}

func TestCatalogueService_CreateCategorie_Attribution(t *testing.T) {
	tests := []struct {
		name   string
		claims authz.Claims
		check  func(t *testing.T, c *domain.CategorieProduit)
	}{
		{
			name:   "gestionnaire attribution",
			claims: claimsFor(10, domain.RoleGestionnaire),
			check: func(t *testing.T, c *domain.CategorieProduit) {
				require.NotNil(t, c.IDGestionnaire)
				assert.Equal(t, int64(10), *c.IDGestionnaire)
			},
		},
		{
			name:   "producteur attribution",
			claims: claimsFor(30, domain.RoleProducteur),
			check: func(t *testing.T, c *domain.CategorieProduit) {
				require.NotNil(t, c.IDProducteur)
				assert.Equal(t, int64(30), *c.IDProducteur)
			},
		},
		{
			name:   "fournisseur attribution",
			claims: claimsFor(20, domain.RoleFournisseur),
			check: func(t *testing.T, c *domain.CategorieProduit) {
				require.NotNil(t, c.IDFournisseur)
				assert.Equal(t, int64(20), *c.IDFournisseur)
			},
		},
		{
			// The strongest producing role wins, like product ownership.
			name:   "gestionnaire wins over producteur",
			claims: claimsFor(40, domain.RoleGestionnaire, domain.RoleProducteur),
			check: func(t *testing.T, c *domain.CategorieProduit) {
				require.NotNil(t, c.IDGestionnaire)
				assert.Nil(t, c.IDProducteur)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCatalogueFixture()
			c, err := f.svc.CreateCategorie(context.Background(), tt.claims, CategorieInput{Nom: "Légumes"})
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestCatalogueService_CreateCategorie_Denied(t *testing.T) {
	f := newCatalogueFixture()

	_, err := f.svc.CreateCategorie(context.Background(), authz.Claims{}, CategorieInput{Nom: "Légumes"})
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))

	_, err = f.svc.CreateCategorie(context.Background(), claimsFor(5, domain.RoleClient), CategorieInput{Nom: "Légumes"})
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	_, err = f.svc.CreateCategorie(context.Background(), claimsFor(10, domain.RoleGestionnaire), CategorieInput{})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestCatalogueService_CreateCategorie_DuplicateNom(t *testing.T) {
	f := newCatalogueFixture()
	gest := claimsFor(10, domain.RoleGestionnaire)

	_, err := f.svc.CreateCategorie(context.Background(), gest, CategorieInput{Nom: "Légumes"})
	require.NoError(t, err)

	_, err = f.svc.CreateCategorie(context.Background(), gest, CategorieInput{Nom: "Légumes"})
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestCatalogueService_UpdateCategorie_CreatorOrGestionnaire(t *testing.T) {
	f := newCatalogueFixture()
	producteur := claimsFor(30, domain.RoleProducteur)

	created, err := f.svc.CreateCategorie(context.Background(), producteur, CategorieInput{Nom: "Tubercules"})
	require.NoError(t, err)

	// Creator edits its own category
	updated, err := f.svc.UpdateCategorie(context.Background(), producteur, created.ID, CategorieInput{Nom: "Tubercules et racines"})
	require.NoError(t, err)
	assert.Equal(t, "Tubercules et racines", updated.Nom)

	// Another producteur cannot
	_, err = f.svc.UpdateCategorie(context.Background(), claimsFor(31, domain.RoleProducteur), created.ID, CategorieInput{Nom: "X"})
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// A gestionnaire edits anything
	_, err = f.svc.UpdateCategorie(context.Background(), claimsFor(10, domain.RoleGestionnaire), created.ID, CategorieInput{Nom: "Racines"})
	require.NoError(t, err)
}

func TestCatalogueService_DeleteCategorie_GestionnaireOnly(t *testing.T) {
	f := newCatalogueFixture()
	producteur := claimsFor(30, domain.RoleProducteur)

	created, err := f.svc.CreateCategorie(context.Background(), producteur, CategorieInput{Nom: "Tubercules"})
	require.NoError(t, err)

	// Even the creator cannot delete
	err = f.svc.DeleteCategorie(context.Background(), producteur, created.ID)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	require.NoError(t, f.svc.DeleteCategorie(context.Background(), claimsFor(10, domain.RoleGestionnaire), created.ID))

	_, err = f.svc.GetCategorie(context.Background(), created.ID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestCatalogueService_Caracteristiques(t *testing.T) {
	f := newCatalogueFixture()
	fourn := claimsFor(20, domain.RoleFournisseur)
	gest := claimsFor(10, domain.RoleGestionnaire)

	created, err := f.svc.CreateCaracteristique(context.Background(), fourn, CaracteristiqueInput{
		Nom:   "Poids",
		Unite: strPtr("kg"),
	})
	require.NoError(t, err)
	require.NotNil(t, created.IDFournisseur)
	assert.Equal(t, int64(20), *created.IDFournisseur)

	// Names are unique across the catalog
	_, err = f.svc.CreateCaracteristique(context.Background(), gest, CaracteristiqueInput{Nom: "Poids"})
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	// Reads are public
	list, err := f.svc.ListCaracteristiques(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// Creator updates, non-creator is denied, gestionnaire passes
	_, err = f.svc.UpdateCaracteristique(context.Background(), fourn, created.ID, CaracteristiqueInput{Nom: "Poids net"})
	require.NoError(t, err)
	_, err = f.svc.UpdateCaracteristique(context.Background(), claimsFor(21, domain.RoleFournisseur), created.ID, CaracteristiqueInput{Nom: "X"})
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	_, err = f.svc.UpdateCaracteristique(context.Background(), gest, created.ID, CaracteristiqueInput{TypeValeur: strPtr("nombre")})
	require.NoError(t, err)

	// Deletion is a gestionnaire right
	err = f.svc.DeleteCaracteristique(context.Background(), fourn, created.ID)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	require.NoError(t, f.svc.DeleteCaracteristique(context.Background(), gest, created.ID))
}
