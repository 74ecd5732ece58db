package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/ports"
	"github.com/Melvins45/maferme237/internal/repository/db"
)

func createTestCategorie(t *testing.T, database *sql.DB, nom string) *domain.CategorieProduit {
	t.Helper()
	cat, err := NewSQLiteCatalogue(database).CreateCategorie(context.Background(), &domain.CategorieProduit{Nom: nom})
	if err != nil {
		t.Fatalf("Failed to create categorie: %v", err)
	}
	return cat
}

func TestProduitRepo_CreateAndGet(t *testing.T) {
	database := setupTestDB(t)
	repo := NewSQLiteProduit(database)
	ctx := context.Background()

	cat := createTestCategorie(t, database, "Légumes")

	prix := 1500.0
	p, err := repo.CreateProduit(ctx, &domain.Produit{
		Nom:                   "Tomates",
		PrixFournisseurClient: &prix,
		Stock:                 40,
		StatutVerification:    domain.VerificationEnAttente,
		StatutProduction:      domain.ProductionTerminee,
		IDCategorie:           cat.ID,
	})
	if err != nil {
		t.Fatalf("Failed to create produit: %v", err)
	}
	if p.ID == 0 {
		t.Error("Expected produit ID to be set")
	}
	if p.StatutVerification != domain.VerificationEnAttente {
		t.Errorf("Expected waiting_verification, got %s", p.StatutVerification)
	}
	if p.Stock != 40 {
		t.Errorf("Expected stock 40, got %d", p.Stock)
	}

	_, err = repo.GetProduit(ctx, 999)
	if !errors.Is(err, db.ErrNoRecord) {
		t.Errorf("Expected ErrNoRecord for unknown produit, got %v", err)
	}
}

func TestProduitRepo_Update(t *testing.T) {
	database := setupTestDB(t)
	repo := NewSQLiteProduit(database)
	ctx := context.Background()

	cat := createTestCategorie(t, database, "Fruits")
	p, err := repo.CreateProduit(ctx, &domain.Produit{
		Nom:                "Mangues",
		StatutVerification: domain.VerificationEnAttente,
		StatutProduction:   domain.ProductionEnCours,
		IDCategorie:        cat.ID,
	})
	if err != nil {
		t.Fatalf("Failed to create produit: %v", err)
	}

	p.StatutVerification = domain.VerificationValidee
	p.StatutProduction = domain.ProductionTerminee
	p.Stock = 12
	if err := repo.UpdateProduit(ctx, p); err != nil {
		t.Fatalf("Failed to update produit: %v", err)
	}

	reloaded, _ := repo.GetProduit(ctx, p.ID)
	if reloaded.StatutVerification != domain.VerificationValidee {
		t.Errorf("Expected verified, got %s", reloaded.StatutVerification)
	}
	if reloaded.StatutProduction != domain.ProductionTerminee {
		t.Errorf("Expected finished, got %s", reloaded.StatutProduction)
	}
	if reloaded.Stock != 12 {
		t.Errorf("Expected stock 12, got %d", reloaded.Stock)
	}
}

func TestProduitRepo_ImagesAndCaracteristiques(t *testing.T) {
	database := setupTestDB(t)
	repo := NewSQLiteProduit(database)
	catalogue := NewSQLiteCatalogue(database)
	ctx := context.Background()

	cat := createTestCategorie(t, database, "Tubercules")
	p, err := repo.CreateProduit(ctx, &domain.Produit{
		Nom:                "Manioc",
		StatutVerification: domain.VerificationEnAttente,
		StatutProduction:   domain.ProductionTerminee,
		IDCategorie:        cat.ID,
	})
	if err != nil {
		t.Fatalf("Failed to create produit: %v", err)
	}

	alt := "sac de manioc"
	if _, err := repo.CreateImage(ctx, &domain.ProduitImage{IDProduit: p.ID, Blob: []byte{0x1}, TexteAlt: &alt, EstPrincipale: true}); err != nil {
		t.Fatalf("Failed to create image: %v", err)
	}
	if _, err := repo.CreateImage(ctx, &domain.ProduitImage{IDProduit: p.ID, Blob: []byte{0x2}}); err != nil {
		t.Fatalf("Failed to create second image: %v", err)
	}

	images, err := repo.ListImages(ctx, p.ID)
	if err != nil {
		t.Fatalf("Failed to list images: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("Expected 2 images, got %d", len(images))
	}
	if !images[0].EstPrincipale {
		t.Error("Expected main image listed first")
	}

	carac, err := catalogue.CreateCaracteristique(ctx, &domain.Caracteristique{Nom: "Poids", TypeValeur: "nombre"})
	if err != nil {
		t.Fatalf("Failed to create caracteristique: %v", err)
	}

	pc := &domain.ProduitCaracteristique{IDProduit: p.ID, IDCaracteristique: carac.ID, Valeur: "25kg"}
	if err := repo.SetCaracteristique(ctx, pc); err != nil {
		t.Fatalf("Failed to set caracteristique: %v", err)
	}
	// Setting again updates the value instead of duplicating the link
	pc.Valeur = "50kg"
	if err := repo.SetCaracteristique(ctx, pc); err != nil {
		t.Fatalf("Failed to re-set caracteristique: %v", err)
	}

	values, err := repo.ListCaracteristiques(ctx, p.ID)
	if err != nil {
		t.Fatalf("Failed to list caracteristiques: %v", err)
	}
	if len(values) != 1 || values[0].Valeur != "50kg" {
		t.Errorf("Expected single link with valeur '50kg', got %+v", values)
	}

	// Deleting the product cascades to images and links
	if err := repo.DeleteProduit(ctx, p.ID); err != nil {
		t.Fatalf("Failed to delete produit: %v", err)
	}
	images, _ = repo.ListImages(ctx, p.ID)
	if len(images) != 0 {
		t.Errorf("Expected images to cascade, got %d", len(images))
	}
	values, _ = repo.ListCaracteristiques(ctx, p.ID)
	if len(values) != 0 {
		t.Errorf("Expected links to cascade, got %d", len(values))
	}
}

func TestCatalogueRepo_Caracteristiques(t *testing.T) {
	database := setupTestDB(t)
	catalogue := NewSQLiteCatalogue(database)
	ctx := context.Background()

	c, err := catalogue.CreateCaracteristique(ctx, &domain.Caracteristique{Nom: "Origine", TypeValeur: "texte"})
	if err != nil {
		t.Fatalf("Failed to create caracteristique: %v", err)
	}

	byNom, err := catalogue.GetCaracteristiqueByNom(ctx, "Origine")
	if err != nil {
		t.Fatalf("Failed to get caracteristique by nom: %v", err)
	}
	if byNom.ID != c.ID {
		t.Errorf("Expected ID %d, got %d", c.ID, byNom.ID)
	}

	_, err = catalogue.GetCaracteristiqueByNom(ctx, "Inconnue")
	if !errors.Is(err, db.ErrNoRecord) {
		t.Errorf("Expected ErrNoRecord, got %v", err)
	}

	// Duplicate names are rejected
	_, err = catalogue.CreateCaracteristique(ctx, &domain.Caracteristique{Nom: "Origine", TypeValeur: "texte"})
	if err == nil {
		t.Error("Expected error for duplicate caracteristique name")
	}
}

func TestTxRunner_RollbackOnError(t *testing.T) {
	database := setupTestDB(t)
	runner := NewSQLiteTxRunner(database)
	personnes := NewSQLitePersonne(database)
	ctx := context.Background()

	sentinel := errors.New("boom")
	err := runner.InTx(ctx, func(tx ports.DBTX) error {
		if _, err := personnes.WithTx(tx).Create(ctx, &domain.Personne{
			Nom:        "Ngono",
			Email:      "tx@example.com",
			MotDePasse: "hash",
		}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("Expected sentinel error, got %v", err)
	}

	// The insert must have been rolled back
	_, err = personnes.GetByEmail(ctx, "tx@example.com")
	if !errors.Is(err, db.ErrNoRecord) {
		t.Errorf("Expected rollback to discard insert, got %v", err)
	}
}

func TestTxRunner_Commit(t *testing.T) {
	database := setupTestDB(t)
	runner := NewSQLiteTxRunner(database)
	personnes := NewSQLitePersonne(database)
	roles := NewSQLiteRoleStore(database)
	ctx := context.Background()

	err := runner.InTx(ctx, func(tx ports.DBTX) error {
		p, err := personnes.WithTx(tx).Create(ctx, &domain.Personne{
			Nom:        "Ngono",
			Email:      "tx2@example.com",
			MotDePasse: "hash",
		})
		if err != nil {
			return err
		}
		_, err = roles.WithTx(tx).CreateClient(ctx, &domain.Client{ID: p.ID})
		return err
	})
	if err != nil {
		t.Fatalf("Expected commit, got %v", err)
	}

	p, err := personnes.GetByEmail(ctx, "tx2@example.com")
	if err != nil {
		t.Fatalf("Expected personne after commit, got %v", err)
	}
	if _, err := roles.GetClient(ctx, p.ID); err != nil {
		t.Errorf("Expected client profile after commit, got %v", err)
	}
}
