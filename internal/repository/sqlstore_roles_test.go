package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/repository/db"
)

func TestRoleStore_AdministrateurLifecycle(t *testing.T) {
	database := setupTestDB(t)
	store := NewSQLiteRoleStore(database)
	ctx := context.Background()

	root := createTestPersonne(t, database, "root@example.com")
	op := createTestPersonne(t, database, "op@example.com")

	if _, err := store.CreateAdministrateur(ctx, &domain.Administrateur{ID: root.ID, NiveauAcces: domain.NiveauRacine}); err != nil {
		t.Fatalf("Failed to create root admin: %v", err)
	}
	if _, err := store.CreateAdministrateur(ctx, &domain.Administrateur{ID: op.ID, NiveauAcces: domain.NiveauOperateur, CreatedBy: &root.ID}); err != nil {
		t.Fatalf("Failed to create operator admin: %v", err)
	}

	got, err := store.GetAdministrateur(ctx, op.ID)
	if err != nil {
		t.Fatalf("Failed to get admin: %v", err)
	}
	if got.NiveauAcces != domain.NiveauOperateur {
		t.Errorf("Expected level %d, got %d", domain.NiveauOperateur, got.NiveauAcces)
	}
	if got.CreatedBy == nil || *got.CreatedBy != root.ID {
		t.Errorf("Expected created_by %d, got %v", root.ID, got.CreatedBy)
	}

	// A level-2 caller only sees levels 2 and 3
	admins, err := store.ListAdministrateurs(ctx, domain.NiveauSuperviseur)
	if err != nil {
		t.Fatalf("Failed to list admins: %v", err)
	}
	if len(admins) != 1 || admins[0].ID != op.ID {
		t.Errorf("Expected only the level-3 admin, got %d rows", len(admins))
	}

	// A level-1 caller sees everyone
	admins, err = store.ListAdministrateurs(ctx, domain.NiveauRacine)
	if err != nil {
		t.Fatalf("Failed to list admins: %v", err)
	}
	if len(admins) != 2 {
		t.Errorf("Expected 2 admins, got %d", len(admins))
	}

	got.NiveauAcces = domain.NiveauSuperviseur
	if err := store.UpdateAdministrateur(ctx, got); err != nil {
		t.Fatalf("Failed to update admin: %v", err)
	}
	reloaded, _ := store.GetAdministrateur(ctx, op.ID)
	if reloaded.NiveauAcces != domain.NiveauSuperviseur {
		t.Errorf("Expected level %d after update, got %d", domain.NiveauSuperviseur, reloaded.NiveauAcces)
	}
}

func TestRoleStore_CreateProfileRequiresPersonne(t *testing.T) {
	database := setupTestDB(t)
	store := NewSQLiteRoleStore(database)

	// No personne row 999: the shared-primary-key FK must reject the profile
	_, err := store.CreateClient(context.Background(), &domain.Client{ID: 999})
	if err == nil {
		t.Error("Expected foreign key error creating profile without personne")
	}
}

func TestRoleStore_HeldRoles(t *testing.T) {
	database := setupTestDB(t)
	store := NewSQLiteRoleStore(database)
	ctx := context.Background()

	p := createTestPersonne(t, database, "multi@example.com")

	roles, err := store.HeldRoles(ctx, p.ID)
	if err != nil {
		t.Fatalf("Failed to list held roles: %v", err)
	}
	if len(roles) != 0 {
		t.Errorf("Expected no roles, got %v", roles)
	}

	if _, err := store.CreateClient(ctx, &domain.Client{ID: p.ID}); err != nil {
		t.Fatalf("Failed to create client profile: %v", err)
	}
	if _, err := store.CreateFournisseur(ctx, &domain.Fournisseur{ID: p.ID}); err != nil {
		t.Fatalf("Failed to create fournisseur profile: %v", err)
	}

	roles, err = store.HeldRoles(ctx, p.ID)
	if err != nil {
		t.Fatalf("Failed to list held roles: %v", err)
	}
	if len(roles) != 2 || roles[0] != domain.RoleClient || roles[1] != domain.RoleFournisseur {
		t.Errorf("Expected [client fournisseur], got %v", roles)
	}
}

func TestRoleStore_FournisseurTrustFlag(t *testing.T) {
	database := setupTestDB(t)
	store := NewSQLiteRoleStore(database)
	ctx := context.Background()

	verifier := createTestPersonne(t, database, "admin@example.com")
	p := createTestPersonne(t, database, "supplier@example.com")

	f, err := store.CreateFournisseur(ctx, &domain.Fournisseur{ID: p.ID})
	if err != nil {
		t.Fatalf("Failed to create fournisseur: %v", err)
	}
	if f.Verifie {
		t.Error("Expected new fournisseur to be unverified")
	}

	f.Verifie = true
	f.VerifiedBy = &verifier.ID
	if err := store.UpdateFournisseur(ctx, f); err != nil {
		t.Fatalf("Failed to update fournisseur: %v", err)
	}

	reloaded, _ := store.GetFournisseur(ctx, p.ID)
	if !reloaded.Verifie {
		t.Error("Expected fournisseur to be verified")
	}
	if reloaded.VerifiedBy == nil || *reloaded.VerifiedBy != verifier.ID {
		t.Errorf("Expected verified_by %d, got %v", verifier.ID, reloaded.VerifiedBy)
	}
}

func TestRoleStore_DeleteRole(t *testing.T) {
	database := setupTestDB(t)
	store := NewSQLiteRoleStore(database)
	ctx := context.Background()

	p := createTestPersonne(t, database, "client@example.com")
	if _, err := store.CreateClient(ctx, &domain.Client{ID: p.ID}); err != nil {
		t.Fatalf("Failed to create client profile: %v", err)
	}

	if err := store.DeleteRole(ctx, domain.RoleClient, p.ID); err != nil {
		t.Fatalf("Failed to delete client profile: %v", err)
	}

	_, err := store.GetClient(ctx, p.ID)
	if !errors.Is(err, db.ErrNoRecord) {
		t.Errorf("Expected ErrNoRecord after delete, got %v", err)
	}

	// The underlying Personne must survive profile deletion
	if _, err := NewSQLitePersonne(database).GetByID(ctx, p.ID); err != nil {
		t.Errorf("Expected personne to survive role deletion, got %v", err)
	}

	if err := store.DeleteRole(ctx, domain.RoleClient, p.ID); !errors.Is(err, db.ErrNoRecord) {
		t.Errorf("Expected ErrNoRecord deleting missing profile, got %v", err)
	}
}
