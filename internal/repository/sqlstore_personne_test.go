package repository

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/repository/db"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if _, err := database.Exec("PRAGMA foreign_keys=ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	// Apply the real migration so tests exercise the shipped schema
	schema, err := os.ReadFile(filepath.Join("..", "..", "migrations", "sqlite", "000001_init.up.sql"))
	if err != nil {
		t.Fatalf("Failed to read migration: %v", err)
	}
	if _, err := database.Exec(string(schema)); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return database
}

func createTestPersonne(t *testing.T, database *sql.DB, email string) *domain.Personne {
	t.Helper()
	repo := NewSQLitePersonne(database)
	p, err := repo.Create(context.Background(), &domain.Personne{
		Nom:        "Ngono",
		Prenom:     "Marie",
		Email:      email,
		MotDePasse: "bcrypt-hash",
	})
	if err != nil {
		t.Fatalf("Failed to create personne: %v", err)
	}
	return p
}

func TestPersonneRepo_Create(t *testing.T) {
	database := setupTestDB(t)
	repo := NewSQLitePersonne(database)

	p, err := repo.Create(context.Background(), &domain.Personne{
		Nom:        "Ngono",
		Prenom:     "Marie",
		Email:      "marie@example.com",
		MotDePasse: "bcrypt-hash",
	})
	if err != nil {
		t.Fatalf("Failed to create personne: %v", err)
	}
	if p.ID == 0 {
		t.Error("Expected personne ID to be set")
	}
	if p.Email != "marie@example.com" {
		t.Errorf("Expected email 'marie@example.com', got '%s'", p.Email)
	}

	// Duplicate email must be rejected by the unique index
	_, err = repo.Create(context.Background(), &domain.Personne{
		Nom:        "Autre",
		Email:      "marie@example.com",
		MotDePasse: "hash2",
	})
	if err == nil {
		t.Error("Expected error for duplicate email")
	}
}

func TestPersonneRepo_GetByID(t *testing.T) {
	database := setupTestDB(t)
	repo := NewSQLitePersonne(database)

	created := createTestPersonne(t, database, "marie@example.com")

	p, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Failed to get personne by ID: %v", err)
	}
	if p.Email != "marie@example.com" {
		t.Errorf("Expected email 'marie@example.com', got '%s'", p.Email)
	}

	_, err = repo.GetByID(context.Background(), 999)
	if !errors.Is(err, db.ErrNoRecord) {
		t.Errorf("Expected ErrNoRecord for unknown ID, got %v", err)
	}
}

func TestPersonneRepo_GetByEmail(t *testing.T) {
	database := setupTestDB(t)
	repo := NewSQLitePersonne(database)

	createTestPersonne(t, database, "marie@example.com")

	p, err := repo.GetByEmail(context.Background(), "marie@example.com")
	if err != nil {
		t.Fatalf("Failed to get personne by email: %v", err)
	}
	if p.Nom != "Ngono" {
		t.Errorf("Expected nom 'Ngono', got '%s'", p.Nom)
	}

	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, db.ErrNoRecord) {
		t.Errorf("Expected ErrNoRecord for unknown email, got %v", err)
	}
}

func TestPersonneRepo_Update(t *testing.T) {
	database := setupTestDB(t)
	repo := NewSQLitePersonne(database)

	created := createTestPersonne(t, database, "marie@example.com")

	tel := "+237699000000"
	created.Nom = "Mballa"
	created.Telephone = &tel
	if err := repo.Update(context.Background(), created); err != nil {
		t.Fatalf("Failed to update personne: %v", err)
	}

	p, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Failed to reload personne: %v", err)
	}
	if p.Nom != "Mballa" {
		t.Errorf("Expected nom 'Mballa', got '%s'", p.Nom)
	}
	if p.Telephone == nil || *p.Telephone != tel {
		t.Errorf("Expected telephone %q, got %v", tel, p.Telephone)
	}
	// The password column must not be touched by Update
	if p.MotDePasse != "bcrypt-hash" {
		t.Errorf("Expected password hash untouched, got '%s'", p.MotDePasse)
	}

	err = repo.Update(context.Background(), &domain.Personne{ID: 999, Nom: "X", Email: "x@example.com"})
	if !errors.Is(err, db.ErrNoRecord) {
		t.Errorf("Expected ErrNoRecord updating unknown personne, got %v", err)
	}
}
