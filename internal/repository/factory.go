package repository

import (
	"database/sql"

	"github.com/Melvins45/maferme237/internal/ports"
)

// DatabaseFactory must be implemented by each database package / Doit être implémenté par chaque package de BD
// This interface ensures compile-time safety: if you add a new repository,
// you MUST implement it in all database packages (sqlite, mysql, postgres)
// Cette interface garantit la sécurité à la compilation : si tu ajoutes un nouveau repository,
// tu DOIS l'implémenter dans tous les packages de BD (sqlite, mysql, postgres)
type DatabaseFactory interface {
	// NewPersonneRepository creates the identity repository / Crée le repository d'identité
	NewPersonneRepository(db *sql.DB) ports.PersonneRepository

	// NewRoleStore creates the role-profile store / Crée le store des profils de rôle
	NewRoleStore(db *sql.DB) ports.RoleStore

	// NewProduitRepository creates the product repository / Crée le repository des produits
	NewProduitRepository(db *sql.DB) ports.ProduitRepository

	// NewCatalogueRepository creates the catalog repository / Crée le repository du catalogue
	NewCatalogueRepository(db *sql.DB) ports.CatalogueRepository

	// NewTxRunner creates the transaction runner / Crée l'exécuteur de transactions
	NewTxRunner(db *sql.DB) ports.TxRunner

	// When adding a new table/repository, add the method here
	// The compiler will force you to implement it in all database packages
	// Quand tu ajoutes une nouvelle table/repository, ajoute la méthode ici
	// Le compilateur te forcera à l'implémenter dans tous les packages de BD
}
