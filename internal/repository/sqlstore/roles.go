package sqlstore

import (
	"context"
	"fmt"

	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/ports"
	"github.com/Melvins45/maferme237/internal/repository/db"
)

var _ ports.RoleStore = (*RoleStore)(nil)

// roleTables maps role names to their profile tables. Profile tables share
// their primary key with personnes, so membership checks and deletes only
// need the id column.
var roleTables = map[domain.RoleName]string{
	domain.RoleClient:         "clients",
	domain.RoleFournisseur:    "fournisseurs",
	domain.RoleProducteur:     "producteurs",
	domain.RoleGestionnaire:   "gestionnaires",
	domain.RoleAdministrateur: "administrateurs",
	domain.RoleLivreur:        "livreurs",
	domain.RoleEntreprise:     "entreprises",
}

// RoleStore implements the role-profile store / Implémente le store des profils de rôle
type RoleStore struct {
	db ports.DBTX
	d  Dialect
}

// NewRoleStore creates the role-profile store / Crée le store des profils de rôle
func NewRoleStore(db ports.DBTX, d Dialect) *RoleStore {
	return &RoleStore{db: db, d: d}
}

// WithTx returns the store bound to a transaction / Retourne le store lié à une transaction
func (r *RoleStore) WithTx(tx ports.DBTX) ports.RoleStore {
	return &RoleStore{db: tx, d: r.d}
}

// HeldRoles returns the role profiles held by a person, in AllRoles order.
func (r *RoleStore) HeldRoles(ctx context.Context, personID int64) ([]domain.RoleName, error) {
	var roles []domain.RoleName
	for _, role := range domain.AllRoles() {
		query := r.d.Rebind(fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = ?)`, roleTables[role]))
		var held bool
		if err := r.db.QueryRowContext(ctx, query, personID).Scan(&held); err != nil {
			return nil, r.d.Err(err)
		}
		if held {
			roles = append(roles, role)
		}
	}
	return roles, nil
}

// DeleteRole removes one role profile, leaving the Personne untouched.
func (r *RoleStore) DeleteRole(ctx context.Context, role domain.RoleName, id int64) error {
	table, ok := roleTables[role]
	if !ok {
		return fmt.Errorf("unknown role %q", role)
	}
	query := r.d.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table))
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return r.d.Err(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return r.d.Err(err)
	}
	if affected == 0 {
		return db.ErrNoRecord
	}
	return nil
}

// --- Administrateur ---

func (r *RoleStore) scanAdministrateur(row interface{ Scan(...any) error }) (*domain.Administrateur, error) {
	a := &domain.Administrateur{}
	err := row.Scan(&a.ID, &a.NiveauAcces, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, r.d.Err(err)
	}
	return a, nil
}

// GetAdministrateur retrieves one administrator profile / Récupère un profil administrateur
func (r *RoleStore) GetAdministrateur(ctx context.Context, id int64) (*domain.Administrateur, error) {
	query := r.d.Rebind(`SELECT id, niveau_acces, created_by, created_at, updated_at
	          FROM administrateurs WHERE id = ?`)
	return r.scanAdministrateur(r.db.QueryRowContext(ctx, query, id))
}

// ListAdministrateurs lists administrators at minLevel or below in privilege.
// Levels are ordered lower-number-first, so the filter is niveau_acces >= minLevel.
func (r *RoleStore) ListAdministrateurs(ctx context.Context, minLevel int) ([]*domain.Administrateur, error) {
	query := r.d.Rebind(`SELECT id, niveau_acces, created_by, created_at, updated_at
	          FROM administrateurs WHERE niveau_acces >= ? ORDER BY niveau_acces, id`)
	rows, err := r.db.QueryContext(ctx, query, minLevel)
	if err != nil {
		return nil, r.d.Err(err)
	}
	defer rows.Close()

	var admins []*domain.Administrateur
	for rows.Next() {
		a, err := r.scanAdministrateur(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	if err := rows.Err(); err != nil {
		return nil, r.d.Err(err)
	}
	return admins, nil
}

// CreateAdministrateur inserts an administrator profile / Insère un profil administrateur
func (r *RoleStore) CreateAdministrateur(ctx context.Context, admin *domain.Administrateur) (*domain.Administrateur, error) {
	query := r.d.Rebind(`INSERT INTO administrateurs (id, niveau_acces, created_by) VALUES (?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, admin.ID, admin.NiveauAcces, admin.CreatedBy); err != nil {
		return nil, r.d.Err(err)
	}
	return r.GetAdministrateur(ctx, admin.ID)
}

// UpdateAdministrateur persists the access level / Persiste le niveau d'accès
func (r *RoleStore) UpdateAdministrateur(ctx context.Context, admin *domain.Administrateur) error {
	query := r.d.Rebind(`UPDATE administrateurs
	          SET niveau_acces = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	return r.execExpectingRow(ctx, query, admin.NiveauAcces, admin.ID)
}

// --- Gestionnaire ---

func (r *RoleStore) scanGestionnaire(row interface{ Scan(...any) error }) (*domain.Gestionnaire, error) {
	g := &domain.Gestionnaire{}
	err := row.Scan(&g.ID, &g.Role, &g.CreatedBy, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, r.d.Err(err)
	}
	return g, nil
}

// GetGestionnaire retrieves one manager profile / Récupère un profil gestionnaire
func (r *RoleStore) GetGestionnaire(ctx context.Context, id int64) (*domain.Gestionnaire, error) {
	query := r.d.Rebind(`SELECT id, role, created_by, created_at, updated_at
	          FROM gestionnaires WHERE id = ?`)
	return r.scanGestionnaire(r.db.QueryRowContext(ctx, query, id))
}

// ListGestionnaires lists manager profiles / Liste les profils gestionnaire
func (r *RoleStore) ListGestionnaires(ctx context.Context) ([]*domain.Gestionnaire, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, role, created_by, created_at, updated_at
	          FROM gestionnaires ORDER BY id`)
	if err != nil {
		return nil, r.d.Err(err)
	}
	defer rows.Close()

	var out []*domain.Gestionnaire
	for rows.Next() {
		g, err := r.scanGestionnaire(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, r.d.Err(err)
	}
	return out, nil
}

// CreateGestionnaire inserts a manager profile / Insère un profil gestionnaire
func (r *RoleStore) CreateGestionnaire(ctx context.Context, g *domain.Gestionnaire) (*domain.Gestionnaire, error) {
	query := r.d.Rebind(`INSERT INTO gestionnaires (id, role, created_by) VALUES (?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, g.ID, g.Role, g.CreatedBy); err != nil {
		return nil, r.d.Err(err)
	}
	return r.GetGestionnaire(ctx, g.ID)
}

// UpdateGestionnaire persists the manager fields / Persiste les champs gestionnaire
func (r *RoleStore) UpdateGestionnaire(ctx context.Context, g *domain.Gestionnaire) error {
	query := r.d.Rebind(`UPDATE gestionnaires
	          SET role = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	return r.execExpectingRow(ctx, query, g.Role, g.ID)
}

// --- Producteur ---

func (r *RoleStore) scanProducteur(row interface{ Scan(...any) error }) (*domain.Producteur, error) {
	p := &domain.Producteur{}
	err := row.Scan(&p.ID, &p.IDCategorieProduit, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, r.d.Err(err)
	}
	return p, nil
}

// GetProducteur retrieves one producer profile / Récupère un profil producteur
func (r *RoleStore) GetProducteur(ctx context.Context, id int64) (*domain.Producteur, error) {
	query := r.d.Rebind(`SELECT id, id_categorie_produit, created_by, created_at, updated_at
	          FROM producteurs WHERE id = ?`)
	return r.scanProducteur(r.db.QueryRowContext(ctx, query, id))
}

// ListProducteurs lists producer profiles / Liste les profils producteur
func (r *RoleStore) ListProducteurs(ctx context.Context) ([]*domain.Producteur, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, id_categorie_produit, created_by, created_at, updated_at
	          FROM producteurs ORDER BY id`)
	if err != nil {
		return nil, r.d.Err(err)
	}
	defer rows.Close()

	var out []*domain.Producteur
	for rows.Next() {
		p, err := r.scanProducteur(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, r.d.Err(err)
	}
	return out, nil
}

// CreateProducteur inserts a producer profile / Insère un profil producteur
func (r *RoleStore) CreateProducteur(ctx context.Context, p *domain.Producteur) (*domain.Producteur, error) {
	query := r.d.Rebind(`INSERT INTO producteurs (id, id_categorie_produit, created_by) VALUES (?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.IDCategorieProduit, p.CreatedBy); err != nil {
		return nil, r.d.Err(err)
	}
	return r.GetProducteur(ctx, p.ID)
}

// UpdateProducteur persists the producer fields / Persiste les champs producteur
func (r *RoleStore) UpdateProducteur(ctx context.Context, p *domain.Producteur) error {
	query := r.d.Rebind(`UPDATE producteurs
	          SET id_categorie_produit = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	return r.execExpectingRow(ctx, query, p.IDCategorieProduit, p.ID)
}

// --- Fournisseur ---

func (r *RoleStore) scanFournisseur(row interface{ Scan(...any) error }) (*domain.Fournisseur, error) {
	f := &domain.Fournisseur{}
	err := row.Scan(&f.ID, &f.NoteClient, &f.NoteEntreprise, &f.Verifie, &f.VerifiedBy, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, r.d.Err(err)
	}
	return f, nil
}

// GetFournisseur retrieves one supplier profile / Récupère un profil fournisseur
func (r *RoleStore) GetFournisseur(ctx context.Context, id int64) (*domain.Fournisseur, error) {
	query := r.d.Rebind(`SELECT id, note_client, note_entreprise, verifie, verified_by, created_at, updated_at
	          FROM fournisseurs WHERE id = ?`)
	return r.scanFournisseur(r.db.QueryRowContext(ctx, query, id))
}

// ListFournisseurs lists supplier profiles / Liste les profils fournisseur
func (r *RoleStore) ListFournisseurs(ctx context.Context) ([]*domain.Fournisseur, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, note_client, note_entreprise, verifie, verified_by, created_at, updated_at
	          FROM fournisseurs ORDER BY id`)
	if err != nil {
		return nil, r.d.Err(err)
	}
	defer rows.Close()

	var out []*domain.Fournisseur
	for rows.Next() {
		f, err := r.scanFournisseur(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, r.d.Err(err)
	}
	return out, nil
}

// CreateFournisseur inserts a supplier profile / Insère un profil fournisseur
func (r *RoleStore) CreateFournisseur(ctx context.Context, f *domain.Fournisseur) (*domain.Fournisseur, error) {
	query := r.d.Rebind(`INSERT INTO fournisseurs (id, note_client, note_entreprise, verifie, verified_by)
	          VALUES (?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, f.ID, f.NoteClient, f.NoteEntreprise, f.Verifie, f.VerifiedBy); err != nil {
		return nil, r.d.Err(err)
	}
	return r.GetFournisseur(ctx, f.ID)
}

// UpdateFournisseur persists ratings and the trust flag / Persiste les notes et l'indicateur de confiance
func (r *RoleStore) UpdateFournisseur(ctx context.Context, f *domain.Fournisseur) error {
	query := r.d.Rebind(`UPDATE fournisseurs
	          SET note_client = ?, note_entreprise = ?, verifie = ?, verified_by = ?, updated_at = CURRENT_TIMESTAMP
	          WHERE id = ?`)
	return r.execExpectingRow(ctx, query, f.NoteClient, f.NoteEntreprise, f.Verifie, f.VerifiedBy, f.ID)
}

// --- Livreur ---

func (r *RoleStore) scanLivreur(row interface{ Scan(...any) error }) (*domain.Livreur, error) {
	l := &domain.Livreur{}
	err := row.Scan(&l.ID, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, r.d.Err(err)
	}
	return l, nil
}

// GetLivreur retrieves one delivery-person profile / Récupère un profil livreur
func (r *RoleStore) GetLivreur(ctx context.Context, id int64) (*domain.Livreur, error) {
	query := r.d.Rebind(`SELECT id, created_by, created_at, updated_at FROM livreurs WHERE id = ?`)
	return r.scanLivreur(r.db.QueryRowContext(ctx, query, id))
}

// ListLivreurs lists delivery-person profiles / Liste les profils livreur
func (r *RoleStore) ListLivreurs(ctx context.Context) ([]*domain.Livreur, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, created_by, created_at, updated_at FROM livreurs ORDER BY id`)
	if err != nil {
		return nil, r.d.Err(err)
	}
	defer rows.Close()

	var out []*domain.Livreur
	for rows.Next() {
		l, err := r.scanLivreur(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, r.d.Err(err)
	}
	return out, nil
}

// CreateLivreur inserts a delivery-person profile / Insère un profil livreur
func (r *RoleStore) CreateLivreur(ctx context.Context, l *domain.Livreur) (*domain.Livreur, error) {
	query := r.d.Rebind(`INSERT INTO livreurs (id, created_by) VALUES (?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, l.ID, l.CreatedBy); err != nil {
		return nil, r.d.Err(err)
	}
	return r.GetLivreur(ctx, l.ID)
}

// UpdateLivreur refreshes the profile timestamp; the profile carries no
// mutable fields of its own yet.
func (r *RoleStore) UpdateLivreur(ctx context.Context, l *domain.Livreur) error {
	query := r.d.Rebind(`UPDATE livreurs SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	return r.execExpectingRow(ctx, query, l.ID)
}

// --- Client ---

func (r *RoleStore) scanClient(row interface{ Scan(...any) error }) (*domain.Client, error) {
	c := &domain.Client{}
	err := row.Scan(&c.ID, &c.AdresseLivraison, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, r.d.Err(err)
	}
	return c, nil
}

// GetClient retrieves one buyer profile / Récupère un profil client
func (r *RoleStore) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	query := r.d.Rebind(`SELECT id, adresse_livraison, created_at, updated_at FROM clients WHERE id = ?`)
	return r.scanClient(r.db.QueryRowContext(ctx, query, id))
}

// ListClients lists buyer profiles / Liste les profils client
func (r *RoleStore) ListClients(ctx context.Context) ([]*domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, adresse_livraison, created_at, updated_at FROM clients ORDER BY id`)
	if err != nil {
		return nil, r.d.Err(err)
	}
	defer rows.Close()

	var out []*domain.Client
	for rows.Next() {
		c, err := r.scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, r.d.Err(err)
	}
	return out, nil
}

// CreateClient inserts a buyer profile / Insère un profil client
func (r *RoleStore) CreateClient(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	query := r.d.Rebind(`INSERT INTO clients (id, adresse_livraison) VALUES (?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.AdresseLivraison); err != nil {
		return nil, r.d.Err(err)
	}
	return r.GetClient(ctx, c.ID)
}

// UpdateClient persists the buyer fields / Persiste les champs client
func (r *RoleStore) UpdateClient(ctx context.Context, c *domain.Client) error {
	query := r.d.Rebind(`UPDATE clients
	          SET adresse_livraison = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	return r.execExpectingRow(ctx, query, c.AdresseLivraison, c.ID)
}

// --- Entreprise ---

func (r *RoleStore) scanEntreprise(row interface{ Scan(...any) error }) (*domain.Entreprise, error) {
	e := &domain.Entreprise{}
	err := row.Scan(&e.ID, &e.SecteurActivite, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, r.d.Err(err)
	}
	return e, nil
}

// GetEntreprise retrieves one business-buyer profile / Récupère un profil entreprise
func (r *RoleStore) GetEntreprise(ctx context.Context, id int64) (*domain.Entreprise, error) {
	query := r.d.Rebind(`SELECT id, secteur_activite, created_at, updated_at FROM entreprises WHERE id = ?`)
	return r.scanEntreprise(r.db.QueryRowContext(ctx, query, id))
}

// ListEntreprises lists business-buyer profiles / Liste les profils entreprise
func (r *RoleStore) ListEntreprises(ctx context.Context) ([]*domain.Entreprise, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, secteur_activite, created_at, updated_at FROM entreprises ORDER BY id`)
	if err != nil {
		return nil, r.d.Err(err)
	}
	defer rows.Close()

	var out []*domain.Entreprise
	for rows.Next() {
		e, err := r.scanEntreprise(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, r.d.Err(err)
	}
	return out, nil
}

// CreateEntreprise inserts a business-buyer profile / Insère un profil entreprise
func (r *RoleStore) CreateEntreprise(ctx context.Context, e *domain.Entreprise) (*domain.Entreprise, error) {
	query := r.d.Rebind(`INSERT INTO entreprises (id, secteur_activite) VALUES (?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, e.ID, e.SecteurActivite); err != nil {
		return nil, r.d.Err(err)
	}
	return r.GetEntreprise(ctx, e.ID)
}

// UpdateEntreprise persists the business-buyer fields / Persiste les champs entreprise
func (r *RoleStore) UpdateEntreprise(ctx context.Context, e *domain.Entreprise) error {
	query := r.d.Rebind(`UPDATE entreprises
	          SET secteur_activite = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	return r.execExpectingRow(ctx, query, e.SecteurActivite, e.ID)
}

// execExpectingRow runs a pre-rebound statement and maps zero affected rows
// to ErrNoRecord.
func (r *RoleStore) execExpectingRow(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return r.d.Err(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return r.d.Err(err)
	}
	if affected == 0 {
		return db.ErrNoRecord
	}
	return nil
}
