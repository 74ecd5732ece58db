package mocks

import (
	"context"
	"time"

	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/ports"
	"github.com/Melvins45/maferme237/internal/repository/db"
)

// MockRoleStore is a mock implementation of ports.RoleStore for testing
type MockRoleStore struct {
	// Mock data storage, one map per profile table
	Administrateurs map[int64]*domain.Administrateur
	Gestionnaires   map[int64]*domain.Gestionnaire
	Producteurs     map[int64]*domain.Producteur
	Fournisseurs    map[int64]*domain.Fournisseur
	Livreurs        map[int64]*domain.Livreur
	Clients         map[int64]*domain.Client
	Entreprises     map[int64]*domain.Entreprise

	// Mock behavior flags
	GetError    error
	ListError   error
	CreateError error
	UpdateError error
	DeleteError error

	// Call tracking
	DeleteRoleCalls int
	HeldRolesCalls  int
}

// NewMockRoleStore creates a new mock role store
func NewMockRoleStore() *MockRoleStore {
	return &MockRoleStore{
		Administrateurs: make(map[int64]*domain.Administrateur),
		Gestionnaires:   make(map[int64]*domain.Gestionnaire),
		Producteurs:     make(map[int64]*domain.Producteur),
		Fournisseurs:    make(map[int64]*domain.Fournisseur),
		Livreurs:        make(map[int64]*domain.Livreur),
		Clients:         make(map[int64]*domain.Client),
		Entreprises:     make(map[int64]*domain.Entreprise),
	}
}

func (m *MockRoleStore) HeldRoles(ctx context.Context, personID int64) ([]domain.RoleName, error) {
	m.HeldRolesCalls++
	if m.ListError != nil {
		return nil, m.ListError
	}

	var held []domain.RoleName
	for _, role := range domain.AllRoles() {
		has := false
		switch role {
		case domain.RoleClient:
			_, has = m.Clients[personID]
		case domain.RoleFournisseur:
			_, has = m.Fournisseurs[personID]
		case domain.RoleProducteur:
			_, has = m.Producteurs[personID]
		case domain.RoleGestionnaire:
			_, has = m.Gestionnaires[personID]
		case domain.RoleAdministrateur:
			_, has = m.Administrateurs[personID]
		case domain.RoleLivreur:
			_, has = m.Livreurs[personID]
		case domain.RoleEntreprise:
			_, has = m.Entreprises[personID]
		}
		if has {
			held = append(held, role)
		}
	}
	return held, nil
}

func (m *MockRoleStore) DeleteRole(ctx context.Context, role domain.RoleName, id int64) error {
	m.DeleteRoleCalls++
	if m.DeleteError != nil {
		return m.DeleteError
	}

	switch role {
	case domain.RoleClient:
		delete(m.Clients, id)
	case domain.RoleFournisseur:
		delete(m.Fournisseurs, id)
	case domain.RoleProducteur:
		delete(m.Producteurs, id)
	case domain.RoleGestionnaire:
		delete(m.Gestionnaires, id)
	case domain.RoleAdministrateur:
		delete(m.Administrateurs, id)
	case domain.RoleLivreur:
		delete(m.Livreurs, id)
	case domain.RoleEntreprise:
		delete(m.Entreprises, id)
	}
	return nil
}

func (m *MockRoleStore) GetAdministrateur(ctx context.Context, id int64) (*domain.Administrateur, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	a, exists := m.Administrateurs[id]
	if !exists {
		return nil, db.ErrNoRecord
	}
	out := *a
	return &out, nil
}

func (m *MockRoleStore) ListAdministrateurs(ctx context.Context, minLevel int) ([]*domain.Administrateur, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var list []*domain.Administrateur
	for _, a := range m.Administrateurs {
		if a.NiveauAcces >= minLevel {
			out := *a
			list = append(list, &out)
		}
	}
	return list, nil
}

func (m *MockRoleStore) CreateAdministrateur(ctx context.Context, a *domain.Administrateur) (*domain.Administrateur, error) {
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	if _, exists := m.Administrateurs[a.ID]; exists {
		return nil, db.ErrDuplicate
	}
	stored := *a
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.Administrateurs[a.ID] = &stored
	out := stored
	return &out, nil
}

func (m *MockRoleStore) UpdateAdministrateur(ctx context.Context, a *domain.Administrateur) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, exists := m.Administrateurs[a.ID]; !exists {
		return db.ErrNoRecord
	}
	stored := *a
	stored.UpdatedAt = time.Now()
	m.Administrateurs[a.ID] = &stored
	return nil
}

func (m *MockRoleStore) GetGestionnaire(ctx context.Context, id int64) (*domain.Gestionnaire, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	g, exists := m.Gestionnaires[id]
	if !exists {
		return nil, db.ErrNoRecord
	}
	out := *g
	return &out, nil
}

func (m *MockRoleStore) ListGestionnaires(ctx context.Context) ([]*domain.Gestionnaire, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var list []*domain.Gestionnaire
	for _, g := range m.Gestionnaires {
		out := *g
		list = append(list, &out)
	}
	return list, nil
}

func (m *MockRoleStore) CreateGestionnaire(ctx context.Context, g *domain.Gestionnaire) (*domain.Gestionnaire, error) {
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	if _, exists := m.Gestionnaires[g.ID]; exists {
		return nil, db.ErrDuplicate
	}
	stored := *g
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.Gestionnaires[g.ID] = &stored
	out := stored
	return &out, nil
}

func (m *MockRoleStore) UpdateGestionnaire(ctx context.Context, g *domain.Gestionnaire) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, exists := m.Gestionnaires[g.ID]; !exists {
		return db.ErrNoRecord
	}
	stored := *g
	stored.UpdatedAt = time.Now()
	m.Gestionnaires[g.ID] = &stored
	return nil
}

func (m *MockRoleStore) GetProducteur(ctx context.Context, id int64) (*domain.Producteur, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	p, exists := m.Producteurs[id]
	if !exists {
		return nil, db.ErrNoRecord
	}
	out := *p
	return &out, nil
}

func (m *MockRoleStore) ListProducteurs(ctx context.Context) ([]*domain.Producteur, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var list []*domain.Producteur
	for _, p := range m.Producteurs {
		out := *p
		list = append(list, &out)
	}
	return list, nil
}

func (m *MockRoleStore) CreateProducteur(ctx context.Context, p *domain.Producteur) (*domain.Producteur, error) {
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	if _, exists := m.Producteurs[p.ID]; exists {
		return nil, db.ErrDuplicate
	}
	stored := *p
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.Producteurs[p.ID] = &stored
	out := stored
	return &out, nil
}

func (m *MockRoleStore) UpdateProducteur(ctx context.Context, p *domain.Producteur) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, exists := m.Producteurs[p.ID]; !exists {
		return db.ErrNoRecord
	}
	stored := *p
	stored.UpdatedAt = time.Now()
	m.Producteurs[p.ID] = &stored
	return nil
}

func (m *MockRoleStore) GetFournisseur(ctx context.Context, id int64) (*domain.Fournisseur, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	f, exists := m.Fournisseurs[id]
	if !exists {
		return nil, db.ErrNoRecord
	}
	out := *f
	return &out, nil
}

func (m *MockRoleStore) ListFournisseurs(ctx context.Context) ([]*domain.Fournisseur, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var list []*domain.Fournisseur
	for _, f := range m.Fournisseurs {
		out := *f
		list = append(list, &out)
	}
	return list, nil
}

func (m *MockRoleStore) CreateFournisseur(ctx context.Context, f *domain.Fournisseur) (*domain.Fournisseur, error) {
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	if _, exists := m.Fournisseurs[f.ID]; exists {
		return nil, db.ErrDuplicate
	}
	stored := *f
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.Fournisseurs[f.ID] = &stored
	out := stored
	return &out, nil
}

func (m *MockRoleStore) UpdateFournisseur(ctx context.Context, f *domain.Fournisseur) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, exists := m.Fournisseurs[f.ID]; !exists {
		return db.ErrNoRecord
	}
	stored := *f
	stored.UpdatedAt = time.Now()
	m.Fournisseurs[f.ID] = &stored
	return nil
}

func (m *MockRoleStore) GetLivreur(ctx context.Context, id int64) (*domain.Livreur, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	l, exists := m.Livreurs[id]
	if !exists {
		return nil, db.ErrNoRecord
	}
	out := *l
	return &out, nil
}

func (m *MockRoleStore) ListLivreurs(ctx context.Context) ([]*domain.Livreur, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var list []*domain.Livreur
	for _, l := range m.Livreurs {
		out := *l
		list = append(list, &out)
	}
	return list, nil
}

func (m *MockRoleStore) CreateLivreur(ctx context.Context, l *domain.Livreur) (*domain.Livreur, error) {
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	if _, exists := m.Livreurs[l.ID]; exists {
		return nil, db.ErrDuplicate
	}
	stored := *l
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.Livreurs[l.ID] = &stored
	out := stored
	return &out, nil
}

func (m *MockRoleStore) UpdateLivreur(ctx context.Context, l *domain.Livreur) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, exists := m.Livreurs[l.ID]; !exists {
		return db.ErrNoRecord
	}
	stored := *l
	stored.UpdatedAt = time.Now()
	m.Livreurs[l.ID] = &stored
	return nil
}

func (m *MockRoleStore) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	c, exists := m.Clients[id]
	if !exists {
		return nil, db.ErrNoRecord
	}
	out := *c
	return &out, nil
}

func (m *MockRoleStore) ListClients(ctx context.Context) ([]*domain.Client, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var list []*domain.Client
	for _, c := range m.Clients {
		out := *c
		list = append(list, &out)
	}
	return list, nil
}

func (m *MockRoleStore) CreateClient(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	if _, exists := m.Clients[c.ID]; exists {
		return nil, db.ErrDuplicate
	}
	stored := *c
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.Clients[c.ID] = &stored
	out := stored
	return &out, nil
}

func (m *MockRoleStore) UpdateClient(ctx context.Context, c *domain.Client) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, exists := m.Clients[c.ID]; !exists {
		return db.ErrNoRecord
	}
	stored := *c
	stored.UpdatedAt = time.Now()
	m.Clients[c.ID] = &stored
	return nil
}

func (m *MockRoleStore) GetEntreprise(ctx context.Context, id int64) (*domain.Entreprise, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	e, exists := m.Entreprises[id]
	if !exists {
		return nil, db.ErrNoRecord
	}
	out := *e
	return &out, nil
}

func (m *MockRoleStore) ListEntreprises(ctx context.Context) ([]*domain.Entreprise, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var list []*domain.Entreprise
	for _, e := range m.Entreprises {
		out := *e
		list = append(list, &out)
	}
	return list, nil
}

func (m *MockRoleStore) CreateEntreprise(ctx context.Context, e *domain.Entreprise) (*domain.Entreprise, error) {
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	if _, exists := m.Entreprises[e.ID]; exists {
		return nil, db.ErrDuplicate
	}
	stored := *e
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.Entreprises[e.ID] = &stored
	out := stored
	return &out, nil
}

func (m *MockRoleStore) UpdateEntreprise(ctx context.Context, e *domain.Entreprise) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, exists := m.Entreprises[e.ID]; !exists {
		return db.ErrNoRecord
	}
	stored := *e
	stored.UpdatedAt = time.Now()
	m.Entreprises[e.ID] = &stored
	return nil
}

// WithTx returns the same mock instance for transaction support in tests.
func (m *MockRoleStore) WithTx(tx ports.DBTX) ports.RoleStore {
	return m
}
