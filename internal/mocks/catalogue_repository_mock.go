package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/ports"
	"github.com/Melvins45/maferme237/internal/repository/db"
)

// MockCatalogueRepository is a mock implementation of ports.CatalogueRepository for testing
type MockCatalogueRepository struct {
	// Mock data storage
	Categories          map[int64]*domain.CategorieProduit
	Caracteristiques    map[int64]*domain.Caracteristique
	nextCategorieID     int64
	nextCaracteristique int64

	// Mock behavior flags
	GetError    error
	ListError   error
	CreateError error
	UpdateError error
	DeleteError error
}

// NewMockCatalogueRepository creates a new mock catalogue repository
func NewMockCatalogueRepository() *MockCatalogueRepository {
	return &MockCatalogueRepository{
		Categories:       make(map[int64]*domain.CategorieProduit),
		Caracteristiques: make(map[int64]*domain.Caracteristique),
	}
}

func (m *MockCatalogueRepository) GetCategorie(ctx context.Context, id int64) (*domain.CategorieProduit, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	c, exists := m.Categories[id]
	if !exists {
		return nil, db.ErrNoRecord
	}
	out := *c
	return &out, nil
}

func (m *MockCatalogueRepository) ListCategories(ctx context.Context) ([]*domain.CategorieProduit, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var list []*domain.CategorieProduit
	for _, c := range m.Categories {
		out := *c
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (m *MockCatalogueRepository) CreateCategorie(ctx context.Context, c *domain.CategorieProduit) (*domain.CategorieProduit, error) {
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	for _, existing := range m.Categories {
		if existing.Nom == c.Nom {
			return nil, db.ErrDuplicate
		}
	}
	// Skip ids occupied by seeded fixtures
	m.nextCategorieID++
	for m.Categories[m.nextCategorieID] != nil {
		m.nextCategorieID++
	}
	stored := *c
	stored.ID = m.nextCategorieID
	now := time.Now()
	stored.DateCreation = now
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.Categories[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *MockCatalogueRepository) UpdateCategorie(ctx context.Context, c *domain.CategorieProduit) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, exists := m.Categories[c.ID]; !exists {
		return db.ErrNoRecord
	}
	stored := *c
	stored.UpdatedAt = time.Now()
	m.Categories[c.ID] = &stored
	return nil
}

func (m *MockCatalogueRepository) DeleteCategorie(ctx context.Context, id int64) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	if _, exists := m.Categories[id]; !exists {
		return db.ErrNoRecord
	}
	delete(m.Categories, id)
	return nil
}

func (m *MockCatalogueRepository) GetCaracteristique(ctx context.Context, id int64) (*domain.Caracteristique, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	c, exists := m.Caracteristiques[id]
	if !exists {
		return nil, db.ErrNoRecord
	}
	out := *c
	return &out, nil
}

func (m *MockCatalogueRepository) GetCaracteristiqueByNom(ctx context.Context, nom string) (*domain.Caracteristique, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, c := range m.Caracteristiques {
		if c.Nom == nom {
			out := *c
			return &out, nil
		}
	}
	return nil, db.ErrNoRecord
}

func (m *MockCatalogueRepository) ListCaracteristiques(ctx context.Context) ([]*domain.Caracteristique, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var list []*domain.Caracteristique
	for _, c := range m.Caracteristiques {
		out := *c
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (m *MockCatalogueRepository) CreateCaracteristique(ctx context.Context, c *domain.Caracteristique) (*domain.Caracteristique, error) {
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	for _, existing := range m.Caracteristiques {
		if existing.Nom == c.Nom {
			return nil, db.ErrDuplicate
		}
	}
	m.nextCaracteristique++
	stored := *c
	stored.ID = m.nextCaracteristique
	if stored.TypeValeur == "" {
		stored.TypeValeur = "texte"
	}
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.Caracteristiques[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *MockCatalogueRepository) UpdateCaracteristique(ctx context.Context, c *domain.Caracteristique) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, exists := m.Caracteristiques[c.ID]; !exists {
		return db.ErrNoRecord
	}
	stored := *c
	stored.UpdatedAt = time.Now()
	m.Caracteristiques[c.ID] = &stored
	return nil
}

func (m *MockCatalogueRepository) DeleteCaracteristique(ctx context.Context, id int64) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	if _, exists := m.Caracteristiques[id]; !exists {
		return db.ErrNoRecord
	}
	delete(m.Caracteristiques, id)
	return nil
}

// WithTx returns the same mock instance for transaction support in tests.
func (m *MockCatalogueRepository) WithTx(tx ports.DBTX) ports.CatalogueRepository {
	return m
}
