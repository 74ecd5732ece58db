package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/ports"
	"github.com/Melvins45/maferme237/internal/repository/db"
)

type caracKey struct {
	produit, caracteristique int64
}

// MockProduitRepository is a mock implementation of ports.ProduitRepository for testing
type MockProduitRepository struct {
	// Mock data storage
	Produits         map[int64]*domain.Produit
	Images           map[int64]*domain.ProduitImage
	Caracteristiques map[caracKey]*domain.ProduitCaracteristique
	nextProduitID    int64
	nextImageID      int64

	// Mock behavior flags
	GetError    error
	ListError   error
	CreateError error
	UpdateError error
	DeleteError error

	// Call tracking
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
}

// NewMockProduitRepository creates a new mock produit repository
func NewMockProduitRepository() *MockProduitRepository {
	return &MockProduitRepository{
		Produits:         make(map[int64]*domain.Produit),
		Images:           make(map[int64]*domain.ProduitImage),
		Caracteristiques: make(map[caracKey]*domain.ProduitCaracteristique),
	}
}

func (m *MockProduitRepository) GetProduit(ctx context.Context, id int64) (*domain.Produit, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	p, exists := m.Produits[id]
	if !exists {
		return nil, db.ErrNoRecord
	}
	out := *p
	return &out, nil
}

func (m *MockProduitRepository) ListProduits(ctx context.Context) ([]*domain.Produit, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var list []*domain.Produit
	for _, p := range m.Produits {
		out := *p
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (m *MockProduitRepository) CreateProduit(ctx context.Context, p *domain.Produit) (*domain.Produit, error) {
	m.CreateCalls++
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	m.nextProduitID++
	stored := *p
	stored.ID = m.nextProduitID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.Produits[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *MockProduitRepository) UpdateProduit(ctx context.Context, p *domain.Produit) error {
	m.UpdateCalls++
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, exists := m.Produits[p.ID]; !exists {
		return db.ErrNoRecord
	}
	stored := *p
	stored.UpdatedAt = time.Now()
	m.Produits[p.ID] = &stored
	return nil
}

func (m *MockProduitRepository) DeleteProduit(ctx context.Context, id int64) error {
	m.DeleteCalls++
	if m.DeleteError != nil {
		return m.DeleteError
	}
	if _, exists := m.Produits[id]; !exists {
		return db.ErrNoRecord
	}
	delete(m.Produits, id)
	for imgID, img := range m.Images {
		if img.IDProduit == id {
			delete(m.Images, imgID)
		}
	}
	for key := range m.Caracteristiques {
		if key.produit == id {
			delete(m.Caracteristiques, key)
		}
	}
	return nil
}

func (m *MockProduitRepository) ListImages(ctx context.Context, produitID int64) ([]*domain.ProduitImage, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var list []*domain.ProduitImage
	for _, img := range m.Images {
		if img.IDProduit == produitID {
			out := *img
			list = append(list, &out)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].EstPrincipale != list[j].EstPrincipale {
			return list[i].EstPrincipale
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (m *MockProduitRepository) CreateImage(ctx context.Context, img *domain.ProduitImage) (*domain.ProduitImage, error) {
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	if _, exists := m.Produits[img.IDProduit]; !exists {
		return nil, db.ErrForeignKeyViolation
	}
	m.nextImageID++
	stored := *img
	stored.ID = m.nextImageID
	stored.CreatedAt = time.Now()
	m.Images[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *MockProduitRepository) DeleteImage(ctx context.Context, id int64) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	if _, exists := m.Images[id]; !exists {
		return db.ErrNoRecord
	}
	delete(m.Images, id)
	return nil
}

func (m *MockProduitRepository) ListCaracteristiques(ctx context.Context, produitID int64) ([]*domain.ProduitCaracteristique, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var list []*domain.ProduitCaracteristique
	for key, pc := range m.Caracteristiques {
		if key.produit == produitID {
			out := *pc
			list = append(list, &out)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].IDCaracteristique < list[j].IDCaracteristique })
	return list, nil
}

func (m *MockProduitRepository) SetCaracteristique(ctx context.Context, pc *domain.ProduitCaracteristique) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, exists := m.Produits[pc.IDProduit]; !exists {
		return db.ErrForeignKeyViolation
	}
	stored := *pc
	m.Caracteristiques[caracKey{pc.IDProduit, pc.IDCaracteristique}] = &stored
	return nil
}

func (m *MockProduitRepository) UnsetCaracteristique(ctx context.Context, produitID, caracteristiqueID int64) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	key := caracKey{produitID, caracteristiqueID}
	if _, exists := m.Caracteristiques[key]; !exists {
		return db.ErrNoRecord
	}
	delete(m.Caracteristiques, key)
	return nil
}

// WithTx returns the same mock instance for transaction support in tests.
func (m *MockProduitRepository) WithTx(tx ports.DBTX) ports.ProduitRepository {
	return m
}
