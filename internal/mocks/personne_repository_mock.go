package mocks

import (
	"context"
	"time"

	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/ports"
	"github.com/Melvins45/maferme237/internal/repository/db"
)

// MockPersonneRepository is a mock implementation of ports.PersonneRepository for testing
type MockPersonneRepository struct {
	// Mock data storage
	Personnes map[int64]*domain.Personne
	nextID    int64

	// Mock behavior flags
	CreateError     error
	GetByIDError    error
	GetByEmailError error
	UpdateError     error

	// Call tracking
	CreateCalls     int
	GetByIDCalls    int
	GetByEmailCalls int
	UpdateCalls     int
}

// NewMockPersonneRepository creates a new mock personne repository
func NewMockPersonneRepository() *MockPersonneRepository {
	return &MockPersonneRepository{
		Personnes: make(map[int64]*domain.Personne),
	}
}

func (m *MockPersonneRepository) Create(ctx context.Context, p *domain.Personne) (*domain.Personne, error) {
	m.CreateCalls++
	if m.CreateError != nil {
		return nil, m.CreateError
	}

	for _, existing := range m.Personnes {
		if existing.Email == p.Email {
			return nil, db.ErrDuplicateEmail
		}
	}

	m.nextID++
	stored := *p
	stored.ID = m.nextID
	now := time.Now()
	stored.DateCreationCompte = now
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.Personnes[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *MockPersonneRepository) GetByID(ctx context.Context, id int64) (*domain.Personne, error) {
	m.GetByIDCalls++
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}

	p, exists := m.Personnes[id]
	if !exists {
		return nil, db.ErrNoRecord
	}
	out := *p
	return &out, nil
}

func (m *MockPersonneRepository) GetByEmail(ctx context.Context, email string) (*domain.Personne, error) {
	m.GetByEmailCalls++
	if m.GetByEmailError != nil {
		return nil, m.GetByEmailError
	}

	for _, p := range m.Personnes {
		if p.Email == email {
			out := *p
			return &out, nil
		}
	}
	return nil, db.ErrNoRecord
}

func (m *MockPersonneRepository) Update(ctx context.Context, p *domain.Personne) error {
	m.UpdateCalls++
	if m.UpdateError != nil {
		return m.UpdateError
	}

	stored, exists := m.Personnes[p.ID]
	if !exists {
		return db.ErrNoRecord
	}
	for id, other := range m.Personnes {
		if id != p.ID && other.Email == p.Email {
			return db.ErrDuplicateEmail
		}
	}
	password := stored.MotDePasse
	updated := *p
	updated.MotDePasse = password
	updated.UpdatedAt = time.Now()
	m.Personnes[p.ID] = &updated
	return nil
}

// WithTx returns the same mock instance for transaction support in tests.
func (m *MockPersonneRepository) WithTx(tx ports.DBTX) ports.PersonneRepository {
	return m
}
