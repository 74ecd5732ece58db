package service

import (
	"context"
	"testing"
	"time"

	"github.com/Melvins45/maferme237/internal/apperr"
	"github.com/Melvins45/maferme237/internal/config"
	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret-key-at-least-32-characters",
			TokenDuration: 168 * time.Hour,
		},
		Security: config.SecurityConfig{
			BcryptCost: bcrypt.MinCost,
		},
	}
}

type authFixture struct {
	svc       *AuthService
	personnes *mocks.MockPersonneRepository
	roles     *mocks.MockRoleStore
	metrics   *mocks.MockMetrics
}

func newAuthFixture() *authFixture {
	personnes := mocks.NewMockPersonneRepository()
	roles := mocks.NewMockRoleStore()
	metrics := mocks.NewMockMetrics()
	svc := NewAuthService(personnes, roles, mocks.NewMockTxRunner(), newTestConfig(), metrics)
	return &authFixture{svc: svc, personnes: personnes, roles: roles, metrics: metrics}
}

func TestAuthService_Register(t *testing.T) {
	f := newAuthFixture()

	result, err := f.svc.Register(context.Background(), RegisterInput{
		Nom:      "Ngono",
		Prenom:   "Alice",
		Email:    "alice@example.com",
		Password: "Str0ngPass!word",
		Roles:    []domain.RoleName{domain.RoleClient, domain.RoleFournisseur},
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotZero(t, result.Personne.ID)
	assert.NotEmpty(t, result.Token.AccessToken)
	assert.ElementsMatch(t, []domain.RoleName{domain.RoleClient, domain.RoleFournisseur}, result.Roles)

	_, hasClient := f.roles.Clients[result.Personne.ID]
	_, hasFournisseur := f.roles.Fournisseurs[result.Personne.ID]
	assert.True(t, hasClient)
	assert.True(t, hasFournisseur)

	assert.Equal(t, 1, f.metrics.Registrations["client"])
	assert.Equal(t, 1, f.metrics.Registrations["fournisseur"])
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input RegisterInput
	}{
		{
			name:  "invalid email",
			input: RegisterInput{Nom: "N", Email: "not-an-email", Password: "Str0ngPass!word", Roles: []domain.RoleName{domain.RoleClient}},
		},
		{
			name:  "weak password",
			input: RegisterInput{Nom: "N", Email: "a@b.com", Password: "weak", Roles: []domain.RoleName{domain.RoleClient}},
		},
		{
			name:  "missing nom",
			input: RegisterInput{Email: "a@b.com", Password: "Str0ngPass!word", Roles: []domain.RoleName{domain.RoleClient}},
		},
		{
			name:  "no roles",
			input: RegisterInput{Nom: "N", Email: "a@b.com", Password: "Str0ngPass!word"},
		},
		{
			name:  "provisioned role",
			input: RegisterInput{Nom: "N", Email: "a@b.com", Password: "Str0ngPass!word", Roles: []domain.RoleName{domain.RoleAdministrateur}},
		},
		{
			name:  "duplicate role",
			input: RegisterInput{Nom: "N", Email: "a@b.com", Password: "Str0ngPass!word", Roles: []domain.RoleName{domain.RoleClient, domain.RoleClient}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			_, err := f.svc.Register(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, apperr.Validation, apperr.KindOf(err))
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	input := RegisterInput{
		Nom:      "Ngono",
		Email:    "alice@example.com",
		Password: "Str0ngPass!word",
		Roles:    []domain.RoleName{domain.RoleClient},
	}

	_, err := f.svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), RegisterInput{
		Nom:      "Ngono",
		Email:    "alice@example.com",
		Password: "Str0ngPass!word",
		Roles:    []domain.RoleName{domain.RoleClient},
	})
	require.NoError(t, err)

	result, err := f.svc.Login(context.Background(), "alice@example.com", "Str0ngPass!word")
	require.NoError(t, err)
	assert.Equal(t, []domain.RoleName{domain.RoleClient}, result.Roles)
	assert.NotEmpty(t, result.Token.AccessToken)
	assert.Equal(t, 1, f.metrics.LoginAttempts["success"])
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), RegisterInput{
		Nom:      "Ngono",
		Email:    "alice@example.com",
		Password: "Str0ngPass!word",
		Roles:    []domain.RoleName{domain.RoleClient},
	})
	require.NoError(t, err)

	_, wrongPass := f.svc.Login(context.Background(), "alice@example.com", "wrong-password-1!")
	_, unknown := f.svc.Login(context.Background(), "nobody@example.com", "Str0ngPass!word")

	require.Error(t, wrongPass)
	require.Error(t, unknown)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(wrongPass))
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(unknown))
	// Same message whether the account exists or not
	assert.Equal(t, wrongPass.Error(), unknown.Error())
	assert.Equal(t, 2, f.metrics.LoginAttempts["failure"])
}

func TestAuthService_LoginPrivileged(t *testing.T) {
	f := newAuthFixture()
	result, err := f.svc.Register(context.Background(), RegisterInput{
		Nom:      "Ngono",
		Email:    "alice@example.com",
		Password: "Str0ngPass!word",
		Roles:    []domain.RoleName{domain.RoleClient},
	})
	require.NoError(t, err)

	_, err = f.svc.LoginPrivileged(context.Background(), "alice@example.com", "Str0ngPass!word")
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// Same account with a gestionnaire profile passes
	_, err = f.roles.CreateGestionnaire(context.Background(), &domain.Gestionnaire{ID: result.Personne.ID})
	require.NoError(t, err)

	priv, err := f.svc.LoginPrivileged(context.Background(), "alice@example.com", "Str0ngPass!word")
	require.NoError(t, err)
	assert.Contains(t, priv.Roles, domain.RoleGestionnaire)
}
