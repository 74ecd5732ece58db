package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Melvins45/maferme237/internal/apperr"
	"github.com/Melvins45/maferme237/internal/config"
	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/Melvins45/maferme237/internal/ports"
	"github.com/Melvins45/maferme237/internal/repository/db"
	"github.com/Melvins45/maferme237/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

// AuthMetricsRecorder records auth metrics / Enregistre les métriques d'authentification
type AuthMetricsRecorder interface {
	RecordLoginAttempt(status string)
	RecordRegistration(role string)
}

// AuthService handles registration and login / Gère l'inscription et la connexion
type AuthService struct {
	personnes ports.PersonneRepository
	roles     ports.RoleStore
	tx        ports.TxRunner
	conf      *config.Config
	metrics   AuthMetricsRecorder
}

// NewAuthService creates authentication service instance / Crée une instance de service d'authentification
func NewAuthService(
	personnes ports.PersonneRepository,
	roles ports.RoleStore,
	tx ports.TxRunner,
	conf *config.Config,
	metrics AuthMetricsRecorder,
) *AuthService {
	return &AuthService{
		personnes: personnes,
		roles:     roles,
		tx:        tx,
		conf:      conf,
		metrics:   metrics,
	}
}

// RegisterInput carries a public registration request. Roles must be a
// non-empty subset of the self-registerable profiles (client, fournisseur,
// entreprise); the optional per-role fields only apply when the matching
// role is requested.
type RegisterInput struct {
	Nom       string
	Prenom    string
	Email     string
	Password  string
	Telephone *string
	Roles     []domain.RoleName

	AdresseLivraison *string // client
	SecteurActivite  *string // entreprise
}

// AuthResult bundles the authenticated identity, its role profiles and the
// signed token.
type AuthResult struct {
	Personne *domain.Personne
	Roles    []domain.RoleName
	Token    *auth.Token
}

// Register creates a Personne plus the requested role profiles in a single
// transaction and returns a logged-in result.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if !isValidEmail(input.Email) {
		return nil, apperr.New(apperr.Validation, "invalid email address")
	}
	if !isStrongPassword(input.Password) {
		return nil, apperr.New(apperr.Validation, "password does not meet strength requirements")
	}
	if input.Nom == "" {
		return nil, apperr.New(apperr.Validation, "nom is required")
	}
	if len(input.Roles) == 0 {
		return nil, apperr.New(apperr.Validation, "at least one role is required")
	}
	seen := map[domain.RoleName]bool{}
	for _, role := range input.Roles {
		if !role.SelfRegisterable() {
			return nil, apperr.Newf(apperr.Validation, "role %s cannot self-register", role)
		}
		if seen[role] {
			return nil, apperr.Newf(apperr.Validation, "duplicate role %s", role)
		}
		seen[role] = true
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.conf.Security.BcryptCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}

	var personne *domain.Personne
	err = s.tx.InTx(ctx, func(tx ports.DBTX) error {
		personnes := s.personnes.WithTx(tx)
		roles := s.roles.WithTx(tx)

		p, err := personnes.Create(ctx, &domain.Personne{
			Nom:        input.Nom,
			Prenom:     input.Prenom,
			Email:      input.Email,
			MotDePasse: string(hash),
			Telephone:  input.Telephone,
		})
		if err != nil {
			return err
		}

		for _, role := range input.Roles {
			switch role {
			case domain.RoleClient:
				_, err = roles.CreateClient(ctx, &domain.Client{ID: p.ID, AdresseLivraison: input.AdresseLivraison})
			case domain.RoleFournisseur:
				_, err = roles.CreateFournisseur(ctx, &domain.Fournisseur{ID: p.ID})
			case domain.RoleEntreprise:
				_, err = roles.CreateEntreprise(ctx, &domain.Entreprise{ID: p.ID, SecteurActivite: input.SecteurActivite})
			}
			if err != nil {
				return err
			}
		}

		personne = p
		return nil
	})
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) || errors.Is(err, db.ErrDuplicateEmail) {
			return nil, apperr.New(apperr.Conflict, "email already registered")
		}
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperr.Wrap(apperr.Internal, "registration failed", err)
	}

	for _, role := range input.Roles {
		s.metrics.RecordRegistration(role.String())
	}
	slog.Info("personne registered", "personne_id", personne.ID, "roles", input.Roles)

	token, err := s.issueToken(personne.ID, input.Roles)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Personne: personne, Roles: input.Roles, Token: token}, nil
}

// Login authenticates against any held role profile / Authentifie sur n'importe quel profil détenu
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	return s.login(ctx, email, password, nil)
}

// LoginPrivileged authenticates staff accounts only: the person must hold at
// least one of the administrateur/gestionnaire/producteur/livreur profiles.
func (s *AuthService) LoginPrivileged(ctx context.Context, email, password string) (*AuthResult, error) {
	return s.login(ctx, email, password, []domain.RoleName{
		domain.RoleAdministrateur,
		domain.RoleGestionnaire,
		domain.RoleProducteur,
		domain.RoleLivreur,
	})
}

func (s *AuthService) login(ctx context.Context, email, password string, required []domain.RoleName) (*AuthResult, error) {
	personne, err := s.personnes.GetByEmail(ctx, email)
	if err != nil {
		// Same answer as a wrong password so accounts cannot be enumerated
		s.metrics.RecordLoginAttempt("failure")
		return nil, apperr.New(apperr.Unauthenticated, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(personne.MotDePasse), []byte(password)); err != nil {
		s.metrics.RecordLoginAttempt("failure")
		return nil, apperr.New(apperr.Unauthenticated, "invalid credentials")
	}

	held, err := s.roles.HeldRoles(ctx, personne.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load role profiles", err)
	}

	if required != nil {
		allowed := false
		for _, want := range required {
			for _, have := range held {
				if want == have {
					allowed = true
				}
			}
		}
		if !allowed {
			s.metrics.RecordLoginAttempt("failure")
			return nil, apperr.New(apperr.Forbidden, "account holds no privileged profile")
		}
	}

	token, err := s.issueToken(personne.ID, held)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordLoginAttempt("success")
	slog.Info("login", "personne_id", personne.ID, "roles", held)
	return &AuthResult{Personne: personne, Roles: held, Token: token}, nil
}

func (s *AuthService) issueToken(personID int64, roles []domain.RoleName) (*auth.Token, error) {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	token, err := auth.GenerateToken(personID, names, s.conf.Auth.JWTSecret, s.conf.Auth.TokenDuration)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to sign token", err)
	}
	return token, nil
}
