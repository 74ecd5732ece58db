package web

import (
	"errors"
	"net/http"

	"github.com/Melvins45/maferme237/internal/dto"
	"github.com/Melvins45/maferme237/internal/repository/db"
	"github.com/Melvins45/maferme237/internal/service"
)

const maxAuthBodyBytes = 1 * 1024 * 1024 // 1MB

// setAccessCookie mirrors the token into an HttpOnly cookie so browser
// clients do not have to hold the token in script-reachable storage. API
// clients keep using the Authorization header.
func (h *Handler) setAccessCookie(w http.ResponseWriter, res *service.AuthResult) {
	conf := h.container.Config
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    res.Token.AccessToken,
		Domain:   conf.Auth.CookieDomain,
		Path:     conf.Auth.CookiePath,
		Expires:  res.Token.ExpiresAt,
		HttpOnly: true,
		Secure:   conf.Auth.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Register handles public self-registration / Gère l'auto-inscription publique
// POST /api/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxAuthBodyBytes) {
		return
	}

	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.container.AuthSvc.Register(r.Context(), req.ToInput())
	if err != nil {
		serviceError(w, r, err)
		return
	}

	h.setAccessCookie(w, res)
	jsonResponseStatus(w, http.StatusCreated, dto.AuthResultToDTO(res))
}

// Login handles credential login / Gère la connexion par identifiants
// POST /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxAuthBodyBytes) {
		return
	}

	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.container.AuthSvc.Login(r.Context(), req.Email, req.MotDePasse)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	h.setAccessCookie(w, res)
	jsonResponse(w, dto.AuthResultToDTO(res))
}

// LoginPrivileged handles the back-office login surface. Only holders of a
// gestionnaire or administrateur profile may pass.
// POST /api/login/privileged
func (h *Handler) LoginPrivileged(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxAuthBodyBytes) {
		return
	}

	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.container.AuthSvc.LoginPrivileged(r.Context(), req.Email, req.MotDePasse)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	h.setAccessCookie(w, res)
	jsonResponse(w, dto.AuthResultToDTO(res))
}

// Logout clears the access cookie / Efface le cookie d'accès
// POST /api/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	conf := h.container.Config
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Domain:   conf.Auth.CookieDomain,
		Path:     conf.Auth.CookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   conf.Auth.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
	jsonResponse(w, map[string]string{"message": "logged out"})
}

// Me returns the authenticated person's identity record together with the
// roles carried by the token.
// GET /api/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	personne, err := h.container.PersonneRepo.GetByID(r.Context(), claims.SubjectID)
	if err != nil {
		if errors.Is(err, db.ErrNoRecord) {
			ErrorResponse(w, "person not found", http.StatusNotFound)
			return
		}
		serviceError(w, r, err)
		return
	}

	jsonResponse(w, map[string]any{
		"personne": personne,
		"roles":    claims.Roles.Names(),
	})
}
