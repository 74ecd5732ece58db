package web

import (
	"net/http"

	"github.com/Melvins45/maferme237/internal/dto"
)

const maxRoleBodyBytes = 1 * 1024 * 1024 // 1MB

// --- Administrateurs ---

// CreateAdministrateur provisions an administrator account.
// POST /api/administrateurs
func (h *Handler) CreateAdministrateur(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxRoleBodyBytes) {
		return
	}

	var req dto.CreateAdministrateurRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.container.RoleSvc.CreateAdministrateur(r.Context(), claimsFrom(r), req.ToInput(), req.NiveauAcces)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	jsonResponseStatus(w, http.StatusCreated, dto.ProfileToDTO(profile))
}

// ListAdministrateurs lists administrators visible to the caller's level.
// GET /api/administrateurs
func (h *Handler) ListAdministrateurs(w http.ResponseWriter, r *http.Request) {
	admins, err := h.container.RoleSvc.ListAdministrateurs(r.Context(), claimsFrom(r))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]any{"administrateurs": admins})
}

// GetAdministrateur returns one administrator profile with its Personne.
// GET /api/administrateurs/{id}
func (h *Handler) GetAdministrateur(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	profile, err := h.container.RoleSvc.GetAdministrateur(r.Context(), claimsFrom(r), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProfileToDTO(profile))
}

// UpdateAdministrateur patches identity fields and, optionally, the access level.
// PATCH /api/administrateurs/{id}
func (h *Handler) UpdateAdministrateur(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxRoleBodyBytes) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req dto.UpdateAdministrateurRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.container.RoleSvc.UpdateAdministrateur(r.Context(), claimsFrom(r), id, req.PersonnePatch, req.NiveauAcces)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProfileToDTO(profile))
}

// DeleteAdministrateur removes an administrator profile, leaving the Personne.
// DELETE /api/administrateurs/{id}
func (h *Handler) DeleteAdministrateur(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.container.RoleSvc.DeleteAdministrateur(r.Context(), claimsFrom(r), id); err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]string{"message": "administrateur deleted"})
}

// --- Gestionnaires ---

// CreateGestionnaire provisions a manager account.
// POST /api/gestionnaires
func (h *Handler) CreateGestionnaire(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxRoleBodyBytes) {
		return
	}

	var req dto.CreateGestionnaireRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.container.RoleSvc.CreateGestionnaire(r.Context(), claimsFrom(r), req.ToInput(), req.Role)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponseStatus(w, http.StatusCreated, dto.ProfileToDTO(profile))
}

// ListGestionnaires lists manager profiles / Liste les profils gestionnaires
// GET /api/gestionnaires
func (h *Handler) ListGestionnaires(w http.ResponseWriter, r *http.Request) {
	gestionnaires, err := h.container.RoleSvc.ListGestionnaires(r.Context(), claimsFrom(r))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]any{"gestionnaires": gestionnaires})
}

// GetGestionnaire returns one manager profile.
// GET /api/gestionnaires/{id}
func (h *Handler) GetGestionnaire(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	profile, err := h.container.RoleSvc.GetGestionnaire(r.Context(), claimsFrom(r), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProfileToDTO(profile))
}

// UpdateGestionnaire patches a manager profile.
// PATCH /api/gestionnaires/{id}
func (h *Handler) UpdateGestionnaire(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxRoleBodyBytes) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req dto.UpdateGestionnaireRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.container.RoleSvc.UpdateGestionnaire(r.Context(), claimsFrom(r), id, req.PersonnePatch, req.Role)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProfileToDTO(profile))
}

// DeleteGestionnaire removes a manager profile.
// DELETE /api/gestionnaires/{id}
func (h *Handler) DeleteGestionnaire(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.container.RoleSvc.DeleteGestionnaire(r.Context(), claimsFrom(r), id); err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]string{"message": "gestionnaire deleted"})
}

// --- Producteurs ---

// CreateProducteur provisions a producer account.
// POST /api/producteurs
func (h *Handler) CreateProducteur(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxRoleBodyBytes) {
		return
	}

	var req dto.CreateProducteurRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.container.RoleSvc.CreateProducteur(r.Context(), claimsFrom(r), req.ToInput(), req.IDCategorieProduit)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponseStatus(w, http.StatusCreated, dto.ProfileToDTO(profile))
}

// ListProducteurs lists producer profiles.
// GET /api/producteurs
func (h *Handler) ListProducteurs(w http.ResponseWriter, r *http.Request) {
	producteurs, err := h.container.RoleSvc.ListProducteurs(r.Context(), claimsFrom(r))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]any{"producteurs": producteurs})
}

// GetProducteur returns one producer profile.
// GET /api/producteurs/{id}
func (h *Handler) GetProducteur(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	profile, err := h.container.RoleSvc.GetProducteur(r.Context(), claimsFrom(r), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProfileToDTO(profile))
}

// UpdateProducteur patches a producer profile.
// PATCH /api/producteurs/{id}
func (h *Handler) UpdateProducteur(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxRoleBodyBytes) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req dto.UpdateProducteurRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.container.RoleSvc.UpdateProducteur(r.Context(), claimsFrom(r), id, req.PersonnePatch, req.IDCategorieProduit)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProfileToDTO(profile))
}

// DeleteProducteur removes a producer profile.
// DELETE /api/producteurs/{id}
func (h *Handler) DeleteProducteur(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.container.RoleSvc.DeleteProducteur(r.Context(), claimsFrom(r), id); err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]string{"message": "producteur deleted"})
}

// --- Fournisseurs ---

// ListFournisseurs is the public supplier directory / Annuaire public des fournisseurs
// GET /api/fournisseurs
func (h *Handler) ListFournisseurs(w http.ResponseWriter, r *http.Request) {
	fournisseurs, err := h.container.RoleSvc.ListFournisseurs(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]any{"fournisseurs": fournisseurs})
}

// GetFournisseur returns one supplier profile. Public, like the directory.
// GET /api/fournisseurs/{id}
func (h *Handler) GetFournisseur(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	profile, err := h.container.RoleSvc.GetFournisseur(r.Context(), claimsFrom(r), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProfileToDTO(profile))
}

// UpdateFournisseur patches a supplier profile. Moderation ratings are only
// accepted from a manager or administrator.
// PATCH /api/fournisseurs/{id}
func (h *Handler) UpdateFournisseur(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxRoleBodyBytes) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req dto.UpdateFournisseurRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.container.RoleSvc.UpdateFournisseur(r.Context(), claimsFrom(r), id, req.PersonnePatch, req.NoteClient, req.NoteEntreprise)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProfileToDTO(profile))
}

// DeleteFournisseur removes a supplier profile.
// DELETE /api/fournisseurs/{id}
func (h *Handler) DeleteFournisseur(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.container.RoleSvc.DeleteFournisseur(r.Context(), claimsFrom(r), id); err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]string{"message": "fournisseur deleted"})
}

// VerifyFournisseur marks a supplier as trusted / Marque un fournisseur comme vérifié
// POST /api/fournisseurs/{id}/verify
func (h *Handler) VerifyFournisseur(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	profile, err := h.container.RoleSvc.VerifyFournisseur(r.Context(), claimsFrom(r), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProfileToDTO(profile))
}

// UnverifyFournisseur withdraws the trusted mark. Administrator only.
// DELETE /api/fournisseurs/{id}/verify
func (h *Handler) UnverifyFournisseur(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	profile, err := h.container.RoleSvc.UnverifyFournisseur(r.Context(), claimsFrom(r), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProfileToDTO(profile))
}

// --- Livreurs ---

// CreateLivreur provisions a delivery-person account.
// POST /api/livreurs
func (h *Handler) CreateLivreur(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxRoleBodyBytes) {
		return
	}

	var req dto.CreatePersonRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.container.RoleSvc.CreateLivreur(r.Context(), claimsFrom(r), req.ToInput())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponseStatus(w, http.StatusCreated, dto.ProfileToDTO(profile))
}

// ListLivreurs lists delivery-person profiles.
// GET /api/livreurs
func (h *Handler) ListLivreurs(w http.ResponseWriter, r *http.Request) {
	livreurs, err := h.container.RoleSvc.ListLivreurs(r.Context(), claimsFrom(r))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]any{"livreurs": livreurs})
}

// GetLivreur returns one delivery-person profile.
// GET /api/livreurs/{id}
func (h *Handler) GetLivreur(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	profile, err := h.container.RoleSvc.GetLivreur(r.Context(), claimsFrom(r), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProfileToDTO(profile))
}

// UpdateLivreur patches a delivery-person profile.
// PATCH /api/livreurs/{id}
func (h *Handler) UpdateLivreur(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxRoleBodyBytes) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req dto.UpdateLivreurRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.container.RoleSvc.UpdateLivreur(r.Context(), claimsFrom(r), id, req.PersonnePatch)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProfileToDTO(profile))
}

// DeleteLivreur removes a delivery-person profile.
// DELETE /api/livreurs/{id}
func (h *Handler) DeleteLivreur(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.container.RoleSvc.DeleteLivreur(r.Context(), claimsFrom(r), id); err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]string{"message": "livreur deleted"})
}

// --- Clients ---

// ListClients lists client profiles. Restricted to staff.
// GET /api/clients
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.container.RoleSvc.ListClients(r.Context(), claimsFrom(r))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]any{"clients": clients})
}

// GetClient returns one client profile.
// GET /api/clients/{id}
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	profile, err := h.container.RoleSvc.GetClient(r.Context(), claimsFrom(r), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProfileToDTO(profile))
}

// UpdateClient patches a client profile.
// PATCH /api/clients/{id}
func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxRoleBodyBytes) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req dto.UpdateClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.container.RoleSvc.UpdateClient(r.Context(), claimsFrom(r), id, req.PersonnePatch, req.AdresseLivraison)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProfileToDTO(profile))
}

// DeleteClient removes a client profile.
// DELETE /api/clients/{id}
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.container.RoleSvc.DeleteClient(r.Context(), claimsFrom(r), id); err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]string{"message": "client deleted"})
}

// --- Entreprises ---

// ListEntreprises lists business profiles. Restricted to staff.
// GET /api/entreprises
func (h *Handler) ListEntreprises(w http.ResponseWriter, r *http.Request) {
	entreprises, err := h.container.RoleSvc.ListEntreprises(r.Context(), claimsFrom(r))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]any{"entreprises": entreprises})
}

// GetEntreprise returns one business profile.
// GET /api/entreprises/{id}
func (h *Handler) GetEntreprise(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	profile, err := h.container.RoleSvc.GetEntreprise(r.Context(), claimsFrom(r), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProfileToDTO(profile))
}

// UpdateEntreprise patches a business profile.
// PATCH /api/entreprises/{id}
func (h *Handler) UpdateEntreprise(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxRoleBodyBytes) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req dto.UpdateEntrepriseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.container.RoleSvc.UpdateEntreprise(r.Context(), claimsFrom(r), id, req.PersonnePatch, req.SecteurActivite)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProfileToDTO(profile))
}

// DeleteEntreprise removes a business profile.
// DELETE /api/entreprises/{id}
func (h *Handler) DeleteEntreprise(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.container.RoleSvc.DeleteEntreprise(r.Context(), claimsFrom(r), id); err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]string{"message": "entreprise deleted"})
}
