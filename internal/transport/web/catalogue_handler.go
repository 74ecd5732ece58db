package web

import (
	"net/http"

	"github.com/Melvins45/maferme237/internal/dto"
)

// --- Catégories ---

// CreateCategorie creates a product category / Crée une catégorie de produits
// POST /api/categories
func (h *Handler) CreateCategorie(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxRoleBodyBytes) {
		return
	}

	var req dto.CategorieRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	categorie, err := h.container.CatalogueSvc.CreateCategorie(r.Context(), claimsFrom(r), req.ToInput())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponseStatus(w, http.StatusCreated, categorie)
}

// ListCategories is the public category listing / Liste publique des catégories
// GET /api/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.container.CatalogueSvc.ListCategories(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]any{"categories": categories})
}

// GetCategorie returns one category. Public.
// GET /api/categories/{id}
func (h *Handler) GetCategorie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	categorie, err := h.container.CatalogueSvc.GetCategorie(r.Context(), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, categorie)
}

// UpdateCategorie renames or re-describes a category. Managers or the
// creator only.
// PATCH /api/categories/{id}
func (h *Handler) UpdateCategorie(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxRoleBodyBytes) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req dto.CategorieRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	categorie, err := h.container.CatalogueSvc.UpdateCategorie(r.Context(), claimsFrom(r), id, req.ToInput())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, categorie)
}

// DeleteCategorie removes a category. Managers only.
// DELETE /api/categories/{id}
func (h *Handler) DeleteCategorie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.container.CatalogueSvc.DeleteCategorie(r.Context(), claimsFrom(r), id); err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]string{"message": "categorie deleted"})
}

// --- Caractéristiques ---

// CreateCaracteristique creates a characteristic definition.
// POST /api/caracteristiques
func (h *Handler) CreateCaracteristique(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxRoleBodyBytes) {
		return
	}

	var req dto.CaracteristiqueRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	carac, err := h.container.CatalogueSvc.CreateCaracteristique(r.Context(), claimsFrom(r), req.ToInput())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponseStatus(w, http.StatusCreated, carac)
}

// ListCaracteristiques is the public definition listing.
// GET /api/caracteristiques
func (h *Handler) ListCaracteristiques(w http.ResponseWriter, r *http.Request) {
	caracs, err := h.container.CatalogueSvc.ListCaracteristiques(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]any{"caracteristiques": caracs})
}

// GetCaracteristique returns one definition. Public.
// GET /api/caracteristiques/{id}
func (h *Handler) GetCaracteristique(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	carac, err := h.container.CatalogueSvc.GetCaracteristique(r.Context(), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, carac)
}

// UpdateCaracteristique edits a definition. Managers or the creator only.
// PATCH /api/caracteristiques/{id}
func (h *Handler) UpdateCaracteristique(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxRoleBodyBytes) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req dto.CaracteristiqueRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	carac, err := h.container.CatalogueSvc.UpdateCaracteristique(r.Context(), claimsFrom(r), id, req.ToInput())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, carac)
}

// DeleteCaracteristique removes a definition. Managers only.
// DELETE /api/caracteristiques/{id}
func (h *Handler) DeleteCaracteristique(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.container.CatalogueSvc.DeleteCaracteristique(r.Context(), claimsFrom(r), id); err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]string{"message": "caracteristique deleted"})
}
