package web

import (
	"net/http"

	"github.com/Melvins45/maferme237/internal/dto"
	"github.com/Melvins45/maferme237/internal/service"
)

// Image blobs ride in the create payload, so products get a larger cap.
const maxProduitBodyBytes = 10 * 1024 * 1024 // 10MB

// CreateProduit creates a product in the state derived from the caller's
// roles: manager products start verified, supplier products wait for
// verification, producer products additionally start in production.
// POST /api/produits
func (h *Handler) CreateProduit(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxProduitBodyBytes) {
		return
	}

	var req dto.CreateProduitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	detail, err := h.container.ProduitSvc.Create(r.Context(), claimsFrom(r), req.ToInput())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponseStatus(w, http.StatusCreated, dto.ProduitDetailToDTO(detail))
}

// ListProduits is the public product listing / Liste publique des produits
// GET /api/produits
func (h *Handler) ListProduits(w http.ResponseWriter, r *http.Request) {
	produits, err := h.container.ProduitSvc.List(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]any{"produits": produits})
}

// GetProduit returns one product with images and characteristics. Public.
// GET /api/produits/{id}
func (h *Handler) GetProduit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	detail, err := h.container.ProduitSvc.Get(r.Context(), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProduitDetailToDTO(detail))
}

// UpdateProduit patches product fields. Managers patch anything; the owning
// supplier patches its own product minus commissions and marketplace stock.
// PATCH /api/produits/{id}
func (h *Handler) UpdateProduit(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxProduitBodyBytes) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req dto.UpdateProduitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	detail, err := h.container.ProduitSvc.Update(r.Context(), claimsFrom(r), id, req.ToPatch())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProduitDetailToDTO(detail))
}

// DeleteProduit removes a product with its images and characteristic values.
// DELETE /api/produits/{id}
func (h *Handler) DeleteProduit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.container.ProduitSvc.Delete(r.Context(), claimsFrom(r), id); err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]string{"message": "produit deleted"})
}

// VerifyProduit moves a waiting product to verified / Passe un produit en attente à vérifié
// POST /api/produits/{id}/verify
func (h *Handler) VerifyProduit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	detail, err := h.container.ProduitSvc.Verify(r.Context(), claimsFrom(r), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProduitDetailToDTO(detail))
}

// UnverifyProduit moves a verified product back to waiting.
// DELETE /api/produits/{id}/verify
func (h *Handler) UnverifyProduit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	detail, err := h.container.ProduitSvc.Unverify(r.Context(), claimsFrom(r), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProduitDetailToDTO(detail))
}

// FinishProduction closes the production cycle of a producer product.
// POST /api/produits/{id}/production/finish
func (h *Handler) FinishProduction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	detail, err := h.container.ProduitSvc.FinishProduction(r.Context(), claimsFrom(r), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, dto.ProduitDetailToDTO(detail))
}

// AddProduitImage attaches an image; the first one becomes the main image.
// POST /api/produits/{id}/images
func (h *Handler) AddProduitImage(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxProduitBodyBytes) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req dto.ImageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	image, err := h.container.ProduitSvc.AddImage(r.Context(), claimsFrom(r), id, service.ImageInput{
		Blob:     req.Blob,
		TexteAlt: req.TexteAlt,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponseStatus(w, http.StatusCreated, image)
}

// RemoveProduitImage detaches an image from a product.
// DELETE /api/produits/{id}/images/{imageID}
func (h *Handler) RemoveProduitImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}
	imageID, err := pathID(r, "imageID")
	if err != nil {
		ErrorResponse(w, "invalid image id", http.StatusBadRequest)
		return
	}

	if err := h.container.ProduitSvc.RemoveImage(r.Context(), claimsFrom(r), id, imageID); err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]string{"message": "image removed"})
}

// SetProduitCaracteristique attaches or updates a characteristic value by
// name. An unknown name creates the definition on the fly, attributed to
// the caller.
// PUT /api/produits/{id}/caracteristiques
func (h *Handler) SetProduitCaracteristique(w http.ResponseWriter, r *http.Request) {
	if !limitRequestBody(w, r, maxRoleBodyBytes) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req dto.CaracteristiqueValeurRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pc, err := h.container.ProduitSvc.SetCaracteristique(r.Context(), claimsFrom(r), id, service.CaracteristiqueValeur{
		IDCaracteristique: req.IDCaracteristique,
		Nom:               req.Nom,
		TypeValeur:        req.TypeValeur,
		Unite:             req.Unite,
		Valeur:            req.Valeur,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, pc)
}

// UnsetProduitCaracteristique detaches a characteristic value from a product.
// DELETE /api/produits/{id}/caracteristiques/{caracteristiqueID}
func (h *Handler) UnsetProduitCaracteristique(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, "invalid id", http.StatusBadRequest)
		return
	}
	caracID, err := pathID(r, "caracteristiqueID")
	if err != nil {
		ErrorResponse(w, "invalid caracteristique id", http.StatusBadRequest)
		return
	}

	if err := h.container.ProduitSvc.UnsetCaracteristique(r.Context(), claimsFrom(r), id, caracID); err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, map[string]string{"message": "caracteristique removed"})
}
