package web

import (
	"net/http"
	"time"

	"github.com/Melvins45/maferme237/internal/app"
	"github.com/Melvins45/maferme237/internal/config"
	"github.com/Melvins45/maferme237/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMux creates and configures the HTTP router / Crée et configure le routeur HTTP
func NewMux(h *Handler, conf *config.Config, container *app.Container) http.Handler {
	mux := http.NewServeMux()
	mw := NewMiddleware(conf, container.Metrics)

	// Health check endpoints (no auth, no rate limiting for load balancers)
	// These endpoints are typically called frequently by monitoring systems
	// Note: SecurityHeaders is applied globally below, so no need to add it here
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /readiness", h.ReadinessCheck)

	// Prometheus metrics endpoint (protected - requires admin authentication)
	// This endpoint exposes internal system metrics and should only be accessible to administrators
	// If you need Prometheus to scrape without auth, consider:
	// 1. Running metrics on a separate internal port
	// 2. Using IP whitelisting at infrastructure level
	// 3. Using service mesh with mTLS
	mux.Handle("GET /metrics", chain(
		func(w http.ResponseWriter, r *http.Request) {
			promhttp.Handler().ServeHTTP(w, r)
		},
		mw,
		mw.Auth,
		mw.RequireRoles(domain.RoleAdministrateur),
	))

	// Public authentication surface, strictly rate limited
	mux.Handle("POST /api/register", chain(h.Register, mw, mw.RateLimitStrict))
	mux.Handle("POST /api/login", chain(h.Login, mw, mw.RateLimitStrict))
	mux.Handle("POST /api/login/privileged", chain(h.LoginPrivileged, mw, mw.RateLimitStrict))
	mux.Handle("POST /api/logout", chain(h.Logout, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("GET /api/me", chain(h.Me, mw, mw.Auth, mw.RateLimitByUser))

	// Administrateurs: every operation runs through the level matrix in the service
	mux.Handle("POST /api/administrateurs", chain(h.CreateAdministrateur, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("GET /api/administrateurs", chain(h.ListAdministrateurs, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("GET /api/administrateurs/{id}", chain(h.GetAdministrateur, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("PATCH /api/administrateurs/{id}", chain(h.UpdateAdministrateur, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("DELETE /api/administrateurs/{id}", chain(h.DeleteAdministrateur, mw, mw.Auth, mw.RateLimitByUser))

	// Gestionnaires
	mux.Handle("POST /api/gestionnaires", chain(h.CreateGestionnaire, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("GET /api/gestionnaires", chain(h.ListGestionnaires, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("GET /api/gestionnaires/{id}", chain(h.GetGestionnaire, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("PATCH /api/gestionnaires/{id}", chain(h.UpdateGestionnaire, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("DELETE /api/gestionnaires/{id}", chain(h.DeleteGestionnaire, mw, mw.Auth, mw.RateLimitByUser))

	// Producteurs
	mux.Handle("POST /api/producteurs", chain(h.CreateProducteur, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("GET /api/producteurs", chain(h.ListProducteurs, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("GET /api/producteurs/{id}", chain(h.GetProducteur, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("PATCH /api/producteurs/{id}", chain(h.UpdateProducteur, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("DELETE /api/producteurs/{id}", chain(h.DeleteProducteur, mw, mw.Auth, mw.RateLimitByUser))

	// Fournisseurs: the directory is public, moderation requires a token
	mux.Handle("GET /api/fournisseurs", chain(h.ListFournisseurs, mw, mw.RateLimitByUser))
	mux.Handle("GET /api/fournisseurs/{id}", chain(h.GetFournisseur, mw, mw.OptionalAuth, mw.RateLimitByUser))
	mux.Handle("PATCH /api/fournisseurs/{id}", chain(h.UpdateFournisseur, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("DELETE /api/fournisseurs/{id}", chain(h.DeleteFournisseur, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("POST /api/fournisseurs/{id}/verify", chain(h.VerifyFournisseur, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("DELETE /api/fournisseurs/{id}/verify", chain(h.UnverifyFournisseur, mw, mw.Auth, mw.RateLimitByUser))

	// Livreurs
	mux.Handle("POST /api/livreurs", chain(h.CreateLivreur, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("GET /api/livreurs", chain(h.ListLivreurs, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("GET /api/livreurs/{id}", chain(h.GetLivreur, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("PATCH /api/livreurs/{id}", chain(h.UpdateLivreur, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("DELETE /api/livreurs/{id}", chain(h.DeleteLivreur, mw, mw.Auth, mw.RateLimitByUser))

	// Clients
	mux.Handle("GET /api/clients", chain(h.ListClients, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("GET /api/clients/{id}", chain(h.GetClient, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("PATCH /api/clients/{id}", chain(h.UpdateClient, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("DELETE /api/clients/{id}", chain(h.DeleteClient, mw, mw.Auth, mw.RateLimitByUser))

	// Entreprises
	mux.Handle("GET /api/entreprises", chain(h.ListEntreprises, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("GET /api/entreprises/{id}", chain(h.GetEntreprise, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("PATCH /api/entreprises/{id}", chain(h.UpdateEntreprise, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("DELETE /api/entreprises/{id}", chain(h.DeleteEntreprise, mw, mw.Auth, mw.RateLimitByUser))

	// Produits: reads are public, mutations and transitions need a token
	mux.Handle("GET /api/produits", chain(h.ListProduits, mw, mw.RateLimitByUser))
	mux.Handle("GET /api/produits/{id}", chain(h.GetProduit, mw, mw.RateLimitByUser))
	mux.Handle("POST /api/produits", chain(h.CreateProduit, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("PATCH /api/produits/{id}", chain(h.UpdateProduit, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("DELETE /api/produits/{id}", chain(h.DeleteProduit, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("POST /api/produits/{id}/verify", chain(h.VerifyProduit, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("DELETE /api/produits/{id}/verify", chain(h.UnverifyProduit, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("POST /api/produits/{id}/production/finish", chain(h.FinishProduction, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("POST /api/produits/{id}/images", chain(h.AddProduitImage, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("DELETE /api/produits/{id}/images/{imageID}", chain(h.RemoveProduitImage, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("PUT /api/produits/{id}/caracteristiques", chain(h.SetProduitCaracteristique, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("DELETE /api/produits/{id}/caracteristiques/{caracteristiqueID}", chain(h.UnsetProduitCaracteristique, mw, mw.Auth, mw.RateLimitByUser))

	// Catalogue: reads are public, writes are decided in the service
	mux.Handle("GET /api/categories", chain(h.ListCategories, mw, mw.RateLimitByUser))
	mux.Handle("GET /api/categories/{id}", chain(h.GetCategorie, mw, mw.RateLimitByUser))
	mux.Handle("POST /api/categories", chain(h.CreateCategorie, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("PATCH /api/categories/{id}", chain(h.UpdateCategorie, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("DELETE /api/categories/{id}", chain(h.DeleteCategorie, mw, mw.Auth, mw.RateLimitByUser))

	mux.Handle("GET /api/caracteristiques", chain(h.ListCaracteristiques, mw, mw.RateLimitByUser))
	mux.Handle("GET /api/caracteristiques/{id}", chain(h.GetCaracteristique, mw, mw.RateLimitByUser))
	mux.Handle("POST /api/caracteristiques", chain(h.CreateCaracteristique, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("PATCH /api/caracteristiques/{id}", chain(h.UpdateCaracteristique, mw, mw.Auth, mw.RateLimitByUser))
	mux.Handle("DELETE /api/caracteristiques/{id}", chain(h.DeleteCaracteristique, mw, mw.Auth, mw.RateLimitByUser))

	// Global middlewares - applied in reverse order / Middlewares globaux appliqués en ordre inverse
	var handler http.Handler = mux
	handler = mw.MetricsMiddleware(handler) // Metrics first to capture everything
	handler = mw.RateLimit(handler)
	handler = mw.SecurityHeaders(handler)
	handler = mw.Cors(handler)
	handler = Timeout(30 * time.Second)(handler) // 30s timeout for all requests / Timeout de 30s pour toutes les requêtes
	handler = Logging(handler)                   // Logging includes request ID
	handler = RequestID(handler)                 // RequestID first - generates ID for all middleware

	return handler
}

// chain applies middleware to HTTP handler / Applique les middlewares au gestionnaire HTTP
func chain(f http.HandlerFunc, mw *Middleware, middlewares ...func(http.Handler) http.Handler) http.Handler {
	var handler http.Handler = f

	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return handler
}
