// Package http provides HTTP routing and middleware configuration
// for the city portal service.
package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cityconnect/portal/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the portal API. It
// applies JSON content-type enforcement, request logging and identity
// resolution, then mounts the endpoints under /api.
//
// Routes:
//
//	POST  /api/register            → account creation
//	POST  /api/login               → email/password sign-in
//	POST  /api/oauth               → external-credential sign-in
//	POST  /api/logout              → clear session
//	GET   /api/session             → current identity
//	GET   /api/search?q=           → free-text search
//	GET   /api/{catalog}           → public catalog listing
//	POST/PATCH/DELETE catalogs     → admin only
//	GET/POST /api/reports|feedback → signed-in citizens
//	PATCH/DELETE reports|feedback  → admin only
func NewRouter(
	authHandler *AuthHandler,
	catalogHandler *CatalogHandler,
	civicHandler *CivicHandler,
	searchHandler *SearchHandler,
	principals middleware.PrincipalSource,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Resolve the active identity once per request
	r.Use(middleware.WithIdentity(principals))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Session endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/oauth", authHandler.ExternalSignIn)
		r.Post("/logout", authHandler.Logout)
		r.Get("/session", authHandler.Session)

		// Public browsing
		r.Get("/search", searchHandler.SearchAll)
		r.Get("/services", catalogHandler.ListServices)
		r.Get("/infrastructure", catalogHandler.ListInfrastructure)
		r.Get("/amenities", catalogHandler.ListAmenities)

		// Signed-in citizens: submit and read their own records
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/reports", civicHandler.ListReports)
			r.Post("/reports", civicHandler.CreateReport)
			r.Get("/feedback", civicHandler.ListFeedback)
			r.Post("/feedback", civicHandler.CreateFeedback)
		})

		// Admin management
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Post("/services", catalogHandler.CreateService)
			r.Patch("/services/{id}", catalogHandler.UpdateService)
			r.Delete("/services/{id}", catalogHandler.DeleteService)

			r.Post("/infrastructure", catalogHandler.CreateInfrastructure)
			r.Patch("/infrastructure/{id}", catalogHandler.UpdateInfrastructure)
			r.Delete("/infrastructure/{id}", catalogHandler.DeleteInfrastructure)

			r.Post("/amenities", catalogHandler.CreateAmenity)
			r.Patch("/amenities/{id}", catalogHandler.UpdateAmenity)
			r.Delete("/amenities/{id}", catalogHandler.DeleteAmenity)

			r.Patch("/reports/{id}", civicHandler.UpdateReport)
			r.Delete("/reports/{id}", civicHandler.DeleteReport)
			r.Patch("/feedback/{id}", civicHandler.UpdateFeedback)
			r.Delete("/feedback/{id}", civicHandler.DeleteFeedback)
		})
	})

	return r
}
