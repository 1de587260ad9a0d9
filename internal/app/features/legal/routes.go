// internal/app/features/legal/routes.go
package legal

import "github.com/go-chi/chi/v5"

func PrivacyRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServePrivacy)
	return r
}

func TermsRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeTerms)
	return r
}
