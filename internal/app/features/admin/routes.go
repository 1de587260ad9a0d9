// internal/app/features/admin/routes.go
package admin

import (
	"github.com/go-chi/chi/v5"
	"github.com/jawahirullah/portal/internal/app/system/auth"
)

// MountRoutes mounts the admin area; call it inside r.Route("/admin", ...).
// The shell routes render the login form themselves when signed out; every
// mutation requires an authenticated session.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.shellFor(TabStats))
	r.Get("/login", h.ShowLogin)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	for _, t := range Tabs {
		if t != TabStats {
			r.Get("/"+string(t), h.shellFor(t))
		}
	}
	r.Get("/{tab}", h.Shell)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)

		h.books().mount(r)
		h.speeches().mount(r)
		h.blogs().mount(r)
		h.updates().mount(r)
		h.testimonials().mount(r)

		r.Get("/contacts/{id}", h.ShowContact)
		r.Post("/contacts/{id}/status", h.SetContactStatus)
		r.Post("/contacts/{id}/reply", h.Reply)
		r.Post("/contacts/{id}/delete", h.DeleteContact)

		r.Get("/emails/export", h.ExportSubscriptions)
		r.Post("/emails/{id}/toggle", h.ToggleSubscription)
		r.Post("/emails/{id}/delete", h.DeleteSubscription)
	})
}
