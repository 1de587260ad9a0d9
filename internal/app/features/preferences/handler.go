// Package preferences serves the header language and theme toggles.
package preferences

import (
	"net/http"

	"github.com/jawahirullah/portal/internal/app/system/limits"
	"github.com/jawahirullah/portal/internal/app/system/prefs"
	"github.com/jawahirullah/portal/internal/app/system/viewdata"
	"go.uber.org/zap"
)

type Handler struct {
	Prefs *prefs.Store
	Log   *zap.Logger
}

func NewHandler(store *prefs.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Prefs: store, Log: logger}
}

// HandleSet applies whichever of language and theme were posted and sends
// the visitor back. Unsupported values are ignored.
func (h *Handler) HandleSet(w http.ResponseWriter, r *http.Request) {
	limits.Body(w, r, limits.MaxPublicForm)
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	p := h.Prefs.Get(r)
	if v := r.PostForm.Get("language"); prefs.ValidLocale(v) {
		p.Locale = v
	}
	if v := r.PostForm.Get("theme"); prefs.ValidTheme(v) {
		p.Theme = v
	}
	if err := h.Prefs.Set(w, p); err != nil {
		h.Log.Warn("write preference cookies failed", zap.Error(err))
	}

	http.Redirect(w, r, viewdata.LocalPath(r.PostForm.Get("return"), "/"), http.StatusSeeOther)
}
