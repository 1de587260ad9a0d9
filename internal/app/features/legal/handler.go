// internal/app/features/legal/handler.go
package legal

import (
	"net/http"

	"github.com/jawahirullah/portal/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// LastUpdated is shown on both pages.
const LastUpdated = "2024-01-01"

type pageData struct {
	viewdata.BaseVM
	Updated  string
	Sections []string
}

type Handler struct {
	Log    *zap.Logger
	Render viewdata.RenderFunc
}

func NewHandler(logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Log: logger, Render: viewdata.Render}
}

var (
	privacySections = []string{"legal.privacy_intro", "legal.privacy_use", "legal.privacy_cookies", "legal.privacy_media"}
	termsSections   = []string{"legal.terms_intro", "legal.terms_content", "legal.terms_conduct", "legal.terms_changes"}
)

func (h *Handler) ServePrivacy(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "legal.privacy_title", privacySections)
}

func (h *Handler) ServeTerms(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "legal.terms_title", termsSections)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, titleKey string, keys []string) {
	vm := viewdata.NewBaseVM(r, titleKey, "/")
	data := pageData{BaseVM: vm, Updated: LastUpdated}
	for _, k := range keys {
		data.Sections = append(data.Sections, vm.T(k))
	}
	h.Render(w, r, "legal_page", data)
}
