package speeches

import (
	"net/http"

	"github.com/jawahirullah/portal/internal/app/features/shared"
	"github.com/jawahirullah/portal/internal/app/store/content"
	"github.com/jawahirullah/portal/internal/app/system/timeouts"
	"github.com/jawahirullah/portal/internal/app/system/viewdata"
	"github.com/jawahirullah/portal/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Stores content.Stores
	Log    *zap.Logger
	Render viewdata.RenderFunc
}

func NewHandler(stores content.Stores, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Stores: stores, Log: logger, Render: viewdata.Render}
}

type listVM struct {
	viewdata.BaseVM
	Speeches []shared.SpeechCard
}

// List shows published speeches with their players.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "speeches page")
	defer cancel()

	vm := listVM{
		BaseVM:   viewdata.NewBaseVM(r, "speeches.title", "/"),
		Speeches: shared.SpeechCards(shared.Published(ctx, h.Stores.Speeches, models.CollSpeeches, h.Log)),
	}
	h.Render(w, r, "speeches", vm)
}
