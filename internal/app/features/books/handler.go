package books

import (
	"net/http"

	"github.com/jawahirullah/portal/internal/app/features/shared"
	"github.com/jawahirullah/portal/internal/app/store/content"
	"github.com/jawahirullah/portal/internal/app/system/normalize"
	"github.com/jawahirullah/portal/internal/app/system/repository"
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
	Books []models.Book
	Query string
}

// List shows published books. ?q= narrows to titles starting with q.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "books page")
	defer cancel()

	vm := listVM{
		BaseVM: viewdata.NewBaseVM(r, "books.title", "/"),
		Query:  normalize.QueryParam(r.URL.Query().Get("q")),
	}
	if vm.Query == "" {
		vm.Books = shared.Published(ctx, h.Stores.Books, models.CollBooks, h.Log)
	} else {
		repo := repository.New(h.Stores.Books, models.CollBooks, h.Log)
		field := "title"
		if vm.IsTamil {
			field = "title_tamil"
		}
		vm.Books = repository.Filter(repo.Search(ctx, field, vm.Query), func(b models.Book) bool {
			return b.Status == models.StatusPublished
		})
	}
	h.Render(w, r, "books", vm)
}
