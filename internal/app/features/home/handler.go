package home

import (
	"net/http"
	"time"

	"github.com/jawahirullah/portal/internal/app/features/shared"
	"github.com/jawahirullah/portal/internal/app/store/content"
	"github.com/jawahirullah/portal/internal/app/system/timeouts"
	"github.com/jawahirullah/portal/internal/app/system/viewdata"
	"github.com/jawahirullah/portal/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// serviceSince is the year the public career began; the hero counts years
// of service from it.
const serviceSince = 1998

// How many items each home section shows.
const (
	featuredBooks    = 3
	featuredSpeeches = 3
	featuredBlogs    = 3
	latestUpdates    = 6
)

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	Stores content.Stores
	Log    *zap.Logger
	Render viewdata.RenderFunc
}

func NewHandler(stores content.Stores, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Stores: stores,
		Log:    logger,
		Render: viewdata.Render,
	}
}

type homeVM struct {
	viewdata.BaseVM

	Books        []models.Book
	Speeches     []shared.SpeechCard
	Blogs        []models.BlogPost
	Updates      []models.Update
	Testimonials []models.Testimonial

	LatestSpeech *shared.SpeechCard
	LatestBlog   *models.BlogPost

	BookCount    int
	SpeechCount  int
	YearsService int
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeRoot renders the landing page. Sections load concurrently; a section
// that fails to load is shown empty.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "home page")
	defer cancel()

	var (
		books        []models.Book
		speeches     []models.Speech
		blogs        []models.BlogPost
		updates      []models.Update
		testimonials []models.Testimonial
	)
	var g errgroup.Group
	g.Go(func() error { books = shared.Published(ctx, h.Stores.Books, models.CollBooks, h.Log); return nil })
	g.Go(func() error {
		speeches = shared.Published(ctx, h.Stores.Speeches, models.CollSpeeches, h.Log)
		return nil
	})
	g.Go(func() error { blogs = shared.Published(ctx, h.Stores.Blogs, models.CollBlogs, h.Log); return nil })
	g.Go(func() error {
		updates = shared.All(ctx, h.Stores.Updates, models.CollUpdates, latestUpdates, h.Log)
		return nil
	})
	g.Go(func() error {
		testimonials = shared.All(ctx, h.Stores.Testimonials, models.CollTestimonials, 0, h.Log)
		return nil
	})
	_ = g.Wait()

	vm := homeVM{
		BaseVM:       viewdata.NewBaseVM(r, "site.tagline", "/"),
		Books:        shared.First(books, featuredBooks),
		Speeches:     shared.SpeechCards(shared.First(speeches, featuredSpeeches)),
		Blogs:        shared.First(blogs, featuredBlogs),
		Updates:      updates,
		Testimonials: testimonials,
		BookCount:    len(books),
		SpeechCount:  len(speeches),
		YearsService: time.Now().Year() - serviceSince,
	}
	if len(vm.Speeches) > 0 {
		vm.LatestSpeech = &vm.Speeches[0]
	}
	if len(vm.Blogs) > 0 {
		vm.LatestBlog = &vm.Blogs[0]
	}

	h.Render(w, r, "home", vm)
}
