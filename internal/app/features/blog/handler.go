package blog

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/jawahirullah/portal/internal/app/features/errors"
	"github.com/jawahirullah/portal/internal/app/features/shared"
	"github.com/jawahirullah/portal/internal/app/store/content"
	"github.com/jawahirullah/portal/internal/app/system/markdown"
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
	ErrLog *uierrors.ErrorLogger
	Render viewdata.RenderFunc
}

func NewHandler(stores content.Stores, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if errLog == nil {
		errLog = uierrors.NewErrorLogger(logger)
	}
	return &Handler{Stores: stores, Log: logger, ErrLog: errLog, Render: viewdata.Render}
}

type listVM struct {
	viewdata.BaseVM
	Posts []models.BlogPost
	Tag   string
	Tags  []string
}

type postVM struct {
	viewdata.BaseVM
	Post models.BlogPost
	Body template.HTML
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /blog – published posts                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// List shows published posts. ?tag= keeps the posts carrying that tag.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "blog list")
	defer cancel()

	posts := shared.Published(ctx, h.Stores.Blogs, models.CollBlogs, h.Log)
	vm := listVM{
		BaseVM: viewdata.NewBaseVM(r, "blog.title", "/"),
		Tag:    normalize.QueryParam(r.URL.Query().Get("tag")),
		Tags:   tagsOf(posts),
	}
	vm.Posts = posts
	if vm.Tag != "" {
		vm.Posts = repository.Filter(posts, func(p models.BlogPost) bool { return hasTag(p, vm.Tag) })
	}
	h.Render(w, r, "blog_list", vm)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /blog/{slug} – one post                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// Show renders one published post and counts the view. Drafts are not found.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "blog post")
	defer cancel()

	repo := repository.New(h.Stores.Blogs, models.CollBlogs, h.Log)
	var post *models.BlogPost
	for _, p := range repo.Search(ctx, "slug", slug) {
		if p.Slug == slug && p.Status == models.StatusPublished {
			post = &p
			break
		}
	}
	if post == nil {
		if msg := repo.Err(); msg != "" {
			h.ErrLog.LogServerError(w, r, "load blog post failed", nil, msg, "/blog")
			return
		}
		uierrors.RenderNotFound(w, r)
		return
	}

	vm := postVM{BaseVM: viewdata.NewBaseVM(r, post.Title, "/blog"), Post: *post}
	vm.Title = vm.Pick(post.Title, post.TitleTamil)
	body, err := markdown.Render(vm.Pick(post.Content, post.ContentTamil))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "render blog post failed", err, "", "/blog")
		return
	}
	vm.Body = body

	if err := h.Stores.Blogs.Increment(ctx, post.ID, "views", 1); err != nil {
		h.Log.Warn("count blog view failed", zap.String("slug", slug), zap.Error(err))
	} else {
		vm.Post.Views++
	}

	h.Render(w, r, "blog_post", vm)
}

func hasTag(p models.BlogPost, tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// tagsOf lists the distinct tags of posts in first-seen order.
func tagsOf(posts []models.BlogPost) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range posts {
		for _, t := range p.Tags {
			k := strings.ToLower(t)
			if !seen[k] {
				seen[k] = true
				out = append(out, t)
			}
		}
	}
	return out
}
