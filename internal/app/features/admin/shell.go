// internal/app/features/admin/shell.go
package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jawahirullah/portal/internal/app/system/auth"
	"github.com/jawahirullah/portal/internal/app/system/authsession"
	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/jawahirullah/portal/internal/app/system/normalize"
	"github.com/jawahirullah/portal/internal/app/system/repository"
	"github.com/jawahirullah/portal/internal/app/system/timeouts"
	"github.com/jawahirullah/portal/internal/app/system/viewdata"
	"github.com/jawahirullah/portal/internal/domain/models"
	"go.uber.org/zap"
)

type loadingVM struct {
	viewdata.BaseVM
	RefreshAfter int // seconds
}

type emailCounts struct {
	Total        int
	Active       int
	Unsubscribed int
}

type dashboardVM struct {
	viewdata.BaseVM
	Tabs    []tabLink
	Active  Tab
	Success string
	Error   string
	Query   string

	Stats statsVM

	Books        []models.Book
	Speeches     []models.Speech
	Blogs        []models.BlogPost
	Testimonials []models.Testimonial
	Updates      []models.Update

	Contacts       []models.ContactMessage
	ContactStatus  string
	ContactFilters []string

	Subscriptions []models.NewsletterSubscription
	EmailCounts   emailCounts
}

// Shell serves /admin/{tab}. Unknown tabs show the stats tab.
func (h *Handler) Shell(w http.ResponseWriter, r *http.Request) {
	h.shell(w, r, Resolve(chi.URLParam(r, "tab")))
}

func (h *Handler) shellFor(tab Tab) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { h.shell(w, r, tab) }
}

// shell renders exactly one of three screens: a waiting page while the
// session is still resolving, the login form when signed out, or the
// dashboard.
func (h *Handler) shell(w http.ResponseWriter, r *http.Request, tab Tab) {
	switch st := h.session(r); st.Status {
	case authsession.Initializing:
		h.renderLoading(w, r)
	case authsession.Unauthenticated:
		if hook := auth.HookFrom(r); hook != nil {
			hook.ClearError()
		}
		h.renderLogin(w, r, http.StatusOK, loginForm{Return: r.URL.RequestURI()}, nil, "")
	default:
		h.dashboard(w, r, tab, st)
	}
}

// session waits briefly for the browser's hook to resolve so the common
// case does not flash the waiting page.
func (h *Handler) session(r *http.Request) authsession.State {
	hook := auth.HookFrom(r)
	if hook == nil {
		return authsession.State{Status: authsession.Unauthenticated}
	}
	return hook.Await(r.Context(), auth.ResolveWait)
}

func (h *Handler) renderLoading(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	h.Render(w, r, "admin_loading", loadingVM{
		BaseVM:       viewdata.NewBaseVM(r, "Admin", "/"),
		RefreshAfter: 1,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/{tab} – dashboard                                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request, tab Tab, st authsession.State) {
	q := r.URL.Query()
	vm := dashboardVM{
		BaseVM: viewdata.NewBaseVM(r, "Admin Dashboard", "/"),
		Tabs:   tabLinks(tab),
		Active: tab,
		Query:  normalize.QueryParam(q.Get("q")),
	}
	vm.Success, vm.Error = toast(tab, q)
	if st.Err != "" {
		vm.Error = st.Err
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin dashboard")
	defer cancel()

	var loadErr string
	switch tab {
	case TabStats:
		vm.Stats, loadErr = h.stats(ctx)
	case TabBooks:
		vm.Books, loadErr = listTab(ctx, h.Log, h.Stores.Books, models.CollBooks, "title", vm.Query)
	case TabSpeeches:
		vm.Speeches, loadErr = listTab(ctx, h.Log, h.Stores.Speeches, models.CollSpeeches, "title", vm.Query)
	case TabBlogs:
		vm.Blogs, loadErr = listTab(ctx, h.Log, h.Stores.Blogs, models.CollBlogs, "title", vm.Query)
	case TabTestimonials:
		vm.Testimonials, loadErr = listTab(ctx, h.Log, h.Stores.Testimonials, models.CollTestimonials, "name", vm.Query)
	case TabUpdates:
		vm.Updates, loadErr = listTab(ctx, h.Log, h.Stores.Updates, models.CollUpdates, "text", vm.Query)
	case TabContacts:
		vm.Contacts, loadErr = listTab(ctx, h.Log, h.Stores.Contacts, models.CollContacts, "name", vm.Query)
		vm.ContactFilters = models.StringsOf(models.ContactStatuses)
		if s := models.ContactStatus(q.Get("status")); s.Valid() {
			vm.ContactStatus = string(s)
			vm.Contacts = repository.Filter(vm.Contacts, func(m models.ContactMessage) bool { return m.Status == s })
		}
	case TabEmails:
		vm.Subscriptions, loadErr = listTab(ctx, h.Log, h.Stores.Newsletter, models.CollNewsletter, "email", vm.Query)
		vm.EmailCounts = countEmails(vm.Subscriptions)
	}
	if loadErr != "" && vm.Error == "" {
		vm.Error = loadErr
	}

	h.Render(w, r, "admin_dashboard", vm)
}

// listTab loads one tab's documents: every document newest first, or the
// exact-prefix matches on field when q is set.
func listTab[T any](ctx context.Context, log *zap.Logger, coll docstore.Collection[T], name, field, q string) ([]T, string) {
	repo := repository.New(coll, name, log)
	if q != "" {
		items := repo.Search(ctx, field, q)
		return items, repo.Err()
	}
	_ = repo.Refresh(ctx)
	return repo.Items(), repo.Err()
}

func countEmails(subs []models.NewsletterSubscription) emailCounts {
	c := emailCounts{Total: len(subs)}
	for _, s := range subs {
		if s.Status == models.SubscriptionActive {
			c.Active++
		} else {
			c.Unsubscribed++
		}
	}
	return c
}
