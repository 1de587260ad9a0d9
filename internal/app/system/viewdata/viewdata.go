// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/gorilla/csrf"
	"github.com/jawahirullah/portal/internal/app/system/auth"
	"github.com/jawahirullah/portal/internal/app/system/authsession"
	"github.com/jawahirullah/portal/internal/app/system/i18n"
	"github.com/jawahirullah/portal/internal/app/system/media"
	"github.com/jawahirullah/portal/internal/app/system/prefs"
	"github.com/jawahirullah/portal/internal/domain/models"
)

// NavItem is one link in the public header.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
//	data := struct {
//	    viewdata.BaseVM
//	    Books []models.Book
//	}{
//	    BaseVM: viewdata.NewBaseVM(r, "nav.books", "/"),
//	}
type BaseVM struct {
	SiteName string
	FullName string

	// Visitor preferences
	Locale  string
	IsTamil bool
	Theme   string
	T       func(key string, args ...any) string

	// Admin session (never blocks; Initializing counts as signed out here)
	IsAdmin    bool
	AdminEmail string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
	Nav         []NavItem
	Year        int

	CSRFToken string

	// Footer newsletter result after a sign-up redirect.
	NewsletterMsg string
	NewsletterOK  bool
}

var (
	mu      sync.RWMutex
	catalog = i18n.MustLoad()
)

// Init replaces the copy catalog. Call it once at startup if a catalog other
// than the embedded one is wanted.
func Init(c *i18n.Catalog) {
	mu.Lock()
	defer mu.Unlock()
	catalog = c
}

// Catalog returns the active copy catalog.
func Catalog() *i18n.Catalog {
	mu.RLock()
	defer mu.RUnlock()
	return catalog
}

var navLinks = []struct{ key, href string }{
	{"nav.home", "/"},
	{"nav.about", "/about"},
	{"nav.books", "/books"},
	{"nav.speeches", "/speeches"},
	{"nav.blog", "/blog"},
	{"nav.contact", "/contact"},
}

// NewsletterParam carries the footer sign-up result across the redirect.
const NewsletterParam = "newsletter"

// NewBaseVM creates a fully populated BaseVM for a page. titleKey is looked
// up in the catalog; a key with no entry is used as the title as-is.
func NewBaseVM(r *http.Request, titleKey, backDefault string) BaseVM {
	p := prefs.From(r.Context())
	t := Catalog().For(p.Locale)
	path := httpnav.CurrentPath(r)

	vm := BaseVM{
		SiteName:    t("site.name"),
		FullName:    t("site.fullname"),
		Locale:      p.Locale,
		IsTamil:     p.IsTamil(),
		Theme:       p.Theme,
		T:           t,
		Title:       t(titleKey),
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: path,
		Year:        time.Now().Year(),
		CSRFToken:   csrf.Token(r),
	}
	if vm.SiteName == "site.name" {
		vm.SiteName = models.DefaultSiteName
	}

	switch r.URL.Query().Get(NewsletterParam) {
	case "ok":
		vm.NewsletterMsg, vm.NewsletterOK = t("newsletter.success"), true
	case "exists":
		vm.NewsletterMsg = t("newsletter.exists")
	case "invalid":
		vm.NewsletterMsg = t("newsletter.invalid")
	case "error":
		vm.NewsletterMsg = t("newsletter.error")
	}

	for _, l := range navLinks {
		vm.Nav = append(vm.Nav, NavItem{Label: t(l.key), Href: l.href, Active: isActive(path, l.href)})
	}

	if h := auth.HookFrom(r); h != nil {
		if st := h.State(); st.Status == authsession.Authenticated && st.User != nil {
			vm.IsAdmin = true
			vm.AdminEmail = st.User.Email
		}
	}
	return vm
}

// LocalPath returns raw when it is a path on this site, else fallback. Used
// for "return" form fields so a redirect never leaves the site.
func LocalPath(raw, fallback string) string {
	if raw == "" || raw[0] != '/' || strings.HasPrefix(raw, "//") || strings.ContainsAny(raw, "\\\r\n") {
		return fallback
	}
	return raw
}

func isActive(path, href string) bool {
	if href == "/" {
		return path == "/"
	}
	return path == href || strings.HasPrefix(path, href+"/")
}

// Pick returns ta when the visitor reads Tamil and ta is set, else en.
// Bilingual entity fields are independent strings; an empty Tamil value
// falls back to English.
func (vm BaseVM) Pick(en, ta string) string {
	if vm.IsTamil && ta != "" {
		return ta
	}
	return en
}

// Img returns a stored image URL resized for display. Only media CDN
// delivery URLs are transformed; anything else is returned as stored.
func (vm BaseVM) Img(url string, width, height int) string {
	return media.Resize(url, width, height)
}

// SrcSet returns a responsive srcset for a stored image URL, or "".
func (vm BaseVM) SrcSet(url string) string {
	return media.ResponsiveSrcSet(url)
}

// Video returns a stored video URL in an auto-quality delivery form.
func (vm BaseVM) Video(url string) string {
	return media.Stream(url)
}

// RenderFunc writes the named template with data. Handlers hold one so tests
// can capture view models without booting the template engine.
type RenderFunc func(w http.ResponseWriter, r *http.Request, name string, data any)

// Render is the RenderFunc backed by the template engine.
func Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	templates.Render(w, r, name, data)
}
