package viewdata

import (
	"net/http/httptest"
	"testing"

	"github.com/jawahirullah/portal/internal/app/system/prefs"
)

func TestNewBaseVM_Locale(t *testing.T) {
	r := httptest.NewRequest("GET", "/books", nil)
	r = r.WithContext(prefs.WithPrefs(r.Context(), prefs.Prefs{Locale: prefs.LocaleTA, Theme: prefs.ThemeDark}))

	vm := NewBaseVM(r, "nav.books", "/")
	if !vm.IsTamil || vm.Locale != "ta" || vm.Theme != "dark" {
		t.Errorf("prefs not applied: %+v", vm)
	}
	if vm.Title != Catalog().T("ta", "nav.books") {
		t.Errorf("Title = %q", vm.Title)
	}
	if vm.IsAdmin {
		t.Error("request without a session hook is not an admin")
	}

	var active []string
	for _, n := range vm.Nav {
		if n.Active {
			active = append(active, n.Href)
		}
	}
	if len(active) != 1 || active[0] != "/books" {
		t.Errorf("active nav = %v, want [/books]", active)
	}
}

func TestPick(t *testing.T) {
	en := BaseVM{}
	ta := BaseVM{IsTamil: true}

	if got := en.Pick("Book", "நூல்"); got != "Book" {
		t.Errorf("en Pick = %q", got)
	}
	if got := ta.Pick("Book", "நூல்"); got != "நூல்" {
		t.Errorf("ta Pick = %q", got)
	}
	if got := ta.Pick("Book", ""); got != "Book" {
		t.Errorf("ta Pick with empty Tamil = %q", got)
	}
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		path, href string
		want       bool
	}{
		{"/", "/", true},
		{"/blog", "/", false},
		{"/blog/hello", "/blog", true},
		{"/blogger", "/blog", false},
	}
	for _, tt := range tests {
		if got := isActive(tt.path, tt.href); got != tt.want {
			t.Errorf("isActive(%q, %q) = %v", tt.path, tt.href, got)
		}
	}
}

func TestNewBaseVM_NewsletterResult(t *testing.T) {
	tests := []struct {
		query  string
		wantOK bool
		key    string
	}{
		{"?newsletter=ok", true, "newsletter.success"},
		{"?newsletter=exists", false, "newsletter.exists"},
		{"?newsletter=invalid", false, "newsletter.invalid"},
		{"", false, ""},
	}
	for _, tt := range tests {
		vm := NewBaseVM(httptest.NewRequest("GET", "/about"+tt.query, nil), "nav.about", "/")
		want := ""
		if tt.key != "" {
			want = Catalog().T("en", tt.key)
		}
		if vm.NewsletterMsg != want || vm.NewsletterOK != tt.wantOK {
			t.Errorf("%q: got (%q, %v), want (%q, %v)", tt.query, vm.NewsletterMsg, vm.NewsletterOK, want, tt.wantOK)
		}
	}
}

func TestLocalPath(t *testing.T) {
	tests := map[string]string{
		"":                     "/",
		"/blog/water":          "/blog/water",
		"/books?q=x":           "/books?q=x",
		"//evil.example":       "/",
		"https://evil.example": "/",
		"/\\evil.example":      "/",
		"javascript:alert(1)":  "/",
	}
	for in, want := range tests {
		if got := LocalPath(in, "/"); got != want {
			t.Errorf("LocalPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMediaHelpers(t *testing.T) {
	var vm BaseVM
	cover := "https://res.cloudinary.com/demo/image/upload/v12/books/cover.jpg"

	if got, want := vm.Img(cover, 400, 600), "https://res.cloudinary.com/demo/image/upload/w_400,h_600,c_fill,q_auto,f_auto,g_auto/books/cover"; got != want {
		t.Errorf("Img() = %q, want %q", got, want)
	}
	if got := vm.Img("/static/img/portrait.jpg", 400, 600); got != "/static/img/portrait.jpg" {
		t.Errorf("Img(local) = %q", got)
	}
	if vm.SrcSet(cover) == "" {
		t.Error("SrcSet() is empty for a delivery URL")
	}
	if got := vm.Video("https://res.cloudinary.com/demo/video/upload/v1/videos/talk.mp4"); got != "https://res.cloudinary.com/demo/video/upload/q_auto,f_auto/videos/talk" {
		t.Errorf("Video() = %q", got)
	}
}
