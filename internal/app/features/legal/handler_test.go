package legal

import (
	"net/http"
	"testing"

	"github.com/jawahirullah/portal/internal/app/system/prefs"
	"github.com/jawahirullah/portal/internal/testutil"
)

func TestLegalPages(t *testing.T) {
	tests := []struct {
		name      string
		serve     func(*Handler) http.HandlerFunc
		locale    string
		wantTitle string
	}{
		{"privacy", func(h *Handler) http.HandlerFunc { return h.ServePrivacy }, prefs.LocaleEN, "Privacy Policy"},
		{"terms", func(h *Handler) http.HandlerFunc { return h.ServeTerms }, prefs.LocaleEN, "Terms of Service"},
		{"privacy tamil", func(h *Handler) http.HandlerFunc { return h.ServePrivacy }, prefs.LocaleTA, "தனியுரிமைக் கொள்கை"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(nil)
			var got pageData
			var tmpl string
			h.Render = func(_ http.ResponseWriter, _ *http.Request, name string, data any) {
				tmpl, got = name, data.(pageData)
			}

			r := testutil.NewRequest("GET", "/")
			r = r.WithContext(prefs.WithPrefs(r.Context(), prefs.Prefs{Locale: tt.locale, Theme: prefs.ThemeLight}))
			tt.serve(h)(testutil.NewRecorder(), r)

			if tmpl != "legal_page" {
				t.Errorf("template = %q", tmpl)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", got.Title, tt.wantTitle)
			}
			if len(got.Sections) != 4 {
				t.Fatalf("sections = %d, want 4", len(got.Sections))
			}
			for i, s := range got.Sections {
				if len(s) < 20 || s[:7] == "legal." {
					t.Errorf("section %d not translated: %q", i, s)
				}
			}
			if got.Updated != LastUpdated {
				t.Errorf("updated = %q", got.Updated)
			}
		})
	}
}
