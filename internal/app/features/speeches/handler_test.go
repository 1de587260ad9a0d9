package speeches

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jawahirullah/portal/internal/domain/models"
	"github.com/jawahirullah/portal/internal/testutil"
	"go.uber.org/zap"
)

func TestList_PublishedWithEmbeds(t *testing.T) {
	fx := testutil.NewFixtures(t)
	fx.CreateSpeech("Budget debate", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", models.StatusPublished)
	fx.CreateSpeech("Rehearsal", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", models.StatusDraft)

	h := NewHandler(fx.Stores, zap.NewNop())
	var got listVM
	h.Render = func(_ http.ResponseWriter, _ *http.Request, _ string, data any) { got = data.(listVM) }
	h.List(httptest.NewRecorder(), httptest.NewRequest("GET", "/speeches", nil))

	if len(got.Speeches) != 1 {
		t.Fatalf("speeches = %d, want 1", len(got.Speeches))
	}
	if got.Speeches[0].Embed != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Errorf("embed = %q", got.Speeches[0].Embed)
	}
}
