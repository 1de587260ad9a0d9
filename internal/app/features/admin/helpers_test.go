package admin

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jawahirullah/portal/internal/app/system/mailer"
	"github.com/jawahirullah/portal/internal/app/system/media"
	"github.com/jawahirullah/portal/internal/testutil"
	"go.uber.org/zap"
)

type rendered struct {
	name string
	data any
}

// harness is an admin Handler over in-memory stores that records every
// render instead of executing templates.
type harness struct {
	h       *Handler
	fx      *testutil.Fixtures
	backend *fakeBackend
	mail    *fakeMailer

	mu    sync.Mutex
	views []rendered
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fx := testutil.NewFixtures(t)
	hs := &harness{fx: fx, backend: &fakeBackend{}, mail: &fakeMailer{}}
	svc := media.NewService(hs.backend, "demo", zap.NewNop())
	hs.h = NewHandler(fx.Stores, svc, hs.mail, nil, nil, zap.NewNop())
	hs.h.Render = func(_ http.ResponseWriter, _ *http.Request, name string, data any) {
		hs.mu.Lock()
		defer hs.mu.Unlock()
		hs.views = append(hs.views, rendered{name: name, data: data})
	}
	t.Cleanup(hs.h.Limiter.Stop)
	return hs
}

func (hs *harness) last(t *testing.T) rendered {
	t.Helper()
	hs.mu.Lock()
	defer hs.mu.Unlock()
	if len(hs.views) == 0 {
		t.Fatal("nothing rendered")
	}
	return hs.views[len(hs.views)-1]
}

type fakeBackend struct {
	mu         sync.Mutex
	uploads    []media.UploadParams
	destroyed  []string
	fail       error
	failFolder string // uploads to this folder fail
}

func (b *fakeBackend) Upload(_ context.Context, body io.Reader, p media.UploadParams) (media.Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail != nil {
		return media.Result{}, b.fail
	}
	if b.failFolder != "" && p.Folder == b.failFolder {
		return media.Result{}, errors.New("backend rejected upload")
	}
	n, _ := io.Copy(io.Discard, body)
	b.uploads = append(b.uploads, p)
	return media.Result{
		PublicID:     p.Folder + "/" + p.Filename,
		SecureURL:    "https://res.cloudinary.com/demo/" + p.ResourceType + "/upload/" + p.Folder + "/" + p.Filename,
		ResourceType: p.ResourceType,
		Bytes:        int(n),
	}, nil
}

func (b *fakeBackend) Destroy(_ context.Context, publicID, _ string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.destroyed = append(b.destroyed, publicID)
	return nil
}

func (b *fakeBackend) destroyedIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.destroyed...)
}

func (b *fakeBackend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.uploads)
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Email
	fail bool
}

func (m *fakeMailer) Send(_ context.Context, e mailer.Email) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return "", errors.New("provider down")
	}
	m.sent = append(m.sent, e)
	return "msg_1", nil
}

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

var mp4Bytes = append([]byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm', 0, 0, 2, 0, 'i', 's', 'o', 'm', 'i', 's', 'o', '2'}, make([]byte, 64)...)

// filePart is one file input of a multipart request.
type filePart struct {
	field, name string
	content     []byte
}

// newMultipartFilesRequest builds a POST with text fields and any number of
// files.
func newMultipartFilesRequest(t *testing.T, target string, fields map[string]string, files ...filePart) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, fp := range files {
		fw, err := mw.CreateFormFile(fp.field, fp.name)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := fw.Write(fp.content); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, target, &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

// newMultipartRequest builds a POST with text fields and at most one file.
func newMultipartRequest(t *testing.T, target string, fields map[string]string, fileField, fileName string, content []byte) *http.Request {
	t.Helper()
	if fileField == "" {
		return newMultipartFilesRequest(t, target, fields)
	}
	return newMultipartFilesRequest(t, target, fields, filePart{field: fileField, name: fileName, content: content})
}
