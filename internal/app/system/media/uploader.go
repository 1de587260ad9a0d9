package media

import (
	"context"
	"sync"

	"github.com/jawahirullah/portal/internal/app/system/errnorm"
)

// Uploader tracks one form's upload: an uploading flag that is cleared on
// every path and the last user-facing error.
type Uploader struct {
	svc *Service

	mu        sync.Mutex
	uploading bool
	err       string
}

func NewUploader(svc *Service) *Uploader { return &Uploader{svc: svc} }

// UploadImage returns nil on failure; Err explains why.
func (u *Uploader) UploadImage(ctx context.Context, f File, folder string) *Result {
	return u.run(func() (Result, error) { return u.svc.UploadImage(ctx, f, folder) })
}

// UploadVideo returns nil on failure; Err explains why.
func (u *Uploader) UploadVideo(ctx context.Context, f File, folder string) *Result {
	return u.run(func() (Result, error) { return u.svc.UploadVideo(ctx, f, folder) })
}

// DeleteResource reports whether the asset was removed.
func (u *Uploader) DeleteResource(ctx context.Context, publicID, resourceType string) bool {
	u.ClearError()
	if err := u.svc.DeleteResource(ctx, publicID, resourceType); err != nil {
		u.setErr(err)
		return false
	}
	return true
}

func (u *Uploader) run(fn func() (Result, error)) *Result {
	u.mu.Lock()
	u.uploading = true
	u.err = ""
	u.mu.Unlock()

	defer func() {
		u.mu.Lock()
		u.uploading = false
		u.mu.Unlock()
	}()

	res, err := fn()
	if err != nil {
		u.setErr(err)
		return nil
	}
	return &res
}

func (u *Uploader) setErr(err error) {
	u.mu.Lock()
	u.err = errnorm.Message(err)
	u.mu.Unlock()
}

func (u *Uploader) ClearError() {
	u.mu.Lock()
	u.err = ""
	u.mu.Unlock()
}

func (u *Uploader) Uploading() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploading
}

func (u *Uploader) Err() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.err
}
