// internal/app/features/admin/handler.go
package admin

import (
	uierrors "github.com/jawahirullah/portal/internal/app/features/errors"
	"github.com/jawahirullah/portal/internal/app/store/content"
	"github.com/jawahirullah/portal/internal/app/system/mailer"
	"github.com/jawahirullah/portal/internal/app/system/media"
	"github.com/jawahirullah/portal/internal/app/system/prefs"
	"github.com/jawahirullah/portal/internal/app/system/ratelimit"
	"github.com/jawahirullah/portal/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler owns the admin shell and every management screen.
type Handler struct {
	Stores  content.Stores
	Media   *media.Service
	Mailer  mailer.Sender
	Limiter *ratelimit.LoginLimiter
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger

	// SiteName is used in reply e-mails.
	SiteName string

	// Choices, when set, feeds the language and theme counts on the stats tab.
	Choices *prefs.Tally

	// Render defaults to the template engine. Tests swap it to capture view
	// models.
	Render viewdata.RenderFunc
}

// NewHandler constructs an admin Handler. A nil mailer disables reply
// e-mails; a nil media service makes uploads fail with a message.
func NewHandler(stores content.Stores, mediaSvc *media.Service, mail mailer.Sender, limiter *ratelimit.LoginLimiter, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mail == nil {
		mail = mailer.NoopSender{Log: logger}
	}
	if limiter == nil {
		limiter = ratelimit.NewLoginLimiter()
	}
	if errLog == nil {
		errLog = uierrors.NewErrorLogger(logger)
	}
	return &Handler{
		Stores:  stores,
		Media:   mediaSvc,
		Mailer:  mail,
		Limiter: limiter,
		Log:     logger,
		ErrLog:  errLog,
		Render:  viewdata.Render,
	}
}
