// Package newsletter handles the footer sign-up form. The result travels
// back to the page the visitor came from as a query parameter, which the
// shared layout turns into a localized message.
package newsletter

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/jawahirullah/portal/internal/app/store/content"
	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/jawahirullah/portal/internal/app/system/forms"
	"github.com/jawahirullah/portal/internal/app/system/limits"
	"github.com/jawahirullah/portal/internal/app/system/normalize"
	"github.com/jawahirullah/portal/internal/app/system/ratelimit"
	"github.com/jawahirullah/portal/internal/app/system/timeouts"
	"github.com/jawahirullah/portal/internal/app/system/viewdata"
	"github.com/jawahirullah/portal/internal/domain/models"
	"go.uber.org/zap"
)

// Results carried in viewdata.NewsletterParam.
const (
	ResultOK      = "ok"
	ResultExists  = "exists"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

type subscribeForm struct {
	Email  string `form:"email" validate:"required,email,max=254" label:"Email"`
	Return string `form:"return"`
}

type Handler struct {
	Stores  content.Stores
	Limiter *ratelimit.FormLimiter
	Log     *zap.Logger
	now     func() time.Time
}

func NewHandler(stores content.Stores, limiter *ratelimit.FormLimiter, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Stores: stores, Limiter: limiter, Log: logger, now: time.Now}
}

// HandleSubscribe stores an active subscription for the submitted address.
// Addresses are stored lowercased, so one mailbox subscribes once.
func (h *Handler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	limits.Body(w, r, limits.MaxPublicForm)
	var f subscribeForm
	errs := forms.Bind(r, &f)
	back := viewdata.LocalPath(f.Return, "/")
	if errs.Get("email") != "" || errs.Get("_form") != "" {
		h.redirect(w, r, back, ResultInvalid)
		return
	}
	if h.Limiter != nil && !h.Limiter.Allow(r, "newsletter") {
		h.Log.Warn("newsletter sign-up rate limited", zap.String("ip", ratelimit.ClientIP(r)))
		h.redirect(w, r, back, ResultError)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "newsletter subscribe")
	defer cancel()

	email := normalize.Email(f.Email)
	_, err := h.Stores.Newsletter.Create(ctx, models.NewsletterSubscription{
		Email:        email,
		Status:       models.SubscriptionActive,
		SubscribedAt: h.now().UTC(),
	})
	if docstore.CodeOf(err) == docstore.CodeAlreadyExists {
		var reactivated bool
		reactivated, err = h.reactivate(ctx, email)
		if err == nil && !reactivated {
			h.redirect(w, r, back, ResultExists)
			return
		}
	}
	switch {
	case err == nil:
		h.Log.Info("newsletter subscription added")
		h.redirect(w, r, back, ResultOK)
	default:
		h.Log.Error("store newsletter subscription failed", zap.Error(err))
		h.redirect(w, r, back, ResultError)
	}
}

// reactivate turns an unsubscribed record for email back on. It reports false
// when the address is already active.
func (h *Handler) reactivate(ctx context.Context, email string) (bool, error) {
	found, err := h.Stores.Newsletter.Search(ctx, "email", email)
	if err != nil {
		return false, err
	}
	for _, s := range found {
		if s.Email != email {
			continue
		}
		if s.Status == models.SubscriptionActive {
			return false, nil
		}
		return true, h.Stores.Newsletter.Update(ctx, s.ID, docstore.Patch{
			"status":        string(models.SubscriptionActive),
			"subscribed_at": h.now().UTC(),
		})
	}
	return false, nil
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, back, result string) {
	http.Redirect(w, r, withResult(back, result), http.StatusSeeOther)
}

// withResult sets the newsletter result on a local path, keeping any other
// query parameters it already has.
func withResult(back, result string) string {
	u, err := url.Parse(back)
	if err != nil {
		u = &url.URL{Path: "/"}
	}
	q := u.Query()
	q.Set(viewdata.NewsletterParam, result)
	u.RawQuery = q.Encode()
	u.Fragment = "newsletter"
	return u.String()
}
