package admin

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jawahirullah/portal/internal/app/system/csvutil"
	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/jawahirullah/portal/internal/app/system/repository"
	"github.com/jawahirullah/portal/internal/app/system/timeouts"
	"github.com/jawahirullah/portal/internal/domain/models"
	"go.uber.org/zap"
)

// ToggleSubscription flips a subscription between active and unsubscribed.
func (h *Handler) ToggleSubscription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "admin toggle subscription")
	defer cancel()

	repo := repository.New(h.Stores.Newsletter, models.CollNewsletter, h.Log)
	sub := repo.GetByID(ctx, id)
	if sub == nil {
		h.Log.Warn("toggle subscription: not loaded", zap.String("id", id), zap.String("error", repo.Err()))
		http.Redirect(w, r, flash(TabEmails, "error", "status"), http.StatusSeeOther)
		return
	}

	next := models.SubscriptionUnsubscribed
	if sub.Status != models.SubscriptionActive {
		next = models.SubscriptionActive
	}
	if !repo.Update(ctx, id, docstore.Patch{"status": string(next)}) {
		h.Log.Warn("toggle subscription failed", zap.String("id", id), zap.String("error", repo.Err()))
		http.Redirect(w, r, flash(TabEmails, "error", "status"), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, flash(TabEmails, "success", "status"), http.StatusSeeOther)
}

// DeleteSubscription removes a subscription.
func (h *Handler) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "admin delete subscription")
	defer cancel()

	repo := repository.New(h.Stores.Newsletter, models.CollNewsletter, h.Log)
	if !repo.Delete(ctx, id) {
		h.Log.Warn("delete subscription failed", zap.String("id", id), zap.String("error", repo.Err()))
		http.Redirect(w, r, flash(TabEmails, "error", "delete"), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, flash(TabEmails, "success", "deleted"), http.StatusSeeOther)
}

// ExportSubscriptions downloads every subscription as CSV, newest first.
func (h *Handler) ExportSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin export subscriptions")
	defer cancel()

	subs, err := h.Stores.Newsletter.GetAll(ctx, docstore.ListOptions{OrderBy: "subscribed_at", Direction: docstore.Desc})
	if err != nil {
		h.Log.Warn("export subscriptions failed", zap.Error(err))
		http.Redirect(w, r, flash(TabEmails, "error", "export"), http.StatusSeeOther)
		return
	}

	name := "subscribers-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := csvutil.WriteSubscribers(w, subs); err != nil {
		h.Log.Error("write subscriptions csv failed", zap.Error(err))
	}
}
