// internal/app/features/admin/contacts.go
package admin

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/jawahirullah/portal/internal/app/features/errors"
	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/jawahirullah/portal/internal/app/system/errnorm"
	"github.com/jawahirullah/portal/internal/app/system/forms"
	"github.com/jawahirullah/portal/internal/app/system/formutil"
	"github.com/jawahirullah/portal/internal/app/system/mailer"
	"github.com/jawahirullah/portal/internal/app/system/repository"
	"github.com/jawahirullah/portal/internal/app/system/timeouts"
	"github.com/jawahirullah/portal/internal/domain/models"
	"go.uber.org/zap"
)

type replyForm struct {
	Reply string `form:"reply" label:"Reply" validate:"required,max=5000"`
}

type contactVM struct {
	formutil.Base
	Tabs     []tabLink
	Active   Tab
	Message  models.ContactMessage
	Reply    string
	Statuses []string
	CanMail  bool
}

func (h *Handler) contactsRepo() *repository.Repository[models.ContactMessage] {
	return repository.New(h.Stores.Contacts, models.CollContacts, h.Log)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/contacts/{id} – message + reply form                             |
*─────────────────────────────────────────────────────────────────────────────*/

// ShowContact renders one message. Opening an unread message marks it read.
func (h *Handler) ShowContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "admin load contact")
	defer cancel()

	repo := h.contactsRepo()
	msg, ok := h.loadContact(w, r, repo, id)
	if !ok {
		return
	}
	if msg.Status == models.ContactUnread {
		if repo.Update(ctx, id, docstore.Patch{"status": string(models.ContactRead)}) {
			msg.Status = models.ContactRead
		}
	}
	h.renderContact(w, r, http.StatusOK, *msg, "", nil)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/contacts/{id}/status                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) SetContactStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse contact status form failed", err, "Invalid form data.", TabContacts.Path())
		return
	}
	status := models.ContactStatus(r.PostForm.Get("status"))
	if !status.Valid() {
		h.ErrLog.LogBadRequest(w, r, "invalid contact status", errors.New(string(status)), "Unknown message status.", TabContacts.Path())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "admin contact status")
	defer cancel()

	repo := h.contactsRepo()
	if !repo.Update(ctx, id, docstore.Patch{"status": string(status)}) {
		h.Log.Warn("contact status update failed", zap.String("id", id), zap.String("error", repo.Err()))
		http.Redirect(w, r, flash(TabContacts, "error", "status"), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, flash(TabContacts, "success", "status"), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/contacts/{id}/reply                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// Reply stores the reply on the message and, when mail is configured, sends
// it to the sender. A mail failure is logged and reported but the stored
// reply is kept.
func (h *Handler) Reply(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin contact reply")
	defer cancel()

	repo := h.contactsRepo()
	msg, ok := h.loadContact(w, r, repo, id)
	if !ok {
		return
	}

	var f replyForm
	if errs := forms.Bind(r, &f); errs.Any() {
		h.renderContact(w, r, http.StatusUnprocessableEntity, *msg, f.Reply, errs)
		return
	}

	now := time.Now().UTC()
	patch := docstore.Patch{
		"status":        string(models.ContactReplied),
		"replied":       true,
		"reply_message": f.Reply,
		"reply_date":    now,
	}
	if !repo.Update(ctx, id, patch) {
		h.Log.Warn("store contact reply failed", zap.String("id", id), zap.String("error", repo.Err()))
		h.renderContact(w, r, http.StatusInternalServerError, *msg, f.Reply, forms.Errors{"_form": "Failed to send reply. Please try again."})
		return
	}

	email := mailer.BuildContactReply(msg.Email, mailer.ContactReplyData{
		SiteName:        h.siteName(),
		Name:            msg.Name,
		Subject:         msg.Subject,
		OriginalMessage: msg.Message,
		Reply:           f.Reply,
		SentAt:          now,
	})
	switch mailID, err := h.Mailer.Send(ctx, email); {
	case errors.Is(err, mailer.ErrNotConfigured):
		// Stored only.
	case err != nil:
		h.Log.Error("send contact reply failed", zap.String("id", id), zap.String("to", msg.Email), zap.Error(err))
		http.Redirect(w, r, flash(TabContacts, "success", "replied-nomail"), http.StatusSeeOther)
		return
	default:
		h.Log.Info("contact reply sent", zap.String("id", id), zap.String("mail_id", mailID))
	}
	http.Redirect(w, r, flash(TabContacts, "success", "replied"), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/contacts/{id}/delete                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "admin delete contact")
	defer cancel()

	repo := h.contactsRepo()
	if !repo.Delete(ctx, id) {
		h.Log.Warn("contact delete failed", zap.String("id", id), zap.String("error", repo.Err()))
		http.Redirect(w, r, flash(TabContacts, "error", "delete"), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, flash(TabContacts, "success", "deleted"), http.StatusSeeOther)
}

// loadContact fetches a message or writes the 404/500 page.
func (h *Handler) loadContact(w http.ResponseWriter, r *http.Request, repo *repository.Repository[models.ContactMessage], id string) (*models.ContactMessage, bool) {
	msg := repo.GetByID(r.Context(), id)
	if msg != nil {
		return msg, true
	}
	if e := repo.Err(); e != "" && e != errnorm.MsgNotFound {
		h.ErrLog.LogServerError(w, r, "load contact failed", errors.New(e), e, TabContacts.Path())
		return nil, false
	}
	uierrors.RenderNotFound(w, r)
	return nil, false
}

func (h *Handler) renderContact(w http.ResponseWriter, r *http.Request, code int, msg models.ContactMessage, reply string, errs forms.Errors) {
	vm := contactVM{
		Tabs:     tabLinks(TabContacts),
		Active:   TabContacts,
		Message:  msg,
		Reply:    reply,
		Statuses: models.StringsOf(models.ContactStatuses),
	}
	_, noop := h.Mailer.(mailer.NoopSender)
	vm.CanMail = !noop
	formutil.SetBase(&vm.Base, r, "Message from "+msg.Name, TabContacts.Path())
	vm.Errors = errs
	if m := errs.Get("_form"); m != "" {
		vm.SetError(m)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	h.Render(w, r, "admin_contact", vm)
}

func (h *Handler) siteName() string {
	if h.SiteName != "" {
		return h.SiteName
	}
	return models.DefaultSiteName
}
