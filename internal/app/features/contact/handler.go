// internal/app/features/contact/handler.go
package contact

import (
	"net/http"

	"github.com/jawahirullah/portal/internal/app/store/content"
	"github.com/jawahirullah/portal/internal/app/system/forms"
	"github.com/jawahirullah/portal/internal/app/system/formutil"
	"github.com/jawahirullah/portal/internal/app/system/limits"
	"github.com/jawahirullah/portal/internal/app/system/normalize"
	"github.com/jawahirullah/portal/internal/app/system/ratelimit"
	"github.com/jawahirullah/portal/internal/app/system/timeouts"
	"github.com/jawahirullah/portal/internal/app/system/viewdata"
	"github.com/jawahirullah/portal/internal/domain/models"
	"go.uber.org/zap"
)

// SentParam marks the redirect after a stored message.
const SentParam = "sent"

type contactForm struct {
	Name    string `form:"name" validate:"required,max=100" label:"Name"`
	Email   string `form:"email" validate:"required,email" label:"Email"`
	Phone   string `form:"phone" validate:"omitempty,max=30" label:"Phone"`
	Subject string `form:"subject" validate:"required,max=200" label:"Subject"`
	Message string `form:"message" validate:"required,max=5000" label:"Message"`
}

type pageData struct {
	formutil.Base
	Form contactForm
	Sent bool
}

type Handler struct {
	Stores  content.Stores
	Limiter *ratelimit.FormLimiter
	Log     *zap.Logger
	Render  viewdata.RenderFunc
}

// NewHandler wires the contact page. limiter may be nil to disable the
// per-client cap.
func NewHandler(stores content.Stores, limiter *ratelimit.FormLimiter, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Stores: stores, Limiter: limiter, Log: logger, Render: viewdata.Render}
}

func (h *Handler) ServeContact(w http.ResponseWriter, r *http.Request) {
	data := h.page(r, contactForm{}, nil)
	data.Sent = r.URL.Query().Get(SentParam) == "1"
	h.Render(w, r, "contact", data)
}

// HandleSubmit stores the message as unread for the admin inbox.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	limits.Body(w, r, limits.MaxPublicForm)
	var f contactForm
	if errs := forms.Bind(r, &f); errs != nil {
		data := h.page(r, f, errs)
		data.SetError(data.T("contact.required"))
		h.write(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	if h.Limiter != nil && !h.Limiter.Allow(r, "contact") {
		h.Log.Warn("contact form rate limited", zap.String("ip", ratelimit.ClientIP(r)))
		data := h.page(r, f, nil)
		data.SetError(data.T("contact.limited"))
		h.write(w, r, http.StatusTooManyRequests, data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "contact submit")
	defer cancel()

	id, err := h.Stores.Contacts.Create(ctx, models.ContactMessage{
		Name:    f.Name,
		Email:   normalize.Email(f.Email),
		Phone:   f.Phone,
		Subject: f.Subject,
		Message: f.Message,
		Status:  models.ContactUnread,
	})
	if err != nil {
		h.Log.Error("store contact message failed", zap.Error(err))
		data := h.page(r, f, nil)
		data.SetError(data.T("contact.error"))
		h.write(w, r, http.StatusInternalServerError, data)
		return
	}

	h.Log.Info("contact message received", zap.String("id", id))
	http.Redirect(w, r, "/contact?"+SentParam+"=1", http.StatusSeeOther)
}

func (h *Handler) page(r *http.Request, f contactForm, errs forms.Errors) pageData {
	data := pageData{Form: f}
	formutil.SetBase(&data.Base, r, "contact.title", "/")
	data.Errors = errs
	return data
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, code int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	h.Render(w, r, "contact", data)
}
