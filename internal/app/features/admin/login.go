// internal/app/features/admin/login.go
package admin

import (
	"net/http"
	"strings"

	"github.com/jawahirullah/portal/internal/app/system/auth"
	"github.com/jawahirullah/portal/internal/app/system/authsession"
	"github.com/jawahirullah/portal/internal/app/system/forms"
	"github.com/jawahirullah/portal/internal/app/system/formutil"
	"github.com/jawahirullah/portal/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type loginForm struct {
	Email    string `form:"email" label:"Email" validate:"required,loginemail"`
	Password string `form:"password,notrim" label:"Password" validate:"required,min=6"`
	Return   string `form:"return"`
}

type loginVM struct {
	formutil.Base
	Email  string
	Return string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/login – sign-in form                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// ShowLogin renders the sign-in form, or sends an already signed-in admin
// on to the dashboard.
func (h *Handler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	ret := safeReturn(r.URL.Query().Get("return"))
	switch st := h.session(r); st.Status {
	case authsession.Authenticated:
		http.Redirect(w, r, ret, http.StatusSeeOther)
	case authsession.Initializing:
		h.renderLoading(w, r)
	default:
		if hook := auth.HookFrom(r); hook != nil {
			hook.ClearError()
		}
		h.renderLogin(w, r, http.StatusOK, loginForm{Return: ret}, nil, "")
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/login – credential exchange                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// Login validates the form locally, then asks the session hook to sign in.
// Invalid input never reaches the auth service.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var f loginForm
	if errs := forms.Bind(r, &f); errs.Any() {
		h.renderLogin(w, r, http.StatusUnprocessableEntity, f, errs, "")
		return
	}

	hook := auth.HookFrom(r)
	if hook == nil {
		h.ErrLog.LogServerError(w, r, "login without session hook", nil, "Your session could not be started. Please reload the page.", "/admin")
		return
	}

	if ok, msg := h.Limiter.Check(r, f.Email); !ok {
		h.Log.Warn("login rate limited", zap.String("email", f.Email), zap.String("path", r.URL.Path))
		h.renderLogin(w, r, http.StatusTooManyRequests, f, nil, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "admin sign-in")
	defer cancel()

	if !hook.SignIn(ctx, f.Email, f.Password) {
		h.renderLogin(w, r, http.StatusUnauthorized, f, nil, hook.State().Err)
		return
	}
	h.Limiter.ResetEmail(f.Email)

	// The Authenticated state arrives through the subscription; wait for it
	// so the dashboard request that follows does not see a stale state.
	if _, ok := hook.WaitFor(ctx, func(s authsession.State) bool {
		return s.Status == authsession.Authenticated
	}); !ok {
		h.Log.Warn("sign-in accepted but session not yet authenticated", zap.String("email", f.Email))
	}

	h.Log.Info("admin signed in", zap.String("email", f.Email))
	http.Redirect(w, r, safeReturn(f.Return), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/logout                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// Logout ends the session. A failure leaves the error on the hook, where the
// dashboard shows it.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	hook := auth.HookFrom(r)
	if hook == nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "admin sign-out")
	defer cancel()

	if hook.SignOut(ctx) {
		hook.WaitFor(ctx, func(s authsession.State) bool {
			return s.Status != authsession.Authenticated
		})
	} else {
		h.Log.Warn("admin sign-out failed", zap.String("error", hook.State().Err))
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, code int, f loginForm, errs forms.Errors, banner string) {
	vm := loginVM{Email: f.Email, Return: safeReturn(f.Return)}
	formutil.SetBase(&vm.Base, r, "Admin Login", "/")
	vm.Errors = errs
	if banner != "" {
		vm.SetError(banner)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	h.Render(w, r, "admin_login", vm)
}

// safeReturn keeps post-login redirects inside the admin area.
func safeReturn(ret string) string {
	inside := ret == "/admin" || strings.HasPrefix(ret, "/admin/") || strings.HasPrefix(ret, "/admin?")
	if !inside || strings.HasPrefix(ret, auth.LoginPath) || strings.ContainsAny(ret, "\\\r\n") {
		return "/admin"
	}
	return ret
}
