// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/jawahirullah/portal/internal/app/system/viewdata"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Code    int
	Heading string
	Message string
	HomeURL string
}

// Handler serves the error pages that have routes of their own.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// NotFound renders the bilingual 404 page. It is the router's catch-all.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	RenderNotFound(w, r)
}

// RenderNotFound writes a 404 with the localized "page not found" copy.
func RenderNotFound(w http.ResponseWriter, r *http.Request) {
	vm := viewdata.NewBaseVM(r, "notfound.title", "/")
	render(w, r, http.StatusNotFound, pageData{
		BaseVM:  vm,
		Code:    http.StatusNotFound,
		Heading: vm.T("notfound.title"),
		Message: vm.T("notfound.body"),
		HomeURL: "/",
	})
}

// RenderServerError writes a 500 page with msg, or the generic localized
// copy when msg is empty.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	renderMessage(w, r, http.StatusInternalServerError, msg, backURL)
}

// RenderBadRequest writes a 400 page with msg.
func RenderBadRequest(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	renderMessage(w, r, http.StatusBadRequest, msg, backURL)
}

func renderMessage(w http.ResponseWriter, r *http.Request, code int, msg, backURL string) {
	vm := viewdata.NewBaseVM(r, "error.title", "/")
	if msg == "" {
		msg = vm.T("error.body")
	}
	if backURL != "" {
		vm.BackURL = backURL
	}
	render(w, r, code, pageData{
		BaseVM:  vm,
		Code:    code,
		Heading: vm.T("error.title"),
		Message: msg,
		HomeURL: "/",
	})
}

func render(w http.ResponseWriter, r *http.Request, code int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	templates.Render(w, r, "error_page", data)
}
