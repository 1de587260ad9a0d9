// Package formutil provides helpers for form re-rendering with validation errors.
//
// When an admin form submission fails, the form is rendered again with:
// - The values the admin entered (echoed back)
// - Per-field messages from the forms package
// - A banner error for failures that are not tied to one field
//
// Example usage:
//
//	type bookFormVM struct {
//		formutil.Base
//		Form bookForm
//	}
//
//	vm := bookFormVM{Form: f}
//	formutil.SetBase(&vm.Base, r, "Add Book", "/admin/books")
//	vm.Errors = errs
//	render(w, r, "admin_book_form", vm)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/jawahirullah/portal/internal/app/system/forms"
	"github.com/jawahirullah/portal/internal/app/system/viewdata"
)

// Base contains common fields for form pages that can be embedded in form data structs.
type Base struct {
	viewdata.BaseVM
	Errors forms.Errors
	Error  template.HTML
	Detail string
}

// SetBase populates the common Base fields from the request.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(r, title, backDefault)
}

// SetError sets the banner error. msg is escaped; use Error directly for
// trusted markup.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// FieldError returns the message for one input, for templates.
func (b Base) FieldError(name string) string {
	return b.Errors.Get(name)
}

// HasErrors reports whether any field or banner error is set.
func (b Base) HasErrors() bool {
	return b.Errors.Any() || b.Error != ""
}
