// internal/app/features/admin/entity.go
package admin

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/jawahirullah/portal/internal/app/features/errors"
	"github.com/jawahirullah/portal/internal/app/store/content"
	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/jawahirullah/portal/internal/app/system/errnorm"
	"github.com/jawahirullah/portal/internal/app/system/forms"
	"github.com/jawahirullah/portal/internal/app/system/formutil"
	"github.com/jawahirullah/portal/internal/app/system/media"
	"github.com/jawahirullah/portal/internal/app/system/repository"
	"github.com/jawahirullah/portal/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// upload is one file input on an entity form. The uploaded asset's secure
// URL replaces the string target points at.
type upload[F any] struct {
	input    string
	folder   string
	video    bool
	required string // shown when neither a file nor a stored URL is present
	target   func(*F) *string
}

// entity describes how one content type is edited: its form struct F, how
// F maps to and from the stored document T, and which stored fields an
// edit may change.
type entity[T any, F any] struct {
	tab      Tab
	name     string // collection
	template string
	coll     func(content.Stores) docstore.Collection[T]
	fields   []string
	uploads  []upload[F]

	defaults func() F
	fromDoc  func(T) F
	toDoc    func(F) T

	// check adds rules that need more than struct tags. Optional.
	check func(*F, forms.Errors)
	// derive fills computed fields just before saving. Optional.
	derive func(*F)
}

type formOptions struct {
	Statuses    []string
	UpdateTypes []string
}

type formVM[F any] struct {
	formutil.Base
	Tabs    []tabLink
	Active  Tab
	Noun    string
	ID      string
	Action  string
	Form    F
	Options formOptions
}

// crud serves the new/create/edit/update/delete screens for one entity.
type crud[T any, F any] struct {
	h *Handler
	e entity[T, F]
}

func (c crud[T, F]) mount(r chi.Router) {
	base := "/" + string(c.e.tab)
	r.Get(base+"/new", c.New)
	r.Post(base, c.Create)
	r.Get(base+"/{id}/edit", c.Edit)
	r.Post(base+"/{id}", c.Update)
	r.Post(base+"/{id}/delete", c.Delete)
}

func (c crud[T, F]) repo() *repository.Repository[T] {
	return repository.New(c.e.coll(c.h.Stores), c.e.name, c.h.Log)
}

func (c crud[T, F]) noun() string { return nouns[c.e.tab] }

// New renders an empty form.
func (c crud[T, F]) New(w http.ResponseWriter, r *http.Request) {
	var f F
	if c.e.defaults != nil {
		f = c.e.defaults()
	}
	c.renderForm(w, r, http.StatusOK, "", f, nil)
}

// Create validates, uploads any files and stores a new document.
func (c crud[T, F]) Create(w http.ResponseWriter, r *http.Request) {
	c.save(w, r, "")
}

// Edit renders the form filled from the stored document.
func (c crud[T, F]) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), c.h.Log, "admin load "+c.e.name)
	defer cancel()

	repo := c.repo()
	doc := repo.GetByID(ctx, id)
	if doc == nil {
		if msg := repo.Err(); msg != "" && msg != errnorm.MsgNotFound {
			c.h.ErrLog.LogServerError(w, r, "load "+c.e.name+" for edit failed", errors.New(msg), msg, c.e.tab.Path())
			return
		}
		uierrors.RenderNotFound(w, r)
		return
	}
	c.renderForm(w, r, http.StatusOK, id, c.e.fromDoc(*doc), nil)
}

// Update merges the edited fields into the stored document.
func (c crud[T, F]) Update(w http.ResponseWriter, r *http.Request) {
	c.save(w, r, chi.URLParam(r, "id"))
}

// Delete removes the document. Uploaded media is left in place.
func (c crud[T, F]) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), c.h.Log, "admin delete "+c.e.name)
	defer cancel()

	repo := c.repo()
	if !repo.Delete(ctx, id) {
		c.h.Log.Warn("admin delete failed",
			zap.String("collection", c.e.name),
			zap.String("id", id),
			zap.String("error", repo.Err()))
		http.Redirect(w, r, flash(c.e.tab, "error", "delete"), http.StatusSeeOther)
		return
	}
	c.h.Log.Info("admin deleted document", zap.String("collection", c.e.name), zap.String("id", id))
	http.Redirect(w, r, flash(c.e.tab, "success", "deleted"), http.StatusSeeOther)
}

// save runs the whole submission pipeline. Validation covers struct tags,
// required uploads and the entity's own checks, and completes before any
// upload or store call is made.
func (c crud[T, F]) save(w http.ResponseWriter, r *http.Request, id string) {
	var f F
	errs := forms.Bind(r, &f)
	if errs == nil {
		errs = forms.Errors{}
	}

	files := map[string]*multipart.FileHeader{}
	for _, u := range c.e.uploads {
		fh := formFile(r, u.input)
		if fh == nil {
			if u.required != "" && *u.target(&f) == "" {
				errs.Add(u.input, u.required)
			}
			continue
		}
		if err := checkFile(fh, u.video); err != nil {
			errs.Add(u.input, errnorm.Message(err))
			continue
		}
		files[u.input] = fh
	}
	if c.e.check != nil {
		c.e.check(&f, errs)
	}
	if errs.Any() {
		c.renderForm(w, r, http.StatusUnprocessableEntity, id, f, errs)
		return
	}

	// Every file has passed its checks; only now does anything reach the
	// media backend.
	up := media.NewUploader(c.h.Media)
	var uploaded []media.Result
	urls := map[string]string{}
	if len(files) > 0 {
		ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), c.h.Log, "admin upload "+c.e.name)
		defer cancel()
		for _, u := range c.e.uploads {
			fh, ok := files[u.input]
			if !ok {
				continue
			}
			res, msg := c.h.upload(ctx, up, fh, u.folder, u.video)
			if res == nil {
				c.h.discard(ctx, up, uploaded)
				errs.Add(u.input, msg)
				c.renderForm(w, r, http.StatusUnprocessableEntity, id, f, errs)
				return
			}
			uploaded = append(uploaded, *res)
			urls[u.input] = res.SecureURL
		}
		for _, u := range c.e.uploads {
			if url, ok := urls[u.input]; ok {
				*u.target(&f) = url
			}
		}
	}

	if c.e.derive != nil {
		c.e.derive(&f)
	}
	doc := c.e.toDoc(f)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), c.h.Log, "admin save "+c.e.name)
	defer cancel()

	repo := c.repo()
	code := "created"
	var ok bool
	if id == "" {
		id, ok = repo.Create(ctx, doc)
	} else {
		code = "updated"
		patch, err := patchOf(doc, c.e.fields)
		if err != nil {
			c.h.ErrLog.LogServerError(w, r, "build "+c.e.name+" patch failed", err, "", c.e.tab.Path())
			return
		}
		ok = repo.Update(ctx, id, patch)
	}
	if !ok {
		dctx, dcancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), c.h.Log, "admin discard uploads "+c.e.name)
		c.h.discard(dctx, up, uploaded)
		dcancel()
		c.h.Log.Warn("admin save failed",
			zap.String("collection", c.e.name),
			zap.String("id", id),
			zap.String("error", repo.Err()))
		vm := c.formVM(r, id, f, nil)
		vm.SetError("Failed to save " + strings.ToLower(c.noun()) + ". Please try again.")
		vm.Detail = repo.Err()
		c.write(w, r, http.StatusInternalServerError, vm)
		return
	}

	c.h.Log.Info("admin saved document", zap.String("collection", c.e.name), zap.String("id", id), zap.String("op", code))
	http.Redirect(w, r, flash(c.e.tab, "success", code), http.StatusSeeOther)
}

func (c crud[T, F]) formVM(r *http.Request, id string, f F, errs forms.Errors) formVM[F] {
	verb, action := "Add ", "/admin/"+string(c.e.tab)
	if id != "" {
		verb, action = "Edit ", action+"/"+id
	}
	vm := formVM[F]{
		Tabs:   tabLinks(c.e.tab),
		Active: c.e.tab,
		Noun:   c.noun(),
		ID:     id,
		Action: action,
		Form:   f,
		Options: formOptions{
			Statuses:    publishStatuses,
			UpdateTypes: updateTypes,
		},
	}
	formutil.SetBase(&vm.Base, r, verb+c.noun(), c.e.tab.Path())
	vm.Errors = errs
	return vm
}

func (c crud[T, F]) renderForm(w http.ResponseWriter, r *http.Request, code int, id string, f F, errs forms.Errors) {
	c.write(w, r, code, c.formVM(r, id, f, errs))
}

func (c crud[T, F]) write(w http.ResponseWriter, r *http.Request, code int, vm formVM[F]) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	c.h.Render(w, r, c.e.template, vm)
}

// upload sends one submitted file through up and returns the stored
// asset, or nil and the message to show against the input.
func (h *Handler) upload(ctx context.Context, up *media.Uploader, fh *multipart.FileHeader, folder string, video bool) (*media.Result, string) {
	file, err := fh.Open()
	if err != nil {
		h.Log.Warn("open upload failed", zap.String("file", fh.Filename), zap.Error(err))
		return nil, media.MsgUploadFailed
	}
	defer file.Close()

	f := media.File{Name: fh.Filename, Size: fh.Size, Body: file}
	var res *media.Result
	if video {
		res = up.UploadVideo(ctx, f, folder)
	} else {
		res = up.UploadImage(ctx, f, folder)
	}
	if res == nil {
		return nil, up.Err()
	}
	return res, ""
}

// discard removes assets uploaded for a submission that was not saved.
func (h *Handler) discard(ctx context.Context, up *media.Uploader, assets []media.Result) {
	for _, a := range assets {
		if !up.DeleteResource(ctx, a.PublicID, a.ResourceType) {
			h.Log.Warn("orphaned upload left in media store",
				zap.String("public_id", a.PublicID),
				zap.String("error", up.Err()))
		}
	}
}

// checkFile runs the pre-upload type and size checks on one submitted file.
func checkFile(fh *multipart.FileHeader, video bool) error {
	file, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer file.Close()

	f := media.File{Name: fh.Filename, Size: fh.Size, Body: file}
	if video {
		return media.CheckVideo(f)
	}
	return media.CheckImage(f)
}

// formFile returns the non-empty file submitted under name, or nil.
func formFile(r *http.Request, name string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	fhs := r.MultipartForm.File[name]
	if len(fhs) == 0 || fhs[0].Size == 0 {
		return nil
	}
	return fhs[0]
}

// patchOf returns the named stored fields of doc, so an edit never touches
// fields the form does not own (views, comments).
func patchOf(doc any, fields []string) (docstore.Patch, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal patch: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal patch: %w", err)
	}
	p := docstore.Patch{}
	for _, f := range fields {
		if v, ok := m[f]; ok {
			p[f] = v
		}
	}
	return p, nil
}
