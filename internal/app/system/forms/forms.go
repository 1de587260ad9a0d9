// Package forms validates submitted forms before anything reaches the store
// or the auth service.
//
// Form structs carry go-playground/validator tags plus a `label` tag used in
// messages. Field keys in the returned Errors are the `form` tag names, so
// templates can look errors up by input name.
package forms

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

// Errors maps a form field name to its message.
type Errors map[string]string

// Any reports whether there is at least one error.
func (e Errors) Any() bool { return len(e) > 0 }

// Get returns the message for field, or "".
func (e Errors) Get(field string) string { return e[field] }

// Add records msg for field unless one is already present.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

var (
	// Same loose rule the login form has always used.
	loginEmailRe = regexp.MustCompile(`^\S+@\S+$`)
	slugRe       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	nonSlugRe    = regexp.MustCompile(`[^a-z0-9]+`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("loginemail", func(fl validator.FieldLevel) bool {
		return loginEmailRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks v (a pointer to a tagged struct) and returns per-field
// messages. A nil result means the form is valid.
func Validate(v any) Errors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{"_form": "Invalid input."}
	}

	labels := labelsOf(v)
	out := Errors{}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe, labels[fe.StructField()]))
	}
	return out
}

// MaxMemory is the in-memory budget for multipart forms; larger file parts
// spill to disk.
const MaxMemory = 32 << 20

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("form")
	d.IgnoreUnknownKeys(true)
	d.ZeroEmpty(true)
	return d
}

// Bind parses the request body into dst (a pointer to a tagged struct) and
// validates it. Values that cannot be converted (a word in a number field)
// are reported as invalid. A nil result means the form is valid.
func Bind(r *http.Request, dst any) Errors {
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(MaxMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return Errors{"_form": "Invalid form data."}
	}

	errs := Errors{}
	if err := decoder.Decode(dst, r.PostForm); err != nil {
		var me schema.MultiError
		if !errors.As(err, &me) {
			return Errors{"_form": "Invalid form data."}
		}
		labels := labelsByFormName(dst)
		for key := range me {
			label := labels[key]
			if label == "" {
				label = key
			}
			errs.Add(key, label+" is invalid")
		}
	}
	trimStrings(dst)
	for k, msg := range Validate(dst) {
		errs.Add(k, msg)
	}
	if !errs.Any() {
		return nil
	}
	return errs
}

func message(fe validator.FieldError, label string) string {
	if label == "" {
		label = fe.StructField()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "loginemail", "email":
		return "Invalid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return label + " must be at least " + fe.Param() + " characters"
		}
		return label + " must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return label + " must be at most " + fe.Param() + " characters"
		}
		return label + " must be at most " + fe.Param()
	case "oneof":
		return label + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "url", "http_url":
		return label + " must be a valid URL"
	case "slug":
		return label + " may only contain lowercase letters, numbers and hyphens"
	case "isodate":
		return label + " must be a date (YYYY-MM-DD)"
	default:
		return label + " is invalid"
	}
}

func labelsOf(v any) map[string]string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]string{}
	if t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if l := f.Tag.Get("label"); l != "" {
			out[f.Name] = l
		}
	}
	return out
}

func trimStrings(v any) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return
	}
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		if hasFormOption(rt.Field(i), "notrim") {
			continue
		}
		if f := rv.Field(i); f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}

// hasFormOption reports whether the field's form tag lists opt after the
// name, as in `form:"password,notrim"`.
func hasFormOption(f reflect.StructField, opt string) bool {
	parts := strings.Split(f.Tag.Get("form"), ",")
	for _, p := range parts[1:] {
		if p == opt {
			return true
		}
	}
	return false
}

func labelsByFormName(v any) map[string]string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]string{}
	if t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name != "" && name != "-" {
			out[name] = f.Tag.Get("label")
		}
	}
	return out
}

// Slugify lowercases s and joins its ASCII letter and digit runs with
// hyphens. Non-ASCII titles (Tamil) yield "".
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SplitTags turns "a, b,,c" into ["a" "b" "c"].
func SplitTags(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
