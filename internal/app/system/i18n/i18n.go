// Package i18n is the bilingual copy catalog for the public site.
package i18n

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
)

const DefaultLocale = "en"

//go:embed translations.json
var translationsData []byte

// Catalog maps locale → key → text.
type Catalog struct {
	translations map[string]map[string]string
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(translationsData)
}

// Parse builds a catalog from JSON of the form {"en": {"key": "text"}}.
func Parse(data []byte) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var tr map[string]map[string]string
	if err := dec.Decode(&tr); err != nil {
		return nil, fmt.Errorf("i18n: decode catalog: %w", err)
	}
	if _, ok := tr[DefaultLocale]; !ok {
		return nil, fmt.Errorf("i18n: catalog has no %q locale", DefaultLocale)
	}
	return &Catalog{translations: tr}, nil
}

// MustLoad is Load for package init paths.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// T returns the text for key in locale, falling back to English and then
// to the key itself. Extra args are applied with fmt.Sprintf.
func (c *Catalog) T(locale, key string, args ...any) string {
	s, ok := c.translations[locale][key]
	if !ok {
		s, ok = c.translations[DefaultLocale][key]
	}
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(s, args...)
	}
	return s
}

// For returns a translate func bound to locale, for use in templates.
func (c *Catalog) For(locale string) func(key string, args ...any) string {
	return func(key string, args ...any) string { return c.T(locale, key, args...) }
}

// Keys lists the keys defined for locale, sorted.
func (c *Catalog) Keys(locale string) []string {
	m := c.translations[locale]
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Locales lists the locales in the catalog, sorted.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.translations))
	for l := range c.translations {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
