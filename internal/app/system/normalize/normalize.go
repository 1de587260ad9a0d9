// Package normalize canonicalizes user-entered values before they are
// stored or compared.
package normalize

import "strings"

// Email trims and lowercases an address so one mailbox maps to one key.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding space and preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Status trims and lowercases a status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a search or filter value from the URL.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
