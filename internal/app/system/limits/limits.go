// internal/app/system/limits/limits.go
package limits

import "net/http"

// Request body size limits.
const (
	// MaxPublicForm caps the contact, newsletter and preference posts.
	// The contact message itself is capped at 5000 characters.
	MaxPublicForm = 64 << 10 // 64 KB
)

// Body caps r's body at n bytes. Reading past it fails, which the form
// parsers report as invalid input.
func Body(w http.ResponseWriter, r *http.Request, n int64) {
	r.Body = http.MaxBytesReader(w, r.Body, n)
}
