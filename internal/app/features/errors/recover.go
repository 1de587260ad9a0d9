// internal/app/features/errors/recover.go
package errors

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"
)

// fallbackPage is written when rendering the themed error page itself fails.
const fallbackPage = `<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><title>Something went wrong</title></head>
<body style="font-family:sans-serif;text-align:center;padding:4rem">
<h1>Something went wrong</h1>
<p>An unexpected error occurred. Please refresh the page or try again later.</p>
<p><a href="/">Go to home page</a></p>
</body></html>`

// Recoverer is the top-level error boundary. A panic anywhere below it is
// logged with its stack and answered with a full-page 500.
func Recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic recovered",
					zap.String("panic", fmt.Sprint(rec)),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.ByteString("stack", debug.Stack()))
				writeFallback(w, r, logger)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func writeFallback(w http.ResponseWriter, r *http.Request, logger *zap.Logger) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("error page render failed", zap.String("panic", fmt.Sprint(rec)))
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(fallbackPage))
		}
	}()
	RenderServerError(w, r, "", "/")
}
