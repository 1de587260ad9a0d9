// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger logs a handler failure and renders the matching error page.
type ErrorLogger struct {
	Log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger}
}

// LogServerError logs err at error level and renders a 500 page showing
// userMsg.
func (l *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	l.Log.Error(logMsg, zap.Error(err), zap.String("method", r.Method), zap.String("path", r.URL.Path))
	RenderServerError(w, r, userMsg, backURL)
}

// LogBadRequest logs err at warn level and renders a 400 page showing
// userMsg.
func (l *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	l.Log.Warn(logMsg, zap.Error(err), zap.String("method", r.Method), zap.String("path", r.URL.Path))
	RenderBadRequest(w, r, userMsg, backURL)
}
