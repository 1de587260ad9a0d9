package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jawahirullah/portal/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger checks that the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// MongoPinger pings the primary of client.
func MongoPinger(client *mongo.Client) Pinger {
	return PingFunc(func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	})
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Store   Pinger
	Backend string // "mongo" or "memory"
	Media   bool   // media CDN configured
	Mail    bool   // e-mail provider configured
	Log     *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(store Pinger, backend string, media, mail bool, logger *zap.Logger) *Handler {
	return &Handler{
		Store:   store,
		Backend: backend,
		Media:   media,
		Mail:    mail,
		Log:     logger,
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Backend  string `json:"backend"`
	Media    string `json:"media"`
	Mail     string `json:"mail"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "backend":"mongo", "media":"enabled", "mail":"disabled" }
//
// On store failure: 503 with status "error" and the ping error.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
		Backend:  h.Backend,
		Media:    enabled(h.Media),
		Mail:     enabled(h.Mail),
	}

	if h.Store != nil {
		if err := h.Store.Ping(ctx); err != nil {
			h.Log.Error("health-check: store ping failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			resp.Status = "error"
			resp.Database = "disconnected"
			resp.Message = "Database unavailable"
			resp.Error = err.Error()
		}
	}

	_ = json.NewEncoder(w).Encode(resp)
}

func enabled(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
