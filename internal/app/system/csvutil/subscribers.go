// internal/app/system/csvutil/subscribers.go
package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/jawahirullah/portal/internal/domain/models"
)

var subscriberHeader = []string{"email", "status", "subscribed_at"}

// WriteSubscribers writes subs as CSV with a header row. Dates are RFC 3339
// in UTC. It stops with an error past MaxRows.
func WriteSubscribers(w io.Writer, subs []models.NewsletterSubscription) error {
	if len(subs) > MaxRows {
		return fmt.Errorf("csv export: %d rows exceeds the limit of %d", len(subs), MaxRows)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(subscriberHeader); err != nil {
		return err
	}
	for _, s := range subs {
		at := ""
		if !s.SubscribedAt.IsZero() {
			at = s.SubscribedAt.UTC().Format(time.RFC3339)
		}
		if err := cw.Write([]string{sanitize(s.Email), string(s.Status), at}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// sanitize keeps spreadsheet apps from reading a cell as a formula.
func sanitize(v string) string {
	if v == "" {
		return v
	}
	switch v[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + v
	}
	return v
}
