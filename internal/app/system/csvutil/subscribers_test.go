package csvutil

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jawahirullah/portal/internal/domain/models"
)

func TestWriteSubscribers(t *testing.T) {
	at := time.Date(2024, 3, 1, 15, 30, 0, 0, time.FixedZone("IST", 19800))
	subs := []models.NewsletterSubscription{
		{Email: "a@example.com", Status: models.SubscriptionActive, SubscribedAt: at},
		{Email: "=cmd@example.com", Status: models.SubscriptionUnsubscribed},
	}

	var buf bytes.Buffer
	if err := WriteSubscribers(&buf, subs); err != nil {
		t.Fatalf("WriteSubscribers: %v", err)
	}

	want := "email,status,subscribed_at\n" +
		"a@example.com,active,2024-03-01T10:00:00Z\n" +
		"'=cmd@example.com,unsubscribed,\n"
	if got := buf.String(); got != want {
		t.Errorf("csv =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteSubscribers_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSubscribers(&buf, nil); err != nil {
		t.Fatalf("WriteSubscribers: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "email,status,subscribed_at" {
		t.Errorf("got %q", buf.String())
	}
}

func TestWriteSubscribers_TooMany(t *testing.T) {
	subs := make([]models.NewsletterSubscription, MaxRows+1)
	if err := WriteSubscribers(&bytes.Buffer{}, subs); err == nil {
		t.Error("expected an error past MaxRows")
	}
}
