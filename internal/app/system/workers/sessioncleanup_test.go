package workers

import (
	"context"
	"testing"
	"time"

	"github.com/jawahirullah/portal/internal/app/store/authsessions"
	"github.com/jawahirullah/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type countingSweeper struct {
	calls int
	idle  time.Duration
}

func (s *countingSweeper) Sweep(idle time.Duration) int {
	s.calls++
	s.idle = idle
	return 1
}

func TestRunOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	records := authsessions.NewMemStore()
	for _, rec := range []models.AuthSession{
		{Token: "old", AdminID: primitive.NewObjectID(), ExpiresAt: now.Add(-time.Minute)},
		{Token: "live", AdminID: primitive.NewObjectID(), ExpiresAt: now.Add(time.Hour)},
	} {
		if err := records.Save(ctx, rec); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	sw := &countingSweeper{}
	w := NewSessionCleanup(sw, records, zap.NewNop(), time.Minute, 30*time.Minute)
	w.now = func() time.Time { return now }
	w.RunOnce()

	if sw.calls != 1 || sw.idle != 30*time.Minute {
		t.Errorf("sweeper calls=%d idle=%v", sw.calls, sw.idle)
	}
	if got, _ := records.Find(ctx, "old", now.Add(-2*time.Minute)); got != nil {
		t.Error("expired record should be deleted")
	}
	if got, _ := records.Find(ctx, "live", now); got == nil {
		t.Error("live record should remain")
	}
}

func TestStartStop(t *testing.T) {
	w := NewSessionCleanup(nil, nil, zap.NewNop(), time.Millisecond, time.Minute)
	w.Start()
	time.Sleep(5 * time.Millisecond)
	w.Stop()
	w.Stop()
}
