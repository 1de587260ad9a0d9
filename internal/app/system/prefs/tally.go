package prefs

import (
	"sync"

	"go.uber.org/zap"
)

// Choices counts the preferences visitors have saved since startup.
type Choices struct {
	English int64
	Tamil   int64
	Light   int64
	Dark    int64
}

// Total is the number of saves counted.
func (c Choices) Total() int64 { return c.English + c.Tamil }

// Tally subscribes to a Store and counts every saved preference.
type Tally struct {
	log   *zap.Logger
	stop  func()
	mu    sync.Mutex
	count Choices
}

// NewTally starts counting saves on s until Close.
func NewTally(s *Store, log *zap.Logger) *Tally {
	if log == nil {
		log = zap.NewNop()
	}
	t := &Tally{log: log}
	t.stop = s.Subscribe(t.record)
	return t
}

func (t *Tally) record(p Prefs) {
	t.mu.Lock()
	if p.Locale == LocaleTA {
		t.count.Tamil++
	} else {
		t.count.English++
	}
	if p.Theme == ThemeDark {
		t.count.Dark++
	} else {
		t.count.Light++
	}
	t.mu.Unlock()
	t.log.Debug("preferences saved", zap.String("locale", p.Locale), zap.String("theme", p.Theme))
}

// Snapshot returns the counts so far.
func (t *Tally) Snapshot() Choices {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Close stops counting. Safe to call more than once.
func (t *Tally) Close() {
	t.mu.Lock()
	stop := t.stop
	t.stop = nil
	t.mu.Unlock()
	if stop != nil {
		stop()
	}
}
