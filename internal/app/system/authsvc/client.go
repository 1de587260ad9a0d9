package authsvc

import (
	"context"
	"sync"
	"time"

	"github.com/jawahirullah/portal/internal/domain/models"
	"go.uber.org/zap"
)

// resolveTimeout bounds the initial lookup of a persisted session.
const resolveTimeout = 5 * time.Second

type event struct {
	target int // 0 delivers to every subscriber
	p      *Principal
}

// Client is the auth service as seen by one browser session.
type Client struct {
	p     *Provider
	token string

	mu        sync.Mutex
	current   *Principal
	expiresAt time.Time
	expiry    *time.Timer
	resolved  bool
	resolving bool
	subs      map[int]func(*Principal)
	nextID    int
	queue     []event
	closed    bool

	wake chan struct{}
	done chan struct{}
	wg   sync.WaitGroup
}

var _ Service = (*Client)(nil)

// Client returns a new client bound to the browser session token.
func (p *Provider) Client(token string) *Client {
	c := &Client{
		p:     p,
		token: token,
		subs:  map[int]func(*Principal){},
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	c.wg.Add(1)
	go c.dispatch()
	return c
}

// SignIn verifies credentials and persists a session for this client's
// token. Subscribers are notified asynchronously.
func (c *Client) SignIn(ctx context.Context, email, password string) (Principal, error) {
	a, err := c.p.authenticate(ctx, email, password)
	if err != nil {
		return Principal{}, err
	}

	now := c.p.now().UTC()
	rec := models.AuthSession{
		Token:     c.token,
		AdminID:   a.ID,
		Email:     a.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(c.p.ttl),
	}
	if err := c.p.records.Save(ctx, rec); err != nil {
		return Principal{}, unavailable(err)
	}

	pr := Principal{UID: a.ID.Hex(), Email: a.Email, DisplayName: a.DisplayName}
	c.p.log.Info("admin signed in", zap.String("email", a.Email))

	c.mu.Lock()
	c.current = &pr
	c.resolved = true
	c.armExpiryLocked(rec.ExpiresAt)
	c.push(event{p: &pr})
	c.mu.Unlock()
	return pr, nil
}

// SignOut ends the session for this client's token.
func (c *Client) SignOut(ctx context.Context) error {
	if err := c.p.records.Delete(ctx, c.token); err != nil {
		return unavailable(err)
	}

	c.mu.Lock()
	prev := c.current
	c.current = nil
	c.resolved = true
	c.armExpiryLocked(time.Time{})
	c.push(event{})
	c.mu.Unlock()

	if prev != nil {
		c.p.log.Info("admin signed out", zap.String("email", prev.Email))
	}
	return nil
}

// OnSessionChange registers fn. fn is called once with the current session
// (nil when signed out) as soon as it is known, then on every change.
func (c *Client) OnSessionChange(fn func(*Principal)) func() {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.subs[id] = fn

	switch {
	case c.resolved:
		c.expireLocked()
		c.push(event{target: id, p: c.current})
	case !c.resolving:
		c.resolving = true
		go c.resolve()
	}
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// Close stops event delivery. Pending events are dropped.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.armExpiryLocked(time.Time{})
	c.mu.Unlock()
	close(c.done)
	c.wg.Wait()
}

// resolve loads the persisted session for the token and announces it.
func (c *Client) resolve() {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	var (
		pr      *Principal
		expires time.Time
	)
	rec, err := c.p.records.Find(ctx, c.token, c.p.now().UTC())
	if err != nil {
		c.p.log.Warn("resolve auth session failed", zap.Error(err))
	}
	if rec != nil {
		pr = &Principal{UID: rec.AdminID.Hex(), Email: rec.Email}
		expires = rec.ExpiresAt
		if a, err := c.p.dir.FindByEmail(ctx, rec.Email); err == nil && a != nil {
			if !a.IsActive {
				pr = nil
			} else {
				pr.DisplayName = a.DisplayName
			}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolving = false
	if c.resolved {
		// a sign-in or sign-out won the race and already announced itself
		return
	}
	c.current = pr
	c.resolved = true
	if pr != nil {
		c.armExpiryLocked(expires)
	}
	c.push(event{p: pr})
}

// armExpiryLocked schedules the end of the current session at t, replacing
// any earlier schedule. A zero t only cancels. Callers hold c.mu.
func (c *Client) armExpiryLocked(t time.Time) {
	if c.expiry != nil {
		c.expiry.Stop()
		c.expiry = nil
	}
	c.expiresAt = t
	if t.IsZero() || c.closed {
		return
	}
	var timer *time.Timer
	timer = time.AfterFunc(t.Sub(c.p.now()), func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.expiry != timer {
			return
		}
		c.expiry = nil
		c.expireLocked()
		if c.current != nil {
			// the timer ran a little ahead of the wall clock
			c.armExpiryLocked(c.expiresAt)
		}
	})
	c.expiry = timer
}

// expireLocked drops the current principal once its record has expired and
// tells every subscriber the session ended. Callers hold c.mu.
func (c *Client) expireLocked() {
	if c.current == nil || c.expiresAt.IsZero() || c.p.now().Before(c.expiresAt) {
		return
	}
	c.p.log.Info("admin session expired", zap.String("email", c.current.Email))
	c.current = nil
	c.expiresAt = time.Time{}
	c.push(event{})
}

// push queues ev. Callers hold c.mu.
func (c *Client) push(ev event) {
	if c.closed {
		return
	}
	c.queue = append(c.queue, ev)
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Client) dispatch() {
	defer c.wg.Done()
	for {
		select {
		case <-c.done:
			return
		case <-c.wake:
		}

		for {
			c.mu.Lock()
			if len(c.queue) == 0 || c.closed {
				c.mu.Unlock()
				break
			}
			ev := c.queue[0]
			c.queue = c.queue[1:]
			var fns []func(*Principal)
			if ev.target != 0 {
				if fn, ok := c.subs[ev.target]; ok {
					fns = append(fns, fn)
				}
			} else {
				for _, fn := range c.subs {
					fns = append(fns, fn)
				}
			}
			c.mu.Unlock()

			for _, fn := range fns {
				fn(clonePrincipal(ev.p))
			}
		}
	}
}

func clonePrincipal(p *Principal) *Principal {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
