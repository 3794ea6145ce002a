// Package session keeps at most one review in flight per client session.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// ErrRequestInFlight is returned when a session already has a review running.
var ErrRequestInFlight = errors.New("a review is already in progress for this session")

// Guard tracks sessions with an outstanding review. Entries expire after the
// TTL so a request that never released its slot cannot block the session
// forever.
type Guard struct {
	inflight *cache.Cache
	ttl      time.Duration

	mu   sync.Mutex
	next uint64
}

// NewGuard creates a guard whose entries expire after ttl.
func NewGuard(ttl time.Duration) *Guard {
	return &Guard{
		inflight: cache.New(ttl, 2*ttl),
		ttl:      ttl,
	}
}

// Acquire marks the session busy. The returned function releases it and is
// safe to call more than once. A release that arrives after the slot expired
// and was taken by a newer request leaves the newer slot alone.
func (g *Guard) Acquire(sessionID string) (func(), error) {
	g.mu.Lock()
	g.next++
	token := g.next
	err := g.inflight.Add(sessionID, token, g.ttl)
	g.mu.Unlock()
	if err != nil {
		return nil, ErrRequestInFlight
	}

	var once sync.Once
	return func() {
		once.Do(func() { g.release(sessionID, token) })
	}, nil
}

func (g *Guard) release(sessionID string, token uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if current, found := g.inflight.Get(sessionID); found && current == token {
		g.inflight.Delete(sessionID)
	}
}

// InFlight reports whether the session currently holds a slot.
func (g *Guard) InFlight(sessionID string) bool {
	_, found := g.inflight.Get(sessionID)
	return found
}
