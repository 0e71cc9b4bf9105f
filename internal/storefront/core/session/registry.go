// Package session tracks per-visitor state: the cart and the notice queue.
//
// Everything lives in process memory. A session starts with an empty cart,
// is mutated only through Do, and is swept away after sitting idle past the
// registry TTL — nothing survives a restart.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jcamposr/storefront-gateway/internal/storefront/core/domain/entity"
	"github.com/jcamposr/storefront-gateway/internal/storefront/core/notify"
)

const noticeCapacity = 32

// Session is one visitor's transient state.
type Session struct {
	ID string

	mu       sync.Mutex
	cart     *entity.Cart
	notices  *notify.Queue
	lastSeen time.Time
}

// Do runs fn while holding the session mutex. All cart and notice access
// goes through here, which serializes mutations per session the way a
// single UI event thread would.
func (s *Session) Do(fn func(cart *entity.Cart, notices *notify.Queue)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	fn(s.cart, s.notices)
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Registry owns all live sessions. Safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewRegistry returns a registry whose sessions expire after sitting idle
// for ttl.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create starts a new session with an empty cart.
func (r *Registry) Create() *Session {
	s := &Session{
		ID:       uuid.NewString(),
		cart:     entity.NewCart(),
		notices:  notify.NewQueue(noticeCapacity),
		lastSeen: time.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return s
}

// Get looks up a live session by ID.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops idle sessions every interval until ctx is cancelled.
// Run it in its own goroutine from main.
func (r *Registry) Sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.sweepOnce(now); n > 0 {
				slog.Info("swept idle sessions", "count", n)
			}
		}
	}
}

func (r *Registry) sweepOnce(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	swept := 0
	for id, s := range r.sessions {
		if s.idleSince(now) > r.ttl {
			delete(r.sessions, id)
			swept++
		}
	}
	return swept
}
