package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcamposr/storefront-gateway/internal/storefront/core/domain/entity"
	"github.com/jcamposr/storefront-gateway/internal/storefront/core/notify"
)

func TestCreate_StartsWithEmptyCart(t *testing.T) {
	t.Parallel()

	r := NewRegistry(time.Minute)
	sess := r.Create()

	require.NotEmpty(t, sess.ID)
	sess.Do(func(cart *entity.Cart, notices *notify.Queue) {
		assert.True(t, cart.IsEmpty())
		assert.Zero(t, notices.Len())
	})
}

func TestGet(t *testing.T) {
	t.Parallel()

	r := NewRegistry(time.Minute)
	sess := r.Create()

	got, ok := r.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)

	_, ok = r.Get("unknown")
	assert.False(t, ok)
}

func TestSweepOnce_DropsIdleSessions(t *testing.T) {
	t.Parallel()

	r := NewRegistry(time.Minute)
	idle := r.Create()
	active := r.Create()

	// Touching a session resets its idle clock.
	future := time.Now().Add(2 * time.Minute)
	active.mu.Lock()
	active.lastSeen = future
	active.mu.Unlock()

	swept := r.sweepOnce(future)

	assert.Equal(t, 1, swept)
	_, ok := r.Get(idle.ID)
	assert.False(t, ok)
	_, ok = r.Get(active.ID)
	assert.True(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestDo_UpdatesLastSeen(t *testing.T) {
	t.Parallel()

	r := NewRegistry(time.Nanosecond)
	sess := r.Create()

	time.Sleep(5 * time.Millisecond)
	sess.Do(func(*entity.Cart, *notify.Queue) {})

	assert.Less(t, sess.idleSince(time.Now()), 5*time.Millisecond)
}
