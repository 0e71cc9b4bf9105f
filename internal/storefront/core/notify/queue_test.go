package notify_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcamposr/storefront-gateway/internal/storefront/core/notify"
)

func TestPostAndDrain_KeepsPostingOrder(t *testing.T) {
	t.Parallel()

	q := notify.NewQueue(8)
	q.Post(notify.LevelInfo, "first")
	q.Post(notify.LevelAlert, "second")

	notices := q.Drain()
	require.Len(t, notices, 2)
	assert.Equal(t, "first", notices[0].Message)
	assert.Equal(t, notify.LevelInfo, notices[0].Level)
	assert.Equal(t, "second", notices[1].Message)
	assert.Equal(t, notify.LevelAlert, notices[1].Level)
}

func TestDrain_EmptiesQueue(t *testing.T) {
	t.Parallel()

	q := notify.NewQueue(8)
	q.Post(notify.LevelInfo, "hello")

	require.Len(t, q.Drain(), 1)
	assert.Empty(t, q.Drain())
	assert.Zero(t, q.Len())
}

func TestPost_DropsOldestWhenFull(t *testing.T) {
	t.Parallel()

	q := notify.NewQueue(3)
	for i := 0; i < 5; i++ {
		q.Post(notify.LevelInfo, fmt.Sprintf("notice %d", i))
	}

	notices := q.Drain()
	require.Len(t, notices, 3)
	assert.Equal(t, "notice 2", notices[0].Message)
	assert.Equal(t, "notice 4", notices[2].Message)
}

func TestNewQueue_DefaultCapacity(t *testing.T) {
	t.Parallel()

	q := notify.NewQueue(0)
	for i := 0; i < 40; i++ {
		q.Post(notify.LevelInfo, "n")
	}
	assert.Equal(t, 32, q.Len())
}
