package toast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/toastkit/pkg/broadcast"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

func newRelay(t *testing.T, q *toast.Queue, bus broadcast.Broadcaster[toast.Announcement]) *toast.Relay {
	t.Helper()
	r := toast.NewRelay(q, bus)
	r.Start(context.Background())
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func messages(q *toast.Queue) map[int]string {
	out := make(map[int]string)
	for _, n := range q.Notifications() {
		out[n.ID] = n.Message
	}
	return out
}

func TestRelay_Announce(t *testing.T) {
	t.Parallel()

	bus := broadcast.NewMemoryBroadcaster[toast.Announcement](8)
	defer bus.Close()
	a, _ := newTestQueue(t)
	b, _ := newTestQueue(t)
	relayA := newRelay(t, a, bus)
	newRelay(t, b, bus)

	mustShow(t, a, "local to A")

	err := relayA.Announce(context.Background(), "Maintenance at 5pm", toast.CategoryWarning, toast.Persistent())
	require.NoError(t, err)

	require.Eventually(t, func() bool { return a.Len() == 2 && b.Len() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, map[int]string{1: "local to A", 2: "Maintenance at 5pm"}, messages(a))
	assert.Equal(t, map[int]string{1: "Maintenance at 5pm"}, messages(b), "each queue allocates its own id")

	got := b.Notifications()[0]
	assert.Equal(t, toast.CategoryWarning, got.Category)
	assert.True(t, got.Persistent)
}

func TestRelay_AnnounceValidates(t *testing.T) {
	t.Parallel()

	bus := broadcast.NewMemoryBroadcaster[toast.Announcement](8)
	defer bus.Close()
	q, _ := newTestQueue(t)
	r := toast.NewRelay(q, bus)

	sub := bus.Subscribe(context.Background())
	defer sub.Close()

	assert.ErrorIs(t, r.Announce(context.Background(), " ", toast.CategorySuccess), toast.ErrEmptyMessage)
	assert.ErrorIs(t, r.Announce(context.Background(), "hi", "info"), toast.ErrUnknownCategory)

	select {
	case <-sub.Receive(context.Background()):
		t.Fatal("invalid announcement was published")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRelay_StopsWithBus(t *testing.T) {
	t.Parallel()

	bus := broadcast.NewMemoryBroadcaster[toast.Announcement](8)
	q, _ := newTestQueue(t)
	r := toast.NewRelay(q, bus)
	r.Start(context.Background())
	r.Start(context.Background())

	require.NoError(t, bus.Close())

	done := make(chan struct{})
	go func() {
		_ = r.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relay did not stop after the bus closed")
	}
	assert.NoError(t, r.Close())
}

func TestRelay_ClosedQueue(t *testing.T) {
	t.Parallel()

	bus := broadcast.NewMemoryBroadcaster[toast.Announcement](8)
	defer bus.Close()
	q, _ := newTestQueue(t)
	r := newRelay(t, q, bus)
	require.NoError(t, q.Close())

	require.NoError(t, r.Announce(context.Background(), "late", toast.CategorySuccess))
	require.NoError(t, r.Close())
	assert.Zero(t, q.Len())
}
