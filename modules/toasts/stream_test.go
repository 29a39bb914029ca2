package toasts_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/toastkit/modules/toasts"
	"github.com/dmitrymomot/toastkit/pkg/broadcast"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// openStream connects to GET /stream and returns a channel of received lines.
func openStream(t *testing.T, q toasts.Queue) <-chan string {
	t.Helper()

	srv := httptest.NewServer(toasts.Router(q))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/stream", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)

	lines := make(chan string, 64)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()
	return lines
}

func waitFor(t *testing.T, lines <-chan string, substr string) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case line, ok := <-lines:
			require.True(t, ok, "stream ended before %q", substr)
			if strings.Contains(line, substr) {
				return
			}
		case <-timeout:
			t.Fatalf("no line containing %q", substr)
		}
	}
}

func TestStream(t *testing.T) {
	t.Parallel()

	q, clock := newQueue(t)
	lines := openStream(t, q)

	waitFor(t, lines, "#toasts")
	waitFor(t, lines, `"toastCount":0`)

	_, err := q.Show("Thought posted successfully", toast.CategorySuccess)
	require.NoError(t, err)
	waitFor(t, lines, `id="toast-1"`)
	waitFor(t, lines, `"toastCount":1`)

	clock.Advance(toast.DefaultDuration)
	waitFor(t, lines, `"toastCount":0`)
}

func TestStream_InitialState(t *testing.T) {
	t.Parallel()

	q, _ := newQueue(t)
	_, err := q.Show("Message sent", toast.CategorySuccess, toast.Persistent())
	require.NoError(t, err)

	lines := openStream(t, q)
	waitFor(t, lines, `Message sent`)
	waitFor(t, lines, `"toastCount":1`)
}

func TestStream_EndsWhenQueueCloses(t *testing.T) {
	t.Parallel()

	q, _ := newQueue(t)
	lines := openStream(t, q)
	waitFor(t, lines, `"toastCount":0`)

	require.NoError(t, q.Close())

	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-lines:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("stream still open after queue close")
		}
	}
}

func TestStream_RendersOnlyItsQueue(t *testing.T) {
	t.Parallel()

	shared := broadcast.NewMemoryBroadcaster[toast.Event](8, broadcast.WithReplayLatest())
	defer shared.Close()
	a := toast.New(toast.WithBroadcaster(shared))
	t.Cleanup(func() { _ = a.Close() })
	b := toast.New(toast.WithBroadcaster(shared))
	t.Cleanup(func() { _ = b.Close() })

	_, err := a.Show("liked on A", toast.CategoryFavourite, toast.Persistent())
	require.NoError(t, err)

	lines := openStream(t, a)
	waitFor(t, lines, "liked on A")

	_, err = b.Show("welcome on B", toast.CategorySuccess, toast.Persistent())
	require.NoError(t, err)
	_, err = a.Show("posted on A", toast.CategorySuccess, toast.Persistent())
	require.NoError(t, err)

	timeout := time.After(5 * time.Second)
	for {
		select {
		case line, ok := <-lines:
			require.True(t, ok, "stream ended")
			require.NotContains(t, line, "welcome on B", "stream of A rendered a toast of B")
			if strings.Contains(line, "posted on A") {
				return
			}
		case <-timeout:
			t.Fatal("event of A not rendered")
		}
	}
}
