package toasts_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/toastkit/modules/toasts"
	"github.com/dmitrymomot/toastkit/pkg/broadcast"
	"github.com/dmitrymomot/toastkit/pkg/catalog"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

func TestCreate_Broadcast(t *testing.T) {
	t.Parallel()

	bus := broadcast.NewMemoryBroadcaster[toast.Announcement](8)
	defer bus.Close()

	a, _ := newQueue(t)
	b, _ := newQueue(t)
	relayA := toast.NewRelay(a, bus)
	relayA.Start(context.Background())
	t.Cleanup(func() { _ = relayA.Close() })
	relayB := toast.NewRelay(b, bus)
	relayB.Start(context.Background())
	t.Cleanup(func() { _ = relayB.Close() })

	_, err := a.Show("only on A", toast.CategorySuccess, toast.Persistent())
	require.NoError(t, err)

	h := toasts.Router(a, toasts.WithRelay(relayA), toasts.WithCatalog(catalog.Default()))

	rec, env := do(t, h, http.MethodPost, "/", `{"message":"Deploy finished","category":"success","persistent":true,"broadcast":true}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"id":0,"announced":true}`, string(env.Data))

	rec, _ = do(t, h, http.MethodPost, "/", `{"key":"profile.updated","broadcast":true}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	require.Eventually(t, func() bool { return a.Len() == 3 && b.Len() == 2 }, time.Second, 5*time.Millisecond)

	onB := b.Notifications()
	assert.Equal(t, 1, onB[0].ID, "ids are allocated by each queue")
	assert.Equal(t, "Deploy finished", onB[0].Message)
	assert.True(t, onB[0].Persistent)
	assert.Equal(t, "Profile updated successfully", onB[1].Message)

	rec, env = do(t, h, http.MethodPost, "/", `{"message":" ","category":"success","broadcast":true}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)

	rec, env = do(t, h, http.MethodPost, "/", `{"key":"auth.welcome_back","broadcast":true}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid_args", env.Error.Code)
}

func TestCreate_BroadcastWithoutRelay(t *testing.T) {
	t.Parallel()

	q, _ := newQueue(t)
	rec, env := do(t, toasts.Router(q), http.MethodPost, "/", `{"message":"hi","category":"success","broadcast":true}`)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	require.NotNil(t, env.Error)
	assert.Zero(t, q.Len())
}
