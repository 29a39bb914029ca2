package toast_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/toastkit/pkg/toast"
	"github.com/dmitrymomot/toastkit/pkg/toast/toasttest"
)

type expiry struct {
	id int
	c  *toast.Countdown
}

func newTestScheduler(t *testing.T) (*toast.Scheduler, *toasttest.Clock, *[]expiry) {
	t.Helper()
	clock := toasttest.NewClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	fired := &[]expiry{}
	var s *toast.Scheduler
	s = toast.NewScheduler(clock, 3*time.Second, func(id int, c *toast.Countdown) {
		if s.Claim(id, c) {
			*fired = append(*fired, expiry{id: id, c: c})
		}
	})
	return s, clock, fired
}

func TestScheduler_Start(t *testing.T) {
	t.Parallel()

	s, clock, fired := newTestScheduler(t)
	s.Start(1)
	require.True(t, s.Active(1))

	clock.Advance(2999 * time.Millisecond)
	assert.Empty(t, *fired)

	clock.Advance(time.Millisecond)
	require.Len(t, *fired, 1)
	assert.Equal(t, 1, (*fired)[0].id)
	assert.False(t, s.Active(1))
}

func TestScheduler_StartReplacesCountdown(t *testing.T) {
	t.Parallel()

	s, clock, fired := newTestScheduler(t)
	s.Start(1)
	clock.Advance(2 * time.Second)
	s.Start(1)

	assert.Equal(t, 1, clock.Pending())
	assert.Equal(t, 1, s.Len())

	clock.Advance(2 * time.Second)
	assert.Empty(t, *fired)

	clock.Advance(time.Second)
	assert.Len(t, *fired, 1)
}

func TestScheduler_Cancel(t *testing.T) {
	t.Parallel()

	s, clock, fired := newTestScheduler(t)
	s.Start(1)
	s.Cancel(1)
	s.Cancel(1)
	s.Cancel(42)

	clock.Advance(10 * time.Second)
	assert.Empty(t, *fired)
	assert.Zero(t, clock.Pending())
}

func TestScheduler_ClaimRejectsStaleHandle(t *testing.T) {
	t.Parallel()

	var handles []*toast.Countdown
	clock := toasttest.NewClock(time.Now())
	s := toast.NewScheduler(clock, time.Second, func(id int, c *toast.Countdown) {
		handles = append(handles, c)
	})

	s.Start(7)
	clock.Advance(time.Second)
	require.Len(t, handles, 1)
	stale := handles[0]

	s.Start(7)
	assert.False(t, s.Claim(7, stale))
	assert.True(t, s.Active(7))
	assert.False(t, s.Claim(8, stale))
}

func TestScheduler_Stop(t *testing.T) {
	t.Parallel()

	s, clock, fired := newTestScheduler(t)
	for id := 1; id <= 5; id++ {
		s.Start(id)
	}
	require.Equal(t, 5, s.Len())

	s.Stop()
	assert.Zero(t, s.Len())
	assert.Zero(t, clock.Pending())

	clock.Advance(time.Minute)
	assert.Empty(t, *fired)
}

func TestScheduler_Defaults(t *testing.T) {
	t.Parallel()

	s := toast.NewScheduler(nil, 0, nil)
	assert.Equal(t, toast.DefaultDuration, s.Duration())
	s.Start(1)
	s.Stop()
}
