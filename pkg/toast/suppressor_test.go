package toast_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

func TestSuppressor(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("unknown message is allowed", func(t *testing.T) {
		t.Parallel()
		s := toast.NewSuppressor(3 * time.Second)
		assert.False(t, s.ShouldSuppress("hello", t0))
	})

	t.Run("repeat inside cooldown is suppressed", func(t *testing.T) {
		t.Parallel()
		s := toast.NewSuppressor(3 * time.Second)
		s.Record("hello", t0)
		assert.True(t, s.ShouldSuppress("hello", t0))
		assert.True(t, s.ShouldSuppress("hello", t0.Add(2999*time.Millisecond)))
	})

	t.Run("repeat after cooldown is allowed", func(t *testing.T) {
		t.Parallel()
		s := toast.NewSuppressor(3 * time.Second)
		s.Record("hello", t0)
		assert.False(t, s.ShouldSuppress("hello", t0.Add(3*time.Second)))
	})

	t.Run("exact text match only", func(t *testing.T) {
		t.Parallel()
		s := toast.NewSuppressor(3 * time.Second)
		s.Record("hello", t0)
		assert.False(t, s.ShouldSuppress("Hello", t0))
		assert.False(t, s.ShouldSuppress("hello ", t0))
	})

	t.Run("record prunes stale entries", func(t *testing.T) {
		t.Parallel()
		s := toast.NewSuppressor(3 * time.Second)
		for i := range 10 {
			s.Record(fmt.Sprintf("message %d", i), t0)
		}
		assert.Equal(t, 10, s.Len())

		s.Record("fresh", t0.Add(5*time.Second))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("entries inside the window survive pruning", func(t *testing.T) {
		t.Parallel()
		s := toast.NewSuppressor(3 * time.Second)
		s.Record("a", t0)
		s.Record("b", t0.Add(2*time.Second))
		assert.Equal(t, 2, s.Len())
		assert.True(t, s.ShouldSuppress("a", t0.Add(2*time.Second)))
	})

	t.Run("non-positive cooldown uses default", func(t *testing.T) {
		t.Parallel()
		s := toast.NewSuppressor(0)
		assert.Equal(t, toast.DefaultCooldown, s.Cooldown())
	})
}
