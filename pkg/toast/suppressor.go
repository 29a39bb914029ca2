package toast

import "time"

// DefaultCooldown is the window during which an identical message is not shown again.
const DefaultCooldown = 3 * time.Second

// Suppressor remembers when each message was last shown and rejects
// repeats inside the cooldown window. Messages are compared by exact text.
//
// Suppressor is not safe for concurrent use; Queue serializes access.
type Suppressor struct {
	cooldown time.Duration
	ledger   map[string]time.Time
}

// NewSuppressor creates a Suppressor with the given cooldown.
// Non-positive values fall back to DefaultCooldown.
func NewSuppressor(cooldown time.Duration) *Suppressor {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Suppressor{
		cooldown: cooldown,
		ledger:   make(map[string]time.Time),
	}
}

// ShouldSuppress reports whether message was recorded less than one cooldown before now.
func (s *Suppressor) ShouldSuppress(message string, now time.Time) bool {
	last, ok := s.ledger[message]
	if !ok {
		return false
	}
	return now.Sub(last) < s.cooldown
}

// Record stores now as the last time message was shown and prunes
// entries that fell out of the cooldown window, so the ledger stays
// bounded by the number of distinct messages shown per window.
func (s *Suppressor) Record(message string, now time.Time) {
	s.ledger[message] = now

	threshold := now.Add(-s.cooldown)
	for msg, ts := range s.ledger {
		if ts.Before(threshold) {
			delete(s.ledger, msg)
		}
	}
}

// Len returns the number of ledger entries.
func (s *Suppressor) Len() int {
	return len(s.ledger)
}

// Cooldown returns the configured window.
func (s *Suppressor) Cooldown() time.Duration {
	return s.cooldown
}
