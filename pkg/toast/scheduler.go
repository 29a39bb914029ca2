package toast

import "time"

// DefaultDuration is how long a non-persistent notification stays visible.
const DefaultDuration = 3 * time.Second

// Countdown is the handle of one scheduled expiry. Handles are compared
// by identity: only the handle currently registered for an id may expire it.
type Countdown struct {
	timer Timer
}

// ExpireFunc receives a fired countdown. Implementations should call
// Scheduler.Claim to find out whether the countdown is still current.
type ExpireFunc func(id int, c *Countdown)

// Scheduler keeps at most one countdown per notification id.
//
// Scheduler is not safe for concurrent use; the owner must serialize
// Start, Cancel, Claim and Stop with the expiry callback.
type Scheduler struct {
	clock    Clock
	duration time.Duration
	expire   ExpireFunc
	active   map[int]*Countdown
}

// NewScheduler creates a Scheduler that calls expire when a countdown fires.
// Non-positive durations fall back to DefaultDuration.
func NewScheduler(clock Clock, duration time.Duration, expire ExpireFunc) *Scheduler {
	if clock == nil {
		clock = SystemClock()
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Scheduler{
		clock:    clock,
		duration: duration,
		expire:   expire,
		active:   make(map[int]*Countdown),
	}
}

// Start begins a full-length countdown for id, replacing any running one.
func (s *Scheduler) Start(id int) {
	s.Cancel(id)

	c := &Countdown{}
	c.timer = s.clock.AfterFunc(s.duration, func() {
		if s.expire != nil {
			s.expire(id, c)
		}
	})
	s.active[id] = c
}

// Cancel stops the countdown for id. Unknown ids are ignored.
func (s *Scheduler) Cancel(id int) {
	c, ok := s.active[id]
	if !ok {
		return
	}
	c.timer.Stop()
	delete(s.active, id)
}

// Claim unregisters c if it is still the current countdown for id.
// A false result means the countdown was cancelled or replaced after it
// was armed, and the expiry must be dropped.
func (s *Scheduler) Claim(id int, c *Countdown) bool {
	if cur, ok := s.active[id]; !ok || cur != c {
		return false
	}
	delete(s.active, id)
	return true
}

// Active reports whether id has a running countdown.
func (s *Scheduler) Active(id int) bool {
	_, ok := s.active[id]
	return ok
}

// Len returns the number of running countdowns.
func (s *Scheduler) Len() int {
	return len(s.active)
}

// Duration returns the countdown length.
func (s *Scheduler) Duration() time.Duration {
	return s.duration
}

// Stop cancels every countdown.
func (s *Scheduler) Stop() {
	for id, c := range s.active {
		c.timer.Stop()
		delete(s.active, id)
	}
}
