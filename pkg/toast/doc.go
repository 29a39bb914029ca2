// Package toast implements an in-process queue of transient notifications
// ("toasts") for a presentation layer to render.
//
// A Queue combines three parts:
//
//   - Allocate hands out the smallest positive id not currently visible, so
//     ids of dismissed notifications are reused.
//   - Suppressor drops a message whose exact text was shown within the
//     cooldown window (3s by default).
//   - Scheduler keeps one expiry countdown per non-persistent notification
//     (3s by default). Hovering a notification cancels its countdown;
//     leaving it restarts the full duration.
//
// # Usage
//
//	q := toast.New(toast.WithLogger(log))
//	defer q.Close()
//
//	id, err := q.Show("Thought posted successfully", toast.CategorySuccess)
//	if err != nil {
//	    // empty message or unknown category
//	}
//	if id == 0 {
//	    // suppressed as a duplicate
//	}
//
//	q.NotifyHover(id, true)  // pointer entered, countdown paused
//	q.NotifyHover(id, false) // pointer left, countdown restarted
//	q.Remove(id)             // close button
//
// # Observing changes
//
// Presentation layers read Notifications or Subscribe to receive an Event
// after each change. Events carry a copy of the visible set, and a new
// subscriber first receives the latest event. Each event is stamped with
// the Origin of its queue and Subscribe only delivers the queue's own
// events, so several queues may share one broadcaster. Events are
// published after the queue lock is released, in order, each under
// a publish timeout.
//
// # Relaying across processes
//
// A Relay shows announcements received on a shared bus, for example a
// Redis channel, on its queue. Every queue allocates its own id and
// applies its own suppression window:
//
//	relay := toast.NewRelay(q, bus)
//	relay.Start(ctx)
//	defer relay.Close()
//
//	err := relay.Announce(ctx, "Deploy finished", toast.CategorySuccess)
//
// # Races
//
// Removal always wins over a pending expiry. Every countdown handle is
// checked against the current one for its id when it fires, so a timer
// that fires after Remove, NotifyHover or Close does nothing.
package toast
