package toast

// EventKind names a change of the visible set.
type EventKind string

const (
	EventShown   EventKind = "shown"
	EventRemoved EventKind = "removed"
	EventExpired EventKind = "expired"
)

// Event is published after every change of the visible set.
// Visible is a copy of the set after the change, in display order.
// Origin identifies the publishing queue.
type Event struct {
	Origin  string         `json:"origin"`
	Kind    EventKind      `json:"kind"`
	ID      int            `json:"id"`
	Visible []Notification `json:"visible"`
}
