package toast

import (
	"time"
)

// Category is a presentation hint for a notification.
// It is opaque to the queue logic apart from validation.
type Category string

const (
	CategorySuccess   Category = "success"
	CategoryFailure   Category = "failure"
	CategoryGoodbye   Category = "goodbye"
	CategoryRemoved   Category = "removed"
	CategoryFavourite Category = "favourite"
	CategoryDelete    Category = "delete"
	CategoryUploaded  Category = "uploaded"
	CategoryWarning   Category = "warning"
)

// Categories returns all known categories in display order.
func Categories() []Category {
	return []Category{
		CategorySuccess,
		CategoryFailure,
		CategoryGoodbye,
		CategoryRemoved,
		CategoryFavourite,
		CategoryDelete,
		CategoryUploaded,
		CategoryWarning,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySuccess, CategoryFailure, CategoryGoodbye, CategoryRemoved,
		CategoryFavourite, CategoryDelete, CategoryUploaded, CategoryWarning:
		return true
	}
	return false
}

// Notification is a single visible toast.
type Notification struct {
	ID         int       `json:"id"`
	Message    string    `json:"message"`
	Category   Category  `json:"category"`
	Persistent bool      `json:"persistent"`
	CreatedAt  time.Time `json:"-"` // bookkeeping only, never rendered
}
