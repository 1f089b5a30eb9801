package notification

import "time"

// Notification is an append-only inbox entry. Only is_read ever changes
// after creation.
type Notification struct {
	ID          string
	RecipientID string
	Message     string
	RelatedTo   *string
	IsRead      bool
	CreatedAt   time.Time
}
