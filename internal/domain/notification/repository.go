package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)

	// GetByRecipientID lists notifications reverse-chronologically.
	GetByRecipientID(ctx context.Context, recipientID string, unreadOnly bool) ([]*Notification, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int64, error)

	// MarkAsRead flips is_read; already-read rows are left untouched.
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
}
