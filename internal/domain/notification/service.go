package notification

import "context"

// Service is the append-only notification sink. Notify must not fail the
// calling workflow: persistence errors are returned for logging but the sink
// accepts every message.
type Service interface {
	Notify(ctx context.Context, recipientID, message string, relatedTo *string) error
	List(ctx context.Context, recipientID string, unreadOnly bool) (*NotificationListResponse, error)
	MarkRead(ctx context.Context, id string, actorID string) error
	MarkAllRead(ctx context.Context, actorID string) error
	Subscribe(ctx context.Context, recipientID string) (<-chan SSEEvent, func())
}
