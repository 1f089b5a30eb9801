package notification

import (
	"context"
	"fmt"

	"github.com/netreply/attendance-backend-go/internal/domain/notification"
	"github.com/netreply/attendance-backend-go/internal/pkg/sse"
)

type service struct {
	repo notification.Repository
	hub  *sse.Hub
}

func NewNotificationService(repo notification.Repository, hub *sse.Hub) notification.Service {
	return &service{repo: repo, hub: hub}
}

// Notify appends a notification and pushes it to live subscribers.
func (s *service) Notify(ctx context.Context, recipientID, message string, relatedTo *string) error {
	n := &notification.Notification{
		RecipientID: recipientID,
		Message:     message,
		RelatedTo:   relatedTo,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.hub.Publish(recipientID, sse.Event{
		RecipientID: recipientID,
		Event:       "notification",
		Data:        notification.ToResponse(n),
	})

	return nil
}

func (s *service) List(ctx context.Context, recipientID string, unreadOnly bool) (*notification.NotificationListResponse, error) {
	notifications, err := s.repo.GetByRecipientID(ctx, recipientID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	unreadCount, err := s.repo.GetUnreadCount(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = notification.ToResponse(n)
	}

	return &notification.NotificationListResponse{
		Notifications: responses,
		UnreadCount:   unreadCount,
	}, nil
}

// MarkRead flips is_read for a notification owned by actorID. Marking an
// already-read notification again is a no-op success.
func (s *service) MarkRead(ctx context.Context, id string, actorID string) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if n.RecipientID != actorID {
		return notification.ErrNotRecipient
	}

	return s.repo.MarkAsRead(ctx, id)
}

func (s *service) MarkAllRead(ctx context.Context, actorID string) error {
	return s.repo.MarkAllAsRead(ctx, actorID)
}

// Subscribe opens a live event stream for a recipient.
func (s *service) Subscribe(ctx context.Context, recipientID string) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(recipientID)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if resp, ok := event.Data.(notification.NotificationResponse); ok {
					out <- notification.SSEEvent{
						Event: event.Event,
						Data:  resp,
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}
