package notification

import "time"

type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	RelatedTo *string   `json:"related_to,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

// SSEEvent is a live notification pushed to a subscribed recipient.
type SSEEvent struct {
	Event string               `json:"event"`
	Data  NotificationResponse `json:"data"`
}

func ToResponse(n *Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		RelatedTo: n.RelatedTo,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
