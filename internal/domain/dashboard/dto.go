package dashboard

import "github.com/netreply/attendance-backend-go/internal/domain/notification"

// Summary is the per-employee dashboard overview.
type Summary struct {
	AttendanceCount     int64                               `json:"attendance_count"`
	LeavePending        int64                               `json:"leave_pending"`
	LeaveApproved       int64                               `json:"leave_approved"`
	PendingApprovals    int64                               `json:"pending_approvals"`
	HolidaysTotal       int                                 `json:"holidays_total"`
	HolidaysLeft        int                                 `json:"holidays_left"`
	UnreadNotifications []notification.NotificationResponse `json:"unread_notifications"`
}
