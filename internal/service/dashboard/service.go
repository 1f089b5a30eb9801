package dashboard

import (
	"context"
	"fmt"

	"github.com/netreply/attendance-backend-go/internal/domain/attendance"
	"github.com/netreply/attendance-backend-go/internal/domain/dashboard"
	"github.com/netreply/attendance-backend-go/internal/domain/employee"
	"github.com/netreply/attendance-backend-go/internal/domain/leave"
	"github.com/netreply/attendance-backend-go/internal/domain/notification"
)

const maxRecentNotifications = 5

type DashboardService struct {
	employeeRepo     employee.EmployeeRepository
	attendanceRepo   attendance.AttendanceRepository
	leaveRepo        leave.LeaveRequestRepository
	notificationRepo notification.Repository
}

func NewDashboardService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	notificationRepo notification.Repository,
) *DashboardService {
	return &DashboardService{
		employeeRepo:     employeeRepo,
		attendanceRepo:   attendanceRepo,
		leaveRepo:        leaveRepo,
		notificationRepo: notificationRepo,
	}
}

// Summary assembles the employee's overview counters. The pending-approvals
// counter only applies to employees who manage somebody.
func (s *DashboardService) Summary(ctx context.Context, employeeID string) (*dashboard.Summary, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	attendanceCount, err := s.attendanceRepo.CountByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance: %w", err)
	}

	pending, err := s.leaveRepo.CountByEmployeeAndStatus(ctx, employeeID, leave.LeaveRequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending leave: %w", err)
	}
	approved, err := s.leaveRepo.CountByEmployeeAndStatus(ctx, employeeID, leave.LeaveRequestStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to count approved leave: %w", err)
	}

	var pendingApprovals int64
	isManager, err := s.employeeRepo.IsManager(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check manager status: %w", err)
	}
	if isManager {
		pendingApprovals, err = s.leaveRepo.CountPendingForManager(ctx, employeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to count pending approvals: %w", err)
		}
	}

	unread, err := s.notificationRepo.GetByRecipientID(ctx, employeeID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list unread notifications: %w", err)
	}
	if len(unread) > maxRecentNotifications {
		unread = unread[:maxRecentNotifications]
	}
	unreadResponses := make([]notification.NotificationResponse, len(unread))
	for i, n := range unread {
		unreadResponses[i] = notification.ToResponse(n)
	}

	return &dashboard.Summary{
		AttendanceCount:     attendanceCount,
		LeavePending:        pending,
		LeaveApproved:       approved,
		PendingApprovals:    pendingApprovals,
		HolidaysTotal:       emp.HolidaysTotal,
		HolidaysLeft:        emp.HolidaysLeft,
		UnreadNotifications: unreadResponses,
	}, nil
}
