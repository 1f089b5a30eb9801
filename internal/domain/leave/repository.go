package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// GetByIDForUpdate row-locks the request for the duration of the
	// surrounding transaction. Approve/reject/cancel re-read through this
	// so two concurrent decisions cannot both pass the status guard.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)

	GetByEmployeeID(ctx context.Context, employeeID string) ([]LeaveRequest, error)

	// ListPendingForManager returns pending requests owned by the direct
	// reports of managerID, newest first.
	ListPendingForManager(ctx context.Context, managerID string) ([]LeaveRequest, error)

	// HasOverlapping reports whether a pending or approved request of the
	// employee shares at least one day with [startDate, endDate].
	HasOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)

	// SetDecision moves a request out of pending: status, deciding manager
	// and approved_at in one statement.
	SetDecision(ctx context.Context, id string, status LeaveRequestStatus, managerID string, decidedAt time.Time) error

	// SetCancelled marks a request cancelled with its timestamp.
	SetCancelled(ctx context.Context, id string, cancelledAt time.Time) error

	// List retrieves requests with report filters, newest first.
	List(ctx context.Context, filter Filter) ([]LeaveRequest, error)

	CountByEmployeeAndStatus(ctx context.Context, employeeID string, status LeaveRequestStatus) (int64, error)
	CountPendingForManager(ctx context.Context, managerID string) (int64, error)
}
