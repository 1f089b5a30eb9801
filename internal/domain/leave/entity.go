package leave

import "time"

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending   LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved  LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected  LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled LeaveRequestStatus = "cancelled"
)

// LeaveRequest is an employee's ask for time off over an inclusive date
// range. It starts pending and moves to approved or rejected exactly once;
// the owner may cancel it while pending, or while approved before the leave
// starts. Cancellation is a retained status, so the audit trail survives.
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	StartDate   time.Time
	EndDate     time.Time
	Status      LeaveRequestStatus
	ManagerID   *string
	Reason      string
	CreatedAt   time.Time
	ApprovedAt  *time.Time
	CancelledAt *time.Time

	// Joined fields for responses
	EmployeeName *string
	ManagerName  *string
}

// Days returns the inclusive length of the leave range in calendar days.
func (lr LeaveRequest) Days() int {
	return DaysBetween(lr.StartDate, lr.EndDate)
}

// DaysBetween returns the inclusive number of calendar days from start to
// end. Both bounds are normalized to midnight so time-of-day never skews the
// count.
func DaysBetween(start, end time.Time) int {
	start = midnight(start)
	end = midnight(end)
	return int(end.Sub(start).Hours()/24) + 1
}

// Overlaps reports whether the two inclusive ranges share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !midnight(aStart).After(midnight(bEnd)) && !midnight(aEnd).Before(midnight(bStart))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
