package leave

import (
	"time"

	"github.com/netreply/attendance-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Filter holds the leave report filters. The date axes select requests whose
// range touches the filter bounds, matching the report behavior.
type Filter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	EmployeeID *string
	Status     *LeaveRequestStatus
}

type LeaveRequestResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeName *string    `json:"employee_name,omitempty"`
	StartDate    string     `json:"start_date"`
	EndDate      string     `json:"end_date"`
	Days         int        `json:"days"`
	Status       string     `json:"status"`
	ManagerID    *string    `json:"manager_id,omitempty"`
	ManagerName  *string    `json:"manager_name,omitempty"`
	Reason       string     `json:"reason"`
	CreatedAt    time.Time  `json:"created_at"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
}

func ToResponse(lr LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           lr.ID,
		EmployeeID:   lr.EmployeeID,
		EmployeeName: lr.EmployeeName,
		StartDate:    lr.StartDate.Format("2006-01-02"),
		EndDate:      lr.EndDate.Format("2006-01-02"),
		Days:         lr.Days(),
		Status:       string(lr.Status),
		ManagerID:    lr.ManagerID,
		ManagerName:  lr.ManagerName,
		Reason:       lr.Reason,
		CreatedAt:    lr.CreatedAt,
		ApprovedAt:   lr.ApprovedAt,
		CancelledAt:  lr.CancelledAt,
	}
}
