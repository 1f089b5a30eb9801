package attendance

import (
	"time"

	"github.com/netreply/attendance-backend-go/internal/pkg/validator"
)

type RecordAttendanceRequest struct {
	Date     string `json:"date"`
	Location string `json:"location"`
}

func (r *RecordAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Location) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location is required",
		})
	}
	if len(r.Location) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Filter holds the attendance report filters. Nil axes are unfiltered;
// malformed date parameters are dropped by the report service, not rejected.
type Filter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	EmployeeID *string
	Location   *string
}

type AttendanceResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName *string   `json:"employee_name,omitempty"`
	Date         string    `json:"date"`
	Location     string    `json:"location"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Date:         a.Date.Format("2006-01-02"),
		Location:     a.Location,
		CreatedAt:    a.CreatedAt,
	}
}
