package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create inserts a new attendance record. Returns ErrAlreadyRecorded
	// when a record for (employee, date) exists.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]Attendance, error)

	// List retrieves attendance records with report filters, newest date first.
	List(ctx context.Context, filter Filter) ([]Attendance, error)

	// CountByEmployeeID returns the number of records for an employee.
	CountByEmployeeID(ctx context.Context, employeeID string) (int64, error)
}
