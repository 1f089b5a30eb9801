package attendance

import "time"

// Attendance asserts that an employee was present at a location on a date.
// Absence is implicit by omission; records are never updated or deleted.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Location   string
	CreatedAt  time.Time

	// Joined field for responses
	EmployeeName *string
}
