package employee

import "time"

// Employee is both the directory record and the login identity, so it carries
// the password hash alongside the HR fields.
type Employee struct {
	ID            string
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	Mobile        *string
	TitleID       *string
	ManagerID     *string
	IsAdmin       bool
	HolidaysTotal int
	HolidaysLeft  int
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields for responses
	TitleName   *string
	ManagerName *string
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Title is a job title employees optionally reference.
type Title struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Number of employees holding this title, populated on listing.
	EmployeeCount int64
}
