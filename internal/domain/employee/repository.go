package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) error
	Delete(ctx context.Context, id string) error

	// ListDirectReports returns the employees whose manager is managerID.
	ListDirectReports(ctx context.Context, managerID string) ([]Employee, error)
	// IsManager reports whether anyone has employeeID as their manager.
	IsManager(ctx context.Context, employeeID string) (bool, error)

	// AdjustHolidaysLeft applies delta to holidays_left. A negative delta
	// fails when the remaining balance would drop below zero; a positive
	// delta is clamped at holidays_total.
	AdjustHolidaysLeft(ctx context.Context, id string, delta int) error
}

type TitleRepository interface {
	Create(ctx context.Context, title Title) (Title, error)
	GetByID(ctx context.Context, id string) (Title, error)
	List(ctx context.Context) ([]Title, error)
	Update(ctx context.Context, id string, name string) error
	Delete(ctx context.Context, id string) error

	// IsInUse reports whether any employee still holds the title.
	IsInUse(ctx context.Context, id string) (bool, error)
}
