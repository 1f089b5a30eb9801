package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("email already registered")
	ErrManagerNotFound  = errors.New("manager not found")
	ErrManagerCycle     = errors.New("manager assignment would create a cycle")
	ErrTitleNotFound    = errors.New("title not found")
	ErrTitleInUse       = errors.New("title is assigned to employees")
	ErrNotProfileOwner  = errors.New("not allowed to view this employee")

	// ErrInsufficientHolidays is returned by AdjustHolidaysLeft when a
	// debit would push holidays_left below zero.
	ErrInsufficientHolidays = errors.New("holiday balance would go negative")
)
