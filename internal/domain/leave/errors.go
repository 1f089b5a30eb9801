package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInvalidDateRange     = errors.New("end date cannot be before start date")
	ErrStartDateInPast      = errors.New("start date cannot be in the past")
	ErrInsufficientBalance  = errors.New("not enough holidays left")
	ErrOverlappingRequest   = errors.New("leave request overlaps with an existing request")
	ErrAlreadyProcessed     = errors.New("leave request has already been processed")
	ErrNotCancellable       = errors.New("leave request can no longer be cancelled")
	ErrNotRequestOwner      = errors.New("only the requesting employee may cancel this request")
	ErrNotManagerOfEmployee = errors.New("only the employee's manager may decide this request")
	ErrManagerOnly          = errors.New("manager access required")
)
