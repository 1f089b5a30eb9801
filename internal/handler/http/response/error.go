package response

import (
	"errors"
	"net/http"

	"github.com/netreply/attendance-backend-go/internal/domain/attendance"
	"github.com/netreply/attendance-backend-go/internal/domain/auth"
	"github.com/netreply/attendance-backend-go/internal/domain/employee"
	"github.com/netreply/attendance-backend-go/internal/domain/leave"
	"github.com/netreply/attendance-backend-go/internal/domain/notification"
	"github.com/netreply/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrEmailNotRegistered):
		Forbidden(w, "Email is not registered as an employee")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrManagerNotFound):
		NotFound(w, "Manager not found")
	case errors.Is(err, employee.ErrManagerCycle):
		BadRequest(w, "Manager assignment would create a reporting cycle", nil)
	case errors.Is(err, employee.ErrTitleNotFound):
		NotFound(w, "Title not found")
	case errors.Is(err, employee.ErrTitleInUse):
		Conflict(w, "Title is still assigned to employees")
	case errors.Is(err, employee.ErrNotProfileOwner):
		Forbidden(w, "You may only view your own profile")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyRecorded):
		Conflict(w, "Attendance already recorded for this date")
	case errors.Is(err, attendance.ErrPastDate):
		BadRequest(w, "Attendance cannot be recorded for a past date", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, leave.ErrStartDateInPast):
		BadRequest(w, "Leave cannot start in the past", nil)
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient holiday balance", nil)
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "An overlapping leave request already exists")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotCancellable):
		Conflict(w, "Leave request can no longer be cancelled")
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Only the request owner may do this")
	case errors.Is(err, leave.ErrNotManagerOfEmployee):
		Forbidden(w, "Only the employee's manager may do this")
	case errors.Is(err, leave.ErrManagerOnly):
		Forbidden(w, "Manager access required")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrNotRecipient):
		Forbidden(w, "Only the recipient may do this")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
