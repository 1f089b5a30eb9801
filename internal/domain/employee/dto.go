package employee

import (
	"time"

	"github.com/netreply/attendance-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Mobile        *string `json:"mobile,omitempty"`
	TitleID       *string `json:"title_id,omitempty"`
	ManagerID     *string `json:"manager_id,omitempty"`
	IsAdmin       bool    `json:"is_admin"`
	HolidaysTotal *int    `json:"holidays_total,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is not a valid address",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	}

	if r.HolidaysTotal != nil && *r.HolidaysTotal < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "holidays_total",
			Message: "holidays_total must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	FirstName     *string `json:"first_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	Mobile        *string `json:"mobile,omitempty"`
	TitleID       *string `json:"title_id,omitempty"`
	ManagerID     *string `json:"manager_id,omitempty"`
	IsAdmin       *bool   `json:"is_admin,omitempty"`
	HolidaysTotal *int    `json:"holidays_total,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name must not be empty",
		})
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name must not be empty",
		})
	}
	if r.HolidaysTotal != nil && *r.HolidaysTotal < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "holidays_total",
			Message: "holidays_total must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateTitleRequest struct {
	Name string `json:"name"`
}

func (r *CreateTitleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	FullName      string    `json:"full_name"`
	Mobile        *string   `json:"mobile,omitempty"`
	TitleID       *string   `json:"title_id,omitempty"`
	TitleName     *string   `json:"title_name,omitempty"`
	ManagerID     *string   `json:"manager_id,omitempty"`
	ManagerName   *string   `json:"manager_name,omitempty"`
	IsAdmin       bool      `json:"is_admin"`
	HolidaysTotal int       `json:"holidays_total"`
	HolidaysLeft  int       `json:"holidays_left"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID,
		Email:         e.Email,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		FullName:      e.FullName(),
		Mobile:        e.Mobile,
		TitleID:       e.TitleID,
		TitleName:     e.TitleName,
		ManagerID:     e.ManagerID,
		ManagerName:   e.ManagerName,
		IsAdmin:       e.IsAdmin,
		HolidaysTotal: e.HolidaysTotal,
		HolidaysLeft:  e.HolidaysLeft,
		CreatedAt:     e.CreatedAt,
	}
}

type TitleResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	EmployeeCount int64  `json:"employee_count"`
}
