package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/netreply/attendance-backend-go/internal/domain/employee"
	"github.com/netreply/attendance-backend-go/internal/handler/http/response"
	employeeservice "github.com/netreply/attendance-backend-go/internal/service/employee"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMe(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListMyReports(w http.ResponseWriter, r *http.Request)

	CreateTitle(w http.ResponseWriter, r *http.Request)
	ListTitles(w http.ResponseWriter, r *http.Request)
	UpdateTitle(w http.ResponseWriter, r *http.Request)
	DeleteTitle(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService *employeeservice.EmployeeService
}

func NewEmployeeHandler(employeeService *employeeservice.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// Create implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	emp, err := h.employeeService.Create(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", emp)
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	emp, err := h.employeeService.Get(r.Context(), employeeIDFromContext(r), isAdminFromContext(r), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// GetMe returns the caller's own profile.
func (h *EmployeeHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	emp, err := h.employeeService.Get(r.Context(), employeeID, false, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// Update implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	// Non-admins may only edit their own profile, and not the
	// admin/allowance fields.
	if !isAdminFromContext(r) {
		if id != employeeIDFromContext(r) {
			response.Forbidden(w, "You may only update your own profile")
			return
		}
	}

	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if !isAdminFromContext(r) {
		req.IsAdmin = nil
		req.HolidaysTotal = nil
		req.ManagerID = nil
	}

	emp, err := h.employeeService.Update(r.Context(), id, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", emp)
}

// Delete implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// ListMyReports lists the caller's direct reports.
func (h *EmployeeHandlerImpl) ListMyReports(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	reports, err := h.employeeService.ListDirectReports(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reports)
}

// CreateTitle implements EmployeeHandler.
func (h *EmployeeHandlerImpl) CreateTitle(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateTitleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create title decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	title, err := h.employeeService.CreateTitle(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Title created successfully", title)
}

// ListTitles implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ListTitles(w http.ResponseWriter, r *http.Request) {
	titles, err := h.employeeService.ListTitles(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, titles)
}

// UpdateTitle implements EmployeeHandler.
func (h *EmployeeHandlerImpl) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Title ID is required", nil)
		return
	}

	var req employee.CreateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update title decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.employeeService.UpdateTitle(r.Context(), id, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Title updated successfully", nil)
}

// DeleteTitle implements EmployeeHandler.
func (h *EmployeeHandlerImpl) DeleteTitle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Title ID is required", nil)
		return
	}

	if err := h.employeeService.DeleteTitle(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Title deleted successfully", nil)
}
