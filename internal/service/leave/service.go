package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/netreply/attendance-backend-go/internal/domain/employee"
	"github.com/netreply/attendance-backend-go/internal/domain/leave"
	"github.com/netreply/attendance-backend-go/internal/domain/notification"
	"github.com/netreply/attendance-backend-go/internal/pkg/database"
	"github.com/netreply/attendance-backend-go/internal/pkg/validator"
)

type LeaveService struct {
	leaveRepo    leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository
	notifier     notification.Service
	transactor   database.Transactor
}

func NewLeaveService(
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	notifier notification.Service,
	transactor database.Transactor,
) *LeaveService {
	return &LeaveService{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		notifier:     notifier,
		transactor:   transactor,
	}
}

// Create validates and stores a new pending request for employeeID, then
// notifies the employee's manager if one is assigned.
func (s *LeaveService) Create(ctx context.Context, employeeID string, req *leave.CreateLeaveRequestRequest) (*leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)

	if endDate.Before(startDate) {
		return nil, leave.ErrInvalidDateRange
	}
	if startDate.Before(today()) {
		return nil, leave.ErrStartDateInPast
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	days := leave.DaysBetween(startDate, endDate)
	if days > emp.HolidaysLeft {
		return nil, leave.ErrInsufficientBalance
	}

	overlaps, err := s.leaveRepo.HasOverlapping(ctx, employeeID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if overlaps {
		return nil, leave.ErrOverlappingRequest
	}

	created, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID: employeeID,
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     leave.LeaveRequestStatusPending,
		Reason:     req.Reason,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}

	if emp.ManagerID != nil {
		message := fmt.Sprintf("%s has requested leave from %s to %s.",
			emp.FullName(), req.StartDate, req.EndDate)
		if err := s.notifier.Notify(ctx, *emp.ManagerID, message, &created.ID); err != nil {
			slog.Error("failed to notify manager of leave request",
				slog.String("request_id", created.ID),
				slog.Any("error", err))
		}
	}

	resp := leave.ToResponse(created)
	return &resp, nil
}

// Approve moves a pending request to approved and debits the employee's
// balance by the request's day count, all in one transaction. Only the
// employee's current manager may approve.
func (s *LeaveService) Approve(ctx context.Context, requestID, managerID string) error {
	return s.decide(ctx, requestID, managerID, leave.LeaveRequestStatusApproved)
}

// Reject moves a pending request to rejected. The balance is untouched.
func (s *LeaveService) Reject(ctx context.Context, requestID, managerID string) error {
	return s.decide(ctx, requestID, managerID, leave.LeaveRequestStatusRejected)
}

func (s *LeaveService) decide(ctx context.Context, requestID, managerID string, status leave.LeaveRequestStatus) error {
	var request leave.LeaveRequest

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := s.leaveRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}

		emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		if emp.ManagerID == nil || *emp.ManagerID != managerID {
			return leave.ErrNotManagerOfEmployee
		}

		if req.Status != leave.LeaveRequestStatusPending {
			return leave.ErrAlreadyProcessed
		}

		if status == leave.LeaveRequestStatusApproved {
			if err := s.employeeRepo.AdjustHolidaysLeft(ctx, req.EmployeeID, -req.Days()); err != nil {
				if errors.Is(err, employee.ErrInsufficientHolidays) {
					return leave.ErrInsufficientBalance
				}
				return fmt.Errorf("failed to debit holiday balance: %w", err)
			}
		}

		if err := s.leaveRepo.SetDecision(ctx, requestID, status, managerID, time.Now()); err != nil {
			return fmt.Errorf("failed to record decision: %w", err)
		}

		request = req
		return nil
	})
	if err != nil {
		return err
	}

	verb := "approved"
	if status == leave.LeaveRequestStatusRejected {
		verb = "rejected"
	}
	message := fmt.Sprintf("Your leave request from %s to %s has been %s.",
		request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"), verb)
	if err := s.notifier.Notify(ctx, request.EmployeeID, message, &request.ID); err != nil {
		slog.Error("failed to notify employee of leave decision",
			slog.String("request_id", request.ID),
			slog.Any("error", err))
	}

	return nil
}

// Cancel retires one of the caller's own requests. A pending request can
// always be cancelled; an approved one only before its start date, in which
// case the debited days are credited back. Rejected and cancelled requests
// stay as they are.
func (s *LeaveService) Cancel(ctx context.Context, requestID, actorID string) error {
	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := s.leaveRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}

		if req.EmployeeID != actorID {
			return leave.ErrNotRequestOwner
		}

		switch req.Status {
		case leave.LeaveRequestStatusPending:
		case leave.LeaveRequestStatusApproved:
			if !req.StartDate.After(today()) {
				return leave.ErrNotCancellable
			}
			if err := s.employeeRepo.AdjustHolidaysLeft(ctx, req.EmployeeID, req.Days()); err != nil {
				return fmt.Errorf("failed to restore holiday balance: %w", err)
			}
		default:
			return leave.ErrNotCancellable
		}

		if err := s.leaveRepo.SetCancelled(ctx, requestID, time.Now()); err != nil {
			return fmt.Errorf("failed to cancel leave request: %w", err)
		}
		return nil
	})
}

// Get returns a single request. Non-admins may only see their own requests
// and those of their direct reports.
func (s *LeaveService) Get(ctx context.Context, requestID, actorID string, isAdmin bool) (*leave.LeaveRequestResponse, error) {
	req, err := s.leaveRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && req.EmployeeID != actorID {
		emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to get employee: %w", err)
		}
		if emp.ManagerID == nil || *emp.ManagerID != actorID {
			return nil, leave.ErrNotManagerOfEmployee
		}
	}

	resp := leave.ToResponse(req)
	return &resp, nil
}

// MyRequests lists the caller's own requests, newest first.
func (s *LeaveService) MyRequests(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.leaveRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toResponses(requests), nil
}

// PendingApprovals lists pending requests of the caller's direct reports.
// Callers who manage nobody get ErrManagerOnly.
func (s *LeaveService) PendingApprovals(ctx context.Context, managerID string) ([]leave.LeaveRequestResponse, error) {
	isManager, err := s.employeeRepo.IsManager(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check manager status: %w", err)
	}
	if !isManager {
		return nil, leave.ErrManagerOnly
	}

	requests, err := s.leaveRepo.ListPendingForManager(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending approvals: %w", err)
	}
	return toResponses(requests), nil
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, len(requests))
	for i, req := range requests {
		responses[i] = leave.ToResponse(req)
	}
	return responses
}

// today returns the current local date in the same representation the
// request dates parse to, so date-only comparisons line up.
func today() time.Time {
	t, _ := time.Parse("2006-01-02", time.Now().Format("2006-01-02"))
	return t
}
