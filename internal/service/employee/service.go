package employee

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/netreply/attendance-backend-go/internal/config"
	"github.com/netreply/attendance-backend-go/internal/domain/employee"
)

type EmployeeService struct {
	employeeRepo employee.EmployeeRepository
	titleRepo    employee.TitleRepository
	companyCfg   config.CompanyConfig
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	titleRepo employee.TitleRepository,
	companyCfg config.CompanyConfig,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		titleRepo:    titleRepo,
		companyCfg:   companyCfg,
	}
}

// Create provisions a new employee. The holiday allowance defaults from
// company configuration and the remaining balance starts full.
func (s *EmployeeService) Create(ctx context.Context, req *employee.CreateEmployeeRequest) (*employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.employeeRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, employee.ErrEmailExists
	}

	if req.TitleID != nil {
		if _, err := s.titleRepo.GetByID(ctx, *req.TitleID); err != nil {
			return nil, err
		}
	}
	if req.ManagerID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *req.ManagerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return nil, employee.ErrManagerNotFound
			}
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	holidaysTotal := s.companyCfg.DefaultHolidays
	if req.HolidaysTotal != nil {
		holidaysTotal = *req.HolidaysTotal
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Email:         req.Email,
		PasswordHash:  string(hash),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Mobile:        req.Mobile,
		TitleID:       req.TitleID,
		ManagerID:     req.ManagerID,
		IsAdmin:       req.IsAdmin,
		HolidaysTotal: holidaysTotal,
		HolidaysLeft:  holidaysTotal,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	resp := employee.ToResponse(created)
	return &resp, nil
}

// Get returns an employee's profile. Only admins and the employee themselves
// may see it.
func (s *EmployeeService) Get(ctx context.Context, requesterID string, requesterIsAdmin bool, id string) (*employee.EmployeeResponse, error) {
	if !requesterIsAdmin && requesterID != id {
		return nil, employee.ErrNotProfileOwner
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := employee.ToResponse(emp)
	return &resp, nil
}

func (s *EmployeeService) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return toResponses(employees), nil
}

// Update applies partial changes. A manager assignment is checked against the
// reporting chain so no employee can end up managing themselves, directly or
// through intermediates.
func (s *EmployeeService) Update(ctx context.Context, id string, req *employee.UpdateEmployeeRequest) (*employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if req.TitleID != nil {
		if _, err := s.titleRepo.GetByID(ctx, *req.TitleID); err != nil {
			return nil, err
		}
	}
	if req.ManagerID != nil {
		if err := s.checkManagerChain(ctx, id, *req.ManagerID); err != nil {
			return nil, err
		}
	}

	if err := s.employeeRepo.Update(ctx, id, *req); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	updated, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := employee.ToResponse(updated)
	return &resp, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	return s.employeeRepo.Delete(ctx, id)
}

func (s *EmployeeService) ListDirectReports(ctx context.Context, managerID string) ([]employee.EmployeeResponse, error) {
	reports, err := s.employeeRepo.ListDirectReports(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list direct reports: %w", err)
	}
	return toResponses(reports), nil
}

// checkManagerChain walks upward from the proposed manager. Hitting the
// employee being updated means the assignment would close a cycle.
func (s *EmployeeService) checkManagerChain(ctx context.Context, employeeID, managerID string) error {
	if managerID == employeeID {
		return employee.ErrManagerCycle
	}

	current := managerID
	for i := 0; i < 100; i++ {
		manager, err := s.employeeRepo.GetByID(ctx, current)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.ErrManagerNotFound
			}
			return err
		}
		if manager.ManagerID == nil {
			return nil
		}
		if *manager.ManagerID == employeeID {
			return employee.ErrManagerCycle
		}
		current = *manager.ManagerID
	}
	return employee.ErrManagerCycle
}

func (s *EmployeeService) CreateTitle(ctx context.Context, req *employee.CreateTitleRequest) (*employee.TitleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.titleRepo.Create(ctx, employee.Title{Name: req.Name})
	if err != nil {
		return nil, fmt.Errorf("failed to create title: %w", err)
	}
	return &employee.TitleResponse{ID: created.ID, Name: created.Name}, nil
}

func (s *EmployeeService) ListTitles(ctx context.Context) ([]employee.TitleResponse, error) {
	titles, err := s.titleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}

	responses := make([]employee.TitleResponse, len(titles))
	for i, title := range titles {
		responses[i] = employee.TitleResponse{
			ID:            title.ID,
			Name:          title.Name,
			EmployeeCount: title.EmployeeCount,
		}
	}
	return responses, nil
}

func (s *EmployeeService) UpdateTitle(ctx context.Context, id string, req *employee.CreateTitleRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.titleRepo.Update(ctx, id, req.Name)
}

// DeleteTitle removes a title. Titles still held by employees are refused so
// no one silently loses their job title.
func (s *EmployeeService) DeleteTitle(ctx context.Context, id string) error {
	inUse, err := s.titleRepo.IsInUse(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check title usage: %w", err)
	}
	if inUse {
		return employee.ErrTitleInUse
	}
	return s.titleRepo.Delete(ctx, id)
}

func toResponses(employees []employee.Employee) []employee.EmployeeResponse {
	responses := make([]employee.EmployeeResponse, len(employees))
	for i, emp := range employees {
		responses[i] = employee.ToResponse(emp)
	}
	return responses
}
