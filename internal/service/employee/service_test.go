package employee

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netreply/attendance-backend-go/internal/config"
	"github.com/netreply/attendance-backend-go/internal/domain/employee"
)

type memoryEmployeeRepo struct {
	employees map[string]employee.Employee
	emails    map[string]bool
}

func newMemoryEmployeeRepo() *memoryEmployeeRepo {
	return &memoryEmployeeRepo{
		employees: make(map[string]employee.Employee),
		emails:    make(map[string]bool),
	}
}

func (r *memoryEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	if emp.ID == "" {
		emp.ID = uuid.New().String()
	}
	r.employees[emp.ID] = emp
	r.emails[emp.Email] = true
	return emp, nil
}

func (r *memoryEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *memoryEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *memoryEmployeeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return r.emails[email], nil
}

func (r *memoryEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range r.employees {
		out = append(out, emp)
	}
	return out, nil
}

func (r *memoryEmployeeRepo) Update(_ context.Context, id string, req employee.UpdateEmployeeRequest) error {
	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	if req.FirstName != nil {
		emp.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		emp.LastName = *req.LastName
	}
	if req.ManagerID != nil {
		emp.ManagerID = req.ManagerID
	}
	if req.HolidaysTotal != nil {
		emp.HolidaysTotal = *req.HolidaysTotal
	}
	r.employees[id] = emp
	return nil
}

func (r *memoryEmployeeRepo) Delete(_ context.Context, id string) error {
	delete(r.employees, id)
	return nil
}

func (r *memoryEmployeeRepo) ListDirectReports(_ context.Context, managerID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range r.employees {
		if emp.ManagerID != nil && *emp.ManagerID == managerID {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (r *memoryEmployeeRepo) IsManager(_ context.Context, employeeID string) (bool, error) {
	reports, _ := r.ListDirectReports(context.Background(), employeeID)
	return len(reports) > 0, nil
}

func (r *memoryEmployeeRepo) AdjustHolidaysLeft(_ context.Context, id string, delta int) error {
	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.HolidaysLeft += delta
	r.employees[id] = emp
	return nil
}

type memoryTitleRepo struct {
	titles    map[string]employee.Title
	employees *memoryEmployeeRepo
}

func newMemoryTitleRepo(employees *memoryEmployeeRepo) *memoryTitleRepo {
	return &memoryTitleRepo{
		titles:    make(map[string]employee.Title),
		employees: employees,
	}
}

func (r *memoryTitleRepo) Create(_ context.Context, title employee.Title) (employee.Title, error) {
	title.ID = uuid.New().String()
	r.titles[title.ID] = title
	return title, nil
}

func (r *memoryTitleRepo) GetByID(_ context.Context, id string) (employee.Title, error) {
	title, ok := r.titles[id]
	if !ok {
		return employee.Title{}, employee.ErrTitleNotFound
	}
	return title, nil
}

func (r *memoryTitleRepo) List(_ context.Context) ([]employee.Title, error) {
	var out []employee.Title
	for _, title := range r.titles {
		out = append(out, title)
	}
	return out, nil
}

func (r *memoryTitleRepo) Update(_ context.Context, id string, name string) error {
	title, ok := r.titles[id]
	if !ok {
		return employee.ErrTitleNotFound
	}
	title.Name = name
	r.titles[id] = title
	return nil
}

func (r *memoryTitleRepo) Delete(_ context.Context, id string) error {
	delete(r.titles, id)
	return nil
}

func (r *memoryTitleRepo) IsInUse(_ context.Context, id string) (bool, error) {
	for _, emp := range r.employees.employees {
		if emp.TitleID != nil && *emp.TitleID == id {
			return true, nil
		}
	}
	return false, nil
}

func newTestService() (*EmployeeService, *memoryEmployeeRepo) {
	repo := newMemoryEmployeeRepo()
	svc := NewEmployeeService(repo, newMemoryTitleRepo(repo), config.CompanyConfig{
		Name:            "NetReply",
		DefaultHolidays: 25,
		MaxRollover:     5,
	})
	return svc, repo
}

func createEmployee(t *testing.T, svc *EmployeeService, email string, managerID *string) *employee.EmployeeResponse {
	t.Helper()
	emp, err := svc.Create(context.Background(), &employee.CreateEmployeeRequest{
		Email:     email,
		Password:  "secret-password",
		FirstName: "Test",
		LastName:  "Employee",
		ManagerID: managerID,
	})
	require.NoError(t, err)
	return emp
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults allowance from config with full balance", func(t *testing.T) {
		svc, _ := newTestService()
		emp := createEmployee(t, svc, "ada@example.com", nil)

		assert.Equal(t, 25, emp.HolidaysTotal)
		assert.Equal(t, 25, emp.HolidaysLeft)
	})

	t.Run("honors explicit allowance", func(t *testing.T) {
		svc, _ := newTestService()
		total := 30
		emp, err := svc.Create(ctx, &employee.CreateEmployeeRequest{
			Email:         "ada@example.com",
			Password:      "secret-password",
			FirstName:     "Ada",
			LastName:      "Lovelace",
			HolidaysTotal: &total,
		})
		require.NoError(t, err)
		assert.Equal(t, 30, emp.HolidaysTotal)
		assert.Equal(t, 30, emp.HolidaysLeft)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc, _ := newTestService()
		createEmployee(t, svc, "ada@example.com", nil)

		_, err := svc.Create(ctx, &employee.CreateEmployeeRequest{
			Email:     "ada@example.com",
			Password:  "secret-password",
			FirstName: "Ada",
			LastName:  "Lovelace",
		})
		assert.ErrorIs(t, err, employee.ErrEmailExists)
	})

	t.Run("unknown manager is rejected", func(t *testing.T) {
		svc, _ := newTestService()
		ghost := uuid.New().String()

		_, err := svc.Create(ctx, &employee.CreateEmployeeRequest{
			Email:     "ada@example.com",
			Password:  "secret-password",
			FirstName: "Ada",
			LastName:  "Lovelace",
			ManagerID: &ghost,
		})
		assert.ErrorIs(t, err, employee.ErrManagerNotFound)
	})
}

func TestManagerCycleDetection(t *testing.T) {
	ctx := context.Background()

	t.Run("self-management is a cycle", func(t *testing.T) {
		svc, _ := newTestService()
		emp := createEmployee(t, svc, "a@example.com", nil)

		_, err := svc.Update(ctx, emp.ID, &employee.UpdateEmployeeRequest{ManagerID: &emp.ID})
		assert.ErrorIs(t, err, employee.ErrManagerCycle)
	})

	t.Run("two-step cycle is caught", func(t *testing.T) {
		svc, _ := newTestService()
		a := createEmployee(t, svc, "a@example.com", nil)
		b := createEmployee(t, svc, "b@example.com", &a.ID)

		// a already manages b; making b manage a closes the loop.
		_, err := svc.Update(ctx, a.ID, &employee.UpdateEmployeeRequest{ManagerID: &b.ID})
		assert.ErrorIs(t, err, employee.ErrManagerCycle)
	})

	t.Run("deep cycle is caught", func(t *testing.T) {
		svc, _ := newTestService()
		a := createEmployee(t, svc, "a@example.com", nil)
		b := createEmployee(t, svc, "b@example.com", &a.ID)
		c := createEmployee(t, svc, "c@example.com", &b.ID)

		_, err := svc.Update(ctx, a.ID, &employee.UpdateEmployeeRequest{ManagerID: &c.ID})
		assert.ErrorIs(t, err, employee.ErrManagerCycle)
	})

	t.Run("valid reassignment passes", func(t *testing.T) {
		svc, _ := newTestService()
		a := createEmployee(t, svc, "a@example.com", nil)
		b := createEmployee(t, svc, "b@example.com", &a.ID)
		c := createEmployee(t, svc, "c@example.com", nil)

		updated, err := svc.Update(ctx, b.ID, &employee.UpdateEmployeeRequest{ManagerID: &c.ID})
		require.NoError(t, err)
		require.NotNil(t, updated.ManagerID)
		assert.Equal(t, c.ID, *updated.ManagerID)
	})
}

func TestGetEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("employees can read their own profile", func(t *testing.T) {
		svc, _ := newTestService()
		emp := createEmployee(t, svc, "a@example.com", nil)

		got, err := svc.Get(ctx, emp.ID, false, emp.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", got.Email)
	})

	t.Run("admins can read any profile", func(t *testing.T) {
		svc, _ := newTestService()
		admin := createEmployee(t, svc, "admin@example.com", nil)
		other := createEmployee(t, svc, "b@example.com", nil)

		got, err := svc.Get(ctx, admin.ID, true, other.ID)
		require.NoError(t, err)
		assert.Equal(t, other.ID, got.ID)
	})

	t.Run("non-admins cannot read someone else's profile", func(t *testing.T) {
		svc, _ := newTestService()
		a := createEmployee(t, svc, "a@example.com", nil)
		b := createEmployee(t, svc, "b@example.com", nil)

		_, err := svc.Get(ctx, a.ID, false, b.ID)
		assert.ErrorIs(t, err, employee.ErrNotProfileOwner)
	})
}

func TestDeleteTitle(t *testing.T) {
	ctx := context.Background()

	t.Run("unused title is deleted", func(t *testing.T) {
		svc, _ := newTestService()
		title, err := svc.CreateTitle(ctx, &employee.CreateTitleRequest{Name: "Engineer"})
		require.NoError(t, err)

		assert.NoError(t, svc.DeleteTitle(ctx, title.ID))
	})

	t.Run("title held by an employee is refused", func(t *testing.T) {
		svc, _ := newTestService()
		title, err := svc.CreateTitle(ctx, &employee.CreateTitleRequest{Name: "Engineer"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, &employee.CreateEmployeeRequest{
			Email:     "a@example.com",
			Password:  "secret-password",
			FirstName: "Ada",
			LastName:  "Lovelace",
			TitleID:   &title.ID,
		})
		require.NoError(t, err)

		err = svc.DeleteTitle(ctx, title.ID)
		assert.ErrorIs(t, err, employee.ErrTitleInUse)
	})
}
