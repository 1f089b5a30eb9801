package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netreply/attendance-backend-go/internal/domain/employee"
	"github.com/netreply/attendance-backend-go/internal/domain/leave"
	"github.com/netreply/attendance-backend-go/internal/domain/notification"
)

type memoryLeaveRepo struct {
	requests map[string]leave.LeaveRequest
}

func newMemoryLeaveRepo() *memoryLeaveRepo {
	return &memoryLeaveRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (r *memoryLeaveRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	request.ID = uuid.New().String()
	request.CreatedAt = time.Now()
	r.requests[request.ID] = request
	return request, nil
}

func (r *memoryLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (r *memoryLeaveRepo) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *memoryLeaveRepo) GetByEmployeeID(_ context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range r.requests {
		if req.EmployeeID == employeeID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *memoryLeaveRepo) ListPendingForManager(_ context.Context, _ string) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (r *memoryLeaveRepo) HasOverlapping(_ context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	for _, req := range r.requests {
		if req.EmployeeID != employeeID {
			continue
		}
		if req.Status != leave.LeaveRequestStatusPending && req.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		if leave.Overlaps(req.StartDate, req.EndDate, startDate, endDate) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryLeaveRepo) SetDecision(_ context.Context, id string, status leave.LeaveRequestStatus, managerID string, decidedAt time.Time) error {
	req, ok := r.requests[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	req.Status = status
	req.ManagerID = &managerID
	req.ApprovedAt = &decidedAt
	r.requests[id] = req
	return nil
}

func (r *memoryLeaveRepo) SetCancelled(_ context.Context, id string, cancelledAt time.Time) error {
	req, ok := r.requests[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	req.Status = leave.LeaveRequestStatusCancelled
	req.CancelledAt = &cancelledAt
	r.requests[id] = req
	return nil
}

func (r *memoryLeaveRepo) List(_ context.Context, _ leave.Filter) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (r *memoryLeaveRepo) CountByEmployeeAndStatus(_ context.Context, _ string, _ leave.LeaveRequestStatus) (int64, error) {
	return 0, nil
}

func (r *memoryLeaveRepo) CountPendingForManager(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

type memoryEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newMemoryEmployeeRepo() *memoryEmployeeRepo {
	return &memoryEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (r *memoryEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	if emp.ID == "" {
		emp.ID = uuid.New().String()
	}
	r.employees[emp.ID] = emp
	return emp, nil
}

func (r *memoryEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *memoryEmployeeRepo) GetByEmail(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *memoryEmployeeRepo) ExistsByEmail(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *memoryEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (r *memoryEmployeeRepo) Update(_ context.Context, _ string, _ employee.UpdateEmployeeRequest) error {
	return nil
}

func (r *memoryEmployeeRepo) Delete(_ context.Context, _ string) error {
	return nil
}

func (r *memoryEmployeeRepo) ListDirectReports(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (r *memoryEmployeeRepo) IsManager(_ context.Context, employeeID string) (bool, error) {
	for _, emp := range r.employees {
		if emp.ManagerID != nil && *emp.ManagerID == employeeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryEmployeeRepo) AdjustHolidaysLeft(_ context.Context, id string, delta int) error {
	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	next := emp.HolidaysLeft + delta
	if next < 0 {
		return employee.ErrInsufficientHolidays
	}
	if next > emp.HolidaysTotal {
		next = emp.HolidaysTotal
	}
	emp.HolidaysLeft = next
	r.employees[id] = emp
	return nil
}

type recordingNotifier struct {
	messages map[string][]string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{messages: make(map[string][]string)}
}

func (n *recordingNotifier) Notify(_ context.Context, recipientID, message string, _ *string) error {
	n.messages[recipientID] = append(n.messages[recipientID], message)
	return nil
}

func (n *recordingNotifier) List(_ context.Context, _ string, _ bool) (*notification.NotificationListResponse, error) {
	return &notification.NotificationListResponse{}, nil
}

func (n *recordingNotifier) MarkRead(_ context.Context, _ string, _ string) error {
	return nil
}

func (n *recordingNotifier) MarkAllRead(_ context.Context, _ string) error {
	return nil
}

func (n *recordingNotifier) Subscribe(_ context.Context, _ string) (<-chan notification.SSEEvent, func()) {
	ch := make(chan notification.SSEEvent)
	close(ch)
	return ch, func() {}
}

// passthroughTransactor runs the function directly; the in-memory repos have
// no transactional state to isolate.
type passthroughTransactor struct{}

func (passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	service   *LeaveService
	leaves    *memoryLeaveRepo
	employees *memoryEmployeeRepo
	notifier  *recordingNotifier
}

func newFixture() *fixture {
	leaves := newMemoryLeaveRepo()
	employees := newMemoryEmployeeRepo()
	notifier := newRecordingNotifier()
	return &fixture{
		service:   NewLeaveService(leaves, employees, notifier, passthroughTransactor{}),
		leaves:    leaves,
		employees: employees,
		notifier:  notifier,
	}
}

func (f *fixture) addEmployee(t *testing.T, managerID *string, total, left int) employee.Employee {
	t.Helper()
	emp, err := f.employees.Create(context.Background(), employee.Employee{
		Email:         uuid.New().String() + "@example.com",
		FirstName:     "Ada",
		LastName:      "Lovelace",
		ManagerID:     managerID,
		HolidaysTotal: total,
		HolidaysLeft:  left,
	})
	require.NoError(t, err)
	return emp
}

func dateString(daysFromNow int) string {
	return time.Now().AddDate(0, 0, daysFromNow).Format("2006-01-02")
}

func TestCreateLeaveRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending request and notifies manager", func(t *testing.T) {
		f := newFixture()
		manager := f.addEmployee(t, nil, 25, 25)
		emp := f.addEmployee(t, &manager.ID, 25, 25)

		resp, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(7),
			EndDate:   dateString(11),
			Reason:    "family visit",
		})
		require.NoError(t, err)

		assert.Equal(t, string(leave.LeaveRequestStatusPending), resp.Status)
		assert.Equal(t, 5, resp.Days)

		require.Len(t, f.notifier.messages[manager.ID], 1)
		assert.Equal(t,
			fmt.Sprintf("Ada Lovelace has requested leave from %s to %s.", dateString(7), dateString(11)),
			f.notifier.messages[manager.ID][0])
	})

	t.Run("single day counts as one", func(t *testing.T) {
		f := newFixture()
		emp := f.addEmployee(t, nil, 25, 25)

		resp, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(3),
			EndDate:   dateString(3),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Days)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		f := newFixture()
		emp := f.addEmployee(t, nil, 25, 25)

		_, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(5),
			EndDate:   dateString(3),
		})
		assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
	})

	t.Run("rejects start in the past", func(t *testing.T) {
		f := newFixture()
		emp := f.addEmployee(t, nil, 25, 25)

		_, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(-1),
			EndDate:   dateString(2),
		})
		assert.ErrorIs(t, err, leave.ErrStartDateInPast)
	})

	t.Run("rejects request longer than remaining balance", func(t *testing.T) {
		f := newFixture()
		emp := f.addEmployee(t, nil, 25, 3)

		_, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(7),
			EndDate:   dateString(11),
		})
		assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	})

	t.Run("rejects overlap with pending request", func(t *testing.T) {
		f := newFixture()
		emp := f.addEmployee(t, nil, 25, 25)

		_, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(7),
			EndDate:   dateString(11),
		})
		require.NoError(t, err)

		_, err = f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(11),
			EndDate:   dateString(14),
		})
		assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
	})

	t.Run("allows adjacent non-overlapping request", func(t *testing.T) {
		f := newFixture()
		emp := f.addEmployee(t, nil, 25, 25)

		_, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(7),
			EndDate:   dateString(11),
		})
		require.NoError(t, err)

		_, err = f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(12),
			EndDate:   dateString(14),
		})
		assert.NoError(t, err)
	})

	t.Run("allows overlap with rejected request", func(t *testing.T) {
		f := newFixture()
		manager := f.addEmployee(t, nil, 25, 25)
		emp := f.addEmployee(t, &manager.ID, 25, 25)

		first, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(7),
			EndDate:   dateString(11),
		})
		require.NoError(t, err)
		require.NoError(t, f.service.Reject(ctx, first.ID, manager.ID))

		_, err = f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(8),
			EndDate:   dateString(10),
		})
		assert.NoError(t, err)
	})
}

func TestApproveLeaveRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("debits exactly the request days", func(t *testing.T) {
		f := newFixture()
		manager := f.addEmployee(t, nil, 25, 25)
		emp := f.addEmployee(t, &manager.ID, 25, 10)

		resp, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(7),
			EndDate:   dateString(11),
		})
		require.NoError(t, err)

		require.NoError(t, f.service.Approve(ctx, resp.ID, manager.ID))

		updated, err := f.employees.GetByID(ctx, emp.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, updated.HolidaysLeft)

		stored, err := f.leaves.GetByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.Equal(t, leave.LeaveRequestStatusApproved, stored.Status)
		require.NotNil(t, stored.ManagerID)
		assert.Equal(t, manager.ID, *stored.ManagerID)
		assert.NotNil(t, stored.ApprovedAt)

		require.Len(t, f.notifier.messages[emp.ID], 1)
		assert.Equal(t,
			fmt.Sprintf("Your leave request from %s to %s has been approved.", dateString(7), dateString(11)),
			f.notifier.messages[emp.ID][0])
	})

	t.Run("only the employee's manager may approve", func(t *testing.T) {
		f := newFixture()
		manager := f.addEmployee(t, nil, 25, 25)
		other := f.addEmployee(t, nil, 25, 25)
		emp := f.addEmployee(t, &manager.ID, 25, 25)

		resp, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(7),
			EndDate:   dateString(8),
		})
		require.NoError(t, err)

		assert.ErrorIs(t, f.service.Approve(ctx, resp.ID, other.ID), leave.ErrNotManagerOfEmployee)
	})

	t.Run("second decision fails", func(t *testing.T) {
		f := newFixture()
		manager := f.addEmployee(t, nil, 25, 25)
		emp := f.addEmployee(t, &manager.ID, 25, 25)

		resp, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(7),
			EndDate:   dateString(8),
		})
		require.NoError(t, err)

		require.NoError(t, f.service.Approve(ctx, resp.ID, manager.ID))
		assert.ErrorIs(t, f.service.Approve(ctx, resp.ID, manager.ID), leave.ErrAlreadyProcessed)
		assert.ErrorIs(t, f.service.Reject(ctx, resp.ID, manager.ID), leave.ErrAlreadyProcessed)

		updated, err := f.employees.GetByID(ctx, emp.ID)
		require.NoError(t, err)
		assert.Equal(t, 23, updated.HolidaysLeft)
	})

	t.Run("fails when balance dropped below the request meanwhile", func(t *testing.T) {
		f := newFixture()
		manager := f.addEmployee(t, nil, 25, 25)
		emp := f.addEmployee(t, &manager.ID, 25, 5)

		resp, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(7),
			EndDate:   dateString(11),
		})
		require.NoError(t, err)

		// Another approval consumed the balance between create and approve.
		require.NoError(t, f.employees.AdjustHolidaysLeft(ctx, emp.ID, -3))

		assert.ErrorIs(t, f.service.Approve(ctx, resp.ID, manager.ID), leave.ErrInsufficientBalance)
	})
}

func TestRejectLeaveRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("leaves the balance untouched", func(t *testing.T) {
		f := newFixture()
		manager := f.addEmployee(t, nil, 25, 25)
		emp := f.addEmployee(t, &manager.ID, 25, 10)

		resp, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(7),
			EndDate:   dateString(11),
		})
		require.NoError(t, err)

		require.NoError(t, f.service.Reject(ctx, resp.ID, manager.ID))

		updated, err := f.employees.GetByID(ctx, emp.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, updated.HolidaysLeft)

		stored, err := f.leaves.GetByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.Equal(t, leave.LeaveRequestStatusRejected, stored.Status)

		require.Len(t, f.notifier.messages[emp.ID], 1)
		assert.Equal(t,
			fmt.Sprintf("Your leave request from %s to %s has been rejected.", dateString(7), dateString(11)),
			f.notifier.messages[emp.ID][0])
	})
}

func TestCancelLeaveRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("pending request cancels without balance change", func(t *testing.T) {
		f := newFixture()
		emp := f.addEmployee(t, nil, 25, 10)

		resp, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(7),
			EndDate:   dateString(11),
		})
		require.NoError(t, err)

		require.NoError(t, f.service.Cancel(ctx, resp.ID, emp.ID))

		stored, err := f.leaves.GetByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.Equal(t, leave.LeaveRequestStatusCancelled, stored.Status)
		assert.NotNil(t, stored.CancelledAt)

		updated, err := f.employees.GetByID(ctx, emp.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, updated.HolidaysLeft)
	})

	t.Run("approved future request restores the balance", func(t *testing.T) {
		f := newFixture()
		manager := f.addEmployee(t, nil, 25, 25)
		emp := f.addEmployee(t, &manager.ID, 25, 10)

		resp, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(7),
			EndDate:   dateString(11),
		})
		require.NoError(t, err)
		require.NoError(t, f.service.Approve(ctx, resp.ID, manager.ID))

		updated, err := f.employees.GetByID(ctx, emp.ID)
		require.NoError(t, err)
		require.Equal(t, 5, updated.HolidaysLeft)

		require.NoError(t, f.service.Cancel(ctx, resp.ID, emp.ID))

		updated, err = f.employees.GetByID(ctx, emp.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, updated.HolidaysLeft)
	})

	t.Run("approved request that already started stays", func(t *testing.T) {
		f := newFixture()
		emp := f.addEmployee(t, nil, 25, 10)

		created, err := f.leaves.Create(ctx, leave.LeaveRequest{
			EmployeeID: emp.ID,
			StartDate:  time.Now().AddDate(0, 0, -1),
			EndDate:    time.Now().AddDate(0, 0, 2),
			Status:     leave.LeaveRequestStatusApproved,
		})
		require.NoError(t, err)

		assert.ErrorIs(t, f.service.Cancel(ctx, created.ID, emp.ID), leave.ErrNotCancellable)
	})

	t.Run("only the owner may cancel", func(t *testing.T) {
		f := newFixture()
		emp := f.addEmployee(t, nil, 25, 25)
		other := f.addEmployee(t, nil, 25, 25)

		resp, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(7),
			EndDate:   dateString(8),
		})
		require.NoError(t, err)

		assert.ErrorIs(t, f.service.Cancel(ctx, resp.ID, other.ID), leave.ErrNotRequestOwner)
	})

	t.Run("rejected and cancelled requests stay put", func(t *testing.T) {
		f := newFixture()
		manager := f.addEmployee(t, nil, 25, 25)
		emp := f.addEmployee(t, &manager.ID, 25, 25)

		resp, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(7),
			EndDate:   dateString(8),
		})
		require.NoError(t, err)
		require.NoError(t, f.service.Reject(ctx, resp.ID, manager.ID))
		assert.ErrorIs(t, f.service.Cancel(ctx, resp.ID, emp.ID), leave.ErrNotCancellable)

		second, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
			StartDate: dateString(9),
			EndDate:   dateString(10),
		})
		require.NoError(t, err)
		require.NoError(t, f.service.Cancel(ctx, second.ID, emp.ID))
		assert.ErrorIs(t, f.service.Cancel(ctx, second.ID, emp.ID), leave.ErrNotCancellable)
	})
}

func TestBalanceRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	manager := f.addEmployee(t, nil, 25, 25)
	emp := f.addEmployee(t, &manager.ID, 10, 10)

	resp, err := f.service.Create(ctx, emp.ID, &leave.CreateLeaveRequestRequest{
		StartDate: dateString(7),
		EndDate:   dateString(11),
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Approve(ctx, resp.ID, manager.ID))
	updated, err := f.employees.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	require.Equal(t, 5, updated.HolidaysLeft)

	require.NoError(t, f.service.Cancel(ctx, resp.ID, emp.ID))
	updated, err = f.employees.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.HolidaysLeft)
}

func TestPendingApprovals(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	solo := f.addEmployee(t, nil, 25, 25)

	_, err := f.service.PendingApprovals(ctx, solo.ID)
	assert.ErrorIs(t, err, leave.ErrManagerOnly)
}
