package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/netreply/attendance-backend-go/internal/config"
	"github.com/netreply/attendance-backend-go/internal/domain/auth"
	"github.com/netreply/attendance-backend-go/internal/domain/employee"
	"github.com/netreply/attendance-backend-go/internal/pkg/jwt"
	"github.com/netreply/attendance-backend-go/internal/pkg/oauth"
)

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

func (r *memoryEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *memoryEmployeeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(context.Background(), email)
	return err == nil, nil
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

func (r *memoryEmployeeRepo) IsManager(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *memoryEmployeeRepo) AdjustHolidaysLeft(_ context.Context, _ string, _ int) error {
	return nil
}

func newTestService() (*AuthService, *memoryEmployeeRepo) {
	repo := newMemoryEmployeeRepo()
	jwtSvc := jwt.NewJWTService("test-secret-key", "1h", "168h")
	googleSvc := oauth.NewGoogleService("", "", "", nil)
	svc := NewAuthService(repo, jwtSvc, googleSvc, config.CompanyConfig{DefaultHolidays: 25})
	return svc, repo
}

func seedEmployee(t *testing.T, repo *memoryEmployeeRepo, email, password string) employee.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	emp, err := repo.Create(context.Background(), employee.Employee{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Ada",
		LastName:     "Lovelace",
	})
	require.NoError(t, err)
	return emp
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a token pair", func(t *testing.T) {
		svc, repo := newTestService()
		seedEmployee(t, repo, "ada@example.com", "correct-horse")

		resp, err := svc.Login(ctx, &auth.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "ada@example.com", resp.Employee.Email)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		svc, repo := newTestService()
		seedEmployee(t, repo, "ada@example.com", "correct-horse")

		_, err := svc.Login(ctx, &auth.LoginRequest{Email: "ada@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email fails the same way", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Login(ctx, &auth.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("new employee gets default allowance", func(t *testing.T) {
		svc, repo := newTestService()

		resp, err := svc.Register(ctx, &auth.RegisterRequest{
			Email:     "grace@example.com",
			Password:  "secret-password",
			FirstName: "Grace",
			LastName:  "Hopper",
		})
		require.NoError(t, err)
		assert.Equal(t, 25, resp.Employee.HolidaysTotal)
		assert.Equal(t, 25, resp.Employee.HolidaysLeft)
		assert.False(t, resp.Employee.IsAdmin)

		stored, err := repo.GetByEmail(ctx, "grace@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "secret-password", stored.PasswordHash)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc, repo := newTestService()
		seedEmployee(t, repo, "grace@example.com", "secret-password")

		_, err := svc.Register(ctx, &auth.RegisterRequest{
			Email:     "grace@example.com",
			Password:  "secret-password",
			FirstName: "Grace",
			LastName:  "Hopper",
		})
		assert.ErrorIs(t, err, employee.ErrEmailExists)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the refresh token", func(t *testing.T) {
		svc, repo := newTestService()
		seedEmployee(t, repo, "ada@example.com", "correct-horse")

		login, err := svc.Login(ctx, &auth.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
		require.NoError(t, err)

		refreshed, err := svc.RefreshToken(ctx, login.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)

		// The old refresh token is single-use.
		_, err = svc.RefreshToken(ctx, login.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
	})

	t.Run("access token is not accepted as refresh token", func(t *testing.T) {
		svc, repo := newTestService()
		seedEmployee(t, repo, "ada@example.com", "correct-horse")

		login, err := svc.Login(ctx, &auth.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
		require.NoError(t, err)

		_, err = svc.RefreshToken(ctx, login.AccessToken)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage token fails", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
