package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/netreply/attendance-backend-go/internal/config"
	"github.com/netreply/attendance-backend-go/internal/domain/auth"
	"github.com/netreply/attendance-backend-go/internal/domain/employee"
	"github.com/netreply/attendance-backend-go/internal/pkg/jwt"
	"github.com/netreply/attendance-backend-go/internal/pkg/oauth"
)

type AuthService struct {
	employeeRepo  employee.EmployeeRepository
	jwtService    jwt.Service
	googleService oauth.GoogleService
	companyCfg    config.CompanyConfig
}

func NewAuthService(
	employeeRepo employee.EmployeeRepository,
	jwtService jwt.Service,
	googleService oauth.GoogleService,
	companyCfg config.CompanyConfig,
) *AuthService {
	return &AuthService{
		employeeRepo:  employeeRepo,
		jwtService:    jwtService,
		googleService: googleService,
		companyCfg:    companyCfg,
	}
}

func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	return s.issueTokens(emp)
}

// Register signs up a new regular employee with the default allowance.
func (s *AuthService) Register(ctx context.Context, req *auth.RegisterRequest) (*auth.LoginResponse, error) {
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

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	emp, err := s.employeeRepo.Create(ctx, employee.Employee{
		Email:         req.Email,
		PasswordHash:  string(hash),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		HolidaysTotal: s.companyCfg.DefaultHolidays,
		HolidaysLeft:  s.companyCfg.DefaultHolidays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return s.issueTokens(emp)
}

// RefreshToken exchanges a live refresh token for a new token pair. The old
// refresh token is revoked so each one is single-use.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*auth.LoginResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return nil, auth.ErrRefreshTokenRevoked
	}

	token, err := s.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return nil, auth.ErrInvalidToken
	}
	idVal, ok := token.Get("employee_id")
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	employeeID, ok := idVal.(string)
	if !ok {
		return nil, auth.ErrInvalidToken
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	s.jwtService.RevokeToken(refreshToken)

	return s.issueTokens(emp)
}

func (s *AuthService) Logout(_ context.Context, refreshToken string) {
	if refreshToken != "" {
		s.jwtService.RevokeToken(refreshToken)
	}
}

// OAuthRedirect builds the Google consent URL with a fresh state value.
func (s *AuthService) OAuthRedirect() (url string, state string) {
	state = s.googleService.GenerateState()
	return s.googleService.RedirectURL(state), state
}

// LoginWithGoogle finishes the OAuth code exchange. The Google account's
// email must already belong to an employee; there is no sign-up via OAuth.
func (s *AuthService) LoginWithGoogle(ctx context.Context, code string) (*auth.LoginResponse, error) {
	token, err := s.googleService.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	user, err := s.googleService.FetchUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch google profile: %w", err)
	}
	if !user.VerifiedEmail {
		return nil, auth.ErrInvalidCredentials
	}

	emp, err := s.employeeRepo.GetByEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, auth.ErrEmailNotRegistered
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return s.issueTokens(emp)
}

// SSEToken mints a short-lived token for the notification stream, which
// cannot carry an Authorization header from EventSource.
func (s *AuthService) SSEToken(employeeID string) (token string, expiresIn int, err error) {
	return s.jwtService.GenerateSSEToken(employeeID)
}

func (s *AuthService) issueTokens(emp employee.Employee) (*auth.LoginResponse, error) {
	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.Email, emp.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(emp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &auth.LoginResponse{
		TokenPair: auth.TokenPair{
			AccessToken:      accessToken,
			AccessExpiresAt:  accessExpiresAt,
			RefreshToken:     refreshToken,
			RefreshExpiresAt: refreshExpiresAt,
		},
		Employee: employee.ToResponse(emp),
	}, nil
}
