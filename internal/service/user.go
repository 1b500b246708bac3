package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"protrack/internal/auth"
	"protrack/internal/config"
	"protrack/internal/domain"
	"protrack/internal/domain/models"
	"protrack/internal/domain/repositories"
	"protrack/internal/domain/services"
	"protrack/internal/mail"
)

// userService implements the UserService interface
type userService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, logger *slog.Logger) services.UserService {
	return &userService{userRepo: userRepo, logger: logger}
}

// ListUsers retrieves all users, newest first
func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx, false)
}

// GetUser retrieves one user
func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUser applies admin changes (role, approval)
func (s *userService) UpdateUser(ctx context.Context, id string, req *services.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		role := strings.ToUpper(strings.TrimSpace(*req.Role))
		if role != models.RoleAdmin && role != models.RoleStaff {
			return nil, fmt.Errorf("%w: role must be ADMIN or STAFF", domain.ErrValidation)
		}
		user.Role = role
	}
	if req.IsApproved != nil {
		user.IsApproved = *req.IsApproved
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user updated",
		"id", user.ID,
		"role", user.Role,
		"isApproved", user.IsApproved,
	)

	return user, nil
}

// authService implements the AuthService interface
type authService struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenIssuer
	otp      *auth.OTPStore
	mailer   mail.Sender
	logger   *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenIssuer,
	otp *auth.OTPStore,
	mailer mail.Sender,
	logger *slog.Logger,
) services.AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		otp:      otp,
		mailer:   mailer,
		logger:   logger,
	}
}

// Signup creates an unapproved account. New accounts stay locked out of
// login until an admin approves them.
func (s *authService) Signup(ctx context.Context, req *services.SignupRequest) (*models.User, error) {
	if err := s.validateSignup(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		ContactNo:    req.ContactNo,
		Role:         models.RoleStaff,
		IsApproved:   false,
		Birthday:     req.Birthday,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user signed up",
		"id", user.ID,
		"email", user.Email,
	)

	return user, nil
}

// Login verifies credentials and issues a session token
func (s *authService) Login(ctx context.Context, req *services.LoginRequest) (*services.LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}

	if !user.IsApproved {
		return nil, fmt.Errorf("account is awaiting approval: %w", domain.ErrForbidden)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "id", user.ID)

	return &services.LoginResult{Token: token, User: user}, nil
}

// EmailExists reports whether an account uses the email
func (s *authService) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// NameExists reports whether an account uses the display name
func (s *authService) NameExists(ctx context.Context, fullName string) (bool, error) {
	_, err := s.userRepo.GetByFullName(ctx, strings.TrimSpace(fullName))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ForgotPassword issues a short-lived OTP and emails it. Unknown emails
// are treated the same as known ones so the endpoint never confirms
// whether an account exists.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}

	code, err := s.otp.Generate(user.Email, config.OTPLength)
	if err != nil {
		return err
	}

	if err := s.mailer.SendOTP(user.Email, code); err != nil {
		s.logger.Error("otp email failed", "error", err)
	}

	return nil
}

// ResetPassword verifies the OTP and replaces the password
func (s *authService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	if !s.otp.Verify(email, otp) {
		return fmt.Errorf("invalid or expired code: %w", domain.ErrUnauthorized)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.SetPassword(ctx, email, hash); err != nil {
		return err
	}

	s.logger.Info("password reset completed")
	return nil
}

// validateSignup validates a signup request
func (s *authService) validateSignup(req *services.SignupRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.FullName, validation.Required, validation.Length(1, 255)),
	); err != nil {
		return err
	}
	return validatePassword(req.Password)
}

// validatePassword enforces the minimum password policy
func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	return nil
}
