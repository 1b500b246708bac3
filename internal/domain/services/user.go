package services

import (
	"context"

	"protrack/internal/domain/models"
)

// SignupRequest represents a new account request
type SignupRequest struct {
	Email     string           `json:"email"`
	Password  string           `json:"password"`
	FullName  string           `json:"fullName"`
	ContactNo *string          `json:"contactNo"`
	Birthday  *models.DateOnly `json:"birthday"`
}

// LoginRequest represents a credentials check
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult carries the session token and the authenticated user
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UpdateUserRequest carries admin-editable user fields
type UpdateUserRequest struct {
	Role       *string `json:"role"`
	IsApproved *bool   `json:"isApproved"`
}

// UserService defines account and directory operations
type UserService interface {
	// ListUsers retrieves all users, newest first
	ListUsers(ctx context.Context) ([]models.User, error)

	// GetUser retrieves one user
	GetUser(ctx context.Context, id string) (*models.User, error)

	// UpdateUser applies admin changes (role, approval)
	UpdateUser(ctx context.Context, id string, req *UpdateUserRequest) (*models.User, error)
}

// AuthService defines signup, login and password-reset operations
type AuthService interface {
	// Signup creates an unapproved account
	Signup(ctx context.Context, req *SignupRequest) (*models.User, error)

	// Login verifies credentials and issues a session token.
	// Unapproved accounts are rejected with ErrForbidden.
	Login(ctx context.Context, req *LoginRequest) (*LoginResult, error)

	// EmailExists reports whether an account uses the email
	EmailExists(ctx context.Context, email string) (bool, error)

	// NameExists reports whether an account uses the display name
	NameExists(ctx context.Context, fullName string) (bool, error)

	// ForgotPassword issues a short-lived OTP and emails it.
	// Always succeeds from the caller's view to avoid account enumeration.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword verifies the OTP and replaces the password
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}
