package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"powerpump/internal/domain/account"
)

// CredentialVerifier checks admin credentials.
type CredentialVerifier interface {
	Verify(email, password string) bool
}

// AdminLoginInput carries input for the login orchestrator.
type AdminLoginInput struct {
	Email    string
	Password string
}

// AdminLoginResult carries the result of a successful login.
type AdminLoginResult struct {
	Email string
	Role  string
}

// AdminLoginDeps holds dependencies for AdminLogin.
type AdminLoginDeps struct {
	Verifier CredentialVerifier
}

// ErrInvalidCredentials is returned for any failed login.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ExecuteAdminLogin validates credentials and returns identity info for session creation.
// PRE: Verifier is non-nil
// POST: Returns the admin identity on success, ErrInvalidCredentials otherwise
func ExecuteAdminLogin(_ context.Context, input AdminLoginInput, deps AdminLoginDeps) (AdminLoginResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return AdminLoginResult{}, ErrInvalidCredentials
	}

	if !deps.Verifier.Verify(email, input.Password) {
		slog.Info("auth_event", "event", "login_failed", "email", email)
		return AdminLoginResult{}, ErrInvalidCredentials
	}

	slog.Info("auth_event", "event", "login_success", "email", email, "role", account.RoleAdmin)
	return AdminLoginResult{Email: strings.ToLower(email), Role: account.RoleAdmin}, nil
}
