package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Lixing-Zhang/pos-checkout/internal/models"
)

const (
	LoginStatusAccepted = "accepted"

	DefaultPasswordMinLength = 6
)

// ValidationError lists the login form fields that failed validation, keyed by field name
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid login form: " + strings.Join(parts, "; ")
}

// LoginResult is the outcome of a login form that passed validation
type LoginResult struct {
	Status   string
	Username string
}

// LoginService validates login form submissions. It does not check
// credentials or issue sessions.
type LoginService struct {
	passwordMinLength int
	log               *slog.Logger
}

// NewLoginService creates a new login service
func NewLoginService(passwordMinLength int, log *slog.Logger) *LoginService {
	if passwordMinLength <= 0 {
		passwordMinLength = DefaultPasswordMinLength
	}
	return &LoginService{
		passwordMinLength: passwordMinLength,
		log:               log,
	}
}

// Login validates the form and returns an accepted result or a *ValidationError
func (s *LoginService) Login(ctx context.Context, req models.LoginRequest) (*LoginResult, error) {
	username := strings.TrimSpace(req.Username)

	fields := make(map[string]string)
	if username == "" {
		fields["username"] = "Username is required"
	}
	if utf8.RuneCountInString(req.Password) < s.passwordMinLength {
		fields["password"] = fmt.Sprintf("Password must be at least %d characters", s.passwordMinLength)
	}

	if len(fields) > 0 {
		s.log.Info("login form rejected", "username", username, "invalid_fields", len(fields))
		return nil, &ValidationError{Fields: fields}
	}

	s.log.Info("login form accepted", "username", username)
	return &LoginResult{
		Status:   LoginStatusAccepted,
		Username: username,
	}, nil
}
