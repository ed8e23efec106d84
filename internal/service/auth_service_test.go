package service

import (
	"context"
	"errors"
	"testing"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/repository/memory"
)

const testJWTSecret = "test-secret-do-not-use"

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(memory.NewUserRepository(), testJWTSecret, 0)

	user, err := svc.Register(context.Background(), "Dana", "dana@example.com", "hunter2hunter2", domain.RoleClient)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.PasswordHash != "" {
		t.Error("Register() returned the password hash")
	}

	token, loggedIn, err := svc.Login(context.Background(), "dana@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" {
		t.Error("Login() returned an empty token")
	}
	if loggedIn.ID != user.ID {
		t.Errorf("Login() user ID = %v, want %v", loggedIn.ID, user.ID)
	}
	if loggedIn.PasswordHash != "" {
		t.Error("Login() returned the password hash")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(memory.NewUserRepository(), testJWTSecret, 0)

	if _, err := svc.Register(context.Background(), "Dana", "dana@example.com", "hunter2hunter2", domain.RoleClient); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "dana@example.com", "not-the-password"},
		{"unknown email", "nobody@example.com", "hunter2hunter2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Login(context.Background(), tt.email, tt.password); !errors.Is(err, ErrAuthenticationFailed) {
				t.Errorf("Login() error = %v, want %v", err, ErrAuthenticationFailed)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(memory.NewUserRepository(), testJWTSecret, 0)

	if _, err := svc.Register(context.Background(), "Dana", "dana@example.com", "hunter2hunter2", domain.RoleClient); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if _, err := svc.Register(context.Background(), "Other Dana", "dana@example.com", "different-pass", domain.RoleTrainer); !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("second Register() error = %v, want %v", err, ErrUserAlreadyExists)
	}
}

func TestRegisterInvalidRole(t *testing.T) {
	svc := NewAuthService(memory.NewUserRepository(), testJWTSecret, 0)

	if _, err := svc.Register(context.Background(), "Dana", "dana@example.com", "hunter2hunter2", domain.Role("superuser")); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("Register() error = %v, want %v", err, ErrInvalidRole)
	}
}
