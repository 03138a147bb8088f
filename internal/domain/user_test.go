package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  reader  ", "testpass123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Username != "reader" {
		t.Errorf("Expected trimmed username %q, got %q", "reader", user.Username)
	}

	if user.Password != "testpass123" {
		t.Errorf("Expected plaintext password to be kept until hashing")
	}

	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
		field   string
	}{
		{"valid with plaintext", User{Username: "reader", Password: "testpass123"}, false, ""},
		{"valid with hash only", User{Username: "reader", HashedPassword: "$2a$10$hash"}, false, ""},
		{"blank username", User{Username: "   ", Password: "testpass123"}, true, "username"},
		{"short password", User{Username: "reader", Password: "short"}, true, "password"},
		{"long password", User{Username: "reader", Password: strings.Repeat("a", 73)}, true, "password"},
		{"no password at all", User{Username: "reader"}, true, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}

			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected *ValidationError, got %T", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, vErr.Field)
			}
		})
	}
}
