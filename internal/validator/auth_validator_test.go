package validator

import (
	"context"
	"testing"

	"kommercio/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestValidateSignup(t *testing.T) {
	v := NewAuthValidator()

	cases := []struct {
		name     string
		email    string
		username string
		password string
		wantErr  bool
	}{
		{"ok", "a@example.com", "alice", "password123", false},
		{"missing email", "", "alice", "password123", true},
		{"missing username", "a@example.com", "", "password123", true},
		{"missing password", "a@example.com", "alice", "", true},
		{"bad email", "not-an-email", "alice", "password123", true},
		{"short password", "a@example.com", "alice", "short", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateSignup(context.Background(), tc.email, tc.username, tc.password)
			if tc.wantErr {
				he, ok := usecase.AsHTTPError(err)
				assert.True(t, ok)
				assert.Equal(t, 400, he.Status)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	v := NewAuthValidator()

	assert.NoError(t, v.ValidateLogin(context.Background(), "a@example.com", "pw"))
	assert.Error(t, v.ValidateLogin(context.Background(), "", "pw"))
	assert.Error(t, v.ValidateLogin(context.Background(), "a@example.com", ""))
}
