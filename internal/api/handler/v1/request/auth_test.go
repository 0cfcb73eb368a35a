package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetPasswordRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SetPasswordRequest
		wantErr bool
	}{
		{
			name:    "valid",
			req:     SetPasswordRequest{BoyID: "BOY01", Password: "secret123", ConfirmPassword: "secret123"},
			wantErr: false,
		},
		{
			name:    "missing boy ID",
			req:     SetPasswordRequest{Password: "secret123", ConfirmPassword: "secret123"},
			wantErr: true,
		},
		{
			name:    "confirm mismatch",
			req:     SetPasswordRequest{BoyID: "BOY01", Password: "secret123", ConfirmPassword: "secret124"},
			wantErr: true,
		},
		{
			name:    "too short",
			req:     SetPasswordRequest{BoyID: "BOY01", Password: "ab1", ConfirmPassword: "ab1"},
			wantErr: true,
		},
		{
			name:    "no digit",
			req:     SetPasswordRequest{BoyID: "BOY01", Password: "abcdefgh", ConfirmPassword: "abcdefgh"},
			wantErr: true,
		},
		{
			name:    "no letter",
			req:     SetPasswordRequest{BoyID: "BOY01", Password: "12345678", ConfirmPassword: "12345678"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAddBoyRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := AddBoyRequest{BoyID: "BOY01", Email: "ravi@example.com", Name: "Ravi"}

		assert.NoError(t, req.Validate())
	})

	t.Run("bad email", func(t *testing.T) {
		req := AddBoyRequest{BoyID: "BOY01", Email: "not-an-email", Name: "Ravi"}

		assert.Error(t, req.Validate())
	})
}
