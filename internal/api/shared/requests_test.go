package shared

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginPayload struct {
	Email string `json:"email" validate:"required,email"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		requestBody string
		wantErr     bool
		wantEmail   string
	}{
		{
			name:        "valid json",
			requestBody: `{"email": "a@example.com"}`,
			wantEmail:   "a@example.com",
		},
		{
			name:        "malformed json",
			requestBody: `{"email": "a@example.com",}`,
			wantErr:     true,
		},
		{
			name:        "empty body",
			requestBody: "",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
				bytes.NewBufferString(tt.requestBody))

			var payload loginPayload
			err := DecodeJSON(req, &payload)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEmail, payload.Email)
		})
	}
}

type selfValidating struct {
	ok bool
}

func (v *selfValidating) Validate() error {
	if !v.ok {
		return assert.AnError
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	t.Run("struct tags", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(loginPayload{Email: "a@example.com"}))
		assert.Error(t, ValidateRequest(loginPayload{Email: "not-an-email"}))
		assert.Error(t, ValidateRequest(loginPayload{}))
	})

	t.Run("custom Validate takes precedence", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(&selfValidating{ok: true}))
		assert.Error(t, ValidateRequest(&selfValidating{ok: false}))
	})
}
