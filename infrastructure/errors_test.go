package infrastructure

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsAPIError(t *testing.T) {
	t.Run("passes api errors through", func(t *testing.T) {
		err := NewConflict("taken")
		assert.Equal(t, err, AsAPIError(err))
	})

	t.Run("wrapped api error", func(t *testing.T) {
		wrapped := errors.Join(errors.New("context"), NewNotFound("missing"))
		assert.Equal(t, http.StatusNotFound, AsAPIError(wrapped).StatusCode)
	})

	t.Run("unknown errors become internal", func(t *testing.T) {
		apiErr := AsAPIError(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Equal(t, "internal server error", apiErr.Message)
	})
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, NewUnauthorized("invalid user credentials"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid user credentials", resp.Message)
	assert.False(t, resp.Success)
}

func TestWriteJSON_Success(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"id": "42"}, "created")

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "created", resp.Message)
}

func TestGenerateOtpCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := GenerateOtpCode()
		require.Len(t, code, 6)
		for _, c := range code {
			assert.Contains(t, otpCharset, string(c))
		}
		seen[code] = true
	}
	// 100 draws from a 36^6 space colliding down to a handful would mean
	// the generator is broken
	assert.Greater(t, len(seen), 90)
}
