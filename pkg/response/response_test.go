package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, "created", map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "created", body.Message)
}

func TestErrorDefaults(t *testing.T) {
	cases := []struct {
		write   func(http.ResponseWriter, string)
		code    int
		message string
	}{
		{NotFound, http.StatusNotFound, "Resource not found"},
		{Conflict, http.StatusConflict, "Conflict"},
		{Forbidden, http.StatusForbidden, "Forbidden"},
		{Unauthorized, http.StatusUnauthorized, "Unauthorized"},
		{UnprocessableEntity, http.StatusUnprocessableEntity, "Unprocessable entity"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		tc.write(rec, "")

		var body Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tc.code, rec.Code)
		assert.False(t, body.Success)
		assert.Equal(t, tc.message, body.Message)
	}
}
