package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, "Created", map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Created", body.Message)
	assert.Nil(t, body.Error)
}

func TestErrorHelpersDefaultMessages(t *testing.T) {
	tests := []struct {
		name    string
		write   func(http.ResponseWriter)
		code    int
		message string
	}{
		{"conflict", func(w http.ResponseWriter) { Conflict(w, "") }, http.StatusConflict, "Conflict"},
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "") }, http.StatusBadRequest, "Bad request"},
		{"rate limited", func(w http.ResponseWriter) { TooManyRequests(w, "") }, http.StatusTooManyRequests, "Too many requests"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "Appointment not found") }, http.StatusNotFound, "Appointment not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, rec.Code)
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestCSV(t *testing.T) {
	rec := httptest.NewRecorder()
	err := CSV(rec, "metrics.csv", [][]string{{"date", "value"}, {"2025-01-20", "72"}})
	require.NoError(t, err)

	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="metrics.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "date,value\n2025-01-20,72\n", rec.Body.String())
}
