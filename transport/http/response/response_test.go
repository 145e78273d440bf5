package response_test

import (
	"encoding/json"
	"errors"
	"hotel/shared/failure"
	"hotel/transport/http/response"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Error   string           `json:"error"`
	Kind    string           `json:"kind"`
	Details []map[string]any `json:"details"`
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody errorBody
	}{
		{
			name:     "validation failure carries details",
			err:      failure.Validation("invalid booking", []map[string]any{{"field": "namaPemesan"}}),
			wantCode: http.StatusBadRequest,
			wantBody: errorBody{Error: "invalid booking", Kind: failure.KindValidation, Details: []map[string]any{{"field": "namaPemesan"}}},
		},
		{
			name:     "not found",
			err:      failure.NotFound("booking not found"),
			wantCode: http.StatusNotFound,
			wantBody: errorBody{Error: "booking not found", Kind: failure.KindNotFound},
		},
		{
			name:     "storage failure hides cause",
			err:      failure.StorageFailure("failed to get bookings", errors.New("dial tcp: refused")),
			wantCode: http.StatusInternalServerError,
			wantBody: errorBody{Error: "failed to get bookings", Kind: failure.KindStorageFailure},
		},
		{
			name:     "plain error becomes generic",
			err:      errors.New("pq: relation does not exist"),
			wantCode: http.StatusInternalServerError,
			wantBody: errorBody{Error: "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"abc"}}`, rec.Body.String())
}

func TestWithFile(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithFile(rec, "text/csv", "bookings_2025-01-02.csv", []byte("ID\n"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="bookings_2025-01-02.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "ID\n", rec.Body.String())
}
