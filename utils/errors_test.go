package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingColumn(t *testing.T) {
	tests := []struct {
		name   string
		msg    string
		column string
		ok     bool
	}{
		{"sqlite select", "no such column: scope", "scope", true},
		{"sqlite qualified", "no such column: consultations.consulted_at", "consulted_at", true},
		{"sqlite insert", "table consultations has no column named scope", "scope", true},
		{"mysql", "Error 1054 (42S22): Unknown column 'consulted_at' in 'field list'", "consulted_at", true},
		{"postgres", `ERROR: column "scope" does not exist (SQLSTATE 42703)`, "scope", true},
		{"postgres relation", `ERROR: column "scope" of relation "consultations" does not exist`, "scope", true},
		{"unrelated", "connection refused", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			column, ok := MissingColumn(errors.New(tt.msg))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.column, column)
		})
	}

	_, ok := MissingColumn(nil)
	assert.False(t, ok)
}

func TestStorageError(t *testing.T) {
	schemaErr := StorageError(errors.New("no such column: scope"))
	assert.Equal(t, KindSchema, schemaErr.Kind)
	assert.Contains(t, schemaErr.Message, "scope")

	internal := StorageError(errors.New("disk I/O error"))
	assert.Equal(t, KindInternal, internal.Kind)
	assert.Equal(t, http.StatusInternalServerError, internal.Status())
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", NewValidationError("잘못된 ID"), http.StatusBadRequest, "잘못된 ID"},
		{"login required", ErrLoginRequired, http.StatusUnauthorized, "로그인 필요"},
		{"not found", NewNotFoundError("없음"), http.StatusNotFound, "없음"},
		{"conflict", NewConflictError("중복"), http.StatusConflict, "중복"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, internalErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			RespondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body["error"])
			assert.True(t, c.IsAborted())
		})
	}
}
