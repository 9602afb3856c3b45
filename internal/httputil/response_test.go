package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/locksetdev/vault/internal/errors"
)

func performError(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleErrorGin(c, err, nil)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleErrorGin(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		statusCode int
		errorCode  string
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, "not_found"},
		{"gone", apperrors.Wrap(apperrors.ErrGone, "tombstoned"), http.StatusGone, "gone"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "conflict"},
		{"referential integrity", apperrors.ErrReferentialIntegrity, http.StatusConflict, "referential_integrity"},
		{"invalid input", apperrors.Wrap(apperrors.ErrInvalidInput, "bad name"), http.StatusUnprocessableEntity, "invalid_input"},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"encryption failure stays internal", apperrors.ErrEncryptionFailure, http.StatusInternalServerError, "internal_error"},
		{"integrity check stays internal", apperrors.ErrIntegrityCheck, http.StatusInternalServerError, "internal_error"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := performError(t, tt.err)
			assert.Equal(t, tt.statusCode, w.Code)
			assert.Equal(t, tt.errorCode, body.Error)
		})
	}

	t.Run("internal errors never leak details", func(t *testing.T) {
		_, body := performError(t, apperrors.Wrap(apperrors.ErrIntegrityCheck, "payload digest mismatch"))
		assert.NotContains(t, body.Message, "digest")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		HandleErrorGin(c, nil, nil)
		assert.Empty(t, w.Body.Bytes())
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleBadRequestGin(c, errors.New("invalid JSON"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bad_request")
}

func TestHandleValidationErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleValidationErrorGin(c, errors.New("name: must not be blank"), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}
