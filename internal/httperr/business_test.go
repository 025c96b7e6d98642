package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, HTTPError) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	Respond(c, zap.NewNop(), err)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespondStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{Validation("bad_input", "msg"), http.StatusBadRequest},
		{NotFoundErr("missing", "msg"), http.StatusNotFound},
		{ConflictErr("busy", "msg"), http.StatusConflict},
		{AuthErr("invalid_credentials", "msg"), http.StatusUnauthorized},
		{ForbiddenErr("not_yours", "msg"), http.StatusForbidden},
	}

	for _, tc := range cases {
		w, body := respond(t, tc.err)
		assert.Equal(t, tc.status, w.Code)
		assert.Equal(t, tc.err.Error(), body.Code)
	}
}

func TestRespondWrappedBusinessError(t *testing.T) {
	wrapped := fmt.Errorf("saving: %w", ConflictErr("busy", "msg"))
	w, body := respond(t, wrapped)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "busy", body.Code)
}

func TestRespondRecordNotFound(t *testing.T) {
	w, body := respond(t, gorm.ErrRecordNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", body.Code)
}

func TestRespondUnknownErrorIsOpaque(t *testing.T) {
	w, body := respond(t, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal_error", body.Code)
	assert.NotContains(t, body.Message, "connection refused")
}

func TestIsKindAndIsCode(t *testing.T) {
	err := Validation("bad_input", "msg")

	assert.True(t, IsKind(err, KindValidation))
	assert.False(t, IsKind(err, KindConflict))
	assert.True(t, IsCode(err, "bad_input"))
	assert.False(t, IsCode(err, "other"))

	assert.False(t, IsKind(errors.New("plain"), KindValidation))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("duplicate key")))
	assert.False(t, IsUniqueViolation(nil))
}
