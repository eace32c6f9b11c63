package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Constructors(t *testing.T) {
	err := NewAppError(http.StatusBadRequest, CodeValidation, "bad", ErrValidation)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, CodeValidation, err.Code)
	assert.Equal(t, "bad: "+ErrValidation.Error(), err.Error())

	cases := []struct {
		err    *AppError
		status int
		code   string
		kind   error
	}{
		{NotFound("missing"), http.StatusNotFound, CodeNotFound, ErrNotFound},
		{InvalidState("early"), http.StatusConflict, CodeInvalidState, ErrInvalidState},
		{Conflict("sku", "taken"), http.StatusConflict, CodeConflict, ErrConflict},
		{Validation("bad"), http.StatusBadRequest, CodeValidation, ErrValidation},
		{Validationf("field %s", "x"), http.StatusBadRequest, CodeValidation, ErrValidation},
		{Unauthorized("no"), http.StatusUnauthorized, CodeUnauthorized, ErrUnauthorized},
		{EmailNotVerified(), http.StatusUnauthorized, CodeEmailNotVerified, ErrUnauthorized},
		{Forbidden("no"), http.StatusForbidden, CodeForbidden, ErrForbidden},
		{InvalidOperation("last"), http.StatusUnprocessableEntity, CodeInvalidOperation, ErrInvalidOperation},
		{RateLimited("slow"), http.StatusTooManyRequests, CodeRateLimited, ErrRateLimited},
		{StorageError(stderrors.New("db down")), http.StatusInternalServerError, CodeStorage, ErrStorage},
		{NotificationFailed("mail", stderrors.New("smtp down")), http.StatusBadGateway, CodeNotification, ErrNotification},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.Status, tc.code)
		assert.Equal(t, tc.code, tc.err.Code)
		assert.ErrorIs(t, tc.err, tc.kind)
	}

	assert.Equal(t, "sku", Conflict("sku", "taken").Field)
	assert.Equal(t, "field x", Validationf("field %s", "x").Message)

	internal := InternalError(stderrors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Equal(t, "internal server error", internal.Message)
}

func TestStorageError_HidesCause(t *testing.T) {
	err := StorageError(stderrors.New("pq: connection refused"))
	assert.Equal(t, "storage operation failed", err.Message)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NotFound("x"))
	appErr, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)

	_, ok = AsAppError(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestDuplicateKeyError(t *testing.T) {
	var err error = &DuplicateKeyError{Field: "sku"}
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, "duplicate value for sku", err.Error())

	var dup *DuplicateKeyError
	assert.True(t, stderrors.As(fmt.Errorf("wrap: %w", err), &dup))
	assert.Equal(t, "sku", dup.Field)
}
