package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "gopantry/internal/errors"
)

func TestMapToHTTPStatus_TypedErrors(t *testing.T) {
	cases := []struct {
		err      error
		status   int
		category string
	}{
		{apperror.NewValidationError("x"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{apperror.NewNotFoundError("x"), http.StatusNotFound, "NOT_FOUND"},
		{apperror.NewPreconditionError("x"), http.StatusUnprocessableEntity, "PRECONDITION_FAILED"},
		{apperror.NewConflictError("x"), http.StatusConflict, "CONFLICT"},
		{apperror.NewUnauthorizedError("x"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{apperror.NewForbiddenError("x"), http.StatusForbidden, "FORBIDDEN"},
		{apperror.NewUnavailableError("x"), http.StatusServiceUnavailable, "NOT_READY"},
		{apperror.NewAdapterError("x", stderrors.New("boom")), http.StatusBadGateway, "ADAPTER_ERROR"},
		{apperror.NewInternalError("x", nil), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		status, category, _ := apperror.MapToHTTPStatus(tc.err)
		assert.Equal(t, tc.status, status, tc.category)
		assert.Equal(t, tc.category, category)
	}
}

func TestMapToHTTPStatus_WrappedAndUntyped(t *testing.T) {
	wrapped := fmt.Errorf("camada externa: %w", apperror.NewNotFoundError("item 42"))
	status, category, message := apperror.MapToHTTPStatus(wrapped)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", category)
	assert.Contains(t, message, "item 42")

	status, category, _ = apperror.MapToHTTPStatus(stderrors.New("qualquer"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "UNKNOWN_ERROR", category)
}

func TestAdapterError_UnwrapsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := apperror.NewAdapterError("falha ao inserir item", cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, apperror.IsAdapterError(fmt.Errorf("ctx: %w", err)))
	assert.False(t, apperror.IsAdapterError(apperror.NewValidationError("x")))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNewDBError_KeepsDriverMessage(t *testing.T) {
	err := apperror.NewDBError("Falha ao buscar item", stderrors.New("timeout"))
	assert.Contains(t, err.Error(), "Falha ao buscar item (DB): timeout")
	assert.True(t, apperror.IsNotFound(apperror.NewNotFoundError("x")))
	assert.False(t, apperror.IsNotFound(err))
}
