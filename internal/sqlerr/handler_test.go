package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/user-service/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewNotFoundError("User not found", false, nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleError_CheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23514",
		Message:        `new row for relation "users" violates check constraint "users_name_not_blank"`,
		TableName:      "users",
		ConstraintName: "users_name_not_blank",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("insert user: %w", pgErr)))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_INVALID", httpErr.Code)
	assert.Equal(t, "The Name value does not meet required conditions", httpErr.Message)
}

func TestHandleError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		TableName:      "users",
		ConstraintName: "users_name_key",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A User with this Name already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleError_NotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:   "ERROR",
		Code:       "23502",
		TableName:  "users",
		ColumnName: "password",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, "USER_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "password", httpErr.Errors[0].Field)
}

func TestHandleError_UnknownPgErrorIsInternal(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(&pgconn.PgError{Code: "XX000", Severity: "ERROR"}))

	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "Internal Server Error", httpErr.Message)
}

func TestHandleError_NoRows(t *testing.T) {
	generic := asHTTPError(t, HandleError(sql.ErrNoRows))
	assert.Equal(t, http.StatusNotFound, generic.Status)
	assert.Equal(t, "Resource not found", generic.Message)

	tagged := asHTTPError(t, HandleError(fmt.Errorf("table:users: %w", pgx.ErrNoRows)))
	assert.Equal(t, http.StatusNotFound, tagged.Status)
	assert.Equal(t, "User not found", tagged.Message)
}

func TestHandleError_UnknownIsInternal(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23505", Severity: "ERROR"})

	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("wrapped: %w", converted)))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
	assert.ErrorIs(t, converted, converted.Unwrap())
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, Other, MapCode("42P01"))
}
