package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_DefaultCodes(t *testing.T) {
	cases := []struct {
		err    *HTTPError
		status int
		code   string
	}{
		{NewUnauthorizedError("no", false), http.StatusUnauthorized, "UNAUTHORIZED"},
		{NewForbiddenError("no", false), http.StatusForbidden, "FORBIDDEN"},
		{NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{NewNotFoundError("missing", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{NewUnprocessableEntityError("blank", false, nil, nil), http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.Status)
		assert.Equal(t, tc.code, tc.err.Code)
	}
}

func TestConstructors_CustomCode(t *testing.T) {
	code := "USER_NOT_FOUND"
	err := NewNotFoundError("User not found", true, &code)

	assert.Equal(t, "USER_NOT_FOUND", err.Code)
	assert.Equal(t, "User not found", err.Error())
	assert.True(t, err.Override)
}

func TestIs_ComparesCodes(t *testing.T) {
	notFound := "USER_NOT_FOUND"
	invalid := "USER_INVALID_ATTRIBUTES"

	base := NewNotFoundError("User not found", false, &notFound)
	wrapped := fmt.Errorf("lookup: %w", base.WithMessage("User 7 not found"))

	assert.True(t, errors.Is(wrapped, base))
	assert.True(t, errors.Is(wrapped, &HTTPError{}))
	assert.False(t, errors.Is(wrapped, NewUnprocessableEntityError("blank", false, &invalid, nil)))
	assert.False(t, errors.Is(errors.New("plain"), base))
}

func TestWithMessage_DoesNotMutate(t *testing.T) {
	base := NewBadRequestError("original", false, nil, []FieldError{{Field: "id", Error: "is required"}}, nil)
	copied := base.WithMessage("changed")

	assert.Equal(t, "original", base.Message)
	assert.Equal(t, "changed", copied.Message)
	assert.Equal(t, base.Errors, copied.Errors)
}

func TestWithoutBody(t *testing.T) {
	base := NewNotFoundError("missing", false, nil)
	silent := base.WithoutBody()

	require.NotSame(t, base, silent)
	assert.False(t, base.EmptyBody)
	assert.True(t, silent.EmptyBody)
	assert.True(t, errors.Is(silent, base))
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "UNPROCESSABLE_ENTITY", MakeUpperCaseWithUnderscores("Unprocessable Entity"))
}
