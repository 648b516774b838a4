package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/user-service/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchPayload struct {
	Name  string `query:"name" validate:"required"`
	Limit int    `query:"limit" validate:"min=0,max=10"`
}

func (p *searchPayload) Validate() error {
	return Struct(p)
}

type customPayload struct{}

func (p *customPayload) Validate() error {
	return CustomValidationErrors{{Field: "id", Message: "does not match path"}}
}

func newContext(method, target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate_OK(t *testing.T) {
	c := newContext(http.MethodGet, "/users/search?name=Manel&limit=3")

	payload := &searchPayload{}
	require.NoError(t, BindAndValidate(c, payload))
	assert.Equal(t, "Manel", payload.Name)
	assert.Equal(t, 3, payload.Limit)
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	c := newContext(http.MethodGet, "/users/search?limit=11")

	err := BindAndValidate(c, &searchPayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "name", Error: "is required"},
		{Field: "limit", Error: "must not exceed 10"},
	}, httpErr.Errors)
}

func TestBindAndValidate_BindError(t *testing.T) {
	c := newContext(http.MethodGet, "/users/search?name=x&limit=abc")

	err := BindAndValidate(c, &searchPayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.True(t, strings.Contains(httpErr.Message, "invalid syntax"), httpErr.Message)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	c := newContext(http.MethodGet, "/")

	err := BindAndValidate(c, &customPayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, []errs.FieldError{{Field: "id", Error: "does not match path"}}, httpErr.Errors)
}
