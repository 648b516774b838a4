package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/user-service/internal/config"
	"github.com/deppfellow/user-service/internal/errs"
	"github.com/deppfellow/user-service/internal/handler"
	"github.com/deppfellow/user-service/internal/model"
	"github.com/deppfellow/user-service/internal/repository"
	"github.com/deppfellow/user-service/internal/server"
	"github.com/deppfellow/user-service/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	router *echo.Echo
	repo   *repository.MemoryUserRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				Port:               "0",
				CORSAllowedOrigins: []string{"*"},
			},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}

	repo := repository.NewMemoryUserRepository()
	services := &service.Services{
		User: service.NewUserService(&logger, repo, nil),
	}

	return &testApp{
		router: NewRouter(s, handler.NewHandlers(s, services)),
		repo:   repo,
	}
}

func (a *testApp) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestUserLifecycle(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/users", `{"name":"Manel","password":"pass123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, model.User{ID: 1, Name: "Manel", Password: "pass123"}, decode[model.User](t, rec))

	rec = app.do(t, http.MethodGet, "/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.User{ID: 1, Name: "Manel", Password: "pass123"}, decode[model.User](t, rec))

	rec = app.do(t, http.MethodPut, "/users/1", `{"name":"Renamed","password":"newpass"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.User{ID: 1, Name: "Renamed", Password: "newpass"}, decode[model.User](t, rec))

	rec = app.do(t, http.MethodGet, "/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "newpass", decode[model.User](t, rec).Password)

	rec = app.do(t, http.MethodDelete, "/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/users/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCreateUser_BlankNameStoresNothing(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/users", `{"name":"","password":"x"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "USER_INVALID_ATTRIBUTES", decode[errs.HTTPError](t, rec).Code)

	assert.Zero(t, app.repo.Writes())

	rec = app.do(t, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListUsers(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	app.do(t, http.MethodPost, "/users", `{"name":"Manel","password":"a"}`)
	app.do(t, http.MethodPost, "/users", `{"name":"Ana","password":"b"}`)

	rec = app.do(t, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[[]model.User](t, rec)
	require.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, int64(2), users[1].ID)
}

func TestSearchUsers(t *testing.T) {
	app := newTestApp(t)
	app.do(t, http.MethodPost, "/users", `{"name":"Manel","password":"a"}`)
	app.do(t, http.MethodPost, "/users", `{"name":"Ana","password":"b"}`)
	app.do(t, http.MethodPost, "/users", `{"name":"Manel","password":"c"}`)

	rec := app.do(t, http.MethodGet, "/users/search?name=Manel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.User](t, rec), 2)

	rec = app.do(t, http.MethodGet, "/users/search?name=Nobody", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "USER_NOT_FOUND", decode[errs.HTTPError](t, rec).Code)

	rec = app.do(t, http.MethodGet, "/users/search?name=", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "USER_NOT_FOUND", decode[errs.HTTPError](t, rec).Code)

	rec = app.do(t, http.MethodGet, "/users/search", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is required"}}, decode[errs.HTTPError](t, rec).Errors)
}

func TestUpdateUser_Errors(t *testing.T) {
	app := newTestApp(t)
	app.do(t, http.MethodPost, "/users", `{"name":"Manel","password":"a"}`)

	t.Run("id mismatch", func(t *testing.T) {
		rec := app.do(t, http.MethodPut, "/users/1", `{"id":2,"name":"X","password":"y"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "USER_ID_MISMATCH", decode[errs.HTTPError](t, rec).Code)
	})

	t.Run("matching body id", func(t *testing.T) {
		rec := app.do(t, http.MethodPut, "/users/1", `{"id":1,"name":"X","password":"y"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing", func(t *testing.T) {
		rec := app.do(t, http.MethodPut, "/users/9", `{"name":"X","password":"y"}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "USER_NOT_FOUND", decode[errs.HTTPError](t, rec).Code)
	})

	t.Run("blank", func(t *testing.T) {
		rec := app.do(t, http.MethodPut, "/users/1", `{"name":"  ","password":"y"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("non-integer id", func(t *testing.T) {
		rec := app.do(t, http.MethodPut, "/users/abc", `{"name":"X","password":"y"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteUser_Missing(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodDelete, "/users/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "USER_NOT_FOUND", decode[errs.HTTPError](t, rec).Code)
}

func TestMalformedJSON(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/users", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, app.repo.Writes())
}

func TestSystemRoutes(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[map[string]any](t, rec)["status"])

	rec = app.do(t, http.MethodGet, "/nowhere", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode[errs.HTTPError](t, rec).Message)
}

func TestRequestIDHeader(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
	assert.JSONEq(t, `[]`, rec.Body.String())
}
