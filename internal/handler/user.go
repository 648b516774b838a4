package handler

import (
	"errors"
	"net/http"

	"github.com/deppfellow/user-service/internal/errs"
	"github.com/deppfellow/user-service/internal/model"
	"github.com/deppfellow/user-service/internal/server"
	"github.com/deppfellow/user-service/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	users *service.UserService
}

func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

func (h *UserHandler) CreateUser(c echo.Context, req *model.CreateUserPayload) (*model.User, error) {
	return h.users.CreateUser(c.Request().Context(), req.ToUser())
}

func (h *UserHandler) ListUsers(c echo.Context, _ *model.ListUsersPayload) ([]model.User, error) {
	return h.users.GetAllUsers(c.Request().Context())
}

// GetUser answers a missing id with a bare 404.
func (h *UserHandler) GetUser(c echo.Context, req *model.UserIDPayload) (*model.User, error) {
	u, err := h.users.FindUserByID(c.Request().Context(), req.ID)
	if errors.Is(err, service.ErrUserNotFound) {
		return nil, service.ErrUserNotFound.WithoutBody()
	}
	return u, err
}

// SearchUsers requires the name parameter to be present; "?name=" searches
// for the empty name.
func (h *UserHandler) SearchUsers(c echo.Context, req *model.SearchUsersPayload) ([]model.User, error) {
	if !c.QueryParams().Has("name") {
		return nil, errs.NewBadRequestError("Validation failed", true, nil,
			[]errs.FieldError{{Field: "name", Error: "is required"}}, nil)
	}
	return h.users.FindByName(c.Request().Context(), req.Name)
}

// UpdateUser rejects a body id that disagrees with the path id before the
// service is called.
func (h *UserHandler) UpdateUser(c echo.Context, req *model.UpdateUserPayload) (*model.User, error) {
	if !req.IDMatches() {
		return nil, service.ErrIDMismatch
	}
	return h.users.UpdateUserByID(c.Request().Context(), req.ToUser(), req.ID)
}

func (h *UserHandler) DeleteUser(c echo.Context, req *model.UserIDPayload) error {
	return h.users.DeleteUserByID(c.Request().Context(), req.ID)
}

// Routes returns the typed endpoints wrapped for Echo.
func (h *UserHandler) Routes() UserRoutes {
	return UserRoutes{
		Create: Handle(h.Handler, h.CreateUser, http.StatusCreated,
			func() *model.CreateUserPayload { return &model.CreateUserPayload{} }),
		List: Handle(h.Handler, h.ListUsers, http.StatusOK,
			func() *model.ListUsersPayload { return &model.ListUsersPayload{} }),
		Get: Handle(h.Handler, h.GetUser, http.StatusOK,
			func() *model.UserIDPayload { return &model.UserIDPayload{} }),
		Search: Handle(h.Handler, h.SearchUsers, http.StatusOK,
			func() *model.SearchUsersPayload { return &model.SearchUsersPayload{} }),
		Update: Handle(h.Handler, h.UpdateUser, http.StatusOK,
			func() *model.UpdateUserPayload { return &model.UpdateUserPayload{} }),
		Delete: HandleNoContent(h.Handler, h.DeleteUser, http.StatusOK,
			func() *model.UserIDPayload { return &model.UserIDPayload{} }),
	}
}

// UserRoutes holds one echo.HandlerFunc per user endpoint.
type UserRoutes struct {
	Create echo.HandlerFunc
	List   echo.HandlerFunc
	Get    echo.HandlerFunc
	Search echo.HandlerFunc
	Update echo.HandlerFunc
	Delete echo.HandlerFunc
}
