package router

import (
	"github.com/deppfellow/user-service/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerUserRoutes(r *echo.Echo, h *handler.Handlers) {
	routes := h.User.Routes()

	users := r.Group("/users")
	users.POST("", routes.Create)
	users.GET("", routes.List)
	users.GET("/search", routes.Search)
	users.GET("/:id", routes.Get)
	users.PUT("/:id", routes.Update)
	users.DELETE("/:id", routes.Delete)
}
