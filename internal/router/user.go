package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/miwebservice/internal/handler"
	"github.com/deppfellow/miwebservice/internal/middleware"
)

func registerUserRoutes(api *echo.Group, h *handler.Handlers, session *middleware.SessionMiddleware) {
	users := api.Group("/usuarios")
	withSession := session.Session()

	users.GET("", handler.Handle(h.User.GetUsers, http.StatusOK), withSession)
	users.POST("", handler.Handle(h.User.CreateUser, http.StatusCreated), withSession)
}
