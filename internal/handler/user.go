package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/miwebservice/internal/middleware"
	"github.com/deppfellow/miwebservice/internal/model"
	"github.com/deppfellow/miwebservice/internal/model/user"
	"github.com/deppfellow/miwebservice/internal/server"
	"github.com/deppfellow/miwebservice/internal/service"
)

type UserHandler struct {
	Handler
	userService *service.UserService
}

func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

func (h *UserHandler) CreateUser(c echo.Context, payload *user.CreateUserRequest) (*user.Response, error) {
	return h.userService.CreateUser(c.Request().Context(), middleware.GetSession(c), payload)
}

func (h *UserHandler) GetUsers(c echo.Context, _ *model.EmptyRequest) ([]user.Response, error) {
	return h.userService.GetUsers(c.Request().Context(), middleware.GetSession(c))
}
