package service

import (
	"github.com/deppfellow/miwebservice/internal/repository"
	"github.com/deppfellow/miwebservice/internal/server"
)

type Services struct {
	Product *ProductService
	User    *UserService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Product: NewProductService(s, repos.Product),
		User:    NewUserService(s, repos.User),
	}
}
