package service

import (
	"github.com/deppfellow/user-service/internal/repository"
	"github.com/deppfellow/user-service/internal/server"
)

type Services struct {
	User *UserService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var events EventPublisher
	if s.Job != nil {
		events = s.Job
	}

	return &Services{
		User: NewUserService(s.Logger, repos.User, events),
	}, nil
}
