package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/miwebservice/internal/database"
	"github.com/deppfellow/miwebservice/internal/model/user"
	"github.com/deppfellow/miwebservice/internal/repository"
	"github.com/deppfellow/miwebservice/internal/server"
)

type UserService struct {
	server   *server.Server
	userRepo *repository.UserRepository
}

func NewUserService(s *server.Server, userRepo *repository.UserRepository) *UserService {
	return &UserService{
		server:   s,
		userRepo: userRepo,
	}
}

// CreateUser inserts and commits, then re-reads the row for the
// store-assigned id and registration timestamp.
//
// A duplicate email surfaces as the driver's unique violation, which the
// global error handler reports as 409.
func (s *UserService) CreateUser(ctx context.Context, session *database.Session, payload *user.CreateUserRequest) (*user.Response, error) {
	logger := zerolog.Ctx(ctx)

	id, err := s.userRepo.CreateUser(ctx, session, payload)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to create user")
		return nil, err
	}

	if err := session.Commit(); err != nil {
		logger.Error().Err(err).Msg("failed to commit user")
		return nil, err
	}

	created, err := s.userRepo.GetUserByID(ctx, session, id)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", id).Msg("failed to re-read created user")
		return nil, err
	}

	logger.Info().
		Str("event", "user_created").
		Int64("user_id", id).
		Msg("User created successfully")

	resp := created.ToResponse()
	return &resp, nil
}

func (s *UserService) GetUsers(ctx context.Context, session *database.Session) ([]user.Response, error) {
	users, err := s.userRepo.GetUsers(ctx, session)
	if err != nil {
		return nil, err
	}

	responses := make([]user.Response, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	return responses, nil
}
