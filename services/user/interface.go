package user

import (
	"context"
	"errors"
	"time"

	"agendamento/database/repository"
	"agendamento/models"
	"agendamento/services/identity"
	"agendamento/utils"

	"go.uber.org/zap"
)

var (
	ErrUserExists     = errors.New("Usuário já existe na tabela 'users'.")
	ErrMissingUserID  = errors.New("Erro ao obter ID do usuário.")
	ErrUserNotFound   = errors.New("user not found")
	ErrNothingToApply = errors.New("no profile fields to update")
)

// UserService registers, authenticates and edits platform users.
type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
	Login(ctx context.Context, req models.LoginRequest) (*identity.Session, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdate) (*models.User, error)
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo     repository.RecordStore
	Identity identity.Provider
	Logger   *zap.Logger
	Now      func() time.Time
}

func (s *DefaultUserService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

func (s *DefaultUserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
