package company

import (
	"context"
	"errors"
	"time"

	"agendamento/database/repository"
	"agendamento/models"
	"agendamento/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	ErrCompanyNotFound  = errors.New("company not found")
	ErrNotCompanyOwner  = errors.New("only the company owner can manage its services")
	ErrMissingCompanyID = errors.New("missing company id")
)

// CompanyService registers companies and the services they offer.
type CompanyService interface {
	RegisterCompany(ctx context.Context, ownerID string, req models.CompanyRequest) (*models.Company, error)
	AddService(ctx context.Context, ownerID, companyID string, req models.ServiceRequest) (*models.Service, error)
	ListServices(ctx context.Context, companyID string) ([]models.Service, error)
}

// DefaultCompanyService implements CompanyService. Cache may be nil, which disables caching.
type DefaultCompanyService struct {
	Repo     repository.RecordStore
	Cache    *redis.Client
	CacheTTL time.Duration
	Logger   *zap.Logger
	Now      func() time.Time
}

func (s *DefaultCompanyService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

func (s *DefaultCompanyService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
