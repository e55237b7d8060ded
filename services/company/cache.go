package company

import (
	"context"
	"errors"

	"agendamento/models"
	"agendamento/utils"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func servicesCacheKey(companyID string) string {
	return utils.CompanyServicesCachePrefix + companyID
}

// cachedServices reports a hit only when a valid entry was read. Cache errors are logged and treated as a miss.
func (s *DefaultCompanyService) cachedServices(ctx context.Context, companyID string) ([]models.Service, bool) {
	if s.Cache == nil {
		return nil, false
	}
	data, err := s.Cache.Get(ctx, servicesCacheKey(companyID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger().Warn("Failed to read services cache", zap.String("company_id", companyID), zap.Error(err))
		}
		return nil, false
	}
	var services []models.Service
	if err := json.Unmarshal(data, &services); err != nil {
		s.logger().Warn("Failed to decode services cache", zap.String("company_id", companyID), zap.Error(err))
		return nil, false
	}
	return services, true
}

func (s *DefaultCompanyService) cacheServices(ctx context.Context, companyID string, services []models.Service) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(services)
	if err != nil {
		s.logger().Warn("Failed to encode services cache", zap.String("company_id", companyID), zap.Error(err))
		return
	}
	if err := s.Cache.Set(ctx, servicesCacheKey(companyID), data, s.CacheTTL).Err(); err != nil {
		s.logger().Warn("Failed to write services cache", zap.String("company_id", companyID), zap.Error(err))
	}
}

func (s *DefaultCompanyService) invalidateServices(ctx context.Context, companyID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, servicesCacheKey(companyID)).Err(); err != nil {
		s.logger().Warn("Failed to invalidate services cache", zap.String("company_id", companyID), zap.Error(err))
	}
}
