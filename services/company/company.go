package company

import (
	"context"
	"fmt"
	"strings"

	"agendamento/database/repository"
	"agendamento/models"
	"agendamento/utils"

	"go.uber.org/zap"
)

func (s *DefaultCompanyService) RegisterCompany(ctx context.Context, ownerID string, req models.CompanyRequest) (*models.Company, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	rows, err := s.Repo.Insert(ctx, repository.TableCompanies, []repository.Row{{
		"owner_id":   ownerID,
		"name":       req.Name,
		"document":   req.Document,
		"phone":      req.Phone,
		"email":      req.Email,
		"address":    req.Address,
		"category":   req.Category,
		"created_at": s.now(),
	}})
	if err != nil {
		s.logger().Error("RegisterCompany: failed to create company", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to create company: store returned no row")
	}

	c := models.CompanyFromRow(rows[0])
	s.logger().Info("Company registered", zap.String("company_id", c.ID), zap.String("owner_id", ownerID))
	return &c, nil
}

// AddService creates a service under companyID. Only the company's owner may add services.
func (s *DefaultCompanyService) AddService(ctx context.Context, ownerID, companyID string, req models.ServiceRequest) (*models.Service, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	company, err := s.getCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerID != ownerID {
		s.logger().Warn("AddService: caller does not own company",
			zap.String("company_id", companyID),
			zap.String("caller_id", ownerID),
		)
		return nil, ErrNotCompanyOwner
	}

	rows, err := s.Repo.Insert(ctx, repository.TableServices, []repository.Row{{
		"company_id":       company.ID,
		"name":             req.Name,
		"description":      req.Description,
		"price":            req.Price,
		"duration_minutes": req.DurationMinutes,
		"created_at":       s.now(),
	}})
	if err != nil {
		s.logger().Error("AddService: failed to create service", zap.String("company_id", companyID), zap.Error(err))
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to create service: store returned no row")
	}

	s.invalidateServices(ctx, company.ID)
	svc := models.ServiceFromRow(rows[0])
	s.logger().Info("Service added", zap.String("company_id", company.ID), zap.String("service_id", svc.ID))
	return &svc, nil
}

// ListServices returns a company's services, served from the cache when possible.
func (s *DefaultCompanyService) ListServices(ctx context.Context, companyID string) ([]models.Service, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return nil, ErrMissingCompanyID
	}
	if cached, ok := s.cachedServices(ctx, companyID); ok {
		return cached, nil
	}

	if _, err := s.getCompany(ctx, companyID); err != nil {
		return nil, err
	}
	rows, err := s.Repo.Select(ctx, repository.TableServices, repository.Filter{"company_id": companyID})
	if err != nil {
		s.logger().Error("ListServices: failed to fetch services", zap.String("company_id", companyID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}
	services := make([]models.Service, 0, len(rows))
	for _, row := range rows {
		services = append(services, models.ServiceFromRow(row))
	}

	s.cacheServices(ctx, companyID, services)
	return services, nil
}

func (s *DefaultCompanyService) getCompany(ctx context.Context, companyID string) (*models.Company, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return nil, ErrMissingCompanyID
	}
	rows, err := s.Repo.Select(ctx, repository.TableCompanies, repository.Filter{"id": companyID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch company with id %s: %w", companyID, err)
	}
	if len(rows) == 0 {
		return nil, ErrCompanyNotFound
	}
	c := models.CompanyFromRow(rows[0])
	return &c, nil
}
