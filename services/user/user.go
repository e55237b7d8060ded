package user

import (
	"context"
	"fmt"
	"strings"

	"agendamento/database/repository"
	"agendamento/models"
	"agendamento/services/identity"
	"agendamento/utils"

	"go.uber.org/zap"
)

// Register creates the platform identity and then the matching users row.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := utils.ValidateStruct(req); err != nil {
		return "", err
	}

	userID, err := s.Identity.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		s.logger().Warn("Register: sign-up rejected", zap.String("email", req.Email), zap.Error(err))
		return "", err
	}
	if userID == "" {
		return "", ErrMissingUserID
	}

	existing, err := s.Repo.Select(ctx, repository.TableUsers, repository.Filter{"id": userID})
	if err != nil {
		s.logger().Error("Register: failed to check for existing user", zap.String("user_id", userID), zap.Error(err))
		return "", fmt.Errorf("failed to check for existing user: %w", err)
	}
	if len(existing) > 0 {
		return "", ErrUserExists
	}

	_, err = s.Repo.Insert(ctx, repository.TableUsers, []repository.Row{{
		"id":         userID,
		"name":       req.Name,
		"phone":      req.Phone,
		"email":      req.Email,
		"created_at": s.now(),
	}})
	if err != nil {
		s.logger().Error("Register: failed to create user", zap.String("user_id", userID), zap.Error(err))
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	s.logger().Info("User registered", zap.String("user_id", userID))
	return userID, nil
}

// Login is a pass-through to the identity provider.
func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*identity.Session, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	session, err := s.Identity.SignIn(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		s.logger().Warn("Login: sign-in rejected", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}
	return session, nil
}

func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	rows, err := s.Repo.Select(ctx, repository.TableUsers, repository.Filter{"id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", userID, err)
	}
	if len(rows) == 0 {
		return nil, ErrUserNotFound
	}
	u := models.UserFromRow(rows[0])
	return &u, nil
}

// UpdateProfile applies the non-nil fields of req. E-mail belongs to the identity provider and is not editable here.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdate) (*models.User, error) {
	fields := repository.Row{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, &utils.ValidationError{Fields: []string{"name"}, Message: "missing required fields: name"}
		}
		fields["name"] = name
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if len(fields) == 0 {
		return nil, &utils.ValidationError{Message: ErrNothingToApply.Error(), Err: ErrNothingToApply}
	}
	fields["updated_at"] = s.now()

	n, err := s.Repo.Update(ctx, repository.TableUsers, repository.Filter{"id": userID}, fields)
	if err != nil {
		s.logger().Error("UpdateProfile: failed to update user", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to update user with id %s: %w", userID, err)
	}
	if n == 0 {
		return nil, ErrUserNotFound
	}
	return s.GetProfile(ctx, userID)
}
