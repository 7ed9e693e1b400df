package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/repositories"
	apperrors "helpdesk-system/pkg/errors"
)

type UserServiceInterface interface {
	GetProfile(ctx context.Context, userID uint64) (*dto.UserDTO, error)
}

type userService struct {
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewUserService(userRepo repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &userService{userRepo: userRepo, logger: logger}
}

func (s *userService) GetProfile(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("пользователь с id %d не найден", userID)
		}
		return nil, err
	}

	roles, err := s.userRepo.FindUserRoles(ctx, userID)
	if err != nil {
		s.logger.Warn("не удалось прочитать роли пользователя", zap.Uint64("userId", userID), zap.Error(err))
	}

	out := buildUserDTO(user, roles)
	return &out, nil
}
