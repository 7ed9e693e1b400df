package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/internal/repositories"
	"helpdesk-system/pkg/config"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/service"
	"helpdesk-system/pkg/utils"
)

// Сколько прежних хешей проверяется при смене пароля.
const passwordHistoryDepth = 5

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AuthResponseDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	RefreshToken(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.AuthResponseDTO, error)
	ChangePassword(ctx context.Context, userID uint64, payload dto.ChangePasswordDTO) error
}

type authService struct {
	userRepo  repositories.UserRepositoryInterface
	authCache repositories.AuthCacheRepositoryInterface
	jwt       service.JWTService
	authCfg   config.AuthConfig
	logger    *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	authCache repositories.AuthCacheRepositoryInterface,
	jwt service.JWTService,
	authCfg config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &authService{
		userRepo:  userRepo,
		authCache: authCache,
		jwt:       jwt,
		authCfg:   authCfg,
		logger:    logger,
	}
}

func (s *authService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AuthResponseDTO, error) {
	passwordHash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось захешировать пароль", err)
	}

	userID, err := s.userRepo.CreateUser(ctx, payload, passwordHash)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось прочитать созданного пользователя", err)
	}

	s.logger.Info("пользователь зарегистрирован", zap.Uint64("userId", userID))
	return s.issueTokens(ctx, user)
}

// Login проверяет блокировку учётной записи, сверяет пароль и учитывает
// неудачные попытки. Превышение лимита блокирует вход на время.
func (s *authService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	locked, err := s.authCache.IsAccountLocked(ctx, payload.Email)
	if err != nil {
		return nil, apperrors.NewServiceUnavailableError("сервис авторизации временно недоступен", err)
	}
	if locked {
		return nil, apperrors.NewBadRequestError("учётная запись временно заблокирована, попробуйте позже")
	}

	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		if failErr := s.registerFailedAttempt(ctx, payload.Email); failErr != nil {
			s.logger.Warn("ошибка учёта неудачной попытки входа", zap.Error(failErr))
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.authCache.ResetLoginAttempts(ctx, payload.Email); err != nil {
		s.logger.Warn("ошибка сброса счётчика входов", zap.Error(err))
	}

	s.logger.Info("пользователь вошёл в систему", zap.Uint64("userId", user.ID))
	return s.issueTokens(ctx, user)
}

func (s *authService) registerFailedAttempt(ctx context.Context, email string) error {
	attempts, err := s.authCache.IncrementLoginAttempts(ctx, email, s.authCfg.LockoutDuration)
	if err != nil {
		return err
	}
	if attempts >= int64(s.authCfg.MaxLoginAttempts) {
		s.logger.Warn("учётная запись заблокирована после неудачных попыток входа",
			zap.String("email", email), zap.Int64("attempts", attempts))
		return s.authCache.LockAccount(ctx, email, s.authCfg.LockoutDuration)
	}
	return nil
}

func (s *authService) RefreshToken(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwt.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// ChangePassword сверяет старый пароль и отклоняет новый, если он
// совпадает с текущим или с одним из прежних.
func (s *authService) ChangePassword(ctx context.Context, userID uint64, payload dto.ChangePasswordDTO) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := utils.ComparePasswords(user.Password, payload.OldPassword); err != nil {
		return apperrors.NewBadRequestError("старый пароль указан неверно")
	}

	if utils.ComparePasswords(user.Password, payload.NewPassword) == nil {
		return apperrors.NewBadRequestError("новый пароль не должен совпадать с текущим")
	}

	history, err := s.userRepo.FindPasswordHistory(ctx, userID, passwordHistoryDepth)
	if err != nil {
		return err
	}
	for _, entry := range history {
		if utils.ComparePasswords(entry.Password, payload.NewPassword) == nil {
			return apperrors.NewBadRequestError("новый пароль уже использовался ранее")
		}
	}

	newHash, err := utils.HashPassword(payload.NewPassword)
	if err != nil {
		return apperrors.NewInternalError("не удалось захешировать пароль", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, newHash); err != nil {
		return err
	}

	s.logger.Info("пароль изменён", zap.Uint64("userId", userID))
	return nil
}

func (s *authService) issueTokens(ctx context.Context, user *entities.User) (*dto.AuthResponseDTO, error) {
	accessToken, refreshToken, err := s.jwt.GenerateTokens(user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось выпустить токены", err)
	}

	roles, err := s.userRepo.FindUserRoles(ctx, user.ID)
	if err != nil {
		s.logger.Warn("не удалось прочитать роли пользователя", zap.Uint64("userId", user.ID), zap.Error(err))
	}

	return &dto.AuthResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         buildUserDTO(user, roles),
	}, nil
}

func buildUserDTO(user *entities.User, roles []string) dto.UserDTO {
	return dto.UserDTO{
		ID:             user.ID,
		Name:           user.Name,
		Surname:        user.Surname,
		Email:          user.Email,
		Position:       user.Position,
		Roles:          roles,
		ProfilePhotoID: user.ProfilePhotoID,
		CreatedAt:      user.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
