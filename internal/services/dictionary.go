package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/repositories"
	apperrors "helpdesk-system/pkg/errors"
)

// DictionaryServiceInterface обслуживает справочники (категории, статусы,
// приоритеты, типы заявок) единым набором операций.
type DictionaryServiceInterface interface {
	GetAll(ctx context.Context) ([]dto.LookupDTO, error)
	GetByID(ctx context.Context, id uint64) (*dto.LookupDTO, error)
	Create(ctx context.Context, payload dto.CreateLookupDTO) (*dto.LookupDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateLookupDTO) error
	Delete(ctx context.Context, id uint64) error
}

type dictionaryService struct {
	repo   repositories.DictionaryRepositoryInterface
	name   string
	logger *zap.Logger
}

// NewDictionaryService: name — человекочитаемое имя справочника для
// сообщений об ошибках ("категория", "приоритет" и т.д.).
func NewDictionaryService(repo repositories.DictionaryRepositoryInterface, name string, logger *zap.Logger) DictionaryServiceInterface {
	return &dictionaryService{repo: repo, name: name, logger: logger}
}

func (s *dictionaryService) GetAll(ctx context.Context) ([]dto.LookupDTO, error) {
	return s.repo.GetAll(ctx)
}

func (s *dictionaryService) GetByID(ctx context.Context, id uint64) (*dto.LookupDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("%s с id %d не найдена", s.name, id)
		}
		return nil, err
	}
	return item, nil
}

func (s *dictionaryService) Create(ctx context.Context, payload dto.CreateLookupDTO) (*dto.LookupDTO, error) {
	newID, err := s.repo.Create(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("запись справочника создана", zap.String("dictionary", s.name), zap.Uint64("id", newID))
	return &dto.LookupDTO{ID: newID, Name: payload.Name}, nil
}

func (s *dictionaryService) Update(ctx context.Context, id uint64, payload dto.UpdateLookupDTO) error {
	if err := s.repo.Update(ctx, id, payload); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("%s с id %d не найдена", s.name, id)
		}
		return err
	}
	return nil
}

func (s *dictionaryService) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("%s с id %d не найдена", s.name, id)
		}
		return err
	}
	return nil
}
