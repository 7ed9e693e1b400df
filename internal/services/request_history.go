package services

import (
	"context"

	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/repositories"
)

// RequestHistoryServiceInterface пишет и читает журнал действий по заявке.
// Записи добавляются синхронно, в том же вызове, что и само действие.
type RequestHistoryServiceInterface interface {
	Record(ctx context.Context, requestID uint64, actorID uint64, action string, description string) error
	GetHistory(ctx context.Context, requestID uint64) ([]dto.RequestHistoryDTO, error)
}

type requestHistoryService struct {
	historyRepo repositories.RequestHistoryRepositoryInterface
	logger      *zap.Logger
}

func NewRequestHistoryService(
	historyRepo repositories.RequestHistoryRepositoryInterface,
	logger *zap.Logger,
) RequestHistoryServiceInterface {
	return &requestHistoryService{historyRepo: historyRepo, logger: logger}
}

func (s *requestHistoryService) Record(ctx context.Context, requestID uint64, actorID uint64, action string, description string) error {
	if err := s.historyRepo.CreateHistory(ctx, requestID, actorID, action, description); err != nil {
		s.logger.Error("ошибка записи истории заявки",
			zap.Uint64("requestId", requestID),
			zap.String("action", action),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *requestHistoryService) GetHistory(ctx context.Context, requestID uint64) ([]dto.RequestHistoryDTO, error) {
	return s.historyRepo.FindHistoryByRequestID(ctx, requestID)
}
