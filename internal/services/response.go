package services

import (
	"context"
	"errors"
	"mime/multipart"

	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/repositories"
	"helpdesk-system/pkg/constants"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/utils"
)

type ResponseServiceInterface interface {
	CreateResponse(ctx context.Context, payload dto.CreateResponseDTO, file *multipart.FileHeader) (uint64, error)
	GetResponseByRequestID(ctx context.Context, requestID uint64) (*dto.ResponseDTO, error)
	ChangeResponseStatus(ctx context.Context, id uint64, statusID uint64) error
	DeleteResponse(ctx context.Context, id uint64) error
}

type responseService struct {
	responseRepo repositories.ResponseRepositoryInterface
	requestRepo  repositories.RequestRepositoryInterface
	history      RequestHistoryServiceInterface
	attachments  AttachmentServiceInterface
	logger       *zap.Logger
}

func NewResponseService(
	responseRepo repositories.ResponseRepositoryInterface,
	requestRepo repositories.RequestRepositoryInterface,
	history RequestHistoryServiceInterface,
	attachments AttachmentServiceInterface,
	logger *zap.Logger,
) ResponseServiceInterface {
	return &responseService{
		responseRepo: responseRepo,
		requestRepo:  requestRepo,
		history:      history,
		attachments:  attachments,
		logger:       logger,
	}
}

// CreateResponse создаёт официальный ответ на заявку. Новая заявка при
// этом переходит в статус "Завершена".
func (s *responseService) CreateResponse(ctx context.Context, payload dto.CreateResponseDTO, file *multipart.FileHeader) (uint64, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return 0, err
	}

	request, err := s.requestRepo.FindRequest(ctx, payload.RequestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, apperrors.NewNotFoundError("заявка с id %d не найдена", payload.RequestID)
		}
		return 0, err
	}

	statusExists, err := s.responseRepo.StatusExists(ctx, payload.StatusID)
	if err != nil {
		return 0, err
	}
	if !statusExists {
		return 0, apperrors.NewBadRequestError("статус ответа с id %d не существует", payload.StatusID)
	}

	var fileID *uint64
	if file != nil {
		id, err := s.attachments.Upload(ctx, file, "responses")
		if err != nil {
			return 0, err
		}
		fileID = &id
	}

	newID, err := s.responseRepo.CreateResponse(ctx, actorID, payload, fileID)
	if err != nil {
		return 0, err
	}

	if request.StatusID == constants.RequestStatusNew {
		if err := s.requestRepo.UpdateStatus(ctx, payload.RequestID, constants.RequestStatusCompleted); err != nil {
			return 0, apperrors.NewInternalError("ответ создан, но смена статуса заявки не удалась", err)
		}
		label := transitionLabel(request.StatusID, constants.RequestStatusCompleted)
		if err := s.history.Record(ctx, payload.RequestID, actorID, historyActionStatusChange, label); err != nil {
			return 0, apperrors.NewInternalError("ответ создан, но запись истории не удалась", err)
		}
	}

	s.logger.Info("ответ на заявку создан",
		zap.Uint64("responseId", newID),
		zap.Uint64("requestId", payload.RequestID))
	return newID, nil
}

func (s *responseService) ChangeResponseStatus(ctx context.Context, id uint64, statusID uint64) error {
	statusExists, err := s.responseRepo.StatusExists(ctx, statusID)
	if err != nil {
		return err
	}
	if !statusExists {
		return apperrors.NewBadRequestError("статус ответа с id %d не существует", statusID)
	}

	if err := s.responseRepo.UpdateResponseStatus(ctx, id, statusID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("ответ с id %d не найден", id)
		}
		return err
	}

	s.logger.Info("статус ответа изменён", zap.Uint64("responseId", id), zap.Uint64("statusId", statusID))
	return nil
}

// DeleteResponse мягко удаляет ответ вместе с его файлом.
func (s *responseService) DeleteResponse(ctx context.Context, id uint64) error {
	response, err := s.responseRepo.FindResponseByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("ответ с id %d не найден", id)
		}
		return err
	}

	if err := s.responseRepo.SoftDeleteResponse(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("ответ с id %d не найден", id)
		}
		return err
	}

	if response.File != nil {
		if err := s.attachments.Remove(ctx, response.File.ID); err != nil {
			s.logger.Warn("не удалось удалить файл ответа", zap.Uint64("fileId", response.File.ID), zap.Error(err))
		}
	}

	s.logger.Info("ответ удалён", zap.Uint64("responseId", id), zap.Uint64("requestId", response.RequestID))
	return nil
}

func (s *responseService) GetResponseByRequestID(ctx context.Context, requestID uint64) (*dto.ResponseDTO, error) {
	response, err := s.responseRepo.FindResponseByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("ответ на заявку %d не найден", requestID)
		}
		return nil, err
	}
	return response, nil
}
