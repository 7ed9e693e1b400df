package services

import (
	"context"
	"errors"
	"mime/multipart"

	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/repositories"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/utils"
)

type CommentServiceInterface interface {
	CreateComment(ctx context.Context, payload dto.CreateCommentDTO, attachment *multipart.FileHeader) (uint64, error)
	GetCommentsByRequestID(ctx context.Context, requestID uint64) ([]dto.CommentDTO, error)
}

type commentService struct {
	commentRepo repositories.CommentRepositoryInterface
	requestRepo repositories.RequestRepositoryInterface
	attachments AttachmentServiceInterface
	logger      *zap.Logger
}

func NewCommentService(
	commentRepo repositories.CommentRepositoryInterface,
	requestRepo repositories.RequestRepositoryInterface,
	attachments AttachmentServiceInterface,
	logger *zap.Logger,
) CommentServiceInterface {
	return &commentService{
		commentRepo: commentRepo,
		requestRepo: requestRepo,
		attachments: attachments,
		logger:      logger,
	}
}

func (s *commentService) CreateComment(ctx context.Context, payload dto.CreateCommentDTO, attachment *multipart.FileHeader) (uint64, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return 0, err
	}

	if _, err := s.requestRepo.FindRequest(ctx, payload.RequestID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, apperrors.NewNotFoundError("заявка с id %d не найдена", payload.RequestID)
		}
		return 0, err
	}

	var attachmentID *uint64
	if attachment != nil {
		id, err := s.attachments.Upload(ctx, attachment, "comments")
		if err != nil {
			return 0, err
		}
		attachmentID = &id
	}

	newID, err := s.commentRepo.CreateComment(ctx, actorID, payload, attachmentID)
	if err != nil {
		return 0, err
	}

	s.logger.Info("комментарий создан",
		zap.Uint64("commentId", newID),
		zap.Uint64("requestId", payload.RequestID))
	return newID, nil
}

func (s *commentService) GetCommentsByRequestID(ctx context.Context, requestID uint64) ([]dto.CommentDTO, error) {
	return s.commentRepo.FindCommentsByRequestID(ctx, requestID)
}
