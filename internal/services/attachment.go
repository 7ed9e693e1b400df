package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"go.uber.org/zap"

	"helpdesk-system/internal/entities"
	"helpdesk-system/internal/repositories"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/filestorage"
)

// AttachmentServiceInterface — единая точка работы с вложениями: физическое
// хранилище плюс метаданные в БД. Остальные сервисы оперируют только
// идентификатором файла.
type AttachmentServiceInterface interface {
	Upload(ctx context.Context, file *multipart.FileHeader, prefix string) (uint64, error)
	Replace(ctx context.Context, oldFileID *uint64, file *multipart.FileHeader, prefix string) (uint64, error)
	Fetch(ctx context.Context, fileID uint64) (*entities.FileEntity, error)
	Remove(ctx context.Context, fileID uint64) error
}

type attachmentService struct {
	fileRepo repositories.FileRepositoryInterface
	storage  filestorage.FileStorageInterface
	logger   *zap.Logger
}

func NewAttachmentService(
	fileRepo repositories.FileRepositoryInterface,
	storage filestorage.FileStorageInterface,
	logger *zap.Logger,
) AttachmentServiceInterface {
	return &attachmentService{
		fileRepo: fileRepo,
		storage:  storage,
		logger:   logger,
	}
}

func (s *attachmentService) Upload(ctx context.Context, file *multipart.FileHeader, prefix string) (uint64, error) {
	src, err := file.Open()
	if err != nil {
		return 0, fmt.Errorf("не удалось открыть загружаемый файл: %w", err)
	}
	defer src.Close()

	filePath, err := s.storage.Save(src, file.Filename, prefix)
	if err != nil {
		return 0, apperrors.NewServiceUnavailableError("файловое хранилище временно недоступно", err)
	}

	fileID, err := s.fileRepo.CreateFile(ctx, file.Filename, filePath)
	if err != nil {
		// Метаданные не записались, подчищаем осиротевший файл.
		if delErr := s.storage.Delete(filePath); delErr != nil {
			s.logger.Warn("не удалось удалить осиротевший файл", zap.String("path", filePath), zap.Error(delErr))
		}
		return 0, err
	}

	s.logger.Info("файл загружен", zap.Uint64("fileId", fileID), zap.String("path", filePath))
	return fileID, nil
}

// Replace удаляет прежний файл и загружает новый. Удаление старого
// файла best-effort: его сбой не срывает замену.
func (s *attachmentService) Replace(ctx context.Context, oldFileID *uint64, file *multipart.FileHeader, prefix string) (uint64, error) {
	if oldFileID != nil {
		if err := s.Remove(ctx, *oldFileID); err != nil {
			s.logger.Warn("не удалось удалить заменённый файл", zap.Uint64("fileId", *oldFileID), zap.Error(err))
		}
	}
	return s.Upload(ctx, file, prefix)
}

func (s *attachmentService) Fetch(ctx context.Context, fileID uint64) (*entities.FileEntity, error) {
	return s.fileRepo.FindFileByID(ctx, fileID)
}

func (s *attachmentService) Remove(ctx context.Context, fileID uint64) error {
	file, err := s.fileRepo.FindFileByID(ctx, fileID)
	if err != nil {
		return err
	}
	if err := s.fileRepo.SoftDeleteFile(ctx, fileID); err != nil {
		return err
	}
	if err := s.storage.Delete(file.FilePath); err != nil {
		s.logger.Warn("не удалось удалить файл с диска", zap.String("path", file.FilePath), zap.Error(err))
	}
	return nil
}
