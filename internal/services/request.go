package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/repositories"
	"helpdesk-system/pkg/constants"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/types"
	"helpdesk-system/pkg/utils"
)

// Секции карточки заявки. Каждая секция догружает свою часть поверх
// общего гидрированного вида.
const (
	SectionRequest     = "request"
	SectionComment     = "comment"
	SectionHistory     = "history"
	SectionRequestInfo = "requestinfo"
)

const historyActionStatusChange = "Изменение статуса"

// Подменяется в тестах.
var timeNow = time.Now

type RequestServiceInterface interface {
	CreateRequest(ctx context.Context, payload dto.CreateRequestDTO, file *multipart.FileHeader) (*dto.RequestDetailsDTO, error)
	UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateRequestDTO, file *multipart.FileHeader) error
	DeleteRequest(ctx context.Context, id uint64) error
	ChangeStatus(ctx context.Context, id uint64, statusID uint64) error
	TakeRequest(ctx context.Context, id uint64) error
	GetRequestBySection(ctx context.Context, id uint64, section string) (*dto.RequestDetailsDTO, error)
	GetFilteredRequests(ctx context.Context, filter types.ListFilter) (*dto.FilteredRequestsDTO, error)
}

type requestService struct {
	requestRepo  repositories.RequestRepositoryInterface
	responseRepo repositories.ResponseRepositoryInterface
	commentRepo  repositories.CommentRepositoryInterface
	reportRepo   repositories.ReportRepositoryInterface
	history      RequestHistoryServiceInterface
	attachments  AttachmentServiceInterface
	logger       *zap.Logger
}

func NewRequestService(
	requestRepo repositories.RequestRepositoryInterface,
	responseRepo repositories.ResponseRepositoryInterface,
	commentRepo repositories.CommentRepositoryInterface,
	reportRepo repositories.ReportRepositoryInterface,
	history RequestHistoryServiceInterface,
	attachments AttachmentServiceInterface,
	logger *zap.Logger,
) RequestServiceInterface {
	return &requestService{
		requestRepo:  requestRepo,
		responseRepo: responseRepo,
		commentRepo:  commentRepo,
		reportRepo:   reportRepo,
		history:      history,
		attachments:  attachments,
		logger:       logger,
	}
}

func (s *requestService) CreateRequest(ctx context.Context, payload dto.CreateRequestDTO, file *multipart.FileHeader) (*dto.RequestDetailsDTO, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	var fileID *uint64
	if file != nil {
		id, err := s.attachments.Upload(ctx, file, "requests")
		if err != nil {
			return nil, err
		}
		fileID = &id
	}

	newID, err := s.requestRepo.CreateRequest(ctx, payload.UserID, payload, fileID)
	if err != nil {
		return nil, err
	}

	// Запись истории приписывается заявителю, а не актору: заявку могли
	// создать от чужого имени.
	if err := s.history.Record(ctx, newID, payload.UserID, "Создание заявки", "Создал новую заявку"); err != nil {
		return nil, apperrors.NewInternalError("заявка создана, но запись истории не удалась", err)
	}

	row, err := s.requestRepo.FindRequestDetails(ctx, newID)
	if err != nil {
		return nil, apperrors.NewInternalError("заявка создана, но не удалось прочитать её карточку", err)
	}
	details := s.buildDetails(row)
	s.resolveAttachment(ctx, details, row.FileID)

	s.logger.Info("заявка создана", zap.Uint64("requestId", newID), zap.Uint64("actorId", actorID))
	return details, nil
}

func (s *requestService) UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateRequestDTO, file *multipart.FileHeader) error {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	current, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("заявка с id %d не найдена", id)
		}
		return err
	}

	var fileID *uint64
	if file != nil {
		newFileID, err := s.attachments.Replace(ctx, current.FileID, file, "requests")
		if err != nil {
			return err
		}
		fileID = &newFileID
	}

	changed := make([]string, 0, 6)
	if current.Header != payload.Header {
		changed = append(changed, "заголовок")
	}
	if current.Text != payload.Text {
		changed = append(changed, "текст")
	}
	if current.CategoryID != payload.CategoryID {
		changed = append(changed, "категорию")
	}
	if current.PriorityID != payload.PriorityID {
		changed = append(changed, "приоритет")
	}
	if current.TypeID != payload.TypeID {
		changed = append(changed, "тип")
	}
	if fileID != nil {
		changed = append(changed, "вложение")
	}

	// Ничего не поменялось: не трогаем ни заявку, ни историю.
	if len(changed) == 0 {
		return nil
	}

	if err := s.requestRepo.UpdateRequest(ctx, id, payload, fileID); err != nil {
		return err
	}

	description := "Изменил: " + strings.Join(changed, ", ")
	if err := s.history.Record(ctx, id, actorID, "Изменение заявки", description); err != nil {
		return apperrors.NewInternalError("заявка обновлена, но запись истории не удалась", err)
	}
	return nil
}

// DeleteRequest мягко удаляет заявку вместе с ответом и файлом.
// Комментарии и история остаются для аудита.
func (s *requestService) DeleteRequest(ctx context.Context, id uint64) error {
	if err := s.requestRepo.SoftDeleteRequest(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("заявка с id %d не найдена", id)
		}
		return err
	}
	s.logger.Info("заявка удалена", zap.Uint64("requestId", id))
	return nil
}

// transitionLabel возвращает текст записи истории для перехода статусов.
func transitionLabel(oldStatusID, newStatusID uint64) string {
	switch newStatusID {
	case constants.RequestStatusInProgress:
		if oldStatusID == constants.RequestStatusNew {
			return "взял заявку в работу"
		}
		return "принял заявку к исполнению"
	case constants.RequestStatusClosed:
		return "закрыл заявку"
	case constants.RequestStatusOnHold:
		return "поставил заявку на ожидание"
	case constants.RequestStatusDenied:
		return "отклонил заявку"
	case constants.RequestStatusNew:
		return "переоткрыл заявку"
	default:
		return "принял заявку к исполнению"
	}
}

// ChangeStatus переводит заявку в новый статус, закрывает связанный отчёт
// при закрытии заявки и пишет запись истории. Сбои после смены статуса
// возвращаются как внутренняя ошибка.
func (s *requestService) ChangeStatus(ctx context.Context, id uint64, statusID uint64) error {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	current, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("заявка с id %d не найдена", id)
		}
		return err
	}

	if err := s.requestRepo.UpdateStatus(ctx, id, statusID); err != nil {
		return err
	}

	if statusID == constants.RequestStatusClosed {
		err := s.reportRepo.CloseReportByRequestID(ctx, id, statusID, timeNow())
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewInternalError("статус изменён, но закрытие отчёта не удалось", err)
		}
	}

	label := transitionLabel(current.StatusID, statusID)
	if err := s.history.Record(ctx, id, actorID, historyActionStatusChange, label); err != nil {
		return apperrors.NewInternalError("статус изменён, но запись истории не удалась", err)
	}

	s.logger.Info("статус заявки изменён",
		zap.Uint64("requestId", id),
		zap.Uint64("oldStatusId", current.StatusID),
		zap.Uint64("newStatusId", statusID))
	return nil
}

// TakeRequest назначает текущего пользователя исполнителем. Претензия
// решается атомарным условным UPDATE в репозитории, так что при гонке
// двух исполнителей заявку получает ровно один.
func (s *requestService) TakeRequest(ctx context.Context, id uint64) error {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	current, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("заявка с id %d не найдена", id)
		}
		return err
	}
	if current.ExecutorID != nil {
		return apperrors.NewBadRequestError("заявка уже взята другим исполнителем")
	}

	taken, err := s.requestRepo.TakeRequest(ctx, id, actorID)
	if err != nil {
		return err
	}
	if !taken {
		return apperrors.NewBadRequestError("заявка уже взята другим исполнителем")
	}

	if err := s.history.Record(ctx, id, actorID, historyActionStatusChange, "взял заявку в работу"); err != nil {
		return apperrors.NewInternalError("заявка взята в работу, но запись истории не удалась", err)
	}

	s.logger.Info("заявка взята в работу", zap.Uint64("requestId", id), zap.Uint64("executorId", actorID))
	return nil
}

func (s *requestService) GetRequestBySection(ctx context.Context, id uint64, section string) (*dto.RequestDetailsDTO, error) {
	row, err := s.requestRepo.FindRequestDetails(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("заявка с id %d не найдена", id)
		}
		return nil, err
	}

	details := s.buildDetails(row)
	s.resolveAttachment(ctx, details, row.FileID)

	loadResponse := false
	loadComments := false
	loadHistory := false
	switch section {
	case SectionRequest:
		loadResponse = true
	case SectionComment:
		loadComments = true
	case SectionHistory:
		loadHistory = true
	case SectionRequestInfo:
	default:
		loadResponse, loadComments, loadHistory = true, true, true
	}

	if loadResponse {
		response, err := s.responseRepo.FindResponseByRequestID(ctx, id)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		details.Response = response
	}
	if loadComments {
		comments, err := s.commentRepo.FindCommentsByRequestID(ctx, id)
		if err != nil {
			return nil, err
		}
		details.Comments = comments
	}
	if loadHistory {
		history, err := s.history.GetHistory(ctx, id)
		if err != nil {
			return nil, err
		}
		details.History = history
	}

	return details, nil
}

// resolveAttachment дополняет карточку именем и ссылкой файла. Сбой
// хранилища не срывает выдачу карточки, но логируется.
func (s *requestService) resolveAttachment(ctx context.Context, details *dto.RequestDetailsDTO, fileID *uint64) {
	if fileID == nil {
		return
	}
	file, err := s.attachments.Fetch(ctx, *fileID)
	if err != nil {
		s.logger.Warn("не удалось получить файл заявки", zap.Uint64("fileId", *fileID), zap.Error(err))
		return
	}
	details.File = &dto.ShortFileDTO{ID: file.ID, FileName: file.FileName, URL: file.FilePath}
}

func (s *requestService) buildDetails(row *repositories.RequestDetailsRow) *dto.RequestDetailsDTO {
	details := &dto.RequestDetailsDTO{
		ID:              row.ID,
		Header:          row.Header,
		Text:            row.Text,
		StatusID:        row.StatusID,
		StatusName:      utils.NullStringToString(row.StatusName),
		CategoryID:      row.CategoryID,
		CategoryName:    utils.NullStringToString(row.CategoryName),
		PriorityID:      row.PriorityID,
		PriorityLevel:   utils.NullStringToString(row.PriorityLevel),
		TypeID:          row.TypeID,
		RequestTypeName: utils.NullStringToString(row.RequestTypeName),
		Creator: dto.ShortUserDTO{
			ID:      row.CreatorID,
			Name:    row.CreatorName,
			Surname: row.CreatorSurname,
		},
		CreatedAt: row.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if row.ExecutorID != nil {
		details.Executor = &dto.ShortUserDTO{
			ID:      *row.ExecutorID,
			Name:    utils.NullStringToString(row.ExecutorName),
			Surname: utils.NullStringToString(row.ExecutorSurname),
		}
	}
	if row.FirstOperationDate != nil {
		details.FirstOperationDate = row.FirstOperationDate.Format("2006-01-02 15:04:05")
	}
	if row.FileID != nil {
		details.File = &dto.ShortFileDTO{ID: *row.FileID}
	}
	return details
}

func (s *requestService) GetFilteredRequests(ctx context.Context, filter types.ListFilter) (*dto.FilteredRequestsDTO, error) {
	items, total, statusCounts, err := s.requestRepo.GetFilteredRequests(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.FilteredRequestsDTO{
		Items:        items,
		TotalCount:   total,
		StatusCounts: statusCounts,
	}, nil
}
