package services

// Фейковые репозитории в памяти для юнит-тестов сервисного слоя.

import (
	"context"
	"mime/multipart"
	"time"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/internal/repositories"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/types"
)

type fakeRequestRepo struct {
	requests map[uint64]*entities.Request
	deleted  map[uint64]bool
	nextID   uint64
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		requests: make(map[uint64]*entities.Request),
		deleted:  make(map[uint64]bool),
		nextID:   1,
	}
}

func (f *fakeRequestRepo) seed(req *entities.Request) uint64 {
	id := f.nextID
	f.nextID++
	req.ID = id
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	f.requests[id] = req
	return id
}

func (f *fakeRequestRepo) CreateRequest(_ context.Context, creatorID uint64, payload dto.CreateRequestDTO, fileID *uint64) (uint64, error) {
	return f.seed(&entities.Request{
		Header:     payload.Header,
		Text:       payload.Text,
		CreatorID:  creatorID,
		CategoryID: payload.CategoryID,
		PriorityID: payload.PriorityID,
		TypeID:     payload.TypeID,
		StatusID:   1,
		FileID:     fileID,
	}), nil
}

func (f *fakeRequestRepo) FindRequest(_ context.Context, id uint64) (*entities.Request, error) {
	req, ok := f.requests[id]
	if !ok || f.deleted[id] {
		return nil, apperrors.ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (f *fakeRequestRepo) FindRequestDetails(_ context.Context, id uint64) (*repositories.RequestDetailsRow, error) {
	req, ok := f.requests[id]
	if !ok || f.deleted[id] {
		return nil, apperrors.ErrNotFound
	}
	row := &repositories.RequestDetailsRow{Request: *req}
	row.CreatorName = "Иван"
	row.CreatorSurname = "Иванов"
	return row, nil
}

func (f *fakeRequestRepo) UpdateRequest(_ context.Context, id uint64, payload dto.UpdateRequestDTO, fileID *uint64) error {
	req, ok := f.requests[id]
	if !ok || f.deleted[id] {
		return apperrors.ErrNotFound
	}
	req.Header = payload.Header
	req.Text = payload.Text
	req.CategoryID = payload.CategoryID
	req.PriorityID = payload.PriorityID
	req.TypeID = payload.TypeID
	if fileID != nil {
		req.FileID = fileID
	}
	return nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id uint64, statusID uint64) error {
	req, ok := f.requests[id]
	if !ok || f.deleted[id] {
		return apperrors.ErrNotFound
	}
	req.StatusID = statusID
	return nil
}

func (f *fakeRequestRepo) TakeRequest(_ context.Context, id uint64, executorID uint64) (bool, error) {
	req, ok := f.requests[id]
	if !ok || f.deleted[id] || req.ExecutorID != nil {
		return false, nil
	}
	req.ExecutorID = &executorID
	req.StatusID = 2
	if req.FirstOperationDate == nil {
		now := time.Now()
		req.FirstOperationDate = &now
	}
	return true, nil
}

func (f *fakeRequestRepo) SoftDeleteRequest(_ context.Context, id uint64) error {
	if _, ok := f.requests[id]; !ok || f.deleted[id] {
		return apperrors.ErrNotFound
	}
	f.deleted[id] = true
	return nil
}

func (f *fakeRequestRepo) GetFilteredRequests(_ context.Context, _ types.ListFilter) ([]dto.OutRequestDTO, uint64, map[string]uint64, error) {
	return nil, 0, nil, nil
}

type fakeHistoryRepo struct {
	records []entities.RequestHistory
	failErr error
}

func (f *fakeHistoryRepo) CreateHistory(_ context.Context, requestID uint64, actorID uint64, action string, description string) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.records = append(f.records, entities.RequestHistory{
		RequestID:   requestID,
		ActorID:     actorID,
		Action:      action,
		Description: description,
		CreatedAt:   time.Now(),
	})
	return nil
}

func (f *fakeHistoryRepo) FindHistoryByRequestID(_ context.Context, requestID uint64) ([]dto.RequestHistoryDTO, error) {
	out := make([]dto.RequestHistoryDTO, 0)
	for _, r := range f.records {
		if r.RequestID == requestID {
			out = append(out, dto.RequestHistoryDTO{Action: r.Action, Description: r.Description})
		}
	}
	return out, nil
}

type closedReport struct {
	statusID  uint64
	closeDate time.Time
}

type fakeReportRepo struct {
	byRequest map[uint64]*dto.OutReportDTO
	closed    map[uint64]closedReport
	exportSet []dto.OutReportDTO
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{
		byRequest: make(map[uint64]*dto.OutReportDTO),
		closed:    make(map[uint64]closedReport),
	}
}

func (f *fakeReportRepo) CreateReport(_ context.Context, payload dto.CreateReportDTO) (*dto.OutReportDTO, error) {
	report := &dto.OutReportDTO{ID: 1, Routine: payload.Routine}
	if payload.RequestID.Valid {
		requestID := payload.RequestID.Uint64
		report.RequestID = &requestID
		f.byRequest[requestID] = report
	}
	return report, nil
}

func (f *fakeReportRepo) FindReportByID(_ context.Context, id uint64) (*dto.OutReportDTO, error) {
	for _, r := range f.byRequest {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeReportRepo) FindReportByRequestID(_ context.Context, requestID uint64) (*dto.OutReportDTO, error) {
	return f.byRequest[requestID], nil
}

func (f *fakeReportRepo) GetFilteredReports(_ context.Context, _ types.ListFilter) ([]dto.OutReportDTO, uint64, error) {
	return f.exportSet, uint64(len(f.exportSet)), nil
}

func (f *fakeReportRepo) FindReportsForExport(_ context.Context, _ types.ListFilter) ([]dto.OutReportDTO, error) {
	return f.exportSet, nil
}

func (f *fakeReportRepo) CloseReportByRequestID(_ context.Context, requestID uint64, statusID uint64, closeDate time.Time) error {
	if _, ok := f.byRequest[requestID]; !ok {
		return apperrors.ErrNotFound
	}
	f.closed[requestID] = closedReport{statusID: statusID, closeDate: closeDate}
	return nil
}

type fakeResponseRepo struct {
	responses    map[uint64]*dto.ResponseDTO
	knownStatus  map[uint64]bool
	nextID       uint64
	lastAuthorID uint64
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{
		responses:   make(map[uint64]*dto.ResponseDTO),
		knownStatus: map[uint64]bool{1: true, 2: true},
		nextID:      1,
	}
}

func (f *fakeResponseRepo) CreateResponse(_ context.Context, authorID uint64, payload dto.CreateResponseDTO, _ *uint64) (uint64, error) {
	id := f.nextID
	f.nextID++
	f.lastAuthorID = authorID
	f.responses[payload.RequestID] = &dto.ResponseDTO{
		ID:        id,
		Text:      payload.Text,
		RequestID: payload.RequestID,
		StatusID:  payload.StatusID,
	}
	return id, nil
}

func (f *fakeResponseRepo) FindResponseByID(_ context.Context, id uint64) (*dto.ResponseDTO, error) {
	for _, resp := range f.responses {
		if resp.ID == id {
			return resp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeResponseRepo) FindResponseByRequestID(_ context.Context, requestID uint64) (*dto.ResponseDTO, error) {
	resp, ok := f.responses[requestID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return resp, nil
}

func (f *fakeResponseRepo) UpdateResponseStatus(_ context.Context, id uint64, statusID uint64) error {
	for _, resp := range f.responses {
		if resp.ID == id {
			resp.StatusID = statusID
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeResponseRepo) SoftDeleteResponse(_ context.Context, id uint64) error {
	for requestID, resp := range f.responses {
		if resp.ID == id {
			delete(f.responses, requestID)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeResponseRepo) StatusExists(_ context.Context, statusID uint64) (bool, error) {
	return f.knownStatus[statusID], nil
}

type fakeCommentRepo struct {
	comments map[uint64][]dto.CommentDTO
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uint64][]dto.CommentDTO)}
}

func (f *fakeCommentRepo) CreateComment(_ context.Context, authorID uint64, payload dto.CreateCommentDTO, _ *uint64) (uint64, error) {
	id := uint64(len(f.comments[payload.RequestID]) + 1)
	f.comments[payload.RequestID] = append(f.comments[payload.RequestID], dto.CommentDTO{
		ID:        id,
		Text:      payload.Text,
		RequestID: payload.RequestID,
		Author:    dto.ShortUserDTO{ID: authorID},
	})
	return id, nil
}

func (f *fakeCommentRepo) FindCommentsByRequestID(_ context.Context, requestID uint64) ([]dto.CommentDTO, error) {
	out := f.comments[requestID]
	if out == nil {
		out = make([]dto.CommentDTO, 0)
	}
	return out, nil
}

type fakeAttachments struct {
	uploaded int
	removed  []uint64
	nextID   uint64
}

func (f *fakeAttachments) Upload(_ context.Context, _ *multipart.FileHeader, _ string) (uint64, error) {
	f.uploaded++
	f.nextID++
	return f.nextID, nil
}

func (f *fakeAttachments) Replace(ctx context.Context, oldFileID *uint64, file *multipart.FileHeader, prefix string) (uint64, error) {
	if oldFileID != nil {
		f.removed = append(f.removed, *oldFileID)
	}
	return f.Upload(ctx, file, prefix)
}

func (f *fakeAttachments) Fetch(_ context.Context, fileID uint64) (*entities.FileEntity, error) {
	return &entities.FileEntity{ID: fileID, FileName: "file.pdf", FilePath: "requests/file.pdf"}, nil
}

func (f *fakeAttachments) Remove(_ context.Context, fileID uint64) error {
	f.removed = append(f.removed, fileID)
	return nil
}
