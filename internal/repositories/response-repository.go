package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"helpdesk-system/internal/dto"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/utils"
)

type ResponseRepositoryInterface interface {
	CreateResponse(ctx context.Context, authorID uint64, payload dto.CreateResponseDTO, fileID *uint64) (uint64, error)
	FindResponseByID(ctx context.Context, id uint64) (*dto.ResponseDTO, error)
	FindResponseByRequestID(ctx context.Context, requestID uint64) (*dto.ResponseDTO, error)
	UpdateResponseStatus(ctx context.Context, id uint64, statusID uint64) error
	SoftDeleteResponse(ctx context.Context, id uint64) error
	StatusExists(ctx context.Context, statusID uint64) (bool, error)
}

type responseRepository struct {
	storage *pgxpool.Pool
}

func NewResponseRepository(storage *pgxpool.Pool) ResponseRepositoryInterface {
	return &responseRepository{storage: storage}
}

func (r *responseRepository) CreateResponse(ctx context.Context, authorID uint64, payload dto.CreateResponseDTO, fileID *uint64) (uint64, error) {
	query := `
		INSERT INTO responses (text, request_id, status_id, author_id, file_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id`

	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		payload.Text, payload.RequestID, payload.StatusID, authorID, fileID,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания ответа: %w", err)
	}
	return newID, nil
}

const responseSelect = `
	SELECT resp.id, resp.text, resp.request_id, resp.status_id,
	       rs.name,
	       author.id, author.name, author.surname,
	       resp.file_id, f.file_name, f.file_path,
	       resp.created_at
	FROM responses resp
	JOIN users author ON resp.author_id = author.id
	LEFT JOIN resp_statuses rs ON resp.status_id = rs.id
	LEFT JOIN files f ON resp.file_id = f.id`

func scanResponseRow(row pgx.Row) (*dto.ResponseDTO, error) {
	var out dto.ResponseDTO
	var statusName sql.NullString
	var fileID sql.NullInt64
	var fileName, filePath sql.NullString
	var createdAt sql.NullTime

	err := row.Scan(
		&out.ID, &out.Text, &out.RequestID, &out.StatusID,
		&statusName,
		&out.Author.ID, &out.Author.Name, &out.Author.Surname,
		&fileID, &fileName, &filePath,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	out.StatusName = utils.NullStringToString(statusName)
	out.CreatedAt = utils.NullTimeToString(createdAt)
	if fileID.Valid {
		out.File = &dto.ShortFileDTO{
			ID:       uint64(fileID.Int64),
			FileName: utils.NullStringToString(fileName),
			URL:      utils.NullStringToString(filePath),
		}
	}
	return &out, nil
}

func (r *responseRepository) FindResponseByID(ctx context.Context, id uint64) (*dto.ResponseDTO, error) {
	row := r.storage.QueryRow(ctx,
		responseSelect+" WHERE resp.id = $1 AND resp.deleted_at IS NULL", id)
	return scanResponseRow(row)
}

// FindResponseByRequestID возвращает ErrNotFound, если ответа на заявку
// ещё нет.
func (r *responseRepository) FindResponseByRequestID(ctx context.Context, requestID uint64) (*dto.ResponseDTO, error) {
	row := r.storage.QueryRow(ctx,
		responseSelect+" WHERE resp.request_id = $1 AND resp.deleted_at IS NULL", requestID)
	return scanResponseRow(row)
}

func (r *responseRepository) UpdateResponseStatus(ctx context.Context, id uint64, statusID uint64) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE responses SET status_id = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		statusID, id,
	)
	if err != nil {
		return fmt.Errorf("ошибка смены статуса ответа: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *responseRepository) SoftDeleteResponse(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE responses SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id,
	)
	if err != nil {
		return fmt.Errorf("ошибка удаления ответа: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *responseRepository) StatusExists(ctx context.Context, statusID uint64) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM resp_statuses WHERE id = $1 AND deleted_at IS NULL)`,
		statusID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки статуса ответа: %w", err)
	}
	return exists, nil
}
