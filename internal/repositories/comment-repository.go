package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"helpdesk-system/internal/dto"
	"helpdesk-system/pkg/utils"
)

type CommentRepositoryInterface interface {
	CreateComment(ctx context.Context, authorID uint64, payload dto.CreateCommentDTO, attachmentID *uint64) (uint64, error)
	FindCommentsByRequestID(ctx context.Context, requestID uint64) ([]dto.CommentDTO, error)
}

type commentRepository struct {
	storage *pgxpool.Pool
}

func NewCommentRepository(storage *pgxpool.Pool) CommentRepositoryInterface {
	return &commentRepository{storage: storage}
}

func (r *commentRepository) CreateComment(ctx context.Context, authorID uint64, payload dto.CreateCommentDTO, attachmentID *uint64) (uint64, error) {
	query := `
		INSERT INTO comments (text, request_id, author_id, attachment_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id`

	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		payload.Text, payload.RequestID, authorID, attachmentID,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания комментария: %w", err)
	}
	return newID, nil
}

// FindCommentsByRequestID возвращает комментарии от новых к старым.
func (r *commentRepository) FindCommentsByRequestID(ctx context.Context, requestID uint64) ([]dto.CommentDTO, error) {
	query := `
		SELECT cm.id, cm.text, cm.request_id,
		       author.id, author.name, author.surname,
		       cm.attachment_id, f.file_name, f.file_path,
		       cm.created_at
		FROM comments cm
		JOIN users author ON cm.author_id = author.id
		LEFT JOIN files f ON cm.attachment_id = f.id
		WHERE cm.request_id = $1
		ORDER BY cm.created_at DESC, cm.id DESC`

	rows, err := r.storage.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки комментариев: %w", err)
	}
	defer rows.Close()

	comments := make([]dto.CommentDTO, 0)
	for rows.Next() {
		var cm dto.CommentDTO
		var attachmentID sql.NullInt64
		var fileName, filePath sql.NullString
		var createdAt sql.NullTime

		if err = rows.Scan(
			&cm.ID, &cm.Text, &cm.RequestID,
			&cm.Author.ID, &cm.Author.Name, &cm.Author.Surname,
			&attachmentID, &fileName, &filePath,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка чтения комментария: %w", err)
		}

		cm.CreatedAt = utils.NullTimeToString(createdAt)
		if attachmentID.Valid {
			cm.Attachment = &dto.ShortFileDTO{
				ID:       uint64(attachmentID.Int64),
				FileName: utils.NullStringToString(fileName),
				URL:      utils.NullStringToString(filePath),
			}
		}
		comments = append(comments, cm)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обхода комментариев: %w", err)
	}
	return comments, nil
}
