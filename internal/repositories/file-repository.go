package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"helpdesk-system/internal/entities"
	apperrors "helpdesk-system/pkg/errors"
)

type FileRepositoryInterface interface {
	CreateFile(ctx context.Context, fileName string, filePath string) (uint64, error)
	FindFileByID(ctx context.Context, id uint64) (*entities.FileEntity, error)
	SoftDeleteFile(ctx context.Context, id uint64) error
}

type fileRepository struct {
	storage *pgxpool.Pool
}

func NewFileRepository(storage *pgxpool.Pool) FileRepositoryInterface {
	return &fileRepository{storage: storage}
}

func (r *fileRepository) CreateFile(ctx context.Context, fileName string, filePath string) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO files (file_name, file_path, created_at) VALUES ($1, $2, NOW()) RETURNING id`,
		fileName, filePath,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("ошибка сохранения метаданных файла: %w", err)
	}
	return newID, nil
}

func (r *fileRepository) FindFileByID(ctx context.Context, id uint64) (*entities.FileEntity, error) {
	var f entities.FileEntity
	err := r.storage.QueryRow(ctx,
		`SELECT id, file_name, file_path, created_at FROM files WHERE id = $1 AND deleted_at IS NULL`,
		id,
	).Scan(&f.ID, &f.FileName, &f.FilePath, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения метаданных файла: %w", err)
	}
	return &f, nil
}

func (r *fileRepository) SoftDeleteFile(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE files SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id,
	)
	if err != nil {
		return fmt.Errorf("ошибка удаления файла: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
