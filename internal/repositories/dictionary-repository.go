package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"helpdesk-system/internal/dto"
	apperrors "helpdesk-system/pkg/errors"
)

// DictionaryRepositoryInterface обслуживает все справочники одним набором
// операций; конкретная таблица задаётся при создании репозитория.
type DictionaryRepositoryInterface interface {
	GetAll(ctx context.Context) ([]dto.LookupDTO, error)
	FindByID(ctx context.Context, id uint64) (*dto.LookupDTO, error)
	Create(ctx context.Context, payload dto.CreateLookupDTO) (uint64, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateLookupDTO) error
	SoftDelete(ctx context.Context, id uint64) error
}

type dictionaryRepository struct {
	storage    *pgxpool.Pool
	table      string
	nameColumn string
}

// NewDictionaryRepository создаёт репозиторий справочника над таблицей
// table; nameColumn — отображаемая колонка ("name", у приоритетов "level").
func NewDictionaryRepository(storage *pgxpool.Pool, table string, nameColumn string) DictionaryRepositoryInterface {
	return &dictionaryRepository{storage: storage, table: table, nameColumn: nameColumn}
}

func (r *dictionaryRepository) GetAll(ctx context.Context) ([]dto.LookupDTO, error) {
	query := fmt.Sprintf(
		`SELECT id, %s FROM %s WHERE deleted_at IS NULL ORDER BY id`,
		r.nameColumn, r.table,
	)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки справочника %s: %w", r.table, err)
	}
	defer rows.Close()

	items := make([]dto.LookupDTO, 0)
	for rows.Next() {
		var item dto.LookupDTO
		if err = rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, fmt.Errorf("ошибка чтения справочника %s: %w", r.table, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обхода справочника %s: %w", r.table, err)
	}
	return items, nil
}

func (r *dictionaryRepository) FindByID(ctx context.Context, id uint64) (*dto.LookupDTO, error) {
	query := fmt.Sprintf(
		`SELECT id, %s FROM %s WHERE id = $1 AND deleted_at IS NULL`,
		r.nameColumn, r.table,
	)

	var item dto.LookupDTO
	err := r.storage.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения справочника %s: %w", r.table, err)
	}
	return &item, nil
}

func (r *dictionaryRepository) Create(ctx context.Context, payload dto.CreateLookupDTO) (uint64, error) {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, created_at) VALUES ($1, NOW()) RETURNING id`,
		r.table, r.nameColumn,
	)

	var newID uint64
	if err := r.storage.QueryRow(ctx, query, payload.Name).Scan(&newID); err != nil {
		return 0, fmt.Errorf("ошибка создания записи справочника %s: %w", r.table, err)
	}
	return newID, nil
}

func (r *dictionaryRepository) Update(ctx context.Context, id uint64, payload dto.UpdateLookupDTO) error {
	query := fmt.Sprintf(
		`UPDATE %s SET %s = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		r.table, r.nameColumn,
	)

	tag, err := r.storage.Exec(ctx, query, payload.Name, id)
	if err != nil {
		return fmt.Errorf("ошибка обновления записи справочника %s: %w", r.table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *dictionaryRepository) SoftDelete(ctx context.Context, id uint64) error {
	query := fmt.Sprintf(
		`UPDATE %s SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		r.table,
	)

	tag, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления записи справочника %s: %w", r.table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
