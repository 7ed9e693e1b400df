package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	listing "helpdesk-system/internal/infrastructure/db"
	"helpdesk-system/pkg/constants"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/types"
	"helpdesk-system/pkg/utils"
)

// RequestDetailsRow — общий гидрированный вид заявки для карточки и
// секционного просмотра. Все именованные варианты запроса возвращают его.
type RequestDetailsRow struct {
	entities.Request
	CreatorName     string
	CreatorSurname  string
	CategoryName    sql.NullString
	StatusName      sql.NullString
	PriorityLevel   sql.NullString
	RequestTypeName sql.NullString
	ExecutorName    sql.NullString
	ExecutorSurname sql.NullString
}

type RequestRepositoryInterface interface {
	CreateRequest(ctx context.Context, creatorID uint64, payload dto.CreateRequestDTO, fileID *uint64) (uint64, error)
	FindRequest(ctx context.Context, id uint64) (*entities.Request, error)
	FindRequestDetails(ctx context.Context, id uint64) (*RequestDetailsRow, error)
	UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateRequestDTO, fileID *uint64) error
	UpdateStatus(ctx context.Context, id uint64, statusID uint64) error
	TakeRequest(ctx context.Context, id uint64, executorID uint64) (bool, error)
	SoftDeleteRequest(ctx context.Context, id uint64) error
	GetFilteredRequests(ctx context.Context, filter types.ListFilter) ([]dto.OutRequestDTO, uint64, map[string]uint64, error)
}

type requestRepository struct {
	storage *pgxpool.Pool
}

func NewRequestRepository(storage *pgxpool.Pool) RequestRepositoryInterface {
	return &requestRepository{storage: storage}
}

func (r *requestRepository) CreateRequest(ctx context.Context, creatorID uint64, payload dto.CreateRequestDTO, fileID *uint64) (uint64, error) {
	query := `
		INSERT INTO requests (header, text, creator_id, category_id, priority_id, type_id, status_id, file_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id`

	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		payload.Header, payload.Text, creatorID,
		payload.CategoryID, payload.PriorityID, payload.TypeID,
		constants.RequestStatusNew, fileID,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания заявки: %w", err)
	}
	return newID, nil
}

func (r *requestRepository) FindRequest(ctx context.Context, id uint64) (*entities.Request, error) {
	query := `
		SELECT id, header, text, creator_id, executor_id, category_id, priority_id,
		       type_id, status_id, file_id, first_operation_date, created_at, updated_at
		FROM requests
		WHERE id = $1 AND deleted_at IS NULL`

	var req entities.Request
	var executorID, fileID sql.NullInt64
	var firstOperationDate, updatedAt sql.NullTime

	err := r.storage.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.Header, &req.Text, &req.CreatorID, &executorID,
		&req.CategoryID, &req.PriorityID, &req.TypeID, &req.StatusID,
		&fileID, &firstOperationDate, &req.CreatedAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения заявки: %w", err)
	}

	req.ExecutorID = utils.NullInt64ToPtr(executorID)
	req.FileID = utils.NullInt64ToPtr(fileID)
	req.FirstOperationDate = utils.NullTimeToPtr(firstOperationDate)
	req.UpdatedAt = utils.NullTimeToPtr(updatedAt)
	return &req, nil
}

func (r *requestRepository) FindRequestDetails(ctx context.Context, id uint64) (*RequestDetailsRow, error) {
	query := `
		SELECT
			req.id, req.header, req.text, req.creator_id, req.executor_id,
			req.category_id, req.priority_id, req.type_id, req.status_id,
			req.file_id, req.first_operation_date, req.created_at,
			creator.name, creator.surname,
			c.name, s.name, p.level, t.name,
			executor.name, executor.surname
		FROM requests req
		JOIN users creator ON req.creator_id = creator.id
		LEFT JOIN users executor ON req.executor_id = executor.id
		LEFT JOIN categories c ON req.category_id = c.id
		LEFT JOIN req_statuses s ON req.status_id = s.id
		LEFT JOIN priorities p ON req.priority_id = p.id
		LEFT JOIN req_types t ON req.type_id = t.id
		WHERE req.id = $1 AND req.deleted_at IS NULL`

	var row RequestDetailsRow
	var executorID, fileID sql.NullInt64
	var firstOperationDate sql.NullTime

	err := r.storage.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.Header, &row.Text, &row.CreatorID, &executorID,
		&row.CategoryID, &row.PriorityID, &row.TypeID, &row.StatusID,
		&fileID, &firstOperationDate, &row.CreatedAt,
		&row.CreatorName, &row.CreatorSurname,
		&row.CategoryName, &row.StatusName, &row.PriorityLevel, &row.RequestTypeName,
		&row.ExecutorName, &row.ExecutorSurname,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения карточки заявки: %w", err)
	}

	row.ExecutorID = utils.NullInt64ToPtr(executorID)
	row.FileID = utils.NullInt64ToPtr(fileID)
	row.FirstOperationDate = utils.NullTimeToPtr(firstOperationDate)
	return &row, nil
}

func (r *requestRepository) UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateRequestDTO, fileID *uint64) error {
	query := `
		UPDATE requests
		SET header = $1, text = $2, creator_id = $3, category_id = $4,
		    priority_id = $5, type_id = $6, file_id = COALESCE($7, file_id),
		    updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL`

	tag, err := r.storage.Exec(ctx, query,
		payload.Header, payload.Text, payload.UserID,
		payload.CategoryID, payload.PriorityID, payload.TypeID,
		fileID, id,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id uint64, statusID uint64) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE requests SET status_id = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		statusID, id,
	)
	if err != nil {
		return fmt.Errorf("ошибка смены статуса заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// TakeRequest назначает исполнителя одним условным UPDATE: проверка
// "исполнитель ещё не назначен" и запись выполняются атомарно, поэтому из
// двух одновременных претендентов заявку получает ровно один.
// first_operation_date выставляется только при первом назначении.
func (r *requestRepository) TakeRequest(ctx context.Context, id uint64, executorID uint64) (bool, error) {
	query := `
		UPDATE requests
		SET executor_id = $1,
		    status_id = $2,
		    first_operation_date = COALESCE(first_operation_date, NOW()),
		    updated_at = NOW()
		WHERE id = $3 AND executor_id IS NULL AND deleted_at IS NULL`

	tag, err := r.storage.Exec(ctx, query, executorID, constants.RequestStatusInProgress, id)
	if err != nil {
		return false, fmt.Errorf("ошибка назначения исполнителя: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

type cascadeStep struct {
	query string
	args  []interface{}
}

// requestDeleteCascade перечисляет шаги мягкого удаления заявки: её ответ,
// прикреплённый файл (если есть) и сама заявка. Комментарии и история в
// каскад не входят — они нужны для аудита.
func requestDeleteCascade(id uint64, fileID *uint64) []cascadeStep {
	steps := []cascadeStep{
		{
			query: `UPDATE responses SET deleted_at = NOW() WHERE request_id = $1 AND deleted_at IS NULL`,
			args:  []interface{}{id},
		},
	}
	if fileID != nil {
		steps = append(steps, cascadeStep{
			query: `UPDATE files SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
			args:  []interface{}{*fileID},
		})
	}
	return append(steps, cascadeStep{
		query: `UPDATE requests SET deleted_at = NOW() WHERE id = $1`,
		args:  []interface{}{id},
	})
}

// SoftDeleteRequest выполняет каскад мягкого удаления в одной транзакции.
func (r *requestRepository) SoftDeleteRequest(ctx context.Context, id uint64) (err error) {
	tx, err := r.storage.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var fileID sql.NullInt64
	findQuery := `SELECT file_id FROM requests WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
	if err = tx.QueryRow(ctx, findQuery, id).Scan(&fileID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("не удалось найти заявку для удаления: %w", err)
	}

	for _, step := range requestDeleteCascade(id, utils.NullInt64ToPtr(fileID)) {
		if _, err = tx.Exec(ctx, step.query, step.args...); err != nil {
			return fmt.Errorf("ошибка мягкого удаления заявки: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Белый список сортируемых полей списка заявок.
var requestSortColumns = map[string]string{
	"id":        "req.id",
	"header":    "req.header",
	"username":  "creator.name",
	"category":  "c.name",
	"status":    "s.name",
	"priority":  "p.level",
	"executor":  "executor.name",
	"createdAt": "req.created_at",
}

var requestSearchColumns = []string{"req.header", "req.text"}

// requestListBase применяет к списку заявок все фильтры, КРОМЕ фильтра по
// статусу: разбивка по статусам считается именно на этой выборке, чтобы
// счётчики вкладок UI показывали остальные статусы и при активном
// статус-фильтре.
func requestListBase(filter types.ListFilter) sq.SelectBuilder {
	base := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select().
		From("requests req").
		Join("users creator ON req.creator_id = creator.id").
		LeftJoin("users executor ON req.executor_id = executor.id").
		LeftJoin("categories c ON req.category_id = c.id").
		LeftJoin("req_statuses s ON req.status_id = s.id").
		LeftJoin("priorities p ON req.priority_id = p.id").
		LeftJoin("req_types t ON req.type_id = t.id").
		LeftJoin("files f ON req.file_id = f.id").
		Where(sq.Eq{"req.deleted_at": nil})

	base = listing.ApplyIDFilter(base, "req.category_id", filter.CategoryID)
	base = listing.ApplyIDFilter(base, "req.priority_id", filter.PriorityID)
	base = listing.ApplyIDFilter(base, "req.executor_id", filter.ExecutorID)
	base = listing.ApplyDateRange(base, "req.created_at", filter.FromDate, filter.ToDate)
	return listing.ApplySearch(base, filter.Search, requestSearchColumns)
}

func requestBreakdownQuery(filter types.ListFilter) (string, []interface{}, error) {
	return requestListBase(filter).
		Columns("s.name", "COUNT(req.id)").
		GroupBy("s.name").
		ToSql()
}

// requestNarrowed дополняет базовую выборку фильтром по статусу.
func requestNarrowed(filter types.ListFilter) sq.SelectBuilder {
	return listing.ApplyIDFilter(requestListBase(filter), "req.status_id", filter.StatusID)
}

func requestCountQuery(filter types.ListFilter) (string, []interface{}, error) {
	return requestNarrowed(filter).Columns("COUNT(req.id)").ToSql()
}

func requestPageQuery(filter types.ListFilter) (string, []interface{}, error) {
	query := requestNarrowed(filter).Columns(
		"req.id", "req.header", "req.text",
		"creator.name", "creator.surname",
		"executor.name", "executor.surname",
		"c.name", "s.name", "p.level", "t.name",
		"req.file_id", "f.file_name", "f.file_path",
		"req.created_at",
	)
	query = listing.ApplySort(query, filter.SortField, filter.SortDirection,
		requestSortColumns, "req.created_at", "req.id")
	return listing.ApplyPagination(query, filter).ToSql()
}

func (r *requestRepository) GetFilteredRequests(ctx context.Context, filter types.ListFilter) ([]dto.OutRequestDTO, uint64, map[string]uint64, error) {
	statusCounts, err := r.countByStatus(ctx, filter)
	if err != nil {
		return nil, 0, nil, err
	}

	countSQL, countArgs, err := requestCountQuery(filter)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("ошибка сборки запроса подсчёта заявок: %w", err)
	}
	var totalCount uint64
	if err = r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, nil, fmt.Errorf("ошибка подсчёта заявок: %w", err)
	}

	pageSQL, pageArgs, err := requestPageQuery(filter)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("ошибка сборки запроса списка заявок: %w", err)
	}

	rows, err := r.storage.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("ошибка выборки заявок: %w", err)
	}
	defer rows.Close()

	items := make([]dto.OutRequestDTO, 0, filter.PageSize)
	for rows.Next() {
		var item dto.OutRequestDTO
		var fileID sql.NullInt64
		var executorName, executorSurname sql.NullString
		var categoryName, statusName, priorityLevel, typeName sql.NullString
		var fileName, filePath sql.NullString
		var createdAt time.Time

		if err = rows.Scan(
			&item.ID, &item.Header, &item.Text,
			&item.UserName, &item.UserSurname,
			&executorName, &executorSurname,
			&categoryName, &statusName, &priorityLevel, &typeName,
			&fileID, &fileName, &filePath,
			&createdAt,
		); err != nil {
			return nil, 0, nil, fmt.Errorf("ошибка чтения строки заявки: %w", err)
		}

		item.ExecutorName = utils.NullStringToString(executorName)
		item.ExecutorSurname = utils.NullStringToString(executorSurname)
		item.CategoryName = utils.NullStringToString(categoryName)
		item.StatusName = utils.NullStringToString(statusName)
		item.PriorityLevel = utils.NullStringToString(priorityLevel)
		item.RequestTypeName = utils.NullStringToString(typeName)
		item.CreatedAt = createdAt.Format("2006-01-02 15:04:05")
		if fileID.Valid {
			id := uint64(fileID.Int64)
			item.FileID = &id
			item.File = &dto.ShortFileDTO{
				ID:       id,
				FileName: utils.NullStringToString(fileName),
				URL:      utils.NullStringToString(filePath),
			}
		}

		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, nil, fmt.Errorf("ошибка обхода строк заявок: %w", err)
	}

	return items, totalCount, statusCounts, nil
}

func (r *requestRepository) countByStatus(ctx context.Context, filter types.ListFilter) (map[string]uint64, error) {
	countsSQL, countsArgs, err := requestBreakdownQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса разбивки по статусам: %w", err)
	}

	rows, err := r.storage.Query(ctx, countsSQL, countsArgs...)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчёта заявок по статусам: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]uint64)
	for rows.Next() {
		var name sql.NullString
		var count uint64
		if err = rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("ошибка чтения разбивки по статусам: %w", err)
		}
		counts[utils.NullStringToString(name)] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обхода разбивки по статусам: %w", err)
	}
	return counts, nil
}
