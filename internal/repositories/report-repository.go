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
	listing "helpdesk-system/internal/infrastructure/db"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/types"
	"helpdesk-system/pkg/utils"
)

type ReportRepositoryInterface interface {
	CreateReport(ctx context.Context, payload dto.CreateReportDTO) (*dto.OutReportDTO, error)
	FindReportByID(ctx context.Context, id uint64) (*dto.OutReportDTO, error)
	FindReportByRequestID(ctx context.Context, requestID uint64) (*dto.OutReportDTO, error)
	GetFilteredReports(ctx context.Context, filter types.ListFilter) ([]dto.OutReportDTO, uint64, error)
	FindReportsForExport(ctx context.Context, filter types.ListFilter) ([]dto.OutReportDTO, error)
	CloseReportByRequestID(ctx context.Context, requestID uint64, statusID uint64, closeDate time.Time) error
}

type reportRepository struct {
	storage *pgxpool.Pool
}

func NewReportRepository(storage *pgxpool.Pool) ReportRepositoryInterface {
	return &reportRepository{storage: storage}
}

var reportSortColumns = map[string]string{
	"id":        "rep.id",
	"sender":    "sender.name",
	"category":  "c.name",
	"status":    "s.name",
	"executor":  "executor.name",
	"createdAt": "rep.created_at",
	"closeDate": "rep.close_date",
}

// Поиск по отчётам охватывает номер, отправителя, категорию, исполнителя
// и статус; номер сравнивается как текст.
var reportSearchColumns = []string{
	"CAST(rep.id AS TEXT)",
	"(sender.name || ' ' || sender.surname)",
	"c.name",
	"(executor.name || ' ' || executor.surname)",
	"s.name",
}

const reportColumns = `
	rep.id,
	sender.name, sender.surname,
	c.name, s.name,
	executor.name, executor.surname,
	rep.request_id, rep.created_at, rep.first_operation_date,
	rep.operation_time, rep.planned_operation_time, rep.close_date,
	rep.result, rep.solution, rep.channel, rep.routine, rep.code, rep.root_cause`

const reportJoins = `
	FROM reports rep
	JOIN users sender ON rep.sender_id = sender.id
	LEFT JOIN users executor ON rep.executor_id = executor.id
	LEFT JOIN categories c ON rep.category_id = c.id
	LEFT JOIN req_statuses s ON rep.status_id = s.id`

type reportScanner interface {
	Scan(dest ...any) error
}

func scanReportRow(row reportScanner) (*dto.OutReportDTO, error) {
	var out dto.OutReportDTO
	var senderName, senderSurname string
	var categoryName, statusName sql.NullString
	var executorName, executorSurname sql.NullString
	var requestID sql.NullInt64
	var createdAt time.Time
	var firstOperationDate, closeDate sql.NullTime
	var operationTime, plannedOperTime sql.NullInt64
	var result, solution, channel, code, rootCause sql.NullString

	err := row.Scan(
		&out.ID,
		&senderName, &senderSurname,
		&categoryName, &statusName,
		&executorName, &executorSurname,
		&requestID, &createdAt, &firstOperationDate,
		&operationTime, &plannedOperTime, &closeDate,
		&result, &solution, &channel, &out.Routine, &code, &rootCause,
	)
	if err != nil {
		return nil, err
	}

	out.Sender = senderName + " " + senderSurname
	out.CategoryName = utils.NullStringToString(categoryName)
	out.StatusName = utils.NullStringToString(statusName)
	if executorName.Valid {
		out.Executor = executorName.String + " " + executorSurname.String
	}
	out.RequestID = utils.NullInt64ToPtr(requestID)
	out.CreatedAt = createdAt.Format("2006-01-02 15:04:05")
	out.FirstOperationDate = utils.NullTimeToString(firstOperationDate)
	out.CloseDate = utils.NullTimeToString(closeDate)
	if operationTime.Valid {
		v := int(operationTime.Int64)
		out.OperationTime = &v
	}
	if plannedOperTime.Valid {
		v := int(plannedOperTime.Int64)
		out.PlannedOperTime = &v
	}
	out.Result = utils.NullStringToString(result)
	out.Solution = utils.NullStringToString(solution)
	out.Channel = utils.NullStringToString(channel)
	out.Code = utils.NullStringToString(code)
	out.RootCause = utils.NullStringToString(rootCause)
	return &out, nil
}

// CreateReport вставляет отчёт и перечитывает его со связями. Отсутствие
// только что созданной записи считается внутренней ошибкой, а не 404.
func (r *reportRepository) CreateReport(ctx context.Context, payload dto.CreateReportDTO) (*dto.OutReportDTO, error) {
	query := `
		INSERT INTO reports (
			sender_id, category_id, status_id, priority_id, type_id,
			executor_id, request_id, first_operation_date, operation_time,
			planned_operation_time, result, solution, channel, routine,
			code, root_cause, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
		RETURNING id`

	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		payload.SenderID, payload.CategoryID, payload.StatusID,
		payload.PriorityID.Ptr(), payload.TypeID.Ptr(),
		payload.ExecutorID.Ptr(), payload.RequestID.Ptr(),
		payload.FirstOperationDate.Ptr(), payload.OperationTime.Ptr(),
		payload.PlannedOperTime.Ptr(), payload.Result.Ptr(),
		payload.Solution.Ptr(), payload.Channel.Ptr(), payload.Routine,
		payload.Code.Ptr(), payload.RootCause.Ptr(),
	).Scan(&newID)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания отчёта: %w", err)
	}

	created, err := r.FindReportByID(ctx, newID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewInternalError("не удалось прочитать созданный отчёт", err)
		}
		return nil, err
	}
	return created, nil
}

func (r *reportRepository) FindReportByID(ctx context.Context, id uint64) (*dto.OutReportDTO, error) {
	query := "SELECT " + reportColumns + reportJoins +
		" WHERE rep.id = $1 AND rep.deleted_at IS NULL"

	out, err := scanReportRow(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения отчёта: %w", err)
	}
	return out, nil
}

// FindReportByRequestID возвращает свежайший отчёт по заявке или nil без
// ошибки, когда отчёта нет: отсутствие отчёта — штатное состояние заявки.
func (r *reportRepository) FindReportByRequestID(ctx context.Context, requestID uint64) (*dto.OutReportDTO, error) {
	query := "SELECT " + reportColumns + reportJoins + `
		WHERE rep.request_id = $1 AND rep.deleted_at IS NULL
		ORDER BY rep.created_at DESC, rep.id DESC
		LIMIT 1`

	out, err := scanReportRow(r.storage.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка чтения отчёта по заявке: %w", err)
	}
	return out, nil
}

func (r *reportRepository) filteredBase(filter types.ListFilter) sq.SelectBuilder {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	base := psql.Select().
		From("reports rep").
		Join("users sender ON rep.sender_id = sender.id").
		LeftJoin("users executor ON rep.executor_id = executor.id").
		LeftJoin("categories c ON rep.category_id = c.id").
		LeftJoin("req_statuses s ON rep.status_id = s.id").
		Where(sq.Eq{"rep.deleted_at": nil})

	base = listing.ApplyIDFilter(base, "rep.category_id", filter.CategoryID)
	base = listing.ApplyIDFilter(base, "rep.status_id", filter.StatusID)
	base = listing.ApplyIDFilter(base, "rep.priority_id", filter.PriorityID)
	base = listing.ApplyIDFilter(base, "rep.executor_id", filter.ExecutorID)
	base = listing.ApplyDateRange(base, "rep.created_at", filter.FromDate, filter.ToDate)
	base = listing.ApplySearch(base, filter.Search, reportSearchColumns)
	return base
}

func (r *reportRepository) GetFilteredReports(ctx context.Context, filter types.ListFilter) ([]dto.OutReportDTO, uint64, error) {
	base := r.filteredBase(filter)

	countSQL, countArgs, err := base.Columns("COUNT(rep.id)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса подсчёта отчётов: %w", err)
	}
	var totalCount uint64
	if err = r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчёта отчётов: %w", err)
	}

	pageQuery := base.Columns(reportColumns)
	pageQuery = listing.ApplySort(pageQuery, filter.SortField, filter.SortDirection,
		reportSortColumns, "rep.created_at", "rep.id")
	pageQuery = listing.ApplyPagination(pageQuery, filter)

	items, err := r.queryReports(ctx, pageQuery)
	if err != nil {
		return nil, 0, err
	}
	return items, totalCount, nil
}

// FindReportsForExport применяет те же фильтры и сортировку, что и список,
// но без пагинации: выгрузка охватывает всю выборку.
func (r *reportRepository) FindReportsForExport(ctx context.Context, filter types.ListFilter) ([]dto.OutReportDTO, error) {
	query := r.filteredBase(filter).Columns(reportColumns)
	query = listing.ApplySort(query, filter.SortField, filter.SortDirection,
		reportSortColumns, "rep.created_at", "rep.id")
	return r.queryReports(ctx, query)
}

func (r *reportRepository) queryReports(ctx context.Context, query sq.SelectBuilder) ([]dto.OutReportDTO, error) {
	querySQL, queryArgs, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса списка отчётов: %w", err)
	}

	rows, err := r.storage.Query(ctx, querySQL, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки отчётов: %w", err)
	}
	defer rows.Close()

	items := make([]dto.OutReportDTO, 0)
	for rows.Next() {
		item, err := scanReportRow(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения строки отчёта: %w", err)
		}
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обхода строк отчётов: %w", err)
	}
	return items, nil
}

// CloseReportByRequestID закрывает свежайший отчёт по заявке: ставит статус
// и дату закрытия. ErrNotFound, когда отчёта по заявке нет.
func (r *reportRepository) CloseReportByRequestID(ctx context.Context, requestID uint64, statusID uint64, closeDate time.Time) error {
	query := `
		UPDATE reports
		SET status_id = $1, close_date = $2, updated_at = NOW()
		WHERE id = (
			SELECT id FROM reports
			WHERE request_id = $3 AND deleted_at IS NULL
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		)`

	tag, err := r.storage.Exec(ctx, query, statusID, closeDate, requestID)
	if err != nil {
		return fmt.Errorf("ошибка закрытия отчёта: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
