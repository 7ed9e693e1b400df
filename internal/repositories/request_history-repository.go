package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"helpdesk-system/internal/dto"
)

type RequestHistoryRepositoryInterface interface {
	CreateHistory(ctx context.Context, requestID uint64, actorID uint64, action string, description string) error
	FindHistoryByRequestID(ctx context.Context, requestID uint64) ([]dto.RequestHistoryDTO, error)
}

type requestHistoryRepository struct {
	storage *pgxpool.Pool
}

func NewRequestHistoryRepository(storage *pgxpool.Pool) RequestHistoryRepositoryInterface {
	return &requestHistoryRepository{storage: storage}
}

func (r *requestHistoryRepository) CreateHistory(ctx context.Context, requestID uint64, actorID uint64, action string, description string) error {
	_, err := r.storage.Exec(ctx,
		`INSERT INTO request_histories (request_id, actor_id, action, description, created_at)
		 VALUES ($1, $2, $3, $4, NOW())`,
		requestID, actorID, action, description,
	)
	if err != nil {
		return fmt.Errorf("ошибка записи истории заявки: %w", err)
	}
	return nil
}

// FindHistoryByRequestID возвращает журнал от новых записей к старым.
func (r *requestHistoryRepository) FindHistoryByRequestID(ctx context.Context, requestID uint64) ([]dto.RequestHistoryDTO, error) {
	query := `
		SELECT h.id, h.action, h.description,
		       actor.name, actor.surname, actor.position,
		       h.created_at
		FROM request_histories h
		JOIN users actor ON h.actor_id = actor.id
		WHERE h.request_id = $1
		ORDER BY h.created_at DESC, h.id DESC`

	rows, err := r.storage.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки истории заявки: %w", err)
	}
	defer rows.Close()

	history := make([]dto.RequestHistoryDTO, 0)
	for rows.Next() {
		var item dto.RequestHistoryDTO
		var createdAt time.Time
		if err = rows.Scan(
			&item.ID, &item.Action, &item.Description,
			&item.ActorName, &item.ActorSurname, &item.ActorPosition,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка чтения записи истории: %w", err)
		}
		item.CreatedAt = createdAt.Format("2006-01-02 15:04:05")
		history = append(history, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обхода истории заявки: %w", err)
	}
	return history, nil
}
