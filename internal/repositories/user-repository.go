package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/utils"
)

type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, payload dto.RegisterDTO, passwordHash string) (uint64, error)
	FindUserByID(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdatePassword(ctx context.Context, userID uint64, newHash string) error
	FindPasswordHistory(ctx context.Context, userID uint64, limit int) ([]entities.PasswordHistoryEntry, error)
	FindUserRoles(ctx context.Context, userID uint64) ([]string, error)
}

type userRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &userRepository{storage: storage}
}

func (r *userRepository) CreateUser(ctx context.Context, payload dto.RegisterDTO, passwordHash string) (uint64, error) {
	query := `
		INSERT INTO users (name, surname, email, position, password, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id`

	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		payload.Name, payload.Surname, payload.Email, payload.Position, passwordHash,
	).Scan(&newID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, apperrors.NewConflictError("пользователь с таким email уже существует")
		}
		return 0, fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return newID, nil
}

const userSelect = `
	SELECT id, name, surname, email, position, password, profile_photo_id, created_at, updated_at
	FROM users`

func (r *userRepository) scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	var profilePhotoID sql.NullInt64
	var updatedAt sql.NullTime

	err := row.Scan(
		&u.ID, &u.Name, &u.Surname, &u.Email, &u.Position,
		&u.Password, &profilePhotoID, &u.CreatedAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения пользователя: %w", err)
	}

	u.ProfilePhotoID = utils.NullInt64ToPtr(profilePhotoID)
	u.UpdatedAt = utils.NullTimeToPtr(updatedAt)
	return &u, nil
}

func (r *userRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	row := r.storage.QueryRow(ctx, userSelect+" WHERE id = $1 AND deleted_at IS NULL", id)
	return r.scanUser(row)
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	row := r.storage.QueryRow(ctx, userSelect+" WHERE email = $1 AND deleted_at IS NULL", email)
	return r.scanUser(row)
}

// UpdatePassword меняет хеш и сохраняет прежний в журнале паролей одной
// транзакцией.
func (r *userRepository) UpdatePassword(ctx context.Context, userID uint64, newHash string) (err error) {
	tx, err := r.storage.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var oldHash string
	err = tx.QueryRow(ctx,
		`SELECT password FROM users WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, userID,
	).Scan(&oldHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("ошибка чтения пользователя: %w", err)
	}

	if _, err = tx.Exec(ctx,
		`INSERT INTO password_histories (user_id, password, created_at) VALUES ($1, $2, NOW())`,
		userID, oldHash,
	); err != nil {
		return fmt.Errorf("ошибка записи журнала паролей: %w", err)
	}

	if _, err = tx.Exec(ctx,
		`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`,
		newHash, userID,
	); err != nil {
		return fmt.Errorf("ошибка обновления пароля: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *userRepository) FindPasswordHistory(ctx context.Context, userID uint64, limit int) ([]entities.PasswordHistoryEntry, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, user_id, password, created_at
		 FROM password_histories
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки журнала паролей: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.PasswordHistoryEntry, 0, limit)
	for rows.Next() {
		var e entities.PasswordHistoryEntry
		if err = rows.Scan(&e.ID, &e.UserID, &e.Password, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения журнала паролей: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обхода журнала паролей: %w", err)
	}
	return entries, nil
}

func (r *userRepository) FindUserRoles(ctx context.Context, userID uint64) ([]string, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT r.name
		 FROM roles r
		 JOIN user_roles ur ON ur.role_id = r.id
		 WHERE ur.user_id = $1
		 ORDER BY r.name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки ролей пользователя: %w", err)
	}
	defer rows.Close()

	roles := make([]string, 0)
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("ошибка чтения роли: %w", err)
		}
		roles = append(roles, name)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обхода ролей: %w", err)
	}
	return roles, nil
}
