package entities

import "time"

// RequestHistory — неизменяемый журнал действий по заявке. Записи только
// добавляются, мягкого удаления нет.
type RequestHistory struct {
	ID          uint64    `json:"id" db:"id"`
	RequestID   uint64    `json:"request_id" db:"request_id"`
	ActorID     uint64    `json:"actor_id" db:"actor_id"`
	Action      string    `json:"action" db:"action"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
