package entities

import "helpdesk-system/pkg/types"

// Справочные сущности: категории, статусы, приоритеты и типы заявок.
// Жизненного цикла у них нет, только мягкое удаление.

type Category struct {
	ID   uint64 `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	types.BaseEntity
	types.SoftDelete
}

type RequestStatus struct {
	ID   uint64 `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	types.BaseEntity
	types.SoftDelete
}

type ResponseStatus struct {
	ID   uint64 `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	types.BaseEntity
	types.SoftDelete
}

type Priority struct {
	ID    uint64 `json:"id" db:"id"`
	Level string `json:"level" db:"level"`

	types.BaseEntity
	types.SoftDelete
}

type RequestType struct {
	ID   uint64 `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	types.BaseEntity
	types.SoftDelete
}
