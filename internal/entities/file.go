package entities

import "helpdesk-system/pkg/types"

// FileEntity — метаданные загруженного файла. Содержимое лежит на диске,
// ядро оперирует только идентификатором.
type FileEntity struct {
	ID       uint64 `json:"id" db:"id"`
	FileName string `json:"file_name" db:"file_name"`
	FilePath string `json:"file_path" db:"file_path"`

	types.BaseEntity
	types.SoftDelete
}
