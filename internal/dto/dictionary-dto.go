package dto

type CreateLookupDTO struct {
	Name string `json:"name" validate:"required,max=100"`
}

type UpdateLookupDTO = CreateLookupDTO
