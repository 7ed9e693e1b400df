package dto

type RegisterDTO struct {
	Name     string `json:"name" validate:"required"`
	Surname  string `json:"surname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Position string `json:"position"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type AuthResponseDTO struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         UserDTO `json:"user"`
}

type UserDTO struct {
	ID             uint64   `json:"id"`
	Name           string   `json:"name"`
	Surname        string   `json:"surname"`
	Email          string   `json:"email"`
	Position       string   `json:"position"`
	Roles          []string `json:"roles,omitempty"`
	ProfilePhotoID *uint64  `json:"profile_photo_id,omitempty"`
	CreatedAt      string   `json:"created_at"`
}
