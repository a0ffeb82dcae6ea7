package dto

type RegisterRequestDTO struct {
	Email    string `json:"email" validate:"required,email" example:"worker@example.com"`
	Name     string `json:"name" validate:"max=100" example:"Jane Worker"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" example:"worker"`
	PhotoURL string `json:"photo_url,omitempty"`
}

type RegisterResponseDTO struct {
	Message string `json:"message"`
	Coin    int64  `json:"coin" example:"10"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email" example:"worker@example.com"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponseDTO struct {
	Message string `json:"message"`
}
