package dto

import "time"

type UserResponseDTO struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photoURL,omitempty"`
	Role      string    `json:"role" example:"worker"`
	Coin      int64     `json:"coin" example:"120"`
	CreatedAt time.Time `json:"created_at"`
}

type TopWorkerResponseDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL,omitempty"`
	Coin     int64  `json:"coin" example:"950"`
}

type UpdateRoleRequestDTO struct {
	Role string `json:"role" validate:"required" example:"buyer"`
}

type PlatformStatsResponseDTO struct {
	TotalWorkers  int    `json:"totalWorkers" example:"120"`
	TotalBuyers   int    `json:"totalBuyers" example:"35"`
	TotalCoins    int64  `json:"totalCoins" example:"10450"`
	TotalPayments string `json:"totalPayments" example:"320.00"`
}
