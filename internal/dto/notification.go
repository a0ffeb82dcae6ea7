package dto

import "time"

type NotificationResponseDTO struct {
	ID          int       `json:"id"`
	Message     string    `json:"message"`
	ActionRoute string    `json:"actionRoute" example:"/dashboard/withdrawals"`
	CreatedAt   time.Time `json:"time"`
}
