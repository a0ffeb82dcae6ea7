package dto

import "time"

type CreateSubmissionRequestDTO struct {
	TaskID  int    `json:"task_id" validate:"required" example:"42"`
	Details string `json:"submission_details" example:"Here is my work: https://..."`
}

type SubmissionResponseDTO struct {
	ID            int       `json:"id" example:"7"`
	TaskID        int       `json:"task_id" example:"42"`
	TaskTitle     string    `json:"task_title"`
	PayableAmount int64     `json:"payable_amount" example:"10"`
	WorkerEmail   string    `json:"worker_email"`
	WorkerName    string    `json:"worker_name"`
	BuyerEmail    string    `json:"buyer_email"`
	BuyerName     string    `json:"buyer_name"`
	Details       string    `json:"submission_details"`
	Status        string    `json:"status" example:"pending"`
	CreatedAt     time.Time `json:"created_at"`
}

type SubmissionListResponseDTO struct {
	Submissions []SubmissionResponseDTO `json:"submissions"`
	Total       int                     `json:"total" example:"25"`
	Page        int                     `json:"page" example:"1"`
	Limit       int                     `json:"limit" example:"10"`
	TotalPages  int                     `json:"totalPages" example:"3"`
}

type WorkerStatsResponseDTO struct {
	TotalSubmissions   int   `json:"totalSubmissions" example:"25"`
	PendingSubmissions int   `json:"pendingSubmissions" example:"3"`
	TotalEarning       int64 `json:"totalEarning" example:"220"`
}
