package dto

import "time"

type CreateTaskRequestDTO struct {
	Title           string    `json:"task_title" validate:"required" example:"Review my landing page"`
	Detail          string    `json:"task_detail" example:"Open the page and note anything confusing"`
	RequiredWorkers int       `json:"required_workers" validate:"required,gt=0" example:"5"`
	PayableAmount   int64     `json:"payable_amount" validate:"required,gt=0" example:"10"`
	CompletionDate  time.Time `json:"completion_date" example:"2025-06-30T00:00:00Z"`
	SubmissionInfo  string    `json:"submission_info" example:"Paste a link to your notes"`
	ImageURL        string    `json:"task_image_url,omitempty"`
}

type UpdateTaskRequestDTO struct {
	Title          string `json:"task_title"`
	Detail         string `json:"task_detail"`
	SubmissionInfo string `json:"submission_info"`
}

type TaskResponseDTO struct {
	ID              int       `json:"id" example:"42"`
	Title           string    `json:"task_title"`
	Detail          string    `json:"task_detail"`
	BuyerEmail      string    `json:"buyer_email"`
	BuyerName       string    `json:"buyer_name"`
	RequiredWorkers int       `json:"required_workers" example:"5"`
	PayableAmount   int64     `json:"payable_amount" example:"10"`
	CompletionDate  time.Time `json:"completion_date"`
	SubmissionInfo  string    `json:"submission_info"`
	ImageURL        string    `json:"task_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type TaskListResponseDTO struct {
	Tasks []TaskResponseDTO `json:"tasks"`
	Total int               `json:"total" example:"37"`
	Page  int               `json:"page" example:"1"`
	Limit int               `json:"limit" example:"12"`
}

type BuyerStatsResponseDTO struct {
	TotalTasks     int    `json:"totalTasks" example:"12"`
	PendingWorkers int    `json:"pendingWorkers" example:"31"`
	TotalPayment   string `json:"totalPayment" example:"66.00"`
}
