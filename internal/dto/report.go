package dto

import "time"

type CreateReportRequestDTO struct {
	SubmissionID int    `json:"submission_id" validate:"required" example:"7"`
	Reason       string `json:"reason" example:"Spam submission"`
}

type ReportResponseDTO struct {
	ID           int       `json:"id"`
	SubmissionID int       `json:"submission_id"`
	ReportedBy   string    `json:"reported_by"`
	Reason       string    `json:"reason"`
	Status       string    `json:"status" example:"pending"`
	CreatedAt    time.Time `json:"created_at"`
}
