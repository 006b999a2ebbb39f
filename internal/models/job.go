package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether no further status transitions are allowed.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

type AdJob struct {
	JobID         uuid.UUID `json:"job_id" db:"job_id" redis:"job_id" validate:"omitempty"`
	SourceURL     string    `json:"source_url" db:"source_url" redis:"source_url" validate:"required,url"`
	ProductTitle  string    `json:"product_title" db:"product_title" redis:"product_title" validate:"required,lte=512"`
	VideoFilename string    `json:"video_filename" db:"video_filename" redis:"video_filename" validate:"omitempty,lte=255"`
	Status        JobStatus `json:"status" db:"status" redis:"status" validate:"omitempty"`
	ErrorMessage  string    `json:"error_message,omitempty" db:"error_message" redis:"error_message" validate:"omitempty"`
	CreatedAt     time.Time `json:"created_at" db:"created_at" redis:"created_at" validate:"omitempty"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at" redis:"updated_at" validate:"omitempty"`
}

type JobList struct {
	Jobs       []*AdJob `json:"jobs"`
	TotalCount int      `json:"total_count"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	HasMore    bool     `json:"has_more"`
}

type GenerateAdInput struct {
	URL string `json:"url" validate:"required,url"`
}
