package models

import (
	"encoding/json"
	"time"
)

// ProductRecord is the immutable product data extracted from a listing page.
// Price and Description may be empty when the page does not expose them.
type ProductRecord struct {
	Title       string `json:"title"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

// RenderTask is the unit of work handed to the render workers over the task
// queue. The request path saves the downloaded images under WorkDir before
// enqueueing so the payload carries only paths.
type RenderTask struct {
	JobID      string    `json:"job_id" validate:"required"`
	Title      string    `json:"title" validate:"required"`
	Price      string    `json:"price"`
	Bullets    []string  `json:"bullets"`
	ImagePaths []string  `json:"image_paths" validate:"required"`
	OutputPath string    `json:"output_path" validate:"required"`
	WorkDir    string    `json:"work_dir" validate:"required"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

func (t *RenderTask) MarshalBinary() ([]byte, error) {
	return json.Marshal(t)
}

func (t *RenderTask) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, t)
}
