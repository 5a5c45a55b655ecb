package models

import (
	"github.com/go-playground/validator/v10"
)

type UploadResponse struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	PageCount    int    `json:"page_count"`
}

type AnalyzeRequest struct {
	JobDescription   string `json:"job_description" validate:"required"`
	EmptyStorePolicy string `json:"empty_store_policy" validate:"omitempty,oneof=reject mock"`
}

// Validate checks the request's struct tags.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

type ProfileListResponse struct {
	Profiles []ProfileInfo `json:"profiles"`
}
