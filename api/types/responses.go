package types

import "github.com/marklab/annotator/internal/models"

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// VideosResponse for video catalog lists
type VideosResponse struct {
	BaseResponse
	Videos []VideoDTO `json:"videos"`
	Count  int        `json:"count"`
}

// SingleVideoResponse for getting a single video
type SingleVideoResponse struct {
	BaseResponse
	Video *VideoDTO `json:"video"`
}

// VideoDTO is the wire representation of a catalog entry
type VideoDTO struct {
	Key      string  `json:"key"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
	URL      string  `json:"url,omitempty"`
}

// SaveStatusResponse for autosave state queries
type SaveStatusResponse struct {
	BaseResponse
	Save  models.SaveState `json:"save"`
	Dirty bool             `json:"dirty"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}
