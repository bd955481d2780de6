package models

import "time"

// SaveStatus tracks where a video's annotation document sits in the
// autosave lifecycle
type SaveStatus string

const (
	SaveStatusIdle    SaveStatus = "idle"
	SaveStatusPending SaveStatus = "pending"
	SaveStatusSaving  SaveStatus = "saving"
	SaveStatusSaved   SaveStatus = "saved"
	SaveStatusError   SaveStatus = "error"
)

// SaveState is the observable autosave state for one open video. It is
// reinitialized whenever a different video is opened.
type SaveState struct {
	Status    SaveStatus `json:"status"`
	Message   string     `json:"message,omitempty"`
	LastSaved *time.Time `json:"lastSaved,omitempty"`
	LastError string     `json:"lastError,omitempty"`
	Attempt   int        `json:"attempt,omitempty"` // current write attempt, 1-based
}
