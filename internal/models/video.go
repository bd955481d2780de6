package models

import (
	"gorm.io/gorm"
)

// Video represents a registered video asset available for annotation
type Video struct {
	gorm.Model
	Key      string  `json:"key" gorm:"uniqueIndex;not null"` // Storage key, e.g. videos/line_a/cam2.mp4
	Title    string  `json:"title"`
	Duration float64 `json:"duration" gorm:"not null"` // Duration in seconds
}

// TableName returns the table name for the Video model
func (Video) TableName() string {
	return "videos"
}
