package models

// Document is the durable on-the-wire representation of one video's full
// segment sequence. One document exists per video; every save replaces the
// whole document rather than merging into it.
type Document struct {
	Segments []DocumentSegment `json:"segments"`
}

// DocumentSegment carries one segment with human-readable time labels
// ("MM:SS", or "HH:MM:SS" past an hour) instead of raw seconds.
type DocumentSegment struct {
	Start         string         `json:"start"`
	End           string         `json:"end"`
	Description   string         `json:"description"`
	LabelPosition *LabelPosition `json:"labelPosition,omitempty"`
}
