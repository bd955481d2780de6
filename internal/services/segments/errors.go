package segments

import "errors"

var (
	// ErrEmptyDescription is returned when a commit is attempted without text
	ErrEmptyDescription = errors.New("description is required")

	// ErrMissingMark is returned when a commit is attempted before both an
	// in point and an out point have been marked
	ErrMissingMark = errors.New("both in and out points must be marked")

	// ErrInvalidRange is returned when a time range has no positive duration
	ErrInvalidRange = errors.New("start time must be before end time")

	// ErrSegmentNotFound is returned when no segment matches the given ID
	ErrSegmentNotFound = errors.New("segment not found")
)
