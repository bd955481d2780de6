package models

// MinSegmentSeparation is the smallest allowed distance between a segment's
// start and end, in seconds.
const MinSegmentSeparation = 0.1

// LabelPosition anchors a segment's on-screen label, in percentage-of-frame
// coordinates. Valid values lie in [5, 95] on both axes so the label never
// touches the frame edge.
type LabelPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment represents a labeled time interval on a video's timeline
type Segment struct {
	ID            string         `json:"id"`
	Start         float64        `json:"start"` // Time in seconds
	End           float64        `json:"end"`   // Time in seconds
	Description   string         `json:"description"`
	LabelPosition *LabelPosition `json:"labelPosition,omitempty"`
}

// Duration returns the segment length in seconds
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Clone returns a deep copy of the segment
func (s Segment) Clone() Segment {
	out := s
	if s.LabelPosition != nil {
		pos := *s.LabelPosition
		out.LabelPosition = &pos
	}
	return out
}

// Contains reports whether t falls within the segment's bounds
func (s Segment) Contains(t float64) bool {
	return t >= s.Start && t <= s.End
}
