package segments

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/marklab/annotator/internal/models"
)

// Label positions are kept away from the frame edge.
const (
	labelPositionMin = 5.0
	labelPositionMax = 95.0
)

// Sequence is the ordered-by-start collection of segments for one video.
// Overlapping segments are permitted; only the ordering invariant is
// enforced.
type Sequence []models.Segment

// Clone returns a deep copy of the sequence. Mutating operations never
// modify a sequence in place, so clones double as history snapshots.
func (s Sequence) Clone() Sequence {
	out := make(Sequence, len(s))
	for i, seg := range s {
		out[i] = seg.Clone()
	}
	return out
}

// Find returns the index of the segment with the given ID, or -1
func (s Sequence) Find(id string) int {
	for i, seg := range s {
		if seg.ID == id {
			return i
		}
	}
	return -1
}

// Store applies segment mutations for one video's timeline. Every operation
// returns a fresh sequence so callers can retain prior sequences as undo
// snapshots without copying defensively.
type Store struct {
	duration float64
}

// NewStore creates a segment store for a video of the given duration in seconds
func NewStore(duration float64) *Store {
	return &Store{duration: duration}
}

// Duration returns the video duration the store validates against
func (st *Store) Duration() float64 {
	return st.duration
}

// Commit turns a pair of marked points into a new segment. The earlier point
// becomes the start regardless of which was marked first. The description
// must be non-empty and both points must be present.
func (st *Store) Commit(seq Sequence, pointA, pointB *float64, description string) (Sequence, models.Segment, error) {
	if strings.TrimSpace(description) == "" {
		return seq, models.Segment{}, ErrEmptyDescription
	}
	if pointA == nil || pointB == nil {
		return seq, models.Segment{}, ErrMissingMark
	}

	start, end := *pointA, *pointB
	if end < start {
		start, end = end, start
	}
	start = clamp(start, 0, st.duration)
	end = clamp(end, 0, st.duration)
	if end <= start {
		return seq, models.Segment{}, ErrInvalidRange
	}

	segment := models.Segment{
		ID:          uuid.New().String(),
		Start:       start,
		End:         end,
		Description: strings.TrimSpace(description),
	}

	out := append(seq.Clone(), segment)
	sortByStart(out)
	return out, segment, nil
}

// UpdateRange replaces a segment's bounds. Values outside [0, duration] are
// clamped, and the end is floored at start plus the minimum separation.
// Overlap with other segments is not rejected.
func (st *Store) UpdateRange(seq Sequence, id string, start, end float64) (Sequence, error) {
	idx := seq.Find(id)
	if idx < 0 {
		return seq, ErrSegmentNotFound
	}

	start = clamp(start, 0, st.duration-models.MinSegmentSeparation)
	end = clamp(end, start+models.MinSegmentSeparation, st.duration)

	out := seq.Clone()
	out[idx].Start = start
	out[idx].End = end
	sortByStart(out)
	return out, nil
}

// UpdateDescription replaces a segment's description text
func (st *Store) UpdateDescription(seq Sequence, id, text string) (Sequence, error) {
	if strings.TrimSpace(text) == "" {
		return seq, ErrEmptyDescription
	}

	idx := seq.Find(id)
	if idx < 0 {
		return seq, ErrSegmentNotFound
	}

	out := seq.Clone()
	out[idx].Description = strings.TrimSpace(text)
	return out, nil
}

// Delete removes a segment from the sequence
func (st *Store) Delete(seq Sequence, id string) (Sequence, error) {
	idx := seq.Find(id)
	if idx < 0 {
		return seq, ErrSegmentNotFound
	}

	out := make(Sequence, 0, len(seq)-1)
	for i, seg := range seq {
		if i == idx {
			continue
		}
		out = append(out, seg.Clone())
	}
	return out, nil
}

// SetLabelPosition moves a segment's on-screen label. Coordinates are
// clamped to [5, 95] percent of the frame; nil clears the position.
// Label moves are cosmetic and are not recorded in undo history.
func (st *Store) SetLabelPosition(seq Sequence, id string, pos *models.LabelPosition) (Sequence, error) {
	idx := seq.Find(id)
	if idx < 0 {
		return seq, ErrSegmentNotFound
	}

	out := seq.Clone()
	if pos == nil {
		out[idx].LabelPosition = nil
		return out, nil
	}

	out[idx].LabelPosition = &models.LabelPosition{
		X: clamp(pos.X, labelPositionMin, labelPositionMax),
		Y: clamp(pos.Y, labelPositionMin, labelPositionMax),
	}
	return out, nil
}

func sortByStart(seq Sequence) {
	sort.SliceStable(seq, func(i, j int) bool {
		return seq[i].Start < seq[j].Start
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
