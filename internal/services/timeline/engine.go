package timeline

import (
	"github.com/marklab/annotator/internal/models"
	"github.com/marklab/annotator/internal/services/segments"
)

const (
	// EdgeHitBandPx is the pixel band around a segment boundary within which
	// a press grabs the boundary instead of the segment body.
	EdgeHitBandPx = 8.0

	// clickSlopPx is how far the pointer may travel before a press counts
	// as a drag rather than a click.
	clickSlopPx = 3.0
)

type dragKind int

const (
	dragNone dragKind = iota
	dragSeek
	dragResizeStart
	dragResizeEnd
	dragMove
)

type dragState struct {
	kind      dragKind
	segmentID string
	originX   float64
	grabTime  float64 // pointer time at press, for move deltas
	origStart float64
	origEnd   float64
	prevStart float64
	prevEnd   float64
	moved     bool
}

// RangeChange is a request to rewrite one segment's bounds in the store
type RangeChange struct {
	SegmentID string
	Start     float64
	End       float64
}

// Gesture is the outcome of a completed pointer interaction. At most one of
// Seek and Range is set.
type Gesture struct {
	Seek       *float64
	Range      *RangeChange
	SelectedID string
}

// Preview is the live, uncommitted shape of an in-progress drag. It is
// rendered only; the store is untouched until the pointer is released.
type Preview struct {
	SegmentID string  `json:"segmentId,omitempty"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
}

// MarkResult is the outcome of a mark-in/mark-out command. When a segment is
// selected the command rewrites that segment's bound (Range is set);
// otherwise it records a transient point for the next commit.
type MarkResult struct {
	Range    *RangeChange
	InPoint  *float64
	OutPoint *float64
}

// Engine converts pointer and keyboard input over a rendered timeline into
// segment store requests. It owns the transient in/out marks and the
// selection, neither of which is restored by undo.
type Engine struct {
	duration float64
	width    float64

	inPoint    *float64
	outPoint   *float64
	selectedID string
	drag       *dragState
}

// NewEngine creates an interaction engine for a video of the given duration,
// rendered on a timeline of the given pixel width.
func NewEngine(duration, width float64) *Engine {
	if width <= 0 {
		width = 1
	}
	return &Engine{duration: duration, width: width}
}

// SetViewport updates the rendered timeline width in pixels
func (e *Engine) SetViewport(width float64) {
	if width > 0 {
		e.width = width
	}
}

// TimeAt converts a pixel offset on the timeline to seconds, clamped to the
// video bounds.
func (e *Engine) TimeAt(x float64) float64 {
	return clamp(x/e.width*e.duration, 0, e.duration)
}

// PixelAt converts seconds to a pixel offset on the timeline
func (e *Engine) PixelAt(t float64) float64 {
	if e.duration <= 0 {
		return 0
	}
	return t / e.duration * e.width
}

// PointerDown begins a gesture. A press near a segment edge grabs that
// boundary, a press on a segment body grabs the whole segment (and selects
// it), and a press on empty timeline starts a click-to-seek.
func (e *Engine) PointerDown(x float64, seq segments.Sequence) {
	kind, seg := e.hitTest(x, seq)

	switch kind {
	case dragNone:
		e.drag = &dragState{kind: dragSeek, originX: x}
	default:
		e.selectedID = seg.ID
		e.drag = &dragState{
			kind:      kind,
			segmentID: seg.ID,
			originX:   x,
			grabTime:  e.TimeAt(x),
			origStart: seg.Start,
			origEnd:   seg.End,
			prevStart: seg.Start,
			prevEnd:   seg.End,
		}
	}
}

// PointerMove updates the in-progress gesture and returns the preview bounds
// to render, or nil when no segment drag is active. The store is never
// mutated here.
func (e *Engine) PointerMove(x float64) *Preview {
	d := e.drag
	if d == nil {
		return nil
	}

	if abs(x-d.originX) > clickSlopPx {
		d.moved = true
	}

	t := e.TimeAt(x)
	switch d.kind {
	case dragResizeStart:
		d.prevStart = clamp(t, 0, d.origEnd-models.MinSegmentSeparation)
		d.prevEnd = d.origEnd
	case dragResizeEnd:
		d.prevStart = d.origStart
		d.prevEnd = clamp(t, d.origStart+models.MinSegmentSeparation, e.duration)
	case dragMove:
		length := d.origEnd - d.origStart
		start := clamp(d.origStart+(t-d.grabTime), 0, e.duration-length)
		d.prevStart = start
		d.prevEnd = start + length
	default:
		return nil
	}

	return &Preview{SegmentID: d.segmentID, Start: d.prevStart, End: d.prevEnd}
}

// PointerUp completes the gesture. An empty-area click seeks (and clears the
// selection); a segment drag yields a single range change to commit; a
// segment click with no travel only selects.
func (e *Engine) PointerUp(x float64) Gesture {
	d := e.drag
	if d == nil {
		return Gesture{SelectedID: e.selectedID}
	}

	// Fold the release position into the preview so the final bounds
	// reflect the pointer's last location.
	e.PointerMove(x)
	e.drag = nil

	switch d.kind {
	case dragSeek:
		t := e.TimeAt(x)
		e.selectedID = ""
		return Gesture{Seek: &t}
	default:
		if !d.moved {
			return Gesture{SelectedID: e.selectedID}
		}
		return Gesture{
			Range:      &RangeChange{SegmentID: d.segmentID, Start: d.prevStart, End: d.prevEnd},
			SelectedID: e.selectedID,
		}
	}
}

// Select marks a segment as the current selection
func (e *Engine) Select(id string) {
	e.selectedID = id
}

// ClearSelection drops the current selection
func (e *Engine) ClearSelection() {
	e.selectedID = ""
}

// SelectedID returns the currently selected segment ID, or empty
func (e *Engine) SelectedID() string {
	return e.selectedID
}

// MarkIn records the playback position as the in point. With a selection the
// selected segment's start is rewritten instead, so an existing segment can
// be re-trimmed without re-entering its description.
func (e *Engine) MarkIn(playhead float64, seq segments.Sequence) MarkResult {
	playhead = clamp(playhead, 0, e.duration)

	if e.selectedID != "" {
		if idx := seq.Find(e.selectedID); idx >= 0 {
			return MarkResult{Range: &RangeChange{
				SegmentID: e.selectedID,
				Start:     playhead,
				End:       seq[idx].End,
			}}
		}
	}

	e.inPoint = &playhead
	return MarkResult{InPoint: e.inPoint, OutPoint: e.outPoint}
}

// MarkOut records the playback position as the out point, or rewrites the
// selected segment's end.
func (e *Engine) MarkOut(playhead float64, seq segments.Sequence) MarkResult {
	playhead = clamp(playhead, 0, e.duration)

	if e.selectedID != "" {
		if idx := seq.Find(e.selectedID); idx >= 0 {
			return MarkResult{Range: &RangeChange{
				SegmentID: e.selectedID,
				Start:     seq[idx].Start,
				End:       playhead,
			}}
		}
	}

	e.outPoint = &playhead
	return MarkResult{InPoint: e.inPoint, OutPoint: e.outPoint}
}

// TransientMarks returns the uncommitted in/out points
func (e *Engine) TransientMarks() (in, out *float64) {
	return e.inPoint, e.outPoint
}

// ClearMarks drops the transient in/out points, typically after a commit
func (e *Engine) ClearMarks() {
	e.inPoint = nil
	e.outPoint = nil
}

// Dragging reports whether a pointer gesture is in progress
func (e *Engine) Dragging() bool {
	return e.drag != nil
}

// hitTest resolves what sits under a pixel position. Edge proximity beats
// body hits; among overlapping segments the earliest in sequence order wins.
func (e *Engine) hitTest(x float64, seq segments.Sequence) (dragKind, models.Segment) {
	for _, seg := range seq {
		if abs(x-e.PixelAt(seg.Start)) <= EdgeHitBandPx {
			return dragResizeStart, seg
		}
		if abs(x-e.PixelAt(seg.End)) <= EdgeHitBandPx {
			return dragResizeEnd, seg
		}
	}

	t := e.TimeAt(x)
	for _, seg := range seq {
		if seg.Contains(t) {
			return dragMove, seg
		}
	}

	return dragNone, models.Segment{}
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

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
