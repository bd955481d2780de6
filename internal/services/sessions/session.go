package sessions

import (
	"context"
	"sync"

	"github.com/marklab/annotator/internal/models"
	"github.com/marklab/annotator/internal/services/autosave"
	"github.com/marklab/annotator/internal/services/documents"
	"github.com/marklab/annotator/internal/services/history"
	"github.com/marklab/annotator/internal/services/segments"
	"github.com/marklab/annotator/internal/services/timeline"
)

// Session is one video's live editing state: the segment sequence, its
// undo/redo history, the timeline interaction engine, and the autosave
// manager. All operations serialize under the session lock, matching the
// one-input-event-at-a-time editing model; only autosave writes run
// concurrently.
type Session struct {
	mu sync.Mutex

	video  models.Video
	store  *segments.Store
	seq    segments.Sequence
	hist   *history.History
	engine *timeline.Engine
	saver  *autosave.Manager
}

// State is a snapshot of a session for the editing UI
type State struct {
	Video      models.Video      `json:"video"`
	Segments   []models.Segment  `json:"segments"`
	SelectedID string            `json:"selectedId,omitempty"`
	InPoint    *float64          `json:"inPoint,omitempty"`
	OutPoint   *float64          `json:"outPoint,omitempty"`
	CanUndo    bool              `json:"canUndo"`
	CanRedo    bool              `json:"canRedo"`
	Dirty      bool              `json:"dirty"`
	Save       models.SaveState  `json:"save"`
	Preview    *timeline.Preview `json:"preview,omitempty"`
	Seek       *float64          `json:"seek,omitempty"`
}

func newSession(video models.Video, seq segments.Sequence, saver *autosave.Manager) *Session {
	return &Session{
		video:  video,
		store:  segments.NewStore(video.Duration),
		seq:    seq,
		hist:   history.New(),
		engine: timeline.NewEngine(video.Duration, defaultTimelineWidth),
		saver:  saver,
	}
}

const defaultTimelineWidth = 1000

// Video returns the video this session edits
func (s *Session) Video() models.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.video
}

// Segments returns a copy of the current segment sequence
func (s *Session) Segments() segments.Sequence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Clone()
}

// State returns a full snapshot of the session
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Commit turns the transient in/out marks into a new segment. Fails when
// the description is empty or either mark is missing.
func (s *Session) Commit(description string) (models.Segment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, out := s.engine.TransientMarks()
	next, seg, err := s.store.Commit(s.seq, in, out, description)
	if err != nil {
		return models.Segment{}, err
	}

	s.applyLocked(next)
	s.engine.ClearMarks()
	s.engine.Select(seg.ID)
	return seg, nil
}

// UpdateRange rewrites a segment's bounds
func (s *Session) UpdateRange(id string, start, end float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateRangeLocked(id, start, end)
}

// UpdateDescription rewrites a segment's description
func (s *Session) UpdateDescription(id, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.store.UpdateDescription(s.seq, id, text)
	if err != nil {
		return err
	}
	s.applyLocked(next)
	return nil
}

// Delete removes a segment
func (s *Session) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.store.Delete(s.seq, id)
	if err != nil {
		return err
	}
	s.applyLocked(next)
	if s.engine.SelectedID() == id {
		s.engine.ClearSelection()
	}
	return nil
}

// SetLabelPosition moves a segment's on-screen label. Cosmetic: it records
// no history snapshot and schedules no save; the new position rides along
// with the next saved edit.
func (s *Session) SetLabelPosition(id string, pos *models.LabelPosition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.store.SetLabelPosition(s.seq, id, pos)
	if err != nil {
		return err
	}
	s.seq = next
	return nil
}

// Select marks a segment as selected; an empty id clears the selection
func (s *Session) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		s.engine.ClearSelection()
		return nil
	}
	if s.seq.Find(id) < 0 {
		return segments.ErrSegmentNotFound
	}
	s.engine.Select(id)
	return nil
}

// MarkIn records the playhead as the in point, or re-trims the selected
// segment's start.
func (s *Session) MarkIn(playhead float64) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyMarkLocked(s.engine.MarkIn(playhead, s.seq))
}

// MarkOut records the playhead as the out point, or re-trims the selected
// segment's end.
func (s *Session) MarkOut(playhead float64) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyMarkLocked(s.engine.MarkOut(playhead, s.seq))
}

// Undo restores the previous segment sequence. Selection and transient
// marks are left alone.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.hist.Undo(s.seq)
	if !ok {
		return false
	}
	s.seq = carryLabelPositions(prev, s.seq)
	s.saver.Schedule(documents.Encode(s.seq))
	return true
}

// Redo reverses the most recent undo
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.hist.Redo(s.seq)
	if !ok {
		return false
	}
	s.seq = carryLabelPositions(next, s.seq)
	s.saver.Schedule(documents.Encode(s.seq))
	return true
}

// PointerDown begins a timeline gesture at pixel x. A positive width
// updates the rendered timeline viewport first.
func (s *Session) PointerDown(x, width float64) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if width > 0 {
		s.engine.SetViewport(width)
	}
	s.engine.PointerDown(x, s.seq)
	return s.stateLocked()
}

// PointerMove updates the in-progress gesture; the returned state carries
// the drag preview. The store is untouched until release.
func (s *Session) PointerMove(x float64) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	preview := s.engine.PointerMove(x)
	state := s.stateLocked()
	state.Preview = preview
	return state
}

// PointerUp completes the gesture: a drag commits a single range change, a
// click selects or seeks.
func (s *Session) PointerUp(x float64) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	gesture := s.engine.PointerUp(x)
	if gesture.Range != nil {
		// Drags preview locally and commit once on release, so a resize or
		// move lands as one history entry.
		_ = s.updateRangeLocked(gesture.Range.SegmentID, gesture.Range.Start, gesture.Range.End)
	}

	state := s.stateLocked()
	state.Seek = gesture.Seek
	return state
}

// SaveState returns the current autosave state
func (s *Session) SaveState() models.SaveState {
	return s.saver.State()
}

// Dirty reports whether unsaved work exists
func (s *Session) Dirty() bool {
	return s.saver.Dirty()
}

// ForceSave writes the newest snapshot immediately, skipping the debounce.
// Used before navigating away or closing.
func (s *Session) ForceSave(ctx context.Context) error {
	return s.saver.ForceSave(ctx)
}

func (s *Session) close(ctx context.Context) error {
	var err error
	if s.saver.Dirty() {
		err = s.saver.ForceSave(ctx)
	}
	s.saver.Stop()
	return err
}

// applyLocked swaps in a mutated sequence, recording the pre-mutation
// snapshot and scheduling a save of the result.
func (s *Session) applyLocked(next segments.Sequence) {
	s.hist.Record(s.seq)
	s.seq = next
	s.saver.Schedule(documents.Encode(s.seq))
}

func (s *Session) updateRangeLocked(id string, start, end float64) error {
	next, err := s.store.UpdateRange(s.seq, id, start, end)
	if err != nil {
		return err
	}
	s.applyLocked(next)
	return nil
}

func (s *Session) applyMarkLocked(res timeline.MarkResult) (State, error) {
	if res.Range != nil {
		if err := s.updateRangeLocked(res.Range.SegmentID, res.Range.Start, res.Range.End); err != nil {
			return s.stateLocked(), err
		}
	}
	return s.stateLocked(), nil
}

// carryLabelPositions overlays the current label positions onto a restored
// snapshot. Label moves live outside undo history, so undoing or redoing a
// segment mutation must not revert a later label move.
func carryLabelPositions(restored, current segments.Sequence) segments.Sequence {
	out := restored.Clone()
	for i := range out {
		j := current.Find(out[i].ID)
		if j < 0 {
			continue
		}
		if pos := current[j].LabelPosition; pos != nil {
			copied := *pos
			out[i].LabelPosition = &copied
		} else {
			out[i].LabelPosition = nil
		}
	}
	return out
}

func (s *Session) stateLocked() State {
	in, out := s.engine.TransientMarks()
	return State{
		Video:      s.video,
		Segments:   s.seq.Clone(),
		SelectedID: s.engine.SelectedID(),
		InPoint:    in,
		OutPoint:   out,
		CanUndo:    s.hist.CanUndo(),
		CanRedo:    s.hist.CanRedo(),
		Dirty:      s.saver.Dirty(),
		Save:       s.saver.State(),
	}
}
