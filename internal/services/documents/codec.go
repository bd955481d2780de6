package documents

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/marklab/annotator/internal/models"
	"github.com/marklab/annotator/internal/services/segments"
	"github.com/marklab/annotator/pkg/timefmt"
)

// KeyFor derives the annotation document key from a video storage key by
// replacing the video's extension with .json.
func KeyFor(videoKey string) string {
	ext := filepath.Ext(videoKey)
	return strings.TrimSuffix(videoKey, ext) + ".json"
}

// Encode converts an in-memory segment sequence to its wire document.
// Times become zero-padded labels; sub-second precision is dropped.
func Encode(seq segments.Sequence) *models.Document {
	doc := &models.Document{Segments: make([]models.DocumentSegment, 0, len(seq))}
	for _, seg := range seq {
		entry := models.DocumentSegment{
			Start:       timefmt.Format(seg.Start),
			End:         timefmt.Format(seg.End),
			Description: seg.Description,
		}
		if seg.LabelPosition != nil {
			pos := *seg.LabelPosition
			entry.LabelPosition = &pos
		}
		doc.Segments = append(doc.Segments, entry)
	}
	return doc
}

// Decode converts a wire document back to a segment sequence, assigning
// fresh IDs. Segment IDs are session-scoped and never persisted.
func Decode(doc *models.Document) (segments.Sequence, error) {
	if doc == nil {
		return segments.Sequence{}, nil
	}

	seq := make(segments.Sequence, 0, len(doc.Segments))
	for i, entry := range doc.Segments {
		start, err := timefmt.Parse(entry.Start)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		end, err := timefmt.Parse(entry.End)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		if end < start {
			return nil, fmt.Errorf("segment %d: start %q is after end %q", i, entry.Start, entry.End)
		}
		if end == start {
			// Labels carry whole seconds only, so a sub-second segment lands
			// on equal labels after the encoder floors both bounds. Widen to
			// the minimum length rather than rejecting our own output.
			end = start + models.MinSegmentSeparation
		}

		seg := models.Segment{
			ID:          uuid.New().String(),
			Start:       start,
			End:         end,
			Description: entry.Description,
		}
		if entry.LabelPosition != nil {
			pos := *entry.LabelPosition
			seg.LabelPosition = &pos
		}
		seq = append(seq, seg)
	}
	return seq, nil
}
