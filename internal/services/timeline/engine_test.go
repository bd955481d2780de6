package timeline

import (
	"testing"

	"github.com/marklab/annotator/internal/models"
	"github.com/marklab/annotator/internal/services/segments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// All tests use a 100s video on a 1000px timeline, so 1px = 0.1s.
func newTestEngine() *Engine {
	return NewEngine(100, 1000)
}

func seg(id string, start, end float64) models.Segment {
	return models.Segment{ID: id, Start: start, End: end, Description: id}
}

func TestEngine_TimeMapping(t *testing.T) {
	e := newTestEngine()

	assert.Equal(t, 50.0, e.TimeAt(500))
	assert.Equal(t, 0.0, e.TimeAt(-20))
	assert.Equal(t, 100.0, e.TimeAt(1500))
	assert.Equal(t, 500.0, e.PixelAt(50))
}

func TestEngine_HitTesting(t *testing.T) {
	e := newTestEngine()

	t.Run("edge band grabs the boundary", func(t *testing.T) {
		seq := segments.Sequence{seg("a", 10, 20)}

		// 7px right of the start boundary at 100px
		e.PointerDown(107, seq)
		preview := e.PointerMove(107)
		require.NotNil(t, preview)
		assert.Equal(t, "a", preview.SegmentID)

		g := e.PointerUp(107)
		assert.Nil(t, g.Seek)
		assert.Nil(t, g.Range, "click without travel only selects")
		assert.Equal(t, "a", g.SelectedID)
	})

	t.Run("edge priority beats an overlapping body", func(t *testing.T) {
		e := newTestEngine()
		seq := segments.Sequence{seg("a", 10, 20), seg("b", 14, 30)}

		// 140px sits inside a's body and exactly on b's start edge.
		e.PointerDown(140, seq)
		g := e.PointerUp(240)
		require.NotNil(t, g.Range)
		assert.Equal(t, "b", g.Range.SegmentID)
		assert.Equal(t, 24.0, g.Range.Start, "b's start follows the pointer")
		assert.Equal(t, 30.0, g.Range.End)
	})

	t.Run("earliest overlapping segment wins a body hit", func(t *testing.T) {
		e := newTestEngine()
		seq := segments.Sequence{seg("a", 10, 30), seg("b", 15, 25)}

		// 180px = 18s, inside both bodies, clear of all edges.
		e.PointerDown(180, seq)
		g := e.PointerUp(280)
		require.NotNil(t, g.Range)
		assert.Equal(t, "a", g.Range.SegmentID)
	})

	t.Run("empty area press seeks on release", func(t *testing.T) {
		e := newTestEngine()
		e.Select("a")

		e.PointerDown(500, segments.Sequence{seg("a", 10, 20)})
		g := e.PointerUp(500)
		require.NotNil(t, g.Seek)
		assert.Equal(t, 50.0, *g.Seek)
		assert.Empty(t, e.SelectedID(), "empty-area click clears selection")
	})
}

func TestEngine_ResizeDrag(t *testing.T) {
	seq := segments.Sequence{seg("a", 10, 20)}

	t.Run("drag end boundary", func(t *testing.T) {
		e := newTestEngine()
		e.PointerDown(200, seq)

		preview := e.PointerMove(400)
		require.NotNil(t, preview)
		assert.Equal(t, 10.0, preview.Start)
		assert.Equal(t, 40.0, preview.End)

		g := e.PointerUp(400)
		require.NotNil(t, g.Range)
		assert.Equal(t, 10.0, g.Range.Start)
		assert.Equal(t, 40.0, g.Range.End)
	})

	t.Run("end never crosses start", func(t *testing.T) {
		e := newTestEngine()
		e.PointerDown(200, seq)
		preview := e.PointerMove(50) // 5s, well before the 10s start
		require.NotNil(t, preview)
		assert.Equal(t, 10.0, preview.Start)
		assert.InDelta(t, 10.1, preview.End, 1e-9)
	})

	t.Run("start never crosses end", func(t *testing.T) {
		e := newTestEngine()
		e.PointerDown(100, seq)
		preview := e.PointerMove(950)
		require.NotNil(t, preview)
		assert.InDelta(t, 19.9, preview.Start, 1e-9)
		assert.Equal(t, 20.0, preview.End)
	})

	t.Run("bounds clamp to the video", func(t *testing.T) {
		e := newTestEngine()
		e.PointerDown(100, seq)
		preview := e.PointerMove(-50)
		require.NotNil(t, preview)
		assert.Equal(t, 0.0, preview.Start)
	})
}

func TestEngine_MoveDrag(t *testing.T) {
	seq := segments.Sequence{seg("a", 10, 20)}

	t.Run("shifts both bounds by the pointer delta", func(t *testing.T) {
		e := newTestEngine()
		e.PointerDown(150, seq) // grab at 15s
		preview := e.PointerMove(350)
		require.NotNil(t, preview)
		assert.Equal(t, 30.0, preview.Start)
		assert.Equal(t, 40.0, preview.End)
	})

	t.Run("preserves duration when clamped at the right edge", func(t *testing.T) {
		e := newTestEngine()
		e.PointerDown(150, seq)
		preview := e.PointerMove(990)
		require.NotNil(t, preview)
		assert.Equal(t, 90.0, preview.Start)
		assert.Equal(t, 100.0, preview.End)
		assert.Equal(t, 10.0, preview.End-preview.Start)
	})

	t.Run("preserves duration when clamped at zero", func(t *testing.T) {
		e := newTestEngine()
		e.PointerDown(150, seq)
		preview := e.PointerMove(-200)
		require.NotNil(t, preview)
		assert.Equal(t, 0.0, preview.Start)
		assert.Equal(t, 10.0, preview.End)
	})

	t.Run("selects the grabbed segment", func(t *testing.T) {
		e := newTestEngine()
		e.PointerDown(150, seq)
		e.PointerUp(150)
		assert.Equal(t, "a", e.SelectedID())
	})
}

func TestEngine_Marks(t *testing.T) {
	t.Run("marks are transient without a selection", func(t *testing.T) {
		e := newTestEngine()
		seq := segments.Sequence{}

		res := e.MarkIn(10.0, seq)
		assert.Nil(t, res.Range)
		require.NotNil(t, res.InPoint)
		assert.Equal(t, 10.0, *res.InPoint)

		res = e.MarkOut(14.5, seq)
		require.NotNil(t, res.OutPoint)
		assert.Equal(t, 14.5, *res.OutPoint)

		in, out := e.TransientMarks()
		assert.Equal(t, 10.0, *in)
		assert.Equal(t, 14.5, *out)
	})

	t.Run("marks rewrite the selected segment", func(t *testing.T) {
		e := newTestEngine()
		seq := segments.Sequence{seg("a", 10, 20)}
		e.Select("a")

		res := e.MarkIn(12.0, seq)
		require.NotNil(t, res.Range)
		assert.Equal(t, "a", res.Range.SegmentID)
		assert.Equal(t, 12.0, res.Range.Start)
		assert.Equal(t, 20.0, res.Range.End)

		res = e.MarkOut(25.0, seq)
		require.NotNil(t, res.Range)
		assert.Equal(t, 10.0, res.Range.Start)
		assert.Equal(t, 25.0, res.Range.End)

		in, out := e.TransientMarks()
		assert.Nil(t, in, "selected-segment marks leave transient points alone")
		assert.Nil(t, out)
	})

	t.Run("stale selection falls back to transient marks", func(t *testing.T) {
		e := newTestEngine()
		e.Select("gone")

		res := e.MarkIn(10.0, segments.Sequence{})
		assert.Nil(t, res.Range)
		require.NotNil(t, res.InPoint)
	})

	t.Run("playhead clamps to the video bounds", func(t *testing.T) {
		e := newTestEngine()
		res := e.MarkIn(-5.0, nil)
		assert.Equal(t, 0.0, *res.InPoint)

		res = e.MarkOut(250.0, nil)
		assert.Equal(t, 100.0, *res.OutPoint)
	})

	t.Run("clear marks", func(t *testing.T) {
		e := newTestEngine()
		e.MarkIn(10.0, nil)
		e.MarkOut(20.0, nil)
		e.ClearMarks()

		in, out := e.TransientMarks()
		assert.Nil(t, in)
		assert.Nil(t, out)
	})
}
