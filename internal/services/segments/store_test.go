package segments

import (
	"testing"

	"github.com/marklab/annotator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

func TestStore_Commit(t *testing.T) {
	store := NewStore(120)

	t.Run("creates segment with normalized bounds", func(t *testing.T) {
		seq, seg, err := store.Commit(nil, ptr(10.0), ptr(14.5), "pick item")
		require.NoError(t, err)

		assert.Len(t, seq, 1)
		assert.Equal(t, 10.0, seg.Start)
		assert.Equal(t, 14.5, seg.End)
		assert.Equal(t, "pick item", seg.Description)
		assert.NotEmpty(t, seg.ID)
	})

	t.Run("normalizes reversed marks identically", func(t *testing.T) {
		_, forward, err := store.Commit(nil, ptr(10.0), ptr(14.5), "pick item")
		require.NoError(t, err)

		_, reversed, err := store.Commit(nil, ptr(14.5), ptr(10.0), "pick item")
		require.NoError(t, err)

		assert.Equal(t, forward.Start, reversed.Start)
		assert.Equal(t, forward.End, reversed.End)
	})

	t.Run("inserts sorted by start", func(t *testing.T) {
		seq, _, err := store.Commit(nil, ptr(50.0), ptr(60.0), "second")
		require.NoError(t, err)

		seq, _, err = store.Commit(seq, ptr(10.0), ptr(20.0), "first")
		require.NoError(t, err)

		require.Len(t, seq, 2)
		assert.Equal(t, "first", seq[0].Description)
		assert.Equal(t, "second", seq[1].Description)
	})

	t.Run("permits overlapping segments", func(t *testing.T) {
		seq, _, err := store.Commit(nil, ptr(10.0), ptr(30.0), "outer")
		require.NoError(t, err)

		seq, _, err = store.Commit(seq, ptr(15.0), ptr(25.0), "inner")
		require.NoError(t, err)
		assert.Len(t, seq, 2)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		tests := []struct {
			name        string
			pointA      *float64
			pointB      *float64
			description string
			wantErr     error
		}{
			{"empty description", ptr(1.0), ptr(2.0), "", ErrEmptyDescription},
			{"whitespace description", ptr(1.0), ptr(2.0), "   ", ErrEmptyDescription},
			{"missing in point", nil, ptr(2.0), "text", ErrMissingMark},
			{"missing out point", ptr(1.0), nil, "text", ErrMissingMark},
			{"equal points", ptr(5.0), ptr(5.0), "text", ErrInvalidRange},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				seq, _, err := store.Commit(nil, tt.pointA, tt.pointB, tt.description)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, seq)
			})
		}
	})

	t.Run("does not mutate the input sequence", func(t *testing.T) {
		seq, _, err := store.Commit(nil, ptr(10.0), ptr(20.0), "original")
		require.NoError(t, err)

		_, _, err = store.Commit(seq, ptr(1.0), ptr(2.0), "new")
		require.NoError(t, err)

		require.Len(t, seq, 1)
		assert.Equal(t, "original", seq[0].Description)
	})
}

func TestStore_UpdateRange(t *testing.T) {
	store := NewStore(100)

	seed := func(t *testing.T) (Sequence, string) {
		seq, seg, err := store.Commit(nil, ptr(20.0), ptr(40.0), "seeded")
		require.NoError(t, err)
		return seq, seg.ID
	}

	t.Run("replaces bounds", func(t *testing.T) {
		seq, id := seed(t)

		out, err := store.UpdateRange(seq, id, 25.0, 45.0)
		require.NoError(t, err)
		assert.Equal(t, 25.0, out[0].Start)
		assert.Equal(t, 45.0, out[0].End)

		// original untouched
		assert.Equal(t, 20.0, seq[0].Start)
	})

	t.Run("clamps out-of-bounds values", func(t *testing.T) {
		seq, id := seed(t)

		out, err := store.UpdateRange(seq, id, -5.0, 150.0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, out[0].Start)
		assert.Equal(t, 100.0, out[0].End)
	})

	t.Run("floors end at minimum separation", func(t *testing.T) {
		seq, id := seed(t)

		out, err := store.UpdateRange(seq, id, 30.0, 30.0)
		require.NoError(t, err)
		assert.Equal(t, 30.0, out[0].Start)
		assert.InDelta(t, 30.1, out[0].End, 1e-9)
	})

	t.Run("keeps ordering after move past a neighbor", func(t *testing.T) {
		seq, id := seed(t)
		seq, _, err := store.Commit(seq, ptr(60.0), ptr(70.0), "later")
		require.NoError(t, err)

		out, err := store.UpdateRange(seq, id, 80.0, 90.0)
		require.NoError(t, err)
		assert.Equal(t, "later", out[0].Description)
		assert.Equal(t, "seeded", out[1].Description)
	})

	t.Run("unknown id", func(t *testing.T) {
		seq, _ := seed(t)
		_, err := store.UpdateRange(seq, "nope", 1, 2)
		assert.ErrorIs(t, err, ErrSegmentNotFound)
	})
}

func TestStore_UpdateDescription(t *testing.T) {
	store := NewStore(100)
	seq, seg, err := store.Commit(nil, ptr(10.0), ptr(20.0), "before")
	require.NoError(t, err)

	out, err := store.UpdateDescription(seq, seg.ID, "after")
	require.NoError(t, err)
	assert.Equal(t, "after", out[0].Description)
	assert.Equal(t, "before", seq[0].Description)

	_, err = store.UpdateDescription(seq, seg.ID, "  ")
	assert.ErrorIs(t, err, ErrEmptyDescription)

	_, err = store.UpdateDescription(seq, "nope", "text")
	assert.ErrorIs(t, err, ErrSegmentNotFound)
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(100)
	seq, first, err := store.Commit(nil, ptr(10.0), ptr(20.0), "first")
	require.NoError(t, err)
	seq, _, err = store.Commit(seq, ptr(30.0), ptr(40.0), "second")
	require.NoError(t, err)

	out, err := store.Delete(seq, first.ID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "second", out[0].Description)
	assert.Len(t, seq, 2)

	_, err = store.Delete(seq, "nope")
	assert.ErrorIs(t, err, ErrSegmentNotFound)
}

func TestStore_SetLabelPosition(t *testing.T) {
	store := NewStore(100)
	seq, seg, err := store.Commit(nil, ptr(10.0), ptr(20.0), "labeled")
	require.NoError(t, err)

	t.Run("sets position", func(t *testing.T) {
		out, err := store.SetLabelPosition(seq, seg.ID, &models.LabelPosition{X: 40, Y: 60})
		require.NoError(t, err)
		require.NotNil(t, out[0].LabelPosition)
		assert.Equal(t, 40.0, out[0].LabelPosition.X)
		assert.Equal(t, 60.0, out[0].LabelPosition.Y)
	})

	t.Run("clamps to frame margins", func(t *testing.T) {
		out, err := store.SetLabelPosition(seq, seg.ID, &models.LabelPosition{X: -10, Y: 120})
		require.NoError(t, err)
		assert.Equal(t, 5.0, out[0].LabelPosition.X)
		assert.Equal(t, 95.0, out[0].LabelPosition.Y)
	})

	t.Run("nil clears position", func(t *testing.T) {
		withPos, err := store.SetLabelPosition(seq, seg.ID, &models.LabelPosition{X: 50, Y: 50})
		require.NoError(t, err)

		out, err := store.SetLabelPosition(withPos, seg.ID, nil)
		require.NoError(t, err)
		assert.Nil(t, out[0].LabelPosition)
	})
}

func TestSequence_Clone(t *testing.T) {
	store := NewStore(100)
	seq, seg, err := store.Commit(nil, ptr(10.0), ptr(20.0), "cloned")
	require.NoError(t, err)
	seq, err = store.SetLabelPosition(seq, seg.ID, &models.LabelPosition{X: 50, Y: 50})
	require.NoError(t, err)

	clone := seq.Clone()
	clone[0].Description = "changed"
	clone[0].LabelPosition.X = 10

	assert.Equal(t, "cloned", seq[0].Description)
	assert.Equal(t, 50.0, seq[0].LabelPosition.X)
}
