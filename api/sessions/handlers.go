package sessions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marklab/annotator/api/types"
	"github.com/marklab/annotator/internal/models"
	"github.com/marklab/annotator/internal/services/segments"
	sessionsService "github.com/marklab/annotator/internal/services/sessions"
	videosService "github.com/marklab/annotator/internal/services/videos"
)

// CommitRequest is the body for turning the in/out marks into a segment
type CommitRequest struct {
	Description string `json:"description" binding:"required"`
}

// RangeRequest is the body for rewriting a segment's bounds
type RangeRequest struct {
	Start *float64 `json:"start" binding:"required"`
	End   *float64 `json:"end" binding:"required"`
}

// DescriptionRequest is the body for rewriting a segment's description
type DescriptionRequest struct {
	Description string `json:"description" binding:"required"`
}

// LabelPositionRequest is the body for moving a segment's label.
// A null position resets the label to its default placement.
type LabelPositionRequest struct {
	Position *models.LabelPosition `json:"position"`
}

// SelectRequest is the body for selecting a segment; empty id clears
type SelectRequest struct {
	ID string `json:"id"`
}

// MarkRequest is the body for mark-in/mark-out at the playhead
type MarkRequest struct {
	Playhead *float64 `json:"playhead" binding:"required"`
}

// PointerRequest is the body for timeline pointer events
type PointerRequest struct {
	X     *float64 `json:"x" binding:"required"`
	Width float64  `json:"width"`
}

// OpenSession opens (or returns) the editing session for a video
// @Summary      Open editing session
// @Description  Open the editing session for a video, loading its annotation document. Reopening an already open session returns the live state.
// @Tags         sessions
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Success      200 {object} object{status=string,state=sessionsService.State} "Session state"
// @Failure      404 {object} types.ErrorResponse "Video not found"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/sessions/{key}/open [post]
func OpenSession(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := types.VideoKeyParam(c)
		if !ok {
			return
		}

		session, err := deps.Sessions.Open(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, videosService.ErrVideoNotFound) {
				types.SendNotFound(c, "Video not found")
			} else {
				types.SendInternalError(c, "Failed to open session")
			}
			return
		}

		sendState(c, session.State())
	}
}

// CloseSession saves unsaved work and tears the session down
// @Summary      Close editing session
// @Description  Force-save any unsaved annotation work and close the session
// @Tags         sessions
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Success      200 {object} types.BaseResponse "Closed"
// @Failure      404 {object} types.ErrorResponse "No open session"
// @Failure      500 {object} types.ErrorResponse "Final save failed"
// @Router       /api/v1/sessions/{key}/close [post]
func CloseSession(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := types.VideoKeyParam(c)
		if !ok {
			return
		}

		if err := deps.Sessions.Close(c.Request.Context(), key); err != nil {
			if errors.Is(err, sessionsService.ErrSessionNotFound) {
				types.SendNotFound(c, "No open session for video")
			} else {
				types.SendInternalError(c, "Failed to save on close: "+err.Error())
			}
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Session closed"})
	}
}

// GetState returns the full session snapshot
// @Summary      Get session state
// @Tags         sessions
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Success      200 {object} object{status=string,state=sessionsService.State} "Session state"
// @Failure      404 {object} types.ErrorResponse "No open session"
// @Router       /api/v1/sessions/{key}/state [get]
func GetState(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFor(c, deps)
		if !ok {
			return
		}
		sendState(c, session.State())
	}
}

// GetSegments returns the current segment sequence
// @Summary      Get segments
// @Tags         sessions
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Success      200 {object} object{segments=[]models.Segment} "Segments ordered by start time"
// @Failure      404 {object} types.ErrorResponse "No open session"
// @Router       /api/v1/sessions/{key}/segments [get]
func GetSegments(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFor(c, deps)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"segments": session.Segments()})
	}
}

// CommitSegment turns the transient in/out marks into a new segment
// @Summary      Commit segment
// @Description  Create a segment from the current in/out marks. Fails when the description is empty or either mark is missing; the marks survive a failed commit.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Param        commit body CommitRequest true "Segment description"
// @Success      201 {object} object{status=string,segment=models.Segment,state=sessionsService.State} "Created segment"
// @Failure      400 {object} types.ErrorResponse "Missing marks or empty description"
// @Failure      404 {object} types.ErrorResponse "No open session"
// @Router       /api/v1/sessions/{key}/segments [post]
func CommitSegment(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFor(c, deps)
		if !ok {
			return
		}

		var req CommitRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		segment, err := session.Commit(req.Description)
		if err != nil {
			sendSegmentError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status":  types.StatusOK,
			"segment": segment,
			"state":   session.State(),
		})
	}
}

// UpdateRange rewrites a segment's bounds
// @Summary      Update segment range
// @Description  Rewrite a segment's start and end. Values are clamped to the video bounds and the minimum segment length.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Param        id path string true "Segment ID"
// @Param        range body RangeRequest true "New bounds in seconds"
// @Success      200 {object} object{status=string,state=sessionsService.State} "Updated state"
// @Failure      400 {object} types.ErrorResponse "Invalid range"
// @Failure      404 {object} types.ErrorResponse "Segment or session not found"
// @Router       /api/v1/sessions/{key}/segments/{id}/range [put]
func UpdateRange(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFor(c, deps)
		if !ok {
			return
		}

		var req RangeRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		if err := session.UpdateRange(c.Param("id"), *req.Start, *req.End); err != nil {
			sendSegmentError(c, err)
			return
		}
		sendState(c, session.State())
	}
}

// UpdateDescription rewrites a segment's description
// @Summary      Update segment description
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Param        id path string true "Segment ID"
// @Param        description body DescriptionRequest true "New description"
// @Success      200 {object} object{status=string,state=sessionsService.State} "Updated state"
// @Failure      400 {object} types.ErrorResponse "Empty description"
// @Failure      404 {object} types.ErrorResponse "Segment or session not found"
// @Router       /api/v1/sessions/{key}/segments/{id}/description [put]
func UpdateDescription(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFor(c, deps)
		if !ok {
			return
		}

		var req DescriptionRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		if err := session.UpdateDescription(c.Param("id"), req.Description); err != nil {
			sendSegmentError(c, err)
			return
		}
		sendState(c, session.State())
	}
}

// SetLabelPosition moves a segment's on-screen label
// @Summary      Move segment label
// @Description  Reposition a segment's label overlay. Cosmetic: no undo history entry is recorded and no save is scheduled.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Param        id path string true "Segment ID"
// @Param        position body LabelPositionRequest true "Label position in percent, null to reset"
// @Success      200 {object} object{status=string,state=sessionsService.State} "Updated state"
// @Failure      404 {object} types.ErrorResponse "Segment or session not found"
// @Router       /api/v1/sessions/{key}/segments/{id}/label-position [put]
func SetLabelPosition(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFor(c, deps)
		if !ok {
			return
		}

		var req LabelPositionRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		if err := session.SetLabelPosition(c.Param("id"), req.Position); err != nil {
			sendSegmentError(c, err)
			return
		}
		sendState(c, session.State())
	}
}

// DeleteSegment removes a segment
// @Summary      Delete segment
// @Tags         sessions
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Param        id path string true "Segment ID"
// @Success      200 {object} object{status=string,state=sessionsService.State} "Updated state"
// @Failure      404 {object} types.ErrorResponse "Segment or session not found"
// @Router       /api/v1/sessions/{key}/segments/{id} [delete]
func DeleteSegment(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFor(c, deps)
		if !ok {
			return
		}

		if err := session.Delete(c.Param("id")); err != nil {
			sendSegmentError(c, err)
			return
		}
		sendState(c, session.State())
	}
}

// SelectSegment selects a segment; an empty id clears the selection
// @Summary      Select segment
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Param        select body SelectRequest true "Segment ID, empty to clear"
// @Success      200 {object} object{status=string,state=sessionsService.State} "Updated state"
// @Failure      404 {object} types.ErrorResponse "Segment or session not found"
// @Router       /api/v1/sessions/{key}/select [post]
func SelectSegment(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFor(c, deps)
		if !ok {
			return
		}

		var req SelectRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		if err := session.Select(req.ID); err != nil {
			sendSegmentError(c, err)
			return
		}
		sendState(c, session.State())
	}
}

// MarkIn records the in point at the playhead
// @Summary      Mark in point
// @Description  Record the playhead as the in point, or re-trim the selected segment's start when a segment is selected.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Param        mark body MarkRequest true "Playhead position in seconds"
// @Success      200 {object} object{status=string,state=sessionsService.State} "Updated state"
// @Failure      404 {object} types.ErrorResponse "No open session"
// @Router       /api/v1/sessions/{key}/mark-in [post]
func MarkIn(deps *types.Dependencies) gin.HandlerFunc {
	return markHandler(deps, func(s *sessionsService.Session, playhead float64) (sessionsService.State, error) {
		return s.MarkIn(playhead)
	})
}

// MarkOut records the out point at the playhead
// @Summary      Mark out point
// @Description  Record the playhead as the out point, or re-trim the selected segment's end when a segment is selected.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Param        mark body MarkRequest true "Playhead position in seconds"
// @Success      200 {object} object{status=string,state=sessionsService.State} "Updated state"
// @Failure      404 {object} types.ErrorResponse "No open session"
// @Router       /api/v1/sessions/{key}/mark-out [post]
func MarkOut(deps *types.Dependencies) gin.HandlerFunc {
	return markHandler(deps, func(s *sessionsService.Session, playhead float64) (sessionsService.State, error) {
		return s.MarkOut(playhead)
	})
}

func markHandler(deps *types.Dependencies, apply func(*sessionsService.Session, float64) (sessionsService.State, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFor(c, deps)
		if !ok {
			return
		}

		var req MarkRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		state, err := apply(session, *req.Playhead)
		if err != nil {
			sendSegmentError(c, err)
			return
		}
		sendState(c, state)
	}
}

// Undo restores the previous segment snapshot
// @Summary      Undo
// @Description  Restore the segment sequence to its state before the most recent mutation. Selection, marks, and label positions are left alone.
// @Tags         sessions
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Success      200 {object} object{status=string,applied=bool,state=sessionsService.State} "Updated state"
// @Failure      404 {object} types.ErrorResponse "No open session"
// @Router       /api/v1/sessions/{key}/undo [post]
func Undo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFor(c, deps)
		if !ok {
			return
		}

		applied := session.Undo()
		c.JSON(http.StatusOK, gin.H{
			"status":  types.StatusOK,
			"applied": applied,
			"state":   session.State(),
		})
	}
}

// Redo reverses the most recent undo
// @Summary      Redo
// @Tags         sessions
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Success      200 {object} object{status=string,applied=bool,state=sessionsService.State} "Updated state"
// @Failure      404 {object} types.ErrorResponse "No open session"
// @Router       /api/v1/sessions/{key}/redo [post]
func Redo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFor(c, deps)
		if !ok {
			return
		}

		applied := session.Redo()
		c.JSON(http.StatusOK, gin.H{
			"status":  types.StatusOK,
			"applied": applied,
			"state":   session.State(),
		})
	}
}

// PointerDown begins a timeline gesture
// @Summary      Pointer down
// @Description  Begin a timeline gesture at pixel x. Width, when positive, sets the rendered timeline width used for pixel-to-time mapping.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Param        pointer body PointerRequest true "Pointer position"
// @Success      200 {object} object{status=string,state=sessionsService.State} "Session state"
// @Failure      404 {object} types.ErrorResponse "No open session"
// @Router       /api/v1/sessions/{key}/pointer/down [post]
func PointerDown(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFor(c, deps)
		if !ok {
			return
		}

		var req PointerRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		sendState(c, session.PointerDown(*req.X, req.Width))
	}
}

// PointerMove updates an in-progress gesture
// @Summary      Pointer move
// @Description  Update the in-progress gesture. The response carries a drag preview; the stored segments do not change until release.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Param        pointer body PointerRequest true "Pointer position"
// @Success      200 {object} object{status=string,state=sessionsService.State} "Session state with preview"
// @Failure      404 {object} types.ErrorResponse "No open session"
// @Router       /api/v1/sessions/{key}/pointer/move [post]
func PointerMove(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFor(c, deps)
		if !ok {
			return
		}

		var req PointerRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		sendState(c, session.PointerMove(*req.X))
	}
}

// PointerUp completes a timeline gesture
// @Summary      Pointer up
// @Description  Complete the gesture. A drag commits a single range change; a click selects a segment or seeks on empty timeline.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Param        pointer body PointerRequest true "Pointer position"
// @Success      200 {object} object{status=string,state=sessionsService.State} "Session state, seek set for timeline clicks"
// @Failure      404 {object} types.ErrorResponse "No open session"
// @Router       /api/v1/sessions/{key}/pointer/up [post]
func PointerUp(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFor(c, deps)
		if !ok {
			return
		}

		var req PointerRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		sendState(c, session.PointerUp(*req.X))
	}
}

// SaveStatus returns the autosave state
// @Summary      Save status
// @Description  Report the autosave lifecycle state (idle, pending, saving, saved, error) and whether unsaved work exists.
// @Tags         sessions
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Success      200 {object} types.SaveStatusResponse "Save state"
// @Failure      404 {object} types.ErrorResponse "No open session"
// @Router       /api/v1/sessions/{key}/save-status [get]
func SaveStatus(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFor(c, deps)
		if !ok {
			return
		}

		types.SendSuccess(c, types.SaveStatusResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Save:         session.SaveState(),
			Dirty:        session.Dirty(),
		})
	}
}

// ForceSave writes the newest snapshot immediately
// @Summary      Force save
// @Description  Skip the debounce and write the newest annotation snapshot now. Used before navigating away.
// @Tags         sessions
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Success      200 {object} types.SaveStatusResponse "Save state after the write"
// @Failure      404 {object} types.ErrorResponse "No open session"
// @Failure      500 {object} types.ErrorResponse "Save failed"
// @Router       /api/v1/sessions/{key}/save [post]
func ForceSave(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFor(c, deps)
		if !ok {
			return
		}

		if err := session.ForceSave(c.Request.Context()); err != nil {
			types.SendInternalError(c, "Save failed: "+err.Error())
			return
		}

		types.SendSuccess(c, types.SaveStatusResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Save:         session.SaveState(),
			Dirty:        session.Dirty(),
		})
	}
}

// Dirty reports whether unsaved work exists
// @Summary      Dirty check
// @Description  Report whether the session holds work not yet on disk: a pending debounce, a queued or in-flight write, or a failed save.
// @Tags         sessions
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Success      200 {object} object{status=string,dirty=bool} "Dirty flag"
// @Failure      404 {object} types.ErrorResponse "No open session"
// @Router       /api/v1/sessions/{key}/dirty [get]
func Dirty(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFor(c, deps)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": types.StatusOK,
			"dirty":  session.Dirty(),
		})
	}
}

// sessionFor resolves the live session for the key URL parameter.
// Sends the error response and returns false when there is none.
func sessionFor(c *gin.Context, deps *types.Dependencies) (*sessionsService.Session, bool) {
	key, ok := types.VideoKeyParam(c)
	if !ok {
		return nil, false
	}

	session, err := deps.Sessions.Get(key)
	if err != nil {
		types.SendNotFound(c, "No open session for video")
		return nil, false
	}
	return session, true
}

// sendSegmentError maps segment service errors onto HTTP statuses
func sendSegmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, segments.ErrSegmentNotFound):
		types.SendNotFound(c, "Segment not found")
	case errors.Is(err, segments.ErrEmptyDescription),
		errors.Is(err, segments.ErrMissingMark),
		errors.Is(err, segments.ErrInvalidRange):
		types.SendBadRequest(c, err.Error())
	default:
		types.SendInternalError(c, "Operation failed")
	}
}

func sendState(c *gin.Context, state sessionsService.State) {
	c.JSON(http.StatusOK, gin.H{
		"status": types.StatusOK,
		"state":  state,
	})
}
