package sessions

import (
	"github.com/gin-gonic/gin"
	"github.com/marklab/annotator/api/types"
)

// RegisterRoutes registers editing session routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/:key/open", OpenSession(deps))
	router.POST("/:key/close", CloseSession(deps))
	router.GET("/:key/state", GetState(deps))

	// Segment mutations
	router.GET("/:key/segments", GetSegments(deps))
	router.POST("/:key/segments", CommitSegment(deps))
	router.PUT("/:key/segments/:id/range", UpdateRange(deps))
	router.PUT("/:key/segments/:id/description", UpdateDescription(deps))
	router.PUT("/:key/segments/:id/label-position", SetLabelPosition(deps))
	router.DELETE("/:key/segments/:id", DeleteSegment(deps))

	// Selection, marks, history
	router.POST("/:key/select", SelectSegment(deps))
	router.POST("/:key/mark-in", MarkIn(deps))
	router.POST("/:key/mark-out", MarkOut(deps))
	router.POST("/:key/undo", Undo(deps))
	router.POST("/:key/redo", Redo(deps))

	// Timeline gestures
	router.POST("/:key/pointer/down", PointerDown(deps))
	router.POST("/:key/pointer/move", PointerMove(deps))
	router.POST("/:key/pointer/up", PointerUp(deps))

	// Autosave
	router.GET("/:key/save-status", SaveStatus(deps))
	router.POST("/:key/save", ForceSave(deps))
	router.GET("/:key/dirty", Dirty(deps))
}
