package videos

import (
	"github.com/gin-gonic/gin"
	"github.com/marklab/annotator/api/types"
)

// RegisterRoutes registers video catalog routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", ListVideos(deps))
	router.POST("", RegisterVideo(deps))
	router.GET("/:key", GetVideo(deps))
	router.GET("/:key/url", GetVideoURL(deps))
	router.DELETE("/:key", DeleteVideo(deps))
}
