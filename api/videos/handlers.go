package videos

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marklab/annotator/api/types"
	"github.com/marklab/annotator/internal/models"
	videosService "github.com/marklab/annotator/internal/services/videos"
)

// RegisterVideoRequest is the body for adding a catalog entry
type RegisterVideoRequest struct {
	Key      string  `json:"key" binding:"required"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration" binding:"required"`
}

// ListVideos returns all registered videos
// @Summary      List videos
// @Description  Retrieve all videos registered in the annotation catalog
// @Tags         videos
// @Produce      json
// @Success      200 {object} types.VideosResponse "List of videos"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/videos [get]
func ListVideos(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := deps.VideoService.ListVideos(c.Request.Context())
		if err != nil {
			types.SendInternalError(c, "Failed to list videos")
			return
		}

		dtos := make([]types.VideoDTO, 0, len(list))
		for _, v := range list {
			dtos = append(dtos, toDTO(deps, &v))
		}

		types.SendSuccess(c, types.VideosResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Videos:       dtos,
			Count:        len(dtos),
		})
	}
}

// RegisterVideo adds a video to the catalog
// @Summary      Register video
// @Description  Add a video asset to the catalog so it can be annotated
// @Tags         videos
// @Accept       json
// @Produce      json
// @Param        video body RegisterVideoRequest true "Video data (key, title, duration)"
// @Success      201 {object} types.SingleVideoResponse "Registered video"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/videos [post]
func RegisterVideo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterVideoRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		video := &models.Video{
			Key:      req.Key,
			Title:    req.Title,
			Duration: req.Duration,
		}

		if err := deps.VideoService.RegisterVideo(c.Request.Context(), video); err != nil {
			types.SendBadRequest(c, err.Error())
			return
		}

		dto := toDTO(deps, video)
		types.SendCreated(c, types.SingleVideoResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Video:        &dto,
		})
	}
}

// GetVideo retrieves a single video by key
// @Summary      Get video
// @Description  Retrieve a catalog entry and its playable URL by storage key
// @Tags         videos
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Success      200 {object} types.SingleVideoResponse "Video"
// @Failure      404 {object} types.ErrorResponse "Video not found"
// @Router       /api/v1/videos/{key} [get]
func GetVideo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := types.VideoKeyParam(c)
		if !ok {
			return
		}

		video, err := deps.VideoService.GetVideoByKey(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, videosService.ErrVideoNotFound) {
				types.SendNotFound(c, "Video not found")
			} else {
				types.SendInternalError(c, "Failed to retrieve video")
			}
			return
		}

		dto := toDTO(deps, video)
		types.SendSuccess(c, types.SingleVideoResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Video:        &dto,
		})
	}
}

// GetVideoURL resolves a video's playable URL
// @Summary      Get playable URL
// @Description  Resolve the storage key to a URL the video element can play. The URL is opaque; expiry and renewal are the resolver's business.
// @Tags         videos
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Success      200 {object} object{status=string,url=string} "Playable URL"
// @Failure      404 {object} types.ErrorResponse "Video not found"
// @Router       /api/v1/videos/{key}/url [get]
func GetVideoURL(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := types.VideoKeyParam(c)
		if !ok {
			return
		}

		if _, err := deps.VideoService.GetVideoByKey(c.Request.Context(), key); err != nil {
			if errors.Is(err, videosService.ErrVideoNotFound) {
				types.SendNotFound(c, "Video not found")
			} else {
				types.SendInternalError(c, "Failed to retrieve video")
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": types.StatusOK,
			"url":    deps.VideoService.PlayableURL(key),
		})
	}
}

// DeleteVideo removes a video from the catalog
// @Summary      Delete video
// @Description  Remove a catalog entry. The annotation document is left on disk.
// @Tags         videos
// @Produce      json
// @Param        key path string true "Video storage key (path-escaped)"
// @Success      200 {object} types.BaseResponse "Deleted"
// @Failure      404 {object} types.ErrorResponse "Video not found"
// @Router       /api/v1/videos/{key} [delete]
func DeleteVideo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := types.VideoKeyParam(c)
		if !ok {
			return
		}

		if err := deps.VideoService.DeleteVideo(c.Request.Context(), key); err != nil {
			if errors.Is(err, videosService.ErrVideoNotFound) {
				types.SendNotFound(c, "Video not found")
			} else {
				types.SendInternalError(c, "Failed to delete video")
			}
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Video deleted"})
	}
}

func toDTO(deps *types.Dependencies, video *models.Video) types.VideoDTO {
	return types.VideoDTO{
		Key:      video.Key,
		Title:    video.Title,
		Duration: video.Duration,
		URL:      deps.VideoService.PlayableURL(video.Key),
	}
}
