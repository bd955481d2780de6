package videos

import (
	"context"
	"errors"

	"github.com/marklab/annotator/internal/models"
)

// ErrVideoNotFound is returned when no video matches the given key
var ErrVideoNotFound = errors.New("video not found")

// Repository defines the interface for video catalog data access
type Repository interface {
	CreateVideo(ctx context.Context, video *models.Video) error
	GetVideoByKey(ctx context.Context, key string) (*models.Video, error)
	ListVideos(ctx context.Context) ([]models.Video, error)
	DeleteVideo(ctx context.Context, key string) error
}

// Service defines the interface for video catalog business logic
type Service interface {
	// RegisterVideo adds a video asset to the catalog
	RegisterVideo(ctx context.Context, video *models.Video) error

	// GetVideoByKey retrieves a video by its storage key
	GetVideoByKey(ctx context.Context, key string) (*models.Video, error)

	// ListVideos returns all registered videos
	ListVideos(ctx context.Context) ([]models.Video, error)

	// DeleteVideo removes a video from the catalog
	DeleteVideo(ctx context.Context, key string) error

	// PlayableURL resolves a storage key to a playable URL. The URL is
	// opaque to callers; its expiry and renewal are not managed here.
	PlayableURL(key string) string
}

// URLResolver turns a storage key into a playable URL for the video element
type URLResolver interface {
	Resolve(key string) string
}
