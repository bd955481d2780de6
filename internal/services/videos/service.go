package videos

import (
	"context"
	"fmt"
	"strings"

	"github.com/marklab/annotator/internal/models"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
	resolver   URLResolver
}

// NewService creates a new video catalog service
func NewService(repository Repository, resolver URLResolver) Service {
	return &ServiceImpl{
		repository: repository,
		resolver:   resolver,
	}
}

// RegisterVideo adds a video asset to the catalog with validation
func (s *ServiceImpl) RegisterVideo(ctx context.Context, video *models.Video) error {
	if strings.TrimSpace(video.Key) == "" {
		return fmt.Errorf("video key is required")
	}
	if video.Duration <= 0 {
		return fmt.Errorf("video duration must be positive")
	}
	if video.Title == "" {
		video.Title = video.Key
	}

	return s.repository.CreateVideo(ctx, video)
}

// GetVideoByKey retrieves a video by its storage key
func (s *ServiceImpl) GetVideoByKey(ctx context.Context, key string) (*models.Video, error) {
	return s.repository.GetVideoByKey(ctx, key)
}

// ListVideos returns all registered videos
func (s *ServiceImpl) ListVideos(ctx context.Context) ([]models.Video, error) {
	return s.repository.ListVideos(ctx)
}

// DeleteVideo removes a video from the catalog
func (s *ServiceImpl) DeleteVideo(ctx context.Context, key string) error {
	return s.repository.DeleteVideo(ctx, key)
}

// PlayableURL resolves a storage key to a playable URL
func (s *ServiceImpl) PlayableURL(key string) string {
	return s.resolver.Resolve(key)
}

// StaticResolver resolves storage keys against a fixed base URL. Stands in
// for a signed-URL issuer when videos are served from a plain file host.
type StaticResolver struct {
	baseURL string
}

// NewStaticResolver creates a resolver rooted at baseURL
func NewStaticResolver(baseURL string) *StaticResolver {
	return &StaticResolver{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Resolve joins the storage key onto the base URL
func (r *StaticResolver) Resolve(key string) string {
	return r.baseURL + "/" + strings.TrimPrefix(key, "/")
}
