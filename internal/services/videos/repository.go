package videos

import (
	"context"
	"errors"
	"fmt"

	"github.com/marklab/annotator/internal/models"
	"gorm.io/gorm"
)

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new video catalog repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// CreateVideo adds a video to the catalog
func (r *RepositoryImpl) CreateVideo(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return fmt.Errorf("creating video: %w", err)
	}
	return nil
}

// GetVideoByKey retrieves a video by its storage key
func (r *RepositoryImpl) GetVideoByKey(ctx context.Context, key string) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("getting video: %w", err)
	}
	return &video, nil
}

// ListVideos returns all registered videos ordered by key
func (r *RepositoryImpl) ListVideos(ctx context.Context) ([]models.Video, error) {
	var videos []models.Video
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}
	return videos, nil
}

// DeleteVideo removes a video from the catalog
func (r *RepositoryImpl) DeleteVideo(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).Where("key = ?", key).Delete(&models.Video{})
	if result.Error != nil {
		return fmt.Errorf("deleting video: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}
