package types

import (
	"github.com/marklab/annotator/internal/database"
	"github.com/marklab/annotator/internal/services/documents"
	"github.com/marklab/annotator/internal/services/sessions"
	"github.com/marklab/annotator/internal/services/videos"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB            *database.DB
	VideoService  videos.Service
	Sessions      *sessions.Registry
	DocumentStore documents.Store
}
