package sessions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/marklab/annotator/internal/services/autosave"
	"github.com/marklab/annotator/internal/services/documents"
	"github.com/marklab/annotator/internal/services/segments"
	"github.com/marklab/annotator/internal/services/videos"
)

// ErrSessionNotFound is returned when no session is open for a video key
var ErrSessionNotFound = errors.New("no open session for video")

// Registry maps video keys to live editing sessions. All autosave state is
// keyed per video through the session's own manager, so multiple videos can
// be open at once. Each video's document is exclusively owned by its one
// session; there is no multi-editor conflict handling.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	videos   videos.Service
	gateway  documents.Store
	saveOpts autosave.Options
}

// NewRegistry creates a session registry backed by the video catalog and
// the document gateway.
func NewRegistry(videoService videos.Service, gateway documents.Store, saveOpts autosave.Options) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		videos:   videoService,
		gateway:  gateway,
		saveOpts: saveOpts,
	}
}

// Open returns the live session for a video, loading its annotation
// document if the session does not exist yet. A missing document means "no
// annotations yet"; a malformed one is logged and editing starts from an
// empty sequence rather than blocking the user.
func (r *Registry) Open(ctx context.Context, videoKey string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[videoKey]; ok {
		return session, nil
	}

	video, err := r.videos.GetVideoByKey(ctx, videoKey)
	if err != nil {
		return nil, err
	}

	docKey := documents.KeyFor(video.Key)
	seq := segments.Sequence{}

	doc, err := r.gateway.Read(ctx, docKey)
	switch {
	case errors.Is(err, documents.ErrNotFound):
		// First visit; the document is created on the first successful save.
	case err != nil:
		return nil, fmt.Errorf("opening annotations for %s: %w", videoKey, err)
	default:
		decoded, decodeErr := documents.Decode(doc)
		if decodeErr != nil {
			log.Printf("[ERROR] annotations for %s are malformed, starting empty: %v", videoKey, decodeErr)
		} else {
			seq = decoded
		}
	}

	saver := autosave.NewManager(docKey, r.gateway, r.saveOpts)
	session := newSession(*video, seq, saver)
	r.sessions[videoKey] = session

	log.Printf("[DEBUG] opened session for %s (%d segments)", videoKey, len(seq))
	return session, nil
}

// Get returns the live session for a video, or ErrSessionNotFound
func (r *Registry) Get(videoKey string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[videoKey]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Close force-saves any unsaved work and tears the session down
func (r *Registry) Close(ctx context.Context, videoKey string) error {
	r.mu.Lock()
	session, ok := r.sessions[videoKey]
	delete(r.sessions, videoKey)
	r.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	return session.close(ctx)
}

// CloseAll tears down every open session, saving unsaved work. Used on
// server shutdown.
func (r *Registry) CloseAll(ctx context.Context) error {
	r.mu.Lock()
	open := make([]*Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		open = append(open, session)
	}
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	var firstErr error
	for _, session := range open {
		if err := session.close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
