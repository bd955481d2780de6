package autosave

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/marklab/annotator/internal/models"
	"github.com/marklab/annotator/internal/services/documents"
)

const (
	DefaultDebounceDelay = 2 * time.Second
	DefaultMaxAttempts   = 3
)

// DefaultRetryBackoff is the wait between consecutive write attempts.
func DefaultRetryBackoff() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Options configures a Manager. Zero values fall back to the defaults.
type Options struct {
	DebounceDelay time.Duration
	MaxAttempts   int
	RetryBackoff  []time.Duration

	// OnChange, when set, observes every save-state transition. Called
	// without internal locks held.
	OnChange func(models.SaveState)
}

func (o Options) withDefaults() Options {
	if o.DebounceDelay <= 0 {
		o.DebounceDelay = DefaultDebounceDelay
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if len(o.RetryBackoff) == 0 {
		o.RetryBackoff = DefaultRetryBackoff()
	}
	return o
}

// Manager reconciles rapid local edits with a slow, fallible remote store
// for one open video. Edits are debounced, identical documents are never
// rewritten, queued saves coalesce so only the newest snapshot is sent, and
// a single in-flight write runs at a time with bounded retries.
type Manager struct {
	key     string
	gateway documents.Store
	opts    Options

	mu        sync.Mutex
	state     models.SaveState
	timer     *time.Timer
	pending   *models.Document // armed behind the debounce timer
	queued    *models.Document // coalesced task awaiting the writer
	failed    *models.Document // retained after retries exhaust, for manual retry
	inflight  bool
	lastSaved []byte
	stopped   bool

	// drainMu serializes drain passes so there is never more than one
	// in-flight write per video.
	drainMu sync.Mutex
}

// NewManager creates an autosave manager for the document at key. Save
// state starts at idle; it is fresh per opened video.
func NewManager(key string, gateway documents.Store, opts Options) *Manager {
	return &Manager{
		key:     key,
		gateway: gateway,
		opts:    opts.withDefaults(),
		state:   models.SaveState{Status: models.SaveStatusIdle},
	}
}

// Schedule registers the latest document snapshot for saving. Any armed
// debounce timer is cancelled and re-armed. A snapshot byte-identical to
// the last successful save short-circuits straight to saved with no write.
func (m *Manager) Schedule(doc *models.Document) {
	data, err := json.Marshal(doc)
	if err != nil {
		// Documents are plain structs; this only fires on programmer error.
		log.Printf("[ERROR] autosave %s: encoding snapshot: %v", m.key, err)
		return
	}

	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}

	m.cancelTimerLocked()
	m.pending = nil

	if m.lastSaved != nil && bytes.Equal(data, m.lastSaved) && m.queued == nil && !m.inflight {
		m.failed = nil
		state := m.setStateLocked(models.SaveState{
			Status:    models.SaveStatusSaved,
			LastSaved: m.state.LastSaved,
		})
		m.mu.Unlock()
		m.notify(state)
		return
	}

	m.pending = doc
	m.failed = nil
	m.timer = time.AfterFunc(m.opts.DebounceDelay, m.debounceFired)
	state := m.setStateLocked(models.SaveState{Status: models.SaveStatusPending})
	m.mu.Unlock()
	m.notify(state)
}

// ForceSave cancels any pending debounce and writes the newest snapshot
// synchronously. A document held after exhausted retries is retried here.
// Used before navigating away or closing a session.
func (m *Manager) ForceSave(ctx context.Context) error {
	m.mu.Lock()
	m.cancelTimerLocked()
	if m.pending != nil {
		m.queued = m.pending
		m.pending = nil
	} else if m.queued == nil && m.failed != nil {
		m.queued = m.failed
		m.failed = nil
	}
	m.mu.Unlock()

	m.drain(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Status == models.SaveStatusError {
		return fmt.Errorf("saving document %s: %s", m.key, m.state.LastError)
	}
	return nil
}

// Dirty reports whether unsaved work exists: a debounce timer armed, a
// write queued or in flight, or a failed document awaiting retry.
func (m *Manager) Dirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending != nil || m.queued != nil || m.inflight || m.failed != nil
}

// State returns a copy of the current save state
func (m *Manager) State() models.SaveState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Stop cancels any armed debounce timer and rejects further schedules. It
// does not interrupt an in-flight write.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelTimerLocked()
	m.pending = nil
	m.stopped = true
}

// debounceFired moves the debounced snapshot into the queue slot and kicks
// the writer. A snapshot already queued for this video is replaced, so only
// the most recent document state is ever sent.
func (m *Manager) debounceFired() {
	m.mu.Lock()
	if m.pending == nil || m.stopped {
		m.mu.Unlock()
		return
	}
	m.queued = m.pending
	m.pending = nil
	m.mu.Unlock()

	go m.drain(context.Background())
}

// drain writes queued snapshots one at a time until the queue slot is
// empty. Snapshots queued during a write are picked up before returning,
// so the stored document always converges on the latest edit.
func (m *Manager) drain(ctx context.Context) {
	m.drainMu.Lock()
	defer m.drainMu.Unlock()

	for {
		m.mu.Lock()
		doc := m.queued
		if doc == nil {
			m.mu.Unlock()
			return
		}
		m.queued = nil
		m.inflight = true
		m.mu.Unlock()

		m.write(ctx, doc)
	}
}

// write attempts one document with bounded retry and exponential backoff.
// An in-flight write is never cancelled once started; it completes or
// exhausts its retries.
func (m *Manager) write(ctx context.Context, doc *models.Document) {
	var lastErr error

	for attempt := 1; attempt <= m.opts.MaxAttempts; attempt++ {
		state := m.transition(models.SaveState{
			Status:  models.SaveStatusSaving,
			Message: fmt.Sprintf("saving (attempt %d/%d)", attempt, m.opts.MaxAttempts),
			Attempt: attempt,
		})
		m.notify(state)

		lastErr = m.gateway.Write(ctx, m.key, doc)
		if lastErr == nil {
			data, _ := json.Marshal(doc)
			now := time.Now().UTC()

			m.mu.Lock()
			m.lastSaved = data
			m.inflight = false
			saved := m.setStateLocked(models.SaveState{
				Status:    models.SaveStatusSaved,
				LastSaved: &now,
			})
			m.mu.Unlock()

			m.notify(saved)
			log.Printf("[DEBUG] autosave %s: saved (%d segments)", m.key, len(doc.Segments))
			return
		}

		log.Printf("[ERROR] autosave %s: write attempt %d/%d failed: %v",
			m.key, attempt, m.opts.MaxAttempts, lastErr)

		if attempt < m.opts.MaxAttempts {
			m.sleep(ctx, m.backoff(attempt))
			if ctx.Err() != nil {
				// Caller is gone; stop retrying instead of hammering the
				// gateway with the remaining attempts back-to-back.
				lastErr = fmt.Errorf("retry aborted: %w", ctx.Err())
				break
			}
		}
	}

	m.mu.Lock()
	m.inflight = false
	if m.queued == nil {
		// No newer edit arrived during the write; keep the failed snapshot
		// for a manual retry rather than discarding it. It is not requeued
		// automatically.
		m.failed = doc
	}
	state := m.setStateLocked(models.SaveState{
		Status:    models.SaveStatusError,
		Message:   fmt.Sprintf("save failed after %d attempts", m.opts.MaxAttempts),
		LastSaved: m.state.LastSaved,
		LastError: lastErr.Error(),
	})
	m.mu.Unlock()
	m.notify(state)
}

func (m *Manager) backoff(attempt int) time.Duration {
	idx := attempt - 1
	if idx >= len(m.opts.RetryBackoff) {
		idx = len(m.opts.RetryBackoff) - 1
	}
	return m.opts.RetryBackoff[idx]
}

func (m *Manager) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// transition applies a state change under the lock and returns the copy to
// notify with.
func (m *Manager) transition(next models.SaveState) models.SaveState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if next.LastSaved == nil {
		next.LastSaved = m.state.LastSaved
	}
	return m.setStateLocked(next)
}

func (m *Manager) setStateLocked(next models.SaveState) models.SaveState {
	m.state = next
	return next
}

func (m *Manager) notify(state models.SaveState) {
	if m.opts.OnChange != nil {
		m.opts.OnChange(state)
	}
}

func (m *Manager) cancelTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
