// Package session holds the per-viewer graph context: the current dataset,
// its time cursor and pinned positions.
package session

import (
	"sync"
	"time"

	"github.com/followscope/followscope/internal/models"
	"github.com/followscope/followscope/internal/viz"
)

// Session is one viewer's context. A submission moves it through
// Begin -> Finish (or Abort); only one submission may be in flight.
type Session struct {
	ID string

	mu       sync.Mutex
	inFlight bool
	binder   *viz.Binder
	lastUsed time.Time
}

func newSession(id string) *Session {
	return &Session{ID: id, lastUsed: time.Now()}
}

// Begin marks a submission as started. It fails with ErrRequestInFlight if
// one is already running.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return models.ErrRequestInFlight
	}

	s.inFlight = true
	s.lastUsed = time.Now()

	return nil
}

// Finish installs ds as the session's dataset, replacing and releasing the
// previous one, and ends the in-flight submission.
func (s *Session) Finish(ds *models.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.binder = viz.NewBinder(ds)
	s.inFlight = false
	s.lastUsed = time.Now()
}

// Abort ends the in-flight submission and keeps the previous dataset.
func (s *Session) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inFlight = false
}

// InFlight reports whether a submission is running.
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inFlight
}

// LastUsed is the time of the last submission or view.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastUsed
}

func (s *Session) loaded() (*viz.Binder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.binder == nil {
		return nil, models.ErrDatasetNotLoaded
	}

	s.lastUsed = time.Now()

	return s.binder, nil
}

// Dataset returns the loaded dataset.
func (s *Session) Dataset() (*models.Dataset, error) {
	b, err := s.loaded()
	if err != nil {
		return nil, err
	}

	return b.Dataset(), nil
}

// View renders the dataset at cutoff; nil renders the full graph.
func (s *Session) View(cutoff *int64) (*viz.View, error) {
	b, err := s.loaded()
	if err != nil {
		return nil, err
	}

	at := b.Cursor()
	if cutoff != nil {
		at = *cutoff
	} else if steps := b.Steps(); len(steps) > 0 {
		at = steps[len(steps)-1]
	}

	return b.SetCursor(at)
}

// Pin records a viewer position for a node.
func (s *Session) Pin(id models.NodeID, x, y float64) error {
	b, err := s.loaded()
	if err != nil {
		return err
	}

	return b.Pin(id, x, y)
}

// Unpin releases a pinned node.
func (s *Session) Unpin(id models.NodeID) error {
	b, err := s.loaded()
	if err != nil {
		return err
	}

	return b.Unpin(id)
}
