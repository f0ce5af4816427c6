// Package workflow owns the application-status lattice and the employer-side
// transition driver.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jimezsa/suitlink/internal/models"
	"github.com/rs/zerolog"
)

var (
	ErrIllegalTransition  = errors.New("illegal status transition")
	ErrTransitionInFlight = errors.New("a status change for this application is already in progress")
)

// Transition is one action an employer may take from the current status.
type Transition struct {
	Target models.ApplicationStatus
	Label  string
}

// pending -> reviewed | accepted | rejected; reviewed -> accepted | rejected.
// accepted and rejected are terminal.
var lattice = map[models.ApplicationStatus][]Transition{
	models.StatusPending: {
		{Target: models.StatusReviewed, Label: "Mark as reviewed"},
		{Target: models.StatusAccepted, Label: "Accept"},
		{Target: models.StatusRejected, Label: "Reject"},
	},
	models.StatusReviewed: {
		{Target: models.StatusAccepted, Label: "Accept"},
		{Target: models.StatusRejected, Label: "Reject"},
	},
}

// AvailableTransitions never returns nil; terminal and unknown states yield
// an empty slice.
func AvailableTransitions(current models.ApplicationStatus) []Transition {
	next := lattice[current]
	out := make([]Transition, len(next))
	copy(out, next)
	return out
}

func CanTransition(from, to models.ApplicationStatus) bool {
	for _, t := range lattice[from] {
		if t.Target == to {
			return true
		}
	}
	return false
}

func IsTerminal(status models.ApplicationStatus) bool {
	return status.Valid() && len(lattice[status]) == 0
}

// StatusUpdater persists a status change; *api.Client satisfies it.
type StatusUpdater interface {
	UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error)
}

// Transitioner applies status changes one at a time per application. The
// local record only changes after the backend confirms.
type Transitioner struct {
	updater StatusUpdater
	logger  zerolog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewTransitioner(updater StatusUpdater, logger zerolog.Logger) *Transitioner {
	return &Transitioner{
		updater:  updater,
		logger:   logger,
		inFlight: map[string]struct{}{},
	}
}

// InFlight reports whether a change for id is awaiting the backend.
func (t *Transitioner) InFlight(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.inFlight[id]
	return ok
}

// Apply moves app to target. On failure app is left untouched and the error
// is returned as is; there is no retry.
func (t *Transitioner) Apply(ctx context.Context, app *models.Application, target models.ApplicationStatus) error {
	if app == nil || app.ID == "" {
		return errors.New("application id is required")
	}
	if !CanTransition(app.Status, target) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, app.Status, target)
	}

	t.mu.Lock()
	if _, busy := t.inFlight[app.ID]; busy {
		t.mu.Unlock()
		return ErrTransitionInFlight
	}
	t.inFlight[app.ID] = struct{}{}
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		delete(t.inFlight, app.ID)
		t.mu.Unlock()
	}()

	updated, err := t.updater.UpdateApplicationStatus(ctx, app.ID, target)
	if err != nil {
		t.logger.Warn().Err(err).
			Str("application", app.ID).
			Str("from", string(app.Status)).
			Str("to", string(target)).
			Msg("status change failed")
		return err
	}

	status := target
	if updated != nil && updated.Status != "" {
		status = updated.Status
	}
	t.logger.Debug().
		Str("application", app.ID).
		Str("from", string(app.Status)).
		Str("to", string(status)).
		Msg("status changed")
	app.Status = status
	return nil
}
