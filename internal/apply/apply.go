// Package apply submits applicant applications and maps their failures to
// the guidance shown to the user.
package apply

import (
	"context"
	"errors"
	"sync"

	"github.com/jimezsa/suitlink/internal/api"
	"github.com/jimezsa/suitlink/internal/models"
	"github.com/rs/zerolog"
)

var ErrApplyInFlight = errors.New("application already being submitted")

// Submitter sends an application; *api.Client satisfies it.
type Submitter interface {
	Apply(ctx context.Context, req api.ApplyRequest) (*models.Application, error)
}

// CanApply reports whether the apply action should be offered.
func CanApply(profile *models.ApplicantProfile, applied, applying bool) bool {
	return profile != nil && len(profile.Resumes) > 0 && !applied && !applying
}

// Flow tracks which jobs were applied to in this session so a duplicate is
// never sent twice.
type Flow struct {
	submitter Submitter
	logger    zerolog.Logger

	mu       sync.Mutex
	applied  map[string]bool
	inFlight map[string]bool
}

func NewFlow(submitter Submitter, logger zerolog.Logger) *Flow {
	return &Flow{
		submitter: submitter,
		logger:    logger,
		applied:   map[string]bool{},
		inFlight:  map[string]bool{},
	}
}

// MarkApplied seeds the applied set, usually from /jobs/applied.
func (f *Flow) MarkApplied(jobIDs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range jobIDs {
		f.applied[id] = true
	}
}

func (f *Flow) Applied(jobID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.applied[jobID]
}

// Apply submits with the profile's first resume and saved cover letter.
// Missing prerequisites fail locally with the api sentinels.
func (f *Flow) Apply(ctx context.Context, jobID string, profile *models.ApplicantProfile) (*models.Application, error) {
	if profile == nil {
		return nil, api.ErrProfileIncomplete
	}
	if len(profile.Resumes) == 0 {
		return nil, api.ErrResumeRequired
	}

	f.mu.Lock()
	if f.applied[jobID] {
		f.mu.Unlock()
		return nil, api.ErrAlreadyApplied
	}
	if f.inFlight[jobID] {
		f.mu.Unlock()
		return nil, ErrApplyInFlight
	}
	f.inFlight[jobID] = true
	f.mu.Unlock()

	app, err := f.submitter.Apply(ctx, api.ApplyRequest{
		JobPostingID: jobID,
		ResumeID:     profile.Resumes[0].ID,
		CoverLetter:  profile.CoverLetter,
	})

	f.mu.Lock()
	delete(f.inFlight, jobID)
	if err == nil || errors.Is(err, api.ErrAlreadyApplied) {
		f.applied[jobID] = true
	}
	f.mu.Unlock()

	if err != nil {
		f.logger.Debug().Err(err).Str("job", jobID).Str("kind", string(api.KindOf(err))).Msg("apply failed")
		return nil, err
	}
	f.logger.Debug().Str("job", jobID).Str("application", app.ID).Msg("applied")
	return app, nil
}

// Guidance is the user-facing message for an apply failure.
func Guidance(err error) string {
	var apiErr *api.Error
	remote := errors.As(err, &apiErr)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, api.ErrAlreadyApplied):
		return "You have already applied to this position"
	case errors.Is(err, api.ErrProfileIncomplete) && remote:
		return "Please complete your applicant profile first"
	case errors.Is(err, api.ErrProfileIncomplete):
		return "Please complete your profile before applying"
	case errors.Is(err, api.ErrResumeRequired):
		return "Please upload a resume before applying."
	case errors.Is(err, ErrApplyInFlight):
		return "Your application is already being submitted"
	case remote && apiErr.Kind == api.KindTransient:
		return "Network error. Check your connection and try again."
	case remote:
		return apiErr.Error()
	default:
		return "Failed to submit application. Please try again."
	}
}
