package apply

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jimezsa/suitlink/internal/api"
	"github.com/jimezsa/suitlink/internal/models"
	"github.com/rs/zerolog"
)

type fakeSubmitter struct {
	requests []api.ApplyRequest
	err      error
}

func (f *fakeSubmitter) Apply(ctx context.Context, req api.ApplyRequest) (*models.Application, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Application{ID: "a1", JobPosting: models.JobRef{ID: req.JobPostingID}, Status: models.StatusPending}, nil
}

func readyProfile() *models.ApplicantProfile {
	return &models.ApplicantProfile{
		FirstName:   "Ana",
		CoverLetter: "I build things.",
		Resumes:     []models.Resume{{ID: "r1"}, {ID: "r2"}},
	}
}

func TestCanApply(t *testing.T) {
	tests := []struct {
		name     string
		profile  *models.ApplicantProfile
		applied  bool
		applying bool
		want     bool
	}{
		{"ready", readyProfile(), false, false, true},
		{"no profile", nil, false, false, false},
		{"no resume", &models.ApplicantProfile{FirstName: "Ana"}, false, false, false},
		{"already applied", readyProfile(), true, false, false},
		{"in flight", readyProfile(), false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanApply(tt.profile, tt.applied, tt.applying); got != tt.want {
				t.Fatalf("CanApply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyUsesFirstResumeAndCoverLetter(t *testing.T) {
	submitter := &fakeSubmitter{}
	flow := NewFlow(submitter, zerolog.Nop())

	if _, err := flow.Apply(context.Background(), "j1", readyProfile()); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	req := submitter.requests[0]
	if req.JobPostingID != "j1" || req.ResumeID != "r1" || req.CoverLetter != "I build things." {
		t.Fatalf("request = %+v", req)
	}
	if !flow.Applied("j1") {
		t.Fatalf("Applied(j1) = false after success")
	}

	if _, err := flow.Apply(context.Background(), "j1", readyProfile()); !errors.Is(err, api.ErrAlreadyApplied) {
		t.Fatalf("second Apply() error = %v, want ErrAlreadyApplied", err)
	}
	if len(submitter.requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(submitter.requests))
	}
}

func TestApplyWithoutResume(t *testing.T) {
	submitter := &fakeSubmitter{}
	flow := NewFlow(submitter, zerolog.Nop())

	_, err := flow.Apply(context.Background(), "j1", &models.ApplicantProfile{FirstName: "Ana"})
	if !errors.Is(err, api.ErrResumeRequired) {
		t.Fatalf("Apply() error = %v, want ErrResumeRequired", err)
	}
	if got := Guidance(err); got != "Please upload a resume before applying." {
		t.Fatalf("Guidance() = %q", got)
	}
	if len(submitter.requests) != 0 {
		t.Fatalf("request sent without resume")
	}
}

func TestApplyWithoutProfile(t *testing.T) {
	_, err := NewFlow(&fakeSubmitter{}, zerolog.Nop()).Apply(context.Background(), "j1", nil)
	if got := Guidance(err); got != "Please complete your profile before applying" {
		t.Fatalf("Guidance() = %q", got)
	}
}

func TestRemoteAlreadyAppliedMarksJob(t *testing.T) {
	submitter := &fakeSubmitter{err: &api.Error{
		Status:  http.StatusBadRequest,
		Message: "You have already applied to this job",
		Kind:    api.KindConflict,
		Reason:  api.ErrAlreadyApplied,
	}}
	flow := NewFlow(submitter, zerolog.Nop())

	_, err := flow.Apply(context.Background(), "j9", readyProfile())
	if got := Guidance(err); got != "You have already applied to this position" {
		t.Fatalf("Guidance() = %q", got)
	}
	if !flow.Applied("j9") {
		t.Fatalf("Applied(j9) = false after conflict")
	}
}

func TestNetworkFailureIsRetryable(t *testing.T) {
	submitter := &fakeSubmitter{err: &api.Error{Kind: api.KindTransient, Err: errors.New("connection reset")}}
	flow := NewFlow(submitter, zerolog.Nop())

	_, err := flow.Apply(context.Background(), "j1", readyProfile())
	if errors.Is(err, api.ErrAlreadyApplied) {
		t.Fatalf("network failure classified as already applied")
	}
	if flow.Applied("j1") {
		t.Fatalf("Applied(j1) = true after network failure")
	}
	if got := Guidance(err); got != "Network error. Check your connection and try again." {
		t.Fatalf("Guidance() = %q", got)
	}

	submitter.err = nil
	if _, err := flow.Apply(context.Background(), "j1", readyProfile()); err != nil {
		t.Fatalf("retry Apply() error = %v", err)
	}
}

func TestGuidanceForRemoteProfileConflict(t *testing.T) {
	err := &api.Error{Status: http.StatusBadRequest, Message: "Applicant profile required", Kind: api.KindConflict, Reason: api.ErrProfileIncomplete}
	if got := Guidance(err); got != "Please complete your applicant profile first" {
		t.Fatalf("Guidance() = %q", got)
	}
}
