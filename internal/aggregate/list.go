package aggregate

import (
	"context"
	"fmt"

	"github.com/jimezsa/suitlink/internal/api"
	"github.com/jimezsa/suitlink/internal/models"
)

// ApplicantLister fetches one page of a job's applicants; *api.Client satisfies it.
type ApplicantLister interface {
	JobApplicants(ctx context.Context, jobID string, q api.ApplicantQuery) (models.Page[models.Application], error)
}

// ApplicantList holds the view state of one job's applicants.
type ApplicantList struct {
	JobID  string
	Limit  int
	lister ApplicantLister

	page   int
	filter models.ApplicationStatus
	result models.Page[models.Application]
}

func NewApplicantList(lister ApplicantLister, jobID string, limit int) *ApplicantList {
	if limit < 1 {
		limit = 10
	}
	return &ApplicantList{JobID: jobID, Limit: limit, lister: lister, page: 1}
}

func (l *ApplicantList) Page() int { return l.page }

func (l *ApplicantList) StatusFilter() models.ApplicationStatus { return l.filter }

func (l *ApplicantList) Result() models.Page[models.Application] { return l.result }

// SetStatusFilter accepts "" for all statuses. Any change resets to page 1.
func (l *ApplicantList) SetStatusFilter(status models.ApplicationStatus) error {
	if status != "" && !status.Valid() {
		return fmt.Errorf("unknown status %q", status)
	}
	if status != l.filter {
		l.filter = status
		l.page = 1
	}
	return nil
}

// SetPage jumps to page, clamped to 1.
func (l *ApplicantList) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	l.page = page
}

// Load fetches the current page and stores the envelope as returned.
func (l *ApplicantList) Load(ctx context.Context) error {
	result, err := l.lister.JobApplicants(ctx, l.JobID, api.ApplicantQuery{
		Page:   l.page,
		Limit:  l.Limit,
		Status: l.filter,
	})
	if err != nil {
		return err
	}
	if result.Items == nil {
		result.Items = []models.Application{}
	}
	l.result = result
	return nil
}

// Next loads the following page when the last result says one exists.
func (l *ApplicantList) Next(ctx context.Context) (bool, error) {
	if !l.result.HasNextPage {
		return false, nil
	}
	l.page++
	if err := l.Load(ctx); err != nil {
		l.page--
		return false, err
	}
	return true, nil
}

func (l *ApplicantList) Prev(ctx context.Context) (bool, error) {
	if !l.result.HasPrevPage || l.page <= 1 {
		return false, nil
	}
	l.page--
	if err := l.Load(ctx); err != nil {
		l.page++
		return false, err
	}
	return true, nil
}

// Replace swaps in an updated application, typically after a confirmed
// status change. It reports whether a row matched.
func (l *ApplicantList) Replace(app models.Application) bool {
	for i := range l.result.Items {
		if l.result.Items[i].ID == app.ID {
			if app.JobPosting.ID == "" {
				app.JobPosting = l.result.Items[i].JobPosting
			}
			if app.Applicant == (models.ApplicantRef{}) {
				app.Applicant = l.result.Items[i].Applicant
			}
			if app.Resume == nil {
				app.Resume = l.result.Items[i].Resume
			}
			l.result.Items[i] = app
			return true
		}
	}
	return false
}

// Find returns the listed application with id.
func (l *ApplicantList) Find(id string) (*models.Application, bool) {
	for i := range l.result.Items {
		if l.result.Items[i].ID == id {
			return &l.result.Items[i], true
		}
	}
	return nil, false
}
