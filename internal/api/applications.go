package api

import (
	"context"
	"net/url"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/suitlink/internal/models"
)

type ApplyRequest struct {
	JobPostingID string `json:"jobPostingId"`
	ResumeID     string `json:"resumeId"`
	CoverLetter  string `json:"coverLetter"`
}

// ApplicantQuery filters the applicants of one job. An empty Status means all.
type ApplicantQuery struct {
	Page   int
	Limit  int
	Status models.ApplicationStatus
}

func (c *Client) MyApplications(ctx context.Context, page, limit int) (models.Page[models.Application], error) {
	var out models.Page[models.Application]
	err := c.get(ctx, "/applications/my", pageQuery(page, limit), &out)
	return out, err
}

func (c *Client) Apply(ctx context.Context, req ApplyRequest) (*models.Application, error) {
	if err := requireID("job", req.JobPostingID); err != nil {
		return nil, err
	}
	var app models.Application
	if err := c.send(ctx, fhttp.MethodPost, "/applications", req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) JobApplicants(ctx context.Context, jobID string, q ApplicantQuery) (models.Page[models.Application], error) {
	var out models.Page[models.Application]
	if err := requireID("job", jobID); err != nil {
		return out, err
	}
	values := pageQuery(q.Page, q.Limit)
	if q.Status != "" {
		values.Set("status", string(q.Status))
	}
	err := c.get(ctx, "/applications/job/"+url.PathEscape(jobID), values, &out)
	return out, err
}

// CountApplicants asks for a one-item page and reads totalItems.
func (c *Client) CountApplicants(ctx context.Context, jobID string) (int, error) {
	page, err := c.JobApplicants(ctx, jobID, ApplicantQuery{Page: 1, Limit: 1})
	if err != nil {
		return 0, err
	}
	if page.TotalItems == 0 && len(page.Items) > 0 {
		return len(page.Items), nil
	}
	return page.TotalItems, nil
}

func (c *Client) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error) {
	if err := requireID("application", id); err != nil {
		return nil, err
	}
	var app models.Application
	body := map[string]string{"status": string(status)}
	if err := c.send(ctx, fhttp.MethodPatch, "/applications/"+url.PathEscape(id)+"/status", body, &app); err != nil {
		return nil, err
	}
	return &app, nil
}
