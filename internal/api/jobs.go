package api

import (
	"context"
	"net/url"
	"strconv"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/suitlink/internal/models"
)

// JobQuery holds the browse filters. Zero values are omitted from the request.
type JobQuery struct {
	Page           int
	Limit          int
	Search         string
	EmploymentType models.EmploymentType
	Remote         *bool
	SalaryMin      int
	SalaryMax      int
}

func (q JobQuery) Values() url.Values {
	values := pageQuery(q.Page, q.Limit)
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.EmploymentType != "" {
		values.Set("employmentType", string(q.EmploymentType))
	}
	if q.Remote != nil {
		values.Set("remote", strconv.FormatBool(*q.Remote))
	}
	if q.SalaryMin > 0 {
		values.Set("salaryMin", strconv.Itoa(q.SalaryMin))
	}
	if q.SalaryMax > 0 {
		values.Set("salaryMax", strconv.Itoa(q.SalaryMax))
	}
	return values
}

// JobInput is the create/edit body. Edit sends only non-zero fields.
type JobInput struct {
	Title          string                `json:"title,omitempty"`
	Description    string                `json:"description,omitempty"`
	Location       string                `json:"location,omitempty"`
	Remote         *bool                 `json:"remote,omitempty"`
	EmploymentType models.EmploymentType `json:"employmentType,omitempty"`
	SalaryRange    *models.SalaryRange   `json:"salaryRange,omitempty"`
	Requirements   *models.Requirements  `json:"requirements,omitempty"`
}

func (c *Client) ListJobs(ctx context.Context, q JobQuery) (models.Page[models.JobPosting], error) {
	var page models.Page[models.JobPosting]
	err := c.get(ctx, "/jobs", q.Values(), &page)
	return page, err
}

func (c *Client) Job(ctx context.Context, id string) (*models.JobPosting, error) {
	if err := requireID("job", id); err != nil {
		return nil, err
	}
	var job models.JobPosting
	if err := c.get(ctx, "/jobs/"+url.PathEscape(id), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// AppliedJobs lists the postings the current applicant applied to.
func (c *Client) AppliedJobs(ctx context.Context, page, limit int) (models.Page[models.JobPosting], error) {
	var out models.Page[models.JobPosting]
	err := c.get(ctx, "/jobs/applied", pageQuery(page, limit), &out)
	return out, err
}

// MyJobs lists the postings owned by the current employer.
func (c *Client) MyJobs(ctx context.Context, page, limit int) (models.Page[models.JobPosting], error) {
	var out models.Page[models.JobPosting]
	err := c.get(ctx, "/jobs/my", pageQuery(page, limit), &out)
	return out, err
}

func (c *Client) CreateJob(ctx context.Context, input JobInput) (*models.JobPosting, error) {
	var job models.JobPosting
	if err := c.send(ctx, fhttp.MethodPost, "/jobs", input, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) UpdateJob(ctx context.Context, id string, input JobInput) (*models.JobPosting, error) {
	if err := requireID("job", id); err != nil {
		return nil, err
	}
	if input == (JobInput{}) {
		return nil, errEmptyPatch
	}
	var job models.JobPosting
	if err := c.send(ctx, fhttp.MethodPatch, "/jobs/"+url.PathEscape(id), input, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// SetJobStatus closes or reopens a posting.
func (c *Client) SetJobStatus(ctx context.Context, id string, status models.JobStatus) (*models.JobPosting, error) {
	if err := requireID("job", id); err != nil {
		return nil, err
	}
	var job models.JobPosting
	body := map[string]string{"status": string(status)}
	if err := c.send(ctx, fhttp.MethodPatch, "/jobs/"+url.PathEscape(id)+"/status", body, &job); err != nil {
		return nil, err
	}
	return &job, nil
}
