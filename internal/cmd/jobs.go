package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jimezsa/suitlink/internal/api"
	"github.com/jimezsa/suitlink/internal/browse"
	"github.com/jimezsa/suitlink/internal/export"
	"github.com/jimezsa/suitlink/internal/models"
	"github.com/jimezsa/suitlink/internal/session"
)

type JobsCmd struct {
	List    JobsListCmd    `cmd:"" default:"withargs" help:"Search open job postings."`
	Browse  JobsBrowseCmd  `cmd:"" help:"Interactive search; each input line replaces the search text."`
	Show    JobsShowCmd    `cmd:"" help:"Show one posting."`
	Applied JobsAppliedCmd `cmd:"" help:"Postings you applied to (applicants)."`
	Mine    JobsMineCmd    `cmd:"" help:"Postings owned by your company (employers)."`
	Create  JobsCreateCmd  `cmd:"" help:"Create a posting (employers)."`
	Edit    JobsEditCmd    `cmd:"" help:"Edit a posting (employers)."`
	Close   JobsCloseCmd   `cmd:"" help:"Close a posting to new applications (employers)."`
	Reopen  JobsReopenCmd  `cmd:"" help:"Reopen a closed posting (employers)."`
}

// FilterOptions map to the browse filters.
type FilterOptions struct {
	Type      string `help:"Employment type." enum:",full-time,part-time,contract,internship" default:""`
	Remote    string `help:"Remote filter: true, false or empty for any." enum:",true,false" default:""`
	SalaryMin int    `help:"Minimum salary."`
	SalaryMax int    `help:"Maximum salary."`
}

func (f FilterOptions) filters(text string) (browse.Filters, error) {
	remote, err := parseTriState(f.Remote)
	if err != nil {
		return browse.Filters{}, err
	}
	if err := checkSalaryRange(f.SalaryMin, f.SalaryMax); err != nil {
		return browse.Filters{}, err
	}
	return browse.Filters{
		Text:           strings.TrimSpace(text),
		EmploymentType: models.EmploymentType(f.Type),
		Remote:         remote,
		SalaryMin:      f.SalaryMin,
		SalaryMax:      f.SalaryMax,
	}, nil
}

func checkSalaryRange(min, max int) error {
	if min < 0 || max < 0 {
		return fmt.Errorf("salary must not be negative")
	}
	if min > 0 && max > 0 && min > max {
		return fmt.Errorf("salary min (%d) is above salary max (%d)", min, max)
	}
	return nil
}

type PageOptions struct {
	Page  int `help:"Page number (1-based)." default:"1"`
	Limit int `help:"Items per page." env:"SUITLINK_DEFAULT_LIMIT"`
}

type JobsListCmd struct {
	Search string `arg:"" optional:"" help:"Free-text search."`
	FilterOptions
	PageOptions
	OutputOptions
}

func (c *JobsListCmd) Run(ctx *Context) error {
	filters, err := c.filters(c.Search)
	if err != nil {
		return err
	}
	view, err := newJobView(ctx, c.Limit)
	if err != nil {
		return err
	}
	view.SetFilters(filters)
	view.SetPage(c.Page)

	stop := startIndicator(ctx, "Searching")
	result, _ := view.Fetch(context.Background())
	stop()
	if result.Err != nil {
		return fmt.Errorf("list jobs: %w", result.Err)
	}

	if err := emit(ctx, c.OutputOptions, func(w io.Writer, format export.Format, opts export.WriteOptions) error {
		return export.WriteJobs(w, result.Page.Items, format, opts)
	}); err != nil {
		return err
	}
	printPageFooter(ctx, result.Page.Page, result.Page.TotalPages, result.Page.TotalItems)
	return nil
}

// newJobView marks applied jobs only when an applicant is signed in.
func newJobView(ctx *Context, limit int) (*browse.View, error) {
	client, err := ctx.API()
	if err != nil {
		return nil, err
	}
	user := ctx.resolver(client).CheckSession(context.Background())
	return browse.NewView(client, browse.Options{
		Limit:   defaultInt(limit, ctx.Config.DefaultLimit),
		Overlay: session.IsApplicant(user),
		Logger:  ctx.Logger,
	}), nil
}

type JobsShowCmd struct {
	ID string `arg:"" help:"Job posting id."`
	OutputOptions
}

func (c *JobsShowCmd) Run(ctx *Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}
	bg := context.Background()
	job, err := client.Job(bg, c.ID)
	if err != nil {
		return fmt.Errorf("show job: %w", err)
	}
	if user := ctx.resolver(client).CheckSession(bg); session.IsApplicant(user) {
		if applied, err := client.AppliedJobs(bg, 1, 100); err == nil {
			for _, item := range applied.Items {
				if item.ID == job.ID {
					job.Applied = true
				}
			}
		} else {
			ctx.Logger.Warn().Err(err).Msg("applied jobs unavailable")
		}
	}
	format, err := resolveFormat(ctx, c.OutputOptions, "")
	if err != nil {
		return err
	}
	return export.WriteJob(ctx.Out, *job, format)
}

type JobsAppliedCmd struct {
	PageOptions
	OutputOptions
}

func (c *JobsAppliedCmd) Run(ctx *Context) error {
	client, _, err := ctx.require(context.Background(), session.Requirement{Applicant: true})
	if err != nil {
		return err
	}
	page, err := client.AppliedJobs(context.Background(), c.Page, defaultInt(c.Limit, ctx.Config.DefaultLimit))
	if err != nil {
		return fmt.Errorf("list applied jobs: %w", err)
	}
	for i := range page.Items {
		page.Items[i].Applied = true
	}
	return emitJobs(ctx, c.OutputOptions, page)
}

type JobsMineCmd struct {
	PageOptions
	OutputOptions
}

func (c *JobsMineCmd) Run(ctx *Context) error {
	client, _, err := ctx.require(context.Background(), session.Requirement{Employer: true})
	if err != nil {
		return err
	}
	page, err := client.MyJobs(context.Background(), c.Page, defaultInt(c.Limit, ctx.Config.DefaultLimit))
	if err != nil {
		return fmt.Errorf("list my jobs: %w", err)
	}
	return emitJobs(ctx, c.OutputOptions, page)
}

func emitJobs(ctx *Context, opts OutputOptions, page models.Page[models.JobPosting]) error {
	if err := emit(ctx, opts, func(w io.Writer, format export.Format, wo export.WriteOptions) error {
		return export.WriteJobs(w, page.Items, format, wo)
	}); err != nil {
		return err
	}
	printPageFooter(ctx, page.Page, page.TotalPages, page.TotalItems)
	return nil
}

// JobFields are the editable posting fields shared by create and edit.
type JobFields struct {
	Title           string   `help:"Job title."`
	Description     string   `help:"Description text."`
	DescriptionFile string   `help:"Read the description from a file." type:"existingfile"`
	Location        string   `help:"Location."`
	Remote          string   `help:"Remote: true or false." enum:",true,false" default:""`
	Type            string   `help:"Employment type." enum:",full-time,part-time,contract,internship" default:""`
	SalaryMin       int      `help:"Minimum salary."`
	SalaryMax       int      `help:"Maximum salary."`
	Currency        string   `help:"Salary currency." default:""`
	Skills          []string `help:"Required skills (comma-separated)."`
	ExperienceYears int      `help:"Required years of experience."`
	Education       string   `help:"Required education level."`
}

func (f JobFields) input() (api.JobInput, error) {
	input := api.JobInput{
		Title:          strings.TrimSpace(f.Title),
		Description:    f.Description,
		Location:       strings.TrimSpace(f.Location),
		EmploymentType: models.EmploymentType(f.Type),
	}
	if f.DescriptionFile != "" {
		data, err := os.ReadFile(f.DescriptionFile)
		if err != nil {
			return api.JobInput{}, fmt.Errorf("read description: %w", err)
		}
		input.Description = string(data)
	}
	remote, err := parseTriState(f.Remote)
	if err != nil {
		return api.JobInput{}, err
	}
	input.Remote = remote

	if f.SalaryMin > 0 || f.SalaryMax > 0 || f.Currency != "" {
		if f.SalaryMin > 0 && f.SalaryMax > 0 && f.SalaryMin > f.SalaryMax {
			return api.JobInput{}, fmt.Errorf("--salary-min (%d) is above --salary-max (%d)", f.SalaryMin, f.SalaryMax)
		}
		input.SalaryRange = &models.SalaryRange{Min: f.SalaryMin, Max: f.SalaryMax, Currency: f.Currency}
	}
	if len(f.Skills) > 0 || f.ExperienceYears > 0 || f.Education != "" {
		input.Requirements = &models.Requirements{
			Skills:          trimAll(f.Skills),
			ExperienceYears: f.ExperienceYears,
			EducationLevel:  f.Education,
		}
	}
	return input, nil
}

type JobsCreateCmd struct {
	JobFields
}

func (c *JobsCreateCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Employer: true})
	if err != nil {
		return err
	}
	input, err := c.input()
	if err != nil {
		return err
	}
	switch {
	case input.Title == "":
		return fmt.Errorf("--title is required")
	case strings.TrimSpace(input.Description) == "":
		return fmt.Errorf("--description or --description-file is required")
	case input.EmploymentType == "":
		return fmt.Errorf("--type is required")
	}

	view, err := ctx.profile(bg)
	if err != nil {
		return fmt.Errorf("load company profile: %w", err)
	}
	if view.Kind == session.KindNone {
		return fmt.Errorf("%w: create a company profile first with `suitlink company create`", errNoProfile)
	}

	job, err := client.CreateJob(bg, input)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	ctx.UI.Successf("Created %s (%s)", job.Title, job.ID)
	return nil
}

type JobsEditCmd struct {
	ID string `arg:"" help:"Job posting id."`
	JobFields
}

func (c *JobsEditCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Employer: true})
	if err != nil {
		return err
	}
	input, err := c.input()
	if err != nil {
		return err
	}
	job, err := client.UpdateJob(bg, c.ID, input)
	if err != nil {
		return fmt.Errorf("edit job: %w", err)
	}
	ctx.UI.Successf("Updated %s (%s)", job.Title, job.ID)
	return nil
}

type JobsCloseCmd struct {
	ID string `arg:"" help:"Job posting id."`
}

type JobsReopenCmd struct {
	ID string `arg:"" help:"Job posting id."`
}

func (c *JobsCloseCmd) Run(ctx *Context) error {
	return setJobStatus(ctx, c.ID, models.JobClosed)
}

func (c *JobsReopenCmd) Run(ctx *Context) error {
	return setJobStatus(ctx, c.ID, models.JobOpen)
}

func setJobStatus(ctx *Context, id string, status models.JobStatus) error {
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Employer: true})
	if err != nil {
		return err
	}
	job, err := client.SetJobStatus(bg, id, status)
	if err != nil {
		return fmt.Errorf("set job status: %w", err)
	}
	ctx.UI.Successf("%s is now %s", firstNonEmpty(job.Title, id), ctx.UI.Status(string(job.Status)))
	return nil
}

func parseTriState(value string) (*bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("invalid boolean %q", value)
	}
	return &parsed, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
