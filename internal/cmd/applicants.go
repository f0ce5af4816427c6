package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jimezsa/suitlink/internal/aggregate"
	"github.com/jimezsa/suitlink/internal/api"
	"github.com/jimezsa/suitlink/internal/company"
	"github.com/jimezsa/suitlink/internal/export"
	"github.com/jimezsa/suitlink/internal/models"
	"github.com/jimezsa/suitlink/internal/session"
	"github.com/jimezsa/suitlink/internal/workflow"
)

var errAborted = errors.New("aborted")

type ApplicantsCmd struct {
	List   ApplicantsListCmd   `cmd:"" default:"withargs" help:"List applicants for a job."`
	Status ApplicantsStatusCmd `cmd:"" help:"Show or change an application's status."`
	Counts ApplicantsCountsCmd `cmd:"" help:"Applicant counts for each of your postings."`
}

type ApplicantsListCmd struct {
	JobID  string `arg:"" help:"Job posting id."`
	Status string `help:"Only this status." enum:",pending,reviewed,accepted,rejected" default:""`
	PageOptions
	OutputOptions
}

func (c *ApplicantsListCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Employer: true})
	if err != nil {
		return err
	}
	list := aggregate.NewApplicantList(client, c.JobID, defaultInt(c.Limit, ctx.Config.DefaultLimit))
	if err := list.SetStatusFilter(models.ApplicationStatus(c.Status)); err != nil {
		return err
	}
	list.SetPage(c.Page)
	if err := list.Load(bg); err != nil {
		return fmt.Errorf("list applicants: %w", err)
	}

	result := list.Result()
	if err := emit(ctx, c.OutputOptions, func(w io.Writer, format export.Format, opts export.WriteOptions) error {
		return export.WriteApplicants(w, result.Items, format, opts)
	}); err != nil {
		return err
	}
	printPageFooter(ctx, result.Page, result.TotalPages, result.TotalItems)
	return nil
}

type ApplicantsStatusCmd struct {
	JobID         string `arg:"" help:"Job posting id."`
	ApplicationID string `arg:"" help:"Application id."`
	Target        string `arg:"" optional:"" help:"New status; omit to list the allowed transitions." enum:",reviewed,accepted,rejected" default:""`
	Yes           bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ApplicantsStatusCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Employer: true})
	if err != nil {
		return err
	}

	app, err := findApplication(bg, client, c.JobID, c.ApplicationID)
	if err != nil {
		return err
	}

	transitions := workflow.AvailableTransitions(app.Status)
	if c.Target == "" {
		fmt.Fprintf(ctx.Out, "%s (%s): %s\n", firstNonEmpty(app.Applicant.Name, app.ID), app.ID, ctx.UI.Status(string(app.Status)))
		if len(transitions) == 0 {
			fmt.Fprintln(ctx.Out, "No further changes allowed.")
			return nil
		}
		for _, t := range transitions {
			fmt.Fprintf(ctx.Out, "  %-10s %s\n", t.Target, t.Label)
		}
		return nil
	}

	target := models.ApplicationStatus(c.Target)
	if !workflow.CanTransition(app.Status, target) {
		return fmt.Errorf("cannot move %s from %s to %s", app.ID, app.Status, target)
	}
	if !c.Yes && !confirm(ctx, fmt.Sprintf("%s %s?", labelFor(transitions, target), firstNonEmpty(app.Applicant.Name, app.ID))) {
		return errAborted
	}

	transitioner := workflow.NewTransitioner(client, ctx.Logger)
	from := app.Status
	if err := transitioner.Apply(bg, app, target); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	ctx.UI.Successf("%s: %s -> %s", app.ID, from, ctx.UI.Status(string(app.Status)))
	return nil
}

// findApplication pages through a job's applicants until id turns up.
func findApplication(ctx context.Context, client *api.Client, jobID, id string) (*models.Application, error) {
	list := aggregate.NewApplicantList(client, jobID, 50)
	if err := list.Load(ctx); err != nil {
		return nil, fmt.Errorf("load applicants: %w", err)
	}
	for {
		if app, ok := list.Find(id); ok {
			return app, nil
		}
		moved, err := list.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("load applicants: %w", err)
		}
		if !moved {
			return nil, fmt.Errorf("application %s not found for job %s", id, jobID)
		}
	}
}

func labelFor(transitions []workflow.Transition, target models.ApplicationStatus) string {
	for _, t := range transitions {
		if t.Target == target {
			return t.Label
		}
	}
	return string(target)
}

func confirm(ctx *Context, question string) bool {
	if ctx.In == nil {
		return false
	}
	fmt.Fprintf(ctx.Err, "%s [y/N] ", question)
	line, err := bufio.NewReader(ctx.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

type ApplicantsCountsCmd struct {
	PageOptions
	OutputOptions
}

func (c *ApplicantsCountsCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Employer: true})
	if err != nil {
		return err
	}
	jobs, err := client.MyJobs(bg, c.Page, defaultInt(c.Limit, ctx.Config.DefaultLimit))
	if err != nil {
		return fmt.Errorf("list my jobs: %w", err)
	}

	stop := startIndicator(ctx, "Counting")
	counts := aggregate.CountApplicantsPerJob(bg, client, jobs.Items, aggregate.CountOptions{
		Concurrency: ctx.Config.CountConcurrency,
		Logger:      ctx.Logger,
	})
	stop()

	rows := export.CountsFor(jobs.Items, counts)
	return emit(ctx, c.OutputOptions, func(w io.Writer, format export.Format, opts export.WriteOptions) error {
		return export.WriteCounts(w, rows, format, opts)
	})
}

// DashboardCmd is the employer overview: company metrics plus per-job counts.
type DashboardCmd struct {
	Limit int `help:"Postings to include." default:"20"`
}

func (c *DashboardCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Employer: true})
	if err != nil {
		return err
	}
	view, err := ctx.profile(bg)
	if err != nil {
		return fmt.Errorf("load company profile: %w", err)
	}
	if view.Kind == session.KindNone {
		ctx.UI.Warnf("No company profile yet. Run `suitlink company create` to set one up.")
		return nil
	}

	jobs, err := client.MyJobs(bg, 1, c.Limit)
	if err != nil {
		return fmt.Errorf("list my jobs: %w", err)
	}
	counts := aggregate.CountApplicantsPerJob(bg, client, jobs.Items, aggregate.CountOptions{
		Concurrency: ctx.Config.CountConcurrency,
		Logger:      ctx.Logger,
	})
	rows := export.CountsFor(jobs.Items, counts)

	profile := view.Company
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, struct {
			Company *models.CompanyProfile `json:"company"`
			Jobs    []export.JobCount      `json:"jobs"`
			Total   int                    `json:"totalApplicants"`
		}{profile, rows, aggregate.Total(counts)})
	}

	fmt.Fprintf(ctx.Out, "%s [%s]\n", profile.CompanyName, company.Badge(profile.CredibilityScore))
	fmt.Fprintf(ctx.Out, "Active jobs: %d  Job posts: %d  Total applicants: %d\n\n",
		profile.Metrics.ActiveJobsCount, profile.Metrics.JobPostsCount, profile.Metrics.TotalApplicants)
	if err := export.WriteCounts(ctx.Out, rows, export.FormatTable, export.WriteOptions{ColorEnabled: ctx.UI.ColorEnabled}); err != nil {
		return err
	}
	if jobs.HasNextPage {
		fmt.Fprintf(ctx.Out, "\nShowing %d of %d postings.\n", len(jobs.Items), jobs.TotalItems)
	}
	if company.NeedsCompletion(profile.CredibilityScore) {
		ctx.UI.Warnf("Credibility score %s/10. Complete your company profile to get verified.", strconv.Itoa(profile.CredibilityScore))
	}
	return nil
}
