package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/jimezsa/suitlink/internal/apply"
	"github.com/jimezsa/suitlink/internal/export"
	"github.com/jimezsa/suitlink/internal/session"
)

type ApplyCmd struct {
	JobID string `arg:"" help:"Job posting id."`
}

func (c *ApplyCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Applicant: true})
	if err != nil {
		return err
	}
	view, err := ctx.profile(bg)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	flow := apply.NewFlow(client, ctx.Logger)
	if applied, err := client.AppliedJobs(bg, 1, 100); err == nil {
		for _, job := range applied.Items {
			flow.MarkApplied(job.ID)
		}
	} else {
		ctx.Logger.Warn().Err(err).Msg("applied jobs unavailable")
	}

	app, err := flow.Apply(bg, c.JobID, view.Applicant)
	if err != nil {
		ctx.UI.Warnf("%s", apply.Guidance(err))
		return fmt.Errorf("apply: %w", err)
	}
	ctx.UI.Successf("Application submitted (%s). Status: %s", app.ID, ctx.UI.Status(string(app.Status)))
	return nil
}

type ApplicationsCmd struct {
	PageOptions
	OutputOptions
}

func (c *ApplicationsCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Applicant: true})
	if err != nil {
		return err
	}
	page, err := client.MyApplications(bg, c.Page, defaultInt(c.Limit, ctx.Config.DefaultLimit))
	if err != nil {
		return fmt.Errorf("list applications: %w", err)
	}
	if err := emit(ctx, c.OutputOptions, func(w io.Writer, format export.Format, opts export.WriteOptions) error {
		return export.WriteApplications(w, page.Items, format, opts)
	}); err != nil {
		return err
	}
	printPageFooter(ctx, page.Page, page.TotalPages, page.TotalItems)
	return nil
}
