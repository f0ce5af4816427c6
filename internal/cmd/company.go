package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jimezsa/suitlink/internal/api"
	"github.com/jimezsa/suitlink/internal/company"
	"github.com/jimezsa/suitlink/internal/export"
	"github.com/jimezsa/suitlink/internal/models"
	"github.com/jimezsa/suitlink/internal/session"
)

type CompanyCmd struct {
	Show    CompanyShowCmd    `cmd:"" default:"1" help:"Show your company profile."`
	Create  CompanyCreateCmd  `cmd:"" help:"Create your company profile."`
	Update  CompanyUpdateCmd  `cmd:"" help:"Update your company profile."`
	Logo    CompanyLogoCmd    `cmd:"" help:"Upload a company logo."`
	Delete  CompanyDeleteCmd  `cmd:"" help:"Delete your company profile."`
	Preview CompanyPreviewCmd `cmd:"" help:"Estimate the credibility score for a set of fields."`
}

type CompanyFields struct {
	Name        string `help:"Company name."`
	Description string `help:"Company description."`
	Industry    string `help:"Industry."`
	Location    string `help:"Location."`
}

func (f CompanyFields) input() api.CompanyInput {
	return api.CompanyInput{
		CompanyName: strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Industry:    strings.TrimSpace(f.Industry),
		Location:    strings.TrimSpace(f.Location),
	}
}

func (f CompanyFields) profile() models.CompanyProfile {
	in := f.input()
	return models.CompanyProfile{
		CompanyName: in.CompanyName,
		Description: in.Description,
		Industry:    in.Industry,
		Location:    in.Location,
	}
}

type CompanyShowCmd struct {
	OutputOptions
}

func (c *CompanyShowCmd) Run(ctx *Context) error {
	bg := context.Background()
	if _, _, err := ctx.require(bg, session.Requirement{Employer: true}); err != nil {
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
	format, err := resolveFormat(ctx, c.OutputOptions, "")
	if err != nil {
		return err
	}
	return export.WriteCompanyProfile(ctx.Out, *view.Company, company.Badge(view.Company.CredibilityScore), format)
}

type CompanyCreateCmd struct {
	CompanyFields
}

func (c *CompanyCreateCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Employer: true})
	if err != nil {
		return err
	}
	input := c.input()
	if input.CompanyName == "" {
		return fmt.Errorf("--name is required")
	}
	printPreview(ctx, c.profile())

	profile, err := client.CreateCompanyProfile(bg, input)
	if err != nil {
		return fmt.Errorf("create company profile: %w", err)
	}
	ctx.invalidateProfile()
	ctx.UI.Successf("Created %s. Credibility score %d/10 [%s]", profile.CompanyName, profile.CredibilityScore, company.Badge(profile.CredibilityScore))
	return nil
}

type CompanyUpdateCmd struct {
	CompanyFields
}

func (c *CompanyUpdateCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Employer: true})
	if err != nil {
		return err
	}
	input := c.input()
	if input == (api.CompanyInput{}) {
		return fmt.Errorf("nothing to update; pass at least one field flag")
	}
	profile, err := client.UpdateCompanyProfile(bg, input)
	if err != nil {
		return fmt.Errorf("update company profile: %w", err)
	}
	ctx.invalidateProfile()
	ctx.UI.Successf("Updated %s. Credibility score %d/10 [%s]", profile.CompanyName, profile.CredibilityScore, company.Badge(profile.CredibilityScore))
	return nil
}

type CompanyLogoCmd struct {
	Path string `arg:"" type:"existingfile" help:"Image file."`
}

func (c *CompanyLogoCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Employer: true})
	if err != nil {
		return err
	}
	if _, err := client.UploadLogo(bg, c.Path); err != nil {
		return fmt.Errorf("upload logo: %w", err)
	}
	ctx.invalidateProfile()
	ctx.UI.Successf("Logo updated")
	return nil
}

type CompanyDeleteCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *CompanyDeleteCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Employer: true})
	if err != nil {
		return err
	}
	if !c.Yes && !confirm(ctx, "Delete your company profile?") {
		return errAborted
	}
	if err := client.DeleteCompanyProfile(bg); err != nil {
		return fmt.Errorf("delete company profile: %w", err)
	}
	ctx.invalidateProfile()
	ctx.UI.Successf("Company profile deleted")
	return nil
}

// CompanyPreviewCmd works offline.
type CompanyPreviewCmd struct {
	CompanyFields
	Logo bool `help:"Count a logo as uploaded."`
}

func (c *CompanyPreviewCmd) Run(ctx *Context) error {
	profile := c.profile()
	if c.Logo {
		profile.Logo = "set"
	}
	if ctx.JSONOutput {
		score := company.PreviewScore(profile)
		return writeJSON(ctx.Out, map[string]any{
			"score":    score,
			"verified": company.IsVerified(score),
			"missing":  company.MissingFields(profile),
		})
	}
	printPreview(ctx, profile)
	return nil
}

func printPreview(ctx *Context, profile models.CompanyProfile) {
	score := company.PreviewScore(profile)
	fmt.Fprintf(ctx.Out, "Estimated credibility score: %d/%d [%s]\n", score, company.MaxScore, company.Badge(score))
	if !company.NeedsCompletion(score) {
		return
	}
	missing := company.MissingFields(profile)
	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(ctx.Out, "  +%d %s\n", missing[name], name)
	}
}
