package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jimezsa/suitlink/internal/api"
	"github.com/jimezsa/suitlink/internal/export"
	"github.com/jimezsa/suitlink/internal/models"
	"github.com/jimezsa/suitlink/internal/resume"
	"github.com/jimezsa/suitlink/internal/session"
)

type ProfileCmd struct {
	Show       ProfileShowCmd   `cmd:"" default:"1" help:"Show your applicant profile."`
	Create     ProfileCreateCmd `cmd:"" help:"Create your applicant profile."`
	Set        ProfileSetCmd    `cmd:"" help:"Update personal details, cover letter or skills."`
	Avatar     ProfileAvatarCmd `cmd:"" help:"Upload a profile image."`
	Resume     ResumeCmd        `cmd:"" help:"Manage resumes."`
	Education  EducationCmd     `cmd:"" help:"Manage education entries."`
	Experience ExperienceCmd    `cmd:"" help:"Manage work experience entries."`
}

// ProfileFields are the personal and cover letter fields. Email is not
// editable here; it belongs to the account.
type ProfileFields struct {
	FirstName       string   `help:"First name."`
	MiddleName      string   `help:"Middle name."`
	LastName        string   `help:"Last name."`
	Phone           string   `help:"Phone number."`
	Location        string   `help:"Location."`
	CoverLetter     string   `help:"Default cover letter sent with applications."`
	CoverLetterFile string   `help:"Read the cover letter from a file." type:"existingfile"`
	Skills          []string `help:"Skills (comma-separated); replaces the current list."`
}

func (f ProfileFields) coverLetter() (string, error) {
	if f.CoverLetterFile == "" {
		return f.CoverLetter, nil
	}
	data, err := os.ReadFile(f.CoverLetterFile)
	if err != nil {
		return "", fmt.Errorf("read cover letter: %w", err)
	}
	return string(data), nil
}

// patch includes only the flags that were given, so it cannot clear a field.
func (f ProfileFields) patch() (api.ProfilePatch, error) {
	letter, err := f.coverLetter()
	if err != nil {
		return nil, err
	}
	patch := api.ProfilePatch{}
	set := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			patch[key] = value
		}
	}
	set("firstName", f.FirstName)
	set("middleName", f.MiddleName)
	set("lastName", f.LastName)
	set("phone", f.Phone)
	set("location", f.Location)
	set("coverLetter", letter)
	if skills := trimAll(f.Skills); len(skills) > 0 {
		patch["skills"] = skills
	}
	return patch, nil
}

type ProfileShowCmd struct {
	OutputOptions
}

func (c *ProfileShowCmd) Run(ctx *Context) error {
	bg := context.Background()
	_, user, err := ctx.require(bg, session.Requirement{Applicant: true})
	if err != nil {
		return err
	}
	view, err := ctx.profile(bg)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if view.Kind == session.KindNone {
		ctx.UI.Warnf("No profile yet. Run `suitlink profile create` to set one up.")
		return nil
	}
	format, err := resolveFormat(ctx, c.OutputOptions, "")
	if err != nil {
		return err
	}
	return export.WriteApplicantProfile(ctx.Out, *user, *view.Applicant, format)
}

type ProfileCreateCmd struct {
	ProfileFields
}

func (c *ProfileCreateCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Applicant: true})
	if err != nil {
		return err
	}
	if strings.TrimSpace(c.FirstName) == "" || strings.TrimSpace(c.LastName) == "" {
		return fmt.Errorf("--first-name and --last-name are required")
	}
	letter, err := c.coverLetter()
	if err != nil {
		return err
	}
	profile, err := client.CreateApplicantProfile(bg, models.ApplicantProfile{
		FirstName:   strings.TrimSpace(c.FirstName),
		MiddleName:  strings.TrimSpace(c.MiddleName),
		LastName:    strings.TrimSpace(c.LastName),
		Phone:       strings.TrimSpace(c.Phone),
		Location:    strings.TrimSpace(c.Location),
		CoverLetter: letter,
		Skills:      trimAll(c.Skills),
	})
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	ctx.invalidateProfile()
	ctx.UI.Successf("Profile created for %s. Upload a resume with `suitlink profile resume upload FILE`.", profile.FullName())
	return nil
}

type ProfileSetCmd struct {
	ProfileFields
}

func (c *ProfileSetCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Applicant: true})
	if err != nil {
		return err
	}
	patch, err := c.patch()
	if err != nil {
		return err
	}
	if len(patch) == 0 {
		return fmt.Errorf("nothing to update; pass at least one field flag")
	}
	if _, err := client.UpdateApplicantProfile(bg, patch); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	ctx.invalidateProfile()
	ctx.UI.Successf("Profile updated")
	return nil
}

type ProfileAvatarCmd struct {
	Path string `arg:"" type:"existingfile" help:"Image file."`
}

func (c *ProfileAvatarCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Applicant: true})
	if err != nil {
		return err
	}
	if _, err := client.UploadAvatar(bg, c.Path); err != nil {
		return fmt.Errorf("upload avatar: %w", err)
	}
	ctx.invalidateProfile()
	ctx.UI.Successf("Profile image updated")
	return nil
}

type ResumeCmd struct {
	Upload ResumeUploadCmd `cmd:"" help:"Upload a PDF resume."`
	Delete ResumeDeleteCmd `cmd:"" help:"Delete a resume."`
}

type ResumeUploadCmd struct {
	Path string `arg:"" help:"PDF file."`
}

func (c *ResumeUploadCmd) Run(ctx *Context) error {
	info, err := resume.Inspect(c.Path, ctx.Config.MaxResumeBytes())
	if err != nil {
		return err
	}
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Applicant: true})
	if err != nil {
		return err
	}
	ctx.Logger.Debug().Str("file", info.Name).Int64("bytes", info.Size).Int("pages", info.Pages).Msg("uploading resume")

	stop := startIndicator(ctx, "Uploading")
	profile, err := client.UploadResume(bg, info.Path)
	stop()
	if err != nil {
		return fmt.Errorf("upload resume: %w", err)
	}
	ctx.invalidateProfile()
	ctx.UI.Successf("Uploaded %s (%d page(s))", info.Name, info.Pages)
	if a := profile.ResumeAnalysis; a != nil && a.Seniority != "" {
		ctx.UI.Infof("Resume analysis: %s, score %.0f", a.Seniority, a.Score)
	}
	return nil
}

type ResumeDeleteCmd struct {
	ID string `arg:"" help:"Resume id."`
}

func (c *ResumeDeleteCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Applicant: true})
	if err != nil {
		return err
	}
	if err := client.DeleteResume(bg, c.ID); err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	ctx.invalidateProfile()
	ctx.UI.Successf("Resume deleted")
	return nil
}

type EducationFields struct {
	School       string `help:"School name."`
	Degree       string `help:"Degree."`
	FieldOfStudy string `help:"Field of study."`
	StartDate    string `help:"Start date (YYYY-MM)."`
	EndDate      string `help:"End date (YYYY-MM)."`
}

func (f EducationFields) entry() models.Education {
	return models.Education{
		School:       strings.TrimSpace(f.School),
		Degree:       strings.TrimSpace(f.Degree),
		FieldOfStudy: strings.TrimSpace(f.FieldOfStudy),
		StartDate:    strings.TrimSpace(f.StartDate),
		EndDate:      strings.TrimSpace(f.EndDate),
	}
}

type EducationCmd struct {
	Add    EducationAddCmd    `cmd:"" help:"Add an education entry."`
	Update EducationUpdateCmd `cmd:"" help:"Update an education entry."`
	Delete EducationDeleteCmd `cmd:"" help:"Delete an education entry."`
}

type EducationAddCmd struct {
	EducationFields
}

type EducationUpdateCmd struct {
	ID string `arg:"" help:"Entry id."`
	EducationFields
}

type EducationDeleteCmd struct {
	ID string `arg:"" help:"Entry id."`
}

func (c *EducationAddCmd) Run(ctx *Context) error {
	entry := c.entry()
	if entry.School == "" {
		return fmt.Errorf("--school is required")
	}
	return profileSection(ctx, "add education", func(bg context.Context, client *api.Client) error {
		_, err := client.AddEducation(bg, entry)
		return err
	})
}

func (c *EducationUpdateCmd) Run(ctx *Context) error {
	entry := c.entry()
	if entry == (models.Education{}) {
		return fmt.Errorf("nothing to update; pass at least one field flag")
	}
	return profileSection(ctx, "update education", func(bg context.Context, client *api.Client) error {
		_, err := client.UpdateEducation(bg, c.ID, entry)
		return err
	})
}

func (c *EducationDeleteCmd) Run(ctx *Context) error {
	return profileSection(ctx, "delete education", func(bg context.Context, client *api.Client) error {
		return client.DeleteEducation(bg, c.ID)
	})
}

type ExperienceFields struct {
	Title       string `help:"Job title."`
	Company     string `help:"Company name."`
	Location    string `help:"Location."`
	StartDate   string `help:"Start date (YYYY-MM)."`
	EndDate     string `help:"End date (YYYY-MM)."`
	Current     bool   `help:"Still working here."`
	Description string `help:"What you did."`
}

func (f ExperienceFields) entry() models.Experience {
	return models.Experience{
		Title:       strings.TrimSpace(f.Title),
		Company:     strings.TrimSpace(f.Company),
		Location:    strings.TrimSpace(f.Location),
		StartDate:   strings.TrimSpace(f.StartDate),
		EndDate:     strings.TrimSpace(f.EndDate),
		Current:     f.Current,
		Description: f.Description,
	}
}

type ExperienceCmd struct {
	Add    ExperienceAddCmd    `cmd:"" help:"Add a work experience entry."`
	Update ExperienceUpdateCmd `cmd:"" help:"Update a work experience entry."`
	Delete ExperienceDeleteCmd `cmd:"" help:"Delete a work experience entry."`
}

type ExperienceAddCmd struct {
	ExperienceFields
}

type ExperienceUpdateCmd struct {
	ID string `arg:"" help:"Entry id."`
	ExperienceFields
}

type ExperienceDeleteCmd struct {
	ID string `arg:"" help:"Entry id."`
}

func (c *ExperienceAddCmd) Run(ctx *Context) error {
	entry := c.entry()
	if entry.Title == "" || entry.Company == "" {
		return fmt.Errorf("--title and --company are required")
	}
	return profileSection(ctx, "add experience", func(bg context.Context, client *api.Client) error {
		_, err := client.AddExperience(bg, entry)
		return err
	})
}

func (c *ExperienceUpdateCmd) Run(ctx *Context) error {
	entry := c.entry()
	if entry == (models.Experience{}) {
		return fmt.Errorf("nothing to update; pass at least one field flag")
	}
	return profileSection(ctx, "update experience", func(bg context.Context, client *api.Client) error {
		_, err := client.UpdateExperience(bg, c.ID, entry)
		return err
	})
}

func (c *ExperienceDeleteCmd) Run(ctx *Context) error {
	return profileSection(ctx, "delete experience", func(bg context.Context, client *api.Client) error {
		return client.DeleteExperience(bg, c.ID)
	})
}

func profileSection(ctx *Context, action string, run func(context.Context, *api.Client) error) error {
	bg := context.Background()
	client, _, err := ctx.require(bg, session.Requirement{Applicant: true})
	if err != nil {
		return err
	}
	if err := run(bg, client); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	ctx.invalidateProfile()
	ctx.UI.Successf("Done: %s", action)
	return nil
}
