package api

import (
	"context"
	"net/url"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/suitlink/internal/models"
)

// ProfilePatch is one section's partial update; nil fields are not sent.
type ProfilePatch map[string]any

func (c *Client) ApplicantProfile(ctx context.Context) (*models.ApplicantProfile, error) {
	var profile models.ApplicantProfile
	if err := c.get(ctx, "/applicant/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) CreateApplicantProfile(ctx context.Context, profile models.ApplicantProfile) (*models.ApplicantProfile, error) {
	var out models.ApplicantProfile
	if err := c.send(ctx, fhttp.MethodPost, "/applicant/profile", profile, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateApplicantProfile merges patch into the stored profile.
func (c *Client) UpdateApplicantProfile(ctx context.Context, patch ProfilePatch) (*models.ApplicantProfile, error) {
	if len(patch) == 0 {
		return nil, errEmptyPatch
	}
	var out models.ApplicantProfile
	if err := c.send(ctx, fhttp.MethodPatch, "/applicant/profile", patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UploadAvatar(ctx context.Context, path string) (*models.ApplicantProfile, error) {
	var out models.ApplicantProfile
	if err := c.upload(ctx, fhttp.MethodPut, "/applicant/profile/avatar", "avatar", path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UploadResume(ctx context.Context, path string) (*models.ApplicantProfile, error) {
	var out models.ApplicantProfile
	if err := c.upload(ctx, fhttp.MethodPut, "/applicant/resume", "resume", path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteResume(ctx context.Context, id string) error {
	if err := requireID("resume", id); err != nil {
		return err
	}
	return c.send(ctx, fhttp.MethodDelete, "/applicant/resume/"+url.PathEscape(id), nil, nil)
}

func (c *Client) AddEducation(ctx context.Context, entry models.Education) (*models.ApplicantProfile, error) {
	return c.profileEntry(ctx, fhttp.MethodPost, "/applicant/education", entry)
}

func (c *Client) UpdateEducation(ctx context.Context, id string, entry models.Education) (*models.ApplicantProfile, error) {
	if err := requireID("education", id); err != nil {
		return nil, err
	}
	return c.profileEntry(ctx, fhttp.MethodPatch, "/applicant/education/"+url.PathEscape(id), entry)
}

func (c *Client) DeleteEducation(ctx context.Context, id string) error {
	if err := requireID("education", id); err != nil {
		return err
	}
	return c.send(ctx, fhttp.MethodDelete, "/applicant/education/"+url.PathEscape(id), nil, nil)
}

func (c *Client) AddExperience(ctx context.Context, entry models.Experience) (*models.ApplicantProfile, error) {
	return c.profileEntry(ctx, fhttp.MethodPost, "/applicant/experience", entry)
}

func (c *Client) UpdateExperience(ctx context.Context, id string, entry models.Experience) (*models.ApplicantProfile, error) {
	if err := requireID("experience", id); err != nil {
		return nil, err
	}
	return c.profileEntry(ctx, fhttp.MethodPatch, "/applicant/experience/"+url.PathEscape(id), entry)
}

func (c *Client) DeleteExperience(ctx context.Context, id string) error {
	if err := requireID("experience", id); err != nil {
		return err
	}
	return c.send(ctx, fhttp.MethodDelete, "/applicant/experience/"+url.PathEscape(id), nil, nil)
}

func (c *Client) profileEntry(ctx context.Context, method, path string, body any) (*models.ApplicantProfile, error) {
	var out models.ApplicantProfile
	if err := c.send(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
