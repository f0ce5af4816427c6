package api

import (
	"context"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/suitlink/internal/models"
)

// CompanyInput is the create/update body. Update sends only non-empty fields.
type CompanyInput struct {
	CompanyName string `json:"companyName,omitempty"`
	Description string `json:"description,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Location    string `json:"location,omitempty"`
}

func (c *Client) CompanyProfile(ctx context.Context) (*models.CompanyProfile, error) {
	var profile models.CompanyProfile
	if err := c.get(ctx, "/company/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) CreateCompanyProfile(ctx context.Context, input CompanyInput) (*models.CompanyProfile, error) {
	var out models.CompanyProfile
	if err := c.send(ctx, fhttp.MethodPost, "/company/profile", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCompanyProfile(ctx context.Context, input CompanyInput) (*models.CompanyProfile, error) {
	if input == (CompanyInput{}) {
		return nil, errEmptyPatch
	}
	var out models.CompanyProfile
	if err := c.send(ctx, fhttp.MethodPatch, "/company/profile", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UploadLogo(ctx context.Context, path string) (*models.CompanyProfile, error) {
	var out models.CompanyProfile
	if err := c.upload(ctx, fhttp.MethodPut, "/company/profile/logo", "logo", path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCompanyProfile(ctx context.Context) error {
	return c.send(ctx, fhttp.MethodDelete, "/company/profile", nil, nil)
}
