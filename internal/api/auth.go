package api

import (
	"context"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/suitlink/internal/models"
)

// Me returns the user behind the current session cookie.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	body := map[string]string{"email": email, "password": password}
	if err := c.send(ctx, fhttp.MethodPost, "/auth/login", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.send(ctx, fhttp.MethodPost, "/auth/logout", map[string]string{}, nil)
}

func (c *Client) Register(ctx context.Context, name, email, password string, role models.Role) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	if role != "" {
		body["role"] = string(role)
	}
	return c.send(ctx, fhttp.MethodPost, "/auth/register", body, nil)
}

func (c *Client) VerifyEmail(ctx context.Context, email, code string) error {
	return c.send(ctx, fhttp.MethodPost, "/auth/verify-email", map[string]string{"email": email, "code": code}, nil)
}

func (c *Client) ResendVerification(ctx context.Context, email string) error {
	return c.send(ctx, fhttp.MethodPost, "/auth/resend-verification", map[string]string{"email": email}, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.send(ctx, fhttp.MethodPost, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	body := map[string]string{"email": email, "code": code, "newPassword": newPassword}
	return c.send(ctx, fhttp.MethodPost, "/auth/reset-password", body, nil)
}

func (c *Client) ResendResetPassword(ctx context.Context, email string) error {
	return c.send(ctx, fhttp.MethodPost, "/auth/resend-reset-password", map[string]string{"email": email}, nil)
}
