package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jimezsa/suitlink/internal/models"
	"github.com/jimezsa/suitlink/internal/session"
)

type LoginCmd struct {
	Email    string `arg:"" help:"Account email."`
	Password string `help:"Password; read from stdin when omitted." env:"SUITLINK_PASSWORD"`
}

type LogoutCmd struct{}

type WhoamiCmd struct{}

type AccountCmd struct {
	Register           RegisterCmd           `cmd:"" help:"Create an account."`
	Verify             VerifyEmailCmd        `cmd:"" help:"Verify an email address with the emailed code."`
	ResendVerification ResendVerificationCmd `cmd:"" name:"resend-verification" help:"Send a new verification code."`
	Forgot             ForgotPasswordCmd     `cmd:"" help:"Request a password reset code."`
	Reset              ResetPasswordCmd      `cmd:"" help:"Set a new password with a reset code."`
	ResendReset        ResendResetCmd        `cmd:"" name:"resend-reset" help:"Send a new password reset code."`
}

type RegisterCmd struct {
	Name     string `arg:"" help:"Full name."`
	Email    string `arg:"" help:"Account email."`
	Role     string `help:"Account type." enum:"applicant,employer" default:"applicant"`
	Password string `help:"Password; read from stdin when omitted." env:"SUITLINK_PASSWORD"`
}

type VerifyEmailCmd struct {
	Email string `arg:""`
	Code  string `arg:""`
}

type ResendVerificationCmd struct {
	Email string `arg:""`
}

type ForgotPasswordCmd struct {
	Email string `arg:""`
}

type ResetPasswordCmd struct {
	Email    string `arg:""`
	Code     string `arg:""`
	Password string `help:"New password; read from stdin when omitted." env:"SUITLINK_NEW_PASSWORD"`
}

type ResendResetCmd struct {
	Email string `arg:""`
}

func (c *LoginCmd) Run(ctx *Context) error {
	password, err := secret(ctx, c.Password, "Password")
	if err != nil {
		return err
	}
	client, err := ctx.API()
	if err != nil {
		return err
	}
	user, err := client.Login(context.Background(), strings.TrimSpace(c.Email), password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	ctx.Logger.Debug().Str("user", user.ID).Str("role", string(user.Role)).Msg("signed in")
	ctx.UI.Successf("Signed in as %s (%s)", firstNonEmpty(user.Name, user.Email), user.Role)
	return nil
}

func (c *LogoutCmd) Run(ctx *Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}
	// The local session is cleared even if the server call fails.
	remoteErr := client.Logout(context.Background())
	if err := ctx.endSession(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if remoteErr != nil {
		ctx.UI.Warnf("Server logout failed: %v", remoteErr)
	}
	ctx.UI.Infof("Signed out")
	return nil
}

func (c *WhoamiCmd) Run(ctx *Context) error {
	_, user, err := ctx.require(context.Background(), session.Requirement{})
	if err != nil {
		return err
	}
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, user)
	}
	_, err = fmt.Fprintf(ctx.Out, "%s <%s>\nrole: %s\nhome: %s\n", user.Name, user.Email, user.Role, session.Dashboard(user))
	return err
}

func (c *RegisterCmd) Run(ctx *Context) error {
	password, err := secret(ctx, c.Password, "Password")
	if err != nil {
		return err
	}
	client, err := ctx.API()
	if err != nil {
		return err
	}
	if err := client.Register(context.Background(), c.Name, c.Email, password, models.Role(c.Role)); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	ctx.UI.Successf("Account created. Check %s for a verification code, then run `suitlink account verify`.", c.Email)
	return nil
}

func (c *VerifyEmailCmd) Run(ctx *Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}
	if err := client.VerifyEmail(context.Background(), c.Email, c.Code); err != nil {
		return fmt.Errorf("verify email: %w", err)
	}
	ctx.UI.Successf("Email verified. You can now sign in.")
	return nil
}

func (c *ResendVerificationCmd) Run(ctx *Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}
	if err := client.ResendVerification(context.Background(), c.Email); err != nil {
		return fmt.Errorf("resend verification: %w", err)
	}
	ctx.UI.Infof("Verification code sent to %s", c.Email)
	return nil
}

func (c *ForgotPasswordCmd) Run(ctx *Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}
	if err := client.ForgotPassword(context.Background(), c.Email); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	ctx.UI.Infof("Reset code sent to %s", c.Email)
	return nil
}

func (c *ResetPasswordCmd) Run(ctx *Context) error {
	password, err := secret(ctx, c.Password, "New password")
	if err != nil {
		return err
	}
	client, err := ctx.API()
	if err != nil {
		return err
	}
	if err := client.ResetPassword(context.Background(), c.Email, c.Code, password); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	ctx.UI.Successf("Password updated. You can now sign in.")
	return nil
}

func (c *ResendResetCmd) Run(ctx *Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}
	if err := client.ResendResetPassword(context.Background(), c.Email); err != nil {
		return fmt.Errorf("resend reset code: %w", err)
	}
	ctx.UI.Infof("Reset code sent to %s", c.Email)
	return nil
}

// secret returns value, or the first line of stdin when value is empty.
func secret(ctx *Context, value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	if ctx.In == nil {
		return "", fmt.Errorf("%s is required", strings.ToLower(label))
	}
	if isTTY(ctx.Err) {
		fmt.Fprintf(ctx.Err, "%s: ", label)
	}
	line, err := bufio.NewReader(ctx.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("%s is required", strings.ToLower(label))
	}
	return line, nil
}
