package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jimezsa/suitlink/internal/api"
	"github.com/jimezsa/suitlink/internal/config"
	"github.com/jimezsa/suitlink/internal/models"
	"github.com/jimezsa/suitlink/internal/network"
	"github.com/jimezsa/suitlink/internal/session"
	"github.com/jimezsa/suitlink/internal/ui"
	"github.com/rs/zerolog"
)

type Context struct {
	Out        io.Writer
	Err        io.Writer
	In         io.Reader
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode

	transport *network.Client
	client    *api.Client
	scope     *session.Scope
}

// API builds the client on first use so offline commands never touch the
// cookie file.
func (c *Context) API() (*api.Client, error) {
	if c.client != nil {
		return c.client, nil
	}
	cookiesPath, err := config.CookiesPath()
	if err != nil {
		return nil, err
	}
	transport, err := network.NewClient(network.Options{
		BaseURL:     c.Config.BaseURL,
		Timeout:     c.Config.Timeout(),
		Proxy:       c.Config.Proxy,
		CookiesPath: cookiesPath,
		UserAgent:   "suitlink/" + c.Version,
		Logger:      c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("configure api client: %w", err)
	}
	c.transport = transport
	c.client = api.New(transport, c.Logger)
	return c.client, nil
}

func (c *Context) resolver(client *api.Client) *session.Resolver {
	var tokens session.TokenSource
	if c.transport != nil {
		tokens = c.transport
	}
	return session.NewResolver(client, tokens, c.Config.SessionCookie, c.Logger)
}

// RedirectError is returned when the guard refuses a command.
type RedirectError struct {
	Route string
}

func (e *RedirectError) Error() string {
	switch e.Route {
	case session.RouteLogin:
		return "not signed in; run `suitlink login` first"
	case session.RouteApplicantDashboard:
		return "this command is for employers; you are signed in as an applicant"
	case session.RouteEmployerDashboard:
		return "this command is for applicants; you are signed in as an employer"
	default:
		return "access denied"
	}
}

var errNoProfile = errors.New("no profile yet")

// require resolves the session and applies the role guard.
func (c *Context) require(ctx context.Context, req session.Requirement) (*api.Client, *models.User, error) {
	client, err := c.API()
	if err != nil {
		return nil, nil, err
	}
	user := c.resolver(client).CheckSession(ctx)
	if decision := session.Guard(user, req); !decision.Allow {
		return nil, nil, &RedirectError{Route: decision.Redirect}
	}
	if c.scope == nil || !c.scope.Matches(user) {
		if c.scope != nil {
			c.scope.Close()
		}
		c.scope = session.NewScope(*user, client)
	}
	return client, user, nil
}

// profile returns the session's cached profile view.
func (c *Context) profile(ctx context.Context) (session.ProfileView, error) {
	if c.scope == nil {
		return session.ProfileView{}, &RedirectError{Route: session.RouteLogin}
	}
	return c.scope.Profile(ctx)
}

// endSession closes the profile scope and forgets the cookies.
func (c *Context) endSession() error {
	if c.scope != nil {
		c.scope.Close()
		c.scope = nil
	}
	if c.transport == nil {
		return nil
	}
	return c.transport.ClearSession()
}

func (c *Context) invalidateProfile() {
	if c.scope != nil {
		c.scope.Invalidate()
	}
}
