// Package session resolves the current user from the stored session cookie
// and decides where role-restricted commands may run.
package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jimezsa/suitlink/internal/models"
	"github.com/rs/zerolog"
)

// UserSource returns the user behind the session; *api.Client satisfies it.
type UserSource interface {
	Me(ctx context.Context) (*models.User, error)
}

// TokenSource exposes the stored session cookie; *network.Client satisfies it.
type TokenSource interface {
	SessionCookie(name string) string
}

type Resolver struct {
	users      UserSource
	tokens     TokenSource
	cookieName string
	logger     zerolog.Logger
	now        func() time.Time
}

func NewResolver(users UserSource, tokens TokenSource, cookieName string, logger zerolog.Logger) *Resolver {
	return &Resolver{
		users:      users,
		tokens:     tokens,
		cookieName: cookieName,
		logger:     logger,
		now:        time.Now,
	}
}

// CheckSession returns the signed-in user or nil. It never returns an error:
// network failures, 401s and malformed responses all mean "no session".
func (r *Resolver) CheckSession(ctx context.Context) *models.User {
	if r.tokens != nil {
		if token := r.tokens.SessionCookie(r.cookieName); token != "" && tokenExpired(token, r.now()) {
			r.logger.Debug().Msg("session cookie expired, skipping /auth/me")
			return nil
		}
	}

	user, err := r.users.Me(ctx)
	if err != nil {
		r.logger.Debug().Err(err).Msg("no active session")
		return nil
	}
	if user == nil || user.ID == "" || !user.Role.Valid() {
		r.logger.Debug().Msg("session response missing user")
		return nil
	}
	return user
}

// tokenExpired peeks at the exp claim without verifying the signature. Tokens
// that are not JWTs, or carry no exp, are left to the backend to judge.
func tokenExpired(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

func IsApplicant(u *models.User) bool { return u != nil && u.Role == models.RoleApplicant }

func IsEmployer(u *models.User) bool { return u != nil && u.Role == models.RoleEmployer }

// Routes a guard can redirect to.
const (
	RouteLogin              = "/login"
	RouteApplicantDashboard = "/applicant-dashboard"
	RouteEmployerDashboard  = "/employer-dashboard"
)

type Requirement struct {
	Employer  bool
	Applicant bool
}

type Decision struct {
	Allow    bool
	Redirect string
}

// Guard decides whether u may enter a view with requirement req.
func Guard(u *models.User, req Requirement) Decision {
	switch {
	case u == nil:
		return Decision{Redirect: RouteLogin}
	case req.Employer && !IsEmployer(u):
		return Decision{Redirect: RouteApplicantDashboard}
	case req.Applicant && !IsApplicant(u):
		return Decision{Redirect: RouteEmployerDashboard}
	default:
		return Decision{Allow: true}
	}
}

// Dashboard is the landing route for u.
func Dashboard(u *models.User) string {
	switch {
	case IsEmployer(u):
		return RouteEmployerDashboard
	case IsApplicant(u):
		return RouteApplicantDashboard
	default:
		return RouteLogin
	}
}
