package session

import (
	"context"
	"errors"
	"sync"

	"github.com/jimezsa/suitlink/internal/api"
	"github.com/jimezsa/suitlink/internal/models"
)

// ProfileSource loads the role-specific profile; *api.Client satisfies it.
type ProfileSource interface {
	ApplicantProfile(ctx context.Context) (*models.ApplicantProfile, error)
	CompanyProfile(ctx context.Context) (*models.CompanyProfile, error)
}

type ProfileKind int

const (
	KindNone ProfileKind = iota
	KindApplicant
	KindEmployer
)

func (k ProfileKind) String() string {
	switch k {
	case KindApplicant:
		return "applicant"
	case KindEmployer:
		return "employer"
	default:
		return "none"
	}
}

// ProfileView holds at most one profile, selected by Kind. KindNone means the
// user has not created a profile yet.
type ProfileView struct {
	Kind      ProfileKind
	Applicant *models.ApplicantProfile
	Company   *models.CompanyProfile
}

var ErrScopeClosed = errors.New("session scope closed")

// Scope lives for one authenticated session and caches that user's profile.
// A logout or role change must Close it.
type Scope struct {
	user   models.User
	source ProfileSource

	mu     sync.Mutex
	cached *ProfileView
	closed bool
}

func NewScope(user models.User, source ProfileSource) *Scope {
	return &Scope{user: user, source: source}
}

func (s *Scope) User() models.User {
	return s.user
}

// Matches reports whether u is still the user this scope was built for.
func (s *Scope) Matches(u *models.User) bool {
	return u != nil && u.ID == s.user.ID && u.Role == s.user.Role
}

// Profile returns the cached view, loading it on first use. A missing profile
// is KindNone, not an error. Other failures are returned and not cached.
func (s *Scope) Profile(ctx context.Context) (ProfileView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ProfileView{}, ErrScopeClosed
	}
	if s.cached != nil {
		return *s.cached, nil
	}

	view, err := s.load(ctx)
	if err != nil {
		return ProfileView{}, err
	}
	s.cached = &view
	return view, nil
}

func (s *Scope) load(ctx context.Context) (ProfileView, error) {
	switch s.user.Role {
	case models.RoleApplicant:
		profile, err := s.source.ApplicantProfile(ctx)
		if api.IsNotFound(err) {
			return ProfileView{Kind: KindNone}, nil
		}
		if err != nil {
			return ProfileView{}, err
		}
		return ProfileView{Kind: KindApplicant, Applicant: profile}, nil
	case models.RoleEmployer:
		profile, err := s.source.CompanyProfile(ctx)
		if api.IsNotFound(err) {
			return ProfileView{Kind: KindNone}, nil
		}
		if err != nil {
			return ProfileView{}, err
		}
		return ProfileView{Kind: KindEmployer, Company: profile}, nil
	default:
		return ProfileView{Kind: KindNone}, nil
	}
}

// Invalidate drops the cached profile so the next Profile call reloads it.
func (s *Scope) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

func (s *Scope) Close() {
	s.mu.Lock()
	s.closed = true
	s.cached = nil
	s.mu.Unlock()
}
