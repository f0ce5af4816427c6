package cmd

import "github.com/alecthomas/kong"

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`
	BaseURL string `name:"base-url" help:"API root, e.g. http://localhost:8888/api/v1. Overrides config."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version      VersionCmd      `cmd:"" help:"Print version."`
	Config       ConfigCmd       `cmd:"" help:"Manage configuration."`
	Login        LoginCmd        `cmd:"" help:"Sign in."`
	Logout       LogoutCmd       `cmd:"" help:"Sign out and forget the session."`
	Whoami       WhoamiCmd       `cmd:"" help:"Show the signed-in user."`
	Account      AccountCmd      `cmd:"" help:"Registration, email verification and password reset."`
	Jobs         JobsCmd         `cmd:"" help:"Browse and manage job postings."`
	Apply        ApplyCmd        `cmd:"" help:"Apply to a job (applicants)."`
	Applications ApplicationsCmd `cmd:"" help:"Your applications and their status (applicants)."`
	Applicants   ApplicantsCmd   `cmd:"" help:"Review applicants for your postings (employers)."`
	Dashboard    DashboardCmd    `cmd:"" help:"Employer overview: company metrics and applicant counts."`
	Profile      ProfileCmd      `cmd:"" help:"Your applicant profile."`
	Company      CompanyCmd      `cmd:"" help:"Your company profile (employers)."`
}

func NewCLI() *CLI {
	return &CLI{}
}
