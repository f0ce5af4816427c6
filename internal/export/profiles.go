package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jimezsa/suitlink/internal/models"
)

// WriteApplicantProfile prints the profile; email comes from the session user
// and is shown read-only.
func WriteApplicantProfile(w io.Writer, user models.User, profile models.ApplicantProfile, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, struct {
			Email string `json:"email"`
			models.ApplicantProfile
		}{user.Email, profile})
	}

	lines := []string{
		fmt.Sprintf("Name: %s", orDash(profile.FullName())),
		fmt.Sprintf("Email: %s (read-only)", orDash(user.Email)),
		fmt.Sprintf("Phone: %s", orDash(profile.Phone)),
		fmt.Sprintf("Location: %s", orDash(profile.Location)),
	}
	if len(profile.Skills) > 0 {
		lines = append(lines, fmt.Sprintf("Skills: %s", strings.Join(profile.Skills, ", ")))
	}
	if letter := PlainText(profile.CoverLetter); letter != "" {
		lines = append(lines, fmt.Sprintf("Cover letter: %s", Truncate(letter, descriptionPreview)))
	}
	if a := profile.ResumeAnalysis; a != nil {
		lines = append(lines, fmt.Sprintf("Resume analysis: score %.0f, %s", a.Score, orDash(a.Seniority)))
	}

	lines = append(lines, fmt.Sprintf("Resumes (%d):", len(profile.Resumes)))
	for i, r := range profile.Resumes {
		marker := ""
		if i == 0 {
			marker = " [used for applications]"
		}
		lines = append(lines, fmt.Sprintf("  - %s %s%s", r.ID, orDash(r.FileName), marker))
	}
	lines = append(lines, fmt.Sprintf("Experience (%d):", len(profile.Experience)))
	for _, e := range profile.Experience {
		end := e.EndDate
		if e.Current {
			end = "present"
		}
		lines = append(lines, fmt.Sprintf("  - %s %s at %s (%s - %s)", e.ID, orDash(e.Title), orDash(e.Company), orDash(e.StartDate), orDash(end)))
	}
	lines = append(lines, fmt.Sprintf("Education (%d):", len(profile.Education)))
	for _, e := range profile.Education {
		lines = append(lines, fmt.Sprintf("  - %s %s, %s (%s - %s)", e.ID, orDash(e.Degree), orDash(e.School), orDash(e.StartDate), orDash(e.EndDate)))
	}
	return writeLines(w, lines)
}

// WriteCompanyProfile prints the company with its backend score and badge.
func WriteCompanyProfile(w io.Writer, profile models.CompanyProfile, badge string, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, profile)
	}
	return writeLines(w, []string{
		fmt.Sprintf("Company: %s [%s]", orDash(profile.CompanyName), badge),
		fmt.Sprintf("Industry: %s", orDash(profile.Industry)),
		fmt.Sprintf("Location: %s", orDash(profile.Location)),
		fmt.Sprintf("Logo: %s", orDash(profile.Logo)),
		fmt.Sprintf("Credibility score: %d/10", profile.CredibilityScore),
		fmt.Sprintf("Description: %s", orDash(PlainText(profile.Description))),
		fmt.Sprintf("Active jobs: %d", profile.Metrics.ActiveJobsCount),
		fmt.Sprintf("Job posts: %d", profile.Metrics.JobPostsCount),
		fmt.Sprintf("Total applicants: %d", profile.Metrics.TotalApplicants),
	})
}
