package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jimezsa/suitlink/internal/models"
	"github.com/jimezsa/suitlink/internal/ui"
	"github.com/muesli/termenv"
)

const descriptionPreview = 160

func WriteJobs(w io.Writer, jobs []models.JobPosting, format Format, opts WriteOptions) error {
	if jobs == nil {
		jobs = []models.JobPosting{}
	}
	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, jobRow(job))
	}
	return write(w, format, sheet{
		header:      []string{"id", "title", "company", "location", "type", "salary", "remote", "status", "applied", "posted_at"},
		rows:        rows,
		tableHeader: []string{"id", "title", "company", "location", "type", "salary", "status", "applied"},
		table: func(output *termenv.Output) [][]string {
			out := make([][]string, 0, len(jobs))
			for _, job := range jobs {
				applied := ""
				if job.Applied {
					applied = ui.StatusBadge(output, output != nil, "applied")
				}
				out = append(out, []string{
					job.ID,
					Truncate(safe(job.Title), 40),
					orDash(job.Company.CompanyName),
					locationLabel(job),
					orDash(job.EmploymentType.Label()),
					job.SalaryRange.String(),
					ui.StatusBadge(output, output != nil, string(job.Status)),
					applied,
				})
			}
			return out
		},
		markdown: func(w io.Writer) error {
			for _, job := range jobs {
				if err := writeLines(w, jobMarkdown(job, descriptionPreview)); err != nil {
					return err
				}
			}
			return nil
		},
		value: jobs,
	}, opts)
}

// WriteJob prints a single posting with its full description.
func WriteJob(w io.Writer, job models.JobPosting, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, job)
	}
	return writeLines(w, jobMarkdown(job, 0))
}

func jobRow(job models.JobPosting) []string {
	return []string{
		job.ID,
		job.Title,
		job.Company.CompanyName,
		job.Location,
		string(job.EmploymentType),
		job.SalaryRange.String(),
		boolString(job.Remote),
		string(job.Status),
		boolString(job.Applied),
		formatTime(job.CreatedAt),
	}
}

func jobMarkdown(job models.JobPosting, preview int) []string {
	lines := []string{
		fmt.Sprintf("- **%s** (%s)", safe(job.Title), orDash(job.Company.CompanyName)),
		fmt.Sprintf("  ID: %s", job.ID),
		fmt.Sprintf("  Location: %s", locationLabel(job)),
		fmt.Sprintf("  Salary: %s", job.SalaryRange.String()),
	}
	if job.EmploymentType != "" {
		lines = append(lines, fmt.Sprintf("  Type: %s", job.EmploymentType.Label()))
	}
	if job.Status != "" {
		lines = append(lines, fmt.Sprintf("  Status: %s", job.Status))
	}
	if job.Applied {
		lines = append(lines, "  Applied: yes")
	}
	if skills := job.Requirements.Skills; len(skills) > 0 {
		lines = append(lines, fmt.Sprintf("  Skills: %s", strings.Join(skills, ", ")))
	}
	if years := job.Requirements.ExperienceYears; years > 0 {
		lines = append(lines, fmt.Sprintf("  Experience: %d+ years", years))
	}
	if level := safe(job.Requirements.EducationLevel); level != "" {
		lines = append(lines, fmt.Sprintf("  Education: %s", level))
	}
	if !job.CreatedAt.IsZero() {
		lines = append(lines, fmt.Sprintf("  Posted: %s", formatTime(job.CreatedAt)))
	}
	if desc := PlainText(job.Description); desc != "" {
		if preview > 0 {
			desc = Truncate(desc, preview)
		}
		lines = append(lines, fmt.Sprintf("  Summary: %s", desc))
	}
	return lines
}

func locationLabel(job models.JobPosting) string {
	location := safe(job.Location)
	switch {
	case job.Remote && location != "":
		return location + " (remote)"
	case job.Remote:
		return "Remote"
	default:
		return orDash(location)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
