package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jimezsa/suitlink/internal/models"
	"github.com/jimezsa/suitlink/internal/ui"
	"github.com/muesli/termenv"
)

// WriteApplications lists the signed-in applicant's own applications.
func WriteApplications(w io.Writer, apps []models.Application, format Format, opts WriteOptions) error {
	if apps == nil {
		apps = []models.Application{}
	}
	rows := make([][]string, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, []string{
			app.ID,
			app.JobPosting.ID,
			app.JobPosting.Title(),
			companyOf(app),
			string(app.Status),
			formatTime(app.CreatedAt),
		})
	}
	return write(w, format, sheet{
		header: []string{"id", "job_id", "job", "company", "status", "applied_at"},
		rows:   rows,
		table: func(output *termenv.Output) [][]string {
			out := make([][]string, 0, len(rows))
			for i, app := range apps {
				row := append([]string(nil), rows[i]...)
				row[2] = Truncate(row[2], 40)
				row[3] = orDash(row[3])
				row[4] = ui.StatusBadge(output, output != nil, string(app.Status))
				out = append(out, row)
			}
			return out
		},
		markdown: func(w io.Writer) error {
			for _, app := range apps {
				lines := []string{
					fmt.Sprintf("- **%s** (%s)", safe(app.JobPosting.Title()), orDash(companyOf(app))),
					fmt.Sprintf("  Status: %s", app.Status),
				}
				if !app.CreatedAt.IsZero() {
					lines = append(lines, fmt.Sprintf("  Applied: %s", formatTime(app.CreatedAt)))
				}
				if err := writeLines(w, lines); err != nil {
					return err
				}
			}
			return nil
		},
		value: apps,
	}, opts)
}

// WriteApplicants lists the applications received for one job.
func WriteApplicants(w io.Writer, apps []models.Application, format Format, opts WriteOptions) error {
	if apps == nil {
		apps = []models.Application{}
	}
	rows := make([][]string, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, []string{
			app.ID,
			app.Applicant.Name,
			app.Applicant.Email,
			string(app.Status),
			resumeURL(app),
			formatTime(app.CreatedAt),
		})
	}
	return write(w, format, sheet{
		header: []string{"id", "applicant", "email", "status", "resume", "applied_at"},
		rows:   rows,
		table: func(output *termenv.Output) [][]string {
			out := make([][]string, 0, len(rows))
			for i, app := range apps {
				row := append([]string(nil), rows[i]...)
				row[1] = orDash(row[1])
				row[2] = orDash(row[2])
				row[3] = ui.StatusBadge(output, output != nil, string(app.Status))
				row[4] = linkCell(row[4], output, opts)
				out = append(out, row)
			}
			return out
		},
		markdown: func(w io.Writer) error {
			for _, app := range apps {
				lines := []string{
					fmt.Sprintf("- **%s** <%s>", orDash(app.Applicant.Name), orDash(app.Applicant.Email)),
					fmt.Sprintf("  ID: %s", app.ID),
					fmt.Sprintf("  Status: %s", app.Status),
				}
				if link := resumeURL(app); link != "" {
					lines = append(lines, fmt.Sprintf("  Resume: [Open](<%s>)", link))
				}
				if letter := PlainText(app.CoverLetter); letter != "" {
					lines = append(lines, fmt.Sprintf("  Cover letter: %s", Truncate(letter, descriptionPreview)))
				}
				if err := writeLines(w, lines); err != nil {
					return err
				}
			}
			return nil
		},
		value: apps,
	}, opts)
}

// JobCount is one row of the per-job applicant summary.
type JobCount struct {
	JobID      string           `json:"jobId"`
	Title      string           `json:"title"`
	Status     models.JobStatus `json:"status,omitempty"`
	Applicants int              `json:"applicants"`
}

// CountsFor orders counts by jobs. Jobs missing from counts show 0.
func CountsFor(jobs []models.JobPosting, counts map[string]int) []JobCount {
	out := make([]JobCount, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, JobCount{JobID: job.ID, Title: job.Title, Status: job.Status, Applicants: counts[job.ID]})
	}
	return out
}

func WriteCounts(w io.Writer, counts []JobCount, format Format, opts WriteOptions) error {
	if counts == nil {
		counts = []JobCount{}
	}
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.JobID, c.Title, string(c.Status), strconv.Itoa(c.Applicants)})
	}
	return write(w, format, sheet{
		header: []string{"job_id", "title", "status", "applicants"},
		rows:   rows,
		table: func(output *termenv.Output) [][]string {
			out := make([][]string, 0, len(rows))
			for i, c := range counts {
				row := append([]string(nil), rows[i]...)
				row[1] = Truncate(row[1], 40)
				row[2] = ui.StatusBadge(output, output != nil, string(c.Status))
				out = append(out, row)
			}
			return out
		},
		markdown: func(w io.Writer) error {
			for _, c := range counts {
				line := fmt.Sprintf("- **%s**: %d applicant(s)", safe(c.Title), c.Applicants)
				if err := writeLines(w, []string{line}); err != nil {
					return err
				}
			}
			return nil
		},
		value: counts,
	}, opts)
}

func companyOf(app models.Application) string {
	if app.JobPosting.Job == nil {
		return ""
	}
	return app.JobPosting.Job.Company.CompanyName
}

func resumeURL(app models.Application) string {
	if app.Resume == nil {
		return ""
	}
	return app.Resume.FileURL
}
