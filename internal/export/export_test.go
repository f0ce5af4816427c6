package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jimezsa/suitlink/internal/models"
)

func sampleJobs() []models.JobPosting {
	return []models.JobPosting{
		{
			ID:             "j1",
			Title:          "Backend Engineer",
			Company:        models.CompanyRef{CompanyName: "Acme"},
			Location:       "Makati",
			Remote:         true,
			EmploymentType: models.EmploymentFullTime,
			SalaryRange:    models.SalaryRange{Min: 30000, Max: 50000},
			Status:         models.JobOpen,
			Description:    "<p>Build <b>APIs</b></p><ul><li>Go</li><li>SQL</li></ul>",
			Applied:        true,
		},
	}
}

func TestWriteJobsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, sampleJobs(), FormatCSV, WriteOptions{}); err != nil {
		t.Fatalf("WriteJobs() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0] != "id,title,company,location,type,salary,remote,status,applied,posted_at" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "j1,Backend Engineer,Acme,Makati,full-time,PHP 30000 - 50000,true,open,true,") {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestWriteJobsTSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, sampleJobs(), FormatTSV, WriteOptions{}); err != nil {
		t.Fatalf("WriteJobs() error = %v", err)
	}
	if !strings.Contains(buf.String(), "j1\tBackend Engineer\tAcme") {
		t.Fatalf("tsv output = %q", buf.String())
	}
}

func TestWriteJobsJSONKeepsApplied(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, sampleJobs(), FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WriteJobs() error = %v", err)
	}
	var decoded []models.JobPosting
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 1 || !decoded[0].Applied || decoded[0].ID != "j1" {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestWriteJobsMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, sampleJobs(), FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("WriteJobs() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"- **Backend Engineer** (Acme)",
		"  Location: Makati (remote)",
		"  Type: Full-time",
		"  Applied: yes",
		"  Summary: Build APIs Go SQL",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("markdown missing %q in:\n%s", want, out)
		}
	}
}

func TestWriteTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, nil, FormatTable, WriteOptions{}); err != nil {
		t.Fatalf("WriteJobs() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "No results." {
		t.Fatalf("WriteJobs(nil) = %q, want %q", got, "No results.")
	}

	buf.Reset()
	if err := WriteJobs(&buf, nil, FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WriteJobs() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Fatalf("WriteJobs(nil) json = %q, want []", got)
	}
}

func TestWriteApplicantsTable(t *testing.T) {
	apps := []models.Application{{
		ID:        "a1",
		Applicant: models.ApplicantRef{Name: "Ana Cruz", Email: "ana@example.com"},
		Status:    models.StatusReviewed,
		Resume:    &models.ResumeRef{FileURL: "https://files.example.com/cv.pdf"},
	}}
	var buf bytes.Buffer
	if err := WriteApplicants(&buf, apps, FormatTable, WriteOptions{}); err != nil {
		t.Fatalf("WriteApplicants() error = %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "ID") || !strings.Contains(out, "Ana Cruz") || !strings.Contains(out, "reviewed") {
		t.Fatalf("table = %q", out)
	}
	if strings.Contains(out, "\x1b") {
		t.Fatalf("table contains escape codes with color disabled")
	}
}

func TestCountsFor(t *testing.T) {
	jobs := []models.JobPosting{{ID: "j1", Title: "A"}, {ID: "j2", Title: "B"}}
	counts := CountsFor(jobs, map[string]int{"j1": 4})
	if len(counts) != 2 || counts[0].Applicants != 4 || counts[1].Applicants != 0 {
		t.Fatalf("CountsFor() = %+v", counts)
	}

	var buf bytes.Buffer
	if err := WriteCounts(&buf, counts, FormatCSV, WriteOptions{}); err != nil {
		t.Fatalf("WriteCounts() error = %v", err)
	}
	if !strings.Contains(buf.String(), "j1,A,,4") {
		t.Fatalf("counts csv = %q", buf.String())
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain   text\nhere", "plain text here"},
		{"<p>Hello</p><p>World</p>", "Hello World"},
		{"Line one<br>Line two", "Line one Line two"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := PlainText(tt.in); got != tt.want {
			t.Fatalf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShortURLLabel(t *testing.T) {
	if got := shortURLLabel("https://www.example.com/jobs/123"); got != "example.com/jobs/123" {
		t.Fatalf("shortURLLabel() = %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("CSV") != FormatCSV || ParseFormat("bogus") != FormatTable {
		t.Fatalf("ParseFormat() mismatch")
	}
}
