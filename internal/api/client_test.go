package api

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jimezsa/suitlink/internal/models"
	"github.com/rs/zerolog"
)

func TestMeRequiresSession(t *testing.T) {
	client, _, doer := newStubClient(t)
	ctx := context.Background()

	if _, err := client.Me(ctx); !IsAuth(err) {
		t.Fatalf("Me() without cookie error = %v, want auth", err)
	}

	doer.cookie = "token=valid"
	user, err := New(doer, zerolog.Nop()).Me(ctx)
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if user.ID != "u1" || user.Role != models.RoleEmployer {
		t.Fatalf("Me() = %+v", user)
	}
}

func TestListJobsEncodesFilters(t *testing.T) {
	client, stub, _ := newStubClient(t)
	remote := true

	page, err := client.ListJobs(context.Background(), JobQuery{
		Page:           2,
		Limit:          10,
		Search:         "go developer",
		EmploymentType: models.EmploymentFullTime,
		Remote:         &remote,
		SalaryMin:      30000,
	})
	if err != nil {
		t.Fatalf("ListJobs() error = %v", err)
	}

	want := map[string]string{
		"page":           "2",
		"limit":          "10",
		"search":         "go developer",
		"employmentType": string(models.EmploymentFullTime),
		"remote":         "true",
		"salaryMin":      "30000",
	}
	for key, value := range want {
		if got := stub.lastQuery.Get(key); got != value {
			t.Fatalf("query %s = %q, want %q", key, got, value)
		}
	}
	if stub.lastQuery.Has("salaryMax") {
		t.Fatalf("query carried empty salaryMax")
	}
	if page.TotalPages != 2 || !page.HasPrevPage || page.HasNextPage {
		t.Fatalf("ListJobs() page = %+v", page)
	}
}

func TestApplyDuplicateIsConflict(t *testing.T) {
	client, stub, _ := newStubClient(t)
	ctx := context.Background()
	req := ApplyRequest{JobPostingID: "j1", ResumeID: "r1", CoverLetter: "Hello"}

	app, err := client.Apply(ctx, req)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if app.Status != models.StatusPending {
		t.Fatalf("Apply() status = %q, want %q", app.Status, models.StatusPending)
	}
	if stub.lastBody["resumeId"] != "r1" || stub.lastBody["coverLetter"] != "Hello" {
		t.Fatalf("Apply() body = %v", stub.lastBody)
	}

	_, err = client.Apply(ctx, req)
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("second Apply() error = %v, want ErrAlreadyApplied", err)
	}
	if KindOf(err) != KindConflict {
		t.Fatalf("second Apply() kind = %q, want %q", KindOf(err), KindConflict)
	}
}

func TestApplyNetworkFailureIsTransient(t *testing.T) {
	_, _, doer := newStubClient(t)
	base, _ := doer.base.Parse("http://127.0.0.1:1/api/v1")
	doer.base = base

	_, err := New(doer, zerolog.Nop()).Apply(context.Background(), ApplyRequest{JobPostingID: "j1"})
	if !IsTransient(err) {
		t.Fatalf("Apply() error = %v, want transient", err)
	}
	if errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("network failure matched ErrAlreadyApplied")
	}
}

func TestJobApplicantsFilterAndPaging(t *testing.T) {
	client, stub, _ := newStubClient(t)
	for i, status := range []models.ApplicationStatus{
		models.StatusPending, models.StatusReviewed, models.StatusPending,
		models.StatusPending, models.StatusRejected,
	} {
		stub.applications = append(stub.applications, models.Application{
			ID:         string(rune('a'+i)) + "x",
			JobPosting: models.JobRef{ID: "j1"},
			Status:     status,
		})
	}
	ctx := context.Background()

	page, err := client.JobApplicants(ctx, "j1", ApplicantQuery{Page: 2, Limit: 2, Status: models.StatusPending})
	if err != nil {
		t.Fatalf("JobApplicants() error = %v", err)
	}
	if stub.lastQuery.Get("status") != "pending" {
		t.Fatalf("status query = %q, want pending", stub.lastQuery.Get("status"))
	}
	if page.TotalItems != 3 || len(page.Items) != 1 || page.HasNextPage {
		t.Fatalf("JobApplicants() page = %+v", page)
	}

	count, err := client.CountApplicants(ctx, "j1")
	if err != nil {
		t.Fatalf("CountApplicants() error = %v", err)
	}
	if count != 5 {
		t.Fatalf("CountApplicants() = %d, want 5", count)
	}

	empty, err := client.JobApplicants(ctx, "j-none", ApplicantQuery{})
	if err != nil {
		t.Fatalf("JobApplicants() empty error = %v", err)
	}
	if empty.Items == nil || len(empty.Items) != 0 || empty.TotalPages != 0 {
		t.Fatalf("JobApplicants() empty page = %+v", empty)
	}
}

func TestUpdateApplicationStatus(t *testing.T) {
	client, stub, _ := newStubClient(t)
	stub.applications = []models.Application{{ID: "a1", JobPosting: models.JobRef{ID: "j1"}, Status: models.StatusPending}}
	ctx := context.Background()

	app, err := client.UpdateApplicationStatus(ctx, "a1", models.StatusReviewed)
	if err != nil {
		t.Fatalf("UpdateApplicationStatus() error = %v", err)
	}
	if app.Status != models.StatusReviewed {
		t.Fatalf("UpdateApplicationStatus() status = %q", app.Status)
	}

	if _, err := client.UpdateApplicationStatus(ctx, "missing", models.StatusReviewed); !IsNotFound(err) {
		t.Fatalf("UpdateApplicationStatus(missing) error = %v, want not found", err)
	}
}

func TestValidationErrorsAreSurfaced(t *testing.T) {
	client, _, _ := newStubClient(t)

	_, err := client.UpdateCompanyProfile(context.Background(), CompanyInput{Industry: "Tech"})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("UpdateCompanyProfile() error = %v, want *Error", err)
	}
	if apiErr.Kind != KindValidation {
		t.Fatalf("kind = %q, want %q", apiErr.Kind, KindValidation)
	}
	if apiErr.ValidationErrors["companyName"] != "Company name is required" {
		t.Fatalf("ValidationErrors = %v", apiErr.ValidationErrors)
	}
}

func TestCompanyProfileNotFound(t *testing.T) {
	client, _, _ := newStubClient(t)
	if _, err := client.CompanyProfile(context.Background()); !IsNotFound(err) {
		t.Fatalf("CompanyProfile() error = %v, want not found", err)
	}
}

func TestUploadResumeSendsMultipart(t *testing.T) {
	client, stub, _ := newStubClient(t)
	path := filepath.Join(t.TempDir(), "cv.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	profile, err := client.UploadResume(context.Background(), path)
	if err != nil {
		t.Fatalf("UploadResume() error = %v", err)
	}
	if stub.uploadedName != "cv.pdf" {
		t.Fatalf("uploaded file = %q, want cv.pdf", stub.uploadedName)
	}
	if len(profile.Resumes) != 1 || profile.Resumes[0].ID != "r1" {
		t.Fatalf("UploadResume() profile = %+v", profile)
	}
}

func TestLogoutAcceptsEmptyBody(t *testing.T) {
	client, _, _ := newStubClient(t)
	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
}

func TestEmptyPatchIsRejectedLocally(t *testing.T) {
	client, _, _ := newStubClient(t)
	ctx := context.Background()

	if _, err := client.UpdateApplicantProfile(ctx, ProfilePatch{}); !errors.Is(err, errEmptyPatch) {
		t.Fatalf("UpdateApplicantProfile() error = %v, want errEmptyPatch", err)
	}
	if _, err := client.UpdateJob(ctx, "j1", JobInput{}); !errors.Is(err, errEmptyPatch) {
		t.Fatalf("UpdateJob() error = %v, want errEmptyPatch", err)
	}
}
