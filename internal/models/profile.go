package models

import "time"

type Resume struct {
	ID         string    `json:"_id"`
	FileName   string    `json:"fileName,omitempty"`
	FileURL    string    `json:"fileUrl,omitempty"`
	UploadedAt time.Time `json:"uploadedAt,omitempty"`
}

type Experience struct {
	ID          string `json:"_id,omitempty"`
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current,omitempty"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	ID           string `json:"_id,omitempty"`
	School       string `json:"school,omitempty"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
}

// ResumeAnalysis is produced by the backend after a resume upload.
type ResumeAnalysis struct {
	Score     float64 `json:"score,omitempty"`
	Seniority string  `json:"seniority,omitempty"`
}

type ApplicantProfile struct {
	ID             string          `json:"_id,omitempty"`
	FirstName      string          `json:"firstName,omitempty"`
	MiddleName     string          `json:"middleName,omitempty"`
	LastName       string          `json:"lastName,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Location       string          `json:"location,omitempty"`
	CoverLetter    string          `json:"coverLetter,omitempty"`
	ProfileImage   string          `json:"profileImage,omitempty"`
	Resumes        []Resume        `json:"resumes,omitempty"`
	Skills         []string        `json:"skills,omitempty"`
	Experience     []Experience    `json:"experience,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	ResumeAnalysis *ResumeAnalysis `json:"resumeAnalysis,omitempty"`
}

// FullName joins the non-empty name parts.
func (p ApplicantProfile) FullName() string {
	name := ""
	for _, part := range []string{p.FirstName, p.MiddleName, p.LastName} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}

type CompanyMetrics struct {
	ActiveJobsCount int `json:"activeJobsCount"`
	TotalApplicants int `json:"totalApplicants"`
	JobPostsCount   int `json:"jobPostsCount"`
}

// CompanyProfile belongs to one employer. Score and metrics are backend-owned.
type CompanyProfile struct {
	ID               string         `json:"_id,omitempty"`
	CompanyName      string         `json:"companyName"`
	Description      string         `json:"description,omitempty"`
	Industry         string         `json:"industry,omitempty"`
	Location         string         `json:"location,omitempty"`
	Logo             string         `json:"logo,omitempty"`
	CredibilityScore int            `json:"credibilityScore"`
	Metrics          CompanyMetrics `json:"metrics"`
}
