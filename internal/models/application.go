package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusReviewed ApplicationStatus = "reviewed"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

var ApplicationStatuses = []ApplicationStatus{
	StatusPending,
	StatusReviewed,
	StatusAccepted,
	StatusRejected,
}

func (s ApplicationStatus) Valid() bool {
	for _, known := range ApplicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseApplicationStatus accepts any casing and surrounding whitespace.
func ParseApplicationStatus(value string) (ApplicationStatus, error) {
	status := ApplicationStatus(strings.ToLower(strings.TrimSpace(value)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown application status: %q", value)
	}
	return status, nil
}

// JobRef is either a bare job id or a populated posting.
type JobRef struct {
	ID  string
	Job *JobPosting
}

func (r *JobRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var job JobPosting
	if err := json.Unmarshal(data, &job); err != nil {
		return err
	}
	r.ID = job.ID
	r.Job = &job
	return nil
}

func (r JobRef) MarshalJSON() ([]byte, error) {
	if r.Job != nil {
		return json.Marshal(r.Job)
	}
	return json.Marshal(r.ID)
}

// Title returns the populated title, or the id when only a reference is known.
func (r JobRef) Title() string {
	if r.Job != nil && r.Job.Title != "" {
		return r.Job.Title
	}
	return r.ID
}

type ApplicantRef struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type ResumeRef struct {
	ID       string `json:"_id,omitempty"`
	FileName string `json:"fileName,omitempty"`
	FileURL  string `json:"fileUrl,omitempty"`
}

// Application links one applicant to one job posting.
type Application struct {
	ID          string            `json:"_id"`
	JobPosting  JobRef            `json:"jobPosting"`
	Applicant   ApplicantRef      `json:"applicant,omitempty"`
	Resume      *ResumeRef        `json:"resume,omitempty"`
	CoverLetter string            `json:"coverLetter,omitempty"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt,omitempty"`
}
