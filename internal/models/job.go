package models

import (
	"fmt"
	"strings"
	"time"
)

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
)

// EmploymentTypes lists the accepted values in display order.
var EmploymentTypes = []EmploymentType{
	EmploymentFullTime,
	EmploymentPartTime,
	EmploymentContract,
	EmploymentInternship,
}

func (t EmploymentType) Valid() bool {
	for _, known := range EmploymentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Label returns the human form, e.g. "Full-time".
func (t EmploymentType) Label() string {
	switch t {
	case EmploymentFullTime:
		return "Full-time"
	case EmploymentPartTime:
		return "Part-time"
	case EmploymentContract:
		return "Contract"
	case EmploymentInternship:
		return "Internship"
	default:
		return string(t)
	}
}

type JobStatus string

const (
	JobOpen   JobStatus = "open"
	JobClosed JobStatus = "closed"
)

type SalaryRange struct {
	Min      int    `json:"min,omitempty"`
	Max      int    `json:"max,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// String mirrors the job card formatting: "PHP 30000 - 50000", "PHP 30000+",
// "Up to PHP 50000" or "Negotiable".
func (s SalaryRange) String() string {
	currency := strings.TrimSpace(s.Currency)
	if currency == "" {
		currency = "PHP"
	}
	switch {
	case s.Min > 0 && s.Max > 0:
		return fmt.Sprintf("%s %d - %d", currency, s.Min, s.Max)
	case s.Min > 0:
		return fmt.Sprintf("%s %d+", currency, s.Min)
	case s.Max > 0:
		return fmt.Sprintf("Up to %s %d", currency, s.Max)
	default:
		return "Negotiable"
	}
}

type Requirements struct {
	Skills          []string `json:"skills,omitempty"`
	ExperienceYears int      `json:"experienceYears,omitempty"`
	EducationLevel  string   `json:"educationLevel,omitempty"`
}

// CompanyRef is the owner summary embedded in a posting.
type CompanyRef struct {
	ID          string `json:"_id,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

// JobPosting is a listing owned by exactly one company.
type JobPosting struct {
	ID             string         `json:"_id"`
	Company        CompanyRef     `json:"company,omitempty"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	Location       string         `json:"location,omitempty"`
	Remote         bool           `json:"remote"`
	EmploymentType EmploymentType `json:"employmentType,omitempty"`
	SalaryRange    SalaryRange    `json:"salaryRange,omitempty"`
	Requirements   Requirements   `json:"requirements,omitempty"`
	Status         JobStatus      `json:"status,omitempty"`
	CreatedAt      time.Time      `json:"createdAt,omitempty"`

	// Applied is filled client-side from the applied-jobs overlay.
	Applied bool `json:"applied,omitempty"`
}
