// Package company holds the client-side credibility preview. The backend's
// credibilityScore stays authoritative; these helpers only drive the form.
package company

import (
	"strings"

	"github.com/jimezsa/suitlink/internal/models"
)

const (
	MaxScore          = 10
	VerifiedThreshold = 7
)

type field struct {
	name   string
	points int
	value  func(models.CompanyProfile) string
}

var fields = []field{
	{"companyName", 3, func(p models.CompanyProfile) string { return p.CompanyName }},
	{"description", 2, func(p models.CompanyProfile) string { return p.Description }},
	{"industry", 2, func(p models.CompanyProfile) string { return p.Industry }},
	{"location", 2, func(p models.CompanyProfile) string { return p.Location }},
	{"logo", 1, func(p models.CompanyProfile) string { return p.Logo }},
}

// PreviewScore estimates the credibility score from the filled fields.
func PreviewScore(p models.CompanyProfile) int {
	score := 0
	for _, f := range fields {
		if strings.TrimSpace(f.value(p)) != "" {
			score += f.points
		}
	}
	return min(score, MaxScore)
}

// MissingFields lists the empty fields with the points each would add.
func MissingFields(p models.CompanyProfile) map[string]int {
	out := map[string]int{}
	for _, f := range fields {
		if strings.TrimSpace(f.value(p)) == "" {
			out[f.name] = f.points
		}
	}
	return out
}

func IsVerified(score int) bool { return score >= VerifiedThreshold }

func NeedsCompletion(score int) bool { return score < VerifiedThreshold }

// Badge is the label shown next to the company name.
func Badge(score int) string {
	if IsVerified(score) {
		return "Verified"
	}
	return "Unverified"
}
