package company

import (
	"testing"

	"github.com/jimezsa/suitlink/internal/models"
)

func TestPreviewScore(t *testing.T) {
	tests := []struct {
		name    string
		profile models.CompanyProfile
		want    int
	}{
		{"empty", models.CompanyProfile{}, 0},
		{"name only", models.CompanyProfile{CompanyName: "Acme"}, 3},
		{"whitespace ignored", models.CompanyProfile{CompanyName: "Acme", Industry: "  "}, 3},
		{"name and description", models.CompanyProfile{CompanyName: "Acme", Description: "Widgets"}, 5},
		{"no logo", models.CompanyProfile{CompanyName: "Acme", Description: "Widgets", Industry: "Tech", Location: "Manila"}, 9},
		{"complete", models.CompanyProfile{CompanyName: "Acme", Description: "Widgets", Industry: "Tech", Location: "Manila", Logo: "logo.png"}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreviewScore(tt.profile); got != tt.want {
				t.Fatalf("PreviewScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVerificationThreshold(t *testing.T) {
	tests := []struct {
		score    int
		verified bool
	}{
		{4, false},
		{6, false},
		{7, true},
		{10, true},
	}
	for _, tt := range tests {
		if got := IsVerified(tt.score); got != tt.verified {
			t.Fatalf("IsVerified(%d) = %v, want %v", tt.score, got, tt.verified)
		}
		if got := NeedsCompletion(tt.score); got == tt.verified {
			t.Fatalf("NeedsCompletion(%d) = %v, want %v", tt.score, got, !tt.verified)
		}
	}
	if Badge(7) != "Verified" || Badge(6) != "Unverified" {
		t.Fatalf("Badge() mismatch")
	}
}

func TestMissingFields(t *testing.T) {
	got := MissingFields(models.CompanyProfile{CompanyName: "Acme", Location: "Cebu"})
	want := map[string]int{"description": 2, "industry": 2, "logo": 1}
	if len(got) != len(want) {
		t.Fatalf("MissingFields() = %v, want %v", got, want)
	}
	for name, points := range want {
		if got[name] != points {
			t.Fatalf("MissingFields()[%s] = %d, want %d", name, got[name], points)
		}
	}
}
