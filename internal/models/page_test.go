package models

import (
	"encoding/json"
	"testing"
)

func TestNewPageSecondOfTwo(t *testing.T) {
	page := NewPage([]int{11, 12, 13, 14, 15}, 2, 10, 15)
	if page.TotalPages != 2 {
		t.Fatalf("TotalPages = %d, want 2", page.TotalPages)
	}
	if page.HasNextPage {
		t.Fatalf("HasNextPage = true, want false")
	}
	if !page.HasPrevPage {
		t.Fatalf("HasPrevPage = false, want true")
	}
}

func TestNewPageEmpty(t *testing.T) {
	page := NewPage[int](nil, 1, 10, 0)
	if page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("Items = %#v, want empty slice", page.Items)
	}
	if page.TotalPages != 0 || page.HasNextPage || page.HasPrevPage {
		t.Fatalf("unexpected envelope: %+v", page)
	}
}

func TestPageUnmarshalEnvelopeVerbatim(t *testing.T) {
	raw := `{"items":[{"_id":"a","title":"Go Dev"}],"page":2,"limit":10,"totalItems":15,"totalPages":2,"hasNextPage":false,"hasPrevPage":true}`
	var page Page[JobPosting]
	if err := json.Unmarshal([]byte(raw), &page); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if page.Page != 2 || page.Limit != 10 || page.TotalItems != 15 || page.TotalPages != 2 {
		t.Fatalf("unexpected envelope: %+v", page)
	}
	if page.HasNextPage || !page.HasPrevPage {
		t.Fatalf("unexpected flags: %+v", page)
	}
	if len(page.Items) != 1 || page.Items[0].Title != "Go Dev" {
		t.Fatalf("unexpected items: %+v", page.Items)
	}
}

func TestPageUnmarshalBareArray(t *testing.T) {
	var page Page[Application]
	if err := json.Unmarshal([]byte(`[{"_id":"x","status":"pending","jobPosting":"j1"}]`), &page); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if page.TotalItems != 1 || page.Page != 1 {
		t.Fatalf("unexpected envelope: %+v", page)
	}
	if page.Items[0].JobPosting.ID != "j1" {
		t.Fatalf("JobPosting.ID = %q, want j1", page.Items[0].JobPosting.ID)
	}
}

func TestJobRefPopulated(t *testing.T) {
	var app Application
	raw := `{"_id":"x","status":"reviewed","jobPosting":{"_id":"j2","title":"SRE"}}`
	if err := json.Unmarshal([]byte(raw), &app); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if app.JobPosting.ID != "j2" || app.JobPosting.Title() != "SRE" {
		t.Fatalf("unexpected job ref: %+v", app.JobPosting)
	}
}

func TestParseApplicationStatus(t *testing.T) {
	got, err := ParseApplicationStatus("  Accepted ")
	if err != nil {
		t.Fatalf("ParseApplicationStatus() error = %v", err)
	}
	if got != StatusAccepted {
		t.Fatalf("ParseApplicationStatus() = %q, want %q", got, StatusAccepted)
	}
	if _, err := ParseApplicationStatus("hired"); err == nil {
		t.Fatalf("ParseApplicationStatus(hired) error = nil, want error")
	}
}

func TestSalaryRangeString(t *testing.T) {
	cases := []struct {
		in   SalaryRange
		want string
	}{
		{SalaryRange{Min: 30000, Max: 50000, Currency: "USD"}, "USD 30000 - 50000"},
		{SalaryRange{Min: 30000}, "PHP 30000+"},
		{SalaryRange{Max: 50000}, "Up to PHP 50000"},
		{SalaryRange{}, "Negotiable"},
	}
	for _, tc := range cases {
		if got := tc.in.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}
