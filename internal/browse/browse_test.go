package browse

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jimezsa/suitlink/internal/api"
	"github.com/jimezsa/suitlink/internal/models"
	"github.com/rs/zerolog"
)

type fakeSearcher struct {
	mu         sync.Mutex
	queries    []api.JobQuery
	block      map[string]chan struct{}
	started    map[string]chan struct{}
	appliedIDs []string
	appliedErr error
}

func (f *fakeSearcher) ListJobs(ctx context.Context, q api.JobQuery) (models.Page[models.JobPosting], error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	block := f.block[q.Search]
	started := f.started[q.Search]
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if block != nil {
		<-block
	}
	jobs := []models.JobPosting{
		{ID: "j1", Title: q.Search + " one"},
		{ID: "j2", Title: q.Search + " two"},
	}
	return models.NewPage(jobs, q.Page, q.Limit, len(jobs)), nil
}

func (f *fakeSearcher) AppliedJobs(ctx context.Context, page, limit int) (models.Page[models.JobPosting], error) {
	if f.appliedErr != nil {
		return models.Page[models.JobPosting]{}, f.appliedErr
	}
	jobs := make([]models.JobPosting, 0, len(f.appliedIDs))
	for _, id := range f.appliedIDs {
		jobs = append(jobs, models.JobPosting{ID: id})
	}
	return models.NewPage(jobs, page, limit, len(jobs)), nil
}

func (f *fakeSearcher) lastQuery() api.JobQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

func TestFilterChangeResetsPage(t *testing.T) {
	searcher := &fakeSearcher{}
	view := NewView(searcher, Options{Logger: zerolog.Nop()})
	remote := true

	view.SetPage(4)
	view.SetFilters(Filters{EmploymentType: models.EmploymentContract})
	if view.Page() != 1 {
		t.Fatalf("Page() after SetFilters = %d, want 1", view.Page())
	}

	view.SetPage(3)
	view.SetFilters(Filters{EmploymentType: models.EmploymentContract})
	if view.Page() != 3 {
		t.Fatalf("Page() after unchanged filters = %d, want 3", view.Page())
	}

	view.SetFilters(Filters{EmploymentType: models.EmploymentContract, Remote: &remote})
	if view.Page() != 1 {
		t.Fatalf("Page() after remote change = %d, want 1", view.Page())
	}

	view.SetPage(2)
	view.SetText("golang")
	if view.Page() != 1 {
		t.Fatalf("Page() after SetText = %d, want 1", view.Page())
	}

	if _, ok := view.Fetch(context.Background()); !ok {
		t.Fatalf("Fetch() discarded")
	}
	q := searcher.lastQuery()
	if q.Page != 1 || q.Search != "golang" || q.Remote == nil || !*q.Remote {
		t.Fatalf("query = %+v", q)
	}
}

func TestStaleResultIsDiscarded(t *testing.T) {
	searcher := &fakeSearcher{
		block:   map[string]chan struct{}{"a": make(chan struct{})},
		started: map[string]chan struct{}{"a": make(chan struct{})},
	}
	view := NewView(searcher, Options{Logger: zerolog.Nop()})

	view.SetText("a")
	type outcome struct {
		result    Result
		published bool
	}
	first := make(chan outcome, 1)
	go func() {
		result, ok := view.Fetch(context.Background())
		first <- outcome{result, ok}
	}()
	<-searcher.started["a"]

	view.SetText("ab")
	latest, ok := view.Fetch(context.Background())
	if !ok {
		t.Fatalf("latest Fetch() discarded")
	}

	close(searcher.block["a"])
	stale := <-first
	if stale.published {
		t.Fatalf("stale Fetch() published")
	}
	if stale.result.Seq >= latest.Seq {
		t.Fatalf("stale seq %d >= latest seq %d", stale.result.Seq, latest.Seq)
	}

	current := view.Current()
	if current.Filters.Text != "ab" || current.Page.Items[0].Title != "ab one" {
		t.Fatalf("Current() = %+v, want results for ab", current)
	}
}

func TestAppliedOverlay(t *testing.T) {
	searcher := &fakeSearcher{appliedIDs: []string{"j2"}}
	view := NewView(searcher, Options{Overlay: true, Logger: zerolog.Nop()})

	result, ok := view.Fetch(context.Background())
	if !ok || result.Err != nil {
		t.Fatalf("Fetch() = %+v, %v", result, ok)
	}
	if result.Page.Items[0].Applied || !result.Page.Items[1].Applied {
		t.Fatalf("applied markers = %v, %v, want false, true", result.Page.Items[0].Applied, result.Page.Items[1].Applied)
	}
}

func TestAppliedOverlayFailureMarksNothing(t *testing.T) {
	searcher := &fakeSearcher{appliedIDs: []string{"j1"}, appliedErr: errors.New("offline")}
	view := NewView(searcher, Options{Overlay: true, Logger: zerolog.Nop()})

	result, ok := view.Fetch(context.Background())
	if !ok || result.Err != nil {
		t.Fatalf("Fetch() = %+v, %v", result, ok)
	}
	for _, job := range result.Page.Items {
		if job.Applied {
			t.Fatalf("job %s marked applied after overlay failure", job.ID)
		}
	}
}

func TestFiltersEqual(t *testing.T) {
	yes, no := true, false
	yes2 := true
	tests := []struct {
		a, b Filters
		want bool
	}{
		{Filters{}, Filters{}, true},
		{Filters{Remote: &yes}, Filters{Remote: &yes2}, true},
		{Filters{Remote: &yes}, Filters{Remote: &no}, false},
		{Filters{Remote: &yes}, Filters{}, false},
		{Filters{SalaryMin: 1}, Filters{}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Fatalf("Equal(%+v, %+v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDebouncerFiresOnce(t *testing.T) {
	var calls atomic.Int32
	fired := make(chan struct{}, 4)
	d := NewDebouncer(30*time.Millisecond, func() {
		calls.Add(1)
		fired <- struct{}{}
	})

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatalf("debouncer never fired")
	}
	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}
}

func TestDebouncerFlushAndStop(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(time.Hour, func() { calls.Add(1) })

	if d.Flush() {
		t.Fatalf("Flush() with nothing pending = true")
	}
	d.Trigger()
	if !d.Flush() || calls.Load() != 1 {
		t.Fatalf("Flush() did not run pending call")
	}

	d.Trigger()
	d.Stop()
	d.Trigger()
	if d.Flush() || calls.Load() != 1 {
		t.Fatalf("calls after Stop = %d, want 1", calls.Load())
	}
}

func TestDebouncerStopWaitsForRunningCall(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	d := NewDebouncer(time.Millisecond, func() {
		close(started)
		<-release
		finished.Store(true)
	})

	d.Trigger()
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatalf("debouncer never fired")
	}

	stopped := make(chan struct{})
	go func() {
		d.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
		t.Fatalf("Stop() returned while a call was still running")
	case <-time.After(30 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatalf("Stop() never returned")
	}
	if !finished.Load() {
		t.Fatalf("Stop() returned before the call finished")
	}
}
