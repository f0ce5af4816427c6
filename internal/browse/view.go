// Package browse drives the job list: filters, pagination, the applied
// overlay and last-request-wins supersession of in-flight searches.
package browse

import (
	"context"
	"sync"

	"github.com/jimezsa/suitlink/internal/api"
	"github.com/jimezsa/suitlink/internal/models"
	"github.com/rs/zerolog"
)

// appliedOverlayLimit bounds the single /jobs/applied page used for marking.
const appliedOverlayLimit = 100

type Filters struct {
	Text           string
	EmploymentType models.EmploymentType
	Remote         *bool
	SalaryMin      int
	SalaryMax      int
}

func (f Filters) Equal(other Filters) bool {
	if f.Text != other.Text || f.EmploymentType != other.EmploymentType ||
		f.SalaryMin != other.SalaryMin || f.SalaryMax != other.SalaryMax {
		return false
	}
	switch {
	case f.Remote == nil && other.Remote == nil:
		return true
	case f.Remote == nil || other.Remote == nil:
		return false
	default:
		return *f.Remote == *other.Remote
	}
}

// JobSearcher is the slice of the API the view needs; *api.Client satisfies it.
type JobSearcher interface {
	ListJobs(ctx context.Context, q api.JobQuery) (models.Page[models.JobPosting], error)
	AppliedJobs(ctx context.Context, page, limit int) (models.Page[models.JobPosting], error)
}

// Result is one completed fetch.
type Result struct {
	Seq     uint64
	Filters Filters
	Page    models.Page[models.JobPosting]
	Err     error
}

type Options struct {
	Limit int
	// Overlay enables the applied marker; only applicants have one.
	Overlay bool
	Logger  zerolog.Logger
}

// View is safe for concurrent use. Only the latest fetch may publish.
type View struct {
	searcher JobSearcher
	opts     Options

	mu      sync.Mutex
	filters Filters
	page    int
	seq     uint64
	cancel  context.CancelFunc
	current Result
}

func NewView(searcher JobSearcher, opts Options) *View {
	if opts.Limit < 1 {
		opts.Limit = 10
	}
	return &View{searcher: searcher, opts: opts, page: 1}
}

func (v *View) Filters() Filters {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filters
}

func (v *View) Page() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// SetFilters replaces all filters. Any change resets to page 1.
func (v *View) SetFilters(f Filters) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.filters.Equal(f) {
		v.filters = f
		v.page = 1
	}
}

// SetText changes only the free-text search.
func (v *View) SetText(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.filters.Text != text {
		v.filters.Text = text
		v.page = 1
	}
}

func (v *View) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.mu.Lock()
	v.page = page
	v.mu.Unlock()
}

// Current returns the last published result.
func (v *View) Current() Result {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Fetch runs a search for the current filters and page. It cancels any fetch
// still in flight. The bool is false when a newer fetch started before this
// one finished; such results are never published.
func (v *View) Fetch(ctx context.Context) (Result, bool) {
	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	v.seq++
	seq := v.seq
	filters := v.filters
	page := v.page
	fetchCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.mu.Unlock()
	defer cancel()

	query := api.JobQuery{
		Page:           page,
		Limit:          v.opts.Limit,
		Search:         filters.Text,
		EmploymentType: filters.EmploymentType,
		Remote:         filters.Remote,
		SalaryMin:      filters.SalaryMin,
		SalaryMax:      filters.SalaryMax,
	}

	var (
		wg      sync.WaitGroup
		list    models.Page[models.JobPosting]
		listErr error
		applied map[string]bool
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		list, listErr = v.searcher.ListJobs(fetchCtx, query)
	}()
	if v.opts.Overlay {
		wg.Add(1)
		go func() {
			defer wg.Done()
			applied = v.appliedSet(fetchCtx)
		}()
	}
	wg.Wait()

	result := Result{Seq: seq, Filters: filters, Page: list, Err: listErr}
	if listErr == nil {
		result.Page.Items = markApplied(list.Items, applied)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq != v.seq {
		v.opts.Logger.Debug().Uint64("seq", seq).Uint64("latest", v.seq).Msg("discarding stale search result")
		return result, false
	}
	v.cancel = nil
	v.current = result
	return result, true
}

// appliedSet returns nil when the overlay cannot be fetched; the list is
// then shown without markers.
func (v *View) appliedSet(ctx context.Context) map[string]bool {
	page, err := v.searcher.AppliedJobs(ctx, 1, appliedOverlayLimit)
	if err != nil {
		if ctx.Err() == nil {
			v.opts.Logger.Warn().Err(err).Msg("applied jobs unavailable, not marking")
		}
		return nil
	}
	set := make(map[string]bool, len(page.Items))
	for _, job := range page.Items {
		set[job.ID] = true
	}
	return set
}

func markApplied(jobs []models.JobPosting, applied map[string]bool) []models.JobPosting {
	out := make([]models.JobPosting, len(jobs))
	for i, job := range jobs {
		job.Applied = applied[job.ID]
		out[i] = job
	}
	return out
}

// Close cancels any fetch still in flight.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}
