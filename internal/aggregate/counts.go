// Package aggregate builds the employer-side applicant views: per-job counts
// and the paginated, status-filtered applicant list of a single job.
package aggregate

import (
	"context"

	"github.com/jimezsa/suitlink/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 8

// ApplicantCounter returns the number of applications for one job.
type ApplicantCounter interface {
	CountApplicants(ctx context.Context, jobID string) (int, error)
}

type CountOptions struct {
	Concurrency int
	Logger      zerolog.Logger
}

// CountApplicantsPerJob fetches one count per job. A failed fetch degrades to
// 0 for that job and is logged; the aggregate itself never fails. The map has
// exactly one key per input job and is built after every fetch has settled.
func CountApplicantsPerJob(ctx context.Context, counter ApplicantCounter, jobs []models.JobPosting, opts CountOptions) map[string]int {
	limit := opts.Concurrency
	if limit < 1 {
		limit = DefaultConcurrency
	}

	counts := make([]int, len(jobs))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			n, err := counter.CountApplicants(ctx, job.ID)
			if err != nil {
				opts.Logger.Warn().Err(err).Str("job", job.ID).Msg("applicant count failed, showing 0")
				return nil
			}
			counts[i] = n
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]int, len(jobs))
	for i, job := range jobs {
		out[job.ID] = counts[i]
	}
	return out
}

// Total sums a count map.
func Total(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}
