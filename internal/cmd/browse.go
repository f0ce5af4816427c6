package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jimezsa/suitlink/internal/browse"
	"github.com/jimezsa/suitlink/internal/export"
	"github.com/jimezsa/suitlink/internal/models"
)

type JobsBrowseCmd struct {
	Search string `arg:"" optional:"" help:"Initial search text."`
	FilterOptions
	Limit int `help:"Items per page." env:"SUITLINK_DEFAULT_LIMIT"`
}

const browseHelp = `Type to search. Commands:
  :next  :prev  :page N
  :type full-time|part-time|contract|internship|any
  :remote true|false|any
  :salary MIN MAX
  :quit`

func (c *JobsBrowseCmd) Run(ctx *Context) error {
	if ctx.In == nil {
		return fmt.Errorf("browse needs an interactive stdin")
	}
	filters, err := c.filters(c.Search)
	if err != nil {
		return err
	}
	view, err := newJobView(ctx, c.Limit)
	if err != nil {
		return err
	}
	defer view.Close()
	view.SetFilters(filters)

	b := &browser{ctx: ctx, view: view, base: context.Background()}
	debouncer := browse.NewDebouncer(ctx.Config.SearchDebounce(), b.fetch)
	defer debouncer.Stop()

	fmt.Fprintln(ctx.Err, browseHelp)
	b.fetch()

	scanner := bufio.NewScanner(ctx.In)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, ":") {
			view.SetText(line)
			debouncer.Trigger()
			continue
		}
		debouncer.Flush()
		quit, err := b.command(line)
		if err != nil {
			ctx.UI.Warnf("%v", err)
			continue
		}
		if quit {
			break
		}
		b.fetch()
	}
	debouncer.Flush()
	debouncer.Stop()
	b.wait()
	return scanner.Err()
}

// browser renders only results that are still the latest request.
type browser struct {
	ctx  *Context
	view *browse.View
	base context.Context

	wg sync.WaitGroup
	mu sync.Mutex
}

func (b *browser) fetch() {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		result, latest := b.view.Fetch(b.base)
		if !latest {
			return
		}
		b.render(result)
	}()
}

func (b *browser) wait() {
	b.wg.Wait()
}

func (b *browser) render(result browse.Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if result.Err != nil {
		if b.base.Err() == nil {
			b.ctx.UI.Warnf("search failed: %v", result.Err)
		}
		return
	}
	format := export.FormatTable
	if b.ctx.JSONOutput {
		format = export.FormatJSON
	}
	fmt.Fprintf(b.ctx.Out, "\n%s\n", describeFilters(result.Filters))
	if err := export.WriteJobs(b.ctx.Out, result.Page.Items, format, export.WriteOptions{ColorEnabled: b.ctx.UI.ColorEnabled}); err != nil {
		b.ctx.UI.Warnf("render: %v", err)
		return
	}
	printPageFooter(b.ctx, result.Page.Page, result.Page.TotalPages, result.Page.TotalItems)
}

func (b *browser) command(line string) (bool, error) {
	fields := strings.Fields(strings.TrimPrefix(line, ":"))
	if len(fields) == 0 {
		return false, fmt.Errorf("empty command")
	}
	view := b.view
	current := view.Current().Page
	switch fields[0] {
	case "q", "quit", "exit":
		return true, nil
	case "next", "n":
		if !current.HasNextPage {
			return false, fmt.Errorf("already on the last page")
		}
		view.SetPage(view.Page() + 1)
	case "prev", "p":
		if !current.HasPrevPage {
			return false, fmt.Errorf("already on the first page")
		}
		view.SetPage(view.Page() - 1)
	case "page":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: :page N")
		}
		page, err := strconv.Atoi(fields[1])
		if err != nil || page < 1 {
			return false, fmt.Errorf("invalid page %q", fields[1])
		}
		view.SetPage(page)
	case "type":
		filters := view.Filters()
		filters.EmploymentType = ""
		if len(fields) > 1 && fields[1] != "any" {
			t := models.EmploymentType(fields[1])
			if !t.Valid() {
				return false, fmt.Errorf("unknown employment type %q", fields[1])
			}
			filters.EmploymentType = t
		}
		view.SetFilters(filters)
	case "remote":
		filters := view.Filters()
		filters.Remote = nil
		if len(fields) > 1 && fields[1] != "any" {
			remote, err := parseTriState(fields[1])
			if err != nil {
				return false, err
			}
			filters.Remote = remote
		}
		view.SetFilters(filters)
	case "salary":
		filters := view.Filters()
		bounds := [2]int{}
		for i, raw := range fields[1:min(len(fields), 3)] {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return false, fmt.Errorf("invalid salary %q", raw)
			}
			bounds[i] = n
		}
		if err := checkSalaryRange(bounds[0], bounds[1]); err != nil {
			return false, err
		}
		filters.SalaryMin, filters.SalaryMax = bounds[0], bounds[1]
		view.SetFilters(filters)
	default:
		return false, fmt.Errorf("unknown command :%s", fields[0])
	}
	return false, nil
}

func describeFilters(f browse.Filters) string {
	parts := []string{}
	if f.Text != "" {
		parts = append(parts, fmt.Sprintf("search=%q", f.Text))
	}
	if f.EmploymentType != "" {
		parts = append(parts, "type="+string(f.EmploymentType))
	}
	if f.Remote != nil {
		parts = append(parts, "remote="+strconv.FormatBool(*f.Remote))
	}
	if f.SalaryMin > 0 || f.SalaryMax > 0 {
		parts = append(parts, models.SalaryRange{Min: f.SalaryMin, Max: f.SalaryMax}.String())
	}
	if len(parts) == 0 {
		return "All jobs"
	}
	return strings.Join(parts, "  ")
}
