package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jimezsa/suitlink/internal/api"
	"github.com/jimezsa/suitlink/internal/export"
	"github.com/jimezsa/suitlink/internal/ui"
	"github.com/muesli/termenv"
)

// OutputOptions are shared by every listing command.
type OutputOptions struct {
	Format string `help:"Output format: table, csv, tsv, json, md." enum:",table,csv,tsv,json,md" default:""`
	Links  string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output string `name:"output" short:"o" help:"Write output to a file."`
}

func resolveFormat(ctx *Context, opts OutputOptions, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if opts.Format != "" {
		return parseFormat(opts.Format)
	}
	if outputPath != "" {
		return export.FormatCSV, nil
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func parseFormat(value string) (export.Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return export.FormatCSV, nil
	case "json":
		return export.FormatJSON, nil
	case "md", "markdown":
		return export.FormatMarkdown, nil
	case "tsv":
		return export.FormatTSV, nil
	case "table", "":
		return export.FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

// emit resolves the destination and format, then hands both to write.
func emit(ctx *Context, opts OutputOptions, write func(io.Writer, export.Format, export.WriteOptions) error) error {
	format, err := resolveFormat(ctx, opts, opts.Output)
	if err != nil {
		return err
	}
	writeOpts := export.WriteOptions{
		ColorEnabled: ctx.UI != nil && ctx.UI.ColorEnabled && opts.Output == "",
		Hyperlinks:   opts.Output == "" && isTTY(ctx.Out),
		LinkStyle:    export.LinkStyle(opts.Links),
	}

	if opts.Output == "" {
		return write(ctx.Out, format, writeOpts)
	}
	file, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := write(file, format, writeOpts); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	if ctx.UI != nil {
		ctx.UI.Infof("Wrote %s", opts.Output)
	}
	return nil
}

func printPageFooter(ctx *Context, page, totalPages, totalItems int) {
	if ctx.UI == nil || ctx.JSONOutput || ctx.PlainText || !isTTY(ctx.Out) {
		return
	}
	if totalPages == 0 {
		totalPages = 1
	}
	fmt.Fprintf(ctx.Err, "Page %d of %d (%d total)\n", page, totalPages, totalItems)
}

// Report prints err, listing validation failures one field per line.
func Report(u *ui.UI, err error) {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || len(apiErr.ValidationErrors) == 0 {
		u.Errorf("%v", err)
		return
	}
	u.Errorf("%s", apiErr.Message)
	fields := make([]string, 0, len(apiErr.ValidationErrors))
	for field := range apiErr.ValidationErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		u.Errorf("  %s: %s", field, apiErr.ValidationErrors[field])
	}
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}

func startIndicator(ctx *Context, label string) func() {
	if ctx == nil || ctx.Err == nil || ctx.UI == nil {
		return func() {}
	}
	if !isTTY(ctx.Err) {
		return func() {}
	}

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		start := time.Now()
		frames := []string{"|", "/", "-", "\\"}
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		index := 0

		for {
			select {
			case <-done:
				fmt.Fprint(ctx.Err, "\r\033[2K")
				return
			case <-ticker.C:
				seconds := int(time.Since(start).Seconds())
				frame := frames[index%len(frames)]
				fmt.Fprintf(ctx.Err, "\r\033[2K%s... %ds %s", label, seconds, frame)
				index++
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func defaultInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}
