package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

// ParseFormat maps a flag value to a Format, defaulting to table.
func ParseFormat(value string) Format {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatCSV:
		return FormatCSV
	case FormatJSON:
		return FormatJSON
	case FormatMarkdown:
		return FormatMarkdown
	case FormatTSV:
		return FormatTSV
	default:
		return FormatTable
	}
}

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

// sheet is one result set in every output shape: flat rows for csv/tsv,
// colored cells for the table, and a markdown block per record.
type sheet struct {
	header      []string
	rows        [][]string
	tableHeader []string
	table       func(output *termenv.Output) [][]string
	markdown    func(w io.Writer) error
	value       any
}

func write(w io.Writer, format Format, s sheet, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, s.value)
	case FormatCSV:
		return writeDelimited(w, s, ',')
	case FormatTSV:
		return writeDelimited(w, s, '\t')
	case FormatMarkdown:
		if len(s.rows) == 0 {
			_, err := fmt.Fprintln(w, "No results.")
			return err
		}
		return s.markdown(w)
	default:
		return writeTable(w, s, opts)
	}
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func writeDelimited(w io.Writer, s sheet, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(s.header); err != nil {
		return err
	}
	for _, row := range s.rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, s sheet, opts WriteOptions) error {
	if len(s.rows) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := s.header
	if s.tableHeader != nil {
		header = s.tableHeader
	}
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(header, "\t")))
	rows := s.rows
	if s.table != nil {
		var output *termenv.Output
		if opts.ColorEnabled {
			output = termenv.NewOutput(w)
		}
		rows = s.table(output)
	}
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func boolString(value bool) string {
	if value {
		return "true"
	}
	return "false"
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func orDash(value string) string {
	if value = safe(value); value == "" {
		return "-"
	}
	return value
}

// linkCell renders a URL cell with optional color and OSC 8 hyperlink.
func linkCell(raw string, output *termenv.Output, opts WriteOptions) string {
	const linkColor = "#87CEEB"

	link := safe(raw)
	if link == "" {
		return "-"
	}
	display := link
	if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
		display = shortURLLabel(link)
	}
	if output != nil {
		display = output.String(display).Foreground(output.Color(linkColor)).String()
	}
	if opts.Hyperlinks {
		display = hyperlink(link, display)
	}
	return display
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
